package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/cmdowser/internal/config"
	"github.com/nao1215/cmdowser/internal/tor"
	"golang.org/x/text/encoding/charmap"
)

// TestFetch tests successful page retrieval.
func TestFetch(t *testing.T) {
	t.Parallel()

	t.Run("returns body and sends the fixed user agent", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			fmt.Fprintf(w, `<!-- %s --><nav>X</nav><p>Hello</p><a href="/a">A</a>`, r.Header.Get("User-Agent"))
		}))
		defer server.Close()

		client, err := NewClient()
		if err != nil {
			t.Fatalf("failed to create client: %v", err)
		}

		page, err := client.Fetch(context.Background(), server.URL+"/ok")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(page.Body, "<!-- TextBrowser/3.0 (MultiLang) -->") {
			t.Errorf("fixed User-Agent not sent: %q", page.Body)
		}
		if page.StatusCode != http.StatusOK {
			t.Errorf("expected 200, got %d", page.StatusCode)
		}
		if !strings.Contains(page.Body, "<p>Hello</p>") {
			t.Errorf("unexpected body %q", page.Body)
		}
		if page.URL != server.URL+"/ok" || page.FinalURL != server.URL+"/ok" {
			t.Errorf("unexpected URLs %q %q", page.URL, page.FinalURL)
		}
		if !strings.HasPrefix(page.ContentType, "text/html") {
			t.Errorf("unexpected content type %q", page.ContentType)
		}
	})

	t.Run("custom user agent", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, r.Header.Get("User-Agent"))
		}))
		defer server.Close()

		client, err := NewClient(WithUserAgent("custom/1.0"))
		if err != nil {
			t.Fatalf("failed to create client: %v", err)
		}
		page, err := client.Fetch(context.Background(), server.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if page.Body != "custom/1.0" {
			t.Errorf("expected custom/1.0, got %q", page.Body)
		}
	})

	t.Run("follows redirects and reports the final URL", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/dir/new", http.StatusFound)
		})
		mux.HandleFunc("/dir/new", func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, "moved")
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		client, err := NewClient()
		if err != nil {
			t.Fatalf("failed to create client: %v", err)
		}

		page, err := client.Fetch(context.Background(), server.URL+"/old")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if page.URL != server.URL+"/old" {
			t.Errorf("URL must stay the requested one, got %q", page.URL)
		}
		if page.FinalURL != server.URL+"/dir/new" {
			t.Errorf("expected final URL %q, got %q", server.URL+"/dir/new", page.FinalURL)
		}
	})

	t.Run("body is capped at max body size", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, strings.Repeat("a", 100))
		}))
		defer server.Close()

		client, err := NewClient(WithMaxBodySize(10))
		if err != nil {
			t.Fatalf("failed to create client: %v", err)
		}

		page, err := client.Fetch(context.Background(), server.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(page.Body) != 10 {
			t.Errorf("expected 10 bytes, got %d", len(page.Body))
		}
	})

	t.Run("declared charset is decoded to UTF-8", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=windows-1251")
			// "Привет" in windows-1251.
			_, _ = w.Write([]byte{0xCF, 0xF0, 0xE8, 0xE2, 0xE5, 0xF2})
		}))
		defer server.Close()

		client, err := NewClient()
		if err != nil {
			t.Fatalf("failed to create client: %v", err)
		}

		page, err := client.Fetch(context.Background(), server.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if page.Body != "Привет" {
			t.Errorf("expected Привет, got %q", page.Body)
		}
	})

	t.Run("undeclared cyrillic charset is detected", func(t *testing.T) {
		t.Parallel()

		text := strings.Repeat("Привет! Это тестовая страница на русском языке. "+
			"Здесь есть несколько предложений, чтобы определить кодировку текста. ", 4)
		encoded, err := charmap.Windows1251.NewEncoder().String(text)
		if err != nil {
			t.Fatalf("failed to encode: %v", err)
		}

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<p>" + encoded + "</p>"))
		}))
		defer server.Close()

		client, err := NewClient()
		if err != nil {
			t.Fatalf("failed to create client: %v", err)
		}

		page, err := client.Fetch(context.Background(), server.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(page.Body, "Привет! Это тестовая страница") {
			t.Errorf("expected decoded Russian text, got %q", page.Body)
		}
	})

	t.Run("invalid UTF-8 is replaced", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			_, _ = w.Write([]byte("ok\xff"))
		}))
		defer server.Close()

		client, err := NewClient()
		if err != nil {
			t.Fatalf("failed to create client: %v", err)
		}

		page, err := client.Fetch(context.Background(), server.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if page.Body != "ok\uFFFD" {
			t.Errorf("expected replacement character, got %q", page.Body)
		}
	})

	t.Run("cookies set by the server are sent back", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/set", func(w http.ResponseWriter, _ *http.Request) {
			http.SetCookie(w, &http.Cookie{Name: "sid", Value: "42", Path: "/"})
		})
		mux.HandleFunc("/check", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, r.Header.Get("Cookie"))
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		client, err := NewClient()
		if err != nil {
			t.Fatalf("failed to create client: %v", err)
		}
		if _, err := client.Fetch(context.Background(), server.URL+"/set"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		page, err := client.Fetch(context.Background(), server.URL+"/check")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if page.Body != "sid=42" {
			t.Errorf("expected cookie sid=42, got %q", page.Body)
		}
	})
}

// TestFetchErrors tests failure classification.
func TestFetchErrors(t *testing.T) {
	t.Parallel()

	t.Run("4xx and 5xx are status errors", func(t *testing.T) {
		t.Parallel()

		for _, code := range []int{http.StatusNotFound, http.StatusInternalServerError} {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(code)
			}))

			client, err := NewClient()
			if err != nil {
				server.Close()
				t.Fatalf("failed to create client: %v", err)
			}

			page, err := client.Fetch(context.Background(), server.URL)
			server.Close()

			if page != nil {
				t.Errorf("expected nil page for %d", code)
			}
			var fe *FetchError
			if !errors.As(err, &fe) {
				t.Fatalf("expected *FetchError, got %v", err)
			}
			if fe.Kind != KindStatus || fe.StatusCode != code {
				t.Errorf("expected status %d, got kind=%s status=%d", code, fe.Kind, fe.StatusCode)
			}
			if !errors.Is(err, ErrBadStatus) {
				t.Errorf("expected ErrBadStatus in chain, got %v", err)
			}
		}
	})

	t.Run("slow server is a timeout", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(5 * time.Second):
			}
		}))
		defer server.Close()

		client, err := NewClient(WithTimeout(50 * time.Millisecond))
		if err != nil {
			t.Fatalf("failed to create client: %v", err)
		}

		_, err = client.Fetch(context.Background(), server.URL)
		var fe *FetchError
		if !errors.As(err, &fe) {
			t.Fatalf("expected *FetchError, got %v", err)
		}
		if fe.Kind != KindTimeout {
			t.Errorf("expected timeout, got %s (%v)", fe.Kind, err)
		}
	})

	t.Run("refused connection is a network error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.NotFoundHandler())
		addr := server.URL
		server.Close()

		client, err := NewClient()
		if err != nil {
			t.Fatalf("failed to create client: %v", err)
		}

		_, err = client.Fetch(context.Background(), addr)
		var fe *FetchError
		if !errors.As(err, &fe) {
			t.Fatalf("expected *FetchError, got %v", err)
		}
		if fe.Kind != KindNetwork {
			t.Errorf("expected network error, got %s (%v)", fe.Kind, err)
		}
	})

	t.Run("unusable URLs are request errors", func(t *testing.T) {
		t.Parallel()

		client, err := NewClient()
		if err != nil {
			t.Fatalf("failed to create client: %v", err)
		}

		for _, raw := range []string{"ftp://example.test/", "http://", "example.test", "http://[::1"} {
			_, err := client.Fetch(context.Background(), raw)
			var fe *FetchError
			if !errors.As(err, &fe) {
				t.Fatalf("%q: expected *FetchError, got %v", raw, err)
			}
			if fe.Kind != KindRequest {
				t.Errorf("%q: expected request error, got %s", raw, fe.Kind)
			}
		}
	})

	t.Run("onion hosts are checked before dialing", func(t *testing.T) {
		t.Parallel()

		client, err := NewClient()
		if err != nil {
			t.Fatalf("failed to create client: %v", err)
		}

		_, err = client.Fetch(context.Background(), "http://nope.onion/")
		if !errors.Is(err, tor.ErrInvalidOnionAddress) {
			t.Errorf("expected ErrInvalidOnionAddress, got %v", err)
		}

		addr, err := tor.V3AddressFromPublicKey(make([]byte, 32))
		if err != nil {
			t.Fatalf("failed to derive address: %v", err)
		}
		_, err = client.Fetch(context.Background(), "http://"+addr+"/")
		var fe *FetchError
		if !errors.As(err, &fe) || fe.Kind != KindRequest {
			t.Fatalf("expected request error, got %v", err)
		}
		if !errors.Is(err, tor.ErrOnionWithoutProxy) {
			t.Errorf("expected ErrOnionWithoutProxy, got %v", err)
		}
	})

	t.Run("cancelled context aborts the request", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer server.Close()

		client, err := NewClient()
		if err != nil {
			t.Fatalf("failed to create client: %v", err)
		}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err = client.Fetch(ctx, server.URL)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled in chain, got %v", err)
		}
	})
}

// TestSiteConfigInjection tests per-host cookies and headers.
func TestSiteConfigInjection(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "%s|%s|%s", r.Header.Get("Cookie"), r.Header.Get("Accept-Language"), r.Header.Get("X-Default"))
	}))
	defer server.Close()

	sites := &config.File{
		Sites: map[string]config.SiteConfig{
			"127.0.0.1": {
				Cookie:  "session=abc",
				Headers: map[string]string{"Accept-Language": "ru"},
			},
		},
		Defaults: config.SiteConfig{Headers: map[string]string{"X-Default": "yes"}},
	}

	client, err := NewClient(WithSiteConfigs(sites))
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	page, err := client.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if page.Body != "session=abc|ru|yes" {
		t.Errorf("expected cookie, site header and default header, got %q", page.Body)
	}
}

// TestNewClient tests client construction.
func TestNewClient(t *testing.T) {
	t.Parallel()

	t.Run("invalid proxy address is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := NewClient(WithProxy("not-an-address"))
		if !errors.Is(err, config.ErrInvalidProxyAddress) {
			t.Errorf("expected ErrInvalidProxyAddress, got %v", err)
		}
	})

	t.Run("valid proxy address builds a client", func(t *testing.T) {
		t.Parallel()

		if _, err := NewClient(WithProxy("127.0.0.1:9050")); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("from config", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.UserAgent = "from-config"
		client, err := NewClientFromConfig(cfg, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if client.userAgent != "from-config" {
			t.Errorf("expected user agent from config, got %q", client.userAgent)
		}
		if client.httpClient.Timeout != config.DefaultTimeout {
			t.Errorf("expected default timeout, got %v", client.httpClient.Timeout)
		}
	})
}

// TestKindString tests Kind names.
func TestKindString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind Kind
		want string
	}{
		{KindRequest, "request"},
		{KindNetwork, "network"},
		{KindTimeout, "timeout"},
		{KindStatus, "status"},
		{Kind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

// TestDecodeBody tests charset handling without a server.
func TestDecodeBody(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		body        []byte
		contentType string
		want        string
	}{
		{name: "utf-8 without declaration", body: []byte("Привіт"), contentType: "text/html", want: "Привіт"},
		{name: "meta declaration", body: append([]byte(`<meta charset="koi8-r">`), 0xF0, 0xD2, 0xC9, 0xD7, 0xC5, 0xD4), contentType: "text/html", want: `<meta charset="koi8-r">Привет`},
		{name: "header wins over meta", body: append([]byte(`<meta charset="koi8-r">`), 0xCF, 0xF0, 0xE8, 0xE2, 0xE5, 0xF2), contentType: "text/html; charset=windows-1251", want: `<meta charset="koi8-r">Привет`},
		{name: "empty", body: nil, contentType: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := decodeBody(tt.body, tt.contentType); got != tt.want {
				t.Errorf("decodeBody() = %q, want %q", got, tt.want)
			}
		})
	}
}
