package fetcher

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/nao1215/cmdowser/internal/config"
	"github.com/nao1215/cmdowser/internal/tor"
	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"
	"golang.org/x/net/proxy"
	"golang.org/x/text/encoding"
)

// maxRedirects is the number of redirects followed before the last
// response is returned as is.
const maxRedirects = 10

// Page is the result of a successful fetch.
type Page struct {
	// URL is the address that was requested.
	URL string

	// FinalURL is the address of the last response after redirects.
	// Relative links on the page resolve against it.
	FinalURL string

	// StatusCode is the HTTP status code of the final response.
	StatusCode int

	// ContentType is the Content-Type header of the final response.
	ContentType string

	// Body is the response body decoded to UTF-8.
	Body string
}

// Client fetches pages over HTTP.
type Client struct {
	httpClient  *http.Client
	userAgent   string
	maxBodySize int64

	// proxied is set when connections leave through a proxy, which is
	// required for onion hosts.
	proxied bool
}

// settings collects the values set by Options before the Client is built.
type settings struct {
	timeout      time.Duration
	userAgent    string
	maxBodySize  int64
	proxyAddress string
	sites        *config.File
	transport    http.RoundTripper
}

// Option configures a Client.
type Option func(*settings)

// WithTimeout sets the per-request timeout, redirects and body included.
func WithTimeout(d time.Duration) Option {
	return func(s *settings) {
		s.timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(s *settings) {
		s.userAgent = ua
	}
}

// WithMaxBodySize sets how many body bytes are read per page.
func WithMaxBodySize(size int64) Option {
	return func(s *settings) {
		s.maxBodySize = size
	}
}

// WithProxy routes all connections through a SOCKS5 proxy at "host:port".
func WithProxy(address string) Option {
	return func(s *settings) {
		s.proxyAddress = address
	}
}

// WithSiteConfigs adds per-host cookies and headers to requests.
func WithSiteConfigs(f *config.File) Option {
	return func(s *settings) {
		s.sites = f
	}
}

// WithTransport replaces the base transport. The proxy option is ignored
// when a transport is given.
func WithTransport(rt http.RoundTripper) Option {
	return func(s *settings) {
		s.transport = rt
	}
}

// NewClient creates a Client. Without options it uses the defaults from
// the config package and connects directly.
func NewClient(opts ...Option) (*Client, error) {
	s := &settings{
		timeout:     config.DefaultTimeout,
		userAgent:   config.DefaultUserAgent,
		maxBodySize: config.DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(s)
	}

	base := s.transport
	if base == nil {
		t, err := newTransport(s.proxyAddress)
		if err != nil {
			return nil, err
		}
		base = t
	}
	if s.sites != nil {
		base = &headerInjectingTransport{base: base, sites: s.sites}
	}

	jar, _ := cookiejar.New(nil) //nolint:errcheck // cookiejar.New only fails with invalid options

	return &Client{
		httpClient: &http.Client{
			Transport: base,
			Timeout:   s.timeout,
			Jar:       jar,
			CheckRedirect: func(_ *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return http.ErrUseLastResponse
				}
				return nil
			},
		},
		userAgent:   s.userAgent,
		maxBodySize: s.maxBodySize,
		proxied:     s.proxyAddress != "" || s.transport != nil,
	}, nil
}

// NewClientFromConfig creates a Client from session configuration.
// proxyAddress overrides cfg.ProxyAddress when not empty, which is how the
// embedded Tor daemon's SOCKS port is passed in.
func NewClientFromConfig(cfg *config.Config, proxyAddress string) (*Client, error) {
	if proxyAddress == "" {
		proxyAddress = cfg.ProxyAddress
	}
	return NewClient(
		WithTimeout(cfg.Timeout),
		WithUserAgent(cfg.UserAgent),
		WithMaxBodySize(cfg.MaxBodySize),
		WithProxy(proxyAddress),
		WithSiteConfigs(cfg.SiteConfigs),
	)
}

// newTransport clones the default transport and, when proxyAddress is set,
// dials through a SOCKS5 proxy.
func newTransport(proxyAddress string) (*http.Transport, error) {
	transport, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		transport = &http.Transport{}
	} else {
		transport = transport.Clone()
	}
	if proxyAddress == "" {
		return transport, nil
	}

	if !config.IsValidProxyAddress(proxyAddress) {
		return nil, config.ErrInvalidProxyAddress
	}
	// Tor's SOCKS port does not require auth.
	dialer, err := proxy.SOCKS5("tcp", proxyAddress, nil, proxy.Direct)
	if err != nil {
		return nil, fmt.Errorf("failed to create SOCKS5 dialer: %w", err)
	}

	transport.Proxy = nil
	if cd, ok := dialer.(proxy.ContextDialer); ok {
		transport.DialContext = cd.DialContext
	} else {
		transport.DialContext = func(_ context.Context, network, addr string) (net.Conn, error) {
			return dialer.Dial(network, addr)
		}
	}
	return transport, nil
}

// Fetch performs a single GET for rawURL and returns the decoded page.
// Any non-2xx final status is an error of KindStatus.
func (c *Client) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Kind: KindRequest, Err: err}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, &FetchError{URL: rawURL, Kind: KindRequest, Err: ErrUnsupportedScheme}
	}
	if u.Host == "" {
		return nil, &FetchError{URL: rawURL, Kind: KindRequest, Err: fmt.Errorf("missing host in %q", rawURL)}
	}
	if host := u.Hostname(); tor.IsOnionHost(host) {
		if err := tor.CheckOnionHost(host); err != nil {
			return nil, &FetchError{URL: rawURL, Kind: KindRequest, Err: err}
		}
		if !c.proxied {
			return nil, &FetchError{URL: rawURL, Kind: KindRequest, Err: tor.ErrOnionWithoutProxy}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Kind: KindRequest, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Kind: classify(err), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{
			URL:        rawURL,
			Kind:       KindStatus,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%w: %s", ErrBadStatus, resp.Status),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize))
	if err != nil {
		return nil, &FetchError{URL: rawURL, Kind: classify(err), Err: err}
	}

	contentType := resp.Header.Get("Content-Type")
	return &Page{
		URL:         rawURL,
		FinalURL:    resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		Body:        decodeBody(body, contentType),
	}, nil
}

// decodeBody converts body to UTF-8 using the charset declared in the
// Content-Type header or the document itself. Undeclared non-UTF-8 bodies
// are run through a statistical detector, since older Cyrillic sites often
// omit the declaration. Bytes that still do not form valid UTF-8 are
// replaced with U+FFFD.
func decodeBody(body []byte, contentType string) string {
	enc, name, certain := charset.DetermineEncoding(body, contentType)
	if !certain && name == fallbackCharset {
		if detected := detectEncoding(body); detected != nil {
			enc = detected
		}
	}
	if decoded, err := enc.NewDecoder().Bytes(body); err == nil {
		body = decoded
	}
	return strings.ToValidUTF8(string(body), "\uFFFD")
}

// fallbackCharset is what charset.DetermineEncoding reports when it found
// neither a declaration nor valid UTF-8.
const fallbackCharset = "windows-1252"

// detectEncoding guesses the encoding of body. It returns nil when the
// guess is unknown to the charset package.
func detectEncoding(body []byte) encoding.Encoding {
	result, err := chardet.NewTextDetector().DetectBest(body)
	if err != nil {
		return nil
	}
	enc, _ := charset.Lookup(result.Charset)
	return enc
}

// headerInjectingTransport wraps an http.RoundTripper to add the cookie
// and headers configured for the request's host.
type headerInjectingTransport struct {
	base  http.RoundTripper
	sites *config.File
}

// RoundTrip implements http.RoundTripper.
func (t *headerInjectingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	site := t.sites.GetSiteConfig(req.URL.Hostname())
	if site.Cookie == "" && len(site.Headers) == 0 {
		return t.base.RoundTrip(req)
	}

	// RoundTrippers must not modify the caller's request.
	clone := req.Clone(req.Context())
	if site.Cookie != "" {
		if existing := clone.Header.Get("Cookie"); existing != "" {
			clone.Header.Set("Cookie", existing+"; "+site.Cookie)
		} else {
			clone.Header.Set("Cookie", site.Cookie)
		}
	}
	for key, value := range site.Headers {
		clone.Header.Set(key, value)
	}

	return t.base.RoundTrip(clone)
}
