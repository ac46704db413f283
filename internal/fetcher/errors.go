package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// Fetch errors.
var (
	// ErrUnsupportedScheme is returned for URLs that are not http or https.
	ErrUnsupportedScheme = errors.New("unsupported URL scheme: expected http or https")

	// ErrBadStatus is wrapped by FetchError when the server answers with a
	// non-2xx status code.
	ErrBadStatus = errors.New("unexpected HTTP status")
)

// Kind classifies a fetch failure.
type Kind int

const (
	// KindRequest means the request could not be built: malformed URL,
	// missing host or an unsupported scheme.
	KindRequest Kind = iota

	// KindNetwork means the connection failed: DNS, refused connection,
	// TLS, proxy or a broken body.
	KindNetwork

	// KindTimeout means the configured timeout elapsed.
	KindTimeout

	// KindStatus means the server answered with a non-2xx status.
	KindStatus
)

// String returns a short name for the kind.
func (k Kind) String() string {
	switch k {
	case KindRequest:
		return "request"
	case KindNetwork:
		return "network"
	case KindTimeout:
		return "timeout"
	case KindStatus:
		return "status"
	default:
		return "unknown"
	}
}

// FetchError describes why a page could not be retrieved.
type FetchError struct {
	// URL is the address that was requested.
	URL string

	// Kind classifies the failure.
	Kind Kind

	// StatusCode is set for KindStatus.
	StatusCode int

	// Err is the underlying cause.
	Err error
}

// Error implements error.
func (e *FetchError) Error() string {
	if e.Kind == KindStatus {
		return fmt.Sprintf("fetch %s: %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Kind, e.Err)
}

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// classify maps an error returned by http.Client.Do or a body read to a Kind.
func classify(err error) Kind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}
	return KindNetwork
}
