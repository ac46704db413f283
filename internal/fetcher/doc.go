// Package fetcher retrieves a single web page for display.
//
// A Client is built once per session and reused for every request. It owns
// an http.Client with a cookie jar, a redirect limit and an optional SOCKS5
// proxy (a user-supplied one or the embedded Tor daemon). Per-host cookies
// and headers from the configuration file are added to every request by a
// wrapping RoundTripper, redirects included.
//
// Every failure is reported as a *FetchError whose Kind tells the caller
// how to describe it to the user. Fetch never retries.
package fetcher
