// Package tor lets the browser reach the Tor network.
//
// Daemon starts an embedded Tor process with tornago and exposes its SOCKS5
// address, which the fetcher dials through. The onion helpers validate
// .onion host names before any request is made, so a mistyped v3 address
// fails immediately instead of after a long circuit timeout.
package tor
