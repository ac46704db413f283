package tor

import "errors"

// Tor errors.
var (
	// ErrNotRunning is returned when the embedded daemon is used before Start.
	ErrNotRunning = errors.New("embedded Tor daemon is not running")

	// ErrInvalidOnionAddress is returned when a .onion host is not a valid
	// v3 address (wrong length, alphabet, version or checksum).
	ErrInvalidOnionAddress = errors.New("invalid onion address")

	// ErrV2AddressDeprecated is returned for 16-character v2 addresses,
	// which stopped working in October 2021.
	ErrV2AddressDeprecated = errors.New("v2 onion addresses are deprecated and no longer functional")

	// ErrOnionWithoutProxy is returned when a .onion host is requested on a
	// direct connection.
	ErrOnionWithoutProxy = errors.New("onion addresses need --tor or a SOCKS5 proxy")
)
