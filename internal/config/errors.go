package config

import "errors"

// Configuration validation errors returned by Config.Validate.
// Callers match them with errors.Is.
var (
	// ErrInvalidLanguage is returned when --lang or the config file names a
	// language without a built-in translation.
	ErrInvalidLanguage = errors.New("invalid language: available languages are en, ru, uk")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrEmptyUserAgent is returned when the User-Agent is blank.
	ErrEmptyUserAgent = errors.New("invalid user agent: must not be empty")

	// ErrInvalidMaxBodySize is returned when the body size limit is not positive.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be positive")

	// ErrConflictingProxy is returned when both --tor and --proxy are given.
	ErrConflictingProxy = errors.New("conflicting proxy settings: --tor and --proxy cannot be used together")

	// ErrInvalidProxyAddress is returned when the proxy is not "host:port".
	ErrInvalidProxyAddress = errors.New("invalid proxy address format: expected host:port")

	// ErrInvalidTorTimeout is returned when the Tor bootstrap timeout is not positive.
	ErrInvalidTorTimeout = errors.New("invalid tor startup timeout: must be positive")

	// ErrNoDBDir is returned when recording is enabled without a database directory.
	ErrNoDBDir = errors.New("visit recording enabled but no database directory is set")
)
