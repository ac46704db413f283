package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultTimeout bounds a single page request. A request that takes
	// longer fails with a timeout error instead of blocking the prompt.
	DefaultTimeout = 15 * time.Second

	// DefaultUserAgent is the fixed client identifier sent with every request.
	DefaultUserAgent = "TextBrowser/3.0 (MultiLang)"

	// DefaultMaxBodySize limits the response body read for one page.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// DefaultTorStartupTimeout is the maximum time to wait for the embedded
	// Tor daemon to bootstrap when --tor is given.
	DefaultTorStartupTimeout = 3 * time.Minute

	// AppName is the application name used for XDG directory paths.
	AppName = "cmdowser"
)

// supportedLanguages mirrors the locales shipped in internal/i18n.
// It is duplicated here so that config validation does not depend on the
// catalog package.
var supportedLanguages = map[string]bool{
	"en": true,
	"ru": true,
	"uk": true,
}

// Config holds all configuration options for a browsing session.
// It is populated from defaults, then the YAML file, then CLI flags,
// and passed to the components that need it.
type Config struct {
	// Language is the initial interface language ("en", "ru" or "uk").
	// Empty means detect from the OS locale.
	Language string

	// Timeout is the per-request timeout for page fetches.
	Timeout time.Duration

	// UserAgent is the User-Agent header sent with every request.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	MaxBodySize int64

	// ProxyAddress is an optional SOCKS5 proxy in "host:port" format.
	// Empty means direct connections.
	ProxyAddress string

	// UseTor starts an embedded Tor daemon and routes all requests through it.
	// Mutually exclusive with ProxyAddress.
	UseTor bool

	// TorStartupTimeout is the bootstrap timeout for the embedded Tor daemon.
	TorStartupTimeout time.Duration

	// Record enables the SQLite visit log. Off by default: a session
	// leaves nothing on disk unless asked to.
	Record bool

	// DBDir is the directory holding the visit log database.
	DBDir string

	// Verbose enables debug logging on stderr.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, .cmdowser is searched in the current and home directories.
	ConfigFilePath string

	// SiteConfigs holds per-host request settings loaded from the config file.
	SiteConfigs *File

	// StartURL is an optional URL given on the command line. When set,
	// the browser opens it instead of asking for the first URL.
	StartURL string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Timeout:           DefaultTimeout,
		UserAgent:         DefaultUserAgent,
		MaxBodySize:       DefaultMaxBodySize,
		TorStartupTimeout: DefaultTorStartupTimeout,
		DBDir:             XDGDataDir(),
		SiteConfigs:       &File{Sites: make(map[string]SiteConfig)},
	}
}

// XDGDataDir returns the XDG data directory for cmdowser.
// On Linux: ~/.local/share/cmdowser
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for cmdowser.
// On Linux: ~/.config/cmdowser
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// IsSupportedLanguage reports whether code names a shipped translation.
func IsSupportedLanguage(code string) bool {
	return supportedLanguages[code]
}

// ApplyFile copies the global settings of a configuration file into c.
// Values already changed from their defaults by the caller are kept, so
// flags parsed before the file still win.
func (c *Config) ApplyFile(f *File) {
	if f == nil {
		return
	}
	c.SiteConfigs = f

	if c.Language == "" && f.Language != "" {
		c.Language = f.Language
	}
	if c.Timeout == DefaultTimeout && f.Timeout != 0 {
		c.Timeout = f.Timeout
	}
	if c.UserAgent == DefaultUserAgent && f.UserAgent != "" {
		c.UserAgent = f.UserAgent
	}
	if c.ProxyAddress == "" && f.Proxy != "" {
		c.ProxyAddress = f.Proxy
	}
	if !c.Record && f.Record {
		c.Record = true
	}
}

// Validate checks if the configuration is valid.
// It returns the first problem found.
func (c *Config) Validate() error {
	if c.Language != "" && !IsSupportedLanguage(c.Language) {
		return ErrInvalidLanguage
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.UserAgent == "" {
		return ErrEmptyUserAgent
	}

	if c.MaxBodySize <= 0 {
		return ErrInvalidMaxBodySize
	}

	if c.UseTor && c.ProxyAddress != "" {
		return ErrConflictingProxy
	}

	if c.ProxyAddress != "" && !IsValidProxyAddress(c.ProxyAddress) {
		return ErrInvalidProxyAddress
	}

	if c.UseTor && c.TorStartupTimeout <= 0 {
		return ErrInvalidTorTimeout
	}

	if c.Record && c.DBDir == "" {
		return ErrNoDBDir
	}

	return nil
}
