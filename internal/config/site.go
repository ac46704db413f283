package config

import (
	"maps"
	"net"
	"strconv"
	"strings"
	"time"
)

// SiteConfig holds request settings for a single host.
type SiteConfig struct {
	// Cookie is an HTTP cookie sent to this host.
	// Format: "name=value" or "name1=value1; name2=value2"
	Cookie string `yaml:"cookie,omitempty"`

	// Headers are extra HTTP headers sent to this host.
	Headers map[string]string `yaml:"headers,omitempty"`
}

// File represents the structure of the .cmdowser configuration file.
type File struct {
	// Language is the initial interface language.
	Language string `yaml:"language,omitempty"`

	// Timeout is the per-request timeout, e.g. "20s".
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// UserAgent replaces the default User-Agent header.
	UserAgent string `yaml:"userAgent,omitempty"`

	// Proxy is a SOCKS5 proxy address in "host:port" format.
	Proxy string `yaml:"proxy,omitempty"`

	// Record enables the visit log.
	Record bool `yaml:"record,omitempty"`

	// Sites maps host names (without scheme, e.g. "example.com") to their
	// request settings.
	Sites map[string]SiteConfig `yaml:"sites,omitempty"`

	// Defaults are applied to every host unless overridden in Sites.
	Defaults SiteConfig `yaml:"defaults,omitempty"`
}

// GetSiteConfig returns the request settings for host, merged with defaults.
// Host matching ignores case and a leading "www.".
func (cf *File) GetSiteConfig(host string) SiteConfig {
	result := SiteConfig{Cookie: cf.Defaults.Cookie}
	if len(cf.Defaults.Headers) > 0 {
		result.Headers = maps.Clone(cf.Defaults.Headers)
	}

	siteConfig, ok := cf.lookup(host)
	if !ok {
		return result
	}

	if siteConfig.Cookie != "" {
		result.Cookie = siteConfig.Cookie
	}
	if len(siteConfig.Headers) > 0 {
		if result.Headers == nil {
			result.Headers = make(map[string]string, len(siteConfig.Headers))
		}
		maps.Copy(result.Headers, siteConfig.Headers)
	}
	return result
}

func (cf *File) lookup(host string) (SiteConfig, bool) {
	host = strings.ToLower(host)
	if sc, ok := cf.Sites[host]; ok {
		return sc, true
	}
	if bare, found := strings.CutPrefix(host, "www."); found {
		if sc, ok := cf.Sites[bare]; ok {
			return sc, true
		}
	}
	return SiteConfig{}, false
}

// IsValidProxyAddress checks that address is "host:port" with a port in 1-65535.
func IsValidProxyAddress(address string) bool {
	host, port, err := net.SplitHostPort(address)
	if err != nil || host == "" {
		return false
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return false
	}
	return n >= 1 && n <= 65535
}
