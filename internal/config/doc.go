// Package config provides configuration structures and utilities for cmdowser.
// It defines request settings, the interface language and the optional
// visit log, together with the YAML configuration file loader.
package config
