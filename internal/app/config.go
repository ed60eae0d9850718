package app

import (
	"errors"
	"strings"
	"time"
)

// Config holds runtime configuration for the service.
type Config struct {
	// HTTP
	ListenAddr string

	// Media storage
	MediaDir    string
	MediaPrefix string

	// Transport
	UserAgent        string
	ProxyURL         string
	PageTimeout      time.Duration
	ImageTimeout     time.Duration

	// Behavior
	Verbose bool
}

// Defaults mirrored by the flag definitions in cmd/goquote.
const (
	DefaultListenAddr   = ":8080"
	DefaultMediaDir     = "media"
	DefaultMediaPrefix  = "/media/"
	DefaultUserAgent    = "goquote/1.0 (+https://github.com/hyperifyio/goquote)"
	DefaultPageTimeout  = 45 * time.Second
	DefaultImageTimeout = 12 * time.Second
)

// ValidateConfig performs minimal schema validation for required settings.
func ValidateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.ListenAddr) == "" {
		return errors.New("config: listen address is required")
	}
	if strings.TrimSpace(cfg.MediaDir) == "" {
		return errors.New("config: media directory is required")
	}
	if !strings.HasPrefix(cfg.MediaPrefix, "/") {
		return errors.New("config: media prefix must start with /")
	}
	if cfg.PageTimeout < 0 || cfg.ImageTimeout < 0 {
		return errors.New("config: negative timeouts are not allowed")
	}
	return nil
}
