package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig is the single-file configuration schema. Nested sections map
// naturally to the flags in cmd/goquote.
type FileConfig struct {
	Listen string `yaml:"listen" json:"listen"`

	Media struct {
		Dir    string `yaml:"dir" json:"dir"`
		Prefix string `yaml:"prefix" json:"prefix"`
	} `yaml:"media" json:"media"`

	Transport struct {
		UserAgent    string        `yaml:"userAgent" json:"userAgent"`
		Proxy        string        `yaml:"proxy" json:"proxy"`
		PageTimeout  time.Duration `yaml:"pageTimeout" json:"pageTimeout"`
		ImageTimeout time.Duration `yaml:"imageTimeout" json:"imageTimeout"`
	} `yaml:"transport" json:"transport"`

	Verbose bool `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for any fields
// still at their flag defaults, so file config supplies defaults while
// explicit flags win.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if (cfg.ListenAddr == "" || cfg.ListenAddr == DefaultListenAddr) && fc.Listen != "" {
		cfg.ListenAddr = fc.Listen
	}
	if (cfg.MediaDir == "" || cfg.MediaDir == DefaultMediaDir) && fc.Media.Dir != "" {
		cfg.MediaDir = fc.Media.Dir
	}
	if (cfg.MediaPrefix == "" || cfg.MediaPrefix == DefaultMediaPrefix) && fc.Media.Prefix != "" {
		cfg.MediaPrefix = fc.Media.Prefix
	}
	if (cfg.UserAgent == "" || cfg.UserAgent == DefaultUserAgent) && fc.Transport.UserAgent != "" {
		cfg.UserAgent = fc.Transport.UserAgent
	}
	if cfg.ProxyURL == "" && fc.Transport.Proxy != "" {
		cfg.ProxyURL = fc.Transport.Proxy
	}
	if (cfg.PageTimeout == 0 || cfg.PageTimeout == DefaultPageTimeout) && fc.Transport.PageTimeout > 0 {
		cfg.PageTimeout = fc.Transport.PageTimeout
	}
	if (cfg.ImageTimeout == 0 || cfg.ImageTimeout == DefaultImageTimeout) && fc.Transport.ImageTimeout > 0 {
		cfg.ImageTimeout = fc.Transport.ImageTimeout
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
}
