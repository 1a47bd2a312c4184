package app

import (
	"errors"
	"fmt"
	"net/url"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	CatalogPath string // extra operator .hcl files, on top of the built-in manifests
	GraphPath   string // graph script .hcl files
	LayoutOut   string // .hcl, .yaml or .yml; empty disables

	LogFormat  string
	LogLevel   string
	StatusPort int

	RelayURL       string
	RelayNamespace string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.GraphPath == "" {
		return nil, errors.New("GraphPath is a required configuration field and cannot be empty")
	}
	if cfg.StatusPort < 0 || cfg.StatusPort > 65535 {
		return nil, fmt.Errorf("StatusPort %d is out of range", cfg.StatusPort)
	}
	if cfg.RelayURL != "" {
		u, err := url.Parse(cfg.RelayURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("RelayURL %q must be an absolute URL", cfg.RelayURL)
		}
		if cfg.RelayNamespace == "" {
			cfg.RelayNamespace = "/"
		}
	}
	return &cfg, nil
}
