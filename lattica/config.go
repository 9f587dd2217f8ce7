// Copyright (C) The Lattica Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package lattica

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dario.cat/mergo"
	"github.com/ghodss/yaml"
)

// Config is the client-side configuration, normally loaded from
// ~/.config/lattica/config.yml.
type Config struct {
	// Protocol scheme: "http" or "https" (default https).
	Scheme string `json:"Scheme"`

	// Hostname (or host:port) of the Lattica API server.
	APIHost string `json:"APIHost"`

	// API key used to authenticate requests.
	AuthToken string `json:"AuthToken"`

	// Accept unverified certificates.
	Insecure bool `json:"Insecure"`

	// Per-request timeout.
	Timeout Duration `json:"Timeout"`

	// Default listing page size.
	PerPage int `json:"PerPage"`

	// Default interval between status polls.
	PollInterval Duration `json:"PollInterval"`
}

// DefaultConfig returns the configuration used when a value is not
// given by the config file or environment.
func DefaultConfig() Config {
	return Config{
		Scheme:       "https",
		Timeout:      Duration(5 * time.Minute),
		PerPage:      DefaultPerPage,
		PollInterval: Duration(5 * time.Second),
	}
}

// DefaultConfigPath returns the conventional location of the client
// config file.
func DefaultConfigPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "lattica", "config.yml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "lattica", "config.yml")
}

// LoadConfig loads configuration from the given YAML file, fills
// unset values from DefaultConfig, and finally applies LATTICA_*
// environment variable overrides. A missing file is not an error:
// defaults and environment are still applied.
func LoadConfig(path string) (*Config, error) {
	cfg := Config{}
	if path != "" {
		buf, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, err
		} else if err == nil {
			if err := yaml.Unmarshal(buf, &cfg); err != nil {
				return nil, fmt.Errorf("error decoding config %q: %s", path, err)
			}
		}
	}
	if err := mergo.Merge(&cfg, DefaultConfig()); err != nil {
		return nil, err
	}
	if v := os.Getenv("LATTICA_API_HOST"); v != "" {
		cfg.APIHost = v
	}
	if v := os.Getenv("LATTICA_API_TOKEN"); v != "" {
		cfg.AuthToken = v
	}
	switch os.Getenv("LATTICA_API_HOST_INSECURE") {
	case "1", "yes", "true":
		cfg.Insecure = true
	}
	return &cfg, nil
}
