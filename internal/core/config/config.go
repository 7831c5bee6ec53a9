// Package config loads service configuration from the environment,
// optionally layered over a YAML file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr             string
	LogLevel         string
	PortalURL        string
	RequestTimeout   time.Duration
	DefaultCRS       int
	DefaultPrecision int
}

func Default() Config {
	return Config{
		Addr:             ":8090",
		LogLevel:         "info",
		PortalURL:        "https://ons-inspire.esriuk.com/arcgis/rest/services",
		RequestTimeout:   30 * time.Second,
		DefaultCRS:       27700,
		DefaultPrecision: 5,
	}
}

// FromEnv builds the config from environment variables. When CONFIG_FILE
// is set the named YAML file is applied first and the environment
// overrides it.
func FromEnv() (Config, error) {
	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return Config{}, err
		}
	}
	cfg.Addr = getenv("ADDR", cfg.Addr)
	cfg.LogLevel = getenv("LOG_LEVEL", cfg.LogLevel)
	cfg.PortalURL = getenv("PORTAL_URL", cfg.PortalURL)
	cfg.RequestTimeout = getduration("REQUEST_TIMEOUT", cfg.RequestTimeout)
	cfg.DefaultCRS = getint("DEFAULT_CRS", cfg.DefaultCRS)
	cfg.DefaultPrecision = getint("DEFAULT_PRECISION", cfg.DefaultPrecision)
	return cfg, nil
}

type fileConfig struct {
	Addr             string `yaml:"addr,omitempty"`
	LogLevel         string `yaml:"log_level,omitempty"`
	PortalURL        string `yaml:"portal_url,omitempty"`
	RequestTimeout   string `yaml:"request_timeout,omitempty"`
	DefaultCRS       int    `yaml:"default_crs,omitempty"`
	DefaultPrecision int    `yaml:"default_precision,omitempty"`
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	if fc.Addr != "" {
		c.Addr = fc.Addr
	}
	if fc.LogLevel != "" {
		c.LogLevel = fc.LogLevel
	}
	if fc.PortalURL != "" {
		c.PortalURL = fc.PortalURL
	}
	if fc.RequestTimeout != "" {
		d, err := time.ParseDuration(fc.RequestTimeout)
		if err != nil {
			return fmt.Errorf("parse request_timeout: %w", err)
		}
		c.RequestTimeout = d
	}
	if fc.DefaultCRS != 0 {
		c.DefaultCRS = fc.DefaultCRS
	}
	if fc.DefaultPrecision != 0 {
		c.DefaultPrecision = fc.DefaultPrecision
	}
	return nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getduration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
