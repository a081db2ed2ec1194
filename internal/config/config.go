package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// TransportMode selects how the server accepts protocol messages.
type TransportMode string

const (
	// TransportStdio serves a single client over the process pipes.
	TransportStdio TransportMode = "stdio"
	// TransportHTTP serves clients over a network listener.
	TransportHTTP TransportMode = "http"
)

// AppConfig is the explicit configuration passed at construction. Core
// packages never read the process environment; everything is resolved here.
type AppConfig struct {
	// Transport mode: stdio (default) or http.
	Transport TransportMode

	// Listener address, http transport only.
	Host string
	Port string

	// HTTPTimeout bounds each outbound provider call.
	HTTPTimeout time.Duration

	// HourlySampleSize is the number of hourly points included in
	// historical tool output.
	HourlySampleSize int

	// ProbeInterval is how often the upstream reachability probe runs.
	// Zero disables the probe.
	ProbeInterval time.Duration
}

// fileConfig mirrors AppConfig for the optional YAML file; durations are
// strings so "30s"/"5m" work.
type fileConfig struct {
	Transport        string `yaml:"transport"`
	Host             string `yaml:"host"`
	Port             string `yaml:"port"`
	HTTPTimeout      string `yaml:"httpTimeout"`
	HourlySampleSize *int   `yaml:"hourlySampleSize"`
	ProbeInterval    string `yaml:"probeInterval"`
}

// Load builds the AppConfig: defaults, then the optional YAML file at path,
// then environment variables on top.
func Load(path string) (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{
		Transport:        TransportStdio,
		Host:             "0.0.0.0",
		Port:             "8080",
		HTTPTimeout:      30 * time.Second,
		HourlySampleSize: 5,
		ProbeInterval:    0,
	}

	if path != "" {
		if err := applyFile(cfg, path); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	switch cfg.Transport {
	case TransportStdio, TransportHTTP:
	default:
		return nil, fmt.Errorf("invalid transport %q: must be stdio or http", cfg.Transport)
	}
	if cfg.HTTPTimeout <= 0 {
		return nil, fmt.Errorf("httpTimeout must be positive")
	}
	if cfg.HourlySampleSize < 0 {
		return nil, fmt.Errorf("hourlySampleSize must not be negative")
	}

	return cfg, nil
}

func applyFile(cfg *AppConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	if fc.Transport != "" {
		cfg.Transport = TransportMode(fc.Transport)
	}
	if fc.Host != "" {
		cfg.Host = fc.Host
	}
	if fc.Port != "" {
		cfg.Port = fc.Port
	}
	if fc.HTTPTimeout != "" {
		d, err := time.ParseDuration(fc.HTTPTimeout)
		if err != nil {
			return fmt.Errorf("invalid httpTimeout in config file: %w", err)
		}
		cfg.HTTPTimeout = d
	}
	if fc.HourlySampleSize != nil {
		cfg.HourlySampleSize = *fc.HourlySampleSize
	}
	if fc.ProbeInterval != "" {
		d, err := time.ParseDuration(fc.ProbeInterval)
		if err != nil {
			return fmt.Errorf("invalid probeInterval in config file: %w", err)
		}
		cfg.ProbeInterval = d
	}
	return nil
}

func applyEnv(cfg *AppConfig) error {
	if v := os.Getenv("TRANSPORT"); v != "" {
		cfg.Transport = TransportMode(v)
	}
	cfg.Host = getenvDefault("HOST", cfg.Host)
	cfg.Port = getenvDefault("PORT", cfg.Port)

	if v := os.Getenv("HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
		}
		cfg.HTTPTimeout = d
	}

	cfg.HourlySampleSize = getenvInt("HOURLY_SAMPLE_SIZE", cfg.HourlySampleSize)

	if v := os.Getenv("PROBE_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid PROBE_INTERVAL: %w", err)
		}
		cfg.ProbeInterval = d
	}
	return nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
