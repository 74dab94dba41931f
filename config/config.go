// Package config loads the endpoints and limits used to talk to the Pi
// platform API and the Horizon ledger servers.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/vitwit/pinetwork/types"
)

const envPrefix = "PI_BACKEND_"

const (
	DefaultTimebounds = 180
	DefaultTimeoutMS  = 20000
)

type Config struct {
	HorizonMainnetURL        string `koanf:"horizon_mainnet_url" validate:"required,url"`
	HorizonMainnetPassphrase string `koanf:"horizon_mainnet_passphrase" validate:"required"`
	HorizonTestnetURL        string `koanf:"horizon_testnet_url" validate:"required,url"`
	HorizonTestnetPassphrase string `koanf:"horizon_testnet_passphrase" validate:"required"`

	// DefaultTimebounds is the validity window of built transactions, in seconds.
	DefaultTimebounds int64 `koanf:"horizon_default_timebounds" validate:"required,gt=0"`
	TimeoutMS         int   `koanf:"horizon_timeout_ms" validate:"required,gt=0"`

	PlatformBaseURL string `koanf:"platform_base_url" validate:"required,url"`

	LogLevel      string `koanf:"log_level"`
	EnableMetrics bool   `koanf:"enable_metrics"`
}

// Default returns the public Pi Network endpoints.
func Default() *Config {
	return &Config{
		HorizonMainnetURL:        "https://api.mainnet.minepi.com",
		HorizonMainnetPassphrase: types.NetworkMainnet.String(),
		HorizonTestnetURL:        "https://api.testnet.minepi.com",
		HorizonTestnetPassphrase: types.NetworkTestnet.String(),
		DefaultTimebounds:        DefaultTimebounds,
		TimeoutMS:                DefaultTimeoutMS,
		PlatformBaseURL:          "https://api.minepi.com",
		LogLevel:                 "info",
	}
}

// Load reads PI_BACKEND_* variables from the environment, after loading
// .env.<PI_ENV> and .env when present. Timebounds, timeout and log level
// fall back to defaults; every endpoint must be set.
func Load() (*Config, error) {
	loadDotenv()

	k := koanf.New(".")

	defaults := map[string]interface{}{
		"horizon_default_timebounds": DefaultTimebounds,
		"horizon_timeout_ms":         DefaultTimeoutMS,
		"log_level":                  "info",
	}
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load config defaults: %w", err)
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadDotenv() {
	// Missing files are fine; variables may come from the process environment.
	if name := os.Getenv("PI_ENV"); name != "" {
		_ = godotenv.Load(".env." + name)
	}
	_ = godotenv.Load()
}

var validate = validator.New()

// Validate reports the first missing or malformed field.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// IsMainnet reports whether passphrase is the configured mainnet passphrase.
func (c *Config) IsMainnet(passphrase types.NetworkPassphrase) bool {
	return string(passphrase) == c.HorizonMainnetPassphrase
}

// HorizonURL returns the Horizon server for the network a payment settles on.
func (c *Config) HorizonURL(passphrase types.NetworkPassphrase) string {
	if c.IsMainnet(passphrase) {
		return c.HorizonMainnetURL
	}
	return c.HorizonTestnetURL
}

// PlatformAPIURL is the versioned base path of the platform API.
func (c *Config) PlatformAPIURL() string {
	return strings.TrimSuffix(c.PlatformBaseURL, "/") + "/v2"
}

func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}
