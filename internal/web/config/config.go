// Package config loads runtime configuration from environment variables and an
// optional yaml file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the web client.
type Config struct {
	Server  ServerConfig
	Backend BackendConfig
	Session SessionConfig
	CSRF    CSRFConfig
}

// ServerConfig holds HTTP listener configuration.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// BackendConfig points at the comparison backend API. An empty base URL runs
// the client against the in-memory demo backend.
type BackendConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// SessionConfig controls the signed session cookie.
type SessionConfig struct {
	CookieName  string        `mapstructure:"cookie_name"`
	HashKey     string        `mapstructure:"hash_key"`
	BlockKey    string        `mapstructure:"block_key"`
	Secure      bool          `mapstructure:"secure"`
	Lifetime    time.Duration `mapstructure:"lifetime"`
	IdleTimeout time.Duration `mapstructure:"idle_timeout"`
}

// CSRFConfig controls the double-submit CSRF cookie.
type CSRFConfig struct {
	CookieName string `mapstructure:"cookie_name"`
	Secure     bool   `mapstructure:"secure"`
}

// Load reads configuration from environment variables (COMPAREWEB_ prefix) and
// an optional config.yaml next to the binary.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/compareweb/")

	v.SetEnvPrefix("COMPAREWEB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; env vars and defaults apply.
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")

	v.SetDefault("backend.base_url", "")
	v.SetDefault("backend.timeout", "15s")

	v.SetDefault("session.cookie_name", "compareweb_session")
	v.SetDefault("session.hash_key", "")
	v.SetDefault("session.block_key", "")
	v.SetDefault("session.secure", false)
	v.SetDefault("session.lifetime", "720h")
	v.SetDefault("session.idle_timeout", "12h")

	v.SetDefault("csrf.cookie_name", "compareweb_csrf")
	v.SetDefault("csrf.secure", false)
}

func validate(config *Config) error {
	if config.Server.Addr == "" {
		return fmt.Errorf("server addr is required (set COMPAREWEB_SERVER_ADDR)")
	}
	if config.Backend.BaseURL != "" &&
		!strings.HasPrefix(config.Backend.BaseURL, "http://") &&
		!strings.HasPrefix(config.Backend.BaseURL, "https://") {
		return fmt.Errorf("backend base_url must be an http(s) URL, got: %s", config.Backend.BaseURL)
	}
	if key := config.Session.BlockKey; key != "" {
		switch len(key) {
		case 16, 24, 32:
		default:
			return fmt.Errorf("session block_key must be 16, 24 or 32 bytes, got %d", len(key))
		}
	}
	return nil
}
