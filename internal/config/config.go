// Package config loads server settings from the environment.
//
// A .env file in the working directory is read first (development only);
// real environment variables win over it.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every tunable of the server.
type Config struct {
	Port         string `env:"PORT" envDefault:"5175"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	LogPretty    bool   `env:"LOG_PRETTY" envDefault:"false"`
	DBPath       string `env:"DB_PATH" envDefault:"./data/mystery.db"`
	ClientOrigin string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`

	PlayerSecret string `env:"PLAYER_SECRET" envDefault:"dev_secret_change_me"`
	CookieSecure bool   `env:"COOKIE_SECURE" envDefault:"false"`

	SessionIdleTTL  time.Duration `env:"SESSION_IDLE_TTL" envDefault:"30m"`
	SirenInterval   time.Duration `env:"SIREN_INTERVAL" envDefault:"1s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	TauntsFile string `env:"TAUNTS_FILE"`
	RandomSeed uint64 `env:"RANDOM_SEED" envDefault:"0"`

	OTelEndpoint string `env:"OTEL_ENDPOINT"`
	OTelEnabled  bool   `env:"OTEL_ENABLED" envDefault:"true"`
}

// Load reads .env (if present) and parses the environment into a Config.
func Load() (Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse reads the environment into a Config without touching .env.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.SessionIdleTTL <= 0 {
		return Config{}, fmt.Errorf("SESSION_IDLE_TTL must be positive, got %s", cfg.SessionIdleTTL)
	}
	if cfg.SirenInterval <= 0 {
		return Config{}, fmt.Errorf("SIREN_INTERVAL must be positive, got %s", cfg.SirenInterval)
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string { return ":" + c.Port }
