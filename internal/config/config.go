// Package config loads server settings from the environment (and an optional .env file).
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

// Dictionary backends.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Config holds all server configuration.
type Config struct {
	Port         string `env:"PORT" envDefault:"5175"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	ClientOrigin string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
	AppEnv       string `env:"APP_ENV" envDefault:"development"`

	RootWordsFile      string `env:"ROOT_WORDS_FILE"`
	DictionaryFile     string `env:"DICTIONARY_FILE"`
	DictionaryLanguage string `env:"DICTIONARY_LANGUAGE" envDefault:"en"`
	DictionaryBackend  string `env:"DICTIONARY_BACKEND" envDefault:"memory"`
	DictionaryDSN      string `env:"DICTIONARY_DSN" envDefault:"./data/dictionary.db"`

	DailySalt       string `env:"DAILY_SALT" envDefault:"local_dev_salt"`
	JWTSecret       string `env:"JWT_SECRET" envDefault:"dev_secret_change_me"`
	JWTExpiresHours int    `env:"JWT_EXPIRES_HOURS" envDefault:"24"`

	// Language is DictionaryLanguage parsed as a BCP 47 tag.
	Language language.Tag
}

// Load reads .env (if present) and parses the environment into a Config.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	tag, err := language.Parse(cfg.DictionaryLanguage)
	if err != nil {
		return Config{}, fmt.Errorf("parse DICTIONARY_LANGUAGE %q: %w", cfg.DictionaryLanguage, err)
	}
	cfg.Language = tag

	switch cfg.DictionaryBackend {
	case BackendMemory, BackendSQLite:
	default:
		return Config{}, fmt.Errorf("unknown DICTIONARY_BACKEND %q", cfg.DictionaryBackend)
	}
	if cfg.JWTExpiresHours <= 0 {
		return Config{}, fmt.Errorf("JWT_EXPIRES_HOURS must be positive, got %d", cfg.JWTExpiresHours)
	}
	return cfg, nil
}

// Production reports whether cookies should be marked Secure.
func (c Config) Production() bool { return c.AppEnv == "production" }

// TokenTTL is the lifetime of a round token.
func (c Config) TokenTTL() time.Duration {
	return time.Duration(c.JWTExpiresHours) * time.Hour
}
