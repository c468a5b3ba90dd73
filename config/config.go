// server/config/config.go
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Config struct {
	Port      string `validate:"required,numeric"`
	Password  string `validate:"required"`
	SeedPath  string
	LogLevel  string `validate:"oneof=trace debug info warn error"`
	LogFormat string `validate:"oneof=json console"`
	PublicURL string `validate:"required,url"`
}

// Load reads the configuration from the environment after applying any
// .env files found in the working directory. Variables already set win
// over .env entries.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	cfg := &Config{
		Port:      getenv("NOTES_PORT", "8080"),
		Password:  getenv("NOTES_PASSWORD", "dev"),
		SeedPath:  os.Getenv("NOTES_SEED"),
		LogLevel:  strings.ToLower(getenv("NOTES_LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(getenv("NOTES_LOG_FORMAT", "json")),
	}
	cfg.PublicURL = getenv("NOTES_PUBLIC_URL", "http://localhost:"+cfg.Port+"/")

	if err := validator.New().Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return nil, err
		}
		var msgs []string
		for _, e := range validationErrors {
			msgs = append(msgs, fmt.Sprintf("%s failed %s", e.Field(), e.Tag()))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(msgs, ", "))
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// NewLogger builds the root logger for cfg.
func NewLogger(cfg *Config, w io.Writer) zerolog.Logger {
	if cfg.LogFormat == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
