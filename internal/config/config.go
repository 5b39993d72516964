package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"

	"github.com/DanielPopoola/moneybag-go/domain"
	"github.com/DanielPopoola/moneybag-go/settings"
)

const envPrefix = "MONEYBAG_"

const (
	EnvSandbox    = "sandbox"
	EnvProduction = "production"
)

type Config struct {
	APIKey      string        `koanf:"api_key" validate:"required"`
	Environment string        `koanf:"environment" validate:"required,oneof=sandbox production"`
	BaseURL     string        `koanf:"base_url" validate:"omitempty,url"`
	Timeout     time.Duration `koanf:"timeout" validate:"gt=0"`
	MaxRetries  int           `koanf:"max_retries" validate:"gte=0"`
	Logger      LoggerConfig  `koanf:"logger"`
}

type LoggerConfig struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"oneof=text json"`
}

var defaults = map[string]any{
	"environment":   EnvSandbox,
	"timeout":       settings.DefaultTimeout.String(),
	"max_retries":   settings.DefaultMaxRetries,
	"logger.level":  "info",
	"logger.format": "text",
}

// LoadConfig reads MONEYBAG_* variables (and a .env file, if present) on top of
// the defaults. Nested keys use a double underscore: MONEYBAG_LOGGER__LEVEL.
func LoadConfig() (*Config, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		logger.Error("failed to load defaults", "error", err)
		return nil, err
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, envPrefix)),
			"__",
			".",
		)
	}), nil)
	if err != nil {
		logger.Error("failed to load environment variables", "error", err)
		return nil, err
	}

	mainConfig := &Config{}

	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Error("could not unmarshal main config", "error", err)
		return nil, err
	}

	validate := validator.New()

	err = validate.Struct(mainConfig)
	if err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	return mainConfig, nil
}

// ResolvedBaseURL is BaseURL when set, otherwise the gateway URL for Environment.
func (c *Config) ResolvedBaseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	if c.Environment == EnvProduction {
		return domain.ProductionBaseURL
	}
	return domain.SandboxBaseURL
}

func (c *Config) Settings() (*settings.Settings, error) {
	s, err := settings.New(c.APIKey, c.ResolvedBaseURL(),
		settings.WithTimeout(c.Timeout),
		settings.WithMaxRetries(c.MaxRetries),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid client settings: %w", err)
	}
	return s, nil
}

func (c LoggerConfig) NewLogger() *slog.Logger {
	var level slog.Level
	switch c.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if c.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
