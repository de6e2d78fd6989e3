package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
)

type Config struct {
	Primary   Primary         `koanf:"primary"`
	Server    ServerConfig    `koanf:"server"`
	Processor ProcessorConfig `koanf:"processor"`
	PubSub    PubSubConfig    `koanf:"pubsub"`
	Limits    LimitsConfig    `koanf:"limits"`
	Logger    LoggerConfig    `koanf:"logger"`
	Clients   ClientsConfig   `koanf:"clients"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

type ServerConfig struct {
	Port         string        `koanf:"port" validate:"required"`
	ReadTimeout  time.Duration `koanf:"read_timeout" validate:"required"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"required"`
	IdleTimeout  time.Duration `koanf:"idle_timeout" validate:"required"`
}

type ProcessorConfig struct {
	BaseURL     string        `koanf:"base_url" validate:"required"`
	Environment string        `koanf:"environment" validate:"required"`
	ConnTimeout time.Duration `koanf:"conn_timeout" validate:"required"`
}

type PubSubConfig struct {
	BaseURL        string        `koanf:"base_url" validate:"required"`
	ConnTimeout    time.Duration `koanf:"conn_timeout" validate:"required"`
	PublishTimeout time.Duration `koanf:"publish_timeout" validate:"required"`
}

type LimitsConfig struct {
	MinAmount float64 `koanf:"min_amount" validate:"required"`
	MaxAmount float64 `koanf:"max_amount" validate:"required"`
}

type LoggerConfig struct {
	Level string `koanf:"level"`
}

type ClientsConfig struct {
	File string `koanf:"file" validate:"required"`
}

// defaults are the baseline values; any of them can be overridden through
// GATEWAY_-prefixed environment variables (double underscore as the section
// separator, e.g. GATEWAY_LIMITS__MAX_AMOUNT).
var defaults = map[string]interface{}{
	"primary.env":            "development",
	"server.port":            "8080",
	"server.read_timeout":    "15s",
	"server.write_timeout":   "15s",
	"server.idle_timeout":    "60s",
	"processor.environment":  "sandbox",
	"processor.conn_timeout": "10s",
	"pubsub.conn_timeout":    "10s",
	"pubsub.publish_timeout": "10s",
	"limits.min_amount":      1.0,
	"limits.max_amount":      1000000.0,
	"logger.level":           "info",
	"clients.file":           "clients.json",
}

func LoadConfig() (*Config, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		logger.Error("failed to load default configuration", "error", err)
		return nil, err
	}

	err := k.Load(env.Provider("GATEWAY_", ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "GATEWAY_")),
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

// NewLogger builds the process-wide slog logger honoring the configured level.
func (c *LoggerConfig) NewLogger() *slog.Logger {
	var level slog.Level
	switch strings.ToLower(c.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
}
