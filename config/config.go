package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/petplan/backend/database"
)

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}
	if cfg.Auth.Secret == "" {
		return nil, fmt.Errorf("auth.secret must be set")
	}
	return &cfg, nil
}

type Config struct {
	Log  LogConfig         `toml:"log"`
	DB   database.DBConfig `toml:"db"`
	Web  WebConfig         `toml:"web"`
	Auth AuthConfig        `toml:"auth"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	AddSource bool       `toml:"add_source"`
}

type WebConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	AllowOrigins    string `toml:"allow_origins"`
	RateLimit       int    `toml:"rate_limit"`        // requests per window, 0 disables
	RateLimitWindow int    `toml:"rate_limit_window"` // seconds
}

type AuthConfig struct {
	Secret string `toml:"secret"`
}
