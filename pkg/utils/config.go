package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"gameboxd/pkg/database"
)

const DefaultConfigPath = "configs/default.yaml"

type Config struct {
	API      APIConfig       `yaml:"api"`
	Database database.Config `yaml:"database"`
	Catalog  CatalogConfig   `yaml:"catalog"`
	Auth     AuthConfig      `yaml:"auth"`
}

type APIConfig struct {
	Addr string `yaml:"addr" env:"GAMEBOXD_API_ADDR"`
}

// CatalogConfig describes the upstream game catalog.
type CatalogConfig struct {
	BaseURL string        `yaml:"base_url" env:"GAMEBOXD_CATALOG_URL"`
	APIKey  string        `yaml:"api_key" env:"GAMEBOXD_CATALOG_KEY"`
	Locale  string        `yaml:"locale" env:"GAMEBOXD_CATALOG_LOCALE"`
	Timeout time.Duration `yaml:"timeout" env:"GAMEBOXD_CATALOG_TIMEOUT"`
	// RatePerSecond caps outbound requests; the provider throttles above it.
	RatePerSecond float64 `yaml:"rate_per_second" env:"GAMEBOXD_CATALOG_RATE"`
	Burst         int     `yaml:"burst" env:"GAMEBOXD_CATALOG_BURST"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" env:"GAMEBOXD_JWT_SECRET"`
	JWTIssuer string `yaml:"jwt_issuer" env:"GAMEBOXD_JWT_ISSUER"`
}

func DefaultConfig() Config {
	return Config{
		API:      APIConfig{Addr: ":8080"},
		Database: database.DefaultConfig(),
		Catalog: CatalogConfig{
			BaseURL:       "https://api.rawg.io/api",
			Locale:        "pt",
			Timeout:       12 * time.Second,
			RatePerSecond: 5,
			Burst:         8,
		},
		Auth: AuthConfig{
			// dev default (change for production)
			JWTSecret: "dev-secret-change-me",
			JWTIssuer: "gameboxd",
		},
	}
}

// LoadConfig starts from defaults, applies the YAML file at path when it
// exists, then applies GAMEBOXD_* environment overrides.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	f, err := os.Open(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("open config: %w", err)
	default:
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			return cfg, fmt.Errorf("decode config: %w", err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
