package config

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	ServerPort         string `mapstructure:"SERVER_PORT" validate:"required"`
	Environment        string `mapstructure:"ENVIRONMENT" validate:"required,oneof=development staging production"`
	FirebaseProject    string `mapstructure:"FIREBASE_PROJECT_ID" validate:"required"`
	FirebaseDatabase   string `mapstructure:"FIREBASE_DATABASE_URL" validate:"required,url"`
	StorageBucket      string `mapstructure:"FIREBASE_STORAGE_BUCKET" validate:"required"`
	ServiceAccountJSON string `mapstructure:"FIREBASE_SERVICE_ACCOUNT_JSON"`
	ServiceAccountPath string `mapstructure:"FIREBASE_SERVICE_ACCOUNT_PATH"`

	NatsURL string `mapstructure:"NATS_URL"`

	CatalogLimit          int           `mapstructure:"CATALOG_LIMIT" validate:"min=1"`
	CatalogPageSize       int           `mapstructure:"CATALOG_PAGE_SIZE" validate:"min=1"`
	ClientStateCacheMB    int           `mapstructure:"CLIENT_STATE_CACHE_MB" validate:"min=1"`
	NotificationDismissMs int           `mapstructure:"NOTIFICATION_DISMISS_MS" validate:"min=0"`
	NotificationLimit     int           `mapstructure:"NOTIFICATION_LIMIT" validate:"min=1"`
	LogoFetchTimeout      time.Duration `mapstructure:"LOGO_FETCH_TIMEOUT"`
	CORSAllowedOrigins    []string      `mapstructure:"-"`
}

var defaults = map[string]interface{}{
	"SERVER_PORT":                   "8080",
	"ENVIRONMENT":                   "development",
	"FIREBASE_PROJECT_ID":           "",
	"FIREBASE_DATABASE_URL":         "",
	"FIREBASE_STORAGE_BUCKET":       "",
	"FIREBASE_SERVICE_ACCOUNT_JSON": "",
	"FIREBASE_SERVICE_ACCOUNT_PATH": "",
	"NATS_URL":                      "",
	"CATALOG_LIMIT":                 1000,
	"CATALOG_PAGE_SIZE":             48,
	"CLIENT_STATE_CACHE_MB":         16,
	"NOTIFICATION_DISMISS_MS":       4000,
	"NOTIFICATION_LIMIT":            10,
	"LOGO_FETCH_TIMEOUT":            "10s",
	"CORS_ALLOWED_ORIGINS":          "*",
}

func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsDevelopment reports whether the service runs in the development environment.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
