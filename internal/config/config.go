package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Database    DatabaseConfig
	Redis       RedisConfig
	Commerce    CommerceConfig
	Session     SessionConfig
	LogLevel    string
}

// CommerceConfig points at the commerce backend (store + admin HTTP APIs)
type CommerceConfig struct {
	BaseURL        string // e.g. http://localhost:9000
	PublishableKey string // x-publishable-api-key for /store routes
	AdminEmail     string // admin credentials; only the seed tool and the
	AdminPassword  string // registration compensation path use these
	// Payment providers tried in order when initializing a payment session
	PreferredPaymentProvider string // e.g. pp_stripe_stripe
	DefaultPaymentProvider   string // e.g. pp_system_default
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// SessionConfig controls the signed session cookie
type SessionConfig struct {
	Secret     string // HS256 key for the session cookie JWT
	CookieName string
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("COMMERCE_BACKEND_URL", "http://localhost:9000")
	viper.SetDefault("PREFERRED_PAYMENT_PROVIDER", "pp_stripe_stripe")
	viper.SetDefault("DEFAULT_PAYMENT_PROVIDER", "pp_system_default")
	viper.SetDefault("SESSION_COOKIE_NAME", "healthea_session")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Database: DatabaseConfig{
			Host:     getEnvOrViper("DB_HOST", "localhost"),
			Port:     getEnvOrViper("DB_PORT", "5432"),
			User:     getEnvOrViper("DB_USER", "postgres"),
			Password: getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrViper("DB_NAME", "healthea"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnvOrViper("REDIS_ADDR", "localhost:6379"),
			Password: getEnvOrViper("REDIS_PASSWORD", ""),
		},
		Commerce: CommerceConfig{
			BaseURL:                  strings.TrimSpace(getEnvOrViper("COMMERCE_BACKEND_URL", "http://localhost:9000")),
			PublishableKey:           strings.TrimSpace(getEnvOrViper("COMMERCE_PUBLISHABLE_KEY", "")),
			AdminEmail:               strings.TrimSpace(getEnvOrViper("COMMERCE_ADMIN_EMAIL", "")),
			AdminPassword:            getEnvOrViper("COMMERCE_ADMIN_PASSWORD", ""),
			PreferredPaymentProvider: getEnvOrViper("PREFERRED_PAYMENT_PROVIDER", "pp_stripe_stripe"),
			DefaultPaymentProvider:   getEnvOrViper("DEFAULT_PAYMENT_PROVIDER", "pp_system_default"),
		},
		Session: SessionConfig{
			Secret:     getEnvOrViper("SESSION_SECRET", ""),
			CookieName: getEnvOrViper("SESSION_COOKIE_NAME", "healthea_session"),
		},
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
	}

	// Validate required fields
	if cfg.Commerce.BaseURL == "" {
		return nil, fmt.Errorf("COMMERCE_BACKEND_URL is required")
	}
	if cfg.Session.Secret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required")
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
