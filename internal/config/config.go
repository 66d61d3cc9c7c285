package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/artisy/storefront/pkg/database"
)

// Config holds the full service configuration. Credentials have no
// defaults: Load fails when any of them is missing so the process refuses
// to boot half-configured.
type Config struct {
	Port        string
	Environment string
	LogLevel    string

	// SiteURL is the storefront origin, used for CORS and checkout
	// redirect targets.
	SiteURL string

	DB database.Config

	SupabaseURL        string
	SupabaseServiceKey string
	SupabaseJWTSecret  string

	StripeSecretKey     string
	StripeWebhookSecret string

	// OpenAIAPIKey is only needed by the semantic-search path and the
	// embedding backfill job; RequireOpenAI enforces it there.
	OpenAIAPIKey string

	// Optional infrastructure. Empty values disable the integration.
	KafkaBrokers  []string
	RedisAddr     string
	RedisPassword string
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "3001"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		DB: database.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "artisy"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	var err error
	if cfg.SiteURL, err = requireEnv("SITE_URL"); err != nil {
		return nil, err
	}
	if cfg.SupabaseURL, err = requireEnv("SUPABASE_URL"); err != nil {
		return nil, err
	}
	if cfg.SupabaseServiceKey, err = requireEnv("SUPABASE_SERVICE_KEY"); err != nil {
		return nil, err
	}
	if cfg.SupabaseJWTSecret, err = requireEnv("SUPABASE_JWT_SECRET"); err != nil {
		return nil, err
	}
	if cfg.StripeSecretKey, err = requireEnv("STRIPE_SECRET_KEY"); err != nil {
		return nil, err
	}
	if cfg.StripeWebhookSecret, err = requireEnv("STRIPE_WEBHOOK_SECRET"); err != nil {
		return nil, err
	}

	return cfg, nil
}

// RequireOpenAI fails when the embeddings API key is absent.
func (c *Config) RequireOpenAI() error {
	if c.OpenAIAPIKey == "" {
		return fmt.Errorf("missing required environment variable OPENAI_API_KEY")
	}
	return nil
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func requireEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("missing required environment variable %s", key)
	}
	return value, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
