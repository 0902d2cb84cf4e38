package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv             string
	Port               string
	CORSAllowedOrigins []string

	StripeSecretKey     string
	StripeWebhookSecret string
	DonationCurrency    string

	RedisURL         string
	IdempotencyTTL   time.Duration
	RateLimitWindow  time.Duration
	RateLimitMax     int
	WebhookReplayTTL time.Duration

	ContactEnabled   bool
	ContactRecipient string
	ContactFrom      string
	SMTPHost         string
	SMTPPort         string
	SMTPUsername     string
	SMTPPassword     string
}

// Load reads configuration from environment variables and optional .env files.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		AppEnv:             valueOrDefault(k.String("APP_ENV"), "development"),
		Port:               valueOrDefault(k.String("PORT"), "8080"),
		CORSAllowedOrigins: splitAndTrim(k.String("CORS_ALLOWED_ORIGINS")),

		StripeSecretKey:     strings.TrimSpace(k.String("STRIPE_SECRET_KEY")),
		StripeWebhookSecret: strings.TrimSpace(k.String("STRIPE_WEBHOOK_SECRET")),
		DonationCurrency:    strings.ToLower(valueOrDefault(k.String("DONATION_CURRENCY"), "usd")),

		RedisURL:         strings.TrimSpace(k.String("REDIS_URL")),
		IdempotencyTTL:   parseDuration(k.String("IDEMPOTENCY_TTL"), "24h"),
		RateLimitWindow:  parseDuration(k.String("RATE_LIMIT_WINDOW"), "1m"),
		RateLimitMax:     parseInt(k.String("RATE_LIMIT_MAX"), 30),
		WebhookReplayTTL: parseDuration(k.String("WEBHOOK_REPLAY_TTL"), "48h"),

		ContactEnabled:   parseBool(k.String("CONTACT_ENABLED")),
		ContactRecipient: strings.TrimSpace(k.String("CONTACT_RECIPIENT")),
		ContactFrom:      valueOrDefault(k.String("CONTACT_FROM"), "no-reply@localhost"),
		SMTPHost:         strings.TrimSpace(k.String("SMTP_HOST")),
		SMTPPort:         valueOrDefault(k.String("SMTP_PORT"), "587"),
		SMTPUsername:     k.String("SMTP_USERNAME"),
		SMTPPassword:     k.String("SMTP_PASSWORD"),
	}

	if cfg.StripeSecretKey == "" {
		return nil, errors.New("STRIPE_SECRET_KEY is required")
	}
	if cfg.ContactEnabled && cfg.ContactRecipient == "" {
		return nil, errors.New("CONTACT_RECIPIENT is required when CONTACT_ENABLED is set")
	}

	return cfg, nil
}

// HTTPAddr returns the address the HTTP server should bind to.
func (c *Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func parseDuration(value, fallback string) time.Duration {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	d, err := time.ParseDuration(base)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

func parseInt(value string, fallback int) int {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	var parsed int
	if _, err := fmt.Sscanf(trimmed, "%d", &parsed); err != nil {
		return fallback
	}
	return parsed
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// MustLoad behaves like Load but panics on error. Useful for tests and command entrypoints.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadForTests allows tests to override environment variables without touching the real environment.
func LoadForTests(env map[string]string) (*Config, error) {
	original := make(map[string]string, len(env))
	for key := range env {
		original[key] = os.Getenv(key)
		if err := setEnvVar(key, env[key]); err != nil {
			return nil, err
		}
	}
	cfg, err := Load()
	restoreErr := restoreEnv(original)
	if err != nil {
		return nil, err
	}
	return cfg, restoreErr
}

func setEnvVar(key, value string) error {
	if value == "" {
		return os.Unsetenv(key)
	}
	return os.Setenv(key, value)
}

func restoreEnv(values map[string]string) error {
	var errs []string
	for key, value := range values {
		if err := setEnvVar(key, value); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("restore env: %s", strings.Join(errs, "; "))
	}
	return nil
}
