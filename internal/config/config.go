package config

import (
	"crypto/rand"
	"encoding/base64"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	DBPath       string
	BaseURL      string // public origin for payment redirects
	CSRFKey      []byte
	SessionKey   []byte
	CookieDomain string
	CookieSecure bool

	StripeSecretKey     string
	StripeWebhookSecret string

	ResendAPIKey string
	EmailFrom    string
}

func LoadConfig() (*Config, error) {
	// Optional .env for local development; system env always wins.
	if err := godotenv.Load(); err == nil {
		slog.Info("Loaded .env file")
	}

	cfg := &Config{
		Port:                getEnv("PORT", "8585"),
		DBPath:              getEnv("DB_PATH", "./myplug.db"),
		BaseURL:             getEnv("BASE_URL", "http://localhost:8585"),
		CookieDomain:        getEnv("COOKIE_DOMAIN", ""),
		CookieSecure:        getEnv("COOKIE_SECURE", "false") == "true",
		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		ResendAPIKey:        os.Getenv("RESEND_API_KEY"),
		EmailFrom:           getEnv("EMAIL_FROM", "MyPlug <onboarding@resend.dev>"),
	}

	cfg.CSRFKey = loadKey("CSRF_KEY")
	cfg.SessionKey = loadKey("SESSION_KEY")

	if cfg.StripeSecretKey == "" {
		slog.Warn("STRIPE_SECRET_KEY not set; checkout will fail until configured")
	}
	if cfg.StripeWebhookSecret == "" {
		slog.Warn("STRIPE_WEBHOOK_SECRET not set; webhook deliveries will be rejected")
	}
	if cfg.ResendAPIKey == "" {
		slog.Warn("RESEND_API_KEY not set; order confirmation emails will be skipped")
	}

	// Make sure port is valid
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		slog.Error("Invalid PORT environment variable. Falling back to default.", "PORT", os.Getenv("PORT"))
		cfg.Port = "8585"
	}

	return cfg, nil
}

// loadKey decodes a base64 key from the environment, generating an ephemeral
// one (dev only, invalid on restart) when missing or too short.
func loadKey(envVar string) []byte {
	raw := os.Getenv(envVar)
	if raw == "" {
		slog.Warn("Key not set, generating a random one for development. PLEASE SET IT IN PRODUCTION!", "var", envVar)
		return generateRandomBytes(32)
	}
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil || len(decoded) < 32 {
		slog.Warn("Key is invalid or too short (min 32 bytes). Generating a random one for development.", "var", envVar)
		return generateRandomBytes(32)
	}
	return decoded
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func generateRandomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing is unrecoverable for key material
		panic(err)
	}
	return b
}
