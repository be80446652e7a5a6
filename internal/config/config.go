package config

import (
	"errors"
	"os"

	"github.com/est-ai/checkout-service/internal/catalog"
)

// Config is the explicit configuration object handed to every component at
// startup. Nothing in this repository reads the environment after New
// returns.
type Config struct {
	Server   ServerConfig
	Stripe   StripeConfig
	Mail     MailConfig
	Auth     AuthConfig
	Database DatabaseConfig
}

type ServerConfig struct {
	Port string
	// PublicOrigin is the hardcoded production origin used when no host
	// information can be derived from the request headers.
	PublicOrigin string
	StaticDir    string
}

type DatabaseConfig struct {
	Path string
}

// New loads configuration from the environment.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         envOr("PORT", "8080"),
			PublicOrigin: envOr("PUBLIC_ORIGIN", "https://estaiconsulting.com"),
			StaticDir:    envOr("STATIC_DIR", "web/static"),
		},
		Stripe: StripeConfig{
			SecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
			WebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		},
		Mail: MailConfig{
			APIKey:      os.Getenv("SENDGRID_API_KEY"),
			FromAddress: os.Getenv("MAIL_FROM_ADDRESS"),
			FromName:    envOr("MAIL_FROM_NAME", "EST AI Consulting"),
		},
		Auth: AuthConfig{
			CredentialsFile: os.Getenv("FIREBASE_CREDENTIALS_FILE"),
		},
		Database: DatabaseConfig{
			Path: envOr("DATABASE_PATH", "checkout.db"),
		},
	}
}

// PriceRefs collects the per-course provider price references from the
// environment.
func PriceRefs() catalog.PriceRefs {
	return catalog.PriceRefs{
		"ai-fundamentals-self-paced": os.Getenv("PRICE_AI_FUNDAMENTALS_SELF_PACED"),
		"ai-fundamentals-cohort":     os.Getenv("PRICE_AI_FUNDAMENTALS_COHORT"),
		"business-leaders-executive": os.Getenv("PRICE_BUSINESS_LEADERS_EXECUTIVE"),
		"business-leaders-team":      os.Getenv("PRICE_BUSINESS_LEADERS_TEAM"),
	}
}

// Validate checks the secrets the payment flow cannot run without. Mail is
// deliberately optional: fulfillment degrades to order recording without a
// confirmation email.
func (c *Config) Validate() error {
	if c.Stripe.SecretKey == "" {
		return errors.New("stripe.secret_key is required (STRIPE_SECRET_KEY)")
	}
	if c.Stripe.WebhookSecret == "" {
		return errors.New("stripe.webhook_secret is required (STRIPE_WEBHOOK_SECRET)")
	}
	return nil
}

// MailEnabled reports whether the email-send branch of fulfillment is
// configured.
func (c *Config) MailEnabled() bool {
	return c.Mail.APIKey != "" && c.Mail.FromAddress != ""
}

// AuthEnabled reports whether the identity collaborator is configured.
func (c *Config) AuthEnabled() bool {
	return c.Auth.CredentialsFile != ""
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
