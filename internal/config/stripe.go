package config

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
}
