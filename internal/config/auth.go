package config

// AuthConfig configures the optional identity collaborator. The payment
// flow runs without it; account endpoints are only mounted when a
// credentials file is configured.
type AuthConfig struct {
	CredentialsFile string
}
