package config

type MailConfig struct {
	APIKey      string
	FromAddress string
	FromName    string
}
