package config

import (
	"fmt"
	"os"
	"time"

	"email-unsubscriber/internal/models"

	"gopkg.in/yaml.v2"
)

// passwordEnv is consulted when the config file carries no password, so the
// secret can stay out of the file (and live in a .env instead).
const passwordEnv = "EMAIL_PASSWORD"

// Defaults returns the configuration with every optional knob at its default.
// Load unmarshals on top of this, so absent YAML keys keep their defaults.
func Defaults() models.Config {
	return models.Config{
		Email: models.EmailConfig{
			MailBox: "INBOX",
			Limit:   100,
		},
		UseListUnsubscribe: true,
		Headless:           true,
		AgentTimeout:       90 * time.Second,
		LogLevel:           "info",
	}
}

// Load reads the configuration from the specified YAML file and returns a Config struct
func Load(filepath string) (*models.Config, error) {
	configFile, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}

	config := Defaults()
	if err := yaml.Unmarshal(configFile, &config); err != nil {
		return nil, err
	}

	if config.Email.Password == "" {
		config.Email.Password = os.Getenv(passwordEnv)
	}
	if config.SMTP.From == "" {
		config.SMTP.From = config.Email.Login
	}

	return &config, nil
}

// Validate checks that the configuration can drive an IMAP run. Offline mbox
// runs need none of the connection settings, so the caller decides when to
// call it.
func Validate(cfg *models.Config) error {
	if cfg.Email.Imap == "" {
		return fmt.Errorf("email.imap is required")
	}
	if cfg.Email.Login == "" {
		return fmt.Errorf("email.login is required")
	}
	if cfg.Email.Password == "" && cfg.Email.AccessToken == "" {
		return fmt.Errorf("email.password (or %s) or email.accessToken is required", passwordEnv)
	}
	if cfg.Email.Limit <= 0 {
		return fmt.Errorf("email.limit must be positive")
	}
	return nil
}
