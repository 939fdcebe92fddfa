package models

import "time"

// Config represents the application configuration
type Config struct {
	Email                   EmailConfig   `yaml:"email"`
	SMTP                    SMTPConfig    `yaml:"smtp"`
	RequireUserConfirmation bool          `yaml:"requireUserConfirmation"`
	UseListUnsubscribe      bool          `yaml:"useListUnsubscribe"`
	DryRun                  bool          `yaml:"dryRun"`
	Headless                bool          `yaml:"headless"`
	AgentTimeout            time.Duration `yaml:"agentTimeout"`
	LogLevel                string        `yaml:"logLevel"`
}

// EmailConfig represents IMAP email configuration
type EmailConfig struct {
	Imap        string `yaml:"imap"`
	Login       string `yaml:"login"`
	Password    string `yaml:"password"`
	AccessToken string `yaml:"accessToken"`
	MailBox     string `yaml:"mailbox"`
	Limit       int    `yaml:"limit"`
}

// SMTPConfig represents the optional SMTP submission endpoint used to honor
// mailto: unsubscribe addresses. Address is an implicit-TLS endpoint
// (host:465); From defaults to the IMAP login.
type SMTPConfig struct {
	Address string `yaml:"address"`
	From    string `yaml:"from"`
}
