package agent

import (
	"fmt"
	"net/url"
	"strings"

	"email-unsubscriber/internal/models"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
)

// MailtoSender honors mailto: unsubscribe addresses by submitting a minimal
// message over the configured SMTP endpoint.
type MailtoSender struct {
	addr     string
	from     string
	login    string
	password string
}

func NewMailtoSender(cfg *models.Config) *MailtoSender {
	return &MailtoSender{
		addr:     cfg.SMTP.Address,
		from:     cfg.SMTP.From,
		login:    cfg.Email.Login,
		password: cfg.Email.Password,
	}
}

// Send parses a mailto: URL and submits the unsubscribe message it asks for.
func (m *MailtoSender) Send(mailtoURL string) error {
	to, subject, body, err := parseMailto(mailtoURL)
	if err != nil {
		return err
	}

	msg := strings.NewReader("From: " + m.from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" +
		body + "\r\n")

	auth := sasl.NewPlainClient("", m.login, m.password)
	if err := smtp.SendMailTLS(m.addr, auth, m.from, []string{to}, msg); err != nil {
		return fmt.Errorf("send unsubscribe mail to %s: %w", to, err)
	}

	return nil
}

// parseMailto extracts the recipient and the subject/body the sender asked
// for. RFC 2369 mailto entries routinely carry both as query parameters.
func parseMailto(mailtoURL string) (to, subject, body string, err error) {
	u, err := url.Parse(mailtoURL)
	if err != nil {
		return "", "", "", fmt.Errorf("parse mailto url: %w", err)
	}
	if u.Scheme != "mailto" || u.Opaque == "" {
		return "", "", "", fmt.Errorf("not a mailto url: %s", mailtoURL)
	}

	to = u.Opaque
	subject = u.Query().Get("subject")
	if subject == "" {
		subject = "unsubscribe"
	}
	body = u.Query().Get("body")
	if body == "" {
		body = "This message was sent automatically to request removal from your mailing list."
	}

	return to, subject, body, nil
}
