package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

// SMTPProvider sends mail through gomail's dialer.
type SMTPProvider struct {
	config *SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPProvider(config *SMTPConfig) *SMTPProvider {
	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	// Port 465 is implicit TLS; otherwise gomail upgrades with STARTTLS when offered.
	dialer.SSL = config.Port == 465
	if config.UseTLS {
		dialer.TLSConfig = &tls.Config{ServerName: config.Host}
	}

	return &SMTPProvider{config: config, dialer: dialer}
}

func (p *SMTPProvider) Send(ctx context.Context, email *Email) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	if len(email.To) == 0 {
		return "", fmt.Errorf("no recipients")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	messageID := p.newMessageID()
	msg := p.buildMessage(email, messageID)

	if err := p.dialer.DialAndSend(msg); err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}
	return messageID, nil
}

func (p *SMTPProvider) Validate() error {
	if p.config.Host == "" {
		return fmt.Errorf("SMTP host is required")
	}
	if p.config.Port <= 0 || p.config.Port > 65535 {
		return fmt.Errorf("invalid SMTP port: %d", p.config.Port)
	}
	if p.config.FromEmail == "" {
		return fmt.Errorf("sender address is required")
	}
	return nil
}

// Close is a no-op: DialAndSend opens a connection per message.
func (p *SMTPProvider) Close() error {
	return nil
}

func (p *SMTPProvider) buildMessage(email *Email, messageID string) *gomail.Message {
	m := gomail.NewMessage()

	from := email.From
	if from.Email == "" {
		from = Address{Email: p.config.FromEmail, Name: p.config.FromName}
	}
	m.SetAddressHeader("From", from.Email, from.Name)

	to := make([]string, 0, len(email.To))
	for _, addr := range email.To {
		to = append(to, m.FormatAddress(addr.Email, addr.Name))
	}
	m.SetHeader("To", to...)
	if email.ReplyTo != "" {
		m.SetHeader("Reply-To", email.ReplyTo)
	}
	m.SetHeader("Subject", email.Subject)
	m.SetHeader("Message-ID", messageID)

	switch {
	case email.HTMLBody != "" && email.Body != "":
		m.SetBody("text/plain", email.Body)
		m.AddAlternative("text/html", email.HTMLBody)
	case email.HTMLBody != "":
		m.SetBody("text/html", email.HTMLBody)
	default:
		m.SetBody("text/plain", email.Body)
	}
	return m
}

func (p *SMTPProvider) newMessageID() string {
	domain := "localhost"
	if at := strings.LastIndex(p.config.FromEmail, "@"); at >= 0 && at < len(p.config.FromEmail)-1 {
		domain = p.config.FromEmail[at+1:]
	}
	return fmt.Sprintf("<%s@%s>", uuid.NewString(), domain)
}
