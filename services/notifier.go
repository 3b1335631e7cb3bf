package services

import (
	"fmt"
	"log"

	"github.com/slack-go/slack"
	"gopkg.in/gomail.v2"
)

// Mailer sends a single HTML email. Implementations must be safe for
// concurrent use; the contact dispatcher sends from multiple goroutines.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// ChatNotifier posts a short text notification to a team chat channel.
type ChatNotifier interface {
	Notify(text string) error
}

// SMTPMailer delivers mail through a configured SMTP relay.
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewSMTPMailer creates a Mailer backed by SMTP. Returns nil when host or
// from are missing, which callers treat as "mail not configured".
func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	if host == "" || from == "" {
		return nil
	}
	return &SMTPMailer{host: host, port: port, username: username, password: password, from: from}
}

// Send delivers one message. Each call dials a fresh connection; contact
// volume is far too low to justify connection pooling.
func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	dialer := gomail.NewDialer(m.host, m.port, m.username, m.password)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send mail to '%s': %w", to, err)
	}
	log.Printf("INFO: [Mailer] Sent mail to '%s' (subject '%s').", to, subject)
	return nil
}

// SlackNotifier posts to a Slack incoming webhook.
type SlackNotifier struct {
	webhookURL string
}

// NewSlackNotifier creates a ChatNotifier backed by a Slack incoming
// webhook. Returns nil when the URL is missing.
func NewSlackNotifier(webhookURL string) *SlackNotifier {
	if webhookURL == "" {
		return nil
	}
	return &SlackNotifier{webhookURL: webhookURL}
}

// Notify posts a plain-text message to the configured webhook.
func (n *SlackNotifier) Notify(text string) error {
	err := slack.PostWebhook(n.webhookURL, &slack.WebhookMessage{Text: text})
	if err != nil {
		return fmt.Errorf("failed to post Slack webhook: %w", err)
	}
	return nil
}
