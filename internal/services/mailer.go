package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

// ErrMailerDisabled is returned by Send when no API key is configured;
// callers that depend on delivery fall back to in-band behaviour.
var ErrMailerDisabled = errors.New("mailer disabled: no API key configured")

type Email struct {
	To      string
	Subject string
	HTML    string
}

// MailerService delivers transactional email through Resend. Reset
// codes go out synchronously because the response body depends on the
// outcome; everything else is queued and drained by a worker so a slow
// or failing provider never blocks a request.
type MailerService struct {
	client *resend.Client
	from   string
	logger *slog.Logger
	queue  chan Email
}

func NewMailerService(apiKey, from string, logger *slog.Logger) *MailerService {
	m := &MailerService{
		from:   from,
		logger: logger,
		queue:  make(chan Email, 100),
	}
	if apiKey != "" {
		m.client = resend.NewClient(apiKey)
	}
	return m
}

func (m *MailerService) Enabled() bool {
	return m.client != nil
}

func (m *MailerService) Start(ctx context.Context) {
	m.logger.Info("Mailer worker starting")
	for {
		select {
		case email := <-m.queue:
			if err := m.Send(email); err != nil {
				m.logger.Error("Failed to send email", "to", email.To, "subject", email.Subject, "error", err)
			}
		case <-ctx.Done():
			m.logger.Info("Mailer worker stopping")
			return
		}
	}
}

func (m *MailerService) Send(email Email) error {
	if m.client == nil {
		return ErrMailerDisabled
	}

	_, err := m.client.Emails.Send(&resend.SendEmailRequest{
		From:    m.from,
		To:      []string{email.To},
		Subject: email.Subject,
		Html:    email.HTML,
	})
	return err
}

func (m *MailerService) SendAsync(email Email) {
	select {
	case m.queue <- email:
		// Queued
	default:
		m.logger.Warn("Mail queue full, dropping email", "to", email.To)
	}
}

func NewWelcomeEmail(to, name, city string, offered, needed int) Email {
	return Email{
		To:      to,
		Subject: "🎉 Vítej v komunitě Ženy Ženám!",
		HTML: fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1 style="color: #f5576c;">💜 Vítej, %s!</h1>
  <p>Jsme rádi, že ses připojila ke komunitě Ženy Ženám!</p>
  <p><strong>Tvůj profil:</strong></p>
  <ul>
    <li>📍 Město: %s</li>
    <li>✅ Nabízíš: %d služeb</li>
    <li>🔍 Hledáš: %d služeb</li>
  </ul>
  <p>Přihlas se, hledej ženy ve tvém městě a domluvte se!</p>
  <p>Hodně štěstí!<br>Tým Ženy Ženám</p>
</div>`, name, city, offered, needed),
	}
}

func NewResetEmail(to, name, code string) Email {
	return Email{
		To:      to,
		Subject: "🔐 Reset hesla - Ženy Ženám",
		HTML: fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1 style="color: #f5576c;">🔐 Reset hesla</h1>
  <p>Ahoj %s,</p>
  <p>Požádala jsi o reset hesla. Tvůj reset kód je:</p>
  <div style="background: #f8f9fa; padding: 20px; text-align: center; font-size: 32px; font-weight: bold; letter-spacing: 5px; margin: 20px 0;">%s</div>
  <p>Tento kód je platný <strong>15 minut</strong>.</p>
  <p>Pokud jsi o reset hesla nežádala, ignoruj tento email.</p>
  <p>Tým Ženy Ženám</p>
</div>`, name, code),
	}
}

func NewMessageEmail(to, recipientName, senderName, senderEmail, body string) Email {
	return Email{
		To:      to,
		Subject: fmt.Sprintf("💬 %s ti poslala zprávu!", senderName),
		HTML: fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1 style="color: #f5576c;">💬 Nová zpráva!</h1>
  <p>Ahoj %s,</p>
  <p><strong>%s</strong> ti poslala zprávu:</p>
  <div style="background: #f8f9fa; padding: 20px; border-radius: 5px; margin: 20px 0;">"%s"</div>
  <p>Odpověz na %s nebo se přihlas do aplikace.</p>
  <p>Tým Ženy Ženám</p>
</div>`, recipientName, senderName, body, senderEmail),
	}
}
