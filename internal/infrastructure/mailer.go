package infrastructure

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	log "github.com/sirupsen/logrus"
)

// Mailer sends invitation mail through sendgrid. With no API key
// configured it degrades to a no-op so local setups work without an
// account.
type Mailer struct {
	client *sendgrid.Client
	from   *mail.Email
}

func NewMailer(apiKey, fromEmail string) *Mailer {
	m := &Mailer{}
	if apiKey == "" || fromEmail == "" {
		log.Info("sendgrid not configured, invitation mail disabled")
		return m
	}
	m.client = sendgrid.NewSendClient(apiKey)
	m.from = mail.NewEmail("RikiTraki", fromEmail)
	return m
}

func (m *Mailer) SendInvitation(ctx context.Context, toEmail, invitedBy string) error {
	if m.client == nil {
		return nil
	}
	subject := "You have been invited to RikiTraki"
	body := fmt.Sprintf("%s invited you to join RikiTraki. Sign up with this email address to accept.", invitedBy)
	message := mail.NewSingleEmail(m.from, subject, mail.NewEmail("", toEmail), body, body)

	resp, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}
	return nil
}
