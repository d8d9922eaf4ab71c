package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"fitcoach-backend/internal/config"
	"fitcoach-backend/internal/domain"
	"fitcoach-backend/internal/logger"
)

type sendGridEmailService struct {
	apiKey        string
	fromEmail     string
	fromName      string
	acceptURLBase string
	log           *slog.Logger
}

func NewEmailService(cfg config.EmailConfig) EmailService {
	return &sendGridEmailService{
		apiKey:        cfg.SendGridAPIKey,
		fromEmail:     cfg.FromEmail,
		fromName:      cfg.FromName,
		acceptURLBase: cfg.AcceptURLBase,
		log:           logger.WithService("email"),
	}
}

func (s *sendGridEmailService) SendInvitation(ctx context.Context, inv *domain.Invitation) error {
	if s.apiKey == "" {
		// Local setups run without a SendGrid key; the invite link still
		// works when shared by hand.
		s.log.Warn("SendGrid API key not configured, skipping invitation email", "invitation_id", inv.ID)
		return nil
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(inv.ClientName, inv.ClientEmail)

	subject := fmt.Sprintf("%s invited you to start training", inv.TrainerName)
	link := fmt.Sprintf("%s/%s", s.acceptURLBase, inv.ID)
	plain := fmt.Sprintf(
		"Hi %s,\n\n%s has invited you to become their coaching client.\n\nOpen the invitation: %s\n\nThis invitation expires on %s.",
		inv.ClientName, inv.TrainerName, link, inv.ExpiresAt.Format("Jan 2, 2006"))
	html := fmt.Sprintf(
		"<p>Hi %s,</p><p><strong>%s</strong> has invited you to become their coaching client.</p><p><a href=%q>Open the invitation</a></p><p>This invitation expires on %s.</p>",
		inv.ClientName, inv.TrainerName, link, inv.ExpiresAt.Format("Jan 2, 2006"))

	message := mail.NewSingleEmail(from, subject, recipient, plain, html)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send invitation email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}
