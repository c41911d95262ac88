package services

import (
	"context"
	"fmt"
	"log"

	"eventinvite/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendInvite sends an invitation email using the "invitation" template and the given data.
func (s *emailService) SendInvite(ctx context.Context, data *domain.InviteEmailData) error {
	if data == nil {
		return fmt.Errorf("invite email data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("invitation", data)
	if err != nil {
		return fmt.Errorf("failed to render invitation template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send invitation email: %w", err)
	}
	log.Printf("[EMAIL] Invitation sent to %s", data.Email)
	return nil
}
