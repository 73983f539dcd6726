package service

import (
	"context"
	"fmt"
	"time"

	"visithub-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) SendWindowOpeningReminder(ctx context.Context, email, name, teamName string, opensAt, closesAt time.Time) error {
	subject := fmt.Sprintf("Visit contribution window opens today for %s", teamName)
	body := fmt.Sprintf(
		"Hello %s,\n\nThe contribution window for your team's visit opens at %s and closes at %s.\n\nUpload photos and file the visit report before the window closes.\n\nBest regards,\nThe VisitHub Team",
		name,
		opensAt.Format("3:04 PM on Jan 2, 2006"),
		closesAt.Format("3:04 PM on Jan 2, 2006"),
	)
	return s.send(email, name, subject, body)
}

func (s *emailService) SendAccountStatusNotification(ctx context.Context, email, name, status string) error {
	subject := "Account Status Update - VisitHub"
	body := fmt.Sprintf("Hello %s,\n\nYour account status has been updated to: %s.\n\nBest regards,\nThe VisitHub Team", name, status)
	return s.send(email, name, subject, body)
}

func (s *emailService) send(toEmail, toName, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	logger.ExternalServiceCall("sendgrid", "Send", "to", toEmail, "subject", subject)
	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "Send", err, "to", toEmail)
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		err := fmt.Errorf("sendgrid error: status %d", response.StatusCode)
		logger.ExternalServiceResult("sendgrid", "Send", err, "to", toEmail)
		return err
	}
	logger.ExternalServiceResult("sendgrid", "Send", nil, "to", toEmail)
	return nil
}
