package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"fleetrent-backend/internal/logger"
)

type emailService struct {
	apiKey    string
	fromName  string
	fromEmail string
}

func NewEmailService(apiKey, fromName, fromEmail string) EmailService {
	return &emailService{apiKey: apiKey, fromName: fromName, fromEmail: fromEmail}
}

func (s *emailService) send(ctx context.Context, to, toName, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	logger.ExternalServiceCall("sendgrid", "send", "to", to, "subject", subject)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "send", err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		err := fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
		logger.ExternalServiceResult("sendgrid", "send", err)
		return err
	}
	logger.ExternalServiceResult("sendgrid", "send", nil)
	return nil
}

func (s *emailService) SendInvoiceIssued(ctx context.Context, toEmail, clientName, invoiceNumber, total, dueOn string) error {
	subject := fmt.Sprintf("Invoice %s", invoiceNumber)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour rental invoice %s has been issued for a total of %s, due on %s.\n\nThank you for your business.",
		clientName, invoiceNumber, total, dueOn)
	return s.send(ctx, toEmail, clientName, subject, body)
}

func (s *emailService) SendOverdueAlert(ctx context.Context, toEmail, clientName, vehicleName string, daysLate int32) error {
	subject := fmt.Sprintf("Overdue rental: %s", vehicleName)
	body := fmt.Sprintf(
		"Hello %s,\n\nThe rental of %s is %d day(s) past its scheduled return. Please return the vehicle or contact us to extend the contract.",
		clientName, vehicleName, daysLate)
	return s.send(ctx, toEmail, clientName, subject, body)
}

func (s *emailService) SendWelcome(ctx context.Context, toEmail, name string) error {
	body := fmt.Sprintf(
		"Hello %s,\n\nYour fleet management account is ready. Add your vehicles and clients to start writing rental contracts.",
		name)
	return s.send(ctx, toEmail, name, "Welcome aboard", body)
}
