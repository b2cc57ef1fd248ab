package service

import (
	"context"
	"fmt"

	"promodesk-backend/internal/domain"
	"promodesk-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type sendGridEmailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewSendGridEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &sendGridEmailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *sendGridEmailService) send(to, toName, subject, body string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, body, "")

	client := sendgrid.NewSendClient(s.apiKey)
	logger.ExternalServiceCall("sendgrid", "send", "to", to, "subject", subject)
	response, err := client.Send(message)
	logger.ExternalServiceResult("sendgrid", "send", err)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *sendGridEmailService) SendStatusNotification(ctx context.Context, toEmail, toName, campaign, status, reason string) error {
	subject := "Atualização da sua candidatura"
	if campaign != "" {
		subject = fmt.Sprintf("Atualização da sua candidatura - %s", campaign)
	}
	var body string
	switch domain.PromoterStatus(status) {
	case domain.PromoterStatusApproved:
		body = fmt.Sprintf("Olá %s,\n\nParabéns! Seu perfil foi aprovado.", toName)
	case domain.PromoterStatusRejected, domain.PromoterStatusRejectedEditable:
		body = fmt.Sprintf("Olá %s,\n\nSeu perfil não foi aprovado.", toName)
		if reason != "" {
			body += fmt.Sprintf("\n\nMotivo:\n%s", reason)
		}
		if domain.PromoterStatus(status) == domain.PromoterStatusRejectedEditable {
			body += "\n\nVocê pode editar seu cadastro e tentar novamente."
		}
	default:
		body = fmt.Sprintf("Olá %s,\n\nO status da sua candidatura foi atualizado para: %s.", toName, status)
	}
	return s.send(toEmail, toName, subject, body)
}

func (s *sendGridEmailService) SendAdminWelcome(ctx context.Context, toEmail, toName, orgName string) error {
	subject := fmt.Sprintf("Bem-vindo à equipe de %s", orgName)
	body := fmt.Sprintf("Olá %s,\n\nSua solicitação de acesso foi aprovada. Você agora faz parte da equipe de %s.", toName, orgName)
	return s.send(toEmail, toName, subject, body)
}

// noopEmailService logs instead of sending, for development and tests.
type noopEmailService struct{}

func NewNoopEmailService() EmailService {
	return noopEmailService{}
}

func (noopEmailService) SendStatusNotification(ctx context.Context, toEmail, toName, campaign, status, reason string) error {
	logger.Debug("Email disabled, skipping status notification", "to", toEmail, "status", status)
	return nil
}

func (noopEmailService) SendAdminWelcome(ctx context.Context, toEmail, toName, orgName string) error {
	logger.Debug("Email disabled, skipping admin welcome", "to", toEmail, "org", orgName)
	return nil
}
