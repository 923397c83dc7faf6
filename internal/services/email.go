package services

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"

	"artecomcarinho/internal/config"
)

// EmailService, envia por e-mail as mensagens do formulário de contato. O
// backend não tem endpoint de contato, então o envio sai direto daqui.
type EmailService struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

// NewEmailService, cria o serviço a partir da configuração. Sem credenciais
// SMTP o envio fica desativado e as mensagens vão só para o log.
func NewEmailService(cfg *config.Config) *EmailService {
	if cfg.SMTPUser == "" || cfg.SMTPPass == "" {
		log.Println("EmailService - SMTP não configurado, envio de contato desativado")
		return &EmailService{to: cfg.MailTo, from: "nao-responda@artecomcarinho.com.br"}
	}

	return &EmailService{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:   cfg.SMTPUser,
		to:     cfg.MailTo,
	}
}

// SendContactMessage, envia a mensagem do formulário de contato para a
// caixa do ateliê, com o e-mail do cliente no Reply-To.
func (es *EmailService) SendContactMessage(name, email, message string) error {
	if es.dialer == nil {
		log.Printf("EmailService.SendContactMessage - envio desativado; mensagem de %s <%s>: %s", name, email, message)
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", es.from)
	m.SetHeader("To", es.to)
	m.SetHeader("Reply-To", email)
	m.SetHeader("Subject", fmt.Sprintf("Contato pelo site - %s", name))
	m.SetBody("text/plain", fmt.Sprintf("Nome: %s\nE-mail: %s\n\n%s", name, email, message))

	if err := es.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("falha ao enviar e-mail de contato: %w", err)
	}
	return nil
}
