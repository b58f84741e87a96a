package services

import (
	"fmt"
	"time"

	"loanProject/config"

	"gopkg.in/gomail.v2"
)

// EmailService предоставляет методы для отправки служебных уведомлений
type EmailService struct {
	dialer *gomail.Dialer
	from   string
	inbox  string
}

// NewEmailService создает новый экземпляр EmailService
func NewEmailService(cfg *config.Config) *EmailService {
	dialer := gomail.NewDialer(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
	)

	return &EmailService{
		dialer: dialer,
		from:   cfg.SMTP.From,
		inbox:  cfg.SMTP.BackofficeInbox,
	}
}

// SendEmail отправляет email
func (s *EmailService) SendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("ошибка отправки email: %v", err)
	}

	return nil
}

// SendLoanDecisionNotification отправляет в бэк-офис уведомление
// о решении по займу
func (s *EmailService) SendLoanDecisionNotification(loanCode, decision string) error {
	subject := "Решение по займу " + loanCode
	body := fmt.Sprintf(`
		<h2>Решение по займу</h2>
		<p>Заем: %s</p>
		<p>Решение: %s</p>
		<p>Дата: %s</p>
	`, loanCode, decision, time.Now().Format("02.01.2006 15:04:05"))

	return s.SendEmail(s.inbox, subject, body)
}

// SendReceiptReviewedNotification отправляет в бэк-офис уведомление
// о результате проверки платежного документа
func (s *EmailService) SendReceiptReviewedNotification(correlative, state string) error {
	subject := "Проверка платежа " + correlative
	body := fmt.Sprintf(`
		<h2>Проверка платежа</h2>
		<p>Платеж: %s</p>
		<p>Статус: %s</p>
		<p>Дата: %s</p>
	`, correlative, state, time.Now().Format("02.01.2006 15:04:05"))

	return s.SendEmail(s.inbox, subject, body)
}
