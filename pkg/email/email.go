package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
}

// EmailService handles email sending
type EmailService struct {
	config EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config}
}

// DocumentEmail carries the fields rendered into a document notification
type DocumentEmail struct {
	CompanyName  string
	DocumentKind string // "Estimate", "Invoice"
	DocumentNo   string
	GrandTotal   string
	Currency     string
}

var documentTemplate = template.Must(template.New("document").Parse(`
<html>
<body style="font-family: Arial, sans-serif;">
  <h2>{{.CompanyName}}</h2>
  <p>{{.DocumentKind}} <strong>{{.DocumentNo}}</strong> has been issued to you.</p>
  <p>Total: <strong>{{.Currency}} {{.GrandTotal}}</strong></p>
  <p>Please contact us if you have any questions.</p>
</body>
</html>`))

// SendDocumentEmail notifies a counterparty that a document was sent to them
func (s *EmailService) SendDocumentEmail(toEmail string, doc DocumentEmail) error {
	var body bytes.Buffer
	if err := documentTemplate.Execute(&body, doc); err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("%s %s from %s", doc.DocumentKind, doc.DocumentNo, doc.CompanyName)
	message := s.buildHTMLEmail(toEmail, subject, body.String())
	return s.sendEmail(toEmail, message)
}

// sendEmail sends an email using SMTP
func (s *EmailService) sendEmail(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)
	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	if err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// buildHTMLEmail builds an HTML email message
func (s *EmailService) buildHTMLEmail(to, subject, htmlBody string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		s.config.FromName,
		s.config.FromEmail,
		to,
		subject,
	)
	return append([]byte(headers), []byte(htmlBody)...)
}
