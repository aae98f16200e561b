package services

import (
	"bytes"
	"crypto/tls"
	"embed"
	"fmt"
	"html"
	"html/template"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/SundayYogurt/onboarding_service/internal/dto"
	"github.com/SundayYogurt/onboarding_service/pkg/logger"
)

const (
	smtpHost = "smtp.gmail.com"
	smtpAddr = "smtp.gmail.com:587"
)

//go:embed templates/welcome-email.html
var templateFS embed.FS

var welcomeTemplate = template.Must(template.ParseFS(templateFS, "templates/welcome-email.html"))

type MailService struct {
	gmailUser     string
	gmailAppPass  string
	mailFrom      string
	mailFromName  string
	subject       string
	portalBaseURL string
	log           *logger.Logger

	send func(to string, msg []byte) error
}

func NewMailService(
	gmailUser string,
	gmailAppPass string,
	mailFrom string,
	mailFromName string,
	subject string,
	portalBaseURL string,
	log *logger.Logger,
) *MailService {
	s := &MailService{
		gmailUser:     gmailUser,
		gmailAppPass:  gmailAppPass,
		mailFrom:      mailFrom,
		mailFromName:  mailFromName,
		subject:       subject,
		portalBaseURL: portalBaseURL,
		log:           log,
	}
	s.send = s.sendSMTPWithTimeout
	return s
}

// SendWelcomeEmail mails the new employee a summary of their onboarding.
func (s *MailService) SendWelcomeEmail(event dto.EmployeeOnboardedEvent) error {
	// stored values are HTML-escaped already
	to := html.UnescapeString(event.Email)
	if to == "" {
		return fmt.Errorf("event for employee %d has no email", event.EmployeeID)
	}

	body, err := s.renderWelcome(event)
	if err != nil {
		return err
	}

	msg := strings.Join([]string{
		fmt.Sprintf("From: %s <%s>", s.mailFromName, s.mailFrom),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", s.subject),
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
		"",
		body,
	}, "\r\n")

	s.log.Info("sending welcome mail", "employee_id", event.EmployeeID, "via", smtpAddr)
	if err := s.send(to, []byte(msg)); err != nil {
		return err
	}
	s.log.Info("welcome mail sent", "employee_id", event.EmployeeID)
	return nil
}

func (s *MailService) renderWelcome(event dto.EmployeeOnboardedEvent) (string, error) {
	portal := ""
	if s.portalBaseURL != "" {
		portal = fmt.Sprintf("%s/employees/%d", strings.TrimRight(s.portalBaseURL, "/"), event.EmployeeID)
	}

	var buf bytes.Buffer
	err := welcomeTemplate.Execute(&buf, map[string]any{
		"Name":        html.UnescapeString(event.Name),
		"EmployeeID":  event.EmployeeID,
		"JobRole":     html.UnescapeString(event.JobRole),
		"Department":  html.UnescapeString(event.Department),
		"JoiningDate": event.JoiningDate,
		"PortalURL":   portal,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s *MailService) sendSMTPWithTimeout(to string, msg []byte) error {
	conn, err := net.DialTimeout("tcp", smtpAddr, 8*time.Second)
	if err != nil {
		return err
	}
	_ = conn.SetDeadline(time.Now().Add(15 * time.Second))

	c, err := smtp.NewClient(conn, smtpHost)
	if err != nil {
		return err
	}
	defer func() { _ = c.Quit() }()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: smtpHost}); err != nil {
			return err
		}
	}
	if err := c.Auth(smtp.PlainAuth("", s.gmailUser, s.gmailAppPass, smtpHost)); err != nil {
		return err
	}

	if err := c.Mail(s.mailFrom); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}

	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
