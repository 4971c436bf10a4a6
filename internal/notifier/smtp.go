package notifier

import (
	"fmt"
	"net/smtp"
	"strings"

	"WarrantSentinel/internal/config"
)

// SMTPNotifier mails the report, for recipients without Telegram.
type SMTPNotifier struct {
	cfg *config.SMTPConfig
}

// NewSMTPNotifier creates a mail notifier from the SMTP config.
func NewSMTPNotifier(cfg *config.SMTPConfig) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg}
}

func (s *SMTPNotifier) Name() string { return "smtp" }

// Send mails the text as an HTML body to all configured recipients.
func (s *SMTPNotifier) Send(text string) error {
	to := recipients(s.cfg.To)
	if len(to) == 0 {
		return fmt.Errorf("no smtp recipients configured")
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	msg := buildMessage(s.cfg.From, to, "WarrantSentinel Report", text)
	if err := smtp.SendMail(addr, auth, s.cfg.From, to, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

func recipients(to string) []string {
	var out []string
	for _, r := range strings.Split(to, ",") {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}

// buildMessage assembles a minimal HTML mail; the Telegram markup of the
// formatter renders acceptably in mail clients.
func buildMessage(from string, to []string, subject, body string) []byte {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("From: %s\r\n", from))
	b.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(to, ", ")))
	b.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "<br>\n"))
	return []byte(b.String())
}
