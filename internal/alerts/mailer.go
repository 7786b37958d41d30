package alerts

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rogerio-castellano/inventory-billing/internal/config"
	"go.uber.org/zap"
)

// Mailer sends alert mail in the background. A nil *Mailer sends nothing.
type Mailer struct {
	cfg  config.SMTPConfig
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewMailer returns nil when SMTP is not configured.
func NewMailer(cfg config.SMTPConfig) *Mailer {
	if !cfg.Enabled() {
		return nil
	}
	return &Mailer{cfg: cfg, send: smtp.SendMail}
}

func (m *Mailer) message(subject, contentType, body string) []byte {
	return []byte(strings.Join([]string{
		"From: " + m.cfg.From,
		"To: " + m.cfg.To,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		fmt.Sprintf("Content-Type: %s; charset=\"UTF-8\"", contentType),
		"",
		body,
	}, "\r\n"))
}

func (m *Mailer) deliver(msg []byte, onSuccess string) {
	if m == nil {
		return
	}
	addr := fmt.Sprintf("%s:%s", m.cfg.Server, m.cfg.Port)
	var auth smtp.Auth
	if !m.cfg.AuthDisabled {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Server)
	}

	go func() {
		if err := m.send(addr, auth, m.cfg.From, []string{m.cfg.To}, msg); err != nil {
			zap.L().Error("❌ Failed to send email", zap.Error(err))
			return
		}
		if onSuccess != "" {
			zap.L().Info(onSuccess)
		}
	}()
}

func (m *Mailer) SendText(subject, body string) {
	if m == nil {
		return
	}
	m.deliver(m.message(subject, "text/plain", body), "")
}

func (m *Mailer) SendHTML(subject, body, onSuccess string) {
	if m == nil {
		return
	}
	m.deliver(m.message(subject, "text/html", body), onSuccess)
}
