// Package smtp delivers transactional mail for resume-forge over plain SMTP
// with STARTTLS when the server offers it.
package smtp

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"strings"
	"time"

	"resume-forge/internal/config"
)

const dialTimeout = 30 * time.Second

// Mailer implements auth.Mailer over net/smtp.
type Mailer struct {
	host      string
	port      int
	username  string
	password  string
	from      string
	fromName  string
	ttl       time.Duration
	templates *template.Template
}

// VerificationData feeds the verification email template.
type VerificationData struct {
	Code    string
	AppName string
	TTL     string
}

// New builds a Mailer from config and parses the embedded templates.
func New(cfg config.Config) (*Mailer, error) {
	tmpl, err := template.New("emails").Parse(emailTemplates)
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &Mailer{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUser,
		password:  cfg.SMTPPassword,
		from:      cfg.SMTPFrom,
		fromName:  cfg.SMTPFromName,
		templates: tmpl,
		ttl:       time.Duration(cfg.VerificationCodeTTL) * time.Minute,
	}, nil
}

// SendVerificationCode emails the 6-digit signup code.
func (m *Mailer) SendVerificationCode(ctx context.Context, to, code string) error {
	body, err := m.render("verification", VerificationData{
		Code:    code,
		AppName: m.appName(),
		TTL:     formatTTL(m.ttl),
	})
	if err != nil {
		return fmt.Errorf("failed to render verification template: %w", err)
	}

	return m.Send(ctx, to, "Your verification code", body)
}

// Send delivers one HTML message.
func (m *Mailer) Send(ctx context.Context, to, subject, body string) error {
	from := m.from
	if m.fromName != "" {
		from = fmt.Sprintf("%s <%s>", m.fromName, m.from)
	}

	var msg strings.Builder
	msg.WriteString("From: " + from + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	return m.send(ctx, to, msg.String())
}

func (m *Mailer) send(ctx context.Context, to, message string) error {
	addr := net.JoinHostPort(m.host, fmt.Sprintf("%d", m.port))

	dialer := &net.Dialer{Timeout: dialTimeout}
	netConn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to dial SMTP server %s: %w", addr, err)
	}

	if dl, ok := ctx.Deadline(); ok {
		_ = netConn.SetDeadline(dl)
	} else {
		_ = netConn.SetDeadline(time.Now().Add(dialTimeout))
	}

	conn, err := smtp.NewClient(netConn, m.host)
	if err != nil {
		_ = netConn.Close()
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer func() {
		_ = conn.Close()
	}()

	if err = conn.Hello("localhost"); err != nil {
		return fmt.Errorf("failed to send HELO: %w", err)
	}

	if ok, _ := conn.Extension("STARTTLS"); ok {
		tlsConfig := &tls.Config{ServerName: m.host}
		if err = conn.StartTLS(tlsConfig); err != nil {
			return fmt.Errorf("failed to start TLS: %w", err)
		}
	}

	if m.username != "" && m.password != "" {
		auth := smtp.PlainAuth("", m.username, m.password, m.host)
		if err = conn.Auth(auth); err != nil {
			return fmt.Errorf("failed to authenticate: %w", err)
		}
	}

	if err = conn.Mail(m.from); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err = conn.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := conn.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err = w.Write([]byte(message)); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	return conn.Quit()
}

func (m *Mailer) appName() string {
	if m.fromName != "" {
		return m.fromName
	}
	return "Resume Forge"
}

func (m *Mailer) render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := m.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func formatTTL(d time.Duration) string {
	if d >= time.Hour && d%time.Hour == 0 {
		h := int(d / time.Hour)
		if h == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", h)
	}
	return fmt.Sprintf("%d minutes", int(d/time.Minute))
}
