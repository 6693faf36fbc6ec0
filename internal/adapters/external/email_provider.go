package external

import (
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"strings"

	"weathertracker.app/internal/ports"
	"weathertracker.app/pkg/errors"
)

// SMTPEmailProviderAdapter implements EmailProvider port using SMTP.
// STARTTLS is used when offered; auth only when credentials are set.
type SMTPEmailProviderAdapter struct {
	cfg ports.EmailConfig
}

func NewSMTPEmailProviderAdapter(cfg ports.EmailConfig) *SMTPEmailProviderAdapter {
	return &SMTPEmailProviderAdapter{cfg: cfg}
}

func (p *SMTPEmailProviderAdapter) ValidateConfiguration() error {
	if p.cfg.SMTPHost == "" {
		return errors.NewConfigurationError("SMTP host cannot be empty", nil)
	}
	if p.cfg.SMTPPort < 1 || p.cfg.SMTPPort > 65535 {
		return errors.NewConfigurationError("SMTP port must be between 1 and 65535", nil)
	}
	if _, err := mail.ParseAddress(p.cfg.FromAddress); err != nil {
		return errors.NewConfigurationError("from address is invalid", err)
	}
	return nil
}

func (p *SMTPEmailProviderAdapter) Address() string {
	return net.JoinHostPort(p.cfg.SMTPHost, strconv.Itoa(p.cfg.SMTPPort))
}

// SendEmail delivers one message. The context deadline bounds the whole SMTP conversation.
func (p *SMTPEmailProviderAdapter) SendEmail(ctx context.Context, params ports.EmailParams) error {
	if params.To == "" {
		return errors.NewValidationError("recipient email cannot be empty")
	}
	if params.Subject == "" {
		return errors.NewValidationError("email subject cannot be empty")
	}
	if params.Body == "" {
		return errors.NewValidationError("email body cannot be empty")
	}

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", p.Address())
	if err != nil {
		return errors.NewEmailError("failed to connect to SMTP server", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, p.cfg.SMTPHost)
	if err != nil {
		_ = conn.Close()
		return errors.NewEmailError("failed to start SMTP session", err)
	}
	defer func() { _ = client.Close() }()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: p.cfg.SMTPHost}); err != nil {
			return errors.NewEmailError("failed to establish TLS", err)
		}
	}
	if p.cfg.SMTPUsername != "" && p.cfg.SMTPPassword != "" {
		auth := smtp.PlainAuth("", p.cfg.SMTPUsername, p.cfg.SMTPPassword, p.cfg.SMTPHost)
		if err := client.Auth(auth); err != nil {
			return errors.NewEmailError("failed to authenticate", err)
		}
	}

	if err := client.Mail(p.cfg.FromAddress); err != nil {
		return errors.NewEmailError("failed to set sender", err)
	}
	if err := client.Rcpt(params.To); err != nil {
		return errors.NewEmailError("failed to set recipient", err)
	}

	w, err := client.Data()
	if err != nil {
		return errors.NewEmailError("failed to open message body", err)
	}
	if _, err := w.Write([]byte(p.buildMessage(params))); err != nil {
		_ = w.Close()
		return errors.NewEmailError("failed to write message", err)
	}
	if err := w.Close(); err != nil {
		return errors.NewEmailError("server rejected message", err)
	}

	// the message is accepted at this point
	_ = client.Quit()
	return nil
}

func (p *SMTPEmailProviderAdapter) buildMessage(params ports.EmailParams) string {
	contentType := "text/plain"
	if params.IsHTML {
		contentType = "text/html"
	}
	from := mail.Address{Name: p.cfg.FromName, Address: p.cfg.FromAddress}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from.String())
	fmt.Fprintf(&b, "To: %s\r\n", params.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", params.Subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: %s; charset=UTF-8\r\n", contentType)
	b.WriteString("\r\n")
	b.WriteString(params.Body)
	return b.String()
}
