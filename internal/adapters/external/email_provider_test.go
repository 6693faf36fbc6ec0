package external

import (
	"bufio"
	"context"
	"net"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weathertracker.app/internal/ports"
	"weathertracker.app/pkg/errors"
)

// fakeSMTPServer accepts one session and records the DATA payload
type fakeSMTPServer struct {
	listener net.Listener
	messages chan string
}

func startFakeSMTPServer(t *testing.T, rejectRcpt bool) *fakeSMTPServer {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	s := &fakeSMTPServer{listener: ln, messages: make(chan string, 1)}
	go s.serve(rejectRcpt)
	return s
}

func (s *fakeSMTPServer) serve(rejectRcpt bool) {
	conn, err := s.listener.Accept()
	if err != nil {
		return
	}
	defer conn.Close()

	r := bufio.NewReader(conn)
	write := func(line string) { _, _ = conn.Write([]byte(line + "\r\n")) }
	write("220 localhost ESMTP")

	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return
		}
		cmd := strings.ToUpper(strings.TrimSpace(line))
		switch {
		case strings.HasPrefix(cmd, "EHLO"), strings.HasPrefix(cmd, "HELO"):
			write("250-localhost")
			write("250 8BITMIME")
		case strings.HasPrefix(cmd, "MAIL"):
			write("250 OK")
		case strings.HasPrefix(cmd, "RCPT"):
			if rejectRcpt {
				write("550 no such user")
				continue
			}
			write("250 OK")
		case cmd == "DATA":
			write("354 go ahead")
			var body strings.Builder
			for {
				l, err := r.ReadString('\n')
				if err != nil {
					return
				}
				if l == ".\r\n" {
					break
				}
				body.WriteString(l)
			}
			s.messages <- body.String()
			write("250 queued")
		case cmd == "QUIT":
			write("221 bye")
			return
		default:
			write("250 OK")
		}
	}
}

func (s *fakeSMTPServer) config() ports.EmailConfig {
	host, port, _ := net.SplitHostPort(s.listener.Addr().String())
	p, _ := strconv.Atoi(port)
	return ports.EmailConfig{SMTPHost: host, SMTPPort: p, FromName: "Weather Tracker", FromAddress: "alerts@example.com"}
}

func TestSMTPEmailProvider_SendEmail(t *testing.T) {
	server := startFakeSMTPServer(t, false)
	provider := NewSMTPEmailProviderAdapter(server.config())

	err := provider.SendEmail(context.Background(), ports.EmailParams{
		To:      "olena@example.com",
		Subject: "Extreme heat warning: 36°C (Kyiv)",
		Body:    "<p>hot</p>",
		IsHTML:  true,
	})
	require.NoError(t, err)

	select {
	case msg := <-server.messages:
		assert.Contains(t, msg, "To: olena@example.com")
		assert.Contains(t, msg, `From: "Weather Tracker" <alerts@example.com>`)
		assert.Contains(t, msg, "Subject: =?utf-8?q?")
		assert.Contains(t, msg, "Content-Type: text/html; charset=UTF-8")
		assert.Contains(t, msg, "<p>hot</p>")
	case <-time.After(2 * time.Second):
		t.Fatal("message not received")
	}
}

func TestSMTPEmailProvider_SendEmail_RecipientRejected(t *testing.T) {
	server := startFakeSMTPServer(t, true)
	provider := NewSMTPEmailProviderAdapter(server.config())

	err := provider.SendEmail(context.Background(), ports.EmailParams{To: "ghost@example.com", Subject: "s", Body: "b"})

	assert.True(t, errors.IsEmailError(err))
}

func TestSMTPEmailProvider_SendEmail_ConnectionRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	cfg := ports.EmailConfig{SMTPHost: "127.0.0.1", SMTPPort: ln.Addr().(*net.TCPAddr).Port, FromAddress: "a@example.com"}
	require.NoError(t, ln.Close())

	err = NewSMTPEmailProviderAdapter(cfg).SendEmail(context.Background(), ports.EmailParams{To: "x@example.com", Subject: "s", Body: "b"})

	assert.True(t, errors.IsEmailError(err))
}

func TestSMTPEmailProvider_SendEmail_Validation(t *testing.T) {
	provider := NewSMTPEmailProviderAdapter(ports.EmailConfig{})

	tests := []struct {
		name   string
		params ports.EmailParams
	}{
		{"NoRecipient", ports.EmailParams{Subject: "s", Body: "b"}},
		{"NoSubject", ports.EmailParams{To: "a@example.com", Body: "b"}},
		{"NoBody", ports.EmailParams{To: "a@example.com", Subject: "s"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := provider.SendEmail(context.Background(), tt.params)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}

func TestSMTPEmailProvider_ValidateConfiguration(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ports.EmailConfig
		wantErr bool
	}{
		{"Mailhog", ports.EmailConfig{SMTPHost: "mailhog", SMTPPort: 1025, FromAddress: "alerts@example.com"}, false},
		{"MissingHost", ports.EmailConfig{SMTPPort: 587, FromAddress: "alerts@example.com"}, true},
		{"BadPort", ports.EmailConfig{SMTPHost: "smtp.example.com", SMTPPort: 70000, FromAddress: "alerts@example.com"}, true},
		{"BadFrom", ports.EmailConfig{SMTPHost: "smtp.example.com", SMTPPort: 587, FromAddress: "not-an-address"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewSMTPEmailProviderAdapter(tt.cfg).ValidateConfiguration()
			if tt.wantErr {
				assert.True(t, errors.IsConfigurationError(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
