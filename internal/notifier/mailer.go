package notifier

import (
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"InvestBot/internal/config"
	"InvestBot/internal/model"
)

// ErrMissingCredentials is returned when the sender address or secret is not configured.
var ErrMissingCredentials = errors.New("sender credentials not configured")

// SMTPClient is the subset of *smtp.Client used to submit one message.
type SMTPClient interface {
	StartTLS(config *tls.Config) error
	Auth(a smtp.Auth) error
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}

// Dialer opens a plain connection to a submission server.
type Dialer func(addr string) (SMTPClient, error)

// DialSMTP connects with net/smtp.
func DialSMTP(addr string) (SMTPClient, error) {
	c, err := smtp.Dial(addr)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Mailer sends alert e-mails through an authenticated STARTTLS submission port.
type Mailer struct {
	Host        string
	Port        int
	Credentials *config.Credentials
	Dial        Dialer
}

// NewMailer creates a mailer for the given submission endpoint.
func NewMailer(host string, port int, creds *config.Credentials) *Mailer {
	return &Mailer{
		Host:        host,
		Port:        port,
		Credentials: creds,
		Dial:        DialSMTP,
	}
}

// SendAlert sends one HTML message and reports whether it was accepted.
func (m *Mailer) SendAlert(recipient, subject, body string) bool {
	return m.Dispatch(model.NotificationRequest{
		Recipient: recipient,
		Subject:   subject,
		Body:      body,
	}).OK
}

// Dispatch sends req in a single attempt. Failures are logged and returned, never raised.
func (m *Mailer) Dispatch(req model.NotificationRequest) model.DispatchResult {
	if err := m.send(req); err != nil {
		log.Printf("[ERROR] send alert to %s: %v", req.Recipient, err)
		return model.DispatchResult{Err: err}
	}
	log.Printf("[INFO] alert sent to %s", req.Recipient)
	return model.DispatchResult{OK: true}
}

func (m *Mailer) send(req model.NotificationRequest) error {
	if m.Credentials == nil || !m.Credentials.Complete() {
		return ErrMissingCredentials
	}
	sender := m.Credentials.SenderAddress
	msg := ComposeMessage(sender, req.Recipient, req.Subject, req.Body, time.Now())

	addr := net.JoinHostPort(m.Host, strconv.Itoa(m.Port))
	c, err := m.Dial(addr)
	if err != nil {
		return fmt.Errorf("connect %s: %w", addr, err)
	}
	defer c.Close()

	if err := c.StartTLS(&tls.Config{ServerName: m.Host}); err != nil {
		return fmt.Errorf("starttls: %w", err)
	}
	if err := c.Auth(smtp.PlainAuth("", sender, m.Credentials.SenderSecret, m.Host)); err != nil {
		return fmt.Errorf("authenticate: %w", err)
	}
	if err := c.Mail(sender); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := c.Rcpt(req.Recipient); err != nil {
		return fmt.Errorf("rcpt to: %w", err)
	}
	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		w.Close()
		return fmt.Errorf("write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finish message: %w", err)
	}
	if err := c.Quit(); err != nil {
		return fmt.Errorf("quit: %w", err)
	}
	return nil
}

// ComposeMessage builds the RFC 5322 message with a single HTML part.
func ComposeMessage(from, to, subject, htmlBody string, date time.Time) []byte {
	headers := []struct{ key, value string }{
		{"From", from},
		{"To", to},
		{"Subject", mime.QEncoding.Encode("UTF-8", subject)},
		{"Date", date.Format(time.RFC1123Z)},
		{"MIME-Version", "1.0"},
		{"Content-Type", "text/html; charset=UTF-8"},
	}
	var msg strings.Builder
	for _, h := range headers {
		fmt.Fprintf(&msg, "%s: %s\r\n", h.key, h.value)
	}
	msg.WriteString("\r\n")
	msg.WriteString(strings.ReplaceAll(strings.ReplaceAll(htmlBody, "\r\n", "\n"), "\n", "\r\n"))
	return []byte(msg.String())
}
