package notifier

import (
	"bytes"
	"crypto/tls"
	"errors"
	"io"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"InvestBot/internal/config"
)

// fakeSMTP records every command it receives.
type fakeSMTP struct {
	calls   []string
	authErr error
	rcptErr error
	data    bytes.Buffer
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func (f *fakeSMTP) StartTLS(*tls.Config) error {
	f.calls = append(f.calls, "STARTTLS")
	return nil
}
func (f *fakeSMTP) Auth(smtp.Auth) error {
	f.calls = append(f.calls, "AUTH")
	return f.authErr
}
func (f *fakeSMTP) Mail(string) error {
	f.calls = append(f.calls, "MAIL")
	return nil
}
func (f *fakeSMTP) Rcpt(string) error {
	f.calls = append(f.calls, "RCPT")
	return f.rcptErr
}
func (f *fakeSMTP) Data() (io.WriteCloser, error) {
	f.calls = append(f.calls, "DATA")
	return nopWriteCloser{&f.data}, nil
}
func (f *fakeSMTP) Quit() error {
	f.calls = append(f.calls, "QUIT")
	return nil
}
func (f *fakeSMTP) Close() error {
	f.calls = append(f.calls, "CLOSE")
	return nil
}

func newTestMailer(fake *fakeSMTP, creds *config.Credentials) (*Mailer, *string) {
	var dialed string
	m := NewMailer("smtp.gmail.com", 587, creds)
	m.Dial = func(addr string) (SMTPClient, error) {
		dialed = addr
		return fake, nil
	}
	return m, &dialed
}

var testCreds = &config.Credentials{SenderAddress: "bot@example.com", SenderSecret: "app-password"}

func TestMailer_SendAlert_Success(t *testing.T) {
	fake := &fakeSMTP{}
	m, dialed := newTestMailer(fake, testCreds)

	ok := m.SendAlert("user@example.com", AlertSubject("PETR4.SA"), "<p>hi</p>")
	if !ok {
		t.Fatal("expected success")
	}
	if *dialed != "smtp.gmail.com:587" {
		t.Errorf("unexpected address %s", *dialed)
	}
	want := "STARTTLS,AUTH,MAIL,RCPT,DATA,QUIT,CLOSE"
	if got := strings.Join(fake.calls, ","); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
	msg := fake.data.String()
	for _, s := range []string{
		"From: bot@example.com\r\n",
		"To: user@example.com\r\n",
		"Subject: Alert: PETR4.SA - Buy Indication!\r\n",
		"Content-Type: text/html; charset=UTF-8\r\n",
		"<p>hi</p>",
	} {
		if !strings.Contains(msg, s) {
			t.Errorf("message missing %q:\n%s", s, msg)
		}
	}
}

func TestMailer_AuthFailure(t *testing.T) {
	fake := &fakeSMTP{authErr: errors.New("535 5.7.8 Username and Password not accepted")}
	m, _ := newTestMailer(fake, testCreds)

	res := m.Dispatch(testRequest())
	if res.OK {
		t.Fatal("expected failure")
	}
	if res.Err == nil || !strings.Contains(res.Err.Error(), "authenticate") {
		t.Errorf("expected authenticate error, got %v", res.Err)
	}
	want := "STARTTLS,AUTH,CLOSE"
	if got := strings.Join(fake.calls, ","); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
	if fake.data.Len() != 0 {
		t.Error("no message data should be written after auth failure")
	}
}

func TestMailer_RecipientRejected(t *testing.T) {
	fake := &fakeSMTP{rcptErr: errors.New("550 no such user")}
	m, _ := newTestMailer(fake, testCreds)
	if m.SendAlert("ghost@example.com", "s", "b") {
		t.Error("expected failure")
	}
}

func TestMailer_MissingCredentials(t *testing.T) {
	for _, creds := range []*config.Credentials{nil, {}, {SenderAddress: "bot@example.com"}} {
		fake := &fakeSMTP{}
		m, dialed := newTestMailer(fake, creds)
		res := m.Dispatch(testRequest())
		if res.OK || !errors.Is(res.Err, ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %+v", res)
		}
		if *dialed != "" || len(fake.calls) != 0 {
			t.Errorf("no connection expected, got %v", fake.calls)
		}
	}
}

func TestMailer_DialFailure(t *testing.T) {
	m := NewMailer("smtp.gmail.com", 587, testCreds)
	m.Dial = func(string) (SMTPClient, error) { return nil, errors.New("connection refused") }
	if m.SendAlert("user@example.com", "s", "b") {
		t.Error("expected failure")
	}
}

func TestComposeMessage_EncodesSubject(t *testing.T) {
	date := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	msg := string(ComposeMessage("a@x.com", "b@y.com", "Alerta de Ação", "line1\nline2", date))
	if !strings.Contains(msg, "Subject: =?UTF-8?q?") {
		t.Errorf("expected encoded subject:\n%s", msg)
	}
	if !strings.Contains(msg, "Date: Mon, 10 Mar 2025 18:00:00 +0000\r\n") {
		t.Errorf("unexpected date header:\n%s", msg)
	}
	if !strings.HasSuffix(msg, "\r\n\r\nline1\r\nline2") {
		t.Errorf("body should use CRLF line endings:\n%q", msg)
	}
}
