package notify

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

// Email sends kitchen tickets over SMTP.
type Email struct {
	dialer *gomail.Dialer
	from   string
}

// NewEmail configures an SMTP sender. Port 465 uses implicit TLS; other
// ports negotiate STARTTLS.
func NewEmail(host string, port int, username, password string) *Email {
	d := gomail.NewDialer(host, port, username, password)
	d.SSL = port == 465
	return &Email{dialer: d, from: username}
}

// Send delivers one kitchen ticket. gomail has no context support, so the
// dial runs in a goroutine and the caller's deadline is applied here.
func (e *Email) Send(ctx context.Context, msg Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", e.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)

	done := make(chan error, 1)
	go func() { done <- e.dialer.DialAndSend(m) }()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("sending kitchen email for %s: %w", msg.OrderID, err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
