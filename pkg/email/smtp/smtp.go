package smtp

import (
	"errors"
	"fmt"
	"time"

	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/pkg/email"

	"github.com/go-gomail/gomail"
)

const sendTimeout = 10 * time.Second

// SMTPSender delivers mail over SMTP. Sends are time-bounded so a stalled
// mail relay cannot hold a request open indefinitely.
type SMTPSender struct {
	from string
	pass string
	host string
	port int
}

func NewSMTPSender(from, pass, host string, port int) (*SMTPSender, error) {
	if !email.IsEmailValid(from) {
		return nil, errors.New("invalid from email")
	}

	return &SMTPSender{from: from, pass: pass, host: host, port: port}, nil
}

func (s *SMTPSender) Send(input email.SendEmailInput) error {
	if err := input.Validate(); err != nil {
		return fmt.Errorf("invalid send email input: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", input.To)
	msg.SetHeader("Subject", input.Subject)
	if input.Text != "" {
		msg.SetBody("text/plain", input.Text)
		msg.AddAlternative("text/html", input.Body)
	} else {
		msg.SetBody("text/html", input.Body)
	}

	dialer := gomail.NewDialer(s.host, s.port, s.from, s.pass)

	done := make(chan error, 1)
	go func() {
		done <- dialer.DialAndSend(msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send email via smtp: %w", err)
		}
		return nil
	case <-time.After(sendTimeout):
		return fmt.Errorf("smtp send to %s timed out after %s", input.To, sendTimeout)
	}
}
