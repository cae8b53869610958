// Package mail delivers outbound email.
package mail

import (
	"fmt"
	"net/mail"
	"net/smtp"
	"strings"
	"time"
)

// Message is a plain text email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers messages.
type Sender interface {
	Send(msg Message) error
}

// SMTPSender sends email via unauthenticated SMTP (Mailpit/MailHog-compatible).
type SMTPSender struct {
	addr string
	from string
}

// NewSMTPSender creates a sender for host:port using from as the envelope sender.
func NewSMTPSender(host, port, from string) *SMTPSender {
	host = strings.TrimSpace(host)
	port = strings.TrimSpace(port)
	from = strings.TrimSpace(from)
	if from == "" {
		from = "no-reply@booking.local"
	}
	return &SMTPSender{
		addr: fmt.Sprintf("%s:%s", host, port),
		from: from,
	}
}

// Send delivers msg.
func (s *SMTPSender) Send(msg Message) error {
	fromAddr, err := address(s.from)
	if err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	toAddr, err := address(msg.To)
	if err != nil {
		return fmt.Errorf("invalid recipient: %w", err)
	}
	data := BuildMessage(s.from, msg, time.Now())
	return smtp.SendMail(s.addr, nil, fromAddr, []string{toAddr}, []byte(data))
}

// address extracts the bare address from "Name <addr>".
func address(s string) (string, error) {
	a, err := mail.ParseAddress(s)
	if err != nil {
		return "", err
	}
	return a.Address, nil
}

// BuildMessage renders a minimal RFC 5322 message.
func BuildMessage(from string, msg Message, date time.Time) string {
	return fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nDate: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		from,
		msg.To,
		msg.Subject,
		date.Format(time.RFC1123Z),
		strings.ReplaceAll(msg.Body, "\n", "\r\n"),
	)
}
