package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/martinnjensen/MetalWatch/internal/event"
)

// EmailConfig holds the SMTP settings for the email channel.
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// EmailNotifier delivers matched records as a single digest email.
type EmailNotifier struct {
	cfg  EmailConfig
	to   string
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewEmailNotifier creates an email notifier for the given recipient.
func NewEmailNotifier(cfg EmailConfig, to string) *EmailNotifier {
	return &EmailNotifier{cfg: cfg, to: to, send: smtp.SendMail}
}

// Notify sends one digest message covering all records. Cancellation is
// checked at entry; the SMTP dial itself is bounded by the server's
// connection handling.
func (n *EmailNotifier) Notify(ctx context.Context, records []*event.Record) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if n.to == "" {
		return nil, fmt.Errorf("no recipient address configured")
	}

	subject := fmt.Sprintf("MetalWatch: %d new concert(s)", len(records))
	body := FormatDigest(records)

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", n.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", n.to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%d", n.cfg.Host, n.cfg.Port)
	var auth smtp.Auth
	if n.cfg.Username != "" {
		auth = smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	}

	if err := n.send(addr, auth, n.cfg.From, []string{n.to}, []byte(msg.String())); err != nil {
		return nil, fmt.Errorf("sending mail: %w", err)
	}

	return &Result{
		Success:  true,
		Message:  fmt.Sprintf("emailed %d match(es) to %s", len(records), n.to),
		Notified: len(records),
	}, nil
}
