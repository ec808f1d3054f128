// Package mail delivers finished reports over SMTP.
package mail

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net"
	"net/smtp"
	"strings"

	"github.com/rbright/canvass/internal/report"
)

// Sender delivers a rendered report.
type Sender interface {
	Send(ctx context.Context, r report.Report) error
}

// SendFunc adapts a function to the Sender interface.
type SendFunc func(ctx context.Context, r report.Report) error

func (f SendFunc) Send(ctx context.Context, r report.Report) error {
	return f(ctx, r)
}

// Config carries SMTP delivery settings.
type Config struct {
	Host     string
	Port     int
	Login    string
	Password string
	From     string
	FromName string
	To       []string
}

func (c Config) validate() error {
	if c.Host == "" {
		return errors.New("smtp host is required")
	}
	if c.Port <= 0 {
		return fmt.Errorf("invalid smtp port %d", c.Port)
	}
	if c.From == "" {
		return errors.New("from address is required")
	}
	if len(c.To) == 0 {
		return errors.New("at least one recipient is required")
	}
	return nil
}

// SMTPSender sends reports as HTML mail with PLAIN auth over STARTTLS.
type SMTPSender struct {
	cfg  Config
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPSender validates the config and constructs a sender.
func NewSMTPSender(cfg Config) (*SMTPSender, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &SMTPSender{cfg: cfg, send: smtp.SendMail}, nil
}

// Send renders the report and submits it once per configured recipient.
// A refused mailbox cannot block delivery to the others; the returned
// error joins one wrapped failure per undeliverable address.
func (s *SMTPSender) Send(ctx context.Context, r report.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	addr := net.JoinHostPort(s.cfg.Host, fmt.Sprintf("%d", s.cfg.Port))
	var auth smtp.Auth
	if s.cfg.Login != "" {
		auth = smtp.PlainAuth("", s.cfg.Login, s.cfg.Password, s.cfg.Host)
	}
	msg := s.message(r)

	var errs []error
	for _, rcpt := range s.cfg.To {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := s.send(addr, auth, s.cfg.From, []string{rcpt}, msg); err != nil {
			errs = append(errs, fmt.Errorf("send report to %s: %w", rcpt, err))
		}
	}
	return errors.Join(errs...)
}

func (s *SMTPSender) message(r report.Report) []byte {
	from := s.cfg.From
	if s.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.cfg.FromName, s.cfg.From)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(s.cfg.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", r.Subject())
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(RenderHTML(r))
	return []byte(b.String())
}

// RenderHTML formats a report as the HTML mail body: the total up top,
// then every answered question with its score and audio reference.
func RenderHTML(r report.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>Total Score: %d/%d</h2><br>", r.TotalScore, r.MaxScore)
	b.WriteString("<h3>Recorded Data:</h3><br>")
	for _, line := range r.Lines {
		fmt.Fprintf(&b, "<b>Question:</b> %s<br><b>Answer:</b> %s",
			html.EscapeString(line.Question), html.EscapeString(line.Answer))
		if line.RemoteRef != "" {
			fmt.Fprintf(&b, "<br><b>Remote Path:</b> %s", html.EscapeString(line.RemoteRef))
		}
		if line.Score != nil {
			fmt.Fprintf(&b, "<br><b>Score:</b> %d", *line.Score)
		}
		b.WriteString("<br><br>")
	}
	return b.String()
}
