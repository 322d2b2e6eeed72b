package email

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wneessen/go-mail"

	"github.com/Apurer/go-gin-marketplace/internal/domains/notifications/domain"
	"github.com/Apurer/go-gin-marketplace/internal/domains/notifications/ports"
)

const (
	defaultSMTPPort = 587
	implicitTLSPort = 465
)

var _ ports.EmailSender = (*SMTPSender)(nil)

// SMTPSender delivers through an SMTP relay with go-mail. STARTTLS is used
// when offered, and port 465 connects with implicit TLS.
type SMTPSender struct {
	host    string
	from    string
	deliver func(ctx context.Context, msg *mail.Msg) error
}

func NewSMTPSender(cfg Config) (*SMTPSender, error) {
	port := cfg.Port
	if port <= 0 {
		port = defaultSMTPPort
	}
	opts := []mail.Option{mail.WithPort(port), mail.WithTimeout(15 * time.Second)}
	if port == implicitTLSPort {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}
	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}

	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return &SMTPSender{
		host: cfg.Host,
		from: from,
		deliver: func(ctx context.Context, msg *mail.Msg) error {
			return client.DialAndSendWithContext(ctx, msg)
		},
	}, nil
}

// Send returns the Message-ID of the delivered email.
func (s *SMTPSender) Send(ctx context.Context, email domain.Email) (string, error) {
	id := uuid.NewString() + "@" + s.host
	msg, err := s.compose(email, id)
	if err != nil {
		return "", err
	}
	if err := s.deliver(ctx, msg); err != nil {
		return "", fmt.Errorf("smtp send: %w", err)
	}
	return "<" + id + ">", nil
}

func (s *SMTPSender) compose(email domain.Email, messageID string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", s.from, err)
	}
	if err := msg.To(email.To); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", email.To, err)
	}
	msg.Subject(email.Subject)
	msg.SetDate()
	msg.SetMessageIDWithValue(messageID)

	switch {
	case email.HTML == "":
		msg.SetBodyString(mail.TypeTextPlain, email.Text)
	case email.Text == "":
		msg.SetBodyString(mail.TypeTextHTML, email.HTML)
	default:
		msg.SetBodyString(mail.TypeTextPlain, email.Text)
		msg.AddAlternativeString(mail.TypeTextHTML, email.HTML)
	}
	return msg, nil
}
