package email

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

// Sender delivers account-verification mail. The signup flow only ever needs
// this one message type.
type Sender interface {
	SendVerificationEmail(ctx context.Context, to, username, code string) error
}

type SMTPSender struct {
	client *mail.Client
	from   string
}

func NewSMTPSender(host string, port int, username, password, from string) (*SMTPSender, error) {
	opts := []mail.Option{mail.WithPort(port)}
	if username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(username),
			mail.WithPassword(password),
		)
	}

	client, err := mail.NewClient(host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail client: %w", err)
	}

	return &SMTPSender{client: client, from: from}, nil
}

func (s *SMTPSender) SendVerificationEmail(ctx context.Context, to, username, code string) error {
	m := mail.NewMsg()
	if err := m.From(s.from); err != nil {
		return fmt.Errorf("failed to set from address: %w", err)
	}
	if err := m.To(to); err != nil {
		return fmt.Errorf("failed to set to address: %w", err)
	}

	m.Subject("Your verification code")
	m.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(
		"Hello %s,\n\nThank you for registering. Your verification code is: %s\n\nThe code expires in one hour. If you did not request this, please ignore this email.\n",
		username, code,
	))

	if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	return nil
}
