package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"heritage_cms/internal/config"

	"github.com/wneessen/go-mail"
)

// Mailer sends admin notifications over SMTP. A fresh client is built
// per send so a dead connection never survives between notifications.
type Mailer struct {
	log *slog.Logger

	host     string
	port     int
	username string
	password string
	from     string
	to       string
}

func New(log *slog.Logger, cfg config.SMTPConfig, adminEmail string) *Mailer {
	return &Mailer{
		log:      log,
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.Username,
		password: cfg.Password,
		from:     cfg.From,
		to:       adminEmail,
	}
}

// SendContactMessage delivers the new-contact notification to the
// configured admin address.
func (m *Mailer) SendContactMessage(ctx context.Context, name, email, message string) error {
	const op = "mailer.SendContactMessage"

	body := fmt.Sprintf("New message received:\n\nName: %s\nEmail: %s\n\nMessage:\n%s", name, email, message)

	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("%s: invalid from address: %w", op, err)
	}
	if err := msg.To(m.to); err != nil {
		return fmt.Errorf("%s: invalid to address: %w", op, err)
	}
	msg.Subject("New contact message from " + name)
	msg.SetBodyString(mail.TypeTextPlain, body)

	opts := []mail.Option{
		mail.WithPort(m.port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if m.username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.username),
			mail.WithPassword(m.password),
		)
	}

	client, err := mail.NewClient(m.host, opts...)
	if err != nil {
		return fmt.Errorf("%s: smtp client init failed: %w", op, err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	m.log.Info("contact notification sent",
		slog.String("op", op),
		slog.String("to", m.to),
	)

	return nil
}
