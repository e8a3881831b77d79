// Package mailer sends the operator notification for each new membership.
// Delivery is best-effort: the submission pipeline never waits on it and
// never fails because of it.
package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/wneessen/go-mail"

	"adhesion/internal/platform/config"
)

// Notifier delivers the new-membership email.
type Notifier interface {
	Notify(ctx context.Context, numero, fullName, artifactPath, photoPath string) error
}

// SMTPNotifier sends through the configured SMTP account. Missing
// credentials turn Notify into a logged no-op rather than an error.
type SMTPNotifier struct {
	cfg config.Mail
	log *slog.Logger
}

// NewSMTP returns a notifier using the given mail configuration.
func NewSMTP(cfg config.Mail, log *slog.Logger) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg, log: log}
}

// Configured reports whether sender credentials are present.
func (n *SMTPNotifier) Configured() bool {
	return n.cfg.User != "" && n.cfg.Password != ""
}

// Notify composes and sends the notification with the bulletin attached,
// plus the photo when one was submitted.
func (n *SMTPNotifier) Notify(ctx context.Context, numero, fullName, artifactPath, photoPath string) error {
	if !n.Configured() {
		n.log.InfoContext(ctx, "mail credentials missing, skipping notification", "numero", numero)
		return nil
	}

	msg, err := n.compose(numero, fullName, artifactPath, photoPath)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(n.cfg.Host,
		mail.WithPort(n.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(n.cfg.User),
		mail.WithPassword(n.cfg.Password),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("build smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send notification %s: %w", numero, err)
	}
	return nil
}

// compose builds the message without touching the network, so tests can
// validate subject, body, and attachments directly.
func (n *SMTPNotifier) compose(numero, fullName, artifactPath, photoPath string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(n.cfg.User); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", n.cfg.User, err)
	}
	if err := msg.To(n.cfg.Recipient()); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", n.cfg.Recipient(), err)
	}
	msg.Subject("Nouvelle adhésion : " + numero)
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(
		"Un nouvel adhérent vient de s'inscrire.\nNuméro : %s\nNom : %s\n", numero, fullName))

	msg.AttachFile(artifactPath, mail.WithFileName(numero+".pdf"))
	if photoPath != "" {
		msg.AttachFile(photoPath, mail.WithFileName("photo"+filepath.Ext(photoPath)))
	}
	return msg, nil
}
