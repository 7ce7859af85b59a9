package noop

import (
	"context"

	"github.com/google/uuid"

	"github.com/pure-golang/mail-adapters/mail"
)

var _ mail.Mailer = (*Mailer)(nil)

// Mailer is a no-op mail.Mailer for testing. It acknowledges every
// email with a synthetic transaction id and never performs I/O.
type Mailer struct {
	closed bool
}

// NewMailer creates a new no-op Mailer.
func NewMailer() *Mailer {
	return &Mailer{
		closed: false,
	}
}

// Name returns the provider identifier.
func (m *Mailer) Name() string {
	return "noop"
}

// Send discards the email and acknowledges it.
func (m *Mailer) Send(ctx context.Context, email mail.Email) (*mail.Result, error) {
	_ = email // Discard

	return &mail.Result{
		Provider:      "noop",
		Channel:       "email",
		TransactionID: uuid.NewString(),
		MessageIDs:    map[string][]string{},
	}, nil
}

// Close is a no-op.
func (m *Mailer) Close() error {
	m.closed = true
	return nil
}
