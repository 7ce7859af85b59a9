package mail

import (
	"context"
	"fmt"
	"io"
)

// Mailer sends transactional emails through a provider API.
type Mailer interface {
	// Name returns the provider identifier, e.g. "sweego".
	Name() string

	// Send delivers a single email and returns the provider's
	// acknowledgement. A nil Result always comes with a non-nil error.
	Send(ctx context.Context, email Email) (*Result, error)

	io.Closer
}

// Email represents an email message as supplied by the host application.
// Address-bearing fields accept either a bare address ("john@example.com")
// or a display-name form (`"John Doe" <john@example.com>`).
type Email struct {
	// Envelope
	From    string   // optional, provider default is used when empty
	To      []string // at least one recipient
	Cc      []string
	Bcc     []string
	Subject string

	// Headers holds custom headers; multi-valued headers are allowed
	// and providers flatten them as needed.
	Headers map[string][]string

	ReplyTo []string

	// Body
	Text string // plain text body
	HTML string // HTML body (optional)

	Attachments []Attachment
}

// Attachment represents a file attached to an email.
type Attachment struct {
	Filename string
	Content  []byte
}

// TextAttachment builds an Attachment from textual content,
// encoding it as UTF-8 bytes.
func TextAttachment(filename, content string) Attachment {
	return Attachment{
		Filename: filename,
		Content:  []byte(content),
	}
}

// Result is a provider's acknowledgement of an accepted message.
type Result struct {
	Provider      string              // provider identifier
	Channel       string              // delivery channel, e.g. "email"
	TransactionID string              // provider transaction id
	MessageIDs    map[string][]string // provider-assigned message ids
}

// Recipient formats a display name and an address into the
// `Name <email>` form understood by the Email address fields.
// Returns the bare address when name is empty.
func Recipient(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}
