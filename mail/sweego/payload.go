package sweego

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/pure-golang/mail-adapters/mail"
)

// payload is the Sweego wire schema for a send request. Optional
// fields are omitted entirely when unset, never sent as zero values.
type payload struct {
	Provider    string            `json:"provider"`
	Channel     string            `json:"channel"`
	Recipients  []addressSpec     `json:"recipients"`
	From        addressSpec       `json:"from"`
	Subject     string            `json:"subject"`
	DryRun      bool              `json:"dry-run,omitempty"`
	Text        string            `json:"message-txt,omitempty"`
	HTML        string            `json:"message-html,omitempty"`
	Attachments []attachment      `json:"attachments,omitempty"`
	Headers     map[string]string `json:"headers,omitempty"`
	ReplyTo     *addressSpec      `json:"reply_to,omitempty"`
}

// attachment is the wire shape of an attached file. Content is
// base64-encoded by the JSON marshaler.
type attachment struct {
	Filename string `json:"filename"`
	Content  []byte `json:"content"`
}

// buildPayload assembles the wire payload for a single email.
// The Sweego send endpoint accepts only direct recipients; Cc and Bcc
// are not transmitted.
func (s *Sender) buildPayload(email mail.Email) (*payload, error) {
	attachments, err := mapAttachments(email.Attachments)
	if err != nil {
		return nil, err
	}

	p := &payload{
		Provider:    providerName,
		Channel:     channelEmail,
		Recipients:  parseAddressList(email.To),
		From:        s.fromAddress(email),
		Subject:     email.Subject,
		DryRun:      s.cfg.DryRun,
		Text:        email.Text,
		HTML:        email.HTML,
		Attachments: attachments,
		Headers:     mapHeaders(email.Headers),
	}

	if len(email.ReplyTo) > 0 {
		replyTo := parseAddress(email.ReplyTo[0])
		p.ReplyTo = &replyTo
	}

	return p, nil
}

// fromAddress resolves the sender, falling back to the configured
// default identity when the email carries no From value.
func (s *Sender) fromAddress(email mail.Email) addressSpec {
	if email.From == "" {
		return addressSpec{
			Email: s.cfg.FromEmail,
			Name:  s.cfg.FromName,
		}
	}
	return parseAddress(email.From)
}

// mapAttachments validates attachments and converts them to wire shape.
// An absent list stays absent.
func mapAttachments(attachments []mail.Attachment) ([]attachment, error) {
	if attachments == nil {
		return nil, nil
	}

	mapped := make([]attachment, len(attachments))
	for i, a := range attachments {
		if a.Filename == "" {
			return nil, errors.Wrapf(ErrInvalidAttachment, "attachment %d has no filename", i)
		}
		if len(a.Content) == 0 {
			return nil, errors.Wrapf(ErrInvalidAttachment, "attachment %q has no content", a.Filename)
		}

		mapped[i] = attachment{
			Filename: a.Filename,
			Content:  a.Content,
		}
	}

	return mapped, nil
}

// mapHeaders flattens multi-valued headers into single comma-joined
// strings. Headers with no values are dropped.
func mapHeaders(headers map[string][]string) map[string]string {
	if len(headers) == 0 {
		return nil
	}

	mapped := make(map[string]string, len(headers))
	for key, values := range headers {
		if len(values) == 0 {
			continue
		}
		mapped[key] = strings.Join(values, ", ")
	}

	if len(mapped) == 0 {
		return nil
	}

	return mapped
}
