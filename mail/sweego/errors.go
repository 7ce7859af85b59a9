package sweego

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidAttachment is returned when an attachment has no filename
// or no content. The send is aborted before any network call.
var ErrInvalidAttachment = errors.New("invalid attachment")

// ErrorDetail is a single entry of the Sweego error response body.
type ErrorDetail struct {
	Msg  string `json:"msg"`
	Type string `json:"type"`
}

// APIError is returned when Sweego rejects a send with a non-200
// status. It carries the HTTP status code and the decoded detail
// entries of the response body.
type APIError struct {
	StatusCode int
	Details    []ErrorDetail
}

// Error aggregates the status line and detail entries into a single
// human-readable message. Entries missing either field are skipped;
// the type segment is dropped when the type is the literal "null".
func (e *APIError) Error() string {
	var msg strings.Builder
	fmt.Fprintf(&msg, "Error sending email: %d %s.", e.StatusCode, http.StatusText(e.StatusCode))

	first := true
	for _, d := range e.Details {
		if d.Msg == "" || d.Type == "" {
			continue
		}

		if first {
			msg.WriteString(" ")
			first = false
		} else {
			msg.WriteString("; ")
		}

		if d.Type != "null" {
			fmt.Fprintf(&msg, "Type: %q, ", d.Type)
		}
		fmt.Fprintf(&msg, "Message: %q", d.Msg)
	}

	return msg.String()
}

// IsInvalidAttachment checks if err was caused by a malformed attachment.
func IsInvalidAttachment(err error) bool {
	return errors.Is(err, ErrInvalidAttachment)
}

// AsAPIError extracts an *APIError from err, if any.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
