package sweego

import "strings"

// addressSpec is the address shape of the Sweego wire schema.
type addressSpec struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// extractEmail returns the content of the first <...> pair, trimmed.
// Without angle brackets the whole trimmed string is the address.
func extractEmail(s string) string {
	open := strings.Index(s, "<")
	if open >= 0 {
		if end := strings.Index(s[open+1:], ">"); end >= 0 {
			return strings.TrimSpace(s[open+1 : open+1+end])
		}
	}
	return strings.TrimSpace(s)
}

// extractName returns the part preceding the first <...> pair, with one
// layer of double quotes and one layer of single quotes stripped.
// Returns the trimmed input when no angle brackets are present, so
// callers can detect the "no display name" case by comparing against
// the input.
func extractName(s string) string {
	if open := strings.Index(s, "<"); open >= 0 {
		s = s[:open]
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSpace(trimQuotes(s, `"`))
	return strings.TrimSpace(trimQuotes(s, `'`))
}

// trimQuotes strips exactly one layer of surrounding quote characters.
func trimQuotes(s, quote string) string {
	if len(s) >= 2 && strings.HasPrefix(s, quote) && strings.HasSuffix(s, quote) {
		return s[1 : len(s)-1]
	}
	return s
}

// parseAddress converts a free-form address string into an addressSpec.
// Supported forms are `"Display Name" <email@domain>` and a bare
// `email@domain`. This is a deliberately small grammar, not a full
// RFC 2822 parser: it strips one bracket pair and one quote layer.
// The name is omitted when the string has no angle-bracket structure
// or when the extracted name equals the extracted email.
func parseAddress(s string) addressSpec {
	email := extractEmail(s)
	name := extractName(s)

	if name == s || name == email {
		return addressSpec{Email: email}
	}

	return addressSpec{Email: email, Name: name}
}

// parseAddressList converts a list of address strings, preserving order.
func parseAddressList(addrs []string) []addressSpec {
	specs := make([]addressSpec, len(addrs))
	for i, addr := range addrs {
		specs[i] = parseAddress(addr)
	}
	return specs
}
