package links

import "strings"

// Method represents a single unsubscribe method offered by a sender
type Method struct {
	Type string // "mailto" or "http"
	URL  string
}

// ParseListUnsubscribe parses an RFC 2369 List-Unsubscribe header value.
// Format: <mailto:unsub@example.com>, <https://example.com/unsub>
func ParseListUnsubscribe(header string) []Method {
	var methods []Method

	parts := strings.Split(header, "<")
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		end := strings.Index(part, ">")
		if end == -1 {
			continue
		}

		url := strings.TrimSpace(part[:end])
		switch {
		case strings.HasPrefix(url, "mailto:"):
			methods = append(methods, Method{Type: "mailto", URL: url})
		case strings.HasPrefix(url, "http://"), strings.HasPrefix(url, "https://"):
			methods = append(methods, Method{Type: "http", URL: url})
		}
	}

	return methods
}

// SupportsOneClick reports whether a List-Unsubscribe-Post header value
// advertises the RFC 8058 one-click POST flow.
func SupportsOneClick(post string) bool {
	return strings.Contains(strings.ToLower(post), "list-unsubscribe=one-click")
}
