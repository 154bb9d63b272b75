package utils

import (
	"html"
	"strings"
)

// EscapeHTML makes user supplied text safe inside HTML parse mode messages.
func EscapeHTML(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}

// OrDefault returns def when s is blank.
func OrDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
