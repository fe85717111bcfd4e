package http

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// TextSanitizer strips markup from free text written by couriers before it
// reaches the domain. Notes and comments are shown to dispatchers later.
type TextSanitizer struct {
	policy *bluemonday.Policy
}

func NewTextSanitizer() *TextSanitizer {
	return &TextSanitizer{policy: bluemonday.StrictPolicy()}
}

// Clean removes every tag and returns plain text. bluemonday escapes the
// remaining text for HTML, which is undone since the result is stored, not rendered.
func (s *TextSanitizer) Clean(raw string) string {
	if raw == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(raw)))
}

func (s *TextSanitizer) cleanPtr(raw *string) string {
	if raw == nil {
		return ""
	}
	return s.Clean(*raw)
}
