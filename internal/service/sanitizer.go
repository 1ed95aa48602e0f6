package service

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer cleans user supplied text before it is stored.
type Sanitizer struct {
	content *bluemonday.Policy
	plain   *bluemonday.Policy
}

// NewSanitizer allows user-generated-content HTML in article bodies and no
// markup at all in single-line fields.
func NewSanitizer() *Sanitizer {
	content := bluemonday.UGCPolicy()
	content.RequireNoFollowOnLinks(true)
	content.AddTargetBlankToFullyQualifiedLinks(true)

	return &Sanitizer{
		content: content,
		plain:   bluemonday.StrictPolicy(),
	}
}

// Content sanitizes an article body.
func (s *Sanitizer) Content(html string) string {
	return strings.TrimSpace(s.content.Sanitize(html))
}

// Plain strips every tag from a single-line field such as a name or title.
// The result is plain text: entities are decoded again, escaping is the
// renderer's job.
func (s *Sanitizer) Plain(text string) string {
	return strings.TrimSpace(html.UnescapeString(s.plain.Sanitize(text)))
}
