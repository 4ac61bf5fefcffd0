// Package trafilatura provides a profilescan.ContentSanitizer backed by
// go-trafilatura main-content detection.
package trafilatura

import (
	"strings"

	"github.com/fwojciec/profilescan"
	"github.com/markusmobius/go-trafilatura"
)

var _ profilescan.ContentSanitizer = (*Sanitizer)(nil)

// Sanitizer extracts the main text of a page with go-trafilatura. Pages
// where no main content is detected are passed to the fallback sanitizer.
type Sanitizer struct {
	fallback profilescan.ContentSanitizer
}

// NewSanitizer creates a Sanitizer that defers to fallback when
// extraction finds nothing.
func NewSanitizer(fallback profilescan.ContentSanitizer) *Sanitizer {
	return &Sanitizer{fallback: fallback}
}

// Sanitize returns at most profilescan.MaxRawContent bytes of cleaned text.
func (s *Sanitizer) Sanitize(html string) (string, error) {
	result, err := trafilatura.Extract(strings.NewReader(html), trafilatura.Options{EnableFallback: true})
	if err == nil && result != nil && strings.TrimSpace(result.ContentText) != "" {
		return profilescan.CleanText(result.ContentText), nil
	}

	if s.fallback == nil {
		if err != nil {
			return "", profilescan.WrapError(profilescan.ESANITIZE, err, "no main content found")
		}
		return "", nil
	}
	return s.fallback.Sanitize(html)
}
