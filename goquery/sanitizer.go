package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/profilescan"
)

var _ profilescan.ContentSanitizer = (*Sanitizer)(nil)

// nonContentSelector matches elements removed before text extraction.
const nonContentSelector = "script, style, nav, footer, header, iframe, noscript"

// contentSelectors are generic main-content containers in priority order.
var contentSelectors = []string{
	"main",
	".main-content",
	"#main-content",
	".profile-content",
	".user-profile",
	".gig-page",
	".freelancer-profile",
	".profile-container",
	".content",
	".container",
	"article",
	"section",
}

// Sanitizer reduces rendered HTML to bounded plain text.
type Sanitizer struct{}

// NewSanitizer creates a new Sanitizer.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{}
}

// Sanitize removes non-content elements, selects the first matching content
// region (falling back to the body), and cleans the text with
// profilescan.CleanText.
func (s *Sanitizer) Sanitize(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", profilescan.WrapError(profilescan.ESANITIZE, err, "failed to parse HTML")
	}

	doc.Find(nonContentSelector).Remove()

	var content string
	for _, selector := range contentSelectors {
		// Use the first matching region only.
		if region := doc.Find(selector); region.Length() > 0 {
			content = selectionText(region)
			break
		}
	}
	if strings.TrimSpace(content) == "" {
		content = selectionText(doc.Find("body"))
	}

	return profilescan.CleanText(content), nil
}
