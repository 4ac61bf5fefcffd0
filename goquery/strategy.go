package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/profilescan"
)

// Placeholders are the declared defaults used when a field defined for the
// platform yields no content.
type Placeholders struct {
	Title       string
	Description string
	Pricing     string
	Experience  string
	Rating      string
	Reviews     string
}

// DefaultPlaceholders returns the platform-neutral placeholder set.
func DefaultPlaceholders() Placeholders {
	return Placeholders{
		Title:       "No title available",
		Description: "No description available",
		Pricing:     "No pricing available",
		Experience:  "No experience listed",
		Rating:      "No rating available",
		Reviews:     "No reviews available",
	}
}

// Strategy is the extraction rule set for one platform.
//
// Scalar fields are ordered candidate chains; the first non-empty candidate
// wins. A field without candidates is a concept the platform does not have
// and is always emitted empty.
type Strategy struct {
	Platform profilescan.Platform

	Title       Field
	Description Field
	Pricing     Field
	Experience  Field
	Rating      Field
	Reviews     Field

	Tags   ListField
	Skills ListField

	Placeholders Placeholders

	// AuthWall selectors mark a login wall served in place of the profile.
	AuthWall []string

	// AuthWallPaths are URL path fragments of login pages.
	AuthWallPaths []string
}

// Extract builds a profile from a parsed document. RawContent is left empty.
//
// Returns EAUTHREQUIRED when the page is a login wall and no title could be
// extracted.
func (s *Strategy) Extract(doc *goquery.Document, pageURL string) (*profilescan.ScrapedProfile, error) {
	title := s.Title.Extract(doc)
	if title == "" && s.isAuthWall(doc, pageURL) {
		return nil, profilescan.Errorf(profilescan.EAUTHREQUIRED, "%s page requires sign-in: %s", s.Platform, pageURL)
	}

	return &profilescan.ScrapedProfile{
		Platform:    s.Platform,
		Title:       orPlaceholder(title, s.Title, s.Placeholders.Title),
		Description: s.scalar(doc, s.Description, s.Placeholders.Description),
		Tags:        s.Tags.Extract(doc),
		Pricing:     s.scalar(doc, s.Pricing, s.Placeholders.Pricing),
		Skills:      s.Skills.Extract(doc),
		Experience:  s.scalar(doc, s.Experience, s.Placeholders.Experience),
		Rating:      s.scalar(doc, s.Rating, s.Placeholders.Rating),
		Reviews:     s.scalar(doc, s.Reviews, s.Placeholders.Reviews),
	}, nil
}

func (s *Strategy) scalar(doc *goquery.Document, f Field, placeholder string) string {
	return orPlaceholder(f.Extract(doc), f, placeholder)
}

func orPlaceholder(value string, f Field, placeholder string) string {
	if value != "" || len(f) == 0 {
		return value
	}
	return placeholder
}

func (s *Strategy) isAuthWall(doc *goquery.Document, pageURL string) bool {
	if u, err := url.Parse(pageURL); err == nil {
		for _, fragment := range s.AuthWallPaths {
			if strings.Contains(u.Path, fragment) {
				return true
			}
		}
	}
	for _, selector := range s.AuthWall {
		if doc.Find(selector).Length() > 0 {
			return true
		}
	}
	return false
}
