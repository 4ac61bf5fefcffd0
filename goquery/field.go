package goquery

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// Candidate extracts one value from a document. It returns an empty string
// when the document does not carry the value.
type Candidate func(doc *goquery.Document) string

// Text returns a Candidate yielding the whitespace-normalized text of the
// first element matching selector that has any text.
func Text(selector string) Candidate {
	return func(doc *goquery.Document) string {
		var found string
		doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			found = normalizeSpace(selectionText(s))
			return found == ""
		})
		return found
	}
}

// Attr returns a Candidate yielding the attribute value of the first element
// matching selector that has a non-blank value, e.g. OpenGraph meta tags.
func Attr(selector, attr string) Candidate {
	return func(doc *goquery.Document) string {
		var found string
		doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if v, ok := s.Attr(attr); ok {
				found = normalizeSpace(v)
			}
			return found == ""
		})
		return found
	}
}

// Field is an ordered list of candidates for one scalar profile field.
// An empty Field means the platform has no such concept.
type Field []Candidate

// Extract evaluates candidates in order and returns the first non-empty
// result. Later candidates are not evaluated once one matches.
func (f Field) Extract(doc *goquery.Document) string {
	for _, candidate := range f {
		if v := candidate(doc); v != "" {
			return v
		}
	}
	return ""
}

// maxItemRunes bounds a single list item. Longer matches are containers,
// not tags or skills.
const maxItemRunes = 80

// ListField collects short strings from every element matching any of its
// selectors.
type ListField struct {
	Selectors []string
	Max       int
}

// Extract returns trimmed, non-empty, exactly-deduplicated values in order of
// first appearance in the document, truncated to Max entries.
// The result is never nil.
func (f ListField) Extract(doc *goquery.Document) []string {
	values := []string{}
	if len(f.Selectors) == 0 || f.Max <= 0 {
		return values
	}

	seen := make(map[string]bool)
	doc.Find(strings.Join(f.Selectors, ", ")).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		v := normalizeSpace(selectionText(s))
		if v == "" || seen[v] || utf8.RuneCountInString(v) > maxItemRunes {
			return true
		}
		seen[v] = true
		values = append(values, v)
		return len(values) < f.Max
	})
	return values
}
