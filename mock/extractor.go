package mock

import "github.com/fwojciec/profilescan"

var (
	_ profilescan.ProfileExtractor = (*ProfileExtractor)(nil)
	_ profilescan.ContentSanitizer = (*ContentSanitizer)(nil)
)

// ProfileExtractor is a mock implementation of profilescan.ProfileExtractor.
type ProfileExtractor struct {
	ExtractFn func(platform profilescan.Platform, html string, url string) (*profilescan.ScrapedProfile, error)
}

func (e *ProfileExtractor) Extract(platform profilescan.Platform, html string, url string) (*profilescan.ScrapedProfile, error) {
	return e.ExtractFn(platform, html, url)
}

// ContentSanitizer is a mock implementation of profilescan.ContentSanitizer.
type ContentSanitizer struct {
	SanitizeFn func(html string) (string, error)
}

func (s *ContentSanitizer) Sanitize(html string) (string, error) {
	return s.SanitizeFn(html)
}
