package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/profilescan"
)

var _ profilescan.ProfileExtractor = (*Extractor)(nil)

// Extractor dispatches rendered HTML to the extraction strategy of its
// platform. Extractor is stateless and safe for concurrent use.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// StrategyFor returns the extraction strategy for a platform.
// Returns EUNSUPPORTED for platforms without a strategy.
func StrategyFor(platform profilescan.Platform) (*Strategy, error) {
	switch platform {
	case profilescan.PlatformFiverr:
		return NewFiverrStrategy(), nil
	case profilescan.PlatformUpwork:
		return NewUpworkStrategy(), nil
	case profilescan.PlatformLinkedIn:
		return NewLinkedInStrategy(), nil
	case profilescan.PlatformFreelancer:
		return NewFreelancerStrategy(), nil
	}
	return nil, profilescan.Errorf(profilescan.EUNSUPPORTED, "no extraction strategy for platform %q", platform)
}

// Extract parses html and applies the platform's strategy.
// A malformed document that makes the strategy fail unexpectedly is
// reported as EEXTRACTION; missing fields are not errors.
func (e *Extractor) Extract(platform profilescan.Platform, html string, url string) (profile *profilescan.ScrapedProfile, err error) {
	strategy, err := StrategyFor(platform)
	if err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			profile = nil
			err = profilescan.Errorf(profilescan.EEXTRACTION, "%s extraction failed: %v", platform, r)
		}
	}()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, profilescan.WrapError(profilescan.EEXTRACTION, err, "failed to parse %s HTML", platform)
	}

	profile, err = strategy.Extract(doc, url)
	if err != nil {
		return nil, err
	}
	return profile, nil
}
