package mock

import (
	"context"

	"github.com/fwojciec/profilescan"
)

var (
	_ profilescan.ProfileScraper = (*ProfileScraper)(nil)
	_ profilescan.Analyzer       = (*Analyzer)(nil)
)

// ProfileScraper is a mock implementation of profilescan.ProfileScraper.
type ProfileScraper struct {
	ScrapeProfileFn func(ctx context.Context, url string) (*profilescan.ScrapedProfile, error)
}

func (s *ProfileScraper) ScrapeProfile(ctx context.Context, url string) (*profilescan.ScrapedProfile, error) {
	return s.ScrapeProfileFn(ctx, url)
}

// Analyzer is a mock implementation of profilescan.Analyzer.
type Analyzer struct {
	AnalyzeFn func(ctx context.Context, profile *profilescan.ScrapedProfile) (*profilescan.ProfileAnalysis, error)
}

func (a *Analyzer) Analyze(ctx context.Context, profile *profilescan.ScrapedProfile) (*profilescan.ProfileAnalysis, error) {
	return a.AnalyzeFn(ctx, profile)
}
