package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/profilescan"
	"github.com/google/uuid"
)

// Ensure LoggingScraper implements profilescan.ProfileScraper.
var _ profilescan.ProfileScraper = (*LoggingScraper)(nil)

// LoggingScraper wraps a ProfileScraper with one log record per scrape.
// Each scrape gets a scrape_id that is also attached to session logs.
type LoggingScraper struct {
	next   profilescan.ProfileScraper
	logger *slog.Logger
}

// NewLoggingScraper creates a new LoggingScraper.
func NewLoggingScraper(next profilescan.ProfileScraper, logger *slog.Logger) *LoggingScraper {
	return &LoggingScraper{next: next, logger: logger}
}

// ScrapeProfile logs the outcome of the wrapped scrape.
func (s *LoggingScraper) ScrapeProfile(ctx context.Context, url string) (profile *profilescan.ScrapedProfile, err error) {
	logger := s.logger.With("scrape_id", uuid.NewString())
	ctx = withLogger(ctx, logger)

	defer func(begin time.Time) {
		var platform profilescan.Platform
		if profile != nil {
			platform = profile.Platform
		}
		logger.Info("scrape",
			"url", url,
			"platform", platform,
			"code", profilescan.ErrorCode(err),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ScrapeProfile(ctx, url)
}
