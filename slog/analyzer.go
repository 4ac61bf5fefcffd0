package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/profilescan"
)

// Ensure LoggingAnalyzer implements profilescan.Analyzer.
var _ profilescan.Analyzer = (*LoggingAnalyzer)(nil)

// LoggingAnalyzer wraps an Analyzer with logging.
type LoggingAnalyzer struct {
	next   profilescan.Analyzer
	logger *slog.Logger
}

// NewLoggingAnalyzer creates a new LoggingAnalyzer.
func NewLoggingAnalyzer(next profilescan.Analyzer, logger *slog.Logger) *LoggingAnalyzer {
	return &LoggingAnalyzer{next: next, logger: logger}
}

// Analyze logs the platform, score and duration of the wrapped analysis.
func (a *LoggingAnalyzer) Analyze(ctx context.Context, profile *profilescan.ScrapedProfile) (analysis *profilescan.ProfileAnalysis, err error) {
	defer func(begin time.Time) {
		var score float64
		if analysis != nil {
			score = analysis.SEOScore
		}
		a.logger.Info("analyze",
			"platform", profile.Platform,
			"seo_score", score,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.Analyze(ctx, profile)
}
