// Package scrape orchestrates profile scraping: platform identification,
// browser session lifecycle, page loading, extraction and sanitization.
package scrape

import (
	"context"

	"github.com/fwojciec/profilescan"
)

var _ profilescan.ProfileScraper = (*Scraper)(nil)

// Scraper drives a single scrape through the state machine
// Idle, Identifying, SessionAcquired, PageLoaded, Extracting, Done, with
// Failed reachable from every non-terminal state.
//
// Each call acquires its own browser session and releases it before
// returning, whatever the outcome.
type Scraper struct {
	Sessions  profilescan.SessionManager
	Extractor profilescan.ProfileExtractor
	Sanitizer profilescan.ContentSanitizer
	Observer  profilescan.ScrapeObserverFunc
}

// ScrapeProfile scrapes url into a normalized profile. Every returned error
// is a *profilescan.Error carrying a scrape failure kind.
func (s *Scraper) ScrapeProfile(ctx context.Context, url string) (*profilescan.ScrapedProfile, error) {
	r := &run{url: url, observer: s.Observer}
	r.enter(profilescan.StateIdle)

	r.enter(profilescan.StateIdentifying)
	platform, err := profilescan.IdentifyPlatform(url)
	if err != nil {
		return nil, r.fail(err)
	}
	r.platform = platform

	session, err := s.Sessions.Acquire(ctx)
	if err != nil {
		return nil, r.fail(withKind(err, profilescan.ESESSION, "acquiring browser session"))
	}
	// Close errors are not scrape failures; decorators log them.
	defer func() { _ = session.Close() }()
	r.enter(profilescan.StateSessionAcquired)

	html, err := session.Load(ctx, url)
	if err != nil {
		return nil, r.fail(withKind(err, profilescan.ENAVIGATION, "loading page"))
	}
	r.enter(profilescan.StatePageLoaded)

	r.enter(profilescan.StateExtracting)
	profile, err := s.Extractor.Extract(platform, html, url)
	if err != nil {
		return nil, r.fail(withKind(err, profilescan.EEXTRACTION, "extracting %s profile", platform))
	}
	if profile == nil {
		return nil, r.fail(profilescan.Errorf(profilescan.EEXTRACTION, "%s extraction returned no profile", platform))
	}

	content, err := s.Sanitizer.Sanitize(html)
	if err != nil {
		return nil, r.fail(withKind(err, profilescan.ESANITIZE, "sanitizing page content"))
	}
	profile.RawContent = content

	if err := profile.Validate(); err != nil {
		return nil, r.fail(withKind(err, profilescan.EEXTRACTION, "invalid %s profile", platform))
	}

	r.enter(profilescan.StateDone)
	return profile, nil
}

// run is the state of one ScrapeProfile call.
type run struct {
	url      string
	platform profilescan.Platform
	observer profilescan.ScrapeObserverFunc
}

func (r *run) enter(state profilescan.ScrapeState) {
	if r.observer == nil {
		return
	}
	r.observer(profilescan.ScrapeEvent{State: state, Platform: r.platform, URL: r.url})
}

// fail moves to StateFailed and returns err.
func (r *run) fail(err error) error {
	if r.observer != nil {
		r.observer(profilescan.ScrapeEvent{State: profilescan.StateFailed, Platform: r.platform, URL: r.url, Err: err})
	}
	return err
}

// withKind returns err unchanged when it already carries a scrape failure
// kind and wraps it in code otherwise.
func withKind(err error, code string, format string, args ...any) error {
	if profilescan.IsScrapeFailure(err) {
		return err
	}
	return profilescan.WrapError(code, err, format, args...)
}
