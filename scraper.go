package profilescan

import "context"

// Session is one headless browser process with a single configured page.
// A Session is owned by exactly one scrape and is never shared.
type Session interface {
	// Load navigates to the URL, waits for the network to settle and for
	// late client-side rendering, and returns the serialized DOM.
	// Returns ENAVIGATION on timeout or when no content could be loaded.
	Load(ctx context.Context, url string) (html string, err error)

	// Close terminates the browser process. Close is safe to call more
	// than once and does not depend on the context passed to Load.
	Close() error
}

// SessionManager acquires browser sessions.
type SessionManager interface {
	// Acquire launches a new browser session.
	// Returns ESESSION if the browser cannot be launched.
	Acquire(ctx context.Context) (Session, error)
}

// ProfileExtractor maps rendered HTML to a normalized profile using the
// platform's extraction strategy. Extraction is a pure function of its
// inputs; the returned profile has an empty RawContent.
type ProfileExtractor interface {
	Extract(platform Platform, html string, url string) (*ScrapedProfile, error)
}

// ContentSanitizer reduces rendered HTML to bounded plain text.
type ContentSanitizer interface {
	// Sanitize strips non-content markup and returns at most MaxRawContent
	// bytes of cleaned page text.
	Sanitize(html string) (string, error)
}

// ProfileScraper scrapes a profile URL into a normalized profile.
type ProfileScraper interface {
	// ScrapeProfile identifies the platform, renders the page in a fresh
	// browser session and extracts the profile. Every returned error is an
	// *Error whose code is a scrape failure kind (see IsScrapeFailure).
	ScrapeProfile(ctx context.Context, url string) (*ScrapedProfile, error)
}

// Analyzer produces feedback for a scraped profile using a text-generation
// service.
type Analyzer interface {
	Analyze(ctx context.Context, profile *ScrapedProfile) (*ProfileAnalysis, error)
}

// ScrapeState is a state of the scrape state machine.
type ScrapeState int

// Scrape states in transition order. Failed is reachable from every
// non-terminal state; Done and Failed are terminal.
const (
	StateIdle ScrapeState = iota
	StateIdentifying
	StateSessionAcquired
	StatePageLoaded
	StateExtracting
	StateDone
	StateFailed
)

// String returns the state name.
func (s ScrapeState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateIdentifying:
		return "identifying"
	case StateSessionAcquired:
		return "session_acquired"
	case StatePageLoaded:
		return "page_loaded"
	case StateExtracting:
		return "extracting"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// ScrapeEvent reports a state transition during a scrape.
type ScrapeEvent struct {
	State    ScrapeState
	Platform Platform // empty until identified
	URL      string
	Err      error // set when State is StateFailed
}

// ScrapeObserverFunc is called on every state transition.
type ScrapeObserverFunc func(ScrapeEvent)

// DomainLimiter rate limits requests per domain.
type DomainLimiter interface {
	// Wait blocks until a request to the domain of rawURL is allowed or ctx
	// is done.
	Wait(ctx context.Context, rawURL string) error
}

// TokenCounter counts model tokens in text.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
