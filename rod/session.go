package rod

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/fwojciec/profilescan"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// Ensure SessionManager implements profilescan.SessionManager at compile time.
var _ profilescan.SessionManager = (*SessionManager)(nil)

// Ensure Session implements profilescan.Session at compile time.
var _ profilescan.Session = (*Session)(nil)

const (
	// DefaultNavigationTimeout bounds navigation plus the network idle wait.
	DefaultNavigationTimeout = 60 * time.Second

	// DefaultSettleDelay is the pause after network idle for late rendering.
	DefaultSettleDelay = 5 * time.Second

	// DefaultIdleQuiet is how long the network must stay idle.
	DefaultIdleQuiet = 500 * time.Millisecond

	// DefaultUserAgent is a current desktop Chrome user agent.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"
)

// Request headers sent with every navigation.
var defaultHeaders = []string{
	"Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
	"Accept-Language", "en-US,en;q=0.9",
	"Accept-Encoding", "gzip, deflate, br",
}

// SessionManager launches one headless Chrome per acquired session.
// Sessions are never pooled or shared. SessionManager is safe for concurrent use.
type SessionManager struct {
	navigationTimeout time.Duration
	settleDelay       time.Duration
	idleQuiet         time.Duration
	noSandbox         bool
	bin               string
	stealth           bool
	userAgent         string
}

// SessionOption configures a SessionManager.
type SessionOption func(*SessionManager)

// WithNavigationTimeout sets the bound on navigation plus the idle wait.
// Defaults to 60s.
func WithNavigationTimeout(d time.Duration) SessionOption {
	return func(m *SessionManager) {
		m.navigationTimeout = d
	}
}

// WithSettleDelay sets the pause after network idle. Defaults to 5s.
func WithSettleDelay(d time.Duration) SessionOption {
	return func(m *SessionManager) {
		m.settleDelay = d
	}
}

// WithIdleQuiet sets how long the network must stay idle. Defaults to 500ms.
func WithIdleQuiet(d time.Duration) SessionOption {
	return func(m *SessionManager) {
		m.idleQuiet = d
	}
}

// WithNoSandbox disables the Chrome sandbox, needed when running as root in
// containers.
func WithNoSandbox(enabled bool) SessionOption {
	return func(m *SessionManager) {
		m.noSandbox = enabled
	}
}

// WithBrowserBin sets the Chrome binary. By default the launcher looks up a
// local install or downloads one.
func WithBrowserBin(path string) SessionOption {
	return func(m *SessionManager) {
		m.bin = path
	}
}

// WithStealth toggles the go-rod/stealth evasions. Enabled by default.
func WithStealth(enabled bool) SessionOption {
	return func(m *SessionManager) {
		m.stealth = enabled
	}
}

// WithUserAgent overrides the desktop user agent.
func WithUserAgent(ua string) SessionOption {
	return func(m *SessionManager) {
		m.userAgent = ua
	}
}

// NewSessionManager creates a SessionManager. No browser is started until
// Acquire is called.
func NewSessionManager(opts ...SessionOption) *SessionManager {
	m := &SessionManager{
		navigationTimeout: DefaultNavigationTimeout,
		settleDelay:       DefaultSettleDelay,
		idleQuiet:         DefaultIdleQuiet,
		stealth:           true,
		userAgent:         DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Acquire launches a fresh browser and opens one configured page.
// Any failure releases what was started and returns ESESSION.
func (m *SessionManager) Acquire(ctx context.Context) (profilescan.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, profilescan.WrapError(profilescan.ESESSION, err, "session not started")
	}

	lnchr := m.newLauncher()
	u, err := lnchr.Launch()
	if err != nil {
		return nil, profilescan.WrapError(profilescan.ESESSION, err, "launching browser")
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		lnchr.Cleanup()
		return nil, profilescan.WrapError(profilescan.ESESSION, err, "connecting to browser")
	}

	page, err := m.openPage(browser)
	if err != nil {
		_ = browser.Close()
		lnchr.Kill()
		lnchr.Cleanup()
		return nil, profilescan.WrapError(profilescan.ESESSION, err, "opening page")
	}

	return &Session{
		browser:           browser,
		page:              page,
		launcher:          lnchr,
		navigationTimeout: m.navigationTimeout,
		settleDelay:       m.settleDelay,
		idleQuiet:         m.idleQuiet,
	}, nil
}

// newLauncher configures headless Chrome with stability flags.
func (m *SessionManager) newLauncher() *launcher.Launcher {
	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Set("disable-blink-features", "AutomationControlled").
		Leakless(true).
		Headless(true)
	if m.noSandbox {
		lnchr = lnchr.NoSandbox(true)
	}
	if m.bin != "" {
		lnchr = lnchr.Bin(m.bin)
	}
	return lnchr
}

func (m *SessionManager) openPage(browser *rod.Browser) (*rod.Page, error) {
	var page *rod.Page
	var err error
	if m.stealth {
		page, err = stealth.Page(browser)
	} else {
		page, err = browser.Page(proto.TargetCreateTarget{})
	}
	if err != nil {
		return nil, err
	}

	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
		UserAgent:      m.userAgent,
		AcceptLanguage: "en-US,en;q=0.9",
	}); err != nil {
		_ = page.Close()
		return nil, err
	}
	if _, err := page.SetExtraHeaders(defaultHeaders); err != nil {
		_ = page.Close()
		return nil, err
	}
	if err := (proto.NetworkEnable{}).Call(page); err != nil {
		_ = page.Close()
		return nil, err
	}
	return page, nil
}

// Session is one browser with one page, exclusively owned by a single scrape.
type Session struct {
	browser  *rod.Browser
	page     *rod.Page
	launcher *launcher.Launcher
	closed   atomic.Bool

	navigationTimeout time.Duration
	settleDelay       time.Duration
	idleQuiet         time.Duration
}

// Load navigates to url, waits for network idle plus the settle delay, and
// returns the rendered HTML.
//
// Timeouts, HTTP error pages without content, and navigation failures are
// reported as ENAVIGATION.
func (s *Session) Load(ctx context.Context, url string) (string, error) {
	if s.closed.Load() {
		return "", profilescan.Errorf(profilescan.ESESSION, "session is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", navigationError(err, url, s.navigationTimeout)
	}

	if err := s.navigate(ctx, url); err != nil {
		return "", err
	}

	// The settle delay and page reads run outside the navigation budget.
	p := s.page.Context(ctx)
	if s.settleDelay > 0 {
		select {
		case <-ctx.Done():
			return "", navigationError(ctx.Err(), url, s.navigationTimeout)
		case <-time.After(s.settleDelay):
		}
	}

	// Best effort: status is 0 when the browser does not expose it.
	var status, textLen int
	if res, err := p.Eval(`() => {
		let status = 0;
		try {
			const entries = performance.getEntriesByType("navigation");
			if (entries.length > 0) status = entries[0].responseStatus || 0;
		} catch (e) {}
		const text = document.body ? document.body.innerText.trim() : "";
		return {status: status, textLength: text.length};
	}`); err == nil {
		status = res.Value.Get("status").Int()
		textLen = res.Value.Get("textLength").Int()
	}
	if status >= 400 && textLen == 0 {
		return "", profilescan.Errorf(profilescan.ENAVIGATION, "%s returned HTTP %d with an empty page", url, status)
	}

	html, err := p.HTML()
	if err != nil {
		return "", navigationError(err, url, s.navigationTimeout)
	}
	return html, nil
}

// navigate loads url and waits for network idle, bounded by the navigation
// timeout.
func (s *Session) navigate(ctx context.Context, url string) error {
	ctx, cancel := context.WithTimeout(ctx, s.navigationTimeout)
	defer cancel()
	p := s.page.Context(ctx)

	// Subscribe before navigating so the document request itself is tracked.
	tracker := newIdleTracker(idleMaxInflight, s.idleQuiet)
	wait := p.EachEvent(
		func(e *proto.NetworkRequestWillBeSent) { tracker.start(e.RequestID) },
		func(e *proto.NetworkLoadingFinished) { tracker.finish(e.RequestID) },
		func(e *proto.NetworkLoadingFailed) { tracker.finish(e.RequestID) },
	)
	go wait()

	tracker.reset()
	if err := p.Navigate(url); err != nil {
		return navigationError(err, url, s.navigationTimeout)
	}
	if err := p.WaitLoad(); err != nil {
		return navigationError(err, url, s.navigationTimeout)
	}
	if err := tracker.wait(ctx); err != nil {
		return navigationError(err, url, s.navigationTimeout)
	}
	return nil
}

// Close releases the page, the browser process and its user-data directory.
// Close is safe to call multiple times and ignores any request context.
func (s *Session) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}

	_ = s.page.Close()
	err := s.browser.Close()
	s.launcher.Kill()
	s.launcher.Cleanup()
	if err != nil {
		return profilescan.WrapError(profilescan.ESESSION, err, "closing browser")
	}
	return nil
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (s *Session) LauncherPID() int {
	return s.launcher.PID()
}

func navigationError(err error, url string, timeout time.Duration) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return profilescan.WrapError(profilescan.ENAVIGATION, err, "loading %s timed out after %s", url, timeout)
	case errors.Is(err, context.Canceled):
		return profilescan.WrapError(profilescan.ENAVIGATION, err, "loading %s canceled", url)
	default:
		return profilescan.WrapError(profilescan.ENAVIGATION, err, "loading %s failed", url)
	}
}
