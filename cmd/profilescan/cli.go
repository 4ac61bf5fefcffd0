package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/profilescan"
	pshttp "github.com/fwojciec/profilescan/http"
	"github.com/fwojciec/profilescan/rod"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Scraper   profilescan.ProfileScraper
	Analyzer  profilescan.Analyzer
	Snapshots profilescan.SnapshotService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose   bool         `short:"v" help:"Enable debug logging"`
	Browser   BrowserFlags `embed:""`
	Sanitizer string       `enum:"goquery,trafilatura" default:"goquery" env:"PROFILESCAN_SANITIZER" help:"Raw content extraction: goquery content regions or trafilatura main-text detection"`

	Identify    IdentifyCmd    `cmd:"" help:"Identify the platform of a profile URL"`
	Scrape      ScrapeCmd      `cmd:"" help:"Scrape profile URLs into JSON lines"`
	Text        TextCmd        `cmd:"" help:"Build a profile from pasted profile text"`
	Analyze     AnalyzeCmd     `cmd:"" help:"Scrape a profile and analyze it with Gemini"`
	AnalyzeText AnalyzeTextCmd `cmd:"" name:"analyze-text" help:"Analyze pasted profile text with Gemini"`
	History     HistoryCmd     `cmd:"" help:"List stored snapshots of a profile URL"`
}

// BrowserFlags configure the headless browser sessions.
type BrowserFlags struct {
	Engine      string        `enum:"chrome,http" default:"chrome" env:"PROFILESCAN_ENGINE" help:"Page loader: chrome renders JavaScript, http fetches server-rendered HTML"`
	NavTimeout  time.Duration `default:"60s" env:"PROFILESCAN_NAV_TIMEOUT" help:"Bound on navigation plus network idle wait"`
	SettleDelay time.Duration `default:"5s" env:"PROFILESCAN_SETTLE_DELAY" help:"Pause after network idle for late rendering"`
	NoSandbox   bool          `env:"PROFILESCAN_NO_SANDBOX" help:"Disable the Chrome sandbox (containers running as root)"`
	BrowserBin  string        `env:"PROFILESCAN_BROWSER_BIN" help:"Chrome binary to launch instead of the auto-detected one"`
	Stealth     bool          `default:"true" negatable:"" env:"PROFILESCAN_STEALTH" help:"Apply browser fingerprint evasions"`
}

func (f BrowserFlags) sessionManager() profilescan.SessionManager {
	if f.Engine == "http" {
		return pshttp.NewSessionManager(pshttp.WithTimeout(f.NavTimeout))
	}
	return rod.NewSessionManager(f.options()...)
}

func (f BrowserFlags) options() []rod.SessionOption {
	opts := []rod.SessionOption{
		rod.WithNavigationTimeout(f.NavTimeout),
		rod.WithSettleDelay(f.SettleDelay),
		rod.WithNoSandbox(f.NoSandbox),
		rod.WithStealth(f.Stealth),
	}
	if f.BrowserBin != "" {
		opts = append(opts, rod.WithBrowserBin(f.BrowserBin))
	}
	return opts
}

// GeminiFlags configure the Gemini analyzer.
type GeminiFlags struct {
	APIKey          string `name:"api-key" env:"GEMINI_API_KEY" help:"Gemini API key"`
	Model           string `default:"gemini-2.5-flash" env:"PROFILESCAN_MODEL" help:"Gemini model"`
	MaxPromptTokens int    `default:"0" help:"Shorten raw content until the prompt fits this many tokens (0 disables)"`
}

// IdentifyCmd is the "identify" subcommand.
type IdentifyCmd struct {
	URL string `arg:"" help:"Profile URL"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URLs        []string      `arg:"" name:"url" help:"Profile URLs"`
	Concurrency int           `short:"c" default:"2" help:"Concurrent browser limit"`
	Interval    time.Duration `default:"2s" env:"PROFILESCAN_INTERVAL" help:"Minimum time between requests to the same platform (0 disables)"`
	Retries     int           `default:"2" help:"Retries for navigation failures"`
	Save        bool          `help:"Store a snapshot of each profile in the local database"`
	Out         string        `type:"path" help:"Also write one JSON file per profile under this directory"`
}

// TextCmd is the "text" subcommand.
type TextCmd struct {
	Platform string `arg:"" help:"Platform (fiverr, upwork, linkedin, freelancer)"`
	File     string `arg:"" optional:"" default:"-" help:"File with profile text, - for stdin"`
}

// AnalyzeCmd is the "analyze" subcommand.
type AnalyzeCmd struct {
	URL    string      `arg:"" help:"Profile URL"`
	Gemini GeminiFlags `embed:""`
}

// AnalyzeTextCmd is the "analyze-text" subcommand.
type AnalyzeTextCmd struct {
	Platform string      `arg:"" help:"Platform (fiverr, upwork, linkedin, freelancer)"`
	File     string      `arg:"" optional:"" default:"-" help:"File with profile text, - for stdin"`
	Gemini   GeminiFlags `embed:""`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	URL   string `arg:"" help:"Profile URL"`
	Limit int    `default:"10" help:"Maximum snapshots to list (0 lists all)"`
	Clear bool   `help:"Delete the stored snapshots instead of listing them"`
}
