package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/profilescan"
	"github.com/fwojciec/profilescan/gemini"
	"github.com/fwojciec/profilescan/goquery"
	"github.com/fwojciec/profilescan/scrape"
	psslog "github.com/fwojciec/profilescan/slog"
	"github.com/fwojciec/profilescan/sqlite"
	"github.com/fwojciec/profilescan/trafilatura"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Input for commands reading "-". Set before calling Run().
	Stdin io.Reader

	// Snapshot database path. Set before calling Run().
	DBPath string

	// SQLite database, opened only by commands that store snapshots.
	DB *sqlite.DB

	// Services for end-to-end testing. When nil, Run wires the real
	// session manager, Gemini analyzer and SQLite snapshot store.
	Sessions  profilescan.SessionManager
	Analyzer  profilescan.Analyzer
	Snapshots profilescan.SnapshotService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Stdin:  os.Stdin,
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("profilescan"),
		kong.Description("Scrape and analyze freelance marketplace profiles"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'profilescan --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Wire command-specific dependencies based on command
	cmd := strings.Fields(kongCtx.Command())[0]

	needsDB := cmd == "history" || (cmd == "scrape" && cli.Scrape.Save)
	if needsDB && m.Snapshots != nil {
		deps.Snapshots = m.Snapshots
	} else if needsDB {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintln(stderr, "Hint: Set PROFILESCAN_DB to use a different database path")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()
		deps.Snapshots = sqlite.NewSnapshotService(m.DB)
	}

	if cmd == "scrape" || cmd == "analyze" {
		sessions := m.Sessions
		if sessions == nil {
			sessions = cli.Browser.sessionManager()
		}

		scraper := &scrape.Scraper{
			Sessions:  psslog.NewLoggingSessionManager(sessions, deps.Logger),
			Extractor: goquery.NewExtractor(),
			Sanitizer: newSanitizer(cli.Sanitizer),
			Observer: func(e profilescan.ScrapeEvent) {
				deps.Logger.Debug("scrape state",
					"state", e.State.String(),
					"platform", e.Platform,
					"url", e.URL,
				)
			},
		}
		deps.Scraper = psslog.NewLoggingScraper(scraper, deps.Logger)
	}

	if cmd == "analyze" || cmd == "analyze-text" {
		analyzer := m.Analyzer
		if analyzer == nil {
			flags := cli.Analyze.Gemini
			if cmd == "analyze-text" {
				flags = cli.AnalyzeText.Gemini
			}
			analyzer, err = newGeminiAnalyzer(ctx, flags, stderr)
			if err != nil {
				return err
			}
		}
		deps.Analyzer = psslog.NewLoggingAnalyzer(analyzer, deps.Logger)
	}

	return kongCtx.Run(deps)
}

func newGeminiAnalyzer(ctx context.Context, flags GeminiFlags, stderr io.Writer) (*gemini.Analyzer, error) {
	if flags.APIKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return nil, fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  flags.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	opts := []gemini.AnalyzerOption{gemini.WithModel(flags.Model)}
	if flags.MaxPromptTokens > 0 {
		counter, err := gemini.NewTokenCounter(tokenizerModel)
		if err != nil {
			return nil, fmt.Errorf("failed to create token counter: %w", err)
		}
		opts = append(opts, gemini.WithTokenBudget(counter, flags.MaxPromptTokens))
	}
	return gemini.NewAnalyzer(client, opts...), nil
}

// tokenizerModel is the local tokenizer used for prompt budgeting. The
// tokenizer package does not ship every generation model.
const tokenizerModel = "gemini-2.5-flash"

func newSanitizer(name string) profilescan.ContentSanitizer {
	if name == "trafilatura" {
		return trafilatura.NewSanitizer(goquery.NewSanitizer())
	}
	return goquery.NewSanitizer()
}

func defaultDBPath() string {
	if path := os.Getenv("PROFILESCAN_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "profilescan.db"
	}
	dir := filepath.Join(home, ".profilescan")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "profilescan.db")
}
