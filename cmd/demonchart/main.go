package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"demonchart"
	"demonchart/goquery"
	dchttp "demonchart/http"
	"demonchart/htmltomarkdown"
	"demonchart/refresh"
	"demonchart/rod"
	dcslog "demonchart/slog"
	"demonchart/sqlite"
	"demonchart/trafilatura"
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
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	SnapshotService demonchart.SnapshotService
	RecordService   demonchart.RecordService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
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
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("demonchart"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'demonchart --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set DEMONCHART_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	m.SnapshotService = sqlite.NewSnapshotService(m.DB)
	m.RecordService = sqlite.NewRecordService(m.DB)
	deps.DB = m.DB
	deps.Snapshots = m.SnapshotService
	deps.Records = m.RecordService
	deps.Feeds = dchttp.NewFeedService(nil)
	deps.Converter = htmltomarkdown.NewConverter()

	// Commands that fetch the source post need the full refresh pipeline.
	if cmd == "fetch" || cmd == "serve" {
		logger := slog.New(slog.NewTextHandler(stderr, nil))

		var fetcher demonchart.Fetcher
		if needsBrowser(cmd, cli) {
			browserFetcher, err := rod.NewFetcher()
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			fetcher = browserFetcher
		} else {
			fetcher = dchttp.NewFetcher()
		}
		fetcher = dcslog.NewLoggingFetcher(fetcher, logger)
		defer fetcher.Close()

		var cleaner demonchart.Cleaner
		if !rawFetch(cmd, cli) {
			cleaner = trafilatura.NewCleaner()
		}

		rps := cli.Fetch.Rate
		if cmd == "serve" {
			rps = 1.0
		}

		deps.Refresher = &refresh.Refresher{
			Fetcher:     fetcher,
			Cleaner:     cleaner,
			Extractor:   dcslog.NewLoggingExtractor(goquery.NewExtractor(), logger),
			Snapshots:   m.SnapshotService,
			Records:     m.RecordService,
			Feeds:       deps.Feeds,
			Limiter:     refresh.NewDomainLimiter(rps),
			Concurrency: cli.Fetch.Concurrency,
		}
	}

	return kongCtx.Run(deps)
}

// needsBrowser reports whether the parsed command asked for browser fetching.
func needsBrowser(cmd string, cli *CLI) bool {
	switch cmd {
	case "fetch":
		return cli.Fetch.Browser
	case "serve":
		return cli.Serve.Browser
	}
	return false
}

// rawFetch reports whether content cleaning was disabled.
func rawFetch(cmd string, cli *CLI) bool {
	switch cmd {
	case "fetch":
		return cli.Fetch.Raw
	case "serve":
		return cli.Serve.Raw
	}
	return false
}

func defaultDBPath() string {
	if path := os.Getenv("DEMONCHART_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "demonchart.db"
	}
	dir := filepath.Join(home, ".demonchart")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "demonchart.db")
}
