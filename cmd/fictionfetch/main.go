package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/fictionfetch"
	"github.com/fwojciec/fictionfetch/crawl"
	"github.com/fwojciec/fictionfetch/goquery"
	"github.com/fwojciec/fictionfetch/htmltomarkdown"
	ffhttp "github.com/fwojciec/fictionfetch/http"
	ffslog "github.com/fwojciec/fictionfetch/slog"
	"github.com/fwojciec/fictionfetch/sqlite"
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
	FictionService fictionfetch.FictionService
	ChapterService fictionfetch.ChapterService
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
		kong.Name("fictionfetch"),
		kong.Description("Fetch and compile web fiction chapters"),
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
		return fmt.Errorf("no command specified. Run 'fictionfetch --help' to see available commands")
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
		fmt.Fprintf(stderr, "Hint: Set FICTIONFETCH_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	m.FictionService = sqlite.NewFictionService(m.DB)
	m.ChapterService = sqlite.NewChapterService(m.DB)
	deps.DB = m.DB
	deps.Fictions = m.FictionService
	deps.Chapters = m.ChapterService

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	deps.Fetcher = ffslog.NewLoggingFetcher(ffhttp.NewFetcher(), logger)
	defer deps.Fetcher.Close()
	deps.Extractor = goquery.NewListingExtractor()
	deps.Converter = htmltomarkdown.NewConverter()

	if cmd == "compile" {
		chapterFetcher := ffhttp.NewChapterFetcher(
			goquery.NewChapterParser(nil),
			ffhttp.WithDelayBounds(cli.Compile.MinDelay, cli.Compile.MaxDelay),
			ffhttp.WithRetries(cli.Compile.Retries),
		)
		deps.Compiler = &crawl.Compiler{
			Fetcher:     ffslog.NewLoggingChapterFetcher(chapterFetcher, logger),
			Chapters:    m.ChapterService,
			Limiter:     crawl.NewPacer(requestsPerSecond),
			Ledger:      crawl.NewLedger(),
			Concurrency: cli.Compile.Concurrency,
		}
	}

	return kongCtx.Run(deps)
}

// requestsPerSecond caps the shared fetch rate across compile workers. The
// per-request politeness delay already spaces requests out; this is a
// backstop against workers landing their requests together.
const requestsPerSecond = 0.5

func defaultDBPath() string {
	if path := os.Getenv("FICTIONFETCH_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "fictionfetch.db"
	}
	dir := filepath.Join(home, ".fictionfetch")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "fictionfetch.db")
}
