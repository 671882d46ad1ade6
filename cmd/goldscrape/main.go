package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/goldcard"
	"github.com/fwojciec/goldcard/fs"
	"github.com/fwojciec/goldcard/gohtml"
	"github.com/fwojciec/goldcard/goquery"
	"github.com/fwojciec/goldcard/harvest"
	goldhttp "github.com/fwojciec/goldcard/http"
	goldslog "github.com/fwojciec/goldcard/slog"
	"github.com/fwojciec/goldcard/sqlite"
)

// userAgent identifies goldscrape to the GOLD server.
const userAgent = "goldscrape/1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite index, opened only when --db is set.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
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
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("goldscrape"),
		kong.Description("Harvest GOLD card metadata into a tab-separated file"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Configuration(YAMLResolver),
		kong.Vars{"endpoint": goldcard.DefaultEndpoint},
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Wire dependencies
	fetcher := goldslog.NewLoggingFetcher(
		goldhttp.NewFetcher(
			goldhttp.WithTimeout(cli.Timeout),
			goldhttp.WithRateLimit(cli.Rate),
			goldhttp.WithUserAgent(userAgent),
		),
		logger,
	)
	defer fetcher.Close()

	writers := []goldcard.RecordWriter{fs.NewTSVWriter(cli.Output)}
	if cli.DB != "" {
		m.DB = sqlite.NewDB(cli.DB)
		if err := m.DB.Open(); err != nil {
			return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
		}
		defer m.Close()
		writers = append(writers, sqlite.NewRecordService(m.DB))
	}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Harvester: &harvest.Harvester{
			Catalog: fs.NewCatalog(cli.Catalog),
			Source: &harvest.Source{
				Cache:     goldslog.NewLoggingPageCache(fs.NewPageCache(cli.CacheDir), logger),
				Fetcher:   fetcher,
				Formatter: gohtml.NewFormatter(),
				Endpoint:  cli.Endpoint,
				Logger:    logger,
			},
			Extractor: goquery.NewExtractor(),
			Writers:   writers,
		},
	}

	cmd := &HarvestCmd{
		Limit: cli.Limit,
		Skip:  cli.Skip,
	}

	return cmd.Run(deps)
}
