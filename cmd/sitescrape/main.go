package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/alecthomas/kong"
	"github.com/fwojciec/sitescrape"
	"github.com/fwojciec/sitescrape/crawl"
	"github.com/fwojciec/sitescrape/fs"
	"github.com/fwojciec/sitescrape/goquery"
	"github.com/fwojciec/sitescrape/htmltomarkdown"
	sshttp "github.com/fwojciec/sitescrape/http"
	"github.com/fwojciec/sitescrape/readability"
	ssslog "github.com/fwojciec/sitescrape/slog"
	"github.com/fwojciec/sitescrape/trafilatura"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	m := NewMain()

	err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, errorText(err))
		os.Exit(ExitCode(err))
	}
}

// Main represents the program.
type Main struct {
	// ConfigHome is searched for scrape.toml when no config is given and
	// none exists in the working directory.
	ConfigHome string

	// Fetcher overrides the HTTP fetcher. Used by end-to-end tests.
	Fetcher sitescrape.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigHome: filepath.Join(xdg.ConfigHome, appName),
	}
}

const appName = "sitescrape"

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name(appName),
		kong.Description("Crawl a website's menu and pages into a tree of markdown files"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	for _, arg := range args {
		if arg == "--help" || arg == "-h" {
			_, _ = parser.Parse([]string{"--help"})
			return nil
		}
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	logger, closeLog := newLogger(stderr, cli.Verbose, cli.LogFile)
	defer closeLog()

	path := m.configPath(cli.Config)

	if cli.Init {
		if err := writeConfig(path, sitescrape.DefaultConfig()); err != nil {
			return &InitError{Path: path, Err: err}
		}
		fmt.Fprintf(stdout, "Wrote default config to %s\n", path)
		return nil
	}

	cfg, err := loadConfig(path)
	if err != nil {
		if sitescrape.ErrorCode(err) == sitescrape.ENOTFOUND {
			fmt.Fprintf(stderr, "Hint: create one with %s --init -c %s\n", appName, path)
		}
		return err
	}
	logger.Debug("loaded config", "path", path)

	crawler, closeFetcher, err := m.wire(cfg, cli, logger)
	if err != nil {
		return err
	}
	defer closeFetcher()

	result, err := crawler.Crawl(ctx)
	if result != nil {
		fmt.Fprintln(stdout, result.String())
	}
	return err
}

// wire builds a Crawler for cfg.
func (m *Main) wire(cfg *sitescrape.Config, cli *CLI, logger *slog.Logger) (*crawl.Crawler, func(), error) {
	site, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", sitescrape.ErrInvalidSiteURL, err)
	}

	conv := htmltomarkdown.NewConverter(htmltomarkdown.WithDomain(site.Scheme + "://" + site.Host))
	parser, err := goquery.NewParser(cfg, conv)
	if err != nil {
		return nil, nil, err
	}

	var fetcher sitescrape.Fetcher = m.Fetcher
	if fetcher == nil {
		fetcher = sshttp.NewFetcher(
			sshttp.WithTimeout(cfg.FetchTimeout()),
			sshttp.WithUserAgent(cfg.UserAgent),
		)
	}
	fetcher = ssslog.NewLoggingFetcher(fetcher, logger)

	c := &crawl.Crawler{
		Config:    cfg,
		Fetcher:   fetcher,
		Parser:    parser,
		Writer:    fs.NewWriter(cli.Target),
		Converter: conv,
		Logger:    logger,
		DryRun:    cli.DryRun,
	}

	switch cfg.ContentFallback {
	case sitescrape.FallbackReadability:
		c.Fallback = readability.NewExtractor()
	case sitescrape.FallbackTrafilatura:
		c.Fallback = trafilatura.NewExtractor()
	}

	if cfg.RequestsPerSecond > 0 {
		c.Pacer = crawl.NewHostPacer(cfg.RequestsPerSecond)
	}

	return c, func() { _ = fetcher.Close() }, nil
}
