package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/Bahjat/site-audit-tool/internal/audit"
	"github.com/Bahjat/site-audit-tool/internal/crawl"
	"github.com/Bahjat/site-audit-tool/internal/fetch"
	"github.com/Bahjat/site-audit-tool/internal/linkcheck"
	"github.com/Bahjat/site-audit-tool/internal/model"
	"github.com/Bahjat/site-audit-tool/internal/platform/config"
	"github.com/Bahjat/site-audit-tool/internal/platform/logger"
	"github.com/Bahjat/site-audit-tool/internal/report"
	"github.com/Bahjat/site-audit-tool/internal/scoring"
)

var errUnknownFormat = errors.New("unknown format")

type options struct {
	url      string
	pages    int
	industry string
	links    bool
	maxLinks int
	external bool
	format   string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options

	fs := flag.NewFlagSet("audit", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.url, "url", "", "site to audit (required)")
	fs.IntVar(&o.pages, "pages", 0, "page budget, 1-20 (default from DEFAULT_PAGE_BUDGET)")
	fs.StringVar(&o.industry, "industry", "", "industry to benchmark against (detected when empty)")
	fs.BoolVar(&o.links, "links", false, "check the links on the page instead of auditing the site")
	fs.IntVar(&o.maxLinks, "max-links", linkcheck.DefaultMaxLinks, "maximum number of links to check")
	fs.BoolVar(&o.external, "external", true, "check links to other hosts")
	fs.StringVar(&o.format, "format", "table", "output format: table, csv or json")

	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.url == "" {
		fs.Usage()
		return o, errors.New("-url is required")
	}
	switch o.format {
	case "table", "csv", "json":
	default:
		return o, fmt.Errorf("%w %q", errUnknownFormat, o.format)
	}
	return o, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	o, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log := logger.NewWithWriter(os.Stderr, cfg.LogLevel)
	if err := run(ctx, o, cfg, fetch.NewClient(cfg.AllowPrivateNetworks), log, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, o options, cfg config.Config, f fetch.Fetcher, log *slog.Logger, out io.Writer) error {
	if o.links {
		target, err := linkcheck.PageURL(o.url)
		if err != nil {
			return err
		}
		checker := linkcheck.New(f, linkcheck.WithChunkSize(cfg.LinkCheckChunkSize), linkcheck.WithLogger(log))
		summary := checker.Check(ctx, target, linkcheck.Options{MaxLinks: o.maxLinks, CheckExternal: o.external})
		return writeLinks(out, o.format, summary)
	}

	crawler := crawl.New(f,
		crawl.WithLogger(log),
		crawl.WithDiscoveryLimit(cfg.CrawlDiscoveryLimit),
		crawl.WithRateLimit(cfg.CrawlRateLimit),
		crawl.WithRobots(cfg.CrawlRespectRobots),
	)
	engine := audit.NewEngine(crawler, scoring.NewScorer(log),
		audit.WithDefaultBudget(cfg.DefaultPageBudget),
		audit.WithLogger(log),
	)

	r, err := engine.Run(ctx, audit.Request{URL: o.url, Industry: o.industry, Pages: o.pages})
	if err != nil {
		return err
	}
	return writeAudit(out, o.format, r)
}

func writeAudit(w io.Writer, format string, r *model.AuditReport) error {
	switch format {
	case "csv":
		return report.WriteChecksCSV(w, r.Checks)
	case "json":
		return writeJSON(w, r)
	}
	return report.WriteAudit(w, r)
}

func writeLinks(w io.Writer, format string, s *model.LinkAuditSummary) error {
	switch format {
	case "csv":
		return report.WriteLinksCSV(w, s)
	case "json":
		return writeJSON(w, s)
	}
	if err := report.WriteLinksTable(w, s); err != nil {
		return err
	}
	for _, rec := range linkcheck.Recommendations(s) {
		if _, err := fmt.Fprintln(w, "- "+rec); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
