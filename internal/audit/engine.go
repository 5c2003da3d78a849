// Package audit runs the full site audit: crawl, content analysis, scoring
// and industry benchmarking.
package audit

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/Bahjat/site-audit-tool/internal/content"
	"github.com/Bahjat/site-audit-tool/internal/crawl"
	"github.com/Bahjat/site-audit-tool/internal/model"
	"github.com/Bahjat/site-audit-tool/internal/platform/errs"
	"github.com/Bahjat/site-audit-tool/internal/scoring"
)

const (
	msgURLRequired   = "URL required"
	msgInvalidURL    = "Invalid URL format. Please ensure you entered a valid URL (e.g., https://example.com)."
	msgInvalidScheme = "Only http and https URLs are supported."
)

// crawler defines how the engine collects the pages of a site.
type crawler interface {
	Crawl(ctx context.Context, seed string, budget int) (crawl.CrawlSet, error)
}

// Request describes one audit.
type Request struct {
	URL      string
	Email    string
	Industry string
	// Pages is the page budget. Zero selects the engine default.
	Pages int
}

// Engine orchestrates crawling, analysis and scoring.
type Engine struct {
	crawler       crawler
	scorer        *scoring.Scorer
	defaultBudget int
	logger        *slog.Logger
	now           func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithDefaultBudget sets the page budget used when a request leaves it out.
func WithDefaultBudget(n int) Option {
	return func(e *Engine) { e.defaultBudget = crawl.ClampBudget(n) }
}

// WithLogger sets the engine's logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithClock overrides the report timestamp source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine returns an Engine backed by the given crawler and scorer.
func NewEngine(c crawler, s *scoring.Scorer, opts ...Option) *Engine {
	e := &Engine{
		crawler:       c,
		scorer:        s,
		defaultBudget: crawl.DefaultBudget,
		logger:        slog.Default(),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run audits the site named by req. Invalid input is rejected before any
// network call; a seed page that cannot be loaded fails the audit.
func (e *Engine) Run(ctx context.Context, req Request) (*model.AuditReport, error) {
	target, err := NormalizeURL(req.URL)
	if err != nil {
		return nil, err
	}

	budget, err := e.budget(req.Pages)
	if err != nil {
		return nil, err
	}

	set, err := e.crawler.Crawl(ctx, target, budget)
	if err != nil {
		return nil, err
	}

	home := set.Seed()
	combined := set.CombinedHTML()

	keywords := content.ExtractKeywords(home.HTML)
	perf := content.PerformanceScore(home.HTML)

	industry := strings.TrimSpace(req.Industry)
	if industry == "" {
		industry = content.DetectIndustry(combined, target)
	}
	bench := scoring.Benchmark(industry)

	result := e.scorer.Score(scoring.Input{
		URL:         target,
		HTML:        home.HTML,
		Performance: perf,
		Keywords:    keywords,
	})

	e.logger.Debug("audit scored",
		"url", target,
		"pages", len(set),
		"passed_weight", result.PassedWeight,
		"total_weight", result.TotalWeight,
	)

	return &model.AuditReport{
		URL:        target,
		Timestamp:  e.now().UTC(),
		Score:      result.Score,
		Grade:      result.Grade,
		Checks:     result.Checks,
		ByCategory: result.ByCategory,
		Performance: model.Performance{
			Score:          perf,
			HomePageSizeKB: home.SizeKB,
		},
		Keywords:     content.BuildKeywordProfile(keywords),
		TechStack:    content.DetectTechStack(combined, target),
		Industry:     industry,
		IndustryName: bench.Description,
		Comparison:   scoring.Comparison(result.Score, bench),
		Pages:        set.Summary(),
		CrawledURLs:  set.URLs(),
	}, nil
}

func (e *Engine) budget(pages int) (int, error) {
	if pages == 0 {
		return e.defaultBudget, nil
	}
	if pages < 1 || pages > crawl.MaxBudget {
		return 0, &errs.AppError{
			Kind:    errs.InvalidInput,
			Message: fmt.Sprintf("pages must be between 1 and %d", crawl.MaxBudget),
		}
	}
	return pages, nil
}

// NormalizeURL trims raw, drops one trailing slash and defaults the scheme to
// https. Anything that is not an absolute http(s) URL is rejected.
func NormalizeURL(raw string) (string, error) {
	target := strings.TrimSpace(raw)
	if target == "" {
		return "", &errs.AppError{Kind: errs.InvalidInput, Message: msgURLRequired}
	}

	if !strings.Contains(target, "://") {
		target = "https://" + target
	}

	parsed, err := url.Parse(target)
	if err != nil {
		return "", &errs.AppError{
			Kind:    errs.InvalidInput,
			Message: msgInvalidURL,
			Cause:   err,
		}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", &errs.AppError{Kind: errs.InvalidInput, Message: msgInvalidScheme}
	}
	if parsed.Hostname() == "" {
		return "", &errs.AppError{Kind: errs.InvalidInput, Message: msgInvalidURL}
	}

	return strings.TrimSuffix(target, "/"), nil
}
