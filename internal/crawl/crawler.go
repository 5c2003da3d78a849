package crawl

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/Bahjat/site-audit-tool/internal/fetch"
	"github.com/Bahjat/site-audit-tool/internal/model"
	"github.com/Bahjat/site-audit-tool/internal/platform/errs"
)

// Page budget bounds.
const (
	DefaultBudget = 5
	MaxBudget     = 20
)

const (
	pageTimeout   = 8 * time.Second
	pageRedirects = 3
)

// ClampBudget forces a page budget into [1, MaxBudget].
func ClampBudget(budget int) int {
	return min(max(budget, 1), MaxBudget)
}

// Crawler fetches a seed page and a bounded number of same-host pages linked
// from it, one request at a time.
type Crawler struct {
	fetcher        fetch.Fetcher
	logger         *slog.Logger
	discoveryLimit int
	limiter        *rate.Limiter
	respectRobots  bool
}

// Option configures a Crawler.
type Option func(*Crawler)

// WithLogger sets the logger used for crawl progress.
func WithLogger(l *slog.Logger) Option {
	return func(c *Crawler) { c.logger = l }
}

// WithDiscoveryLimit caps how many discovered links are considered.
func WithDiscoveryLimit(n int) Option {
	return func(c *Crawler) {
		if n > 0 {
			c.discoveryLimit = n
		}
	}
}

// WithRateLimit spaces secondary page fetches to perSecond requests per
// second. Zero or less disables the limit.
func WithRateLimit(perSecond float64) Option {
	return func(c *Crawler) {
		if perSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

// WithRobots makes the crawler skip pages disallowed by the site's robots.txt.
func WithRobots(respect bool) Option {
	return func(c *Crawler) { c.respectRobots = respect }
}

// New returns a Crawler backed by f.
func New(f fetch.Fetcher, opts ...Option) *Crawler {
	c := &Crawler{
		fetcher:        f,
		logger:         slog.Default(),
		discoveryLimit: DefaultDiscoveryLimit,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Crawl fetches seed and up to budget-1 pages discovered on it. A seed that
// fails to load is an error; secondary pages that fail stay in the set.
func (c *Crawler) Crawl(ctx context.Context, seed string, budget int) (CrawlSet, error) {
	budget = ClampBudget(budget)

	home, err := c.fetchPage(ctx, seed)
	if err != nil {
		kind := errs.Unreachable
		if fetch.ErrorCode(err) == fetch.CodeTimedOut {
			kind = errs.Timeout
		}
		return nil, &errs.AppError{
			Kind:    kind,
			Message: "Could not access website: " + home.Error,
			Cause:   err,
		}
	}
	if home.HTTPStatus >= 400 {
		return nil, &errs.AppError{
			Kind:           errs.Unreachable,
			UpstreamStatus: home.HTTPStatus,
			Message:        "The provided URL returned an error status.",
		}
	}

	set := CrawlSet{home}

	links := DiscoverLinks(seed, home.HTML, c.discoveryLimit)
	if c.respectRobots {
		links = c.allowedByRobots(ctx, seed, links)
	}
	c.logger.Debug("discovered pages", "seed", seed, "count", len(links), "budget", budget)

	for _, link := range links {
		if len(set) >= budget {
			break
		}
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page, err := c.fetchPage(ctx, link)
		if err != nil || page.Failed() {
			c.logger.Debug("page failed", "url", link, "status", page.HTTPStatus, "error", page.Error)
		}
		set = append(set, page)
	}

	return set, nil
}

// fetchPage returns the page and the transport error, if any. Bodies of error
// statuses are not kept.
func (c *Crawler) fetchPage(ctx context.Context, pageURL string) (model.PageFetchResult, error) {
	res := c.fetcher.Fetch(ctx, pageURL, fetch.Options{
		Timeout:      pageTimeout,
		MaxRedirects: pageRedirects,
	})

	page := model.PageFetchResult{
		URL:        pageURL,
		HTTPStatus: res.StatusCode,
	}
	if res.Err != nil {
		page.Error = fetch.Describe(res.Err)
		return page, res.Err
	}
	if res.StatusCode >= 400 {
		return page, nil
	}

	page.HTML = res.Body
	page.SizeKB = res.SizeKB()
	return page, nil
}
