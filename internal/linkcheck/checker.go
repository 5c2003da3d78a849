// Package linkcheck scans a page's outbound links and classifies each one as
// ok, broken, redirect, error or skip.
package linkcheck

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Bahjat/site-audit-tool/internal/fetch"
	"github.com/Bahjat/site-audit-tool/internal/model"
)

// Defaults for a link scan.
const (
	DefaultMaxLinks  = 50
	DefaultChunkSize = 5
)

const (
	pageTimeout   = 15 * time.Second
	pageRedirects = 5
	linkTimeout   = 8 * time.Second
	linkRetries   = 1
)

// Options scopes a link scan.
type Options struct {
	MaxLinks int
	// MaxDepth is accepted for compatibility; only the page itself is scanned.
	MaxDepth       int
	CheckExternal  bool
	ExcludeDomains []string
}

// DefaultOptions scans up to 50 links including external ones.
func DefaultOptions() Options {
	return Options{MaxLinks: DefaultMaxLinks, MaxDepth: 1, CheckExternal: true}
}

func (o Options) normalize() Options {
	if o.MaxLinks <= 0 {
		o.MaxLinks = DefaultMaxLinks
	}
	o.MaxDepth = 1
	return o
}

// Checker checks links in fixed-size chunks. Links within a chunk are checked
// concurrently and the next chunk starts only after the whole chunk is done.
type Checker struct {
	fetcher   fetch.Fetcher
	chunkSize int
	logger    *slog.Logger
}

// Option configures a Checker.
type Option func(*Checker)

// WithChunkSize sets how many links are checked at once.
func WithChunkSize(n int) Option {
	return func(c *Checker) {
		if n > 0 {
			c.chunkSize = n
		}
	}
}

// WithLogger sets the logger used for scan progress.
func WithLogger(l *slog.Logger) Option {
	return func(c *Checker) { c.logger = l }
}

// New returns a Checker backed by f.
func New(f fetch.Fetcher, opts ...Option) *Checker {
	c := &Checker{
		fetcher:   f,
		chunkSize: DefaultChunkSize,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check fetches pageURL and checks the links on it. A page that cannot be
// fetched or is not HTML yields a summary holding a single error entry.
func (c *Checker) Check(ctx context.Context, pageURL string, opts Options) *model.LinkAuditSummary {
	opts = opts.normalize()
	summary := model.NewLinkAuditSummary(pageURL)

	res := c.fetcher.Fetch(ctx, pageURL, fetch.Options{
		Timeout:      pageTimeout,
		MaxRedirects: pageRedirects,
	})
	switch {
	case res.Err != nil:
		summary.Abort(model.LinkCheckResult{URL: pageURL, Status: model.LinkError, Message: fetch.Describe(res.Err)})
		return summary
	case res.StatusCode >= 400:
		summary.Abort(model.LinkCheckResult{
			URL:        pageURL,
			Status:     model.LinkError,
			StatusCode: res.StatusCode,
			Message:    fmt.Sprintf("Request failed with status code %d", res.StatusCode),
		})
		return summary
	case !strings.Contains(res.ContentType, "text/html"):
		summary.Abort(model.LinkCheckResult{
			URL:     pageURL,
			Status:  model.LinkError,
			Message: "Content-Type not HTML: " + res.ContentType,
		})
		return summary
	}

	links := Filter(pageURL, ExtractLinks(pageURL, res.Body), opts)
	c.logger.Debug("links to check", "url", pageURL, "count", len(links))

	for start := 0; start < len(links); start += c.chunkSize {
		if ctx.Err() != nil {
			c.logger.Warn("link scan cancelled", "url", pageURL, "checked", summary.Counts.Total)
			break
		}
		for _, r := range c.checkChunk(ctx, links[start:min(start+c.chunkSize, len(links))]) {
			summary.Add(r)
		}
	}

	return summary
}

func (c *Checker) checkChunk(ctx context.Context, chunk []string) []model.LinkCheckResult {
	results := make([]model.LinkCheckResult, len(chunk))

	var g errgroup.Group
	for i, link := range chunk {
		g.Go(func() error {
			results[i] = c.CheckLink(ctx, link)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// CheckLink classifies a single link. Non-http(s) links, fragments, mailto:
// and tel: links are skipped without a request. Connection resets and
// timeouts are retried once.
func (c *Checker) CheckLink(ctx context.Context, link string) model.LinkCheckResult {
	start := time.Now()
	result := model.LinkCheckResult{URL: link}

	switch {
	case !isHTTP(link):
		result.Status = model.LinkSkip
		result.Message = "Non-HTTP URL"
	case strings.Contains(link, "#") || strings.HasPrefix(link, "mailto:") || strings.HasPrefix(link, "tel:"):
		result.Status = model.LinkSkip
		result.Message = "Anchor/fragment/mailto"
	default:
		c.classify(ctx, &result)
	}

	result.DurationMs = time.Since(start).Milliseconds()
	return result
}

func (c *Checker) classify(ctx context.Context, result *model.LinkCheckResult) {
	var res fetch.Result
	for attempt := 0; ; attempt++ {
		res = c.fetcher.Fetch(ctx, result.URL, fetch.Options{
			Method:  http.MethodHead,
			Timeout: linkTimeout,
		})
		if res.Err == nil || attempt >= linkRetries || !fetch.Retryable(res.Err) {
			break
		}
		c.logger.Debug("retrying link", "url", result.URL, "error", res.Err)
	}

	if res.Err != nil {
		result.Status = model.LinkError
		result.Message = fetch.Describe(res.Err)
		return
	}

	result.StatusCode = res.StatusCode
	switch {
	case res.StatusCode >= 400:
		result.Status = model.LinkBroken
		result.Message = StatusMessage(res.StatusCode)
	case res.StatusCode >= 300:
		result.Status = model.LinkRedirect
		result.RedirectURL = res.Location
		result.Message = "Redirect chain"
	default:
		result.Status = model.LinkOK
		result.Message = "OK"
	}
}

var statusMessages = map[int]string{
	400: "Bad Request",
	401: "Unauthorized",
	403: "Forbidden",
	404: "Not Found",
	408: "Request Timeout",
	410: "Gone",
	429: "Too Many Requests",
	500: "Internal Server Error",
	502: "Bad Gateway",
	503: "Service Unavailable",
	504: "Gateway Timeout",
}

// StatusMessage describes an error status for a broken link.
func StatusMessage(code int) string {
	if msg, ok := statusMessages[code]; ok {
		return msg
	}
	return "Client/Server Error"
}

// Recommendations returns follow-up advice for a finished scan.
func Recommendations(s *model.LinkAuditSummary) []string {
	if s.Counts.Broken > 0 {
		return []string{
			"Fix or remove broken links to improve user experience",
			"Set up 301 redirects for moved pages",
			"Use a link monitoring tool to catch issues early",
		}
	}
	return []string{
		"Great! No broken links found",
		"Consider monitoring new links as you add content",
	}
}
