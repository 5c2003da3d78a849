package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"
)

// UserAgent identifies the auditor to the sites it visits.
const UserAgent = "Mozilla/5.0 (compatible; SiteAuditBot/1.0; +https://github.com/Bahjat/site-audit-tool)"

const (
	defaultTimeout  = 10 * time.Second
	maxResponseBody = 10 << 20
)

var (
	errTooManyRedirects = errors.New("too many redirects")
	errBlockedRedirect  = errors.New("redirect to non-http(s) scheme blocked")
)

// Options controls a single fetch.
type Options struct {
	Method  string
	Timeout time.Duration
	// MaxRedirects is the number of redirects followed. Zero returns the
	// redirect response itself.
	MaxRedirects int
}

// Result is a fetch outcome. Transport failures are reported in Err; HTTP
// error statuses are not failures and only show up in StatusCode.
type Result struct {
	URL         string
	StatusCode  int
	Body        string
	ContentType string
	Location    string
	Duration    time.Duration
	Err         error
}

// SizeKB returns the body size rounded to the nearest kilobyte.
func (r Result) SizeKB() int {
	return int(math.Round(float64(len(r.Body)) / 1024))
}

// Fetcher retrieves a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string, opts Options) Result
}

// Client implements Fetcher over net/http.
type Client struct {
	transport http.RoundTripper
}

// NewClient returns a Client whose connections to private and reserved IP
// ranges are refused unless allowPrivate is set.
func NewClient(allowPrivate bool) *Client {
	dialer := safeDialer()
	if allowPrivate {
		dialer.Control = nil
	}
	return newClient(&http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         dialer.DialContext,
		TLSHandshakeTimeout: 5 * time.Second,
		MaxConnsPerHost:     10,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	})
}

func newClient(transport http.RoundTripper) *Client {
	return &Client{transport: transport}
}

func redirectPolicy(maxRedirects int) func(*http.Request, []*http.Request) error {
	return func(req *http.Request, via []*http.Request) error {
		if maxRedirects <= 0 {
			return http.ErrUseLastResponse
		}
		if len(via) > maxRedirects {
			return fmt.Errorf("%w: stopped after %d", errTooManyRedirects, maxRedirects)
		}
		if req.URL.Scheme != "http" && req.URL.Scheme != "https" {
			return fmt.Errorf("%w: %s", errBlockedRedirect, req.URL.Scheme)
		}
		return nil
	}
}

// Fetch issues one request and reads at most 10 MB of the body.
func (c *Client) Fetch(ctx context.Context, targetURL string, opts Options) Result {
	start := time.Now()
	res := Result{URL: targetURL}

	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := &http.Client{
		Transport:     c.transport,
		Timeout:       timeout,
		CheckRedirect: redirectPolicy(opts.MaxRedirects),
	}

	req, err := http.NewRequestWithContext(ctx, method, targetURL, nil)
	if err != nil {
		res.Err = err
		res.Duration = time.Since(start)
		return res
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := client.Do(req)
	if err != nil {
		res.Err = err
		res.Duration = time.Since(start)
		return res
	}
	defer func() { _ = resp.Body.Close() }()

	res.StatusCode = resp.StatusCode
	res.ContentType = resp.Header.Get("Content-Type")
	res.Location = resp.Header.Get("Location")

	if method != http.MethodHead {
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
		if err != nil {
			res.Err = fmt.Errorf("read body: %w", err)
		}
		res.Body = decodeBody(body, res.ContentType)
	}

	res.Duration = time.Since(start)
	return res
}
