package audit

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/Bahjat/site-audit-tool/internal/content"
	"github.com/Bahjat/site-audit-tool/internal/crawl"
	"github.com/Bahjat/site-audit-tool/internal/fetch"
	"github.com/Bahjat/site-audit-tool/internal/fetch/fetchtest"
	"github.com/Bahjat/site-audit-tool/internal/platform/errs"
	"github.com/Bahjat/site-audit-tool/internal/scoring"
)

var fixedTime = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

const homeHTML = `<!DOCTYPE html><html><head><title>Karate</title>
<meta name="viewport" content="width=device-width">
</head><body><h1>Karate dojo</h1>
<p>Karate classes for kids and adults. Karate belts, karate sparring.</p>
<a href="/about">About</a>
<a href="/schedule">Schedule</a>
<a href="/gone">Gone</a>
</body></html>`

// mockCrawler implements crawler for testing.
type mockCrawler struct {
	set     crawl.CrawlSet
	err     error
	calls   int
	gotSeed string
	gotPage int
}

func (m *mockCrawler) Crawl(_ context.Context, seed string, budget int) (crawl.CrawlSet, error) {
	m.calls++
	m.gotSeed = seed
	m.gotPage = budget
	return m.set, m.err
}

func newEngine(c crawler) *Engine {
	return NewEngine(c, scoring.NewScorer(nil), WithClock(func() time.Time { return fixedTime }))
}

func TestEngine_Run_Success(t *testing.T) {
	f := fetchtest.New().
		HTML("https://dojo.example.com", homeHTML).
		HTML("https://dojo.example.com/about", `<p>about us <script src="/wp-content/x.js"></script></p>`).
		HTML("https://dojo.example.com/schedule", "<p>schedule</p>").
		Status("https://dojo.example.com/gone", http.StatusGone)

	e := newEngine(crawl.New(f))
	report, err := e.Run(context.Background(), Request{URL: "  dojo.example.com/ "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.URL != "https://dojo.example.com" {
		t.Errorf("URL = %q, want normalized https://dojo.example.com", report.URL)
	}
	if !report.Timestamp.Equal(fixedTime) {
		t.Errorf("Timestamp = %v, want %v", report.Timestamp, fixedTime)
	}
	if len(report.Checks) != 18 {
		t.Errorf("len(Checks) = %d, want 18", len(report.Checks))
	}
	if report.Score < 0 || report.Score > 100 {
		t.Errorf("Score = %d, out of range", report.Score)
	}
	if report.Grade != scoring.Grade(report.Score) {
		t.Errorf("Grade = %q, want %q", report.Grade, scoring.Grade(report.Score))
	}

	if report.Industry != "martial_arts" {
		t.Errorf("Industry = %q, want martial_arts", report.Industry)
	}
	if report.IndustryName != "martial arts schools" {
		t.Errorf("IndustryName = %q", report.IndustryName)
	}
	if report.Comparison.YourScore != report.Score || report.Comparison.IndustryAverage != 52 {
		t.Errorf("Comparison = %+v", report.Comparison)
	}

	// WordPress is only visible on a secondary page.
	if len(report.TechStack.CMS) == 0 || report.TechStack.CMS[0] != "WordPress" {
		t.Errorf("TechStack.CMS = %v, want WordPress from the combined crawl", report.TechStack.CMS)
	}

	if len(report.Keywords.Primary) == 0 || report.Keywords.Primary[0].Word != "karate" {
		t.Errorf("Keywords.Primary = %v, want karate first", report.Keywords.Primary)
	}
	if report.Performance.Score != content.PerformanceScore(homeHTML) {
		t.Errorf("Performance.Score = %d", report.Performance.Score)
	}

	wantURLs := "https://dojo.example.com,https://dojo.example.com/about,https://dojo.example.com/schedule,https://dojo.example.com/gone"
	if got := strings.Join(report.CrawledURLs, ","); got != wantURLs {
		t.Errorf("CrawledURLs = %s, want %s", got, wantURLs)
	}
	if report.Pages.TotalPages != 4 || report.Pages.Successful != 3 || report.Pages.Errors != 1 {
		t.Errorf("Pages = %+v", report.Pages)
	}
	if report.Pages.ErrorPages[0].Error != "Status 410" {
		t.Errorf("ErrorPages[0] = %+v", report.Pages.ErrorPages[0])
	}
}

func TestEngine_Run_RequestedIndustryWins(t *testing.T) {
	m := &mockCrawler{set: crawl.CrawlSet{{URL: "https://dojo.example.com", HTML: homeHTML, HTTPStatus: 200}}}

	report, err := newEngine(m).Run(context.Background(), Request{URL: "https://dojo.example.com", Industry: "legal"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Industry != "legal" || report.Comparison.IndustryAverage != 72 {
		t.Errorf("Industry = %q, Comparison = %+v", report.Industry, report.Comparison)
	}
}

func TestEngine_Run_UnknownIndustryUsesGeneralBenchmark(t *testing.T) {
	m := &mockCrawler{set: crawl.CrawlSet{{URL: "https://x.example.com", HTML: "<p>hi</p>", HTTPStatus: 200}}}

	report, err := newEngine(m).Run(context.Background(), Request{URL: "https://x.example.com", Industry: "aerospace"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Industry != "aerospace" {
		t.Errorf("Industry = %q, want the requested value", report.Industry)
	}
	if report.IndustryName != scoring.Benchmark("general").Description || report.Comparison.IndustryAverage != 55 {
		t.Errorf("IndustryName = %q, Comparison = %+v, want the general benchmark", report.IndustryName, report.Comparison)
	}
}

func TestEngine_Run_PageBudget(t *testing.T) {
	tests := []struct {
		name  string
		pages int
		opts  []Option
		want  int
	}{
		{"omitted uses default", 0, nil, crawl.DefaultBudget},
		{"configured default", 0, []Option{WithDefaultBudget(3)}, 3},
		{"explicit", 12, nil, 12},
		{"upper bound", 20, nil, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &mockCrawler{set: crawl.CrawlSet{{URL: "https://a.example.com", HTTPStatus: 200}}}
			e := NewEngine(m, scoring.NewScorer(nil), tt.opts...)

			if _, err := e.Run(context.Background(), Request{URL: "a.example.com", Pages: tt.pages}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if m.gotPage != tt.want {
				t.Errorf("budget = %d, want %d", m.gotPage, tt.want)
			}
		})
	}
}

func TestEngine_Run_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		req  Request
	}{
		{"empty url", Request{URL: "   "}},
		{"ftp scheme", Request{URL: "ftp://example.com"}},
		{"no host", Request{URL: "https://"}},
		{"bad host", Request{URL: "exa mple.com"}},
		{"pages too large", Request{URL: "example.com", Pages: 21}},
		{"pages negative", Request{URL: "example.com", Pages: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &mockCrawler{}
			_, err := newEngine(m).Run(context.Background(), tt.req)

			var appErr *errs.AppError
			if !errors.As(err, &appErr) {
				t.Fatalf("expected AppError, got %v", err)
			}
			if appErr.Kind != errs.InvalidInput {
				t.Errorf("Kind = %d, want InvalidInput", appErr.Kind)
			}
			if m.calls != 0 {
				t.Error("crawler called for invalid input")
			}
		})
	}
}

func TestEngine_Run_SeedUnreachable(t *testing.T) {
	f := fetchtest.New().Add("https://down.example.com", fetch.Result{Err: syscall.ECONNREFUSED})

	_, err := newEngine(crawl.New(f)).Run(context.Background(), Request{URL: "https://down.example.com"})

	var appErr *errs.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Kind != errs.Unreachable {
		t.Errorf("Kind = %d, want Unreachable", appErr.Kind)
	}
	if appErr.Message != "Could not access website: ECONNREFUSED" {
		t.Errorf("Message = %q", appErr.Message)
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct{ in, want string }{
		{"example.com", "https://example.com"},
		{" https://example.com/ ", "https://example.com"},
		{"http://example.com/blog/", "http://example.com/blog"},
		{"https://example.com/a?b=c", "https://example.com/a?b=c"},
	}
	for _, tt := range tests {
		got, err := NormalizeURL(tt.in)
		if err != nil {
			t.Errorf("NormalizeURL(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("NormalizeURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
