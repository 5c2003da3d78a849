package scoring

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bahjat/site-audit-tool/internal/model"
)

// pageHTML builds a home page that passes every check except those affected
// by title and desc.
func pageHTML(title, desc string) string {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html><head>`)
	if title != "" {
		fmt.Fprintf(&b, `<title>%s</title>`, title)
	}
	if desc != "" {
		fmt.Fprintf(&b, `<meta name="description" content="%s">`, desc)
	}
	b.WriteString(`<meta http-equiv="Content-Security-Policy" content="default-src 'self'">
<meta name="viewport" content="width=device-width">
<meta property="og:title" content="Dojo">
<link rel="icon" href="/favicon.ico">
<link rel="canonical" href="https://example.com/">
<script type="application/ld+json">{"@type":"LocalBusiness"}</script>
</head><body><h1>Welcome</h1>`)
	b.WriteString(strings.Repeat("karate lessons for the whole family ", 200))
	b.WriteString(`<a href="/contact">Contact us</a> <a href="https://facebook.com/dojo">Facebook</a>`)
	b.WriteString(`</body></html>`)
	return b.String()
}

func keywords() []model.KeywordEntry {
	return []model.KeywordEntry{{Word: "karate", Count: 200}}
}

func TestDefaultChecks(t *testing.T) {
	checks := DefaultChecks()
	require.Len(t, checks, 18)

	names := make([]string, len(checks))
	for i, c := range checks {
		names[i] = c.Name
	}
	assert.Equal(t, []string{
		"SSL Certificate", "Security Headers", "Performance Score", "Page Title",
		"Meta Description", "H1 Heading", "Keyword Usage", "Content Length",
		"Schema Markup", "Open Graph", "Mobile Optimized", "Clear CTA",
		"Contact Info", "Social Links", "Images", "Favicon", "Internal Links",
		"Canonical URL",
	}, names)

	assert.Equal(t, 159, NewScorer(nil).TotalWeight())
}

func TestScore_WeightSumMatchesDenominator(t *testing.T) {
	s := NewScorer(nil)
	res := s.Score(Input{URL: "https://example.com", HTML: pageHTML("", "")})

	var sum int
	for _, c := range res.Checks {
		sum += c.Weight
	}
	assert.Equal(t, sum, res.TotalWeight)
	assert.Equal(t, s.TotalWeight(), res.TotalWeight)
}

func TestScore_FormulaForEverySubset(t *testing.T) {
	weights := []int{10, 15, 3, 8, 5}
	var total int
	for _, w := range weights {
		total += w
	}

	for mask := range 1 << len(weights) {
		checks := make([]Check, len(weights))
		var passed int
		for i, w := range weights {
			pass := mask&(1<<i) != 0
			if pass {
				passed += w
			}
			checks[i] = Check{
				Name:     fmt.Sprintf("c%d", i),
				Category: "test",
				Weight:   w,
				Eval:     func(*Input) Outcome { return Outcome{Passed: pass} },
			}
		}

		res := NewScorer(nil, checks...).Score(Input{})
		want := int(math.Round(100 * float64(passed) / float64(total)))
		assert.Equal(t, want, res.Score, "mask %05b", mask)
		assert.Equal(t, passed, res.PassedWeight)
		assert.Equal(t, total, res.TotalWeight)
	}
}

func TestScore_PanickingCheck(t *testing.T) {
	checks := []Check{
		{Name: "ok", Category: "a", Weight: 1, Eval: func(*Input) Outcome { return Outcome{Passed: true, Message: "fine"} }},
		{Name: "boom", Category: "b", Weight: 1, Eval: func(*Input) Outcome { panic("boom") }},
		{Name: "after", Category: "a", Weight: 2, Eval: func(*Input) Outcome { return Outcome{Passed: true, Message: "fine"} }},
	}

	res := NewScorer(nil, checks...).Score(Input{})

	require.Len(t, res.Checks, 3)
	assert.Equal(t, model.CheckResult{Name: "boom", Category: "b", Weight: 1, Passed: false, Message: "Error"}, res.Checks[1])
	assert.True(t, res.Checks[2].Passed)
	assert.Equal(t, 75, res.Score)
	assert.Len(t, res.ByCategory["a"], 2)
	assert.Len(t, res.ByCategory["b"], 1)
}

func TestScore_ShortTitleScenario(t *testing.T) {
	res := NewScorer(nil).Score(Input{
		URL:         "http://example.com",
		HTML:        pageHTML("A Short Title", ""),
		Performance: 90,
		Keywords:    keywords(),
	})

	byName := make(map[string]model.CheckResult)
	for _, c := range res.Checks {
		byName[c.Name] = c
	}

	assert.Equal(t, "Too short", byName["Page Title"].Message)
	assert.False(t, byName["Page Title"].Passed)
	assert.Equal(t, "Missing description", byName["Meta Description"].Message)
	assert.False(t, byName["Meta Description"].Passed)
	assert.Equal(t, "No HTTPS", byName["SSL Certificate"].Message)
	assert.False(t, byName["SSL Certificate"].Passed)
	assert.True(t, byName["H1 Heading"].Passed)

	for _, c := range res.Checks {
		switch c.Name {
		case "Page Title", "Meta Description", "SSL Certificate":
		default:
			assert.True(t, c.Passed, "%s: %s", c.Name, c.Message)
		}
	}

	want := int(math.Round(100 * float64(159-10-10-10) / 159))
	assert.Equal(t, want, res.Score)
	assert.Equal(t, 81, res.Score)
	assert.Equal(t, "A", res.Grade)
}

func TestScore_Idempotent(t *testing.T) {
	s := NewScorer(nil)
	in := Input{URL: "https://example.com", HTML: pageHTML("Karate classes in Orlando for every age", ""), Performance: 70, Keywords: keywords()}

	first := s.Score(in)
	second := s.Score(in)
	assert.Equal(t, first, second)
}

func TestScore_ByCategoryPreservesOrder(t *testing.T) {
	res := NewScorer(nil).Score(Input{URL: "https://example.com"})

	seo := res.ByCategory["seo"]
	require.Len(t, seo, 5)
	assert.Equal(t, "Page Title", seo[0].Name)
	assert.Equal(t, "Content Length", seo[4].Name)

	var n int
	for _, list := range res.ByCategory {
		n += len(list)
	}
	assert.Equal(t, len(res.Checks), n)
}

func evalCheck(t *testing.T, name string, in Input) Outcome {
	t.Helper()
	res := NewScorer(nil).Score(in)
	for _, c := range res.Checks {
		if c.Name == name {
			return Outcome{Passed: c.Passed, Message: c.Message}
		}
	}
	t.Fatalf("check %q not found", name)
	return Outcome{}
}

func TestCheckTitle(t *testing.T) {
	tests := []struct {
		name string
		html string
		want Outcome
	}{
		{name: "missing", html: `<html><head></head></html>`, want: Outcome{Message: "Missing title"}},
		{name: "empty", html: `<title></title>`, want: Outcome{Message: "Missing title"}},
		{name: "29 chars", html: "<title>" + strings.Repeat("t", 29) + "</title>", want: Outcome{Message: "Too short"}},
		{name: "30 chars", html: "<title>" + strings.Repeat("t", 30) + "</title>", want: Outcome{Passed: true, Message: "30 chars"}},
		{name: "60 chars", html: "<title>" + strings.Repeat("t", 60) + "</title>", want: Outcome{Passed: true, Message: "60 chars"}},
		{name: "61 chars", html: "<title>" + strings.Repeat("t", 61) + "</title>", want: Outcome{Message: "61 chars"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, evalCheck(t, "Page Title", Input{HTML: tt.html}))
		})
	}
}

func TestCheckMetaDescription(t *testing.T) {
	tests := []struct {
		name string
		html string
		want Outcome
	}{
		{name: "missing", html: `<meta name="viewport" content="x">`, want: Outcome{Message: "Missing description"}},
		{name: "empty content", html: `<meta name="description" content="">`, want: Outcome{Message: "Missing description"}},
		{name: "119 chars", html: `<meta name="description" content="` + strings.Repeat("d", 119) + `">`, want: Outcome{Message: "119 chars"}},
		{name: "120 chars", html: `<meta name="description" content="` + strings.Repeat("d", 120) + `">`, want: Outcome{Passed: true, Message: "120 chars"}},
		{name: "case insensitive name", html: `<meta name="Description" content="` + strings.Repeat("d", 130) + `">`, want: Outcome{Passed: true, Message: "130 chars"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, evalCheck(t, "Meta Description", Input{HTML: tt.html}))
		})
	}
}

func TestCheckH1(t *testing.T) {
	tests := []struct {
		name string
		html string
		want Outcome
	}{
		{name: "none", html: `<h2>x</h2>`, want: Outcome{Message: "No H1 heading"}},
		{name: "one", html: `<h1>x</h1>`, want: Outcome{Passed: true, Message: "H1 present"}},
		{name: "two", html: `<h1>x</h1><h1 class="y">z</h1>`, want: Outcome{Message: "2 H1 tags"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, evalCheck(t, "H1 Heading", Input{HTML: tt.html}))
		})
	}
}

func TestCheckImages(t *testing.T) {
	tests := []struct {
		name string
		html string
		want Outcome
	}{
		{name: "no images", html: `<p>x</p>`, want: Outcome{Passed: true, Message: "No images"}},
		{name: "half with alt", html: `<img src="a" alt="A"><img src="b">`, want: Outcome{Passed: true, Message: "1/2 have alt"}},
		{name: "one in three", html: `<img src="a" alt="A"><img src="b"><img src="c">`, want: Outcome{Message: "1/3 have alt"}},
		{name: "empty alt ignored", html: `<img src="a" alt=""><img src="b" alt="">`, want: Outcome{Message: "0/2 have alt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, evalCheck(t, "Images", Input{HTML: tt.html}))
		})
	}
}

func TestCheckContentLength(t *testing.T) {
	short := "<p>" + strings.Repeat("word ", 999) + "</p>"
	long := "<p>" + strings.Repeat("word ", 1000) + "</p>"

	assert.Equal(t, Outcome{Message: "Thin content"}, evalCheck(t, "Content Length", Input{HTML: short}))
	assert.Equal(t, Outcome{Passed: true, Message: "1000 words"}, evalCheck(t, "Content Length", Input{HTML: long}))
}

func TestCheckPerformance(t *testing.T) {
	tests := []struct {
		perf int
		want Outcome
	}{
		{perf: 100, want: Outcome{Passed: true, Message: "Fast"}},
		{perf: 80, want: Outcome{Passed: true, Message: "Fast"}},
		{perf: 79, want: Outcome{Passed: true, Message: "Average"}},
		{perf: 50, want: Outcome{Passed: true, Message: "Average"}},
		{perf: 49, want: Outcome{Message: "Slow"}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, evalCheck(t, "Performance Score", Input{Performance: tt.perf}), "perf %d", tt.perf)
	}
}

func TestCheckContactInfo_LocationOnly(t *testing.T) {
	got := evalCheck(t, "Contact Info", Input{HTML: "<p>Our location</p>"})
	assert.Equal(t, Outcome{Passed: true, Message: "No contact"}, got)
}

func TestGrade(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, "A"}, {80, "A"}, {79, "B"}, {70, "B"}, {69, "C"}, {60, "C"},
		{59, "D"}, {40, "D"}, {39, "F"}, {0, "F"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Grade(tt.score), "score %d", tt.score)
	}
}
