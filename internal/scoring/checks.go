package scoring

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/Bahjat/site-audit-tool/internal/model"
)

// Input is what every check sees: the home page and the signals derived from it.
type Input struct {
	URL         string
	HTML        string
	Performance int
	Keywords    []model.KeywordEntry

	doc *goquery.Document
}

// Outcome is the verdict of one check.
type Outcome struct {
	Passed  bool
	Message string
}

// Check is a named, weighted predicate over an Input.
type Check struct {
	Name     string
	Category string
	Weight   int
	Eval     func(in *Input) Outcome
}

func has(pattern string) func(string) bool {
	re := regexp.MustCompile(`(?i)` + pattern)
	return re.MatchString
}

func verdict(passed bool, ok, fail string) Outcome {
	if passed {
		return Outcome{Passed: true, Message: ok}
	}
	return Outcome{Message: fail}
}

var (
	hasSecurityHeaders = has(`Content-Security-Policy|X-Frame-Options`)
	hasSchema          = has(`application/ld\+json`)
	hasOpenGraph       = has(`og:title|og:description|og:image`)
	hasViewport        = has(`viewport`)
	hasCTA             = has(`book|schedule|contact|appointment|get started|sign up`)
	hasContactSignal   = has(`contact|phone|email|address|location`)
	hasContactDetail   = has(`contact|phone|email|address`)
	hasSocialSignal    = has(`facebook|instagram|linkedin|twitter|youtube`)
	hasSocialProfile   = has(`facebook|instagram|linkedin`)
	hasFavicon         = has(`favicon`)
	hasCanonical       = has(`canonical`)

	hrefAttr = regexp.MustCompile(`(?i)href=["'][^"']+["']`)
	markup   = regexp.MustCompile(`<[^>]+>`)
)

// defaultChecks is the audit battery in display order.
var defaultChecks = []Check{
	{Name: "SSL Certificate", Category: "security", Weight: 10, Eval: checkHTTPS},
	{Name: "Security Headers", Category: "security", Weight: 15, Eval: func(in *Input) Outcome {
		return verdict(hasSecurityHeaders(in.HTML), "Security headers", "Add CSP/X-Frame")
	}},
	{Name: "Performance Score", Category: "performance", Weight: 15, Eval: checkPerformance},
	{Name: "Page Title", Category: "seo", Weight: 10, Eval: checkTitle},
	{Name: "Meta Description", Category: "seo", Weight: 10, Eval: checkMetaDescription},
	{Name: "H1 Heading", Category: "seo", Weight: 10, Eval: checkH1},
	{Name: "Keyword Usage", Category: "seo", Weight: 10, Eval: func(in *Input) Outcome {
		return Outcome{Passed: len(in.Keywords) > 0, Message: fmt.Sprintf("%d keywords", len(in.Keywords))}
	}},
	{Name: "Content Length", Category: "seo", Weight: 8, Eval: checkContentLength},
	{Name: "Schema Markup", Category: "technical", Weight: 8, Eval: func(in *Input) Outcome {
		return verdict(hasSchema(in.HTML), "Schema found", "No schema")
	}},
	{Name: "Open Graph", Category: "social", Weight: 8, Eval: func(in *Input) Outcome {
		return verdict(hasOpenGraph(in.HTML), "Open Graph", "Missing OG tags")
	}},
	{Name: "Mobile Optimized", Category: "ux", Weight: 10, Eval: func(in *Input) Outcome {
		return verdict(hasViewport(in.HTML), "Mobile ready", "No viewport")
	}},
	{Name: "Clear CTA", Category: "ux", Weight: 8, Eval: func(in *Input) Outcome {
		return verdict(hasCTA(in.HTML), "CTA found", "No clear CTA")
	}},
	{Name: "Contact Info", Category: "ux", Weight: 8, Eval: func(in *Input) Outcome {
		// A bare "location" passes but is not reported as contact details.
		out := verdict(hasContactDetail(in.HTML), "Contact info", "No contact")
		out.Passed = hasContactSignal(in.HTML)
		return out
	}},
	{Name: "Social Links", Category: "social", Weight: 5, Eval: func(in *Input) Outcome {
		out := verdict(hasSocialProfile(in.HTML), "Social links", "No social")
		out.Passed = hasSocialSignal(in.HTML)
		return out
	}},
	{Name: "Images", Category: "performance", Weight: 8, Eval: checkImages},
	{Name: "Favicon", Category: "branding", Weight: 3, Eval: func(in *Input) Outcome {
		return verdict(hasFavicon(in.HTML), "Favicon", "No favicon")
	}},
	{Name: "Internal Links", Category: "links", Weight: 8, Eval: func(in *Input) Outcome {
		n := len(hrefAttr.FindAllStringIndex(in.HTML, -1))
		return Outcome{Passed: n >= 2, Message: fmt.Sprintf("%d links found", n)}
	}},
	{Name: "Canonical URL", Category: "technical", Weight: 5, Eval: func(in *Input) Outcome {
		return verdict(hasCanonical(in.HTML), "Canonical tag", "No canonical")
	}},
}

// DefaultChecks returns a copy of the standard audit battery.
func DefaultChecks() []Check {
	return append([]Check(nil), defaultChecks...)
}

func checkHTTPS(in *Input) Outcome {
	return verdict(strings.HasPrefix(in.URL, "https"), "HTTPS", "No HTTPS")
}

func checkPerformance(in *Input) Outcome {
	msg := "Slow"
	switch {
	case in.Performance >= 80:
		msg = "Fast"
	case in.Performance >= 50:
		msg = "Average"
	}
	return Outcome{Passed: in.Performance >= 50, Message: msg}
}

func checkTitle(in *Input) Outcome {
	title := in.doc.Find("title").First().Text()
	if title == "" {
		return Outcome{Message: "Missing title"}
	}

	n := utf8.RuneCountInString(title)
	if n < 30 {
		return Outcome{Message: "Too short"}
	}
	return Outcome{Passed: n <= 60, Message: fmt.Sprintf("%d chars", n)}
}

func checkMetaDescription(in *Input) Outcome {
	var desc string
	in.doc.Find("meta[name]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !strings.EqualFold(s.AttrOr("name", ""), "description") {
			return true
		}
		desc = s.AttrOr("content", "")
		return desc == ""
	})
	if desc == "" {
		return Outcome{Message: "Missing description"}
	}

	n := utf8.RuneCountInString(desc)
	return Outcome{Passed: n >= 120, Message: fmt.Sprintf("%d chars", n)}
}

func checkH1(in *Input) Outcome {
	switch n := in.doc.Find("h1").Length(); {
	case n == 0:
		return Outcome{Message: "No H1 heading"}
	case n > 1:
		return Outcome{Message: fmt.Sprintf("%d H1 tags", n)}
	}
	return Outcome{Passed: true, Message: "H1 present"}
}

func checkContentLength(in *Input) Outcome {
	words := len(strings.Fields(markup.ReplaceAllString(in.HTML, " ")))
	if words >= 1000 {
		return Outcome{Passed: true, Message: fmt.Sprintf("%d words", words)}
	}
	return Outcome{Message: "Thin content"}
}

func checkImages(in *Input) Outcome {
	imgs := in.doc.Find("img")
	total := imgs.Length()
	if total == 0 {
		return Outcome{Passed: true, Message: "No images"}
	}

	withAlt := imgs.FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.AttrOr("alt", "") != ""
	}).Length()

	return Outcome{
		Passed:  float64(withAlt)/float64(total) >= 0.5,
		Message: fmt.Sprintf("%d/%d have alt", withAlt, total),
	}
}
