package crawl

import (
	"fmt"
	"math"
	"strings"

	"github.com/Bahjat/site-audit-tool/internal/model"
)

// CrawlSet holds the fetched pages of one crawl, seed first.
type CrawlSet []model.PageFetchResult

// Seed returns the first page of the crawl.
func (s CrawlSet) Seed() model.PageFetchResult {
	if len(s) == 0 {
		return model.PageFetchResult{}
	}
	return s[0]
}

// CombinedHTML joins the bodies of every crawled page.
func (s CrawlSet) CombinedHTML() string {
	bodies := make([]string, len(s))
	for i, p := range s {
		bodies[i] = p.HTML
	}
	return strings.Join(bodies, " ")
}

// URLs returns the crawled URLs in crawl order.
func (s CrawlSet) URLs() []string {
	urls := make([]string, len(s))
	for i, p := range s {
		urls[i] = p.URL
	}
	return urls
}

// Summary counts successful and failed pages. Sizes cover successful pages only.
func (s CrawlSet) Summary() model.PageSummary {
	sum := model.PageSummary{
		TotalPages: len(s),
		ErrorPages: []model.ErrorPage{},
	}

	for _, p := range s {
		if p.Failed() {
			msg := p.Error
			if msg == "" {
				msg = fmt.Sprintf("Status %d", p.HTTPStatus)
			}
			sum.ErrorPages = append(sum.ErrorPages, model.ErrorPage{URL: p.URL, Error: msg})
			continue
		}
		sum.Successful++
		sum.TotalSizeKB += p.SizeKB
	}

	sum.Errors = len(sum.ErrorPages)
	sum.AvgPageSizeKB = int(math.Round(float64(sum.TotalSizeKB) / float64(max(sum.Successful, 1))))
	return sum
}
