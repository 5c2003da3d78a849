package crawl

import (
	"context"
	"net/url"
	"time"

	"github.com/temoto/robotstxt"

	"github.com/Bahjat/site-audit-tool/internal/fetch"
)

// robotsAgent is the product token matched against robots.txt groups.
const robotsAgent = "SiteAuditBot"

// allowedByRobots drops links disallowed for robotsAgent. A robots.txt that
// cannot be fetched or parsed allows everything.
func (c *Crawler) allowedByRobots(ctx context.Context, seed string, links []string) []string {
	base, err := url.Parse(seed)
	if err != nil {
		return links
	}
	robotsURL := (&url.URL{Scheme: base.Scheme, Host: base.Host, Path: "/robots.txt"}).String()

	res := c.fetcher.Fetch(ctx, robotsURL, fetch.Options{
		Timeout:      5 * time.Second,
		MaxRedirects: pageRedirects,
	})
	if res.Err != nil {
		return links
	}

	robots, err := robotstxt.FromStatusAndBytes(res.StatusCode, []byte(res.Body))
	if err != nil {
		c.logger.Debug("robots.txt unreadable", "url", robotsURL, "error", err)
		return links
	}
	group := robots.FindGroup(robotsAgent)

	allowed := links[:0:0]
	for _, link := range links {
		u, err := url.Parse(link)
		if err != nil {
			continue
		}
		if group.Test(u.EscapedPath()) {
			allowed = append(allowed, link)
		}
	}
	return allowed
}
