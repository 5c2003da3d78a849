package linkcheck

import (
	"net/url"
	"strings"

	"github.com/Bahjat/site-audit-tool/internal/crawl"
	"github.com/Bahjat/site-audit-tool/internal/platform/errs"
)

// ExtractLinks returns every anchor target on the page resolved against
// pageURL, deduplicated in order of first appearance. Empty, javascript: and
// in-page (#...) hrefs are dropped; other schemes such as mailto: are kept so
// the checker can report them as skipped.
func ExtractLinks(pageURL, body string) []string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var links []string
	for _, href := range crawl.Hrefs(body) {
		if strings.HasPrefix(strings.ToLower(href), "javascript:") || strings.HasPrefix(href, "#") {
			continue
		}
		ref, err := url.Parse(href)
		if err != nil {
			continue
		}

		link := base.ResolveReference(ref).String()
		if seen[link] {
			continue
		}
		seen[link] = true
		links = append(links, link)
	}
	return links
}

// Filter applies the caller's scope to links: the same-host restriction when
// external links are not wanted, the excluded domains, and the link cap.
// Only http(s) links are subject to the host restriction.
func Filter(pageURL string, links []string, opts Options) []string {
	opts = opts.normalize()

	var host string
	if base, err := url.Parse(pageURL); err == nil {
		host = base.Hostname()
	}

	out := make([]string, 0, min(len(links), opts.MaxLinks))
	for _, link := range links {
		if len(out) >= opts.MaxLinks {
			break
		}
		if !opts.CheckExternal && isHTTP(link) {
			u, err := url.Parse(link)
			if err != nil || !strings.EqualFold(u.Hostname(), host) {
				continue
			}
		}
		if excluded(link, opts.ExcludeDomains) {
			continue
		}
		out = append(out, link)
	}
	return out
}

func excluded(link string, domains []string) bool {
	for _, d := range domains {
		if d != "" && strings.Contains(link, d) {
			return true
		}
	}
	return false
}

func isHTTP(link string) bool {
	return strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://")
}

// PageURL trims raw and defaults its scheme to https. Anything that does not
// parse as an absolute http(s) URL is rejected.
func PageURL(raw string) (string, error) {
	target := strings.TrimSpace(raw)
	if !isHTTP(target) {
		target = "https://" + target
	}

	u, err := url.Parse(target)
	if err != nil || u.Hostname() == "" {
		return "", &errs.AppError{Kind: errs.InvalidInput, Message: "Invalid URL format", Cause: err}
	}
	return target, nil
}
