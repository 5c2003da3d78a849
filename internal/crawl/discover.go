package crawl

import (
	"net/url"
	"path"
	"strings"
)

// DefaultDiscoveryLimit is the number of discovered pages a crawl considers.
const DefaultDiscoveryLimit = 9

var staticExtensions = map[string]bool{
	".pdf": true, ".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".webp": true, ".ico": true, ".bmp": true, ".svg": true, ".css": true,
	".js": true, ".woff": true, ".woff2": true, ".ttf": true, ".eot": true,
	".otf": true, ".xml": true,
}

// DiscoverLinks returns the same-host pages linked from body, deduplicated in
// order of first appearance and capped at limit (no cap when limit <= 0).
// Asset files, links with a query or fragment, and the base page itself are
// left out. Hrefs that do not parse are dropped.
func DiscoverLinks(baseURL, body string, limit int) []string {
	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil
	}

	seen := map[string]bool{canonical(base): true}
	var found []string

	for _, href := range Hrefs(body) {
		if limit > 0 && len(found) >= limit {
			break
		}

		ref, err := url.Parse(href)
		if err != nil {
			continue
		}
		resolved := base.ResolveReference(ref)
		if resolved.Scheme != "http" && resolved.Scheme != "https" || resolved.Host == "" {
			continue
		}
		if staticExtensions[strings.ToLower(path.Ext(resolved.Path))] {
			continue
		}
		if resolved.RawQuery != "" || resolved.ForceQuery || strings.Contains(href, "#") {
			continue
		}
		if !strings.EqualFold(resolved.Host, base.Host) {
			continue
		}

		key := canonical(resolved)
		if seen[key] {
			continue
		}
		seen[key] = true
		found = append(found, resolved.String())
	}

	return found
}

// canonical identifies a page regardless of host case or a trailing slash.
func canonical(u *url.URL) string {
	return strings.ToLower(u.Host) + strings.TrimSuffix(u.EscapedPath(), "/")
}
