package crawl

import (
	"strings"

	"golang.org/x/net/html"
)

// Hrefs returns the raw href values of every anchor in the document, in
// document order. A tokenizer error ends the scan with the hrefs seen so far.
func Hrefs(body string) []string {
	var hrefs []string

	z := html.NewTokenizer(strings.NewReader(body))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return hrefs

		case html.StartTagToken, html.SelfClosingTagToken:
			tn, hasAttr := z.TagName()
			if string(tn) != "a" || !hasAttr {
				continue
			}
			if href := strings.TrimSpace(extractAttr(z, "href")); href != "" {
				hrefs = append(hrefs, href)
			}
		}
	}
}

func extractAttr(z *html.Tokenizer, target string) string {
	for {
		key, val, more := z.TagAttr()
		if string(key) == target {
			return string(val)
		}
		if !more {
			return ""
		}
	}
}
