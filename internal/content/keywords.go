// Package content derives keyword, technology, industry and performance
// signals from raw page HTML.
package content

import (
	"regexp"
	"slices"
	"strings"

	"github.com/Bahjat/site-audit-tool/internal/model"
)

const maxKeywords = 30

var (
	scriptBlock = regexp.MustCompile(`(?i)<script[^>]*>[\s\S]*?</script>`)
	styleBlock  = regexp.MustCompile(`(?i)<style[^>]*>[\s\S]*?</style>`)
	anyTag      = regexp.MustCompile(`<[^>]+>`)
	entityRef   = regexp.MustCompile(`(?i)&[a-z]+;`)
	nonWord     = regexp.MustCompile(`[^\w\s-]`)
)

var stopWords = toSet(
	"the", "and", "for", "with", "that", "this", "you", "your", "are", "not", "but",
	"from", "have", "has", "was", "were", "been", "being", "will", "would", "could", "should",
	"what", "when", "where", "which", "who", "how", "why", "can", "may", "might", "must",
	"all", "each", "every", "both", "few", "more", "most", "other", "some", "such",
	"only", "own", "same", "than", "too", "very", "just", "also", "now", "here", "there",
	"our", "their", "them", "these", "those", "then", "out", "into", "over", "after",
	"before", "between", "under", "again", "further", "once", "about", "above", "below",
)

func toSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// VisibleText strips scripts, styles, tags and entity references from html.
func VisibleText(html string) string {
	text := scriptBlock.ReplaceAllString(html, " ")
	text = styleBlock.ReplaceAllString(text, " ")
	text = anyTag.ReplaceAllString(text, " ")
	return entityRef.ReplaceAllString(text, " ")
}

// ExtractKeywords returns the 30 most frequent content words of html, most
// frequent first. Words with equal counts keep the order they first appear in.
func ExtractKeywords(html string) []model.KeywordEntry {
	text := strings.ToLower(nonWord.ReplaceAllString(VisibleText(html), " "))

	counts := make(map[string]int)
	var order []string
	for _, w := range strings.Fields(text) {
		if len(w) <= 3 {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		w = strings.TrimSuffix(strings.TrimPrefix(w, "-"), "-")
		if len(w) <= 2 {
			continue
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}

	entries := make([]model.KeywordEntry, len(order))
	for i, w := range order {
		entries[i] = model.KeywordEntry{Word: w, Count: counts[w]}
	}
	slices.SortStableFunc(entries, func(a, b model.KeywordEntry) int {
		return b.Count - a.Count
	})

	if len(entries) > maxKeywords {
		entries = entries[:maxKeywords]
	}
	return entries
}
