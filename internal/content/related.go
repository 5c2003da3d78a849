package content

import "github.com/Bahjat/site-audit-tool/internal/model"

const (
	maxLongTail = 25
	maxFAQ      = 12
)

var keywordModifiers = []string{
	"near me", "nearby", "online", "best", "top rated", "affordable",
	"professional", "expert", "reviews", "prices", "cost",
}

var locationSuffixes = []string{"Orlando", "Florida"}

var faqStarters = []string{"how much", "what is", "how to", "where to", "when should", "why is"}

// BuildKeywordProfile splits keywords into primary and secondary sets and
// generates long-tail phrases, content pillars and FAQ questions from the top
// five words. The output depends only on the input order.
func BuildKeywordProfile(keywords []model.KeywordEntry) model.KeywordProfile {
	profile := model.KeywordProfile{
		Primary:         window(keywords, 0, 10),
		Secondary:       window(keywords, 10, 25),
		ContentPillars:  []model.ContentPillar{},
		FAQQuestions:    []string{},
		LongTailPhrases: []string{},
	}

	top := make([]string, 0, 5)
	for _, k := range window(keywords, 0, 5) {
		top = append(top, k.Word)
	}
	if len(top) == 0 {
		return profile
	}

	profile.LongTailPhrases = longTail(top)
	profile.ContentPillars = contentPillars(top[0])

	for _, kw := range top[:min(3, len(top))] {
		for _, q := range faqStarters {
			if len(profile.FAQQuestions) == maxFAQ {
				break
			}
			profile.FAQQuestions = append(profile.FAQQuestions, q+" "+kw+"?")
		}
	}

	return profile
}

func longTail(top []string) []string {
	seen := make(map[string]bool)
	var phrases []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			phrases = append(phrases, p)
		}
	}

	for _, kw := range top {
		add(kw)
	}
	for _, kw := range top {
		for _, m := range keywordModifiers {
			add(kw + " " + m)
			add(m + " " + kw)
		}
		for _, loc := range locationSuffixes {
			add(kw + " " + loc)
		}
	}

	if len(phrases) > maxLongTail {
		phrases = phrases[:maxLongTail]
	}
	return phrases
}

func contentPillars(kw string) []model.ContentPillar {
	return []model.ContentPillar{
		{Title: "Ultimate Guide to " + kw, Type: "pillar"},
		{Title: "10 Things You Need to Know About " + kw, Type: "listicle"},
		{Title: "How to Choose the Best " + kw, Type: "howto"},
		{Title: kw + " vs Competitors", Type: "comparison"},
		{Title: "Why " + kw + " is Worth It", Type: "trend"},
	}
}

// window returns a copy of entries[from:to] clipped to the slice bounds.
func window(entries []model.KeywordEntry, from, to int) []model.KeywordEntry {
	from = min(from, len(entries))
	to = min(to, len(entries))
	return append([]model.KeywordEntry{}, entries[from:to]...)
}
