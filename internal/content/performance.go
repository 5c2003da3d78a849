package content

import "regexp"

var (
	scriptOpen = regexp.MustCompile(`(?i)<script`)
	embedOpen  = regexp.MustCompile(`(?i)<iframe|<embed`)
)

// PerformanceScore estimates page weight from document size and embedded
// resources. It is a 0-100 heuristic, not a load-time measurement.
func PerformanceScore(html string) int {
	score := 100

	sizeKB := float64(len(html)) / 1024
	switch {
	case sizeKB > 1000:
		score -= 30
	case sizeKB > 500:
		score -= 20
	case sizeKB > 200:
		score -= 10
	}

	score -= min(25, 2*len(scriptOpen.FindAllStringIndex(html, -1)))
	score -= min(15, 5*len(embedOpen.FindAllStringIndex(html, -1)))

	return max(0, min(100, score))
}
