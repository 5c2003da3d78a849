package scoring

import "github.com/Bahjat/site-audit-tool/internal/model"

// Percentile buckets.
const (
	PercentileTop10     = "top_10"
	PercentileAboveAvg  = "above_avg"
	PercentileAverage   = "average"
	PercentileBelowAvg  = "below_avg"
	PercentileNeedsWork = "needs_work"
)

const generalIndustry = "general"

// Profile holds the reference scores of one industry.
type Profile struct {
	Industry    string
	Avg         int
	Top         int
	Description string
}

var profiles = map[string]Profile{
	"martial_arts":  {Industry: "martial_arts", Avg: 52, Top: 78, Description: "martial arts schools"},
	"restaurant":    {Industry: "restaurant", Avg: 48, Top: 75, Description: "restaurants"},
	"gym":           {Industry: "gym", Avg: 55, Top: 80, Description: "fitness gyms"},
	"medical":       {Industry: "medical", Avg: 68, Top: 85, Description: "medical practices"},
	"legal":         {Industry: "legal", Avg: 72, Top: 88, Description: "law firms"},
	"real_estate":   {Industry: "real_estate", Avg: 62, Top: 82, Description: "real estate agencies"},
	"home_services": {Industry: "home_services", Avg: 45, Top: 72, Description: "home service businesses"},
	"retail":        {Industry: "retail", Avg: 58, Top: 79, Description: "retail stores"},
	generalIndustry: {Industry: generalIndustry, Avg: 55, Top: 80, Description: "local businesses"},
}

// Benchmark returns the profile for industry, falling back to the general
// profile for unknown tags.
func Benchmark(industry string) Profile {
	if p, ok := profiles[industry]; ok {
		return p
	}
	return profiles[generalIndustry]
}

// Compare buckets score against p. The first matching bucket wins.
func Compare(score int, p Profile) string {
	switch {
	case score >= p.Top:
		return PercentileTop10
	case score >= p.Avg+20:
		return PercentileAboveAvg
	case score >= p.Avg:
		return PercentileAverage
	case score >= p.Avg-15:
		return PercentileBelowAvg
	}
	return PercentileNeedsWork
}

// Comparison describes score relative to p.
func Comparison(score int, p Profile) model.Comparison {
	return model.Comparison{
		YourScore:       score,
		IndustryAverage: p.Avg,
		IndustryTop:     p.Top,
		Percentile:      Compare(score, p),
		Description:     "vs " + p.Description,
	}
}
