package content

import "strings"

// GeneralIndustry is reported when no industry keyword matches.
const GeneralIndustry = "general"

// industryKeywords is checked in order; the first industry with a hit wins.
var industryKeywords = []struct {
	industry string
	keywords []string
}{
	{"martial_arts", []string{"jiujitsu", "jiu-jitsu", "brazilian", "gracie", "karate", "mma", "dojo"}},
	{"restaurant", []string{"restaurant", "cafe", "pizza", "food", "dining", "menu", "eatery"}},
	{"gym", []string{"gym", "fitness", "workout", "training", "crossfit", "health club"}},
	{"medical", []string{"medical", "clinic", "dental", "doctor", "health", "hospital", "physician"}},
	{"legal", []string{"lawyer", "attorney", "legal", "law firm", "counsel", "justice"}},
	{"real_estate", []string{"real estate", "realtor", "property", "homes", "broker", "realty"}},
	{"home_services", []string{"plumber", "electrician", "hvac", "roofing", "landscaping", "contractor"}},
}

// DetectIndustry guesses the industry tag of a site from its HTML and URL.
func DetectIndustry(html, pageURL string) string {
	text := strings.ToLower(html + " " + pageURL)
	for _, ind := range industryKeywords {
		for _, kw := range ind.keywords {
			if strings.Contains(text, kw) {
				return ind.industry
			}
		}
	}
	return GeneralIndustry
}
