package model

import "time"

// PageFetchResult is the outcome of fetching one page during a crawl.
type PageFetchResult struct {
	URL        string `json:"url"`
	HTML       string `json:"-"`
	HTTPStatus int    `json:"httpStatus"`
	SizeKB     int    `json:"sizeKB"`
	Error      string `json:"error,omitempty"`
}

// Failed reports whether the page could not be used for analysis.
func (p PageFetchResult) Failed() bool {
	return p.Error != "" || p.HTTPStatus >= 400
}

// KeywordEntry is a word and the number of times it occurs on a page.
type KeywordEntry struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// ContentPillar is a suggested article title built from the top keyword.
type ContentPillar struct {
	Title string `json:"title"`
	Type  string `json:"type"`
}

// KeywordProfile groups the extracted keywords with generated suggestions.
type KeywordProfile struct {
	Primary         []KeywordEntry  `json:"primary"`
	Secondary       []KeywordEntry  `json:"secondary"`
	ContentPillars  []ContentPillar `json:"contentPillars"`
	FAQQuestions    []string        `json:"faqQuestions"`
	LongTailPhrases []string        `json:"longTailPhrases"`
}

// TechDetection lists the products matched in each technology category.
type TechDetection struct {
	CMS        []string `json:"cms"`
	Frameworks []string `json:"frameworks"`
	Analytics  []string `json:"analytics"`
	Hosting    []string `json:"hosting"`
}

// CheckResult is the outcome of one weighted audit check.
type CheckResult struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Weight   int    `json:"weight"`
	Passed   bool   `json:"passed"`
	Message  string `json:"message"`
}

// Performance is the heuristic performance score of the home page.
type Performance struct {
	Score          int `json:"score"`
	HomePageSizeKB int `json:"homePageSizeKB"`
}

// Comparison places a score against an industry benchmark.
type Comparison struct {
	YourScore       int    `json:"yourScore"`
	IndustryAverage int    `json:"industryAverage"`
	IndustryTop     int    `json:"industryTop"`
	Percentile      string `json:"percentile"`
	Description     string `json:"description"`
}

// ErrorPage is a crawled page that failed.
type ErrorPage struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

// PageSummary aggregates the crawl set.
type PageSummary struct {
	TotalPages    int         `json:"totalPages"`
	Successful    int         `json:"successful"`
	Errors        int         `json:"errors"`
	ErrorPages    []ErrorPage `json:"errorPages"`
	AvgPageSizeKB int         `json:"avgPageSizeKB"`
	TotalSizeKB   int         `json:"totalSizeKB"`
}

// AuditReport holds the complete result of auditing a site.
type AuditReport struct {
	URL          string                   `json:"url"`
	Timestamp    time.Time                `json:"timestamp"`
	Score        int                      `json:"score"`
	Grade        string                   `json:"grade"`
	Checks       []CheckResult            `json:"checks"`
	ByCategory   map[string][]CheckResult `json:"byCategory"`
	Performance  Performance              `json:"performance"`
	Keywords     KeywordProfile           `json:"keywords"`
	TechStack    TechDetection            `json:"techStack"`
	Industry     string                   `json:"industry"`
	IndustryName string                   `json:"industryName"`
	Comparison   Comparison               `json:"comparison"`
	Pages        PageSummary              `json:"pages"`
	CrawledURLs  []string                 `json:"crawledUrls"`
}

// AuditRecord is the summary of an audit kept by the audit store.
type AuditRecord struct {
	URL          string         `json:"url"`
	Email        string         `json:"email,omitempty"`
	Score        int            `json:"score"`
	Grade        string         `json:"grade"`
	Industry     string         `json:"industry"`
	IndustryName string         `json:"industryName"`
	Keywords     []KeywordEntry `json:"keywords"`
	TechStack    TechDetection  `json:"techStack"`
	Performance  Performance    `json:"performance"`
	ChecksCount  int            `json:"checksCount"`
	IssuesCount  int            `json:"issuesCount"`
	SavedAt      time.Time      `json:"savedAt"`
}

// NewAuditRecord summarizes a report for storage.
func NewAuditRecord(r *AuditReport, email string, savedAt time.Time) AuditRecord {
	keywords := r.Keywords.Primary
	if len(keywords) > 10 {
		keywords = keywords[:10]
	}

	var issues int
	for _, c := range r.Checks {
		if !c.Passed {
			issues++
		}
	}

	return AuditRecord{
		URL:          r.URL,
		Email:        email,
		Score:        r.Score,
		Grade:        r.Grade,
		Industry:     r.Industry,
		IndustryName: r.IndustryName,
		Keywords:     keywords,
		TechStack:    r.TechStack,
		Performance:  r.Performance,
		ChecksCount:  len(r.Checks),
		IssuesCount:  issues,
		SavedAt:      savedAt,
	}
}
