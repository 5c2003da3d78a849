package model

// LinkStatus is the terminal classification of a checked link.
type LinkStatus string

const (
	LinkOK       LinkStatus = "ok"
	LinkBroken   LinkStatus = "broken"
	LinkRedirect LinkStatus = "redirect"
	LinkError    LinkStatus = "error"
	LinkSkip     LinkStatus = "skip"
)

// LinkCheckResult is the outcome of checking a single link.
type LinkCheckResult struct {
	URL         string     `json:"url"`
	Status      LinkStatus `json:"status"`
	StatusCode  int        `json:"statusCode,omitempty"`
	RedirectURL string     `json:"redirectUrl,omitempty"`
	Message     string     `json:"message"`
	DurationMs  int64      `json:"duration"`
}

// LinkCounts holds the number of links per classification.
type LinkCounts struct {
	Total     int `json:"totalLinksChecked"`
	Broken    int `json:"broken"`
	Redirects int `json:"redirects"`
	OK        int `json:"ok"`
	Errors    int `json:"errors"`
	Skipped   int `json:"skipped"`
}

// LinkAuditSummary collects link check results by classification.
type LinkAuditSummary struct {
	URL       string            `json:"url"`
	Counts    LinkCounts        `json:"summary"`
	Broken    []LinkCheckResult `json:"brokenLinks"`
	Redirects []LinkCheckResult `json:"redirects"`
	OK        []LinkCheckResult `json:"okLinks"`
	Errors    []LinkCheckResult `json:"errorLinks"`
	Skipped   []LinkCheckResult `json:"skippedLinks"`
}

// NewLinkAuditSummary returns an empty summary for pageURL.
func NewLinkAuditSummary(pageURL string) *LinkAuditSummary {
	return &LinkAuditSummary{
		URL:       pageURL,
		Broken:    []LinkCheckResult{},
		Redirects: []LinkCheckResult{},
		OK:        []LinkCheckResult{},
		Errors:    []LinkCheckResult{},
		Skipped:   []LinkCheckResult{},
	}
}

// Add records a checked link in its bucket.
func (s *LinkAuditSummary) Add(r LinkCheckResult) {
	s.Counts.Total++
	switch r.Status {
	case LinkOK:
		s.OK = append(s.OK, r)
		s.Counts.OK++
	case LinkBroken:
		s.Broken = append(s.Broken, r)
		s.Counts.Broken++
	case LinkRedirect:
		s.Redirects = append(s.Redirects, r)
		s.Counts.Redirects++
	case LinkError:
		s.Errors = append(s.Errors, r)
		s.Counts.Errors++
	default:
		s.Skipped = append(s.Skipped, r)
		s.Counts.Skipped++
	}
}

// Abort records a failure of the scanned page itself. It is listed with the
// errors but not counted as a checked link.
func (s *LinkAuditSummary) Abort(r LinkCheckResult) {
	s.Errors = append(s.Errors, r)
}

// ErrorResponse is the JSON shape returned on failure.
type ErrorResponse struct {
	Error   string `json:"error"`
	Example any    `json:"example,omitempty"`
}
