package report

import (
	"io"

	"github.com/gocarina/gocsv"

	"github.com/Bahjat/site-audit-tool/internal/model"
)

// CheckRow is the CSV shape of a check result.
type CheckRow struct {
	Category string `csv:"Category"`
	Check    string `csv:"Check"`
	Weight   int    `csv:"Weight"`
	Result   string `csv:"Result"`
	Message  string `csv:"Message"`
}

// LinkRow is the CSV shape of a link check result.
type LinkRow struct {
	Status   string `csv:"Status"`
	Code     string `csv:"Code"`
	URL      string `csv:"URL"`
	Redirect string `csv:"Redirect,omitempty"`
	Message  string `csv:"Message"`
	Duration int64  `csv:"Duration (ms)"`
}

// WriteChecksCSV writes checks as CSV with a header row.
func WriteChecksCSV(w io.Writer, checks []model.CheckResult) error {
	rows := make([]CheckRow, 0, len(checks))
	for _, c := range checks {
		rows = append(rows, CheckRow{
			Category: c.Category,
			Check:    c.Name,
			Weight:   c.Weight,
			Result:   verdict(c.Passed),
			Message:  c.Message,
		})
	}
	return gocsv.Marshal(&rows, w)
}

// WriteLinksCSV writes every link of s as CSV, ok links included.
func WriteLinksCSV(w io.Writer, s *model.LinkAuditSummary) error {
	rows := linkRows(s, true)
	return gocsv.Marshal(&rows, w)
}

// linkRows lists broken links first, then redirects, errors, skipped and,
// when withOK is set, ok links.
func linkRows(s *model.LinkAuditSummary, withOK bool) []LinkRow {
	groups := [][]model.LinkCheckResult{s.Broken, s.Redirects, s.Errors, s.Skipped}
	if withOK {
		groups = append(groups, s.OK)
	}

	rows := []LinkRow{}
	for _, g := range groups {
		for _, r := range g {
			rows = append(rows, LinkRow{
				Status:   string(r.Status),
				Code:     code(r.StatusCode),
				URL:      r.URL,
				Redirect: r.RedirectURL,
				Message:  r.Message,
				Duration: r.DurationMs,
			})
		}
	}
	return rows
}
