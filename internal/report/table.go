// Package report renders audit and link scan results for the command line.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/rodaine/table"

	"github.com/Bahjat/site-audit-tool/internal/model"
)

// WriteAudit writes the headline figures of r followed by its checks table.
func WriteAudit(w io.Writer, r *model.AuditReport) error {
	if _, err := fmt.Fprintf(w, "%s  score %d (%s)  %s vs %s, %s\n\n",
		r.URL, r.Score, r.Grade, r.Comparison.Percentile, r.IndustryName, r.Timestamp.Format("2006-01-02 15:04")); err != nil {
		return err
	}

	summary := table.New("Pages", "Successful", "Errors", "Avg KB", "Performance").WithWriter(w)
	summary.AddRow(r.Pages.TotalPages, r.Pages.Successful, r.Pages.Errors, r.Pages.AvgPageSizeKB, r.Performance.Score)
	summary.Print()

	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return WriteChecksTable(w, r.Checks)
}

// WriteChecksTable writes one row per check in battery order.
func WriteChecksTable(w io.Writer, checks []model.CheckResult) error {
	tbl := table.New("Category", "Check", "Weight", "Result", "Message").WithWriter(w)
	for _, c := range checks {
		tbl.AddRow(c.Category, c.Name, c.Weight, verdict(c.Passed), c.Message)
	}
	tbl.Print()
	return nil
}

// WriteLinksTable writes the counts of s and one row per non-ok link.
func WriteLinksTable(w io.Writer, s *model.LinkAuditSummary) error {
	counts := table.New("Checked", "OK", "Broken", "Redirects", "Errors", "Skipped").WithWriter(w)
	counts.AddRow(s.Counts.Total, s.Counts.OK, s.Counts.Broken, s.Counts.Redirects, s.Counts.Errors, s.Counts.Skipped)
	counts.Print()

	rows := linkRows(s, false)
	if len(rows) == 0 {
		return nil
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	tbl := table.New("Status", "Code", "URL", "Message").WithWriter(w)
	for _, r := range rows {
		msg := r.Message
		if r.Redirect != "" {
			msg += " -> " + r.Redirect
		}
		tbl.AddRow(r.Status, r.Code, r.URL, msg)
	}
	tbl.Print()
	return nil
}

func verdict(passed bool) string {
	if passed {
		return "PASS"
	}
	return "FAIL"
}

func code(status int) string {
	if status == 0 {
		return "-"
	}
	return strconv.Itoa(status)
}
