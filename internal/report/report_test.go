package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bahjat/site-audit-tool/internal/model"
)

func checks() []model.CheckResult {
	return []model.CheckResult{
		{Name: "SSL Certificate", Category: "security", Weight: 15, Passed: true, Message: "HTTPS enabled"},
		{Name: "Page Title", Category: "seo", Weight: 10, Passed: false, Message: "Too short"},
	}
}

func linkSummary() *model.LinkAuditSummary {
	s := model.NewLinkAuditSummary("https://example.com")
	s.Add(model.LinkCheckResult{URL: "https://example.com/ok", Status: model.LinkOK, StatusCode: 200, Message: "OK"})
	s.Add(model.LinkCheckResult{URL: "https://example.com/missing", Status: model.LinkBroken, StatusCode: 404, Message: "Not Found"})
	s.Add(model.LinkCheckResult{URL: "https://example.com/old", Status: model.LinkRedirect, StatusCode: 301, RedirectURL: "/new", Message: "Redirect chain"})
	s.Add(model.LinkCheckResult{URL: "mailto:a@example.com", Status: model.LinkSkip, Message: "Non-HTTP URL"})
	return s
}

func TestWriteChecksTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteChecksTable(&buf, checks()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Category")
	assert.Contains(t, lines[0], "Message")
	assert.Contains(t, lines[1], "SSL Certificate")
	assert.Contains(t, lines[1], "PASS")
	assert.Contains(t, lines[2], "Page Title")
	assert.Contains(t, lines[2], "FAIL")
}

func TestWriteAudit(t *testing.T) {
	r := &model.AuditReport{
		URL:          "https://example.com",
		Timestamp:    time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC),
		Score:        81,
		Grade:        "A",
		Checks:       checks(),
		IndustryName: "local businesses",
		Comparison:   model.Comparison{Percentile: "top_10"},
		Pages:        model.PageSummary{TotalPages: 5, Successful: 4, Errors: 1},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteAudit(&buf, r))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "https://example.com  score 81 (A)  top_10 vs local businesses, 2026-01-02 03:04\n"))
	assert.Contains(t, out, "Successful")
	assert.Contains(t, out, "SSL Certificate")
}

func TestWriteLinksTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLinksTable(&buf, linkSummary()))

	out := buf.String()
	assert.Contains(t, out, "Checked")
	assert.Contains(t, out, "https://example.com/missing")
	assert.Contains(t, out, "Redirect chain -> /new")
	assert.Contains(t, out, "mailto:a@example.com")
	assert.NotContains(t, out, "https://example.com/ok")

	// Broken links come first.
	assert.Less(t, strings.Index(out, "/missing"), strings.Index(out, "/old"))
}

func TestWriteLinksTable_NothingToReport(t *testing.T) {
	s := model.NewLinkAuditSummary("https://example.com")
	s.Add(model.LinkCheckResult{URL: "https://example.com/ok", Status: model.LinkOK, StatusCode: 200, Message: "OK"})

	var buf bytes.Buffer
	require.NoError(t, WriteLinksTable(&buf, s))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
}

func TestWriteChecksCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteChecksCSV(&buf, checks()))

	assert.Equal(t,
		"Category,Check,Weight,Result,Message\n"+
			"security,SSL Certificate,15,PASS,HTTPS enabled\n"+
			"seo,Page Title,10,FAIL,Too short\n",
		buf.String())
}

func TestWriteLinksCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLinksCSV(&buf, linkSummary()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Status,Code,URL,Redirect,Message,Duration (ms)", lines[0])
	assert.Equal(t, "broken,404,https://example.com/missing,,Not Found,0", lines[1])
	assert.Equal(t, "redirect,301,https://example.com/old,/new,Redirect chain,0", lines[2])
	assert.Equal(t, "skip,-,mailto:a@example.com,,Non-HTTP URL,0", lines[3])
	assert.Equal(t, "ok,200,https://example.com/ok,,OK,0", lines[4])
}
