package api

import (
	"context"

	"github.com/Bahjat/site-audit-tool/internal/audit"
	"github.com/Bahjat/site-audit-tool/internal/linkcheck"
	"github.com/Bahjat/site-audit-tool/internal/model"
)

// Auditor runs a full site audit.
type Auditor interface {
	Run(ctx context.Context, req audit.Request) (*model.AuditReport, error)
}

// LinkScanner checks the links found on a single page.
type LinkScanner interface {
	Check(ctx context.Context, pageURL string, opts linkcheck.Options) *model.LinkAuditSummary
}

// AuditStore persists audit summaries keyed by URL.
type AuditStore interface {
	Save(ctx context.Context, rec model.AuditRecord) error
	Get(ctx context.Context, url string) (*model.AuditRecord, error)
}
