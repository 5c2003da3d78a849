package api

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/Bahjat/site-audit-tool/internal/audit"
	"github.com/Bahjat/site-audit-tool/internal/linkcheck"
	"github.com/Bahjat/site-audit-tool/internal/model"
	"github.com/Bahjat/site-audit-tool/internal/platform/errs"
	"github.com/Bahjat/site-audit-tool/internal/platform/requestid"
	"github.com/Bahjat/site-audit-tool/internal/store"
)

const saveTimeout = 10 * time.Second

// Service orchestrates the audit engine, the link scanner and the audit
// store, and logs results.
type Service struct {
	auditor Auditor
	scanner LinkScanner
	store   AuditStore
	logger  *slog.Logger

	saves sync.WaitGroup
}

// NewService creates a Service. store may be nil, in which case reports are
// not kept.
func NewService(auditor Auditor, scanner LinkScanner, store AuditStore, logger *slog.Logger) *Service {
	return &Service{auditor: auditor, scanner: scanner, store: store, logger: logger}
}

// Audit runs an audit and hands the report to the store in the background.
func (s *Service) Audit(ctx context.Context, req audit.Request) (*model.AuditReport, error) {
	logger := s.logger.With("url", req.URL, "request_id", requestid.FromContext(ctx))

	report, err := s.auditor.Run(ctx, req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = &errs.AppError{
				Kind:    errs.Timeout,
				Message: "Audit timed out. The site may be slow to respond.",
				Cause:   err,
			}
		}

		attrs := []any{"error", err}
		var appErr *errs.AppError
		if errors.As(err, &appErr) && appErr.UpstreamStatus != 0 {
			attrs = append(attrs, "target_status", appErr.UpstreamStatus)
		}
		logger.Error("audit failed", attrs...)
		return nil, err
	}

	logger.Info("audit complete",
		"score", report.Score,
		"grade", report.Grade,
		"industry", report.Industry,
		"pages", report.Pages.TotalPages,
		"page_errors", report.Pages.Errors,
	)

	s.save(ctx, model.NewAuditRecord(report, req.Email, report.Timestamp))
	return report, nil
}

// save writes rec without blocking the caller. Failures are only logged.
func (s *Service) save(ctx context.Context, rec model.AuditRecord) {
	if s.store == nil {
		return
	}

	ctx = context.WithoutCancel(ctx)
	s.saves.Go(func() {
		ctx, cancel := context.WithTimeout(ctx, saveTimeout)
		defer cancel()

		if err := s.store.Save(ctx, rec); err != nil {
			s.logger.Error("saving audit failed", "url", rec.URL, "error", err, "request_id", requestid.FromContext(ctx))
		}
	})
}

// Wait blocks until every pending save has finished.
func (s *Service) Wait() {
	s.saves.Wait()
}

// CheckLinks scans the links on pageURL.
func (s *Service) CheckLinks(ctx context.Context, pageURL string, opts linkcheck.Options) (*model.LinkAuditSummary, error) {
	target, err := linkcheck.PageURL(pageURL)
	if err != nil {
		return nil, err
	}

	logger := s.logger.With("url", target, "request_id", requestid.FromContext(ctx))
	logger.Info("link scan started", "max_links", opts.MaxLinks, "check_external", opts.CheckExternal)

	summary := s.scanner.Check(ctx, target, opts)

	logger.Info("link scan complete",
		"checked", summary.Counts.Total,
		"broken", summary.Counts.Broken,
		"redirects", summary.Counts.Redirects,
		"errors", summary.Counts.Errors,
		"skipped", summary.Counts.Skipped,
	)
	return summary, nil
}

// History returns the stored summary of the last audit of rawURL.
func (s *Service) History(ctx context.Context, rawURL string) (*model.AuditRecord, error) {
	target, err := audit.NormalizeURL(rawURL)
	if err != nil {
		return nil, err
	}
	if s.store == nil {
		return nil, &errs.AppError{Kind: errs.NotFound, Message: "No audit found for " + target}
	}

	rec, err := s.store.Get(ctx, target)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &errs.AppError{Kind: errs.NotFound, Message: "No audit found for " + target, Cause: err}
	}
	if err != nil {
		s.logger.Error("reading audit failed", "url", target, "error", err, "request_id", requestid.FromContext(ctx))
		return nil, err
	}
	return rec, nil
}
