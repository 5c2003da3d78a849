// Package api exposes the audit engine and the link checker over HTTP.
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Bahjat/site-audit-tool/internal/audit"
	"github.com/Bahjat/site-audit-tool/internal/linkcheck"
	"github.com/Bahjat/site-audit-tool/internal/model"
	"github.com/Bahjat/site-audit-tool/internal/platform/errs"
)

const (
	maxRequestBody = 1 << 20 // 1 MB
	okLinksShown   = 10
)

var (
	errURLRequired     = errors.New("URL required")
	errURLParamMissing = errors.New("URL parameter required")
)

// linkRequestExample is returned with broken-links validation errors.
var linkRequestExample = map[string]any{
	"url":           "https://example.com",
	"maxLinks":      linkcheck.DefaultMaxLinks,
	"checkExternal": true,
}

// Transport handles HTTP requests for audits and link scans.
type Transport struct {
	service *Service
	logger  *slog.Logger
	now     func() time.Time
}

// NewTransport creates an HTTP transport backed by the given service.
func NewTransport(service *Service, logger *slog.Logger) *Transport {
	return &Transport{service: service, logger: logger, now: time.Now}
}

// RegisterRoutes attaches the transport's handlers to the given mux.
func (t *Transport) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/audit", t.handleAudit)
	mux.HandleFunc("POST /api/broken-links", t.handleBrokenLinks)
	mux.HandleFunc("GET /api/audits", t.handleHistory)
}

type auditRequest struct {
	URL      string `json:"url"`
	Email    string `json:"email"`
	Industry string `json:"industry"`
	Pages    int    `json:"pages"`
}

func (r auditRequest) validate() error {
	if r.URL == "" {
		return errURLRequired
	}
	return nil
}

func (t *Transport) handleAudit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	var req auditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		t.renderError(w, http.StatusBadRequest, "Invalid request body. Please send a JSON object with a \"url\" field.")
		return
	}

	if err := req.validate(); err != nil {
		t.renderError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := t.service.Audit(r.Context(), audit.Request{
		URL:      req.URL,
		Email:    req.Email,
		Industry: req.Industry,
		Pages:    req.Pages,
	})
	if err != nil {
		t.handleServiceError(w, err)
		return
	}

	t.renderJSON(w, http.StatusOK, report)
}

type linkRequest struct {
	URL           string `json:"url"`
	MaxLinks      int    `json:"maxLinks"`
	CheckExternal *bool  `json:"checkExternal"`
}

func (r linkRequest) validate() error {
	if r.URL == "" {
		return errURLParamMissing
	}
	return nil
}

func (r linkRequest) options() linkcheck.Options {
	opts := linkcheck.DefaultOptions()
	if r.MaxLinks > 0 {
		opts.MaxLinks = r.MaxLinks
	}
	if r.CheckExternal != nil {
		opts.CheckExternal = *r.CheckExternal
	}
	return opts
}

type linkResponse struct {
	URL             string                  `json:"url"`
	Timestamp       time.Time               `json:"timestamp"`
	Summary         model.LinkCounts        `json:"summary"`
	BrokenLinks     []model.LinkCheckResult `json:"brokenLinks"`
	Redirects       []model.LinkCheckResult `json:"redirects"`
	OKLinks         []model.LinkCheckResult `json:"okLinks"`
	ErrorLinks      []model.LinkCheckResult `json:"errorLinks"`
	Recommendations []string                `json:"recommendations"`
}

func (t *Transport) handleBrokenLinks(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	var req linkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		t.renderExample(w, "Invalid request body. Please send a JSON object with a \"url\" field.")
		return
	}

	if err := req.validate(); err != nil {
		t.renderExample(w, err.Error())
		return
	}

	summary, err := t.service.CheckLinks(r.Context(), req.URL, req.options())
	if err != nil {
		var appErr *errs.AppError
		if errors.As(err, &appErr) && appErr.Kind == errs.InvalidInput {
			t.renderExample(w, appErr.Message)
			return
		}
		t.handleServiceError(w, err)
		return
	}

	t.renderJSON(w, http.StatusOK, linkResponse{
		URL:             summary.URL,
		Timestamp:       t.now().UTC(),
		Summary:         summary.Counts,
		BrokenLinks:     summary.Broken,
		Redirects:       summary.Redirects,
		OKLinks:         summary.OK[:min(len(summary.OK), okLinksShown)],
		ErrorLinks:      summary.Errors,
		Recommendations: linkcheck.Recommendations(summary),
	})
}

func (t *Transport) handleHistory(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("url")
	if target == "" {
		t.renderError(w, http.StatusBadRequest, errURLParamMissing.Error())
		return
	}

	rec, err := t.service.History(r.Context(), target)
	if err != nil {
		t.handleServiceError(w, err)
		return
	}

	t.renderJSON(w, http.StatusOK, rec)
}

func (t *Transport) handleServiceError(w http.ResponseWriter, err error) {
	var appErr *errs.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		switch appErr.Kind {
		case errs.InvalidInput:
			status = http.StatusBadRequest
		case errs.NotFound:
			status = http.StatusNotFound
		case errs.Unreachable:
			status = http.StatusBadGateway
		case errs.Timeout:
			status = http.StatusGatewayTimeout
		case errs.ParsingFailed, errs.Unknown:
			// 500 Internal Server Error
		}
		t.renderError(w, status, appErr.Message)
		return
	}

	t.renderError(w, http.StatusInternalServerError, "An unexpected error occurred.")
}

func (t *Transport) renderJSON(w http.ResponseWriter, status int, data any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		t.logger.Error("failed to encode response", "error", err)
		http.Error(w, `{"error":"Internal Server Error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (t *Transport) renderError(w http.ResponseWriter, status int, message string) {
	t.renderJSON(w, status, model.ErrorResponse{Error: message})
}

func (t *Transport) renderExample(w http.ResponseWriter, message string) {
	t.renderJSON(w, http.StatusBadRequest, model.ErrorResponse{
		Error:   message,
		Example: linkRequestExample,
	})
}
