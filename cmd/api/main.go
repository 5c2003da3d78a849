package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Bahjat/site-audit-tool/internal/api"
	"github.com/Bahjat/site-audit-tool/internal/audit"
	"github.com/Bahjat/site-audit-tool/internal/crawl"
	"github.com/Bahjat/site-audit-tool/internal/fetch"
	"github.com/Bahjat/site-audit-tool/internal/linkcheck"
	"github.com/Bahjat/site-audit-tool/internal/platform/config"
	"github.com/Bahjat/site-audit-tool/internal/platform/logger"
	"github.com/Bahjat/site-audit-tool/internal/platform/middleware"
	"github.com/Bahjat/site-audit-tool/internal/scoring"
	"github.com/Bahjat/site-audit-tool/internal/store"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	audits, err := store.New(context.WithoutCancel(ctx), cfg.AuditCacheTTL)
	if err != nil {
		return err
	}
	defer func() { _ = audits.Close() }()

	fetcher := fetch.NewClient(cfg.AllowPrivateNetworks)
	crawler := crawl.New(fetcher,
		crawl.WithLogger(log),
		crawl.WithDiscoveryLimit(cfg.CrawlDiscoveryLimit),
		crawl.WithRateLimit(cfg.CrawlRateLimit),
		crawl.WithRobots(cfg.CrawlRespectRobots),
	)
	engine := audit.NewEngine(crawler, scoring.NewScorer(log),
		audit.WithDefaultBudget(cfg.DefaultPageBudget),
		audit.WithLogger(log),
	)
	checker := linkcheck.New(fetcher,
		linkcheck.WithChunkSize(cfg.LinkCheckChunkSize),
		linkcheck.WithLogger(log),
	)

	svc := api.NewService(engine, checker, audits, log)
	mux := http.NewServeMux()
	api.NewTransport(svc, log).RegisterRoutes(mux)

	var handler http.Handler = mux
	handler = middleware.Recover(log)(handler)
	handler = middleware.Logging(log)(handler)
	handler = middleware.RequestID(handler)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err = srv.Shutdown(shutdownCtx)
	svc.Wait()
	return err
}
