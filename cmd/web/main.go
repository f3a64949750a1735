package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"finitefield.org/academy-web/internal/catalog"
	"finitefield.org/academy-web/internal/config"
	"finitefield.org/academy-web/internal/metrics"
	"finitefield.org/academy-web/internal/observability"
	"finitefield.org/academy-web/internal/pages"
	"finitefield.org/academy-web/internal/seo"
)

func main() {
	baseLogger, err := observability.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = baseLogger.Sync()
	}()
	logger := baseLogger.Named("web")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		var verr *config.ValidationError
		if errors.As(err, &verr) {
			logger.Fatal("invalid configuration", zap.Strings("fields", verr.Fields()))
		}
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	registry, err := pages.Load(cfg.Pages.File)
	if err != nil {
		logger.Fatal("failed to load page registry", zap.Error(err))
	}

	m := metrics.New()
	catalogClient := catalog.New(cfg.Catalog.BaseURL,
		catalog.WithTimeout(cfg.Catalog.Timeout),
		catalog.WithCacheTTL(cfg.Catalog.CacheTTL),
		catalog.WithRecorder(m),
	)
	if !catalogClient.Enabled() {
		logger.Warn("catalog backend not configured; detail page heads are disabled")
	}

	a := &app{
		resolver: seo.NewResolver(cfg.Site),
		pages:    registry,
		catalog:  catalogClient,
		metrics:  m,
		logger:   logger,
	}

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Server.Port),
		Handler:           newRouter(a),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("server shutdown error", zap.Error(err))
		}
	}()

	logger.Info("web listening",
		zap.String("addr", srv.Addr),
		zap.String("base_url", cfg.Site.BaseURL),
		zap.Int("pages", len(registry.Paths())),
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("listen", zap.Error(err))
	}
}
