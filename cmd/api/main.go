package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/net/netutil"

	httpadapter "github.com/kirillkom/legal-case-intel/internal/adapters/http"
	"github.com/kirillkom/legal-case-intel/internal/adapters/http/openapi"
	"github.com/kirillkom/legal-case-intel/internal/bootstrap"
	"github.com/kirillkom/legal-case-intel/internal/config"
	"github.com/kirillkom/legal-case-intel/internal/core/ports"
	"github.com/kirillkom/legal-case-intel/internal/observability/logging"
	"github.com/kirillkom/legal-case-intel/internal/observability/metrics"
)

const serviceName = "api"

func main() {
	cfg := config.Load()
	logger := logging.NewJSONLogger(serviceName, cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpMetrics := metrics.NewHTTPServerMetrics(serviceName)
	observer := ports.MultiObserver{
		logging.NewAnalysisObserver(logger),
		httpMetrics.AnalysisObserver(serviceName),
	}

	app, err := bootstrap.New(ctx, cfg, bootstrap.WithObserver(observer), bootstrap.WithLogger(logger))
	if err != nil {
		logger.Error("bootstrap_failed", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	opts := []httpadapter.Option{httpadapter.WithMetrics(httpMetrics, serviceName)}
	if cfg.APIOpenAPIValidation {
		validator, err := openapi.NewValidator(ctx)
		if err != nil {
			logger.Warn("openapi_validator_unavailable", "error", err)
		} else {
			opts = append(opts, httpadapter.WithValidator(validator))
		}
	}

	router := httpadapter.NewRouter(cfg, httpadapter.Services{
		Analysis:  app.AnalysisUC,
		Cases:     app.CaseUC,
		Ingest:    app.IngestUC,
		Documents: app.DocumentUC,
		Workbooks: app.Workbooks,
	}, opts...)

	server := &http.Server{
		Handler:      router.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	listener, err := net.Listen("tcp", ":"+cfg.APIPort)
	if err != nil {
		logger.Error("api_listen_failed", "port", cfg.APIPort, "error", err)
		os.Exit(1)
	}
	if cfg.APIMaxConns > 0 {
		listener = netutil.LimitListener(listener, cfg.APIMaxConns)
	}

	go func() {
		logger.Info("api_listening", "port", cfg.APIPort, "max_conns", cfg.APIMaxConns)
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("api_server_failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("api_shutdown_failed", "error", err)
	}
}
