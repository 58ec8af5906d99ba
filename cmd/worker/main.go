package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kirillkom/legal-case-intel/internal/bootstrap"
	"github.com/kirillkom/legal-case-intel/internal/config"
	"github.com/kirillkom/legal-case-intel/internal/core/ports"
	"github.com/kirillkom/legal-case-intel/internal/observability/logging"
	"github.com/kirillkom/legal-case-intel/internal/observability/metrics"
)

const serviceName = "worker"

func main() {
	cfg := config.Load()
	logger := logging.NewJSONLogger(serviceName, cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	workerMetrics := metrics.NewWorkerMetrics(serviceName)
	observer := ports.MultiObserver{
		logging.NewAnalysisObserver(logger),
		workerMetrics.AnalysisObserver(serviceName),
	}

	app, err := bootstrap.New(ctx, cfg, bootstrap.WithObserver(observer), bootstrap.WithLogger(logger))
	if err != nil {
		logger.Error("bootstrap_failed", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	metricsServer := startMetricsServer(logger, cfg.WorkerMetricsPort, workerMetrics.Handler())
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	logger.Info("worker_subscribed", "subject", cfg.NATSSubject)
	err = app.Queue.SubscribeDocumentIngested(ctx, func(handlerCtx context.Context, documentID string) error {
		return processDocument(handlerCtx, app, workerMetrics, logger, documentID)
	})
	if err != nil {
		logger.Error("worker_subscribe_failed", "error", err)
		os.Exit(1)
	}
}

func processDocument(ctx context.Context, app *bootstrap.App, m *metrics.WorkerMetrics, logger *slog.Logger, documentID string) error {
	if doc, err := app.Documents.GetByID(ctx, documentID); err == nil {
		m.ObserveQueueLag(serviceName, time.Since(doc.CreatedAt))
	}

	processCtx, cancel := context.WithTimeout(ctx, app.Config.WorkerProcessTimeout)
	defer cancel()

	m.StartDocument()
	started := time.Now()
	err := app.ProcessUC.ProcessByID(processCtx, documentID)
	m.FinishDocument(serviceName, time.Since(started), err)

	if err != nil {
		logger.Error("document_process_failed", "document_id", documentID, "duration_ms", time.Since(started).Milliseconds(), "error", err)
		return err
	}
	logger.Info("document_processed", "document_id", documentID, "duration_ms", time.Since(started).Milliseconds())
	return nil
}

func startMetricsServer(logger *slog.Logger, port string, handler http.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", handler)
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("worker_metrics_server_failed", "error", err)
		}
	}()
	return server
}
