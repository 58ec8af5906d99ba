package main

import (
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	mcpadapter "github.com/kirillkom/legal-case-intel/internal/adapters/mcp"
	"github.com/kirillkom/legal-case-intel/internal/bootstrap"
	"github.com/kirillkom/legal-case-intel/internal/config"
	"github.com/kirillkom/legal-case-intel/internal/core/usecase"
	"github.com/kirillkom/legal-case-intel/internal/infrastructure/extractor"
	"github.com/kirillkom/legal-case-intel/internal/observability/logging"
)

const version = "0.1.0"

func main() {
	cfg := config.Load()
	// stdout carries the MCP protocol.
	logger := logging.NewJSONLoggerTo(os.Stderr, "mcp", cfg.LogLevel)
	slog.SetDefault(logger)

	analyzers, err := bootstrap.NewAnalyzers(cfg, logging.NewAnalysisObserver(logger))
	if err != nil {
		logger.Error("bootstrap_failed", "error", err)
		os.Exit(1)
	}
	analysis := usecase.NewAnalysisUseCase(extractor.New(), analyzers)

	if err := server.ServeStdio(mcpadapter.NewServer(analysis, version)); err != nil {
		logger.Error("mcp_server_failed", "error", err)
		os.Exit(1)
	}
}
