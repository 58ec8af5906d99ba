package logging

import (
	"context"
	"log/slog"
)

// AnalysisObserver writes analyzer observations as debug records.
type AnalysisObserver struct {
	logger *slog.Logger
}

func NewAnalysisObserver(logger *slog.Logger) *AnalysisObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalysisObserver{logger: logger}
}

func (o *AnalysisObserver) ObserveAnalysis(stage string, attrs ...any) {
	if !o.logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	o.logger.Debug("analysis_stage", append([]any{"stage", stage}, attrs...)...)
}
