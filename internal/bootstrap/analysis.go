package bootstrap

import (
	"fmt"

	"github.com/kirillkom/legal-case-intel/internal/config"
	"github.com/kirillkom/legal-case-intel/internal/core/analysis/checklist"
	"github.com/kirillkom/legal-case-intel/internal/core/analysis/classifier"
	"github.com/kirillkom/legal-case-intel/internal/core/analysis/deadline"
	"github.com/kirillkom/legal-case-intel/internal/core/analysis/proof"
	"github.com/kirillkom/legal-case-intel/internal/core/analysis/summary"
	"github.com/kirillkom/legal-case-intel/internal/core/analysis/timeline"
	"github.com/kirillkom/legal-case-intel/internal/core/catalog"
	"github.com/kirillkom/legal-case-intel/internal/core/ports"
	"github.com/kirillkom/legal-case-intel/internal/core/usecase"
)

// NewAnalyzers loads the rule catalog once and builds the six analyzers
// that share it.
func NewAnalyzers(cfg config.Config, observer ports.AnalysisObserver) (usecase.Analyzers, error) {
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return usecase.Analyzers{}, fmt.Errorf("load catalog: %w", err)
	}
	observer = ports.ObserverOrNop(observer)

	return usecase.Analyzers{
		Classifier: classifier.New(cat, classifier.WithObserver(observer)),
		Assessor:   proof.New(cat, proof.WithObserver(observer)),
		Deadlines: deadline.New(cat,
			deadline.WithHorizonDays(cfg.DeadlineHorizonDays),
			deadline.WithReminderDays(cfg.DeadlineReminderDays),
			deadline.WithCriticalDays(cfg.DeadlineCriticalDays),
			deadline.WithObserver(observer),
		),
		Checklist: checklist.New(cat,
			checklist.WithThresholds(checklist.Thresholds{
				NearComplete: cfg.ChecklistNearCompletePct,
				Incomplete:   cfg.ChecklistIncompletePct,
			}),
			checklist.WithObserver(observer),
		),
		Summary:  summary.New(summary.WithObserver(observer)),
		Timeline: timeline.New(timeline.WithObserver(observer)),
	}, nil
}
