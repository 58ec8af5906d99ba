// Command caseintel runs the case analysis pipeline on local files without
// the API, the database or the queue.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kirillkom/legal-case-intel/internal/bootstrap"
	"github.com/kirillkom/legal-case-intel/internal/config"
	"github.com/kirillkom/legal-case-intel/internal/core/ports"
	"github.com/kirillkom/legal-case-intel/internal/core/usecase"
	"github.com/kirillkom/legal-case-intel/internal/infrastructure/export/xlsx"
	"github.com/kirillkom/legal-case-intel/internal/infrastructure/extractor"
	"github.com/kirillkom/legal-case-intel/internal/observability/logging"
)

// version is set at build time via ldflags.
var version = "dev"

type app struct {
	analysis  ports.AnalysisService
	workbooks ports.WorkbookExporter
}

func main() {
	cfg := config.Load()
	logger := logging.NewJSONLoggerTo(os.Stderr, "caseintel", cfg.LogLevel)

	analyzers, err := bootstrap.NewAnalyzers(cfg, logging.NewAnalysisObserver(logger))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	a := &app{
		analysis:  usecase.NewAnalysisUseCase(extractor.New(), analyzers),
		workbooks: xlsx.NewWorkbookExporter(),
	}

	if err := newRootCmd(a).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:          "caseintel",
		Short:        "Analyze legal case documents offline",
		Version:      version,
		SilenceUsage: true,
	}
	root.AddCommand(
		newClassifyCmd(a),
		newDeadlinesCmd(a),
		newChecklistCmd(a),
		newSummaryCmd(a),
		newTimelineCmd(a),
	)
	return root
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
