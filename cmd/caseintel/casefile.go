package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kirillkom/legal-case-intel/internal/core/domain"
)

// caseFile is the offline input of the summary and timeline commands.
type caseFile struct {
	Case      domain.CaseInfo       `json:"case"`
	Documents []domain.CaseDocument `json:"documents"`
	Deadlines []domain.Deadline     `json:"deadlines"`
}

func loadCaseFile(path string) (*caseFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read case file: %w", err)
	}
	var cf caseFile
	if err := json.Unmarshal(raw, &cf); err != nil {
		return nil, fmt.Errorf("decode case file %s: %w", path, err)
	}
	if cf.Case.ID == "" {
		return nil, fmt.Errorf("case file %s: case.id is required", path)
	}
	return &cf, nil
}

func newSummaryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "summary <case.json>",
		Short: "Summarize a case from its documents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cf, err := loadCaseFile(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), a.analysis.GenerateSummary(cf.Case, cf.Documents))
		},
	}
}

func newTimelineCmd(a *app) *cobra.Command {
	var xlsxPath string
	cmd := &cobra.Command{
		Use:   "timeline <case.json>",
		Short: "Build the chronological timeline of a case",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cf, err := loadCaseFile(args[0])
			if err != nil {
				return err
			}
			timeline := a.analysis.GenerateTimeline(cf.Case, cf.Documents, cf.Deadlines)
			if xlsxPath == "" {
				return printJSON(cmd.OutOrStdout(), timeline)
			}
			return a.writeTimelineWorkbook(xlsxPath, timeline)
		},
	}
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "write the timeline to this xlsx file instead of stdout")
	return cmd
}

func (a *app) writeTimelineWorkbook(path string, timeline domain.CaseTimeline) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := a.workbooks.WriteTimeline(f, timeline); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
