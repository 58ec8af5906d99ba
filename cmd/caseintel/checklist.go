package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/kirillkom/legal-case-intel/internal/core/domain"
)

type checklistOutput struct {
	Checklist  domain.Checklist        `json:"checklist"`
	Validation *domain.ChecklistResult `json:"validation,omitempty"`
}

func newChecklistCmd(a *app) *cobra.Command {
	var (
		consensual bool
		extra      []string
		received   []string
		caseID     string
	)
	cmd := &cobra.Command{
		Use:   "checklist <action-type>",
		Short: "Generate the evidence checklist of an action type",
		Long: `Generate the evidence checklist of an action type. With --received the
checklist is also scored against the given document labels.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actionType := strings.Join(args, " ")
			checklist := a.analysis.GenerateChecklist(actionType, caseID, domain.ChecklistVariations{
				Consensual:       consensual,
				ExtraRecommended: extra,
			})
			out := checklistOutput{Checklist: checklist}
			if cmd.Flags().Changed("received") {
				result := a.analysis.ValidateChecklist(checklist, received)
				out.Validation = &result
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().BoolVar(&consensual, "consensual", false, "use the consensual variant of divorce templates")
	cmd.Flags().StringSliceVar(&extra, "extra", nil, "additional recommended documents")
	cmd.Flags().StringSliceVar(&received, "received", nil, "labels of the documents already received")
	cmd.Flags().StringVar(&caseID, "case-id", "", "case id echoed in the output")
	return cmd
}
