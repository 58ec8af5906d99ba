package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kirillkom/legal-case-intel/internal/core/domain"
)

type classifyOutput struct {
	Document   *domain.ClassifiedDocument `json:"document"`
	Assessment domain.ProofAssessment     `json:"assessment"`
}

func newClassifyCmd(a *app) *cobra.Command {
	var validated bool
	cmd := &cobra.Command{
		Use:   "classify <file>",
		Short: "Classify a document and assess it as evidence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.classifyFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), classifyOutput{
				Document:   doc,
				Assessment: a.analysis.ClassifyProof(*doc, validated),
			})
		},
	}
	cmd.Flags().BoolVar(&validated, "validated", false, "treat the document as reviewed by a lawyer")
	return cmd
}

func newDeadlinesCmd(a *app) *cobra.Command {
	var actionType string
	cmd := &cobra.Command{
		Use:   "deadlines <file>",
		Short: "Extract deadlines from a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.classifyFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"deadlines": a.analysis.ExtractDeadlines(*doc, actionType),
			})
		},
	}
	cmd.Flags().StringVar(&actionType, "action-type", "", "action type used as a hint for known deadlines")
	return cmd
}

func (a *app) classifyFile(ctx context.Context, path string) (*domain.ClassifiedDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return a.analysis.ClassifyDocument(ctx, filepath.Base(path), f)
}
