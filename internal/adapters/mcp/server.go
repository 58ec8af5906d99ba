// Package mcpadapter exposes the stateless analysis operations as MCP tools.
package mcpadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kirillkom/legal-case-intel/internal/core/domain"
	"github.com/kirillkom/legal-case-intel/internal/core/ports"
)

const serverName = "legal-case-intel"

type Handlers struct {
	analysis ports.AnalysisService
}

func NewHandlers(analysis ports.AnalysisService) *Handlers {
	return &Handlers{analysis: analysis}
}

func NewServer(analysis ports.AnalysisService, version string) *server.MCPServer {
	s := server.NewMCPServer(serverName, version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)
	h := NewHandlers(analysis)

	s.AddTool(mcp.NewTool("classify_text",
		mcp.WithDescription("Classify raw document text: type, dates, monetary values and identity markers."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Extracted document text")),
		mcp.WithString("file_name", mcp.Description("Original file name")),
	), h.ClassifyText)

	s.AddTool(mcp.NewTool("classify_proof",
		mcp.WithDescription("Assign proof category, relevance (1-10) and essential flag to a classified document."),
		mcp.WithObject("document", mcp.Required(), mcp.Description("Classified document as returned by classify_text")),
		mcp.WithBoolean("validated", mcp.Description("Whether a lawyer reviewed the document")),
	), h.ClassifyProof)

	s.AddTool(mcp.NewTool("extract_deadlines",
		mcp.WithDescription("Extract deduplicated deadlines from a classified document, sorted by due date."),
		mcp.WithObject("document", mcp.Required(), mcp.Description("Classified document as returned by classify_text")),
		mcp.WithString("action_type", mcp.Description("Case action type used as a hint")),
	), h.ExtractDeadlines)

	s.AddTool(mcp.NewTool("generate_checklist",
		mcp.WithDescription("Resolve the evidence checklist for a case action type."),
		mcp.WithString("action_type", mcp.Required(), mcp.Description("Free-text action type, e.g. \"Pensão alimentícia\"")),
		mcp.WithString("case_id", mcp.Description("Case identifier copied into the checklist")),
		mcp.WithBoolean("consensual", mcp.Description("Use the consensual divorce template")),
		mcp.WithArray("extra_recommended", mcp.WithStringItems(), mcp.Description("Additional recommended items")),
	), h.GenerateChecklist)

	s.AddTool(mcp.NewTool("validate_checklist",
		mcp.WithDescription("Score a checklist against the labels of received documents."),
		mcp.WithObject("checklist", mcp.Required(), mcp.Description("Checklist as returned by generate_checklist")),
		mcp.WithArray("received", mcp.Required(), mcp.WithStringItems(), mcp.Description("Labels of received documents")),
	), h.ValidateChecklist)

	s.AddTool(mcp.NewTool("generate_summary",
		mcp.WithDescription("Summarize a case: key points, strengths, weaknesses, alerts and narrative."),
		mcp.WithObject("case", mcp.Required(), mcp.Description("Case header with id and action_type")),
		mcp.WithArray("documents", mcp.Description("Case documents with classification and assessment")),
	), h.GenerateSummary)

	s.AddTool(mcp.NewTool("generate_timeline",
		mcp.WithDescription("Build the chronological case timeline with its summary."),
		mcp.WithObject("case", mcp.Required(), mcp.Description("Case header with id and created_at")),
		mcp.WithArray("documents", mcp.Description("Case documents")),
		mcp.WithArray("deadlines", mcp.Description("Deadlines extracted for the case")),
	), h.GenerateTimeline)

	return s
}

func (h *Handlers) ClassifyText(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil || strings.TrimSpace(text) == "" {
		return mcp.NewToolResultError("text is required"), nil
	}
	fileName := req.GetString("file_name", "")

	raw := domain.RawDocument{
		Text:      text,
		FileName:  fileName,
		SizeBytes: int64(len(text)),
	}
	if fileName != "" {
		raw.MimeType = domain.MimeTypeFor(fileName)
	}
	return jsonResult(h.analysis.ClassifyText(raw))
}

func (h *Handlers) ClassifyProof(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Document  *domain.ClassifiedDocument `json:"document"`
		Validated bool                       `json:"validated"`
	}
	if err := req.BindArguments(&args); err != nil {
		return mcp.NewToolResultErrorFromErr("invalid arguments", err), nil
	}
	if args.Document == nil {
		return mcp.NewToolResultError("document is required"), nil
	}
	return jsonResult(h.analysis.ClassifyProof(*args.Document, args.Validated))
}

func (h *Handlers) ExtractDeadlines(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Document   *domain.ClassifiedDocument `json:"document"`
		ActionType string                     `json:"action_type"`
	}
	if err := req.BindArguments(&args); err != nil {
		return mcp.NewToolResultErrorFromErr("invalid arguments", err), nil
	}
	if args.Document == nil {
		return mcp.NewToolResultError("document is required"), nil
	}

	deadlines := h.analysis.ExtractDeadlines(*args.Document, args.ActionType)
	if deadlines == nil {
		deadlines = []domain.Deadline{}
	}
	return jsonResult(map[string]any{"deadlines": deadlines})
}

func (h *Handlers) GenerateChecklist(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	actionType, err := req.RequireString("action_type")
	if err != nil || strings.TrimSpace(actionType) == "" {
		return mcp.NewToolResultError("action_type is required"), nil
	}

	variations := domain.ChecklistVariations{
		Consensual:       req.GetBool("consensual", false),
		ExtraRecommended: req.GetStringSlice("extra_recommended", nil),
	}
	return jsonResult(h.analysis.GenerateChecklist(actionType, req.GetString("case_id", ""), variations))
}

func (h *Handlers) ValidateChecklist(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Checklist *domain.Checklist `json:"checklist"`
		Received  []string          `json:"received"`
	}
	if err := req.BindArguments(&args); err != nil {
		return mcp.NewToolResultErrorFromErr("invalid arguments", err), nil
	}
	if args.Checklist == nil {
		return mcp.NewToolResultError("checklist is required"), nil
	}
	return jsonResult(h.analysis.ValidateChecklist(*args.Checklist, args.Received))
}

func (h *Handlers) GenerateSummary(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Case      *domain.CaseInfo      `json:"case"`
		Documents []domain.CaseDocument `json:"documents"`
	}
	if err := req.BindArguments(&args); err != nil {
		return mcp.NewToolResultErrorFromErr("invalid arguments", err), nil
	}
	if args.Case == nil || strings.TrimSpace(args.Case.ID) == "" {
		return mcp.NewToolResultError("case.id is required"), nil
	}
	return jsonResult(h.analysis.GenerateSummary(*args.Case, args.Documents))
}

func (h *Handlers) GenerateTimeline(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Case      *domain.CaseInfo      `json:"case"`
		Documents []domain.CaseDocument `json:"documents"`
		Deadlines []domain.Deadline     `json:"deadlines"`
	}
	if err := req.BindArguments(&args); err != nil {
		return mcp.NewToolResultErrorFromErr("invalid arguments", err), nil
	}
	if args.Case == nil || strings.TrimSpace(args.Case.ID) == "" {
		return mcp.NewToolResultError("case.id is required"), nil
	}
	return jsonResult(h.analysis.GenerateTimeline(*args.Case, args.Documents, args.Deadlines))
}

func jsonResult(payload any) (*mcp.CallToolResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal tool result: %w", err)
	}
	return mcp.NewToolResultText(string(body)), nil
}
