package httpadapter

import (
	"errors"
	"net/http"
	"strings"

	"github.com/kirillkom/legal-case-intel/internal/core/domain"
)

func (rt *Router) registerAnalysisRoutes(mux *http.ServeMux) {
	if rt.svc.Analysis == nil {
		return
	}
	mux.HandleFunc("POST /v1/analysis/classify-document", rt.classifyDocument)
	mux.HandleFunc("POST /v1/analysis/classify-text", rt.classifyText)
	mux.HandleFunc("POST /v1/analysis/classify-proof", rt.classifyProof)
	mux.HandleFunc("POST /v1/analysis/extract-deadlines", rt.extractDeadlines)
	mux.HandleFunc("POST /v1/analysis/generate-checklist", rt.generateChecklist)
	mux.HandleFunc("POST /v1/analysis/validate-checklist", rt.validateChecklist)
	mux.HandleFunc("POST /v1/analysis/generate-summary", rt.generateSummary)
	mux.HandleFunc("POST /v1/analysis/generate-timeline", rt.generateTimeline)
}

func invalidInput(op, message string) error {
	return domain.WrapError(domain.ErrInvalidInput, op, errors.New(message))
}

func (rt *Router) classifyDocument(w http.ResponseWriter, r *http.Request) {
	file, err := rt.formFile(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	defer file.Close()

	doc, err := rt.svc.Analysis.ClassifyDocument(r.Context(), file.Filename, file)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (rt *Router) classifyText(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text     string `json:"text"`
		FileName string `json:"file_name"`
		MimeType string `json:"mime_type"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, invalidInput("classify text", "text is required"))
		return
	}

	mimeType := req.MimeType
	if mimeType == "" && req.FileName != "" {
		mimeType = domain.MimeTypeFor(req.FileName)
	}
	doc := rt.svc.Analysis.ClassifyText(domain.RawDocument{
		Text:      req.Text,
		FileName:  req.FileName,
		MimeType:  mimeType,
		SizeBytes: int64(len(req.Text)),
	})
	writeJSON(w, http.StatusOK, doc)
}

func (rt *Router) classifyProof(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Document  *domain.ClassifiedDocument `json:"document"`
		Validated bool                       `json:"validated"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Document == nil {
		writeError(w, invalidInput("classify proof", "document is required"))
		return
	}

	writeJSON(w, http.StatusOK, rt.svc.Analysis.ClassifyProof(*req.Document, req.Validated))
}

func (rt *Router) extractDeadlines(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Document   *domain.ClassifiedDocument `json:"document"`
		ActionType string                     `json:"action_type"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Document == nil {
		writeError(w, invalidInput("extract deadlines", "document is required"))
		return
	}

	deadlines := rt.svc.Analysis.ExtractDeadlines(*req.Document, req.ActionType)
	if deadlines == nil {
		deadlines = []domain.Deadline{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"deadlines": deadlines})
}

func (rt *Router) generateChecklist(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ActionType       string   `json:"action_type"`
		CaseID           string   `json:"case_id"`
		Consensual       bool     `json:"consensual"`
		ExtraRecommended []string `json:"extra_recommended"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if strings.TrimSpace(req.ActionType) == "" {
		writeError(w, invalidInput("generate checklist", "action_type is required"))
		return
	}

	checklist := rt.svc.Analysis.GenerateChecklist(req.ActionType, req.CaseID, domain.ChecklistVariations{
		Consensual:       req.Consensual,
		ExtraRecommended: req.ExtraRecommended,
	})
	writeJSON(w, http.StatusOK, checklist)
}

func (rt *Router) validateChecklist(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Checklist *domain.Checklist `json:"checklist"`
		Received  []string          `json:"received"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Checklist == nil {
		writeError(w, invalidInput("validate checklist", "checklist is required"))
		return
	}

	writeJSON(w, http.StatusOK, rt.svc.Analysis.ValidateChecklist(*req.Checklist, req.Received))
}

func (rt *Router) generateSummary(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Case      *domain.CaseInfo      `json:"case"`
		Documents []domain.CaseDocument `json:"documents"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Case == nil || strings.TrimSpace(req.Case.ID) == "" {
		writeError(w, invalidInput("generate summary", "case.id is required"))
		return
	}

	writeJSON(w, http.StatusOK, rt.svc.Analysis.GenerateSummary(*req.Case, req.Documents))
}

func (rt *Router) generateTimeline(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Case      *domain.CaseInfo      `json:"case"`
		Documents []domain.CaseDocument `json:"documents"`
		Deadlines []domain.Deadline     `json:"deadlines"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Case == nil || strings.TrimSpace(req.Case.ID) == "" {
		writeError(w, invalidInput("generate timeline", "case.id is required"))
		return
	}

	writeJSON(w, http.StatusOK, rt.svc.Analysis.GenerateTimeline(*req.Case, req.Documents, req.Deadlines))
}
