package httpadapter

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/kirillkom/legal-case-intel/internal/core/domain"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (rt *Router) registerCaseRoutes(mux *http.ServeMux) {
	if rt.svc.Cases != nil {
		mux.HandleFunc("POST /v1/cases", rt.createCase)
		mux.HandleFunc("GET /v1/cases/{case_id}", rt.getCase)
		mux.HandleFunc("GET /v1/cases/{case_id}/summary", rt.caseSummary)
		mux.HandleFunc("GET /v1/cases/{case_id}/timeline", rt.caseTimeline)
		mux.HandleFunc("GET /v1/cases/{case_id}/deadlines", rt.caseDeadlines)
		mux.HandleFunc("GET /v1/cases/{case_id}/checklist", rt.caseChecklist)
		if rt.svc.Workbooks != nil {
			mux.HandleFunc("GET /v1/cases/{case_id}/timeline.xlsx", rt.caseTimelineWorkbook)
			mux.HandleFunc("GET /v1/cases/{case_id}/checklist.xlsx", rt.caseChecklistWorkbook)
		}
	}
	if rt.svc.Ingest != nil {
		mux.HandleFunc("POST /v1/cases/{case_id}/documents", rt.uploadCaseDocument)
	}
}

func (rt *Router) createCase(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ActionType  string `json:"action_type"`
		Status      string `json:"status"`
		Description string `json:"description"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	c, err := rt.svc.Cases.CreateCase(r.Context(), req.ActionType, req.Status, req.Description)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (rt *Router) getCase(w http.ResponseWriter, r *http.Request) {
	caseID, err := pathParam(r, "case_id")
	if err != nil {
		writeError(w, err)
		return
	}

	c, err := rt.svc.Cases.GetCase(r.Context(), caseID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (rt *Router) uploadCaseDocument(w http.ResponseWriter, r *http.Request) {
	caseID, err := pathParam(r, "case_id")
	if err != nil {
		writeError(w, err)
		return
	}
	file, err := rt.formFile(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	defer file.Close()

	doc, err := rt.svc.Ingest.Upload(r.Context(), caseID, file.Filename, file.ContentType, file)
	if err != nil {
		writeError(w, err)
		return
	}
	if rt.metrics != nil {
		rt.metrics.RecordUpload(rt.metricsService, doc.SizeBytes)
	}
	writeJSON(w, http.StatusAccepted, doc)
}

func (rt *Router) caseSummary(w http.ResponseWriter, r *http.Request) {
	caseID, err := pathParam(r, "case_id")
	if err != nil {
		writeError(w, err)
		return
	}

	summary, err := rt.svc.Cases.Summary(r.Context(), caseID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (rt *Router) caseTimeline(w http.ResponseWriter, r *http.Request) {
	caseID, err := pathParam(r, "case_id")
	if err != nil {
		writeError(w, err)
		return
	}

	timeline, err := rt.svc.Cases.Timeline(r.Context(), caseID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, timeline)
}

func (rt *Router) caseDeadlines(w http.ResponseWriter, r *http.Request) {
	caseID, err := pathParam(r, "case_id")
	if err != nil {
		writeError(w, err)
		return
	}

	views, err := rt.svc.Cases.Deadlines(r.Context(), caseID)
	if err != nil {
		writeError(w, err)
		return
	}
	if views == nil {
		views = []domain.DeadlineView{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"case_id": caseID, "deadlines": views})
}

func (rt *Router) caseChecklist(w http.ResponseWriter, r *http.Request) {
	checklist, ok := rt.loadCaseChecklist(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, checklist)
}

func (rt *Router) caseTimelineWorkbook(w http.ResponseWriter, r *http.Request) {
	caseID, err := pathParam(r, "case_id")
	if err != nil {
		writeError(w, err)
		return
	}
	timeline, err := rt.svc.Cases.Timeline(r.Context(), caseID)
	if err != nil {
		writeError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := rt.svc.Workbooks.WriteTimeline(&buf, *timeline); err != nil {
		writeError(w, fmt.Errorf("render timeline workbook: %w", err))
		return
	}
	writeWorkbook(w, fmt.Sprintf("case-%s-timeline.xlsx", caseID), buf.Bytes())
}

func (rt *Router) caseChecklistWorkbook(w http.ResponseWriter, r *http.Request) {
	checklist, ok := rt.loadCaseChecklist(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := rt.svc.Workbooks.WriteChecklist(&buf, *checklist); err != nil {
		writeError(w, fmt.Errorf("render checklist workbook: %w", err))
		return
	}
	writeWorkbook(w, fmt.Sprintf("case-%s-checklist.xlsx", checklist.Checklist.CaseID), buf.Bytes())
}

func (rt *Router) loadCaseChecklist(w http.ResponseWriter, r *http.Request) (*domain.CaseChecklist, bool) {
	caseID, err := pathParam(r, "case_id")
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	variations, err := checklistVariationsFromQuery(r)
	if err != nil {
		writeError(w, err)
		return nil, false
	}

	checklist, err := rt.svc.Cases.Checklist(r.Context(), caseID, variations)
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	return checklist, true
}

func writeWorkbook(w http.ResponseWriter, filename string, data []byte) {
	filename = strings.NewReplacer(`"`, "", "\r", "", "\n", "").Replace(filename)
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
