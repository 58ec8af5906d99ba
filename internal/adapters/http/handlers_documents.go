package httpadapter

import (
	"errors"
	"net/http"

	"github.com/kirillkom/legal-case-intel/internal/core/domain"
)

func (rt *Router) registerDocumentRoutes(mux *http.ServeMux) {
	if rt.svc.Documents == nil {
		return
	}
	mux.HandleFunc("GET /v1/documents/{document_id}", rt.getDocumentByID)
	mux.HandleFunc("POST /v1/documents/{document_id}/validation", rt.setDocumentValidation)
}

func (rt *Router) getDocumentByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathParam(r, "document_id")
	if err != nil {
		writeError(w, err)
		return
	}

	doc, err := rt.svc.Documents.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (rt *Router) setDocumentValidation(w http.ResponseWriter, r *http.Request) {
	id, err := pathParam(r, "document_id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req struct {
		Validated *bool `json:"validated"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Validated == nil {
		writeError(w, domain.WrapError(domain.ErrInvalidInput, "set validation", errors.New("validated is required")))
		return
	}

	doc, err := rt.svc.Documents.SetValidated(r.Context(), id, *req.Validated)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}
