package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNormalizePath(t *testing.T) {
	cases := map[string]string{
		"/healthz":                       "/healthz",
		"/v1/cases":                      "/v1/cases",
		"/v1/cases/abc":                  "/v1/cases/{case_id}",
		"/v1/cases/abc/timeline.xlsx":    "/v1/cases/{case_id}/timeline.xlsx",
		"/v1/documents/doc-1":            "/v1/documents/{document_id}",
		"/v1/documents/doc-1/validation": "/v1/documents/{document_id}/validation",
		"/v1/analysis/classify-proof":    "/v1/analysis/classify-proof",
	}
	for in, want := range cases {
		if got := normalizePath(in); got != want {
			t.Fatalf("normalizePath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMiddlewareCountsRequests(t *testing.T) {
	m := NewHTTPServerMetrics("api")
	handler := m.Middleware("api", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/cases/c-1", nil))

	got := testutil.ToFloat64(m.requestTotal.WithLabelValues("api", http.MethodGet, "/v1/cases/{case_id}", "404"))
	if got != 1 {
		t.Fatalf("expected one counted request, got %v", got)
	}
}

func TestAnalysisObserverIsExposed(t *testing.T) {
	m := NewHTTPServerMetrics("api")
	observer := m.AnalysisObserver("api")
	observer.ObserveAnalysis("classify_document", "document_type", "cpf")
	observer.ObserveAnalysis("classify_document")

	res := httptest.NewRecorder()
	m.Handler().ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(res.Body.String(), `lci_analysis_stages_total{service="api",stage="classify_document"} 2`) {
		t.Fatalf("expected analysis counter in exposition, got:\n%s", res.Body.String())
	}
}
