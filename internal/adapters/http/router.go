package httpadapter

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/kirillkom/legal-case-intel/internal/adapters/http/openapi"
	"github.com/kirillkom/legal-case-intel/internal/config"
	"github.com/kirillkom/legal-case-intel/internal/core/ports"
	"github.com/kirillkom/legal-case-intel/internal/observability/metrics"
)

// DocumentService reads and validates stored documents.
type DocumentService interface {
	ports.DocumentReader
	ports.DocumentValidator
}

// Services groups the inbound ports served over HTTP. Nil services leave
// their routes unregistered.
type Services struct {
	Analysis  ports.AnalysisService
	Cases     ports.CaseService
	Ingest    ports.DocumentIngestor
	Documents DocumentService
	Workbooks ports.WorkbookExporter
}

type Option func(*Router)

func WithMetrics(m *metrics.HTTPServerMetrics, service string) Option {
	return func(rt *Router) {
		rt.metrics = m
		rt.metricsService = service
	}
}

func WithValidator(v *openapi.Validator) Option {
	return func(rt *Router) {
		rt.validator = v
	}
}

type Router struct {
	svc Services

	maxUploadBytes   int64
	apiKey           string
	rateLimitRPS     float64
	rateLimitBurst   int
	maxInFlight      int
	backpressureWait time.Duration

	validator      *openapi.Validator
	metrics        *metrics.HTTPServerMetrics
	metricsService string
}

func NewRouter(cfg config.Config, svc Services, opts ...Option) *Router {
	rt := &Router{
		svc:              svc,
		maxUploadBytes:   cfg.MaxUploadBytes,
		apiKey:           cfg.APIKey,
		rateLimitRPS:     cfg.APIRateLimitRPS,
		rateLimitBurst:   cfg.APIRateLimitBurst,
		maxInFlight:      cfg.APIBackpressureMaxInFlight,
		backpressureWait: time.Duration(cfg.APIBackpressureWaitMS) * time.Millisecond,
		metricsService:   "api",
	}
	for _, opt := range opts {
		opt(rt)
	}
	if rt.validator == nil && cfg.APIOpenAPIValidation {
		validator, err := openapi.NewValidator(context.Background())
		if err != nil {
			slog.Error("openapi_validator_unavailable", "error", err)
		} else {
			rt.validator = validator
		}
	}
	return rt
}

// Handler builds the middleware chain. Health, metrics and the OpenAPI
// document bypass auth and traffic control.
func (rt *Router) Handler() http.Handler {
	api := http.NewServeMux()
	rt.registerCaseRoutes(api)
	rt.registerDocumentRoutes(api)
	rt.registerAnalysisRoutes(api)

	var guarded http.Handler = api
	reject := rt.rejectRecorder()
	guarded = openAPIValidationMiddleware(guarded, rt.validator, reject)
	guarded = apiKeyMiddleware(guarded, rt.apiKey, reject)
	guarded = backpressureMiddleware(guarded, rt.maxInFlight, rt.backpressureWait, reject)
	guarded = rateLimitMiddleware(guarded, rt.rateLimitRPS, rt.rateLimitBurst, reject)

	root := http.NewServeMux()
	root.HandleFunc("GET /healthz", rt.healthz)
	root.HandleFunc("GET /openapi.yaml", rt.openAPIDocument)
	if rt.metrics != nil {
		root.Handle("GET /metrics", rt.metrics.Handler())
	}
	root.Handle("/", guarded)

	var handler http.Handler = root
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(rt.metricsService, handler)
	}
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) rejectRecorder() rejectFunc {
	if rt.metrics == nil {
		return nil
	}
	return func(reason string) {
		rt.metrics.RecordRejected(rt.metricsService, reason)
	}
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) openAPIDocument(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(openapi.Document())
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
}
