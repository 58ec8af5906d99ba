package httpadapter

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kirillkom/legal-case-intel/internal/config"
	"github.com/kirillkom/legal-case-intel/internal/core/analysis/checklist"
	"github.com/kirillkom/legal-case-intel/internal/core/analysis/classifier"
	"github.com/kirillkom/legal-case-intel/internal/core/analysis/deadline"
	"github.com/kirillkom/legal-case-intel/internal/core/analysis/proof"
	"github.com/kirillkom/legal-case-intel/internal/core/analysis/summary"
	"github.com/kirillkom/legal-case-intel/internal/core/analysis/timeline"
	"github.com/kirillkom/legal-case-intel/internal/core/catalog"
	"github.com/kirillkom/legal-case-intel/internal/core/domain"
	"github.com/kirillkom/legal-case-intel/internal/core/usecase"
)

var fixedNow = time.Date(2024, time.December, 10, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

type plainTextExtractor struct{}

func (plainTextExtractor) Extract(_ context.Context, fileName string, body io.Reader) (domain.RawDocument, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return domain.RawDocument{}, err
	}
	return domain.RawDocument{Text: string(raw), FileName: fileName, SizeBytes: int64(len(raw))}, nil
}

func newAnalysisService() *usecase.AnalysisUseCase {
	cat := catalog.Default()
	return usecase.NewAnalysisUseCase(plainTextExtractor{}, usecase.Analyzers{
		Classifier: classifier.New(cat),
		Assessor:   proof.New(cat),
		Deadlines:  deadline.New(cat, deadline.WithNow(clock)),
		Checklist:  checklist.New(cat),
		Summary:    summary.New(summary.WithNow(clock)),
		Timeline:   timeline.New(timeline.WithNow(clock)),
	})
}

type caseServiceFake struct {
	err            error
	lastVariations domain.ChecklistVariations
}

func (f *caseServiceFake) CreateCase(_ context.Context, actionType, status, description string) (*domain.Case, error) {
	if f.err != nil {
		return nil, f.err
	}
	if strings.TrimSpace(actionType) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "create case", errors.New("action type is required"))
	}
	if status == "" {
		status = domain.DefaultCaseStatus
	}
	return &domain.Case{ID: "case-1", ActionType: actionType, Status: status, Description: description, CreatedAt: fixedNow, UpdatedAt: fixedNow}, nil
}

func (f *caseServiceFake) GetCase(_ context.Context, id string) (*domain.Case, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Case{ID: id, ActionType: "Guarda", Status: domain.DefaultCaseStatus, CreatedAt: fixedNow}, nil
}

func (f *caseServiceFake) Summary(_ context.Context, caseID string) (*domain.CaseSummary, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.CaseSummary{CaseID: caseID, NarrativeText: "ok"}, nil
}

func (f *caseServiceFake) Timeline(_ context.Context, caseID string) (*domain.CaseTimeline, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.CaseTimeline{CaseID: caseID}, nil
}

func (f *caseServiceFake) Deadlines(context.Context, string) ([]domain.DeadlineView, error) {
	if f.err != nil {
		return nil, f.err
	}
	return nil, nil
}

func (f *caseServiceFake) Checklist(_ context.Context, caseID string, variations domain.ChecklistVariations) (*domain.CaseChecklist, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastVariations = variations
	return &domain.CaseChecklist{
		Checklist:   domain.Checklist{CaseID: caseID, ActionType: "Guarda", NormalizedType: "guarda"},
		Suggestions: []string{},
	}, nil
}

type ingestFake struct {
	err        error
	lastCaseID string
}

func (f *ingestFake) Upload(_ context.Context, caseID, filename, mimeType string, body io.Reader) (*domain.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "upload", io.EOF)
	}
	f.lastCaseID = caseID

	return &domain.Document{
		ID:          "doc-1",
		CaseID:      caseID,
		Filename:    filename,
		MimeType:    mimeType,
		StoragePath: caseID + "/doc-1_" + filename,
		SizeBytes:   int64(len(raw)),
		Status:      domain.StatusUploaded,
		CreatedAt:   fixedNow,
		UpdatedAt:   fixedNow,
	}, nil
}

type docsFake struct {
	err       error
	validated *bool
}

func (f *docsFake) GetByID(_ context.Context, id string) (*domain.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Document{ID: id, Filename: "a.txt", MimeType: "text/plain", StoragePath: "case-1/a.txt", Status: domain.StatusReady}, nil
}

func (f *docsFake) SetValidated(ctx context.Context, id string, validated bool) (*domain.Document, error) {
	doc, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	f.validated = &validated
	doc.Validated = validated
	return doc, nil
}

type workbookFake struct{}

func (workbookFake) WriteTimeline(w io.Writer, tl domain.CaseTimeline) error {
	_, err := io.WriteString(w, "timeline:"+tl.CaseID)
	return err
}

func (workbookFake) WriteChecklist(w io.Writer, cl domain.CaseChecklist) error {
	_, err := io.WriteString(w, "checklist:"+cl.Checklist.CaseID)
	return err
}

type testServices struct {
	cases  *caseServiceFake
	ingest *ingestFake
	docs   *docsFake
}

func newTestServices() testServices {
	return testServices{cases: &caseServiceFake{}, ingest: &ingestFake{}, docs: &docsFake{}}
}

func (s testServices) handler(cfg config.Config) http.Handler {
	return NewRouter(cfg, Services{
		Analysis:  newAnalysisService(),
		Cases:     s.cases,
		Ingest:    s.ingest,
		Documents: s.docs,
		Workbooks: workbookFake{},
	}).Handler()
}

func newTestHandler(cfg config.Config) http.Handler {
	return newTestServices().handler(cfg)
}
