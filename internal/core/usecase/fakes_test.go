package usecase

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/kirillkom/legal-case-intel/internal/core/analysis/checklist"
	"github.com/kirillkom/legal-case-intel/internal/core/analysis/classifier"
	"github.com/kirillkom/legal-case-intel/internal/core/analysis/deadline"
	"github.com/kirillkom/legal-case-intel/internal/core/analysis/proof"
	"github.com/kirillkom/legal-case-intel/internal/core/analysis/summary"
	"github.com/kirillkom/legal-case-intel/internal/core/analysis/timeline"
	"github.com/kirillkom/legal-case-intel/internal/core/catalog"
	"github.com/kirillkom/legal-case-intel/internal/core/domain"
)

var fixedNow = time.Date(2024, time.December, 10, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func testAnalyzers() Analyzers {
	cat := catalog.Default()
	return Analyzers{
		Classifier: classifier.New(cat),
		Assessor:   proof.New(cat),
		Deadlines:  deadline.New(cat, deadline.WithNow(clock)),
		Checklist:  checklist.New(cat),
		Summary:    summary.New(summary.WithNow(clock)),
		Timeline:   timeline.New(timeline.WithNow(clock)),
	}
}

type caseRepoFake struct {
	mu        sync.Mutex
	cases     map[string]domain.Case
	createErr error
}

func newCaseRepoFake(cases ...domain.Case) *caseRepoFake {
	f := &caseRepoFake{cases: make(map[string]domain.Case)}
	for _, c := range cases {
		f.cases[c.ID] = c
	}
	return f
}

func (f *caseRepoFake) Create(_ context.Context, c *domain.Case) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cases[c.ID] = *c
	return nil
}

func (f *caseRepoFake) GetByID(_ context.Context, id string) (*domain.Case, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.cases[id]
	if !ok {
		return nil, domain.WrapError(domain.ErrCaseNotFound, "get case", errors.New(id))
	}
	return &c, nil
}

type statusCall struct {
	status domain.DocumentStatus
	errMsg string
}

type documentRepoFake struct {
	mu            sync.Mutex
	docs          map[string]domain.Document
	order         []string
	createErr     error
	saveErr       error
	failStatusErr error
	statusCalls   []statusCall
	validations   []*domain.ProofAssessment
}

func newDocumentRepoFake(docs ...domain.Document) *documentRepoFake {
	f := &documentRepoFake{docs: make(map[string]domain.Document)}
	for _, d := range docs {
		f.docs[d.ID] = d
		f.order = append(f.order, d.ID)
	}
	return f
}

func (f *documentRepoFake) Create(_ context.Context, doc *domain.Document) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs[doc.ID] = *doc
	f.order = append(f.order, doc.ID)
	return nil
}

func (f *documentRepoFake) GetByID(_ context.Context, id string) (*domain.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.docs[id]
	if !ok {
		return nil, domain.WrapError(domain.ErrDocumentNotFound, "get document", errors.New(id))
	}
	return &d, nil
}

func (f *documentRepoFake) ListByCase(_ context.Context, caseID string) ([]domain.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Document
	for _, id := range f.order {
		if d := f.docs[id]; d.CaseID == caseID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *documentRepoFake) UpdateStatus(_ context.Context, id string, status domain.DocumentStatus, errMessage string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusCalls = append(f.statusCalls, statusCall{status: status, errMsg: errMessage})
	if status == domain.StatusFailed && f.failStatusErr != nil {
		return f.failStatusErr
	}
	d, ok := f.docs[id]
	if !ok {
		return domain.WrapError(domain.ErrDocumentNotFound, "update status", errors.New(id))
	}
	d.Status = status
	d.Error = errMessage
	f.docs[id] = d
	return nil
}

func (f *documentRepoFake) SaveAnalysis(_ context.Context, id string, classified domain.ClassifiedDocument, assessment domain.ProofAssessment) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	d := f.docs[id]
	d.Classified = &classified
	d.Assessment = &assessment
	f.docs[id] = d
	return nil
}

func (f *documentRepoFake) SetValidated(_ context.Context, id string, validated bool, assessment *domain.ProofAssessment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	d := f.docs[id]
	d.Validated = validated
	if assessment != nil {
		d.Assessment = assessment
	}
	f.docs[id] = d
	f.validations = append(f.validations, assessment)
	return nil
}

func (f *documentRepoFake) statuses() []domain.DocumentStatus {
	out := make([]domain.DocumentStatus, 0, len(f.statusCalls))
	for _, c := range f.statusCalls {
		out = append(out, c.status)
	}
	return out
}

type deadlineRepoFake struct {
	byDocument map[string][]domain.Deadline
	byCase     map[string][]domain.Deadline
	err        error
}

func (f *deadlineRepoFake) ReplaceForDocument(_ context.Context, documentID string, deadlines []domain.Deadline) error {
	if f.err != nil {
		return f.err
	}
	if f.byDocument == nil {
		f.byDocument = make(map[string][]domain.Deadline)
	}
	f.byDocument[documentID] = deadlines
	return nil
}

func (f *deadlineRepoFake) ListByCase(_ context.Context, caseID string) ([]domain.Deadline, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byCase[caseID], nil
}

type storageFake struct {
	objects map[string]string
	saveErr error
}

func (f *storageFake) Save(_ context.Context, key string, data io.Reader) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	raw, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	if f.objects == nil {
		f.objects = make(map[string]string)
	}
	f.objects[key] = string(raw)
	return nil
}

func (f *storageFake) Open(_ context.Context, key string) (io.ReadCloser, error) {
	body, ok := f.objects[key]
	if !ok {
		return nil, errors.New("object not found")
	}
	return io.NopCloser(strings.NewReader(body)), nil
}

type queueFake struct {
	documentID string
	err        error
}

func (f *queueFake) PublishDocumentIngested(_ context.Context, documentID string) error {
	if f.err != nil {
		return f.err
	}
	f.documentID = documentID
	return nil
}

func (f *queueFake) SubscribeDocumentIngested(context.Context, func(context.Context, string) error) error {
	return errors.New("not implemented")
}

// textExtractorFake returns the stored body as text.
type textExtractorFake struct {
	err error
}

func (f *textExtractorFake) Extract(_ context.Context, fileName string, body io.Reader) (domain.RawDocument, error) {
	if f.err != nil {
		return domain.RawDocument{}, f.err
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		return domain.RawDocument{}, err
	}
	return domain.RawDocument{Text: string(raw), FileName: fileName}, nil
}

type graphFake struct {
	projected []string
	deadlines int
	err       error
}

func (f *graphFake) ProjectDocument(_ context.Context, c domain.Case, doc domain.Document, deadlines []domain.Deadline) error {
	if f.err != nil {
		return f.err
	}
	f.projected = append(f.projected, c.ID+"/"+doc.ID)
	f.deadlines += len(deadlines)
	return nil
}
