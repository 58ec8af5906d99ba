package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/DATA-DOG/go-sqlmock"

	"github.com/kirillkom/legal-case-intel/internal/core/domain"
)

func TestReplaceForDocumentRunsInTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	due := civil.Date{Year: 2024, Month: time.December, Day: 20}
	days := 15
	deadlines := []domain.Deadline{
		{Type: domain.DeadlineProcedural, DueDate: &due, Description: "contestação", Origin: domain.OriginProceduralPattern, Confidence: domain.ConfidenceMedium, DaysCount: &days},
		{ID: "dl-2", Type: domain.DeadlineAdministrative, Description: "recurso", Origin: domain.OriginKnownCatalog, Confidence: domain.ConfidenceLow, Status: domain.DeadlineDone},
	}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM deadlines").WithArgs("doc-1").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("INSERT INTO deadlines").
		WithArgs(sqlmock.AnyArg(), "doc-1", 0, "procedural", due.In(time.UTC), "contestação", "procedural_pattern", "medium", 15, "pending").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO deadlines").
		WithArgs("dl-2", "doc-1", 1, "administrative", nil, "recurso", "known_catalog", "low", nil, "done").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := NewDeadlineRepository(db).ReplaceForDocument(context.Background(), "doc-1", deadlines); err != nil {
		t.Fatalf("ReplaceForDocument() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestReplaceForDocumentRollsBackOnInsertError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM deadlines").WithArgs("doc-1").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO deadlines").WillReturnError(errors.New("constraint"))
	mock.ExpectRollback()

	err = NewDeadlineRepository(db).ReplaceForDocument(context.Background(), "doc-1", []domain.Deadline{{Description: "x"}})
	if err == nil {
		t.Fatalf("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestListDeadlinesByCase(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	due := time.Date(2024, time.December, 20, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("JOIN documents d ON d.id = dl.document_id").
		WithArgs("case-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "document_id", "deadline_type", "due_date", "description", "origin", "confidence", "days_count", "status"}).
			AddRow("dl-1", "doc-1", "procedural", due, "contestação", "procedural_pattern", "medium", int64(15), "pending").
			AddRow("dl-2", "doc-1", "administrative", nil, "recurso", "known_catalog", "low", nil, "pending"))

	got, err := NewDeadlineRepository(db).ListByCase(context.Background(), "case-1")
	if err != nil {
		t.Fatalf("ListByCase() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 deadlines, got %d", len(got))
	}
	want := civil.Date{Year: 2024, Month: time.December, Day: 20}
	if got[0].DueDate == nil || *got[0].DueDate != want || got[0].DaysCount == nil || *got[0].DaysCount != 15 {
		t.Fatalf("unexpected first deadline: %+v", got[0])
	}
	if got[1].DueDate != nil || got[1].DaysCount != nil || got[1].Origin != domain.OriginKnownCatalog {
		t.Fatalf("unexpected second deadline: %+v", got[1])
	}
}
