package xlsx

import (
	"bytes"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/xuri/excelize/v2"

	"github.com/kirillkom/legal-case-intel/internal/core/domain"
)

func openWorkbook(t *testing.T, buf *bytes.Buffer) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestWriteTimeline(t *testing.T) {
	start := civil.Date{Year: 2024, Month: time.December, Day: 1}
	due := civil.Date{Year: 2024, Month: time.December, Day: 5}
	four := 4
	timeline := domain.CaseTimeline{
		CaseID: "case-1",
		Events: []domain.TimelineEvent{
			{Label: "Caso criado", EventDate: start, EventType: domain.EventSystem, NextLabel: "Prazo: contestação", DaysToNext: &four},
			{Label: "Prazo: contestação", EventDate: due, EventType: domain.EventDeadline, Status: domain.DeadlineOverdue, DaysFromPrevious: &four},
		},
		Summary: domain.TimelineSummary{
			TotalEvents:      2,
			Period:           &domain.TimelinePeriod{Start: start, End: due, Days: 5},
			EventsByType:     map[domain.EventType]int{domain.EventSystem: 1, domain.EventDeadline: 1},
			DocumentsByMonth: map[string]int{},
		},
	}

	var buf bytes.Buffer
	if err := NewWorkbookExporter().WriteTimeline(&buf, timeline); err != nil {
		t.Fatalf("WriteTimeline() error = %v", err)
	}

	f := openWorkbook(t, &buf)
	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != timelineSheet || sheets[1] != summarySheet {
		t.Fatalf("unexpected sheets: %v", sheets)
	}
	rows, err := f.GetRows(timelineSheet)
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[1][0] != "2024-12-01" || rows[1][2] != "Caso criado" || rows[1][8] != "4" {
		t.Fatalf("unexpected first event row: %v", rows[1])
	}
	if rows[2][6] != "overdue" || rows[2][7] != "4" {
		t.Fatalf("unexpected deadline row: %v", rows[2])
	}

	summary, err := f.GetRows(summarySheet)
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if summary[0][1] != "case-1" || summary[4][1] != "5" {
		t.Fatalf("unexpected summary rows: %v", summary)
	}
}

func TestWriteChecklist(t *testing.T) {
	cc := domain.CaseChecklist{
		Checklist: domain.Checklist{
			CaseID:         "case-1",
			ActionType:     "Guarda",
			NormalizedType: "guarda",
			Required:       []string{"Certidão de nascimento", "Comprovante de residência"},
			Recommended:    []string{"Declaração escolar"},
		},
		Validation: domain.ChecklistResult{
			RequiredPresent:    []string{"Certidão de nascimento"},
			RequiredMissing:    []string{"Comprovante de residência"},
			RecommendedPresent: []string{"Declaração escolar"},
			Status:             domain.CompletionIncomplete,
			Percent:            50,
			PresentTotal:       1,
			MissingTotal:       1,
		},
		Suggestions: []string{"Fotos"},
	}

	var buf bytes.Buffer
	if err := NewWorkbookExporter().WriteChecklist(&buf, cc); err != nil {
		t.Fatalf("WriteChecklist() error = %v", err)
	}

	f := openWorkbook(t, &buf)
	rows, err := f.GetRows(checklistSheet)
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	want := [][]string{
		{"Documento", "Exigência", "Situação"},
		{"Certidão de nascimento", "Obrigatório", "Presente"},
		{"Comprovante de residência", "Obrigatório", "Ausente"},
		{"Declaração escolar", "Recomendado", "Presente"},
	}
	if len(rows) != len(want) {
		t.Fatalf("expected %d rows, got %v", len(want), rows)
	}
	for i := range want {
		for j := range want[i] {
			if rows[i][j] != want[i][j] {
				t.Fatalf("row %d: got %v, want %v", i, rows[i], want[i])
			}
		}
	}

	summary, err := f.GetRows(summarySheet)
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	last := summary[len(summary)-1]
	if last[0] != "Fotos" {
		t.Fatalf("expected suggestions at the end, got %v", summary)
	}
}
