package xlsx

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/kirillkom/legal-case-intel/internal/core/domain"
)

const (
	timelineSheet  = "Linha do Tempo"
	checklistSheet = "Checklist"
	summarySheet   = "Resumo"
)

var (
	timelineHeader  = []any{"Data", "Tipo", "Evento", "Descrição", "Classificação", "Relevância", "Status", "Dias desde anterior", "Dias até próximo"}
	checklistHeader = []any{"Documento", "Exigência", "Situação"}
)

// WorkbookExporter renders case timelines and checklists as xlsx workbooks.
type WorkbookExporter struct{}

func NewWorkbookExporter() *WorkbookExporter {
	return &WorkbookExporter{}
}

func (e *WorkbookExporter) WriteTimeline(w io.Writer, timeline domain.CaseTimeline) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	sheet := newSheetWriter(f, timelineSheet, true)
	sheet.header(timelineHeader)
	for _, ev := range timeline.Events {
		sheet.row([]any{
			ev.EventDate.String(),
			string(ev.EventType),
			ev.Label,
			ev.Description,
			string(ev.Classification),
			optionalInt(ev.Relevance),
			string(ev.Status),
			intPtr(ev.DaysFromPrevious),
			intPtr(ev.DaysToNext),
		})
	}
	sheet.widths(12, 16, 40, 60, 20, 10, 10, 18, 16)

	summary := newSheetWriter(f, summarySheet, false)
	summary.row([]any{"Caso", timeline.CaseID})
	summary.row([]any{"Total de eventos", timeline.Summary.TotalEvents})
	if p := timeline.Summary.Period; p != nil {
		summary.row([]any{"Início", p.Start.String()})
		summary.row([]any{"Fim", p.End.String()})
		summary.row([]any{"Dias", p.Days})
	}
	summary.blank()
	summary.row([]any{"Eventos por tipo"})
	for _, t := range slices.Sorted(maps.Keys(timeline.Summary.EventsByType)) {
		summary.row([]any{string(t), timeline.Summary.EventsByType[t]})
	}
	summary.blank()
	summary.row([]any{"Documentos por mês"})
	for _, month := range slices.Sorted(maps.Keys(timeline.Summary.DocumentsByMonth)) {
		summary.row([]any{month, timeline.Summary.DocumentsByMonth[month]})
	}
	if len(timeline.Summary.CriticalEvents) > 0 {
		summary.blank()
		summary.row([]any{"Eventos críticos"})
		for _, ev := range timeline.Summary.CriticalEvents {
			summary.row([]any{ev.EventDate.String(), ev.Label})
		}
	}
	summary.widths(24, 40)

	if sheet.err != nil {
		return sheet.err
	}
	if summary.err != nil {
		return summary.err
	}
	return write(f, w)
}

func (e *WorkbookExporter) WriteChecklist(w io.Writer, cc domain.CaseChecklist) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	missing := make(map[string]bool, len(cc.Validation.RequiredMissing))
	for _, item := range cc.Validation.RequiredMissing {
		missing[item] = true
	}
	presentRecommended := make(map[string]bool, len(cc.Validation.RecommendedPresent))
	for _, item := range cc.Validation.RecommendedPresent {
		presentRecommended[item] = true
	}

	sheet := newSheetWriter(f, checklistSheet, true)
	sheet.header(checklistHeader)
	for _, item := range cc.Checklist.Required {
		sheet.row([]any{item, "Obrigatório", situation(!missing[item])})
	}
	for _, item := range cc.Checklist.Recommended {
		sheet.row([]any{item, "Recomendado", situation(presentRecommended[item])})
	}
	sheet.widths(50, 14, 12)

	summary := newSheetWriter(f, summarySheet, false)
	summary.row([]any{"Caso", cc.Checklist.CaseID})
	summary.row([]any{"Tipo de ação", cc.Checklist.ActionType})
	summary.row([]any{"Modelo", cc.Checklist.NormalizedType})
	summary.row([]any{"Situação", string(cc.Validation.Status)})
	summary.row([]any{"Completude (%)", cc.Validation.Percent})
	summary.row([]any{"Obrigatórios presentes", cc.Validation.PresentTotal})
	summary.row([]any{"Obrigatórios ausentes", cc.Validation.MissingTotal})
	if len(cc.Suggestions) > 0 {
		summary.blank()
		summary.row([]any{"Sugestões"})
		for _, s := range cc.Suggestions {
			summary.row([]any{s})
		}
	}
	summary.widths(24, 40)

	if sheet.err != nil {
		return sheet.err
	}
	if summary.err != nil {
		return summary.err
	}
	return write(f, w)
}

// sheetWriter appends rows to one sheet and keeps the first error.
type sheetWriter struct {
	f     *excelize.File
	name  string
	next  int
	style int
	err   error
}

func newSheetWriter(f *excelize.File, name string, first bool) *sheetWriter {
	s := &sheetWriter{f: f, name: name, next: 1}
	if first {
		s.err = f.SetSheetName(f.GetSheetName(0), name)
	} else {
		_, s.err = f.NewSheet(name)
	}
	return s
}

func (s *sheetWriter) header(values []any) {
	if s.err != nil {
		return
	}
	style, err := s.f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		s.err = fmt.Errorf("header style: %w", err)
		return
	}
	s.style = style
	row := s.next
	s.row(values)
	if s.err != nil {
		return
	}
	last, err := excelize.CoordinatesToCellName(len(values), row)
	if err != nil {
		s.err = err
		return
	}
	if err := s.f.SetCellStyle(s.name, "A"+strconv.Itoa(row), last, s.style); err != nil {
		s.err = fmt.Errorf("apply header style: %w", err)
	}
}

func (s *sheetWriter) row(values []any) {
	if s.err != nil {
		return
	}
	cell := "A" + strconv.Itoa(s.next)
	if err := s.f.SetSheetRow(s.name, cell, &values); err != nil {
		s.err = fmt.Errorf("write %s row %d: %w", s.name, s.next, err)
		return
	}
	s.next++
}

func (s *sheetWriter) blank() {
	s.next++
}

func (s *sheetWriter) widths(widths ...float64) {
	for i, width := range widths {
		if s.err != nil {
			return
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			s.err = err
			return
		}
		s.err = s.f.SetColWidth(s.name, col, col, width)
	}
}

func write(f *excelize.File, w io.Writer) error {
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func situation(present bool) string {
	if present {
		return "Presente"
	}
	return "Ausente"
}

func optionalInt(n int) any {
	if n == 0 {
		return ""
	}
	return n
}

func intPtr(n *int) any {
	if n == nil {
		return ""
	}
	return *n
}
