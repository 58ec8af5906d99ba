// Package timeline merges case creation, document and deadline events into one
// chronological sequence annotated with the gaps between neighbours.
package timeline

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"cloud.google.com/go/civil"

	"github.com/kirillkom/legal-case-intel/internal/core/dateparse"
	"github.com/kirillkom/legal-case-intel/internal/core/domain"
	"github.com/kirillkom/legal-case-intel/internal/core/ports"
)

type Option func(*Builder)

func WithNow(now func() time.Time) Option {
	return func(b *Builder) {
		if now != nil {
			b.now = now
		}
	}
}

func WithObserver(o ports.AnalysisObserver) Option {
	return func(b *Builder) {
		b.observer = ports.ObserverOrNop(o)
	}
}

type Builder struct {
	dates    dateparse.Chain
	now      func() time.Time
	observer ports.AnalysisObserver
}

func New(opts ...Option) *Builder {
	b := &Builder{
		dates:    dateparse.TimestampChain(),
		now:      time.Now,
		observer: ports.NopObserver{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build emits the system event, then one event per dated document and per
// dated deadline, sorts them stably by date and links neighbours.
func (b *Builder) Build(info domain.CaseInfo, docs []domain.CaseDocument, deadlines []domain.Deadline) []domain.TimelineEvent {
	events := make([]domain.TimelineEvent, 0, 1+len(docs)+len(deadlines))
	events = append(events, domain.TimelineEvent{
		Label:       "Caso criado",
		EventDate:   b.resolve(info.CreatedAt),
		EventType:   domain.EventSystem,
		Description: fmt.Sprintf("Caso %s criado", orNA(info.ActionType)),
	})

	byID := make(map[string]domain.CaseDocument, len(docs))
	for _, d := range docs {
		if d.ID != "" {
			byID[d.ID] = d
		}
	}

	for _, d := range docs {
		date, ok := b.documentDate(d)
		if !ok {
			continue
		}
		ev := domain.TimelineEvent{
			Label:             fmt.Sprintf("Documento recebido: %s", orNA(string(d.Classified.DocumentType))),
			EventDate:         date,
			EventType:         domain.EventDocumentUpload,
			Description:       fmt.Sprintf("Documento %s recebido", orNA(d.FileName)),
			RelatedDocumentID: d.ID,
		}
		if d.Assessment != nil {
			ev.Classification = d.Assessment.Category
			ev.Relevance = d.Assessment.Relevance
		}
		events = append(events, ev)
	}

	for _, dl := range deadlines {
		if dl.DueDate == nil {
			continue
		}
		status := dl.Status
		if status == "" {
			status = domain.DeadlinePending
		}
		events = append(events, domain.TimelineEvent{
			Label:             fmt.Sprintf("Prazo: %s", orNA(dl.Description)),
			EventDate:         *dl.DueDate,
			EventType:         domain.EventDeadline,
			Description:       dl.Description,
			RelatedDocumentID: dl.DocumentID,
			DeadlineType:      dl.Type,
			Status:            status,
		})
	}

	slices.SortStableFunc(events, func(x, y domain.TimelineEvent) int {
		return x.EventDate.Compare(y.EventDate)
	})
	enrich(events, byID)

	b.observer.ObserveAnalysis("generate_timeline",
		"case_id", info.ID,
		"events", len(events),
	)
	return events
}

// documentDate prefers the date found in the document text over the upload
// timestamp. Documents with neither are left out of the timeline.
func (b *Builder) documentDate(d domain.CaseDocument) (civil.Date, bool) {
	if d.Classified.ExtractedDate != nil {
		return *d.Classified.ExtractedDate, true
	}
	if strings.TrimSpace(d.UploadedAt) == "" {
		return civil.Date{}, false
	}
	return b.resolve(d.UploadedAt), true
}

// resolve never fails: unparseable literals land on today.
func (b *Builder) resolve(literal string) civil.Date {
	return b.dates.DateOr(strings.TrimSpace(literal), b.now)
}

// enrich links each event to its neighbours. The first event has no previous
// and the last has no next.
func enrich(events []domain.TimelineEvent, docs map[string]domain.CaseDocument) {
	for i := range events {
		ev := &events[i]
		if d, ok := docs[ev.RelatedDocumentID]; ok && ev.RelatedDocumentID != "" {
			info := &domain.TimelineDocumentInfo{
				FileName:     d.FileName,
				DocumentType: d.Classified.DocumentType,
			}
			if d.Assessment != nil {
				info.Classification = d.Assessment.Category
			}
			ev.DocumentInfo = info
		}
		if i > 0 {
			prev := events[i-1]
			gap := ev.EventDate.DaysSince(prev.EventDate)
			ev.PreviousLabel = prev.Label
			ev.DaysFromPrevious = &gap
		}
		if i < len(events)-1 {
			next := events[i+1]
			gap := next.EventDate.DaysSince(ev.EventDate)
			ev.NextLabel = next.Label
			ev.DaysToNext = &gap
		}
	}
}

func (b *Builder) Summarize(events []domain.TimelineEvent) domain.TimelineSummary {
	return Summarize(events)
}

// Summarize derives counts, the covered period and overdue deadline events.
func Summarize(events []domain.TimelineEvent) domain.TimelineSummary {
	out := domain.TimelineSummary{
		TotalEvents:      len(events),
		EventsByType:     make(map[domain.EventType]int),
		DocumentsByMonth: make(map[string]int),
		CriticalEvents:   []domain.TimelineEvent{},
	}
	if len(events) == 0 {
		return out
	}

	start, end := events[0].EventDate, events[0].EventDate
	for _, ev := range events {
		if ev.EventDate.Before(start) {
			start = ev.EventDate
		}
		if ev.EventDate.After(end) {
			end = ev.EventDate
		}
		out.EventsByType[ev.EventType]++
		switch ev.EventType {
		case domain.EventDocumentUpload:
			out.DocumentsByMonth[monthKey(ev.EventDate)]++
		case domain.EventDeadline:
			if ev.Status == domain.DeadlineOverdue {
				out.CriticalEvents = append(out.CriticalEvents, ev)
			}
		}
	}
	out.Period = &domain.TimelinePeriod{Start: start, End: end, Days: end.DaysSince(start) + 1}
	return out
}

func monthKey(d civil.Date) string {
	return fmt.Sprintf("%04d-%02d", d.Year, int(d.Month))
}

// WriteJSON writes the timeline as indented JSON without HTML escaping.
func WriteJSON(w io.Writer, t domain.CaseTimeline) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("encode timeline: %w", err)
	}
	return nil
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
