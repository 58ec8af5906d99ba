// Package deadline extracts procedural, contractual and administrative
// deadlines from classified documents.
//
// Three scanners run over the same text: explicit due-date phrases,
// "<N> dias para" counts plus the known procedural-term catalog, and
// keyword proximity. Results are merged in that order, deduplicated by due
// date (first occurrence wins), sorted and cut at the future horizon.
package deadline

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/civil"

	"github.com/kirillkom/legal-case-intel/internal/core/catalog"
	"github.com/kirillkom/legal-case-intel/internal/core/dateparse"
	"github.com/kirillkom/legal-case-intel/internal/core/domain"
	"github.com/kirillkom/legal-case-intel/internal/core/ports"
)

const (
	DefaultHorizonDays  = 3650
	DefaultReminderDays = 3
	DefaultCriticalDays = 3
)

type Option func(*Extractor)

func WithNow(now func() time.Time) Option {
	return func(e *Extractor) {
		if now != nil {
			e.now = now
		}
	}
}

func WithHorizonDays(days int) Option {
	return func(e *Extractor) {
		if days > 0 {
			e.horizonDays = days
		}
	}
}

func WithReminderDays(days int) Option {
	return func(e *Extractor) {
		if days >= 0 {
			e.reminderDays = days
		}
	}
}

func WithCriticalDays(days int) Option {
	return func(e *Extractor) {
		if days >= 0 {
			e.criticalDays = days
		}
	}
}

func WithObserver(o ports.AnalysisObserver) Option {
	return func(e *Extractor) {
		e.observer = ports.ObserverOrNop(o)
	}
}

type Extractor struct {
	terms        []catalog.ProceduralTerm
	keywords     []*regexp.Regexp
	now          func() time.Time
	horizonDays  int
	reminderDays int
	criticalDays int
	observer     ports.AnalysisObserver
}

func New(cat *catalog.Catalog, opts ...Option) *Extractor {
	e := &Extractor{
		terms:        cat.ProceduralTerms(),
		keywords:     keywordPatterns(cat.DeadlineKeywords()),
		now:          time.Now,
		horizonDays:  DefaultHorizonDays,
		reminderDays: DefaultReminderDays,
		criticalDays: DefaultCriticalDays,
		observer:     ports.NopObserver{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the deadlines found in doc. actionTypeHint is reported to
// the observer only; it does not change extraction.
func (e *Extractor) Extract(doc domain.ClassifiedDocument, actionTypeHint string) []domain.Deadline {
	if strings.TrimSpace(doc.Text) == "" {
		return []domain.Deadline{}
	}
	today := e.today()
	text := dateparse.FoldSpaces(doc.Text)

	found := scanExplicit(text)
	found = append(found, scanProcedural(text, doc.ExtractedDate, today, e.terms)...)
	found = append(found, scanKeywords(text, e.keywords)...)

	out := Deduplicate(found)
	SortByDueDate(out)
	out = WithinHorizon(out, today, e.horizonDays)
	for i := range out {
		out[i].Status = domain.DeadlinePending
	}

	e.observer.ObserveAnalysis("extract_deadlines",
		"file_name", doc.FileName,
		"action_type", actionTypeHint,
		"candidates", len(found),
		"deadlines", len(out),
	)
	return out
}

// Annotate attaches reminder dates and the critical flag, and marks pending
// deadlines whose due date has passed as overdue.
func (e *Extractor) Annotate(deadlines []domain.Deadline) []domain.DeadlineView {
	today := e.today()
	out := make([]domain.DeadlineView, 0, len(deadlines))
	for _, d := range deadlines {
		view := domain.DeadlineView{Deadline: d}
		if d.DueDate != nil {
			reminder := ReminderDate(*d.DueDate, e.reminderDays)
			view.ReminderDate = &reminder
			view.Critical = IsCritical(d, today, e.criticalDays)
			if (d.Status == "" || d.Status == domain.DeadlinePending) && d.DueDate.Before(today) {
				view.Status = domain.DeadlineOverdue
			}
		}
		if view.Status == "" {
			view.Status = domain.DeadlinePending
		}
		out = append(out, view)
	}
	return out
}

func (e *Extractor) today() civil.Date {
	return civil.DateOf(e.now())
}

// Deduplicate keeps the first deadline per due date; undated ones are always kept.
func Deduplicate(deadlines []domain.Deadline) []domain.Deadline {
	seen := make(map[civil.Date]struct{}, len(deadlines))
	out := make([]domain.Deadline, 0, len(deadlines))
	for _, d := range deadlines {
		if d.DueDate == nil {
			out = append(out, d)
			continue
		}
		if _, ok := seen[*d.DueDate]; ok {
			continue
		}
		seen[*d.DueDate] = struct{}{}
		out = append(out, d)
	}
	return out
}

// SortByDueDate orders ascending by due date with undated deadlines last.
func SortByDueDate(deadlines []domain.Deadline) {
	sort.SliceStable(deadlines, func(i, j int) bool {
		a, b := deadlines[i].DueDate, deadlines[j].DueDate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
}

// WithinHorizon drops deadlines due more than horizonDays after today.
func WithinHorizon(deadlines []domain.Deadline, today civil.Date, horizonDays int) []domain.Deadline {
	out := make([]domain.Deadline, 0, len(deadlines))
	for _, d := range deadlines {
		if d.DueDate != nil && d.DueDate.DaysSince(today) > horizonDays {
			continue
		}
		out = append(out, d)
	}
	return out
}

func ReminderDate(due civil.Date, daysBefore int) civil.Date {
	return due.AddDays(-daysBefore)
}

func IsCritical(d domain.Deadline, today civil.Date, window int) bool {
	if d.DueDate == nil {
		return false
	}
	left := d.DueDate.DaysSince(today)
	return left >= 0 && left <= window
}
