// Package dateparse resolves date literals through ordered, explicit parser chains.
package dateparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"cloud.google.com/go/civil"
	anydate "github.com/araddon/dateparse"
)

// Parser turns a literal into an instant. ok is false when the literal is not understood.
type Parser interface {
	Parse(s string) (time.Time, bool)
}

type ParserFunc func(s string) (time.Time, bool)

func (f ParserFunc) Parse(s string) (time.Time, bool) {
	return f(s)
}

func Layout(layout string) Parser {
	return ParserFunc(func(s string) (time.Time, bool) {
		t, err := time.Parse(layout, strings.TrimSpace(s))
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	})
}

// Prefix hands only the first n bytes of the literal to p.
func Prefix(n int, p Parser) Parser {
	return ParserFunc(func(s string) (time.Time, bool) {
		s = strings.TrimSpace(s)
		if len(s) > n {
			s = s[:n]
		}
		return p.Parse(s)
	})
}

// Chain tries each parser in order and returns the first success.
type Chain []Parser

func (c Chain) Parse(s string) (time.Time, bool) {
	for _, p := range c {
		if p == nil {
			continue
		}
		if t, ok := p.Parse(s); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

func (c Chain) Date(s string) (civil.Date, bool) {
	t, ok := c.Parse(s)
	if !ok {
		return civil.Date{}, false
	}
	return civil.DateOf(t), true
}

// DateOr resolves s or falls back to the date of now().
func (c Chain) DateOr(s string, now func() time.Time) civil.Date {
	if d, ok := c.Date(s); ok {
		return d
	}
	return civil.DateOf(now())
}

// TimestampChain accepts the literal shapes stored by callers and persistence:
// date, timestamps with T or space separator, day-first slashes, and any of
// those truncated to their leading date.
func TimestampChain() Chain {
	return Chain{
		Layout(time.DateOnly),
		Layout(time.RFC3339),
		Layout("2006-01-02T15:04:05"),
		Layout(time.DateTime),
		Layout("02/01/2006"),
		Prefix(10, Layout(time.DateOnly)),
		Prefix(10, Layout("02/01/2006")),
	}
}

var ptMonths = map[string]time.Month{
	"janeiro":   time.January,
	"fevereiro": time.February,
	"março":     time.March,
	"marco":     time.March,
	"abril":     time.April,
	"maio":      time.May,
	"junho":     time.June,
	"julho":     time.July,
	"agosto":    time.August,
	"setembro":  time.September,
	"outubro":   time.October,
	"novembro":  time.November,
	"dezembro":  time.December,
}

var verboseRe = regexp.MustCompile(`(?i)^(\d{1,2})\s+de\s+(\pL+)\s+de\s+(\d{4})$`)

// Verbose parses "D de MONTH de YYYY" with Portuguese month names.
func Verbose() Parser {
	return ParserFunc(func(s string) (time.Time, bool) {
		m := verboseRe.FindStringSubmatch(strings.TrimSpace(s))
		if m == nil {
			return time.Time{}, false
		}
		month, ok := ptMonths[strings.ToLower(m[2])]
		if !ok {
			return time.Time{}, false
		}
		day, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[3])
		t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		if t.Day() != day || t.Month() != month {
			return time.Time{}, false
		}
		return t, true
	})
}

// naturalMaxLen bounds the literal handed to the lenient parser; longer
// inputs are prose, not dates.
const naturalMaxLen = 64

// Natural is a lenient parser for free-form literals, day-first on ambiguity.
// Bare digit runs are rejected: they would parse as epoch timestamps.
func Natural() Parser {
	return ParserFunc(func(s string) (t time.Time, ok bool) {
		s = strings.TrimSpace(s)
		if s == "" || len(s) > naturalMaxLen || strings.IndexFunc(s, unicode.IsLetter) < 0 {
			return time.Time{}, false
		}
		// anydate panics on a few pathological inputs.
		defer func() {
			if recover() != nil {
				t, ok = time.Time{}, false
			}
		}()
		parsed, err := anydate.ParseIn(englishMonths(s), time.UTC, anydate.PreferMonthFirst(false))
		if err != nil {
			return time.Time{}, false
		}
		return parsed, true
	})
}

// englishMonths rewrites Portuguese month names to English and drops the
// "de" connectors, so "março de 2024" reaches the lenient parser as "March 2024".
func englishMonths(s string) string {
	fields := strings.Fields(s)
	out := fields[:0]
	for _, f := range fields {
		lower := strings.ToLower(f)
		if lower == "de" {
			continue
		}
		word := strings.TrimRight(lower, ",.")
		if month, ok := ptMonths[word]; ok {
			f = month.String() + lower[len(word):]
		}
		out = append(out, f)
	}
	return strings.Join(out, " ")
}
