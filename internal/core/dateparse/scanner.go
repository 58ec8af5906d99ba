package dateparse

import (
	"regexp"
	"strings"
	"unicode"

	"cloud.google.com/go/civil"
)

// Finder locates literal candidates in text and parses each with Parser.
type Finder struct {
	Name    string
	Pattern *regexp.Regexp
	Parser  Parser
}

// Scanner runs finders in order; the first candidate that parses wins.
// Fallback, when set, is applied to the whole text after every finder missed,
// then to each span matched by Windows.
type Scanner struct {
	Finders  []Finder
	Fallback Parser
	Windows  *regexp.Regexp
}

func (s Scanner) Scan(text string) (civil.Date, bool) {
	text = FoldSpaces(text)
	for _, f := range s.Finders {
		for _, candidate := range f.Pattern.FindAllString(text, -1) {
			if t, ok := f.Parser.Parse(candidate); ok {
				return civil.DateOf(t), true
			}
		}
	}
	if s.Fallback != nil {
		if t, ok := s.Fallback.Parse(text); ok {
			return civil.DateOf(t), true
		}
		if s.Windows != nil {
			for _, window := range s.Windows.FindAllString(text, -1) {
				if t, ok := s.Fallback.Parse(window); ok {
					return civil.DateOf(t), true
				}
			}
		}
	}
	return civil.Date{}, false
}

// monthWindowRe cuts "<day> <month> <year>" shaped spans, in Portuguese or
// English, out of long text for the lenient parser.
var monthWindowRe = regexp.MustCompile(`(?i)(?:\d{1,2}(?:st|nd|rd|th)?,?\s+(?:de\s+)?)?` +
	`(?:janeiro|fevereiro|março|marco|abril|maio|junho|julho|agosto|setembro|outubro|novembro|dezembro|` +
	`january|february|march|april|may|june|july|august|september|october|november|december)` +
	`(?:\s+\d{1,2}(?:st|nd|rd|th)?)?,?\s+(?:de\s+)?\d{4}`)

// DocumentScanner finds a document date: dd/mm/yyyy, dd-mm-yyyy, yyyy-mm-dd,
// the verbose Portuguese form, then a natural parse of the whole text and of
// month-name spans inside it.
func DocumentScanner() Scanner {
	return Scanner{
		Finders: []Finder{
			{Name: "dmy_slash", Pattern: regexp.MustCompile(`\d{2}/\d{2}/\d{4}`), Parser: Layout("02/01/2006")},
			{Name: "dmy_dash", Pattern: regexp.MustCompile(`\d{2}-\d{2}-\d{4}`), Parser: Layout("02-01-2006")},
			{Name: "iso", Pattern: regexp.MustCompile(`\d{4}-\d{2}-\d{2}`), Parser: Layout("2006-01-02")},
			{Name: "verbose", Pattern: regexp.MustCompile(`(?i)\d{1,2}\s+de\s+\pL+\s+de\s+\d{4}`), Parser: Verbose()},
		},
		Fallback: Natural(),
		Windows:  monthWindowRe,
	}
}

// FoldSpaces maps every Unicode space (NBSP, thin space) to an ASCII space so
// `\s` in patterns sees it.
func FoldSpaces(s string) string {
	if strings.IndexFunc(s, isExoticSpace) < 0 {
		return s
	}
	return strings.Map(func(r rune) rune {
		if isExoticSpace(r) {
			return ' '
		}
		return r
	}, s)
}

func isExoticSpace(r rune) bool {
	return r > unicode.MaxASCII && unicode.IsSpace(r)
}

func SlashDate(s string) (civil.Date, bool) {
	t, ok := Layout("02/01/2006").Parse(s)
	if !ok {
		return civil.Date{}, false
	}
	return civil.DateOf(t), true
}
