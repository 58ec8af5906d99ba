package checklist

import "strings"

// Matcher decides whether a received document label fulfils a checklist item.
type Matcher interface {
	Matches(item, received string) bool
}

// ContainmentMatcher matches when either label contains the other, ignoring
// case. It is loose on short labels ("rg" matches many words); blank
// received labels never match.
type ContainmentMatcher struct{}

func (ContainmentMatcher) Matches(item, received string) bool {
	r := strings.ToLower(strings.TrimSpace(received))
	if r == "" {
		return false
	}
	i := strings.ToLower(item)
	return strings.Contains(i, r) || strings.Contains(r, i)
}
