package repository

import (
	"strings"

	"golang.org/x/text/cases"
)

// textMatcher reports whether any field contains the query, ignoring case.
// A Caser keeps state, so each List call builds its own matcher.
type textMatcher struct {
	folder cases.Caser
	query  string
}

func newTextMatcher(query string) *textMatcher {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	folder := cases.Fold()
	return &textMatcher{
		folder: folder,
		query:  folder.String(query),
	}
}

func (m *textMatcher) match(fields ...string) bool {
	if m == nil {
		return true
	}
	for _, field := range fields {
		if strings.Contains(m.folder.String(field), m.query) {
			return true
		}
	}
	return false
}
