// Package normalize cleans free-text survey answers and maps raw labels to display labels.
package normalize

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Text repairs invalid UTF-8, drops null bytes, composes the string to NFC
// and trims surrounding whitespace. Survey exports occasionally carry
// decomposed accents or stray encoding errors; these are cleaned, never rejected.
func Text(s string) string {
	s = strings.ToValidUTF8(s, "\uFFFD")
	s = sanitizeString(s)
	s = norm.NFC.String(s)
	return strings.TrimSpace(s)
}

// sanitizeString removes null bytes, which break JSON consumers downstream.
func sanitizeString(s string) string {
	if !strings.ContainsRune(s, 0) {
		return s
	}
	return strings.Map(func(r rune) rune {
		if r == 0 {
			return -1
		}
		return r
	}, s)
}

// LabelMap maps a raw answer label to its short display label.
// Keys are stored in Text form so lookups see the same cleaning as tokens.
type LabelMap struct {
	name    string
	entries map[string]string
}

// NewLabelMap builds a named label table. Later duplicates (after cleaning) win.
func NewLabelMap(name string, entries map[string]string) LabelMap {
	m := make(map[string]string, len(entries))
	for raw, display := range entries {
		m[Text(raw)] = display
	}
	return LabelMap{name: name, entries: m}
}

// Name returns the table name, used in logs.
func (m LabelMap) Name() string {
	return m.name
}

// Len returns the number of distinct raw labels in the table.
func (m LabelMap) Len() int {
	return len(m.entries)
}

// Lookup returns the display label for raw, or raw itself when unmapped.
func (m LabelMap) Lookup(raw string) string {
	if display, ok := m.entries[raw]; ok {
		return display
	}
	return raw
}

// Labels replaces every token found in m with its display label.
// Order and multiplicity are preserved, so the result has len(tokens) entries.
func Labels(tokens []string, m LabelMap) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = m.Lookup(tok)
	}
	return out
}
