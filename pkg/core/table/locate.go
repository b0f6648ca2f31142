package table

import (
	"strings"

	"filinglens/pkg/models"
)

// locatedSection is a statement span found in cleaned text.
type locatedSection struct {
	Title string
	Body  string
	Start int
}

// minNumericTokens is how many numeric tokens must follow a heading for the
// match to count as the statement itself rather than a table-of-contents
// echo.
const minNumericTokens = 3

// lowerASCII folds only A-Z, so the result is byte-length-preserving and
// offsets found in it index the original string directly. strings.ToLower
// cannot be used here: some Unicode case mappings change byte length
// (U+0130 lowercases to two runes) and would shift every heading offset.
// Heading synonyms and section markers are all ASCII.
func lowerASCII(s string) string {
	b := []byte(s)
	changed := false
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
			changed = true
		}
	}
	if !changed {
		return s
	}
	return string(b)
}

// locateSection finds the span for one statement type. Heading synonyms are
// tried in order; for each synonym every occurrence is considered and the
// first one with numeric content after it wins. The span ends at the nearest
// next-section marker, capped at maxSectionSpan.
func locateSection(text, lower string, cfg statementConfig) (locatedSection, bool) {
	markers := markersFor(cfg.Type)

	for _, syn := range cfg.Headings {
		searchFrom := 0
		for searchFrom < len(lower) {
			rel := strings.Index(lower[searchFrom:], syn)
			if rel < 0 {
				break
			}
			start := searchFrom + rel
			searchFrom = start + len(syn)

			end := sectionEnd(lower, start+len(syn), markers)
			body := text[start:end]

			// Skip TOC echoes: a real statement heading is followed by
			// numbers almost immediately.
			probe := body
			if len(probe) > 1500 {
				probe = probe[:1500]
			}
			if len(FindNumericTokens(probe)) < minNumericTokens {
				continue
			}

			return locatedSection{
				Title: strings.TrimSpace(text[start : start+len(syn)]),
				Body:  body,
				Start: start,
			}, true
		}
	}
	return locatedSection{}, false
}

// sectionEnd returns the nearest marker offset after from, bounded by
// maxSectionSpan.
func sectionEnd(lower string, from int, markers []string) int {
	end := len(lower)
	if from+maxSectionSpan < end {
		end = from + maxSectionSpan
	}
	window := lower[from:end]
	nearest := len(window)
	for _, m := range markers {
		if idx := strings.Index(window, m); idx >= 0 && idx < nearest {
			nearest = idx
		}
	}
	return from + nearest
}

// markersFor builds the terminator list for a statement type: the fixed
// next-section markers plus every other statement type's headings.
func markersFor(current models.StatementType) []string {
	markers := make([]string, 0, len(nextSectionMarkers)+24)
	markers = append(markers, nextSectionMarkers...)
	for _, cfg := range statementConfigs {
		if cfg.Type == current {
			continue
		}
		markers = append(markers, cfg.Headings...)
	}
	return markers
}
