package table

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reNumericToken = regexp.MustCompile(`\(?\$?\s?-?\d[\d,]*(?:\.\d+)?\s?\)?`)
	reDigits       = regexp.MustCompile(`[\d.]+`)
	reDateSlash    = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{2,4}$`)
	reNumericOnly  = regexp.MustCompile(`^[\d\s,.$()%\-—–]+$`)
)

var monthAbbrevs = []string{
	"jan", "feb", "mar", "apr", "may", "jun",
	"jul", "aug", "sep", "oct", "nov", "dec",
}

// ParseCell extracts a numeric value from one table cell. Nil means "not
// reported": empty cells, dashes, footnote markers, and date-like values all
// come back nil rather than erroring. Parenthesized numerals negate.
func ParseCell(s string) *float64 {
	s = strings.TrimSpace(s)
	switch s {
	case "", "-", "—", "–", "N/A", "n/a", "$", "*":
		return nil
	}

	// Date-like cells ("Sep. 28, 2024", "12/31/2023") are column headers
	// that slipped into a data row.
	lower := strings.ToLower(s)
	for _, month := range monthAbbrevs {
		if strings.Contains(lower, month) {
			return nil
		}
	}
	if reDateSlash.MatchString(s) {
		return nil
	}

	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, "%", "")
	s = strings.ReplaceAll(s, " ", "")

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.Trim(s, "()")
	} else if strings.HasPrefix(s, "-") {
		negative = true
		s = strings.TrimPrefix(s, "-")
	}

	match := reDigits.FindString(s)
	if match == "" {
		return nil
	}
	val, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return nil
	}
	if negative {
		val = -val
	}
	return &val
}

// FindNumericTokens returns the raw numeric-looking tokens in a line, in
// order. Used by the line-based fallback when no cell delimiters survive.
func FindNumericTokens(line string) []string {
	return reNumericToken.FindAllString(line, -1)
}

// isNumericOnly reports whether a candidate label is just numbers and
// punctuation — page numbers, stray values, separator rows.
func isNumericOnly(label string) bool {
	trimmed := strings.TrimSpace(label)
	return trimmed != "" && reNumericOnly.MatchString(trimmed)
}

// alignValues fits parsed cell values to the period count: extra trailing
// cells are dropped, missing cells become nil. Nil padding keeps the
// row-width invariant without inventing zeros.
func alignValues(values []*float64, periods int) []*float64 {
	if periods <= 0 {
		return values
	}
	aligned := make([]*float64, periods)
	copy(aligned, values)
	return aligned
}
