package table

import (
	"strings"

	"filinglens/pkg/core/category"
	"filinglens/pkg/models"
)

// parseLines runs the line-based row parser over a located statement
// section. Lines with cell delimiters (inserted by the normalizer from HTML
// rows) split on them; bare text lines fall back to numeric-token scanning.
func parseLines(body string, periodCount int) []models.TableRow {
	lines := strings.Split(body, "\n")
	rows := make([]models.TableRow, 0, len(lines))

	for _, raw := range lines {
		line := strings.TrimRight(raw, " ")
		if strings.TrimSpace(line) == "" {
			continue
		}

		var label string
		var values []*float64
		if strings.Contains(line, "|") {
			label, values = parseDelimitedLine(line)
		} else {
			label, values = parseBareLine(line)
		}

		if !keepRow(label, values) {
			continue
		}

		rows = append(rows, models.TableRow{
			Label:       strings.TrimSpace(label),
			Values:      alignValues(values, periodCount),
			IsSubtotal:  category.IsSubtotalLabel(label),
			IsTotal:     category.IsTotalLabel(label),
			IndentLevel: category.IndentLevel(raw),
			Category:    category.Categorize(label),
		})
	}
	return rows
}

// parseDelimitedLine splits a cell-delimited row. The label is the first
// non-numeric cell; numeric cells become values, lone dashes become nil
// ("not reported"). $ symbols and empties at the row edges are column
// padding and are skipped, but an empty cell between two parsed values is a
// genuinely unreported column and becomes nil so later values keep their
// period position.
func parseDelimitedLine(line string) (string, []*float64) {
	cells := strings.Split(line, "|")
	label := ""
	var values []*float64
	pendingEmpty := 0
	record := func(v *float64) {
		for ; pendingEmpty > 0; pendingEmpty-- {
			values = append(values, nil)
		}
		values = append(values, v)
	}

	for _, cell := range cells {
		cell = strings.TrimSpace(cell)
		if label == "" {
			if cell == "" {
				continue
			}
			if !isNumericOnly(cell) {
				label = cell
				continue
			}
			// Numeric content before any label: not a data row.
			return "", nil
		}
		switch cell {
		case "$":
			continue
		case "":
			if len(values) > 0 {
				pendingEmpty++
			}
		case "-", "—", "–":
			record(nil)
		default:
			if v := ParseCell(cell); v != nil {
				record(v)
			}
		}
	}
	return label, values
}

// parseBareLine handles rows with no surviving cell structure, e.g.
// "Total revenue $ 391,035 383,285". The label is everything before the
// first numeric token.
func parseBareLine(line string) (string, []*float64) {
	tokens := FindNumericTokens(line)
	if len(tokens) == 0 {
		return "", nil
	}

	first := strings.Index(line, tokens[0])
	label := strings.TrimSpace(strings.Trim(line[:first], "$ .\t"))

	var values []*float64
	for _, tok := range tokens {
		if v := ParseCell(tok); v != nil {
			values = append(values, v)
		}
	}
	return label, values
}

// keepRow applies the row filters: label at least 3 chars, not numeric-only,
// at least one parsed cell.
func keepRow(label string, values []*float64) bool {
	label = strings.TrimSpace(label)
	if len(label) < 3 || isNumericOnly(label) {
		return false
	}
	for _, v := range values {
		if v != nil {
			return true
		}
	}
	return false
}
