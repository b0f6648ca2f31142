// Package metric converts extraction outputs into ExtendedFinancialMetric
// values and merges the competing extraction strategies.
package metric

import (
	"fmt"
	"math"
	"strings"

	"filinglens/pkg/models"
)

// Confidence bands for table-sourced metrics. Totals and subtotals are the
// statements' own arithmetic anchors, so they rank above plain rows.
const (
	confidenceTableRow      = 0.85
	confidenceTableSubtotal = 0.90
	confidenceTableTotal    = 0.95
)

// FromTables converts categorized table rows into metrics. The newest
// reported value per row becomes the metric value; the following period, if
// present, yields the YoY change. Values are scaled to whole currency units
// except per-share categories.
func FromTables(tables []models.ParsedTable) []models.ExtendedFinancialMetric {
	var metrics []models.ExtendedFinancialMetric

	for _, t := range tables {
		factor := t.Unit.Factor()
		for _, row := range t.Rows {
			if row.Category == models.CategoryUnknown {
				continue
			}

			idx := firstReported(row.Values)
			if idx < 0 {
				continue
			}
			raw := *row.Values[idx]
			if !row.Category.IsPerShare() {
				raw *= factor
			}

			confidence := confidenceTableRow
			if row.IsTotal {
				confidence = confidenceTableTotal
			} else if row.IsSubtotal {
				confidence = confidenceTableSubtotal
			}

			m := models.ExtendedFinancialMetric{
				Name:           row.Label,
				FormattedValue: FormatAmount(raw, row.Category),
				RawValue:       &raw,
				Unit:           t.Unit,
				Category:       row.Category,
				Source:         models.SourceTable,
				Confidence:     confidence,
				Context:        t.Title,
			}
			if idx < len(t.Periods) {
				m.Period = t.Periods[idx]
				m.PeriodType = periodTypeOf(t.Periods[idx])
			}
			if prior := nextReported(row.Values, idx); prior != nil && *prior != 0 {
				change := (*row.Values[idx] - *prior) / math.Abs(*prior) * 100
				m.YoYChange = &change
			}

			metrics = append(metrics, m)
		}
	}
	return metrics
}

func firstReported(values []*float64) int {
	for i, v := range values {
		if v != nil {
			return i
		}
	}
	return -1
}

func nextReported(values []*float64, after int) *float64 {
	for i := after + 1; i < len(values); i++ {
		if values[i] != nil {
			return values[i]
		}
	}
	return nil
}

func periodTypeOf(label string) models.PeriodType {
	if strings.HasPrefix(strings.ToUpper(strings.TrimSpace(label)), "Q") {
		return models.PeriodQuarterly
	}
	return models.PeriodAnnual
}

// FormatAmount renders a scaled value for display: "$391.04B", "($56.00)",
// "2.50" for per-share figures.
func FormatAmount(v float64, cat models.CanonicalCategory) string {
	if cat.IsPerShare() {
		return fmt.Sprintf("%.2f", v)
	}

	abs := math.Abs(v)
	var body string
	switch {
	case abs >= 1e9:
		body = fmt.Sprintf("$%.2fB", abs/1e9)
	case abs >= 1e6:
		body = fmt.Sprintf("$%.2fM", abs/1e6)
	case abs >= 1e3:
		body = fmt.Sprintf("$%.2fK", abs/1e3)
	default:
		body = fmt.Sprintf("$%.2f", abs)
	}
	if v < 0 {
		return "(" + body + ")"
	}
	return body
}
