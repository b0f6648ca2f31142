package metric

import (
	"filinglens/pkg/models"
)

// Merge combines metrics from the three extraction strategies, keeping one
// metric per category: highest confidence wins, ties break by source
// preference (table > structured-fact > pattern). Metrics with no resolvable
// category pass through unmerged as supplementary detail.
//
// Deliberately no cross-validation of numeric plausibility between sources:
// source confidence ranking is the only arbiter, so a confidently located
// table cell beats a pattern match even when the pattern value looks saner.
func Merge(tableMetrics, factMetrics, patternMetrics []models.ExtendedFinancialMetric) []models.ExtendedFinancialMetric {
	all := make([]models.ExtendedFinancialMetric, 0,
		len(tableMetrics)+len(factMetrics)+len(patternMetrics))
	all = append(all, tableMetrics...)
	all = append(all, factMetrics...)
	all = append(all, patternMetrics...)

	best := make(map[models.CanonicalCategory]models.ExtendedFinancialMetric)
	var order []models.CanonicalCategory
	var uncategorized []models.ExtendedFinancialMetric

	for _, m := range all {
		if m.Category == models.CategoryUnknown {
			uncategorized = append(uncategorized, m)
			continue
		}
		cur, exists := best[m.Category]
		if !exists {
			best[m.Category] = m
			order = append(order, m.Category)
			continue
		}
		if m.Confidence > cur.Confidence ||
			(m.Confidence == cur.Confidence && m.Source.Priority() < cur.Source.Priority()) {
			best[m.Category] = m
		}
	}

	merged := make([]models.ExtendedFinancialMetric, 0, len(order)+len(uncategorized))
	for _, cat := range order {
		merged = append(merged, best[cat])
	}
	merged = append(merged, uncategorized...)
	return merged
}

// ByCategory indexes merged metrics for statement assembly.
func ByCategory(metrics []models.ExtendedFinancialMetric) map[models.CanonicalCategory]models.ExtendedFinancialMetric {
	out := make(map[models.CanonicalCategory]models.ExtendedFinancialMetric, len(metrics))
	for _, m := range metrics {
		if m.Category == models.CategoryUnknown {
			continue
		}
		if _, exists := out[m.Category]; !exists {
			out[m.Category] = m
		}
	}
	return out
}
