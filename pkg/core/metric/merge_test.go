package metric

import (
	"testing"

	"filinglens/pkg/models"
)

func metricFrom(cat models.CanonicalCategory, v float64, src models.MetricSource, conf float64) models.ExtendedFinancialMetric {
	return models.ExtendedFinancialMetric{
		Name:       string(cat),
		RawValue:   &v,
		Category:   cat,
		Source:     src,
		Confidence: conf,
	}
}

func TestMerge_HighestConfidenceWins(t *testing.T) {
	// Same category from a table cell and a narrative pattern: the table
	// cell's confidence carries it, even when the pattern value differs.
	tableM := []models.ExtendedFinancialMetric{
		metricFrom(models.CategoryRevenue, 1.0e9, models.SourceTable, 0.92),
	}
	patternM := []models.ExtendedFinancialMetric{
		metricFrom(models.CategoryRevenue, 9.99e9, models.SourcePattern, 0.7),
	}

	merged := Merge(tableM, nil, patternM)

	if len(merged) != 1 {
		t.Fatalf("expected 1 merged metric, got %d", len(merged))
	}
	if merged[0].Source != models.SourceTable {
		t.Errorf("expected table source to win, got %s", merged[0].Source)
	}
	if *merged[0].RawValue != 1.0e9 {
		t.Errorf("expected table value, got %v", *merged[0].RawValue)
	}
}

func TestMerge_TieBreaksBySourcePriority(t *testing.T) {
	factM := []models.ExtendedFinancialMetric{
		metricFrom(models.CategoryNetIncome, 120e6, models.SourceStructuredFact, 0.9),
	}
	patternM := []models.ExtendedFinancialMetric{
		metricFrom(models.CategoryNetIncome, 115e6, models.SourcePattern, 0.9),
	}

	merged := Merge(nil, factM, patternM)

	if len(merged) != 1 {
		t.Fatalf("expected 1 metric, got %d", len(merged))
	}
	if merged[0].Source != models.SourceStructuredFact {
		t.Errorf("equal confidence must break table > fact > pattern, got %s", merged[0].Source)
	}
}

func TestMerge_OneMetricPerCategory(t *testing.T) {
	tableM := []models.ExtendedFinancialMetric{
		metricFrom(models.CategoryRevenue, 1.0e9, models.SourceTable, 0.85),
		metricFrom(models.CategoryNetIncome, 120e6, models.SourceTable, 0.85),
	}
	factM := []models.ExtendedFinancialMetric{
		metricFrom(models.CategoryRevenue, 1.0e9, models.SourceStructuredFact, 0.9),
		metricFrom(models.CategoryTotalAssets, 310e6, models.SourceStructuredFact, 0.9),
	}
	patternM := []models.ExtendedFinancialMetric{
		metricFrom(models.CategoryRevenue, 1.1e9, models.SourcePattern, 0.7),
	}

	merged := Merge(tableM, factM, patternM)

	seen := make(map[models.CanonicalCategory]int)
	for _, m := range merged {
		seen[m.Category]++
	}
	for cat, n := range seen {
		if n > 1 {
			t.Errorf("category %s appears %d times after merge", cat, n)
		}
	}
	if len(merged) != 3 {
		t.Errorf("expected 3 categories, got %d", len(merged))
	}
	// Revenue: fact at 0.9 beats table at 0.85.
	for _, m := range merged {
		if m.Category == models.CategoryRevenue && m.Source != models.SourceStructuredFact {
			t.Errorf("revenue winner: expected structured-fact, got %s", m.Source)
		}
	}
}

func TestMerge_UncategorizedPassThrough(t *testing.T) {
	v := 5.0
	tableM := []models.ExtendedFinancialMetric{
		{Name: "Some custom row", RawValue: &v, Category: models.CategoryUnknown, Source: models.SourceTable, Confidence: 0.85},
		{Name: "Another custom row", RawValue: &v, Category: models.CategoryUnknown, Source: models.SourceTable, Confidence: 0.85},
	}

	merged := Merge(tableM, nil, nil)

	if len(merged) != 2 {
		t.Errorf("uncategorized metrics must pass through unmerged, got %d", len(merged))
	}
}

func TestMerge_EmptyInputs(t *testing.T) {
	if merged := Merge(nil, nil, nil); len(merged) != 0 {
		t.Errorf("expected empty merge, got %d", len(merged))
	}
}
