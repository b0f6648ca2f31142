package metric

import (
	"math"
	"testing"

	"filinglens/pkg/models"
)

func TestExtractPatterns_NarrativeMentions(t *testing.T) {
	text := `Total revenues were $4,578 million for the year, up from the prior year.
Net loss was $(1,200) million, driven by restructuring charges.
Total assets of $12.5 billion at year end.
Diluted earnings per share of 2.50 for the year.`

	metrics := ExtractPatterns(text)

	byCat := make(map[models.CanonicalCategory]models.ExtendedFinancialMetric)
	for _, m := range metrics {
		byCat[m.Category] = m
	}

	rev, ok := byCat[models.CategoryRevenue]
	if !ok {
		t.Fatal("revenue pattern missed")
	}
	if *rev.RawValue != 4.578e9 {
		t.Errorf("revenue: expected 4.578e9, got %v", *rev.RawValue)
	}
	if rev.Source != models.SourcePattern || rev.Confidence != PatternConfidence {
		t.Errorf("revenue provenance wrong: %s %v", rev.Source, rev.Confidence)
	}

	ni, ok := byCat[models.CategoryNetIncome]
	if !ok {
		t.Fatal("net loss pattern missed")
	}
	if *ni.RawValue != -1.2e9 {
		t.Errorf("net loss: expected -1.2e9 (parenthesized), got %v", *ni.RawValue)
	}

	ta, ok := byCat[models.CategoryTotalAssets]
	if !ok {
		t.Fatal("total assets pattern missed")
	}
	if *ta.RawValue != 12.5e9 {
		t.Errorf("total assets: expected 12.5e9, got %v", *ta.RawValue)
	}

	eps, ok := byCat[models.CategoryEPSDiluted]
	if !ok {
		t.Fatal("diluted eps pattern missed")
	}
	if math.Abs(*eps.RawValue-2.5) > 1e-9 {
		t.Errorf("eps must not be unit-scaled: got %v", *eps.RawValue)
	}
}

func TestExtractPatterns_FirstMatchPerCategory(t *testing.T) {
	text := `Total revenues were $100 million in fiscal 2024.
Later the filing repeats that revenues of $999 million were recorded somewhere else.`

	metrics := ExtractPatterns(text)

	count := 0
	for _, m := range metrics {
		if m.Category == models.CategoryRevenue {
			count++
			if *m.RawValue != 100e6 {
				t.Errorf("expected first mention (100M) to win, got %v", *m.RawValue)
			}
		}
	}
	if count != 1 {
		t.Errorf("expected exactly one revenue metric, got %d", count)
	}
}

func TestExtractPatterns_NothingToFind(t *testing.T) {
	metrics := ExtractPatterns("The board met four times during the year.")
	if len(metrics) != 0 {
		t.Errorf("expected no metrics, got %d", len(metrics))
	}
}
