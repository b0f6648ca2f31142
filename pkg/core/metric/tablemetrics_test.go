package metric

import (
	"math"
	"testing"

	"filinglens/pkg/models"
)

func f(v float64) *float64 { return &v }

func TestFromTables_ScalesToWholeUnits(t *testing.T) {
	// "Revenue 1,000" under "(in millions)" must come out as 1.0e9 dollars.
	tables := []models.ParsedTable{{
		StatementType: models.StatementIncome,
		Title:         "CONSOLIDATED STATEMENTS OF OPERATIONS",
		Periods:       []string{"December 31, 2024", "December 31, 2023"},
		Unit:          models.UnitMillions,
		Currency:      "USD",
		Rows: []models.TableRow{
			{Label: "Revenue", Values: []*float64{f(1000), f(900)}, Category: models.CategoryRevenue},
			{Label: "Net income", Values: []*float64{f(120), f(90)}, Category: models.CategoryNetIncome},
			{Label: "Basic earnings per share", Values: []*float64{f(2.50), f(1.95)}, Category: models.CategoryEPSBasic},
			{Label: "Other stuff", Values: []*float64{f(5), nil}, Category: models.CategoryUnknown},
		},
	}}

	metrics := FromTables(tables)

	if len(metrics) != 3 {
		t.Fatalf("expected 3 metrics (unknown category dropped), got %d", len(metrics))
	}

	rev := metrics[0]
	if rev.RawValue == nil || *rev.RawValue != 1.0e9 {
		t.Errorf("revenue: expected 1.0e9, got %v", rev.RawValue)
	}
	if rev.FormattedValue != "$1.00B" {
		t.Errorf("revenue formatted: expected $1.00B, got %s", rev.FormattedValue)
	}
	if rev.Source != models.SourceTable {
		t.Errorf("source: expected table, got %s", rev.Source)
	}
	if rev.Confidence != 0.85 {
		t.Errorf("plain row confidence: expected 0.85, got %v", rev.Confidence)
	}
	if rev.Period != "December 31, 2024" {
		t.Errorf("period: got %q", rev.Period)
	}
	if rev.YoYChange == nil || math.Abs(*rev.YoYChange-11.111111) > 0.001 {
		t.Errorf("yoy: expected ~11.11, got %v", rev.YoYChange)
	}

	// Per-share values are never scaled by the table unit.
	eps := metrics[2]
	if eps.RawValue == nil || math.Abs(*eps.RawValue-2.5) > 1e-9 {
		t.Errorf("eps: expected 2.50 unscaled, got %v", eps.RawValue)
	}
	if eps.FormattedValue != "2.50" {
		t.Errorf("eps formatted: got %s", eps.FormattedValue)
	}
}

func TestFromTables_ConfidenceBands(t *testing.T) {
	tables := []models.ParsedTable{{
		StatementType: models.StatementBalance,
		Periods:       []string{"2024"},
		Unit:          models.UnitMillions,
		Rows: []models.TableRow{
			{Label: "Cash and cash equivalents", Values: []*float64{f(80)}, Category: models.CategoryCash},
			{Label: "Gross profit", Values: []*float64{f(400)}, Category: models.CategoryGrossProfit, IsSubtotal: true},
			{Label: "Total assets", Values: []*float64{f(310)}, Category: models.CategoryTotalAssets, IsTotal: true},
		},
	}}

	metrics := FromTables(tables)
	if len(metrics) != 3 {
		t.Fatalf("expected 3 metrics, got %d", len(metrics))
	}
	if metrics[0].Confidence != 0.85 || metrics[1].Confidence != 0.90 || metrics[2].Confidence != 0.95 {
		t.Errorf("confidence bands wrong: %v %v %v",
			metrics[0].Confidence, metrics[1].Confidence, metrics[2].Confidence)
	}
}

func TestFromTables_NewestReportedWins(t *testing.T) {
	// Current period not reported: the metric takes the first non-nil value
	// and the YoY prior is the next one after it.
	tables := []models.ParsedTable{{
		StatementType: models.StatementIncome,
		Periods:       []string{"2024", "2023", "2022"},
		Unit:          models.UnitThousands,
		Rows: []models.TableRow{
			{Label: "Revenue", Values: []*float64{nil, f(900), f(800)}, Category: models.CategoryRevenue},
		},
	}}

	metrics := FromTables(tables)
	if len(metrics) != 1 {
		t.Fatalf("expected 1 metric, got %d", len(metrics))
	}
	m := metrics[0]
	if *m.RawValue != 900*1e3 {
		t.Errorf("expected first reported value 900k, got %v", *m.RawValue)
	}
	if m.Period != "2023" {
		t.Errorf("period should follow the reported column, got %q", m.Period)
	}
	if m.YoYChange == nil || math.Abs(*m.YoYChange-12.5) > 1e-9 {
		t.Errorf("yoy vs 800: expected 12.5, got %v", m.YoYChange)
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		v    float64
		cat  models.CanonicalCategory
		want string
	}{
		{391.04e9, models.CategoryRevenue, "$391.04B"},
		{4.5e6, models.CategoryNetIncome, "$4.50M"},
		{1200, models.CategoryCash, "$1.20K"},
		{-56e6, models.CategoryNetIncome, "($56.00M)"},
		{2.5, models.CategoryEPSBasic, "2.50"},
		{-0.35, models.CategoryEPSDiluted, "-0.35"},
	}
	for _, tc := range tests {
		if got := FormatAmount(tc.v, tc.cat); got != tc.want {
			t.Errorf("FormatAmount(%v, %s): expected %q, got %q", tc.v, tc.cat, tc.want, got)
		}
	}
}
