package section

import (
	"strings"
	"testing"

	"filinglens/pkg/models"
)

const annualReportText = `UNITED STATES SECURITIES AND EXCHANGE COMMISSION
FORM 10-K

Item 1. Business
We design and sell consumer electronics worldwide.

Item 1A. Risk Factors
Our operations face substantial competition in every market.

Item 7. Management's Discussion and Analysis of Financial Condition
Revenue increased 8% year over year.

Item 8. Financial Statements and Supplementary Data
See the consolidated financial statements below.`

func TestSegment_AnnualReport(t *testing.T) {
	sections := Segment(annualReportText, models.FormAnnual)

	want := []string{NameBusiness, NameRiskFactors, NameManagementDiscussion, NameFinancialStatements}
	got := sections.Names()
	if len(got) != len(want) {
		t.Fatalf("expected %d sections %v, got %d: %v", len(want), want, len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("section %d: expected %q, got %q", i, want[i], got[i])
		}
	}

	// Each section spans to the next header.
	risk := sections.Get(NameRiskFactors)
	if risk == nil {
		t.Fatal("risk factors section missing")
	}
	if !strings.Contains(risk.Content, "substantial competition") {
		t.Errorf("risk section content wrong: %q", risk.Content)
	}
	if strings.Contains(risk.Content, "Revenue increased") {
		t.Errorf("risk section bleeds into MD&A: %q", risk.Content)
	}
}

func TestSegment_SectionsAreOrderedAndNonOverlapping(t *testing.T) {
	sections := Segment(annualReportText, models.FormAnnual)

	for i := 1; i < len(sections); i++ {
		if sections[i].StartOffset < sections[i-1].EndOffset {
			t.Errorf("sections %q and %q overlap", sections[i-1].Name, sections[i].Name)
		}
	}
}

func TestSegment_DuplicateHeaderKeepsFirst(t *testing.T) {
	// Table of contents echoes the item header before the real section.
	text := `Item 1A. Risk Factors .......... 12

Item 1A. Risk Factors
The real section body with actual risk discussion.`

	sections := Segment(text, models.FormAnnual)

	count := 0
	for _, s := range sections {
		if s.Name == NameRiskFactors {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly 1 risk factors section, got %d", count)
	}
	if sections.Get(NameRiskFactors).StartOffset != 0 {
		t.Errorf("expected first occurrence kept, got offset %d", sections.Get(NameRiskFactors).StartOffset)
	}
}

func TestSegment_NoHeadersYieldsFallback(t *testing.T) {
	text := "Just some narrative prose with no recognizable structure at all."

	sections := Segment(text, models.FormAnnual)

	if len(sections) != 1 {
		t.Fatalf("expected single fallback section, got %d", len(sections))
	}
	if sections[0].Name != models.FallbackSectionName {
		t.Errorf("expected %q, got %q", models.FallbackSectionName, sections[0].Name)
	}
	if sections[0].Content != text {
		t.Errorf("fallback section must cover the whole document")
	}
}

func TestSegment_UnknownFormUsesAnnualPatterns(t *testing.T) {
	sections := Segment(annualReportText, models.FormUnknown)
	if sections.Get(NameRiskFactors) == nil {
		t.Error("unknown form should fall back to annual report patterns")
	}
}

func TestResolveFiscalPeriod(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		quarter int
		year    int
	}{
		{"quarterly period ended", "For the quarterly period ended June 28, 2025", 2, 2025},
		{"quarter ending in Q3 month", "For the quarterly period ended September 30, 2024", 3, 2024},
		{"q label", "Results for Q3 2024 were strong", 3, 2024},
		{"spelled out", "during the third quarter of fiscal 2024", 3, 2024},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fp := ResolveFiscalPeriod(tc.text)
			if fp == nil {
				t.Fatal("expected a fiscal period, got nil")
			}
			if fp.Quarter == nil || *fp.Quarter != tc.quarter {
				t.Errorf("quarter: expected %d, got %v", tc.quarter, fp.Quarter)
			}
			if fp.Year == nil || *fp.Year != tc.year {
				t.Errorf("year: expected %d, got %v", tc.year, fp.Year)
			}
		})
	}
}

func TestResolveFiscalPeriod_NeverGuesses(t *testing.T) {
	if fp := ResolveFiscalPeriod("No dates of any kind here."); fp != nil {
		t.Errorf("expected nil for text without period statements, got %+v", fp)
	}
}
