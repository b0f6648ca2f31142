package risk

import (
	"strings"
	"testing"

	"filinglens/pkg/core/section"
	"filinglens/pkg/models"
)

func riskSection(content string) models.SectionMap {
	return models.SectionMap{{
		Name:    section.NameRiskFactors,
		Content: content,
	}}
}

func TestExtract_ParagraphSplit(t *testing.T) {
	content := `Item 1A. Risk Factors

We face intense competition in all of our markets. Competitors may introduce products that reduce demand for ours, and pricing pressure could compress margins over an extended period of time.

A failure of our information systems or a data breach could materially harm our business. We store sensitive customer data and a cyberattack could expose it, resulting in litigation and reputational damage to the company.

If we are unable to service our indebtedness we may face default on our credit agreements, and there is substantial doubt about our ability to continue as a going concern in that scenario.`

	factors := Extract(riskSection(content), models.FormAnnual)

	if len(factors) != 3 {
		t.Fatalf("expected 3 risk factors, got %d", len(factors))
	}

	if factors[0].Severity != models.RiskMedium {
		t.Errorf("competition risk: expected MEDIUM, got %s", factors[0].Severity)
	}
	if factors[0].Category != "market" {
		t.Errorf("competition risk category: expected market, got %s", factors[0].Category)
	}

	if factors[1].Severity != models.RiskHigh {
		t.Errorf("cyber risk: expected HIGH, got %s", factors[1].Severity)
	}
	if factors[1].Category != "cybersecurity" {
		t.Errorf("cyber risk category: expected cybersecurity, got %s", factors[1].Category)
	}

	if factors[2].Severity != models.RiskCritical {
		t.Errorf("going concern risk: expected CRITICAL, got %s", factors[2].Severity)
	}

	for _, f := range factors {
		if f.Title == "" || f.Summary == "" {
			t.Errorf("factor missing title or summary: %+v", f)
		}
		if strings.Contains(f.Title, "Item 1A") {
			t.Errorf("section heading leaked into title: %q", f.Title)
		}
	}
}

func TestExtract_BulletedList(t *testing.T) {
	content := `Risk Factors
• Our revenue is concentrated among a small number of large customers, and the loss of any one of them would reduce revenue significantly for several quarters.
• Changes in government regulation of our industry could increase compliance costs and restrict how we operate in key jurisdictions around the world.`

	factors := Extract(riskSection(content), models.FormAnnual)

	if len(factors) != 2 {
		t.Fatalf("expected 2 bullet items, got %d", len(factors))
	}
	if strings.HasPrefix(factors[0].Title, "•") {
		t.Errorf("bullet marker not stripped: %q", factors[0].Title)
	}
	if factors[1].Category != "regulatory" {
		t.Errorf("expected regulatory category, got %s", factors[1].Category)
	}
}

func TestExtract_QuarterlyNoMaterialChanges(t *testing.T) {
	content := `Item 1A. Risk Factors
There have been no material changes to our risk factors from those described in our Annual Report on Form 10-K.`

	factors := Extract(riskSection(content), models.FormQuarterly)

	if len(factors) != 1 {
		t.Fatalf("expected single placeholder factor, got %d", len(factors))
	}
	if factors[0].Title != "No Material Changes" {
		t.Errorf("title: got %q", factors[0].Title)
	}
	if factors[0].Severity != models.RiskLow {
		t.Errorf("severity: expected LOW, got %s", factors[0].Severity)
	}
}

func TestExtract_CurrentReportEventSynthesis(t *testing.T) {
	sections := models.SectionMap{
		{Name: section.NameBankruptcy, Content: "Item 1.03 Bankruptcy or Receivership. The Company filed a voluntary petition for relief under Chapter 11."},
		{Name: section.NameMaterialImpairment, Content: "Item 2.06 Material Impairments. The Company concluded a $50 million goodwill impairment."},
		{Name: section.NameOtherEvents, Content: "Item 8.01 Other Events. Routine disclosure."},
	}

	factors := Extract(sections, models.FormCurrent)

	if len(factors) != 2 {
		t.Fatalf("expected 2 synthesized event risks, got %d", len(factors))
	}
	if factors[0].Title != "Bankruptcy or Receivership" || factors[0].Severity != models.RiskCritical {
		t.Errorf("bankruptcy event: got %q / %s", factors[0].Title, factors[0].Severity)
	}
	if factors[1].Title != "Material Impairment" || factors[1].Severity != models.RiskHigh {
		t.Errorf("impairment event: got %q / %s", factors[1].Title, factors[1].Severity)
	}
}

func TestExtract_NoRiskSection(t *testing.T) {
	sections := models.SectionMap{{Name: section.NameBusiness, Content: "We make things."}}
	if factors := Extract(sections, models.FormAnnual); factors != nil {
		t.Errorf("expected nil without a risk section, got %d factors", len(factors))
	}
}
