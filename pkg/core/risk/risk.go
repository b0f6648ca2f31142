// Package risk turns located risk-factor sections into discrete,
// severity-tagged risk items.
//
// Extraction is layered: list markers first, blank-line paragraphs second.
// Quarterly reports get the "no material changes" boilerplate special case,
// and current reports synthesize event risks straight from section presence
// since 8-K items carry their meaning in the item number itself.
package risk

import (
	"regexp"
	"strings"

	"filinglens/pkg/core/section"
	"filinglens/pkg/models"
)

// minItemLength filters paragraph fragments too short to be a real risk
// factor.
const minItemLength = 100

// maxItems bounds the extracted list; beyond this the section is almost
// certainly being split on the wrong boundary.
const maxItems = 40

var (
	reBullet    = regexp.MustCompile(`(?m)^\s*(?:[•·▪‣*]|\-\s|\d{1,2}[.)]\s)`)
	reNoChanges = regexp.MustCompile(`(?i)(?:there\s+(?:have|has)\s+been\s+)?no\s+material\s+changes?\s+(?:to|in|from)\s+(?:our|the)\s+risk\s+factors`)
)

// Extract produces risk factors for a segmented filing.
func Extract(sections models.SectionMap, form models.FormType) []models.RiskFactor {
	if form == models.FormCurrent {
		return extractEventRisks(sections)
	}

	sec := sections.Get(section.NameRiskFactors)
	if sec == nil {
		return nil
	}

	if form == models.FormQuarterly && reNoChanges.MatchString(sec.Content) {
		return []models.RiskFactor{{
			Title:    "No Material Changes",
			Summary:  "The company reports no material changes to its previously disclosed risk factors.",
			Category: "disclosure",
			Severity: models.RiskLow,
		}}
	}

	items := splitItems(sec.Content)
	factors := make([]models.RiskFactor, 0, len(items))
	for _, item := range items {
		factors = append(factors, buildFactor(item))
		if len(factors) >= maxItems {
			break
		}
	}
	return factors
}

// splitItems slices a risk section into candidate items: bulleted/numbered
// list entries when the section uses them, blank-line paragraphs otherwise.
func splitItems(content string) []string {
	body := stripHeading(content)

	if locs := reBullet.FindAllStringIndex(body, -1); len(locs) >= 2 {
		var items []string
		for i, loc := range locs {
			end := len(body)
			if i+1 < len(locs) {
				end = locs[i+1][0]
			}
			item := strings.TrimSpace(body[loc[0]:end])
			item = strings.TrimLeft(item, "•·▪‣*- \t")
			if len(item) >= minItemLength {
				items = append(items, item)
			}
		}
		if len(items) > 0 {
			return items
		}
	}

	var items []string
	for _, para := range strings.Split(body, "\n\n") {
		para = strings.TrimSpace(para)
		if len(para) >= minItemLength {
			items = append(items, para)
		}
	}
	return items
}

// stripHeading drops the section's own header line so it does not become the
// first risk item's title.
func stripHeading(content string) string {
	if idx := strings.Index(content, "\n"); idx >= 0 {
		first := strings.ToLower(content[:idx])
		if strings.Contains(first, "risk factors") || strings.Contains(first, "item 1a") {
			return content[idx+1:]
		}
	}
	return content
}

func buildFactor(item string) models.RiskFactor {
	return models.RiskFactor{
		Title:    titleOf(item),
		Summary:  summaryOf(item),
		Category: categoryOf(item),
		Severity: severityOf(item),
	}
}

// titleOf takes the first sentence or line, truncated at a word boundary.
func titleOf(item string) string {
	title := item
	if idx := strings.IndexAny(item, "\n"); idx > 0 {
		title = item[:idx]
	}
	if idx := strings.Index(title, ". "); idx > 20 {
		title = title[:idx]
	}
	title = strings.TrimSpace(title)
	if len(title) > 120 {
		cut := strings.LastIndex(title[:120], " ")
		if cut < 60 {
			cut = 120
		}
		title = title[:cut] + "…"
	}
	return title
}

func summaryOf(item string) string {
	summary := strings.Join(strings.Fields(item), " ")
	if len(summary) > 400 {
		cut := strings.LastIndex(summary[:400], " ")
		if cut < 200 {
			cut = 400
		}
		summary = summary[:cut] + "…"
	}
	return summary
}

var severityKeywords = []struct {
	severity models.RiskSeverity
	words    []string
}{
	{models.RiskCritical, []string{
		"bankruptcy", "going concern", "substantial doubt", "insolvency",
		"default on our", "delisting", "delisted",
	}},
	{models.RiskHigh, []string{
		"material adverse", "materially and adversely", "significant losses",
		"data breach", "cyberattack", "cyber-attack", "litigation",
		"impairment", "covenant",
	}},
	{models.RiskMedium, []string{
		"competition", "competitive", "regulatory", "regulation",
		"depend on", "dependent on", "fluctuat", "volatility",
		"supply chain", "key personnel",
	}},
}

func severityOf(item string) models.RiskSeverity {
	lower := strings.ToLower(item)
	for _, band := range severityKeywords {
		for _, w := range band.words {
			if strings.Contains(lower, w) {
				return band.severity
			}
		}
	}
	return models.RiskLow
}

var categoryKeywords = []struct {
	category string
	words    []string
}{
	{"financial", []string{"liquidity", "indebtedness", "debt", "capital", "credit", "going concern", "impairment"}},
	{"cybersecurity", []string{"cyber", "data breach", "information security"}},
	{"legal", []string{"litigation", "lawsuit", "legal proceedings", "intellectual property"}},
	{"regulatory", []string{"regulat", "compliance", "government", "tax law"}},
	{"market", []string{"competition", "competitive", "demand", "economic conditions", "interest rate"}},
	{"operational", []string{"supply chain", "manufactur", "personnel", "operations", "systems"}},
}

func categoryOf(item string) string {
	lower := strings.ToLower(item)
	for _, band := range categoryKeywords {
		for _, w := range band.words {
			if strings.Contains(lower, w) {
				return band.category
			}
		}
	}
	return "general"
}

// eventRisks maps 8-K section names to synthesized risk items. These derive
// from section presence alone: filing the item is itself the disclosure.
var eventRisks = []struct {
	sectionName string
	title       string
	category    string
	severity    models.RiskSeverity
}{
	{section.NameBankruptcy, "Bankruptcy or Receivership", "financial", models.RiskCritical},
	{section.NameDebtAcceleration, "Triggering Event Accelerating a Financial Obligation", "financial", models.RiskHigh},
	{section.NameMaterialImpairment, "Material Impairment", "financial", models.RiskHigh},
	{section.NameDebtObligation, "Creation of a Direct Financial Obligation", "financial", models.RiskMedium},
}

func extractEventRisks(sections models.SectionMap) []models.RiskFactor {
	var factors []models.RiskFactor
	for _, ev := range eventRisks {
		sec := sections.Get(ev.sectionName)
		if sec == nil {
			continue
		}
		factors = append(factors, models.RiskFactor{
			Title:    ev.title,
			Summary:  summaryOf(sec.Content),
			Category: ev.category,
			Severity: ev.severity,
		})
	}
	return factors
}
