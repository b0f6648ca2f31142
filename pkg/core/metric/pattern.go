package metric

import (
	"regexp"
	"strconv"
	"strings"

	"filinglens/pkg/models"
)

// PatternConfidence is the fixed confidence of regex-derived metrics. Free
// text is the least reliable source: it loses to any table cell or
// structured fact for the same category.
const PatternConfidence = 0.7

// patternRule is one narrative extraction pattern. Each regex captures a
// number group and an optional unit-word group.
type patternRule struct {
	name     string
	category models.CanonicalCategory
	re       *regexp.Regexp
	perShare bool
	// exclude rejects matches whose full text contains this substring. RE2
	// has no lookahead, so "total liabilities" vs "total liabilities and
	// stockholders' equity" is told apart here instead.
	exclude string
}

// numExpr captures: optional paren before/after the $ sign (negative
// notation), the numeral, and an optional unit word.
const numExpr = `(\()?\s?\$?\s?(\()?([\d,]+(?:\.\d+)?)\)?\s*(million|billion|thousand)?`

func pr(name string, cat models.CanonicalCategory, labelExpr string) patternRule {
	return patternRule{
		name:     name,
		category: cat,
		re:       regexp.MustCompile(`(?i)` + labelExpr + `[^\n\d%]{0,40}?` + numExpr),
	}
}

// patternRules are tried in order; the first match per category wins.
// Specific phrasings come before loose ones for the usual reason: "total
// revenue" must not be consumed by a generic "revenue" rule with a worse
// capture.
var patternRules = []patternRule{
	pr("Total Revenue", models.CategoryRevenue, `total\s+(?:net\s+)?revenues?`),
	pr("Revenue", models.CategoryRevenue, `(?:net\s+)?revenues?`),
	pr("Net Sales", models.CategoryRevenue, `(?:total\s+)?net\s+sales`),
	pr("Cost of Revenue", models.CategoryCostOfRevenue, `cost\s+of\s+(?:revenues?|sales|goods\s+sold)`),
	pr("Gross Profit", models.CategoryGrossProfit, `gross\s+profit`),
	pr("Operating Income", models.CategoryOperatingIncome, `(?:operating\s+income|income\s+from\s+operations)`),
	pr("Net Income", models.CategoryNetIncome, `net\s+(?:income|loss|earnings)`),
	pr("EBITDA", models.CategoryEBITDA, `(?:adjusted\s+)?ebitda`),
	pr("Total Assets", models.CategoryTotalAssets, `total\s+assets`),
	{
		name:     "Total Liabilities",
		category: models.CategoryTotalLiabilities,
		re:       regexp.MustCompile(`(?i)total\s+liabilities[^\n\d%]{0,40}?` + numExpr),
		exclude:  "liabilities and",
	},
	pr("Total Equity", models.CategoryTotalEquity, `total\s+(?:stockholders'?|shareholders'?)?\s*equity`),
	pr("Cash and Equivalents", models.CategoryCash, `cash\s+and\s+cash\s+equivalents`),
	pr("Operating Cash Flow", models.CategoryOperatingCashFlow, `net\s+cash\s+provided\s+by\s+operating\s+activities`),
	pr("Capital Expenditures", models.CategoryCapEx, `capital\s+expenditures`),
	{
		name:     "EPS Basic",
		category: models.CategoryEPSBasic,
		re:       regexp.MustCompile(`(?i)basic\s+(?:net\s+income|earnings|loss)\s+per\s+share[^\n\d%]{0,40}?` + numExpr),
		perShare: true,
	},
	{
		name:     "EPS Diluted",
		category: models.CategoryEPSDiluted,
		re:       regexp.MustCompile(`(?i)diluted\s+(?:net\s+income|earnings|loss)\s+per\s+share[^\n\d%]{0,40}?` + numExpr),
		perShare: true,
	},
}

var unitWordFactors = map[string]float64{
	"thousand": 1e3,
	"million":  1e6,
	"billion":  1e9,
}

// ExtractPatterns scans narrative text for metric mentions. One metric per
// category at most, confidence PatternConfidence.
func ExtractPatterns(cleanText string) []models.ExtendedFinancialMetric {
	seen := make(map[models.CanonicalCategory]bool)
	var metrics []models.ExtendedFinancialMetric

	for _, rule := range patternRules {
		if seen[rule.category] {
			continue
		}
		m := rule.re.FindStringSubmatch(cleanText)
		if m == nil {
			continue
		}
		if rule.exclude != "" && strings.Contains(strings.ToLower(m[0]), rule.exclude) {
			continue
		}

		numStr := strings.ReplaceAll(m[3], ",", "")
		val, err := strconv.ParseFloat(numStr, 64)
		if err != nil {
			continue
		}
		if !rule.perShare {
			if factor, ok := unitWordFactors[strings.ToLower(m[4])]; ok {
				val *= factor
			}
		}
		if m[1] != "" || m[2] != "" {
			val = -val
		}

		seen[rule.category] = true
		metrics = append(metrics, models.ExtendedFinancialMetric{
			Name:           rule.name,
			FormattedValue: FormatAmount(val, rule.category),
			RawValue:       &val,
			Unit:           models.UnitDollars,
			Category:       rule.category,
			Source:         models.SourcePattern,
			Confidence:     PatternConfidence,
			Context:        strings.TrimSpace(m[0]),
		})
	}
	return metrics
}
