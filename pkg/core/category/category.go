// Package category maps free-text statement row labels onto the closed
// canonical category set.
//
// Matching is two-tier and strictly ordered: the exact-match table first,
// then the contains-rule table. Order matters within each tier — "total
// stockholders' equity" must resolve before a looser "total" or "equity"
// rule, and "total revenue" before plain "revenue". Rules live in one place
// here rather than scattered string comparisons at call sites.
package category

import (
	"strings"

	"filinglens/pkg/models"
)

type rule struct {
	match    string
	category models.CanonicalCategory
}

// exactRules are compared against the full normalized label.
var exactRules = []rule{
	{"total revenue", models.CategoryRevenue},
	{"total revenues", models.CategoryRevenue},
	{"total net revenue", models.CategoryRevenue},
	{"total net revenues", models.CategoryRevenue},
	{"net revenue", models.CategoryRevenue},
	{"net revenues", models.CategoryRevenue},
	{"net sales", models.CategoryRevenue},
	{"total net sales", models.CategoryRevenue},
	{"revenue", models.CategoryRevenue},
	{"revenues", models.CategoryRevenue},
	{"sales", models.CategoryRevenue},

	{"cost of revenue", models.CategoryCostOfRevenue},
	{"cost of revenues", models.CategoryCostOfRevenue},
	{"cost of sales", models.CategoryCostOfRevenue},
	{"cost of goods sold", models.CategoryCostOfRevenue},
	{"cost of products sold", models.CategoryCostOfRevenue},

	{"gross profit", models.CategoryGrossProfit},
	{"gross margin", models.CategoryGrossProfit},

	{"operating income", models.CategoryOperatingIncome},
	{"income from operations", models.CategoryOperatingIncome},
	{"operating profit", models.CategoryOperatingIncome},
	{"loss from operations", models.CategoryOperatingIncome},
	{"operating income (loss)", models.CategoryOperatingIncome},

	{"net income", models.CategoryNetIncome},
	{"net loss", models.CategoryNetIncome},
	{"net income (loss)", models.CategoryNetIncome},
	{"net earnings", models.CategoryNetIncome},
	{"net income attributable to common stockholders", models.CategoryNetIncome},

	{"ebitda", models.CategoryEBITDA},
	{"adjusted ebitda", models.CategoryEBITDA},

	{"research and development", models.CategoryRDExpense},
	{"research and development expenses", models.CategoryRDExpense},
	{"research and development expense", models.CategoryRDExpense},

	{"selling, general and administrative", models.CategorySGAExpense},
	{"selling, general and administrative expenses", models.CategorySGAExpense},
	{"general and administrative", models.CategorySGAExpense},

	{"interest expense", models.CategoryInterestExpense},
	{"interest expense, net", models.CategoryInterestExpense},

	{"provision for income taxes", models.CategoryIncomeTax},
	{"income tax expense", models.CategoryIncomeTax},
	{"income tax provision", models.CategoryIncomeTax},

	{"basic earnings per share", models.CategoryEPSBasic},
	{"basic net income per share", models.CategoryEPSBasic},
	{"earnings per share, basic", models.CategoryEPSBasic},
	{"basic", models.CategoryEPSBasic},
	{"diluted earnings per share", models.CategoryEPSDiluted},
	{"diluted net income per share", models.CategoryEPSDiluted},
	{"earnings per share, diluted", models.CategoryEPSDiluted},
	{"diluted", models.CategoryEPSDiluted},

	{"total assets", models.CategoryTotalAssets},
	{"total current assets", models.CategoryCurrentAssets},
	{"cash and cash equivalents", models.CategoryCash},
	{"cash and equivalents", models.CategoryCash},
	{"cash, cash equivalents and restricted cash", models.CategoryCash},
	{"accounts receivable, net", models.CategoryReceivables},
	{"accounts receivable", models.CategoryReceivables},
	{"receivables", models.CategoryReceivables},
	{"inventories", models.CategoryInventory},
	{"inventory", models.CategoryInventory},
	{"inventories, net", models.CategoryInventory},

	{"total liabilities", models.CategoryTotalLiabilities},
	{"total current liabilities", models.CategoryCurrentLiabilities},
	{"long-term debt", models.CategoryLongTermDebt},
	{"long term debt", models.CategoryLongTermDebt},
	{"long-term debt, net of current portion", models.CategoryLongTermDebt},
	{"accounts payable", models.CategoryPayables},

	{"total stockholders' equity", models.CategoryTotalEquity},
	{"total stockholders equity", models.CategoryTotalEquity},
	{"total shareholders' equity", models.CategoryTotalEquity},
	{"total shareholders equity", models.CategoryTotalEquity},
	{"total equity", models.CategoryTotalEquity},
	{"retained earnings", models.CategoryRetainedEarnings},
	{"retained earnings (accumulated deficit)", models.CategoryRetainedEarnings},
	{"accumulated deficit", models.CategoryRetainedEarnings},

	{"net cash provided by operating activities", models.CategoryOperatingCashFlow},
	{"net cash used in operating activities", models.CategoryOperatingCashFlow},
	{"net cash provided by (used in) operating activities", models.CategoryOperatingCashFlow},
	{"net cash provided by investing activities", models.CategoryInvestingCashFlow},
	{"net cash used in investing activities", models.CategoryInvestingCashFlow},
	{"net cash provided by (used in) investing activities", models.CategoryInvestingCashFlow},
	{"net cash provided by financing activities", models.CategoryFinancingCashFlow},
	{"net cash used in financing activities", models.CategoryFinancingCashFlow},
	{"net cash provided by (used in) financing activities", models.CategoryFinancingCashFlow},
	{"purchases of property and equipment", models.CategoryCapEx},
	{"purchases of property, plant and equipment", models.CategoryCapEx},
	{"capital expenditures", models.CategoryCapEx},
	{"free cash flow", models.CategoryFreeCashFlow},
}

// containsRules are tried in order after all exact rules miss. More specific
// phrases sit above looser ones: "stockholders' equity" resolves before a
// bare "total liabilities" substring could swallow "total liabilities and
// stockholders' equity".
var containsRules = []rule{
	{"liabilities and stockholders", models.CategoryUnknown}, // combined total row, deliberately uncategorized
	{"liabilities and shareholders", models.CategoryUnknown},

	{"total stockholders", models.CategoryTotalEquity},
	{"total shareholders", models.CategoryTotalEquity},
	{"total current assets", models.CategoryCurrentAssets},
	{"total current liabilities", models.CategoryCurrentLiabilities},
	{"total assets", models.CategoryTotalAssets},
	{"total liabilities", models.CategoryTotalLiabilities},
	{"retained earnings", models.CategoryRetainedEarnings},
	{"accumulated deficit", models.CategoryRetainedEarnings},

	{"cost of revenue", models.CategoryCostOfRevenue},
	{"cost of sales", models.CategoryCostOfRevenue},
	{"cost of goods", models.CategoryCostOfRevenue},
	{"gross profit", models.CategoryGrossProfit},
	{"operating income", models.CategoryOperatingIncome},
	{"income from operations", models.CategoryOperatingIncome},
	{"operating expenses", models.CategoryUnknown}, // expense subtotal, not a canonical item
	{"net income", models.CategoryNetIncome},
	{"net loss", models.CategoryNetIncome},
	{"net earnings", models.CategoryNetIncome},
	{"ebitda", models.CategoryEBITDA},
	{"research and development", models.CategoryRDExpense},
	{"selling, general", models.CategorySGAExpense},
	{"general and administrative", models.CategorySGAExpense},
	{"interest expense", models.CategoryInterestExpense},
	{"income tax", models.CategoryIncomeTax},
	{"per share, basic", models.CategoryEPSBasic},
	{"per share - basic", models.CategoryEPSBasic},
	{"per share, diluted", models.CategoryEPSDiluted},
	{"per share - diluted", models.CategoryEPSDiluted},

	{"cash and cash equivalents", models.CategoryCash},
	{"cash equivalents", models.CategoryCash},
	{"accounts receivable", models.CategoryReceivables},
	{"inventor", models.CategoryInventory},
	{"long-term debt", models.CategoryLongTermDebt},
	{"long term debt", models.CategoryLongTermDebt},
	{"accounts payable", models.CategoryPayables},

	{"operating activities", models.CategoryOperatingCashFlow},
	{"investing activities", models.CategoryInvestingCashFlow},
	{"financing activities", models.CategoryFinancingCashFlow},
	{"capital expenditure", models.CategoryCapEx},
	{"property, plant and equipment", models.CategoryCapEx},
	{"free cash flow", models.CategoryFreeCashFlow},

	{"revenue", models.CategoryRevenue},
	{"net sales", models.CategoryRevenue},
}

// Categorize maps a row label to its canonical category, or CategoryUnknown
// when no rule applies. Uncategorized rows stay in the output tables but are
// excluded from ratio computation.
func Categorize(label string) models.CanonicalCategory {
	norm := Normalize(label)
	if norm == "" {
		return models.CategoryUnknown
	}

	for _, r := range exactRules {
		if norm == r.match {
			return r.category
		}
	}
	for _, r := range containsRules {
		if strings.Contains(norm, r.match) {
			return r.category
		}
	}
	return models.CategoryUnknown
}

// Normalize lower-cases, trims, and collapses the punctuation variants that
// otherwise defeat exact matching (curly apostrophes, trailing colons,
// footnote markers).
func Normalize(label string) string {
	norm := strings.ToLower(strings.TrimSpace(label))
	norm = strings.ReplaceAll(norm, "’", "'")
	norm = strings.TrimRight(norm, ":.*† ")
	norm = strings.Join(strings.Fields(norm), " ")
	return norm
}

// IsTotalLabel reports whether a label names a grand-total row.
func IsTotalLabel(label string) bool {
	norm := Normalize(label)
	return strings.HasPrefix(norm, "total ") || norm == "total"
}

// IsSubtotalLabel reports whether a label names a subtotal row (totals of a
// nested group, or computed aggregates like gross profit).
func IsSubtotalLabel(label string) bool {
	norm := Normalize(label)
	if IsTotalLabel(label) {
		return false
	}
	switch {
	case strings.Contains(norm, "subtotal"),
		norm == "gross profit",
		strings.Contains(norm, "operating income"),
		strings.Contains(norm, "income from operations"),
		strings.Contains(norm, "income before"):
		return true
	}
	return false
}

// IndentLevel estimates a row's nesting depth from leading whitespace in the
// original (pre-trim) label. Two spaces per level, capped at 4.
func IndentLevel(rawLabel string) int {
	spaces := 0
	for _, r := range rawLabel {
		if r == ' ' {
			spaces++
		} else if r == '\t' {
			spaces += 2
		} else {
			break
		}
	}
	level := spaces / 2
	if level > 4 {
		level = 4
	}
	return level
}
