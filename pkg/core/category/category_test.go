package category

import (
	"testing"

	"filinglens/pkg/models"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		label string
		want  models.CanonicalCategory
	}{
		{"Total net sales", models.CategoryRevenue},
		{"Revenue", models.CategoryRevenue},
		{"Total revenues:", models.CategoryRevenue},
		{"Cost of sales", models.CategoryCostOfRevenue},
		{"Cost of goods sold", models.CategoryCostOfRevenue},
		{"Gross profit", models.CategoryGrossProfit},
		{"Operating income (loss)", models.CategoryOperatingIncome},
		{"Income from operations", models.CategoryOperatingIncome},
		{"Net income", models.CategoryNetIncome},
		{"Net loss", models.CategoryNetIncome},
		{"Research and development", models.CategoryRDExpense},
		{"Selling, general and administrative", models.CategorySGAExpense},
		{"Interest expense, net", models.CategoryInterestExpense},
		{"Provision for income taxes", models.CategoryIncomeTax},
		{"Basic earnings per share", models.CategoryEPSBasic},
		{"Diluted earnings per share", models.CategoryEPSDiluted},
		{"Total assets", models.CategoryTotalAssets},
		{"Total current assets", models.CategoryCurrentAssets},
		{"Cash and cash equivalents", models.CategoryCash},
		{"Accounts receivable, net", models.CategoryReceivables},
		{"Inventories", models.CategoryInventory},
		{"Total liabilities", models.CategoryTotalLiabilities},
		{"Total current liabilities", models.CategoryCurrentLiabilities},
		{"Long-term debt", models.CategoryLongTermDebt},
		{"Accounts payable", models.CategoryPayables},
		{"Total stockholders’ equity", models.CategoryTotalEquity}, // curly apostrophe
		{"Total shareholders' equity", models.CategoryTotalEquity},
		{"Retained earnings (accumulated deficit)", models.CategoryRetainedEarnings},
		{"Net cash provided by operating activities", models.CategoryOperatingCashFlow},
		{"Net cash used in investing activities", models.CategoryInvestingCashFlow},
		{"Purchases of property and equipment", models.CategoryCapEx},
		{"Free cash flow", models.CategoryFreeCashFlow},

		// Deliberately uncategorized labels.
		{"Total liabilities and stockholders' equity", models.CategoryUnknown},
		{"Total operating expenses", models.CategoryUnknown},
		{"Weighted average shares outstanding", models.CategoryUnknown},
		{"", models.CategoryUnknown},
	}

	for _, tc := range tests {
		if got := Categorize(tc.label); got != tc.want {
			t.Errorf("Categorize(%q): expected %q, got %q", tc.label, tc.want, got)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Total   Revenue: ", "total revenue"},
		{"Net income*", "net income"},
		{"Stockholders’ equity", "stockholders' equity"},
	}
	for _, tc := range tests {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestTotalAndSubtotalDetection(t *testing.T) {
	if !IsTotalLabel("Total assets") {
		t.Error("Total assets should be a total row")
	}
	if IsTotalLabel("Subtotal of expenses") {
		t.Error("subtotal rows are not grand totals")
	}
	if !IsSubtotalLabel("Gross profit") {
		t.Error("Gross profit should be a subtotal row")
	}
	if !IsSubtotalLabel("Income before income taxes") {
		t.Error("income before taxes should be a subtotal row")
	}
	if IsSubtotalLabel("Total revenue") {
		t.Error("a total row must not also be a subtotal")
	}
}

func TestIndentLevel(t *testing.T) {
	tests := []struct {
		label string
		want  int
	}{
		{"Revenue", 0},
		{"  Product revenue", 1},
		{"    Cash", 2},
		{"            Deep item", 4}, // capped
	}
	for _, tc := range tests {
		if got := IndentLevel(tc.label); got != tc.want {
			t.Errorf("IndentLevel(%q): expected %d, got %d", tc.label, tc.want, got)
		}
	}
}
