// Package models defines the shared value types exchanged between pipeline
// stages. Every type here is an immutable value: stages construct new
// instances and never mutate their inputs, which keeps the whole pipeline
// safe for concurrent reuse.
package models

import "strings"

// DocumentFormat identifies how RawDocument.Content should be interpreted.
type DocumentFormat string

const (
	FormatHTML  DocumentFormat = "html"
	FormatPlain DocumentFormat = "text"
)

// FormType identifies the SEC form a document was filed under.
type FormType string

const (
	FormAnnual        FormType = "10-K"    // Annual report
	FormQuarterly     FormType = "10-Q"    // Quarterly report
	FormCurrent       FormType = "8-K"     // Current report
	FormRegistration  FormType = "S-1"     // Registration statement
	FormProxy         FormType = "DEF 14A" // Proxy statement
	FormForeignAnnual FormType = "20-F"    // Foreign private issuer annual report
	FormUnknown       FormType = ""
)

// ParseFormType normalizes a declared form string ("10-K/A", "10-ka", "10q")
// to a known FormType. Amendments map to their base form. Unrecognized input
// yields FormUnknown rather than an error.
func ParseFormType(s string) FormType {
	norm := strings.ToUpper(strings.TrimSpace(s))
	norm = strings.TrimSuffix(norm, "/A")
	norm = strings.ReplaceAll(norm, " ", "")
	switch norm {
	case "10-K", "10K", "10-KA":
		return FormAnnual
	case "10-Q", "10Q", "10-QA":
		return FormQuarterly
	case "8-K", "8K":
		return FormCurrent
	case "S-1", "S1", "S-1A":
		return FormRegistration
	case "DEF14A", "DEFA14A", "PRE14A":
		return FormProxy
	case "20-F", "20F":
		return FormForeignAnnual
	}
	return FormUnknown
}

// RawDocument is the pipeline input: raw filing content plus how to read it.
type RawDocument struct {
	Content          string         `json:"content"`
	Format           DocumentFormat `json:"format"`
	DeclaredFormType string         `json:"declared_form_type,omitempty"`
}

// FilingMetadata carries caller-supplied hints about the filing. All fields
// are optional; the pipeline works from content alone when hints are absent.
type FilingMetadata struct {
	CompanyName string   `json:"company_name,omitempty"`
	FormType    FormType `json:"form_type,omitempty"`
	PeriodHint  string   `json:"period_hint,omitempty"`
}

// Section is a named span of the cleaned document text.
type Section struct {
	Name        string `json:"name"`
	Content     string `json:"content"`
	StartOffset int    `json:"start_offset"`
	EndOffset   int    `json:"end_offset"`
}

// FallbackSectionName is used when no headers are recognized in a document.
const FallbackSectionName = "Full Document"

// SectionMap is an ordered list of non-overlapping sections, sorted by source
// position. A document with no recognized headers yields exactly one entry
// named FallbackSectionName.
type SectionMap []Section

// Get returns the first section with the given name, or nil.
func (m SectionMap) Get(name string) *Section {
	for i := range m {
		if strings.EqualFold(m[i].Name, name) {
			return &m[i]
		}
	}
	return nil
}

// Names returns section names in source order.
func (m SectionMap) Names() []string {
	names := make([]string, len(m))
	for i := range m {
		names[i] = m[i].Name
	}
	return names
}

// FiscalPeriod is a resolved quarter/year pair for quarterly filings. Both
// fields stay nil when the document does not state them; the segmenter never
// guesses.
type FiscalPeriod struct {
	Quarter *int `json:"quarter,omitempty"`
	Year    *int `json:"year,omitempty"`
}

// StatementType identifies which financial statement a table belongs to.
type StatementType string

const (
	StatementIncome   StatementType = "income_statement"
	StatementBalance  StatementType = "balance_sheet"
	StatementCashFlow StatementType = "cash_flow"
	StatementEquity   StatementType = "equity"
)

// UnitScale is the reporting unit declared by a statement table.
type UnitScale string

const (
	UnitDollars   UnitScale = "dollars"
	UnitThousands UnitScale = "thousands"
	UnitMillions  UnitScale = "millions"
	UnitBillions  UnitScale = "billions"
)

// Factor returns the multiplier that converts a reported figure at this scale
// to whole currency units.
func (u UnitScale) Factor() float64 {
	switch u {
	case UnitThousands:
		return 1e3
	case UnitMillions:
		return 1e6
	case UnitBillions:
		return 1e9
	default:
		return 1
	}
}

// TableRow is one parsed statement row. Values align 1:1 with the parent
// table's Periods; a nil entry means "not reported", which is distinct from a
// reported zero.
type TableRow struct {
	Label       string            `json:"label"`
	Values      []*float64        `json:"values"`
	IsSubtotal  bool              `json:"is_subtotal,omitempty"`
	IsTotal     bool              `json:"is_total,omitempty"`
	IndentLevel int               `json:"indent_level,omitempty"`
	Category    CanonicalCategory `json:"category,omitempty"`
}

// ParsedTable is a located and parsed statement table. Periods are ordered
// newest first.
type ParsedTable struct {
	StatementType StatementType `json:"statement_type"`
	Title         string        `json:"title"`
	Periods       []string      `json:"periods"`
	Rows          []TableRow    `json:"rows"`
	Unit          UnitScale     `json:"unit"`
	Currency      string        `json:"currency,omitempty"`
}

// CanonicalCategory is the closed set of normalized line-item types that
// differently-labeled source rows map onto.
type CanonicalCategory string

const (
	CategoryUnknown CanonicalCategory = ""

	CategoryRevenue         CanonicalCategory = "revenue"
	CategoryCostOfRevenue   CanonicalCategory = "cost_of_revenue"
	CategoryGrossProfit     CanonicalCategory = "gross_profit"
	CategoryOperatingIncome CanonicalCategory = "operating_income"
	CategoryNetIncome       CanonicalCategory = "net_income"
	CategoryEBITDA          CanonicalCategory = "ebitda"
	CategoryRDExpense       CanonicalCategory = "rd_expense"
	CategorySGAExpense      CanonicalCategory = "sga_expense"
	CategoryInterestExpense CanonicalCategory = "interest_expense"
	CategoryIncomeTax       CanonicalCategory = "income_tax"
	CategoryEPSBasic        CanonicalCategory = "eps_basic"
	CategoryEPSDiluted      CanonicalCategory = "eps_diluted"

	CategoryTotalAssets        CanonicalCategory = "total_assets"
	CategoryCurrentAssets      CanonicalCategory = "current_assets"
	CategoryCash               CanonicalCategory = "cash"
	CategoryReceivables        CanonicalCategory = "receivables"
	CategoryInventory          CanonicalCategory = "inventory"
	CategoryTotalLiabilities   CanonicalCategory = "total_liabilities"
	CategoryCurrentLiabilities CanonicalCategory = "current_liabilities"
	CategoryLongTermDebt       CanonicalCategory = "long_term_debt"
	CategoryPayables           CanonicalCategory = "payables"
	CategoryTotalEquity        CanonicalCategory = "total_equity"
	CategoryRetainedEarnings   CanonicalCategory = "retained_earnings"

	CategoryOperatingCashFlow CanonicalCategory = "operating_cash_flow"
	CategoryInvestingCashFlow CanonicalCategory = "investing_cash_flow"
	CategoryFinancingCashFlow CanonicalCategory = "financing_cash_flow"
	CategoryCapEx             CanonicalCategory = "capex"
	CategoryFreeCashFlow      CanonicalCategory = "free_cash_flow"
)

// CoreCategories are the five categories that determine DataQuality grading.
var CoreCategories = []CanonicalCategory{
	CategoryRevenue,
	CategoryNetIncome,
	CategoryTotalAssets,
	CategoryTotalLiabilities,
	CategoryTotalEquity,
}

// IsPerShare reports whether values in this category are per-share figures
// that must not be rescaled by the table's unit.
func (c CanonicalCategory) IsPerShare() bool {
	return c == CategoryEPSBasic || c == CategoryEPSDiluted
}
