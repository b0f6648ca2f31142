package table

import (
	"math"
	"strings"
	"testing"

	"filinglens/pkg/models"
)

const incomeStatementText = `CONSOLIDATED STATEMENTS OF OPERATIONS
(in millions, except per share amounts)
Year Ended | December 31, 2024 | December 31, 2023
Revenue | $ | 1,000 | 900
Cost of revenue | 600 | 550
Gross profit | 400 | 350
Operating expenses | 250 | 240
Operating income | 150 | 110
Net income | $ | 120 | 90
Basic earnings per share | 2.50 | 1.95

Notes to consolidated financial statements
Additional disclosure text follows here.`

func TestParseFinancialTables_LineBased(t *testing.T) {
	doc := models.RawDocument{Content: incomeStatementText, Format: models.FormatPlain}

	tables := ParseFinancialTables(doc, incomeStatementText)

	if len(tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(tables))
	}
	tbl := tables[0]
	if tbl.StatementType != models.StatementIncome {
		t.Errorf("expected income statement, got %s", tbl.StatementType)
	}
	if tbl.Unit != models.UnitMillions {
		t.Errorf("expected millions unit, got %s", tbl.Unit)
	}
	if tbl.Currency != "USD" {
		t.Errorf("expected USD, got %s", tbl.Currency)
	}

	if len(tbl.Periods) != 2 {
		t.Fatalf("expected 2 periods, got %d: %v", len(tbl.Periods), tbl.Periods)
	}
	if tbl.Periods[0] != "December 31, 2024" {
		t.Errorf("periods must be newest first, got %v", tbl.Periods)
	}

	// Row/period alignment invariant.
	for _, row := range tbl.Rows {
		if len(row.Values) != len(tbl.Periods) {
			t.Errorf("row %q has %d values for %d periods", row.Label, len(row.Values), len(tbl.Periods))
		}
	}

	rev := findRow(t, tbl.Rows, "Revenue")
	if rev.Values[0] == nil || *rev.Values[0] != 1000 {
		t.Errorf("revenue current value: expected 1000, got %v", rev.Values[0])
	}
	if rev.Values[1] == nil || *rev.Values[1] != 900 {
		t.Errorf("revenue prior value: expected 900, got %v", rev.Values[1])
	}
	if rev.Category != models.CategoryRevenue {
		t.Errorf("revenue row category: got %s", rev.Category)
	}

	gp := findRow(t, tbl.Rows, "Gross profit")
	if !gp.IsSubtotal {
		t.Error("gross profit should be flagged as subtotal")
	}

	eps := findRow(t, tbl.Rows, "Basic earnings per share")
	if eps.Category != models.CategoryEPSBasic {
		t.Errorf("eps row category: got %s", eps.Category)
	}
	if eps.Values[0] == nil || math.Abs(*eps.Values[0]-2.5) > 1e-9 {
		t.Errorf("eps value: expected 2.50, got %v", eps.Values[0])
	}

	// The section must stop at the notes marker.
	for _, row := range tbl.Rows {
		if strings.Contains(row.Label, "disclosure") {
			t.Errorf("section span leaked past the notes marker: %q", row.Label)
		}
	}
}

func TestParseFinancialTables_DashMeansNotReported(t *testing.T) {
	text := `CONSOLIDATED BALANCE SHEETS
December 31, 2024 | December 31, 2023
Total assets | 310 | 290
Goodwill | — | 45
Total liabilities | 120 | 115`
	doc := models.RawDocument{Content: text, Format: models.FormatPlain}

	tables := ParseFinancialTables(doc, text)
	if len(tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(tables))
	}

	gw := findRow(t, tables[0].Rows, "Goodwill")
	if gw.Values[0] != nil {
		t.Errorf("dash cell must be nil, got %v", *gw.Values[0])
	}
	if gw.Values[1] == nil || *gw.Values[1] != 45 {
		t.Errorf("prior goodwill: expected 45, got %v", gw.Values[1])
	}
}

func TestParseFinancialTables_SynthesizesPeriods(t *testing.T) {
	// No dates or years anywhere in the section header.
	text := `BALANCE SHEETS
Total assets | 310 | 290
Cash and cash equivalents | 80 | 75
Total liabilities | 120 | 115`
	doc := models.RawDocument{Content: text, Format: models.FormatPlain}

	tables := ParseFinancialTables(doc, text)
	if len(tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(tables))
	}
	tbl := tables[0]

	if len(tbl.Periods) != 2 {
		t.Fatalf("expected 2 synthesized periods, got %v", tbl.Periods)
	}
	if tbl.Periods[0] != "Period 1" || tbl.Periods[1] != "Period 2" {
		t.Errorf("expected generic labels, got %v", tbl.Periods)
	}
	for _, row := range tbl.Rows {
		if len(row.Values) != 2 {
			t.Errorf("row %q not realigned to synthesized periods", row.Label)
		}
	}
}

func TestParseFinancialTables_SkipsTOCEcho(t *testing.T) {
	// The heading appears first in a table of contents with no numbers nearby,
	// then again as the real statement.
	text := `INDEX
Consolidated Statements of Operations
Consolidated Balance Sheets
Notes to Consolidated Financial Statements

` + incomeStatementText
	doc := models.RawDocument{Content: text, Format: models.FormatPlain}

	tables := ParseFinancialTables(doc, text)

	var income *models.ParsedTable
	for i := range tables {
		if tables[i].StatementType == models.StatementIncome {
			income = &tables[i]
		}
	}
	if income == nil {
		t.Fatal("income statement not located")
	}
	if len(income.Rows) == 0 {
		t.Fatal("TOC echo was parsed instead of the real statement")
	}
	if findRow(t, income.Rows, "Revenue").Values[0] == nil {
		t.Error("real statement rows missing")
	}
}

func TestParseFinancialTables_MultibyteCaseFoldPrefix(t *testing.T) {
	// U+0130 lowercases to a longer byte sequence. Heading offsets found in
	// a case-folded copy must still index the original text correctly.
	text := strings.Repeat("İ", 3000) + "\n" + incomeStatementText
	doc := models.RawDocument{Content: text, Format: models.FormatPlain}

	tables := ParseFinancialTables(doc, text)

	if len(tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(tables))
	}
	tbl := tables[0]
	if tbl.Title != "CONSOLIDATED STATEMENTS OF OPERATIONS" {
		t.Errorf("title must preserve the original casing: %q", tbl.Title)
	}
	rev := findRow(t, tbl.Rows, "Revenue")
	if rev.Values[0] == nil || *rev.Values[0] != 1000 {
		t.Errorf("revenue: expected 1000, got %v", rev.Values[0])
	}
}

func TestParseDelimitedLine_EmptyCellSemantics(t *testing.T) {
	// An empty cell between two parsed values is an unreported column and
	// holds its position; edge empties and $ columns are padding.
	label, values := parseDelimitedLine("Deferred revenue | 1,000 |  | 900")
	if label != "Deferred revenue" {
		t.Fatalf("label: got %q", label)
	}
	if len(values) != 3 {
		t.Fatalf("expected 3 values, got %d: %v", len(values), values)
	}
	if values[0] == nil || *values[0] != 1000 {
		t.Errorf("first value: expected 1000, got %v", values[0])
	}
	if values[1] != nil {
		t.Errorf("interior empty cell must be nil, got %v", *values[1])
	}
	if values[2] == nil || *values[2] != 900 {
		t.Errorf("last value: expected 900, got %v", values[2])
	}

	_, values = parseDelimitedLine("Revenue |  | $ | 1,000 | 900 | ")
	if len(values) != 2 {
		t.Fatalf("edge padding must not produce values, got %v", values)
	}
	if *values[0] != 1000 || *values[1] != 900 {
		t.Errorf("expected [1000 900], got [%v %v]", *values[0], *values[1])
	}
}

func TestParseHTMLTables_InteriorEmptyCellIsNil(t *testing.T) {
	html := `<html><body>
<p>CONSOLIDATED BALANCE SHEETS</p>
<table>
<tr><td></td><td>December 31, 2024</td><td>December 31, 2023</td><td>December 31, 2022</td></tr>
<tr><td>Total assets</td><td>2,000</td><td></td><td>1,800</td></tr>
<tr><td>Total liabilities</td><td>1,200</td><td>1,150</td><td>1,100</td></tr>
</table></body></html>`

	out := parseHTMLTables(html)
	tbl := out[models.StatementBalance]
	if tbl == nil {
		t.Fatal("balance sheet not classified")
	}
	if len(tbl.Periods) != 3 {
		t.Fatalf("expected 3 periods, got %v", tbl.Periods)
	}

	ta := findRow(t, tbl.Rows, "Total assets")
	if len(ta.Values) != 3 {
		t.Fatalf("expected 3 values, got %d", len(ta.Values))
	}
	if ta.Values[0] == nil || *ta.Values[0] != 2000 {
		t.Errorf("current assets: expected 2000, got %v", ta.Values[0])
	}
	if ta.Values[1] != nil {
		t.Errorf("empty middle column must be nil, got %v", *ta.Values[1])
	}
	if ta.Values[2] == nil || *ta.Values[2] != 1800 {
		t.Errorf("oldest assets shifted: expected 1800, got %v", ta.Values[2])
	}
}

func TestParseFinancialTables_NoStatementsIsNormal(t *testing.T) {
	text := "This proxy statement discusses executive compensation only."
	doc := models.RawDocument{Content: text, Format: models.FormatPlain}

	tables := ParseFinancialTables(doc, text)
	if len(tables) != 0 {
		t.Errorf("expected no tables, got %d", len(tables))
	}
}

func findRow(t *testing.T, rows []models.TableRow, label string) models.TableRow {
	t.Helper()
	for _, r := range rows {
		if r.Label == label {
			return r
		}
	}
	t.Fatalf("row %q not found", label)
	return models.TableRow{}
}
