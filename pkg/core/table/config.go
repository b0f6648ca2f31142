// Package table locates financial statement tables in filing text and parses
// them into typed rows.
//
// Location is synonym-driven: each statement type tries an ordered list of
// heading synonyms against the cleaned text, and the section runs from the
// first match to the nearest "next major section" marker. True table markup
// is preferred when the source is HTML; a line-based numeric fallback covers
// plain text and the HTML filings that render statements without <table>
// tags.
package table

import "filinglens/pkg/models"

// maxSectionSpan caps a located statement section's length. Pathological
// documents (flat text dumps with no section markers) would otherwise make
// row scanning quadratic-ish across megabytes.
const maxSectionSpan = 60000

// statementConfig binds a statement type to its ordered heading synonyms.
// More specific synonyms come first so "consolidated statements of
// operations" wins over a bare "statements of income" appearing later in a
// table of contents.
type statementConfig struct {
	Type     models.StatementType
	Headings []string
}

var statementConfigs = []statementConfig{
	{
		Type: models.StatementIncome,
		Headings: []string{
			"consolidated statements of operations",
			"consolidated statement of operations",
			"consolidated statements of income",
			"consolidated statement of income",
			"condensed consolidated statements of operations",
			"statements of operations",
			"statement of operations",
			"statements of income",
			"statement of income",
			"income statements",
			"income statement",
			"results of operations",
		},
	},
	{
		Type: models.StatementBalance,
		Headings: []string{
			"consolidated balance sheets",
			"consolidated balance sheet",
			"condensed consolidated balance sheets",
			"consolidated statements of financial position",
			"statements of financial position",
			"statement of financial position",
			"balance sheets",
			"balance sheet",
		},
	},
	{
		Type: models.StatementCashFlow,
		Headings: []string{
			"consolidated statements of cash flows",
			"consolidated statement of cash flows",
			"condensed consolidated statements of cash flows",
			"statements of cash flows",
			"statement of cash flows",
			"cash flow statements",
			"cash flow statement",
		},
	},
	{
		Type: models.StatementEquity,
		Headings: []string{
			"consolidated statements of stockholders' equity",
			"consolidated statements of shareholders' equity",
			"statements of stockholders' equity",
			"statements of shareholders' equity",
			"statement of stockholders' equity",
			"statements of changes in equity",
			"statement of changes in equity",
		},
	},
}

// nextSectionMarkers end a located statement section. Other statement
// headings are added at runtime so any statement heading terminates the
// previous statement's span.
var nextSectionMarkers = []string{
	"notes to consolidated financial statements",
	"notes to financial statements",
	"notes to the financial statements",
	"item 1a",
	"signatures",
	"report of independent registered public accounting firm",
}
