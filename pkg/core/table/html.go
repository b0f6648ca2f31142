package table

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"filinglens/pkg/core/category"
	"filinglens/pkg/models"
)

// parseHTMLTables walks real <table> markup and returns the first table
// classified under each statement type. Classification looks at the table's
// own header text plus nearby preceding text, since filings put the
// statement title in a styled <p> above the table as often as inside it.
// Parse failures return an empty map; the line-based fallback covers them.
func parseHTMLTables(htmlContent string) map[models.StatementType]*models.ParsedTable {
	out := make(map[models.StatementType]*models.ParsedTable)

	gq, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return out
	}

	gq.Find("table").Each(func(i int, sel *goquery.Selection) {
		context := tableContext(sel)
		cfg, title, ok := classifyTable(context)
		if !ok {
			return
		}
		if _, taken := out[cfg.Type]; taken {
			return
		}

		parsed := parseHTMLTable(sel, cfg.Type, title, context)
		if parsed != nil && len(parsed.Rows) > 0 {
			out[cfg.Type] = parsed
		}
	})

	return out
}

// tableContext gathers classification text: up to six preceding siblings at
// the table's level and its parent's level, plus the table's first rows.
func tableContext(sel *goquery.Selection) string {
	var parts []string

	node := sel
	for depth := 0; depth < 2; depth++ {
		prev := node.Prev()
		for i := 0; i < 6 && prev.Length() > 0; i++ {
			parts = append(parts, strings.TrimSpace(prev.Text()))
			prev = prev.Prev()
		}
		node = node.Parent()
		if node.Length() == 0 {
			break
		}
	}

	headRows := sel.Find("tr").Slice(0, min(4, sel.Find("tr").Length()))
	parts = append(parts, strings.TrimSpace(headRows.Text()))

	return strings.Join(parts, "\n")
}

// classifyTable matches context text against the statement synonym lists.
func classifyTable(context string) (statementConfig, string, bool) {
	lower := strings.ToLower(context)
	for _, cfg := range statementConfigs {
		for _, syn := range cfg.Headings {
			if strings.Contains(lower, syn) {
				return cfg, syn, true
			}
		}
	}
	return statementConfig{}, "", false
}

// parseHTMLTable converts one classified <table> to a ParsedTable.
func parseHTMLTable(sel *goquery.Selection, st models.StatementType, title, context string) *models.ParsedTable {
	fullText := context + "\n" + sel.Text()
	periods, periodType := ExtractPeriods(fullText)
	_ = periodType

	parsed := &models.ParsedTable{
		StatementType: st,
		Title:         strings.TrimSpace(title),
		Periods:       periods,
		Unit:          DetectUnit(fullText),
		Currency:      DetectCurrency(fullText),
	}

	sel.Find("tr").Each(func(i int, tr *goquery.Selection) {
		label := ""
		numericFirst := false
		var values []*float64
		pendingEmpty := 0
		record := func(v *float64) {
			for ; pendingEmpty > 0; pendingEmpty-- {
				values = append(values, nil)
			}
			values = append(values, v)
		}

		tr.Find("td, th").Each(func(j int, cell *goquery.Selection) {
			text := strings.TrimSpace(cell.Text())
			if label == "" {
				if text == "" || numericFirst {
					return
				}
				if !isNumericOnly(text) {
					label = text
				} else {
					// Numeric content before any label: header or spacer row.
					numericFirst = true
				}
				return
			}
			// Spacer cells at the row edges are padding; an empty cell
			// between two parsed values is an unreported column and keeps
			// its position as nil.
			switch text {
			case "$":
				return
			case "":
				if len(values) > 0 {
					pendingEmpty++
				}
			case "-", "—", "–":
				record(nil)
			default:
				if v := ParseCell(text); v != nil {
					record(v)
				}
			}
		})

		if !keepRow(label, values) {
			return
		}

		parsed.Rows = append(parsed.Rows, models.TableRow{
			Label:       label,
			Values:      alignValues(values, len(parsed.Periods)),
			IsSubtotal:  category.IsSubtotalLabel(label),
			IsTotal:     category.IsTotalLabel(label),
			IndentLevel: htmlIndent(tr),
			Category:    category.Categorize(label),
		})
	})

	if len(parsed.Periods) == 0 {
		parsed.Periods = synthesizePeriods(parsed.Rows)
		realign(parsed)
	}
	return parsed
}

// htmlIndent estimates nesting depth from the first cell's padding-left
// style, the usual EDGAR indentation mechanism.
func htmlIndent(tr *goquery.Selection) int {
	first := tr.Find("td, th").First()
	style, _ := first.Attr("style")
	style = strings.ToLower(style)
	idx := strings.Index(style, "padding-left")
	if idx < 0 {
		return 0
	}
	rest := style[idx:]
	digits := ""
	for _, r := range rest {
		if r >= '0' && r <= '9' {
			digits += string(r)
		} else if digits != "" {
			break
		}
	}
	if digits == "" {
		return 0
	}
	px := 0
	for _, r := range digits {
		px = px*10 + int(r-'0')
	}
	level := px / 12
	if level > 4 {
		level = 4
	}
	return level
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
