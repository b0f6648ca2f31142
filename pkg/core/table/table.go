package table

import (
	"strconv"

	"filinglens/pkg/models"
)

// ParseFinancialTables locates and parses the statement tables of a filing.
// HTML documents try true table markup first; anything the markup path
// misses falls back to line-based parsing of the cleaned text. Absence of a
// table for any statement type is a normal outcome — the result simply omits
// it and downstream falls back to pattern extraction.
func ParseFinancialTables(doc models.RawDocument, cleanText string) []models.ParsedTable {
	var htmlTables map[models.StatementType]*models.ParsedTable
	if doc.Format == models.FormatHTML {
		htmlTables = parseHTMLTables(doc.Content)
	}

	lower := lowerASCII(cleanText)
	tables := make([]models.ParsedTable, 0, len(statementConfigs))

	for _, cfg := range statementConfigs {
		if t, ok := htmlTables[cfg.Type]; ok {
			tables = append(tables, *t)
			continue
		}

		loc, found := locateSection(cleanText, lower, cfg)
		if !found {
			continue
		}

		periods, _ := ExtractPeriods(loc.Body)
		rows := parseLines(loc.Body, len(periods))
		if len(rows) == 0 {
			continue
		}

		parsed := models.ParsedTable{
			StatementType: cfg.Type,
			Title:         loc.Title,
			Periods:       periods,
			Rows:          rows,
			Unit:          DetectUnit(loc.Body),
			Currency:      DetectCurrency(loc.Body),
		}
		if len(parsed.Periods) == 0 {
			parsed.Periods = synthesizePeriods(parsed.Rows)
			realign(&parsed)
		}
		tables = append(tables, parsed)
	}

	return tables
}

// synthesizePeriods invents generic period labels when the section header
// carried none, sized to the widest common row so the row/period alignment
// invariant still holds.
func synthesizePeriods(rows []models.TableRow) []string {
	counts := make(map[int]int)
	for _, r := range rows {
		n := 0
		for _, v := range r.Values {
			if v != nil {
				n++
			}
		}
		if n > 0 {
			counts[n]++
		}
	}
	best, bestCount := 1, 0
	for n, c := range counts {
		if c > bestCount || (c == bestCount && n > best) {
			best, bestCount = n, c
		}
	}
	if best > maxPeriods {
		best = maxPeriods
	}
	labels := make([]string, best)
	for i := range labels {
		labels[i] = "Period " + strconv.Itoa(i+1)
	}
	return labels
}

// realign refits every row's values to the (possibly synthesized) period
// count.
func realign(t *models.ParsedTable) {
	for i := range t.Rows {
		t.Rows[i].Values = alignValues(t.Rows[i].Values, len(t.Periods))
	}
}
