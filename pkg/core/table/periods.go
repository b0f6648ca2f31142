package table

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"filinglens/pkg/models"
)

// maxPeriods is the most period columns kept per table. Statements rarely
// show more than three comparative periods; four absorbs five-year selected
// data tables without letting footnote years flood in.
const maxPeriods = 4

var (
	reFullDate     = regexp.MustCompile(`(?i)\b(January|February|March|April|May|June|July|August|September|October|November|December)\.?\s+(\d{1,2}),?\s+(\d{4})\b`)
	rePeriodQuarter = regexp.MustCompile(`(?i)\bQ([1-4])\s+(\d{4})\b`)
	reBareYear     = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)
)

// ExtractPeriods pulls period column labels from a statement section header
// area. Strategies are tried in order — full dates, quarter labels, bare
// years — and the first that matches wins. At most maxPeriods labels are
// kept, newest first.
func ExtractPeriods(text string) ([]string, models.PeriodType) {
	// Period headers sit near the top of the section; scanning the whole
	// span would pick up maturity schedules and footnote dates.
	window := text
	if len(window) > 4000 {
		window = window[:4000]
	}

	if periods := extractFullDates(window); len(periods) > 0 {
		return periods, models.PeriodAnnual
	}
	if periods := extractQuarterLabels(window); len(periods) > 0 {
		return periods, models.PeriodQuarterly
	}
	if periods := extractBareYears(window); len(periods) > 0 {
		return periods, models.PeriodAnnual
	}
	return nil, models.PeriodAnnual
}

func extractFullDates(text string) []string {
	type dated struct {
		label string
		t     time.Time
	}
	matches := reFullDate.FindAllStringSubmatch(text, -1)
	seen := make(map[string]bool)
	var out []dated
	for _, m := range matches {
		label := strings.Title(strings.ToLower(m[1])) + " " + m[2] + ", " + m[3]
		if seen[label] {
			continue
		}
		t, err := time.Parse("January 2, 2006", label)
		if err != nil {
			continue
		}
		seen[label] = true
		out = append(out, dated{label: label, t: t})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].t.After(out[j].t) })
	if len(out) > maxPeriods {
		out = out[:maxPeriods]
	}
	labels := make([]string, len(out))
	for i, d := range out {
		labels[i] = d.label
	}
	return labels
}

func extractQuarterLabels(text string) []string {
	type quarter struct {
		label string
		rank  int
	}
	matches := rePeriodQuarter.FindAllStringSubmatch(text, -1)
	seen := make(map[string]bool)
	var out []quarter
	for _, m := range matches {
		q, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[2])
		label := "Q" + m[1] + " " + m[2]
		if seen[label] {
			continue
		}
		seen[label] = true
		out = append(out, quarter{label: label, rank: year*4 + q})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].rank > out[j].rank })
	if len(out) > maxPeriods {
		out = out[:maxPeriods]
	}
	labels := make([]string, len(out))
	for i, q := range out {
		labels[i] = q.label
	}
	return labels
}

func extractBareYears(text string) []string {
	matches := reBareYear.FindAllString(text, -1)
	seen := make(map[string]bool)
	var years []int
	for _, m := range matches {
		y, _ := strconv.Atoi(m)
		if seen[m] {
			continue
		}
		seen[m] = true
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	if len(years) > maxPeriods {
		years = years[:maxPeriods]
	}
	labels := make([]string, len(years))
	for i, y := range years {
		labels[i] = strconv.Itoa(y)
	}
	return labels
}

// DetectUnit scans a statement section for unit hints. Missing hints default
// to millions, the SEC convention. Per-share columns are handled separately
// by the categorizer.
func DetectUnit(text string) models.UnitScale {
	lower := strings.ToLower(text)
	if len(lower) > 4000 {
		lower = lower[:4000]
	}
	switch {
	case strings.Contains(lower, "in billions"):
		return models.UnitBillions
	case strings.Contains(lower, "in thousands"), strings.Contains(lower, "(000s"), strings.Contains(lower, "in 000"):
		return models.UnitThousands
	case strings.Contains(lower, "in millions"):
		return models.UnitMillions
	case strings.Contains(lower, "in dollars"), strings.Contains(lower, "in whole dollars"):
		return models.UnitDollars
	}
	return models.UnitMillions
}

// DetectCurrency returns an ISO currency code guessed from symbols and
// phrases near the section head. Dollar filings dominate EDGAR, so USD is
// the default.
func DetectCurrency(text string) string {
	window := text
	if len(window) > 4000 {
		window = window[:4000]
	}
	lower := strings.ToLower(window)
	switch {
	case strings.Contains(window, "€"), strings.Contains(lower, "in euros"):
		return "EUR"
	case strings.Contains(window, "£"), strings.Contains(lower, "pounds sterling"):
		return "GBP"
	case strings.Contains(window, "¥"), strings.Contains(lower, "in yen"):
		return "JPY"
	}
	return "USD"
}
