package section

import (
	"log"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"filinglens/pkg/models"
)

// Segment slices cleaned text into named sections using the form type's
// ordered header patterns. Boundaries are sorted by source offset; each
// section spans from its header to the next header (or document end).
// Duplicate matches for the same canonical name keep only the first
// occurrence. Zero matches yield a single fallback section covering the
// whole text, never an empty map.
func Segment(cleanText string, form models.FormType) models.SectionMap {
	type boundary struct {
		name     string
		offset   int
		priority int // position in the pattern list, for same-offset ties
	}

	patterns := ConfigFor(form)
	boundaries := make([]boundary, 0, len(patterns))

	for prio, p := range patterns {
		matches := p.Pattern.FindAllStringIndex(cleanText, -1)
		for _, m := range matches {
			boundaries = append(boundaries, boundary{name: p.Name, offset: m[0], priority: prio})
		}
	}

	if len(boundaries) == 0 {
		return models.SectionMap{{
			Name:        models.FallbackSectionName,
			Content:     cleanText,
			StartOffset: 0,
			EndOffset:   len(cleanText),
		}}
	}

	sort.Slice(boundaries, func(i, j int) bool {
		if boundaries[i].offset != boundaries[j].offset {
			return boundaries[i].offset < boundaries[j].offset
		}
		return boundaries[i].priority < boundaries[j].priority
	})

	// First occurrence per canonical name wins; later duplicates (table of
	// contents echoes, repeated part headers) are dropped. Same-offset
	// collisions keep the higher-priority pattern only.
	seen := make(map[string]bool, len(boundaries))
	kept := boundaries[:0]
	lastOffset := -1
	for _, b := range boundaries {
		if seen[b.name] {
			log.Printf("[section] duplicate header %q at offset %d ignored", b.name, b.offset)
			continue
		}
		if b.offset == lastOffset {
			continue
		}
		seen[b.name] = true
		lastOffset = b.offset
		kept = append(kept, b)
	}

	sections := make(models.SectionMap, 0, len(kept))
	for i, b := range kept {
		end := len(cleanText)
		if i+1 < len(kept) {
			end = kept[i+1].offset
		}
		sections = append(sections, models.Section{
			Name:        b.name,
			Content:     strings.TrimSpace(cleanText[b.offset:end]),
			StartOffset: b.offset,
			EndOffset:   end,
		})
	}
	return sections
}

var (
	reQuarterEnded = regexp.MustCompile(`(?i)for\s+the\s+quarterly\s+period\s+ended\s+([A-Za-z]+\s+\d{1,2},?\s+(\d{4}))`)
	reQuarterLabel = regexp.MustCompile(`(?i)\bQ([1-4])\s+(\d{4})\b`)
	reFiscalLabel  = regexp.MustCompile(`(?i)\b(first|second|third|fourth)\s+(?:fiscal\s+)?quarter\s+of\s+(?:fiscal\s+(?:year\s+)?)?(\d{4})`)
)

var quarterWords = map[string]int{"first": 1, "second": 2, "third": 3, "fourth": 4}

// ResolveFiscalPeriod extracts a quarter/year pair from quarterly report
// cover text. Both fields stay nil when no pattern matches; the resolver
// never guesses.
func ResolveFiscalPeriod(text string) *models.FiscalPeriod {
	// Cover pages sit at the front; scanning the full text risks picking up
	// prior-period comparisons.
	window := text
	if len(window) > 20000 {
		window = window[:20000]
	}

	if m := reQuarterEnded.FindStringSubmatch(window); m != nil {
		period := &models.FiscalPeriod{}
		if year, err := strconv.Atoi(m[2]); err == nil {
			period.Year = &year
		}
		if t, err := time.Parse("January 2, 2006", normalizeDate(m[1])); err == nil {
			q := (int(t.Month()) + 2) / 3
			period.Quarter = &q
		}
		if period.Year != nil || period.Quarter != nil {
			return period
		}
	}

	if m := reQuarterLabel.FindStringSubmatch(window); m != nil {
		q, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[2])
		return &models.FiscalPeriod{Quarter: &q, Year: &year}
	}

	if m := reFiscalLabel.FindStringSubmatch(window); m != nil {
		q := quarterWords[strings.ToLower(m[1])]
		year, _ := strconv.Atoi(m[2])
		return &models.FiscalPeriod{Quarter: &q, Year: &year}
	}

	return nil
}

// normalizeDate inserts the comma "January 2 2006"-style dates drop.
func normalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, ",") {
		parts := strings.Fields(s)
		if len(parts) == 3 {
			s = parts[0] + " " + parts[1] + ", " + parts[2]
		}
	}
	return s
}
