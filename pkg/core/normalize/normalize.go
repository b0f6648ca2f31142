// Package normalize turns raw filing content into a clean scanning buffer.
//
// SEC EDGAR HTML is wildly inconsistent: styled <p> soup, inline XBRL tags,
// spacer images, pagination footers. The normalizer strips all of it while
// preserving the structure later stages need: block boundaries become
// newlines and table cell boundaries become " | " delimiters so the
// line-based table fallback still sees column structure.
package normalize

import (
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"filinglens/pkg/models"
)

// CellDelimiter separates table cells in the cleaned text. The table parser's
// line-based fallback splits on this.
const CellDelimiter = " | "

var (
	reTag        = regexp.MustCompile(`<[^>]*>`)
	reSpaces     = regexp.MustCompile(`[ \t\x{00a0}]+`)
	reBlankLines = regexp.MustCompile(`\n{3,}`)
	reScript     = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	reStyle      = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
)

// Clean normalizes a raw document to plain scanning text. It never fails:
// unparseable HTML falls back to a conservative regex strip.
func Clean(doc models.RawDocument) string {
	if doc.Format == models.FormatHTML {
		return CleanHTML(doc.Content)
	}
	return CleanText(doc.Content)
}

// CleanHTML strips markup from an HTML filing, converting block and table
// boundaries to newlines and cell delimiters.
func CleanHTML(content string) string {
	gq, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return stripTagsFallback(content)
	}

	// Noise removal mirrors what works for EDGAR filings: scripts, styles,
	// hidden elements, spacer images.
	gq.Find("script, style, head").Remove()
	gq.Find("[hidden], [style*='display:none'], [style*='display: none']").Remove()
	gq.Find("img").Remove()

	// Inline XBRL tags wrap the visible numerals; keep the text only.
	gq.Find("ix\\:nonFraction, ix\\:nonNumeric, ix\\:fraction").Each(func(i int, sel *goquery.Selection) {
		sel.ReplaceWithHtml(html.EscapeString(sel.Text()))
	})

	// Boundary markers: cells get delimiters, blocks get newlines. These are
	// inserted as text nodes so the final Text() extraction keeps them.
	gq.Find("td, th").AfterHtml(" __CELL__ ")
	gq.Find("br").ReplaceWithHtml(" __BR__ ")
	gq.Find("tr, p, div, li, h1, h2, h3, h4, h5, h6, table, section").AfterHtml(" __BR__ ")

	text := gq.Text()
	text = strings.ReplaceAll(text, "__BR__", "\n")
	text = strings.ReplaceAll(text, "__CELL__", CellDelimiter)

	return CleanText(text)
}

// CleanText normalizes whitespace and entities in plain text. Em and en
// dashes are kept as-is: the cell parser treats a lone dash as "not
// reported".
func CleanText(content string) string {
	text := html.UnescapeString(content)
	text = strings.ReplaceAll(text, "\u00a0", " ")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	blank := 0
	for _, line := range lines {
		line = reSpaces.ReplaceAllString(line, " ")
		line = strings.TrimSpace(line)
		line = trimDanglingDelimiters(line)
		if line == "" {
			blank++
			if blank > 1 {
				continue
			}
		} else {
			blank = 0
		}
		out = append(out, line)
	}

	joined := strings.Join(out, "\n")
	joined = reBlankLines.ReplaceAllString(joined, "\n\n")
	return strings.TrimSpace(joined)
}

// trimDanglingDelimiters drops empty leading/trailing cell delimiters so a
// row like "| Revenue | 100 |" reads "Revenue | 100".
func trimDanglingDelimiters(line string) string {
	line = strings.TrimSpace(line)
	for strings.HasPrefix(line, "|") {
		line = strings.TrimSpace(strings.TrimPrefix(line, "|"))
	}
	for strings.HasSuffix(line, "|") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "|"))
	}
	return line
}

// stripTagsFallback is the conservative path for HTML that goquery cannot
// parse: unmatched tags become spaces, entities are decoded, whitespace is
// collapsed.
func stripTagsFallback(content string) string {
	text := reScript.ReplaceAllString(content, " ")
	text = reStyle.ReplaceAllString(text, " ")
	text = strings.ReplaceAll(text, "</tr>", "\n")
	text = strings.ReplaceAll(text, "</td>", CellDelimiter)
	text = strings.ReplaceAll(text, "</th>", CellDelimiter)
	text = strings.ReplaceAll(text, "</p>", "\n")
	text = strings.ReplaceAll(text, "</div>", "\n")
	text = strings.ReplaceAll(text, "<br>", "\n")
	text = strings.ReplaceAll(text, "<br/>", "\n")
	text = reTag.ReplaceAllString(text, " ")
	return CleanText(text)
}
