// Package analyzer wires the extraction stages into the end-to-end filing
// pipeline: normalize -> segment -> extract (tables, structured facts,
// patterns) -> merge -> statements -> risks.
//
// The pipeline never fails on malformed input. Each stage degrades to empty
// output and the result carries QualityUnknown; errors are reserved for
// caller mistakes, not document content.
package analyzer

import (
	"context"
	"log"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"filinglens/pkg/core/fact"
	"filinglens/pkg/core/metric"
	"filinglens/pkg/core/normalize"
	"filinglens/pkg/core/risk"
	"filinglens/pkg/core/section"
	"filinglens/pkg/core/statement"
	"filinglens/pkg/core/table"
	"filinglens/pkg/models"
)

// Enricher attaches optional supplementary annotations to a finished result.
// Implementations may call external services; failures are logged and
// ignored, never surfaced as pipeline errors.
type Enricher interface {
	Annotate(ctx context.Context, result models.AnalysisResult) (*models.EnrichmentAnnotations, error)
}

// Analyzer runs the filing analysis pipeline. The zero value is usable;
// enrichment is optional.
type Analyzer struct {
	enricher Enricher
}

// New creates an Analyzer. Pass nil to run without enrichment.
func New(enricher Enricher) *Analyzer {
	return &Analyzer{enricher: enricher}
}

// Analyze runs the full pipeline over one filing. The metadata hints are all
// optional; content-derived values fill whatever the caller left blank.
func (a *Analyzer) Analyze(ctx context.Context, doc models.RawDocument, meta models.FilingMetadata) models.AnalysisResult {
	cleanText := normalize.Clean(doc)
	form := resolveForm(doc, meta, cleanText)

	sections := section.Segment(cleanText, form)

	tables := table.ParseFinancialTables(doc, cleanText)
	tableMetrics := metric.FromTables(tables)
	factMetrics := fact.Extract(doc)
	patternMetrics := metric.ExtractPatterns(cleanText)

	merged := metric.Merge(tableMetrics, factMetrics, patternMetrics)
	structured := statement.Build(merged)

	result := models.AnalysisResult{
		AnalysisID:        analysisID(doc, meta),
		CompanyName:       resolveCompanyName(meta, cleanText),
		ReportType:        form,
		PeriodEnding:      resolvePeriodEnding(meta, cleanText),
		Metrics:           merged,
		StructuredData:    structured,
		RiskFactors:       risk.Extract(sections, form),
		Sections:          sections,
		DataQuality:       structured.DataQuality,
		ParsingConfidence: structured.ParsingConfidence,
	}

	if form == models.FormQuarterly {
		result.FiscalPeriod = section.ResolveFiscalPeriod(cleanText)
	}

	if a.enricher != nil {
		ann, err := a.enricher.Annotate(ctx, result)
		if err != nil {
			log.Printf("[WARNING] enrichment failed, continuing without annotations: %v", err)
		} else {
			result.Enrichment = ann
		}
	}

	return result
}

// analysisNamespace scopes name-based analysis ids to this pipeline.
var analysisNamespace = uuid.MustParse("8f0f2a5e-3c1d-4b9a-9f6e-2d7c5a1b4e83")

// analysisID derives the result id from the document and metadata, so the
// same input always produces the same id and the whole result is
// byte-identical across runs. NUL separators keep field boundaries distinct.
func analysisID(doc models.RawDocument, meta models.FilingMetadata) string {
	var b strings.Builder
	b.WriteString(doc.Content)
	b.WriteByte(0)
	b.WriteString(string(doc.Format))
	b.WriteByte(0)
	b.WriteString(doc.DeclaredFormType)
	b.WriteByte(0)
	b.WriteString(meta.CompanyName)
	b.WriteByte(0)
	b.WriteString(string(meta.FormType))
	b.WriteByte(0)
	b.WriteString(meta.PeriodHint)
	return uuid.NewSHA1(analysisNamespace, []byte(b.String())).String()
}

// reFormSniff matches a form declaration near the top of the filing, e.g.
// "FORM 10-K" or "ANNUAL REPORT PURSUANT TO ... FORM 10-K".
var reFormSniff = regexp.MustCompile(`(?i)\bform\s+(10-K|10-Q|8-K|S-1|20-F|DEF\s*14A)\b`)

// formSniffWindow bounds how far into the document the form declaration is
// searched for. Cover pages state the form within the first page or two.
const formSniffWindow = 10000

// resolveForm picks the form type: caller hint first, then the document's
// declared type, then a cover-page sniff. Unknown is a valid outcome — the
// segmenter falls back to annual-report patterns for it.
func resolveForm(doc models.RawDocument, meta models.FilingMetadata, cleanText string) models.FormType {
	if meta.FormType != models.FormUnknown {
		return meta.FormType
	}
	if ft := models.ParseFormType(doc.DeclaredFormType); ft != models.FormUnknown {
		return ft
	}

	window := cleanText
	if len(window) > formSniffWindow {
		window = window[:formSniffWindow]
	}
	if m := reFormSniff.FindStringSubmatch(window); m != nil {
		return models.ParseFormType(m[1])
	}
	return models.FormUnknown
}

// reCompanySuffix finds a line ending in a corporate suffix within the cover
// page. The first such line is taken as the registrant name.
var reCompanySuffix = regexp.MustCompile(`(?im)^\s*([A-Z][A-Za-z0-9.,&'\- ]{2,80}?(?:Inc\.?|Corp(?:oration)?\.?|Company|Co\.|Ltd\.?|LLC|L\.P\.|plc|N\.V\.|S\.A\.))\s*$`)

const companySniffWindow = 5000

func resolveCompanyName(meta models.FilingMetadata, cleanText string) string {
	if meta.CompanyName != "" {
		return meta.CompanyName
	}
	window := cleanText
	if len(window) > companySniffWindow {
		window = window[:companySniffWindow]
	}
	if m := reCompanySuffix.FindStringSubmatch(window); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// rePeriodEnding captures the stated period end date from cover-page phrasing
// like "for the fiscal year ended December 31, 2023".
var rePeriodEnding = regexp.MustCompile(`(?i)(?:fiscal\s+year|quarterly?\s+period|quarter|year|period)\s+end(?:ed|ing)\s+((?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},?\s+\d{4})`)

const periodSniffWindow = 20000

func resolvePeriodEnding(meta models.FilingMetadata, cleanText string) string {
	if meta.PeriodHint != "" {
		return meta.PeriodHint
	}
	window := cleanText
	if len(window) > periodSniffWindow {
		window = window[:periodSniffWindow]
	}
	if m := rePeriodEnding.FindStringSubmatch(window); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}
