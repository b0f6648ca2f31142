package analyzer

import (
	"fmt"
	"log"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/text"

	"filinglens/pkg/models"
)

// Summary renders an analysis result as a Markdown report. The output is
// validated with Goldmark before being returned; a render bug logs a warning
// but the text is still returned since Goldmark is permissive by design.
func Summary(result models.AnalysisResult) string {
	var b strings.Builder

	title := "Filing Analysis"
	if result.CompanyName != "" {
		title = result.CompanyName + " — " + title
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	if result.ReportType != models.FormUnknown {
		fmt.Fprintf(&b, "**Form:** %s  \n", result.ReportType)
	}
	if result.PeriodEnding != "" {
		fmt.Fprintf(&b, "**Period Ending:** %s  \n", result.PeriodEnding)
	}
	fmt.Fprintf(&b, "**Data Quality:** %s  \n", result.DataQuality)
	fmt.Fprintf(&b, "**Parsing Confidence:** %.2f\n\n", result.ParsingConfidence)

	writeIncomeStatement(&b, result.StructuredData.IncomeStatement)
	writeBalanceSheet(&b, result.StructuredData.BalanceSheet)
	writeCashFlow(&b, result.StructuredData.CashFlowStatement)
	writeRatios(&b, result.StructuredData.KeyMetrics)
	writeRisks(&b, result.RiskFactors)

	out := b.String()
	if !validMarkdown(out) {
		log.Printf("[WARNING] generated summary failed markdown validation")
	}
	return out
}

func writeIncomeStatement(b *strings.Builder, is *models.IncomeStatement) {
	if is == nil {
		return
	}
	b.WriteString("## Income Statement\n\n")
	b.WriteString("| Line Item | Value | YoY |\n|---|---|---|\n")
	writeLine(b, "Revenue", is.Revenue)
	writeLine(b, "Cost of Revenue", is.CostOfRevenue)
	writeLine(b, "Gross Profit", is.GrossProfit)
	writeLine(b, "Operating Income", is.OperatingIncome)
	writeLine(b, "Net Income", is.NetIncome)
	writeLine(b, "EPS (Diluted)", is.EPSDiluted)
	b.WriteString("\n")
}

func writeBalanceSheet(b *strings.Builder, bs *models.BalanceSheet) {
	if bs == nil {
		return
	}
	b.WriteString("## Balance Sheet\n\n")
	b.WriteString("| Line Item | Value | YoY |\n|---|---|---|\n")
	writeLine(b, "Total Assets", bs.TotalAssets)
	writeLine(b, "Total Liabilities", bs.TotalLiabilities)
	writeLine(b, "Total Equity", bs.TotalEquity)
	writeLine(b, "Cash", bs.Cash)
	writeLine(b, "Long-Term Debt", bs.LongTermDebt)
	b.WriteString("\n")
}

func writeCashFlow(b *strings.Builder, cf *models.CashFlowStatement) {
	if cf == nil {
		return
	}
	b.WriteString("## Cash Flow\n\n")
	b.WriteString("| Line Item | Value | YoY |\n|---|---|---|\n")
	writeLine(b, "Operating Cash Flow", cf.OperatingCashFlow)
	writeLine(b, "Capital Expenditures", cf.CapEx)
	writeLine(b, "Free Cash Flow", cf.FreeCashFlow)
	b.WriteString("\n")
}

func writeLine(b *strings.Builder, label string, v *models.MonetaryValue) {
	if v == nil {
		return
	}
	formatted := v.Formatted
	if formatted == "" {
		formatted = fmt.Sprintf("%.2f", v.Amount)
	}
	yoy := "—"
	if v.YoYChange != nil {
		yoy = fmt.Sprintf("%+.1f%%", *v.YoYChange)
	}
	fmt.Fprintf(b, "| %s | %s | %s |\n", label, formatted, yoy)
}

func writeRatios(b *strings.Builder, km *models.KeyFinancialMetrics) {
	if km == nil {
		return
	}
	b.WriteString("## Key Ratios\n\n")
	writePct(b, "Gross Margin", km.GrossMargin)
	writePct(b, "Operating Margin", km.OperatingMargin)
	writePct(b, "Net Profit Margin", km.NetProfitMargin)
	writePct(b, "Return on Assets", km.ReturnOnAssets)
	writePct(b, "Return on Equity", km.ReturnOnEquity)
	writeMult(b, "Current Ratio", km.CurrentRatio)
	writeMult(b, "Quick Ratio", km.QuickRatio)
	writeMult(b, "Debt to Equity", km.DebtToEquity)
	writeMult(b, "Interest Coverage", km.InterestCoverage)
	b.WriteString("\n")
}

func writePct(b *strings.Builder, label string, v *float64) {
	if v == nil {
		return
	}
	fmt.Fprintf(b, "- **%s:** %.1f%%\n", label, *v)
}

func writeMult(b *strings.Builder, label string, v *float64) {
	if v == nil {
		return
	}
	fmt.Fprintf(b, "- **%s:** %.2fx\n", label, *v)
}

func writeRisks(b *strings.Builder, risks []models.RiskFactor) {
	if len(risks) == 0 {
		return
	}
	b.WriteString("## Risk Factors\n\n")
	for _, r := range risks {
		fmt.Fprintf(b, "- **[%s]** %s (%s)\n", r.Severity, r.Title, r.Category)
	}
	b.WriteString("\n")
}

// validMarkdown parses the text with Goldmark. Goldmark is permissive, so
// this is a basic sanity check rather than a strict lint.
func validMarkdown(input string) bool {
	parser := goldmark.DefaultParser()
	reader := text.NewReader([]byte(input))
	return parser.Parse(reader) != nil
}
