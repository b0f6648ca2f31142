// Package statement assembles canonical financial statements from merged
// metrics and computes the ratio suite over them.
package statement

import (
	"filinglens/pkg/models"
)

// Build assembles the structured financial data object: statements, ratios,
// and the overall quality grade.
func Build(metrics []models.ExtendedFinancialMetric) models.StructuredFinancialData {
	byCat := indexByCategory(metrics)

	is := BuildIncomeStatement(byCat)
	bs := BuildBalanceSheet(byCat)
	cf := BuildCashFlow(byCat)

	data := models.StructuredFinancialData{
		IncomeStatement:   is,
		BalanceSheet:      bs,
		CashFlowStatement: cf,
		KeyMetrics:        ComputeRatios(is, bs),
		ParsingConfidence: averageConfidence(metrics),
	}
	data.DataQuality = Quality(metrics)
	return data
}

func indexByCategory(metrics []models.ExtendedFinancialMetric) map[models.CanonicalCategory]models.ExtendedFinancialMetric {
	out := make(map[models.CanonicalCategory]models.ExtendedFinancialMetric, len(metrics))
	for _, m := range metrics {
		if m.Category == models.CategoryUnknown || m.RawValue == nil {
			continue
		}
		if _, exists := out[m.Category]; !exists {
			out[m.Category] = m
		}
	}
	return out
}

func mv(byCat map[models.CanonicalCategory]models.ExtendedFinancialMetric, cat models.CanonicalCategory) *models.MonetaryValue {
	m, ok := byCat[cat]
	if !ok || m.RawValue == nil {
		return nil
	}
	return &models.MonetaryValue{
		Amount:     *m.RawValue,
		YoYChange:  m.YoYChange,
		Confidence: m.Confidence,
		Formatted:  m.FormattedValue,
	}
}

// BuildIncomeStatement populates income statement fields from merged
// metrics. Returns nil when no income item was found at all.
func BuildIncomeStatement(byCat map[models.CanonicalCategory]models.ExtendedFinancialMetric) *models.IncomeStatement {
	is := &models.IncomeStatement{
		Revenue:         mv(byCat, models.CategoryRevenue),
		CostOfRevenue:   mv(byCat, models.CategoryCostOfRevenue),
		GrossProfit:     mv(byCat, models.CategoryGrossProfit),
		OperatingIncome: mv(byCat, models.CategoryOperatingIncome),
		NetIncome:       mv(byCat, models.CategoryNetIncome),
		EBITDA:          mv(byCat, models.CategoryEBITDA),
		RDExpense:       mv(byCat, models.CategoryRDExpense),
		SGAExpense:      mv(byCat, models.CategorySGAExpense),
		InterestExpense: mv(byCat, models.CategoryInterestExpense),
		IncomeTax:       mv(byCat, models.CategoryIncomeTax),
		EPSBasic:        mv(byCat, models.CategoryEPSBasic),
		EPSDiluted:      mv(byCat, models.CategoryEPSDiluted),
	}

	// Derive gross profit when both inputs are reported but the subtotal
	// row was not.
	if is.GrossProfit == nil && is.Revenue != nil && is.CostOfRevenue != nil {
		is.GrossProfit = &models.MonetaryValue{
			Amount:     is.Revenue.Amount - is.CostOfRevenue.Amount,
			Confidence: minConf(is.Revenue.Confidence, is.CostOfRevenue.Confidence),
		}
	}

	if isEmptyIncome(is) {
		return nil
	}
	return is
}

// BuildBalanceSheet populates balance sheet fields from merged metrics.
func BuildBalanceSheet(byCat map[models.CanonicalCategory]models.ExtendedFinancialMetric) *models.BalanceSheet {
	bs := &models.BalanceSheet{
		TotalAssets:        mv(byCat, models.CategoryTotalAssets),
		CurrentAssets:      mv(byCat, models.CategoryCurrentAssets),
		Cash:               mv(byCat, models.CategoryCash),
		Receivables:        mv(byCat, models.CategoryReceivables),
		Inventory:          mv(byCat, models.CategoryInventory),
		TotalLiabilities:   mv(byCat, models.CategoryTotalLiabilities),
		CurrentLiabilities: mv(byCat, models.CategoryCurrentLiabilities),
		LongTermDebt:       mv(byCat, models.CategoryLongTermDebt),
		Payables:           mv(byCat, models.CategoryPayables),
		TotalEquity:        mv(byCat, models.CategoryTotalEquity),
		RetainedEarnings:   mv(byCat, models.CategoryRetainedEarnings),
	}
	if bs.TotalAssets == nil && bs.TotalLiabilities == nil && bs.TotalEquity == nil &&
		bs.CurrentAssets == nil && bs.CurrentLiabilities == nil && bs.Cash == nil {
		return nil
	}
	return bs
}

// BuildCashFlow populates cash flow fields from merged metrics. Free cash
// flow is derived (operating cash flow minus capex) when not reported.
func BuildCashFlow(byCat map[models.CanonicalCategory]models.ExtendedFinancialMetric) *models.CashFlowStatement {
	cf := &models.CashFlowStatement{
		OperatingCashFlow: mv(byCat, models.CategoryOperatingCashFlow),
		InvestingCashFlow: mv(byCat, models.CategoryInvestingCashFlow),
		FinancingCashFlow: mv(byCat, models.CategoryFinancingCashFlow),
		CapEx:             mv(byCat, models.CategoryCapEx),
		FreeCashFlow:      mv(byCat, models.CategoryFreeCashFlow),
	}

	if cf.FreeCashFlow == nil && cf.OperatingCashFlow != nil && cf.CapEx != nil {
		// CapEx is reported as a cash outflow (negative) in most filings;
		// subtracting its magnitude covers both sign conventions.
		capex := cf.CapEx.Amount
		if capex < 0 {
			capex = -capex
		}
		cf.FreeCashFlow = &models.MonetaryValue{
			Amount:     cf.OperatingCashFlow.Amount - capex,
			Confidence: minConf(cf.OperatingCashFlow.Confidence, cf.CapEx.Confidence),
		}
	}

	if cf.OperatingCashFlow == nil && cf.InvestingCashFlow == nil && cf.FinancingCashFlow == nil && cf.CapEx == nil {
		return nil
	}
	return cf
}

func isEmptyIncome(is *models.IncomeStatement) bool {
	return is.Revenue == nil && is.CostOfRevenue == nil && is.GrossProfit == nil &&
		is.OperatingIncome == nil && is.NetIncome == nil && is.EBITDA == nil &&
		is.EPSBasic == nil && is.EPSDiluted == nil
}

func minConf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func averageConfidence(metrics []models.ExtendedFinancialMetric) float64 {
	sum, n := 0.0, 0
	for _, m := range metrics {
		if m.Category == models.CategoryUnknown {
			continue
		}
		sum += m.Confidence
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// Quality grades reconstruction completeness. HIGH needs at least four of
// the five core categories, average confidence ≥ 0.8, and at least one
// table-sourced metric.
func Quality(metrics []models.ExtendedFinancialMetric) models.DataQuality {
	found := make(map[models.CanonicalCategory]bool)
	hasTable := false
	for _, m := range metrics {
		if m.Category != models.CategoryUnknown {
			found[m.Category] = true
		}
		if m.Source == models.SourceTable {
			hasTable = true
		}
	}

	core := 0
	for _, cat := range models.CoreCategories {
		if found[cat] {
			core++
		}
	}
	avg := averageConfidence(metrics)

	switch {
	case core >= 4 && avg >= 0.8 && hasTable:
		return models.QualityHigh
	case core >= 3 && avg >= 0.6:
		return models.QualityMedium
	case core >= 1:
		return models.QualityLow
	default:
		return models.QualityUnknown
	}
}
