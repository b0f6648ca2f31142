// Package fact extracts structured facts from inline XBRL markup.
//
// Modern EDGAR filings tag visible numerals with ix:nonFraction elements
// whose name attribute is a us-gaap concept. These facts are the most
// precisely typed values available in the document, so they merge at high
// confidence — just below correctly located table cells.
package fact

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"filinglens/pkg/models"
)

// Confidence assigned to structured-fact metrics.
const Confidence = 0.9

// conceptCategories maps us-gaap concept local names to canonical
// categories. Order-insensitive: concept names are exact.
var conceptCategories = map[string]models.CanonicalCategory{
	"Revenues": models.CategoryRevenue,
	"RevenueFromContractWithCustomerExcludingAssessedTax": models.CategoryRevenue,
	"RevenueFromContractWithCustomerIncludingAssessedTax": models.CategoryRevenue,
	"SalesRevenueNet": models.CategoryRevenue,

	"CostOfRevenue":             models.CategoryCostOfRevenue,
	"CostOfGoodsAndServicesSold": models.CategoryCostOfRevenue,
	"CostOfGoodsSold":           models.CategoryCostOfRevenue,

	"GrossProfit":         models.CategoryGrossProfit,
	"OperatingIncomeLoss": models.CategoryOperatingIncome,
	"NetIncomeLoss":       models.CategoryNetIncome,
	"ProfitLoss":          models.CategoryNetIncome,

	"ResearchAndDevelopmentExpense":            models.CategoryRDExpense,
	"SellingGeneralAndAdministrativeExpense":   models.CategorySGAExpense,
	"GeneralAndAdministrativeExpense":          models.CategorySGAExpense,
	"InterestExpense":                          models.CategoryInterestExpense,
	"InterestExpenseNonoperating":              models.CategoryInterestExpense,
	"IncomeTaxExpenseBenefit":                  models.CategoryIncomeTax,
	"EarningsPerShareBasic":                    models.CategoryEPSBasic,
	"EarningsPerShareDiluted":                  models.CategoryEPSDiluted,

	"Assets":        models.CategoryTotalAssets,
	"AssetsCurrent": models.CategoryCurrentAssets,
	"CashAndCashEquivalentsAtCarryingValue": models.CategoryCash,
	"AccountsReceivableNetCurrent":          models.CategoryReceivables,
	"InventoryNet":                          models.CategoryInventory,
	"Liabilities":                           models.CategoryTotalLiabilities,
	"LiabilitiesCurrent":                    models.CategoryCurrentLiabilities,
	"LongTermDebtNoncurrent":                models.CategoryLongTermDebt,
	"LongTermDebt":                          models.CategoryLongTermDebt,
	"AccountsPayableCurrent":                models.CategoryPayables,
	"StockholdersEquity":                    models.CategoryTotalEquity,
	"StockholdersEquityIncludingPortionAttributableToNoncontrollingInterest": models.CategoryTotalEquity,
	"RetainedEarningsAccumulatedDeficit":                                      models.CategoryRetainedEarnings,

	"NetCashProvidedByUsedInOperatingActivities": models.CategoryOperatingCashFlow,
	"NetCashProvidedByUsedInInvestingActivities": models.CategoryInvestingCashFlow,
	"NetCashProvidedByUsedInFinancingActivities": models.CategoryFinancingCashFlow,
	"PaymentsToAcquirePropertyPlantAndEquipment": models.CategoryCapEx,
}

// Extract pulls categorized metrics from inline XBRL facts in an HTML
// filing. Documents without inline XBRL yield an empty slice, which is a
// normal outcome for older filings and plain text.
func Extract(doc models.RawDocument) []models.ExtendedFinancialMetric {
	if doc.Format != models.FormatHTML {
		return nil
	}

	gq, err := goquery.NewDocumentFromReader(strings.NewReader(doc.Content))
	if err != nil {
		return nil
	}

	// The first fact per category is kept: inline XBRL lists the current
	// period's value before comparatives in document order.
	seen := make(map[models.CanonicalCategory]bool)
	var metrics []models.ExtendedFinancialMetric

	gq.Find("ix\\:nonFraction, ix\\:nonfraction").Each(func(i int, sel *goquery.Selection) {
		name, _ := sel.Attr("name")
		local := conceptLocalName(name)
		cat, ok := conceptCategories[local]
		if !ok || seen[cat] {
			return
		}

		val, ok := parseFactValue(sel)
		if !ok {
			return
		}

		contextRef, _ := sel.Attr("contextref")
		seen[cat] = true
		metrics = append(metrics, models.ExtendedFinancialMetric{
			Name:           local,
			FormattedValue: strings.TrimSpace(sel.Text()),
			RawValue:       &val,
			Unit:           models.UnitDollars, // scale attribute already applied
			Category:       cat,
			Source:         models.SourceStructuredFact,
			Confidence:     Confidence,
			Context:        contextRef,
		})
	})

	return metrics
}

// conceptLocalName strips the namespace prefix from "us-gaap:Revenues".
func conceptLocalName(name string) string {
	if idx := strings.LastIndex(name, ":"); idx >= 0 {
		return name[idx+1:]
	}
	return name
}

// parseFactValue parses the fact's visible text and applies the XBRL sign
// and scale attributes. scale="6" means the displayed number is in millions.
func parseFactValue(sel *goquery.Selection) (float64, bool) {
	text := strings.TrimSpace(sel.Text())
	text = strings.ReplaceAll(text, ",", "")
	text = strings.ReplaceAll(text, "$", "")
	text = strings.Trim(text, "() ")
	if text == "" {
		return 0, false
	}

	val, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}

	if scaleStr, ok := sel.Attr("scale"); ok {
		if scale, err := strconv.Atoi(scaleStr); err == nil {
			for i := 0; i < scale; i++ {
				val *= 10
			}
			for i := 0; i > scale; i-- {
				val /= 10
			}
		}
	}
	if sign, ok := sel.Attr("sign"); ok && sign == "-" {
		val = -val
	}
	return val, true
}
