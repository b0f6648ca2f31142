package statement

import (
	"math"

	"filinglens/pkg/models"
)

// Clamp bounds for computed ratios. Misparsed inputs produce absurd values;
// bounding them is preferable to propagating infinities into downstream
// consumers.
const (
	maxPercent  = 1000.0 // ±1000% for margin/return ratios
	maxMultiple = 100.0  // 0–100x for liquidity/solvency multiples
)

// pctRatio computes numerator/denominator as a percentage, nil when the
// denominator is absent or zero, clamped to ±maxPercent.
func pctRatio(num, den *models.MonetaryValue) *float64 {
	if num == nil || den == nil || den.Amount == 0 {
		return nil
	}
	v := num.Amount / den.Amount * 100
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	if v > maxPercent {
		v = maxPercent
	} else if v < -maxPercent {
		v = -maxPercent
	}
	return &v
}

// multRatio computes numerator/denominator as a multiple, nil on missing or
// zero denominator, clamped to [0, maxMultiple].
func multRatio(num, den *models.MonetaryValue) *float64 {
	if num == nil || den == nil || den.Amount == 0 {
		return nil
	}
	v := num.Amount / den.Amount
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	if v < 0 {
		v = 0
	} else if v > maxMultiple {
		v = maxMultiple
	}
	return &v
}

// ComputeRatios derives the ratio suite. Each ratio is computed only when
// both inputs are present with a non-zero denominator; everything else stays
// nil rather than zero so absent and zero-valued ratios stay
// distinguishable.
func ComputeRatios(is *models.IncomeStatement, bs *models.BalanceSheet) *models.KeyFinancialMetrics {
	km := &models.KeyFinancialMetrics{}

	if is != nil {
		km.GrossMargin = pctRatio(is.GrossProfit, is.Revenue)
		km.OperatingMargin = pctRatio(is.OperatingIncome, is.Revenue)
		km.NetProfitMargin = pctRatio(is.NetIncome, is.Revenue)
	}

	if is != nil && bs != nil {
		km.ReturnOnAssets = pctRatio(is.NetIncome, bs.TotalAssets)
		km.ReturnOnEquity = pctRatio(is.NetIncome, bs.TotalEquity)
		km.AssetTurnover = multRatio(is.Revenue, bs.TotalAssets)

		if is.OperatingIncome != nil && is.InterestExpense != nil && is.InterestExpense.Amount != 0 {
			interest := models.MonetaryValue{Amount: math.Abs(is.InterestExpense.Amount)}
			km.InterestCoverage = multRatio(is.OperatingIncome, &interest)
		}
	}

	if bs != nil {
		km.CurrentRatio = multRatio(bs.CurrentAssets, bs.CurrentLiabilities)
		km.CashRatio = multRatio(bs.Cash, bs.CurrentLiabilities)
		km.DebtToEquity = multRatio(bs.TotalLiabilities, bs.TotalEquity)
		km.DebtRatio = multRatio(bs.TotalLiabilities, bs.TotalAssets)

		if bs.CurrentAssets != nil && bs.CurrentLiabilities != nil && bs.CurrentLiabilities.Amount != 0 {
			quick := models.MonetaryValue{Amount: bs.CurrentAssets.Amount}
			if bs.Inventory != nil {
				quick.Amount -= bs.Inventory.Amount
			}
			km.QuickRatio = multRatio(&quick, bs.CurrentLiabilities)
		}
	}

	if isEmptyRatios(km) {
		return nil
	}
	return km
}

func isEmptyRatios(km *models.KeyFinancialMetrics) bool {
	return km.GrossMargin == nil && km.OperatingMargin == nil && km.NetProfitMargin == nil &&
		km.ReturnOnAssets == nil && km.ReturnOnEquity == nil && km.CurrentRatio == nil &&
		km.QuickRatio == nil && km.CashRatio == nil && km.DebtToEquity == nil &&
		km.DebtRatio == nil && km.InterestCoverage == nil && km.AssetTurnover == nil
}
