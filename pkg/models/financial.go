package models

// MetricSource identifies the extraction strategy that produced a metric.
// When two sources report the same category at equal confidence, preference
// runs table > structured-fact > pattern.
type MetricSource string

const (
	SourceTable          MetricSource = "table"
	SourceStructuredFact MetricSource = "structured-fact"
	SourcePattern        MetricSource = "pattern"
)

// Priority returns the tie-break rank of a source (lower wins).
func (s MetricSource) Priority() int {
	switch s {
	case SourceTable:
		return 0
	case SourceStructuredFact:
		return 1
	case SourcePattern:
		return 2
	}
	return 3
}

// PeriodType classifies a reporting period.
type PeriodType string

const (
	PeriodAnnual    PeriodType = "ANNUAL"
	PeriodQuarterly PeriodType = "QUARTERLY"
)

// ExtendedFinancialMetric is one extracted line-item value with full
// provenance. RawValue is in whole currency units (unit scaling already
// applied) except for per-share categories.
type ExtendedFinancialMetric struct {
	Name           string            `json:"name"`
	FormattedValue string            `json:"formatted_value"`
	RawValue       *float64          `json:"raw_value,omitempty"`
	Unit           UnitScale         `json:"unit,omitempty"`
	Category       CanonicalCategory `json:"category,omitempty"`
	Period         string            `json:"period,omitempty"`
	PeriodType     PeriodType        `json:"period_type,omitempty"`
	Source         MetricSource      `json:"source"`
	Confidence     float64           `json:"confidence"`
	YoYChange      *float64          `json:"yoy_change,omitempty"`
	Context        string            `json:"context,omitempty"`
}

// MonetaryValue is a single reported amount with extraction confidence.
type MonetaryValue struct {
	Amount     float64  `json:"amount"`
	YoYChange  *float64 `json:"yoy_change,omitempty"`
	Confidence float64  `json:"confidence"`
	Formatted  string   `json:"formatted,omitempty"`
}

// IncomeStatement holds canonical income statement line items. Nil means the
// item was not found in the filing.
type IncomeStatement struct {
	Revenue         *MonetaryValue `json:"revenue,omitempty"`
	CostOfRevenue   *MonetaryValue `json:"cost_of_revenue,omitempty"`
	GrossProfit     *MonetaryValue `json:"gross_profit,omitempty"`
	OperatingIncome *MonetaryValue `json:"operating_income,omitempty"`
	NetIncome       *MonetaryValue `json:"net_income,omitempty"`
	EBITDA          *MonetaryValue `json:"ebitda,omitempty"`
	RDExpense       *MonetaryValue `json:"rd_expense,omitempty"`
	SGAExpense      *MonetaryValue `json:"sga_expense,omitempty"`
	InterestExpense *MonetaryValue `json:"interest_expense,omitempty"`
	IncomeTax       *MonetaryValue `json:"income_tax,omitempty"`
	EPSBasic        *MonetaryValue `json:"eps_basic,omitempty"`
	EPSDiluted      *MonetaryValue `json:"eps_diluted,omitempty"`
}

// BalanceSheet holds canonical balance sheet line items.
type BalanceSheet struct {
	TotalAssets        *MonetaryValue `json:"total_assets,omitempty"`
	CurrentAssets      *MonetaryValue `json:"current_assets,omitempty"`
	Cash               *MonetaryValue `json:"cash,omitempty"`
	Receivables        *MonetaryValue `json:"receivables,omitempty"`
	Inventory          *MonetaryValue `json:"inventory,omitempty"`
	TotalLiabilities   *MonetaryValue `json:"total_liabilities,omitempty"`
	CurrentLiabilities *MonetaryValue `json:"current_liabilities,omitempty"`
	LongTermDebt       *MonetaryValue `json:"long_term_debt,omitempty"`
	Payables           *MonetaryValue `json:"payables,omitempty"`
	TotalEquity        *MonetaryValue `json:"total_equity,omitempty"`
	RetainedEarnings   *MonetaryValue `json:"retained_earnings,omitempty"`
}

// CashFlowStatement holds canonical cash flow line items.
type CashFlowStatement struct {
	OperatingCashFlow *MonetaryValue `json:"operating_cash_flow,omitempty"`
	InvestingCashFlow *MonetaryValue `json:"investing_cash_flow,omitempty"`
	FinancingCashFlow *MonetaryValue `json:"financing_cash_flow,omitempty"`
	CapEx             *MonetaryValue `json:"capex,omitempty"`
	FreeCashFlow      *MonetaryValue `json:"free_cash_flow,omitempty"`
}

// KeyFinancialMetrics are computed ratios. A nil field means the inputs were
// absent or the denominator was zero; ratios are never reported as Inf/NaN.
// Margin and return fields are percentages, the rest are multiples.
type KeyFinancialMetrics struct {
	GrossMargin      *float64 `json:"gross_margin,omitempty"`
	OperatingMargin  *float64 `json:"operating_margin,omitempty"`
	NetProfitMargin  *float64 `json:"net_profit_margin,omitempty"`
	ReturnOnAssets   *float64 `json:"return_on_assets,omitempty"`
	ReturnOnEquity   *float64 `json:"return_on_equity,omitempty"`
	CurrentRatio     *float64 `json:"current_ratio,omitempty"`
	QuickRatio       *float64 `json:"quick_ratio,omitempty"`
	CashRatio        *float64 `json:"cash_ratio,omitempty"`
	DebtToEquity     *float64 `json:"debt_to_equity,omitempty"`
	DebtRatio        *float64 `json:"debt_ratio,omitempty"`
	InterestCoverage *float64 `json:"interest_coverage,omitempty"`
	AssetTurnover    *float64 `json:"asset_turnover,omitempty"`
}

// DataQuality grades how much of the core statement was reconstructed.
type DataQuality string

const (
	QualityHigh    DataQuality = "HIGH"
	QualityMedium  DataQuality = "MEDIUM"
	QualityLow     DataQuality = "LOW"
	QualityUnknown DataQuality = "UNKNOWN"
)

// StructuredFinancialData aggregates the reconstructed statements and ratios.
type StructuredFinancialData struct {
	IncomeStatement   *IncomeStatement     `json:"income_statement,omitempty"`
	BalanceSheet      *BalanceSheet        `json:"balance_sheet,omitempty"`
	CashFlowStatement *CashFlowStatement   `json:"cash_flow_statement,omitempty"`
	KeyMetrics        *KeyFinancialMetrics `json:"key_metrics,omitempty"`
	DataQuality       DataQuality          `json:"data_quality"`
	ParsingConfidence float64              `json:"parsing_confidence"`
}

// RiskSeverity grades a risk factor.
type RiskSeverity string

const (
	RiskLow      RiskSeverity = "LOW"
	RiskMedium   RiskSeverity = "MEDIUM"
	RiskHigh     RiskSeverity = "HIGH"
	RiskCritical RiskSeverity = "CRITICAL"
)

// RiskFactor is one discrete risk item extracted from a filing.
type RiskFactor struct {
	Title    string       `json:"title"`
	Summary  string       `json:"summary"`
	Category string       `json:"category,omitempty"`
	Severity RiskSeverity `json:"severity"`
}

// GrowthMetric is a period-over-period growth observation. GrowthPct is nil
// when the prior value is zero (undefined growth).
type GrowthMetric struct {
	Label      string   `json:"label"`
	Period     string   `json:"period,omitempty"`
	Current    float64  `json:"current"`
	Prior      float64  `json:"prior"`
	GrowthPct  *float64 `json:"growth_pct,omitempty"`
	Flagged    bool     `json:"flagged,omitempty"` // beyond the sanity threshold but still reported
	PeriodType PeriodType `json:"period_type,omitempty"`
}

// AnomalySeverity grades a z-score anomaly.
type AnomalySeverity string

const (
	AnomalyNone     AnomalySeverity = "NONE"
	AnomalyMedium   AnomalySeverity = "MEDIUM"
	AnomalyHigh     AnomalySeverity = "HIGH"
	AnomalyCritical AnomalySeverity = "CRITICAL"
)

// AnomalyDetection is the z-score test of a current value against its
// historical series. InsufficientData is set when fewer than three historical
// points were available; the remaining fields are then zero.
type AnomalyDetection struct {
	Label            string          `json:"label"`
	Current          float64         `json:"current"`
	Mean             float64         `json:"mean"`
	StdDev           float64         `json:"std_dev"`
	ZScore           float64         `json:"z_score"`
	Severity         AnomalySeverity `json:"severity"`
	InsufficientData bool            `json:"insufficient_data,omitempty"`
}

// TrendDirection classifies a margin trend.
type TrendDirection string

const (
	TrendImproving TrendDirection = "IMPROVING"
	TrendStable    TrendDirection = "STABLE"
	TrendDeclining TrendDirection = "DECLINING"
)

// MarginTrend compares the first and last margin in a series.
type MarginTrend struct {
	Label       string         `json:"label"`
	Direction   TrendDirection `json:"direction"`
	FirstMargin float64        `json:"first_margin"`
	LastMargin  float64        `json:"last_margin"`
	ChangePts   float64        `json:"change_pts"`
	Volatility  float64        `json:"volatility"` // mean absolute period-over-period change
}

// EnrichmentAnnotations are supplementary annotations an optional enrichment
// service may attach. They only ever add information; core fields are never
// modified by enrichment.
type EnrichmentAnnotations struct {
	Sentiment      string   `json:"sentiment,omitempty"`
	SentimentScore *float64 `json:"sentiment_score,omitempty"`
	Entities       []string `json:"entities,omitempty"`
	Topics         []string `json:"topics,omitempty"`
	Provider       string   `json:"provider,omitempty"`
}

// AnalysisResult is the full pipeline output. All fields are empty-safe:
// malformed input degrades to empty collections and QualityUnknown, never to
// an error.
type AnalysisResult struct {
	AnalysisID        string                    `json:"analysis_id"`
	CompanyName       string                    `json:"company_name,omitempty"`
	ReportType        FormType                  `json:"report_type,omitempty"`
	PeriodEnding      string                    `json:"period_ending,omitempty"`
	FiscalPeriod      *FiscalPeriod             `json:"fiscal_period,omitempty"`
	Metrics           []ExtendedFinancialMetric `json:"metrics"`
	StructuredData    StructuredFinancialData   `json:"structured_data"`
	RiskFactors       []RiskFactor              `json:"risk_factors"`
	Sections          SectionMap                `json:"sections"`
	DataQuality       DataQuality               `json:"data_quality"`
	ParsingConfidence float64                   `json:"parsing_confidence"`
	Enrichment        *EnrichmentAnnotations    `json:"enrichment,omitempty"`
}
