// Package trend computes multi-period growth, CAGR, z-score anomaly, and
// margin trend signals over time series of reported values.
//
// All series arguments run oldest to newest. Undefined results (zero prior,
// non-positive CAGR base, short history) come back as nil or an
// insufficient-data marker, never as an error or an infinity.
package trend

import (
	"math"

	"filinglens/pkg/models"
)

// growthSanityThreshold flags growth magnitudes that are almost certainly a
// parsing artifact. Flagged growth is still returned — the caller decides
// what to do with it.
const growthSanityThreshold = 1000.0

// Growth computes period-over-period growth. GrowthPct is nil when the
// prior value is zero (undefined), matching the convention that absent and
// zero results must stay distinguishable.
func Growth(label string, current, prior float64, pt models.PeriodType) models.GrowthMetric {
	g := models.GrowthMetric{
		Label:      label,
		Current:    current,
		Prior:      prior,
		PeriodType: pt,
	}
	if prior == 0 {
		return g
	}
	pct := (current - prior) / math.Abs(prior) * 100
	g.GrowthPct = &pct
	g.Flagged = math.Abs(pct) > growthSanityThreshold
	return g
}

// GrowthSeries computes growth between each consecutive pair in a series
// (oldest first). A series of n values yields n-1 growth observations.
func GrowthSeries(label string, series []float64, pt models.PeriodType) []models.GrowthMetric {
	if len(series) < 2 {
		return nil
	}
	out := make([]models.GrowthMetric, 0, len(series)-1)
	for i := 1; i < len(series); i++ {
		out = append(out, Growth(label, series[i], series[i-1], pt))
	}
	return out
}

// CAGR computes compound annual growth rate as a percentage. Nil when the
// beginning value is non-positive or the span is non-positive.
func CAGR(begin, end float64, years float64) *float64 {
	if begin <= 0 || years <= 0 {
		return nil
	}
	v := (math.Pow(end/begin, 1.0/years) - 1) * 100
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// Anomaly severity thresholds in standard-deviation units.
const (
	zMedium   = 1.5
	zHigh     = 2.0
	zCritical = 3.0
)

// DetectAnomaly scores the current value against its history using a
// population z-score. Fewer than three historical points yields an
// insufficient-data result, not an error.
func DetectAnomaly(label string, history []float64, current float64) models.AnomalyDetection {
	if len(history) < 3 {
		return models.AnomalyDetection{
			Label:            label,
			Current:          current,
			Severity:         models.AnomalyNone,
			InsufficientData: true,
		}
	}

	mean := 0.0
	for _, v := range history {
		mean += v
	}
	mean /= float64(len(history))

	variance := 0.0
	for _, v := range history {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(history))
	stddev := math.Sqrt(variance)

	det := models.AnomalyDetection{
		Label:   label,
		Current: current,
		Mean:    mean,
		StdDev:  stddev,
	}

	if stddev == 0 {
		// Constant history: any deviation at all is maximally anomalous.
		if current == mean {
			det.Severity = models.AnomalyNone
		} else {
			det.Severity = models.AnomalyCritical
		}
		return det
	}

	det.ZScore = (current - mean) / stddev
	det.Severity = severityOf(det.ZScore)
	return det
}

func severityOf(z float64) models.AnomalySeverity {
	abs := math.Abs(z)
	switch {
	case abs > zCritical:
		return models.AnomalyCritical
	case abs > zHigh:
		return models.AnomalyHigh
	case abs > zMedium:
		return models.AnomalyMedium
	default:
		return models.AnomalyNone
	}
}

// marginStableBand is the percentage-point threshold inside which a margin
// move counts as stable.
const marginStableBand = 2.0

// MarginTrendOf compares the first and last margin in a series (oldest
// first, values in percentage points) and measures volatility as the mean
// absolute period-over-period change. Nil for fewer than two points.
func MarginTrendOf(label string, margins []float64) *models.MarginTrend {
	if len(margins) < 2 {
		return nil
	}

	first, last := margins[0], margins[len(margins)-1]
	change := last - first

	direction := models.TrendStable
	if change > marginStableBand {
		direction = models.TrendImproving
	} else if change < -marginStableBand {
		direction = models.TrendDeclining
	}

	sumAbs := 0.0
	for i := 1; i < len(margins); i++ {
		sumAbs += math.Abs(margins[i] - margins[i-1])
	}

	return &models.MarginTrend{
		Label:       label,
		Direction:   direction,
		FirstMargin: first,
		LastMargin:  last,
		ChangePts:   change,
		Volatility:  sumAbs / float64(len(margins)-1),
	}
}
