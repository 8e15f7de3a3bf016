// Package analytics provides anomaly detection and expense forecasting over
// numeric transaction series. All functions are pure and safe for concurrent
// use.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/mkhattak/paisa/internal/model"
)

const (
	// minHistory is the number of prior values required before anomaly
	// detection activates. Below this the detector never flags, so cold-start
	// data cannot produce false positives.
	minHistory = 5

	// sigmaThreshold flags values more than this many standard deviations
	// from the mean.
	sigmaThreshold = 2.0

	// forecastWindow is how many trailing periods feed the moving average.
	forecastWindow = 3

	// growthFactor applies a fixed 2% growth assumption to the forecast.
	growthFactor = 1.02
)

// DetectAnomaly reports whether amount is a two-sigma outlier relative to
// recent history. With fewer than five prior values it always returns false.
//
// The population standard deviation is used, not a robust estimator: a single
// very large prior value inflates sigma and can mask later anomalies. When
// every prior value is identical sigma is zero and any deviation from the
// mean is flagged.
func DetectAnomaly(amount float64, recent []float64) bool {
	if len(recent) < minHistory {
		return false
	}

	mean := mean(recent)

	var variance float64
	for _, v := range recent {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(len(recent))
	stdDev := math.Sqrt(variance)

	return math.Abs(amount-mean) > sigmaThreshold*stdDev
}

// ForecastNextPeriod estimates the next period's total from history using a
// moving average of the last three values with a fixed 2% growth drift.
// An empty history forecasts zero.
func ForecastNextPeriod(history []float64) float64 {
	if len(history) == 0 {
		return 0
	}

	start := len(history) - forecastWindow
	if start < 0 {
		start = 0
	}

	return mean(history[start:]) * growthFactor
}

// MonthTotal is the absolute expense total for one calendar month.
type MonthTotal struct {
	Month string
	Total float64
}

// MonthlyExpenseSeries groups expense transactions into calendar months and
// returns the absolute totals in chronological order. Income transactions
// are ignored.
func MonthlyExpenseSeries(transactions []model.Transaction) []MonthTotal {
	totals := make(map[string]float64)
	for _, txn := range transactions {
		if !txn.IsExpense() {
			continue
		}
		key := monthKey(txn.Date)
		totals[key] += math.Abs(txn.Amount)
	}

	months := make([]string, 0, len(totals))
	for month := range totals {
		months = append(months, month)
	}
	sort.Strings(months)

	series := make([]MonthTotal, len(months))
	for i, month := range months {
		series[i] = MonthTotal{Month: month, Total: totals[month]}
	}
	return series
}

// Series extracts the totals from a monthly series, oldest first.
func Series(months []MonthTotal) []float64 {
	values := make([]float64, len(months))
	for i, m := range months {
		values[i] = m.Total
	}
	return values
}

func monthKey(t time.Time) string {
	return t.Format("2006-01")
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
