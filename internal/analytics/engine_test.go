package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mkhattak/paisa/internal/model"
)

func TestDetectAnomaly(t *testing.T) {
	tests := []struct {
		name   string
		recent []float64
		amount float64
		want   bool
	}{
		{
			name:   "no history never flags",
			amount: 1_000_000,
			recent: nil,
			want:   false,
		},
		{
			name:   "four prior values never flags",
			amount: 1_000_000,
			recent: []float64{1, 2, 3, 4},
			want:   false,
		},
		{
			name:   "large outlier against flat history",
			amount: 1000,
			recent: []float64{100, 100, 100, 100, 100},
			want:   true,
		},
		{
			name:   "value near the mean",
			amount: 100,
			recent: []float64{100, 102, 98, 101, 99},
			want:   false,
		},
		{
			name:   "value far from the mean",
			amount: 200,
			recent: []float64{100, 102, 98, 101, 99},
			want:   true,
		},
		{
			name:   "inflated sigma masks a moderate spike",
			amount: 500,
			recent: []float64{100, 100, 100, 100, 2000},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectAnomaly(tt.amount, tt.recent))
		})
	}
}

// With zero variance, sigma is zero and any deviation from the mean exceeds
// 2*sigma. This is documented behavior, not an accident to be fixed.
func TestDetectAnomaly_ZeroVariance(t *testing.T) {
	flat := []float64{100, 100, 100, 100, 100}

	assert.False(t, DetectAnomaly(100, flat), "exact mean is not anomalous")
	assert.True(t, DetectAnomaly(100.01, flat), "any deviation trips on zero variance")
	assert.True(t, DetectAnomaly(99.99, flat))
}

func TestForecastNextPeriod(t *testing.T) {
	tests := []struct {
		name    string
		history []float64
		want    float64
	}{
		{
			name:    "empty history forecasts zero",
			history: nil,
			want:    0,
		},
		{
			name:    "single value",
			history: []float64{100},
			want:    102,
		},
		{
			name:    "two values",
			history: []float64{100, 200},
			want:    153,
		},
		{
			name:    "exact window",
			history: []float64{100, 200, 300},
			want:    204,
		},
		{
			name:    "only the trailing window counts",
			history: []float64{1_000_000, 100, 200, 300},
			want:    204,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ForecastNextPeriod(tt.history), 1e-9)
		})
	}
}

func TestMonthlyExpenseSeries(t *testing.T) {
	date := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	transactions := []model.Transaction{
		{Date: date(2024, time.February, 3), Amount: -50},
		{Date: date(2024, time.January, 10), Amount: -100},
		{Date: date(2024, time.January, 20), Amount: -25.5},
		{Date: date(2024, time.January, 31), Amount: 5000}, // income, ignored
		{Date: date(2024, time.March, 1), Amount: -10},
	}

	months := MonthlyExpenseSeries(transactions)

	assert.Equal(t, []MonthTotal{
		{Month: "2024-01", Total: 125.5},
		{Month: "2024-02", Total: 50},
		{Month: "2024-03", Total: 10},
	}, months)

	assert.Equal(t, []float64{125.5, 50, 10}, Series(months))
}

func TestMonthlyExpenseSeries_Empty(t *testing.T) {
	assert.Empty(t, MonthlyExpenseSeries(nil))
	assert.InDelta(t, 0, ForecastNextPeriod(Series(MonthlyExpenseSeries(nil))), 1e-9)
}
