package driving

import "github.com/dkharche/FinWise-AI/internal/core/domain"

// AnalyticsService runs deterministic analytic passes over transaction
// records extracted upstream. Every method is a pure function: edge
// cases (empty input, too little data, zero variance) are modelled as
// explicit result values, never as errors.
type AnalyticsService interface {
	// Categorize assigns each transaction the first matching category
	// from a fixed keyword table, or "Other".
	Categorize(transactions []domain.Transaction) []string

	// DetectAnomalies flags transactions whose absolute amount deviates
	// from the mean by more than threshold standard deviations.
	DetectAnomalies(transactions []domain.Transaction, threshold float64) []bool

	// Forecast predicts the next periods totals from history using a
	// constant moving-average baseline with a 95% band.
	Forecast(history []float64, periods int) domain.ForecastResult

	// Summarize aggregates transactions by category and merchant.
	Summarize(transactions []domain.Transaction) domain.SpendingSummary
}
