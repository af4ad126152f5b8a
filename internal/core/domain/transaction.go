package domain

// Transaction is a financial transaction record supplied by upstream
// extraction. The analytics engine consumes but does not own these.
type Transaction struct {
	// Description is the free-text transaction description.
	Description string `json:"description"`

	// Amount is the signed transaction amount.
	Amount float64 `json:"amount"`

	// Merchant is the merchant name, if known.
	Merchant string `json:"merchant,omitempty"`
}

// Forecast methods.
const (
	// ForecastMovingAverage is a constant-mean forecast over the last
	// three observations with a 95% normal-approximation band.
	ForecastMovingAverage = "moving_average"

	// ForecastInsufficientData is returned when fewer than three
	// observations are available.
	ForecastInsufficientData = "insufficient_data"
)

// ConfidenceBand is one (low, high) confidence interval pair.
type ConfidenceBand struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// ForecastResult holds a near-term expense forecast.
// The method is intentionally naive: a constant baseline, not a
// time-series model.
type ForecastResult struct {
	// Forecast is the predicted value for each future period.
	Forecast []float64 `json:"forecast"`

	// ConfidenceInterval is the 95% band for each predicted value.
	ConfidenceInterval []ConfidenceBand `json:"confidence_interval"`

	// Method tags how the forecast was produced.
	Method string `json:"method"`

	// Baseline is the mean the forecast repeats.
	Baseline float64 `json:"baseline"`
}

// CategorySummary aggregates transactions within one category.
type CategorySummary struct {
	Sum   float64 `json:"sum"`
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
}

// MerchantTotal is a merchant with its summed transaction amount.
type MerchantTotal struct {
	Merchant string  `json:"merchant"`
	Total    float64 `json:"total"`
}

// SpendingSummary aggregates a set of transactions.
// An empty input produces a zero summary, never an error.
type SpendingSummary struct {
	// TotalTransactions is the number of transactions analysed.
	TotalTransactions int `json:"total_transactions"`

	// TotalAmount is the sum of all amounts.
	TotalAmount float64 `json:"total_amount"`

	// AverageTransaction is the mean amount, zero when empty.
	AverageTransaction float64 `json:"average_transaction"`

	// ByCategory aggregates per category label.
	ByCategory map[string]CategorySummary `json:"by_category"`

	// TopMerchants holds up to five merchants by summed amount, descending.
	TopMerchants []MerchantTotal `json:"top_merchants"`
}
