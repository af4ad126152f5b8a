package services

import (
	"math"
	"sort"
	"strings"

	"github.com/dkharche/FinWise-AI/internal/core/domain"
	"github.com/dkharche/FinWise-AI/internal/core/ports/driving"
	"github.com/dkharche/FinWise-AI/internal/logger"
)

// Ensure AnalyticsEngine implements the interface.
var _ driving.AnalyticsService = (*AnalyticsEngine)(nil)

// DefaultAnomalyThreshold is the default z-score multiple for flagging
// anomalous transaction amounts.
const DefaultAnomalyThreshold = 2.0

// CategoryOther is assigned when no keyword matches.
const CategoryOther = "Other"

// categoryRule maps a category label to its keyword list.
// The table is static configuration, not learned, and its order is the
// deterministic iteration order for classification: first match wins.
type categoryRule struct {
	category string
	keywords []string
}

// categoryRules is the fixed expense categorisation table.
var categoryRules = []categoryRule{
	{"Food & Dining", []string{"grocery", "food", "restaurant", "cafe", "dining", "pizza", "burger"}},
	{"Transportation", []string{"gas", "fuel", "transport", "uber", "lyft", "taxi", "parking"}},
	{"Housing", []string{"rent", "mortgage", "property", "lease"}},
	{"Utilities", []string{"utility", "electric", "water", "gas bill", "internet", "phone"}},
	{"Healthcare", []string{"medical", "doctor", "pharmacy", "hospital", "health"}},
	{"Entertainment", []string{"movie", "theater", "concert", "game", "netflix", "spotify"}},
	{"Shopping", []string{"amazon", "store", "mall", "shop", "retail"}},
	{"Insurance", []string{"insurance", "policy", "premium"}},
	{"Education", []string{"school", "tuition", "course", "book"}},
}

// AnalyticsEngine runs deterministic, explainable analytics over
// transaction records. It holds no state and is safe for concurrent use.
type AnalyticsEngine struct{}

// NewAnalyticsEngine creates a new analytics engine.
func NewAnalyticsEngine() *AnalyticsEngine {
	return &AnalyticsEngine{}
}

// Categorize assigns a category to each transaction by case-insensitive
// substring match against the keyword table. Transactions matching no
// keyword are labelled "Other".
func (e *AnalyticsEngine) Categorize(transactions []domain.Transaction) []string {
	logger.Debug("Categorising %d transactions", len(transactions))

	categories := make([]string, len(transactions))
	for i, tx := range transactions {
		categories[i] = categorize(tx.Description)
	}
	return categories
}

func categorize(description string) string {
	description = strings.ToLower(description)
	for _, rule := range categoryRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(description, keyword) {
				return rule.category
			}
		}
	}
	return CategoryOther
}

// DetectAnomalies flags transactions whose absolute amount deviates from
// the mean of all absolute amounts by more than threshold population
// standard deviations. With fewer than two transactions, or when there is
// no variance to measure against, nothing is flagged.
func (e *AnalyticsEngine) DetectAnomalies(transactions []domain.Transaction, threshold float64) []bool {
	logger.Debug("Detecting anomalies in %d transactions (threshold %.2f)",
		len(transactions), threshold)

	flags := make([]bool, len(transactions))
	if len(transactions) < 2 {
		return flags
	}

	amounts := make([]float64, len(transactions))
	for i, tx := range transactions {
		amounts[i] = math.Abs(tx.Amount)
	}

	m := mean(amounts)
	sd := populationStd(amounts, m)
	if sd == 0 {
		return flags
	}

	for i, amount := range amounts {
		flags[i] = math.Abs(amount-m) > threshold*sd
	}
	return flags
}

// Forecast predicts the next periods values as the mean of the last three
// observations, with a 95% normal-approximation band around that constant
// baseline. This is intentionally naive, not a time-series model; the
// formulas are preserved for compatibility. Fewer than three observations
// yield an explicit insufficient-data result.
func (e *AnalyticsEngine) Forecast(history []float64, periods int) domain.ForecastResult {
	logger.Debug("Forecasting %d periods from %d observations", periods, len(history))

	if len(history) < 3 {
		return domain.ForecastResult{
			Forecast:           []float64{},
			ConfidenceInterval: []domain.ConfidenceBand{},
			Method:             domain.ForecastInsufficientData,
		}
	}

	recent := history[len(history)-3:]
	m := mean(recent)
	sd := sampleStd(recent, m)

	forecast := make([]float64, periods)
	interval := make([]domain.ConfidenceBand, periods)
	for i := range forecast {
		forecast[i] = m
		interval[i] = domain.ConfidenceBand{
			Low:  m - 1.96*sd,
			High: m + 1.96*sd,
		}
	}

	return domain.ForecastResult{
		Forecast:           forecast,
		ConfidenceInterval: interval,
		Method:             domain.ForecastMovingAverage,
		Baseline:           m,
	}
}

// Summarize aggregates spending by category and merchant. Empty input
// yields a zero summary, not an error.
func (e *AnalyticsEngine) Summarize(transactions []domain.Transaction) domain.SpendingSummary {
	logger.Debug("Summarising %d transactions", len(transactions))

	summary := domain.SpendingSummary{
		TotalTransactions: len(transactions),
		ByCategory:        make(map[string]domain.CategorySummary),
		TopMerchants:      []domain.MerchantTotal{},
	}
	if len(transactions) == 0 {
		return summary
	}

	merchantTotals := make(map[string]float64)
	for _, tx := range transactions {
		summary.TotalAmount += tx.Amount

		category := categorize(tx.Description)
		cs := summary.ByCategory[category]
		cs.Sum += tx.Amount
		cs.Count++
		summary.ByCategory[category] = cs

		if tx.Merchant != "" {
			merchantTotals[tx.Merchant] += tx.Amount
		}
	}
	summary.AverageTransaction = summary.TotalAmount / float64(len(transactions))

	for category, cs := range summary.ByCategory {
		cs.Mean = cs.Sum / float64(cs.Count)
		summary.ByCategory[category] = cs
	}

	merchants := make([]domain.MerchantTotal, 0, len(merchantTotals))
	for merchant, total := range merchantTotals {
		merchants = append(merchants, domain.MerchantTotal{Merchant: merchant, Total: total})
	}
	sort.Slice(merchants, func(i, j int) bool {
		if merchants[i].Total != merchants[j].Total {
			return merchants[i].Total > merchants[j].Total
		}
		return merchants[i].Merchant < merchants[j].Merchant
	})
	if len(merchants) > 5 {
		merchants = merchants[:5]
	}
	summary.TopMerchants = merchants

	return summary
}

// mean returns the arithmetic mean. Callers guarantee a non-empty slice.
func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// populationStd returns the population standard deviation around m.
func populationStd(values []float64, m float64) float64 {
	var sq float64
	for _, v := range values {
		d := v - m
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values)))
}

// sampleStd returns the sample standard deviation (n-1 divisor) around m.
// The forecast band uses the sample estimator; anomaly detection uses the
// population one. The asymmetry is historical and kept for compatibility.
func sampleStd(values []float64, m float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var sq float64
	for _, v := range values {
		d := v - m
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values)-1))
}
