package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkharche/FinWise-AI/internal/core/domain"
)

func TestAnalyticsEngine_Categorize(t *testing.T) {
	engine := NewAnalyticsEngine()

	tests := []struct {
		name        string
		description string
		want        string
	}{
		{"grocery keyword", "Grocery run at Walmart", "Food & Dining"},
		{"case insensitive", "GROCERY STORE", "Food & Dining"},
		{"rideshare", "Uber trip downtown", "Transportation"},
		{"rent", "Monthly rent payment", "Housing"},
		{"streaming", "Netflix subscription", "Entertainment"},
		{"pharmacy", "CVS pharmacy refill", "Healthcare"},
		{"insurance premium", "Auto insurance premium", "Insurance"},
		{"tuition", "Spring tuition payment", "Education"},
		{"no match", "xyz123", "Other"},
		{"empty description", "", "Other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Categorize([]domain.Transaction{{Description: tt.description}})
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0])
		})
	}
}

func TestAnalyticsEngine_Categorize_FirstMatchWins(t *testing.T) {
	engine := NewAnalyticsEngine()

	// "gas" (Transportation) appears before "gas bill" (Utilities) in the
	// table, so a gas bill is classified as Transportation.
	got := engine.Categorize([]domain.Transaction{{Description: "gas bill payment"}})
	assert.Equal(t, []string{"Transportation"}, got)
}

func TestAnalyticsEngine_Categorize_Empty(t *testing.T) {
	engine := NewAnalyticsEngine()
	assert.Empty(t, engine.Categorize(nil))
}

func TestAnalyticsEngine_DetectAnomalies(t *testing.T) {
	engine := NewAnalyticsEngine()

	t.Run("outlier flagged", func(t *testing.T) {
		txns := []domain.Transaction{
			{Amount: -10}, {Amount: -12}, {Amount: -11},
			{Amount: -9}, {Amount: -10}, {Amount: -500},
		}
		flags := engine.DetectAnomalies(txns, DefaultAnomalyThreshold)
		require.Len(t, flags, 6)
		assert.True(t, flags[5])
		for i := 0; i < 5; i++ {
			assert.False(t, flags[i], "transaction %d should not be flagged", i)
		}
	})

	t.Run("sign is ignored", func(t *testing.T) {
		withNegative := []domain.Transaction{
			{Amount: -10}, {Amount: -12}, {Amount: -11}, {Amount: -500},
		}
		withPositive := []domain.Transaction{
			{Amount: 10}, {Amount: 12}, {Amount: 11}, {Amount: 500},
		}
		assert.Equal(t,
			engine.DetectAnomalies(withNegative, DefaultAnomalyThreshold),
			engine.DetectAnomalies(withPositive, DefaultAnomalyThreshold),
		)
	})

	t.Run("single transaction never flagged", func(t *testing.T) {
		flags := engine.DetectAnomalies([]domain.Transaction{{Amount: -1000000}}, DefaultAnomalyThreshold)
		assert.Equal(t, []bool{false}, flags)
	})

	t.Run("identical amounts never flagged", func(t *testing.T) {
		txns := []domain.Transaction{{Amount: -50}, {Amount: -50}, {Amount: -50}}
		flags := engine.DetectAnomalies(txns, DefaultAnomalyThreshold)
		assert.Equal(t, []bool{false, false, false}, flags)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, engine.DetectAnomalies(nil, DefaultAnomalyThreshold))
	})
}

func TestAnalyticsEngine_Forecast(t *testing.T) {
	engine := NewAnalyticsEngine()

	t.Run("moving average baseline", func(t *testing.T) {
		result := engine.Forecast([]float64{10, 12, 11}, 2)

		assert.Equal(t, domain.ForecastMovingAverage, result.Method)
		assert.InDelta(t, 11, result.Baseline, 1e-9)
		require.Len(t, result.Forecast, 2)
		assert.InDelta(t, 11, result.Forecast[0], 1e-9)
		assert.InDelta(t, 11, result.Forecast[1], 1e-9)

		// Sample std of {10, 12, 11} is 1; the 95% band is baseline ± 1.96.
		require.Len(t, result.ConfidenceInterval, 2)
		assert.InDelta(t, 11-1.96, result.ConfidenceInterval[0].Low, 1e-9)
		assert.InDelta(t, 11+1.96, result.ConfidenceInterval[0].High, 1e-9)
	})

	t.Run("only the last three observations matter", func(t *testing.T) {
		result := engine.Forecast([]float64{1000, 2000, 10, 12, 11}, 1)
		assert.InDelta(t, 11, result.Baseline, 1e-9)
	})

	t.Run("insufficient history", func(t *testing.T) {
		result := engine.Forecast([]float64{5}, 3)

		assert.Equal(t, domain.ForecastInsufficientData, result.Method)
		assert.Empty(t, result.Forecast)
		assert.Empty(t, result.ConfidenceInterval)
		assert.Zero(t, result.Baseline)
	})

	t.Run("empty history", func(t *testing.T) {
		result := engine.Forecast(nil, 1)
		assert.Equal(t, domain.ForecastInsufficientData, result.Method)
	})
}

func TestAnalyticsEngine_Summarize(t *testing.T) {
	engine := NewAnalyticsEngine()

	t.Run("aggregates by category and merchant", func(t *testing.T) {
		txns := []domain.Transaction{
			{Description: "Grocery store", Amount: -40, Merchant: "Walmart"},
			{Description: "Grocery store", Amount: -60, Merchant: "Walmart"},
			{Description: "Monthly rent", Amount: -1200, Merchant: "Acme Properties"},
			{Description: "Mystery charge", Amount: -10},
		}

		summary := engine.Summarize(txns)

		assert.Equal(t, 4, summary.TotalTransactions)
		assert.InDelta(t, -1310, summary.TotalAmount, 1e-9)
		assert.InDelta(t, -327.5, summary.AverageTransaction, 1e-9)

		food := summary.ByCategory["Food & Dining"]
		assert.InDelta(t, -100, food.Sum, 1e-9)
		assert.Equal(t, 2, food.Count)
		assert.InDelta(t, -50, food.Mean, 1e-9)

		other := summary.ByCategory[CategoryOther]
		assert.Equal(t, 1, other.Count)

		// Merchants sorted by summed amount descending.
		require.Len(t, summary.TopMerchants, 2)
		assert.Equal(t, "Walmart", summary.TopMerchants[0].Merchant)
		assert.InDelta(t, -100, summary.TopMerchants[0].Total, 1e-9)
		assert.Equal(t, "Acme Properties", summary.TopMerchants[1].Merchant)
	})

	t.Run("top merchants capped at five", func(t *testing.T) {
		txns := make([]domain.Transaction, 0, 7)
		for _, m := range []string{"A", "B", "C", "D", "E", "F", "G"} {
			txns = append(txns, domain.Transaction{Description: "shop", Amount: -10, Merchant: m})
		}

		summary := engine.Summarize(txns)
		assert.Len(t, summary.TopMerchants, 5)
	})

	t.Run("empty input yields zero summary", func(t *testing.T) {
		summary := engine.Summarize(nil)

		assert.Zero(t, summary.TotalTransactions)
		assert.Zero(t, summary.TotalAmount)
		assert.Zero(t, summary.AverageTransaction)
		assert.Empty(t, summary.ByCategory)
		assert.Empty(t, summary.TopMerchants)
	})
}
