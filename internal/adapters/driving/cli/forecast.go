package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dkharche/FinWise-AI/internal/core/domain"
)

var (
	forecastPeriods int
	forecastJSON    bool
)

var forecastCmd = &cobra.Command{
	Use:   "forecast [totals.json | total...]",
	Short: "Forecast future spending from period totals",
	Long: `Forecasts spending for upcoming periods from a history of period
totals (e.g. monthly spend). Pass either a JSON file containing an
array of numbers, or the totals directly as arguments.

At least three historical totals are required; with fewer the result
is marked as insufficient data.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runForecast,
}

func init() {
	forecastCmd.Flags().IntVarP(&forecastPeriods, "periods", "p", 1, "number of future periods to forecast")
	forecastCmd.Flags().BoolVar(&forecastJSON, "json", false, "output the forecast as JSON")
	rootCmd.AddCommand(forecastCmd)
}

func runForecast(cmd *cobra.Command, args []string) error {
	if analyticsService == nil {
		return errors.New("analytics service not configured")
	}

	history, err := readHistory(args)
	if err != nil {
		return err
	}

	result := analyticsService.Forecast(history, forecastPeriods)

	if forecastJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal forecast: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if result.Method == domain.ForecastInsufficientData {
		cmd.Printf("Not enough history to forecast: need at least 3 totals, got %d.\n", len(history))
		return nil
	}

	cmd.Printf("Forecast (baseline %.2f, method %s):\n", result.Baseline, result.Method)
	for i, value := range result.Forecast {
		band := result.ConfidenceInterval[i]
		cmd.Printf("  period %d: %.2f  (95%% interval %.2f - %.2f)\n", i+1, value, band.Low, band.High)
	}

	return nil
}

// readHistory accepts either a single JSON file path or inline numbers.
func readHistory(args []string) ([]float64, error) {
	if len(args) == 1 {
		if _, err := os.Stat(args[0]); err == nil {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", args[0], err)
			}
			var history []float64
			if err := json.Unmarshal(data, &history); err != nil {
				return nil, fmt.Errorf("parse %s: %w", args[0], err)
			}
			return history, nil
		}
	}

	history := make([]float64, 0, len(args))
	for _, arg := range args {
		value, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid total %q: %w", arg, err)
		}
		history = append(history, value)
	}
	return history, nil
}
