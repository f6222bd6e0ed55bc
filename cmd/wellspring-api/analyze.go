package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wellspringapp/wellspring/backend/internal/models"
	"github.com/wellspringapp/wellspring/backend/internal/service"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [records.json]",
	Short: "Run the analytics engine over a records file",
	Long: `Read wellness records from a JSON file (an array of record objects),
run the full analytics pipeline offline, and print the insights report
as JSON to stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read records file: %w", err)
	}

	var records []models.WellnessRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("failed to parse records file: %w", err)
	}

	analytics := service.NewAnalyticsService(service.DefaultAnalysisOptions())
	report := analytics.BuildReport(records)

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	fmt.Println(string(out))
	return nil
}
