package training

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
)

// Side-effect files written next to the artifact triple.
const (
	metricsFileName = "model_comparison.csv"
	reportFileName  = "training_report.md"
)

// WriteMetricsCSV writes the full comparison table, one row per candidate in
// ranked order, and returns the file path.
func WriteMetricsCSV(dir string, results []CandidateResult) (string, error) {
	path := filepath.Join(dir, metricsFileName)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating metrics csv: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	header := []string{
		"model", "capability",
		"train_accuracy", "train_balanced_accuracy",
		"train_precision_macro", "train_recall_macro", "train_f1_macro",
		"train_precision_weighted", "train_recall_weighted", "train_f1_weighted",
		"train_mcc", "train_roc_auc",
		"test_accuracy", "test_balanced_accuracy",
		"test_precision_macro", "test_recall_macro", "test_f1_macro",
		"test_precision_weighted", "test_recall_weighted", "test_f1_weighted",
		"test_mcc", "test_roc_auc",
	}
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("writing metrics header: %w", err)
	}

	for _, res := range results {
		row := []string{res.Name, res.Capability.String()}
		row = append(row, metricCells(res.Train)...)
		row = append(row, metricCells(res.Test)...)
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("writing metrics row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flushing metrics csv: %w", err)
	}

	return path, nil
}

// WriteReport writes the human-readable markdown report naming the winner
// and the selection rationale, and returns the file path.
func WriteReport(dir string, result *Result) (string, error) {
	path := filepath.Join(dir, reportFileName)

	var b strings.Builder
	b.WriteString("# Role Classifier Training Report\n\n")
	fmt.Fprintf(&b, "- Rows used: %d (train %d / test %d)\n", result.Rows, result.TrainRows, result.TestRows)
	fmt.Fprintf(&b, "- Roles: %s\n", strings.Join(result.Classes, ", "))
	fmt.Fprintf(&b, "- Selected model: **%s**\n\n", result.Winner)

	b.WriteString("Selection ranks candidates by held-out macro-F1, then weighted-F1, ")
	b.WriteString("balanced accuracy and accuracy; exact ties fall back to a fixed ")
	b.WriteString("family order that prefers linear models.\n\n")

	b.WriteString("| model | capability | test macro-F1 | test weighted-F1 | test balanced acc | test accuracy | test MCC | test ROC-AUC |\n")
	b.WriteString("|---|---|---|---|---|---|---|---|\n")
	for _, res := range result.Candidates {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s |\n",
			res.Name, res.Capability.String(),
			formatMetric(res.Test.F1Macro),
			formatMetric(res.Test.F1Weighted),
			formatMetric(res.Test.BalancedAccuracy),
			formatMetric(res.Test.Accuracy),
			formatMetric(res.Test.MCC),
			formatMetric(res.Test.ROCAUC),
		)
	}

	b.WriteString("\nThe full metric table, including training-split values, is in ")
	fmt.Fprintf(&b, "`%s`.\n", metricsFileName)

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("writing training report: %w", err)
	}

	return path, nil
}

func metricCells(m Metrics) []string {
	values := []float64{
		m.Accuracy, m.BalancedAccuracy,
		m.PrecisionMacro, m.RecallMacro, m.F1Macro,
		m.PrecisionWeighted, m.RecallWeighted, m.F1Weighted,
		m.MCC, m.ROCAUC,
	}
	cells := make([]string, len(values))
	for i, v := range values {
		cells[i] = formatMetric(v)
	}
	return cells
}

// formatMetric renders NaN (no AUC capability) as n/a instead of a number.
func formatMetric(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.4f", v)
}
