// Package observability provides structured logging and formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/jonathan/endpoint-classifier/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxImportancesToShow is the number of coefficients displayed
	maxImportancesToShow = 10
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintLabelDistribution outputs the class balance after filtering "unsure" labels.
func (p *Printer) PrintLabelDistribution(dataCount, nonDataCount int) {
	total := dataCount + nonDataCount
	if total == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total labeled: %d\n\n", total))
	sb.WriteString(fmt.Sprintf("data:     %5d (%.1f%%)\n", dataCount, 100*float64(dataCount)/float64(total)))
	sb.WriteString(fmt.Sprintf("non-data: %5d (%.1f%%)", nonDataCount, 100*float64(nonDataCount)/float64(total)))

	p.printBox("LABEL DISTRIBUTION", sb.String())
}

// PrintFeatureSchema outputs a summary of the frozen feature slot list.
func (p *Printer) PrintFeatureSchema(schema *types.FeatureSchema) {
	if schema == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Numerical:   %d\n", len(schema.NumericalFeatures)))
	sb.WriteString(fmt.Sprintf("Categorical: %d\n", len(schema.CategoricalFeatures)))
	sb.WriteString(fmt.Sprintf("TF-IDF:      %d\n", len(schema.TFIDFFeatures)))
	sb.WriteString(fmt.Sprintf("Total slots: %d", schema.NFeatures))

	p.printBox("FEATURE SCHEMA", sb.String())
}

// PrintCVScores outputs per-fold and mean cross-validation F1.
func (p *Printer) PrintCVScores(scores []float64, mean, std float64) {
	if len(scores) == 0 {
		return
	}

	var sb strings.Builder
	for i, s := range scores {
		sb.WriteString(fmt.Sprintf("Fold %d: %.3f\n", i+1, s))
	}
	sb.WriteString(fmt.Sprintf("\nMean: %.3f ± %.3f", mean, std))

	p.printBox("CROSS-VALIDATION F1", sb.String())
}

// PrintTestMetrics outputs the held-out metrics and confusion matrix.
func (p *Printer) PrintTestMetrics(m *types.Metrics) {
	if m == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("F1:        %.3f\n", m.TestF1))
	sb.WriteString(fmt.Sprintf("Precision: %.3f\n", m.TestPrecision))
	sb.WriteString(fmt.Sprintf("Recall:    %.3f\n", m.TestRecall))
	sb.WriteString(fmt.Sprintf("ROC-AUC:   %.3f\n", m.TestROCAUC))
	sb.WriteString("\n")
	sb.WriteString("                Predicted\n")
	sb.WriteString("                data  non-data\n")
	sb.WriteString(fmt.Sprintf("Actual data     %4d  %8d\n", m.ConfusionMatrix[1][1], m.ConfusionMatrix[1][0]))
	sb.WriteString(fmt.Sprintf("       non-data %4d  %8d", m.ConfusionMatrix[0][1], m.ConfusionMatrix[0][0]))

	p.printBox("TEST SET PERFORMANCE", sb.String())
}

// PrintFeatureImportances outputs the top coefficients by absolute value.
// featureNames must be the post-preprocessing column names aligned with coef.
func (p *Printer) PrintFeatureImportances(featureNames []string, coef []float64) {
	if len(featureNames) == 0 || len(featureNames) != len(coef) {
		return
	}

	type pair struct {
		name string
		coef float64
	}
	pairs := make([]pair, len(featureNames))
	for i, name := range featureNames {
		pairs[i] = pair{name, coef[i]}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return math.Abs(pairs[i].coef) > math.Abs(pairs[j].coef)
	})

	var sb strings.Builder
	count := min(len(pairs), maxImportancesToShow)
	for i := 0; i < count; i++ {
		sign := ""
		if pairs[i].coef > 0 {
			sign = "+"
		}
		name := pairs[i].name
		if len(name) > 30 {
			name = name[:27] + "..."
		}
		sb.WriteString(fmt.Sprintf("%2d. %-30s %s%.3f", i+1, name, sign, pairs[i].coef))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("TOP FEATURE IMPORTANCES", sb.String())
}
