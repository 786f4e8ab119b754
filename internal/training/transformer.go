// Package training fits the preprocessing stack and the calibrated linear
// classifier, with cross-validated and held-out evaluation.
package training

import (
	"fmt"
	"math"
	"sort"

	"github.com/jonathan/endpoint-classifier/internal/features"
	"github.com/jonathan/endpoint-classifier/internal/types"
)

// Transformer is the fit/transform contract shared by preprocessing steps.
// Fit learns parameters from training rows only; Transform applies them
// unchanged to any row set with the same schema.
type Transformer interface {
	Fit(m *features.Matrix) error
	Transform(m *features.Matrix) ([][]float64, error)
}

// Predictor is the classifier contract over preprocessed feature rows.
type Predictor interface {
	Predict(x [][]float64) []int
}

// StandardScaler standardizes the numeric block to zero mean and unit
// variance using statistics from the fit rows.
type StandardScaler struct {
	Mean  []float64
	Scale []float64
	Var   []float64
}

// Fit computes per-column mean and variance over the numeric block.
func (s *StandardScaler) Fit(m *features.Matrix) error {
	if len(m.Numeric) == 0 {
		return fmt.Errorf("scaler fit: no rows")
	}
	width := len(m.Numeric[0])
	n := float64(len(m.Numeric))

	s.Mean = make([]float64, width)
	s.Var = make([]float64, width)
	s.Scale = make([]float64, width)

	for _, row := range m.Numeric {
		for j, v := range row {
			s.Mean[j] += v
		}
	}
	for j := range s.Mean {
		s.Mean[j] /= n
	}
	for _, row := range m.Numeric {
		for j, v := range row {
			d := v - s.Mean[j]
			s.Var[j] += d * d
		}
	}
	for j := range s.Var {
		s.Var[j] /= n
		s.Scale[j] = math.Sqrt(s.Var[j])
		// constant columns pass through unscaled
		if s.Scale[j] == 0 {
			s.Scale[j] = 1
		}
	}
	return nil
}

// Transform standardizes the numeric block with the fitted statistics.
func (s *StandardScaler) Transform(m *features.Matrix) ([][]float64, error) {
	if s.Mean == nil {
		return nil, fmt.Errorf("scaler transform: not fitted")
	}
	out := make([][]float64, len(m.Numeric))
	for i, row := range m.Numeric {
		if len(row) != len(s.Mean) {
			return nil, fmt.Errorf("scaler transform: row width %d, fitted width %d", len(row), len(s.Mean))
		}
		scaled := make([]float64, len(row))
		for j, v := range row {
			scaled[j] = (v - s.Mean[j]) / s.Scale[j]
		}
		out[i] = scaled
	}
	return out, nil
}

// Params exports the fitted statistics for scaler.json.
func (s *StandardScaler) Params() types.ScalerParams {
	return types.ScalerParams{Mean: s.Mean, Scale: s.Scale, Var: s.Var}
}

// OneHotEncoder encodes the categorical column as one binary slot per
// category seen during fit. Unknown categories at transform time map to an
// all-zero encoding, never an error.
type OneHotEncoder struct {
	Categories []string
	index      map[string]int
}

// Fit collects the distinct categories of the fit rows in sorted order.
func (e *OneHotEncoder) Fit(m *features.Matrix) error {
	if len(m.Method) == 0 {
		return fmt.Errorf("encoder fit: no rows")
	}
	seen := make(map[string]bool, len(m.Method))
	for _, v := range m.Method {
		seen[v] = true
	}
	e.Categories = make([]string, 0, len(seen))
	for v := range seen {
		e.Categories = append(e.Categories, v)
	}
	sort.Strings(e.Categories)

	e.index = make(map[string]int, len(e.Categories))
	for i, v := range e.Categories {
		e.index[v] = i
	}
	return nil
}

// Transform one-hot encodes the categorical column.
func (e *OneHotEncoder) Transform(m *features.Matrix) ([][]float64, error) {
	if e.index == nil {
		return nil, fmt.Errorf("encoder transform: not fitted")
	}
	out := make([][]float64, len(m.Method))
	for i, v := range m.Method {
		row := make([]float64, len(e.Categories))
		if j, ok := e.index[v]; ok {
			row[j] = 1
		}
		out[i] = row
	}
	return out, nil
}

// FeatureNames returns the derived one-hot column names, e.g. "method_GET".
func (e *OneHotEncoder) FeatureNames(feature string) []string {
	names := make([]string, len(e.Categories))
	for i, c := range e.Categories {
		names[i] = feature + "_" + c
	}
	return names
}

// Params exports the fitted category list for encoder.json.
func (e *OneHotEncoder) Params(feature string) types.EncoderParams {
	return types.EncoderParams{
		Categories:   [][]string{e.Categories},
		FeatureNames: e.FeatureNames(feature),
	}
}
