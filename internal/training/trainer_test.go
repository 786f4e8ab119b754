package training

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/endpoint-classifier/internal/features"
	"github.com/jonathan/endpoint-classifier/internal/types"
)

// separableMatrix builds a cleanly separable two-feature set: positives
// cluster high, negatives cluster low, with mild within-class spread.
func separableMatrix(n int) (*features.Matrix, []int) {
	m := &features.Matrix{
		Numeric: make([][]float64, 0, n),
		Method:  make([]string, 0, n),
		Schema: &types.FeatureSchema{
			NumericalFeatures: []string{"score", "count"},
			TFIDFFeatures:     []string{},
		},
	}
	y := make([]int, 0, n)
	for i := 0; i < n; i++ {
		spread := float64(i%5) * 0.1
		if i%2 == 0 {
			m.Numeric = append(m.Numeric, []float64{0.9 + spread, 10 + spread})
			m.Method = append(m.Method, "GET")
			y = append(y, 1)
		} else {
			m.Numeric = append(m.Numeric, []float64{0.1 + spread, 1 + spread})
			m.Method = append(m.Method, "POST")
			y = append(y, 0)
		}
	}
	return m, y
}

func TestTrain_SeparableData(t *testing.T) {
	m, y := separableMatrix(50)

	res, err := Train(m, y, DefaultOptions(), zerolog.Nop())
	require.NoError(t, err)

	assert.GreaterOrEqual(t, res.Metrics.TestF1, 0.9)
	assert.GreaterOrEqual(t, res.Metrics.CVF1Mean, 0.9)
	assert.GreaterOrEqual(t, res.Metrics.TestROCAUC, 0.9)
	assert.Len(t, res.Metrics.CVF1Scores, DefaultFolds)
	assert.Equal(t, 40, res.Metrics.NTrain)
	assert.Equal(t, 10, res.Metrics.NTest)
}

func TestTrain_FeatureNamesAndInputDim(t *testing.T) {
	m, y := separableMatrix(50)

	res, err := Train(m, y, DefaultOptions(), zerolog.Nop())
	require.NoError(t, err)

	// numeric block in schema order, then the one-hot columns
	assert.Equal(t, []string{"score", "count", "method_GET", "method_POST"}, res.FeatureNames)
	assert.Equal(t, len(res.FeatureNames), res.InputDim)
	assert.Len(t, res.Model.Coef, res.InputDim)
	assert.Len(t, res.Scaler.Mean, 2)
}

func TestTrain_Deterministic(t *testing.T) {
	m, y := separableMatrix(50)

	a, err := Train(m, y, DefaultOptions(), zerolog.Nop())
	require.NoError(t, err)
	b, err := Train(m, y, DefaultOptions(), zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, a.Model.Coef, b.Model.Coef)
	assert.Equal(t, a.Model.Intercept, b.Model.Intercept)
	assert.Equal(t, a.Metrics.CVF1Scores, b.Metrics.CVF1Scores)
	assert.Equal(t, a.Metrics.TestF1, b.Metrics.TestF1)
}

func TestTrain_RowLabelMismatch(t *testing.T) {
	m, y := separableMatrix(10)
	_, err := Train(m, y[:5], DefaultOptions(), zerolog.Nop())
	assert.Error(t, err)
}

func TestTrain_FoldWithSingleClassFails(t *testing.T) {
	// 2 positives against 18 negatives: with 5 folds the positives cannot
	// reach every training complement, so some fold trains single-class
	m := &features.Matrix{
		Schema: &types.FeatureSchema{NumericalFeatures: []string{"score"}},
	}
	y := make([]int, 0, 20)
	for i := 0; i < 20; i++ {
		m.Numeric = append(m.Numeric, []float64{float64(i)})
		m.Method = append(m.Method, "GET")
		if i < 2 {
			y = append(y, 1)
		} else {
			y = append(y, 0)
		}
	}

	_, err := Train(m, y, Options{TestFraction: 0.2, Folds: 5, Seed: DefaultSeed}, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cross-validation failed")
}
