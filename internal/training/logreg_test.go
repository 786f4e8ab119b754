package training

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogisticRegression_SeparableData(t *testing.T) {
	// one feature, cleanly separated around zero
	x := [][]float64{{-2}, {-1.5}, {-1}, {-0.5}, {0.5}, {1}, {1.5}, {2}}
	y := []int{0, 0, 0, 0, 1, 1, 1, 1}

	model := NewLogisticRegression()
	require.NoError(t, model.Fit(x, y))

	pred := model.Predict(x)
	assert.Equal(t, y, pred)

	proba := model.PredictProba(x)
	assert.Less(t, proba[0], 0.5)
	assert.Greater(t, proba[len(proba)-1], 0.5)
	assert.Positive(t, model.Coef[0])
}

func TestLogisticRegression_Deterministic(t *testing.T) {
	x := [][]float64{{-1, 2}, {0, 1}, {1, -1}, {2, 0}, {-2, 3}, {3, -2}}
	y := []int{0, 0, 1, 1, 0, 1}

	a := NewLogisticRegression()
	require.NoError(t, a.Fit(x, y))
	b := NewLogisticRegression()
	require.NoError(t, b.Fit(x, y))

	assert.Equal(t, a.Coef, b.Coef)
	assert.Equal(t, a.Intercept, b.Intercept)
}

func TestLogisticRegression_BalancedWeightsShiftBoundary(t *testing.T) {
	// 1 positive vs 5 negatives at the same distance from zero; balanced
	// weighting keeps the lone positive correctly classified
	x := [][]float64{{-1}, {-1}, {-1}, {-1}, {-1}, {1}}
	y := []int{0, 0, 0, 0, 0, 1}

	model := NewLogisticRegression()
	require.NoError(t, model.Fit(x, y))

	pred := model.Predict([][]float64{{1}})
	assert.Equal(t, []int{1}, pred)
}

func TestLogisticRegression_PredictsThroughPredictor(t *testing.T) {
	x := [][]float64{{-1}, {-2}, {1}, {2}}
	y := []int{0, 0, 1, 1}

	model := NewLogisticRegression()
	require.NoError(t, model.Fit(x, y))

	var clf Predictor = model
	assert.Equal(t, y, clf.Predict(x))
	assert.Equal(t, 1.0, foldF1(clf, x, y))
}

func TestLogisticRegression_SingleClassFails(t *testing.T) {
	x := [][]float64{{1}, {2}, {3}}
	y := []int{1, 1, 1}

	model := NewLogisticRegression()
	err := model.Fit(x, y)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "single class")
}

func TestLogisticRegression_InputValidation(t *testing.T) {
	model := NewLogisticRegression()

	assert.Error(t, model.Fit(nil, nil))
	assert.Error(t, model.Fit([][]float64{{}}, []int{0}))
	assert.Error(t, model.Fit([][]float64{{1}, {2}}, []int{0}))
	assert.Error(t, model.Fit([][]float64{{1}, {2, 3}}, []int{0, 1}))
}
