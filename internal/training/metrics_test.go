package training

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfusionMatrix(t *testing.T) {
	yTrue := []int{1, 1, 0, 0, 1, 0}
	yPred := []int{1, 0, 0, 1, 1, 0}

	cm := ConfusionMatrix(yTrue, yPred)
	assert.Equal(t, 2, cm[0][0]) // tn
	assert.Equal(t, 1, cm[0][1]) // fp
	assert.Equal(t, 1, cm[1][0]) // fn
	assert.Equal(t, 2, cm[1][1]) // tp
}

func TestPrecisionRecallF1_KnownValues(t *testing.T) {
	// tp=2, fp=1, fn=1
	yTrue := []int{1, 1, 0, 0, 1, 0}
	yPred := []int{1, 0, 0, 1, 1, 0}

	precision, recall, f1 := PrecisionRecallF1(yTrue, yPred)
	assert.InDelta(t, 2.0/3.0, precision, 1e-12)
	assert.InDelta(t, 2.0/3.0, recall, 1e-12)
	assert.InDelta(t, 2.0/3.0, f1, 1e-12)
}

func TestPrecisionRecallF1_NoPositivePredictions(t *testing.T) {
	yTrue := []int{1, 0, 1}
	yPred := []int{0, 0, 0}

	precision, recall, f1 := PrecisionRecallF1(yTrue, yPred)
	assert.Zero(t, precision)
	assert.Zero(t, recall)
	assert.Zero(t, f1)
}

func TestPrecisionRecallF1_Perfect(t *testing.T) {
	yTrue := []int{1, 0, 1, 0}
	yPred := []int{1, 0, 1, 0}

	precision, recall, f1 := PrecisionRecallF1(yTrue, yPred)
	assert.Equal(t, 1.0, precision)
	assert.Equal(t, 1.0, recall)
	assert.Equal(t, 1.0, f1)
}

func TestROCAUC_PerfectSeparation(t *testing.T) {
	yTrue := []int{0, 0, 1, 1}
	scores := []float64{0.1, 0.2, 0.8, 0.9}

	assert.InDelta(t, 1.0, ROCAUC(yTrue, scores), 1e-12)
}

func TestROCAUC_InvertedScores(t *testing.T) {
	yTrue := []int{0, 0, 1, 1}
	scores := []float64{0.9, 0.8, 0.2, 0.1}

	assert.InDelta(t, 0.0, ROCAUC(yTrue, scores), 1e-12)
}

func TestROCAUC_Random(t *testing.T) {
	// identical scores for both classes: AUC 0.5
	yTrue := []int{0, 1, 0, 1}
	scores := []float64{0.5, 0.5, 0.5, 0.5}

	assert.InDelta(t, 0.5, ROCAUC(yTrue, scores), 1e-9)
}

func TestROCAUC_SingleClass(t *testing.T) {
	assert.Zero(t, ROCAUC([]int{1, 1, 1}, []float64{0.1, 0.5, 0.9}))
	assert.Zero(t, ROCAUC([]int{0, 0}, []float64{0.1, 0.9}))
}

func TestMeanStd(t *testing.T) {
	mean, std := meanStd([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.InDelta(t, 5.0, mean, 1e-12)
	assert.InDelta(t, 2.0, std, 1e-12)

	mean, std = meanStd(nil)
	assert.Zero(t, mean)
	assert.Zero(t, std)
}
