package training

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func balancedLabels(n int) []int {
	y := make([]int, n)
	for i := n / 2; i < n; i++ {
		y[i] = 1
	}
	return y
}

func countClass(y []int, idx []int, class int) int {
	n := 0
	for _, i := range idx {
		if y[i] == class {
			n++
		}
	}
	return n
}

func TestStratifiedSplit_PreservesClassRatio(t *testing.T) {
	y := balancedLabels(100)

	trainIdx, testIdx, err := StratifiedSplit(y, 0.2, 42)
	require.NoError(t, err)

	assert.Len(t, testIdx, 20)
	assert.Len(t, trainIdx, 80)

	// 50/50 input stays 50/50 within ±1 example per partition
	assert.InDelta(t, 10, countClass(y, testIdx, 1), 1)
	assert.InDelta(t, 10, countClass(y, testIdx, 0), 1)
	assert.InDelta(t, 40, countClass(y, trainIdx, 1), 1)
}

func TestStratifiedSplit_Deterministic(t *testing.T) {
	y := balancedLabels(40)

	train1, test1, err := StratifiedSplit(y, 0.2, 42)
	require.NoError(t, err)
	train2, test2, err := StratifiedSplit(y, 0.2, 42)
	require.NoError(t, err)

	assert.Equal(t, train1, train2)
	assert.Equal(t, test1, test2)
}

func TestStratifiedSplit_InvalidFraction(t *testing.T) {
	y := balancedLabels(10)
	_, _, err := StratifiedSplit(y, 0, 42)
	assert.Error(t, err)
	_, _, err = StratifiedSplit(y, 1, 42)
	assert.Error(t, err)
}

func TestStratifiedKFold_CoversAllSamplesDisjointly(t *testing.T) {
	y := balancedLabels(20)

	folds, err := StratifiedKFold(y, 5, 42)
	require.NoError(t, err)
	require.Len(t, folds, 5)

	seen := make(map[int]int)
	for _, fold := range folds {
		assert.NotEmpty(t, fold)
		for _, i := range fold {
			seen[i]++
		}
	}
	assert.Len(t, seen, 20)
	for i, count := range seen {
		assert.Equal(t, 1, count, "sample %d appears in multiple folds", i)
	}
}

func TestStratifiedKFold_FoldsKeepClassMix(t *testing.T) {
	y := balancedLabels(20)

	folds, err := StratifiedKFold(y, 5, 42)
	require.NoError(t, err)

	for _, fold := range folds {
		assert.Equal(t, 2, countClass(y, fold, 1))
		assert.Equal(t, 2, countClass(y, fold, 0))
	}
}

func TestStratifiedKFold_TooManyFolds(t *testing.T) {
	_, err := StratifiedKFold(balancedLabels(4), 5, 42)
	assert.Error(t, err)
}
