package training

import (
	"fmt"
	"math"
	"math/rand"
)

// StratifiedSplit partitions indices into train and test sets, preserving the
// class ratio. The shuffle is seeded, so identical inputs give identical
// splits across runs.
func StratifiedSplit(y []int, testFraction float64, seed int64) (trainIdx, testIdx []int, err error) {
	if testFraction <= 0 || testFraction >= 1 {
		return nil, nil, fmt.Errorf("test fraction must be in (0, 1), got %v", testFraction)
	}

	rng := rand.New(rand.NewSource(seed))
	for _, class := range []int{0, 1} {
		var idx []int
		for i, label := range y {
			if label == class {
				idx = append(idx, i)
			}
		}
		if len(idx) == 0 {
			continue
		}
		rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })

		nTest := int(math.Round(testFraction * float64(len(idx))))
		if nTest == 0 && len(idx) > 1 {
			nTest = 1
		}
		testIdx = append(testIdx, idx[:nTest]...)
		trainIdx = append(trainIdx, idx[nTest:]...)
	}

	if len(trainIdx) == 0 || len(testIdx) == 0 {
		return nil, nil, fmt.Errorf("split produced an empty partition (%d train, %d test)", len(trainIdx), len(testIdx))
	}
	return trainIdx, testIdx, nil
}

// StratifiedKFold returns k disjoint fold index sets covering all samples,
// with each fold approximating the overall class ratio. Per-class index
// lists are shuffled with the seed, then dealt round-robin across folds.
func StratifiedKFold(y []int, k int, seed int64) ([][]int, error) {
	if k < 2 {
		return nil, fmt.Errorf("need at least 2 folds, got %d", k)
	}
	if k > len(y) {
		return nil, fmt.Errorf("cannot make %d folds from %d samples", k, len(y))
	}

	rng := rand.New(rand.NewSource(seed))
	folds := make([][]int, k)

	for _, class := range []int{0, 1} {
		var idx []int
		for i, label := range y {
			if label == class {
				idx = append(idx, i)
			}
		}
		rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
		for i, sample := range idx {
			folds[i%k] = append(folds[i%k], sample)
		}
	}

	for i, fold := range folds {
		if len(fold) == 0 {
			return nil, fmt.Errorf("fold %d is empty", i)
		}
	}
	return folds, nil
}

// complement returns all indices of y not present in exclude.
func complement(n int, exclude []int) []int {
	in := make([]bool, n)
	for _, i := range exclude {
		in[i] = true
	}
	out := make([]int, 0, n-len(exclude))
	for i := 0; i < n; i++ {
		if !in[i] {
			out = append(out, i)
		}
	}
	return out
}
