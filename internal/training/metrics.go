package training

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"
)

// ConfusionMatrix returns [[tn, fp], [fn, tp]].
func ConfusionMatrix(yTrue, yPred []int) [2][2]int {
	var cm [2][2]int
	for i := range yTrue {
		cm[yTrue[i]][yPred[i]]++
	}
	return cm
}

// PrecisionRecallF1 computes the positive-class scores. Degenerate
// denominators (no predicted or no actual positives) score 0.
func PrecisionRecallF1(yTrue, yPred []int) (precision, recall, f1 float64) {
	cm := ConfusionMatrix(yTrue, yPred)
	tp := float64(cm[1][1])
	fp := float64(cm[0][1])
	fn := float64(cm[1][0])

	if tp+fp > 0 {
		precision = tp / (tp + fp)
	}
	if tp+fn > 0 {
		recall = tp / (tp + fn)
	}
	if precision+recall > 0 {
		f1 = 2 * precision * recall / (precision + recall)
	}
	return precision, recall, f1
}

// ROCAUC computes the area under the ROC curve from positive-class scores.
// Returns 0 when yTrue contains a single class, where AUC is undefined.
func ROCAUC(yTrue []int, scores []float64) float64 {
	var pos, neg int
	for _, label := range yTrue {
		if label == 1 {
			pos++
		} else {
			neg++
		}
	}
	if pos == 0 || neg == 0 {
		return 0
	}

	// stat.ROC wants scores ascending with aligned class flags
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return scores[order[i]] < scores[order[j]] })

	y := make([]float64, len(scores))
	classes := make([]bool, len(scores))
	for rank, i := range order {
		y[rank] = scores[i]
		classes[rank] = yTrue[i] == 1
	}

	tpr, fpr, _ := stat.ROC(nil, y, classes, nil)
	return integrate.Trapezoidal(fpr, tpr)
}

// meanStd returns the mean and population standard deviation of xs.
func meanStd(xs []float64) (mean, std float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	for _, x := range xs {
		d := x - mean
		std += d * d
	}
	return mean, math.Sqrt(std / float64(len(xs)))
}
