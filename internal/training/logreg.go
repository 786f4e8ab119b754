package training

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Logistic regression hyperparameters are fixed for reproducibility.
const (
	// DefaultC is the inverse L2 regularization strength
	DefaultC = 1.0
	// DefaultMaxIter bounds the optimizer iterations
	DefaultMaxIter = 1000
	// defaultLearningRate is the fixed gradient step size
	defaultLearningRate = 0.5
	// defaultTol stops optimization once the gradient inf-norm falls below it
	defaultTol = 1e-6
)

// LogisticRegression is a class-weighted, L2-regularized binary linear
// classifier fit by deterministic batch gradient descent. Weights start at
// zero, so identical inputs always produce identical coefficients.
type LogisticRegression struct {
	C            float64
	MaxIter      int
	LearningRate float64
	Tol          float64
	// Balanced reweights samples by n / (2 * n_class) to counter label imbalance
	Balanced bool

	Coef      []float64
	Intercept float64
}

// NewLogisticRegression returns a classifier with the fixed training defaults.
func NewLogisticRegression() *LogisticRegression {
	return &LogisticRegression{
		C:            DefaultC,
		MaxIter:      DefaultMaxIter,
		LearningRate: defaultLearningRate,
		Tol:          defaultTol,
		Balanced:     true,
	}
}

// Fit minimizes the sample-weighted logistic loss plus the L2 penalty
// ||w||^2 / (2C), both normalized by the total sample weight.
func (lr *LogisticRegression) Fit(x [][]float64, y []int) error {
	n := len(x)
	if n == 0 {
		return fmt.Errorf("logistic regression fit: no rows")
	}
	d := len(x[0])
	if d == 0 {
		return fmt.Errorf("logistic regression fit: no features")
	}
	if len(y) != n {
		return fmt.Errorf("logistic regression fit: %d rows but %d labels", n, len(y))
	}

	var n0, n1 int
	for _, label := range y {
		if label == 1 {
			n1++
		} else {
			n0++
		}
	}
	if n0 == 0 || n1 == 0 {
		return fmt.Errorf("logistic regression fit: training labels contain a single class")
	}

	// Per-sample weights and their total
	w0, w1 := 1.0, 1.0
	if lr.Balanced {
		w0 = float64(n) / (2 * float64(n0))
		w1 = float64(n) / (2 * float64(n1))
	}
	sw := make([]float64, n)
	sumW := 0.0
	for i, label := range y {
		if label == 1 {
			sw[i] = w1
		} else {
			sw[i] = w0
		}
		sumW += sw[i]
	}

	flat := make([]float64, 0, n*d)
	for _, row := range x {
		if len(row) != d {
			return fmt.Errorf("logistic regression fit: ragged input rows")
		}
		flat = append(flat, row...)
	}
	xm := mat.NewDense(n, d, flat)

	coef := mat.NewVecDense(d, nil)
	intercept := 0.0
	z := mat.NewVecDense(n, nil)
	residual := mat.NewVecDense(n, nil)
	grad := mat.NewVecDense(d, nil)
	l2 := 1 / (lr.C * sumW)

	for iter := 0; iter < lr.MaxIter; iter++ {
		z.MulVec(xm, coef)
		gradIntercept := 0.0
		for i := 0; i < n; i++ {
			p := sigmoid(z.AtVec(i) + intercept)
			r := sw[i] * (p - float64(y[i])) / sumW
			residual.SetVec(i, r)
			gradIntercept += r
		}
		grad.MulVec(xm.T(), residual)

		maxGrad := math.Abs(gradIntercept)
		for j := 0; j < d; j++ {
			g := grad.AtVec(j) + l2*coef.AtVec(j)
			grad.SetVec(j, g)
			if a := math.Abs(g); a > maxGrad {
				maxGrad = a
			}
		}
		if maxGrad < lr.Tol {
			break
		}

		coef.AddScaledVec(coef, -lr.LearningRate, grad)
		intercept -= lr.LearningRate * gradIntercept
	}

	lr.Coef = make([]float64, d)
	copy(lr.Coef, coef.RawVector().Data)
	lr.Intercept = intercept
	return nil
}

// PredictProba returns the probability of the positive class per row.
func (lr *LogisticRegression) PredictProba(x [][]float64) []float64 {
	out := make([]float64, len(x))
	for i, row := range x {
		z := lr.Intercept
		for j, v := range row {
			z += lr.Coef[j] * v
		}
		out[i] = sigmoid(z)
	}
	return out
}

// Predict thresholds PredictProba at 0.5.
func (lr *LogisticRegression) Predict(x [][]float64) []int {
	proba := lr.PredictProba(x)
	out := make([]int, len(proba))
	for i, p := range proba {
		if p >= 0.5 {
			out[i] = 1
		}
	}
	return out
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
