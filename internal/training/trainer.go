package training

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jonathan/endpoint-classifier/internal/features"
	"github.com/jonathan/endpoint-classifier/internal/types"
)

// Fixed training configuration defaults.
const (
	DefaultTestFraction = 0.2
	DefaultFolds        = 5
	DefaultSeed         = 42
)

// Options controls the split, fold count and seed of a training run.
type Options struct {
	TestFraction float64
	Folds        int
	Seed         int64
}

// DefaultOptions returns the reproducible defaults used in production runs.
func DefaultOptions() Options {
	return Options{TestFraction: DefaultTestFraction, Folds: DefaultFolds, Seed: DefaultSeed}
}

// Result bundles everything a training run produces: the fitted classifier,
// the fitted preprocessing, evaluation metrics, and the post-preprocessing
// column contract the exported model expects.
type Result struct {
	Model   *LogisticRegression
	Scaler  *StandardScaler
	Encoder *OneHotEncoder
	Metrics *types.Metrics

	// FeatureNames are the post-preprocessing columns: the scaled numeric
	// block in schema order followed by the one-hot columns
	FeatureNames []string
	// InputDim is the model input width, len(FeatureNames)
	InputDim int
}

// Train splits the data, fits preprocessing on the training split only,
// cross-validates with preprocessing refit per fold, fits the final
// classifier, and evaluates on the held-out split. Inputs are not mutated.
func Train(m *features.Matrix, y []int, opts Options, log zerolog.Logger) (*Result, error) {
	if len(m.Numeric) != len(y) {
		return nil, fmt.Errorf("train: %d feature rows but %d labels", len(m.Numeric), len(y))
	}

	trainIdx, testIdx, err := StratifiedSplit(y, opts.TestFraction, opts.Seed)
	if err != nil {
		return nil, fmt.Errorf("train/test split failed: %w", err)
	}
	log.Info().Int("train", len(trainIdx)).Int("test", len(testIdx)).Msg("split data")

	trainM, trainY := subset(m, trainIdx), subsetInts(y, trainIdx)
	testM, testY := subset(m, testIdx), subsetInts(y, testIdx)

	// Cross-validation on the training split, preprocessing refit per fold
	cvScores, err := crossValidate(trainM, trainY, opts)
	if err != nil {
		return nil, fmt.Errorf("cross-validation failed: %w", err)
	}
	cvMean, cvStd := meanStd(cvScores)
	log.Info().Floats64("fold_f1", cvScores).Float64("mean_f1", cvMean).Float64("std_f1", cvStd).
		Msg("cross-validation complete")

	// Final preprocessing and fit on the full training split
	scaler := &StandardScaler{}
	encoder := &OneHotEncoder{}
	xTrain, err := fitTransform(scaler, encoder, trainM)
	if err != nil {
		return nil, fmt.Errorf("preprocessing fit failed: %w", err)
	}
	model := NewLogisticRegression()
	if err := model.Fit(xTrain, trainY); err != nil {
		return nil, fmt.Errorf("final model fit failed: %w", err)
	}

	// Held-out evaluation with the training-split preprocessing
	xTest, err := transform(scaler, encoder, testM)
	if err != nil {
		return nil, fmt.Errorf("preprocessing test split failed: %w", err)
	}
	yPred := model.Predict(xTest)
	yProba := model.PredictProba(xTest)

	precision, recall, f1 := PrecisionRecallF1(testY, yPred)
	auc := ROCAUC(testY, yProba)

	metrics := &types.Metrics{
		CVF1Mean:        cvMean,
		CVF1Std:         cvStd,
		CVF1Scores:      cvScores,
		TestF1:          f1,
		TestPrecision:   precision,
		TestRecall:      recall,
		TestROCAUC:      auc,
		ConfusionMatrix: ConfusionMatrix(testY, yPred),
		NTrain:          len(trainIdx),
		NTest:           len(testIdx),
	}

	featureNames := append([]string{}, m.Schema.NumericalFeatures...)
	featureNames = append(featureNames, m.Schema.TFIDFFeatures...)
	featureNames = append(featureNames, encoder.FeatureNames(features.CategoricalFeature)...)

	log.Info().
		Float64("f1", f1).Float64("precision", precision).Float64("recall", recall).Float64("roc_auc", auc).
		Msg("held-out evaluation complete")

	return &Result{
		Model:        model,
		Scaler:       scaler,
		Encoder:      encoder,
		Metrics:      metrics,
		FeatureNames: featureNames,
		InputDim:     len(featureNames),
	}, nil
}

// crossValidate runs stratified k-fold CV and returns per-fold F1 scores.
// Fold failures are fatal, not skipped.
func crossValidate(m *features.Matrix, y []int, opts Options) ([]float64, error) {
	folds, err := StratifiedKFold(y, opts.Folds, opts.Seed)
	if err != nil {
		return nil, err
	}

	scores := make([]float64, 0, len(folds))
	for i, valIdx := range folds {
		trnIdx := complement(len(y), valIdx)

		scaler := &StandardScaler{}
		encoder := &OneHotEncoder{}
		xTrn, err := fitTransform(scaler, encoder, subset(m, trnIdx))
		if err != nil {
			return nil, fmt.Errorf("fold %d preprocessing: %w", i+1, err)
		}
		model := NewLogisticRegression()
		if err := model.Fit(xTrn, subsetInts(y, trnIdx)); err != nil {
			return nil, fmt.Errorf("fold %d fit: %w", i+1, err)
		}

		xVal, err := transform(scaler, encoder, subset(m, valIdx))
		if err != nil {
			return nil, fmt.Errorf("fold %d transform: %w", i+1, err)
		}
		scores = append(scores, foldF1(model, xVal, subsetInts(y, valIdx)))
	}
	return scores, nil
}

// foldF1 scores a fitted classifier on one validation fold.
func foldF1(clf Predictor, x [][]float64, y []int) float64 {
	_, _, f1 := PrecisionRecallF1(y, clf.Predict(x))
	return f1
}

// fitTransform fits both transformers on m and returns the stacked rows.
func fitTransform(scaler, encoder Transformer, m *features.Matrix) ([][]float64, error) {
	if err := scaler.Fit(m); err != nil {
		return nil, err
	}
	if err := encoder.Fit(m); err != nil {
		return nil, err
	}
	return transform(scaler, encoder, m)
}

// transform applies fitted transformers and horizontally stacks the blocks.
func transform(scaler, encoder Transformer, m *features.Matrix) ([][]float64, error) {
	num, err := scaler.Transform(m)
	if err != nil {
		return nil, err
	}
	cat, err := encoder.Transform(m)
	if err != nil {
		return nil, err
	}
	out := make([][]float64, len(num))
	for i := range num {
		row := make([]float64, 0, len(num[i])+len(cat[i]))
		row = append(row, num[i]...)
		row = append(row, cat[i]...)
		out[i] = row
	}
	return out, nil
}

// subset returns a row view of m at the given indices; the schema is shared.
func subset(m *features.Matrix, idx []int) *features.Matrix {
	out := &features.Matrix{
		Numeric: make([][]float64, len(idx)),
		Method:  make([]string, len(idx)),
		Schema:  m.Schema,
	}
	for i, j := range idx {
		out.Numeric[i] = m.Numeric[j]
		out.Method[i] = m.Method[j]
	}
	return out
}

func subsetInts(xs []int, idx []int) []int {
	out := make([]int, len(idx))
	for i, j := range idx {
		out[i] = xs[j]
	}
	return out
}
