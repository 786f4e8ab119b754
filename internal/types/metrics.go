//nolint:revive // types is a standard Go package name pattern
package types

// Metrics captures cross-validated and held-out evaluation results.
// Metrics are descriptive only and never feed back into training.
type Metrics struct {
	CVF1Mean   float64   `json:"cv_f1_mean"`
	CVF1Std    float64   `json:"cv_f1_std"`
	CVF1Scores []float64 `json:"cv_f1_scores"`

	TestF1        float64 `json:"test_f1"`
	TestPrecision float64 `json:"test_precision"`
	TestRecall    float64 `json:"test_recall"`
	TestROCAUC    float64 `json:"test_roc_auc"`

	// ConfusionMatrix is [[tn, fp], [fn, tp]] on the held-out test split
	ConfusionMatrix [2][2]int `json:"confusion_matrix"`

	NTrain int `json:"n_train"`
	NTest  int `json:"n_test"`
}
