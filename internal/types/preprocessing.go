//nolint:revive // types is a standard Go package name pattern
package types

// ScalerParams holds fitted standardization statistics, one entry per numeric
// slot in schema order. Applied unchanged at inference.
type ScalerParams struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
	Var   []float64 `json:"var"`
}

// EncoderParams holds the fitted one-hot encoder state for the categorical
// slots. Categories is one sorted list per categorical feature; FeatureNames
// are the derived one-hot column names (e.g. "method_GET").
type EncoderParams struct {
	Categories   [][]string `json:"categories"`
	FeatureNames []string   `json:"feature_names"`
}
