//nolint:revive // types is a standard Go package name pattern
package types

// FeatureSchema is the ordered feature contract shared by training and inference.
// The order is numerical features, then boolean features (as 0/1 columns inside
// NumericalFeatures' tail), then the categorical feature, then TF-IDF features.
// Once computed from the training set the slot list is frozen; every downstream
// consumer (scaler, encoder, model, exported artifacts) must honor it verbatim.
type FeatureSchema struct {
	NumericalFeatures   []string `json:"numerical_features"`
	CategoricalFeatures []string `json:"categorical_features"`
	AllFeatures         []string `json:"all_features"`
	NFeatures           int      `json:"n_features"`
	TFIDFFeatures       []string `json:"tfidf_features,omitempty"`
}

// Vocabulary holds the TF-IDF terms selected for one token stream together
// with the global statistics needed to reproduce inference.
type Vocabulary struct {
	// Terms are the top-N terms ordered by descending global TF-IDF score,
	// ties broken by first-seen corpus order
	Terms []string `json:"terms"`
	// IDF maps each vocabulary term to its corpus-level inverse document frequency
	IDF map[string]float64 `json:"idf"`
	// Scores maps each vocabulary term to the global TF-IDF score used for ranking
	Scores map[string]float64 `json:"scores"`
}

// TFIDFParams bundles the vocabularies of both token streams for export.
type TFIDFParams struct {
	PathTokens     Vocabulary `json:"pathTokens"`
	SampleKeyPaths Vocabulary `json:"sampleKeyPaths"`
}
