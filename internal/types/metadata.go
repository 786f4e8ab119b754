//nolint:revive // types is a standard Go package name pattern
package types

// Hyperparameters records the fixed classifier settings of a training run.
type Hyperparameters struct {
	ClassWeight string  `json:"class_weight"`
	C           float64 `json:"C"`
	Penalty     string  `json:"penalty"`
	Solver      string  `json:"solver"`
	MaxIter     int     `json:"max_iter"`
}

// TrainingData describes the provenance of a training run.
type TrainingData struct {
	Sources       []string `json:"sources"`
	TotalExamples int      `json:"totalExamples"`
	DataCount     int      `json:"dataCount"`
	NonDataCount  int      `json:"nonDataCount"`
	// SourcesUsed counts input files that contributed at least one record;
	// LinesSkipped counts non-blank lines that failed to parse
	SourcesUsed  int `json:"sourcesUsed"`
	LinesSkipped int `json:"linesSkipped"`
}

// Performance is the metrics subset embedded in metadata.json.
type Performance struct {
	CVF1Mean      float64 `json:"cvF1Mean"`
	CVF1Std       float64 `json:"cvF1Std"`
	TestF1        float64 `json:"testF1"`
	TestPrecision float64 `json:"testPrecision"`
	TestRecall    float64 `json:"testRecall"`
	TestROCAUC    float64 `json:"testROCAUC"`
}

// Metadata is the run manifest written as metadata.json. Together with the
// model weights, scaler, encoder and feature schema it forms a self-contained
// artifact bundle for inference.
type Metadata struct {
	Version         string          `json:"version"`
	RunID           string          `json:"runId"`
	TrainedAt       string          `json:"trainedAt"`
	ModelType       string          `json:"modelType"`
	Hyperparameters Hyperparameters `json:"hyperparameters"`
	TrainingData    TrainingData    `json:"trainingData"`
	Performance     Performance     `json:"performance"`
	Features        FeatureSchema   `json:"features"`
	TFIDF           *TFIDFParams    `json:"tfidf,omitempty"`
}
