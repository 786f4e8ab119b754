package features

import (
	"github.com/jonathan/endpoint-classifier/internal/types"
)

// Declared feature fields. The lists are fixed: the collector and the
// inference consumer both depend on these exact names and this exact order.
var (
	NumericalFeatures = []string{
		"score",
		"count",
		"avgSize",
		"maxSize",
		"distinctSchemas",
		"bodyAvailableCount",
		"jsonParseSuccessCount",
		"noBodyCount",
		"bodyAvailableRate",
		"bodyRate",
		"bodyEvidenceFactor",
		"avgDepth",
		"hostCount",
	}

	BooleanFeatures = []string{
		"hasArrayStructure",
		"hasDataFlags",
	}
)

// CategoricalFeature is the single categorical slot.
const CategoricalFeature = "method"

// DefaultMethod fills a missing or null method value.
const DefaultMethod = "GET"

// Matrix is the extracted training design: the numeric block (declared
// numeric fields, booleans as 0/1, then TF-IDF columns) plus the categorical
// column, aligned row-for-row with the input records.
type Matrix struct {
	// Numeric is rows × (len(NumericalFeatures)+len(BooleanFeatures)+tfidf)
	Numeric [][]float64
	// Method is the categorical column, one value per row
	Method []string
	// Schema is the frozen ordered slot list for the whole run
	Schema *types.FeatureSchema
}

// Extractor composes declared fields and optional TF-IDF features into the
// fixed feature schema. A nil tfidf computer trains on declared fields only.
type Extractor struct {
	Numerical []string
	Boolean   []string
	TFIDF     *TFIDF
}

// NewExtractor builds an extractor over the declared field lists.
func NewExtractor(tfidf *TFIDF) *Extractor {
	return &Extractor{
		Numerical: NumericalFeatures,
		Boolean:   BooleanFeatures,
		TFIDF:     tfidf,
	}
}

// Schema returns the ordered slot list: numeric, boolean, categorical, TF-IDF.
func (e *Extractor) Schema() *types.FeatureSchema {
	numerical := make([]string, 0, len(e.Numerical)+len(e.Boolean))
	numerical = append(numerical, e.Numerical...)
	numerical = append(numerical, e.Boolean...)

	var tfidfNames []string
	if e.TFIDF != nil && e.TFIDF.Fitted() {
		tfidfNames = e.TFIDF.FeatureNames()
	}

	all := make([]string, 0, len(numerical)+1+len(tfidfNames))
	all = append(all, numerical...)
	all = append(all, CategoricalFeature)
	all = append(all, tfidfNames...)

	return &types.FeatureSchema{
		NumericalFeatures:   numerical,
		CategoricalFeatures: []string{CategoricalFeature},
		AllFeatures:         all,
		NFeatures:           len(all),
		TFIDFFeatures:       tfidfNames,
	}
}

// Extract builds the feature matrix for the given records. If a TF-IDF
// computer is attached and not yet fitted, it is fitted on these records
// first, freezing the vocabulary for the rest of the run.
func (e *Extractor) Extract(records []types.Record) *Matrix {
	if e.TFIDF != nil && !e.TFIDF.Fitted() {
		e.TFIDF.Fit(records)
	}
	schema := e.Schema()

	numericWidth := len(e.Numerical) + len(e.Boolean) + len(schema.TFIDFFeatures)
	m := &Matrix{
		Numeric: make([][]float64, len(records)),
		Method:  make([]string, len(records)),
		Schema:  schema,
	}

	for i, rec := range records {
		row := make([]float64, 0, numericWidth)
		for _, name := range e.Numerical {
			row = append(row, numericValue(rec.Features, name))
		}
		for _, name := range e.Boolean {
			row = append(row, booleanValue(rec.Features, name))
		}
		if e.TFIDF != nil && e.TFIDF.Fitted() {
			row = append(row, e.TFIDF.Transform(rec)...)
		}
		m.Numeric[i] = row
		m.Method[i] = methodValue(rec.Features)
	}

	return m
}

// numericValue reads a declared numeric field, defaulting to 0 when absent,
// null, or not a number.
func numericValue(fields map[string]any, name string) float64 {
	switch v := fields[name].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case bool:
		if v {
			return 1
		}
		return 0
	default:
		return 0
	}
}

// booleanValue coerces a declared boolean field to 0/1, defaulting to 0.
func booleanValue(fields map[string]any, name string) float64 {
	switch v := fields[name].(type) {
	case bool:
		if v {
			return 1
		}
		return 0
	case float64:
		if v != 0 {
			return 1
		}
		return 0
	default:
		return 0
	}
}

// methodValue reads the categorical field. Only absent, null or non-string
// values default to DefaultMethod; an empty string is kept as its own category.
func methodValue(fields map[string]any) string {
	if v, ok := fields[CategoricalFeature].(string); ok {
		return v
	}
	return DefaultMethod
}
