// Package types provides type definitions for structured data used throughout the endpoint-classifier system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Label values produced by the collector.
const (
	LabelData    = "data"
	LabelNonData = "non-data"
	LabelUnsure  = "unsure"
)

// Record represents one labeled endpoint observation from a training.jsonl file.
// Records are immutable once loaded.
type Record struct {
	// Features holds the named numeric/boolean/categorical values extracted
	// by the collector. Values are heterogeneous JSON scalars.
	Features map[string]any `json:"features"`
	// Label is one of "data", "non-data" or "unsure"
	Label string `json:"label"`
	// PathTokens are the URL path segments observed for the endpoint
	PathTokens []string `json:"pathTokens,omitempty"`
	// SampleKeyPaths are dotted key paths sampled from response bodies
	SampleKeyPaths []string `json:"sampleKeyPaths,omitempty"`
}
