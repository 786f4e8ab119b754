// Package schemas provides JSON Schema validation for the exported artifact bundle.
package schemas

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed defs/*.json
var defs embed.FS

// artifactSchemas maps each JSON artifact file name to its embedded schema.
var artifactSchemas = map[string]string{
	"feature_schema.json": "defs/feature_schema.json",
	"scaler.json":         "defs/scaler.json",
	"encoder.json":        "defs/encoder.json",
	"metadata.json":       "defs/metadata.json",
}

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Artifact string
	Errors   []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s failed validation:\n", ve.Artifact))
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// ValidateArtifact validates one exported JSON artifact against its embedded schema.
func ValidateArtifact(path string) error {
	name := filepath.Base(path)
	schemaPath, ok := artifactSchemas[name]
	if !ok {
		return fmt.Errorf("no schema registered for artifact %s", name)
	}

	schemaBytes, err := defs.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to read embedded schema for %s: %w", name, err)
	}
	docBytes, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read artifact %s: %w", path, err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaBytes),
		gojsonschema.NewBytesLoader(docBytes),
	)
	if err != nil {
		return fmt.Errorf("schema validation error for %s: %w", name, err)
	}

	if !result.Valid() {
		ve := &ValidationError{Artifact: name}
		for _, desc := range result.Errors() {
			ve.Errors = append(ve.Errors, FieldError{
				Field:   desc.Field(),
				Message: desc.Description(),
			})
		}
		return ve
	}
	return nil
}

// bundleArtifacts is the fixed validation order for ValidateBundle.
var bundleArtifacts = []string{"feature_schema.json", "scaler.json", "encoder.json", "metadata.json"}

// ValidateBundle validates every JSON artifact of an exported bundle directory.
func ValidateBundle(dir string) error {
	for _, name := range bundleArtifacts {
		if err := ValidateArtifact(filepath.Join(dir, name)); err != nil {
			return err
		}
	}
	return nil
}
