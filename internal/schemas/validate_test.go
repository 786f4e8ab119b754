package schemas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validScaler = `{"mean": [0.5, 1.0], "scale": [1.0, 2.0], "var": [1.0, 4.0]}`
const validEncoder = `{"categories": [["GET", "POST"]], "feature_names": ["method_GET", "method_POST"]}`
const validFeatureSchema = `{
	"numerical_features": ["score", "count"],
	"categorical_features": ["method"],
	"all_features": ["score", "count", "method"],
	"n_features": 3
}`

func writeArtifact(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestValidateArtifact_Valid(t *testing.T) {
	assert.NoError(t, ValidateArtifact(writeArtifact(t, "scaler.json", validScaler)))
	assert.NoError(t, ValidateArtifact(writeArtifact(t, "encoder.json", validEncoder)))
	assert.NoError(t, ValidateArtifact(writeArtifact(t, "feature_schema.json", validFeatureSchema)))
}

func TestValidateArtifact_MissingRequiredField(t *testing.T) {
	path := writeArtifact(t, "scaler.json", `{"mean": [0.5], "scale": [1.0]}`)

	err := ValidateArtifact(path)
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "scaler.json", ve.Artifact)
	assert.NotEmpty(t, ve.Errors)
}

func TestValidateArtifact_WrongType(t *testing.T) {
	path := writeArtifact(t, "scaler.json", `{"mean": "oops", "scale": [1.0], "var": [1.0]}`)
	assert.Error(t, ValidateArtifact(path))
}

func TestValidateArtifact_UnknownProperty(t *testing.T) {
	path := writeArtifact(t, "encoder.json", `{"categories": [["GET"]], "feature_names": ["method_GET"], "extra": 1}`)
	assert.Error(t, ValidateArtifact(path))
}

func TestValidateArtifact_UnregisteredName(t *testing.T) {
	path := writeArtifact(t, "unknown.json", `{}`)
	err := ValidateArtifact(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no schema registered")
}

func TestValidateBundle_MissingArtifact(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scaler.json"), []byte(validScaler), 0o644))

	assert.Error(t, ValidateBundle(dir))
}
