package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/jonathan/endpoint-classifier/internal/training"
	"github.com/jonathan/endpoint-classifier/internal/types"
)

// Artifact file names inside the output directory.
const (
	ModelFile   = "model.onnx"
	SchemaFile  = "feature_schema.json"
	ScalerFile  = "scaler.json"
	EncoderFile = "encoder.json"
	MetaFile    = "metadata.json"
)

// Bundle is everything written for one training run. The five artifacts are
// mutually consistent: the ONNX input width equals the scaled numeric width
// plus the one-hot width, all in the schema's slot order.
type Bundle struct {
	Schema   *types.FeatureSchema
	Scaler   types.ScalerParams
	Encoder  types.EncoderParams
	Metadata *types.Metadata

	Coef      []float64
	Intercept float64
}

// NewBundle assembles a bundle from a training result and run metadata,
// verifying artifact consistency before anything touches disk.
func NewBundle(res *training.Result, schema *types.FeatureSchema, meta *types.Metadata) (*Bundle, error) {
	b := &Bundle{
		Schema:    schema,
		Scaler:    res.Scaler.Params(),
		Encoder:   res.Encoder.Params("method"),
		Metadata:  meta,
		Coef:      res.Model.Coef,
		Intercept: res.Model.Intercept,
	}
	if err := b.check(res.InputDim); err != nil {
		return nil, err
	}
	return b, nil
}

// check enforces the cross-artifact invariants.
func (b *Bundle) check(inputDim int) error {
	numericWidth := len(b.Schema.NumericalFeatures) + len(b.Schema.TFIDFFeatures)
	if len(b.Scaler.Mean) != numericWidth {
		return fmt.Errorf("scaler covers %d columns, schema declares %d numeric slots", len(b.Scaler.Mean), numericWidth)
	}
	if len(b.Scaler.Scale) != numericWidth || len(b.Scaler.Var) != numericWidth {
		return fmt.Errorf("scaler parameter lengths disagree")
	}
	oneHotWidth := len(b.Encoder.FeatureNames)
	if want := numericWidth + oneHotWidth; inputDim != want {
		return fmt.Errorf("model input width %d, expected %d (numeric %d + one-hot %d)", inputDim, want, numericWidth, oneHotWidth)
	}
	if len(b.Coef) != inputDim {
		return fmt.Errorf("model has %d coefficients, input width is %d", len(b.Coef), inputDim)
	}
	if b.Schema.NFeatures != len(b.Schema.AllFeatures) {
		return fmt.Errorf("schema n_features %d but all_features lists %d", b.Schema.NFeatures, len(b.Schema.AllFeatures))
	}
	return nil
}

// Write serializes the bundle into outputDir: the ONNX model plus the four
// JSON artifacts. Every file is fully written and closed before the next is
// started; any failure aborts the run and the partial bundle is invalid.
func (b *Bundle) Write(outputDir string, log zerolog.Logger) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	model, err := LinearModelONNX(b.Coef, b.Intercept)
	if err != nil {
		return fmt.Errorf("failed to convert model: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outputDir, ModelFile), model, 0o644); err != nil {
		return fmt.Errorf("failed to write model: %w", err)
	}
	log.Info().Str("path", filepath.Join(outputDir, ModelFile)).Int("input_dim", len(b.Coef)).Msg("saved model")

	files := []struct {
		name string
		v    any
	}{
		{SchemaFile, b.Schema},
		{ScalerFile, b.Scaler},
		{EncoderFile, b.Encoder},
		{MetaFile, b.Metadata},
	}
	for _, f := range files {
		if err := writeJSON(filepath.Join(outputDir, f.name), f.v); err != nil {
			return err
		}
		log.Info().Str("path", filepath.Join(outputDir, f.name)).Msg("saved artifact")
	}
	return nil
}

// writeJSON marshals v with indentation and writes it in one shot.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}
