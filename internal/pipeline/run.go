// Package pipeline provides the high-level orchestration for the training process.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jonathan/endpoint-classifier/internal/dataset"
	"github.com/jonathan/endpoint-classifier/internal/db"
	"github.com/jonathan/endpoint-classifier/internal/export"
	"github.com/jonathan/endpoint-classifier/internal/features"
	"github.com/jonathan/endpoint-classifier/internal/observability"
	"github.com/jonathan/endpoint-classifier/internal/schemas"
	"github.com/jonathan/endpoint-classifier/internal/training"
	"github.com/jonathan/endpoint-classifier/internal/types"
)

// F1 decision thresholds on the held-out split.
const (
	// minAcceptableF1 is the floor below which the run signals failure
	minAcceptableF1 = 0.5
	// marginalF1 marks performance worth flagging but not failing
	marginalF1 = 0.6
)

// ErrLowF1 signals that training completed and artifacts were written, but
// held-out F1 fell below the acceptance floor. It maps to exit code 1.
var ErrLowF1 = errors.New("held-out F1 below acceptance threshold")

// RunOptions holds configuration for running the training pipeline
type RunOptions struct {
	Inputs       []string
	OutputDir    string
	VocabSize    int
	TestFraction float64
	Folds        int
	Seed         int64
	Verbose      bool
	DatabaseURL  string
	Logger       zerolog.Logger
}

// RunPipeline executes the full training run: load, prepare labels, extract
// features, train, export the artifact bundle, validate it, and optionally
// record the run in PostgreSQL. Stages run strictly in sequence.
func RunPipeline(ctx context.Context, opts RunOptions) error {
	log := opts.Logger
	printer := observability.NewPrinter(os.Stdout)

	if opts.TestFraction == 0 {
		opts.TestFraction = training.DefaultTestFraction
	}
	if opts.Folds == 0 {
		opts.Folds = training.DefaultFolds
	}
	if opts.Seed == 0 {
		opts.Seed = training.DefaultSeed
	}

	// Stage 1: load records
	records, loadStats, err := dataset.Load(opts.Inputs, log)
	if err != nil {
		return err
	}

	// Stage 2: binary labels
	labels, err := dataset.PrepareLabels(records, log)
	if err != nil {
		return err
	}
	if opts.Verbose {
		printer.PrintLabelDistribution(labels.DataCount, labels.NonDataCount)
	}

	// Stage 3: features; the TF-IDF vocabulary is fitted once here on the
	// full labeled set and frozen for the rest of the run
	tfidf := features.NewTFIDF(opts.VocabSize)
	extractor := features.NewExtractor(tfidf)
	matrix := extractor.Extract(labels.Kept)
	log.Info().Int("slots", matrix.Schema.NFeatures).Msg("extracted features")
	if opts.Verbose {
		printer.PrintFeatureSchema(matrix.Schema)
	}

	// Stage 4: train and evaluate
	result, err := training.Train(matrix, labels.Y, training.Options{
		TestFraction: opts.TestFraction,
		Folds:        opts.Folds,
		Seed:         opts.Seed,
	}, log)
	if err != nil {
		return fmt.Errorf("training failed: %w", err)
	}
	if opts.Verbose {
		printer.PrintCVScores(result.Metrics.CVF1Scores, result.Metrics.CVF1Mean, result.Metrics.CVF1Std)
		printer.PrintTestMetrics(result.Metrics)
		printer.PrintFeatureImportances(result.FeatureNames, result.Model.Coef)
	}

	// Stage 5: export the artifact bundle
	runID := uuid.New()
	meta := buildMetadata(runID, opts, loadStats, labels, matrix.Schema, result.Metrics, tfidf.Params())
	bundle, err := export.NewBundle(result, matrix.Schema, meta)
	if err != nil {
		return fmt.Errorf("artifact bundle is inconsistent: %w", err)
	}
	if err := bundle.Write(opts.OutputDir, log); err != nil {
		return err
	}

	// Stage 6: self-check the written JSON artifacts
	if err := schemas.ValidateBundle(opts.OutputDir); err != nil {
		return fmt.Errorf("exported artifacts failed validation: %w", err)
	}

	// Stage 7: optional run registry; failures here are warnings, the
	// on-disk bundle is already the source of truth
	if opts.DatabaseURL != "" {
		persistRun(ctx, opts, runID, meta, result.Metrics, log)
	}

	f1 := result.Metrics.TestF1
	switch {
	case f1 < minAcceptableF1:
		log.Warn().Float64("test_f1", f1).
			Msg("F1 below 0.5; collect more labeled data or rely on heuristic scoring until the model improves")
		return fmt.Errorf("%w: %.3f", ErrLowF1, f1)
	case f1 < marginalF1:
		log.Info().Float64("test_f1", f1).Msg("F1 acceptable but could improve with more training data")
	default:
		log.Info().Float64("test_f1", f1).Msg("model performance looks good")
	}

	log.Info().Str("output", opts.OutputDir).Msg("training complete")
	return nil
}

// buildMetadata assembles the metadata.json manifest for this run.
func buildMetadata(runID uuid.UUID, opts RunOptions, loadStats dataset.LoadStats, labels *dataset.Labels, schema *types.FeatureSchema, metrics *types.Metrics, tfidf *types.TFIDFParams) *types.Metadata {
	return &types.Metadata{
		Version:   "v1",
		RunID:     runID.String(),
		TrainedAt: time.Now().UTC().Format(time.RFC3339),
		ModelType: "logistic_regression",
		Hyperparameters: types.Hyperparameters{
			ClassWeight: "balanced",
			C:           training.DefaultC,
			Penalty:     "l2",
			Solver:      "gradient_descent",
			MaxIter:     training.DefaultMaxIter,
		},
		TrainingData: types.TrainingData{
			Sources:       opts.Inputs,
			TotalExamples: labels.DataCount + labels.NonDataCount,
			DataCount:     labels.DataCount,
			NonDataCount:  labels.NonDataCount,
			SourcesUsed:   loadStats.SourcesUsed,
			LinesSkipped:  loadStats.LinesSkipped,
		},
		Performance: types.Performance{
			CVF1Mean:      metrics.CVF1Mean,
			CVF1Std:       metrics.CVF1Std,
			TestF1:        metrics.TestF1,
			TestPrecision: metrics.TestPrecision,
			TestRecall:    metrics.TestRecall,
			TestROCAUC:    metrics.TestROCAUC,
		},
		Features: *schema,
		TFIDF:    tfidf,
	}
}

// persistRun records the run and its key artifacts in the training registry.
func persistRun(ctx context.Context, opts RunOptions, runID uuid.UUID, meta *types.Metadata, metrics *types.Metrics, log zerolog.Logger) {
	database, err := db.Connect(ctx, opts.DatabaseURL)
	if err != nil {
		log.Warn().Err(err).Msg("failed to connect to run registry; continuing without persistence")
		return
	}
	defer database.Close()

	dbRunID, err := database.CreateRun(ctx, opts.OutputDir, opts.Inputs)
	if err != nil {
		log.Warn().Err(err).Msg("failed to create registry run")
		return
	}

	if err := database.SaveArtifact(ctx, dbRunID, db.StepMetrics, metrics); err != nil {
		log.Warn().Err(err).Msg("failed to save metrics artifact")
	}
	if err := database.SaveArtifact(ctx, dbRunID, db.StepFeatureSchema, meta.Features); err != nil {
		log.Warn().Err(err).Msg("failed to save schema artifact")
	}
	if err := database.SaveArtifact(ctx, dbRunID, db.StepMetadata, meta); err != nil {
		log.Warn().Err(err).Msg("failed to save metadata artifact")
	}
	if err := database.CompleteRun(ctx, dbRunID, "completed", metrics.TestF1); err != nil {
		log.Warn().Err(err).Msg("failed to complete registry run")
	}

	log.Info().Str("registry_run_id", dbRunID.String()).Str("run_id", runID.String()).Msg("recorded run in registry")
}
