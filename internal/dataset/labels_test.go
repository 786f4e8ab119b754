package dataset

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/endpoint-classifier/internal/types"
)

func TestPrepareLabels_FiltersAndEncodes(t *testing.T) {
	records := []types.Record{
		{Label: "data"},
		{Label: "unsure"},
		{Label: "non-data"},
		{Label: "weird-label"},
		{Label: "data"},
	}

	labels, err := PrepareLabels(records, zerolog.Nop())
	require.NoError(t, err)

	// Only "data" and "non-data" survive, in input order
	require.Len(t, labels.Kept, 3)
	assert.Equal(t, []int{1, 0, 1}, labels.Y)
	assert.Equal(t, 2, labels.DataCount)
	assert.Equal(t, 1, labels.NonDataCount)
}

func TestPrepareLabels_AllUnsure(t *testing.T) {
	records := []types.Record{
		{Label: "unsure"},
		{Label: "unsure"},
	}

	labels, err := PrepareLabels(records, zerolog.Nop())
	require.ErrorIs(t, err, ErrNoLabels)
	assert.Nil(t, labels)
}

func TestPrepareLabels_Empty(t *testing.T) {
	_, err := PrepareLabels(nil, zerolog.Nop())
	require.ErrorIs(t, err, ErrNoLabels)
}
