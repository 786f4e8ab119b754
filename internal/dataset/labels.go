package dataset

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/jonathan/endpoint-classifier/internal/types"
)

// ErrNoLabels indicates that no record carried a usable binary label.
var ErrNoLabels = errors.New(`no valid labels found (need "data" or "non-data")`)

// Labels is the binary label vector aligned 1:1 with the retained records.
type Labels struct {
	// Kept are the records whose label was "data" or "non-data", in input order
	Kept []types.Record
	// Y holds 1 for "data" and 0 for "non-data", aligned with Kept
	Y []int
	// DataCount and NonDataCount are the class totals
	DataCount    int
	NonDataCount int
}

// PrepareLabels filters records to the binary label domain, dropping "unsure"
// and any unrecognized label values. This must run before any feature or
// vocabulary computation so corpus statistics only reflect labeled data.
func PrepareLabels(records []types.Record, log zerolog.Logger) (*Labels, error) {
	out := &Labels{}
	dropped := 0

	for _, rec := range records {
		switch rec.Label {
		case types.LabelData:
			out.Kept = append(out.Kept, rec)
			out.Y = append(out.Y, 1)
			out.DataCount++
		case types.LabelNonData:
			out.Kept = append(out.Kept, rec)
			out.Y = append(out.Y, 0)
			out.NonDataCount++
		default:
			dropped++
		}
	}

	if len(out.Kept) == 0 {
		return nil, ErrNoLabels
	}

	total := out.DataCount + out.NonDataCount
	log.Info().
		Int("data", out.DataCount).
		Int("non_data", out.NonDataCount).
		Int("dropped", dropped).
		Float64("data_pct", 100*float64(out.DataCount)/float64(total)).
		Msg("prepared binary labels")

	return out, nil
}
