// Package dataset loads and prepares labeled endpoint observations for training.
package dataset

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"

	"github.com/rs/zerolog"

	"github.com/jonathan/endpoint-classifier/internal/types"
)

// ErrNoData indicates that no records could be loaded from any source.
var ErrNoData = errors.New("no training data loaded")

// maxLineBytes bounds a single JSONL line; sampled key paths can make records large.
const maxLineBytes = 4 * 1024 * 1024

// LoadStats reports how loading went across all sources.
type LoadStats struct {
	// RecordsLoaded is the total number of parsed records
	RecordsLoaded int
	// SourcesUsed is the number of sources that contributed at least one record
	SourcesUsed int
	// LinesSkipped is the number of non-blank lines that failed to parse
	LinesSkipped int
}

// Load reads newline-delimited JSON records from the given sources in order.
// Unreadable sources and unparsable lines are logged as warnings and skipped;
// Load fails with ErrNoData only when every source yielded nothing.
func Load(sources []string, log zerolog.Logger) ([]types.Record, LoadStats, error) {
	var records []types.Record
	var stats LoadStats

	for _, source := range sources {
		n, skipped, err := loadFile(source, &records, log)
		if err != nil {
			log.Warn().Str("source", source).Err(err).Msg("skipping unreadable source")
			continue
		}
		stats.LinesSkipped += skipped
		if n > 0 {
			stats.SourcesUsed++
		}
	}

	stats.RecordsLoaded = len(records)
	if stats.RecordsLoaded == 0 {
		return nil, stats, ErrNoData
	}

	log.Info().
		Int("records", stats.RecordsLoaded).
		Int("sources", stats.SourcesUsed).
		Int("skipped_lines", stats.LinesSkipped).
		Msg("loaded training data")

	return records, stats, nil
}

// loadFile appends parsed records from one source and returns how many it added.
func loadFile(path string, records *[]types.Record, log zerolog.Logger) (added, skipped int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 || isBlank(line) {
			continue
		}

		var rec types.Record
		if err := json.Unmarshal(line, &rec); err != nil {
			skipped++
			log.Warn().Str("source", path).Int("line", lineNo).Err(err).Msg("failed to parse line")
			continue
		}
		*records = append(*records, rec)
		added++
	}
	if err := scanner.Err(); err != nil {
		// A read error mid-file keeps what was parsed so far
		log.Warn().Str("source", path).Err(err).Msg("stopped reading source early")
	}

	return added, skipped, nil
}

func isBlank(line []byte) bool {
	for _, b := range line {
		if b != ' ' && b != '\t' && b != '\r' {
			return false
		}
	}
	return true
}
