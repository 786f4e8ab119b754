package observability

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// LoggerOptions configures the structured logger used by the pipeline.
type LoggerOptions struct {
	// Level is one of trace, debug, info, warn, error (default info)
	Level string
	// Format is "console" or "json" (default console)
	Format string
	// Writer overrides the output destination (default stderr)
	Writer io.Writer
}

// NewLogger builds the zerolog logger the pipeline stages log through.
// Logging goes to stderr so artifact-related stdout output stays clean.
func NewLogger(opts LoggerOptions) zerolog.Logger {
	var w io.Writer = os.Stderr
	if opts.Writer != nil {
		w = opts.Writer
	}
	if strings.ToLower(opts.Format) != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	lvl := parseLevel(opts.Level)
	return zerolog.New(w).Level(lvl).With().Timestamp().Str("component", "trainer").Logger()
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
