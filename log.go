package motion

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// logger is the package-wide default used by controllers and transitions
// that have no logger of their own. Silent until SetLogger is called.
var logger = zerolog.Nop()

// SetLogger replaces the package-wide default logger.
func SetLogger(l zerolog.Logger) {
	logger = l
}

// Logger returns the package-wide default logger.
func Logger() zerolog.Logger {
	return logger
}

// NewLogger builds a logger writing to w at the named level ("debug",
// "info", "warn", "error"; anything else means info). format "json" writes
// one JSON object per line, anything else writes human-readable console
// output. A nil w writes to stderr.
func NewLogger(w io.Writer, level, format string) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	if format != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05.000"}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Str("component", "motion").Logger()
}
