package main

import (
	"io"

	"github.com/rs/zerolog"
)

// newLogger writes human-readable log lines to w. quiet keeps errors only;
// verbose lowers the level to debug.
func newLogger(w io.Writer, level zerolog.Level, quiet, verbose bool) zerolog.Logger {
	switch {
	case quiet:
		level = zerolog.ErrorLevel
	case verbose:
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: "15:04:05"}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
