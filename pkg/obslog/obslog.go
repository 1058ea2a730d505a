// Package obslog provides the structured logger used by cmd/bvinvert and
// pkg/batch. The kernel packages (bv, bvdomain, invert, gen, wheel) never
// import this package: the kernel performs no I/O at all, logging included.
package obslog

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds a console-rendered logger. verbose lowers the level to debug;
// otherwise only info and above are emitted.
func New(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}
