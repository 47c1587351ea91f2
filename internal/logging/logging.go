package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the process logger. format "json" writes raw JSON lines,
// anything else uses the console writer.
func New(level, format string, out io.Writer) zerolog.Logger {
	if out == nil { out = os.Stdout }
	zerolog.TimeFieldFormat = time.RFC3339

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" { lvl = zerolog.InfoLevel }

	if format != "json" {
		_, tty := out.(*os.File)
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: !tty}
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Str("service", "bookstore").Logger()
}
