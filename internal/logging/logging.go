// Package logging configures the zerolog logger used for diagnostics.
//
// Diagnostics always go to stderr so stdout carries only the prompt.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// DefaultLevel keeps normal runs quiet.
const DefaultLevel = zerolog.WarnLevel

// ParseLevel parses a level name (case-insensitive). An empty string yields
// DefaultLevel.
func ParseLevel(s string) (zerolog.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "":
		return DefaultLevel, nil
	case "warning":
		return zerolog.WarnLevel, nil
	}
	level, err := zerolog.ParseLevel(s)
	if err != nil {
		return DefaultLevel, errors.Wrapf(err, "invalid log level %q", s)
	}
	if level == zerolog.NoLevel {
		return DefaultLevel, errors.Newf("invalid log level %q", s)
	}
	return level, nil
}

// New returns a logger writing to w at level. Terminals get the
// human-readable console writer; anything else gets JSON lines.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	out := w
	if isTerminal(w) {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
