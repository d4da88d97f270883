// Package logger configures the leveled op/go-logging backend shared by all commands.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/op/go-logging"
)

const defaultLogFormat = "%{time:2006/01/02 15:04:05} %{color}%{level:-8s} %{shortpkg}/%{shortfunc}%{color:reset}: %{message}"

// Levels accepted by NewLogger, most to least severe.
var Levels = []string{"critical", "error", "warning", "notice", "info", "debug"}

// NewLogger sets the global backend to stderr at the given level and returns
// the logger for module. Unknown levels fall back to WARNING.
func NewLogger(level string, module string) *logging.Logger {
	return NewLoggerTo(os.Stderr, level, module)
}

// NewLoggerTo is NewLogger with an explicit destination.
func NewLoggerTo(w io.Writer, level string, module string) *logging.Logger {
	backend := logging.NewLogBackend(w, "", 0)

	fm := logging.MustStringFormatter(defaultLogFormat)
	fmtBackend := logging.NewBackendFormatter(backend, fm)

	lvlBackend := logging.AddModuleLevel(fmtBackend)
	lvlBackend.SetLevel(ParseLevel(level), "")

	logging.SetBackend(lvlBackend)
	return logging.MustGetLogger(module)
}

// ParseLevel maps a level name to a go-logging level.
func ParseLevel(level string) logging.Level {
	lvl, err := logging.LogLevel(strings.TrimSpace(level))
	if err != nil {
		return logging.WARNING
	}
	return lvl
}

// Round trims a duration to three significant digits for display.
func Round(d time.Duration) time.Duration {
	switch {
	case d > time.Second:
		return d.Round(10 * time.Millisecond)
	case d > time.Millisecond:
		return d.Round(10 * time.Microsecond)
	case d > time.Microsecond:
		return d.Round(10 * time.Nanosecond)
	}
	return d
}
