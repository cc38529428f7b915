// Package logging provides leveled logging for segpipe: a package-level
// level switch writing to stderr, rather than a structured logging
// dependency, since the pipeline's own diagnostics are lifecycle events,
// not request telemetry.
package logging

import (
	"fmt"
	"os"
)

// Log levels, ordered from most to least severe.
const (
	Error = iota
	Warn
	Info
	Debug
)

// Level is the process-wide logging threshold. Messages logged at a level
// higher than Level are suppressed.
var Level = Warn

func levelToString(level int) string {
	switch level {
	case Error:
		return "ERROR"
	case Warn:
		return "WARN"
	case Info:
		return "INFO"
	case Debug:
		return "DEBUG"
	default:
		return "UNKNOWN"
	}
}

// Printf logs a message at the given level if it is at least as severe as
// Level (numerically less than or equal to it).
func Printf(level int, format string, args ...interface{}) {
	if level <= Level {
		fmt.Fprintf(os.Stderr, "[%s] segpipe: %s\n", levelToString(level), fmt.Sprintf(format, args...))
	}
}

// Debugf logs a debug-level message.
func Debugf(format string, args ...interface{}) {
	Printf(Debug, format, args...)
}

// Infof logs an info-level message.
func Infof(format string, args ...interface{}) {
	Printf(Info, format, args...)
}

// Warnf logs a warn-level message.
func Warnf(format string, args ...interface{}) {
	Printf(Warn, format, args...)
}

// Errorf logs an error-level message.
func Errorf(format string, args ...interface{}) {
	Printf(Error, format, args...)
}
