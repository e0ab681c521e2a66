// Package logging wraps charmbracelet/log with the filter's defaults: terse
// stderr output, structured field-name constants, and a context-attached
// logger so pass-scoped fields travel with the work.
package logging

import (
	"cmp"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// levelEnvVar overrides the default log level when set, e.g.
// LINTFILTER_LOG=debug. Build pipelines embed the filter rather than run it
// from a flag-parsing CLI, so the environment is the only practical knob.
const levelEnvVar = "LINTFILTER_LOG"

//nolint:gochecknoglobals // Package-level logger is intentional for convenience
var (
	defaultLogger     *log.Logger
	defaultLoggerOnce sync.Once
)

// New creates a stderr logger at the given level. Unknown level names fall
// back to info.
func New(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})
	logger.SetLevel(parseLevel(level))
	return logger
}

// Default returns the package-level default logger.
func Default() *log.Logger {
	defaultLoggerOnce.Do(func() {
		defaultLogger = New(cmp.Or(os.Getenv(levelEnvVar), "info"))
	})
	return defaultLogger
}

// SetDefault replaces the package-level default logger.
func SetDefault(logger *log.Logger) {
	// Trip the once so a later Default cannot overwrite this logger.
	defaultLoggerOnce.Do(func() {})
	defaultLogger = logger
}

// SetLevel updates the log level of the default logger.
// Valid levels: "debug", "info", "warn", "error".
func SetLevel(level string) {
	Default().SetLevel(parseLevel(level))
}

func parseLevel(level string) log.Level {
	// Lint configs say "warning" where log levels say "warn".
	if strings.EqualFold(level, "warning") {
		level = "warn"
	}
	parsed, err := log.ParseLevel(level)
	if err != nil {
		return log.InfoLevel
	}
	return parsed
}
