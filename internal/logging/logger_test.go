package logging_test

import (
	"context"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/lintfilter/internal/logging"
)

func TestNew(t *testing.T) {
	t.Parallel()

	cases := map[string]log.Level{
		"debug":   log.DebugLevel,
		"info":    log.InfoLevel,
		"warn":    log.WarnLevel,
		"warning": log.WarnLevel,
		"error":   log.ErrorLevel,
		"DEBUG":   log.DebugLevel,
		"Info":    log.InfoLevel,
		"":        log.InfoLevel,
		"bogus":   log.InfoLevel,
	}

	for level, want := range cases {
		logger := logging.New(level)
		if logger == nil {
			t.Fatalf("New(%q) returned nil", level)
		}
		if got := logger.GetLevel(); got != want {
			t.Errorf("New(%q) level = %v, want %v", level, got, want)
		}
	}
}

func TestDefaultLoggerState(t *testing.T) {
	// Not parallel: exercises the package-level default.

	original := logging.Default()
	if original == nil {
		t.Fatal("Default returned nil logger")
	}
	defer logging.SetDefault(original)

	replacement := logging.New("info")
	logging.SetDefault(replacement)
	if logging.Default() != replacement {
		t.Fatal("SetDefault did not take")
	}

	logging.SetLevel("debug")
	if logging.Default().GetLevel() != log.DebugLevel {
		t.Error("SetLevel(debug) did not reach the default logger")
	}

	// Lint configs spell the level "warning".
	logging.SetLevel("warning")
	if logging.Default().GetLevel() != log.WarnLevel {
		t.Error("SetLevel(warning) should map to the warn level")
	}
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	// A context without a logger falls back to the default.
	if logging.FromContext(context.Background()) == nil {
		t.Fatal("FromContext returned nil for bare context")
	}

	custom := logging.New("debug")
	ctx := logging.WithLogger(context.Background(), custom)
	if logging.FromContext(ctx) != custom {
		t.Error("FromContext did not return the attached logger")
	}
}
