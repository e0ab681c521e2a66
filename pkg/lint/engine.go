package lint

import (
	"context"
	"errors"
)

// Sentinel errors for engine interactions.
var (
	// ErrEngineFailure indicates the engine process or call itself failed,
	// as opposed to the engine succeeding and reporting lint issues.
	ErrEngineFailure = errors.New("lint engine failure")

	// ErrMalformedOutput indicates engine output that could not be decoded
	// into reports.
	ErrMalformedOutput = errors.New("malformed lint engine output")
)

// EngineOptions carries the caller's lint configuration to the engine.
type EngineOptions struct {
	// ConfigPath points at an engine configuration file. Empty means the
	// engine applies its own discovery and defaults.
	ConfigPath string

	// SearchDir is where EffectiveConfigPath starts upward config discovery
	// when ConfigPath is empty. Empty disables discovery.
	SearchDir string

	// Inline holds configuration passed programmatically, for example rule
	// overrides or output options. Inline values take precedence over the
	// config file when the engine resolves its effective configuration.
	Inline map[string]any
}

// EffectiveConfigPath returns the config file the engine should load: the
// explicit ConfigPath when set, otherwise the nearest file FindConfigFile
// discovers above SearchDir. Empty means no config file.
func (o EngineOptions) EffectiveConfigPath() string {
	if o.ConfigPath != "" {
		return o.ConfigPath
	}
	if o.SearchDir == "" {
		return ""
	}
	path, _ := FindConfigFile(o.SearchDir)
	return path
}

// TextRequest describes one lint-this-content call.
type TextRequest struct {
	// Content is the text to lint. Engines must treat it as read-only.
	Content []byte

	// Format is the syntax hint, e.g. "scss" or "sass". See DetectFormat.
	Format string

	// Filename is the path the report should be labeled with, normally
	// relative to the source tree root. The content is handed over directly;
	// the path is never read from disk.
	Filename string

	// Options is the lint configuration for this call.
	Options EngineOptions
}

// Engine is the boundary to an external lint tool.
//
// Implementations must be safe for concurrent LintText calls: the host
// pipeline lints many files in parallel.
type Engine interface {
	// LintText lints a single piece of content and returns its report.
	// A non-nil error means the engine itself failed; lint findings are
	// never an error.
	LintText(ctx context.Context, req TextRequest) (*Report, error)

	// ResolveConfig returns the effective configuration the engine would
	// apply under opts, with the config file and inline settings merged.
	// The result feeds cache keys, so it must be deterministic for equal
	// options.
	ResolveConfig(ctx context.Context, opts EngineOptions) (map[string]any, error)

	// OutputResults renders a batch of reports through the engine's
	// configured formatter and output sink.
	OutputResults(ctx context.Context, reports []*Report, opts EngineOptions) error
}
