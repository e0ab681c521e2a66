package lint

import (
	"context"
	"errors"
	"fmt"
)

// ErrNilEngine is returned when an Invoker is constructed without an engine.
var ErrNilEngine = errors.New("lint engine is nil")

// Invoker adapts file content into engine calls.
//
// It owns the per-call plumbing the filter should not care about: deriving
// the format hint from the path, labeling the report with the tree-relative
// path, and normalizing whatever shape the engine hands back. The content is
// passed through untouched.
type Invoker struct {
	engine Engine
	opts   EngineOptions
}

// NewInvoker returns an Invoker for the given engine and options.
func NewInvoker(engine Engine, opts EngineOptions) (*Invoker, error) {
	if engine == nil {
		return nil, ErrNilEngine
	}
	return &Invoker{engine: engine, opts: opts}, nil
}

// Options returns the engine options the invoker was built with.
func (inv *Invoker) Options() EngineOptions {
	return inv.opts
}

// Run lints one file's content and returns its normalized report.
//
// An engine failure propagates wrapped in ErrEngineFailure; lint findings
// are never an error. The returned report always has a non-nil message list,
// a file path, and counts consistent with its messages.
func (inv *Invoker) Run(ctx context.Context, content []byte, relPath string) (*Report, error) {
	req := TextRequest{
		Content:  content,
		Format:   DetectFormat(relPath, content),
		Filename: relPath,
		Options:  inv.opts,
	}

	report, err := inv.engine.LintText(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("lint %s: %w: %w", relPath, ErrEngineFailure, err)
	}

	return Normalize(report, relPath), nil
}

// ResolveConfig returns the engine's effective configuration for the
// invoker's options.
func (inv *Invoker) ResolveConfig(ctx context.Context) (map[string]any, error) {
	cfg, err := inv.engine.ResolveConfig(ctx, inv.opts)
	if err != nil {
		return nil, fmt.Errorf("resolve lint config: %w", err)
	}
	return cfg, nil
}

// Output renders a batch of reports through the engine's formatter.
func (inv *Invoker) Output(ctx context.Context, reports []*Report) error {
	if err := inv.engine.OutputResults(ctx, reports, inv.opts); err != nil {
		return fmt.Errorf("output lint results: %w", err)
	}
	return nil
}
