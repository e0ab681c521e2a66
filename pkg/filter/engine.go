// Package filter implements an incremental, content-addressed lint stage for
// tree-based build pipelines.
//
// The Engine is a pipeline.Filter: the host walks an input tree and asks the
// engine, per file, where output should land, what the file's cache key is,
// and how content transforms. Transforming here means linting: output is the
// input content unchanged, or a generated test suite asserting the file's
// lint result when a test generator is configured. Diagnostics accumulate
// across a pass and flush through the lint engine's reporting sink exactly
// once per pass.
package filter

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/yaklabco/lintfilter/internal/logging"
	"github.com/yaklabco/lintfilter/pkg/cachekey"
	"github.com/yaklabco/lintfilter/pkg/ignore"
	"github.com/yaklabco/lintfilter/pkg/lint"
	"github.com/yaklabco/lintfilter/pkg/pipeline"
	"github.com/yaklabco/lintfilter/pkg/teststub"
)

// Construction failures. These fail fast: a filter that would misbehave on
// every file never gets built.
var (
	ErrConstruction = errors.New("filter construction")
	ErrNilTree      = errors.New("nil input tree")
)

// Engine is the per-file lint filter. It is safe for the concurrent per-file
// calls a host scheduler makes: DestinationPath, CacheKey, and Transform
// touch no cross-file mutable state, and PostProcess appends to the
// pass-scoped accumulator under a mutex.
type Engine struct {
	tree       pipeline.Tree
	invoker    *lint.Invoker
	matcher    *ignore.Matcher
	generator  *teststub.Generator
	hook       *ReportHook
	extensions []string
	targetExt  string
	raw        map[string]any

	stateMu sync.Mutex
	state   *passState

	accMu       sync.Mutex
	accumulated []*lint.Report
	lastSummary PassSummary
}

var _ pipeline.Filter = (*Engine)(nil)

// passState memoizes one pass's config resolution, so the cache key and the
// lint invocation see the same effective ruleset.
type passState struct {
	once     sync.Once
	resolved map[string]any
	builder  *cachekey.Builder
	err      error
}

// New constructs an Engine over tree, linting through engine.
func New(tree pipeline.Tree, engine lint.Engine, opts Options) (*Engine, error) {
	if tree == nil {
		return nil, fmt.Errorf("%w: %w", ErrConstruction, ErrNilTree)
	}

	generator := opts.Generator
	if generator == nil && opts.TestGenerator != "" {
		resolved, err := teststub.Resolve(opts.TestGenerator)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConstruction, err)
		}
		generator = resolved
	}

	invoker, err := lint.NewInvoker(engine, lint.EngineOptions{
		ConfigPath: opts.ConfigPath,
		SearchDir:  tree.Root(),
		Inline:     opts.Passthrough,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConstruction, err)
	}

	targetExt := DefaultTargetExtension
	if generator != nil {
		targetExt = TestTargetExtension
	}

	return &Engine{
		tree:       tree,
		invoker:    invoker,
		matcher:    ignore.NewMatcher(opts.IgnorePatterns),
		generator:  generator,
		hook:       opts.Hook,
		extensions: opts.effectiveExtensions(),
		targetExt:  targetExt,
		raw:        rawConfig(opts, generator),
		state:      &passState{},
	}, nil
}

// NewFromConfig constructs an Engine from a host configuration mapping, the
// shape build pipelines hand their filter plugins.
func NewFromConfig(tree pipeline.Tree, engine lint.Engine, config map[string]any) (*Engine, error) {
	opts, err := ParseOptions(config)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConstruction, err)
	}
	return New(tree, engine, opts)
}

// rawConfig rebuilds the configuration view that feeds the cache key.
// Function-valued entries (the generator, the hook) contribute their source
// fingerprints, so changing their logic invalidates cached results.
func rawConfig(opts Options, generator *teststub.Generator) map[string]any {
	raw := make(map[string]any, len(opts.Passthrough)+4)
	for key, value := range opts.Passthrough {
		raw[key] = value
	}
	if opts.ConfigPath != "" {
		raw[optionConfig] = opts.ConfigPath
	}
	if generator != nil {
		raw[optionTestGenerator] = generator
	}
	if len(opts.IgnorePatterns) > 0 {
		raw[optionFiles] = map[string]any{optionIgnore: opts.IgnorePatterns}
	}
	if opts.Hook != nil {
		raw[optionReportHook] = opts.Hook
	}
	return raw
}

// Tree returns the input tree handle.
func (e *Engine) Tree() pipeline.Tree { return e.tree }

// Extensions returns the eligible source suffixes.
func (e *Engine) Extensions() []string {
	out := make([]string, len(e.extensions))
	copy(out, e.extensions)
	return out
}

// TargetExtension returns the output suffix: the stylesheet extension
// normally, the test suffix when a generator is active.
func (e *Engine) TargetExtension() string { return e.targetExt }

// Generator returns the active test stub generator, or nil.
func (e *Engine) Generator() *teststub.Generator { return e.generator }

// DestinationPath maps a source path to its output path. Ignored paths and
// paths outside the eligible extensions are excluded entirely.
func (e *Engine) DestinationPath(relPath string) string {
	if e.matcher.Match(relPath) {
		return ""
	}
	ext := extensionOf(relPath)
	if !e.eligible(ext) {
		return ""
	}
	return relPath[:len(relPath)-len(ext)] + e.targetExt
}

// CacheKey computes the digest for one file under the pass's effective
// configuration.
func (e *Engine) CacheKey(ctx context.Context, content []byte, relPath string) (cachekey.Digest, error) {
	state, err := e.resolveState(ctx)
	if err != nil {
		return "", err
	}
	return state.builder.Sum(content, relPath), nil
}

// ResolveEffectiveConfig returns the merged rule configuration used for
// linting and cache keying this pass. Resolution happens once per pass; every
// caller within a pass sees the same result.
func (e *Engine) ResolveEffectiveConfig(ctx context.Context) (map[string]any, error) {
	state, err := e.resolveState(ctx)
	if err != nil {
		return nil, err
	}
	// Hand out a copy so callers cannot mutate the memoized config.
	return lint.MergeConfig(state.resolved, nil), nil
}

// resolveState memoizes config resolution for the current pass.
func (e *Engine) resolveState(ctx context.Context) (*passState, error) {
	e.stateMu.Lock()
	state := e.state
	e.stateMu.Unlock()

	state.once.Do(func() {
		state.resolved, state.err = e.invoker.ResolveConfig(ctx)
		if state.err == nil {
			state.builder = cachekey.NewBuilder(e.raw, state.resolved)
		}
	})
	if state.err != nil {
		return nil, state.err
	}
	return state, nil
}

// Transform lints one file and packages the cacheable result. Output is the
// content unchanged, or the rendered test stub when a generator is active.
// Engine failures propagate unmodified; they are never folded into a clean
// report.
func (e *Engine) Transform(ctx context.Context, content []byte, relPath string) (*pipeline.Artifact, error) {
	report, err := e.invoker.Run(ctx, content, relPath)
	if err != nil {
		return nil, err
	}

	output := content
	if e.generator != nil {
		output = []byte(e.generator.Render(relPath, report))
	}

	return &pipeline.Artifact{Report: report, Output: output}, nil
}

// PostProcess accumulates the artifact's report when it carries any issues,
// then strips it so only output continues through the pipeline. Safe for
// concurrent per-file calls.
func (e *Engine) PostProcess(_ context.Context, artifact *pipeline.Artifact) (*pipeline.Artifact, error) {
	if artifact == nil {
		return nil, fmt.Errorf("post-process: nil artifact")
	}

	report := artifact.Report
	if report != nil && (report.ErrorCount > 0 || report.WarningCount > 0) {
		e.accMu.Lock()
		e.accumulated = append(e.accumulated, report.Clone())
		e.accMu.Unlock()

		if e.hook != nil && e.hook.Fn != nil {
			e.hook.Fn(report.Clone())
		}
	}

	return &pipeline.Artifact{Output: artifact.Output}, nil
}

// BeginPass resets the pass-scoped accumulator and the memoized config
// resolution, so a new pass sees current on-disk rule config.
func (e *Engine) BeginPass(_ context.Context) error {
	e.accMu.Lock()
	e.accumulated = nil
	e.accMu.Unlock()

	e.stateMu.Lock()
	e.state = &passState{}
	e.stateMu.Unlock()
	return nil
}

// EndPass flushes the pass's accumulated reports through the lint engine's
// reporting sink. Reports flush once, in a single call, so parallel file
// processing never interleaves output.
func (e *Engine) EndPass(ctx context.Context) error {
	e.accMu.Lock()
	reports := e.accumulated
	e.accumulated = nil
	summary := Summarize(reports)
	e.lastSummary = summary
	e.accMu.Unlock()

	if len(reports) == 0 {
		return nil
	}

	logging.FromContext(ctx).Debug("flushing lint reports",
		logging.FieldFilesWithIssues, summary.Totals.FilesWithIssues,
		logging.FieldIssuesTotal, summary.Totals.Issues)

	if err := e.invoker.Output(ctx, reports); err != nil {
		return fmt.Errorf("flush reports: %w", err)
	}
	return nil
}

// LastPassSummary returns the summary of the most recently finished pass.
// The zero value means no pass has finished yet.
func (e *Engine) LastPassSummary() PassSummary {
	e.accMu.Lock()
	defer e.accMu.Unlock()
	return e.lastSummary.clone()
}

// eligible reports whether a (dotless, lowercased) extension is processed.
func (e *Engine) eligible(ext string) bool {
	if ext == "" {
		return false
	}
	for _, candidate := range e.extensions {
		if strings.EqualFold(candidate, ext) {
			return true
		}
	}
	return false
}

// extensionOf returns relPath's extension, lowercased and without the dot.
func extensionOf(relPath string) string {
	ext := path.Ext(relPath)
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
