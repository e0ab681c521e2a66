package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yaklabco/lintfilter/internal/logging"
	"github.com/yaklabco/lintfilter/pkg/fsutil"
)

// ErrNilFilter is returned when a runner is constructed without a filter.
var ErrNilFilter = errors.New("nil filter")

// Options configures a Runner.
type Options struct {
	// Jobs caps concurrent workers. Zero or negative means runtime.NumCPU().
	Jobs int

	// Store holds artifacts across passes. Nil means a fresh MemoryStore,
	// which still makes repeat passes within one process cheap.
	Store Store

	// OutputDir is the destination tree root. Empty disables emission, which
	// is useful when only the diagnostics are wanted.
	OutputDir string
}

// Runner drives a Filter over its input tree: one call to Pass is one full
// build pass in the host pipeline's sense. The runner owns scheduling,
// caching, and output emission; all lint semantics live in the filter.
type Runner struct {
	filter  Filter
	store   Store
	opts    Options
	passSeq atomic.Int64
}

// NewRunner creates a runner for the given filter.
func NewRunner(filter Filter, opts Options) (*Runner, error) {
	if filter == nil {
		return nil, ErrNilFilter
	}
	store := opts.Store
	if store == nil {
		store = NewMemoryStore()
	}
	return &Runner{filter: filter, store: store, opts: opts}, nil
}

// Store returns the artifact store the runner uses. Handing the same store
// to a future runner carries the cache across passes.
func (r *Runner) Store() Store { return r.store }

// Pass walks the input tree and processes every eligible file concurrently.
// It returns a deterministic collection of FileOutcome values and aggregate
// stats.
//
// The runner:
//   - Calls BeginPass, then EndPass exactly once around the file work
//   - Replays cached artifacts through PostProcess so their diagnostics
//     still reach the pass report
//   - Emits outputs atomically, leaving unchanged files untouched
//   - Respects context cancellation
func (r *Runner) Pass(ctx context.Context) (*Result, error) {
	// Every log line in this pass carries its ordinal, the filter's included.
	logger := logging.FromContext(ctx).With(logging.FieldPass, r.passSeq.Add(1))
	ctx = logging.WithLogger(ctx, logger)
	start := time.Now()

	files, err := r.filter.Tree().Walk(ctx)
	if err != nil {
		return nil, err
	}

	if err := r.filter.BeginPass(ctx); err != nil {
		return nil, fmt.Errorf("begin pass: %w", err)
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesWalked = len(files)

	if len(files) > 0 {
		// Determine job count; never more workers than files.
		jobs := r.opts.Jobs
		if jobs <= 0 {
			jobs = runtime.NumCPU()
		}
		if jobs > len(files) {
			jobs = len(files)
		}

		logger.Debug("pass started",
			logging.FieldFiles, len(files),
			logging.FieldJobs, jobs)

		workCh := make(chan string)
		outCh := make(chan FileOutcome)

		var wg sync.WaitGroup

		for range jobs {
			wg.Add(1)
			go func() {
				defer wg.Done()
				r.worker(ctx, workCh, outCh)
			}()
		}

		// Feed work in a separate goroutine.
		go func() {
			defer close(workCh)
			for _, path := range files {
				select {
				case <-ctx.Done():
					return
				case workCh <- path:
				}
			}
		}()

		// Close outCh when all workers are done.
		go func() {
			wg.Wait()
			close(outCh)
		}()

		// Collect results.
		// Use a map to maintain order since workers may complete out of order.
		outcomes := make(map[string]FileOutcome, len(files))

		for outcome := range outCh {
			outcomes[outcome.Path] = outcome
		}

		// Build result in deterministic order.
		for _, path := range files {
			if outcome, ok := outcomes[path]; ok {
				result.accumulate(outcome)
			}
		}
	}

	// The flush happens even for an empty pass, so downstream consumers of
	// the reporting collaborator always see exactly one call per pass.
	endErr := r.filter.EndPass(ctx)

	if ctx.Err() != nil {
		return result, fmt.Errorf("pass cancelled: %w", ctx.Err())
	}
	if endErr != nil {
		return result, fmt.Errorf("end pass: %w", endErr)
	}

	logger.Info("pass complete",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesIgnored, result.Stats.FilesIgnored,
		logging.FieldCacheHits, result.Stats.CacheHits,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldIssuesTotal, result.Stats.IssuesTotal,
		logging.FieldElapsed, time.Since(start))

	return result, nil
}

// worker processes files from workCh and sends outcomes to outCh.
func (r *Runner) worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome) {
	for path := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := r.processFile(ctx, path)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// processFile carries one file through the filter's lifecycle.
func (r *Runner) processFile(ctx context.Context, path string) FileOutcome {
	logger := logging.FromContext(ctx)
	outcome := FileOutcome{Path: path}

	dest := r.filter.DestinationPath(path)
	if dest == "" {
		logger.Debug("file excluded", logging.FieldPath, path)
		return outcome
	}
	outcome.Destination = dest

	content, err := r.filter.Tree().Read(ctx, path)
	if err != nil {
		outcome.Error = fmt.Errorf("read %s: %w", path, err)
		return outcome
	}

	key, err := r.filter.CacheKey(ctx, content, path)
	if err != nil {
		outcome.Error = fmt.Errorf("cache key %s: %w", path, err)
		return outcome
	}
	outcome.Digest = key

	artifact, hit, err := r.store.Get(ctx, key)
	if err != nil {
		outcome.Error = fmt.Errorf("cache get %s: %w", path, err)
		return outcome
	}
	if hit {
		outcome.CacheHit = true
	} else {
		artifact, err = r.filter.Transform(ctx, content, path)
		if err != nil {
			// Engine failures arrive already wrapped with path context.
			outcome.Error = err
			return outcome
		}
		if err := r.store.Put(ctx, key, artifact); err != nil {
			outcome.Error = fmt.Errorf("cache put %s: %w", path, err)
			return outcome
		}
	}

	// Keep the report for stats; PostProcess strips it from the artifact.
	outcome.Report = artifact.Report.Clone()

	final, err := r.filter.PostProcess(ctx, artifact)
	if err != nil {
		outcome.Error = fmt.Errorf("post-process %s: %w", path, err)
		return outcome
	}

	if r.opts.OutputDir != "" {
		written, err := r.emit(ctx, dest, final.Output)
		if err != nil {
			outcome.Error = err
			return outcome
		}
		outcome.Written = written
	}

	logger.Debug("file processed",
		logging.FieldPath, path,
		logging.FieldDigest, string(key),
		logging.FieldCacheHit, hit)

	return outcome
}

// emit writes one output file under the destination tree.
func (r *Runner) emit(ctx context.Context, dest string, output []byte) (bool, error) {
	full := filepath.Join(r.opts.OutputDir, filepath.FromSlash(dest))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return false, fmt.Errorf("create output directory for %s: %w", dest, err)
	}
	written, err := fsutil.WriteAtomicIfChanged(ctx, full, output, 0)
	if err != nil {
		return false, fmt.Errorf("write %s: %w", dest, err)
	}
	return written, nil
}
