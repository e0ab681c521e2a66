package lint

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/kballard/go-shellquote"
)

// defaultExecTimeout bounds a single lint invocation.
const defaultExecTimeout = 30 * time.Second

// defaultReportExitCodes are the exit codes that still carry a usable report.
// Style linters conventionally exit 0 for a clean run and 1 when issues were
// found; both are successful invocations from the caller's point of view.
var defaultReportExitCodes = []int{0, 1}

// ExitPolicy decides which subprocess exit codes count as a successful lint
// invocation and which as an engine failure.
type ExitPolicy struct {
	// ReportExitCodes lists the non-failure exit codes. Nil means the
	// default of {0, 1}. Exit code 0 is always acceptable.
	ReportExitCodes []int

	// Fatal treats every nonzero exit as a failure, regardless of
	// ReportExitCodes. Useful in CI setups where any tool complaint should
	// stop the build.
	Fatal bool
}

// DefaultExitPolicy returns the lenient policy: exit codes 0 and 1 carry
// reports, everything else is a failure.
func DefaultExitPolicy() ExitPolicy {
	return ExitPolicy{ReportExitCodes: defaultReportExitCodes}
}

// Acceptable returns true if the exit code counts as a successful invocation.
func (p ExitPolicy) Acceptable(code int) bool {
	if code == 0 {
		return true
	}
	if p.Fatal {
		return false
	}
	codes := p.ReportExitCodes
	if codes == nil {
		codes = defaultReportExitCodes
	}
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}

// ExecOptions configures an ExecEngine.
type ExecOptions struct {
	// Policy classifies subprocess exit codes. The zero value is the
	// default lenient policy.
	Policy ExitPolicy

	// Timeout bounds each invocation. Zero means defaultExecTimeout.
	Timeout time.Duration

	// ConfigFlag is the flag used to pass EngineOptions.ConfigPath to the
	// tool. Empty means "--config".
	ConfigFlag string

	// Dir is the working directory for the tool. Empty means inherit.
	Dir string

	// TempDir is where content temp files are written. Empty means the
	// system default.
	TempDir string
}

// ExecEngine runs an external lint tool as a subprocess.
//
// The command must write its reports as JSON to stdout, either as an array
// of per-file objects or a single object. Content is handed to the tool via
// a temporary file whose extension carries the format hint, so syntax
// detection in the tool keeps working.
type ExecEngine struct {
	argv []string
	opts ExecOptions
}

// Compile-time interface check.
var _ Engine = (*ExecEngine)(nil)

// NewExecEngine parses a shell-style command line into an engine. The
// command is split with shell quoting rules but never run through a shell.
// A missing binary is not detected here; it surfaces as ErrEngineFailure on
// the first call.
func NewExecEngine(command string, opts ExecOptions) (*ExecEngine, error) {
	argv, err := shellquote.Split(command)
	if err != nil {
		return nil, fmt.Errorf("parse lint command %q: %w", command, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("empty lint command")
	}
	if opts.Timeout == 0 {
		opts.Timeout = defaultExecTimeout
	}
	if opts.ConfigFlag == "" {
		opts.ConfigFlag = "--config"
	}
	return &ExecEngine{argv: argv, opts: opts}, nil
}

// LintText implements Engine by writing the content to a temp file and
// running the tool against it.
func (e *ExecEngine) LintText(ctx context.Context, req TextRequest) (*Report, error) {
	ext := req.Format
	if ext == "" {
		ext = FormatText
	}

	tmp, err := os.CreateTemp(e.opts.TempDir, "lintfilter-*."+ext)
	if err != nil {
		return nil, fmt.Errorf("%w: create temp file: %w", ErrEngineFailure, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(req.Content); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("%w: write temp file: %w", ErrEngineFailure, err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("%w: close temp file: %w", ErrEngineFailure, err)
	}

	stdout, code, err := e.run(ctx, req.Options, tmpPath)
	if err != nil {
		return nil, err
	}
	if !e.opts.Policy.Acceptable(code) {
		return nil, fmt.Errorf("%w: %s exited %d", ErrEngineFailure, e.argv[0], code)
	}

	reports, err := ParseReports(stdout)
	if err != nil {
		return nil, err
	}

	if len(reports) == 0 {
		return &Report{FilePath: req.Filename, Messages: []Message{}}, nil
	}
	// One temp file went in, so only the first report is relevant. The tool
	// saw the temp path; relabel with the caller's path.
	report := reports[0]
	report.FilePath = req.Filename
	return report, nil
}

// run executes one invocation and returns stdout and the exit code.
func (e *ExecEngine) run(ctx context.Context, opts EngineOptions, target string) ([]byte, int, error) {
	args := make([]string, 0, len(e.argv)+3)
	args = append(args, e.argv[1:]...)
	if path := opts.EffectiveConfigPath(); path != "" {
		args = append(args, e.opts.ConfigFlag, path)
	}
	args = append(args, target)

	cmdCtx, cancel := context.WithTimeout(ctx, e.opts.Timeout)
	defer cancel()

	cmd := exec.CommandContext(cmdCtx, e.argv[0], args...)
	cmd.Dir = e.opts.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	if cmdCtx.Err() == context.DeadlineExceeded {
		return nil, 0, fmt.Errorf("%w: %s timed out after %s", ErrEngineFailure, e.argv[0], e.opts.Timeout)
	}
	if ctx.Err() != nil {
		return nil, 0, ctx.Err()
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return stdout.Bytes(), exitErr.ExitCode(), nil
		}
		return nil, 0, fmt.Errorf("%w: run %s: %w", ErrEngineFailure, e.argv[0], err)
	}
	return stdout.Bytes(), 0, nil
}

// ResolveConfig implements Engine with the shared file-plus-inline merge.
func (e *ExecEngine) ResolveConfig(_ context.Context, opts EngineOptions) (map[string]any, error) {
	return ResolveOptions(opts)
}

// OutputResults implements Engine with the built-in formatters.
func (e *ExecEngine) OutputResults(ctx context.Context, reports []*Report, opts EngineOptions) error {
	return WriteResults(ctx, reports, opts)
}

// ParseReports decodes engine JSON output: an array of per-file report
// objects, a single object, or blank output meaning no reports.
func ParseReports(out []byte) ([]*Report, error) {
	trimmed := bytes.TrimSpace(out)
	if len(trimmed) == 0 {
		return []*Report{}, nil
	}

	if trimmed[0] == '[' {
		var reports []*Report
		if err := json.Unmarshal(trimmed, &reports); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedOutput, err)
		}
		cleaned := make([]*Report, 0, len(reports))
		for _, r := range reports {
			if r != nil {
				cleaned = append(cleaned, r)
			}
		}
		return cleaned, nil
	}

	var single Report
	if err := json.Unmarshal(trimmed, &single); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedOutput, err)
	}
	return []*Report{&single}, nil
}
