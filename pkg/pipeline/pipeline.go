// Package pipeline defines the host-side contract for per-file, cache-aware
// transform filters and provides a reference runner that drives one.
//
// A build pipeline owns file discovery, scheduling, caching, and output
// emission; a Filter owns only the per-file decisions: which files are
// eligible, where their outputs land, what their cache key is, and how
// content transforms. The runner here is a complete host: real pipelines can
// embed it or use it as the model for the calling convention, which is
// BeginPass, then concurrent DestinationPath/CacheKey/Transform/PostProcess
// per file, then EndPass exactly once.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/lintfilter/pkg/cachekey"
	"github.com/yaklabco/lintfilter/pkg/lint"
)

// Filter is the per-file transform stage a pipeline drives.
//
// DestinationPath, CacheKey, and Transform are invoked concurrently for
// different files and must not share mutable state across calls. Pass-scoped
// accumulation happens behind PostProcess, which implementations must make
// safe for concurrent calls.
type Filter interface {
	// Tree returns the input tree the filter was constructed over.
	Tree() Tree

	// Extensions returns the source suffixes (without dot) the filter
	// processes, e.g. {"sass", "scss"}.
	Extensions() []string

	// TargetExtension returns the suffix of emitted outputs.
	TargetExtension() string

	// DestinationPath maps a source path to its output path relative to the
	// destination tree. Empty means the file is excluded from output
	// entirely, either by ignore patterns or by extension.
	DestinationPath(relPath string) string

	// CacheKey returns the digest identifying this file's transform result
	// under the current configuration.
	CacheKey(ctx context.Context, content []byte, relPath string) (cachekey.Digest, error)

	// Transform produces the cacheable artifact for one file.
	Transform(ctx context.Context, content []byte, relPath string) (*Artifact, error)

	// PostProcess reports the artifact's diagnostics and returns the
	// artifact that continues through the pipeline, with the report
	// stripped. Called for fresh transforms and cache replays alike, so
	// cached files still surface their diagnostics every pass.
	PostProcess(ctx context.Context, artifact *Artifact) (*Artifact, error)

	// BeginPass resets pass-scoped state. Called once before any file.
	BeginPass(ctx context.Context) error

	// EndPass flushes pass-scoped state, writing the pass's aggregated
	// diagnostics through the reporting collaborator exactly once.
	EndPass(ctx context.Context) error
}

// Artifact is the cacheable unit a transform produces: the lint report and
// the output bytes that continue through the pipeline.
type Artifact struct {
	Report *lint.Report `json:"report,omitempty"`
	Output []byte       `json:"output"`
}

// Clone returns a deep copy. Stores clone artifacts at both boundaries so
// cached state is never aliased by callers.
func (a *Artifact) Clone() *Artifact {
	if a == nil {
		return nil
	}
	out := &Artifact{Report: a.Report.Clone()}
	if a.Output != nil {
		out.Output = make([]byte, len(a.Output))
		copy(out.Output, a.Output)
	}
	return out
}

// EncodeArtifact serializes an artifact for a byte-oriented store.
func EncodeArtifact(a *Artifact) ([]byte, error) {
	if a == nil {
		return nil, fmt.Errorf("encode artifact: nil artifact")
	}
	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("encode artifact: %w", err)
	}
	return data, nil
}

// DecodeArtifact deserializes an artifact written by EncodeArtifact.
func DecodeArtifact(data []byte) (*Artifact, error) {
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	return &a, nil
}
