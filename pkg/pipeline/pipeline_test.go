package pipeline_test

import (
	"testing"

	"github.com/yaklabco/lintfilter/pkg/pipeline"
)

func TestArtifact_Clone(t *testing.T) {
	t.Parallel()

	original := sampleArtifact()
	clone := original.Clone()

	clone.Output[0] = 'X'
	clone.Report.Messages[0].Text = "mutated"

	if original.Output[0] == 'X' {
		t.Error("Clone() shares the output slice")
	}
	if original.Report.Messages[0].Text == "mutated" {
		t.Error("Clone() shares the report")
	}

	var nilArtifact *pipeline.Artifact
	if nilArtifact.Clone() != nil {
		t.Error("Clone() of nil should be nil")
	}
}

func TestEncodeDecodeArtifact(t *testing.T) {
	t.Parallel()

	data, err := pipeline.EncodeArtifact(sampleArtifact())
	if err != nil {
		t.Fatalf("EncodeArtifact() error = %v", err)
	}

	decoded, err := pipeline.DecodeArtifact(data)
	if err != nil {
		t.Fatalf("DecodeArtifact() error = %v", err)
	}
	if decoded.Report == nil || len(decoded.Report.Messages) != 1 {
		t.Errorf("decoded report = %+v", decoded.Report)
	}
	if string(decoded.Output) != ".btn { color: red; }\n" {
		t.Errorf("decoded output = %q", decoded.Output)
	}

	if _, err := pipeline.EncodeArtifact(nil); err == nil {
		t.Error("EncodeArtifact(nil) should fail")
	}
	if _, err := pipeline.DecodeArtifact([]byte("not json")); err == nil {
		t.Error("DecodeArtifact() of garbage should fail")
	}
}

func TestEncodeArtifact_OmitsStrippedReport(t *testing.T) {
	t.Parallel()

	data, err := pipeline.EncodeArtifact(&pipeline.Artifact{Output: []byte("body {}\n")})
	if err != nil {
		t.Fatalf("EncodeArtifact() error = %v", err)
	}

	decoded, err := pipeline.DecodeArtifact(data)
	if err != nil {
		t.Fatalf("DecodeArtifact() error = %v", err)
	}
	if decoded.Report != nil {
		t.Errorf("decoded report = %+v, want nil", decoded.Report)
	}
}
