package pipeline_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/lintfilter/pkg/pipeline"
)

// writeTreeFile creates a file (and parent directories) under root.
func writeTreeFile(t *testing.T, root, relPath, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
}

func TestNewDirTree_Errors(t *testing.T) {
	t.Parallel()

	if _, err := pipeline.NewDirTree(""); err == nil {
		t.Error("NewDirTree(\"\") should fail")
	}

	if _, err := pipeline.NewDirTree(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("NewDirTree() with missing root should fail")
	}

	dir := t.TempDir()
	file := filepath.Join(dir, "plain.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if _, err := pipeline.NewDirTree(file); err == nil {
		t.Error("NewDirTree() with file root should fail")
	}
}

func TestDirTree_Walk(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTreeFile(t, dir, "app/styles/app.scss", "body {}\n")
	writeTreeFile(t, dir, "app/styles/base.sass", "body\n")
	writeTreeFile(t, dir, "vendor/reset.scss", "* {}\n")
	writeTreeFile(t, dir, "README.md", "# readme\n")
	writeTreeFile(t, dir, ".hidden.scss", "nope {}\n")
	writeTreeFile(t, dir, ".git/config", "[core]\n")

	tree, err := pipeline.NewDirTree(dir)
	if err != nil {
		t.Fatalf("NewDirTree() error = %v", err)
	}

	files, err := tree.Walk(context.Background())
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	want := []string{
		"README.md",
		"app/styles/app.scss",
		"app/styles/base.sass",
		"vendor/reset.scss",
	}
	if len(files) != len(want) {
		t.Fatalf("Walk() = %v, want %v", files, want)
	}
	for i, path := range want {
		if files[i] != path {
			t.Errorf("Walk()[%d] = %q, want %q", i, files[i], path)
		}
	}
}

func TestDirTree_Read(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTreeFile(t, dir, "app/styles/app.scss", ".btn { color: red; }\n")

	tree, err := pipeline.NewDirTree(dir)
	if err != nil {
		t.Fatalf("NewDirTree() error = %v", err)
	}

	content, err := tree.Read(context.Background(), "app/styles/app.scss")
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if string(content) != ".btn { color: red; }\n" {
		t.Errorf("Read() = %q", content)
	}

	if _, err := tree.Read(context.Background(), "app/styles/missing.scss"); err == nil {
		t.Error("Read() of missing file should fail")
	}
}

func TestDirTree_WalkCancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTreeFile(t, dir, "a.scss", "a {}\n")

	tree, err := pipeline.NewDirTree(dir)
	if err != nil {
		t.Fatalf("NewDirTree() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := tree.Walk(ctx); err == nil {
		t.Error("Walk() with cancelled context should fail")
	}
}
