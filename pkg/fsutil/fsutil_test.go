package fsutil_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/lintfilter/pkg/fsutil"
)

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("reads file content", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "test.scss")
		content := []byte("a { color: red; }\n")

		if err := os.WriteFile(path, content, 0o644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		got, err := fsutil.ReadFile(context.Background(), path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}

		if string(got) != string(content) {
			t.Errorf("content = %q, want %q", got, content)
		}
	})

	t.Run("missing file returns ErrNotFound", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		_, err := fsutil.ReadFile(context.Background(), filepath.Join(dir, "missing.scss"))

		if !errors.Is(err, fsutil.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("directory returns ErrIsDirectory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		_, err := fsutil.ReadFile(context.Background(), dir)

		if !errors.Is(err, fsutil.ErrIsDirectory) {
			t.Errorf("error = %v, want ErrIsDirectory", err)
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fsutil.ReadFile(ctx, "irrelevant")
		if err == nil {
			t.Fatal("expected error for cancelled context")
		}
	})
}
