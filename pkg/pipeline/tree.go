package pipeline

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yaklabco/lintfilter/pkg/fsutil"
)

// Tree is a read-only handle to an input file tree. Paths exchanged with a
// Tree are relative to its root and slash-separated regardless of platform.
type Tree interface {
	// Root returns the tree's root directory.
	Root() string

	// Walk returns the relative paths of all regular files in the tree,
	// deterministically sorted.
	Walk(ctx context.Context) ([]string, error)

	// Read returns the content of one file by relative path.
	Read(ctx context.Context, relPath string) ([]byte, error)
}

// DirTree is a Tree over a directory on disk. Hidden files and directories
// are invisible to Walk, matching what build pipelines feed their filters.
type DirTree struct {
	root string
}

var _ Tree = (*DirTree)(nil)

// NewDirTree validates root and returns a tree over it.
func NewDirTree(root string) (*DirTree, error) {
	if root == "" {
		return nil, fmt.Errorf("tree root is empty")
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve tree root %s: %w", root, err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("stat tree root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("tree root %s: not a directory", root)
	}
	return &DirTree{root: absRoot}, nil
}

// Root returns the absolute root directory.
func (t *DirTree) Root() string { return t.root }

// Walk lists every regular file under the root, relative and sorted.
func (t *DirTree) Walk(ctx context.Context) ([]string, error) {
	var files []string

	err := filepath.WalkDir(t.root, func(path string, entry fs.DirEntry, walkErr error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if walkErr != nil {
			// Handle permission errors gracefully.
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			// Skip hidden directories (except root).
			if path != t.root && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		// Skip hidden files and anything that is not a regular file.
		if strings.HasPrefix(entry.Name(), ".") || !entry.Type().IsRegular() {
			return nil
		}

		relPath, relErr := filepath.Rel(t.root, path)
		if relErr != nil {
			return fmt.Errorf("relativize %s: %w", path, relErr)
		}
		files = append(files, filepath.ToSlash(relPath))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk tree %s: %w", t.root, err)
	}

	sort.Strings(files)
	return files, nil
}

// Read loads one file's content by relative path.
func (t *DirTree) Read(ctx context.Context, relPath string) ([]byte, error) {
	return fsutil.ReadFile(ctx, filepath.Join(t.root, filepath.FromSlash(relPath)))
}
