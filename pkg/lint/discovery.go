package lint

import (
	"os"
	"path/filepath"
)

// DefaultConfigFiles are the config file names FindConfigFile searches for,
// in order of preference.
var DefaultConfigFiles = []string{
	".sass-lint.yml",
	".sasslintrc",
	".sass-lint.yaml",
}

// vcsRootMarkers are directories that indicate a VCS root.
var vcsRootMarkers = []string{".git", ".hg", ".svn"}

// FindConfigFile searches upward from startDir for a lint config file and
// reports whether one was found. The search stops after a VCS root, at the
// home directory, and at the filesystem root, whichever comes first. An
// empty startDir means the current working directory.
func FindConfigFile(startDir string) (string, bool) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", false
		}
		startDir = wd
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false
	}

	// Failing to resolve the home directory just drops that boundary.
	homeDir, _ := os.UserHomeDir()

	for {
		for _, name := range DefaultConfigFiles {
			path := filepath.Join(dir, name)
			if fileExists(path) {
				return path, true
			}
		}

		// The VCS root is the last directory searched.
		if isVCSRoot(dir) {
			return "", false
		}
		if homeDir != "" && dir == homeDir {
			return "", false
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// isVCSRoot reports whether dir contains a VCS root marker.
func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		info, err := os.Stat(filepath.Join(dir, marker))
		if err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

// fileExists reports whether path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
