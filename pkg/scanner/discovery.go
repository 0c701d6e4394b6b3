package scanner

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/gnana997/propview/pkg/config"
)

// DiscoverFiles expands the configured component glob against the project
// root and drops files whose basename is on the exclusion list. Returns
// slash-separated paths relative to the root, sorted for deterministic
// output.
func DiscoverFiles(rootDir string, cfg *config.Resolved) ([]string, error) {
	pattern := cfg.ComponentGlob
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid component glob: %s", pattern)
	}

	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root path: %w", err)
	}

	var files []string
	err = filepath.WalkDir(absRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Keep walking past unreadable entries.
		}
		if d.IsDir() {
			// Common build output never holds component sources.
			switch d.Name() {
			case "node_modules", ".git", "dist", "build", ".next", "coverage":
				if p != absRoot {
					return filepath.SkipDir
				}
			}
			return nil
		}

		relPath, err := filepath.Rel(absRoot, p)
		if err != nil {
			return nil
		}
		relPath = filepath.ToSlash(relPath)

		if matched, _ := doublestar.Match(pattern, relPath); !matched {
			return nil
		}
		if cfg.IsFileExcluded(path.Base(relPath)) {
			return nil
		}

		files = append(files, relPath)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", absRoot, err)
	}

	sort.Strings(files)
	return files, nil
}
