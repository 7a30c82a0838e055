package loader

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// defaultExcludeDirs are directory names skipped entirely during traversal.
var defaultExcludeDirs = []string{
	".git",
	"node_modules",
	".docschat",
	".vitepress",
	"dist",
	"build",
}

// shouldExcludeDir checks whether a directory name matches any default
// exclusion. Matching directories are skipped as whole subtrees.
func shouldExcludeDir(name string) bool {
	for _, excl := range defaultExcludeDirs {
		if strings.EqualFold(name, excl) {
			return true
		}
	}
	return false
}

// matchesInclude returns true if the given relative path matches any of the
// include patterns. If patterns is empty, everything is included.
func matchesInclude(relPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	return matchesAny(relPath, patterns)
}

// matchesExclude returns true if the given relative path matches any of the
// exclude patterns. If patterns is empty, nothing is excluded.
func matchesExclude(relPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	return matchesAny(relPath, patterns)
}

// matchesAny checks if relPath matches any of the given glob patterns.
// It uses doublestar for ** support and also matches bare filenames.
func matchesAny(relPath string, patterns []string) bool {
	normalized := filepath.ToSlash(relPath)

	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)

		if matched, err := doublestar.PathMatch(pattern, normalized); err == nil && matched {
			return true
		}

		base := filepath.Base(normalized)
		if matched, err := doublestar.PathMatch(pattern, base); err == nil && matched {
			return true
		}
	}
	return false
}
