package loader

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultMaxFileSize is the maximum document size to process (1 MB).
const DefaultMaxFileSize int64 = 1 << 20

// defaultExtensions are the documentation-markup extensions ingested when
// the config does not narrow them further.
var defaultExtensions = []string{".md", ".mdx"}

// Document is a loaded corpus file: its identifier (the slash-normalized
// path relative to the corpus root) and its content rendered to plain text.
type Document struct {
	Identifier  string
	Content     string
	ContentHash string // SHA-256 hex digest of the rendered content
}

// Config controls the behaviour of LoadAll.
type Config struct {
	RootDir     string
	Extensions  []string // defaults to .md and .mdx
	Include     []string // glob patterns; empty means include everything
	Exclude     []string // glob patterns; empty means exclude nothing
	MaxFileSize int64    // files larger than this are skipped (0 = default)
}

// LoadAll walks the corpus tree rooted at cfg.RootDir and returns every
// matching document rendered to normalized text. Symbolic links are not
// followed. Enumeration order follows the filesystem; every matching file
// appears exactly once. A file that fails to render fails the whole load
// with the offending path attached.
func LoadAll(cfg Config) ([]Document, error) {
	root, err := filepath.Abs(cfg.RootDir)
	if err != nil {
		return nil, fmt.Errorf("loader: resolve root: %w", err)
	}
	if info, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("loader: stat root: %w", err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("loader: %s is not a directory", root)
	}

	exts := cfg.Extensions
	if len(exts) == 0 {
		exts = defaultExtensions
	}
	maxSize := cfg.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	renderer := NewRenderer()
	var docs []Document

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// Skip entries we cannot read instead of aborting.
			return nil
		}

		if d.IsDir() {
			if shouldExcludeDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		// Only regular files; WalkDir does not follow symlinks.
		if !d.Type().IsRegular() {
			return nil
		}

		if !hasExtension(d.Name(), exts) {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		relSlash := filepath.ToSlash(relPath)

		if !matchesInclude(relSlash, cfg.Include) {
			return nil
		}
		if matchesExclude(relSlash, cfg.Exclude) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.Size() > maxSize {
			return nil
		}

		src, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", relSlash, err)
		}

		content, err := renderer.Render(src)
		if err != nil {
			return fmt.Errorf("rendering %s: %w", relSlash, err)
		}

		sum := sha256.Sum256([]byte(content))
		docs = append(docs, Document{
			Identifier:  relSlash,
			Content:     content,
			ContentHash: hex.EncodeToString(sum[:]),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}

	return docs, nil
}

// hasExtension checks the filename against the configured extension list.
func hasExtension(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}
