// Package source finds the files and directories to check and loads their
// content.
package source

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/steveyegge/cnorm/internal/types"
)

// Entry is one walked path and its category.
type Entry struct {
	// Path is slash-separated and relative to the walk root.
	Path     string
	Category types.Category
}

// Walk lists every regular file under root, then every directory, each group
// in lexical order. Hidden entries (names starting with '.') and everything
// the ignore list matches are skipped; an ignored directory is not descended
// into. The root itself is never listed.
func Walk(ctx context.Context, root string, ignore *IgnoreList) ([]Entry, error) {
	if ignore == nil {
		ignore = NewIgnoreList()
	}

	var files, dirs []Entry
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if path == root {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", path, err)
		}
		relPath = filepath.ToSlash(relPath)

		if strings.HasPrefix(d.Name(), ".") || ignore.Match(relPath) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		switch {
		case d.IsDir():
			dirs = append(dirs, Entry{Path: relPath, Category: types.CategoryDirectory})
		case d.Type().IsRegular():
			files = append(files, Entry{Path: relPath, Category: types.Classify(relPath)})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	return append(files, dirs...), nil
}

// Loader reads the content of a walked entry.
type Loader func(relPath string) (string, error)

// DirLoader returns a Loader that reads paths relative to root.
func DirLoader(root string) Loader {
	return func(relPath string) (string, error) {
		return Load(filepath.Join(root, filepath.FromSlash(relPath)))
	}
}

// Load reads a whole file as text.
func Load(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(b), nil
}
