package source

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultIgnorePatterns are always ignored, on top of .gitignore.
var DefaultIgnorePatterns = []string{"tests/*"}

// IgnoreList decides which walked paths are left out of a check.
//
// Patterns are matched against the slash-separated path relative to the
// walk root:
//   - A pattern containing '*' matches any path that contains the pattern
//     itself or the pattern with every '*' removed: "tests/*" matches
//     "tests/unit.c" and "lib/tests/x.c".
//   - Any other pattern matches only the exact path.
type IgnoreList struct {
	patterns []string
}

// NewIgnoreList builds a list from patterns. Blank patterns and lines
// starting with '#' are dropped.
func NewIgnoreList(patterns ...string) *IgnoreList {
	l := &IgnoreList{}
	l.Add(patterns...)
	return l
}

// Add appends patterns to the list.
func (l *IgnoreList) Add(patterns ...string) {
	for _, p := range patterns {
		p = strings.TrimRight(p, "\r\n")
		if strings.TrimSpace(p) == "" || strings.HasPrefix(p, "#") {
			continue
		}
		l.patterns = append(l.patterns, p)
	}
}

// Patterns returns the patterns in the order they were added.
func (l *IgnoreList) Patterns() []string {
	return append([]string(nil), l.patterns...)
}

// Match reports whether relPath is ignored.
func (l *IgnoreList) Match(relPath string) bool {
	for _, pattern := range l.patterns {
		if matchPattern(relPath, pattern) {
			return true
		}
	}
	return false
}

func matchPattern(path, pattern string) bool {
	if !strings.Contains(pattern, "*") {
		return path == pattern
	}
	return strings.Contains(path, pattern) || strings.Contains(path, strings.ReplaceAll(pattern, "*", ""))
}

// LoadIgnoreList reads <root>/.gitignore, if there is one, and returns it
// together with DefaultIgnorePatterns and the extra patterns.
func LoadIgnoreList(root string, extra ...string) (*IgnoreList, error) {
	l := NewIgnoreList()

	path := filepath.Join(root, ".gitignore")
	f, err := os.Open(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	default:
		defer f.Close()
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			l.Add(scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	}

	l.Add(DefaultIgnorePatterns...)
	l.Add(extra...)
	return l, nil
}
