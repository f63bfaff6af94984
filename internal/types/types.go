package types

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Category is what a path is, as far as the rulebook is concerned.
type Category string

const (
	CategoryUnrecognized Category = "unrecognized"
	CategoryDirectory    Category = "directory"
	CategoryMakefile     Category = "makefile"
	CategoryHeader       Category = "header"
	CategorySource       Category = "source"
)

// IsValid checks if the category value is valid
func (c Category) IsValid() bool {
	switch c {
	case CategoryUnrecognized, CategoryDirectory, CategoryMakefile, CategoryHeader, CategorySource:
		return true
	}
	return false
}

// HasContent reports whether files of this category are read before checking.
// Directories have no text, and unrecognized files only get a file-level verdict.
func (c Category) HasContent() bool {
	return c == CategoryMakefile || c == CategoryHeader || c == CategorySource
}

// Classify maps a file path to its category by name and extension.
// It never touches the filesystem; directories are classified by the walker.
func Classify(path string) Category {
	switch {
	case filepath.Base(path) == "Makefile":
		return CategoryMakefile
	case strings.HasSuffix(path, ".h"):
		return CategoryHeader
	case strings.HasSuffix(path, ".c"):
		return CategorySource
	default:
		return CategoryUnrecognized
	}
}

// Severity represents how serious a violation is
type Severity string

const (
	SeverityMajor Severity = "major"
	SeverityMinor Severity = "minor"
	SeverityInfo  Severity = "info"
)

// IsValid checks if the severity value is valid
func (s Severity) IsValid() bool {
	switch s {
	case SeverityMajor, SeverityMinor, SeverityInfo:
		return true
	}
	return false
}

// Violation is a single broken rule in a single file.
type Violation struct {
	Code     string   `json:"code"`
	Severity Severity `json:"severity"`
	Path     string   `json:"path"`
	Line     int      `json:"line,omitempty"` // 0 for file-level rules
	Message  string   `json:"message"`
}

// HasLine reports whether the violation points at a specific line.
func (v Violation) HasLine() bool {
	return v.Line > 0
}

// Location renders the bracketed location prefix, e.g. "[src/main.c:12]".
func (v Violation) Location() string {
	if v.HasLine() {
		return fmt.Sprintf("[%s:%d]", v.Path, v.Line)
	}
	return fmt.Sprintf("[%s]", v.Path)
}

// String renders the violation as "[path:line] CODE - message".
func (v Violation) String() string {
	return fmt.Sprintf("%s %s - %s", v.Location(), v.Code, v.Message)
}

// SourceFile is one file's content, split the way the scanners consume it.
// Each line keeps its trailing "\n"; only the last line may lack one.
type SourceFile struct {
	Path     string
	Category Category
	Text     string
	Lines    []string
}

// NewSourceFile builds a SourceFile from raw text.
func NewSourceFile(path string, category Category, text string) *SourceFile {
	return &SourceFile{
		Path:     path,
		Category: category,
		Text:     text,
		Lines:    SplitLines(text),
	}
}

// SplitLines splits text after every newline, keeping the terminators.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
