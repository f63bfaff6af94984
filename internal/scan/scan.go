// Package scan provides the line-level primitives and per-file trackers the
// rules are built on.
//
// Nothing here parses C. Every helper looks at one line at a time (with its
// trailing newline still attached) and the trackers carry the little cross-line
// state the rules need: brace depth, the open function span, the active switch
// span and preprocessor nesting.
//
// # Known limitations
//
// These heuristics are approximations and are kept that way on purpose:
//   - IsCommentLine only recognises "//" at the start of a line. Block comments
//     and trailing comments are not comment lines.
//   - IsFunctionSignature needs return type, name and "(" on the same line.
//     Multi-line signatures whose first line does not end in "," are missed.
//   - BraceDelta counts characters, including braces inside strings and
//     character literals.
//   - Indent counts whitespace characters, not columns: a tab and a space both
//     count as one. SwitchTracker compares these counts, so a switch opened
//     with one tab and closed by "    }" never closes, and nesting checks stay
//     suspended for the rest of the file.
package scan

import (
	"regexp"
	"strings"
)

// TabWidth is the tab stop used to measure visible width.
const TabWidth = 8

// leadingSpace is the set of characters stripped when measuring indentation.
const leadingSpace = " \t\n\v\f\r\x00"

var (
	commentLinePattern = regexp.MustCompile(`^\s*//`)

	// functionPattern is the permissive definition heuristic: an optional
	// signedness, a return type keyword, a name and a parameter list that is
	// either continued on the next line or closed and not followed by ";".
	functionPattern = regexp.MustCompile(`^.*?(unsigned|signed)?\s*(sf\w+|_s|_t|void|int|char|short|long|float|double|bool|size_t)\s+((\w|\*)+)\s*\([^)]*(,\n|\)[^;]\s*)`)
)

// IsCommentLine reports whether the line starts with "//" after indentation.
func IsCommentLine(line string) bool {
	return commentLinePattern.MatchString(line)
}

// VisibleWidth returns the display width of the line. A tab advances to the
// next multiple of TabWidth; every other character, the trailing newline
// included, counts as one column.
func VisibleWidth(line string) int {
	width := 0
	for _, r := range line {
		if r == '\t' {
			width = (width/TabWidth + 1) * TabWidth
			continue
		}
		width++
	}
	return width
}

// BraceDelta returns the number of '{' minus the number of '}' in the line.
func BraceDelta(line string) int {
	return strings.Count(line, "{") - strings.Count(line, "}")
}

// Indent returns the number of leading whitespace characters. A line made
// only of whitespace is all indentation.
func Indent(line string) int {
	return len(line) - len(strings.TrimLeft(line, leadingSpace))
}

// StripIndent returns the line without its leading spaces and tabs.
func StripIndent(line string) string {
	return strings.TrimLeft(line, " \t")
}

// IsFunctionSignature reports whether the line looks like the first line of
// a function definition.
func IsFunctionSignature(line string) bool {
	return functionPattern.MatchString(line)
}
