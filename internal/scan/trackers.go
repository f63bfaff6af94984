package scan

import (
	"regexp"
	"strings"
)

var switchPattern = regexp.MustCompile(`switch\s*(.*)\s*\{`)

// BraceTracker accumulates brace depth line by line. Depth never goes below
// zero: a stray '}' resets it to the top level.
type BraceTracker struct {
	depth int
}

// Step applies the line's brace delta and returns the new depth.
func (t *BraceTracker) Step(line string) int {
	t.depth += BraceDelta(line)
	if t.depth < 0 {
		t.depth = 0
	}
	return t.depth
}

// FunctionEvent is what a line meant to the function tracker.
type FunctionEvent int

const (
	// FunctionOutside means no function is being tracked.
	FunctionOutside FunctionEvent = iota
	// FunctionStart marks a signature line. Braces on it are not counted.
	FunctionStart
	// FunctionOpen marks the line that took the depth above zero.
	FunctionOpen
	// FunctionBody marks a content line of an open body.
	FunctionBody
	// FunctionClose marks the line that brought the depth back to zero.
	FunctionClose
)

// FunctionStep reports one line's effect on the function tracker.
type FunctionStep struct {
	Event FunctionEvent

	// Start is the signature line of the tracked function, 0 when outside.
	Start int

	// BodyLines is the number of content lines seen so far. On FunctionBody
	// it is the index of the current line inside the body.
	BodyLines int
}

// FunctionTracker follows one function definition at a time, from its
// signature line to the line that closes its body.
//
// After a signature, brace depth is accumulated from the following lines. A
// line that leaves depth at zero closes the span, so a signature followed by
// anything other than an opening brace closes immediately with no body.
type FunctionTracker struct {
	braces BraceTracker
	start  int
	open   bool
	body   int
}

// Step feeds the next line. lineNo is 1-based.
func (t *FunctionTracker) Step(lineNo int, line string) FunctionStep {
	if !t.open && IsFunctionSignature(line) {
		t.start = lineNo
		t.body = 0
		t.braces = BraceTracker{}
		return FunctionStep{Event: FunctionStart, Start: t.start}
	}
	if t.start == 0 {
		return FunctionStep{Event: FunctionOutside}
	}

	if t.braces.Step(line) > 0 {
		if !t.open {
			t.open = true
			return FunctionStep{Event: FunctionOpen, Start: t.start}
		}
		t.body++
		return FunctionStep{Event: FunctionBody, Start: t.start, BodyLines: t.body}
	}

	closed := FunctionStep{Event: FunctionClose, Start: t.start, BodyLines: t.body}
	t.start = 0
	t.open = false
	t.body = 0
	return closed
}

// SwitchTracker remembers the indentation of the last `switch (...) {` line.
// The span ends at a later line with the same indentation that contains '}'.
// The switch line itself never ends it, even when it holds a '}'.
type SwitchTracker struct {
	indent int
	active bool
}

// Step feeds the next line and returns whether a switch span is active
// after it.
func (t *SwitchTracker) Step(line string) bool {
	indent := Indent(line)
	if switchPattern.MatchString(line) {
		t.indent = indent
		t.active = true
		return true
	}
	if t.active && t.indent == indent && strings.Contains(line, "}") {
		t.active = false
	}
	return t.active
}

// Directive describes a preprocessor line and how it should be indented.
type Directive struct {
	// Keyword is the directive name without '#', e.g. "ifndef" or "define".
	Keyword string

	// Indented is true when the line starts with a space or a tab.
	Indented bool

	// WantIndented is true when the directive sits inside a conditional.
	WantIndented bool
}

// Misplaced reports whether the directive's indentation is wrong.
func (d Directive) Misplaced() bool {
	return d.Indented != d.WantIndented
}

// PreprocessorTracker counts #if nesting. #endif never takes the depth below
// zero.
type PreprocessorTracker struct {
	depth int
}

// Step feeds the next line. ok is false for non-directive lines, which leave
// the depth untouched.
func (t *PreprocessorTracker) Step(line string) (d Directive, ok bool) {
	trimmed := StripIndent(line)
	if !strings.HasPrefix(trimmed, "#") {
		return Directive{}, false
	}

	d.Indented = len(trimmed) != len(line)
	d.Keyword = directiveKeyword(trimmed[1:])

	switch {
	case strings.HasPrefix(d.Keyword, "if"):
		d.WantIndented = t.depth > 0
		t.depth++
	case d.Keyword == "endif":
		if t.depth > 0 {
			t.depth--
		}
		d.WantIndented = t.depth > 0
	case d.Keyword == "else" || d.Keyword == "elif":
		d.WantIndented = t.depth > 1
	default:
		d.WantIndented = t.depth > 0
	}
	return d, true
}

func directiveKeyword(rest string) string {
	rest = strings.TrimLeft(rest, " \t")
	end := 0
	for end < len(rest) && isWordByte(rest[end]) {
		end++
	}
	return rest[:end]
}

func isWordByte(b byte) bool {
	return b == '_' || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || ('0' <= b && b <= '9')
}
