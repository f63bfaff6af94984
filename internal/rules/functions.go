package rules

import (
	"fmt"
	"regexp"

	"github.com/steveyegge/cnorm/internal/scan"
	"github.com/steveyegge/cnorm/internal/types"
)

const (
	// MaxFunctionLines is the longest a function body may be.
	MaxFunctionLines = 20

	// FunctionLengthRepeat is how often an overlong body is flagged again
	// after the first offending line.
	FunctionLengthRepeat = 5

	// MaxFunctions is the most function definitions a source file may hold.
	MaxFunctions = 5
)

var (
	forbiddenCall = regexp.MustCompile(`(^|[^0-9a-zA-Z_])(printf|dprintf|fprintf|vprintf|sprintf|snprintf|vprintf|vfprintf|vsprintf|vsnprintf|asprintf|scranf|memcpy|memset|memmove|strcat|strchar|strcpy|atoi|strlen|strncat|strncpy|strcasestr|strncasestr|strcmp|strncmp|strtok|strnlen|strdup|realloc)[^0-9a-zA-Z]`)
	gotoKeyword   = regexp.MustCompile(`(^|[^0-9a-zA-Z_])(goto)[^0-9a-zA-Z]`)

	prototypeTail    = regexp.MustCompile(`\w+\);`)
	emptyParameters  = regexp.MustCompile(`^.*?(unsigned|signed)?\s*(void|int|char|short|long|float|double)\s+(\w+)\s*\(\)\s*[^;]`)
	manyParameters   = regexp.MustCompile(`\(([^(),]*,){4,}[^()]*\)[ \t\n]+\{`)
	nameParenSpacing = regexp.MustCompile(`^.*?(unsigned|signed)?\s*(void|int|char|short|long|float|double)\s+(\w+)\s+\([^)]*\)[^;]\s*`)

	tooManyEmptyLines = regexp.MustCompile(`(?m)\n{3,}^([^ \n\t]+ [^ \n\t]+\([^\n\t]*\)[^;])`)
	missingEmptyLine  = regexp.MustCompile(`(?m)[^\n]\n^([^ \n\t]+ [^ \n\t]+\([^\n\t]*\)[^;])`)

	functionBrace = regexp.MustCompile(`^.*?\s*(unsigned|signed)?\s*(void|int|char|short|long|float|double)\s+((\w|\*)+)\s*\([^)]*\)[ \t\f\v]*\{`)
	controlHeader = regexp.MustCompile(`(\}|[ \t\f\v]*)(if|for|while|switch|else)\s*\(.*\)([ ]*|\))[^0-9a-zA-Z_]`)
)

func checkForbiddenFunction(f *types.SourceFile, opts Options) []types.Violation {
	if opts.IgnoreFunctions {
		return nil
	}
	var out []types.Violation
	eachCodeLine(f, func(n int, line string) {
		for _, m := range forbiddenCall.FindAllStringSubmatch(line, -1) {
			out = append(out, ForbiddenFunction.at(f, n, fmt.Sprintf("Are you sure that this function is allowed: '%s'?", m[2])))
		}
	})
	return out
}

func checkGoto(f *types.SourceFile) []types.Violation {
	var out []types.Violation
	eachCodeLine(f, func(n int, line string) {
		for range gotoKeyword.FindAllString(line, -1) {
			out = append(out, Goto.at(f, n, "Your code should not contain the goto keyword."))
		}
	})
	return out
}

// overlong reports whether the nth content line of a body is flagged: the
// first line past the limit, then every FunctionLengthRepeat lines after it.
func overlong(n int) bool {
	first := MaxFunctionLines + 1
	return n >= first && (n-first)%FunctionLengthRepeat == 0
}

// Violations are only emitted once the body closes. A function still open at
// end of file is not reported.
func checkFunctionLength(f *types.SourceFile) []types.Violation {
	var (
		tracker scan.FunctionTracker
		pending []int
		out     []types.Violation
	)
	eachCodeLine(f, func(n int, line string) {
		step := tracker.Step(n, line)
		switch step.Event {
		case scan.FunctionStart:
			pending = pending[:0]
		case scan.FunctionBody:
			if overlong(step.BodyLines) {
				pending = append(pending, n)
			}
		case scan.FunctionClose:
			for _, l := range pending {
				out = append(out, FunctionLength.at(f, l, "Too long function"))
			}
			pending = pending[:0]
		}
	})
	return out
}

// A signature line followed by a line ending in "name);" is the first half of
// a split prototype, not a definition.
func checkFunctionCount(f *types.SourceFile) []types.Violation {
	count := 0
	eachCodeLine(f, func(n int, line string) {
		if !scan.IsFunctionSignature(line) {
			return
		}
		if n < len(f.Lines) && prototypeTail.MatchString(f.Lines[n]) {
			return
		}
		count++
	})
	if count <= MaxFunctions {
		return nil
	}
	return []types.Violation{FunctionCount.file(f,
		fmt.Sprintf("More than %d functions in the same file (%d > %d)", MaxFunctions, count, MaxFunctions))}
}

func checkEmptyParameters(f *types.SourceFile) []types.Violation {
	var out []types.Violation
	eachCodeLine(f, func(n int, line string) {
		if emptyParameters.MatchString(line) {
			out = append(out, EmptyParameters.at(f, n, "This function takes no parameter, it should take 'void' as argument."))
		}
	})
	return out
}

// The parameter list may span several lines, so this one runs over the whole
// text and reports the line the list starts on.
func checkTooManyParameters(f *types.SourceFile) []types.Violation {
	var out []types.Violation
	for _, span := range manyParameters.FindAllStringIndex(f.Text, -1) {
		out = append(out, TooManyParameters.at(f, lineAt(f.Text, span[0]), "A function should not need more than 4 arguments."))
	}
	return out
}

func checkFunctionParenSpacing(f *types.SourceFile) []types.Violation {
	var out []types.Violation
	eachCodeLine(f, func(n int, line string) {
		if nameParenSpacing.MatchString(line) {
			out = append(out, FunctionParenSpacing.at(f, n, "Space between the function name and its parenthesis"))
		}
	})
	return out
}

// Top-level definitions must be preceded by exactly one empty line. Both
// violations are keyed to the signature line.
func checkFunctionSeparation(f *types.SourceFile) []types.Violation {
	var out []types.Violation
	for _, m := range tooManyEmptyLines.FindAllStringSubmatchIndex(f.Text, -1) {
		out = append(out, FunctionSeparation.at(f, lineAt(f.Text, m[2]), "Too many empty lines between functions"))
	}
	for _, m := range missingEmptyLine.FindAllStringSubmatchIndex(f.Text, -1) {
		out = append(out, FunctionSeparation.at(f, lineAt(f.Text, m[2]), "Missing empty line between functions"))
	}
	sortByLine(out)
	return out
}

// A function's opening brace goes on its own line. A control statement's
// opening brace goes on the header line, so a "{" that starts the line right
// after a control header is reported against the header.
func checkBracePlacement(f *types.SourceFile) []types.Violation {
	var (
		out        []types.Violation
		headerLine int
	)
	eachCodeLine(f, func(n int, line string) {
		if functionBrace.MatchString(line) {
			out = append(out, BracePlacement.at(f, n, "Curly brackets misplaced on a function."))
			return
		}

		stripped := scan.StripIndent(line)
		if headerLine > 0 && len(stripped) > 0 && stripped[0] == '{' {
			out = append(out, BracePlacement.at(f, headerLine, "Curly brackets misplaced."))
		}
		headerLine = 0
		if controlHeader.MatchString(stripped) {
			headerLine = n
		}
	})
	return out
}
