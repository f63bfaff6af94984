package rules

import (
	"regexp"
	"strings"

	"github.com/steveyegge/cnorm/internal/scan"
	"github.com/steveyegge/cnorm/internal/types"
)

// MaxElseIfs is the number of "else if" an if chain may hold.
const MaxElseIfs = 2

const deepBranching = "Nested conditional branchings with a depth of 3 or more should be avoided " +
	"and an if block should not contain more than 3 branchings"

var (
	ifStart      = regexp.MustCompile(`^if ?\(`)
	elseIf       = regexp.MustCompile(`else if ?`)
	deepIndent   = regexp.MustCompile(`^( {16})|(\t{4})`)
	typedefWord  = regexp.MustCompile(`\btypedef\b`)
	funcPtrName  = regexp.MustCompile(`\(\s*\*\s*(\w+)\s*\)`)
	identifier   = regexp.MustCompile(`\w+`)
	typeName     = regexp.MustCompile(`^[a-z0-9_]+$`)
	globalAssign = regexp.MustCompile(`([0-9a-zA-Z]+)\s*=\s*([0-9a-zA-Z_]+)`)
)

// The chain is reported once, at the if line, when its third "else if" shows
// up. Any new "if" restarts the count.
func checkElseIfChain(f *types.SourceFile) []types.Violation {
	var (
		out     []types.Violation
		start   int
		elseIfs int
	)
	eachCodeLine(f, func(n int, line string) {
		stripped := scan.StripIndent(line)
		switch {
		case ifStart.MatchString(stripped):
			start = n
			elseIfs = 0
		case elseIf.MatchString(stripped):
			elseIfs++
			if elseIfs == MaxElseIfs+1 && start > 0 {
				out = append(out, ElseIfChain.at(f, start, deepBranching))
			}
		}
	})
	return out
}

// Four levels of indentation mean three nested blocks inside a function. Case
// bodies are indented one level deeper than usual, so switch spans are exempt.
func checkNestingDepth(f *types.SourceFile) []types.Violation {
	var (
		out []types.Violation
		sw  scan.SwitchTracker
	)
	eachCodeLine(f, func(n int, line string) {
		if sw.Step(line) {
			return
		}
		if deepIndent.MatchString(line) {
			out = append(out, NestingDepth.at(f, n, deepBranching))
		}
	})
	return out
}

func checkPreprocessorIndent(f *types.SourceFile) []types.Violation {
	var (
		out []types.Violation
		pp  scan.PreprocessorTracker
	)
	eachCodeLine(f, func(n int, line string) {
		d, ok := pp.Step(line)
		if !ok || !d.Misplaced() {
			return
		}
		if d.WantIndented {
			out = append(out, PreprocessorIndent.at(f, n, "Preprocessor directives should be indented"))
			return
		}
		out = append(out, PreprocessorIndent.at(f, n, "Top-level preprocessor directives should not be indented"))
	})
	return out
}

// typedefName extracts the declared name from the line that ends a typedef:
// the name inside "(*name)" for function pointers, otherwise the last
// identifier before ";".
func typedefName(line string) string {
	if m := funcPtrName.FindStringSubmatch(line); m != nil {
		return m[1]
	}
	head := line
	if i := strings.LastIndex(line, ";"); i >= 0 {
		head = line[:i]
	}
	words := identifier.FindAllString(head, -1)
	if len(words) == 0 {
		return ""
	}
	return words[len(words)-1]
}

// A typedef spanning several lines is checked on the line holding its final
// ";" once braces are balanced again, wherever its opening brace sits. When
// it has a brace block, the name is what follows the last '}'.
func checkTypedefName(f *types.SourceFile) []types.Violation {
	var (
		out     []types.Violation
		pending strings.Builder
		open    bool
		braced  bool
		depth   int
	)
	check := func(n int, text string) {
		if braced {
			text = text[strings.LastIndex(text, "}")+1:]
		}
		name := typedefName(text)
		switch {
		case !strings.HasSuffix(name, "_t"):
			out = append(out, TypedefName.at(f, n, `The type names defined with typedef should end with "_t"`))
		case !typeName.MatchString(name):
			out = append(out, TypedefName.at(f, n, "The type names must be composed exclusively of lowercase, numbers, and underscores"))
		}
	}

	eachCodeLine(f, func(n int, line string) {
		if !open {
			if !typedefWord.MatchString(line) {
				return
			}
			open, braced, depth = true, false, 0
			pending.Reset()
		}

		pending.WriteString(line)
		if strings.ContainsAny(line, "{}") {
			braced = true
		}
		depth += scan.BraceDelta(line)
		if depth < 0 {
			depth = 0
		}
		if depth > 0 || !strings.Contains(line, ";") {
			return
		}

		open = false
		if braced {
			check(n, line)
			return
		}
		check(n, pending.String())
	})
	return out
}

func checkGlobalConst(f *types.SourceFile) []types.Violation {
	var (
		out    []types.Violation
		braces scan.BraceTracker
	)
	eachCodeLine(f, func(n int, line string) {
		if braces.Step(line) != 0 {
			return
		}
		if globalAssign.MatchString(line) && !strings.Contains(line, "const") {
			out = append(out, GlobalConst.at(f, n, "Global variable must be const."))
		}
	})
	return out
}

// Braces are counted on every line here, comment lines included, since the
// comment lines are what is being looked for.
func checkCommentInFunction(f *types.SourceFile) []types.Violation {
	var (
		out    []types.Violation
		braces scan.BraceTracker
	)
	for i, line := range f.Lines {
		if braces.Step(line) == 0 {
			continue
		}
		if strings.Contains(line, "/*") || strings.Contains(line, "//") {
			out = append(out, CommentInFunction.at(f, i+1, "Comment inside a function"))
		}
	}
	return out
}
