package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/steveyegge/cnorm/internal/scan"
	"github.com/steveyegge/cnorm/internal/types"
)

// MaxLineWidth is the widest a line may be, in visible columns.
const MaxLineWidth = 80

var (
	forHeader           = regexp.MustCompile(`^[ \t]*for ?\(`)
	doubleSpace         = regexp.MustCompile(`\w+  .+`)
	keywordParen        = regexp.MustCompile(`(return|if|else if|else|while|for)\(`)
	ambiguousIdentifier = regexp.MustCompile(`\s+(l|O)\s+`)
	blockCommentLine    = regexp.MustCompile(`^((\*\*)|(//))`)
	pointerAfterType    = regexp.MustCompile(`([^(\t ]+_t|int|signed|unsigned|char|long|short|float|double|void|const|struct [^ ]+)\*`)
	conditionAssignment = regexp.MustCompile(`(if.*[^&|=^><+\-*%/!]=[^=].*==.*)|(if.*==.*[^&|=^><+\-*%/!]=[^=].*)`)
)

func checkTrailingWhitespace(f *types.SourceFile) []types.Violation {
	var out []types.Violation
	eachCodeLine(f, func(n int, line string) {
		body := strings.TrimSuffix(line, "\n")
		switch {
		case strings.HasSuffix(body, " "):
			out = append(out, TrailingWhitespace.at(f, n, "Trailing space(s) at the end of the line"))
		case strings.HasSuffix(body, "\t"):
			out = append(out, TrailingWhitespace.at(f, n, "Trailing tabulation(s) at the end of the line"))
		}
	})
	return out
}

// Makefiles are indented with tabs. C files are indented with groups of four
// spaces and never with tabs.
func checkIndentation(f *types.SourceFile) []types.Violation {
	var out []types.Violation
	eachCodeLine(f, func(n int, line string) {
		if f.Category == types.CategoryMakefile {
			if strings.HasPrefix(line, " ") {
				out = append(out, Indentation.at(f, n, "Wrong indentation: spaces are not allowed."))
			}
			return
		}

		if strings.HasPrefix(line, "\t") {
			out = append(out, Indentation.at(f, n, "Wrong indentation: tabulations are not allowed."))
			return
		}
		spaces := len(line) - len(strings.TrimLeft(line, " "))
		if spaces%4 != 0 {
			out = append(out, Indentation.at(f, n, "Wrong indentation"))
		}
	})
	return out
}

func checkLineLength(f *types.SourceFile) []types.Violation {
	var out []types.Violation
	eachCodeLine(f, func(n int, line string) {
		if width := scan.VisibleWidth(line) - 1; width > MaxLineWidth {
			out = append(out, LineLength.at(f, n, fmt.Sprintf("Too long line (%d > %d)", width, MaxLineWidth)))
		}
	})
	return out
}

// for headers legitimately hold two semicolons.
func checkSeveralAssignments(f *types.SourceFile) []types.Violation {
	var out []types.Violation
	eachCodeLine(f, func(n int, line string) {
		if forHeader.MatchString(line) {
			return
		}
		if strings.Count(line, ";") > 1 {
			out = append(out, SeveralAssignments.at(f, n, "Several assignments on the same line"))
		}
	})
	return out
}

func checkDoubleSpace(f *types.SourceFile) []types.Violation {
	var out []types.Violation
	eachCodeLine(f, func(n int, line string) {
		if doubleSpace.MatchString(line) {
			out = append(out, DoubleSpace.at(f, n, "Misplaced space(s)"))
		}
	})
	return out
}

// A comma must be followed by a space or end the line. Commas inside string
// or character literals are skipped; the quote state flips on every ' or ".
func checkCommaSpacing(f *types.SourceFile) []types.Violation {
	var out []types.Violation
	eachCodeLine(f, func(n int, line string) {
		quoted := false
		for i := 0; i < len(line); i++ {
			switch line[i] {
			case '"', '\'':
				quoted = !quoted
			case ',':
				if quoted || i+1 >= len(line) {
					continue
				}
				if next := line[i+1]; next != ' ' && next != '\n' {
					out = append(out, CommaSpacing.at(f, n, "Missing space after comma"))
				}
			}
		}
	})
	return out
}

func checkKeywordSpacing(f *types.SourceFile) []types.Violation {
	var out []types.Violation
	eachCodeLine(f, func(n int, line string) {
		for _, m := range keywordParen.FindAllStringSubmatch(line, -1) {
			out = append(out, KeywordSpacing.at(f, n, fmt.Sprintf("Missing space after keyword '%s'.", m[1])))
		}
	})
	return out
}

func checkAmbiguousIdentifier(f *types.SourceFile) []types.Violation {
	var out []types.Violation
	eachCodeLine(f, func(n int, line string) {
		if blockCommentLine.MatchString(line) {
			return
		}
		if ambiguousIdentifier.MatchString(line) {
			out = append(out, AmbiguousIdentifier.at(f, n,
				"Identifiers should not be composed of only 'l' (lowercase L) or 'O' (uppercase o)"))
		}
	})
	return out
}

func checkPointerPlacement(f *types.SourceFile) []types.Violation {
	var out []types.Violation
	eachCodeLine(f, func(n int, line string) {
		for _, m := range pointerAfterType.FindAllStringSubmatch(line, -1) {
			out = append(out, PointerPlacement.at(f, n, fmt.Sprintf("Misplaced pointer symbol after '%s'.", m[1])))
		}
	})
	return out
}

func checkConditionAssignment(f *types.SourceFile) []types.Violation {
	var out []types.Violation
	eachCodeLine(f, func(n int, line string) {
		for range conditionAssignment.FindAllString(line, -1) {
			out = append(out, ConditionAssignment.at(f, n, "Condition and assignment on the same line"))
		}
	})
	return out
}
