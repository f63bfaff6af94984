// Package rules defines the coding-style rulebook: one Kind per requirement,
// each mapped to a rule code, a severity and a pure check function.
//
// Rule codes follow the rulebook's families:
//
//	O  organisation of the delivery (files, directories, names)
//	G  global scope (header, separation, constants, preprocessor)
//	F  functions (length, parameters, comments, forbidden calls)
//	L  layout (indentation, spaces, braces, one statement per line)
//	V  variables and types
//	C  control structures
//	H  header/source separation
//	A  advanced (file endings)
//
// Checks never fail. They accept any text, malformed or not, and return the
// violations they found in ascending line order.
package rules

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/steveyegge/cnorm/internal/scan"
	"github.com/steveyegge/cnorm/internal/types"
)

// Options are the global toggles that change what the rulebook reports.
type Options struct {
	// IgnoreFiles suppresses the extraneous-file rule.
	IgnoreFiles bool

	// IgnoreFunctions suppresses the forbidden-function rule.
	IgnoreFunctions bool
}

// Kind identifies one rule of the rulebook.
type Kind int

const (
	kindInvalid Kind = iota

	DirectoryName
	FileName
	BroadFileName
	ExtraneousFile
	Header
	MakefileHeader
	TrailingWhitespace
	Indentation
	LineLength
	SeveralAssignments
	DoubleSpace
	CommaSpacing
	KeywordSpacing
	AmbiguousIdentifier
	OperatorSpacing
	ForbiddenFunction
	Goto
	FunctionLength
	FunctionCount
	EmptyParameters
	TooManyParameters
	ElseIfChain
	NestingDepth
	BracePlacement
	PreprocessorIndent
	TypedefName
	GlobalConst
	FunctionSeparation
	PointerPlacement
	CommentInFunction
	ConditionAssignment
	FunctionParenSpacing
	FinalNewline
	HeaderSeparation

	kindCount
)

// All returns every rule kind in declaration order.
func All() []Kind {
	kinds := make([]Kind, 0, kindCount-1)
	for k := kindInvalid + 1; k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// Lookup returns the kind whose String is name.
func Lookup(name string) (Kind, bool) {
	for _, k := range All() {
		if k.String() == name {
			return k, true
		}
	}
	return kindInvalid, false
}

// String returns the rule's short name, e.g. "line-length".
func (k Kind) String() string {
	switch k {
	case DirectoryName:
		return "directory-name"
	case FileName:
		return "file-name"
	case BroadFileName:
		return "broad-file-name"
	case ExtraneousFile:
		return "extraneous-file"
	case Header:
		return "header"
	case MakefileHeader:
		return "makefile-header"
	case TrailingWhitespace:
		return "trailing-whitespace"
	case Indentation:
		return "indentation"
	case LineLength:
		return "line-length"
	case SeveralAssignments:
		return "several-assignments"
	case DoubleSpace:
		return "double-space"
	case CommaSpacing:
		return "comma-spacing"
	case KeywordSpacing:
		return "keyword-spacing"
	case AmbiguousIdentifier:
		return "ambiguous-identifier"
	case OperatorSpacing:
		return "operator-spacing"
	case ForbiddenFunction:
		return "forbidden-function"
	case Goto:
		return "goto"
	case FunctionLength:
		return "function-length"
	case FunctionCount:
		return "function-count"
	case EmptyParameters:
		return "empty-parameters"
	case TooManyParameters:
		return "too-many-parameters"
	case ElseIfChain:
		return "else-if-chain"
	case NestingDepth:
		return "nesting-depth"
	case BracePlacement:
		return "brace-placement"
	case PreprocessorIndent:
		return "preprocessor-indent"
	case TypedefName:
		return "typedef-name"
	case GlobalConst:
		return "global-const"
	case FunctionSeparation:
		return "function-separation"
	case PointerPlacement:
		return "pointer-placement"
	case CommentInFunction:
		return "comment-in-function"
	case ConditionAssignment:
		return "condition-assignment"
	case FunctionParenSpacing:
		return "function-paren-spacing"
	case FinalNewline:
		return "final-newline"
	case HeaderSeparation:
		return "header-separation"
	default:
		return fmt.Sprintf("rule-unknown(%d)", int(k))
	}
}

// Code returns the rulebook code reported with each violation.
func (k Kind) Code() string {
	switch k {
	case ExtraneousFile:
		return "O1"
	case FunctionCount:
		return "O3"
	case DirectoryName, FileName, BroadFileName:
		return "O4"
	case Header, MakefileHeader:
		return "G1"
	case FunctionSeparation:
		return "G2"
	case PreprocessorIndent:
		return "G3"
	case GlobalConst:
		return "G4"
	case TrailingWhitespace:
		return "G8"
	case LineLength:
		return "F3"
	case FunctionLength:
		return "F4"
	case EmptyParameters, TooManyParameters:
		return "F5"
	case CommentInFunction:
		return "F6"
	case ForbiddenFunction:
		return "F7"
	case SeveralAssignments, ConditionAssignment:
		return "L1"
	case Indentation:
		return "L2"
	case DoubleSpace, CommaSpacing, KeywordSpacing, OperatorSpacing, FunctionParenSpacing:
		return "L3"
	case BracePlacement:
		return "L4"
	case AmbiguousIdentifier, TypedefName:
		return "V1"
	case PointerPlacement:
		return "V3"
	case ElseIfChain, NestingDepth:
		return "C1"
	case Goto:
		return "C3"
	case HeaderSeparation:
		return "H1"
	case FinalNewline:
		return "A3"
	default:
		return ""
	}
}

// Severity returns the severity every violation of this kind carries.
func (k Kind) Severity() types.Severity {
	switch k {
	case DirectoryName, FileName, BroadFileName, ExtraneousFile, Header, MakefileHeader,
		LineLength, SeveralAssignments, ForbiddenFunction, FunctionLength, FunctionCount,
		EmptyParameters, TooManyParameters, TypedefName, HeaderSeparation:
		return types.SeverityMajor
	case AmbiguousIdentifier, FinalNewline:
		return types.SeverityInfo
	case kindInvalid, kindCount:
		return ""
	default:
		return types.SeverityMinor
	}
}

// Description returns a one-line statement of the requirement.
func (k Kind) Description() string {
	switch k {
	case DirectoryName:
		return "Directory names are snake_case."
	case FileName:
		return "File names are snake_case with a .c or .h extension."
	case BroadFileName:
		return "File names say what the file contains, not a generic word."
	case ExtraneousFile:
		return "The delivery contains only files needed to build."
	case Header:
		return "Source and header files start with the standard header comment."
	case MakefileHeader:
		return "Makefiles start with the standard ## header."
	case TrailingWhitespace:
		return "No space or tab at the end of a line."
	case Indentation:
		return "Indent with 4 spaces in C files and tabs in Makefiles."
	case LineLength:
		return "Lines are at most 80 columns wide."
	case SeveralAssignments:
		return "One statement per line."
	case DoubleSpace:
		return "No double space between tokens."
	case CommaSpacing:
		return "A comma is followed by a space."
	case KeywordSpacing:
		return "Keywords are followed by a space before '('."
	case AmbiguousIdentifier:
		return "Identifiers are not a lone 'l' or 'O'."
	case OperatorSpacing:
		return "Binary operators are surrounded by spaces, unary operators are not."
	case ForbiddenFunction:
		return "Unsafe or reimplemented C library functions are not called."
	case Goto:
		return "goto is not used."
	case FunctionLength:
		return "Function bodies are at most 20 lines."
	case FunctionCount:
		return "At most 5 functions per source file."
	case EmptyParameters:
		return "Functions without parameters take void."
	case TooManyParameters:
		return "Functions take at most 4 parameters."
	case ElseIfChain:
		return "An if chain has at most 3 branches."
	case NestingDepth:
		return "Conditional branching is not nested 3 levels deep."
	case BracePlacement:
		return "Function braces go on their own line, control braces on the header line."
	case PreprocessorIndent:
		return "Directives inside conditionals are indented, top-level ones are not."
	case TypedefName:
		return "typedef names are lowercase and end in _t."
	case GlobalConst:
		return "Global variables are const."
	case FunctionSeparation:
		return "Function definitions are separated by exactly one empty line."
	case PointerPlacement:
		return "The pointer star is attached to the name, not the type."
	case CommentInFunction:
		return "No comments inside a function body."
	case ConditionAssignment:
		return "Conditions do not also assign."
	case FunctionParenSpacing:
		return "No space between a function name and its parameter list."
	case FinalNewline:
		return "Files end with a line break."
	case HeaderSeparation:
		return "Macros and static inline functions belong in headers."
	default:
		return fmt.Sprintf("unknown rule (%d)", int(k))
	}
}

// Check runs the rule over one file.
func (k Kind) Check(f *types.SourceFile, opts Options) []types.Violation {
	switch k {
	case DirectoryName:
		return checkDirectoryName(f)
	case FileName:
		return checkFileName(f)
	case BroadFileName:
		return checkBroadFileName(f)
	case ExtraneousFile:
		return checkExtraneousFile(f, opts)
	case Header:
		return checkHeader(f)
	case MakefileHeader:
		return checkMakefileHeader(f)
	case TrailingWhitespace:
		return checkTrailingWhitespace(f)
	case Indentation:
		return checkIndentation(f)
	case LineLength:
		return checkLineLength(f)
	case SeveralAssignments:
		return checkSeveralAssignments(f)
	case DoubleSpace:
		return checkDoubleSpace(f)
	case CommaSpacing:
		return checkCommaSpacing(f)
	case KeywordSpacing:
		return checkKeywordSpacing(f)
	case AmbiguousIdentifier:
		return checkAmbiguousIdentifier(f)
	case OperatorSpacing:
		return checkOperatorSpacing(f)
	case ForbiddenFunction:
		return checkForbiddenFunction(f, opts)
	case Goto:
		return checkGoto(f)
	case FunctionLength:
		return checkFunctionLength(f)
	case FunctionCount:
		return checkFunctionCount(f)
	case EmptyParameters:
		return checkEmptyParameters(f)
	case TooManyParameters:
		return checkTooManyParameters(f)
	case ElseIfChain:
		return checkElseIfChain(f)
	case NestingDepth:
		return checkNestingDepth(f)
	case BracePlacement:
		return checkBracePlacement(f)
	case PreprocessorIndent:
		return checkPreprocessorIndent(f)
	case TypedefName:
		return checkTypedefName(f)
	case GlobalConst:
		return checkGlobalConst(f)
	case FunctionSeparation:
		return checkFunctionSeparation(f)
	case PointerPlacement:
		return checkPointerPlacement(f)
	case CommentInFunction:
		return checkCommentInFunction(f)
	case ConditionAssignment:
		return checkConditionAssignment(f)
	case FunctionParenSpacing:
		return checkFunctionParenSpacing(f)
	case FinalNewline:
		return checkFinalNewline(f)
	case HeaderSeparation:
		return checkHeaderSeparation(f)
	default:
		return nil
	}
}

func (k Kind) at(f *types.SourceFile, line int, message string) types.Violation {
	return types.Violation{
		Code:     k.Code(),
		Severity: k.Severity(),
		Path:     f.Path,
		Line:     line,
		Message:  message,
	}
}

func (k Kind) file(f *types.SourceFile, message string) types.Violation {
	return k.at(f, 0, message)
}

// eachCodeLine calls fn with the 1-based number of every line that is not a
// "//" comment line.
func eachCodeLine(f *types.SourceFile, fn func(n int, line string)) {
	for i, line := range f.Lines {
		if scan.IsCommentLine(line) {
			continue
		}
		fn(i+1, line)
	}
}

// lineAt returns the 1-based line number of a byte offset in the text.
func lineAt(text string, offset int) int {
	line := 1
	for i := 0; i < offset && i < len(text); i++ {
		if text[i] == '\n' {
			line++
		}
	}
	return line
}

func sortByLine(vs []types.Violation) {
	slices.SortStableFunc(vs, func(a, b types.Violation) int {
		return cmp.Compare(a.Line, b.Line)
	})
}
