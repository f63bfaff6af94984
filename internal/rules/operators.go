package rules

import (
	"fmt"
	"regexp"

	"github.com/steveyegge/cnorm/internal/types"
)

// operatorCheck flags one operator. When quoted is set, a match of pattern
// only counts if quoted also matches around it, which filters out operators
// that sit inside character or string literals like '|'.
type operatorCheck struct {
	op      string
	pattern *regexp.Regexp
	quoted  *regexp.Regexp
}

var operatorChecks = []operatorCheck{
	{op: "=", pattern: regexp.MustCompile(`[^\t&|=^><+\-*%/! ]=[^=]|[^&|=^><+\-*%/!]=[^= \n]`)},
	{op: "==", pattern: regexp.MustCompile(`[^\t ]==|==[^ \n]`)},
	{op: "!=", pattern: regexp.MustCompile(`[^\t ]!=|!=[^ \n]`)},
	{op: "<=", pattern: regexp.MustCompile(`[^\t <]<=|[^<]<=[^ \n]`)},
	{op: ">=", pattern: regexp.MustCompile(`[^\t >]>=|[^>]>=[^ \n]`)},
	{op: "&&", pattern: regexp.MustCompile(`[^\t ]&&|&&[^ \n]`)},
	{op: "||", pattern: regexp.MustCompile(`[^\t ]\|\||\|\|[^ \n]`)},
	{op: "+=", pattern: regexp.MustCompile(`[^\t ]\+=|\+=[^ \n]`)},
	{op: "-=", pattern: regexp.MustCompile(`[^\t ]-=|-=[^ \n]`)},
	{op: "*=", pattern: regexp.MustCompile(`[^\t ]\*=|\*=[^ \n]`)},
	{op: "/=", pattern: regexp.MustCompile(`[^\t ]/=|/=[^ \n]`)},
	{op: "%=", pattern: regexp.MustCompile(`[^\t ]%=|%=[^ \n]`)},
	{op: "&=", pattern: regexp.MustCompile(`[^\t ]&=|&=[^ \n]`)},
	{op: "^=", pattern: regexp.MustCompile(`[^\t ]\^=|\^=[^ \n]`)},
	{op: "|=", pattern: regexp.MustCompile(`[^\t ]\|=|\|=[^ \n]`)},
	{
		op:      "|",
		pattern: regexp.MustCompile(`[^\t |]\|[^|]|[^|]\|[^ =|\n]`),
		quoted:  regexp.MustCompile(`[^'"]\|[^'"]`),
	},
	{
		op:      "^",
		pattern: regexp.MustCompile(`[^\t ]\^|\^[^ =\n]`),
		quoted:  regexp.MustCompile(`[^'"]\^|\^[^'"]`),
	},
	{
		op:      ">>",
		pattern: regexp.MustCompile(`[^\t ]>>[^=]|>>[^ =\n]`),
		quoted:  regexp.MustCompile(`[^'"]>>[^=]|>>[^'"]`),
	},
	{
		op:      "<<",
		pattern: regexp.MustCompile(`[^\t ]<<[^=]|<<[^ =\n]`),
		quoted:  regexp.MustCompile(`[^'"]<<[^=]|<<[^'"]`),
	},
	{op: ">>=", pattern: regexp.MustCompile(`[^\t ]>>=|>>=[^ \n]`)},
	{op: "<<=", pattern: regexp.MustCompile(`[^\t ]<<=|<<=[^ \n]`)},
	{op: "!", pattern: regexp.MustCompile(`[^!]! `)},
	{op: "sizeof", pattern: regexp.MustCompile(`[^a-zA-Z0-9]sizeof `)},
	{op: "++", pattern: regexp.MustCompile(`[^a-zA-Z)\]]\+\+[^(\[*a-zA-Z]`)},
	{
		op:      "--",
		pattern: regexp.MustCompile(`[^a-zA-Z)\]]--[^\[(*a-zA-Z]`),
		quoted:  regexp.MustCompile(`[^'"]--[^'"]`),
	},
	{op: ";", pattern: regexp.MustCompile(`(?m) ;$`)},
}

// matches returns how many misplaced occurrences of the operator the line
// holds.
func (c operatorCheck) matches(line string) int {
	spans := c.pattern.FindAllStringIndex(line, -1)
	if c.quoted == nil {
		return len(spans)
	}

	count := 0
	for _, span := range spans {
		lo, hi := span[0]-1, span[1]+1
		if lo < 0 {
			lo = 0
		}
		if hi > len(line) {
			hi = len(line)
		}
		if c.quoted.MatchString(line[lo:hi]) {
			count++
		}
	}
	return count
}

func checkOperatorSpacing(f *types.SourceFile) []types.Violation {
	var out []types.Violation
	eachCodeLine(f, func(n int, line string) {
		for _, c := range operatorChecks {
			msg := fmt.Sprintf("Misplaced space(s) around '%s' sign.", c.op)
			for range c.matches(line) {
				out = append(out, OperatorSpacing.at(f, n, msg))
			}
		}
	})
	return out
}
