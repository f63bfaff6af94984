package checker

import (
	"fmt"
	"sync"

	"github.com/steveyegge/cnorm/internal/rules"
	"github.com/steveyegge/cnorm/internal/types"
)

// cFileRules run, in this order, on both headers and sources.
var cFileRules = []rules.Kind{
	rules.TrailingWhitespace,
	rules.Indentation,
	rules.FileName,
	rules.LineLength,
	rules.BroadFileName,
	rules.Header,
	rules.SeveralAssignments,
	rules.ForbiddenFunction,
	rules.Goto,
	rules.NestingDepth,
	rules.ElseIfChain,
	rules.EmptyParameters,
	rules.TooManyParameters,
	rules.BracePlacement,
	rules.KeywordSpacing,
	rules.DoubleSpace,
	rules.PointerPlacement,
	rules.CommaSpacing,
	rules.CommentInFunction,
	rules.OperatorSpacing,
	rules.ConditionAssignment,
	rules.AmbiguousIdentifier,
	rules.GlobalConst,
	rules.FunctionParenSpacing,
	rules.FinalNewline,
	rules.TypedefName,
	rules.FunctionLength,
}

// Registry maps each file category to the ordered list of rules checked on
// it. Individual rules can be disabled for every category at once.
type Registry struct {
	mu         sync.RWMutex
	byCategory map[types.Category][]rules.Kind
	disabled   map[rules.Kind]bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byCategory: make(map[types.Category][]rules.Kind),
		disabled:   make(map[rules.Kind]bool),
	}
}

// DefaultRegistry returns the standard category to rules mapping.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	register := func(category types.Category, kinds ...rules.Kind) {
		if err := r.Register(category, kinds...); err != nil {
			panic(err)
		}
	}

	register(types.CategoryUnrecognized, rules.ExtraneousFile)
	register(types.CategoryDirectory, rules.DirectoryName)
	register(types.CategoryMakefile, rules.Indentation, rules.MakefileHeader)

	register(types.CategoryHeader, cFileRules...)
	register(types.CategoryHeader, rules.PreprocessorIndent)

	register(types.CategorySource, cFileRules...)
	register(types.CategorySource, rules.HeaderSeparation, rules.FunctionCount, rules.FunctionSeparation)

	return r
}

// Register appends rules to a category. A rule registered twice for the same
// category is an error.
func (r *Registry) Register(category types.Category, kinds ...rules.Kind) error {
	if !category.IsValid() {
		return fmt.Errorf("unknown category %q", category)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing := r.byCategory[category]
	for _, k := range kinds {
		for _, e := range existing {
			if e == k {
				return fmt.Errorf("rule %s already registered for %s", k, category)
			}
		}
		existing = append(existing, k)
	}
	r.byCategory[category] = existing
	return nil
}

// Disable turns off a rule by name, as printed by rules.Kind.String.
func (r *Registry) Disable(name string) error {
	k, ok := rules.Lookup(name)
	if !ok {
		return fmt.Errorf("unknown rule %q", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.disabled[k] = true
	return nil
}

// RulesFor returns the enabled rules for a category, in check order.
func (r *Registry) RulesFor(category types.Category) []rules.Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	registered := r.byCategory[category]
	kinds := make([]rules.Kind, 0, len(registered))
	for _, k := range registered {
		if !r.disabled[k] {
			kinds = append(kinds, k)
		}
	}
	return kinds
}
