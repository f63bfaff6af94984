package checker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steveyegge/cnorm/internal/report"
	"github.com/steveyegge/cnorm/internal/rules"
	"github.com/steveyegge/cnorm/internal/source"
	"github.com/steveyegge/cnorm/internal/types"
)

const header = "/*\n** EPITECH PROJECT, 2024\n** cnorm\n** File description:\n** test\n*/\n"

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func mapLoader(files map[string]string) source.Loader {
	return func(relPath string) (string, error) {
		text, ok := files[relPath]
		if !ok {
			return "", fmt.Errorf("failed to read %s: %w", relPath, errors.New("no such file"))
		}
		return text, nil
	}
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()

	assert.Equal(t, []rules.Kind{rules.ExtraneousFile}, r.RulesFor(types.CategoryUnrecognized))
	assert.Equal(t, []rules.Kind{rules.DirectoryName}, r.RulesFor(types.CategoryDirectory))
	assert.Equal(t, []rules.Kind{rules.Indentation, rules.MakefileHeader}, r.RulesFor(types.CategoryMakefile))

	headerRules := r.RulesFor(types.CategoryHeader)
	sourceRules := r.RulesFor(types.CategorySource)
	assert.Equal(t, rules.TrailingWhitespace, sourceRules[0])
	assert.Equal(t, rules.PreprocessorIndent, headerRules[len(headerRules)-1])
	assert.Equal(t, []rules.Kind{rules.HeaderSeparation, rules.FunctionCount, rules.FunctionSeparation}, sourceRules[len(sourceRules)-3:])
	assert.NotContains(t, headerRules, rules.FunctionCount)
	assert.NotContains(t, sourceRules, rules.PreprocessorIndent)

	covered := make(map[rules.Kind]bool)
	for _, c := range []types.Category{
		types.CategoryUnrecognized, types.CategoryDirectory, types.CategoryMakefile,
		types.CategoryHeader, types.CategorySource,
	} {
		for _, k := range r.RulesFor(c) {
			covered[k] = true
		}
	}
	for _, k := range rules.All() {
		assert.True(t, covered[k], "%s is not registered for any category", k)
	}
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(types.CategorySource, rules.Goto))
	assert.ErrorContains(t, r.Register(types.CategorySource, rules.Goto), "already registered")
	assert.ErrorContains(t, r.Register("binary", rules.Goto), "unknown category")
}

func TestRegistry_Disable(t *testing.T) {
	r := DefaultRegistry()
	require.NoError(t, r.Disable("goto"))
	assert.NotContains(t, r.RulesFor(types.CategorySource), rules.Goto)
	assert.NotContains(t, r.RulesFor(types.CategoryHeader), rules.Goto)

	assert.ErrorContains(t, r.Disable("no-such-rule"), "unknown rule")
}

func TestCheck_Outcomes(t *testing.T) {
	c := New(nil, rules.Options{}, quietLogger)

	clean := c.Check(types.NewSourceFile("my_file.c", types.CategorySource, header+"\nint my_one(void)\n{\n    return (1);\n}\n"))
	assert.Equal(t, OutcomeClean, clean.Outcome)
	assert.Empty(t, clean.Violations)

	dir := c.Check(types.NewSourceFile("BadDir", types.CategoryDirectory, ""))
	assert.Equal(t, OutcomeReported, dir.Outcome)
	require.Len(t, dir.Violations, 1)
	assert.Equal(t, "O4", dir.Violations[0].Code)

	extra := c.Check(types.NewSourceFile("notes.txt", types.CategoryUnrecognized, ""))
	assert.Equal(t, OutcomeReported, extra.Outcome)

	assert.Equal(t, report.Totals{Major: 2}, c.Totals())
}

func TestCheck_IgnoreFilesSkips(t *testing.T) {
	c := New(nil, rules.Options{IgnoreFiles: true}, quietLogger)

	res := c.Check(types.NewSourceFile("notes.txt", types.CategoryUnrecognized, ""))
	assert.Equal(t, OutcomeSkipped, res.Outcome)
	assert.Empty(t, res.Violations)
	assert.Equal(t, report.Totals{}, c.Totals())
}

func TestCheck_RuleOrder(t *testing.T) {
	c := New(nil, rules.Options{}, quietLogger)

	res := c.Check(types.NewSourceFile("Bad.c", types.CategorySource, "int x; \n"))
	require.GreaterOrEqual(t, len(res.Violations), 3)

	codes := make([]string, len(res.Violations))
	for i, v := range res.Violations {
		codes[i] = v.Code
	}
	assert.Equal(t, []string{"G8", "O4", "G1"}, codes[:3], "trailing whitespace, file name, then header")
}

func TestCheck_Totals(t *testing.T) {
	c := New(nil, rules.Options{}, quietLogger)
	text := header + "\nint main()\n{\n    int l = 0;\n    return (l) ;\n}"

	res := c.Check(types.NewSourceFile("main.c", types.CategorySource, text))

	var want report.Aggregator
	want.Add(res.Violations...)
	assert.Equal(t, want.Totals(), c.Totals())
	assert.Equal(t, int64(len(res.Violations)), c.Totals().Total())

	assert.Equal(t, int64(2), c.Totals().Info, "ambiguous identifier and missing final newline")
}

func TestRun_OrderedAndDeterministic(t *testing.T) {
	files := map[string]string{}
	var entries []source.Entry
	for i := range 40 {
		path := fmt.Sprintf("src/file_%02d.c", i)
		files[path] = header + strings.Repeat("    x=1;\n", i%7)
		entries = append(entries, source.Entry{Path: path, Category: types.CategorySource})
	}
	entries = append(entries, source.Entry{Path: "src", Category: types.CategoryDirectory})

	var baseline []Result
	var baselineTotals report.Totals
	for _, jobs := range []int{1, 4, 16} {
		c := New(nil, rules.Options{}, quietLogger)
		results, err := c.Run(context.Background(), entries, mapLoader(files), jobs)
		require.NoError(t, err)
		require.Len(t, results, len(entries))

		for i, r := range results {
			assert.Equal(t, entries[i].Path, r.Path)
		}

		if baseline == nil {
			baseline = results
			baselineTotals = c.Totals()
			continue
		}
		assert.Equal(t, baseline, results, "jobs=%d", jobs)
		assert.Equal(t, baselineTotals, c.Totals(), "jobs=%d", jobs)
	}
}

func TestRun_UnreadableFileIsSkipped(t *testing.T) {
	c := New(nil, rules.Options{}, quietLogger)
	entries := []source.Entry{
		{Path: "gone.c", Category: types.CategorySource},
		{Path: "notes.txt", Category: types.CategoryUnrecognized},
	}

	results, err := c.Run(context.Background(), entries, mapLoader(nil), 2)
	require.NoError(t, err)

	assert.Equal(t, OutcomeSkipped, results[0].Outcome)
	assert.Error(t, results[0].Err)
	assert.Equal(t, OutcomeReported, results[1].Outcome, "entries without content are never loaded")
}

func TestRun_Cancelled(t *testing.T) {
	c := New(nil, rules.Options{}, quietLogger)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Run(ctx, []source.Entry{{Path: "src", Category: types.CategoryDirectory}}, mapLoader(nil), 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_Empty(t *testing.T) {
	c := New(nil, rules.Options{}, quietLogger)
	results, err := c.Run(context.Background(), nil, mapLoader(nil), 0)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Equal(t, report.Totals{}, c.Totals())
}
