// Package checker runs the rulebook over walked entries: it picks the rules
// for each file's category, runs them in a fixed order and folds the
// violations into the severity counters.
package checker

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/steveyegge/cnorm/internal/report"
	"github.com/steveyegge/cnorm/internal/rules"
	"github.com/steveyegge/cnorm/internal/source"
	"github.com/steveyegge/cnorm/internal/types"
)

// Outcome is the final state of one checked entry.
type Outcome string

const (
	// OutcomeSkipped means no rule ran: the entry was suppressed or could
	// not be read.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeReported means at least one violation was found.
	OutcomeReported Outcome = "reported"
	// OutcomeClean means every rule ran and none fired.
	OutcomeClean Outcome = "clean"
)

// Result is what checking one entry produced.
type Result struct {
	Path       string
	Category   types.Category
	Outcome    Outcome
	Violations []types.Violation

	// Err is set when the entry could not be loaded.
	Err error
}

// Checker applies a Registry's rules with fixed Options. A Checker is safe
// for concurrent use.
type Checker struct {
	registry *Registry
	opts     rules.Options
	totals   *report.Aggregator
	logger   *slog.Logger
}

// New creates a Checker. A nil registry means DefaultRegistry and a nil
// logger means slog.Default.
func New(registry *Registry, opts rules.Options, logger *slog.Logger) *Checker {
	if registry == nil {
		registry = DefaultRegistry()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Checker{
		registry: registry,
		opts:     opts,
		totals:   &report.Aggregator{},
		logger:   logger,
	}
}

// Totals returns the severity counts of everything checked so far.
func (c *Checker) Totals() report.Totals {
	return c.totals.Totals()
}

// Check runs every rule registered for the file's category, in order, and
// counts the violations.
func (c *Checker) Check(f *types.SourceFile) Result {
	res := Result{Path: f.Path, Category: f.Category}

	if f.Category == types.CategoryUnrecognized && c.opts.IgnoreFiles {
		res.Outcome = OutcomeSkipped
		return res
	}

	for _, k := range c.registry.RulesFor(f.Category) {
		res.Violations = append(res.Violations, k.Check(f, c.opts)...)
	}
	c.totals.Add(res.Violations...)

	res.Outcome = OutcomeClean
	if len(res.Violations) > 0 {
		res.Outcome = OutcomeReported
	}
	return res
}

func (c *Checker) checkEntry(e source.Entry, load source.Loader) Result {
	var text string
	if e.Category.HasContent() {
		var err error
		text, err = load(e.Path)
		if err != nil {
			c.logger.Warn("Skipping unreadable file", "path", e.Path, "error", err)
			return Result{Path: e.Path, Category: e.Category, Outcome: OutcomeSkipped, Err: err}
		}
	}

	res := c.Check(types.NewSourceFile(e.Path, e.Category, text))
	c.logger.Debug("Checked file",
		"path", e.Path,
		"category", e.Category,
		"outcome", res.Outcome,
		"violations", len(res.Violations))
	return res
}

// Run checks every entry with at most jobs files in flight. Results come back
// in entry order whatever order the workers finish in. The only error is
// ctx's, when it is cancelled before every entry was started.
func (c *Checker) Run(ctx context.Context, entries []source.Entry, load source.Loader, jobs int) ([]Result, error) {
	if jobs < 1 {
		jobs = 1
	}

	results := make([]Result, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, e := range entries {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = c.checkEntry(e, load)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
