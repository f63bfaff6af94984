// Package report counts violations by severity and renders them.
package report

import (
	"sync/atomic"

	"github.com/steveyegge/cnorm/internal/types"
)

// Totals is a snapshot of the per-severity counters.
type Totals struct {
	Major int64 `json:"major"`
	Minor int64 `json:"minor"`
	Info  int64 `json:"info"`
}

// Total returns the number of violations across all severities.
func (t Totals) Total() int64 {
	return t.Major + t.Minor + t.Info
}

// Aggregator counts violations by severity. It is safe for concurrent use;
// the counters only ever grow.
type Aggregator struct {
	major atomic.Int64
	minor atomic.Int64
	info  atomic.Int64
}

// Add counts each violation under its severity. Violations with an unknown
// severity are not counted.
func (a *Aggregator) Add(violations ...types.Violation) {
	for _, v := range violations {
		switch v.Severity {
		case types.SeverityMajor:
			a.major.Add(1)
		case types.SeverityMinor:
			a.minor.Add(1)
		case types.SeverityInfo:
			a.info.Add(1)
		}
	}
}

// Totals returns the current counts.
func (a *Aggregator) Totals() Totals {
	return Totals{
		Major: a.major.Load(),
		Minor: a.minor.Load(),
		Info:  a.info.Load(),
	}
}
