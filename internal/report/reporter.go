package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/goccy/go-json"

	"github.com/steveyegge/cnorm/internal/types"
)

// Format selects how a Reporter renders its output.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// IsValid reports whether the format is one New understands.
func (f Format) IsValid() bool {
	return f == FormatText || f == FormatJSON
}

// Reporter renders violations as they are produced and a summary at the end.
type Reporter interface {
	// Violations renders one file's violations, in order.
	Violations(violations []types.Violation) error

	// Summary renders the final totals.
	Summary(totals Totals) error
}

// New returns the reporter for the given format.
func New(w io.Writer, format Format, colorless bool) (Reporter, error) {
	switch format {
	case FormatText, "":
		return NewTextReporter(w, colorless), nil
	case FormatJSON:
		return NewJSONReporter(w), nil
	default:
		return nil, fmt.Errorf("unknown report format %q (want %q or %q)", format, FormatText, FormatJSON)
	}
}

// TextReporter prints one "[path:line] CODE - message" line per violation
// and a "Major : N" style summary. The location is colored by severity.
type TextReporter struct {
	w     io.Writer
	bold  *color.Color
	major *color.Color
	minor *color.Color
	info  *color.Color
}

// NewTextReporter creates a TextReporter. With colorless set, no escape
// sequences are written whatever the terminal supports.
func NewTextReporter(w io.Writer, colorless bool) *TextReporter {
	r := &TextReporter{
		w:     w,
		bold:  color.New(color.Bold),
		major: color.New(color.FgRed, color.Bold),
		minor: color.New(color.FgGreen, color.Bold),
		info:  color.New(color.FgHiBlack, color.Bold),
	}
	if colorless {
		for _, c := range []*color.Color{r.bold, r.major, r.minor, r.info} {
			c.DisableColor()
		}
	}
	return r
}

func (r *TextReporter) severityColor(s types.Severity) *color.Color {
	switch s {
	case types.SeverityMajor:
		return r.major
	case types.SeverityMinor:
		return r.minor
	default:
		return r.info
	}
}

// Violations implements Reporter.
func (r *TextReporter) Violations(violations []types.Violation) error {
	for _, v := range violations {
		location := r.severityColor(v.Severity).Sprint(v.Location())
		detail := r.bold.Sprintf(" %s - %s", v.Code, v.Message)
		if _, err := fmt.Fprintln(r.w, location+detail); err != nil {
			return fmt.Errorf("failed to write violation: %w", err)
		}
	}
	return nil
}

// Summary implements Reporter.
func (r *TextReporter) Summary(totals Totals) error {
	_, err := fmt.Fprintf(r.w, "\nMajor : %d\nMinor : %d\nInfo : %d\n", totals.Major, totals.Minor, totals.Info)
	if err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

// JSONReporter writes one JSON object per line: each violation, then a final
// summary object.
type JSONReporter struct {
	w io.Writer
}

// NewJSONReporter creates a JSONReporter.
func NewJSONReporter(w io.Writer) *JSONReporter {
	return &JSONReporter{w: w}
}

type summaryRecord struct {
	Summary Totals `json:"summary"`
}

func (r *JSONReporter) emit(records ...any) error {
	w := bufio.NewWriter(r.w)
	for _, rec := range records {
		b, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to encode record: %w", err)
		}
		if _, err := w.Write(b); err != nil {
			return err
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return w.Flush()
}

// Violations implements Reporter.
func (r *JSONReporter) Violations(violations []types.Violation) error {
	records := make([]any, len(violations))
	for i, v := range violations {
		records[i] = v
	}
	return r.emit(records...)
}

// Summary implements Reporter.
func (r *JSONReporter) Summary(totals Totals) error {
	return r.emit(summaryRecord{Summary: totals})
}
