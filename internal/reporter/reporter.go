// Package reporter specifies the boundary a consumer sits behind to
// receive the evaluator's per-node event stream and per-diagram tallies
// (spec §2 row H — "specified as a boundary only"). TextReporter is the
// one concrete implementation this module ships, since an interface with
// zero implementations can't be exercised by the CLI or by tests.
package reporter

import (
	"fmt"
	"io"

	"github.com/jd-lang/jd/internal/evaluator"
)

// Reporter consumes one diagram's evaluation result. Implementations may
// render to a terminal, a file, a CI annotation stream, or a rendering
// service — all out of scope for the core (spec §1).
type Reporter interface {
	Report(res *evaluator.Result) error
}

// TextReporter writes one line per node event and a trailing summary
// line, with no ANSI escapes or box-drawing characters — "ASCII banner
// and terminal formatting" is explicitly out of scope (spec §1).
type TextReporter struct {
	W io.Writer
}

func NewTextReporter(w io.Writer) *TextReporter {
	return &TextReporter{W: w}
}

func (r *TextReporter) Report(res *evaluator.Result) error {
	for _, ev := range res.Events {
		if ev.Err != nil {
			if _, err := fmt.Fprintf(r.W, "%s\t%s\t%s\t%s\t%v\n", res.Diagram, ev.Name, ev.Status, ev.Kind, ev.Err); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(r.W, "%s\t%s\t%s\t%s\n", res.Diagram, ev.Name, ev.Status, ev.Kind); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(r.W, "%s\tsummary\tpass=%d fail=%d skip=%d\n",
		res.Diagram, res.Tally.Pass, res.Tally.Fail, res.Tally.Skip)
	return err
}
