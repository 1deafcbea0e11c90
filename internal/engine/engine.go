// Package engine ties the loader, compiler, and evaluator together into
// the single entry point described by spec §2's control flow:
// "load → parse → transform → model; compile(model) → {diagrams};
// for each selected diagram: evaluate(diagram, runtime.clone())".
// It is the Go counterpart of the original Python implementation's
// JPipe/JPipeEngine (_examples/original_source/jpipe_runner/jpipe.py).
package engine

import (
	"path/filepath"
	"sort"

	"github.com/jd-lang/jd/internal/compiler"
	"github.com/jd-lang/jd/internal/evaluator"
	"github.com/jd-lang/jd/internal/graph"
	"github.com/jd-lang/jd/internal/jderr"
	"github.com/jd-lang/jd/internal/loader"
	"github.com/jd-lang/jd/internal/model"
	"github.com/jd-lang/jd/internal/runtime"
)

// Engine owns a loaded model and its compiled diagrams.
type Engine struct {
	Model     *model.Model
	Diagrams  map[string]*graph.DAG // compiled justification classes, by name
}

// New loads jdFile (and everything it transitively loads) and compiles
// every justification class it defines.
func New(jdFile string) (*Engine, error) {
	l := loader.New(nil)
	m, err := l.LoadFile(jdFile)
	if err != nil {
		return nil, err
	}
	return FromModel(m)
}

// FromModel compiles every justification class of an already-loaded
// model — used by the JSON ingestion entry point (spec §4.D) and by
// tests that build a Model directly.
func FromModel(m *model.Model) (*Engine, error) {
	diagrams, err := compiler.CompileAll(m)
	if err != nil {
		return nil, err
	}
	return &Engine{Model: m, Diagrams: diagrams}, nil
}

// DiagramNames returns every compiled diagram's name, sorted.
func (e *Engine) DiagramNames() []string {
	names := make([]string, 0, len(e.Diagrams))
	for n := range e.Diagrams {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Select returns the names of the diagrams matching the given glob
// pattern (spec §6: `--diagram|-d PATTERN`, default `*`).
func (e *Engine) Select(pattern string) ([]string, error) {
	var out []string
	for _, name := range e.DiagramNames() {
		ok, err := filepath.Match(pattern, name)
		if err != nil {
			return nil, jderr.Wrap(jderr.Syntax, err, "invalid diagram pattern "+pattern)
		}
		if ok {
			out = append(out, name)
		}
	}
	return out, nil
}

// Justify evaluates the single named diagram against its own clone of
// rt, per spec §2 ("evaluate(diagram, runtime.clone())") and §5
// (each diagram run gets an isolated runtime clone).
func (e *Engine) Justify(name string, rt *runtime.Runtime, dryRun bool) (*evaluator.Result, error) {
	dag, ok := e.Diagrams[name]
	if !ok {
		return nil, jderr.Newf(jderr.NotFound, "no compiled diagram named %q", name)
	}
	clone, err := rt.Clone()
	if err != nil {
		return nil, err
	}
	return evaluator.Evaluate(dag, clone, dryRun)
}
