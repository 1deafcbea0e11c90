// Package compiler materialises each `justification` class of a loaded
// model into a typed graph.DAG, optionally expanded by a referenced
// `pattern` class, and validates it against the node-type calculus of
// spec §4.E.
package compiler

import (
	"sort"

	"github.com/jd-lang/jd/internal/graph"
	"github.com/jd-lang/jd/internal/jderr"
	"github.com/jd-lang/jd/internal/model"
)

// CompileAll compiles every `justification` class in m into a DAG, keyed
// by class name. `pattern`/`composition` classes are stored but not
// compiled (spec §4.E).
func CompileAll(m *model.Model) (map[string]*graph.DAG, error) {
	out := make(map[string]*graph.DAG)
	// Deterministic iteration order for reproducible error ordering.
	names := make([]string, 0, len(m.ClassDefs))
	for name, cls := range m.ClassDefs {
		if cls.Kind == model.Justification {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	for _, name := range names {
		dag, err := Compile(m, name)
		if err != nil {
			return nil, err
		}
		out[name] = dag
	}
	return out, nil
}

// Compile compiles the single justification class named name.
func Compile(m *model.Model, name string) (*graph.DAG, error) {
	cls, ok := m.ClassDefs[name]
	if !ok {
		return nil, jderr.Newf(jderr.NotFound, "no such class %q", name)
	}
	if cls.Kind != model.Justification {
		return nil, jderr.Newf(jderr.InvalidJustification, "class %q is not a justification", name)
	}

	variables, supports, err := mergedBody(m, cls)
	if err != nil {
		return nil, err
	}

	dag := graph.New(name)
	for _, v := range variablesInOrder(variables) {
		dag.AddNode(&graph.Node{Name: v.Name, Kind: v.Kind, Label: v.Description})
	}
	for _, s := range supports {
		if _, ok := variables[s.Left]; !ok {
			return nil, jderr.Newf(jderr.InvalidJustification,
				"justification %q: support references unknown variable %q", name, s.Left)
		}
		if _, ok := variables[s.Right]; !ok {
			return nil, jderr.Newf(jderr.InvalidJustification,
				"justification %q: support references unknown variable %q", name, s.Right)
		}
		dag.AddEdge(s.Left, s.Right)
	}

	if err := Validate(dag); err != nil {
		return nil, err
	}

	return dag, nil
}

// mergedBody deep-copies cls's own variables/supports and, if cls has a
// pattern, merges in the pattern's supports and non-SUPPORT variables
// (spec §4.E steps 1-2).
func mergedBody(m *model.Model, cls *model.Class) (map[string]*model.Variable, []model.Support, error) {
	variables := make(map[string]*model.Variable)
	var supports []model.Support

	if cls.Body.Justification == nil {
		return nil, nil, jderr.Newf(jderr.InvalidJustification, "justification %q has no body", cls.Name)
	}
	for n, v := range cls.Body.Justification.Variables {
		cp := *v
		variables[n] = &cp
	}
	supports = append(supports, cls.Body.Justification.SupportList()...)

	if cls.Pattern != "" {
		pat, ok := m.ClassDefs[cls.Pattern]
		if !ok || pat.Kind != model.Pattern {
			return nil, nil, jderr.Newf(jderr.InvalidJustification,
				"justification %q implements unknown pattern %q", cls.Name, cls.Pattern)
		}
		if pat.Body.Justification == nil {
			return nil, nil, jderr.Newf(jderr.InvalidJustification, "pattern %q has no body", cls.Pattern)
		}

		// The @support placeholder names the pattern's abstract anchor;
		// it is never realised as a node (spec §4.E step 2), so any edge
		// touching it is dropped along with the variable itself, rather
		// than surfacing as "support references unknown variable" at step
		// 4 — the realising justification's own evidence/sub-conclusion
		// supplants the anchor's position in the graph (spec §4.E worked
		// example: `sup supports s` does not survive expansion).
		placeholders := make(map[string]bool)
		for n, v := range pat.Body.Justification.Variables {
			if v.Kind == model.Support {
				placeholders[n] = true
				continue
			}
			if _, exists := variables[n]; !exists {
				cp := *v
				variables[n] = &cp
			}
		}
		for _, s := range pat.Body.Justification.SupportList() {
			if placeholders[s.Left] || placeholders[s.Right] {
				continue
			}
			supports = append(supports, s)
		}
	}

	return variables, dedupSupports(supports), nil
}

func dedupSupports(in []model.Support) []model.Support {
	seen := make(map[model.Support]bool, len(in))
	out := make([]model.Support, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Left != out[j].Left {
			return out[i].Left < out[j].Left
		}
		return out[i].Right < out[j].Right
	})
	return out
}

func variablesInOrder(variables map[string]*model.Variable) []*model.Variable {
	names := make([]string, 0, len(variables))
	for n := range variables {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]*model.Variable, len(names))
	for i, n := range names {
		out[i] = variables[n]
	}
	return out
}
