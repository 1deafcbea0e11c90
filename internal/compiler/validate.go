package compiler

import (
	"github.com/jd-lang/jd/internal/graph"
	"github.com/jd-lang/jd/internal/jderr"
	"github.com/jd-lang/jd/internal/model"
)

// Validate checks dag against the node-type calculus of spec §4.E,
// returning the first violation found as an INVALID_JUSTIFICATION error.
func Validate(dag *graph.DAG) error {
	nodes := dag.Nodes()

	var conclusion string
	conclusionCount := 0
	for _, name := range nodes {
		n, _ := dag.Node(name)
		if n.Kind == model.Support {
			return jderr.Newf(jderr.InvalidJustification,
				"%s: node %q has abstract kind @support in a compiled justification", dag.Name, name)
		}
		if n.Kind == model.Conclusion {
			conclusionCount++
			conclusion = name
		}
	}
	if conclusionCount != 1 {
		return jderr.Newf(jderr.InvalidJustification,
			"%s: expected exactly one conclusion node, found %d", dag.Name, conclusionCount)
	}

	if cyc, ok := findCycle(dag); ok {
		return jderr.Newf(jderr.InvalidJustification, "%s: cycle detected: %v", dag.Name, cyc)
	}

	reachesConclusion := ancestorsOf(dag, conclusion)

	for _, name := range nodes {
		n, _ := dag.Node(name)
		switch n.Kind {
		case model.Evidence:
			if dag.InDegree(name) != 0 {
				return jderr.Newf(jderr.InvalidJustification,
					"%s: evidence %q must have in-degree 0, has %d", dag.Name, name, dag.InDegree(name))
			}
			if !reachesConclusion[name] {
				return jderr.Newf(jderr.InvalidJustification,
					"%s: evidence %q has no path to the conclusion", dag.Name, name)
			}
			if err := requireSuccessorKind(dag, name, model.Strategy, "evidence"); err != nil {
				return err
			}
		case model.Strategy:
			if dag.InDegree(name) < 1 {
				return jderr.Newf(jderr.InvalidJustification,
					"%s: strategy %q must have in-degree >= 1, has 0", dag.Name, name)
			}
			if dag.OutDegree(name) != 1 {
				return jderr.Newf(jderr.InvalidJustification,
					"%s: strategy %q must have exactly one successor, has %d", dag.Name, name, dag.OutDegree(name))
			}
			succ := dag.Successors(name)[0]
			sn, _ := dag.Node(succ)
			if sn.Kind != model.SubConclusion && sn.Kind != model.Conclusion {
				return jderr.Newf(jderr.InvalidJustification,
					"%s: strategy %q's successor %q must be a sub-conclusion or conclusion, is %s",
					dag.Name, name, succ, sn.Kind)
			}
		case model.SubConclusion:
			if dag.InDegree(name) < 1 {
				return jderr.Newf(jderr.InvalidJustification,
					"%s: sub-conclusion %q must have in-degree >= 1, has 0", dag.Name, name)
			}
			if !reachesConclusion[name] {
				return jderr.Newf(jderr.InvalidJustification,
					"%s: sub-conclusion %q has no path to the conclusion", dag.Name, name)
			}
			for _, succ := range dag.Successors(name) {
				sn, _ := dag.Node(succ)
				if sn.Kind != model.Strategy && sn.Kind != model.Conclusion {
					return jderr.Newf(jderr.InvalidJustification,
						"%s: sub-conclusion %q supports %q, which must be a strategy or conclusion but is %s",
						dag.Name, name, succ, sn.Kind)
				}
			}
		case model.Conclusion:
			// No successor constraints (spec §4.E).
		}
	}

	return nil
}

func requireSuccessorKind(dag *graph.DAG, name string, want model.VariableKind, roleName string) error {
	for _, succ := range dag.Successors(name) {
		sn, _ := dag.Node(succ)
		if sn.Kind != want {
			return jderr.Newf(jderr.InvalidJustification,
				"%s: %s %q supports %q, which must be a %s but is %s",
				dag.Name, roleName, name, succ, want, sn.Kind)
		}
	}
	return nil
}

// findCycle runs a DFS looking for a back edge, returning the cycle's
// node names if one is found.
func findCycle(dag *graph.DAG) ([]string, bool) {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int)
	var stack []string

	var visit func(name string) ([]string, bool)
	visit = func(name string) ([]string, bool) {
		color[name] = gray
		stack = append(stack, name)
		for _, succ := range dag.Successors(name) {
			switch color[succ] {
			case gray:
				// Found a back edge; extract the cycle from the stack.
				start := 0
				for i, n := range stack {
					if n == succ {
						start = i
						break
					}
				}
				cyc := append([]string{}, stack[start:]...)
				cyc = append(cyc, succ)
				return cyc, true
			case white:
				if cyc, found := visit(succ); found {
					return cyc, true
				}
			}
		}
		stack = stack[:len(stack)-1]
		color[name] = black
		return nil, false
	}

	for _, name := range dag.Nodes() {
		if color[name] == white {
			if cyc, found := visit(name); found {
				return cyc, true
			}
		}
	}
	return nil, false
}

// ancestorsOf returns the set of nodes (including target itself) from
// which target is reachable via forward (successor) edges, computed by
// walking predecessor edges backward from target.
func ancestorsOf(dag *graph.DAG, target string) map[string]bool {
	seen := map[string]bool{target: true}
	queue := []string{target}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, pred := range dag.Predecessors(n) {
			if !seen[pred] {
				seen[pred] = true
				queue = append(queue, pred)
			}
		}
	}
	return seen
}
