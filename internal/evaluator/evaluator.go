// Package evaluator walks a compiled justification in predecessor-before-
// successor order, binds each node to a host procedure by sanitised
// name, runs it, and folds the results into per-node PASS/FAIL/SKIP
// verdicts with strict FAIL→SKIP propagation (spec §4.G).
package evaluator

import (
	"github.com/google/uuid"

	"github.com/jd-lang/jd/internal/graph"
	"github.com/jd-lang/jd/internal/jderr"
	"github.com/jd-lang/jd/internal/model"
	"github.com/jd-lang/jd/internal/runtime"
)

// Event is emitted once per node processed during an evaluation run
// (spec §4.G "emit a sequence of node events").
type Event struct {
	Diagram string
	Name    string
	Kind    model.VariableKind
	Label   string
	Status  graph.Status
	// Err is set when Status is Fail and the node's procedure call
	// raised or returned a falsy value (spec §4.G).
	Err error
}

// Tally summarises one diagram's event stream for the CLI's exit-code
// computation (spec §6).
type Tally struct {
	Pass, Fail, Skip int
}

func (t Tally) FullyPassed() bool { return t.Fail == 0 && t.Skip == 0 }

// Result is the outcome of one Evaluate call.
type Result struct {
	RunID   string
	Diagram string
	Events  []Event
	Tally   Tally
}

// Evaluate runs dag to completion against rt, emitting one Event per
// node in predecessor-complete BFS order (spec §4.G). dryRun, when true,
// forces every node's status to SKIP (spec §8 property 4).
func Evaluate(dag *graph.DAG, rt *runtime.Runtime, dryRun bool) (*Result, error) {
	run := dag.NewRun()

	order, err := predecessorCompleteOrder(dag)
	if err != nil {
		return nil, err
	}

	res := &Result{RunID: uuid.NewString(), Diagram: dag.Name}

	for _, name := range order {
		node, _ := dag.Node(name)
		ev := processNode(dag, run, node, rt, dryRun)
		res.Events = append(res.Events, ev)
		switch ev.Status {
		case graph.Pass:
			res.Tally.Pass++
		case graph.Fail:
			res.Tally.Fail++
		case graph.Skip:
			res.Tally.Skip++
		}
	}

	return res, nil
}

// predecessorCompleteOrder computes the layered BFS order of spec §4.G:
// the initial frontier is every in-degree-0 node in dag.Nodes() order
// (name order for compiler-built DAGs, not JD source order);
// a node is enqueued only once every one of its predecessors has been
// visited. The compiler's validation guarantees this visits every node
// exactly once.
func predecessorCompleteOrder(dag *graph.DAG) ([]string, error) {
	nodes := dag.Nodes()

	visited := make(map[string]bool, len(nodes))
	var queue []string
	for _, name := range nodes {
		if dag.InDegree(name) == 0 {
			queue = append(queue, name)
		}
	}

	var order []string
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if visited[name] {
			continue
		}
		visited[name] = true
		order = append(order, name)

		for _, succ := range dag.Successors(name) {
			if visited[succ] {
				continue
			}
			ready := true
			for _, pred := range dag.Predecessors(succ) {
				if !visited[pred] {
					ready = false
					break
				}
			}
			if ready {
				queue = append(queue, succ)
			}
		}
	}

	if len(order) != len(nodes) {
		return nil, jderr.Newf(jderr.InvalidJustification,
			"%s: %d of %d nodes unreachable by predecessor-complete traversal", dag.Name, len(nodes)-len(order), len(nodes))
	}

	return order, nil
}

func processNode(dag *graph.DAG, run *graph.Run, node *graph.Node, rt *runtime.Runtime, dryRun bool) Event {
	ev := Event{Diagram: dag.Name, Name: node.Name, Kind: node.Kind, Label: node.Label}

	anyPredNotPass := false
	for _, pred := range dag.Predecessors(node.Name) {
		if run.Status(pred) != graph.Pass {
			anyPredNotPass = true
			break
		}
	}

	if dryRun || anyPredNotPass {
		run.SetStatus(node.Name, graph.Skip)
		ev.Status = graph.Skip
		return ev
	}

	switch node.Kind {
	case model.Evidence, model.Strategy:
		fnName := Sanitise(node.Label)
		result, err := rt.Call(fnName)
		if err != nil {
			run.SetStatus(node.Name, graph.Fail)
			ev.Status = graph.Fail
			ev.Err = err
			return ev
		}
		if !runtime.Truthy(result) {
			run.SetStatus(node.Name, graph.Fail)
			ev.Status = graph.Fail
			ev.Err = jderr.Newf(jderr.Function, "%s: returns non-true result: %s", fnName, runtime.FormatResult(result))
			return ev
		}
		run.SetStatus(node.Name, graph.Pass)
		ev.Status = graph.Pass
		return ev

	default: // SubConclusion, Conclusion
		run.SetStatus(node.Name, graph.Pass)
		ev.Status = graph.Pass
		return ev
	}
}
