// Package graph implements the compiled justification DAG: nodes tagged
// with a model.VariableKind, a per-run status overlay, and adjacency in
// both directions (spec §3 CompiledJustification, §9 "Graph and typed
// nodes" design note — adjacency lists with reverse edges precomputed).
package graph

import "github.com/jd-lang/jd/internal/model"

// Status is a node's terminal evaluation outcome. The zero value, Unset,
// is never a terminal state outside of construction.
type Status int

const (
	Unset Status = iota
	Pass
	Fail
	Skip
)

func (s Status) String() string {
	switch s {
	case Pass:
		return "PASS"
	case Fail:
		return "FAIL"
	case Skip:
		return "SKIP"
	default:
		return "UNSET"
	}
}

// Node is one vertex of a compiled justification.
type Node struct {
	Name  string
	Kind  model.VariableKind
	Label string
}

// DAG is a compiled justification: an immutable set of nodes and edges
// shared across evaluation runs, plus a per-run Status overlay that is
// NOT part of the shared structure (spec §9 "Status overlay" design
// note) — callers obtain a fresh overlay via NewRun for each evaluation.
type DAG struct {
	Name  string // the justification class's name
	nodes map[string]*Node
	// order records the order in which nodes were added. The compiler
	// adds them sorted by name, so this is name order, not the order of
	// declaration in the JD source.
	order []string
	succ  map[string][]string
	pred  map[string][]string
}

// New creates an empty DAG for justification class name.
func New(name string) *DAG {
	return &DAG{
		Name:  name,
		nodes: make(map[string]*Node),
		succ:  make(map[string][]string),
		pred:  make(map[string][]string),
	}
}

// AddNode registers a node. A second AddNode with a name already present
// is ignored and the first node is kept (the compiler only calls this
// once per merged variable).
func (g *DAG) AddNode(n *Node) {
	if _, exists := g.nodes[n.Name]; exists {
		return
	}
	g.nodes[n.Name] = n
	g.order = append(g.order, n.Name)
}

// AddEdge records a directed left -> right edge. Both endpoints must
// already have been added via AddNode; the compiler enforces this before
// calling AddEdge (spec §4.E step 4).
func (g *DAG) AddEdge(left, right string) {
	g.succ[left] = append(g.succ[left], right)
	g.pred[right] = append(g.pred[right], left)
}

// Node looks up a node by name.
func (g *DAG) Node(name string) (*Node, bool) {
	n, ok := g.nodes[name]
	return n, ok
}

// Nodes returns every node name in the order the nodes were added.
func (g *DAG) Nodes() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Successors returns name's successors in the order their edges were added.
func (g *DAG) Successors(name string) []string { return g.succ[name] }

// Predecessors returns name's predecessors in the order their edges were added.
func (g *DAG) Predecessors(name string) []string { return g.pred[name] }

// InDegree and OutDegree are conveniences over Predecessors/Successors.
func (g *DAG) InDegree(name string) int  { return len(g.pred[name]) }
func (g *DAG) OutDegree(name string) int { return len(g.succ[name]) }

// Run is a per-evaluation-run status overlay over a shared, read-only
// DAG (spec §9 "Status overlay"). Multiple Runs may exist concurrently
// over the same DAG.
type Run struct {
	dag      *DAG
	statuses map[string]Status
}

// NewRun creates a fresh overlay with every node Unset.
func (g *DAG) NewRun() *Run {
	r := &Run{dag: g, statuses: make(map[string]Status, len(g.nodes))}
	for name := range g.nodes {
		r.statuses[name] = Unset
	}
	return r
}

func (r *Run) DAG() *DAG { return r.dag }

func (r *Run) Status(name string) Status { return r.statuses[name] }

func (r *Run) SetStatus(name string, s Status) { r.statuses[name] = s }
