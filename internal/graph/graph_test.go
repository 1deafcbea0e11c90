package graph

import (
	"testing"

	"github.com/jd-lang/jd/internal/model"
)

func TestAddNodeIsIdempotent(t *testing.T) {
	g := New("J")
	g.AddNode(&Node{Name: "e", Kind: model.Evidence, Label: "E"})
	g.AddNode(&Node{Name: "e", Kind: model.Evidence, Label: "duplicate, ignored"})
	if len(g.Nodes()) != 1 {
		t.Fatalf("got %d nodes, want 1", len(g.Nodes()))
	}
	n, _ := g.Node("e")
	if n.Label != "E" {
		t.Errorf("label = %q, want the first AddNode's label", n.Label)
	}
}

func TestEdgesAndDegrees(t *testing.T) {
	g := New("J")
	g.AddNode(&Node{Name: "e", Kind: model.Evidence})
	g.AddNode(&Node{Name: "s", Kind: model.Strategy})
	g.AddNode(&Node{Name: "c", Kind: model.Conclusion})
	g.AddEdge("e", "s")
	g.AddEdge("s", "c")

	if g.InDegree("e") != 0 || g.OutDegree("e") != 1 {
		t.Errorf("e degrees = in %d out %d", g.InDegree("e"), g.OutDegree("e"))
	}
	if g.InDegree("s") != 1 || g.OutDegree("s") != 1 {
		t.Errorf("s degrees = in %d out %d", g.InDegree("s"), g.OutDegree("s"))
	}
	if got := g.Successors("e"); len(got) != 1 || got[0] != "s" {
		t.Errorf("successors(e) = %v", got)
	}
	if got := g.Predecessors("c"); len(got) != 1 || got[0] != "s" {
		t.Errorf("predecessors(c) = %v", got)
	}
}

func TestRunOverlayIsIndependentOfDAG(t *testing.T) {
	g := New("J")
	g.AddNode(&Node{Name: "e", Kind: model.Evidence})

	run1 := g.NewRun()
	run1.SetStatus("e", Pass)

	run2 := g.NewRun()
	if run2.Status("e") != Unset {
		t.Errorf("run2 status = %v, want Unset (fresh overlay)", run2.Status("e"))
	}
	if run1.Status("e") != Pass {
		t.Errorf("run1 status = %v, want Pass", run1.Status("e"))
	}
}

func TestStatusString(t *testing.T) {
	cases := map[Status]string{Unset: "UNSET", Pass: "PASS", Fail: "FAIL", Skip: "SKIP"}
	for s, want := range cases {
		if got := s.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", s, got, want)
		}
	}
}
