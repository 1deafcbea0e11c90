package compiler

import (
	"testing"

	"github.com/jd-lang/jd/internal/jderr"
	"github.com/jd-lang/jd/internal/model"
	"github.com/jd-lang/jd/internal/parser"
)

func mustParse(t *testing.T, src string) *model.Model {
	t.Helper()
	m, err := parser.ParseString("test.jd", src)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	return m
}

// TestPatternExpansion covers spec §8 scenario S4: a pattern's @support
// placeholder is dropped, its other variables and supports are merged in.
func TestPatternExpansion(t *testing.T) {
	src := `pattern P { @support sup : "x" strategy s : "S" sub-conclusion sc : "SC" conclusion c : "C" sup supports s s supports sc sc supports c }
justification J implements P { evidence e : "E" e supports s }`
	m := mustParse(t, src)

	dag, err := Compile(m, "J")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	nodes := dag.Nodes()
	if len(nodes) != 4 {
		t.Fatalf("got %d nodes, want 4 (no @support): %v", len(nodes), nodes)
	}
	for _, n := range nodes {
		if n == "sup" {
			t.Fatal("@support placeholder must not survive into the compiled DAG")
		}
	}

	wantEdges := map[[2]string]bool{{"e", "s"}: true, {"s", "sc"}: true, {"sc", "c"}: true}
	gotEdges := 0
	for _, from := range nodes {
		for _, to := range dag.Successors(from) {
			if !wantEdges[[2]string{from, to}] {
				t.Errorf("unexpected edge %s -> %s", from, to)
			}
			gotEdges++
		}
	}
	if gotEdges != 3 {
		t.Errorf("got %d edges, want 3", gotEdges)
	}

	if err := Validate(dag); err != nil {
		t.Errorf("expanded diagram should validate: %v", err)
	}
}

func TestMissingConclusionIsRejected(t *testing.T) {
	src := `justification J { evidence e : "E" strategy s : "S" e supports s }`
	m := mustParse(t, src)
	_, err := Compile(m, "J")
	if jderr.KindOf(err) != jderr.InvalidJustification {
		t.Fatalf("error kind = %v, want INVALID_JUSTIFICATION", jderr.KindOf(err))
	}
}

func TestCycleIsRejected(t *testing.T) {
	src := `justification J {
		evidence e : "E"
		strategy s1 : "S1"
		strategy s2 : "S2"
		sub-conclusion sc : "SC"
		conclusion c : "C"
		e supports s1
		s1 supports sc
		sc supports s2
		s2 supports sc
	}`
	m := mustParse(t, src)
	_, err := Compile(m, "J")
	if jderr.KindOf(err) != jderr.InvalidJustification {
		t.Fatalf("error kind = %v, want INVALID_JUSTIFICATION", jderr.KindOf(err))
	}
}

func TestEvidenceMustReachConclusion(t *testing.T) {
	src := `justification J {
		evidence e1 : "E1"
		evidence e2 : "E2"
		strategy s : "S"
		conclusion c : "C"
		e1 supports s
		s supports c
	}`
	// e2 is a dangling evidence node: never supports anything.
	m := mustParse(t, src)
	_, err := Compile(m, "J")
	if jderr.KindOf(err) != jderr.InvalidJustification {
		t.Fatalf("error kind = %v, want INVALID_JUSTIFICATION", jderr.KindOf(err))
	}
}

func TestStrategyMustHaveExactlyOneSuccessor(t *testing.T) {
	src := `justification J {
		evidence e : "E"
		strategy s : "S"
		sub-conclusion sc1 : "SC1"
		sub-conclusion sc2 : "SC2"
		conclusion c : "C"
		e supports s
		s supports sc1
		s supports sc2
		sc1 supports c
		sc2 supports c
	}`
	m := mustParse(t, src)
	_, err := Compile(m, "J")
	if jderr.KindOf(err) != jderr.InvalidJustification {
		t.Fatalf("error kind = %v, want INVALID_JUSTIFICATION", jderr.KindOf(err))
	}
}

func TestUnknownPatternIsRejected(t *testing.T) {
	src := `justification J implements NoSuchPattern { evidence e : "E" }`
	m := mustParse(t, src)
	_, err := Compile(m, "J")
	if jderr.KindOf(err) != jderr.InvalidJustification {
		t.Fatalf("error kind = %v, want INVALID_JUSTIFICATION", jderr.KindOf(err))
	}
}

func TestValidJustificationCompiles(t *testing.T) {
	src := `justification J {
		evidence e1 : "Check PEP8 coding standard"
		evidence e2 : "Verify tests pass"
		strategy s : "Assess quality gates"
		sub-conclusion sc : "Quality OK"
		conclusion c : "Ready to ship"
		e1 supports s
		e2 supports s
		s supports sc
		sc supports c
	}`
	m := mustParse(t, src)
	dag, err := Compile(m, "J")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(dag.Nodes()) != 5 {
		t.Errorf("got %d nodes, want 5", len(dag.Nodes()))
	}
}
