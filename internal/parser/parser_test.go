package parser

import (
	"testing"

	"github.com/jd-lang/jd/internal/ast"
	"github.com/jd-lang/jd/internal/lexer"
)

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	l := lexer.New("test.jd", src)
	p := New("test.jd", l)
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	return prog
}

func TestParseLoadStmt(t *testing.T) {
	prog := parseProgram(t, `load "other.jd";`)
	if len(prog.Entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(prog.Entries))
	}
	ld, ok := prog.Entries[0].(*ast.LoadStmt)
	if !ok {
		t.Fatalf("entry 0 is %T, want *ast.LoadStmt", prog.Entries[0])
	}
	if ld.Path != "other.jd" {
		t.Errorf("path = %q, want other.jd", ld.Path)
	}
}

func TestParseJustificationWithImplements(t *testing.T) {
	src := `justification Name implements PatternName {
    evidence e1 : "Check PEP8 coding standard"
    e1 supports s1
}`
	prog := parseProgram(t, src)
	cd, ok := prog.Entries[0].(*ast.ClassDef)
	if !ok {
		t.Fatalf("entry 0 is %T, want *ast.ClassDef", prog.Entries[0])
	}
	if cd.Implements != "PatternName" {
		t.Errorf("implements = %q, want PatternName", cd.Implements)
	}
	if len(cd.Body.Variables) != 1 || len(cd.Body.Supports) != 1 {
		t.Fatalf("body = %+v", cd.Body)
	}
}

func TestImplementsOnNonJustificationIsSyntaxError(t *testing.T) {
	src := `pattern P implements Q { @support p : "x" }`
	l := lexer.New("test.jd", src)
	p := New("test.jd", l)
	p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatal("expected a syntax error for implements on a pattern class")
	}
}

func TestCompositionBodyIsOpaque(t *testing.T) {
	src := `composition Name {
    NotebookQuality
    SlidesReadyToShare
}`
	prog := parseProgram(t, src)
	cd := prog.Entries[0].(*ast.ClassDef)
	if len(cd.Body.Compositions) != 2 {
		t.Fatalf("got %d composition entries, want 2", len(cd.Body.Compositions))
	}
	if cd.Body.Compositions[0].Raw != "NotebookQuality" {
		t.Errorf("entry 0 = %q", cd.Body.Compositions[0].Raw)
	}
}

func TestPatternWithSupportPlaceholder(t *testing.T) {
	src := `pattern PatternName { @support p : "placeholder" strategy s : "S" s supports c }`
	prog := parseProgram(t, src)
	cd := prog.Entries[0].(*ast.ClassDef)
	if len(cd.Body.Variables) != 2 {
		t.Fatalf("got %d variables, want 2", len(cd.Body.Variables))
	}
	if cd.Body.Variables[0].VarType != "@support" {
		t.Errorf("first variable type = %q", cd.Body.Variables[0].VarType)
	}
}

func TestSyntaxErrorRecoveryContinuesParsing(t *testing.T) {
	src := `justification A { evidence } justification B { evidence e : "x" }`
	l := lexer.New("test.jd", src)
	p := New("test.jd", l)
	prog := p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatal("expected at least one syntax error")
	}
	// Despite the error in A's body, B should still be recovered.
	var sawB bool
	for _, e := range prog.Entries {
		if cd, ok := e.(*ast.ClassDef); ok && cd.Name == "B" {
			sawB = true
		}
	}
	if !sawB {
		t.Error("parser did not recover class B after A's syntax error")
	}
}
