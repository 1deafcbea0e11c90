package loader

import (
	"testing"
	"testing/fstest"

	"github.com/jd-lang/jd/internal/jderr"
)

func TestLoadFileMergesLoadedClasses(t *testing.T) {
	fsys := fstest.MapFS{
		"main.jd": {Data: []byte(`load "shared.jd";
justification A { evidence e : "x" }`)},
		"shared.jd": {Data: []byte(`justification B { evidence e : "y" }`)},
	}
	l := New(fsys)
	m, err := l.LoadFile("main.jd")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if _, ok := m.ClassDefs["A"]; !ok {
		t.Error("missing class A")
	}
	if _, ok := m.ClassDefs["B"]; !ok {
		t.Error("missing class B from shared.jd")
	}
}

// TestDiamondImportMergesOnce covers spec §8 property 6: two files that both
// load a shared third file must merge its classes once, without error.
func TestDiamondImportMergesOnce(t *testing.T) {
	fsys := fstest.MapFS{
		"main.jd": {Data: []byte(`load "left.jd";
load "right.jd";
justification Top { evidence e : "x" }`)},
		"left.jd":  {Data: []byte(`load "shared.jd"; justification Left { evidence e : "x" }`)},
		"right.jd": {Data: []byte(`load "shared.jd"; justification Right { evidence e : "x" }`)},
		"shared.jd": {Data: []byte(`justification Shared { evidence e : "x" }`)},
	}
	l := New(fsys)
	m, err := l.LoadFile("main.jd")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	for _, name := range []string{"Top", "Left", "Right", "Shared"} {
		if _, ok := m.ClassDefs[name]; !ok {
			t.Errorf("missing class %s", name)
		}
	}
}

// TestLoadCycleIsDetected covers spec §8 scenario S6: A loads B, B loads A.
func TestLoadCycleIsDetected(t *testing.T) {
	fsys := fstest.MapFS{
		"a.jd": {Data: []byte(`load "b.jd"; justification A { evidence e : "x" }`)},
		"b.jd": {Data: []byte(`load "a.jd"; justification B { evidence e : "x" }`)},
	}
	l := New(fsys)
	_, err := l.LoadFile("a.jd")
	if err == nil {
		t.Fatal("expected a load cycle error")
	}
	if jderr.KindOf(err) != jderr.Cycle {
		t.Errorf("error kind = %v, want CYCLE", jderr.KindOf(err))
	}
}

func TestLoadMissingFileIsNotFound(t *testing.T) {
	fsys := fstest.MapFS{}
	l := New(fsys)
	_, err := l.LoadFile("missing.jd")
	if jderr.KindOf(err) != jderr.NotFound {
		t.Errorf("error kind = %v, want NOT_FOUND", jderr.KindOf(err))
	}
}

func TestLoadJSONDoesNotTraverseLoadStatements(t *testing.T) {
	data := []byte(`{
		"load_stmts": ["ignored.jd"],
		"class_defs": {
			"A": {
				"class_type": "justification",
				"name": "A",
				"body": {"variables": {"e": {"var_type": "evidence", "name": "e", "description": "x"}}}
			}
		}
	}`)
	m, err := LoadJSON(data)
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	if len(m.LoadStmts) != 1 || m.LoadStmts[0].Path != "ignored.jd" {
		t.Errorf("load stmts = %+v", m.LoadStmts)
	}
	if _, ok := m.ClassDefs["A"]; !ok {
		t.Error("missing class A")
	}
}
