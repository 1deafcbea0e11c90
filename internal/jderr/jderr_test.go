package jderr

import (
	"errors"
	"testing"
)

func TestErrorStringWithPositionAndCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(NotFound, cause, "cannot read x.jd").At(Position{File: "x.jd", Line: 3, Column: 7})
	got := err.Error()
	want := "NOT_FOUND: cannot read x.jd (x.jd:3:7): disk full"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestErrorStringWithoutPosition(t *testing.T) {
	err := New(Syntax, "unexpected token")
	if got, want := err.Error(), "SYNTAX: unexpected token"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(Runtime, cause, "call failed")
	if !errors.Is(err, cause) {
		t.Error("errors.Is should see the wrapped cause")
	}
}

func TestKindOfNonJDError(t *testing.T) {
	if k := KindOf(errors.New("plain")); k != "" {
		t.Errorf("KindOf(plain error) = %q, want empty", k)
	}
	if k := KindOf(nil); k != "" {
		t.Errorf("KindOf(nil) = %q, want empty", k)
	}
}

func TestNewf(t *testing.T) {
	err := Newf(Function, "procedure %q failed", "check_x")
	if err.Msg != `procedure "check_x" failed` {
		t.Errorf("Msg = %q", err.Msg)
	}
	if err.K != Function {
		t.Errorf("K = %q", err.K)
	}
}
