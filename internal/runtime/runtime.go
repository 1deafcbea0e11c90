// Package runtime implements the JD "pluggable runtime" (spec §4.F): it
// loads external procedure libraries, holds bindable variables, resolves
// procedures by sanitised name, and supports cloning for per-diagram
// isolation.
//
// Procedure libraries are ordinary Go source files, interpreted at
// runtime with github.com/traefik/yaegi rather than compiled — this is
// the statically-typed-target resolution spec §9 calls out ("back it
// with a dynamic loader when the host language supports it"), grounded
// on theRebelliousNerd-codenerd/internal/autopoiesis/yaegi_executor.go.
// Each library gets its own *interp.Interpreter, wrapped in `package
// main` if it isn't already one, so libraries never collide even though
// every one of them is free to declare identically-named helpers.
package runtime

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"github.com/jd-lang/jd/internal/jderr"
)

// namespace is one loaded procedure library.
type namespace struct {
	path   string
	source string
	interp *interp.Interpreter
}

// binding records a SetVariable/SetVariableLiteral call so Clone can
// replay it against freshly re-interpreted namespaces.
type binding struct {
	name  string
	value any
}

// Runtime is the core's only side-effecting collaborator beyond file
// reading (spec §4.F).
type Runtime struct {
	namespaces []*namespace
	bindings   []binding
}

// New creates an empty Runtime with no loaded libraries.
func New() *Runtime {
	return &Runtime{}
}

func newInterpreter() *interp.Interpreter {
	i := interp.New(interp.Options{})
	_ = i.Use(stdlib.Symbols)
	return i
}

func wrapSource(src string) string {
	if strings.Contains(src, "package main") {
		return src
	}
	return "package main\n\n" + src
}

// LoadFiles loads each path as a dynamic procedure namespace, appended in
// order to the runtime's namespace list (spec §4.F load_files). A missing
// file fails with NOT_FOUND.
func (r *Runtime) LoadFiles(paths []string) error {
	for _, p := range paths {
		if err := r.loadFile(p); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runtime) loadFile(p string) error {
	data, err := os.ReadFile(p)
	if err != nil {
		return jderr.Wrap(jderr.NotFound, err, "library file not found: "+p)
	}

	src := wrapSource(string(data))
	i := newInterpreter()
	if _, err := i.Eval(src); err != nil {
		return jderr.Wrap(jderr.Runtime, err, "failed to load library "+p)
	}

	r.namespaces = append(r.namespaces, &namespace{
		path:   filepath.Clean(p),
		source: src,
		interp: i,
	})
	return nil
}

// declares reports whether namespace ns has a top-level identifier name,
// without invoking it (spec §4.F resolve — lookup must not have side
// effects).
func (ns *namespace) declares(name string) (reflect.Value, bool) {
	v, err := ns.interp.Eval("main." + name)
	if err != nil {
		return reflect.Value{}, false
	}
	return v, true
}

// Resolve searches loaded namespaces in load order and returns the index
// of the first one that declares name (spec §4.F resolve).
func (r *Runtime) Resolve(name string) (int, error) {
	for i, ns := range r.namespaces {
		if _, ok := ns.declares(name); ok {
			return i, nil
		}
	}
	return -1, jderr.Newf(jderr.NotFound, "procedure %q not found in any loaded library", name)
}

// SetVariable binds name in every loaded namespace that already declares
// it (spec §4.F / §9 Open Question (a): "all matches" is the prescribed
// semantic, so multiple libraries can share a variable).
func (r *Runtime) SetVariable(name string, value any) error {
	found := false
	for _, ns := range r.namespaces {
		if v, ok := ns.declares(name); ok {
			if !v.CanSet() {
				return jderr.Newf(jderr.Runtime, "variable %q in %s is not assignable", name, ns.path)
			}
			rv := reflect.ValueOf(value)
			if !rv.Type().AssignableTo(v.Type()) {
				if rv.Type().ConvertibleTo(v.Type()) {
					rv = rv.Convert(v.Type())
				} else {
					return jderr.Newf(jderr.Runtime, "cannot assign %T to variable %q of type %s", value, name, v.Type())
				}
			}
			v.Set(rv)
			found = true
		}
	}
	if !found {
		return jderr.Newf(jderr.Runtime, "variable %q not declared in any loaded library", name)
	}
	r.bindings = append(r.bindings, binding{name: name, value: value})
	return nil
}

// SetVariableLiteral parses text as a literal (integer, float, string, or
// array/object of literals — spec §4.F) and binds it like SetVariable.
func (r *Runtime) SetVariableLiteral(name, text string) error {
	value, err := ParseLiteral(text)
	if err != nil {
		return err
	}
	return r.SetVariable(name, value)
}

// Call resolves name then invokes it with args, per spec §4.F. The
// callable's panics are recovered and returned as a FUNCTION error so the
// evaluator can turn them into a FAIL event (spec §4.G).
func (r *Runtime) Call(name string, args ...any) (result any, err error) {
	idx, err := r.Resolve(name)
	if err != nil {
		return nil, err
	}
	ns := r.namespaces[idx]
	fv, _ := ns.declares(name)

	if fv.Kind() != reflect.Func {
		return nil, jderr.Newf(jderr.Runtime, "%q is not callable (is a %s)", name, fv.Kind())
	}

	defer func() {
		if rec := recover(); rec != nil {
			err = jderr.Newf(jderr.Function, "procedure %q panicked: %v", name, rec)
		}
	}()

	in := make([]reflect.Value, len(args))
	for i, a := range args {
		in[i] = reflect.ValueOf(a)
	}
	out := fv.Call(in)
	return decodeCallResult(name, out)
}

// decodeCallResult normalises the supported host procedure signatures
// into (value, error): func() ; func() bool ; func() error ;
// func() (bool, error) ; func() (T, error).
func decodeCallResult(name string, out []reflect.Value) (any, error) {
	switch len(out) {
	case 0:
		return true, nil
	case 1:
		v := out[0]
		if isErrorValue(v) {
			if v.IsNil() {
				return true, nil
			}
			return nil, jderr.Newf(jderr.Function, "procedure %q returned error: %v", name, v.Interface())
		}
		return v.Interface(), nil
	case 2:
		errv := out[1]
		if isErrorValue(errv) && !errv.IsNil() {
			return nil, jderr.Newf(jderr.Function, "procedure %q returned error: %v", name, errv.Interface())
		}
		return out[0].Interface(), nil
	default:
		return nil, jderr.Newf(jderr.Runtime, "procedure %q has unsupported signature (%d return values)", name, len(out))
	}
}

func isErrorValue(v reflect.Value) bool {
	errType := reflect.TypeOf((*error)(nil)).Elem()
	return v.Type().Implements(errType)
}

// Truthy implements the "falsy return value" rule of spec §4.G: the only
// falsy values are nil, a false bool, an empty string, a numeric zero, a
// nil pointer/interface/slice/map/chan/func, and a zero-length array;
// everything else is truthy, including empty but non-nil slices and maps
// and every struct value.
func Truthy(v any) bool {
	if v == nil {
		return false
	}
	switch x := v.(type) {
	case bool:
		return x
	case string:
		return x != ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
		return !rv.IsNil()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.Array:
		return rv.Len() != 0
	default:
		return true
	}
}

// FormatResult renders a non-true call result for the synthetic FUNCTION
// error spec §4.G requires: "a synthetic FUNCTION error noting the
// returned value".
func FormatResult(v any) string {
	return fmt.Sprintf("%v", v)
}

// Clone deep-copies the runtime so each diagram run starts from the same
// base state without cross-contamination (spec §4.F). Because yaegi
// interpreters carry private, non-copyable internal state, Clone
// re-interprets every namespace's cached source from scratch (the moral
// equivalent of Python re-importing a module) and replays every
// SetVariable/SetVariableLiteral binding recorded so far, in order.
func (r *Runtime) Clone() (*Runtime, error) {
	clone := &Runtime{}
	for _, ns := range r.namespaces {
		i := newInterpreter()
		if _, err := i.Eval(ns.source); err != nil {
			return nil, jderr.Wrap(jderr.Runtime, err, "failed to clone library "+ns.path)
		}
		clone.namespaces = append(clone.namespaces, &namespace{path: ns.path, source: ns.source, interp: i})
	}
	for _, b := range r.bindings {
		if err := clone.SetVariable(b.name, b.value); err != nil {
			return nil, err
		}
	}
	return clone, nil
}

// LibraryPaths returns the paths of every currently loaded library, in
// load order.
func (r *Runtime) LibraryPaths() []string {
	out := make([]string, len(r.namespaces))
	for i, ns := range r.namespaces {
		out[i] = ns.path
	}
	return out
}
