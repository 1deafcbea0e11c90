// Package loader reads JD source from a filesystem, drives parsing and
// transformation, and follows `load` statements transitively with cycle
// detection (spec §4.D). It mirrors the teacher's internal/modules.Loader
// (funvibe-funxy/internal/modules/loader.go) — a cache of already-loaded
// units keyed by canonical path, a "currently processing" set for cycle
// detection, and first-wins merge on name collision — adapted from
// package-oriented module loading to JD's flat class-name merge.
package loader

import (
	"encoding/json"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/jd-lang/jd/internal/jderr"
	"github.com/jd-lang/jd/internal/model"
	"github.com/jd-lang/jd/internal/parser"
)

// FS is the minimal filesystem surface the loader needs. *osFS (the
// default) reads real files; tests may supply an fstest.MapFS instead,
// which is why New takes an FS rather than assuming os.ReadFile
// (SPEC_FULL.md §3, Loader additions).
type FS interface {
	fs.FS
}

type osFS struct{}

func (osFS) Open(name string) (fs.File, error) { return os.Open(name) }

// OSFileSystem is the default FS backed by the real filesystem.
var OSFileSystem FS = osFS{}

// Loader loads JD files and resolves their `load` statements recursively.
type Loader struct {
	fsys      FS
	visited   map[string]bool // canonical paths currently being loaded (cycle detection)
	completed map[string]*model.Model
}

// New creates a Loader reading from fsys. A nil fsys uses OSFileSystem.
func New(fsys FS) *Loader {
	if fsys == nil {
		fsys = OSFileSystem
	}
	return &Loader{
		fsys:      fsys,
		visited:   make(map[string]bool),
		completed: make(map[string]*model.Model),
	}
}

// canonicalize turns path into the key used for cycle detection and the
// completed-model cache. For the OS filesystem this is the absolute,
// cleaned path; for other fs.FS implementations it is the cleaned
// slash-path, since fs.FS has no notion of a working directory.
func (l *Loader) canonicalize(p string) (string, error) {
	if _, ok := l.fsys.(osFS); ok {
		abs, err := filepath.Abs(p)
		if err != nil {
			return "", jderr.Wrap(jderr.NotFound, err, "cannot resolve path "+p)
		}
		return filepath.Clean(abs), nil
	}
	return path.Clean(p), nil
}

func (l *Loader) readFile(p string) (string, error) {
	if _, ok := l.fsys.(osFS); ok {
		data, err := os.ReadFile(p)
		if err != nil {
			return "", jderr.Wrap(jderr.NotFound, err, "cannot read "+p)
		}
		return string(data), nil
	}
	data, err := fs.ReadFile(l.fsys, path.Clean(p))
	if err != nil {
		return "", jderr.Wrap(jderr.NotFound, err, "cannot read "+p)
	}
	return string(data), nil
}

func dirOf(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Dir(p)
	}
	return path.Dir(filepath.ToSlash(p))
}

func joinRelative(dir, rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	if dir == "" || dir == "." {
		return rel
	}
	return filepath.Join(dir, rel)
}

// LoadFile loads path and every file it (transitively) loads, merging
// them into a single Model per spec §4.D.
func (l *Loader) LoadFile(p string) (*model.Model, error) {
	return l.load(p)
}

func (l *Loader) load(p string) (*model.Model, error) {
	canon, err := l.canonicalize(p)
	if err != nil {
		return nil, err
	}

	if l.visited[canon] {
		return nil, jderr.Newf(jderr.Cycle, "load cycle detected at %s", canon)
	}
	if m, ok := l.completed[canon]; ok {
		// Re-loading the same path from two different importers: per
		// spec §4.D step 4, re-loading is impossible once visited, but
		// a path that finished loading earlier (not currently on the
		// stack) may legitimately be imported again; return its
		// already-built model rather than re-parsing.
		return m, nil
	}

	l.visited[canon] = true
	defer delete(l.visited, canon)

	src, err := l.readFile(p)
	if err != nil {
		return nil, err
	}

	m, err := parser.ParseString(p, src)
	if err != nil {
		return nil, err
	}

	dir := dirOf(p)
	for _, ld := range m.LoadStmts {
		childPath := joinRelative(dir, ld.Path)
		childModel, err := l.load(childPath)
		if err != nil {
			return nil, err
		}
		m.Merge(childModel)
	}

	l.completed[canon] = m
	return m, nil
}

// LoadJSON is the alternate entry described in spec §4.D: it accepts a
// pre-parsed JSON object mirroring the model shape and does not traverse
// load statements.
func LoadJSON(data []byte) (*model.Model, error) {
	m := model.New()
	if err := json.Unmarshal(data, m); err != nil {
		return nil, jderr.Wrap(jderr.Syntax, err, "invalid JSON model")
	}
	return m, nil
}
