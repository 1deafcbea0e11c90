package runtime

import (
	"go/ast"
	"go/parser"
	"go/token"

	"golang.org/x/tools/go/ast/inspector"

	"github.com/jd-lang/jd/internal/jderr"
)

// Catalog statically lists the top-level identifiers every loaded
// library declares, without invoking anything — supplementing the
// distilled spec per SPEC_FULL.md §3 (Runtime additions), used by the
// CLI's --check flag to report unresolvable node names before spending a
// full evaluation run finding out. Grounded on
// funvibe-funxy/internal/ext/inspector.go's use of
// golang.org/x/tools/go/ast/inspector to walk Go source without
// executing it.
func (r *Runtime) Catalog() (map[string][]string, error) {
	out := make(map[string][]string, len(r.namespaces))
	for _, ns := range r.namespaces {
		names, err := catalogSource(ns.source)
		if err != nil {
			return nil, jderr.Wrap(jderr.Runtime, err, "failed to scan library "+ns.path)
		}
		out[ns.path] = names
	}
	return out, nil
}

func catalogSource(src string) ([]string, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "", src, parser.SkipObjectResolution)
	if err != nil {
		return nil, err
	}

	insp := inspector.New([]*ast.File{file})

	var names []string
	insp.Preorder([]ast.Node{(*ast.FuncDecl)(nil), (*ast.GenDecl)(nil)}, func(n ast.Node) {
		switch d := n.(type) {
		case *ast.FuncDecl:
			if d.Recv == nil { // top-level functions only
				names = append(names, d.Name.Name)
			}
		case *ast.GenDecl:
			if d.Tok != token.VAR && d.Tok != token.CONST {
				return
			}
			for _, spec := range d.Specs {
				if vs, ok := spec.(*ast.ValueSpec); ok {
					for _, n := range vs.Names {
						names = append(names, n.Name)
					}
				}
			}
		}
	})
	return names, nil
}
