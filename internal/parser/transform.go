package parser

import (
	"github.com/jd-lang/jd/internal/ast"
	"github.com/jd-lang/jd/internal/jderr"
	"github.com/jd-lang/jd/internal/model"
)

// Transform lowers a parse tree into model values, one-to-one, per
// spec §4.C. It is the Go analogue of the teacher's tree-walking
// evaluator pass, but much smaller: the JD grammar has no expressions,
// just declarations.
func Transform(prog *ast.Program) (*model.Model, error) {
	m := model.New()

	for _, entry := range prog.Entries {
		switch n := entry.(type) {
		case *ast.LoadStmt:
			m.LoadStmts = append(m.LoadStmts, model.LoadStatement{Path: n.Path})
		case *ast.ClassDef:
			cls, err := transformClass(n)
			if err != nil {
				return nil, err
			}
			if _, exists := m.ClassDefs[cls.Name]; exists {
				return nil, jderr.Newf(jderr.Syntax, "duplicate class name %q", cls.Name).
					At(jderr.Position{File: prog.File, Line: n.Token.Line, Column: n.Token.Column})
			}
			m.ClassDefs[cls.Name] = cls
		}
	}

	return m, nil
}

func transformClass(cd *ast.ClassDef) (*model.Class, error) {
	kind, err := classKind(cd)
	if err != nil {
		return nil, err
	}

	cls := &model.Class{Kind: kind, Name: cd.Name, Pattern: cd.Implements}

	if kind == model.Composition {
		comp := &model.CompositionBody{}
		for _, e := range cd.Body.Compositions {
			comp.Compositions = append(comp.Compositions, e.Raw)
		}
		cls.Body.Composition = comp
		return cls, nil
	}

	jb := model.NewJustificationBody()
	for _, vd := range cd.Body.Variables {
		vk, err := variableKind(vd)
		if err != nil {
			return nil, err
		}
		if _, exists := jb.Variables[vd.Name]; exists {
			return nil, jderr.Newf(jderr.Syntax, "duplicate variable name %q in class %q", vd.Name, cd.Name).
				At(jderr.Position{File: "", Line: vd.Token.Line, Column: vd.Token.Column})
		}
		jb.AddVariable(&model.Variable{Kind: vk, Name: vd.Name, Description: vd.Description})
	}
	for _, sd := range cd.Body.Supports {
		jb.AddSupport(sd.Left, sd.Right)
	}
	cls.Body.Justification = jb

	return cls, nil
}

func classKind(cd *ast.ClassDef) (model.ClassKind, error) {
	switch string(cd.ClassType) {
	case "justification":
		return model.Justification, nil
	case "pattern":
		return model.Pattern, nil
	case "composition":
		return model.Composition, nil
	default:
		return 0, jderr.Newf(jderr.Syntax, "unknown class type %q", cd.ClassType).
			At(jderr.Position{File: "", Line: cd.Token.Line, Column: cd.Token.Column})
	}
}

func variableKind(vd *ast.VariableDecl) (model.VariableKind, error) {
	switch vd.VarType {
	case "evidence":
		return model.Evidence, nil
	case "strategy":
		return model.Strategy, nil
	case "sub-conclusion":
		return model.SubConclusion, nil
	case "conclusion":
		return model.Conclusion, nil
	case "@support":
		return model.Support, nil
	default:
		return 0, jderr.Newf(jderr.Syntax, "unknown variable type %q", vd.VarType).
			At(jderr.Position{File: "", Line: vd.Token.Line, Column: vd.Token.Column})
	}
}

// ParseString parses and transforms a single JD source string in one
// call, surfacing the first error if any: lexing and parsing errors are
// collected and the first one is returned; Transform runs only when
// parsing succeeded and stops at its own first error.
func ParseString(file, src string) (*model.Model, error) {
	return parseAndTransform(file, src)
}
