// Package ast defines the parse tree produced by internal/parser, before
// it is lowered into internal/model values by the transformer (spec §4.C).
// It mirrors the teacher's node-per-construct design
// (funvibe-funxy/internal/ast) but only for the small JD grammar.
package ast

import "github.com/jd-lang/jd/internal/token"

// Node is the base interface implemented by every parse tree node.
type Node interface {
	TokenLiteral() string
}

// Program is the root of every parse tree: a sequence of load statements
// and class definitions, in source order.
type Program struct {
	File    string
	Entries []Node // *LoadStmt | *ClassDef, in declaration order
}

func (p *Program) TokenLiteral() string {
	if len(p.Entries) > 0 {
		return p.Entries[0].TokenLiteral()
	}
	return ""
}

// LoadStmt is `load "path";`.
type LoadStmt struct {
	Token token.Token // the 'load' token
	Path  string      // decoded string literal
}

func (ls *LoadStmt) TokenLiteral() string { return ls.Token.Lexeme }

// ClassType is the raw keyword naming a class's kind, kept as a string at
// the AST layer; the transformer maps it onto model.ClassKind.
type ClassType string

// VariableDecl is one `VARIABLE_TYPE ID instruction?` line inside a body.
type VariableDecl struct {
	Token       token.Token // the variable-type token
	VarType     string      // evidence | strategy | sub-conclusion | conclusion | @support
	Name        string
	Description string // decoded instruction string, "" if absent
	HasInstruction bool
}

func (vd *VariableDecl) TokenLiteral() string { return vd.Token.Lexeme }

// SupportDecl is `ID supports ID`.
type SupportDecl struct {
	Token token.Token // the left identifier token
	Left  string
	Right string
}

func (sd *SupportDecl) TokenLiteral() string { return sd.Token.Lexeme }

// ClassBody holds the ordered list of body entries; justification and
// pattern bodies contain *VariableDecl and *SupportDecl, a composition
// body contains opaque *CompositionEntry values.
type ClassBody struct {
	Variables    []*VariableDecl
	Supports     []*SupportDecl
	Compositions []*CompositionEntry
}

// CompositionEntry is an opaque line inside a composition class body
// (spec §3 — composition bodies are opaque to the core). It is kept only
// so the body round-trips; its fields are whatever raw tokens were seen.
type CompositionEntry struct {
	Token token.Token
	Raw   string
}

// ClassDef is `CLASS_TYPE ID ("implements" ID)? "{" body "}"`.
type ClassDef struct {
	Token      token.Token // the class-type token
	ClassType  ClassType
	Name       string
	Implements string // "" when absent
	Body       ClassBody
}

func (cd *ClassDef) TokenLiteral() string { return cd.Token.Lexeme }
