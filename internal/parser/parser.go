// Package parser implements a hand-written recursive-descent parser for
// the JD surface grammar (spec §4.B). A recursive-descent parser and an
// LALR parser accept the same language for a grammar with no shift/reduce
// or reduce/reduce conflicts, which is the case here; the teacher itself
// hand-writes a considerably larger recursive-descent parser
// (funvibe-funxy/internal/parser) rather than generating one, and this
// follows that precedent.
package parser

import (
	"fmt"

	"github.com/jd-lang/jd/internal/ast"
	"github.com/jd-lang/jd/internal/jderr"
	"github.com/jd-lang/jd/internal/lexer"
	"github.com/jd-lang/jd/internal/token"
)

// Parser consumes tokens from a Lexer and builds an *ast.Program.
type Parser struct {
	l    *lexer.Lexer
	file string

	cur  token.Token
	peek token.Token

	errs []error
}

// New creates a Parser reading from l. file is used for error positions.
func New(file string, l *lexer.Lexer) *Parser {
	p := &Parser{l: l, file: file}
	p.next()
	p.next()
	return p
}

func (p *Parser) next() {
	p.cur = p.peek
	tok, err := p.l.NextToken()
	if err != nil {
		p.errs = append(p.errs, err)
		// Keep scanning for further diagnostics, matching the teacher's
		// "collect, don't abort on first error" pipeline discipline.
		tok = token.Token{Type: token.ILLEGAL}
	}
	p.peek = tok
}

func (p *Parser) pos() jderr.Position {
	return jderr.Position{File: p.file, Line: p.cur.Line, Column: p.cur.Column}
}

func (p *Parser) errorf(format string, args ...any) {
	p.errs = append(p.errs, jderr.New(jderr.Syntax, fmt.Sprintf(format, args...)).At(p.pos()))
}

func (p *Parser) expect(t token.Type) (token.Token, bool) {
	if p.cur.Type != t {
		p.errorf("expected %s, got %s %q", t, p.cur.Type, p.cur.Lexeme)
		return token.Token{}, false
	}
	tok := p.cur
	p.next()
	return tok, true
}

// ParseProgram parses the whole token stream into a Program. Errors are
// collected into Errors(); ParseProgram always returns a non-nil Program
// so callers can inspect whatever was recovered.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{File: p.file}

	for p.cur.Type != token.EOF {
		switch p.cur.Type {
		case token.LOAD:
			if ld := p.parseLoadStmt(); ld != nil {
				prog.Entries = append(prog.Entries, ld)
			}
		case token.JUSTIFICATION, token.PATTERN, token.COMPOSITION:
			if cd := p.parseClassDef(); cd != nil {
				prog.Entries = append(prog.Entries, cd)
			}
		default:
			p.errorf("unexpected token %s %q at top level", p.cur.Type, p.cur.Lexeme)
			p.next()
		}
	}

	return prog
}

// Errors returns every SYNTAX error collected while parsing.
func (p *Parser) Errors() []error { return p.errs }

func (p *Parser) parseLoadStmt() *ast.LoadStmt {
	tok := p.cur
	p.next() // consume 'load'
	str, ok := p.expect(token.STRING)
	if !ok {
		p.recoverToStatementEnd()
		return nil
	}
	if _, ok := p.expect(token.SEMI); !ok {
		p.recoverToStatementEnd()
		return nil
	}
	return &ast.LoadStmt{Token: tok, Path: str.Literal}
}

// recoverToStatementEnd skips tokens until a likely statement boundary,
// so one syntax error doesn't cascade into dozens of spurious follow-on
// errors.
func (p *Parser) recoverToStatementEnd() {
	for p.cur.Type != token.EOF && p.cur.Type != token.SEMI && p.cur.Type != token.RBRACE &&
		p.cur.Type != token.LOAD && p.cur.Type != token.JUSTIFICATION &&
		p.cur.Type != token.PATTERN && p.cur.Type != token.COMPOSITION {
		p.next()
	}
	if p.cur.Type == token.SEMI {
		p.next()
	}
}

func (p *Parser) parseClassDef() *ast.ClassDef {
	tok := p.cur
	classType := ast.ClassType(p.cur.Lexeme)
	p.next() // consume class-type keyword

	name, ok := p.expect(token.IDENT)
	if !ok {
		p.recoverToStatementEnd()
		return nil
	}

	cd := &ast.ClassDef{Token: tok, ClassType: classType, Name: name.Lexeme}

	if p.cur.Type == token.IMPLEMENTS {
		implTok := p.cur
		p.next()
		if classType != ast.ClassType("justification") {
			p.errs = append(p.errs, jderr.Newf(jderr.Syntax,
				"keyword 'implements' is only supported for justification classes, used in %s", classType).
				At(jderr.Position{File: p.file, Line: implTok.Line, Column: implTok.Column}))
		}
		implName, ok := p.expect(token.IDENT)
		if !ok {
			p.recoverToStatementEnd()
			return nil
		}
		cd.Implements = implName.Lexeme
	}

	if _, ok := p.expect(token.LBRACE); !ok {
		p.recoverToStatementEnd()
		return nil
	}

	cd.Body = p.parseClassBody(classType)

	if _, ok := p.expect(token.RBRACE); !ok {
		p.recoverToStatementEnd()
		return nil
	}

	return cd
}

func (p *Parser) parseClassBody(classType ast.ClassType) ast.ClassBody {
	var body ast.ClassBody
	for p.cur.Type != token.RBRACE && p.cur.Type != token.EOF {
		switch p.cur.Type {
		case token.EVIDENCE, token.STRATEGY, token.SUB_CONCLUSION, token.CONCLUSION, token.AT_SUPPORT:
			if vd := p.parseVariable(); vd != nil {
				body.Variables = append(body.Variables, vd)
			}
		case token.IDENT:
			// Could be `ID supports ID` or, inside a composition body,
			// an opaque entry; disambiguate by looking ahead.
			if p.peek.Type == token.SUPPORTS {
				if sd := p.parseSupport(); sd != nil {
					body.Supports = append(body.Supports, sd)
				}
			} else if classType == ast.ClassType("composition") {
				body.Compositions = append(body.Compositions, p.parseOpaqueEntry())
			} else {
				p.errorf("unexpected identifier %q in class body, expected 'supports'", p.cur.Lexeme)
				p.next()
			}
		default:
			if classType == ast.ClassType("composition") {
				body.Compositions = append(body.Compositions, p.parseOpaqueEntry())
				continue
			}
			p.errorf("unexpected token %s %q in class body", p.cur.Type, p.cur.Lexeme)
			p.next()
		}
	}
	return body
}

func (p *Parser) parseVariable() *ast.VariableDecl {
	tok := p.cur
	varType := p.cur.Lexeme
	p.next() // consume variable-type keyword

	name, ok := p.expect(token.IDENT)
	if !ok {
		p.recoverToStatementEnd()
		return nil
	}

	vd := &ast.VariableDecl{Token: tok, VarType: varType, Name: name.Lexeme}

	if p.cur.Type == token.COLON {
		p.next()
		str, ok := p.expect(token.STRING)
		if !ok {
			p.recoverToStatementEnd()
			return nil
		}
		vd.Description = str.Literal
		vd.HasInstruction = true
	}

	return vd
}

func (p *Parser) parseSupport() *ast.SupportDecl {
	tok := p.cur
	left, _ := p.expect(token.IDENT)
	if _, ok := p.expect(token.SUPPORTS); !ok {
		p.recoverToStatementEnd()
		return nil
	}
	right, ok := p.expect(token.IDENT)
	if !ok {
		p.recoverToStatementEnd()
		return nil
	}
	return &ast.SupportDecl{Token: tok, Left: left.Lexeme, Right: right.Lexeme}
}

// parseOpaqueEntry consumes one token as a placeholder composition entry.
// Composition bodies are opaque to the core (spec §3); we keep only
// enough to round-trip a count/raw text, never interpreting it.
func (p *Parser) parseOpaqueEntry() *ast.CompositionEntry {
	tok := p.cur
	entry := &ast.CompositionEntry{Token: tok, Raw: tok.Lexeme}
	p.next()
	return entry
}
