package parser

import (
	"errors"

	"github.com/jd-lang/jd/internal/lexer"
	"github.com/jd-lang/jd/internal/model"
)

func parseAndTransform(file, src string) (*model.Model, error) {
	l := lexer.New(file, src)
	p := New(file, l)
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		return nil, errs[0]
	}
	m, err := Transform(prog)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Errors joins every collected syntax error into one error value, useful
// for callers (e.g. the LSP-style boundary) that want every diagnostic
// rather than only the first.
func Errors(errs []error) error {
	return errors.Join(errs...)
}
