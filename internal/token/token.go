// Package token defines the lexical tokens of the JD surface grammar.
package token

// Type identifies the lexical class of a Token.
type Type int

const (
	ILLEGAL Type = iota
	EOF

	// Identifiers and literals.
	IDENT  // foo, PatternName, e1
	STRING // "a JSON-quoted string"

	// Keywords.
	LOAD
	IMPLEMENTS
	JUSTIFICATION
	PATTERN
	COMPOSITION
	EVIDENCE
	STRATEGY
	SUB_CONCLUSION
	CONCLUSION
	AT_SUPPORT // @support
	SUPPORTS

	// Punctuation.
	LBRACE // {
	RBRACE // }
	COLON  // :
	SEMI   // ;
)

var names = map[Type]string{
	ILLEGAL:        "ILLEGAL",
	EOF:            "EOF",
	IDENT:          "IDENT",
	STRING:         "STRING",
	LOAD:           "load",
	IMPLEMENTS:     "implements",
	JUSTIFICATION:  "justification",
	PATTERN:        "pattern",
	COMPOSITION:    "composition",
	EVIDENCE:       "evidence",
	STRATEGY:       "strategy",
	SUB_CONCLUSION: "sub-conclusion",
	CONCLUSION:     "conclusion",
	AT_SUPPORT:     "@support",
	SUPPORTS:       "supports",
	LBRACE:         "{",
	RBRACE:         "}",
	COLON:          ":",
	SEMI:           ";",
}

func (t Type) String() string {
	if s, ok := names[t]; ok {
		return s
	}
	return "UNKNOWN"
}

// keywords maps reserved identifiers to their token type. Looked up by
// the lexer after scanning a maximal identifier run.
var keywords = map[string]Type{
	"load":           LOAD,
	"implements":     IMPLEMENTS,
	"justification":  JUSTIFICATION,
	"pattern":        PATTERN,
	"composition":    COMPOSITION,
	"evidence":       EVIDENCE,
	"strategy":       STRATEGY,
	"sub-conclusion": SUB_CONCLUSION,
	"conclusion":     CONCLUSION,
	"supports":       SUPPORTS,
}

// LookupIdent classifies a scanned identifier-like lexeme as a keyword
// token or a plain IDENT.
func LookupIdent(lexeme string) Type {
	if t, ok := keywords[lexeme]; ok {
		return t
	}
	return IDENT
}

// Token is a single lexical unit: its type, the exact source text, its
// decoded literal (for STRING, the unquoted value), and its position.
type Token struct {
	Type   Type
	Lexeme string
	Literal string
	Line   int
	Column int
}
