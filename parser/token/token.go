package token

import "fmt"

type Token struct {
	Type   Type
	Text   string
	Source *Location
}

type Type uint

// Type constants used for the mal lexer/parser.  These constants aren't
// necessary to use the package.
const (
	INVALID Type = iota
	ERROR
	EOF

	// Atomic expressions & literals
	ATOM
	STRING

	COMMENT

	// Reader macros
	QUOTE
	QUASIQUOTE
	UNQUOTE
	SPLICE_UNQUOTE
	DEREF

	// Delimiters
	PAREN_L
	PAREN_R
	BRACKET_L
	BRACKET_R
	BRACE_L
	BRACE_R

	numTokenTypes
)

var typeStrings = [numTokenTypes]string{
	INVALID:        "invalid",
	ERROR:          "error",
	EOF:            "EOF",
	ATOM:           "atom",
	STRING:         "string",
	COMMENT:        ";",
	QUOTE:          "'",
	QUASIQUOTE:     "`",
	UNQUOTE:        "~",
	SPLICE_UNQUOTE: "~@",
	DEREF:          "@",
	PAREN_L:        "(",
	PAREN_R:        ")",
	BRACKET_L:      "[",
	BRACKET_R:      "]",
	BRACE_L:        "{",
	BRACE_R:        "}",
}

func (typ Type) String() string {
	if typ >= numTokenTypes {
		return typeStrings[INVALID]
	}
	return typeStrings[typ]
}

// Closer returns the token type that closes a sequence opened by typ.  The
// boolean result is false if typ does not open a sequence.
func (typ Type) Closer() (Type, bool) {
	switch typ {
	case PAREN_L:
		return PAREN_R, true
	case BRACKET_L:
		return BRACKET_R, true
	case BRACE_L:
		return BRACE_R, true
	default:
		return INVALID, false
	}
}

// IsCloser returns true if typ closes a sequence.
func (typ Type) IsCloser() bool {
	return typ == PAREN_R || typ == BRACKET_R || typ == BRACE_R
}

type Location struct {
	File string
	Pos  int
	Line int // line number (starting at 1 when tracked)
	Col  int // line column number (starting at 1 when tracked)
}

func (loc *Location) String() string {
	switch {
	case loc.Line == 0:
		return fmt.Sprintf("%s[%d]", loc.File, loc.Pos)
	case loc.Col == 0:
		return fmt.Sprintf("%s:%d", loc.File, loc.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", loc.File, loc.Line, loc.Col)
	}
}
