// Package lexer splits mal source text into tokens.  Token recognition is
// done by an ordered choice of goparsec terminal parsers.
package lexer

import (
	"github.com/epylar/mal/parser/token"
	parsec "github.com/prataprc/goparsec"
)

// Whitespace and commas separate tokens and are otherwise ignored.
const separatorPattern = `^[\s,]+`

// tokenPatterns are tried in order.  Two character tokens come before their
// one character prefixes and atoms come last because they swallow anything.
var tokenPatterns = []struct {
	typ     token.Type
	pattern string
}{
	{token.SPLICE_UNQUOTE, `^~@`},
	{token.PAREN_L, `^\(`},
	{token.PAREN_R, `^\)`},
	{token.BRACKET_L, `^\[`},
	{token.BRACKET_R, `^\]`},
	{token.BRACE_L, `^\{`},
	{token.BRACE_R, `^\}`},
	{token.QUOTE, `^'`},
	{token.QUASIQUOTE, "^`"},
	{token.UNQUOTE, `^~`},
	{token.DEREF, `^@`},
	{token.STRING, `^"(?:\\.|[^\\"])*"?`},
	{token.COMMENT, `^;.*`},
	{token.ATOM, "^[^\\s\\[\\]{}()'\"`,;]+"},
}

var tokenTypes = make(map[string]token.Type, len(tokenPatterns))

func init() {
	for _, p := range tokenPatterns {
		tokenTypes[p.typ.String()] = p.typ
	}
}

func newTokenParser() parsec.Parser {
	terms := make([]interface{}, len(tokenPatterns))
	for i, p := range tokenPatterns {
		terms[i] = parsec.Token(p.pattern, p.typ.String())
	}
	return parsec.OrdChoice(firstNode, terms...)
}

// firstNode unwraps the single terminal matched by the ordered choice.
func firstNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}

// Lexer produces the tokens of one source text.
type Lexer struct {
	src  *token.Scanner
	s    parsec.Scanner
	term parsec.Parser
	done bool
}

// New returns a Lexer over the text held by src.
func New(src *token.Scanner) *Lexer {
	return &Lexer{
		src:  src,
		s:    parsec.NewScanner(src.Bytes()),
		term: newTokenParser(),
	}
}

// NextToken returns the next token in the source.  After the end of input is
// reached every call returns an EOF token.
func (lex *Lexer) NextToken() *token.Token {
	_, lex.s = lex.s.Match(separatorPattern)
	pos := lex.s.GetCursor()
	if lex.done || lex.s.Endof() {
		lex.done = true
		return lex.emit(token.EOF, "", pos)
	}
	// Every byte that is not a separator starts some token, so the choice
	// always matches here.
	node, news := lex.term(lex.s)
	term := node.(*parsec.Terminal)
	lex.s = news
	return lex.emit(tokenTypes[term.Name], term.Value, pos)
}

func (lex *Lexer) emit(typ token.Type, text string, pos int) *token.Token {
	return &token.Token{
		Type:   typ,
		Text:   text,
		Source: lex.src.Loc(pos),
	}
}
