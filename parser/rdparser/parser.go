package rdparser

import (
	"io"
	"strconv"
	"strings"

	"github.com/epylar/mal/lisp"
	"github.com/epylar/mal/parser/lexer"
	"github.com/epylar/mal/parser/token"
)

type reader struct {
}

// NewReader returns a lisp.Reader to use in a lisp.Runtime.
func NewReader() lisp.Reader {
	return &reader{}
}

// Read implements lisp.Reader.
func (*reader) Read(name string, r io.Reader) (*lisp.LVal, error) {
	s, err := token.NewScanner(name, r)
	if err != nil {
		return nil, lisp.ErrorConditionf(lisp.CondIO, "%s: %v", name, err)
	}
	return New(s).ParseForm()
}

// Parser is a lisp parser.
type Parser struct {
	lex  *lexer.Lexer
	curr *token.Token
	peek *token.Token
}

// New initializes and returns a new Parser that reads tokens from scanner.
func New(scanner *token.Scanner) *Parser {
	p := &Parser{
		lex: lexer.New(scanner),
	}
	p.initTokens()
	return p
}

func (p *Parser) initTokens() {
	// Setup the peek token so the parser is in the proper state when the first
	// parse function is called.
	p.ReadToken()
}

// ParseForm parses exactly one form.  Input containing no forms, or tokens
// following the first form, is an error.
func (p *Parser) ParseForm() (*lisp.LVal, error) {
	p.skipComments()
	if p.PeekType() == token.EOF {
		return nil, p.peekErrorf(lisp.CondEmptyInput, "no form to read")
	}
	v, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	p.skipComments()
	if p.PeekType() != token.EOF {
		return nil, p.peekErrorf(lisp.CondTrailingTokens, "%s unexpected %s following form", p.peek.Source, p.peek.Text)
	}
	return v, nil
}

// ParseProgram parses every form in the input.
func (p *Parser) ParseProgram() ([]*lisp.LVal, error) {
	var exprs []*lisp.LVal
	for {
		p.skipComments()
		if p.PeekType() == token.EOF {
			return exprs, nil
		}
		expr, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
}

func (p *Parser) ParseExpression() (*lisp.LVal, error) {
	p.skipComments()
	switch p.PeekType() {
	case token.ATOM:
		return p.ParseAtom()
	case token.STRING:
		return p.ParseLiteralString()
	case token.QUOTE:
		return p.ParseReaderMacro(token.QUOTE, lisp.SymQuote)
	case token.QUASIQUOTE:
		return p.ParseReaderMacro(token.QUASIQUOTE, lisp.SymQuasiquote)
	case token.UNQUOTE:
		return p.ParseReaderMacro(token.UNQUOTE, lisp.SymUnquote)
	case token.SPLICE_UNQUOTE:
		return p.ParseReaderMacro(token.SPLICE_UNQUOTE, lisp.SymSpliceUnquote)
	case token.DEREF:
		return p.ParseReaderMacro(token.DEREF, lisp.SymDeref)
	case token.PAREN_L:
		return p.ParseSeq(token.PAREN_L, lisp.LList)
	case token.BRACKET_L:
		return p.ParseSeq(token.BRACKET_L, lisp.LVector)
	case token.BRACE_L:
		return p.ParseSeq(token.BRACE_L, lisp.LTable)
	case token.EOF:
		return nil, p.peekErrorf(lisp.CondUnexpectedEOF, "%s unexpected end of input", p.peek.Source)
	case token.ERROR, token.INVALID:
		p.ReadToken()
		return nil, p.errorf(lisp.CondUnexpectedToken, "%s %s", p.Token().Source, p.Token().Text)
	default:
		p.ReadToken()
		return nil, p.errorf(lisp.CondUnexpectedToken, "%s unexpected %s", p.Token().Source, p.Token().Type)
	}
}

// ParseAtom parses integers, the constants nil, true and false, keywords and
// symbols.
func (p *Parser) ParseAtom() (*lisp.LVal, error) {
	if !p.expect(token.ATOM) {
		return nil, p.peekErrorf(lisp.CondUnexpectedToken, "invalid atom: %v", p.PeekType())
	}
	text := p.Token().Text
	switch {
	case isInteger(text):
		x, err := strconv.ParseInt(text, 10, 32)
		if err != nil {
			return nil, p.errorf(lisp.CondInvalidLiteral, "%s integer literal overflows int32: %v", p.Token().Source, text)
		}
		return p.tokenLVal(lisp.Int(int32(x))), nil
	case text == "nil":
		return p.tokenLVal(lisp.Nil()), nil
	case text == "true":
		return p.tokenLVal(lisp.Bool(true)), nil
	case text == "false":
		return p.tokenLVal(lisp.Bool(false)), nil
	case strings.HasPrefix(text, ":") && len(text) > 1:
		return p.tokenLVal(lisp.Keyword(text[1:])), nil
	default:
		return p.tokenLVal(lisp.Symbol(text)), nil
	}
}

func isInteger(text string) bool {
	if strings.HasPrefix(text, "-") || strings.HasPrefix(text, "+") {
		text = text[1:]
	}
	if text == "" {
		return false
	}
	for _, c := range text {
		if c < '0' || '9' < c {
			return false
		}
	}
	return true
}

func (p *Parser) ParseLiteralString() (*lisp.LVal, error) {
	if !p.expect(token.STRING) {
		return nil, p.peekErrorf(lisp.CondUnexpectedToken, "invalid string literal: %v", p.PeekType())
	}
	text := p.Token().Text
	if !isTerminatedString(text) {
		return nil, p.errorf(lisp.CondUnexpectedEOF, "%s unterminated string literal", p.Token().Source)
	}
	return p.tokenLVal(lisp.String(unescapeString(text[1 : len(text)-1]))), nil
}

// isTerminatedString reports whether the string token text ends with an
// unescaped double quote.
func isTerminatedString(text string) bool {
	if len(text) < 2 || text[len(text)-1] != '"' {
		return false
	}
	escaped := false
	for _, c := range text[1 : len(text)-1] {
		escaped = !escaped && c == '\\'
	}
	return !escaped
}

// unescapeString translates \\, \" and \n.  Any other escaped character
// stands for itself.
func unescapeString(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var buf strings.Builder
	buf.Grow(len(s))
	escaped := false
	for _, c := range s {
		if !escaped {
			if c == '\\' {
				escaped = true
				continue
			}
			buf.WriteRune(c)
			continue
		}
		escaped = false
		if c == 'n' {
			buf.WriteByte('\n')
			continue
		}
		buf.WriteRune(c)
	}
	return buf.String()
}

// ParseReaderMacro parses a sigil followed by a form, producing the list
// (sym form).
func (p *Parser) ParseReaderMacro(typ token.Type, sym string) (*lisp.LVal, error) {
	if !p.expect(typ) {
		return nil, p.peekErrorf(lisp.CondUnexpectedToken, "invalid %s: %v", sym, p.PeekType())
	}
	tok := p.Token()
	p.skipComments()
	if p.PeekType() == token.EOF {
		return nil, p.peekErrorf(lisp.CondUnexpectedEOF, "%s end of input following %s", tok.Source, tok.Text)
	}
	v, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	head := lisp.Symbol(sym)
	head.Source = tok.Source
	form := lisp.List(head, v)
	form.Source = tok.Source
	return form, nil
}

// ParseSeq parses the elements of a list, vector or hash-map opened by a
// token of type open.
func (p *Parser) ParseSeq(open token.Type, typ lisp.LType) (*lisp.LVal, error) {
	if !p.expect(open) {
		return nil, p.peekErrorf(lisp.CondUnexpectedToken, "invalid %v: %v", typ, p.PeekType())
	}
	openTok := p.Token()
	closer, _ := open.Closer()
	var cells []*lisp.LVal
	for {
		p.skipComments()
		switch {
		case p.PeekType() == token.EOF:
			return nil, p.peekErrorf(lisp.CondUnexpectedEOF, "%s unmatched %s", openTok.Source, openTok.Text)
		case p.PeekType() == closer:
			p.ReadToken()
			if typ == lisp.LTable && len(cells)%2 != 0 {
				return nil, p.errorf(lisp.CondInvalidLiteral, "%s hash-map literal has an odd number of forms", openTok.Source)
			}
			v := &lisp.LVal{Type: typ, Cells: cells, Source: openTok.Source}
			return v, nil
		case p.PeekType().IsCloser():
			p.ReadToken()
			return nil, p.errorf(lisp.CondMismatchedDelimiter, "%s %s closes %s opened at %s",
				p.Token().Source, p.Token().Text, openTok.Text, openTok.Source)
		}
		x, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		cells = append(cells, x)
	}
}

func (p *Parser) skipComments() {
	for p.expect(token.COMMENT) {
	}
}

func (p *Parser) ReadToken() *token.Token {
	p.curr = p.peek
	p.peek = p.lex.NextToken()
	return p.curr
}

func (p *Parser) Token() *token.Token {
	return p.curr
}

func (p *Parser) Peek() *token.Token {
	return p.peek
}

func (p *Parser) PeekType() token.Type {
	return p.peek.Type
}

func (p *Parser) tokenLVal(v *lisp.LVal) *lisp.LVal {
	v.Source = p.Token().Source
	return v
}

func (p *Parser) expect(typ ...token.Type) bool {
	peekType := p.peek.Type
	if len(typ) == 0 {
		return peekType != token.EOF
	}
	for _, typ := range typ {
		if typ == peekType {
			p.ReadToken()
			return true
		}
	}
	return false
}

func (p *Parser) errorf(condition string, format string, v ...interface{}) error {
	return p.errorAt(p.Token(), condition, format, v...)
}

func (p *Parser) peekErrorf(condition string, format string, v ...interface{}) error {
	return p.errorAt(p.Peek(), condition, format, v...)
}

func (p *Parser) errorAt(tok *token.Token, condition string, format string, v ...interface{}) error {
	err := lisp.ErrorConditionf(condition, format, v...)
	if tok != nil {
		err.Source = tok.Source
	}
	return err
}
