package lexer

import (
	"testing"

	"github.com/epylar/mal/parser/token"
	"github.com/stretchr/testify/assert"
)

func TestLexer(t *testing.T) {
	type tok struct {
		typ  token.Type
		text string
	}
	tests := []struct {
		name   string
		source string
		tokens []tok
	}{
		{"empty", "", nil},
		{"separators", " ,\t\n,, ", nil},
		{"atoms", "1 -2 abc nil :kw +", []tok{
			{token.ATOM, "1"},
			{token.ATOM, "-2"},
			{token.ATOM, "abc"},
			{token.ATOM, "nil"},
			{token.ATOM, ":kw"},
			{token.ATOM, "+"},
		}},
		{"delimiters", "([{}])", []tok{
			{token.PAREN_L, "("},
			{token.BRACKET_L, "["},
			{token.BRACE_L, "{"},
			{token.BRACE_R, "}"},
			{token.BRACKET_R, "]"},
			{token.PAREN_R, ")"},
		}},
		{"reader macros", "'a `b ~c ~@d @e", []tok{
			{token.QUOTE, "'"},
			{token.ATOM, "a"},
			{token.QUASIQUOTE, "`"},
			{token.ATOM, "b"},
			{token.UNQUOTE, "~"},
			{token.ATOM, "c"},
			{token.SPLICE_UNQUOTE, "~@"},
			{token.ATOM, "d"},
			{token.DEREF, "@"},
			{token.ATOM, "e"},
		}},
		{"strings", `"abc" "a\"b" "" "unterminated`, []tok{
			{token.STRING, `"abc"`},
			{token.STRING, `"a\"b"`},
			{token.STRING, `""`},
			{token.STRING, `"unterminated`},
		}},
		{"comments", "1 ; comment (\n2", []tok{
			{token.ATOM, "1"},
			{token.COMMENT, "; comment ("},
			{token.ATOM, "2"},
		}},
		{"adjacent", "(+ 1,2)", []tok{
			{token.PAREN_L, "("},
			{token.ATOM, "+"},
			{token.ATOM, "1"},
			{token.ATOM, "2"},
			{token.PAREN_R, ")"},
		}},
	}
	for _, test := range tests {
		lex := New(token.NewScannerBytes("test", []byte(test.source)))
		var tokens []tok
		for {
			tk := lex.NextToken()
			if tk.Type == token.EOF {
				break
			}
			tokens = append(tokens, tok{tk.Type, tk.Text})
			if len(tokens) > len(test.tokens)+1 {
				break
			}
		}
		assert.Equal(t, test.tokens, tokens, test.name)
		assert.Equal(t, token.EOF, lex.NextToken().Type, test.name)
	}
}

func TestLexerLocation(t *testing.T) {
	lex := New(token.NewScannerBytes("test.mal", []byte("(a\n  b)")))
	var locs []string
	for tk := lex.NextToken(); tk.Type != token.EOF; tk = lex.NextToken() {
		locs = append(locs, tk.Source.String())
	}
	assert.Equal(t, []string{"test.mal:1:1", "test.mal:1:2", "test.mal:2:3", "test.mal:2:4"}, locs)
}
