package parser

import (
	"strings"
	"testing"

	"github.com/epylar/mal/lisp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadString(t *testing.T) {
	tests := []struct {
		source string
		result string
	}{
		{"1", "1"},
		{"-5", "-5"},
		{"+5", "5"},
		{"2147483647", "2147483647"},
		{"-2147483648", "-2147483648"},
		{"nil", "nil"},
		{"true", "true"},
		{"false", "false"},
		{"abc", "abc"},
		{"-", "-"},
		{"->>", "->>"},
		{":kw", ":kw"},
		{`"abc"`, `"abc"`},
		{`"a\"b"`, `"a\"b"`},
		{`"a\nb"`, `"a\nb"`},
		{`"a\\b"`, `"a\\b"`},
		{`""`, `""`},
		{"(1 2 3)", "(1 2 3)"},
		{"( + 1 ,2 )", "(+ 1 2)"},
		{"()", "()"},
		{"[1 [2 (3)]]", "[1 [2 (3)]]"},
		{`{:a 1 "b" [2]}`, `{:a 1 "b" [2]}`},
		{"'x", "(quote x)"},
		{"`(a ~b ~@c)", "(quasiquote (a (unquote b) (splice-unquote c)))"},
		{"@a", "(deref a)"},
		{"' ; comment\n x", "(quote x)"},
		{"; leading\n(1 ; inner\n 2)\n; trailing", "(1 2)"},
	}
	for _, test := range tests {
		v, err := ReadString(test.source)
		if assert.NoError(t, err, "%q", test.source) {
			assert.Equal(t, test.result, v.String(), "%q", test.source)
		}
	}
}

func TestReadStringErrors(t *testing.T) {
	tests := []struct {
		source string
		cond   string
	}{
		{"", lisp.CondEmptyInput},
		{"  ,\n", lisp.CondEmptyInput},
		{"; only a comment", lisp.CondEmptyInput},
		{"(1 2", lisp.CondUnexpectedEOF},
		{"[1 (2 3)", lisp.CondUnexpectedEOF},
		{`"abc`, lisp.CondUnexpectedEOF},
		{`"abc\"`, lisp.CondUnexpectedEOF},
		{"'", lisp.CondUnexpectedEOF},
		{"(1]", lisp.CondMismatchedDelimiter},
		{"[1 2)", lisp.CondMismatchedDelimiter},
		{"{:a 1]", lisp.CondMismatchedDelimiter},
		{")", lisp.CondUnexpectedToken},
		{"1 2", lisp.CondTrailingTokens},
		{"(1) )", lisp.CondTrailingTokens},
		{"99999999999", lisp.CondInvalidLiteral},
		{"2147483648", lisp.CondInvalidLiteral},
		{"{:a}", lisp.CondInvalidLiteral},
	}
	for _, test := range tests {
		_, err := ReadString(test.source)
		if assert.Error(t, err, "%q", test.source) {
			assert.Equal(t, test.cond, lisp.Condition(err), "%q: %v", test.source, err)
		}
	}
}

func TestReadProgram(t *testing.T) {
	exprs, err := ReadProgram("test.mal", "(def! a 1)\n; comment\n[a]\n\"s\"")
	require.NoError(t, err)
	var printed []string
	for _, v := range exprs {
		printed = append(printed, v.String())
	}
	assert.Equal(t, []string{"(def! a 1)", "[a]", `"s"`}, printed)
	assert.Equal(t, "test.mal:1:1", exprs[0].Source.String())
	assert.Equal(t, "test.mal:3:1", exprs[1].Source.String())
	assert.Equal(t, "test.mal:3:2", exprs[1].Cells[0].Source.String())

	exprs, err = ReadProgram("empty.mal", " ; nothing\n")
	require.NoError(t, err)
	assert.Empty(t, exprs)

	_, err = ReadProgram("bad.mal", "(def! a 1)\n(a")
	require.Error(t, err)
	assert.True(t, IsIncomplete(err))
}

func TestIsIncomplete(t *testing.T) {
	for _, src := range []string{"(", "(1 [2", `"abc`, "'"} {
		_, err := ReadString(src)
		assert.True(t, IsIncomplete(err), "%q", src)
	}
	for _, src := range []string{")", "(1]", "1 2", ""} {
		_, err := ReadString(src)
		assert.False(t, IsIncomplete(err), "%q", src)
	}
}

func TestReaderSourceName(t *testing.T) {
	_, err := NewReader().Read("input.mal", strings.NewReader("\n  (1]"))
	require.Error(t, err)
	lerr, ok := err.(*lisp.ErrorVal)
	require.True(t, ok)
	require.NotNil(t, lerr.Source)
	assert.Equal(t, "input.mal:2:5", lerr.Source.String())
	assert.Contains(t, lerr.Error(), "opened at input.mal:2:3")
}

func BenchmarkReadProgram(b *testing.B) {
	var src strings.Builder
	for i := 0; i < 200; i++ {
		src.WriteString("(def! fib (fn* (n) (if (< n 2) n (+ (fib (- n 1)) (fib (- n 2)))))) ; comment\n")
		src.WriteString(`{:a [1 2 3] "key" "a \"quoted\" value"}` + "\n")
		src.WriteString("`(a ~b ~@(list 1 2) @c 'd)\n")
	}
	text := src.String()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := ReadProgram("bench.mal", text)
		if err != nil {
			b.Fatal(err)
		}
	}
}
