package repl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/epylar/mal/maltest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession(t *testing.T) {
	var out bytes.Buffer
	env, err := maltest.NewEnv(&out)
	require.NoError(t, err)
	sess := NewSession(env, &out)

	tests := []struct {
		line     string
		complete bool
		output   string
	}{
		{"", true, ""},
		{"   ", true, ""},
		{"; just a comment", true, ""},
		{"(+ 1 2)", true, "3\n"},
		{"(def! f", false, ""},
		{"", false, ""},
		{"  (fn* (x)", false, ""},
		{"    (* x x)))", true, "#<function>\n"},
		{"(f 7)", true, "49\n"},
		{`"abc`, false, ""},
		{`def"`, true, "\"abc\\ndef\"\n"},
		{"(prn :a) (prn :b)", true, "error: <input>:1:10 unexpected ( following form\n"},
		{"(1]", true, "error: <input>:1:3 ] closes ( opened at <input>:1:1\n"},
		{"(undefined-fn 1)", true, "error: unbound symbol: undefined-fn\n"},
		{"(throw {:a 1})", true, "error: {:a 1}\n"},
		{`(println "side" "effect")`, true, "side effect\nnil\n"},
		{"[1 (+ 1 1)]", true, "[1 2]\n"},
	}
	for i, test := range tests {
		out.Reset()
		complete := sess.Feed(test.line)
		assert.Equal(t, test.complete, complete, "test %d: %q", i, test.line)
		assert.Equal(t, !test.complete, sess.Pending(), "test %d: %q", i, test.line)
		assert.Equal(t, test.output, out.String(), "test %d: %q", i, test.line)
	}
}

func TestSessionReset(t *testing.T) {
	var out bytes.Buffer
	env, err := maltest.NewEnv(&out)
	require.NoError(t, err)
	sess := NewSession(env, &out)

	assert.False(t, sess.Feed("(list 1"))
	assert.True(t, sess.Pending())
	sess.Reset()
	assert.False(t, sess.Pending())
	assert.True(t, sess.Feed("(list 2)"))
	assert.Equal(t, "(2)\n", out.String())
}

func TestSessionStackTrace(t *testing.T) {
	var out bytes.Buffer
	env, err := maltest.NewEnv(&out)
	require.NoError(t, err)
	sess := NewSession(env, &out)
	sess.StackTrace = true

	assert.True(t, sess.Feed("(nth (list) 3)"))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.True(t, len(lines) >= 3, "output: %q", out.String())
	assert.Equal(t, "error: nth: index 3 out of range [0, 0)", lines[0])
	assert.Equal(t, "Stack Trace [1 frames -- entrypoint last]:", lines[1])
	assert.Contains(t, lines[2], "height 0: <input>:1:1: nth")
}

func TestDefaultHistoryFile(t *testing.T) {
	t.Setenv("HOME", "/tmp/mal-home")
	assert.Equal(t, "/tmp/mal-home/"+HistoryFileName, DefaultHistoryFile())
}
