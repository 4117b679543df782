package maltest

import (
	"bytes"
	"testing"

	"github.com/epylar/mal/lisp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunTestFile(t *testing.T) {
	RunTestFile(t, "testdata/basic.mal")
}

func TestRunTestSuite(t *testing.T) {
	RunTestSuite(t, TestSuite{
		{"isolated 1", TestSequence{
			{"(def! a 1)", "1", ""},
			{"a", "1", ""},
		}},
		{"isolated 2", TestSequence{
			{"a", "error: unbound symbol: a", ""},
			{`(prn "x")`, "nil", "\"x\"\n"},
		}},
	})
}

func TestRep(t *testing.T) {
	var stdout bytes.Buffer
	env, err := NewEnv(&stdout, lisp.WithMaximumStackHeight(10))
	require.NoError(t, err)

	assert.Equal(t, "6", Rep(env, "(* 2 3)"))
	assert.Equal(t, "error: no form to read", Rep(env, ""))
	assert.Equal(t, `error: <input>:1:1 unmatched (`, Rep(env, "(+ 1"))
	assert.Equal(t, "nil", Rep(env, `(println "out")`))
	assert.Equal(t, "out\n", stdout.String())

	Rep(env, "(def! down (fn* (n) (if (= n 0) 0 (+ 1 (down (- n 1))))))")
	assert.Equal(t, "3", Rep(env, "(down 3)"))
	assert.Regexp(t, "^error: .*stack", Rep(env, "(down 20)"))
}
