package lisp

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	lerr := ErrorConditionf(CondType, "test error %d", 1)
	assert.Equal(t, "test error 1", lerr.Error())
	assert.Equal(t, CondType, Condition(lerr))
	assert.Equal(t, `"test error 1"`, ErrorPayload(lerr).String())

	wrapped := fmt.Errorf("context: %w", lerr)
	assert.Equal(t, CondType, Condition(wrapped))

	goerr := errors.New("test error message")
	assert.Equal(t, "", Condition(goerr))
	assert.Equal(t, `"test error message"`, ErrorPayload(goerr).String())

	lerr = &ErrorVal{Condition: CondUser, Payload: List(Int(1), Keyword("a"))}
	assert.Equal(t, "(1 :a)", lerr.Error())
	assert.Same(t, lerr.Payload, ErrorPayload(lerr))
}

func TestRuntimeErrors(t *testing.T) {
	env := NewEnv(nil)
	require.NoError(t, InitializeUserEnv(env))

	payload := Table(Keyword("code"), Int(7))
	_, err := env.Eval(List(Symbol("throw"), List(Symbol("quote"), payload)))
	require.Error(t, err)
	assert.Equal(t, CondUser, Condition(err))
	assert.Same(t, payload, ErrorPayload(err))

	_, err = env.Eval(List(Symbol("nth"), List(Symbol("list")), Int(0)))
	require.Error(t, err)
	assert.Equal(t, CondIndexOutOfRange, Condition(err))
	lerr, ok := err.(*ErrorVal)
	require.True(t, ok)
	require.NotNil(t, lerr.Stack)
	assert.Equal(t, "nth", lerr.Stack.Top().Name)

	conditions := []struct {
		form *LVal
		cond string
	}{
		{Symbol("nope"), CondUnboundSymbol},
		{List(Int(1)), CondNotCallable},
		{List(Symbol("if")), CondSyntax},
		{List(Symbol("count"), Int(1)), CondType},
		{List(Symbol("count")), CondArity},
		{List(Symbol("/"), Int(1), Int(0)), CondDivisionByZero},
		{List(Symbol("try*"), List(Symbol("throw"), Int(1))), CondUser},
	}
	for i, test := range conditions {
		_, err := env.Eval(test.form)
		assert.Equal(t, test.cond, Condition(err), "test %d: %v", i, test.form)
	}
}
