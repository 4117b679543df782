package lisp

import (
	"errors"
	"fmt"

	"github.com/epylar/mal/parser/token"
)

// Error conditions raised by the reader and the evaluator.
const (
	CondUnexpectedEOF       = "unexpected-eof"
	CondMismatchedDelimiter = "mismatched-delimiter"
	CondUnexpectedToken     = "unexpected-token"
	CondTrailingTokens      = "trailing-tokens"
	CondInvalidLiteral      = "invalid-literal"
	CondEmptyInput          = "empty-input"
	CondUnboundSymbol       = "unbound-symbol"
	CondSyntax              = "syntax-error"
	CondNotCallable         = "not-callable"
	CondArity               = "arity-error"
	CondType                = "type-error"
	CondDivisionByZero      = "division-by-zero"
	CondIndexOutOfRange     = "index-out-of-range"
	CondStackOverflow       = "stack-overflow"
	CondIO                  = "io-error"
	CondUser                = "user-error"
)

// ErrorVal implements the error interface so that errors can carry first
// class lisp values.  Payload is the value seen by a catch* handler.  For
// errors raised by the runtime the payload is a string describing the failure.
type ErrorVal struct {
	Condition string
	Payload   *LVal
	Source    *token.Location
	Stack     *CallStack
}

// Error implements the error interface.
func (e *ErrorVal) Error() string {
	if e.Payload == nil {
		return e.Condition
	}
	if e.Payload.Type == LString {
		return e.Payload.Str
	}
	return Print(e.Payload, true)
}

// ErrorConditionf returns an ErrorVal with the given condition and a
// formatted string payload.
func ErrorConditionf(condition string, format string, v ...interface{}) *ErrorVal {
	return &ErrorVal{
		Condition: condition,
		Payload:   String(fmt.Sprintf(format, v...)),
	}
}

// Condition returns the condition of err.  Errors that did not originate in
// the lisp runtime have an empty condition.
func Condition(err error) string {
	var lerr *ErrorVal
	if errors.As(err, &lerr) {
		return lerr.Condition
	}
	return ""
}

// ErrorPayload returns the lisp value that represents err.
func ErrorPayload(err error) *LVal {
	var lerr *ErrorVal
	if errors.As(err, &lerr) && lerr.Payload != nil {
		return lerr.Payload
	}
	return String(err.Error())
}

// ErrorConditionf returns an ErrorVal with a formatted string payload and a
// copy of the current call stack.
func (env *LEnv) ErrorConditionf(condition string, format string, v ...interface{}) error {
	lerr := ErrorConditionf(condition, format, v...)
	lerr.Stack = env.Runtime.Stack.Copy()
	return lerr
}

// Throw returns a user error carrying payload unchanged.
func (env *LEnv) Throw(payload *LVal) error {
	return &ErrorVal{
		Condition: CondUser,
		Payload:   payload,
		Stack:     env.Runtime.Stack.Copy(),
	}
}

// berrf formats an error raised by the builtin name.
func berrf(env *LEnv, name string, condition string, format string, v ...interface{}) error {
	return env.ErrorConditionf(condition, "%s: %s", name, fmt.Sprintf(format, v...))
}

func arityErrorf(env *LEnv, name string, format string, v ...interface{}) error {
	return berrf(env, name, CondArity, format, v...)
}

func typeErrorf(env *LEnv, name string, format string, v ...interface{}) error {
	return berrf(env, name, CondType, format, v...)
}
