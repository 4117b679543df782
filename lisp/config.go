package lisp

import (
	"io"
	"log"
	"os"
)

// Config is a function that configures a root environment or its runtime.
type Config func(env *LEnv) error

// InitializeUserEnv binds the core builtins into env, sets up default I/O and
// applies each config in order.
func InitializeUserEnv(env *LEnv, config ...Config) error {
	env.Runtime.Stdout = os.Stdout
	env.Runtime.Stderr = os.Stderr
	env.AddBuiltins()
	for _, fn := range config {
		err := fn(env)
		if err != nil {
			return err
		}
	}
	return nil
}

// WithMaximumStackHeight returns a Config that will prevent an execution
// environment from allowing more than n nested non-tail evaluations.
func WithMaximumStackHeight(n int) Config {
	return func(env *LEnv) error {
		env.Runtime.Stack.MaxHeight = n
		return nil
	}
}

// WithReader returns a Config that makes environments use r to parse source
// streams.  There is no default Reader for an environment.
func WithReader(r Reader) Config {
	return func(env *LEnv) error {
		env.Runtime.Reader = r
		return nil
	}
}

// WithStdout returns a Config that makes printing builtins write to w instead
// of the default, os.Stdout.
func WithStdout(w io.Writer) Config {
	return func(env *LEnv) error {
		env.Runtime.Stdout = w
		return nil
	}
}

// WithStderr returns a Config that makes environments write debugging output
// to w instead of the default, os.Stderr.
func WithStderr(w io.Writer) Config {
	return func(env *LEnv) error {
		env.Runtime.Stderr = w
		return nil
	}
}

// WithTrace returns a Config that logs every evaluation step and macro
// expansion to w.
func WithTrace(w io.Writer) Config {
	return func(env *LEnv) error {
		env.Runtime.Trace = log.New(w, "", 0)
		return nil
	}
}
