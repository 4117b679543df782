// Package libos provides builtins which touch the host system.
package libos

import (
	"os"

	"github.com/epylar/mal/lisp"
)

// ArgvSymbol is bound to the list of command line arguments following the
// script name.
const ArgvSymbol = "*ARGV*"

// LoadPackage adds the os builtins to env and binds ArgvSymbol to an empty
// list.
func LoadPackage(env *lisp.LEnv) error {
	env.AddBuiltins(builtins...)
	BindArgs(env, nil)
	return nil
}

// BindArgs binds ArgvSymbol to a list of the strings args in the root of
// env.
func BindArgs(env *lisp.LEnv, args []string) {
	cells := make([]*lisp.LVal, len(args))
	for i := range args {
		cells[i] = lisp.String(args[i])
	}
	env.PutGlobal(ArgvSymbol, lisp.List(cells...))
}

var builtins = []lisp.LBuiltinDef{
	lisp.NewBuiltin("slurp", lisp.Formals("path"), BuiltinSlurp),
	lisp.NewBuiltin("getenv", lisp.Formals("key"), BuiltinGetenv),
}

// BuiltinSlurp returns the contents of a file as a string.
func BuiltinSlurp(env *lisp.LEnv, args []*lisp.LVal) (*lisp.LVal, error) {
	path := args[0]
	if path.Type != lisp.LString {
		return nil, env.ErrorConditionf(lisp.CondType, "slurp: argument is not a string: %v", path.Type)
	}
	b, err := os.ReadFile(path.Str)
	if err != nil {
		return nil, env.ErrorConditionf(lisp.CondIO, "slurp: %v", err)
	}
	return lisp.String(string(b)), nil
}

// BuiltinGetenv returns the value of an environment variable, or nil if it is
// unset.
func BuiltinGetenv(env *lisp.LEnv, args []*lisp.LVal) (*lisp.LVal, error) {
	key := args[0]
	if key.Type != lisp.LString && key.Type != lisp.LSymbol {
		return nil, env.ErrorConditionf(lisp.CondType, "getenv: argument not a string or symbol: %v", key.Type)
	}
	val, ok := os.LookupEnv(key.Str)
	if !ok {
		return lisp.Nil(), nil
	}
	return lisp.String(val), nil
}
