// Package libstring provides the printing and reading builtins.
package libstring

import (
	"fmt"
	"strings"

	"github.com/epylar/mal/lisp"
)

// LoadPackage adds the string builtins to env
func LoadPackage(env *lisp.LEnv) error {
	env.AddBuiltins(builtins...)
	return nil
}

var builtins = []lisp.LBuiltinDef{
	lisp.NewBuiltin("pr-str", lisp.Formals(lisp.VarArgSymbol, "values"), BuiltinPrStr),
	lisp.NewBuiltin("str", lisp.Formals(lisp.VarArgSymbol, "values"), BuiltinStr),
	lisp.NewBuiltin("prn", lisp.Formals(lisp.VarArgSymbol, "values"), BuiltinPrn),
	lisp.NewBuiltin("println", lisp.Formals(lisp.VarArgSymbol, "values"), BuiltinPrintln),
	lisp.NewBuiltin("read-string", lisp.Formals("source"), BuiltinReadString),
}

func join(args []*lisp.LVal, readable bool, sep string) string {
	parts := make([]string, len(args))
	for i := range args {
		parts[i] = lisp.Print(args[i], readable)
	}
	return strings.Join(parts, sep)
}

// BuiltinPrStr returns the readable representations of its arguments joined
// by spaces.
func BuiltinPrStr(env *lisp.LEnv, args []*lisp.LVal) (*lisp.LVal, error) {
	return lisp.String(join(args, true, " ")), nil
}

// BuiltinStr concatenates the raw representations of its arguments.
func BuiltinStr(env *lisp.LEnv, args []*lisp.LVal) (*lisp.LVal, error) {
	return lisp.String(join(args, false, "")), nil
}

// BuiltinPrn writes the readable forms of its arguments to stdout on one line.
func BuiltinPrn(env *lisp.LEnv, args []*lisp.LVal) (*lisp.LVal, error) {
	return writeLine(env, "prn", join(args, true, " "))
}

// BuiltinPrintln writes the raw forms of its arguments to stdout on one line.
func BuiltinPrintln(env *lisp.LEnv, args []*lisp.LVal) (*lisp.LVal, error) {
	return writeLine(env, "println", join(args, false, " "))
}

func writeLine(env *lisp.LEnv, name string, line string) (*lisp.LVal, error) {
	_, err := fmt.Fprintln(env.Runtime.Stdout, line)
	if err != nil {
		return nil, env.ErrorConditionf(lisp.CondIO, "%s: %v", name, err)
	}
	return lisp.Nil(), nil
}

// BuiltinReadString parses its argument with the environment's reader.
func BuiltinReadString(env *lisp.LEnv, args []*lisp.LVal) (*lisp.LVal, error) {
	src := args[0]
	if src.Type != lisp.LString {
		return nil, env.ErrorConditionf(lisp.CondType, "read-string: argument is not a string: %v", src.Type)
	}
	if env.Runtime.Reader == nil {
		return nil, env.ErrorConditionf(lisp.CondIO, "read-string: no reader configured")
	}
	return env.Runtime.Reader.Read("read-string", strings.NewReader(src.Str))
}
