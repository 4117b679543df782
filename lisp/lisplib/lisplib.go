// Package lisplib is used to conveniently load the standard library for the
// mal environment
package lisplib

import (
	"fmt"

	"github.com/epylar/mal/lisp"
	"github.com/epylar/mal/lisp/lisplib/libos"
	"github.com/epylar/mal/lisp/lisplib/libstring"
)

// prelude is evaluated after all builtins are bound.  Each entry is a single
// form.
var prelude = []string{
	`(def! not (fn* (a) (if a false true)))`,
	`(def! load-file
		(fn* (f)
			(eval (read-string (str "(do " (slurp f) "\nnil)")))))`,
	`(defmacro! cond
		(fn* (& xs)
			(if (> (count xs) 0)
				(list 'if (first xs)
					(if (> (count xs) 1)
						(nth xs 1)
						(throw "odd number of forms to cond"))
					(cons 'cond (rest (rest xs)))))))`,
}

// LoadLibrary loads the standard library into env.  The environment must
// have a Reader configured.
func LoadLibrary(env *lisp.LEnv) error {
	loaders := []func(*lisp.LEnv) error{
		libstring.LoadPackage,
		libos.LoadPackage,
	}
	for _, load := range loaders {
		err := load(env)
		if err != nil {
			return err
		}
	}
	for i, src := range prelude {
		_, err := env.LoadString(fmt.Sprintf("prelude[%d]", i), src)
		if err != nil {
			return err
		}
	}
	return nil
}
