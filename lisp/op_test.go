package lisp_test

import (
	"testing"

	"github.com/epylar/mal/maltest"
)

func TestSpecialOp(t *testing.T) {
	tests := maltest.TestSuite{
		{"def!", maltest.TestSequence{
			{"(def! x 1)", "1", ""},
			{"x", "1", ""},
			{"(def! x (+ x 1))", "2", ""},
			{"x", "2", ""},
			{"(def! 1 2)", "error: def!: first argument is not a symbol: int", ""},
			{"(def! y)", "error: def!: two arguments expected (got 1)", ""},
			{"(def! y (throw \"no\"))", "error: no", ""},
			{"y", "error: unbound symbol: y", ""},
		}},
		{"if", maltest.TestSequence{
			{"(if true 1 2)", "1", ""},
			{"(if false 1 2)", "2", ""},
			{"(if nil 1 2)", "2", ""},
			{"(if 0 1 2)", "1", ""},
			{`(if "" 1 2)`, "1", ""},
			{"(if () 1 2)", "1", ""},
			{"(if false 1)", "nil", ""},
			{"(if true (prn 1) (prn 2))", "nil", "1\n"},
			{"(if)", "error: if: two or three arguments expected (got 0)", ""},
			{"(if 1 2 3 4)", "error: if: two or three arguments expected (got 4)", ""},
		}},
		{"do", maltest.TestSequence{
			{"(do)", "nil", ""},
			{"(do 1 2 3)", "3", ""},
			{"(do (prn 1) (prn 2) 3)", "3", "1\n2\n"},
			{"(do (def! a 6) 7 (+ a 8))", "14", ""},
			{"a", "6", ""},
			{"(do (prn 1) (throw \"stop\") (prn 2))", "error: stop", "1\n"},
		}},
		{"let*", maltest.TestSequence{
			{"(let* () 5)", "5", ""},
			{"(let* (z 9) z)", "9", ""},
			{"(let* (z (+ 2 3)) (+ 1 z))", "6", ""},
			{"(let* (p (+ 2 3) q (+ 2 p)) (+ p q))", "12", ""},
			{"(let* [a 1 b (+ a 1)] [a b])", "[1 2]", ""},
			{"(let* (a 1) (prn a) (+ a 1))", "2", "1\n"},
			{"(let* (a) a)", "error: let*: odd number of binding forms: 1", ""},
			{"(let* (1 2) 3)", "error: let*: binding name is not a symbol: 1", ""},
			{"(let* 1 2)", "error: let*: bindings are not a list or vector: int", ""},
			{"(let* (a 1))", "error: let*: too few arguments provided: 1", ""},
		}},
		{"fn*", maltest.TestSequence{
			{"(fn* (a) a)", "#<function>", ""},
			{"((fn* [a b] (+ a b)) 2 3)", "5", ""},
			{"((fn* () 4))", "4", ""},
			{"((fn* (a) (prn a) a) 3)", "3", "3\n"},
			{"(fn* (1) 1)", "error: fn*: formal argument is not a symbol: 1", ""},
			{"(fn* (a &) 1)", "error: fn*: symbol & must be followed by exactly one formal argument", ""},
			{"(fn* (& a b) 1)", "error: fn*: symbol & must be followed by exactly one formal argument", ""},
			{"(fn* (a))", "error: fn*: too few arguments provided: 1", ""},
		}},
		{"quote", maltest.TestSequence{
			{"(quote a)", "a", ""},
			{"'a", "a", ""},
			{"'(1 2 (3 4))", "(1 2 (3 4))", ""},
			{"''a", "(quote a)", ""},
			{"(quote)", "error: quote: one argument expected (got 0)", ""},
		}},
		{"quasiquote", maltest.TestSequence{
			{"`7", "7", ""},
			{"`a", "a", ""},
			{"`(1 2 3)", "(1 2 3)", ""},
			{"`()", "()", ""},
			{"(def! b 8)", "8", ""},
			{"`(1 ~b 3)", "(1 8 3)", ""},
			{"`~b", "8", ""},
			{"(def! c '(1 \"b\" \"d\"))", `(1 "b" "d")`, ""},
			{"`(1 c 3)", "(1 c 3)", ""},
			{"`(1 ~c 3)", `(1 (1 "b" "d") 3)`, ""},
			{"`(1 ~@c 3)", `(1 1 "b" "d" 3)`, ""},
			{"`(~@c)", `(1 "b" "d")`, ""},
			{"`((~b) ~@c)", `((8) 1 "b" "d")`, ""},
			{"`[1 ~b]", "[1 (unquote b)]", ""},
			{"(quasiquote (unquote))", "error: unquote: one argument expected (got 0)", ""},
			{"`(~undefined-symbol)", "error: unbound symbol: undefined-symbol", ""},
		}},
		{"try*", maltest.TestSequence{
			{`(try* (throw "oops") (catch* e e))`, `"oops"`, ""},
			{`(try* 123 (catch* e 456))`, "123", ""},
			{`(try* (abc 1 2) (catch* exc (prn "exc is:" exc)))`, "nil", "\"exc is:\" \"unbound symbol: abc\"\n"},
			{`(try* (nth () 1) (catch* exc exc))`, `"nth: index 1 out of range [0, 0)"`, ""},
			{`(try* (throw {:data "foo"}) (catch* exc (get exc :data)))`, `"foo"`, ""},
			{`(try* (throw (list 1 2)) (catch* exc exc))`, "(1 2)", ""},
			{`(try* (throw nil) (catch* exc (nil? exc)))`, "true", ""},
			{`(try* (/ 1 0) (catch* e (str "caught " e)))`, `"caught /: division by zero"`, ""},
			{`(try* 1)`, "1", ""},
			{`(try* (throw "x"))`, "error: x", ""},
			{`(try* (throw "x") (catch* e (throw (str e "y"))))`, "error: xy", ""},
			{`(try* (throw "x") (catch* e))`, "error: try*: second argument is not a catch* form: (catch* e)", ""},
			{`(def! e 1)`, "1", ""},
			{`(try* (throw 2) (catch* e e))`, "2", ""},
			{`e`, "1", ""},
		}},
		{"macroexpand", maltest.TestSequence{
			{"(defmacro! one (fn* () 1))", "#<macro>", ""},
			{"(macroexpand (one))", "1", ""},
			{"(defmacro! unless (fn* (pred a b) `(if ~pred ~b ~a)))", "#<macro>", ""},
			{"(macroexpand (unless PRED A B))", "(if PRED B A)", ""},
			{"(macroexpand (+ 1 2))", "(+ 1 2)", ""},
			{"(macroexpand)", "error: macroexpand: one argument expected (got 0)", ""},
		}},
	}
	maltest.RunTestSuite(t, tests)
}
