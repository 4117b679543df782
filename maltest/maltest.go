// Package maltest runs mal expressions against isolated environments and
// compares the printed results.
package maltest

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/epylar/mal/lisp"
	"github.com/epylar/mal/lisp/lisplib"
	"github.com/epylar/mal/parser"
)

// NewEnv returns a root environment with the full library loaded.  Output of
// the printing builtins is written to stdout when it is non-nil.
func NewEnv(stdout *bytes.Buffer, config ...lisp.Config) (*lisp.LEnv, error) {
	env := lisp.NewEnv(nil)
	base := []lisp.Config{lisp.WithReader(parser.NewReader())}
	if stdout != nil {
		base = append(base, lisp.WithStdout(stdout))
	}
	err := lisp.InitializeUserEnv(env, append(base, config...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize lisp environment: %v", err)
	}
	err = lisplib.LoadLibrary(env)
	if err != nil {
		return nil, fmt.Errorf("failed to load package library: %v", err)
	}
	return env, nil
}

// Rep reads a single form from expr, evaluates it in env and returns the
// printed result.  Errors are rendered as "error: <message>".
func Rep(env *lisp.LEnv, expr string) string {
	v, err := parser.ReadString(expr)
	if err == nil {
		v, err = env.Eval(v)
	}
	if err != nil {
		return "error: " + err.Error()
	}
	return v.String()
}

// TestSequence is a sequence of lisp expressions which are evaluated sequentially
// by a lisp.LEnv.
type TestSequence []struct {
	Expr   string // a lisp expression
	Result string // the printed result
	Output string // text written by printing builtins
}

// TestSuite is a set of named TestSequences
type TestSuite []struct {
	Name string
	TestSequence
}

// RunTestSuite runs each TestSequence in tests on isolated lisp.LEnvs.
func RunTestSuite(t *testing.T, tests TestSuite) {
	for i, test := range tests {
		var stdout bytes.Buffer
		env, err := NewEnv(&stdout)
		if err != nil {
			t.Fatal(err)
		}
		for j, expr := range test.TestSequence {
			stdout.Reset()
			result := Rep(env, expr.Expr)
			if result != expr.Result {
				t.Errorf("test %d %q: expr %d: expected result %s (got %s)", i, test.Name, j, expr.Result, result)
			}
			if stdout.String() != expr.Output {
				t.Errorf("test %d %q: expr %d: expected output %q (got %q)", i, test.Name, j, expr.Output, stdout.String())
			}
		}
	}
}

// RunTestFile runs a test script.  A script is a series of single line
// expressions.  An expression may be followed by lines of the form
//
//	;/REGEXP
//	;=>RESULT
//
// which respectively match a line of output and the printed result of the
// expression.  Other lines starting with ';' are ignored.  All expressions in
// a file share one environment.
func RunTestFile(t *testing.T, path string) {
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Unable to read test file: %v", err)
	}
	defer f.Close()

	var stdout bytes.Buffer
	env, err := NewEnv(&stdout)
	if err != nil {
		t.Fatal(err)
	}

	var (
		expr    string
		exprLn  int
		result  string
		outputs []string
	)
	scanner := bufio.NewScanner(f)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, ";/"):
			pattern := "^" + line[2:] + "$"
			if len(outputs) == 0 {
				t.Errorf("%s:%d: output %q does not follow an expression", path, lineno, line[2:])
				continue
			}
			if !regexp.MustCompile(pattern).MatchString(outputs[0]) {
				t.Errorf("%s:%d: %s: expected output matching %q (got %q)", path, exprLn, expr, line[2:], outputs[0])
			}
			outputs = outputs[1:]
		case strings.HasPrefix(line, ";=>"):
			if expr == "" {
				t.Errorf("%s:%d: result %q does not follow an expression", path, lineno, line[3:])
				continue
			}
			if result != line[3:] {
				t.Errorf("%s:%d: %s: expected result %s (got %s)", path, exprLn, expr, line[3:], result)
			}
		case line == "" || strings.HasPrefix(line, ";"):
		default:
			stdout.Reset()
			expr, exprLn = line, lineno
			result = Rep(env, line)
			outputs = splitLines(stdout.String())
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("Unable to read test file: %v", err)
	}
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
