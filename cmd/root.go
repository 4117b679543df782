package cmd

import (
	"fmt"
	"os"

	"github.com/epylar/mal/lisp"
	"github.com/epylar/mal/lisp/lisplib"
	"github.com/epylar/mal/lisp/lisplib/libos"
	"github.com/epylar/mal/parser"
	"github.com/epylar/mal/repl"
	"github.com/spf13/cobra"
)

var (
	rootTrace          bool
	rootStackTrace     bool
	rootMaxStackHeight int
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mal [FILE [ARG ...]]",
	Short: "A small lisp interpreter",
	Long: `A small lisp interpreter.

Without arguments mal starts an interactive session.  Given a file, mal
evaluates it with the remaining arguments bound to *ARGV*.`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			runFile(args[0], args[1:])
			return
		}
		runRepl()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately.  This is called by main.main().  It only needs to happen
// once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&rootTrace, "trace", false,
		"Log evaluation steps and macro expansions to stderr")
	rootCmd.PersistentFlags().BoolVar(&rootStackTrace, "stack-trace", false,
		"Print the call stack when an error is reported")
	rootCmd.PersistentFlags().IntVar(&rootMaxStackHeight, "max-stack-height", lisp.DefaultMaxStackHeight,
		"Maximum number of nested non-tail evaluations")
}

// newEnv returns a root environment configured from the command line flags
// with the standard library loaded.
func newEnv(argv []string) (*lisp.LEnv, error) {
	config := []lisp.Config{
		lisp.WithReader(parser.NewReader()),
		lisp.WithMaximumStackHeight(rootMaxStackHeight),
	}
	if rootTrace {
		config = append(config, lisp.WithTrace(os.Stderr))
	}
	env := lisp.NewEnv(nil)
	err := lisp.InitializeUserEnv(env, config...)
	if err != nil {
		return nil, err
	}
	err = lisplib.LoadLibrary(env)
	if err != nil {
		return nil, err
	}
	libos.BindArgs(env, argv)
	return env, nil
}

func runRepl() {
	env, err := newEnv(nil)
	if err != nil {
		exitError(err)
	}
	err = repl.RunRepl(env, repl.DefaultPrompt, rootStackTrace)
	if err != nil {
		exitError(err)
	}
}

func runFile(path string, argv []string) {
	env, err := newEnv(argv)
	if err != nil {
		exitError(err)
	}
	_, err = env.Eval(lisp.List(lisp.Symbol("load-file"), lisp.String(path)))
	if err != nil {
		exitError(err)
	}
}

func exitError(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	lerr, ok := err.(*lisp.ErrorVal)
	if rootStackTrace && ok && lerr.Stack != nil {
		lerr.Stack.DebugPrint(os.Stderr)
	}
	os.Exit(1)
}
