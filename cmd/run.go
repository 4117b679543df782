package cmd

import (
	"fmt"
	"os"

	"github.com/epylar/mal/parser"
	"github.com/spf13/cobra"
)

var (
	runExpression bool
	runPrint      bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [FILE [ARG ...] | -e EXPR ...]",
	Short: "Run lisp code",
	Long: `Run lisp code supplied on the command line or in a file.

Without -e the first argument names a file and the remaining arguments are
bound to *ARGV*.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if !runExpression {
			runFile(args[0], args[1:])
			return
		}
		env, err := newEnv(nil)
		if err != nil {
			exitError(err)
		}
		for i := range args {
			exprs, err := parser.ReadProgram(fmt.Sprintf("<arg %d>", i), args[i])
			if err != nil {
				exitError(err)
			}
			for _, expr := range exprs {
				v, err := env.Eval(expr)
				if err != nil {
					exitError(err)
				}
				if runPrint {
					fmt.Fprintln(os.Stdout, v)
				}
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Here flags for the run command are defined
	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as lisp expressions")
	runCmd.Flags().BoolVarP(&runPrint, "print", "p", false,
		"Print expression values to stdout")
}
