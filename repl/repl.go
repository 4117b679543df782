package repl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/epylar/mal/lisp"
	"github.com/epylar/mal/parser"
)

// DefaultPrompt is the prompt used when RunRepl is given an empty prompt.
const DefaultPrompt = "user> "

// HistoryFileName is the name of the history file kept in the user's home
// directory.
const HistoryFileName = ".mal-history"

// Session reads, evaluates and prints forms one line of input at a time.
// Lines are buffered while the buffered text is an incomplete form.
type Session struct {
	env *lisp.LEnv
	out io.Writer
	buf []string

	// StackTrace causes the call stack captured by an error to be printed
	// after the error message.
	StackTrace bool
}

// NewSession returns a Session that evaluates forms in env and writes
// results and errors to out.
func NewSession(env *lisp.LEnv, out io.Writer) *Session {
	return &Session{
		env: env,
		out: out,
	}
}

// Pending returns true if an incomplete form is buffered.
func (s *Session) Pending() bool {
	return len(s.buf) > 0
}

// Reset discards any buffered input.
func (s *Session) Reset() {
	s.buf = nil
}

// Feed processes a line of input.  Feed returns false if the line was
// buffered because the input so far ends in the middle of a form.
func (s *Session) Feed(line string) bool {
	if !s.Pending() && strings.TrimSpace(line) == "" {
		return true
	}
	s.buf = append(s.buf, line)
	v, err := parser.ReadString(strings.Join(s.buf, "\n"))
	if parser.IsIncomplete(err) {
		return false
	}
	s.buf = nil
	if lisp.Condition(err) == lisp.CondEmptyInput {
		return true
	}
	if err == nil {
		v, err = s.env.Eval(v)
	}
	if err != nil {
		s.printError(err)
		return true
	}
	fmt.Fprintln(s.out, v)
	return true
}

func (s *Session) printError(err error) {
	fmt.Fprintf(s.out, "error: %v\n", err)
	lerr, ok := err.(*lisp.ErrorVal)
	if s.StackTrace && ok && lerr.Stack != nil {
		lerr.Stack.DebugPrint(s.out)
	}
}

// DefaultHistoryFile returns the path of the history file in the user's
// home directory, or the empty string if there is no home directory.
func DefaultHistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, HistoryFileName)
}

// RunRepl runs an interactive session in env until the end of input.  An
// interrupt discards the current input.
func RunRepl(env *lisp.LEnv, prompt string, stackTrace bool) error {
	if prompt == "" {
		prompt = DefaultPrompt
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      prompt,
		HistoryFile: DefaultHistoryFile(),
	})
	if err != nil {
		return err
	}
	defer rl.Close()
	contPrompt := strings.Repeat(" ", len(prompt)) // prompt had better be ascii...

	sess := NewSession(env, rl.Stdout())
	sess.StackTrace = stackTrace
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			sess.Reset()
			rl.SetPrompt(prompt)
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if sess.Feed(line) {
			rl.SetPrompt(prompt)
		} else {
			rl.SetPrompt(contPrompt)
		}
	}
}
