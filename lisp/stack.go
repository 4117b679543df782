package lisp

import (
	"fmt"
	"io"

	"github.com/epylar/mal/parser/token"
)

// DefaultMaxStackHeight is the maximum number of nested non-tail evaluations
// allowed before a stack-overflow error is raised.
const DefaultMaxStackHeight = 50000

// CallStack tracks nested evaluation.  Tail calls replace the frame on top of
// the stack instead of pushing a new one.
type CallStack struct {
	Frames    []CallFrame
	MaxHeight int
}

// CallFrame is one frame in the CallStack
type CallFrame struct {
	Name     string
	Source   *token.Location
	Terminal bool // the frame has been replaced by at least one tail call
}

// Copy creates a copy of the current stack so that it can be attach to a
// runtime error.
func (s *CallStack) Copy() *CallStack {
	if s == nil {
		return nil
	}
	frames := make([]CallFrame, len(s.Frames))
	copy(frames, s.Frames)
	return &CallStack{Frames: frames, MaxHeight: s.MaxHeight}
}

// Top returns the CallFrame at the top of the stack or nil if none exists.
func (s *CallStack) Top() *CallFrame {
	if s == nil || len(s.Frames) == 0 {
		return nil
	}
	return &s.Frames[len(s.Frames)-1]
}

// Height returns the number of frames on the stack.
func (s *CallStack) Height() int {
	return len(s.Frames)
}

// Push pushes a new stack frame onto s.  If the stack would grow beyond
// MaxHeight an error is returned and s is unchanged.
func (s *CallStack) Push(name string, src *token.Location) error {
	if s.MaxHeight > 0 && len(s.Frames) >= s.MaxHeight {
		return &ErrorVal{
			Condition: CondStackOverflow,
			Payload:   String(fmt.Sprintf("stack overflow: maximum height %d exceeded", s.MaxHeight)),
			Source:    src,
			Stack:     s.Copy(),
		}
	}
	s.Frames = append(s.Frames, CallFrame{Name: name, Source: src})
	return nil
}

// TailCall replaces the top frame with a frame for the tail call name.
func (s *CallStack) TailCall(name string, src *token.Location) {
	top := s.Top()
	if top == nil {
		return
	}
	*top = CallFrame{Name: name, Source: src, Terminal: true}
}

// Pop removes the top CallFrame from the stack and returns it.
func (s *CallStack) Pop() CallFrame {
	if len(s.Frames) < 1 {
		panic("pop called on an empty stack")
	}
	f := s.Frames[len(s.Frames)-1]
	s.Frames[len(s.Frames)-1] = CallFrame{}
	s.Frames = s.Frames[:len(s.Frames)-1]
	return f
}

// DebugPrint prints s
func (s *CallStack) DebugPrint(w io.Writer) (int, error) {
	n, err := fmt.Fprintf(w, "Stack Trace [%d frames -- entrypoint last]:\n", len(s.Frames))
	if err != nil {
		return n, err
	}
	indent := "  "
	for i := len(s.Frames) - 1; i >= 0; i-- {
		f := s.Frames[i]
		var mod string
		if f.Terminal {
			mod = " [terminal]"
		}
		name := f.Name
		if f.Source != nil {
			name = f.Source.String() + ": " + name
		}
		_n, err := fmt.Fprintf(w, "%sheight %d: %s%s\n", indent, i, name, mod)
		n += _n
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
