package lisp

import (
	"fmt"
	"io"
	"log"
	"strings"
)

// Runtime is the state shared by every environment descending from the same
// root environment.
type Runtime struct {
	Stack  *CallStack
	Reader Reader
	Stdout io.Writer
	Stderr io.Writer
	Trace  *log.Logger
}

// LEnv is a lisp environment.
type LEnv struct {
	Scope   map[string]*LVal
	Parent  *LEnv
	Runtime *Runtime
}

// NewEnv returns initializes and returns a new LEnv.  A nil parent creates a
// root environment with a fresh Runtime.
func NewEnv(parent *LEnv) *LEnv {
	var runtime *Runtime
	if parent != nil {
		runtime = parent.Runtime
	} else {
		runtime = &Runtime{
			Stack:  &CallStack{MaxHeight: DefaultMaxStackHeight},
			Stdout: io.Discard,
			Stderr: io.Discard,
		}
	}
	return &LEnv{
		Scope:   make(map[string]*LVal),
		Parent:  parent,
		Runtime: runtime,
	}
}

// NewEnvBind returns a child of parent with formals bound to args.  A formal
// following VarArgSymbol is bound to a list of all remaining args.
func NewEnvBind(parent *LEnv, formals []string, args []*LVal) (*LEnv, error) {
	env := NewEnv(parent)
	for i, name := range formals {
		if name == VarArgSymbol {
			if i+1 >= len(formals) {
				return nil, parent.ErrorConditionf(CondSyntax, "formal argument list ends with symbol %s", VarArgSymbol)
			}
			rest := []*LVal{}
			if i < len(args) {
				rest = args[i:]
			}
			env.Put(formals[i+1], List(rest...))
			return env, nil
		}
		if i >= len(args) {
			return nil, parent.ErrorConditionf(CondArity,
				"function expects %s arguments (got %d)", formalCount(formals), len(args))
		}
		env.Put(name, args[i])
	}
	if len(args) > len(formals) {
		return nil, parent.ErrorConditionf(CondArity,
			"function expects %s arguments (got %d)", formalCount(formals), len(args))
	}
	return env, nil
}

func formalCount(formals []string) string {
	for i, name := range formals {
		if name == VarArgSymbol {
			return fmt.Sprintf("at least %d", i)
		}
	}
	return fmt.Sprint(len(formals))
}

// Get returns the value bound to name in env or its nearest ancestor.
func (env *LEnv) Get(name string) (*LVal, bool) {
	for ; env != nil; env = env.Parent {
		v, ok := env.Scope[name]
		if ok {
			return v, true
		}
	}
	return nil, false
}

// Lookup returns the value bound to the symbol sym.  An unbound-symbol error
// is returned if no binding exists.
func (env *LEnv) Lookup(sym *LVal) (*LVal, error) {
	v, ok := env.Get(sym.Str)
	if !ok {
		lerr := ErrorConditionf(CondUnboundSymbol, "unbound symbol: %s", sym.Str)
		lerr.Source = sym.Source
		lerr.Stack = env.Runtime.Stack.Copy()
		return nil, lerr
	}
	return v, nil
}

// Put binds name to v in env, never in an ancestor.
func (env *LEnv) Put(name string, v *LVal) {
	if v == nil {
		panic("nil value")
	}
	env.Scope[name] = v
}

// GetGlobal returns the value bound to name in the root environment (global
// scope).
func (env *LEnv) GetGlobal(name string) (*LVal, bool) {
	return env.Root().Get(name)
}

// PutGlobal binds name to v in root environment (global scope).
func (env *LEnv) PutGlobal(name string, v *LVal) {
	env.Root().Put(name, v)
}

// Root returns the root environment of env.
func (env *LEnv) Root() *LEnv {
	for env.Parent != nil {
		env = env.Parent
	}
	return env
}

// AddBuiltins binds the given funs to their names in env.  When called with
// no arguments AddBuiltins adds the DefaultBuiltins to env.
func (env *LEnv) AddBuiltins(funs ...LBuiltinDef) {
	if len(funs) == 0 {
		funs = DefaultBuiltins()
	}
	for _, f := range funs {
		env.Put(f.Name(), Native(f.Name(), f.Eval))
	}
}

// LoadString parses a single form from source and evaluates it in env.
func (env *LEnv) LoadString(name string, source string) (*LVal, error) {
	if env.Runtime.Reader == nil {
		return nil, env.ErrorConditionf(CondIO, "no reader configured")
	}
	v, err := env.Runtime.Reader.Read(name, strings.NewReader(source))
	if err != nil {
		return nil, err
	}
	return env.Eval(v)
}

// Eval evaluates v in the context (scope) of env and returns the resulting
// LVal.  Tail positions of special operators and closure bodies are
// evaluated iteratively so that tail recursion runs in constant stack space.
func (env *LEnv) Eval(v *LVal) (*LVal, error) {
	stack := env.Runtime.Stack
	err := stack.Push(frameName(v), v.Source)
	if err != nil {
		return nil, err
	}
	defer stack.Pop()

	for {
		if env.Runtime.Trace != nil {
			env.Runtime.Trace.Printf("EVAL: %v", v)
		}
		v, err = env.MacroExpand(v)
		if err != nil {
			return nil, err
		}
		if v.Type != LList || len(v.Cells) == 0 {
			return env.evalValue(v)
		}

		var res *LVal
		head := v.Cells[0]
		op := lookupSpecialOp(head)
		if op != nil {
			res, err = op.fn(env, v.Cells[1:])
			if err != nil {
				return nil, annotate(err, v)
			}
		} else {
			res, err = env.evalApply(v)
			if err != nil {
				return nil, err
			}
		}
		if res.Type != LMarkTailCall {
			return res, nil
		}
		v, env = res.Body, res.Env
		stack.TailCall(frameName(v), v.Source)
	}
}

// evalValue evaluates anything other than a non-empty list.
func (env *LEnv) evalValue(v *LVal) (*LVal, error) {
	switch v.Type {
	case LSymbol:
		return env.Lookup(v)
	case LVector, LTable:
		cells, err := env.evalCells(v.Cells)
		if err != nil {
			return nil, err
		}
		return &LVal{Type: v.Type, Cells: cells}, nil
	default:
		return v, nil
	}
}

func (env *LEnv) evalCells(cells []*LVal) ([]*LVal, error) {
	vals := make([]*LVal, len(cells))
	for i := range cells {
		var err error
		vals[i], err = env.Eval(cells[i])
		if err != nil {
			return nil, err
		}
	}
	return vals, nil
}

// evalApply evaluates every element of the list form and applies the first
// to the rest.  Calling a closure results in a tail call mark.
func (env *LEnv) evalApply(form *LVal) (*LVal, error) {
	vals, err := env.evalCells(form.Cells)
	if err != nil {
		return nil, err
	}
	fn, args := vals[0], vals[1:]
	switch {
	case fn.Type == LNative:
		return fn.Builtin(env, args)
	case fn.Type == LFun && fn.FunType == LFunClosure:
		fenv, err := NewEnvBind(fn.Env, fn.Formals, args)
		if err != nil {
			return nil, annotate(err, form)
		}
		return markTailCall(fn.Body, fenv), nil
	default:
		lerr := ErrorConditionf(CondNotCallable, "not callable: %v", fn)
		lerr.Source = form.Cells[0].Source
		lerr.Stack = env.Runtime.Stack.Copy()
		return nil, lerr
	}
}

// Apply calls fn with args and returns the fully evaluated result.  Builtins
// use Apply to call back into the evaluator.
func (env *LEnv) Apply(fn *LVal, args []*LVal) (*LVal, error) {
	switch {
	case fn.Type == LNative:
		res, err := fn.Builtin(env, args)
		if err != nil {
			return nil, err
		}
		if res.Type == LMarkTailCall {
			return res.Env.Eval(res.Body)
		}
		return res, nil
	case fn.Type == LFun && fn.FunType == LFunClosure:
		fenv, err := NewEnvBind(fn.Env, fn.Formals, args)
		if err != nil {
			return nil, err
		}
		return fenv.Eval(fn.Body)
	default:
		return nil, env.ErrorConditionf(CondNotCallable, "not callable: %v", fn)
	}
}

// annotate attaches the source location of form to err if err has none.
func annotate(err error, form *LVal) error {
	lerr, ok := err.(*ErrorVal)
	if ok && lerr.Source == nil {
		lerr.Source = form.Source
	}
	return err
}

func frameName(v *LVal) string {
	if v.Type == LList && len(v.Cells) > 0 && v.Cells[0].Type == LSymbol {
		return v.Cells[0].Str
	}
	return v.Type.String()
}
