package lisp

// MacroExpand repeatedly expands v while it is a call to a macro bound in
// env.  The argument forms of a macro call are passed to the macro
// unevaluated.
func (env *LEnv) MacroExpand(v *LVal) (*LVal, error) {
	for {
		mac := env.macroFor(v)
		if mac == nil {
			return v, nil
		}
		menv, err := NewEnvBind(mac.Env, mac.Formals, v.Cells[1:])
		if err != nil {
			return nil, annotate(err, v)
		}
		exp, err := menv.Eval(mac.Body)
		if err != nil {
			return nil, err
		}
		if env.Runtime.Trace != nil {
			env.Runtime.Trace.Printf("MACROEXPAND: %v => %v", v, exp)
		}
		v = exp
	}
}

func (env *LEnv) macroFor(v *LVal) *LVal {
	if v.Type != LList || len(v.Cells) == 0 || v.Cells[0].Type != LSymbol {
		return nil
	}
	mac, ok := env.Get(v.Cells[0].Str)
	if !ok || !mac.IsMacro() {
		return nil
	}
	return mac
}

// Quasiquote rewrites the template form into an expression that constructs
// it, with unquoted parts evaluated and spliced parts concatenated in.
// Quasiquote is a pure syntactic transformation.
func Quasiquote(form *LVal) (*LVal, error) {
	if form.Type != LList || len(form.Cells) == 0 {
		return List(Symbol(SymQuote), form), nil
	}
	head := form.Cells[0]
	if head.IsSymbol(SymUnquote) {
		if len(form.Cells) != 2 {
			return nil, qqerrf(SymUnquote, len(form.Cells)-1)
		}
		return form.Cells[1], nil
	}
	rest, err := Quasiquote(List(form.Cells[1:]...))
	if err != nil {
		return nil, err
	}
	if head.Type == LList && len(head.Cells) > 0 && head.Cells[0].IsSymbol(SymSpliceUnquote) {
		if len(head.Cells) != 2 {
			return nil, qqerrf(SymSpliceUnquote, len(head.Cells)-1)
		}
		return List(Symbol("concat"), head.Cells[1], rest), nil
	}
	first, err := Quasiquote(head)
	if err != nil {
		return nil, err
	}
	return List(Symbol("cons"), first, rest), nil
}

func qqerrf(name string, n int) error {
	return ErrorConditionf(CondSyntax, "%s: one argument expected (got %d)", name, n)
}
