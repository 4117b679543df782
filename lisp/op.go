package lisp

type specialOp struct {
	name string
	fn   func(env *LEnv, args []*LVal) (*LVal, error)
}

var langSpecialOps = []*specialOp{
	{"def!", opDef},
	{"defmacro!", opDefmacro},
	{"let*", opLetSeq},
	{"do", opDo},
	{"if", opIf},
	{"fn*", opLambda},
	{"quote", opQuote},
	{"quasiquote", opQuasiquote},
	{"try*", opTry},
	{"macroexpand", opMacroexpand},
}

// specialOpIndex is populated by init to break the initialization cycle
// between langSpecialOps and LEnv.Eval.
var specialOpIndex map[string]*specialOp

func init() {
	specialOpIndex = make(map[string]*specialOp, len(langSpecialOps))
	for _, op := range langSpecialOps {
		specialOpIndex[op.name] = op
	}
}

func lookupSpecialOp(head *LVal) *specialOp {
	if head.Type != LSymbol {
		return nil
	}
	return specialOpIndex[head.Str]
}

// IsSpecialOp returns true if name is the name of a special operator.
func IsSpecialOp(name string) bool {
	_, ok := specialOpIndex[name]
	return ok
}

func serrf(env *LEnv, name string, format string, v ...interface{}) error {
	return berrf(env, name, CondSyntax, format, v...)
}

func opDef(env *LEnv, args []*LVal) (*LVal, error) {
	if len(args) != 2 {
		return nil, serrf(env, "def!", "two arguments expected (got %d)", len(args))
	}
	if args[0].Type != LSymbol {
		return nil, serrf(env, "def!", "first argument is not a symbol: %v", args[0].Type)
	}
	v, err := env.Eval(args[1])
	if err != nil {
		return nil, err
	}
	env.Put(args[0].Str, v)
	return v, nil
}

func opDefmacro(env *LEnv, args []*LVal) (*LVal, error) {
	if len(args) != 2 {
		return nil, serrf(env, "defmacro!", "two arguments expected (got %d)", len(args))
	}
	if args[0].Type != LSymbol {
		return nil, serrf(env, "defmacro!", "first argument is not a symbol: %v", args[0].Type)
	}
	v, err := env.Eval(args[1])
	if err != nil {
		return nil, err
	}
	if v.Type != LFun {
		return nil, typeErrorf(env, "defmacro!", "value is not a function: %v", v.Type)
	}
	mac := v.MacroCopy()
	env.Put(args[0].Str, mac)
	return mac, nil
}

func opLetSeq(env *LEnv, args []*LVal) (*LVal, error) {
	if len(args) < 2 {
		return nil, serrf(env, "let*", "too few arguments provided: %d", len(args))
	}
	bindings := args[0]
	if !bindings.IsSeq() {
		return nil, serrf(env, "let*", "bindings are not a list or vector: %v", bindings.Type)
	}
	if len(bindings.Cells)%2 != 0 {
		return nil, serrf(env, "let*", "odd number of binding forms: %d", len(bindings.Cells))
	}
	letenv := NewEnv(env)
	for i := 0; i < len(bindings.Cells); i += 2 {
		sym := bindings.Cells[i]
		if sym.Type != LSymbol {
			return nil, serrf(env, "let*", "binding name is not a symbol: %v", sym)
		}
		v, err := letenv.Eval(bindings.Cells[i+1])
		if err != nil {
			return nil, err
		}
		letenv.Put(sym.Str, v)
	}
	return markTailCall(implicitDo(args[1:]), letenv), nil
}

func opDo(env *LEnv, args []*LVal) (*LVal, error) {
	if len(args) == 0 {
		return Nil(), nil
	}
	for _, expr := range args[:len(args)-1] {
		_, err := env.Eval(expr)
		if err != nil {
			return nil, err
		}
	}
	return markTailCall(args[len(args)-1], env), nil
}

func opIf(env *LEnv, args []*LVal) (*LVal, error) {
	if len(args) != 2 && len(args) != 3 {
		return nil, serrf(env, "if", "two or three arguments expected (got %d)", len(args))
	}
	cond, err := env.Eval(args[0])
	if err != nil {
		return nil, err
	}
	if cond.IsTrue() {
		return markTailCall(args[1], env), nil
	}
	if len(args) == 2 {
		return Nil(), nil
	}
	return markTailCall(args[2], env), nil
}

func opLambda(env *LEnv, args []*LVal) (*LVal, error) {
	if len(args) < 2 {
		return nil, serrf(env, "fn*", "too few arguments provided: %d", len(args))
	}
	params := args[0]
	if !params.IsSeq() {
		return nil, serrf(env, "fn*", "formal arguments are not a list or vector: %v", params.Type)
	}
	formals := make([]string, len(params.Cells))
	for i, sym := range params.Cells {
		if sym.Type != LSymbol {
			return nil, serrf(env, "fn*", "formal argument is not a symbol: %v", sym)
		}
		if sym.Str == VarArgSymbol && i != len(params.Cells)-2 {
			return nil, serrf(env, "fn*", "symbol %s must be followed by exactly one formal argument", VarArgSymbol)
		}
		formals[i] = sym.Str
	}
	return Lambda(formals, implicitDo(args[1:]), env), nil
}

func opQuote(env *LEnv, args []*LVal) (*LVal, error) {
	if len(args) != 1 {
		return nil, serrf(env, "quote", "one argument expected (got %d)", len(args))
	}
	return args[0], nil
}

func opQuasiquote(env *LEnv, args []*LVal) (*LVal, error) {
	if len(args) != 1 {
		return nil, serrf(env, "quasiquote", "one argument expected (got %d)", len(args))
	}
	expr, err := Quasiquote(args[0])
	if err != nil {
		return nil, err
	}
	return markTailCall(expr, env), nil
}

func opTry(env *LEnv, args []*LVal) (*LVal, error) {
	if len(args) != 1 && len(args) != 2 {
		return nil, serrf(env, "try*", "one or two arguments expected (got %d)", len(args))
	}
	var handler *LVal
	if len(args) == 2 {
		handler = args[1]
		if handler.Type != LList || len(handler.Cells) != 3 || !handler.Cells[0].IsSymbol(SymCatch) {
			return nil, serrf(env, "try*", "second argument is not a %s form: %v", SymCatch, handler)
		}
		if handler.Cells[1].Type != LSymbol {
			return nil, serrf(env, SymCatch, "error binding is not a symbol: %v", handler.Cells[1])
		}
	}
	v, err := env.Eval(args[0])
	if err == nil {
		return v, nil
	}
	if handler == nil {
		return nil, err
	}
	catchenv := NewEnv(env)
	catchenv.Put(handler.Cells[1].Str, ErrorPayload(err))
	return markTailCall(handler.Cells[2], catchenv), nil
}

func opMacroexpand(env *LEnv, args []*LVal) (*LVal, error) {
	if len(args) != 1 {
		return nil, serrf(env, "macroexpand", "one argument expected (got %d)", len(args))
	}
	return env.MacroExpand(args[0])
}

// implicitDo returns the single form in body or a do form wrapping all of
// them.
func implicitDo(body []*LVal) *LVal {
	if len(body) == 1 {
		return body[0]
	}
	cells := make([]*LVal, 0, len(body)+1)
	cells = append(cells, Symbol("do"))
	cells = append(cells, body...)
	return List(cells...)
}
