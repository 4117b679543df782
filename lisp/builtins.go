package lisp

import "strings"

// LBuiltinDef is a built-in function
type LBuiltinDef interface {
	Name() string
	Formals() []string
	Eval(env *LEnv, args []*LVal) (*LVal, error)
}

// Formals returns a list of formal argument names.  It exists so builtin
// tables read like lambda definitions.
func Formals(argSymbols ...string) []string {
	return argSymbols
}

type langBuiltin struct {
	name    string
	formals []string
	fun     LBuiltin
}

// NewBuiltin returns an LBuiltinDef which checks the number of arguments it
// receives against formals before calling fn.
func NewBuiltin(name string, formals []string, fn LBuiltin) LBuiltinDef {
	return &langBuiltin{name, formals, fn}
}

func (fun *langBuiltin) Name() string {
	return fun.name
}

func (fun *langBuiltin) Formals() []string {
	return fun.formals
}

func (fun *langBuiltin) Eval(env *LEnv, args []*LVal) (*LVal, error) {
	err := CheckArity(env, fun.name, fun.formals, len(args))
	if err != nil {
		return nil, err
	}
	return fun.fun(env, args)
}

// CheckArity returns an arity-error if n arguments cannot be bound to
// formals.
func CheckArity(env *LEnv, name string, formals []string, n int) error {
	for i, f := range formals {
		if f == VarArgSymbol {
			if n < i {
				return arityErrorf(env, name, "at least %d arguments expected (got %d)", i, n)
			}
			return nil
		}
	}
	if n != len(formals) {
		return arityErrorf(env, name, "%d arguments expected (got %d)", len(formals), n)
	}
	return nil
}

var userBuiltins []*langBuiltin
var langBuiltins = []*langBuiltin{
	{"+", Formals(VarArgSymbol, "x"), builtinAdd},
	{"-", Formals("x", VarArgSymbol, "rest"), builtinSub},
	{"*", Formals(VarArgSymbol, "x"), builtinMul},
	{"/", Formals("x", VarArgSymbol, "rest"), builtinDiv},
	{"=", Formals("x", VarArgSymbol, "rest"), builtinEqual},
	{"<", Formals("x", VarArgSymbol, "rest"), builtinLT},
	{"<=", Formals("x", VarArgSymbol, "rest"), builtinLEq},
	{">", Formals("x", VarArgSymbol, "rest"), builtinGT},
	{">=", Formals("x", VarArgSymbol, "rest"), builtinGEq},
	{"list", Formals(VarArgSymbol, "values"), builtinList},
	{"vector", Formals(VarArgSymbol, "values"), builtinVector},
	{"hash-map", Formals(VarArgSymbol, "key-value-pairs"), builtinHashMap},
	{"get", Formals("map", "key"), builtinGet},
	{"contains?", Formals("map", "key"), builtinContains},
	{"keys", Formals("map"), builtinKeys},
	{"vals", Formals("map"), builtinVals},
	{"assoc", Formals("map", VarArgSymbol, "key-value-pairs"), builtinAssoc},
	{"dissoc", Formals("map", VarArgSymbol, "keys"), builtinDissoc},
	{"empty?", Formals("seq"), builtinEmpty},
	{"count", Formals("seq"), builtinCount},
	{"cons", Formals("x", "seq"), builtinCons},
	{"concat", Formals(VarArgSymbol, "seqs"), builtinConcat},
	{"nth", Formals("seq", "index"), builtinNth},
	{"first", Formals("seq"), builtinFirst},
	{"rest", Formals("seq"), builtinRest},
	{"atom", Formals("value"), builtinAtom},
	{"deref", Formals("atom"), builtinDeref},
	{"reset!", Formals("atom", "value"), builtinReset},
	{"swap!", Formals("atom", "fn", VarArgSymbol, "args"), builtinSwap},
	{"apply", Formals("fn", VarArgSymbol, "args"), builtinApply},
	{"map", Formals("fn", "seq"), builtinMap},
	{"throw", Formals("value"), builtinThrow},
	{"eval", Formals("expr"), builtinEval},
	{"symbol", Formals("name"), builtinSymbol},
	{"keyword", Formals("name"), builtinKeyword},
	{"debug-stack", Formals(), builtinDebugStack},
	{"nil?", Formals("value"), typePredicate(LNil)},
	{"symbol?", Formals("value"), typePredicate(LSymbol)},
	{"keyword?", Formals("value"), typePredicate(LKeyword)},
	{"string?", Formals("value"), typePredicate(LString)},
	{"number?", Formals("value"), typePredicate(LInt)},
	{"list?", Formals("value"), typePredicate(LList)},
	{"vector?", Formals("value"), typePredicate(LVector)},
	{"map?", Formals("value"), typePredicate(LTable)},
	{"atom?", Formals("value"), typePredicate(LAtom)},
	{"true?", Formals("value"), builtinTrueP},
	{"false?", Formals("value"), builtinFalseP},
	{"sequential?", Formals("value"), builtinSequentialP},
	{"fn?", Formals("value"), builtinFnP},
	{"macro?", Formals("value"), builtinMacroP},
}

// RegisterDefaultBuiltin adds the given function to the list returned by
// DefaultBuiltins.
func RegisterDefaultBuiltin(name string, formals []string, fn LBuiltin) {
	userBuiltins = append(userBuiltins, &langBuiltin{name, formals, fn})
}

// DefaultBuiltins returns the default set of LBuiltinDefs added to LEnv
// objects when LEnv.AddBuiltins is called without arguments.
func DefaultBuiltins() []LBuiltinDef {
	ops := make([]LBuiltinDef, len(langBuiltins)+len(userBuiltins))
	for i := range langBuiltins {
		ops[i] = langBuiltins[i]
	}
	offset := len(langBuiltins)
	for i := range userBuiltins {
		ops[offset+i] = userBuiltins[i]
	}
	return ops
}

func intArgs(env *LEnv, name string, args []*LVal) ([]int32, error) {
	xs := make([]int32, len(args))
	for i, v := range args {
		if v.Type != LInt {
			return nil, typeErrorf(env, name, "argument %d is not an int: %v", i, v.Type)
		}
		xs[i] = v.Int
	}
	return xs, nil
}

func builtinAdd(env *LEnv, args []*LVal) (*LVal, error) {
	xs, err := intArgs(env, "+", args)
	if err != nil {
		return nil, err
	}
	var sum int32
	for _, x := range xs {
		sum += x
	}
	return Int(sum), nil
}

func builtinSub(env *LEnv, args []*LVal) (*LVal, error) {
	xs, err := intArgs(env, "-", args)
	if err != nil {
		return nil, err
	}
	if len(xs) == 1 {
		return Int(-xs[0]), nil
	}
	diff := xs[0]
	for _, x := range xs[1:] {
		diff -= x
	}
	return Int(diff), nil
}

func builtinMul(env *LEnv, args []*LVal) (*LVal, error) {
	xs, err := intArgs(env, "*", args)
	if err != nil {
		return nil, err
	}
	var prod int32 = 1
	for _, x := range xs {
		prod *= x
	}
	return Int(prod), nil
}

func builtinDiv(env *LEnv, args []*LVal) (*LVal, error) {
	xs, err := intArgs(env, "/", args)
	if err != nil {
		return nil, err
	}
	if len(xs) == 1 {
		xs = []int32{1, xs[0]}
	}
	quo := xs[0]
	for _, x := range xs[1:] {
		if x == 0 {
			return nil, berrf(env, "/", CondDivisionByZero, "division by zero")
		}
		quo /= x
	}
	return Int(quo), nil
}

func builtinEqual(env *LEnv, args []*LVal) (*LVal, error) {
	for i := 1; i < len(args); i++ {
		if !Equal(args[i-1], args[i]) {
			return Bool(false), nil
		}
	}
	return Bool(true), nil
}

func compareChain(env *LEnv, name string, args []*LVal, cmp func(a, b int32) bool) (*LVal, error) {
	xs, err := intArgs(env, name, args)
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(xs); i++ {
		if !cmp(xs[i-1], xs[i]) {
			return Bool(false), nil
		}
	}
	return Bool(true), nil
}

func builtinLT(env *LEnv, args []*LVal) (*LVal, error) {
	return compareChain(env, "<", args, func(a, b int32) bool { return a < b })
}

func builtinLEq(env *LEnv, args []*LVal) (*LVal, error) {
	return compareChain(env, "<=", args, func(a, b int32) bool { return a <= b })
}

func builtinGT(env *LEnv, args []*LVal) (*LVal, error) {
	return compareChain(env, ">", args, func(a, b int32) bool { return a > b })
}

func builtinGEq(env *LEnv, args []*LVal) (*LVal, error) {
	return compareChain(env, ">=", args, func(a, b int32) bool { return a >= b })
}

func builtinList(env *LEnv, args []*LVal) (*LVal, error) {
	return List(args...), nil
}

func builtinVector(env *LEnv, args []*LVal) (*LVal, error) {
	return Vector(args...), nil
}

func builtinHashMap(env *LEnv, args []*LVal) (*LVal, error) {
	if len(args)%2 != 0 {
		return nil, arityErrorf(env, "hash-map", "odd number of arguments: %d", len(args))
	}
	return TableAssoc(Table(), args), nil
}

// tableArg accepts a hash-map or nil, which behaves as an empty hash-map.
func tableArg(env *LEnv, name string, v *LVal) (*LVal, error) {
	switch v.Type {
	case LTable:
		return v, nil
	case LNil:
		return Table(), nil
	default:
		return nil, typeErrorf(env, name, "first argument is not a hash-map: %v", v.Type)
	}
}

func builtinGet(env *LEnv, args []*LVal) (*LVal, error) {
	m, err := tableArg(env, "get", args[0])
	if err != nil {
		return nil, err
	}
	v, ok := TableGet(m, args[1])
	if !ok {
		return Nil(), nil
	}
	return v, nil
}

func builtinContains(env *LEnv, args []*LVal) (*LVal, error) {
	m, err := tableArg(env, "contains?", args[0])
	if err != nil {
		return nil, err
	}
	_, ok := TableGet(m, args[1])
	return Bool(ok), nil
}

func builtinKeys(env *LEnv, args []*LVal) (*LVal, error) {
	m, err := tableArg(env, "keys", args[0])
	if err != nil {
		return nil, err
	}
	keys := make([]*LVal, 0, m.Len())
	for i := 0; i+1 < len(m.Cells); i += 2 {
		keys = append(keys, m.Cells[i])
	}
	return List(keys...), nil
}

func builtinVals(env *LEnv, args []*LVal) (*LVal, error) {
	m, err := tableArg(env, "vals", args[0])
	if err != nil {
		return nil, err
	}
	vals := make([]*LVal, 0, m.Len())
	for i := 0; i+1 < len(m.Cells); i += 2 {
		vals = append(vals, m.Cells[i+1])
	}
	return List(vals...), nil
}

func builtinAssoc(env *LEnv, args []*LVal) (*LVal, error) {
	m, err := tableArg(env, "assoc", args[0])
	if err != nil {
		return nil, err
	}
	kvs := args[1:]
	if len(kvs)%2 != 0 {
		return nil, arityErrorf(env, "assoc", "odd number of key-value arguments: %d", len(kvs))
	}
	return TableAssoc(m, kvs), nil
}

func builtinDissoc(env *LEnv, args []*LVal) (*LVal, error) {
	m, err := tableArg(env, "dissoc", args[0])
	if err != nil {
		return nil, err
	}
	cells := make([]*LVal, 0, len(m.Cells))
entries:
	for i := 0; i+1 < len(m.Cells); i += 2 {
		for _, k := range args[1:] {
			if Equal(m.Cells[i], k) {
				continue entries
			}
		}
		cells = append(cells, m.Cells[i], m.Cells[i+1])
	}
	return Table(cells...), nil
}

// seqArg accepts a list, vector or nil and returns its elements.
func seqArg(env *LEnv, name string, v *LVal) ([]*LVal, error) {
	switch v.Type {
	case LList, LVector:
		return v.Cells, nil
	case LNil:
		return nil, nil
	default:
		return nil, typeErrorf(env, name, "argument is not a list: %v", v.Type)
	}
}

// builtinEmpty is false for any value that is not a sequence or hash-map.
func builtinEmpty(env *LEnv, args []*LVal) (*LVal, error) {
	switch args[0].Type {
	case LNil:
		return Bool(true), nil
	case LList, LVector, LTable:
		return Bool(args[0].Len() == 0), nil
	default:
		return Bool(false), nil
	}
}

func builtinCount(env *LEnv, args []*LVal) (*LVal, error) {
	if args[0].Type == LTable {
		return Int(int32(args[0].Len())), nil
	}
	cells, err := seqArg(env, "count", args[0])
	if err != nil {
		return nil, err
	}
	return Int(int32(len(cells))), nil
}

func builtinCons(env *LEnv, args []*LVal) (*LVal, error) {
	cells, err := seqArg(env, "cons", args[1])
	if err != nil {
		return nil, err
	}
	lis := make([]*LVal, 0, len(cells)+1)
	lis = append(lis, args[0])
	lis = append(lis, cells...)
	return List(lis...), nil
}

func builtinConcat(env *LEnv, args []*LVal) (*LVal, error) {
	var lis []*LVal
	for _, seq := range args {
		cells, err := seqArg(env, "concat", seq)
		if err != nil {
			return nil, err
		}
		lis = append(lis, cells...)
	}
	return List(lis...), nil
}

func builtinNth(env *LEnv, args []*LVal) (*LVal, error) {
	cells, err := seqArg(env, "nth", args[0])
	if err != nil {
		return nil, err
	}
	if args[1].Type != LInt {
		return nil, typeErrorf(env, "nth", "index is not an int: %v", args[1].Type)
	}
	i := int(args[1].Int)
	if i < 0 || i >= len(cells) {
		return nil, berrf(env, "nth", CondIndexOutOfRange, "index %d out of range [0, %d)", i, len(cells))
	}
	return cells[i], nil
}

func builtinFirst(env *LEnv, args []*LVal) (*LVal, error) {
	cells, err := seqArg(env, "first", args[0])
	if err != nil {
		return nil, err
	}
	if len(cells) == 0 {
		return Nil(), nil
	}
	return cells[0], nil
}

func builtinRest(env *LEnv, args []*LVal) (*LVal, error) {
	cells, err := seqArg(env, "rest", args[0])
	if err != nil {
		return nil, err
	}
	if len(cells) == 0 {
		return List(), nil
	}
	return List(cells[1:]...), nil
}

func atomArg(env *LEnv, name string, v *LVal) (*LVal, error) {
	if v.Type != LAtom {
		return nil, typeErrorf(env, name, "first argument is not an atom: %v", v.Type)
	}
	return v, nil
}

func builtinAtom(env *LEnv, args []*LVal) (*LVal, error) {
	return Atom(args[0]), nil
}

func builtinDeref(env *LEnv, args []*LVal) (*LVal, error) {
	a, err := atomArg(env, "deref", args[0])
	if err != nil {
		return nil, err
	}
	return a.Ref.Val, nil
}

func builtinReset(env *LEnv, args []*LVal) (*LVal, error) {
	a, err := atomArg(env, "reset!", args[0])
	if err != nil {
		return nil, err
	}
	a.Ref.Val = args[1]
	return args[1], nil
}

func builtinSwap(env *LEnv, args []*LVal) (*LVal, error) {
	a, err := atomArg(env, "swap!", args[0])
	if err != nil {
		return nil, err
	}
	fargs := make([]*LVal, 0, len(args)-1)
	fargs = append(fargs, a.Ref.Val)
	fargs = append(fargs, args[2:]...)
	v, err := env.Apply(args[1], fargs)
	if err != nil {
		return nil, err
	}
	a.Ref.Val = v
	return v, nil
}

func builtinApply(env *LEnv, args []*LVal) (*LVal, error) {
	fargs := args[1:]
	if len(fargs) > 0 {
		last, err := seqArg(env, "apply", fargs[len(fargs)-1])
		if err != nil {
			return nil, err
		}
		spread := make([]*LVal, 0, len(fargs)-1+len(last))
		spread = append(spread, fargs[:len(fargs)-1]...)
		spread = append(spread, last...)
		fargs = spread
	}
	return env.Apply(args[0], fargs)
}

func builtinMap(env *LEnv, args []*LVal) (*LVal, error) {
	cells, err := seqArg(env, "map", args[1])
	if err != nil {
		return nil, err
	}
	lis := make([]*LVal, len(cells))
	for i := range cells {
		lis[i], err = env.Apply(args[0], []*LVal{cells[i]})
		if err != nil {
			return nil, err
		}
	}
	return List(lis...), nil
}

func builtinThrow(env *LEnv, args []*LVal) (*LVal, error) {
	return nil, env.Throw(args[0])
}

func builtinEval(env *LEnv, args []*LVal) (*LVal, error) {
	return markTailCall(args[0], env.Root()), nil
}

func builtinSymbol(env *LEnv, args []*LVal) (*LVal, error) {
	if args[0].Type != LString {
		return nil, typeErrorf(env, "symbol", "argument is not a string: %v", args[0].Type)
	}
	return Symbol(args[0].Str), nil
}

func builtinKeyword(env *LEnv, args []*LVal) (*LVal, error) {
	switch args[0].Type {
	case LKeyword:
		return args[0], nil
	case LString:
		return Keyword(strings.TrimPrefix(args[0].Str, ":")), nil
	default:
		return nil, typeErrorf(env, "keyword", "argument is not a string: %v", args[0].Type)
	}
}

func builtinDebugStack(env *LEnv, args []*LVal) (*LVal, error) {
	_, err := env.Runtime.Stack.DebugPrint(env.Runtime.Stderr)
	if err != nil {
		return nil, berrf(env, "debug-stack", CondIO, "%v", err)
	}
	return Nil(), nil
}

func typePredicate(typ LType) LBuiltin {
	return func(env *LEnv, args []*LVal) (*LVal, error) {
		return Bool(args[0].Type == typ), nil
	}
}

func builtinTrueP(env *LEnv, args []*LVal) (*LVal, error) {
	return Bool(args[0].Type == LBool && args[0].Bool), nil
}

func builtinFalseP(env *LEnv, args []*LVal) (*LVal, error) {
	return Bool(args[0].Type == LBool && !args[0].Bool), nil
}

func builtinSequentialP(env *LEnv, args []*LVal) (*LVal, error) {
	return Bool(args[0].IsSeq()), nil
}

func builtinFnP(env *LEnv, args []*LVal) (*LVal, error) {
	v := args[0]
	return Bool(v.Type == LNative || (v.Type == LFun && v.FunType == LFunClosure)), nil
}

func builtinMacroP(env *LEnv, args []*LVal) (*LVal, error) {
	return Bool(args[0].IsMacro()), nil
}

