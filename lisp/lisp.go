package lisp

import (
	"github.com/epylar/mal/parser/token"
)

// LType is the type of an LVal
type LType uint

// Possible LType values
const (
	LInvalid LType = iota
	LNil
	LBool
	LInt
	LString
	LKeyword
	LSymbol
	LList
	LVector
	LTable
	LAtom
	LFun
	LNative
	// LMarkTailCall is an internal value returned by special operators to
	// signal that evaluation must continue with Body in Env.  It never
	// escapes LEnv.Eval.
	LMarkTailCall
	numLTypes
)

var lvalTypeStrings = [numLTypes]string{
	LInvalid:      "INVALID",
	LNil:          "nil",
	LBool:         "bool",
	LInt:          "int",
	LString:       "string",
	LKeyword:      "keyword",
	LSymbol:       "symbol",
	LList:         "list",
	LVector:       "vector",
	LTable:        "hash-map",
	LAtom:         "atom",
	LFun:          "function",
	LNative:       "builtin",
	LMarkTailCall: "MARK_TAIL_CALL",
}

func (t LType) String() string {
	if t >= numLTypes {
		return lvalTypeStrings[LInvalid]
	}
	return lvalTypeStrings[t]
}

// LFunType distinguishes ordinary closures from macros.
type LFunType uint

// Possible LFunType values
const (
	LFunClosure LFunType = iota
	LFunMacro
)

func (t LFunType) String() string {
	if t == LFunMacro {
		return "macro"
	}
	return "function"
}

// LBuiltin is a native function.  The env given to an LBuiltin is the
// environment of the calling expression, through which the builtin may call
// back into the evaluator.
type LBuiltin func(env *LEnv, args []*LVal) (*LVal, error)

// Ref is the mutable cell shared by all copies of an atom.
type Ref struct {
	Val *LVal
}

// LVal is a lisp value
type LVal struct {
	Type LType

	// Source is the location the value was read from, if it was read.
	Source *token.Location

	Int   int32
	Bool  bool
	Str   string // string contents, symbol and keyword names, builtin names
	Cells []*LVal

	// Ref holds the contents of an LAtom.
	Ref *Ref

	// Variables needed for function values and tail call marks
	FunType LFunType
	Formals []string
	Body    *LVal
	Env     *LEnv
	Builtin LBuiltin
}

// Nil returns an LVal representing nil.
func Nil() *LVal {
	return &LVal{Type: LNil}
}

// Bool returns an LVal representing the boolean b.
func Bool(b bool) *LVal {
	return &LVal{Type: LBool, Bool: b}
}

// Int returns an LVal representing the integer x.
func Int(x int32) *LVal {
	return &LVal{Type: LInt, Int: x}
}

// String returns an LVal representing the string s.
func String(s string) *LVal {
	return &LVal{Type: LString, Str: s}
}

// Keyword returns an LVal representing the keyword :name.  The name is stored
// without the leading colon.
func Keyword(name string) *LVal {
	return &LVal{Type: LKeyword, Str: name}
}

// Symbol returns an LVal resprenting the symbol s
func Symbol(s string) *LVal {
	return &LVal{Type: LSymbol, Str: s}
}

// List returns an LVal representing a list containing cells.
func List(cells ...*LVal) *LVal {
	return &LVal{Type: LList, Cells: cells}
}

// Vector returns an LVal representing a vector containing cells.
func Vector(cells ...*LVal) *LVal {
	return &LVal{Type: LVector, Cells: cells}
}

// Table returns an LVal representing a hash-map.  The cells alternate between
// keys and values.
func Table(cells ...*LVal) *LVal {
	return &LVal{Type: LTable, Cells: cells}
}

// Atom returns an LVal representing a new atom holding v.
func Atom(v *LVal) *LVal {
	return &LVal{Type: LAtom, Ref: &Ref{Val: v}}
}

// Lambda returns a closure that captures env.
func Lambda(formals []string, body *LVal, env *LEnv) *LVal {
	return &LVal{
		Type:    LFun,
		FunType: LFunClosure,
		Formals: formals,
		Body:    body,
		Env:     env,
	}
}

// Native returns an LVal wrapping the builtin fn.
func Native(name string, fn LBuiltin) *LVal {
	return &LVal{
		Type:    LNative,
		Str:     name,
		Builtin: fn,
	}
}

func markTailCall(body *LVal, env *LEnv) *LVal {
	return &LVal{
		Type: LMarkTailCall,
		Body: body,
		Env:  env,
	}
}

// IsNil returns true if v is nil.
func (v *LVal) IsNil() bool {
	return v.Type == LNil
}

// IsTrue returns true unless v is nil or false.
func (v *LVal) IsTrue() bool {
	switch v.Type {
	case LNil:
		return false
	case LBool:
		return v.Bool
	default:
		return true
	}
}

// IsSeq returns true if v is a list or a vector.
func (v *LVal) IsSeq() bool {
	return v.Type == LList || v.Type == LVector
}

// IsMacro returns true if v is a macro closure.
func (v *LVal) IsMacro() bool {
	return v.Type == LFun && v.FunType == LFunMacro
}

// IsSymbol returns true if v is the symbol name.
func (v *LVal) IsSymbol(name string) bool {
	return v.Type == LSymbol && v.Str == name
}

// Len returns the number of cells in a sequence or hash-map.  A hash-map's
// length is its number of entries.
func (v *LVal) Len() int {
	if v.Type == LTable {
		return len(v.Cells) / 2
	}
	return len(v.Cells)
}

// MacroCopy returns a copy of the closure v that is flagged as a macro.
func (v *LVal) MacroCopy() *LVal {
	cp := &LVal{}
	*cp = *v
	cp.FunType = LFunMacro
	return cp
}

// TableGet returns the value associated with key in the hash-map t.
func TableGet(t *LVal, key *LVal) (*LVal, bool) {
	for i := 0; i+1 < len(t.Cells); i += 2 {
		if Equal(t.Cells[i], key) {
			return t.Cells[i+1], true
		}
	}
	return nil, false
}

// TableAssoc returns a new hash-map containing the entries of t with the
// given key/value pairs set.  The receiver is not modified.
func TableAssoc(t *LVal, kvs []*LVal) *LVal {
	cells := make([]*LVal, len(t.Cells), len(t.Cells)+len(kvs))
	copy(cells, t.Cells)
kvloop:
	for i := 0; i+1 < len(kvs); i += 2 {
		for j := 0; j+1 < len(cells); j += 2 {
			if Equal(cells[j], kvs[i]) {
				cells[j+1] = kvs[i+1]
				continue kvloop
			}
		}
		cells = append(cells, kvs[i], kvs[i+1])
	}
	return Table(cells...)
}

// Equal reports whether a and b are structurally equal.  Lists and vectors
// with equal elements are equal.  Functions and atoms are only equal to
// themselves.
func Equal(a, b *LVal) bool {
	if a.IsSeq() && b.IsSeq() {
		return equalCells(a.Cells, b.Cells)
	}
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case LNil:
		return true
	case LBool:
		return a.Bool == b.Bool
	case LInt:
		return a.Int == b.Int
	case LString, LKeyword, LSymbol:
		return a.Str == b.Str
	case LTable:
		if a.Len() != b.Len() {
			return false
		}
		for i := 0; i+1 < len(a.Cells); i += 2 {
			bv, ok := TableGet(b, a.Cells[i])
			if !ok || !Equal(a.Cells[i+1], bv) {
				return false
			}
		}
		return true
	case LAtom:
		return a.Ref == b.Ref
	default:
		return a == b
	}
}

func equalCells(a, b []*LVal) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func (v *LVal) String() string {
	return Print(v, true)
}
