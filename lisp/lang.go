package lisp

// VarArgSymbol is the symbol that indicates a variadic function argument in a
// function's list of formal arguments.
const VarArgSymbol = "&"

// Symbols with special meaning to the quasiquote expander.
const (
	SymQuote         = "quote"
	SymQuasiquote    = "quasiquote"
	SymUnquote       = "unquote"
	SymSpliceUnquote = "splice-unquote"
	SymDeref         = "deref"
	SymCatch         = "catch*"
)
