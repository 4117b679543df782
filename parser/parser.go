/*
Package parser provides the mal reader.

	form     := list | vector | hash-map | macro | atom
	list     := '(' form* ')'
	vector   := '[' form* ']'
	hash-map := '{' (form form)* '}'
	macro    := ('\'' | '`' | '~' | '~@' | '@') form
	atom     := integer | string | keyword | 'nil' | 'true' | 'false' | symbol
	integer  := /[+-]?[0-9]+/
	string   := '"' (/\\./ | /[^\\"]/)* '"'
	keyword  := ':' symbol

Whitespace, commas and comments (';' to the end of the line) separate forms.
*/
package parser

import (
	"strings"

	"github.com/epylar/mal/lisp"
	"github.com/epylar/mal/parser/rdparser"
	"github.com/epylar/mal/parser/token"
)

// DefaultSourceName is the source name attached to forms read by ReadString.
const DefaultSourceName = "<input>"

// NewReader returns a new lisp.Reader.
func NewReader() lisp.Reader {
	return rdparser.NewReader()
}

// ReadString parses the single form contained in text.
func ReadString(text string) (*lisp.LVal, error) {
	return NewReader().Read(DefaultSourceName, strings.NewReader(text))
}

// ReadProgram parses every form contained in text.
func ReadProgram(name string, text string) ([]*lisp.LVal, error) {
	s := token.NewScannerBytes(name, []byte(text))
	return rdparser.New(s).ParseProgram()
}

// IsIncomplete returns true if err indicates that the input ended in the
// middle of a form, so that reading more input may produce a complete form.
func IsIncomplete(err error) bool {
	return lisp.Condition(err) == lisp.CondUnexpectedEOF
}
