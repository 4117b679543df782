package lisp

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

var stringEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

// Print renders v as text.  When readable is true strings are quoted and
// escaped so that the output can be read back by the reader.
func Print(v *LVal, readable bool) string {
	var buf bytes.Buffer
	printTo(&buf, v, readable)
	return buf.String()
}

func printTo(buf *bytes.Buffer, v *LVal, readable bool) {
	switch v.Type {
	case LNil:
		buf.WriteString("nil")
	case LBool:
		buf.WriteString(strconv.FormatBool(v.Bool))
	case LInt:
		buf.WriteString(strconv.FormatInt(int64(v.Int), 10))
	case LString:
		if !readable {
			buf.WriteString(v.Str)
			return
		}
		buf.WriteString(`"`)
		buf.WriteString(stringEscaper.Replace(v.Str))
		buf.WriteString(`"`)
	case LKeyword:
		buf.WriteString(":")
		buf.WriteString(v.Str)
	case LSymbol:
		buf.WriteString(v.Str)
	case LList:
		printCells(buf, v.Cells, "(", ")", readable)
	case LVector:
		printCells(buf, v.Cells, "[", "]", readable)
	case LTable:
		printCells(buf, v.Cells, "{", "}", readable)
	case LAtom:
		buf.WriteString("#<atom>")
	case LFun:
		if v.FunType == LFunMacro {
			buf.WriteString("#<macro>")
			return
		}
		buf.WriteString("#<function>")
	case LNative:
		fmt.Fprintf(buf, "#<builtin %s>", v.Str)
	case LMarkTailCall:
		fmt.Fprintf(buf, "#<tail-call %s>", Print(v.Body, true))
	default:
		fmt.Fprintf(buf, "#<%v>", v.Type)
	}
}

func printCells(buf *bytes.Buffer, cells []*LVal, left, right string, readable bool) {
	buf.WriteString(left)
	for i, c := range cells {
		if i > 0 {
			buf.WriteString(" ")
		}
		printTo(buf, c, readable)
	}
	buf.WriteString(right)
}
