package js_printer

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/classhook/classhook/internal/js_ast"
)

type printExprFlags uint8

const (
	forbidCall printExprFlags = 1 << iota
	forbidIn
)

// Prints "expr" in a context with the given precedence, adding parentheses
// when the expression binds less tightly than "level" requires
func (p *printer) printExpr(expr js_ast.Expr, level js_ast.L, flags printExprFlags) {
	switch e := expr.Data.(type) {
	case *js_ast.EMissing:

	case *js_ast.EUndefined:
		p.printUndefined(level)

	case *js_ast.ESuper:
		p.printKeyword("super")

	case *js_ast.ENull:
		p.printKeyword("null")

	case *js_ast.EThis:
		p.printKeyword("this")

	case *js_ast.ENewTarget:
		p.printKeyword("new.target")

	case *js_ast.EImportMeta:
		p.printKeyword("import.meta")

	case *js_ast.EBoolean:
		if e.Value {
			p.printKeyword("true")
		} else {
			p.printKeyword("false")
		}

	case *js_ast.EString:
		p.printQuoted(e.Value)

	case *js_ast.EBigInt:
		p.printKeyword(e.Value)
		p.print("n")

	case *js_ast.ENumber:
		p.printNumber(e.Value, level)

	case *js_ast.ERegExp:
		// Avoid forming a single-line comment
		if n := len(p.js); n > 0 && p.js[n-1] == '/' {
			p.print(" ")
		}
		p.print(e.Value)

		// Need a space before the next identifier to avoid it turning into flags
		p.prevRegExpEnd = len(p.js)

	case *js_ast.ETemplate:
		p.printTemplate(e)

	case *js_ast.EIdentifier:
		p.printSymbol(e.Ref)

	case *js_ast.EPrivateIdentifier:
		p.printSpaceBeforeIdentifier()
		p.printIdentifier(e.Name)

	case *js_ast.ESpread:
		p.print("...")
		p.printExpr(e.Value, js_ast.LComma, 0)

	case *js_ast.ENew:
		wrap := level >= js_ast.LCall
		p.openParenIf(wrap)
		p.printKeyword("new")
		p.printSpace()
		p.printExpr(e.Target, js_ast.LNew, forbidCall)

		// "new Foo" is the same as "new Foo()" unless something follows it
		if !p.options.MinifyWhitespace || len(e.Args) > 0 || level >= js_ast.LPostfix {
			p.printCallArgs(e.Args)
		}
		p.closeParenIf(wrap)

	case *js_ast.ECall:
		wrap := level >= js_ast.LNew || (flags&forbidCall) != 0
		p.openParenIf(wrap)

		// "function() {}()" is only valid when parenthesized
		p.callTarget = e.Target.Data
		p.printExpr(e.Target, js_ast.LPostfix, 0)
		if e.IsOptionalChain {
			p.print("?.")
		}
		p.printCallArgs(e.Args)
		p.closeParenIf(wrap)

	case *js_ast.EImportCall:
		wrap := level >= js_ast.LNew || (flags&forbidCall) != 0
		p.openParenIf(wrap)
		p.printKeyword("import(")
		p.printExpr(e.Expr, js_ast.LComma, 0)
		p.print(")")
		p.closeParenIf(wrap)

	case *js_ast.EDot:
		p.printExpr(e.Target, js_ast.LPostfix, flags&forbidCall)
		switch {
		case e.IsOptionalChain:
			p.print("?.")
		case p.prevNumEnd == len(p.js):
			// "1.x" would be read as the number "1." followed by "x"
			p.print(" .")
		default:
			p.print(".")
		}
		p.printIdentifier(e.Name)

	case *js_ast.EIndex:
		p.printExpr(e.Target, js_ast.LPostfix, flags&forbidCall)
		if e.IsOptionalChain {
			p.print("?.")
		}
		if private, ok := e.Index.Data.(*js_ast.EPrivateIdentifier); ok {
			if !e.IsOptionalChain {
				p.print(".")
			}
			p.printIdentifier(private.Name)
		} else {
			p.print("[")
			p.printExpr(e.Index, js_ast.LLowest, 0)
			p.print("]")
		}

	case *js_ast.EIf:
		wrap := level >= js_ast.LConditional
		p.openParenIf(wrap)
		if wrap {
			flags &= ^forbidIn
		}
		p.printExpr(e.Test, js_ast.LConditional, flags&forbidIn)
		p.printSpace()
		p.print("?")
		p.printSpace()
		p.printExpr(e.Yes, js_ast.LYield, 0)
		p.printSpace()
		p.print(":")
		p.printSpace()
		p.printExpr(e.No, js_ast.LYield, flags&forbidIn)
		p.closeParenIf(wrap)

	case *js_ast.EArrow:
		p.printArrow(e, level, flags)

	case *js_ast.EFunction:
		n := len(p.js)
		wrap := p.stmtStart == n || p.exportDefaultStart == n || p.callTarget == expr.Data
		p.openParenIf(wrap)
		p.printFunction(e.Fn)
		p.closeParenIf(wrap)

	case *js_ast.EClass:
		n := len(p.js)
		wrap := p.stmtStart == n || p.exportDefaultStart == n
		p.openParenIf(wrap)
		p.printClassWithHead(&e.Class, false /* decoratorsOnOwnLine */)
		p.closeParenIf(wrap)

	case *js_ast.EArray:
		p.printArray(e)

	case *js_ast.EObject:
		n := len(p.js)
		wrap := p.stmtStart == n || p.arrowExprStart == n
		p.openParenIf(wrap)
		p.printObject(e)
		p.closeParenIf(wrap)

	case *js_ast.EAwait:
		wrap := level >= js_ast.LPrefix
		p.openParenIf(wrap)
		p.printKeyword("await")
		p.printSpace()
		p.printExpr(e.Value, js_ast.LPrefix-1, 0)
		p.closeParenIf(wrap)

	case *js_ast.EYield:
		wrap := level >= js_ast.LAssign
		p.openParenIf(wrap)
		p.printKeyword("yield")
		if e.ValueOrNil.Data != nil {
			if e.IsStar {
				p.print("*")
			}
			p.printSpace()
			p.printExpr(e.ValueOrNil, js_ast.LYield, 0)
		}
		p.closeParenIf(wrap)

	case *js_ast.EUnary:
		wrap := level >= js_ast.OpTable[e.Op].Level
		p.openParenIf(wrap)
		if e.Op.IsPrefix() {
			p.printOperator(e.Op)
			if js_ast.OpTable[e.Op].IsKeyword {
				p.printSpace()
			}
			p.printExpr(e.Value, js_ast.LPrefix-1, 0)
		} else {
			p.printExpr(e.Value, js_ast.LPostfix-1, 0)
			p.printOperator(e.Op)
		}
		p.closeParenIf(wrap)

	case *js_ast.EBinary:
		p.printBinary(e, level, flags)

	default:
		panic(fmt.Sprintf("Unexpected expression of type %T", expr.Data))
	}
}

func (p *printer) printUndefined(level js_ast.L) {
	if level >= js_ast.LPrefix {
		p.print("(void 0)")
	} else {
		p.printKeyword("void 0")
	}
}

func (p *printer) printCallArgs(args []js_ast.Expr) {
	p.print("(")
	for i, arg := range args {
		p.printCommaBefore(i)
		p.printExpr(arg, js_ast.LComma, 0)
	}
	p.print(")")
}

func (p *printer) printTemplate(e *js_ast.ETemplate) {
	isTagged := e.TagOrNil.Data != nil
	if isTagged {
		p.printExpr(e.TagOrNil, js_ast.LPostfix, 0)
	}

	// Tagged templates see the raw text, so it can't be escaped
	text := func(raw string) string {
		if p.options.ASCIIOnly && !isTagged {
			return escapeNonASCII(raw)
		}
		return raw
	}

	p.print("`")
	p.print(text(e.HeadRaw))
	for _, part := range e.Parts {
		p.print("${")
		p.printExpr(part.Value, js_ast.LLowest, 0)
		p.print("}")
		p.print(text(part.TailRaw))
	}
	p.print("`")
}

func (p *printer) printArrow(e *js_ast.EArrow, level js_ast.L, flags printExprFlags) {
	wrap := level >= js_ast.LAssign
	p.openParenIf(wrap)
	if e.IsAsync {
		p.printKeyword("async")
		p.printSpace()
	}
	p.printFnArgs(e.Args, e.HasRestArg, true /* isArrow */)
	p.printSpace()
	p.print("=>")
	p.printSpace()

	if ret, ok := arrowExprBody(e); ok {
		p.arrowExprStart = len(p.js)
		p.printExpr(ret, js_ast.LComma, flags&forbidIn)
	} else {
		p.printBlock(e.Body.Stmts)
	}
	p.closeParenIf(wrap)
}

// Returns the expression for arrows written as "() => expr"
func arrowExprBody(e *js_ast.EArrow) (js_ast.Expr, bool) {
	if !e.PreferExpr || len(e.Body.Stmts) != 1 {
		return js_ast.Expr{}, false
	}
	if s, ok := e.Body.Stmts[0].Data.(*js_ast.SReturn); ok && s.ValueOrNil.Data != nil {
		return s.ValueOrNil, true
	}
	return js_ast.Expr{}, false
}

func (p *printer) printArray(e *js_ast.EArray) {
	p.print("[")
	if len(e.Items) > 0 {
		if !e.IsSingleLine {
			p.options.Indent++
		}

		for i, item := range e.Items {
			if i != 0 {
				p.print(",")
				if e.IsSingleLine {
					p.printSpace()
				}
			}
			if !e.IsSingleLine {
				p.printNewline()
				p.printIndent()
			}
			p.printExpr(item, js_ast.LComma, 0)

			// "[a, ]" has one item but "[a, , ]" has two
			if _, ok := item.Data.(*js_ast.EMissing); ok && i == len(e.Items)-1 {
				p.print(",")
			}
		}

		if !e.IsSingleLine {
			p.options.Indent--
			p.printNewline()
			p.printIndent()
		}
	}
	p.print("]")
}

func (p *printer) printObject(e *js_ast.EObject) {
	p.print("{")
	if len(e.Properties) == 0 {
		p.print("}")
		return
	}

	if !e.IsSingleLine {
		p.options.Indent++
	}
	for i, item := range e.Properties {
		if i != 0 {
			p.print(",")
		}
		if e.IsSingleLine {
			p.printSpace()
		} else {
			p.printNewline()
			p.printIndent()
		}
		p.printProperty(item)
	}
	if e.IsSingleLine {
		p.printSpace()
	} else {
		p.options.Indent--
		p.printNewline()
		p.printIndent()
	}
	p.print("}")
}

func (p *printer) printBinary(e *js_ast.EBinary, level js_ast.L, flags printExprFlags) {
	entry := js_ast.OpTable[e.Op]
	wrap := level >= entry.Level || (e.Op == js_ast.BinOpIn && (flags&forbidIn) != 0)

	// "{} = x" at the start of a statement would be a block
	if n := len(p.js); p.stmtStart == n || p.arrowExprStart == n {
		if _, ok := e.Left.Data.(*js_ast.EObject); ok {
			wrap = true
		}
	}

	p.openParenIf(wrap)
	if wrap {
		flags &= ^forbidIn
	}

	leftLevel := entry.Level - 1
	rightLevel := entry.Level - 1
	if e.Op.IsRightAssociative() {
		leftLevel = entry.Level
	}
	if e.Op.IsLeftAssociative() {
		rightLevel = entry.Level
	}

	switch e.Op {
	case js_ast.BinOpNullishCoalescing:
		// "??" can't be mixed with "||" or "&&" without parentheses
		if isLogicalAndOr(e.Left) {
			leftLevel = js_ast.LPrefix
		}
		if isLogicalAndOr(e.Right) {
			rightLevel = js_ast.LPrefix
		}

	case js_ast.BinOpPow:
		// "-a ** b" is a syntax error
		switch left := e.Left.Data.(type) {
		case *js_ast.EUnary:
			if left.Op.IsPrefix() {
				leftLevel = js_ast.LCall
			}
		case *js_ast.EAwait, *js_ast.EUndefined, *js_ast.ENumber:
			leftLevel = js_ast.LCall
		}
	}

	p.printExpr(e.Left, leftLevel, flags&forbidIn)
	if e.Op != js_ast.BinOpComma {
		p.printSpace()
	}
	p.printOperator(e.Op)
	p.printSpace()
	p.printExpr(e.Right, rightLevel, flags&forbidIn)

	p.closeParenIf(wrap)
}

func isLogicalAndOr(expr js_ast.Expr) bool {
	e, ok := expr.Data.(*js_ast.EBinary)
	return ok && (e.Op == js_ast.BinOpLogicalOr || e.Op == js_ast.BinOpLogicalAnd)
}

func (p *printer) printNumber(value float64, level js_ast.L) {
	switch {
	case math.IsNaN(value):
		p.printKeyword("NaN")

	case math.IsInf(value, 1):
		p.printKeyword("Infinity")

	case math.IsInf(value, -1):
		wrap := level >= js_ast.LPrefix
		p.openParenIf(wrap)
		p.printSpaceBeforeOperator(js_ast.UnOpNeg)
		p.print("-Infinity")
		p.closeParenIf(wrap)

	// The sign bit also catches "-0", which compares equal to zero
	case math.Signbit(value) && level >= js_ast.LPrefix:
		// "(-1).x" and "(-1) ** 2" need the parentheses
		p.print("(-")
		p.print(formatNonNegativeNumber(-value))
		p.print(")")

	case math.Signbit(value):
		p.printSpaceBeforeOperator(js_ast.UnOpNeg)
		p.print("-")
		p.print(formatNonNegativeNumber(-value))
		p.prevNumEnd = len(p.js)

	default:
		p.printSpaceBeforeIdentifier()
		p.print(formatNonNegativeNumber(value))
		p.prevNumEnd = len(p.js)
	}
}

// Formats numbers the way "Number.prototype.toString" does, except that
// exponents drop their "+" sign and leading zeros
func formatNonNegativeNumber(value float64) string {
	if value < 1e21 && value == math.Trunc(value) {
		return strconv.FormatFloat(value, 'f', -1, 64)
	}

	text := strconv.FormatFloat(value, 'g', -1, 64)
	e := strings.LastIndexByte(text, 'e')
	if e == -1 {
		return text
	}

	mantissa, exponent := text[:e], text[e+1:]
	sign := ""
	if exponent[0] == '-' {
		sign = "-"
	}
	exponent = strings.TrimLeft(exponent[1:], "0")
	return mantissa + "e" + sign + exponent
}
