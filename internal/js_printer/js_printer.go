package js_printer

// The printer turns a tree back into JavaScript. It never renames anything
// itself: every symbol is printed with the name the renamer gives it, and the
// class transform relies on generated names already being unique.
//
// Most of the state below exists to decide when two adjacent tokens need
// something between them, either a space ("a in b", "1 .x", "+ +x") or
// parentheses ("({} = x)", "(function() {})()").

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/classhook/classhook/internal/helpers"
	"github.com/classhook/classhook/internal/js_ast"
	"github.com/classhook/classhook/internal/renamer"
)

type Options struct {
	Indent           int
	MinifyWhitespace bool
	ASCIIOnly        bool
}

type PrintResult struct {
	JS []byte
}

type printer struct {
	renamer renamer.Renamer
	options Options
	js      []byte

	// Positions in the output where an expression would be mistaken for
	// something else if it started with "{", "function", or "class"
	stmtStart          int
	exportDefaultStart int
	arrowExprStart     int
	callTarget         js_ast.E

	// The ends of the most recent tokens that may need a space after them
	prevOp        js_ast.OpCode
	prevOpEnd     int
	prevNumEnd    int
	prevRegExpEnd int

	// Minified output defers semicolons so that the last one in a block can
	// be left off
	needsSemicolon bool
}

func newPrinter(r renamer.Renamer, options Options) *printer {
	return &printer{
		renamer:            r,
		options:            options,
		stmtStart:          -1,
		exportDefaultStart: -1,
		arrowExprStart:     -1,
		prevOpEnd:          -1,
		prevNumEnd:         -1,
		prevRegExpEnd:      -1,
	}
}

func Print(tree js_ast.AST, r renamer.Renamer, options Options) PrintResult {
	p := newPrinter(r, options)

	if tree.Hashbang != "" {
		p.print(tree.Hashbang)
		p.print("\n")
	}

	for _, stmt := range tree.Stmts {
		p.printStmt(stmt)
		p.printSemicolonIfNeeded()
	}

	return PrintResult{JS: p.js}
}

// Prints a single expression without a trailing semicolon
func PrintExpr(expr js_ast.Expr, r renamer.Renamer, options Options) string {
	p := newPrinter(r, options)
	p.printExpr(expr, js_ast.LLowest, 0)
	return string(p.js)
}

func (p *printer) print(text string) {
	p.js = append(p.js, text...)
}

func (p *printer) printQuoted(text string) {
	p.js = append(p.js, helpers.QuoteForJS(text, p.options.ASCIIOnly)...)
}

// Prints a keyword or other word-like token, separating it from the token
// before it if they would otherwise run together
func (p *printer) printKeyword(text string) {
	p.printSpaceBeforeIdentifier()
	p.print(text)
}

func (p *printer) printIdentifier(name string) {
	if p.options.ASCIIOnly {
		name = escapeNonASCII(name)
	}
	p.print(name)
}

func (p *printer) printSymbol(ref js_ast.Ref) {
	p.printSpaceBeforeIdentifier()
	p.printIdentifier(p.renamer.NameForSymbol(ref))
}

// Import and export aliases may be arbitrary strings
func (p *printer) printClauseAlias(alias string) {
	if !js_ast.IsIdentifier(alias) {
		p.printQuoted(alias)
		return
	}
	p.printSpaceBeforeIdentifier()
	p.printIdentifier(alias)
}

// Identifiers and template literals accept "\u" escapes, so non-ASCII code
// points can be written that way when the output must be ASCII
func escapeNonASCII(text string) string {
	i := 0
	for i < len(text) && text[i] < utf8.RuneSelf {
		i++
	}
	if i == len(text) {
		return text
	}

	sb := strings.Builder{}
	sb.WriteString(text[:i])
	for _, c := range text[i:] {
		switch {
		case c < utf8.RuneSelf:
			sb.WriteRune(c)
		case c <= 0xFFFF:
			fmt.Fprintf(&sb, "\\u%04X", c)
		default:
			fmt.Fprintf(&sb, "\\u{%X}", c)
		}
	}
	return sb.String()
}

func (p *printer) printIndent() {
	if p.options.MinifyWhitespace {
		return
	}
	for i := 0; i < p.options.Indent; i++ {
		p.print("  ")
	}
}

func (p *printer) printSpace() {
	if !p.options.MinifyWhitespace {
		p.print(" ")
	}
}

func (p *printer) printNewline() {
	if !p.options.MinifyWhitespace {
		p.print("\n")
	}
}

func (p *printer) openParenIf(wrap bool) {
	if wrap {
		p.print("(")
	}
}

func (p *printer) closeParenIf(wrap bool) {
	if wrap {
		p.print(")")
	}
}

// Prints the "," between list items
func (p *printer) printCommaBefore(index int) {
	if index != 0 {
		p.print(",")
		p.printSpace()
	}
}

// Prints " = value" for initializers and default values
func (p *printer) printInitializer(value js_ast.Expr, flags printExprFlags) {
	p.printSpace()
	p.print("=")
	p.printSpace()
	p.printExpr(value, js_ast.LComma, flags)
}

func (p *printer) printSpaceBeforeIdentifier() {
	n := len(p.js)
	if n == 0 {
		return
	}
	if last := p.js[n-1]; js_ast.IsIdentifierContinue(rune(last)) || last >= utf8.RuneSelf || n == p.prevRegExpEnd {
		p.print(" ")
	}
}

// Two operators in a row can merge into a different token:
//
//	"a + +b" must not become "a++b"
//	"a - --b" must not become "a---b"
//	"a-- > b" must not become "a-->b"
//	"a < !--b" must not become "a<!--b"
func (p *printer) printSpaceBeforeOperator(next js_ast.OpCode) {
	if p.prevOpEnd != len(p.js) {
		return
	}

	prev := p.prevOp
	isPlus := func(op js_ast.OpCode) bool { return op == js_ast.BinOpAdd || op == js_ast.UnOpPos }
	isMinus := func(op js_ast.OpCode) bool { return op == js_ast.BinOpSub || op == js_ast.UnOpNeg }

	if (isPlus(prev) && (isPlus(next) || next == js_ast.UnOpPreInc)) ||
		(isMinus(prev) && (isMinus(next) || next == js_ast.UnOpPreDec)) ||
		(prev == js_ast.UnOpPostDec && next == js_ast.BinOpGt) ||
		(prev == js_ast.UnOpNot && next == js_ast.UnOpPreDec && len(p.js) > 1 && p.js[len(p.js)-2] == '<') {
		p.print(" ")
	}
}

func (p *printer) printOperator(op js_ast.OpCode) {
	entry := js_ast.OpTable[op]
	if entry.IsKeyword {
		p.printKeyword(entry.Text)
		return
	}
	p.printSpaceBeforeOperator(op)
	p.print(entry.Text)
	p.prevOp = op
	p.prevOpEnd = len(p.js)
}

func (p *printer) printSemicolonAfterStatement() {
	if p.options.MinifyWhitespace {
		p.needsSemicolon = true
	} else {
		p.print(";\n")
	}
}

func (p *printer) printSemicolonIfNeeded() {
	if p.needsSemicolon {
		p.print(";")
		p.needsSemicolon = false
	}
}
