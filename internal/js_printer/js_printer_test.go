package js_printer

import (
	"math"
	"testing"

	"github.com/classhook/classhook/internal/js_ast"
	"github.com/classhook/classhook/internal/js_parser"
	"github.com/classhook/classhook/internal/logger"
	"github.com/classhook/classhook/internal/renamer"
	"github.com/classhook/classhook/internal/test"
)

func expectPrintedCommon(t *testing.T, name string, contents string, expected string, options Options) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		t.Helper()
		log := logger.NewDeferLog()
		tree, ok := js_parser.Parse(log, test.SourceForTest(contents))
		msgs := log.Done()
		text := ""
		for _, msg := range msgs {
			if msg.Kind != logger.Warning {
				text += msg.String(logger.OutputOptions{}, logger.TerminalInfo{})
			}
		}
		test.AssertEqualWithDiff(t, text, "")
		if !ok {
			t.Fatal("Parse error")
		}
		js := Print(tree, renamer.NewNoOpRenamer(tree.Symbols), options).JS
		test.AssertEqualWithDiff(t, string(js), expected)
	})
}

func expectPrinted(t *testing.T, contents string, expected string) {
	t.Helper()
	expectPrintedCommon(t, contents, contents, expected, Options{})
}

func expectPrintedMinify(t *testing.T, contents string, expected string) {
	t.Helper()
	expectPrintedCommon(t, contents+" [minified]", contents, expected, Options{MinifyWhitespace: true})
}

func expectPrintedASCII(t *testing.T, contents string, expected string) {
	t.Helper()
	expectPrintedCommon(t, contents+" [ascii]", contents, expected, Options{ASCIIOnly: true})
}

// Prints an expression that refers to the symbols "a", "b", and "c"
func expectPrintedExpr(t *testing.T, expr js_ast.Expr, expected string) {
	t.Helper()
	symbols := []js_ast.Symbol{{OriginalName: "a"}, {OriginalName: "b"}, {OriginalName: "c"}}
	test.AssertEqual(t, PrintExpr(expr, renamer.NewNoOpRenamer(symbols), Options{}), expected)
}

func ident(index uint32) js_ast.Expr {
	return js_ast.Expr{Data: &js_ast.EIdentifier{Ref: js_ast.Ref{InnerIndex: index}}}
}

func TestStatementStart(t *testing.T) {
	expectPrinted(t, "(function() {})", "(function() {\n});\n")
	expectPrinted(t, "(function() {})()", "(function() {\n})();\n")
	expectPrinted(t, "(class {})", "(class {\n});\n")
	expectPrinted(t, "({}).x", "({}).x;\n")
	expectPrinted(t, "({} = x)", "({} = x);\n")
	expectPrinted(t, "({}) + 1", "({} + 1);\n")
	expectPrinted(t, "x = function() {}", "x = function() {\n};\n")
	expectPrinted(t, "export default (class {})", "export default (class {\n});\n")
	expectPrinted(t, "export default (function() {})()", "export default (function() {\n})();\n")
	expectPrinted(t, "(() => {})()", "(() => {\n})();\n")
	expectPrinted(t, "x = () => ({}.y)", "x = () => ({}).y;\n")
}

func TestPrecedence(t *testing.T) {
	expectPrinted(t, "f((a, b))", "f((a, b));\n")
	expectPrinted(t, "x = (a, b)", "x = (a, b);\n")
	expectPrinted(t, "(a ? b : c).d", "(a ? b : c).d;\n")
	expectPrinted(t, "(a = b).c", "(a = b).c;\n")
	expectPrinted(t, "new (f())()", "new (f())();\n")
	expectPrinted(t, "new (a.b())", "new (a.b())();\n")
	expectPrinted(t, "(a || b) ?? c", "(a || b) ?? c;\n")
	expectPrinted(t, "a || (b ?? c)", "a || (b ?? c);\n")
	expectPrinted(t, "a * (b + c)", "a * (b + c);\n")
	expectPrinted(t, "(a * b) + c", "a * b + c;\n")
	expectPrinted(t, "(typeof a).b", "(typeof a).b;\n")
	expectPrinted(t, "async function f() { (await a).b }", "async function f() {\n  (await a).b;\n}\n")
	expectPrinted(t, "function* f() { x = (yield a) + 1 }", "function* f() {\n  x = (yield a) + 1;\n}\n")
}

func TestMinify(t *testing.T) {
	expectPrintedMinify(t, "let x = 1, y = 2", "let x=1,y=2;")
	expectPrintedMinify(t, "a + +b", "a+ +b;")
	expectPrintedMinify(t, "a - -b", "a- -b;")
	expectPrintedMinify(t, "a + ++b", "a+ ++b;")
	expectPrintedMinify(t, "a(); b()", "a();b();")
	expectPrintedMinify(t, "function f() { return 1 }", "function f(){return 1}")
	expectPrintedMinify(t, "class A extends B { m() {} }", "class A extends B{m(){}}")
	expectPrintedMinify(t, "x = { a: 1, b }", "x={a:1,b};")
	expectPrintedMinify(t, "typeof x", "typeof x;")
}

func TestASCIIOnly(t *testing.T) {
	expectPrintedASCII(t, "x = '\u00E9'", "x = \"\\u00E9\";\n")
	expectPrintedASCII(t, "x = `\u00E9`", "x = `\\u00E9`;\n")
	expectPrintedASCII(t, "\u00E9 = 1", "\\u00E9 = 1;\n")
	expectPrinted(t, "x = '\u00E9'", "x = \"\u00E9\";\n")
}

func TestQuotes(t *testing.T) {
	expectPrinted(t, "x = 'a\\nb'", "x = \"a\\nb\";\n")
	expectPrinted(t, "x = '\\0'", "x = \"\\u0000\";\n")
	expectPrinted(t, "x = \"'\\\"\\\"\"", "x = '\\'\"\"';\n")
}

func TestNumbersAndMembers(t *testing.T) {
	expectPrintedExpr(t, js_ast.Expr{Data: &js_ast.EDot{
		Target: js_ast.Expr{Data: &js_ast.ENumber{Value: 1}},
		Name:   "x",
	}}, "1 .x")

	expectPrintedExpr(t, js_ast.Expr{Data: &js_ast.EDot{
		Target: js_ast.Expr{Data: &js_ast.ENumber{Value: -1}},
		Name:   "x",
	}}, "(-1).x")

	expectPrintedExpr(t, js_ast.Expr{Data: &js_ast.ENumber{Value: math.Inf(1)}}, "Infinity")
	expectPrintedExpr(t, js_ast.Expr{Data: &js_ast.ENumber{Value: math.NaN()}}, "NaN")
	expectPrintedExpr(t, js_ast.Expr{Data: &js_ast.ENumber{Value: 0.1}}, "0.1")
	expectPrintedExpr(t, js_ast.Expr{Data: &js_ast.ENumber{Value: 1e100}}, "1e100")
}

func TestUndefined(t *testing.T) {
	expectPrintedExpr(t, js_ast.Expr{Data: &js_ast.EUndefined{}}, "void 0")
	expectPrintedExpr(t, js_ast.Expr{Data: &js_ast.EUnary{
		Op:    js_ast.UnOpTypeof,
		Value: js_ast.Expr{Data: &js_ast.EUndefined{}},
	}}, "typeof void 0")
	expectPrintedExpr(t, js_ast.Expr{Data: &js_ast.ECall{
		Target: ident(0),
		Args:   []js_ast.Expr{ident(1), {Data: &js_ast.EUndefined{}}},
	}}, "a(b, void 0)")
}

func TestAmbiguousElse(t *testing.T) {
	call := func(index uint32) js_ast.Stmt {
		return js_ast.Stmt{Data: &js_ast.SExpr{Value: js_ast.Expr{Data: &js_ast.ECall{Target: ident(index)}}}}
	}

	// "if (a) if (b) c(); else a();" would attach the "else" to the inner "if"
	tree := js_ast.AST{
		Symbols: []js_ast.Symbol{{OriginalName: "a"}, {OriginalName: "b"}, {OriginalName: "c"}},
		Stmts: []js_ast.Stmt{{Data: &js_ast.SIf{
			Test:    ident(0),
			Yes:     js_ast.Stmt{Data: &js_ast.SIf{Test: ident(1), Yes: call(2)}},
			NoOrNil: call(0),
		}}},
	}
	js := Print(tree, renamer.NewNoOpRenamer(tree.Symbols), Options{}).JS
	test.AssertEqualWithDiff(t, string(js), "if (a) {\n  if (b)\n    c();\n} else\n  a();\n")
}

func TestDirectives(t *testing.T) {
	expectPrinted(t, "'use strict'; x", "\"use strict\";\nx;\n")
	expectPrintedMinify(t, "'use strict'; x", "\"use strict\";x;")

	// A string statement must not become a directive when it ends up first
	tree := js_ast.AST{Stmts: []js_ast.Stmt{
		{Data: &js_ast.SExpr{Value: js_ast.Expr{Data: &js_ast.EString{Value: "use strict"}}}},
		{Data: &js_ast.SDirective{Value: "not first"}},
	}}
	js := Print(tree, renamer.NewNoOpRenamer(nil), Options{}).JS
	test.AssertEqualWithDiff(t, string(js), "(\"use strict\");\n\"not first\";\n")
}

func TestHashbang(t *testing.T) {
	tree := js_ast.AST{Hashbang: "#!/usr/bin/env node"}
	js := Print(tree, renamer.NewNoOpRenamer(nil), Options{}).JS
	test.AssertEqual(t, string(js), "#!/usr/bin/env node\n")
}
