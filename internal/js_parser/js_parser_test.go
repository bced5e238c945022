package js_parser

import (
	"testing"

	"github.com/classhook/classhook/internal/js_ast"
	"github.com/classhook/classhook/internal/js_printer"
	"github.com/classhook/classhook/internal/logger"
	"github.com/classhook/classhook/internal/renamer"
	"github.com/classhook/classhook/internal/test"
)

func expectParseError(t *testing.T, contents string, expected string) {
	t.Helper()
	t.Run(contents, func(t *testing.T) {
		t.Helper()
		log := logger.NewDeferLog()
		Parse(log, test.SourceForTest(contents))
		msgs := log.Done()
		text := ""
		for _, msg := range msgs {
			text += msg.String(logger.OutputOptions{}, logger.TerminalInfo{})
		}
		test.AssertEqualWithDiff(t, text, expected)
	})
}

func expectPrintedCommon(t *testing.T, contents string, expected string, options js_printer.Options) {
	t.Helper()
	t.Run(contents, func(t *testing.T) {
		t.Helper()
		log := logger.NewDeferLog()
		tree, ok := Parse(log, test.SourceForTest(contents))
		msgs := log.Done()
		text := ""
		for _, msg := range msgs {
			text += msg.String(logger.OutputOptions{}, logger.TerminalInfo{})
		}
		test.AssertEqualWithDiff(t, text, "")
		if !ok {
			t.Fatal("Parse error")
		}
		r := renamer.NewNoOpRenamer(tree.Symbols)
		js := js_printer.Print(tree, r, options).JS
		test.AssertEqualWithDiff(t, string(js), expected)
	})
}

func expectPrinted(t *testing.T, contents string, expected string) {
	t.Helper()
	expectPrintedCommon(t, contents, expected, js_printer.Options{})
}

func expectPrintedMinify(t *testing.T, contents string, expected string) {
	t.Helper()
	expectPrintedCommon(t, contents, expected, js_printer.Options{MinifyWhitespace: true})
}

func parseForTest(t *testing.T, contents string) js_ast.AST {
	t.Helper()
	log := logger.NewDeferLog()
	tree, ok := Parse(log, test.SourceForTest(contents))
	if !ok {
		t.Fatalf("Unexpected parse error in %q", contents)
	}
	return tree
}

func TestHashbang(t *testing.T) {
	expectPrinted(t, "#!/usr/bin/env node\nlet x", "#!/usr/bin/env node\nlet x;\n")
}

func TestDecls(t *testing.T) {
	expectPrinted(t, "var x", "var x;\n")
	expectPrinted(t, "let x = 1, y", "let x = 1, y;\n")
	expectPrinted(t, "const x = 1", "const x = 1;\n")
	expectPrinted(t, "let [a, , b] = c", "let [a, , b] = c;\n")
	expectPrinted(t, "let [a, ...b] = c", "let [a, ...b] = c;\n")
	expectPrinted(t, "const {a, b: c = 1, ...d} = e", "const { a, b: c = 1, ...d } = e;\n")
	expectPrinted(t, "var x; var x", "var x;\nvar x;\n")

	expectParseError(t, "const x", "<stdin>: error: This constant must be initialized\n")
	expectParseError(t, "let x; let x", "<stdin>: error: The symbol \"x\" has already been declared\n")
	expectParseError(t, "let x; var x", "<stdin>: error: The symbol \"x\" has already been declared\n")
	expectParseError(t, "class x {} var x", "<stdin>: error: The symbol \"x\" has already been declared\n")
}

func TestFunction(t *testing.T) {
	expectPrinted(t, "function f(a, b = 1, ...c) { return a }", "function f(a, b = 1, ...c) {\n  return a;\n}\n")
	expectPrinted(t, "async function f() { await x }", "async function f() {\n  await x;\n}\n")
	expectPrinted(t, "function* f() { yield x; yield* y }", "function* f() {\n  yield x;\n  yield* y;\n}\n")
	expectPrinted(t, "x = function() {}", "x = function() {\n};\n")
	expectPrinted(t, "(function() {})()", "(function() {\n})();\n")
	expectPrinted(t, "x = function f() { return f }", "x = function f() {\n  return f;\n};\n")

	expectParseError(t, "return", "<stdin>: error: A return statement cannot be used here\n")
}

func TestArrow(t *testing.T) {
	expectPrinted(t, "x => x", "(x) => x;\n")
	expectPrinted(t, "(a, b) => {}", "(a, b) => {\n};\n")
	expectPrinted(t, "() => ({})", "() => ({});\n")
	expectPrinted(t, "async () => await x", "async () => await x;\n")
	expectPrinted(t, "(a = 1, ...b) => a", "(a = 1, ...b) => a;\n")
	expectPrinted(t, "x = (a) => (b) => a + b", "x = (a) => (b) => a + b;\n")

	expectPrintedMinify(t, "x = (a) => a", "x=a=>a;")

	expectParseError(t, "()", "<stdin>: error: Expected \"=>\" but found end of file\n")
	expectParseError(t, "(a)\n=> a", "<stdin>: error: Unexpected newline before \"=>\"\n")
}

func TestClass(t *testing.T) {
	expectPrinted(t, "class A {}", "class A {\n}\n")
	expectPrinted(t, "class A extends B {}", "class A extends B {\n}\n")
	expectPrinted(t, "class A extends (B, C) {}", "class A extends (B, C) {\n}\n")
	expectPrinted(t, "class A extends B.C {}", "class A extends B.C {\n}\n")
	expectPrinted(t, "class A { static x = 1; #y; m() {} get z() { return 1 } }",
		"class A {\n  static x = 1;\n  #y;\n  m() {\n  }\n  get z() {\n    return 1;\n  }\n}\n")
	expectPrinted(t, "class A { static { x() } }", "class A {\n  static {\n    x();\n  }\n}\n")
	expectPrinted(t, "class A { [x]() {} 'a b' = 1 }", "class A {\n  [x]() {\n  }\n  \"a b\" = 1;\n}\n")
	expectPrinted(t, "class A { m() { return this.#x } }", "class A {\n  m() {\n    return this.#x;\n  }\n}\n")
	expectPrinted(t, "x = class {}", "x = class {\n};\n")
	expectPrinted(t, "x = class Y extends Z {}", "x = class Y extends Z {\n};\n")
	expectPrinted(t, "(class {})", "(class {\n});\n")

	expectParseError(t, "class A { get x(a) {} }", "<stdin>: error: Getter \"x\" must have zero arguments\n")
	expectParseError(t, "class A { set x() {} }", "<stdin>: error: Setter \"x\" must have exactly one argument\n")
}

func TestDecorators(t *testing.T) {
	expectPrinted(t, "@dec class A {}", "@dec\nclass A {\n}\n")
	expectPrinted(t, "@a.b(c) @(d[0]) class A {}", "@a.b(c)\n@(d[0])\nclass A {\n}\n")
	expectPrinted(t, "export @dec class A {}", "export @dec class A {\n}\n")
	expectPrinted(t, "export default @dec class {}", "export default @dec class {\n}\n")
	expectPrinted(t, "class A { @dec m() {} @dec x }", "class A {\n  @dec m() {\n  }\n  @dec x;\n}\n")
	expectPrinted(t, "x = @dec class {}", "x = @dec class {\n};\n")

	expectParseError(t, "@dec let x", "<stdin>: error: Expected \"class\" but found \"let\"\n")
}

func TestStatements(t *testing.T) {
	expectPrinted(t, "if (a) b(); else c()", "if (a)\n  b();\nelse\n  c();\n")
	expectPrinted(t, "if (a) { b() } else if (c) { d() }", "if (a) {\n  b();\n} else if (c) {\n  d();\n}\n")
	expectPrinted(t, "if (a) { if (b) c() } else d()", "if (a) {\n  if (b)\n    c();\n} else\n  d();\n")
	expectPrinted(t, "for (let i = 0; i < 10; i++) {}", "for (let i = 0; i < 10; i++) {\n}\n")
	expectPrinted(t, "for (const x of y) z()", "for (const x of y)\n  z();\n")
	expectPrinted(t, "for (x in y) {}", "for (x in y) {\n}\n")
	expectPrinted(t, "for await (const x of y) {}", "for await (const x of y) {\n}\n")
	expectPrinted(t, "while (x) break", "while (x)\n  break;\n")
	expectPrinted(t, "do x(); while (y)", "do\n  x();\nwhile (y);\n")
	expectPrinted(t, "foo: while (x) continue foo", "foo:\n  while (x)\n    continue foo;\n")
	expectPrinted(t, "switch (a) { case 1: b(); break; default: c() }",
		"switch (a) {\n  case 1:\n    b();\n    break;\n  default:\n    c();\n}\n")
	expectPrinted(t, "try { a() } catch (e) { b() } finally { c() }",
		"try {\n  a();\n} catch (e) {\n  b();\n} finally {\n  c();\n}\n")
	expectPrinted(t, "try {} catch {}", "try {\n} catch {\n}\n")
	expectPrinted(t, "throw x", "throw x;\n")
	expectPrinted(t, "debugger", "debugger;\n")
	expectPrinted(t, "{ let x }", "{\n  let x;\n}\n")
	expectPrinted(t, ";;x;;", "x;\n")

	expectParseError(t, "with (a) {}", "<stdin>: error: With statements cannot be used in strict mode code\n")
	expectParseError(t, "enum A {}", "<stdin>: error: Enums are not supported in JavaScript files\n")
	expectParseError(t, "throw\nx", "<stdin>: error: Unexpected newline after \"throw\"\n")
	expectParseError(t, "switch (a) { default: default: }", "<stdin>: error: Multiple default clauses are not allowed\n")
}

func TestImportExport(t *testing.T) {
	expectPrinted(t, "import 'x'", "import \"x\";\n")
	expectPrinted(t, "import a from 'x'", "import a from \"x\";\n")
	expectPrinted(t, "import a, {b as c, d} from 'x'", "import a, { b as c, d } from \"x\";\n")
	expectPrinted(t, "import * as ns from 'x'", "import * as ns from \"x\";\n")
	expectPrinted(t, "export * from 'x'", "export * from \"x\";\n")
	expectPrinted(t, "export * as ns from 'x'", "export * as ns from \"x\";\n")
	expectPrinted(t, "export {a as b, c} from 'x'", "export { a as b, c } from \"x\";\n")
	expectPrinted(t, "let a, c; export {a as b, c}", "let a, c;\nexport { a as b, c };\n")
	expectPrinted(t, "export let x = 1", "export let x = 1;\n")
	expectPrinted(t, "export function f() {}", "export function f() {\n}\n")
	expectPrinted(t, "export class A {}", "export class A {\n}\n")
	expectPrinted(t, "export default class A {}", "export default class A {\n}\n")
	expectPrinted(t, "export default function() {}", "export default function() {\n}\n")
	expectPrinted(t, "export default 1 + 2", "export default 1 + 2;\n")
	expectPrinted(t, "export default (function() {})", "export default (function() {\n});\n")
	expectPrinted(t, "import('x')", "import(\"x\");\n")
	expectPrinted(t, "x = import.meta", "x = import.meta;\n")

	expectParseError(t, "{ export let x }", "<stdin>: error: Unexpected \"export\"\n")
	expectParseError(t, "export {default}", "<stdin>: error: Expected identifier but found \"default\"\n")
}

func TestExprs(t *testing.T) {
	expectPrinted(t, "(a + b) * c", "(a + b) * c;\n")
	expectPrinted(t, "a + (b + c)", "a + (b + c);\n")
	expectPrinted(t, "a ** b ** c", "a ** b ** c;\n")
	expectPrinted(t, "(-a) ** b", "(-a) ** b;\n")
	expectPrinted(t, "a ?? (b || c)", "a ?? (b || c);\n")
	expectPrinted(t, "a = b ? c : d", "a = b ? c : d;\n")
	expectPrinted(t, "(a, b)", "a, b;\n")
	expectPrinted(t, "a?.b?.[c]?.(d)", "a?.b?.[c]?.(d);\n")
	expectPrinted(t, "new a.b()", "new a.b();\n")
	expectPrinted(t, "new a", "new a();\n")
	expectPrinted(t, "new (a())()", "new (a())();\n")
	expectPrinted(t, "typeof x == 'undefined'", "typeof x == \"undefined\";\n")
	expectPrinted(t, "void 0", "void 0;\n")
	expectPrinted(t, "a + +b", "a + +b;\n")
	expectPrinted(t, "a - -b", "a - -b;\n")
	expectPrinted(t, "({a} = b)", "({ a } = b);\n")
	expectPrinted(t, "x = {a: 1, b, [c]: 2, ...d}", "x = { a: 1, b, [c]: 2, ...d };\n")
	expectPrinted(t, "x = {'a-b': 1, get c() {}, m() {}}", "x = { \"a-b\": 1, get c() {\n}, m() {\n} };\n")
	expectPrinted(t, "x = [1, , 2]", "x = [1, , 2];\n")
	expectPrinted(t, "x = [1,\n2]", "x = [\n  1,\n  2\n];\n")
	expectPrinted(t, "x = `a${b}c`", "x = `a${b}c`;\n")
	expectPrinted(t, "tag`a${b}`", "tag`a${b}`;\n")
	expectPrinted(t, "x = /a/g", "x = /a/g;\n")
	expectPrinted(t, "x = 10n", "x = 10n;\n")

	expectParseError(t, "-x ** 2", "<stdin>: error: Unexpected \"**\"\n")
}

func TestNumbers(t *testing.T) {
	expectPrinted(t, "x = 123", "x = 123;\n")
	expectPrinted(t, "x = 0x10", "x = 16;\n")
	expectPrinted(t, "x = 0.5", "x = 0.5;\n")
	expectPrinted(t, "x = 1e21", "x = 1e21;\n")
	expectPrinted(t, "x = 1e-7", "x = 1e-7;\n")
	expectPrinted(t, "x = (-1).toString()", "x = (-1).toString();\n")
	expectPrinted(t, "x = 1..toString()", "x = 1 .toString();\n")
}

func TestStrings(t *testing.T) {
	expectPrinted(t, "x = 'a'", "x = \"a\";\n")
	expectPrinted(t, "x = \"a'b\"", "x = \"a'b\";\n")
	expectPrinted(t, "x = 'a\"b'", "x = 'a\"b';\n")
	expectPrintedCommon(t, "x = '\u00E9'", "x = \"\\u00E9\";\n", js_printer.Options{ASCIIOnly: true})
	expectPrintedCommon(t, "\u00E9 = 1", "\\u00E9 = 1;\n", js_printer.Options{ASCIIOnly: true})
}

func TestDirectives(t *testing.T) {
	expectPrinted(t, "'use strict'; 'use asm'; x", "\"use strict\";\n\"use asm\";\nx;\n")
	expectPrinted(t, "function f() { 'use strict' }", "function f() {\n  \"use strict\";\n}\n")
	expectPrinted(t, "() => { 'use strict' }", "() => {\n  \"use strict\";\n};\n")
	expectPrintedMinify(t, "'use strict'; x", "\"use strict\";x;")

	// These are not directives
	expectPrinted(t, "x; 'use strict'", "x;\n(\"use strict\");\n")
	expectPrinted(t, "('use strict'); x", "(\"use strict\");\nx;\n")
	expectPrinted(t, "; 'use strict'", "(\"use strict\");\n")
	expectPrinted(t, "'use strict'.length", "\"use strict\".length;\n")
	expectPrinted(t, "if (a) { 'use strict' }", "if (a) {\n  (\"use strict\");\n}\n")

	tree := parseForTest(t, "'a'; 'b'; c")
	test.AssertEqual(t, len(tree.Stmts), 3)
	test.AssertEqual(t, tree.Stmts[1].Data.(*js_ast.SDirective).Value, "b")
}

func TestScopes(t *testing.T) {
	tree := parseForTest(t, "let x; function f(y) { { let x } return x + y }")
	scope := tree.ModuleScope

	outer, ok := scope.Members["x"]
	if !ok {
		t.Fatal("Expected \"x\" in the module scope")
	}
	test.AssertEqual(t, len(scope.Children), 1)

	fnScope := scope.Children[0]
	test.AssertEqual(t, fnScope.Kind, js_ast.ScopeFunction)
	if _, ok := fnScope.Members["y"]; !ok {
		t.Fatal("Expected \"y\" in the function scope")
	}

	test.AssertEqual(t, len(fnScope.Children), 1)
	inner, ok := fnScope.Children[0].Members["x"]
	if !ok {
		t.Fatal("Expected \"x\" in the block scope")
	}
	if inner.Ref == outer.Ref {
		t.Fatal("Expected the block to declare a separate \"x\"")
	}

	// "return x + y" must refer to the outer "x"
	fn := tree.Stmts[1].Data.(*js_ast.SFunction)
	ret := fn.Fn.Body.Stmts[1].Data.(*js_ast.SReturn)
	add := ret.ValueOrNil.Data.(*js_ast.EBinary)
	test.AssertEqual(t, add.Left.Data.(*js_ast.EIdentifier).Ref, outer.Ref)
}

func TestUnboundNames(t *testing.T) {
	tree := parseForTest(t, "a(); a(); b = 1")
	member, ok := tree.ModuleScope.Members["a"]
	if !ok {
		t.Fatal("Expected \"a\" in the module scope")
	}
	symbol := tree.Symbols[member.Ref.InnerIndex]
	test.AssertEqual(t, symbol.Kind, js_ast.SymbolUnbound)
	test.AssertEqual(t, symbol.MustNotBeRenamed, true)

	first := tree.Stmts[0].Data.(*js_ast.SExpr).Value.Data.(*js_ast.ECall).Target.Data.(*js_ast.EIdentifier)
	second := tree.Stmts[1].Data.(*js_ast.SExpr).Value.Data.(*js_ast.ECall).Target.Data.(*js_ast.EIdentifier)
	test.AssertEqual(t, first.Ref, second.Ref)
}

func TestHoisting(t *testing.T) {
	tree := parseForTest(t, "function f() { { var x } x } class A { static { var y } }")
	if _, ok := tree.ModuleScope.Members["x"]; ok {
		t.Fatal("\"var\" must not escape the function")
	}
	if _, ok := tree.ModuleScope.Members["y"]; ok {
		t.Fatal("\"var\" must not escape the static block")
	}
	fnScope := tree.ModuleScope.Children[0]
	if _, ok := fnScope.Members["x"]; !ok {
		t.Fatal("Expected \"x\" to be hoisted into the function scope")
	}
}

func TestClassExpressionNameScope(t *testing.T) {
	tree := parseForTest(t, "x = class Y extends Z { m() { return Y } }")
	if _, ok := tree.ModuleScope.Members["Y"]; ok {
		t.Fatal("The name of a class expression must not leak out of the class")
	}
	class := &tree.Stmts[0].Data.(*js_ast.SExpr).Value.Data.(*js_ast.EBinary).Right.Data.(*js_ast.EClass).Class
	if class.NameScope == nil {
		t.Fatal("Expected a name scope")
	}
	test.AssertEqual(t, class.NameScope.Members["Y"].Ref, class.Name.Ref)
	test.AssertEqual(t, class.BodyScope.Parent, class.NameScope)
}
