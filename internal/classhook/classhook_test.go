package classhook

import (
	"strings"
	"testing"

	"github.com/classhook/classhook/internal/config"
	"github.com/classhook/classhook/internal/js_ast"
	"github.com/classhook/classhook/internal/js_parser"
	"github.com/classhook/classhook/internal/js_printer"
	"github.com/classhook/classhook/internal/logger"
	"github.com/classhook/classhook/internal/renamer"
	"github.com/classhook/classhook/internal/test"
)

func msgsText(msgs []logger.Msg, minKind logger.MsgKind) string {
	text := ""
	for _, msg := range msgs {
		if msg.Kind <= minKind {
			text += msg.String(logger.OutputOptions{}, logger.TerminalInfo{})
		}
	}
	return text
}

func transformForTest(t *testing.T, contents string, options config.Options) (string, []logger.Msg) {
	t.Helper()
	log := logger.NewDeferLog()
	source := test.SourceForTest(contents)
	tree, ok := js_parser.Parse(log, source)
	if !ok {
		t.Fatalf("Parse error:\n%s", msgsText(log.Done(), logger.Warning))
	}
	if !Transform(log, source, &tree, options) {
		t.Fatalf("Transform error:\n%s", msgsText(log.Done(), logger.Warning))
	}
	js := js_printer.Print(tree, renamer.NewNoOpRenamer(tree.Symbols), js_printer.Options{}).JS
	return string(js), log.Done()
}

func expectTransformedCommon(t *testing.T, contents string, expected string, options config.Options) {
	t.Helper()
	t.Run(contents, func(t *testing.T) {
		t.Helper()
		js, msgs := transformForTest(t, contents, options)
		test.AssertEqualWithDiff(t, msgsText(msgs, logger.Warning), "")
		test.AssertEqualWithDiff(t, js, expected)
	})
}

func expectTransformError(t *testing.T, contents string, expected string) {
	t.Helper()
	t.Run(contents, func(t *testing.T) {
		t.Helper()
		log := logger.NewDeferLog()
		source := test.SourceForTest(contents)
		tree, ok := js_parser.Parse(log, source)
		if !ok {
			t.Fatalf("Parse error:\n%s", msgsText(log.Done(), logger.Warning))
		}
		if Transform(log, source, &tree, config.Options{OmitHelperForTests: true}) {
			t.Fatal("Expected the transform to fail")
		}
		test.AssertEqualWithDiff(t, msgsText(log.Done(), logger.Warning), expected)
	})
}

func expectTransformed(t *testing.T, contents string, expected string) {
	t.Helper()
	expectTransformedCommon(t, contents, expected, config.Options{OmitHelperForTests: true})
}

func TestDeclaration(t *testing.T) {
	expectTransformed(t, "class Foo extends Bar {}",
		`let Foo = (() => {
  class _Foo extends Bar {
  }
  return __extendedHook(_Foo, Bar, "Foo");
})();
`)

	expectTransformed(t, "class Foo extends Bar { constructor() { super(); this.x = 1 } }",
		`let Foo = (() => {
  class _Foo extends Bar {
    constructor() {
      super();
      this.x = 1;
    }
  }
  return __extendedHook(_Foo, Bar, "Foo");
})();
`)

	// References outside of the class see the value returned by the helper
	expectTransformed(t, "class Foo extends Bar {} new Foo()",
		`let Foo = (() => {
  class _Foo extends Bar {
  }
  return __extendedHook(_Foo, Bar, "Foo");
})();
new Foo();
`)

	expectTransformed(t, "function f() { class Foo extends Bar {} return Foo }",
		`function f() {
  let Foo = (() => {
    class _Foo extends Bar {
    }
    return __extendedHook(_Foo, Bar, "Foo");
  })();
  return Foo;
}
`)
}

func TestNoSuperclass(t *testing.T) {
	expectTransformed(t, "class Foo {}", "class Foo {\n}\n")
	expectTransformed(t, "x = class {}", "x = class {\n};\n")
	expectTransformed(t, "export default class {}", "export default class {\n}\n")
}

func TestExport(t *testing.T) {
	expectTransformed(t, "export class Foo extends Bar {}",
		`export let Foo = (() => {
  class _Foo extends Bar {
  }
  return __extendedHook(_Foo, Bar, "Foo");
})();
`)

	expectTransformed(t, "export default class Foo extends Bar {}",
		`var Foo = (() => {
  class _Foo extends Bar {
  }
  return __extendedHook(_Foo, Bar, "Foo");
})();
export default Foo;
`)

	expectTransformed(t, "export default class extends Bar {}",
		`export default (() => {
  class _class extends Bar {
  }
  return __extendedHook(_class, Bar, void 0);
})();
`)
}

func TestClassExpression(t *testing.T) {
	expectTransformed(t, "x = class Y extends Z { m() { return Y } }",
		`x = (() => {
  class _Y extends Z {
    m() {
      return _Y;
    }
  }
  return __extendedHook(_Y, Z, "Y");
})();
`)

	expectTransformed(t, "f(class extends Z {})",
		`f((() => {
  class _class extends Z {
  }
  return __extendedHook(_class, Z, void 0);
})());
`)

	// The variable name seeds the inner name but the class isn't given a name
	expectTransformed(t, "const x = class extends Bar { m() { return x } }",
		`const x = (() => {
  class _x extends Bar {
    m() {
      return _x;
    }
  }
  return __extendedHook(_x, Bar, void 0);
})();
`)

	expectTransformed(t, "let [x] = [class extends Bar {}]",
		`let [x] = [(() => {
  class _class extends Bar {
  }
  return __extendedHook(_class, Bar, void 0);
})()];
`)
}

func TestParentTemporary(t *testing.T) {
	expectTransformed(t, "class Foo extends mixin(A, B) {}",
		`let Foo = (() => {
  var _parent = mixin(A, B);
  class _Foo extends _parent {
  }
  return __extendedHook(_Foo, _parent, "Foo");
})();
`)

	expectTransformed(t, "class Foo extends a.b {}",
		`let Foo = (() => {
  var _parent = a.b;
  class _Foo extends _parent {
  }
  return __extendedHook(_Foo, _parent, "Foo");
})();
`)

	expectTransformed(t, "class A extends x.y {} class B extends x.z {}",
		`let A = (() => {
  var _parent = x.y;
  class _A extends _parent {
  }
  return __extendedHook(_A, _parent, "A");
})();
let B = (() => {
  var _parent2 = x.z;
  class _B extends _parent2 {
  }
  return __extendedHook(_B, _parent2, "B");
})();
`)
}

func TestSelfReferences(t *testing.T) {
	expectTransformed(t, "class Foo extends Bar { static create() { return new Foo() } x = Foo }",
		`let Foo = (() => {
  class _Foo extends Bar {
    static create() {
      return new _Foo();
    }
    x = _Foo;
  }
  return __extendedHook(_Foo, Bar, "Foo");
})();
`)

	// A nested declaration of the same name hides the class
	expectTransformed(t, "class Foo extends Bar { m(Foo) { return Foo } n() { let Foo; return Foo } o() { return Foo } }",
		`let Foo = (() => {
  class _Foo extends Bar {
    m(Foo) {
      return Foo;
    }
    n() {
      let Foo;
      return Foo;
    }
    o() {
      return _Foo;
    }
  }
  return __extendedHook(_Foo, Bar, "Foo");
})();
`)

	expectTransformed(t, "class Foo extends Bar { m() { return () => Foo } }",
		`let Foo = (() => {
  class _Foo extends Bar {
    m() {
      return () => _Foo;
    }
  }
  return __extendedHook(_Foo, Bar, "Foo");
})();
`)

	// Names that already exist in the file are avoided
	expectTransformed(t, "let _Foo; class Foo extends Bar {}",
		`let _Foo;
let Foo = (() => {
  class _Foo2 extends Bar {
  }
  return __extendedHook(_Foo2, Bar, "Foo");
})();
`)
}

func TestNested(t *testing.T) {
	expectTransformed(t, "class A extends B { static C = class extends D {} }",
		`let A = (() => {
  class _A extends B {
    static C = (() => {
      class _class extends D {
      }
      return __extendedHook(_class, D, void 0);
    })();
  }
  return __extendedHook(_A, B, "A");
})();
`)

	expectTransformed(t, "class A extends (class B extends C {}) {}",
		`let A = (() => {
  var _parent = (() => {
    class _B extends C {
    }
    return __extendedHook(_B, C, "B");
  })();
  class _A extends _parent {
  }
  return __extendedHook(_A, _parent, "A");
})();
`)
}

func TestDecoratedClass(t *testing.T) {
	expectTransformed(t, "@dec class Foo extends Bar { @dec m() {} }",
		`let Foo = (() => {
  @dec
  class _Foo extends Bar {
    @dec m() {
    }
  }
  return __extendedHook(_Foo, Bar, "Foo");
})();
`)
}

func TestHelperName(t *testing.T) {
	expectTransformedCommon(t, "class Foo extends Bar {}",
		`let Foo = (() => {
  class _Foo extends Bar {
  }
  return hook(_Foo, Bar, "Foo");
})();
`, config.Options{HelperName: "hook", OmitHelperForTests: true})
}

func TestHelperInsertedOnce(t *testing.T) {
	js, _ := transformForTest(t, "class A extends B {} class C extends D {}", config.Options{})
	if !strings.HasPrefix(js, "var __extendedHook = function(child, parent, childName) {\n") {
		t.Fatalf("Expected the helper at the top of the file:\n%s", js)
	}
	test.AssertEqual(t, strings.Count(js, "var __extendedHook"), 1)
	test.AssertEqual(t, strings.Count(js, "return __extendedHook("), 2)

	// Nothing is inserted into files without any subclasses
	js, _ = transformForTest(t, "class A {}", config.Options{})
	test.AssertEqual(t, js, "class A {\n}\n")
}

func TestHelperAfterDirectives(t *testing.T) {
	js, _ := transformForTest(t, "'use strict'; 'use asm'; class Foo extends Bar {}", config.Options{})
	if !strings.HasPrefix(js, "\"use strict\";\n\"use asm\";\nvar __extendedHook = function(child, parent, childName) {\n") {
		t.Fatalf("Expected the helper after the directives:\n%s", js)
	}

	// A string that isn't part of the prologue stays an expression
	js, _ = transformForTest(t, "x(); 'use strict'; class Foo extends Bar {}", config.Options{})
	if !strings.HasPrefix(js, "var __extendedHook = ") || !strings.Contains(js, "\nx();\n(\"use strict\");\n") {
		t.Fatalf("Expected the helper first:\n%s", js)
	}

	expectTransformed(t, "function f() { 'use strict'; class Foo extends Bar {} }",
		`function f() {
  "use strict";
  let Foo = (() => {
    class _Foo extends Bar {
    }
    return __extendedHook(_Foo, Bar, "Foo");
  })();
}
`)
}

func TestHelperShadowed(t *testing.T) {
	expectTransformError(t, "function f() { let __extendedHook = 1; class Foo extends Bar {} return Foo }",
		"<stdin>: error: Cannot wrap class \"Foo\" because a local declaration named \"__extendedHook\" hides the helper (use a different helper name)\n")
	expectTransformError(t, "function f(__extendedHook) { return class extends Bar {} }",
		"<stdin>: error: Cannot wrap class \"(anonymous)\" because a local declaration named \"__extendedHook\" hides the helper (use a different helper name)\n")

	// A local with that name somewhere else doesn't matter
	expectTransformed(t, "function f() { let __extendedHook = 1 } class Foo extends Bar {}",
		`function f() {
  let __extendedHook = 1;
}
let Foo = (() => {
  class _Foo extends Bar {
  }
  return __extendedHook(_Foo, Bar, "Foo");
})();
`)

	// Generated names never take the helper's name
	expectTransformedCommon(t, "class Foo extends Bar {}",
		`let Foo = (() => {
  class _Foo2 extends Bar {
  }
  return _Foo(_Foo2, Bar, "Foo");
})();
`, config.Options{HelperName: "_Foo", OmitHelperForTests: true})
}

func TestEnclosingFunctionContext(t *testing.T) {
	// "this" and "arguments" in the superclass keep their meaning
	expectTransformed(t, "function f() { class Foo extends arguments[0] { [this.key]() {} } return Foo }",
		`function f() {
  let Foo = (() => {
    var _parent = arguments[0];
    class _Foo extends _parent {
      [this.key]() {
      }
    }
    return __extendedHook(_Foo, _parent, "Foo");
  })();
  return Foo;
}
`)

	expectTransformed(t, "async function f() { class A extends (await g()) {} }",
		`async function f() {
  let A = await (async () => {
    var _parent = await g();
    class _A extends _parent {
    }
    return __extendedHook(_A, _parent, "A");
  })();
}
`)

	expectTransformed(t, "async function f() { x = class extends B { [await k()]() {} } }",
		`async function f() {
  x = await (async () => {
    class _class extends B {
      [await k()]() {
      }
    }
    return __extendedHook(_class, B, void 0);
  })();
}
`)

	// An "await" in a method belongs to the method
	expectTransformed(t, "async function f() { class A extends B { async m() { await x } } }",
		`async function f() {
  let A = (() => {
    class _A extends B {
      async m() {
        await x;
      }
    }
    return __extendedHook(_A, B, "A");
  })();
}
`)

	expectTransformError(t, "function* f() { class A extends (yield) {} }",
		"<stdin>: error: Cannot wrap class \"A\" because \"yield\" is used outside of its body\n")
}

func TestExistingHelper(t *testing.T) {
	expectTransformedCommon(t, "function __extendedHook(c) { return c } class Foo extends Bar {}",
		`function __extendedHook(c) {
  return c;
}
let Foo = (() => {
  class _Foo extends Bar {
  }
  return __extendedHook(_Foo, Bar, "Foo");
})();
`, config.Options{})

	// A reference to the helper's name that isn't declared anywhere now
	// refers to the inserted helper
	js, _ := transformForTest(t, "f(__extendedHook); class Foo extends Bar {}", config.Options{})
	test.AssertEqual(t, strings.Count(js, "var __extendedHook"), 1)
	if !strings.Contains(js, "\nf(__extendedHook);\n") {
		t.Fatalf("Expected the original reference to be kept:\n%s", js)
	}
}

func TestIdempotent(t *testing.T) {
	inputs := []string{
		"class Foo extends Bar {}",
		"export default class extends Bar {}",
		"export default class Foo extends Bar {}",
		"const x = class extends mixin(A) { m() { return x } }",
		"class A extends B { static C = class extends D {} }",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			first, _ := transformForTest(t, input, config.Options{})
			second, msgs := transformForTest(t, first, config.Options{})
			test.AssertEqualWithDiff(t, second, first)
			test.AssertEqualWithDiff(t, msgsText(msgs, logger.Info), "")
		})
	}
}

func TestNotTransformedTwice(t *testing.T) {
	log := logger.NewDeferLog()
	source := test.SourceForTest("class Foo extends Bar {}")
	tree, ok := js_parser.Parse(log, source)
	if !ok {
		t.Fatal("Parse error")
	}

	options := config.Options{OmitHelperForTests: true}
	if !Transform(log, source, &tree, options) || !Transform(log, source, &tree, options) {
		t.Fatal("Transform error")
	}
	js := js_printer.Print(tree, renamer.NewNoOpRenamer(tree.Symbols), js_printer.Options{}).JS
	test.AssertEqualWithDiff(t, string(js), `let Foo = (() => {
  class _Foo extends Bar {
  }
  return __extendedHook(_Foo, Bar, "Foo");
})();
`)

	var classes []*js_ast.Class
	visitor := js_ast.Visitor{
		Stmt: func(stmt js_ast.Stmt) []js_ast.Stmt {
			if s, ok := stmt.Data.(*js_ast.SClass); ok {
				classes = append(classes, &s.Class)
			}
			return nil
		},
	}
	visitor.WalkStmts(tree.Stmts)
	test.AssertEqual(t, len(classes), 1)
	test.AssertEqual(t, classes[0].Generated, js_ast.GeneratedByClassHook)
}

func TestMessages(t *testing.T) {
	_, msgs := transformForTest(t, "class Foo extends Bar {}\nx = class extends Baz {}", config.Options{})
	test.AssertEqualWithDiff(t, msgsText(msgs, logger.Debug),
		`info: Wrapped 2 classes in <stdin>
<stdin>: debug: Wrapped class "Foo" in a call to "__extendedHook"
<stdin>: debug: Wrapped class "(anonymous)" in a call to "__extendedHook"
`)

	_, msgs = transformForTest(t, "class Foo extends Bar {}", config.Options{})
	test.AssertEqualWithDiff(t, msgsText(msgs, logger.Info), "info: Wrapped 1 class in <stdin>\n")

	_, msgs = transformForTest(t, "class Foo {}", config.Options{})
	test.AssertEqualWithDiff(t, msgsText(msgs, logger.Debug), "")
}

func TestUnresolvedBinding(t *testing.T) {
	log := logger.NewDeferLog()
	source := test.SourceForTest("class Foo extends Bar {}")
	tree, ok := js_parser.Parse(log, source)
	if !ok {
		t.Fatal("Parse error")
	}

	// Simulate a scope tree that doesn't match the syntax tree
	delete(tree.ModuleScope.Members, "Foo")

	if Transform(log, source, &tree, config.Options{}) {
		t.Fatal("Expected the transform to fail")
	}
	test.AssertEqualWithDiff(t, msgsText(log.Done(), logger.Warning),
		"<stdin>: error: Cannot resolve the binding for class \"Foo\"\n")
}

func TestScopesAfterTransform(t *testing.T) {
	log := logger.NewDeferLog()
	source := test.SourceForTest("class Foo extends Bar { m() {} }")
	tree, ok := js_parser.Parse(log, source)
	if !ok {
		t.Fatal("Parse error")
	}
	if !Transform(log, source, &tree, config.Options{OmitHelperForTests: true}) {
		t.Fatal("Transform error")
	}

	local := tree.Stmts[0].Data.(*js_ast.SLocal)
	arrow := local.Decls[0].ValueOrNil.Data.(*js_ast.ECall).Target.Data.(*js_ast.EArrow)
	test.AssertEqual(t, arrow.Scope.Parent, tree.ModuleScope)

	class := arrow.Body.Stmts[0].Data.(*js_ast.SClass)
	test.AssertEqual(t, class.Class.BodyScope.Parent, arrow.Scope)
	test.AssertEqual(t, arrow.Scope.Members["_Foo"].Ref, class.Class.Name.Ref)

	// The outer name still refers to the original symbol
	test.AssertEqual(t, tree.ModuleScope.Members["Foo"].Ref, local.Decls[0].Binding.Data.(*js_ast.BIdentifier).Ref)
}
