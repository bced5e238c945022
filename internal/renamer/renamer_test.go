package renamer

import (
	"testing"

	"github.com/classhook/classhook/internal/js_ast"
	"github.com/classhook/classhook/internal/test"
)

func TestTrimSeed(t *testing.T) {
	test.AssertEqual(t, TrimSeed("Foo"), "Foo")
	test.AssertEqual(t, TrimSeed("_Foo"), "Foo")
	test.AssertEqual(t, TrimSeed("__Foo12"), "Foo")
	test.AssertEqual(t, TrimSeed("Foo2Bar"), "Foo2Bar")
	test.AssertEqual(t, TrimSeed("1Foo"), "Foo")
	test.AssertEqual(t, TrimSeed("a-b"), "a_b")
	test.AssertEqual(t, TrimSeed("$"), "$")
}

func TestUniqueNamer(t *testing.T) {
	namer := NewUniqueNamer(map[string]uint32{"_Foo": 1, "_Foo3": 1})
	test.AssertEqual(t, namer.NextName("Foo"), "_Foo2")
	test.AssertEqual(t, namer.NextName("Foo"), "_Foo4")
	test.AssertEqual(t, namer.NextName("_Foo"), "_Foo5")
	test.AssertEqual(t, namer.NextName("Bar"), "_Bar")
	test.AssertEqual(t, namer.NextName("Bar"), "_Bar2")

	namer.Reserve("_parent")
	test.AssertEqual(t, namer.NextName("parent"), "_parent2")
}

func TestComputeReservedNames(t *testing.T) {
	scope := js_ast.NewScope(js_ast.ScopeEntry, nil)
	symbols := []js_ast.Symbol{
		{OriginalName: "Foo", Kind: js_ast.SymbolClass},
		{OriginalName: "console", Kind: js_ast.SymbolUnbound},
		{OriginalName: "inner", Kind: js_ast.SymbolOther},
	}
	scope.Members["Foo"] = js_ast.ScopeMember{Ref: js_ast.Ref{InnerIndex: 0}}
	scope.Members["console"] = js_ast.ScopeMember{Ref: js_ast.Ref{InnerIndex: 1}}

	names := ComputeReservedNames(scope, symbols)
	for _, name := range []string{"Foo", "console", "inner", "class", "let", "await"} {
		if _, ok := names[name]; !ok {
			t.Fatalf("Expected %q to be reserved", name)
		}
	}
	if _, ok := names["Bar"]; ok {
		t.Fatal("Did not expect \"Bar\" to be reserved")
	}
}

func TestNoOpRenamer(t *testing.T) {
	r := NewNoOpRenamer([]js_ast.Symbol{{OriginalName: "a"}, {OriginalName: "_Foo"}})
	test.AssertEqual(t, r.NameForSymbol(js_ast.Ref{InnerIndex: 1}), "_Foo")
}
