package api_test

import (
	"testing"

	"github.com/dop251/goja"

	"github.com/classhook/classhook/internal/test"
	"github.com/classhook/classhook/pkg/api"
)

// Transforms the code, runs it, and returns the value of the global "result"
func expectResult(t *testing.T, contents string, expected interface{}) {
	t.Helper()
	t.Run(contents, func(t *testing.T) {
		t.Helper()
		result := api.Transform(contents, api.TransformOptions{})
		if len(result.Errors) > 0 {
			t.Fatalf("Transform error: %s", result.Errors[0].Text)
		}

		vm := goja.New()
		if _, err := vm.RunString(string(result.JS)); err != nil {
			t.Fatalf("Runtime error: %s\n%s", err, result.JS)
		}
		test.AssertEqual(t, vm.Get("result").Export(), expected)
	})
}

func TestRuntimeNoHook(t *testing.T) {
	expectResult(t, `
		class Bar {}
		class Foo extends Bar {}
		var result = Foo.name + ":" + (Object.getPrototypeOf(Foo) === Bar) + ":" + (new Foo() instanceof Bar)
	`, "Foo:true:true")

	expectResult(t, `
		class Foo extends null {}
		var result = Foo.name
	`, "Foo")

	// The name of a default export or a variable isn't given to the class
	expectResult(t, `
		class Bar {}
		var x = class extends Bar {}
		var result = x.name
	`, "_x")
}

func TestRuntimeHookReturnsNothing(t *testing.T) {
	expectResult(t, `
		var seen = []
		class Bar {
			static extended(child) {
				seen.push(child.name)
				child.tagged = true
			}
		}
		class Foo extends Bar {}
		class Baz extends Foo {}
		var result = seen.join(",") + ":" + Foo.tagged + ":" + (Object.getPrototypeOf(Baz) === Foo)
	`, "Foo,Baz:true:true")
}

func TestRuntimeHookReturnsReplacement(t *testing.T) {
	expectResult(t, `
		var original
		class Bar {
			static extended(child) {
				original = child
				return function Replacement() {}
			}
		}
		class Foo extends Bar {
			static self() {
				return Foo
			}
		}
		var result = [Foo.name, Foo !== original, original.self() === original].join(":")
	`, "Foo:true:true")

	// The replacement keeps its name if the class had none
	expectResult(t, `
		class Bar {
			static extended() {
				return function Replacement() {}
			}
		}
		var result = (0, class extends Bar {}).name
	`, "Replacement")

	expectResult(t, `
		class Bar {
			static extended() {
				return 123
			}
		}
		class Foo extends Bar {}
		var result = Foo
	`, int64(123))
}

func TestRuntimeHookNotAFunction(t *testing.T) {
	expectResult(t, `
		class Bar {}
		Bar.extended = 1
		var result
		try {
			(function() {
				class Foo extends Bar {}
			})()
		} catch (e) {
			result = (e instanceof TypeError) + ":" + e.message
		}
	`, "true:Attempted to call extended, but it was not a function")
}

func TestRuntimeParentEvaluatedOnce(t *testing.T) {
	expectResult(t, `
		var count = 0
		var seen
		class Bar {
			static extended(child) {
				seen = child
			}
		}
		function parent() {
			count++
			return Bar
		}
		class Foo extends parent() {}
		var result = count + ":" + (seen === Foo) + ":" + (Object.getPrototypeOf(Foo) === Bar)
	`, "1:true:true")
}

func TestRuntimeInsideFunction(t *testing.T) {
	expectResult(t, `
		var names = []
		class Bar {
			static extended(child) {
				names.push(child.name)
			}
		}
		function make(i) {
			class Foo extends Bar {
				static index = i
			}
			return Foo
		}
		var sum = make(1).index + make(2).index
		var result = names.length + ":" + sum + ":" + names.join(",")
	`, "2:3:Foo,Foo")
}

func TestRuntimeStrictModeKept(t *testing.T) {
	expectResult(t, `
		'use strict';
		class Bar {}
		class Foo extends Bar {}
		var result = (function() { return this === undefined })()
	`, true)
}

func TestRuntimeEnclosingThisAndArguments(t *testing.T) {
	expectResult(t, `
		class Bar {}
		function make() {
			class Foo extends arguments[0] {}
			return Foo
		}
		var result = Object.getPrototypeOf(make(Bar)) === Bar
	`, true)

	expectResult(t, `
		class Bar {}
		var obj = {
			key: "hello",
			make() {
				class Foo extends Bar {
					[this.key]() { return 1 }
				}
				return Foo
			}
		}
		var result = new (obj.make())().hello()
	`, int64(1))
}
