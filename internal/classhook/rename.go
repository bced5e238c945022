package classhook

import (
	"github.com/classhook/classhook/internal/js_ast"
)

// Re-points every reference to "binding" inside the class body at "newRef".
// A name can only start meaning something else at a scope that declares it,
// so any nested scope with its own symbol for "name" is skipped along with
// everything inside it. Decorators and the superclass expression are outside
// of the body and are left alone.
func rewriteSelfReferences(class *js_ast.Class, name string, binding js_ast.Ref, newRef js_ast.Ref) {
	if name == "" || binding == js_ast.InvalidRef {
		return
	}

	visitor := js_ast.Visitor{
		EnterScope: func(scope *js_ast.Scope) bool {
			member, ok := scope.Members[name]
			return !ok || member.Ref == binding
		},
		Expr: func(expr *js_ast.Expr) {
			if id, ok := expr.Data.(*js_ast.EIdentifier); ok && id.Ref == binding {
				id.Ref = newRef
			}
		},
	}
	visitor.WalkClassBody(class)
}
