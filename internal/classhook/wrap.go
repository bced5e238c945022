package classhook

import (
	"fmt"

	"github.com/classhook/classhook/internal/js_ast"
	"github.com/classhook/classhook/internal/logger"
)

// What a class is called and which symbol refers to it from inside its body
type classIdentity struct {
	// This seeds the name of the inner class. It's empty for anonymous
	// classes that aren't assigned to a variable.
	name string

	// This is InvalidRef if nothing can refer to the class by name
	binding js_ast.Ref

	// Only named classes have their name assigned by the helper. A name that
	// was inferred from a variable is only used for the inner class.
	isNamed bool

	loc logger.Loc
}

// Builds this expression from the class, which must not be used afterward:
//
//	(() => {
//	  var _parent = <superclass>; // Only if the superclass isn't an identifier
//	  class _Foo extends _parent { ... }
//	  return __extendedHook(_Foo, _parent, "Foo");
//	})()
//
// The superclass and any computed keys now run inside the arrow function,
// which shares "this" and "arguments" with the code around it. If they use
// "await", the arrow is async and the call is awaited.
func (t *transformer) synthesize(loc logger.Loc, class *js_ast.Class, id classIdentity) (js_ast.Expr, bool) {
	if !t.checkBinding(class, id) {
		return js_ast.Expr{}, false
	}
	ctx := findOuterFnUses(class)
	if ctx.hasYield {
		t.log.AddError(&t.source, ctx.yieldLoc, fmt.Sprintf(
			"Cannot wrap class %q because \"yield\" is used outside of its body", displayName(id)))
		t.hasErrors = true
		return js_ast.Expr{}, false
	}

	helperRef := t.ensureHelper()
	if !t.checkHelperVisible(helperRef, id) {
		return js_ast.Expr{}, false
	}
	fnScope := js_ast.NewScope(js_ast.ScopeFunction, t.currentScope())

	seed := id.name
	if seed == "" {
		seed = "class"
	}
	classRef := t.tree.GenerateSymbol(fnScope, js_ast.SymbolClass, t.namer.NextName(seed), id.loc)

	rewriteSelfReferences(class, id.name, id.binding, classRef)
	moveClassScopes(class, fnScope)
	parent := t.resolveParent(class.ExtendsOrNil, fnScope)

	class.Name = &js_ast.LocRef{Loc: id.loc, Ref: classRef}
	class.ExtendsOrNil = parent.expr(class.ExtendsOrNil.Loc)
	class.Generated = js_ast.GeneratedByClassHook

	var nameArg js_ast.Expr
	if id.isNamed {
		nameArg = js_ast.Expr{Loc: id.loc, Data: &js_ast.EString{Value: id.name}}
	} else {
		nameArg = js_ast.Expr{Loc: loc, Data: &js_ast.EUndefined{}}
	}

	stmts := make([]js_ast.Stmt, 0, 3)
	if parent.tempDeclOrNil.Data != nil {
		stmts = append(stmts, parent.tempDeclOrNil)
	}
	stmts = append(stmts,
		js_ast.Stmt{Loc: loc, Data: &js_ast.SClass{Class: *class}},
		js_ast.Stmt{Loc: loc, Data: &js_ast.SReturn{ValueOrNil: js_ast.Expr{Loc: loc, Data: &js_ast.ECall{
			Target: js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{Ref: helperRef}},
			Args: []js_ast.Expr{
				{Loc: id.loc, Data: &js_ast.EIdentifier{Ref: classRef}},
				parent.expr(loc),
				nameArg,
			},
		}}}},
	)

	t.log.AddDebug(&t.source, id.loc, fmt.Sprintf("Wrapped class %q in a call to %q",
		displayName(id), t.tree.SymbolName(helperRef)))
	t.wrappedCount++

	value := js_ast.Expr{Loc: loc, Data: &js_ast.ECall{
		Target: js_ast.Expr{Loc: loc, Data: &js_ast.EArrow{
			Scope:   fnScope,
			Body:    js_ast.FnBody{Loc: loc, Stmts: stmts},
			IsAsync: ctx.hasAwait,
		}},
	}}
	if ctx.hasAwait {
		value = js_ast.Expr{Loc: loc, Data: &js_ast.EAwait{Value: value}}
	}
	return value, true
}

func displayName(id classIdentity) string {
	if id.name == "" {
		return "(anonymous)"
	}
	return id.name
}

// The name must resolve to the binding from where the class body starts.
// Anything else means the scope tree doesn't match the syntax tree, and the
// output would silently refer to the wrong symbol.
func (t *transformer) checkBinding(class *js_ast.Class, id classIdentity) bool {
	if id.binding == js_ast.InvalidRef {
		return true
	}
	if class.BodyScope != nil && class.BodyScope.Parent != nil {
		if member, _, ok := class.BodyScope.Parent.FindMember(id.name); ok && member.Ref == id.binding {
			return true
		}
	}
	t.log.AddError(&t.source, id.loc, fmt.Sprintf("Cannot resolve the binding for class %q", id.name))
	t.hasErrors = true
	return false
}

// The call to the helper is printed by name, so the name must refer to the
// helper where the wrapper ends up. A local variable with the same name
// would capture the call.
func (t *transformer) checkHelperVisible(helperRef js_ast.Ref, id classIdentity) bool {
	name := t.tree.SymbolName(helperRef)
	member, _, ok := t.currentScope().FindMember(name)
	if !ok || member.Ref == helperRef {
		return true
	}
	t.log.AddError(&t.source, id.loc, fmt.Sprintf(
		"Cannot wrap class %q because a local declaration named %q hides the helper (use a different helper name)",
		displayName(id), name))
	t.hasErrors = true
	return false
}

// Everything that used to be evaluated where the class was is now evaluated
// inside the wrapper function. The name scope of a class expression goes
// away since the inner class is a declaration.
func moveClassScopes(class *js_ast.Class, fnScope *js_ast.Scope) {
	for i := range class.Decorators {
		reparentScopesIn(&class.Decorators[i], fnScope)
	}

	if class.NameScope != nil {
		for _, child := range append([]*js_ast.Scope{}, class.NameScope.Children...) {
			child.Reparent(fnScope)
		}
		class.NameScope.Reparent(nil)
		class.NameScope = nil
		return
	}

	if class.ExtendsOrNil.Data != nil {
		reparentScopesIn(&class.ExtendsOrNil, fnScope)
	}
	class.BodyScope.Reparent(fnScope)
}

func reparentScopesIn(expr *js_ast.Expr, parent *js_ast.Scope) {
	visitor := js_ast.Visitor{
		EnterScope: func(scope *js_ast.Scope) bool {
			scope.Reparent(parent)
			return false
		},
	}
	visitor.WalkExpr(expr)
}

type outerFnUses struct {
	yieldLoc logger.Loc
	hasAwait bool
	hasYield bool
}

// Finds "await" and "yield" that belong to the function around the class.
// Only the decorators, the superclass, and computed keys are evaluated in
// that function. Anything inside a nested function belongs to that function.
func findOuterFnUses(class *js_ast.Class) outerFnUses {
	uses := outerFnUses{}
	visitor := js_ast.Visitor{
		EnterScope: func(scope *js_ast.Scope) bool {
			return scope.Kind != js_ast.ScopeFunction && scope.Kind != js_ast.ScopeClassStaticInit
		},
		Expr: func(expr *js_ast.Expr) {
			switch expr.Data.(type) {
			case *js_ast.EAwait:
				uses.hasAwait = true
			case *js_ast.EYield:
				if !uses.hasYield {
					uses.yieldLoc = expr.Loc
					uses.hasYield = true
				}
			}
		},
	}

	for i := range class.Decorators {
		visitor.WalkExpr(&class.Decorators[i])
	}
	if class.ExtendsOrNil.Data != nil {
		visitor.WalkExpr(&class.ExtendsOrNil)
	}
	for i := range class.Properties {
		property := &class.Properties[i]
		for j := range property.Decorators {
			visitor.WalkExpr(&property.Decorators[j])
		}
		if property.IsComputed {
			visitor.WalkExpr(&property.Key)
		}
	}
	return uses
}
