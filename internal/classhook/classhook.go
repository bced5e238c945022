package classhook

// This pass rewrites every class that has a superclass so that the parent
// gets a chance to see the new subclass. The class is moved into an
// immediately-invoked function that returns the result of calling a shared
// helper, which in turn calls "Parent.extended(Child)" if it exists:
//
//	class Foo extends Bar {}
//
// becomes
//
//	let Foo = (function() {
//	  class _Foo extends Bar {}
//	  return __extendedHook(_Foo, Bar, "Foo");
//	})();
//
// References to the class from inside its own body are re-pointed at the
// inner name so they keep referring to the original class object even if
// the hook replaces it.

import (
	"fmt"

	"github.com/classhook/classhook/internal/config"
	"github.com/classhook/classhook/internal/js_ast"
	"github.com/classhook/classhook/internal/logger"
	"github.com/classhook/classhook/internal/renamer"
)

type transformer struct {
	log     logger.Log
	source  logger.Source
	tree    *js_ast.AST
	options config.Options
	namer   *renamer.UniqueNamer

	// The innermost scope is last
	scopes []*js_ast.Scope

	// This is created on first use and then shared by every class in the file
	helperRef   js_ast.Ref
	helperStmts []js_ast.Stmt

	wrappedCount int
	hasErrors    bool
}

// The tree must come from the parser so that every identifier is already
// bound to a symbol. Returns false if any class couldn't be transformed, in
// which case the tree must not be printed.
func Transform(log logger.Log, source logger.Source, tree *js_ast.AST, options config.Options) bool {
	t := &transformer{
		log:       log,
		source:    source,
		tree:      tree,
		options:   options,
		namer:     renamer.NewUniqueNamer(renamer.ComputeReservedNames(tree.ModuleScope, tree.Symbols)),
		scopes:    []*js_ast.Scope{tree.ModuleScope},
		helperRef: js_ast.InvalidRef,
	}

	// Generated names must never capture calls to the helper
	t.namer.Reserve(options.HelperNameOrDefault())

	visitor := js_ast.Visitor{
		Stmt: t.visitStmt,
		Expr: t.visitExpr,
		EnterScope: func(scope *js_ast.Scope) bool {
			t.scopes = append(t.scopes, scope)
			return true
		},
		LeaveScope: func(scope *js_ast.Scope) {
			t.scopes = t.scopes[:len(t.scopes)-1]
		},
	}
	tree.Stmts = visitor.WalkStmts(tree.Stmts)

	// The helper goes first so that it exists before any class is created,
	// but after the directive prologue so that "use strict" still applies
	if len(t.helperStmts) > 0 {
		prologue := 0
		for prologue < len(tree.Stmts) {
			if _, ok := tree.Stmts[prologue].Data.(*js_ast.SDirective); !ok {
				break
			}
			prologue++
		}
		stmts := make([]js_ast.Stmt, 0, len(tree.Stmts)+len(t.helperStmts))
		stmts = append(stmts, tree.Stmts[:prologue]...)
		stmts = append(stmts, t.helperStmts...)
		tree.Stmts = append(stmts, tree.Stmts[prologue:]...)
	}

	if t.wrappedCount > 0 {
		log.AddInfo(fmt.Sprintf("Wrapped %s in %s", plural("class", "classes", t.wrappedCount), source.PrettyPath))
	}
	return !t.hasErrors
}

func plural(one string, many string, count int) string {
	if count == 1 {
		return fmt.Sprintf("1 %s", one)
	}
	return fmt.Sprintf("%d %s", count, many)
}

func (t *transformer) currentScope() *js_ast.Scope {
	return t.scopes[len(t.scopes)-1]
}

// Only classes with a superclass are candidates, and classes generated by
// this pass are never transformed a second time
func isCandidate(class *js_ast.Class) bool {
	return class.ExtendsOrNil.Data != nil && class.Generated == js_ast.NotGenerated
}

func (t *transformer) visitStmt(stmt js_ast.Stmt) []js_ast.Stmt {
	switch s := stmt.Data.(type) {
	case *js_ast.SClass:
		if isCandidate(&s.Class) {
			return t.placeDeclaration(stmt.Loc, s)
		}

	case *js_ast.SExportDefault:
		if s2, ok := s.Value.Data.(*js_ast.SClass); ok && isCandidate(&s2.Class) {
			return t.placeExportDefault(stmt.Loc, s2)
		}

	case *js_ast.SLocal:
		// Anonymous class expressions take their name from the variable they
		// initialize. This has to be handled here since the expression visitor
		// doesn't know what an expression is assigned to.
		for i := range s.Decls {
			decl := &s.Decls[i]
			if e, ok := decl.ValueOrNil.Data.(*js_ast.EClass); ok && e.Class.Name == nil && isCandidate(&e.Class) {
				if ref, ok := decl.IdentifierRef(); ok {
					t.placeExpression(&decl.ValueOrNil, &e.Class, classIdentity{
						name:    t.tree.SymbolName(ref),
						binding: ref,
						isNamed: false,
						loc:     decl.Binding.Loc,
					})
				}
			}
		}
	}

	return nil
}

func (t *transformer) visitExpr(expr *js_ast.Expr) {
	switch e := expr.Data.(type) {
	case *js_ast.EClass:
		if !isCandidate(&e.Class) {
			return
		}
		if e.Class.Name != nil {
			t.placeExpression(expr, &e.Class, classIdentity{
				name:    t.tree.SymbolName(e.Class.Name.Ref),
				binding: e.Class.Name.Ref,
				isNamed: true,
				loc:     e.Class.Name.Loc,
			})
		} else {
			t.placeExpression(expr, &e.Class, classIdentity{binding: js_ast.InvalidRef, loc: expr.Loc})
		}

	case *js_ast.ECall:
		// Output that was printed and then parsed again must not be wrapped
		// again. The generation tag doesn't survive printing, so recognize the
		// shape of the wrapper instead.
		if class := t.wrappedClassOrNil(e); class != nil {
			class.Generated = js_ast.GeneratedByClassHook
		}
	}
}

// Matches "(() => { [var _parent = ...;] class _Foo extends ... {} return
// helper(_Foo, ...); })()" and returns the class inside. The arrow may be
// async when the wrapper was awaited.
func (t *transformer) wrappedClassOrNil(call *js_ast.ECall) *js_ast.Class {
	if len(call.Args) != 0 {
		return nil
	}
	arrow, ok := call.Target.Data.(*js_ast.EArrow)
	if !ok || len(arrow.Args) != 0 || arrow.PreferExpr {
		return nil
	}
	stmts := arrow.Body.Stmts
	if n := len(stmts); n < 2 || n > 3 {
		return nil
	}

	ret, ok := stmts[len(stmts)-1].Data.(*js_ast.SReturn)
	if !ok {
		return nil
	}
	helperCall, ok := ret.ValueOrNil.Data.(*js_ast.ECall)
	if !ok || len(helperCall.Args) != 3 {
		return nil
	}
	helper, ok := helperCall.Target.Data.(*js_ast.EIdentifier)
	if !ok || t.tree.SymbolName(helper.Ref) != t.options.HelperNameOrDefault() {
		return nil
	}
	child, ok := helperCall.Args[0].Data.(*js_ast.EIdentifier)
	if !ok {
		return nil
	}

	s, ok := stmts[len(stmts)-2].Data.(*js_ast.SClass)
	if !ok || s.Class.Name == nil || s.Class.Name.Ref != child.Ref || s.Class.ExtendsOrNil.Data == nil {
		return nil
	}
	return &s.Class
}
