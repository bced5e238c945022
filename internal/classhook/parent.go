package classhook

import (
	"github.com/classhook/classhook/internal/js_ast"
	"github.com/classhook/classhook/internal/logger"
)

type parentValue struct {
	ref js_ast.Ref

	// This declares the temporary that holds the superclass when it isn't a
	// plain identifier. It must come before the class.
	tempDeclOrNil js_ast.Stmt
}

// A plain identifier is read directly. Anything else is evaluated once into
// a "_parent" temporary declared in "scope", and the temporary is used both
// in the "extends" clause and as the argument to the helper.
func (t *transformer) resolveParent(extends js_ast.Expr, scope *js_ast.Scope) parentValue {
	if id, ok := extends.Data.(*js_ast.EIdentifier); ok {
		return parentValue{ref: id.Ref}
	}

	ref := t.tree.GenerateSymbol(scope, js_ast.SymbolHoisted, t.namer.NextName("parent"), extends.Loc)
	return parentValue{
		ref: ref,
		tempDeclOrNil: js_ast.Stmt{Loc: extends.Loc, Data: &js_ast.SLocal{
			Kind: js_ast.LocalVar,
			Decls: []js_ast.Decl{{
				Binding:    js_ast.Binding{Loc: extends.Loc, Data: &js_ast.BIdentifier{Ref: ref}},
				ValueOrNil: extends,
			}},
		}},
	}
}

func (v parentValue) expr(loc logger.Loc) js_ast.Expr {
	return js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{Ref: v.ref}}
}
