package classhook

import (
	"github.com/classhook/classhook/internal/js_ast"
	"github.com/classhook/classhook/internal/logger"
)

// "class Foo extends Bar {}" => "let Foo = <wrapper>;"
//
// The class symbol is reused for the variable, so every other reference to
// "Foo" in the file now sees whatever the helper returned.
func (t *transformer) placeDeclaration(loc logger.Loc, s *js_ast.SClass) []js_ast.Stmt {
	ref := s.Class.Name.Ref
	value, ok := t.synthesize(loc, &s.Class, classIdentity{
		name:    t.tree.SymbolName(ref),
		binding: ref,
		isNamed: true,
		loc:     s.Class.Name.Loc,
	})
	if !ok {
		return nil
	}

	t.tree.Symbols[ref.InnerIndex].Kind = js_ast.SymbolOther
	return []js_ast.Stmt{{Loc: loc, Data: &js_ast.SLocal{
		Kind:     js_ast.LocalLet,
		IsExport: s.IsExport,
		Decls:    []js_ast.Decl{{Binding: js_ast.Binding{Loc: s.Class.Name.Loc, Data: &js_ast.BIdentifier{Ref: ref}}, ValueOrNil: value}},
	}}}
}

// "export default class Foo extends Bar {}" => "var Foo = <wrapper>; export default Foo;"
//
// An anonymous default export has no name to bind, so it becomes
// "export default <wrapper>;" instead.
func (t *transformer) placeExportDefault(loc logger.Loc, s *js_ast.SClass) []js_ast.Stmt {
	if s.Class.Name == nil {
		value, ok := t.synthesize(loc, &s.Class, classIdentity{binding: js_ast.InvalidRef, loc: loc})
		if !ok {
			return nil
		}
		return []js_ast.Stmt{{Loc: loc, Data: &js_ast.SExportDefault{
			Value: js_ast.Stmt{Loc: loc, Data: &js_ast.SExpr{Value: value}},
		}}}
	}

	ref := s.Class.Name.Ref
	nameLoc := s.Class.Name.Loc
	value, ok := t.synthesize(loc, &s.Class, classIdentity{
		name:    t.tree.SymbolName(ref),
		binding: ref,
		isNamed: true,
		loc:     nameLoc,
	})
	if !ok {
		return nil
	}

	t.tree.Symbols[ref.InnerIndex].Kind = js_ast.SymbolHoisted
	return []js_ast.Stmt{
		{Loc: loc, Data: &js_ast.SLocal{
			Kind:  js_ast.LocalVar,
			Decls: []js_ast.Decl{{Binding: js_ast.Binding{Loc: nameLoc, Data: &js_ast.BIdentifier{Ref: ref}}, ValueOrNil: value}},
		}},
		{Loc: loc, Data: &js_ast.SExportDefault{
			Value: js_ast.Stmt{Loc: nameLoc, Data: &js_ast.SExpr{Value: js_ast.Expr{Loc: nameLoc, Data: &js_ast.EIdentifier{Ref: ref}}}},
		}},
	}
}

// A class expression is replaced by the wrapper itself. Whatever the
// expression was assigned to now receives the helper's result.
func (t *transformer) placeExpression(expr *js_ast.Expr, class *js_ast.Class, id classIdentity) {
	if value, ok := t.synthesize(expr.Loc, class, id); ok {
		*expr = value
	}
}
