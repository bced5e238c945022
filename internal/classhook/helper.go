package classhook

import (
	"github.com/classhook/classhook/internal/js_ast"
	"github.com/classhook/classhook/internal/js_parser"
	"github.com/classhook/classhook/internal/runtime"
)

// Returns the symbol for the shared helper, declaring it the first time it's
// needed. A file that already declares a top-level symbol with the helper's
// name is assumed to provide the helper itself.
func (t *transformer) ensureHelper() js_ast.Ref {
	if t.helperRef != js_ast.InvalidRef {
		return t.helperRef
	}

	name := t.options.HelperNameOrDefault()
	if member, ok := t.tree.ModuleScope.Members[name]; ok && t.tree.Symbols[member.Ref.InnerIndex].Kind != js_ast.SymbolUnbound {
		t.helperRef = member.Ref
		return t.helperRef
	}

	source := runtime.Source(name)
	helper, ok := js_parser.Parse(t.log, source)
	if !ok {
		panic("Internal error")
	}
	t.helperRef = t.mergeHelper(helper, name)
	if !t.options.OmitHelperForTests {
		t.helperStmts = helper.Stmts
	}
	return t.helperRef
}

// Moves the symbols and scopes of the separately-parsed helper into the file
// being transformed. Globals that the helper uses are shared with the file.
// If the file already references the helper's name without declaring it,
// those references now bind to the helper.
func (t *transformer) mergeHelper(helper js_ast.AST, name string) js_ast.Ref {
	moduleScope := t.tree.ModuleScope
	offset := uint32(len(t.tree.Symbols))
	refs := make([]js_ast.Ref, len(helper.Symbols))

	for i := range helper.Symbols {
		refs[i] = js_ast.Ref{InnerIndex: offset + uint32(i)}
	}

	for memberName, member := range helper.ModuleScope.Members {
		existing, ok := moduleScope.Members[memberName]
		if !ok {
			moduleScope.Members[memberName] = js_ast.ScopeMember{Ref: refs[member.Ref.InnerIndex], Loc: member.Loc}
			continue
		}
		if memberName == name {
			// Turn the unbound global into the helper's declaration
			symbol := &t.tree.Symbols[existing.Ref.InnerIndex]
			symbol.Kind = helper.Symbols[member.Ref.InnerIndex].Kind
			refs[member.Ref.InnerIndex] = existing.Ref
		} else if helper.Symbols[member.Ref.InnerIndex].Kind == js_ast.SymbolUnbound {
			refs[member.Ref.InnerIndex] = existing.Ref
		}
	}

	remap := func(ref js_ast.Ref) js_ast.Ref {
		return refs[ref.InnerIndex]
	}

	var remapScope func(scope *js_ast.Scope)
	remapScope = func(scope *js_ast.Scope) {
		for memberName, member := range scope.Members {
			member.Ref = remap(member.Ref)
			scope.Members[memberName] = member
		}
		for _, child := range scope.Children {
			remapScope(child)
		}
	}

	t.tree.Symbols = append(t.tree.Symbols, helper.Symbols...)
	for _, child := range append([]*js_ast.Scope{}, helper.ModuleScope.Children...) {
		remapScope(child)
		child.Reparent(moduleScope)
	}

	visitor := js_ast.Visitor{
		Stmt: func(stmt js_ast.Stmt) []js_ast.Stmt {
			switch s := stmt.Data.(type) {
			case *js_ast.SFunction:
				s.Fn.Name.Ref = remap(s.Fn.Name.Ref)
			case *js_ast.SClass:
				s.Class.Name.Ref = remap(s.Class.Name.Ref)
			}
			return nil
		},
		Expr: func(expr *js_ast.Expr) {
			switch e := expr.Data.(type) {
			case *js_ast.EIdentifier:
				e.Ref = remap(e.Ref)
			case *js_ast.EFunction:
				if e.Fn.Name != nil {
					e.Fn.Name.Ref = remap(e.Fn.Name.Ref)
				}
			case *js_ast.EClass:
				if e.Class.Name != nil {
					e.Class.Name.Ref = remap(e.Class.Name.Ref)
				}
			}
		},
		Binding: func(binding *js_ast.Binding) {
			if b, ok := binding.Data.(*js_ast.BIdentifier); ok {
				b.Ref = remap(b.Ref)
			}
		},
	}
	visitor.WalkStmts(helper.Stmts)

	return moduleScope.Members[name].Ref
}
