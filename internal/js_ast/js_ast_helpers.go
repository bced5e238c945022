package js_ast

import (
	"github.com/classhook/classhook/internal/logger"
)

func Assign(a Expr, b Expr) Expr {
	return Expr{Loc: a.Loc, Data: &EBinary{Op: BinOpAssign, Left: a, Right: b}}
}

func NewScope(kind ScopeKind, parent *Scope) *Scope {
	scope := &Scope{
		Kind:    kind,
		Parent:  parent,
		Members: make(map[string]ScopeMember),
	}
	if parent != nil {
		parent.Children = append(parent.Children, scope)
	}
	return scope
}

// Returns the member for "name" in this scope or the closest parent scope
// that declares it, along with the scope it was found in.
func (s *Scope) FindMember(name string) (ScopeMember, *Scope, bool) {
	for scope := s; scope != nil; scope = scope.Parent {
		if member, ok := scope.Members[name]; ok {
			return member, scope, true
		}
	}
	return ScopeMember{}, nil, false
}

// This is where "var" declarations made in this scope end up
func (s *Scope) HoistTarget() *Scope {
	scope := s
	for !scope.Kind.StopsHoisting() && scope.Parent != nil {
		scope = scope.Parent
	}
	return scope
}

// Moves this scope so that it becomes the last child of "parent"
func (s *Scope) Reparent(parent *Scope) {
	if old := s.Parent; old != nil {
		for i, child := range old.Children {
			if child == s {
				old.Children = append(old.Children[:i:i], old.Children[i+1:]...)
				break
			}
		}
	}
	s.Parent = parent
	if parent != nil {
		parent.Children = append(parent.Children, s)
	}
}

// Adds a new symbol to the symbol table and declares it in "scope". The name
// must already be unique within the file.
func (ast *AST) GenerateSymbol(scope *Scope, kind SymbolKind, name string, loc logger.Loc) Ref {
	ref := Ref{InnerIndex: uint32(len(ast.Symbols))}
	ast.Symbols = append(ast.Symbols, Symbol{
		OriginalName:     name,
		Kind:             kind,
		MustNotBeRenamed: true,
	})
	if scope != nil {
		scope.Members[name] = ScopeMember{Ref: ref, Loc: loc}
		scope.Generated = append(scope.Generated, ref)
	}
	return ref
}

func (ast *AST) SymbolName(ref Ref) string {
	return ast.Symbols[ref.InnerIndex].OriginalName
}

// Returns the single identifier a declaration binds, if it binds exactly one
func (decl *Decl) IdentifierRef() (Ref, bool) {
	if id, ok := decl.Binding.Data.(*BIdentifier); ok {
		return id.Ref, true
	}
	return InvalidRef, false
}
