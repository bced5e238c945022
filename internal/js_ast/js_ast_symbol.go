package js_ast

import (
	"github.com/classhook/classhook/internal/logger"
)

type SymbolKind uint8

const (
	// Referenced in this file but declared nowhere in it, such as "window"
	SymbolUnbound SymbolKind = iota

	// "var" declarations, function arguments, and function statements. These
	// may be declared more than once and belong to the nearest function or
	// module scope rather than the block they appear in.
	SymbolHoisted
	SymbolHoistedFunction

	// "e" in "catch (e)", which a "var e" in the catch body may redeclare
	SymbolCatchIdentifier

	SymbolClass
	SymbolImport
	SymbolConst
	SymbolOther
)

func (kind SymbolKind) IsHoisted() bool {
	return kind == SymbolHoisted || kind == SymbolHoistedFunction
}

type Ref struct {
	InnerIndex uint32
}

var InvalidRef = Ref{^uint32(0)}

type Symbol struct {
	// The name from the source, or the name a transform picked for a symbol
	// it generated. Generated names are unique within the file, so printing
	// never has to rename anything.
	OriginalName string

	Kind SymbolKind

	// Set for unbound globals
	MustNotBeRenamed bool
}

type ScopeKind int

const (
	ScopeBlock ScopeKind = iota
	ScopeClassName
	ScopeClassBody
	ScopeCatchBinding

	// Hoisted declarations don't escape the kinds below
	ScopeEntry
	ScopeFunction
	ScopeClassStaticInit
)

func (kind ScopeKind) StopsHoisting() bool {
	return kind >= ScopeEntry
}

type ScopeMember struct {
	Ref Ref
	Loc logger.Loc
}

type Scope struct {
	Kind     ScopeKind
	Parent   *Scope
	Children []*Scope
	Members  map[string]ScopeMember

	// Symbols a transform added to this scope after parsing
	Generated []Ref
}

type AST struct {
	Hashbang    string
	Stmts       []Stmt
	Symbols     []Symbol
	ModuleScope *Scope
}
