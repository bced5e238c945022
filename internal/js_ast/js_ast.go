package js_ast

// The parser turns each file into an AST whose identifiers are Refs into the
// file's symbol table. Nodes that open a scope keep a pointer to it, which
// lets a transform ask what a name means at any point in the tree after
// moving code around.
//
// Expressions, statements, and bindings are each a small struct holding a
// location and a pointer to one of the node types below. The marker methods
// ("isExpr" and friends) are never called; they only restrict which types
// can be stored in each kind of node.

import (
	"github.com/classhook/classhook/internal/logger"
)

type LocRef struct {
	Loc logger.Loc
	Ref Ref
}

// Bindings

type Binding struct {
	Loc  logger.Loc
	Data B
}

type B interface{ isBinding() }

type BMissing struct{}

func (*BMissing) isBinding() {}

type BIdentifier struct{ Ref Ref }

func (*BIdentifier) isBinding() {}

type BArray struct {
	Items     []ArrayBinding
	HasSpread bool
}

func (*BArray) isBinding() {}

type ArrayBinding struct {
	Binding           Binding
	DefaultValueOrNil Expr
}

type BObject struct {
	Properties []PropertyBinding
}

func (*BObject) isBinding() {}

type PropertyBinding struct {
	Key               Expr
	Value             Binding
	DefaultValueOrNil Expr
	IsComputed        bool
	IsSpread          bool
}

// Functions and classes

type Arg struct {
	Binding      Binding
	DefaultOrNil Expr
}

type FnBody struct {
	Loc   logger.Loc
	Stmts []Stmt
}

type Fn struct {
	Name *LocRef
	Args []Arg
	Body FnBody

	// Holds the arguments, the top-level declarations of the body, and the
	// name of a function expression
	Scope *Scope

	IsAsync     bool
	IsGenerator bool
	HasRestArg  bool
}

// Lets a pass recognize the nodes it produced itself
type GenerationTag uint8

const (
	NotGenerated GenerationTag = iota
	GeneratedByClassHook
)

type Class struct {
	Decorators   []Expr
	Name         *LocRef
	ExtendsOrNil Expr
	BodyLoc      logger.Loc
	Properties   []Property

	// A class declaration puts its name in the enclosing scope, so only
	// named class expressions have a name scope
	NameScope *Scope
	BodyScope *Scope

	Generated GenerationTag
}

type PropertyKind uint8

const (
	PropertyNormal PropertyKind = iota
	PropertyGet
	PropertySet
	PropertySpread
	PropertyStaticBlock
)

type ClassStaticBlock struct {
	Loc   logger.Loc
	Stmts []Stmt
	Scope *Scope
}

// A member of an object literal or of a class body
type Property struct {
	StaticBlock *ClassStaticBlock
	Decorators  []Expr

	// An EString for "a" and "'a'", an EPrivateIdentifier for "#a", or any
	// expression for "[a]"
	Key Expr

	// Nil for class fields
	ValueOrNil Expr

	// The value of a class field, or the default in "{ a = 1 }" when an
	// object literal turns out to be a destructuring pattern
	InitializerOrNil Expr

	Kind         PropertyKind
	IsComputed   bool
	IsMethod     bool
	IsStatic     bool
	WasShorthand bool
}

// Expressions

type Expr struct {
	Loc  logger.Loc
	Data E
}

type E interface{ isExpr() }

type EMissing struct{}

func (*EMissing) isExpr() {}

type EThis struct{}

func (*EThis) isExpr() {}

type ESuper struct{}

func (*ESuper) isExpr() {}

type ENull struct{}

func (*ENull) isExpr() {}

type EUndefined struct{}

func (*EUndefined) isExpr() {}

type ENewTarget struct{}

func (*ENewTarget) isExpr() {}

type EImportMeta struct{}

func (*EImportMeta) isExpr() {}

type EBoolean struct{ Value bool }

func (*EBoolean) isExpr() {}

type ENumber struct{ Value float64 }

func (*ENumber) isExpr() {}

// The digits without the trailing "n"
type EBigInt struct{ Value string }

func (*EBigInt) isExpr() {}

type EString struct{ Value string }

func (*EString) isExpr() {}

// The full literal including slashes and flags
type ERegExp struct{ Value string }

func (*ERegExp) isExpr() {}

// Templates keep their raw text, which prints back exactly as written
type ETemplate struct {
	TagOrNil Expr
	HeadLoc  logger.Loc
	HeadRaw  string
	Parts    []TemplatePart
}

func (*ETemplate) isExpr() {}

type TemplatePart struct {
	Value   Expr
	TailLoc logger.Loc
	TailRaw string
}

type EIdentifier struct{ Ref Ref }

func (*EIdentifier) isExpr() {}

// "#a" in "this.#a" or "#a in obj". These resolve per class body and are
// never renamed, so no symbol is needed.
type EPrivateIdentifier struct{ Name string }

func (*EPrivateIdentifier) isExpr() {}

type EArray struct {
	Items        []Expr
	IsSingleLine bool
}

func (*EArray) isExpr() {}

type EObject struct {
	Properties   []Property
	IsSingleLine bool
}

func (*EObject) isExpr() {}

type ESpread struct{ Value Expr }

func (*ESpread) isExpr() {}

type EFunction struct{ Fn Fn }

func (*EFunction) isExpr() {}

type EArrow struct {
	Args  []Arg
	Body  FnBody
	Scope *Scope

	IsAsync    bool
	HasRestArg bool

	// Print "() => x" instead of "() => { return x }" when the body is a
	// single return statement
	PreferExpr bool
}

func (*EArrow) isExpr() {}

type EClass struct{ Class Class }

func (*EClass) isExpr() {}

type EUnary struct {
	Op    OpCode
	Value Expr
}

func (*EUnary) isExpr() {}

type EBinary struct {
	Left  Expr
	Right Expr
	Op    OpCode
}

func (*EBinary) isExpr() {}

// "test ? yes : no"
type EIf struct {
	Test Expr
	Yes  Expr
	No   Expr
}

func (*EIf) isExpr() {}

type EAwait struct{ Value Expr }

func (*EAwait) isExpr() {}

type EYield struct {
	ValueOrNil Expr
	IsStar     bool
}

func (*EYield) isExpr() {}

type ENew struct {
	Target Expr
	Args   []Expr
}

func (*ENew) isExpr() {}

type ECall struct {
	Target          Expr
	Args            []Expr
	IsOptionalChain bool
}

func (*ECall) isExpr() {}

// "import(path)"
type EImportCall struct{ Expr Expr }

func (*EImportCall) isExpr() {}

type EDot struct {
	Target          Expr
	Name            string
	NameLoc         logger.Loc
	IsOptionalChain bool
}

func (*EDot) isExpr() {}

type EIndex struct {
	Target          Expr
	Index           Expr
	IsOptionalChain bool
}

func (*EIndex) isExpr() {}

// Statements

type Stmt struct {
	Loc  logger.Loc
	Data S
}

type S interface{ isStmt() }

type SEmpty struct{}

func (*SEmpty) isStmt() {}

type SDebugger struct{}

func (*SDebugger) isStmt() {}

// A string literal statement in the prologue of a module or function body,
// such as "use strict". Nothing may be inserted in front of these.
type SDirective struct{ Value string }

func (*SDirective) isStmt() {}

type SExpr struct{ Value Expr }

func (*SExpr) isStmt() {}

type SBlock struct {
	Stmts []Stmt
	Scope *Scope
}

func (*SBlock) isStmt() {}

type LocalKind uint8

const (
	LocalVar LocalKind = iota
	LocalLet
	LocalConst
)

type Decl struct {
	Binding    Binding
	ValueOrNil Expr
}

type SLocal struct {
	Decls    []Decl
	Kind     LocalKind
	IsExport bool
}

func (*SLocal) isStmt() {}

type SFunction struct {
	Fn       Fn
	IsExport bool
}

func (*SFunction) isStmt() {}

type SClass struct {
	Class    Class
	IsExport bool
}

func (*SClass) isStmt() {}

type SReturn struct{ ValueOrNil Expr }

func (*SReturn) isStmt() {}

type SThrow struct{ Value Expr }

func (*SThrow) isStmt() {}

type SIf struct {
	Test    Expr
	Yes     Stmt
	NoOrNil Stmt
}

func (*SIf) isStmt() {}

// The init of a loop is an SLocal or an SExpr

type SFor struct {
	InitOrNil   Stmt
	TestOrNil   Expr
	UpdateOrNil Expr
	Body        Stmt
	Scope       *Scope
}

func (*SFor) isStmt() {}

type SForIn struct {
	Init  Stmt
	Value Expr
	Body  Stmt
	Scope *Scope
}

func (*SForIn) isStmt() {}

type SForOf struct {
	Init    Stmt
	Value   Expr
	Body    Stmt
	Scope   *Scope
	IsAwait bool
}

func (*SForOf) isStmt() {}

type SWhile struct {
	Test Expr
	Body Stmt
}

func (*SWhile) isStmt() {}

type SDoWhile struct {
	Body Stmt
	Test Expr
}

func (*SDoWhile) isStmt() {}

// Labels have their own namespace and keep their names
type SLabel struct {
	Name string
	Stmt Stmt
}

func (*SLabel) isStmt() {}

type SBreak struct{ Label string }

func (*SBreak) isStmt() {}

type SContinue struct{ Label string }

func (*SContinue) isStmt() {}

type Catch struct {
	Loc          logger.Loc
	BindingOrNil Binding
	Block        SBlock

	// Holds the catch binding
	Scope *Scope
}

type Finally struct {
	Loc   logger.Loc
	Block SBlock
}

type STry struct {
	BlockLoc logger.Loc
	Block    SBlock
	Catch    *Catch
	Finally  *Finally
}

func (*STry) isStmt() {}

type Case struct {
	// Nil for "default:"
	ValueOrNil Expr
	Body       []Stmt
}

type SSwitch struct {
	Test    Expr
	BodyLoc logger.Loc
	Cases   []Case
	Scope   *Scope
}

func (*SSwitch) isStmt() {}

// Modules

type ClauseItem struct {
	Alias    string
	AliasLoc logger.Loc
	Name     LocRef

	// The name as written. Re-exported items have no local symbol, so this
	// is the only record of what they were called.
	OriginalName string
}

// One of:
//
//	import 'path'
//	import a from 'path'
//	import {b, c as d} from 'path'
//	import * as ns from 'path'
//	import a, {b} from 'path'
//	import a, * as ns from 'path'
type SImport struct {
	DefaultName  *LocRef
	Items        *[]ClauseItem
	StarNameLoc  *logger.Loc
	NamespaceRef Ref
	Path         string
}

func (*SImport) isStmt() {}

// "export {a, b as c}"
type SExportClause struct {
	Items []ClauseItem
}

func (*SExportClause) isStmt() {}

// "export {a, b as c} from 'path'"
type SExportFrom struct {
	Items []ClauseItem
	Path  string
}

func (*SExportFrom) isStmt() {}

// "export * from 'path'" or "export * as ns from 'path'"
type SExportStar struct {
	Alias *ClauseItem
	Path  string
}

func (*SExportStar) isStmt() {}

// Holds an SExpr, an SFunction, or an SClass
type SExportDefault struct{ Value Stmt }

func (*SExportDefault) isStmt() {}
