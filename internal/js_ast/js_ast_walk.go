package js_ast

// A Visitor walks a parsed tree in source order. All hooks are optional.
//
// Statements are passed to the "Stmt" hook before their children are walked.
// Returning a non-nil slice replaces the statement, and the walk continues
// into the children of the replacement statements (the hook is not called on
// the replacements themselves). Expressions work the same way except that the
// hook edits the expression in place.
//
// "EnterScope" is called for every scope a node introduces. Returning false
// skips everything inside that scope. "LeaveScope" is only called for scopes
// that were entered.
type Visitor struct {
	Stmt       func(stmt Stmt) []Stmt
	Expr       func(expr *Expr)
	Binding    func(binding *Binding)
	EnterScope func(scope *Scope) bool
	LeaveScope func(scope *Scope)
}

func (v *Visitor) enter(scope *Scope) bool {
	if scope == nil || v.EnterScope == nil {
		return true
	}
	return v.EnterScope(scope)
}

func (v *Visitor) leave(scope *Scope) {
	if scope != nil && v.LeaveScope != nil {
		v.LeaveScope(scope)
	}
}

func (v *Visitor) WalkStmts(stmts []Stmt) []Stmt {
	var result []Stmt
	for i, stmt := range stmts {
		if v.Stmt != nil {
			if replacement := v.Stmt(stmt); replacement != nil {
				if result == nil {
					result = append(make([]Stmt, 0, len(stmts)+len(replacement)), stmts[:i]...)
				}
				for _, r := range replacement {
					v.walkStmtChildren(r)
				}
				result = append(result, replacement...)
				continue
			}
		}
		v.walkStmtChildren(stmt)
		if result != nil {
			result = append(result, stmt)
		}
	}
	if result == nil {
		return stmts
	}
	return result
}

// Walks a statement in a position that only allows a single statement, such
// as the body of an "if"
func (v *Visitor) walkSingleStmt(stmt *Stmt) {
	if stmt.Data == nil {
		return
	}
	if v.Stmt != nil {
		if replacement := v.Stmt(*stmt); replacement != nil {
			for _, r := range replacement {
				v.walkStmtChildren(r)
			}
			if len(replacement) == 1 {
				*stmt = replacement[0]
			} else {
				*stmt = Stmt{Loc: stmt.Loc, Data: &SBlock{Stmts: replacement}}
			}
			return
		}
	}
	v.walkStmtChildren(*stmt)
}

func (v *Visitor) walkBlock(block *SBlock) {
	if v.enter(block.Scope) {
		block.Stmts = v.WalkStmts(block.Stmts)
		v.leave(block.Scope)
	}
}

func (v *Visitor) walkStmtChildren(stmt Stmt) {
	switch s := stmt.Data.(type) {
	case *SBlock:
		v.walkBlock(s)

	case *SExportDefault:
		v.walkStmtChildren(s.Value)

	case *SExpr:
		v.WalkExpr(&s.Value)

	case *SFunction:
		v.WalkFn(&s.Fn)

	case *SClass:
		v.WalkClass(&s.Class)

	case *SIf:
		v.WalkExpr(&s.Test)
		v.walkSingleStmt(&s.Yes)
		v.walkSingleStmt(&s.NoOrNil)

	case *SFor:
		if v.enter(s.Scope) {
			v.walkSingleStmt(&s.InitOrNil)
			v.walkExprOrNil(&s.TestOrNil)
			v.walkExprOrNil(&s.UpdateOrNil)
			v.walkSingleStmt(&s.Body)
			v.leave(s.Scope)
		}

	case *SForIn:
		if v.enter(s.Scope) {
			v.walkSingleStmt(&s.Init)
			v.WalkExpr(&s.Value)
			v.walkSingleStmt(&s.Body)
			v.leave(s.Scope)
		}

	case *SForOf:
		if v.enter(s.Scope) {
			v.walkSingleStmt(&s.Init)
			v.WalkExpr(&s.Value)
			v.walkSingleStmt(&s.Body)
			v.leave(s.Scope)
		}

	case *SDoWhile:
		v.walkSingleStmt(&s.Body)
		v.WalkExpr(&s.Test)

	case *SWhile:
		v.WalkExpr(&s.Test)
		v.walkSingleStmt(&s.Body)

	case *STry:
		v.walkBlock(&s.Block)
		if s.Catch != nil {
			if v.enter(s.Catch.Scope) {
				v.walkBinding(&s.Catch.BindingOrNil)
				v.walkBlock(&s.Catch.Block)
				v.leave(s.Catch.Scope)
			}
		}
		if s.Finally != nil {
			v.walkBlock(&s.Finally.Block)
		}

	case *SSwitch:
		v.WalkExpr(&s.Test)
		if v.enter(s.Scope) {
			for i := range s.Cases {
				c := &s.Cases[i]
				v.walkExprOrNil(&c.ValueOrNil)
				c.Body = v.WalkStmts(c.Body)
			}
			v.leave(s.Scope)
		}

	case *SLabel:
		v.walkSingleStmt(&s.Stmt)

	case *SReturn:
		v.walkExprOrNil(&s.ValueOrNil)

	case *SThrow:
		v.WalkExpr(&s.Value)

	case *SLocal:
		for i := range s.Decls {
			decl := &s.Decls[i]
			v.walkBinding(&decl.Binding)
			v.walkExprOrNil(&decl.ValueOrNil)
		}
	}
}

func (v *Visitor) walkExprOrNil(expr *Expr) {
	if expr.Data != nil {
		v.WalkExpr(expr)
	}
}

func (v *Visitor) walkExprs(exprs []Expr) {
	for i := range exprs {
		v.WalkExpr(&exprs[i])
	}
}

func (v *Visitor) walkBinding(binding *Binding) {
	if binding.Data == nil {
		return
	}
	if v.Binding != nil {
		v.Binding(binding)
	}

	switch b := binding.Data.(type) {
	case *BArray:
		for i := range b.Items {
			item := &b.Items[i]
			v.walkBinding(&item.Binding)
			v.walkExprOrNil(&item.DefaultValueOrNil)
		}

	case *BObject:
		for i := range b.Properties {
			property := &b.Properties[i]
			if property.IsComputed {
				v.WalkExpr(&property.Key)
			}
			v.walkBinding(&property.Value)
			v.walkExprOrNil(&property.DefaultValueOrNil)
		}
	}
}

func (v *Visitor) walkArgs(args []Arg) {
	for i := range args {
		arg := &args[i]
		v.walkBinding(&arg.Binding)
		v.walkExprOrNil(&arg.DefaultOrNil)
	}
}

func (v *Visitor) WalkFn(fn *Fn) {
	if v.enter(fn.Scope) {
		v.walkArgs(fn.Args)
		fn.Body.Stmts = v.WalkStmts(fn.Body.Stmts)
		v.leave(fn.Scope)
	}
}

// Walks the decorators, the superclass expression, and the body
func (v *Visitor) WalkClass(class *Class) {
	v.walkExprs(class.Decorators)
	if v.enter(class.NameScope) {
		v.walkExprOrNil(&class.ExtendsOrNil)
		v.WalkClassBody(class)
		v.leave(class.NameScope)
	}
}

// Walks only the class body. Decorators and the superclass expression are
// evaluated outside of the body and are left alone.
func (v *Visitor) WalkClassBody(class *Class) {
	if !v.enter(class.BodyScope) {
		return
	}
	for i := range class.Properties {
		property := &class.Properties[i]
		if property.Kind == PropertyStaticBlock {
			if v.enter(property.StaticBlock.Scope) {
				property.StaticBlock.Stmts = v.WalkStmts(property.StaticBlock.Stmts)
				v.leave(property.StaticBlock.Scope)
			}
			continue
		}
		v.walkExprs(property.Decorators)
		if property.IsComputed {
			v.WalkExpr(&property.Key)
		}
		v.walkExprOrNil(&property.ValueOrNil)
		v.walkExprOrNil(&property.InitializerOrNil)
	}
	v.leave(class.BodyScope)
}

func (v *Visitor) WalkExpr(expr *Expr) {
	if v.Expr != nil {
		v.Expr(expr)
	}

	switch e := expr.Data.(type) {
	case *EArray:
		v.walkExprs(e.Items)

	case *EUnary:
		v.WalkExpr(&e.Value)

	case *EBinary:
		v.WalkExpr(&e.Left)
		v.WalkExpr(&e.Right)

	case *ENew:
		v.WalkExpr(&e.Target)
		v.walkExprs(e.Args)

	case *ECall:
		v.WalkExpr(&e.Target)
		v.walkExprs(e.Args)

	case *EDot:
		v.WalkExpr(&e.Target)

	case *EIndex:
		v.WalkExpr(&e.Target)
		v.WalkExpr(&e.Index)

	case *EArrow:
		if v.enter(e.Scope) {
			v.walkArgs(e.Args)
			e.Body.Stmts = v.WalkStmts(e.Body.Stmts)
			v.leave(e.Scope)
		}

	case *EFunction:
		v.WalkFn(&e.Fn)

	case *EClass:
		v.WalkClass(&e.Class)

	case *EObject:
		for i := range e.Properties {
			property := &e.Properties[i]
			if property.IsComputed {
				v.WalkExpr(&property.Key)
			}
			v.walkExprOrNil(&property.ValueOrNil)
			v.walkExprOrNil(&property.InitializerOrNil)
		}

	case *ESpread:
		v.WalkExpr(&e.Value)

	case *ETemplate:
		v.walkExprOrNil(&e.TagOrNil)
		for i := range e.Parts {
			v.WalkExpr(&e.Parts[i].Value)
		}

	case *EAwait:
		v.WalkExpr(&e.Value)

	case *EYield:
		v.walkExprOrNil(&e.ValueOrNil)

	case *EIf:
		v.WalkExpr(&e.Test)
		v.WalkExpr(&e.Yes)
		v.WalkExpr(&e.No)

	case *EImportCall:
		v.WalkExpr(&e.Expr)
	}
}
