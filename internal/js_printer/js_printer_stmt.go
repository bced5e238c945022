package js_printer

import (
	"fmt"

	"github.com/classhook/classhook/internal/js_ast"
)

func (p *printer) printStmt(stmt js_ast.Stmt) {
	switch s := stmt.Data.(type) {
	case *js_ast.SDirective:
		p.printIndent()
		p.printQuoted(s.Value)
		p.printSemicolonAfterStatement()

	case *js_ast.SExpr:
		p.printIndent()
		p.stmtStart = len(p.js)

		// Only statements in the prologue are directives
		_, isString := s.Value.Data.(*js_ast.EString)
		p.openParenIf(isString)
		p.printExpr(s.Value, js_ast.LLowest, 0)
		p.closeParenIf(isString)
		p.printSemicolonAfterStatement()

	case *js_ast.SEmpty:
		p.printIndent()
		p.print(";")
		p.printNewline()

	case *js_ast.SBlock:
		p.printIndent()
		p.printBlock(s.Stmts)
		p.printNewline()

	case *js_ast.SLocal:
		p.printIndent()
		p.printExportPrefix(s.IsExport)
		p.printDecls(localKeyword(s.Kind), s.Decls, 0)
		p.printSemicolonAfterStatement()

	case *js_ast.SFunction:
		p.printIndent()
		p.printExportPrefix(s.IsExport)
		p.printFunction(s.Fn)
		p.printNewline()

	case *js_ast.SClass:
		p.printIndent()
		p.printExportPrefix(s.IsExport)

		// "export @dec class" keeps its decorators on the same line
		p.printClassWithHead(&s.Class, !s.IsExport /* decoratorsOnOwnLine */)
		p.printNewline()

	case *js_ast.SExportDefault:
		p.printIndent()
		p.printKeyword("export default")
		p.printSpace()
		switch s2 := s.Value.Data.(type) {
		case *js_ast.SExpr:
			p.exportDefaultStart = len(p.js)
			p.printExpr(s2.Value, js_ast.LComma, 0)
			p.printSemicolonAfterStatement()
		case *js_ast.SFunction:
			p.printFunction(s2.Fn)
			p.printNewline()
		case *js_ast.SClass:
			p.printClassWithHead(&s2.Class, false /* decoratorsOnOwnLine */)
			p.printNewline()
		default:
			panic("Internal error")
		}

	case *js_ast.SExportStar:
		p.printIndent()
		p.printKeyword("export")
		p.printSpace()
		p.print("*")
		p.printSpace()
		if s.Alias != nil {
			p.print("as")
			p.printSpace()
			p.printClauseAlias(s.Alias.Alias)
			p.printSpace()
		}
		p.printFromPath(s.Path)
		p.printSemicolonAfterStatement()

	case *js_ast.SExportClause:
		p.printIndent()
		p.printKeyword("export")
		p.printSpace()
		p.printClauseItems(s.Items, func(item js_ast.ClauseItem) {
			name := p.renamer.NameForSymbol(item.Name.Ref)
			p.printIdentifier(name)
			if name != item.Alias {
				p.print(" as")
				p.printSpace()
				p.printClauseAlias(item.Alias)
			}
		})
		p.printSemicolonAfterStatement()

	case *js_ast.SExportFrom:
		p.printIndent()
		p.printKeyword("export")
		p.printSpace()
		p.printClauseItems(s.Items, func(item js_ast.ClauseItem) {
			p.printClauseAlias(item.OriginalName)
			if item.OriginalName != item.Alias {
				p.printSpace()
				p.printKeyword("as")
				p.printSpace()
				p.printClauseAlias(item.Alias)
			}
		})
		p.printSpace()
		p.printFromPath(s.Path)
		p.printSemicolonAfterStatement()

	case *js_ast.SImport:
		p.printIndent()
		p.printImport(s)
		p.printSemicolonAfterStatement()

	case *js_ast.SIf:
		p.printIndent()
		p.printIf(s)

	case *js_ast.SDoWhile:
		p.printIndent()
		p.printKeyword("do")
		if block, ok := s.Body.Data.(*js_ast.SBlock); ok {
			p.printSpace()
			p.printBlock(block.Stmts)
			p.printSpace()
		} else {
			p.printNewline()
			p.options.Indent++
			p.printStmt(s.Body)
			p.printSemicolonIfNeeded()
			p.options.Indent--
			p.printIndent()
		}
		p.printKeyword("while")
		p.printSpace()
		p.printParenExpr(s.Test)
		p.printSemicolonAfterStatement()

	case *js_ast.SWhile:
		p.printIndent()
		p.printKeyword("while")
		p.printSpace()
		p.printParenExpr(s.Test)
		p.printBody(s.Body)

	case *js_ast.SFor:
		p.printIndent()
		p.printKeyword("for")
		p.printSpace()
		p.print("(")
		if s.InitOrNil.Data != nil {
			p.printForLoopInit(s.InitOrNil)
		}
		p.print(";")
		p.printSpace()
		if s.TestOrNil.Data != nil {
			p.printExpr(s.TestOrNil, js_ast.LLowest, 0)
		}
		p.print(";")
		p.printSpace()
		if s.UpdateOrNil.Data != nil {
			p.printExpr(s.UpdateOrNil, js_ast.LLowest, 0)
		}
		p.print(")")
		p.printBody(s.Body)

	case *js_ast.SForIn:
		p.printIndent()
		p.printForInOrOf("for", s.Init, "in", s.Value, js_ast.LLowest)
		p.printBody(s.Body)

	case *js_ast.SForOf:
		p.printIndent()
		keyword := "for"
		if s.IsAwait {
			keyword = "for await"
		}
		p.printForInOrOf(keyword, s.Init, "of", s.Value, js_ast.LComma)
		p.printBody(s.Body)

	case *js_ast.SLabel:
		p.printIndent()
		p.printSpaceBeforeIdentifier()
		p.printIdentifier(s.Name)
		p.print(":")
		p.printBody(s.Stmt)

	case *js_ast.STry:
		p.printIndent()
		p.printKeyword("try")
		p.printSpace()
		p.printBlock(s.Block.Stmts)
		if s.Catch != nil {
			p.printSpace()
			p.print("catch")
			if s.Catch.BindingOrNil.Data != nil {
				p.printSpace()
				p.print("(")
				p.printBinding(s.Catch.BindingOrNil)
				p.print(")")
			}
			p.printSpace()
			p.printBlock(s.Catch.Block.Stmts)
		}
		if s.Finally != nil {
			p.printSpace()
			p.print("finally")
			p.printSpace()
			p.printBlock(s.Finally.Block.Stmts)
		}
		p.printNewline()

	case *js_ast.SSwitch:
		p.printIndent()
		p.printKeyword("switch")
		p.printSpace()
		p.printParenExpr(s.Test)
		p.printSpace()
		p.print("{")
		p.printNewline()
		p.options.Indent++
		for _, c := range s.Cases {
			p.printSemicolonIfNeeded()
			p.printIndent()
			p.printCase(c)
		}
		p.options.Indent--
		p.printIndent()
		p.print("}")
		p.printNewline()
		p.needsSemicolon = false

	case *js_ast.SBreak:
		p.printIndent()
		p.printJump("break", s.Label)

	case *js_ast.SContinue:
		p.printIndent()
		p.printJump("continue", s.Label)

	case *js_ast.SReturn:
		p.printIndent()
		p.printKeyword("return")
		if s.ValueOrNil.Data != nil {
			p.printSpace()
			p.printExpr(s.ValueOrNil, js_ast.LLowest, 0)
		}
		p.printSemicolonAfterStatement()

	case *js_ast.SThrow:
		p.printIndent()
		p.printKeyword("throw")
		p.printSpace()
		p.printExpr(s.Value, js_ast.LLowest, 0)
		p.printSemicolonAfterStatement()

	case *js_ast.SDebugger:
		p.printIndent()
		p.printKeyword("debugger")
		p.printSemicolonAfterStatement()

	default:
		panic(fmt.Sprintf("Unexpected statement of type %T", stmt.Data))
	}
}

func (p *printer) printExportPrefix(isExport bool) {
	if isExport {
		p.printKeyword("export")
		p.print(" ")
	}
}

func (p *printer) printParenExpr(expr js_ast.Expr) {
	p.print("(")
	p.printExpr(expr, js_ast.LLowest, 0)
	p.print(")")
}

func (p *printer) printFromPath(path string) {
	p.printKeyword("from")
	p.printSpace()
	p.printQuoted(path)
}

func (p *printer) printJump(keyword string, label string) {
	p.printKeyword(keyword)
	if label != "" {
		p.print(" ")
		p.printIdentifier(label)
	}
	p.printSemicolonAfterStatement()
}

func (p *printer) printForInOrOf(keyword string, init js_ast.Stmt, op string, value js_ast.Expr, level js_ast.L) {
	p.printKeyword(keyword)
	p.printSpace()
	p.print("(")
	p.printForLoopInit(init)
	p.printSpace()
	p.printKeyword(op)
	p.printSpace()
	p.printExpr(value, level, 0)
	p.print(")")
}

// Loop initializers can't contain a bare "in" since it would be read as a
// "for-in" loop
func (p *printer) printForLoopInit(init js_ast.Stmt) {
	switch s := init.Data.(type) {
	case *js_ast.SExpr:
		p.printExpr(s.Value, js_ast.LLowest, forbidIn)
	case *js_ast.SLocal:
		p.printDecls(localKeyword(s.Kind), s.Decls, forbidIn)
	default:
		panic("Internal error")
	}
}

func localKeyword(kind js_ast.LocalKind) string {
	switch kind {
	case js_ast.LocalLet:
		return "let"
	case js_ast.LocalConst:
		return "const"
	}
	return "var"
}

func (p *printer) printDecls(keyword string, decls []js_ast.Decl, flags printExprFlags) {
	p.printKeyword(keyword)
	p.printSpace()
	for i, decl := range decls {
		p.printCommaBefore(i)
		p.printBinding(decl.Binding)
		if decl.ValueOrNil.Data != nil {
			p.printInitializer(decl.ValueOrNil, flags)
		}
	}
}

func (p *printer) printImport(s *js_ast.SImport) {
	p.printKeyword("import")
	p.printSpace()

	itemCount := 0
	if s.DefaultName != nil {
		p.printSymbol(s.DefaultName.Ref)
		itemCount++
	}

	if s.Items != nil {
		p.printCommaBefore(itemCount)
		p.printClauseItems(*s.Items, func(item js_ast.ClauseItem) {
			p.printClauseAlias(item.Alias)
			if name := p.renamer.NameForSymbol(item.Name.Ref); name != item.Alias {
				p.printSpace()
				p.printKeyword("as ")
				p.printIdentifier(name)
			}
		})
		itemCount++
	}

	if s.StarNameLoc != nil {
		p.printCommaBefore(itemCount)
		p.print("*")
		p.printSpace()
		p.print("as ")
		p.printSymbol(s.NamespaceRef)
		itemCount++
	}

	if itemCount > 0 {
		p.printSpace()
		p.printFromPath(s.Path)
	} else {
		p.printQuoted(s.Path)
	}
}

func (p *printer) printClauseItems(items []js_ast.ClauseItem, printItem func(item js_ast.ClauseItem)) {
	p.print("{")
	for i, item := range items {
		if i != 0 {
			p.print(",")
		}
		p.printSpace()
		printItem(item)
	}
	if len(items) > 0 {
		p.printSpace()
	}
	p.print("}")
}

func (p *printer) printCase(c js_ast.Case) {
	if c.ValueOrNil.Data != nil {
		p.printKeyword("case")
		p.printSpace()
		p.printExpr(c.ValueOrNil, js_ast.LLogicalAnd, 0)
	} else {
		p.printKeyword("default")
	}
	p.print(":")

	if len(c.Body) == 1 {
		if block, ok := c.Body[0].Data.(*js_ast.SBlock); ok {
			p.printSpace()
			p.printBlock(block.Stmts)
			p.printNewline()
			return
		}
	}

	p.printNewline()
	p.printIndentedStmts(c.Body)
}

func (p *printer) printIndentedStmts(stmts []js_ast.Stmt) {
	p.options.Indent++
	for _, stmt := range stmts {
		p.printSemicolonIfNeeded()
		p.printStmt(stmt)
	}
	p.options.Indent--
}

// Prints the body of a loop or label, which is either a block on the same
// line or an indented statement on the next one
func (p *printer) printBody(body js_ast.Stmt) {
	if block, ok := body.Data.(*js_ast.SBlock); ok {
		p.printSpace()
		p.printBlock(block.Stmts)
		p.printNewline()
	} else {
		p.printNewline()
		p.options.Indent++
		p.printStmt(body)
		p.options.Indent--
	}
}

func (p *printer) printBlock(stmts []js_ast.Stmt) {
	p.print("{")
	p.printNewline()
	p.printIndentedStmts(stmts)
	p.needsSemicolon = false
	p.printIndent()
	p.print("}")
}

// Reports whether "if (a) <s> else b" would attach the "else" to an "if"
// nested inside of "s"
func wrapToAvoidAmbiguousElse(s js_ast.S) bool {
	for {
		switch current := s.(type) {
		case *js_ast.SIf:
			if current.NoOrNil.Data == nil {
				return true
			}
			s = current.NoOrNil.Data
		case *js_ast.SFor:
			s = current.Body.Data
		case *js_ast.SForIn:
			s = current.Body.Data
		case *js_ast.SForOf:
			s = current.Body.Data
		case *js_ast.SWhile:
			s = current.Body.Data
		case *js_ast.SLabel:
			s = current.Stmt.Data
		default:
			return false
		}
	}
}

func (p *printer) printIf(s *js_ast.SIf) {
	p.printKeyword("if")
	p.printSpace()
	p.printParenExpr(s.Test)

	hasElse := s.NoOrNil.Data != nil
	yes := s.Yes
	if block, ok := yes.Data.(*js_ast.SBlock); ok || wrapToAvoidAmbiguousElse(yes.Data) {
		stmts := []js_ast.Stmt{yes}
		if ok {
			stmts = block.Stmts
		}
		p.printSpace()
		p.printBlock(stmts)
		if hasElse {
			p.printSpace()
		} else {
			p.printNewline()
		}
	} else {
		p.printNewline()
		p.options.Indent++
		p.printStmt(yes)
		p.options.Indent--
		if hasElse {
			p.printIndent()
		}
	}

	if !hasElse {
		return
	}

	p.printSemicolonIfNeeded()
	p.printKeyword("else")
	switch no := s.NoOrNil.Data.(type) {
	case *js_ast.SBlock:
		p.printSpace()
		p.printBlock(no.Stmts)
		p.printNewline()
	case *js_ast.SIf:
		p.printSpace()
		p.printIf(no)
	default:
		p.printNewline()
		p.options.Indent++
		p.printStmt(s.NoOrNil)
		p.options.Indent--
	}
}
