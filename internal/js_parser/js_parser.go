package js_parser

import (
	"fmt"

	"github.com/classhook/classhook/internal/js_ast"
	"github.com/classhook/classhook/internal/js_lexer"
	"github.com/classhook/classhook/internal/logger"
)

// This parser does two passes:
//
//  1. Parse the source into an AST, create the scope tree, and declare all
//     symbols. Identifier references can't be bound yet because a reference
//     may appear before the declaration it refers to.
//
//  2. Bind every identifier reference to the symbol it resolves to by walking
//     up the scope chain from the scope the reference appeared in. Names that
//     aren't declared anywhere become unbound symbols in the module scope.
//
// During the first pass, the "Ref" of every "EIdentifier" is an index into
// "pendingRefs" instead of into the symbol table.

type parser struct {
	log          logger.Log
	source       logger.Source
	lexer        js_lexer.Lexer
	symbols      []js_ast.Symbol
	moduleScope  *js_ast.Scope
	currentScope *js_ast.Scope
	hasErrors    bool

	pendingRefs     []pendingRef
	exportClauses   []*js_ast.SExportClause
	flattenedScopes map[*js_ast.Scope]*js_ast.Scope

	// "in" is not an operator in the initializer of a "for" loop
	allowIn bool

	fnOrArrowDataParse fnOrArrowDataParse

	// An arrow function with a block body can't be the start of a member
	// expression or a call, so suffix parsing stops here
	afterArrowBodyLoc logger.Loc
}

type pendingRef struct {
	scope     *js_ast.Scope
	name      string
	loc       logger.Loc
	discarded bool
}

type fnOrArrowDataParse struct {
	allowAwait      bool
	allowYield      bool
	isReturnAllowed bool
}

type parseStmtOpts struct {
	decorators      []js_ast.Expr
	isModuleScope   bool
	isExport        bool
	isNameOptional  bool // For "export default" pseudo-statements
	lexicalDeclOnly bool

	allowDirectivePrologue bool
}

func newParser(log logger.Log, source logger.Source, lexer js_lexer.Lexer) *parser {
	p := &parser{
		log:               log,
		source:            source,
		lexer:             lexer,
		allowIn:           true,
		flattenedScopes:   make(map[*js_ast.Scope]*js_ast.Scope),
		afterArrowBodyLoc: logger.Loc{Start: -1},

		// Top-level await is allowed in modules
		fnOrArrowDataParse: fnOrArrowDataParse{allowAwait: true},
	}
	p.moduleScope = p.pushScope(js_ast.ScopeEntry)
	return p
}

func Parse(log logger.Log, source logger.Source) (result js_ast.AST, ok bool) {
	ok = true
	defer func() {
		r := recover()
		if _, isLexerPanic := r.(js_lexer.LexerPanic); isLexerPanic {
			ok = false
		} else if r != nil {
			panic(r)
		}
	}()

	p := newParser(log, source, js_lexer.NewLexer(log, source))

	// Strip off the hashbang comment
	hashbang := ""
	if p.lexer.Token == js_lexer.THashbang {
		hashbang = p.lexer.Identifier
		p.lexer.Next()
	}

	stmts := p.parseStmtsUpTo(js_lexer.TEndOfFile, parseStmtOpts{isModuleScope: true, allowDirectivePrologue: true})
	p.popScope()
	p.bindPendingRefs(stmts)

	result = js_ast.AST{
		Hashbang:    hashbang,
		Stmts:       stmts,
		Symbols:     p.symbols,
		ModuleScope: p.moduleScope,
	}
	ok = !p.hasErrors
	return
}

func (p *parser) addRangeError(r logger.Range, text string) {
	p.hasErrors = true
	if !p.lexer.IsLogDisabled {
		p.log.AddRangeError(&p.source, r, text)
	}
}

func (p *parser) pushScope(kind js_ast.ScopeKind) *js_ast.Scope {
	scope := js_ast.NewScope(kind, p.currentScope)
	p.currentScope = scope
	return scope
}

func (p *parser) popScope() {
	p.currentScope = p.currentScope.Parent
}

// Undoes a scope that turned out not to exist, such as the scope pushed for
// a parenthesized expression that might have been arrow function arguments.
// Child scopes are moved to the parent as if the scope was never pushed.
func (p *parser) popAndFlattenScope(scope *js_ast.Scope) {
	if p.currentScope != scope {
		panic("Internal error")
	}
	p.popScope()
	parent := scope.Parent

	for i, child := range parent.Children {
		if child == scope {
			parent.Children = append(parent.Children[:i:i], parent.Children[i+1:]...)
			break
		}
	}
	for _, child := range scope.Children {
		child.Parent = parent
		parent.Children = append(parent.Children, child)
	}
	scope.Children = nil

	// References made inside the discarded scope resolve from the parent
	p.flattenedScopes[scope] = parent
}

func (p *parser) newSymbol(kind js_ast.SymbolKind, name string) js_ast.Ref {
	ref := js_ast.Ref{InnerIndex: uint32(len(p.symbols))}
	p.symbols = append(p.symbols, js_ast.Symbol{
		Kind:         kind,
		OriginalName: name,
	})
	return ref
}

func (p *parser) declareSymbol(kind js_ast.SymbolKind, loc logger.Loc, name string) js_ast.Ref {
	// "var" declarations live in the closest function or module scope
	scope := p.currentScope
	if kind == js_ast.SymbolHoisted {
		scope = scope.HoistTarget()
	}

	if existing, ok := scope.Members[name]; ok {
		existingKind := p.symbols[existing.Ref.InnerIndex].Kind
		if !existingKind.IsHoisted() || !kind.IsHoisted() {
			r := logger.Range{Loc: loc, Len: int32(len(name))}
			p.addRangeError(r, fmt.Sprintf("The symbol %q has already been declared", name))
		}
		return existing.Ref
	}

	ref := p.newSymbol(kind, name)
	scope.Members[name] = js_ast.ScopeMember{Ref: ref, Loc: loc}
	return ref
}

func (p *parser) declareBinding(kind js_ast.SymbolKind, binding js_ast.Binding, name string) js_ast.Binding {
	binding.Data = &js_ast.BIdentifier{Ref: p.declareSymbol(kind, binding.Loc, name)}
	return binding
}

// Identifier references are bound after parsing. The returned expression
// holds a placeholder ref until then.
func (p *parser) newIdentifierRef(loc logger.Loc, name string) js_ast.Expr {
	return js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{Ref: p.newPendingRef(loc, name)}}
}

func (p *parser) newPendingRef(loc logger.Loc, name string) js_ast.Ref {
	ref := js_ast.Ref{InnerIndex: uint32(len(p.pendingRefs))}
	p.pendingRefs = append(p.pendingRefs, pendingRef{
		scope: p.currentScope,
		name:  name,
		loc:   loc,
	})
	return ref
}

// This is used when an expression turns out to be a binding or a label. The
// identifier is no longer a reference.
func (p *parser) discardIdentifierRef(id *js_ast.EIdentifier) string {
	pending := &p.pendingRefs[id.Ref.InnerIndex]
	pending.discarded = true
	return pending.name
}

func (p *parser) bindPendingRefs(stmts []js_ast.Stmt) {
	resolved := make([]js_ast.Ref, len(p.pendingRefs))

	for i, pending := range p.pendingRefs {
		if pending.discarded {
			resolved[i] = js_ast.InvalidRef
			continue
		}

		scope := pending.scope
		for {
			parent, ok := p.flattenedScopes[scope]
			if !ok {
				break
			}
			scope = parent
		}

		if member, _, ok := scope.FindMember(pending.name); ok {
			resolved[i] = member.Ref
			continue
		}

		// Allocate an "unbound" symbol so that all references to the same
		// global share one symbol
		ref := p.newSymbol(js_ast.SymbolUnbound, pending.name)
		p.symbols[ref.InnerIndex].MustNotBeRenamed = true
		p.moduleScope.Members[pending.name] = js_ast.ScopeMember{Ref: ref, Loc: pending.loc}
		resolved[i] = ref
	}

	visitor := js_ast.Visitor{
		Expr: func(expr *js_ast.Expr) {
			if id, ok := expr.Data.(*js_ast.EIdentifier); ok {
				id.Ref = resolved[id.Ref.InnerIndex]
			}
		},
	}
	visitor.WalkStmts(stmts)

	for _, clause := range p.exportClauses {
		for i := range clause.Items {
			item := &clause.Items[i]
			if item.Name.Ref != js_ast.InvalidRef {
				item.Name.Ref = resolved[item.Name.Ref.InnerIndex]
			}
		}
	}
}

func (p *parser) parseStmtsUpTo(end js_lexer.T, opts parseStmtOpts) []js_ast.Stmt {
	stmts := []js_ast.Stmt{}
	isDirectivePrologue := opts.allowDirectivePrologue

	for p.lexer.Token != end {
		stmt := p.parseStmt(opts)

		// Empty statements carry no meaning once parsed
		if _, ok := stmt.Data.(*js_ast.SEmpty); ok {
			isDirectivePrologue = false
			continue
		}

		if isDirectivePrologue {
			isDirectivePrologue = false
			if s, ok := stmt.Data.(*js_ast.SExpr); ok {
				// A parenthesized string is not a directive
				if str, ok := s.Value.Data.(*js_ast.EString); ok && s.Value.Loc == stmt.Loc && p.isQuoteAt(stmt.Loc) {
					stmt.Data = &js_ast.SDirective{Value: str.Value}
					isDirectivePrologue = true
				}
			}
		}
		stmts = append(stmts, stmt)
	}

	return stmts
}

func (p *parser) isQuoteAt(loc logger.Loc) bool {
	if int(loc.Start) >= len(p.source.Contents) {
		return false
	}
	c := p.source.Contents[loc.Start]
	return c == '"' || c == '\''
}

func (p *parser) parseFnBody(data fnOrArrowDataParse) js_ast.FnBody {
	oldFnOrArrowData := p.fnOrArrowDataParse
	oldAllowIn := p.allowIn
	p.fnOrArrowDataParse = data
	p.allowIn = true

	loc := p.lexer.Loc()
	p.lexer.Expect(js_lexer.TOpenBrace)
	stmts := p.parseStmtsUpTo(js_lexer.TCloseBrace, parseStmtOpts{allowDirectivePrologue: true})
	p.lexer.Next()

	p.allowIn = oldAllowIn
	p.fnOrArrowDataParse = oldFnOrArrowData
	return js_ast.FnBody{Loc: loc, Stmts: stmts}
}

func (p *parser) parseBlock() js_ast.SBlock {
	p.lexer.Expect(js_lexer.TOpenBrace)
	scope := p.pushScope(js_ast.ScopeBlock)
	stmts := p.parseStmtsUpTo(js_lexer.TCloseBrace, parseStmtOpts{})
	p.popScope()
	p.lexer.Next()
	return js_ast.SBlock{Stmts: stmts, Scope: scope}
}

func (p *parser) parseStmt(opts parseStmtOpts) js_ast.Stmt {
	loc := p.lexer.Loc()

	switch p.lexer.Token {
	case js_lexer.TSemicolon:
		p.lexer.Next()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SEmpty{}}

	case js_lexer.TExport:
		if !opts.isModuleScope {
			p.lexer.Unexpected()
		}
		return p.parseExportStmt(loc, opts)

	case js_lexer.TImport:
		p.lexer.Next()

		// "import()" and "import.meta" are expressions
		if p.lexer.Token == js_lexer.TOpenParen || p.lexer.Token == js_lexer.TDot {
			expr := p.parseSuffix(p.parseImportExpr(loc), js_ast.LLowest)
			p.lexer.ExpectOrInsertSemicolon()
			return js_ast.Stmt{Loc: loc, Data: &js_ast.SExpr{Value: expr}}
		}

		if !opts.isModuleScope {
			p.lexer.Unexpected()
		}
		return p.parseImportStmt(loc)

	case js_lexer.TFunction:
		p.lexer.Next()
		return p.parseFnStmt(loc, opts, false /* isAsync */)

	case js_lexer.TClass:
		return p.parseClassStmt(loc, opts)

	case js_lexer.TAt:
		opts.decorators = p.parseDecorators()
		if p.lexer.Token == js_lexer.TExport && opts.isModuleScope {
			return p.parseExportStmt(loc, opts)
		}
		if p.lexer.Token != js_lexer.TClass {
			p.lexer.Expected(js_lexer.TClass)
		}
		return p.parseClassStmt(loc, opts)

	case js_lexer.TVar:
		p.lexer.Next()
		decls := p.parseAndDeclareDecls(js_ast.SymbolHoisted)
		p.lexer.ExpectOrInsertSemicolon()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SLocal{Kind: js_ast.LocalVar, Decls: decls, IsExport: opts.isExport}}

	case js_lexer.TConst:
		p.lexer.Next()
		decls := p.parseAndDeclareDecls(js_ast.SymbolConst)
		p.requireInitializers(decls)
		p.lexer.ExpectOrInsertSemicolon()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SLocal{Kind: js_ast.LocalConst, Decls: decls, IsExport: opts.isExport}}

	case js_lexer.TIf:
		p.lexer.Next()
		p.lexer.Expect(js_lexer.TOpenParen)
		test := p.parseExpr(js_ast.LLowest)
		p.lexer.Expect(js_lexer.TCloseParen)
		yes := p.parseStmt(parseStmtOpts{})
		var noOrNil js_ast.Stmt
		if p.lexer.Token == js_lexer.TElse {
			p.lexer.Next()
			noOrNil = p.parseStmt(parseStmtOpts{})
		}
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SIf{Test: test, Yes: yes, NoOrNil: noOrNil}}

	case js_lexer.TDo:
		p.lexer.Next()
		body := p.parseStmt(parseStmtOpts{})
		p.lexer.Expect(js_lexer.TWhile)
		p.lexer.Expect(js_lexer.TOpenParen)
		test := p.parseExpr(js_ast.LLowest)
		p.lexer.Expect(js_lexer.TCloseParen)

		// This is a weird corner case where automatic semicolon insertion applies
		// even without a newline present
		if p.lexer.Token == js_lexer.TSemicolon {
			p.lexer.Next()
		}
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SDoWhile{Body: body, Test: test}}

	case js_lexer.TWhile:
		p.lexer.Next()
		p.lexer.Expect(js_lexer.TOpenParen)
		test := p.parseExpr(js_ast.LLowest)
		p.lexer.Expect(js_lexer.TCloseParen)
		body := p.parseStmt(parseStmtOpts{})
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SWhile{Test: test, Body: body}}

	case js_lexer.TWith:
		p.addRangeError(p.lexer.Range(), "With statements cannot be used in strict mode code")
		panic(js_lexer.LexerPanic{})

	case js_lexer.TSwitch:
		return p.parseSwitchStmt(loc)

	case js_lexer.TTry:
		return p.parseTryStmt(loc)

	case js_lexer.TFor:
		return p.parseForStmt(loc)

	case js_lexer.TReturn:
		if !p.fnOrArrowDataParse.isReturnAllowed {
			p.addRangeError(p.lexer.Range(), "A return statement cannot be used here")
		}
		p.lexer.Next()
		var value js_ast.Expr
		if p.lexer.Token != js_lexer.TSemicolon &&
			!p.lexer.HasNewlineBefore &&
			p.lexer.Token != js_lexer.TCloseBrace &&
			p.lexer.Token != js_lexer.TEndOfFile {
			value = p.parseExpr(js_ast.LLowest)
		}
		p.lexer.ExpectOrInsertSemicolon()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SReturn{ValueOrNil: value}}

	case js_lexer.TThrow:
		p.lexer.Next()
		if p.lexer.HasNewlineBefore {
			p.addRangeError(logger.Range{Loc: logger.Loc{Start: loc.Start + 5}},
				"Unexpected newline after \"throw\"")
			panic(js_lexer.LexerPanic{})
		}
		value := p.parseExpr(js_ast.LLowest)
		p.lexer.ExpectOrInsertSemicolon()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SThrow{Value: value}}

	case js_lexer.TBreak, js_lexer.TContinue:
		isBreak := p.lexer.Token == js_lexer.TBreak
		p.lexer.Next()
		label := ""
		if p.lexer.Token == js_lexer.TIdentifier && !p.lexer.HasNewlineBefore {
			label = p.lexer.Identifier
			p.lexer.Next()
		}
		p.lexer.ExpectOrInsertSemicolon()
		if isBreak {
			return js_ast.Stmt{Loc: loc, Data: &js_ast.SBreak{Label: label}}
		}
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SContinue{Label: label}}

	case js_lexer.TDebugger:
		p.lexer.Next()
		p.lexer.ExpectOrInsertSemicolon()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SDebugger{}}

	case js_lexer.TOpenBrace:
		block := p.parseBlock()
		return js_ast.Stmt{Loc: loc, Data: &block}

	case js_lexer.TEnum:
		p.addRangeError(p.lexer.Range(), "Enums are not supported in JavaScript files")
		panic(js_lexer.LexerPanic{})
	}

	if p.lexer.Token == js_lexer.TIdentifier {
		switch p.lexer.Raw() {
		case "async":
			asyncRange := p.lexer.Range()
			p.lexer.Next()

			// "async function foo() {}"
			if p.lexer.Token == js_lexer.TFunction && !p.lexer.HasNewlineBefore {
				p.lexer.Next()
				return p.parseFnStmt(loc, opts, true /* isAsync */)
			}

			expr := p.parseSuffix(p.parseAsyncPrefixExpr(asyncRange, js_ast.LLowest), js_ast.LLowest)
			p.lexer.ExpectOrInsertSemicolon()
			return js_ast.Stmt{Loc: loc, Data: &js_ast.SExpr{Value: expr}}

		case "let":
			letRange := p.lexer.Range()
			p.lexer.Next()

			switch p.lexer.Token {
			case js_lexer.TIdentifier, js_lexer.TOpenBracket, js_lexer.TOpenBrace:
				decls := p.parseAndDeclareDecls(js_ast.SymbolOther)
				p.lexer.ExpectOrInsertSemicolon()
				return js_ast.Stmt{Loc: loc, Data: &js_ast.SLocal{Kind: js_ast.LocalLet, Decls: decls, IsExport: opts.isExport}}
			}

			// "let" is just an identifier here
			expr := p.parseSuffix(p.newIdentifierRef(letRange.Loc, "let"), js_ast.LLowest)
			p.lexer.ExpectOrInsertSemicolon()
			return js_ast.Stmt{Loc: loc, Data: &js_ast.SExpr{Value: expr}}
		}
	}

	if opts.isExport {
		p.lexer.Unexpected()
	}

	expr := p.parseExpr(js_ast.LLowest)

	// "label: stmt"
	if id, ok := expr.Data.(*js_ast.EIdentifier); ok && p.lexer.Token == js_lexer.TColon {
		name := p.discardIdentifierRef(id)
		p.lexer.Next()
		stmt := p.parseStmt(parseStmtOpts{})
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SLabel{Name: name, Stmt: stmt}}
	}

	p.lexer.ExpectOrInsertSemicolon()
	return js_ast.Stmt{Loc: loc, Data: &js_ast.SExpr{Value: expr}}
}

func (p *parser) parseSwitchStmt(loc logger.Loc) js_ast.Stmt {
	p.lexer.Next()
	p.lexer.Expect(js_lexer.TOpenParen)
	test := p.parseExpr(js_ast.LLowest)
	p.lexer.Expect(js_lexer.TCloseParen)

	bodyLoc := p.lexer.Loc()
	p.lexer.Expect(js_lexer.TOpenBrace)
	scope := p.pushScope(js_ast.ScopeBlock)
	cases := []js_ast.Case{}
	foundDefault := false

	for p.lexer.Token != js_lexer.TCloseBrace {
		var value js_ast.Expr

		if p.lexer.Token == js_lexer.TDefault {
			if foundDefault {
				p.addRangeError(p.lexer.Range(), "Multiple default clauses are not allowed")
				panic(js_lexer.LexerPanic{})
			}
			foundDefault = true
			p.lexer.Next()
			p.lexer.Expect(js_lexer.TColon)
		} else {
			p.lexer.Expect(js_lexer.TCase)
			value = p.parseExpr(js_ast.LLowest)
			p.lexer.Expect(js_lexer.TColon)
		}

		body := []js_ast.Stmt{}
	caseBody:
		for {
			switch p.lexer.Token {
			case js_lexer.TCloseBrace, js_lexer.TCase, js_lexer.TDefault:
				break caseBody

			default:
				stmt := p.parseStmt(parseStmtOpts{})
				if _, ok := stmt.Data.(*js_ast.SEmpty); !ok {
					body = append(body, stmt)
				}
			}
		}

		cases = append(cases, js_ast.Case{ValueOrNil: value, Body: body})
	}

	p.popScope()
	p.lexer.Expect(js_lexer.TCloseBrace)
	return js_ast.Stmt{Loc: loc, Data: &js_ast.SSwitch{
		Test:    test,
		BodyLoc: bodyLoc,
		Cases:   cases,
		Scope:   scope,
	}}
}

func (p *parser) parseTryStmt(loc logger.Loc) js_ast.Stmt {
	p.lexer.Next()
	blockLoc := p.lexer.Loc()
	block := p.parseBlock()
	var catch *js_ast.Catch
	var finally *js_ast.Finally

	if p.lexer.Token == js_lexer.TCatch {
		catchLoc := p.lexer.Loc()
		p.lexer.Next()
		scope := p.pushScope(js_ast.ScopeCatchBinding)
		var bindingOrNil js_ast.Binding

		// The catch binding is optional
		if p.lexer.Token == js_lexer.TOpenParen {
			p.lexer.Next()
			bindingOrNil = p.parseBinding(js_ast.SymbolCatchIdentifier)
			p.lexer.Expect(js_lexer.TCloseParen)
		}

		catchBlock := p.parseBlock()
		p.popScope()
		catch = &js_ast.Catch{Loc: catchLoc, BindingOrNil: bindingOrNil, Block: catchBlock, Scope: scope}
	}

	if p.lexer.Token == js_lexer.TFinally || catch == nil {
		finallyLoc := p.lexer.Loc()
		p.lexer.Expect(js_lexer.TFinally)
		finally = &js_ast.Finally{Loc: finallyLoc, Block: p.parseBlock()}
	}

	return js_ast.Stmt{Loc: loc, Data: &js_ast.STry{
		BlockLoc: blockLoc,
		Block:    block,
		Catch:    catch,
		Finally:  finally,
	}}
}

func (p *parser) parseForStmt(loc logger.Loc) js_ast.Stmt {
	p.lexer.Next()
	scope := p.pushScope(js_ast.ScopeBlock)

	// "for await (let x of y) {}"
	isForAwait := p.lexer.IsContextualKeyword("await")
	if isForAwait {
		if !p.fnOrArrowDataParse.allowAwait {
			p.addRangeError(p.lexer.Range(), "Cannot use \"await\" outside an async function")
		}
		p.lexer.Next()
	}

	p.lexer.Expect(js_lexer.TOpenParen)

	var initOrNil js_ast.Stmt
	var decls []js_ast.Decl
	initLoc := p.lexer.Loc()

	// "in" expressions aren't allowed here
	p.allowIn = false

	switch p.lexer.Token {
	case js_lexer.TVar:
		p.lexer.Next()
		decls = p.parseAndDeclareDecls(js_ast.SymbolHoisted)
		initOrNil = js_ast.Stmt{Loc: initLoc, Data: &js_ast.SLocal{Kind: js_ast.LocalVar, Decls: decls}}

	case js_lexer.TConst:
		p.lexer.Next()
		decls = p.parseAndDeclareDecls(js_ast.SymbolConst)
		initOrNil = js_ast.Stmt{Loc: initLoc, Data: &js_ast.SLocal{Kind: js_ast.LocalConst, Decls: decls}}

	case js_lexer.TSemicolon:

	default:
		if p.lexer.IsContextualKeyword("let") {
			letRange := p.lexer.Range()
			p.lexer.Next()
			switch p.lexer.Token {
			case js_lexer.TIdentifier, js_lexer.TOpenBracket, js_lexer.TOpenBrace:
				decls = p.parseAndDeclareDecls(js_ast.SymbolOther)
				initOrNil = js_ast.Stmt{Loc: initLoc, Data: &js_ast.SLocal{Kind: js_ast.LocalLet, Decls: decls}}

			default:
				expr := p.parseSuffix(p.newIdentifierRef(letRange.Loc, "let"), js_ast.LLowest)
				initOrNil = js_ast.Stmt{Loc: initLoc, Data: &js_ast.SExpr{Value: expr}}
			}
		} else {
			initOrNil = js_ast.Stmt{Loc: initLoc, Data: &js_ast.SExpr{Value: p.parseExpr(js_ast.LLowest)}}
		}
	}

	p.allowIn = true

	// "for (a of b) {}"
	if p.lexer.IsContextualKeyword("of") || isForAwait {
		if initOrNil.Data == nil {
			p.lexer.Unexpected()
		}
		p.forbidInitializers(decls, "of")
		p.lexer.ExpectContextualKeyword("of")
		value := p.parseExpr(js_ast.LComma)
		p.lexer.Expect(js_lexer.TCloseParen)
		body := p.parseStmt(parseStmtOpts{})
		p.popScope()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SForOf{Init: initOrNil, Value: value, Body: body, Scope: scope, IsAwait: isForAwait}}
	}

	// "for (a in b) {}"
	if p.lexer.Token == js_lexer.TIn {
		if initOrNil.Data == nil {
			p.lexer.Unexpected()
		}
		p.forbidInitializers(decls, "in")
		p.lexer.Next()
		value := p.parseExpr(js_ast.LLowest)
		p.lexer.Expect(js_lexer.TCloseParen)
		body := p.parseStmt(parseStmtOpts{})
		p.popScope()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SForIn{Init: initOrNil, Value: value, Body: body, Scope: scope}}
	}

	// Only require "const" statement initializers when we know we're a normal for loop
	if local, ok := initOrNil.Data.(*js_ast.SLocal); ok && local.Kind == js_ast.LocalConst {
		p.requireInitializers(decls)
	}

	p.lexer.Expect(js_lexer.TSemicolon)
	var testOrNil js_ast.Expr
	var updateOrNil js_ast.Expr
	if p.lexer.Token != js_lexer.TSemicolon {
		testOrNil = p.parseExpr(js_ast.LLowest)
	}
	p.lexer.Expect(js_lexer.TSemicolon)
	if p.lexer.Token != js_lexer.TCloseParen {
		updateOrNil = p.parseExpr(js_ast.LLowest)
	}
	p.lexer.Expect(js_lexer.TCloseParen)
	body := p.parseStmt(parseStmtOpts{})
	p.popScope()
	return js_ast.Stmt{Loc: loc, Data: &js_ast.SFor{
		InitOrNil:   initOrNil,
		TestOrNil:   testOrNil,
		UpdateOrNil: updateOrNil,
		Body:        body,
		Scope:       scope,
	}}
}

func (p *parser) parseAndDeclareDecls(kind js_ast.SymbolKind) []js_ast.Decl {
	decls := []js_ast.Decl{}

	for {
		var valueOrNil js_ast.Expr
		binding := p.parseBinding(kind)

		if p.lexer.Token == js_lexer.TEquals {
			p.lexer.Next()
			valueOrNil = p.parseExpr(js_ast.LComma)
		}

		decls = append(decls, js_ast.Decl{Binding: binding, ValueOrNil: valueOrNil})

		if p.lexer.Token != js_lexer.TComma {
			break
		}
		p.lexer.Next()
	}

	return decls
}

func (p *parser) requireInitializers(decls []js_ast.Decl) {
	for _, d := range decls {
		if d.ValueOrNil.Data == nil {
			if _, ok := d.Binding.Data.(*js_ast.BIdentifier); ok {
				p.addRangeError(logger.Range{Loc: d.Binding.Loc}, "This constant must be initialized")
			}
		}
	}
}

func (p *parser) forbidInitializers(decls []js_ast.Decl, loopType string) {
	if len(decls) > 1 {
		p.addRangeError(logger.Range{Loc: decls[0].Binding.Loc}, fmt.Sprintf("for-%s loops must have a single declaration", loopType))
	} else if len(decls) == 1 && decls[0].ValueOrNil.Data != nil {
		p.addRangeError(logger.Range{Loc: decls[0].ValueOrNil.Loc}, fmt.Sprintf("for-%s loop variables cannot have an initializer", loopType))
	}
}

func (p *parser) parseFnStmt(loc logger.Loc, opts parseStmtOpts, isAsync bool) js_ast.Stmt {
	isGenerator := p.lexer.Token == js_lexer.TAsterisk
	if isGenerator {
		p.lexer.Next()
	}

	var name *js_ast.LocRef
	if p.lexer.Token == js_lexer.TIdentifier {
		nameLoc := p.lexer.Loc()
		name = &js_ast.LocRef{Loc: nameLoc, Ref: p.declareSymbol(js_ast.SymbolHoistedFunction, nameLoc, p.lexer.Identifier)}
		p.lexer.Next()
	} else if !opts.isNameOptional {
		p.lexer.Expected(js_lexer.TIdentifier)
	}

	scope := p.pushScope(js_ast.ScopeFunction)
	fn := js_ast.Fn{Name: name, Scope: scope, IsAsync: isAsync, IsGenerator: isGenerator}
	p.parseFnArgsAndBody(&fn)
	p.popScope()
	return js_ast.Stmt{Loc: loc, Data: &js_ast.SFunction{Fn: fn, IsExport: opts.isExport}}
}

func (p *parser) parseClassStmt(loc logger.Loc, opts parseStmtOpts) js_ast.Stmt {
	p.lexer.Expect(js_lexer.TClass)

	var name *js_ast.LocRef
	if p.lexer.Token == js_lexer.TIdentifier && !p.lexer.IsContextualKeyword("implements") {
		nameLoc := p.lexer.Loc()
		name = &js_ast.LocRef{Loc: nameLoc, Ref: p.declareSymbol(js_ast.SymbolClass, nameLoc, p.lexer.Identifier)}
		p.lexer.Next()
	} else if !opts.isNameOptional {
		p.lexer.Expected(js_lexer.TIdentifier)
	}

	class := js_ast.Class{Decorators: opts.decorators, Name: name}
	p.parseClass(&class)
	return js_ast.Stmt{Loc: loc, Data: &js_ast.SClass{Class: class, IsExport: opts.isExport}}
}

func (p *parser) parseExportStmt(loc logger.Loc, opts parseStmtOpts) js_ast.Stmt {
	p.lexer.Expect(js_lexer.TExport)
	opts.isExport = true

	// Decorators can only be followed by a class
	if opts.decorators != nil {
		switch p.lexer.Token {
		case js_lexer.TClass:
			return p.parseClassStmt(loc, opts)
		case js_lexer.TDefault:
			return p.parseExportDefault(loc, opts)
		default:
			p.lexer.Expected(js_lexer.TClass)
		}
	}

	switch p.lexer.Token {
	case js_lexer.TClass, js_lexer.TConst, js_lexer.TFunction, js_lexer.TVar, js_lexer.TAt:
		return p.parseStmt(opts)

	case js_lexer.TDefault:
		return p.parseExportDefault(loc, opts)

	case js_lexer.TAsterisk:
		p.lexer.Next()
		var alias *js_ast.ClauseItem
		if p.lexer.IsContextualKeyword("as") {
			p.lexer.Next()
			aliasLoc := p.lexer.Loc()
			alias = &js_ast.ClauseItem{Alias: p.parseClauseAlias(), AliasLoc: aliasLoc}
		}
		p.lexer.ExpectContextualKeyword("from")
		path := p.parsePath()
		p.lexer.ExpectOrInsertSemicolon()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SExportStar{Alias: alias, Path: path}}

	case js_lexer.TOpenBrace:
		items := p.parseExportClause()

		// "export {a, b as c} from 'path'"
		if p.lexer.IsContextualKeyword("from") {
			p.lexer.Next()
			path := p.parsePath()
			p.lexer.ExpectOrInsertSemicolon()
			return js_ast.Stmt{Loc: loc, Data: &js_ast.SExportFrom{Items: items, Path: path}}
		}

		// Local names in the clause are references that get bound later
		for i := range items {
			item := &items[i]
			if !js_ast.IsIdentifier(item.OriginalName) || js_lexer.Keywords[item.OriginalName] != 0 {
				p.addRangeError(logger.Range{Loc: item.Name.Loc, Len: int32(len(item.OriginalName))},
					fmt.Sprintf("Expected identifier but found %q", item.OriginalName))
				continue
			}
			item.Name.Ref = p.newPendingRef(item.Name.Loc, item.OriginalName)
		}
		p.lexer.ExpectOrInsertSemicolon()
		clause := &js_ast.SExportClause{Items: items}
		p.exportClauses = append(p.exportClauses, clause)
		return js_ast.Stmt{Loc: loc, Data: clause}

	default:
		if p.lexer.IsContextualKeyword("let") {
			return p.parseStmt(opts)
		}

		if p.lexer.IsContextualKeyword("async") {
			p.lexer.Next()
			if p.lexer.Token != js_lexer.TFunction || p.lexer.HasNewlineBefore {
				p.lexer.Expected(js_lexer.TFunction)
			}
			p.lexer.Next()
			return p.parseFnStmt(loc, opts, true /* isAsync */)
		}

		p.lexer.Unexpected()
		return js_ast.Stmt{}
	}
}

func (p *parser) parseExportDefault(loc logger.Loc, opts parseStmtOpts) js_ast.Stmt {
	p.lexer.Expect(js_lexer.TDefault)
	opts.isExport = false
	opts.isNameOptional = true
	valueLoc := p.lexer.Loc()

	if opts.decorators == nil && p.lexer.Token == js_lexer.TAt {
		opts.decorators = p.parseDecorators()
		if p.lexer.Token != js_lexer.TClass {
			p.lexer.Expected(js_lexer.TClass)
		}
	}

	var value js_ast.Stmt

	switch {
	case p.lexer.Token == js_lexer.TClass:
		value = p.parseClassStmt(valueLoc, opts)

	case opts.decorators != nil:
		p.lexer.Expected(js_lexer.TClass)

	case p.lexer.Token == js_lexer.TFunction:
		p.lexer.Next()
		value = p.parseFnStmt(valueLoc, opts, false /* isAsync */)

	case p.lexer.IsContextualKeyword("async"):
		asyncRange := p.lexer.Range()
		p.lexer.Next()

		if p.lexer.Token == js_lexer.TFunction && !p.lexer.HasNewlineBefore {
			p.lexer.Next()
			value = p.parseFnStmt(valueLoc, opts, true /* isAsync */)
			break
		}

		expr := p.parseSuffix(p.parseAsyncPrefixExpr(asyncRange, js_ast.LComma), js_ast.LComma)
		p.lexer.ExpectOrInsertSemicolon()
		value = js_ast.Stmt{Loc: valueLoc, Data: &js_ast.SExpr{Value: expr}}

	default:
		expr := p.parseExpr(js_ast.LComma)
		p.lexer.ExpectOrInsertSemicolon()
		value = js_ast.Stmt{Loc: valueLoc, Data: &js_ast.SExpr{Value: expr}}
	}

	return js_ast.Stmt{Loc: loc, Data: &js_ast.SExportDefault{Value: value}}
}

func (p *parser) parseImportStmt(loc logger.Loc) js_ast.Stmt {
	stmt := js_ast.SImport{NamespaceRef: js_ast.InvalidRef}

	switch p.lexer.Token {
	case js_lexer.TStringLiteral:
		// "import 'path'"

	case js_lexer.TAsterisk:
		// "import * as ns from 'path'"
		p.parseImportNamespace(&stmt)
		p.lexer.ExpectContextualKeyword("from")

	case js_lexer.TOpenBrace:
		// "import {item1, item2} from 'path'"
		items := p.parseImportClause()
		stmt.Items = &items
		p.lexer.ExpectContextualKeyword("from")

	case js_lexer.TIdentifier:
		// "import defaultItem from 'path'"
		nameLoc := p.lexer.Loc()
		stmt.DefaultName = &js_ast.LocRef{Loc: nameLoc, Ref: p.declareSymbol(js_ast.SymbolImport, nameLoc, p.lexer.Identifier)}
		p.lexer.Next()

		if p.lexer.Token == js_lexer.TComma {
			p.lexer.Next()
			switch p.lexer.Token {
			case js_lexer.TAsterisk:
				// "import defaultItem, * as ns from 'path'"
				p.parseImportNamespace(&stmt)

			case js_lexer.TOpenBrace:
				// "import defaultItem, {item1, item2} from 'path'"
				items := p.parseImportClause()
				stmt.Items = &items

			default:
				p.lexer.Unexpected()
			}
		}

		p.lexer.ExpectContextualKeyword("from")

	default:
		p.lexer.Unexpected()
	}

	stmt.Path = p.parsePath()
	p.lexer.ExpectOrInsertSemicolon()
	return js_ast.Stmt{Loc: loc, Data: &stmt}
}

func (p *parser) parseImportNamespace(stmt *js_ast.SImport) {
	p.lexer.Expect(js_lexer.TAsterisk)
	p.lexer.ExpectContextualKeyword("as")
	starLoc := p.lexer.Loc()
	if p.lexer.Token != js_lexer.TIdentifier {
		p.lexer.Expected(js_lexer.TIdentifier)
	}
	stmt.NamespaceRef = p.declareSymbol(js_ast.SymbolImport, starLoc, p.lexer.Identifier)
	stmt.StarNameLoc = &starLoc
	p.lexer.Next()
}

// The alias of a clause item may be any identifier, keyword, or string
func (p *parser) parseClauseAlias() string {
	if p.lexer.Token == js_lexer.TStringLiteral {
		alias := p.lexer.StringLiteral
		p.lexer.Next()
		return alias
	}
	if !p.lexer.IsIdentifierOrKeyword() {
		p.lexer.Expect(js_lexer.TIdentifier)
	}
	alias := p.lexer.Identifier
	p.lexer.Next()
	return alias
}

func (p *parser) parseImportClause() []js_ast.ClauseItem {
	items := []js_ast.ClauseItem{}
	p.lexer.Expect(js_lexer.TOpenBrace)

	for p.lexer.Token != js_lexer.TCloseBrace {
		isIdentifier := p.lexer.Token == js_lexer.TIdentifier
		aliasLoc := p.lexer.Loc()
		alias := p.parseClauseAlias()
		name := alias
		nameLoc := aliasLoc

		// "import { type as alias } from 'path'"
		if p.lexer.IsContextualKeyword("as") {
			p.lexer.Next()
			nameLoc = p.lexer.Loc()
			if p.lexer.Token != js_lexer.TIdentifier {
				p.lexer.Expected(js_lexer.TIdentifier)
			}
			name = p.lexer.Identifier
			p.lexer.Next()
		} else if !isIdentifier {
			// An import where the name is a keyword must have an alias
			p.lexer.ExpectedString("\"as\"")
		}

		items = append(items, js_ast.ClauseItem{
			Alias:        alias,
			AliasLoc:     aliasLoc,
			Name:         js_ast.LocRef{Loc: nameLoc, Ref: p.declareSymbol(js_ast.SymbolImport, nameLoc, name)},
			OriginalName: name,
		})

		if p.lexer.Token != js_lexer.TComma {
			break
		}
		p.lexer.Next()
	}

	p.lexer.Expect(js_lexer.TCloseBrace)
	return items
}

func (p *parser) parseExportClause() []js_ast.ClauseItem {
	items := []js_ast.ClauseItem{}
	p.lexer.Expect(js_lexer.TOpenBrace)

	for p.lexer.Token != js_lexer.TCloseBrace {
		nameLoc := p.lexer.Loc()
		name := p.parseClauseAlias()
		alias := name
		aliasLoc := nameLoc

		// "export { name as alias }"
		if p.lexer.IsContextualKeyword("as") {
			p.lexer.Next()
			aliasLoc = p.lexer.Loc()
			alias = p.parseClauseAlias()
		}

		items = append(items, js_ast.ClauseItem{
			Alias:        alias,
			AliasLoc:     aliasLoc,
			Name:         js_ast.LocRef{Loc: nameLoc, Ref: js_ast.InvalidRef},
			OriginalName: name,
		})

		if p.lexer.Token != js_lexer.TComma {
			break
		}
		p.lexer.Next()
	}

	p.lexer.Expect(js_lexer.TCloseBrace)
	return items
}

func (p *parser) parsePath() string {
	if p.lexer.Token != js_lexer.TStringLiteral {
		p.lexer.Expected(js_lexer.TStringLiteral)
	}
	path := p.lexer.StringLiteral
	p.lexer.Next()
	return path
}
