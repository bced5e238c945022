package js_parser

import (
	"fmt"

	"github.com/classhook/classhook/internal/js_ast"
	"github.com/classhook/classhook/internal/js_lexer"
	"github.com/classhook/classhook/internal/logger"
)

var binaryOps = map[js_lexer.T]js_ast.OpCode{
	js_lexer.TPlus:                              js_ast.BinOpAdd,
	js_lexer.TMinus:                             js_ast.BinOpSub,
	js_lexer.TAsterisk:                          js_ast.BinOpMul,
	js_lexer.TSlash:                             js_ast.BinOpDiv,
	js_lexer.TPercent:                           js_ast.BinOpRem,
	js_lexer.TAsteriskAsterisk:                  js_ast.BinOpPow,
	js_lexer.TLessThan:                          js_ast.BinOpLt,
	js_lexer.TLessThanEquals:                    js_ast.BinOpLe,
	js_lexer.TGreaterThan:                       js_ast.BinOpGt,
	js_lexer.TGreaterThanEquals:                 js_ast.BinOpGe,
	js_lexer.TIn:                                js_ast.BinOpIn,
	js_lexer.TInstanceof:                        js_ast.BinOpInstanceof,
	js_lexer.TLessThanLessThan:                  js_ast.BinOpShl,
	js_lexer.TGreaterThanGreaterThan:            js_ast.BinOpShr,
	js_lexer.TGreaterThanGreaterThanGreaterThan: js_ast.BinOpUShr,
	js_lexer.TEqualsEquals:                      js_ast.BinOpLooseEq,
	js_lexer.TExclamationEquals:                 js_ast.BinOpLooseNe,
	js_lexer.TEqualsEqualsEquals:                js_ast.BinOpStrictEq,
	js_lexer.TExclamationEqualsEquals:           js_ast.BinOpStrictNe,
	js_lexer.TQuestionQuestion:                  js_ast.BinOpNullishCoalescing,
	js_lexer.TBarBar:                            js_ast.BinOpLogicalOr,
	js_lexer.TAmpersandAmpersand:                js_ast.BinOpLogicalAnd,
	js_lexer.TBar:                               js_ast.BinOpBitwiseOr,
	js_lexer.TAmpersand:                         js_ast.BinOpBitwiseAnd,
	js_lexer.TCaret:                             js_ast.BinOpBitwiseXor,

	js_lexer.TEquals:                                  js_ast.BinOpAssign,
	js_lexer.TPlusEquals:                              js_ast.BinOpAddAssign,
	js_lexer.TMinusEquals:                             js_ast.BinOpSubAssign,
	js_lexer.TAsteriskEquals:                          js_ast.BinOpMulAssign,
	js_lexer.TSlashEquals:                             js_ast.BinOpDivAssign,
	js_lexer.TPercentEquals:                           js_ast.BinOpRemAssign,
	js_lexer.TAsteriskAsteriskEquals:                  js_ast.BinOpPowAssign,
	js_lexer.TLessThanLessThanEquals:                  js_ast.BinOpShlAssign,
	js_lexer.TGreaterThanGreaterThanEquals:            js_ast.BinOpShrAssign,
	js_lexer.TGreaterThanGreaterThanGreaterThanEquals: js_ast.BinOpUShrAssign,
	js_lexer.TBarEquals:                               js_ast.BinOpBitwiseOrAssign,
	js_lexer.TAmpersandEquals:                         js_ast.BinOpBitwiseAndAssign,
	js_lexer.TCaretEquals:                             js_ast.BinOpBitwiseXorAssign,
	js_lexer.TQuestionQuestionEquals:                  js_ast.BinOpNullishCoalescingAssign,
	js_lexer.TBarBarEquals:                            js_ast.BinOpLogicalOrAssign,
	js_lexer.TAmpersandAmpersandEquals:                js_ast.BinOpLogicalAndAssign,
}

var prefixOps = map[js_lexer.T]js_ast.OpCode{
	js_lexer.TPlus:        js_ast.UnOpPos,
	js_lexer.TMinus:       js_ast.UnOpNeg,
	js_lexer.TTilde:       js_ast.UnOpCpl,
	js_lexer.TExclamation: js_ast.UnOpNot,
	js_lexer.TVoid:        js_ast.UnOpVoid,
	js_lexer.TTypeof:      js_ast.UnOpTypeof,
	js_lexer.TDelete:      js_ast.UnOpDelete,
	js_lexer.TMinusMinus:  js_ast.UnOpPreDec,
	js_lexer.TPlusPlus:    js_ast.UnOpPreInc,
}

func (p *parser) parseExpr(level js_ast.L) js_ast.Expr {
	return p.parseSuffix(p.parsePrefix(level), level)
}

// Parses an expression where "in" is always an operator, such as inside
// brackets or parentheses
func (p *parser) parseExprAllowIn(level js_ast.L) js_ast.Expr {
	oldAllowIn := p.allowIn
	p.allowIn = true
	expr := p.parseExpr(level)
	p.allowIn = oldAllowIn
	return expr
}

func (p *parser) parsePrefix(level js_ast.L) js_ast.Expr {
	loc := p.lexer.Loc()

	switch p.lexer.Token {
	case js_lexer.TSuper:
		p.lexer.Next()
		switch p.lexer.Token {
		case js_lexer.TOpenParen, js_lexer.TDot, js_lexer.TOpenBracket:
		default:
			p.lexer.Unexpected()
		}
		return js_ast.Expr{Loc: loc, Data: &js_ast.ESuper{}}

	case js_lexer.TOpenParen:
		return p.parseParenExpr(loc, level, false /* isAsync */)

	case js_lexer.TFalse:
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EBoolean{Value: false}}

	case js_lexer.TTrue:
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EBoolean{Value: true}}

	case js_lexer.TNull:
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.ENull{}}

	case js_lexer.TThis:
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EThis{}}

	case js_lexer.TPrivateIdentifier:
		// "#foo in bar"
		name := p.lexer.Identifier
		p.lexer.Next()
		if p.lexer.Token != js_lexer.TIn || level >= js_ast.LCompare {
			p.lexer.Expected(js_lexer.TIn)
		}
		return js_ast.Expr{Loc: loc, Data: &js_ast.EPrivateIdentifier{Name: name}}

	case js_lexer.TIdentifier:
		name := p.lexer.Identifier
		raw := p.lexer.Raw()
		nameRange := p.lexer.Range()
		p.lexer.Next()

		// Handle async and await expressions
		switch {
		case raw == "async":
			return p.parseAsyncPrefixExpr(nameRange, level)

		case name == "await" && p.fnOrArrowDataParse.allowAwait:
			if raw != name {
				p.addRangeError(nameRange, "The keyword \"await\" cannot be escaped")
			}
			if level > js_ast.LPrefix {
				p.addRangeError(nameRange, "Cannot use an \"await\" expression here")
			}
			value := p.parseExpr(js_ast.LPrefix)
			return js_ast.Expr{Loc: loc, Data: &js_ast.EAwait{Value: value}}

		case name == "yield" && p.fnOrArrowDataParse.allowYield:
			if raw != name {
				p.addRangeError(nameRange, "The keyword \"yield\" cannot be escaped")
			}
			if level > js_ast.LAssign {
				p.addRangeError(nameRange, "Cannot use a \"yield\" expression here without parentheses")
			}
			return p.parseYieldExpr(loc)
		}

		// Handle the start of an arrow function
		if p.lexer.Token == js_lexer.TEqualsGreaterThan && level <= js_ast.LAssign {
			scope := p.pushScope(js_ast.ScopeFunction)
			arg := p.declareBinding(js_ast.SymbolHoisted, js_ast.Binding{Loc: loc}, name)
			arrow := p.parseArrowBody([]js_ast.Arg{{Binding: arg}}, fnOrArrowDataParse{})
			p.popScope()
			arrow.Scope = scope
			return js_ast.Expr{Loc: loc, Data: arrow}
		}

		return p.newIdentifierRef(loc, name)

	case js_lexer.TStringLiteral:
		value := p.lexer.StringLiteral
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EString{Value: value}}

	case js_lexer.TNoSubstitutionTemplateLiteral:
		head := p.lexer.RawTemplateContents()
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.ETemplate{HeadLoc: loc, HeadRaw: head}}

	case js_lexer.TTemplateHead:
		head := p.lexer.RawTemplateContents()
		parts := p.parseTemplateParts()
		return js_ast.Expr{Loc: loc, Data: &js_ast.ETemplate{HeadLoc: loc, HeadRaw: head, Parts: parts}}

	case js_lexer.TNumericLiteral:
		value := p.lexer.Number
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.ENumber{Value: value}}

	case js_lexer.TBigIntegerLiteral:
		value := p.lexer.Identifier
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EBigInt{Value: value}}

	case js_lexer.TSlash, js_lexer.TSlashEquals:
		p.lexer.ScanRegExp()
		value := p.lexer.Raw()
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.ERegExp{Value: value}}

	case js_lexer.TVoid, js_lexer.TTypeof, js_lexer.TDelete,
		js_lexer.TMinus, js_lexer.TPlus, js_lexer.TTilde, js_lexer.TExclamation,
		js_lexer.TMinusMinus, js_lexer.TPlusPlus:
		op := prefixOps[p.lexer.Token]
		p.lexer.Next()
		value := p.parseExpr(js_ast.LPrefix)
		if p.lexer.Token == js_lexer.TAsteriskAsterisk && op < js_ast.UnOpPreDec {
			p.lexer.Unexpected()
		}
		return js_ast.Expr{Loc: loc, Data: &js_ast.EUnary{Op: op, Value: value}}

	case js_lexer.TFunction:
		return p.parseFnExpr(loc, false /* isAsync */)

	case js_lexer.TClass:
		return p.parseClassExpr(loc, nil)

	case js_lexer.TAt:
		decorators := p.parseDecorators()
		if p.lexer.Token != js_lexer.TClass {
			p.lexer.Expected(js_lexer.TClass)
		}
		return p.parseClassExpr(loc, decorators)

	case js_lexer.TNew:
		p.lexer.Next()

		// "new.target"
		if p.lexer.Token == js_lexer.TDot {
			p.lexer.Next()
			if !p.lexer.IsContextualKeyword("target") {
				p.lexer.ExpectedString("\"target\"")
			}
			p.lexer.Next()
			return js_ast.Expr{Loc: loc, Data: &js_ast.ENewTarget{}}
		}

		target := p.parseExpr(js_ast.LMember)
		args := []js_ast.Expr{}
		if p.lexer.Token == js_lexer.TOpenParen {
			args = p.parseCallArgs()
		}
		return js_ast.Expr{Loc: loc, Data: &js_ast.ENew{Target: target, Args: args}}

	case js_lexer.TOpenBracket:
		p.lexer.Next()
		isSingleLine := !p.lexer.HasNewlineBefore
		items := []js_ast.Expr{}
		oldAllowIn := p.allowIn
		p.allowIn = true

		for p.lexer.Token != js_lexer.TCloseBracket {
			switch p.lexer.Token {
			case js_lexer.TComma:
				items = append(items, js_ast.Expr{Loc: p.lexer.Loc(), Data: &js_ast.EMissing{}})

			case js_lexer.TDotDotDot:
				dotsLoc := p.lexer.Loc()
				p.lexer.Next()
				value := p.parseExpr(js_ast.LComma)
				items = append(items, js_ast.Expr{Loc: dotsLoc, Data: &js_ast.ESpread{Value: value}})

			default:
				items = append(items, p.parseExpr(js_ast.LComma))
			}

			if p.lexer.Token != js_lexer.TComma {
				break
			}
			p.lexer.Next()
			if p.lexer.HasNewlineBefore {
				isSingleLine = false
			}
		}

		if p.lexer.HasNewlineBefore {
			isSingleLine = false
		}
		p.allowIn = oldAllowIn
		p.lexer.Expect(js_lexer.TCloseBracket)
		return js_ast.Expr{Loc: loc, Data: &js_ast.EArray{Items: items, IsSingleLine: isSingleLine}}

	case js_lexer.TOpenBrace:
		p.lexer.Next()
		isSingleLine := !p.lexer.HasNewlineBefore
		properties := []js_ast.Property{}
		oldAllowIn := p.allowIn
		p.allowIn = true

		for p.lexer.Token != js_lexer.TCloseBrace {
			if p.lexer.Token == js_lexer.TDotDotDot {
				p.lexer.Next()
				value := p.parseExpr(js_ast.LComma)
				properties = append(properties, js_ast.Property{Kind: js_ast.PropertySpread, ValueOrNil: value})
			} else {
				properties = append(properties, p.parseProperty(js_ast.PropertyNormal, propertyOpts{}))
			}

			if p.lexer.Token != js_lexer.TComma {
				break
			}
			p.lexer.Next()
			if p.lexer.HasNewlineBefore {
				isSingleLine = false
			}
		}

		if p.lexer.HasNewlineBefore {
			isSingleLine = false
		}
		p.allowIn = oldAllowIn
		p.lexer.Expect(js_lexer.TCloseBrace)
		return js_ast.Expr{Loc: loc, Data: &js_ast.EObject{Properties: properties, IsSingleLine: isSingleLine}}

	case js_lexer.TImport:
		p.lexer.Next()
		return p.parseImportExpr(loc)
	}

	p.lexer.Unexpected()
	return js_ast.Expr{}
}

// Parses what follows "import" in an expression: "import(path)" or
// "import.meta"
func (p *parser) parseImportExpr(loc logger.Loc) js_ast.Expr {
	if p.lexer.Token == js_lexer.TDot {
		p.lexer.Next()
		if !p.lexer.IsContextualKeyword("meta") {
			p.lexer.ExpectedString("\"meta\"")
		}
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EImportMeta{}}
	}

	p.lexer.Expect(js_lexer.TOpenParen)
	value := p.parseExprAllowIn(js_ast.LComma)
	if p.lexer.Token == js_lexer.TComma {
		p.lexer.Next()
	}
	p.lexer.Expect(js_lexer.TCloseParen)
	return js_ast.Expr{Loc: loc, Data: &js_ast.EImportCall{Expr: value}}
}

func (p *parser) parseYieldExpr(loc logger.Loc) js_ast.Expr {
	isStar := false
	if p.lexer.Token == js_lexer.TAsterisk && !p.lexer.HasNewlineBefore {
		isStar = true
		p.lexer.Next()
	}

	var valueOrNil js_ast.Expr

	// The yield expression only has a value in certain cases
	switch p.lexer.Token {
	case js_lexer.TCloseBrace, js_lexer.TCloseBracket, js_lexer.TCloseParen,
		js_lexer.TColon, js_lexer.TComma, js_lexer.TSemicolon, js_lexer.TEndOfFile:

	default:
		if isStar || !p.lexer.HasNewlineBefore {
			valueOrNil = p.parseExpr(js_ast.LYield)
		}
	}

	return js_ast.Expr{Loc: loc, Data: &js_ast.EYield{ValueOrNil: valueOrNil, IsStar: isStar}}
}

// This handles everything that can follow the "async" identifier
func (p *parser) parseAsyncPrefixExpr(asyncRange logger.Range, level js_ast.L) js_ast.Expr {
	if !p.lexer.HasNewlineBefore {
		switch p.lexer.Token {
		// "async function() {}"
		case js_lexer.TFunction:
			return p.parseFnExpr(asyncRange.Loc, true /* isAsync */)

		// "async x => {}"
		case js_lexer.TIdentifier:
			if level <= js_ast.LAssign {
				scope := p.pushScope(js_ast.ScopeFunction)
				argLoc := p.lexer.Loc()
				arg := p.declareBinding(js_ast.SymbolHoisted, js_ast.Binding{Loc: argLoc}, p.lexer.Identifier)
				p.lexer.Next()
				if p.lexer.Token != js_lexer.TEqualsGreaterThan {
					p.lexer.Expected(js_lexer.TEqualsGreaterThan)
				}
				arrow := p.parseArrowBody([]js_ast.Arg{{Binding: arg}}, fnOrArrowDataParse{allowAwait: true})
				p.popScope()
				arrow.IsAsync = true
				arrow.Scope = scope
				return js_ast.Expr{Loc: asyncRange.Loc, Data: arrow}
			}

		// "async()" or "async(x) => {}"
		case js_lexer.TOpenParen:
			return p.parseParenExpr(asyncRange.Loc, level, true /* isAsync */)
		}
	}

	// "async => {}"
	if p.lexer.Token == js_lexer.TEqualsGreaterThan && level <= js_ast.LAssign {
		scope := p.pushScope(js_ast.ScopeFunction)
		arg := p.declareBinding(js_ast.SymbolHoisted, js_ast.Binding{Loc: asyncRange.Loc}, "async")
		arrow := p.parseArrowBody([]js_ast.Arg{{Binding: arg}}, fnOrArrowDataParse{})
		p.popScope()
		arrow.Scope = scope
		return js_ast.Expr{Loc: asyncRange.Loc, Data: arrow}
	}

	// Otherwise "async" is just an identifier
	return p.newIdentifierRef(asyncRange.Loc, "async")
}

// This assumes the caller has already parsed the "async" keyword, if any
func (p *parser) parseParenExpr(loc logger.Loc, level js_ast.L, isAsync bool) js_ast.Expr {
	// Push a scope in case this turns out to be the argument list of an arrow
	// function. It's flattened away again if it doesn't.
	scope := p.pushScope(js_ast.ScopeFunction)

	items := []js_ast.Expr{}
	spreadRange := logger.Range{}
	oldAllowIn := p.allowIn
	p.allowIn = true

	p.lexer.Expect(js_lexer.TOpenParen)
	for p.lexer.Token != js_lexer.TCloseParen {
		itemLoc := p.lexer.Loc()
		isSpread := p.lexer.Token == js_lexer.TDotDotDot
		if isSpread {
			spreadRange = p.lexer.Range()
			p.lexer.Next()
		}

		item := p.parseExpr(js_ast.LComma)
		if isSpread {
			item = js_ast.Expr{Loc: itemLoc, Data: &js_ast.ESpread{Value: item}}
		}
		items = append(items, item)

		if p.lexer.Token != js_lexer.TComma {
			break
		}
		p.lexer.Next()
	}
	p.lexer.Expect(js_lexer.TCloseParen)
	p.allowIn = oldAllowIn

	// Are these arguments to an arrow function?
	if p.lexer.Token == js_lexer.TEqualsGreaterThan {
		if level > js_ast.LAssign {
			p.lexer.Unexpected()
		}

		args := []js_ast.Arg{}
		hasRestArg := false
		for i, item := range items {
			if spread, ok := item.Data.(*js_ast.ESpread); ok {
				if i+1 != len(items) {
					p.addRangeError(logger.Range{Loc: item.Loc, Len: 3}, "Expected \")\" but found \",\"")
				}
				item = spread.Value
				hasRestArg = true
			}
			binding, initializerOrNil := p.convertExprToBindingAndInitializer(item)
			args = append(args, js_ast.Arg{Binding: binding, DefaultOrNil: initializerOrNil})
		}

		arrow := p.parseArrowBody(args, fnOrArrowDataParse{allowAwait: isAsync})
		p.popScope()
		arrow.IsAsync = isAsync
		arrow.HasRestArg = hasRestArg
		arrow.Scope = scope
		return js_ast.Expr{Loc: loc, Data: arrow}
	}

	p.popAndFlattenScope(scope)

	// "async(a, b)" is a call
	if isAsync {
		target := p.newIdentifierRef(loc, "async")
		return js_ast.Expr{Loc: loc, Data: &js_ast.ECall{Target: target, Args: items}}
	}

	// "()" is only valid as arrow function arguments
	if len(items) == 0 {
		p.lexer.Expected(js_lexer.TEqualsGreaterThan)
	}

	// Spread is only valid in arrow function arguments
	if spreadRange.Len > 0 {
		p.addRangeError(spreadRange, "Unexpected \"...\"")
		panic(js_lexer.LexerPanic{})
	}

	// Parenthesized expressions are joined with the comma operator
	value := items[0]
	for _, item := range items[1:] {
		value = js_ast.Expr{Loc: value.Loc, Data: &js_ast.EBinary{Op: js_ast.BinOpComma, Left: value, Right: item}}
	}
	return value
}

func (p *parser) parseArrowBody(args []js_ast.Arg, data fnOrArrowDataParse) *js_ast.EArrow {
	arrowRange := p.lexer.Range()

	// Newlines are not allowed before "=>"
	if p.lexer.HasNewlineBefore {
		p.addRangeError(arrowRange, "Unexpected newline before \"=>\"")
		panic(js_lexer.LexerPanic{})
	}

	p.lexer.Expect(js_lexer.TEqualsGreaterThan)
	data.isReturnAllowed = true

	if p.lexer.Token == js_lexer.TOpenBrace {
		body := p.parseFnBody(data)
		p.afterArrowBodyLoc = p.lexer.Loc()
		return &js_ast.EArrow{Args: args, Body: body}
	}

	oldFnOrArrowData := p.fnOrArrowDataParse
	p.fnOrArrowDataParse = data
	expr := p.parseExpr(js_ast.LComma)
	p.fnOrArrowDataParse = oldFnOrArrowData

	return &js_ast.EArrow{
		Args:       args,
		Body:       js_ast.FnBody{Loc: expr.Loc, Stmts: []js_ast.Stmt{{Loc: expr.Loc, Data: &js_ast.SReturn{ValueOrNil: expr}}}},
		PreferExpr: true,
	}
}

func (p *parser) convertExprToBindingAndInitializer(expr js_ast.Expr) (js_ast.Binding, js_ast.Expr) {
	var initializerOrNil js_ast.Expr
	if assign, ok := expr.Data.(*js_ast.EBinary); ok && assign.Op == js_ast.BinOpAssign {
		initializerOrNil = assign.Right
		expr = assign.Left
	}
	return p.convertExprToBinding(expr), initializerOrNil
}

// Expressions parsed before "=>" was seen are turned into argument bindings
// here. Any identifier that becomes a binding stops being a reference.
func (p *parser) convertExprToBinding(expr js_ast.Expr) js_ast.Binding {
	switch e := expr.Data.(type) {
	case *js_ast.EMissing:
		return js_ast.Binding{Loc: expr.Loc, Data: &js_ast.BMissing{}}

	case *js_ast.EIdentifier:
		name := p.discardIdentifierRef(e)
		return p.declareBinding(js_ast.SymbolHoisted, js_ast.Binding{Loc: expr.Loc}, name)

	case *js_ast.EArray:
		items := []js_ast.ArrayBinding{}
		hasSpread := false
		for i, item := range e.Items {
			if spread, ok := item.Data.(*js_ast.ESpread); ok {
				if i+1 != len(e.Items) {
					break
				}
				item = spread.Value
				hasSpread = true
			}
			binding, initializerOrNil := p.convertExprToBindingAndInitializer(item)
			items = append(items, js_ast.ArrayBinding{Binding: binding, DefaultValueOrNil: initializerOrNil})
		}
		return js_ast.Binding{Loc: expr.Loc, Data: &js_ast.BArray{Items: items, HasSpread: hasSpread}}

	case *js_ast.EObject:
		properties := []js_ast.PropertyBinding{}
		for _, property := range e.Properties {
			if property.IsMethod || property.Kind == js_ast.PropertyGet || property.Kind == js_ast.PropertySet {
				p.addRangeError(logger.Range{Loc: property.Key.Loc}, "Invalid binding pattern")
				continue
			}
			binding, initializerOrNil := p.convertExprToBindingAndInitializer(property.ValueOrNil)
			if initializerOrNil.Data == nil {
				initializerOrNil = property.InitializerOrNil
			}
			properties = append(properties, js_ast.PropertyBinding{
				Key:               property.Key,
				Value:             binding,
				DefaultValueOrNil: initializerOrNil,
				IsComputed:        property.IsComputed,
				IsSpread:          property.Kind == js_ast.PropertySpread,
			})
		}
		return js_ast.Binding{Loc: expr.Loc, Data: &js_ast.BObject{Properties: properties}}
	}

	p.addRangeError(logger.Range{Loc: expr.Loc}, "Invalid binding pattern")
	return js_ast.Binding{Loc: expr.Loc, Data: &js_ast.BMissing{}}
}

func (p *parser) parseSuffix(left js_ast.Expr, level js_ast.L) js_ast.Expr {
	for {
		// An arrow function with a block body can only be followed by a comma
		if p.lexer.Loc() == p.afterArrowBodyLoc {
			for p.lexer.Token == js_lexer.TComma && level < js_ast.LComma {
				p.lexer.Next()
				right := p.parseExpr(js_ast.LComma)
				left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EBinary{Op: js_ast.BinOpComma, Left: left, Right: right}}
			}
			return left
		}

		switch p.lexer.Token {
		case js_lexer.TDot:
			p.lexer.Next()
			left = p.parseMemberName(left, false /* isOptionalChain */)

		case js_lexer.TQuestionDot:
			p.lexer.Next()

			switch p.lexer.Token {
			case js_lexer.TOpenBracket:
				p.lexer.Next()
				index := p.parseExprAllowIn(js_ast.LLowest)
				p.lexer.Expect(js_lexer.TCloseBracket)
				left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EIndex{Target: left, Index: index, IsOptionalChain: true}}

			case js_lexer.TOpenParen:
				if level >= js_ast.LCall {
					return left
				}
				args := p.parseCallArgs()
				left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.ECall{Target: left, Args: args, IsOptionalChain: true}}

			default:
				left = p.parseMemberName(left, true /* isOptionalChain */)
			}

		case js_lexer.TNoSubstitutionTemplateLiteral:
			head := p.lexer.RawTemplateContents()
			headLoc := p.lexer.Loc()
			p.lexer.Next()
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.ETemplate{TagOrNil: left, HeadLoc: headLoc, HeadRaw: head}}

		case js_lexer.TTemplateHead:
			head := p.lexer.RawTemplateContents()
			headLoc := p.lexer.Loc()
			parts := p.parseTemplateParts()
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.ETemplate{TagOrNil: left, HeadLoc: headLoc, HeadRaw: head, Parts: parts}}

		case js_lexer.TOpenBracket:
			p.lexer.Next()
			index := p.parseExprAllowIn(js_ast.LLowest)
			p.lexer.Expect(js_lexer.TCloseBracket)
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EIndex{Target: left, Index: index}}

		case js_lexer.TOpenParen:
			if level >= js_ast.LCall {
				return left
			}
			args := p.parseCallArgs()
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.ECall{Target: left, Args: args}}

		case js_lexer.TQuestion:
			if level >= js_ast.LConditional {
				return left
			}
			p.lexer.Next()
			yes := p.parseExprAllowIn(js_ast.LComma)
			p.lexer.Expect(js_lexer.TColon)
			no := p.parseExpr(js_ast.LComma)
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EIf{Test: left, Yes: yes, No: no}}

		case js_lexer.TMinusMinus, js_lexer.TPlusPlus:
			if p.lexer.HasNewlineBefore || level >= js_ast.LPostfix {
				return left
			}
			op := js_ast.UnOpPostDec
			if p.lexer.Token == js_lexer.TPlusPlus {
				op = js_ast.UnOpPostInc
			}
			p.lexer.Next()
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EUnary{Op: op, Value: left}}

		case js_lexer.TComma:
			if level >= js_ast.LComma {
				return left
			}
			p.lexer.Next()
			right := p.parseExpr(js_ast.LComma)
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EBinary{Op: js_ast.BinOpComma, Left: left, Right: right}}

		default:
			op, ok := binaryOps[p.lexer.Token]
			if !ok || (op == js_ast.BinOpIn && !p.allowIn) {
				return left
			}
			opLevel := js_ast.OpTable[op].Level
			if level >= opLevel {
				return left
			}
			p.lexer.Next()

			// Right-associative operators parse their right side at one level
			// lower so that another operator of the same level is consumed
			rightLevel := opLevel
			if op.IsRightAssociative() {
				rightLevel = opLevel - 1
			}
			right := p.parseExpr(rightLevel)
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EBinary{Op: op, Left: left, Right: right}}
		}
	}
}

func (p *parser) parseMemberName(target js_ast.Expr, isOptionalChain bool) js_ast.Expr {
	nameLoc := p.lexer.Loc()

	// "a.#b"
	if p.lexer.Token == js_lexer.TPrivateIdentifier {
		name := p.lexer.Identifier
		p.lexer.Next()
		return js_ast.Expr{Loc: target.Loc, Data: &js_ast.EIndex{
			Target:          target,
			Index:           js_ast.Expr{Loc: nameLoc, Data: &js_ast.EPrivateIdentifier{Name: name}},
			IsOptionalChain: isOptionalChain,
		}}
	}

	if !p.lexer.IsIdentifierOrKeyword() {
		p.lexer.Expect(js_lexer.TIdentifier)
	}
	name := p.lexer.Identifier
	p.lexer.Next()
	return js_ast.Expr{Loc: target.Loc, Data: &js_ast.EDot{
		Target:          target,
		Name:            name,
		NameLoc:         nameLoc,
		IsOptionalChain: isOptionalChain,
	}}
}

func (p *parser) parseTemplateParts() []js_ast.TemplatePart {
	parts := []js_ast.TemplatePart{}
	oldAllowIn := p.allowIn
	p.allowIn = true

	for {
		p.lexer.Next()
		value := p.parseExpr(js_ast.LLowest)
		tailLoc := p.lexer.Loc()
		p.lexer.RescanCloseBraceAsTemplateToken()
		tailRaw := p.lexer.RawTemplateContents()
		parts = append(parts, js_ast.TemplatePart{Value: value, TailLoc: tailLoc, TailRaw: tailRaw})
		if p.lexer.Token == js_lexer.TTemplateTail {
			p.lexer.Next()
			break
		}
	}

	p.allowIn = oldAllowIn
	return parts
}

func (p *parser) parseCallArgs() []js_ast.Expr {
	oldAllowIn := p.allowIn
	p.allowIn = true

	args := []js_ast.Expr{}
	p.lexer.Expect(js_lexer.TOpenParen)

	for p.lexer.Token != js_lexer.TCloseParen {
		loc := p.lexer.Loc()
		isSpread := p.lexer.Token == js_lexer.TDotDotDot
		if isSpread {
			p.lexer.Next()
		}
		arg := p.parseExpr(js_ast.LComma)
		if isSpread {
			arg = js_ast.Expr{Loc: loc, Data: &js_ast.ESpread{Value: arg}}
		}
		args = append(args, arg)
		if p.lexer.Token != js_lexer.TComma {
			break
		}
		p.lexer.Next()
	}

	p.lexer.Expect(js_lexer.TCloseParen)
	p.allowIn = oldAllowIn
	return args
}

// This assumes the current token is "function"
func (p *parser) parseFnExpr(loc logger.Loc, isAsync bool) js_ast.Expr {
	p.lexer.Expect(js_lexer.TFunction)
	isGenerator := p.lexer.Token == js_lexer.TAsterisk
	if isGenerator {
		p.lexer.Next()
	}

	// The name of a function expression is only visible inside the function
	scope := p.pushScope(js_ast.ScopeFunction)
	var name *js_ast.LocRef
	if p.lexer.Token == js_lexer.TIdentifier {
		nameLoc := p.lexer.Loc()
		name = &js_ast.LocRef{Loc: nameLoc, Ref: p.declareSymbol(js_ast.SymbolHoistedFunction, nameLoc, p.lexer.Identifier)}
		p.lexer.Next()
	}

	fn := js_ast.Fn{Name: name, Scope: scope, IsAsync: isAsync, IsGenerator: isGenerator}
	p.parseFnArgsAndBody(&fn)
	p.popScope()
	return js_ast.Expr{Loc: loc, Data: &js_ast.EFunction{Fn: fn}}
}

// The function scope must already be pushed
func (p *parser) parseFnArgsAndBody(fn *js_ast.Fn) {
	data := fnOrArrowDataParse{
		allowAwait:      fn.IsAsync,
		allowYield:      fn.IsGenerator,
		isReturnAllowed: true,
	}

	oldFnOrArrowData := p.fnOrArrowDataParse
	oldAllowIn := p.allowIn
	p.fnOrArrowDataParse = data
	p.allowIn = true

	p.lexer.Expect(js_lexer.TOpenParen)
	for p.lexer.Token != js_lexer.TCloseParen {
		if p.lexer.Token == js_lexer.TDotDotDot {
			p.lexer.Next()
			fn.HasRestArg = true
		}

		binding := p.parseBinding(js_ast.SymbolHoisted)
		var defaultOrNil js_ast.Expr
		if !fn.HasRestArg && p.lexer.Token == js_lexer.TEquals {
			p.lexer.Next()
			defaultOrNil = p.parseExpr(js_ast.LComma)
		}
		fn.Args = append(fn.Args, js_ast.Arg{Binding: binding, DefaultOrNil: defaultOrNil})

		// The rest argument must be last
		if p.lexer.Token != js_lexer.TComma || fn.HasRestArg {
			break
		}
		p.lexer.Next()
	}
	p.lexer.Expect(js_lexer.TCloseParen)

	p.allowIn = oldAllowIn
	p.fnOrArrowDataParse = oldFnOrArrowData
	fn.Body = p.parseFnBody(data)
}

func (p *parser) parseBinding(kind js_ast.SymbolKind) js_ast.Binding {
	loc := p.lexer.Loc()

	switch p.lexer.Token {
	case js_lexer.TIdentifier:
		name := p.lexer.Identifier
		if js_lexer.StrictModeReservedWords[name] {
			p.addRangeError(p.lexer.Range(), fmt.Sprintf("%q is a reserved word and cannot be used in strict mode", name))
		}
		p.lexer.Next()
		return p.declareBinding(kind, js_ast.Binding{Loc: loc}, name)

	case js_lexer.TOpenBracket:
		p.lexer.Next()
		items := []js_ast.ArrayBinding{}
		hasSpread := false

		for p.lexer.Token != js_lexer.TCloseBracket {
			if p.lexer.Token == js_lexer.TComma {
				items = append(items, js_ast.ArrayBinding{Binding: js_ast.Binding{Loc: p.lexer.Loc(), Data: &js_ast.BMissing{}}})
			} else {
				if p.lexer.Token == js_lexer.TDotDotDot {
					p.lexer.Next()
					hasSpread = true
				}

				binding := p.parseBinding(kind)
				var defaultValueOrNil js_ast.Expr
				if !hasSpread && p.lexer.Token == js_lexer.TEquals {
					p.lexer.Next()
					defaultValueOrNil = p.parseExpr(js_ast.LComma)
				}
				items = append(items, js_ast.ArrayBinding{Binding: binding, DefaultValueOrNil: defaultValueOrNil})

				// The spread must be the last item
				if hasSpread {
					break
				}
			}

			if p.lexer.Token != js_lexer.TComma {
				break
			}
			p.lexer.Next()
		}

		p.lexer.Expect(js_lexer.TCloseBracket)
		return js_ast.Binding{Loc: loc, Data: &js_ast.BArray{Items: items, HasSpread: hasSpread}}

	case js_lexer.TOpenBrace:
		p.lexer.Next()
		properties := []js_ast.PropertyBinding{}

		for p.lexer.Token != js_lexer.TCloseBrace {
			properties = append(properties, p.parsePropertyBinding(kind))

			// The spread must be the last property
			if p.lexer.Token != js_lexer.TComma || properties[len(properties)-1].IsSpread {
				break
			}
			p.lexer.Next()
		}

		p.lexer.Expect(js_lexer.TCloseBrace)
		return js_ast.Binding{Loc: loc, Data: &js_ast.BObject{Properties: properties}}
	}

	p.lexer.Expect(js_lexer.TIdentifier)
	return js_ast.Binding{}
}

func (p *parser) parsePropertyBinding(kind js_ast.SymbolKind) js_ast.PropertyBinding {
	var key js_ast.Expr
	var value js_ast.Binding
	var defaultValueOrNil js_ast.Expr
	loc := p.lexer.Loc()
	isComputed := false

	switch p.lexer.Token {
	case js_lexer.TDotDotDot:
		p.lexer.Next()
		if p.lexer.Token != js_lexer.TIdentifier {
			p.lexer.Expected(js_lexer.TIdentifier)
		}
		value = p.parseBinding(kind)
		return js_ast.PropertyBinding{
			Key:      js_ast.Expr{Loc: loc, Data: &js_ast.EMissing{}},
			Value:    value,
			IsSpread: true,
		}

	case js_lexer.TNumericLiteral:
		key = js_ast.Expr{Loc: loc, Data: &js_ast.ENumber{Value: p.lexer.Number}}
		p.lexer.Next()

	case js_lexer.TStringLiteral:
		key = js_ast.Expr{Loc: loc, Data: &js_ast.EString{Value: p.lexer.StringLiteral}}
		p.lexer.Next()

	case js_lexer.TBigIntegerLiteral:
		key = js_ast.Expr{Loc: loc, Data: &js_ast.EBigInt{Value: p.lexer.Identifier}}
		p.lexer.Next()

	case js_lexer.TOpenBracket:
		isComputed = true
		p.lexer.Next()
		key = p.parseExprAllowIn(js_ast.LComma)
		p.lexer.Expect(js_lexer.TCloseBracket)

	default:
		name := p.lexer.Identifier
		isIdentifier := p.lexer.Token == js_lexer.TIdentifier
		if !p.lexer.IsIdentifierOrKeyword() {
			p.lexer.Expect(js_lexer.TIdentifier)
		}
		p.lexer.Next()
		key = js_ast.Expr{Loc: loc, Data: &js_ast.EString{Value: name}}

		// "{ a }" and "{ a = 1 }"
		if p.lexer.Token != js_lexer.TColon {
			if !isIdentifier {
				p.lexer.Expect(js_lexer.TColon)
			}
			value = p.declareBinding(kind, js_ast.Binding{Loc: loc}, name)
			if p.lexer.Token == js_lexer.TEquals {
				p.lexer.Next()
				defaultValueOrNil = p.parseExpr(js_ast.LComma)
			}
			return js_ast.PropertyBinding{Key: key, Value: value, DefaultValueOrNil: defaultValueOrNil}
		}
	}

	p.lexer.Expect(js_lexer.TColon)
	value = p.parseBinding(kind)
	if p.lexer.Token == js_lexer.TEquals {
		p.lexer.Next()
		defaultValueOrNil = p.parseExpr(js_ast.LComma)
	}

	return js_ast.PropertyBinding{
		Key:               key,
		Value:             value,
		DefaultValueOrNil: defaultValueOrNil,
		IsComputed:        isComputed,
	}
}

type propertyOpts struct {
	decorators  []js_ast.Expr
	isAsync     bool
	isGenerator bool
	isClass     bool
	isStatic    bool
}

func (p *parser) parseProperty(kind js_ast.PropertyKind, opts propertyOpts) js_ast.Property {
	var key js_ast.Expr
	keyLoc := p.lexer.Loc()
	isComputed := false

	switch p.lexer.Token {
	case js_lexer.TNumericLiteral:
		key = js_ast.Expr{Loc: keyLoc, Data: &js_ast.ENumber{Value: p.lexer.Number}}
		p.lexer.Next()

	case js_lexer.TStringLiteral:
		key = js_ast.Expr{Loc: keyLoc, Data: &js_ast.EString{Value: p.lexer.StringLiteral}}
		p.lexer.Next()

	case js_lexer.TBigIntegerLiteral:
		key = js_ast.Expr{Loc: keyLoc, Data: &js_ast.EBigInt{Value: p.lexer.Identifier}}
		p.lexer.Next()

	case js_lexer.TPrivateIdentifier:
		if !opts.isClass {
			p.lexer.Unexpected()
		}
		key = js_ast.Expr{Loc: keyLoc, Data: &js_ast.EPrivateIdentifier{Name: p.lexer.Identifier}}
		p.lexer.Next()

	case js_lexer.TOpenBracket:
		isComputed = true
		p.lexer.Next()
		key = p.parseExprAllowIn(js_ast.LComma)
		p.lexer.Expect(js_lexer.TCloseBracket)

	case js_lexer.TAsterisk:
		if kind != js_ast.PropertyNormal || opts.isGenerator {
			p.lexer.Unexpected()
		}
		p.lexer.Next()
		opts.isGenerator = true
		return p.parseProperty(js_ast.PropertyNormal, opts)

	default:
		name := p.lexer.Identifier
		raw := p.lexer.Raw()
		isIdentifier := p.lexer.Token == js_lexer.TIdentifier
		if !p.lexer.IsIdentifierOrKeyword() {
			p.lexer.Expect(js_lexer.TIdentifier)
		}
		p.lexer.Next()

		// Support contextual keywords
		if kind == js_ast.PropertyNormal && !opts.isGenerator && !opts.isAsync && raw == name {
			// Does the following token look like a key?
			couldBeModifierKeyword := p.lexer.IsIdentifierOrKeyword()
			if !couldBeModifierKeyword {
				switch p.lexer.Token {
				case js_lexer.TOpenBracket, js_lexer.TNumericLiteral, js_lexer.TStringLiteral,
					js_lexer.TAsterisk, js_lexer.TPrivateIdentifier, js_lexer.TBigIntegerLiteral:
					couldBeModifierKeyword = true
				}
			}

			// If so, check for a modifier keyword
			if couldBeModifierKeyword {
				switch name {
				case "get":
					return p.parseProperty(js_ast.PropertyGet, opts)

				case "set":
					return p.parseProperty(js_ast.PropertySet, opts)

				case "async":
					if !p.lexer.HasNewlineBefore {
						opts.isAsync = true
						return p.parseProperty(kind, opts)
					}

				case "static":
					if opts.isClass && !opts.isStatic {
						opts.isStatic = true
						return p.parseProperty(kind, opts)
					}
				}
			} else if name == "static" && p.lexer.Token == js_lexer.TOpenBrace && opts.isClass && !opts.isStatic {
				return p.parseClassStaticBlock(opts)
			}
		}

		key = js_ast.Expr{Loc: keyLoc, Data: &js_ast.EString{Value: name}}

		// "{ a }" or "{ a = 1 }", where the latter is only valid as a pattern
		if !opts.isClass && kind == js_ast.PropertyNormal && !opts.isAsync && !opts.isGenerator &&
			p.lexer.Token != js_lexer.TColon && p.lexer.Token != js_lexer.TOpenParen {
			if !isIdentifier {
				p.lexer.Expect(js_lexer.TColon)
			}
			value := p.newIdentifierRef(keyLoc, name)
			var initializerOrNil js_ast.Expr
			if p.lexer.Token == js_lexer.TEquals {
				p.lexer.Next()
				initializerOrNil = p.parseExpr(js_ast.LComma)
			}
			return js_ast.Property{
				Kind:             kind,
				Key:              key,
				ValueOrNil:       value,
				InitializerOrNil: initializerOrNil,
				WasShorthand:     true,
			}
		}
	}

	// Class fields
	if opts.isClass && kind == js_ast.PropertyNormal && !opts.isAsync && !opts.isGenerator && p.lexer.Token != js_lexer.TOpenParen {
		var initializerOrNil js_ast.Expr
		if p.lexer.Token == js_lexer.TEquals {
			p.lexer.Next()

			// Field initializers behave like method bodies without arguments
			oldFnOrArrowData := p.fnOrArrowDataParse
			p.fnOrArrowDataParse = fnOrArrowDataParse{}
			initializerOrNil = p.parseExpr(js_ast.LComma)
			p.fnOrArrowDataParse = oldFnOrArrowData
		}
		p.lexer.ExpectOrInsertSemicolon()
		return js_ast.Property{
			Decorators:       opts.decorators,
			Key:              key,
			InitializerOrNil: initializerOrNil,
			IsComputed:       isComputed,
			IsStatic:         opts.isStatic,
		}
	}

	// Methods, getters, and setters
	if p.lexer.Token == js_lexer.TOpenParen || kind != js_ast.PropertyNormal || opts.isClass || opts.isAsync || opts.isGenerator {
		fnLoc := p.lexer.Loc()
		scope := p.pushScope(js_ast.ScopeFunction)
		fn := js_ast.Fn{Scope: scope, IsAsync: opts.isAsync, IsGenerator: opts.isGenerator}
		p.parseFnArgsAndBody(&fn)
		p.popScope()

		switch kind {
		case js_ast.PropertyGet:
			if len(fn.Args) > 0 {
				p.addRangeError(logger.Range{Loc: fn.Args[0].Binding.Loc}, "Getter "+p.keyNameForError(key)+" must have zero arguments")
			}

		case js_ast.PropertySet:
			if len(fn.Args) != 1 {
				p.addRangeError(logger.Range{Loc: fnLoc, Len: 1}, "Setter "+p.keyNameForError(key)+" must have exactly one argument")
			}
		}

		return js_ast.Property{
			Decorators: opts.decorators,
			Kind:       kind,
			Key:        key,
			ValueOrNil: js_ast.Expr{Loc: fnLoc, Data: &js_ast.EFunction{Fn: fn}},
			IsComputed: isComputed,
			IsMethod:   kind == js_ast.PropertyNormal,
			IsStatic:   opts.isStatic,
		}
	}

	// "key: value"
	p.lexer.Expect(js_lexer.TColon)
	value := p.parseExpr(js_ast.LComma)
	return js_ast.Property{
		Kind:       kind,
		Key:        key,
		ValueOrNil: value,
		IsComputed: isComputed,
	}
}

func (p *parser) keyNameForError(key js_ast.Expr) string {
	switch k := key.Data.(type) {
	case *js_ast.EString:
		return fmt.Sprintf("%q", k.Value)
	case *js_ast.EPrivateIdentifier:
		return fmt.Sprintf("%q", k.Name)
	}
	return "property"
}

// "static { ... }" inside a class body
func (p *parser) parseClassStaticBlock(opts propertyOpts) js_ast.Property {
	loc := p.lexer.Loc()
	if len(opts.decorators) > 0 {
		p.addRangeError(p.lexer.Range(), "Decorators are not valid here")
	}
	p.lexer.Expect(js_lexer.TOpenBrace)

	scope := p.pushScope(js_ast.ScopeClassStaticInit)
	oldFnOrArrowData := p.fnOrArrowDataParse
	p.fnOrArrowDataParse = fnOrArrowDataParse{}
	stmts := p.parseStmtsUpTo(js_lexer.TCloseBrace, parseStmtOpts{})
	p.fnOrArrowDataParse = oldFnOrArrowData
	p.popScope()
	p.lexer.Next()

	return js_ast.Property{
		Kind:        js_ast.PropertyStaticBlock,
		StaticBlock: &js_ast.ClassStaticBlock{Loc: loc, Stmts: stmts, Scope: scope},
	}
}

// This assumes the current token is "class"
func (p *parser) parseClassExpr(loc logger.Loc, decorators []js_ast.Expr) js_ast.Expr {
	p.lexer.Expect(js_lexer.TClass)
	class := js_ast.Class{Decorators: decorators}

	// The name of a class expression is only visible inside the class
	if p.lexer.Token == js_lexer.TIdentifier && !p.lexer.IsContextualKeyword("implements") {
		class.NameScope = p.pushScope(js_ast.ScopeClassName)
		nameLoc := p.lexer.Loc()
		class.Name = &js_ast.LocRef{Loc: nameLoc, Ref: p.declareSymbol(js_ast.SymbolClass, nameLoc, p.lexer.Identifier)}
		p.lexer.Next()
		p.parseClass(&class)
		p.popScope()
	} else {
		p.parseClass(&class)
	}

	return js_ast.Expr{Loc: loc, Data: &js_ast.EClass{Class: class}}
}

// Parses everything after the class name
func (p *parser) parseClass(class *js_ast.Class) {
	if p.lexer.Token == js_lexer.TExtends {
		p.lexer.Next()
		class.ExtendsOrNil = p.parseExpr(js_ast.LNew)
	}

	class.BodyLoc = p.lexer.Loc()
	p.lexer.Expect(js_lexer.TOpenBrace)
	class.BodyScope = p.pushScope(js_ast.ScopeClassBody)
	oldAllowIn := p.allowIn
	p.allowIn = true

	for p.lexer.Token != js_lexer.TCloseBrace {
		if p.lexer.Token == js_lexer.TSemicolon {
			p.lexer.Next()
			continue
		}

		var decorators []js_ast.Expr
		if p.lexer.Token == js_lexer.TAt {
			decorators = p.parseDecorators()
		}

		property := p.parseProperty(js_ast.PropertyNormal, propertyOpts{
			decorators: decorators,
			isClass:    true,
		})
		class.Properties = append(class.Properties, property)
	}

	p.allowIn = oldAllowIn
	p.popScope()
	p.lexer.Expect(js_lexer.TCloseBrace)
}

func (p *parser) parseDecorators() []js_ast.Expr {
	decorators := []js_ast.Expr{}
	for p.lexer.Token == js_lexer.TAt {
		p.lexer.Next()
		decorators = append(decorators, p.parseDecorator())
	}
	return decorators
}

// Decorators are restricted to "@(expr)" or a member chain with an optional
// call at the end, such as "@a.b.c(d)"
func (p *parser) parseDecorator() js_ast.Expr {
	loc := p.lexer.Loc()

	if p.lexer.Token == js_lexer.TOpenParen {
		p.lexer.Next()
		value := p.parseExprAllowIn(js_ast.LLowest)
		p.lexer.Expect(js_lexer.TCloseParen)
		return value
	}

	if p.lexer.Token != js_lexer.TIdentifier {
		p.lexer.Expected(js_lexer.TIdentifier)
	}
	value := p.newIdentifierRef(loc, p.lexer.Identifier)
	p.lexer.Next()

	for p.lexer.Token == js_lexer.TDot {
		p.lexer.Next()
		value = p.parseMemberName(value, false /* isOptionalChain */)
	}

	if p.lexer.Token == js_lexer.TOpenParen {
		args := p.parseCallArgs()
		value = js_ast.Expr{Loc: value.Loc, Data: &js_ast.ECall{Target: value, Args: args}}
	}

	return value
}
