package js_printer

import (
	"fmt"

	"github.com/classhook/classhook/internal/js_ast"
)

// Prints "function name(args) {}" including any "async" or "*"
func (p *printer) printFunction(fn js_ast.Fn) {
	if fn.IsAsync {
		p.printKeyword("async")
		p.print(" ")
	}
	p.printKeyword("function")
	if fn.IsGenerator {
		p.print("*")
		p.printSpace()
	}
	if fn.Name != nil {
		p.printSymbol(fn.Name.Ref)
	}
	p.printFn(fn)
}

func (p *printer) printFn(fn js_ast.Fn) {
	p.printFnArgs(fn.Args, fn.HasRestArg, false /* isArrow */)
	p.printSpace()
	p.printBlock(fn.Body.Stmts)
}

func (p *printer) printFnArgs(args []js_ast.Arg, hasRestArg bool, isArrow bool) {
	// "(a) => {}" can be "a=>{}"
	wrap := true
	if p.options.MinifyWhitespace && isArrow && !hasRestArg && len(args) == 1 && args[0].DefaultOrNil.Data == nil {
		if _, ok := args[0].Binding.Data.(*js_ast.BIdentifier); ok {
			wrap = false
		}
	}

	p.openParenIf(wrap)
	for i, arg := range args {
		p.printCommaBefore(i)
		if hasRestArg && i+1 == len(args) {
			p.print("...")
		}
		p.printBinding(arg.Binding)
		if arg.DefaultOrNil.Data != nil {
			p.printInitializer(arg.DefaultOrNil, 0)
		}
	}
	p.closeParenIf(wrap)
}

// Prints "@dec class Name extends Base {}". Statement-level decorators go on
// their own lines.
func (p *printer) printClassWithHead(class *js_ast.Class, decoratorsOnOwnLine bool) {
	p.printDecorators(class.Decorators, decoratorsOnOwnLine)
	p.printKeyword("class")
	if class.Name != nil {
		p.printSymbol(class.Name.Ref)
	}
	if class.ExtendsOrNil.Data != nil {
		p.print(" extends")
		p.printSpace()
		p.printExpr(class.ExtendsOrNil, js_ast.LNew-1, 0)
	}
	p.printSpace()
	p.printClassBody(class.Properties)
}

func (p *printer) printClassBody(properties []js_ast.Property) {
	p.print("{")
	p.printNewline()
	p.options.Indent++

	for _, item := range properties {
		p.printSemicolonIfNeeded()
		p.printIndent()

		if item.Kind == js_ast.PropertyStaticBlock {
			p.printKeyword("static")
			p.printSpace()
			p.printBlock(item.StaticBlock.Stmts)
			p.printNewline()
			continue
		}

		p.printDecorators(item.Decorators, false /* onOwnLine */)
		p.printProperty(item)

		// Fields end with a semicolon but methods don't
		if item.ValueOrNil.Data == nil {
			p.printSemicolonAfterStatement()
		} else {
			p.printNewline()
		}
	}

	p.needsSemicolon = false
	p.options.Indent--
	p.printIndent()
	p.print("}")
}

func (p *printer) printDecorators(decorators []js_ast.Expr, onOwnLine bool) {
	for _, decorator := range decorators {
		p.print("@")
		wrap := !isDecoratorMemberChain(decorator, true /* allowCall */)
		p.openParenIf(wrap)
		p.printExpr(decorator, js_ast.LLowest, 0)
		p.closeParenIf(wrap)
		if onOwnLine {
			p.printNewline()
			p.printIndent()
		} else {
			p.print(" ")
		}
	}
}

// Decorators may only be written without parentheses when they are a chain
// of member accesses, optionally followed by a single call
func isDecoratorMemberChain(expr js_ast.Expr, allowCall bool) bool {
	switch e := expr.Data.(type) {
	case *js_ast.EIdentifier:
		return true

	case *js_ast.EDot:
		return !e.IsOptionalChain && isDecoratorMemberChain(e.Target, false)

	case *js_ast.EIndex:
		if _, ok := e.Index.Data.(*js_ast.EPrivateIdentifier); ok && !e.IsOptionalChain {
			return isDecoratorMemberChain(e.Target, false)
		}

	case *js_ast.ECall:
		return allowCall && !e.IsOptionalChain && isDecoratorMemberChain(e.Target, false)
	}
	return false
}

// Prints a property name that isn't computed
func (p *printer) printPropertyKey(key js_ast.Expr) {
	switch k := key.Data.(type) {
	case *js_ast.EString:
		if js_ast.IsIdentifier(k.Value) {
			p.printSpaceBeforeIdentifier()
			p.printIdentifier(k.Value)
		} else {
			p.printQuoted(k.Value)
		}

	case *js_ast.EPrivateIdentifier:
		p.printSpaceBeforeIdentifier()
		p.printIdentifier(k.Name)

	default:
		p.printExpr(key, js_ast.LLowest, 0)
	}
}

// Reports whether "key" is an identifier with the same name as "ref", which
// lets "{ x: x }" print as "{ x }"
func (p *printer) isShorthand(key js_ast.Expr, ref js_ast.Ref) bool {
	str, ok := key.Data.(*js_ast.EString)
	return ok && str.Value == p.renamer.NameForSymbol(ref)
}

// Used for both object literals and class bodies
func (p *printer) printProperty(item js_ast.Property) {
	if item.Kind == js_ast.PropertySpread {
		p.print("...")
		p.printExpr(item.ValueOrNil, js_ast.LComma, 0)
		return
	}

	if item.IsStatic {
		p.printKeyword("static")
		p.printSpace()
	}

	switch item.Kind {
	case js_ast.PropertyGet:
		p.printKeyword("get")
		p.printSpace()
	case js_ast.PropertySet:
		p.printKeyword("set")
		p.printSpace()
	}

	fn, isFn := item.ValueOrNil.Data.(*js_ast.EFunction)
	if isFn && item.IsMethod {
		if fn.Fn.IsAsync {
			p.printKeyword("async")
			p.printSpace()
		}
		if fn.Fn.IsGenerator {
			p.print("*")
		}
	}

	if item.IsComputed {
		p.print("[")
		p.printExpr(item.Key, js_ast.LComma, 0)
		p.print("]")
	} else {
		p.printPropertyKey(item.Key)

		if id, ok := item.ValueOrNil.Data.(*js_ast.EIdentifier); ok && item.Kind == js_ast.PropertyNormal &&
			!item.IsMethod && js_ast.IsIdentifier(keyText(item.Key)) && p.isShorthand(item.Key, id.Ref) {
			if item.InitializerOrNil.Data != nil {
				p.printInitializer(item.InitializerOrNil, 0)
			}
			return
		}
	}

	if isFn && (item.IsMethod || item.Kind != js_ast.PropertyNormal) {
		p.printFn(fn.Fn)
		return
	}

	if item.ValueOrNil.Data != nil {
		p.print(":")
		p.printSpace()
		p.printExpr(item.ValueOrNil, js_ast.LComma, 0)
	}
	if item.InitializerOrNil.Data != nil {
		p.printInitializer(item.InitializerOrNil, 0)
	}
}

func keyText(key js_ast.Expr) string {
	if str, ok := key.Data.(*js_ast.EString); ok {
		return str.Value
	}
	return ""
}

func (p *printer) printBinding(binding js_ast.Binding) {
	switch b := binding.Data.(type) {
	case *js_ast.BMissing:

	case *js_ast.BIdentifier:
		p.printSymbol(b.Ref)

	case *js_ast.BArray:
		p.print("[")
		for i, item := range b.Items {
			p.printCommaBefore(i)
			if b.HasSpread && i+1 == len(b.Items) {
				p.print("...")
			}
			p.printBinding(item.Binding)
			if item.DefaultValueOrNil.Data != nil {
				p.printInitializer(item.DefaultValueOrNil, 0)
			}

			// "[a, ]" has one item but "[a, , ]" has two
			if _, ok := item.Binding.Data.(*js_ast.BMissing); ok && i == len(b.Items)-1 {
				p.print(",")
			}
		}
		p.print("]")

	case *js_ast.BObject:
		p.print("{")
		for i, property := range b.Properties {
			if i != 0 {
				p.print(",")
			}
			p.printSpace()
			p.printPropertyBinding(property)
		}
		if len(b.Properties) > 0 {
			p.printSpace()
		}
		p.print("}")

	default:
		panic(fmt.Sprintf("Unexpected binding of type %T", binding.Data))
	}
}

func (p *printer) printPropertyBinding(property js_ast.PropertyBinding) {
	if property.IsSpread {
		p.print("...")
		p.printBinding(property.Value)
		return
	}

	if property.IsComputed {
		p.print("[")
		p.printExpr(property.Key, js_ast.LComma, 0)
		p.print("]")
	} else {
		p.printPropertyKey(property.Key)
	}

	isShorthand := false
	if id, ok := property.Value.Data.(*js_ast.BIdentifier); ok && !property.IsComputed {
		isShorthand = js_ast.IsIdentifier(keyText(property.Key)) && p.isShorthand(property.Key, id.Ref)
	}
	if !isShorthand {
		p.print(":")
		p.printSpace()
		p.printBinding(property.Value)
	}

	if property.DefaultValueOrNil.Data != nil {
		p.printInitializer(property.DefaultValueOrNil, 0)
	}
}
