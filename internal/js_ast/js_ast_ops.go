package js_ast

// Precedence levels, from the loosest binding to the tightest. The parser
// parses an operand by asking for everything that binds tighter than a given
// level, and the printer adds parentheses when a node binds looser than the
// level its position requires.
type L int

const (
	LLowest L = iota
	LComma
	LYield
	LAssign
	LConditional
	LNullishCoalescing
	LLogicalOr
	LLogicalAnd
	LBitwiseOr
	LBitwiseXor
	LBitwiseAnd
	LEquals
	LCompare
	LShift
	LAdd
	LMultiply
	LExponentiation
	LPrefix
	LPostfix
	LNew
	LCall
	LMember
)

type OpCode int

// The order of these matters: the range checks below depend on it
const (
	UnOpPos OpCode = iota
	UnOpNeg
	UnOpCpl
	UnOpNot
	UnOpVoid
	UnOpTypeof
	UnOpDelete
	UnOpPreDec
	UnOpPreInc
	UnOpPostDec
	UnOpPostInc

	BinOpAdd
	BinOpSub
	BinOpMul
	BinOpDiv
	BinOpRem
	BinOpPow
	BinOpLt
	BinOpLe
	BinOpGt
	BinOpGe
	BinOpIn
	BinOpInstanceof
	BinOpShl
	BinOpShr
	BinOpUShr
	BinOpLooseEq
	BinOpLooseNe
	BinOpStrictEq
	BinOpStrictNe
	BinOpNullishCoalescing
	BinOpLogicalOr
	BinOpLogicalAnd
	BinOpBitwiseOr
	BinOpBitwiseAnd
	BinOpBitwiseXor
	BinOpComma

	// Everything from here on is an assignment
	BinOpAssign
	BinOpAddAssign
	BinOpSubAssign
	BinOpMulAssign
	BinOpDivAssign
	BinOpRemAssign
	BinOpPowAssign
	BinOpShlAssign
	BinOpShrAssign
	BinOpUShrAssign
	BinOpBitwiseOrAssign
	BinOpBitwiseAndAssign
	BinOpBitwiseXorAssign
	BinOpNullishCoalescingAssign
	BinOpLogicalOrAssign
	BinOpLogicalAndAssign
)

func (op OpCode) IsPrefix() bool {
	return op < UnOpPostDec
}

// "a - b - c" is "(a - b) - c"
func (op OpCode) IsLeftAssociative() bool {
	return op >= BinOpAdd && op < BinOpComma && op != BinOpPow
}

// "a = b = c" is "a = (b = c)" and "a ** b ** c" is "a ** (b ** c)"
func (op OpCode) IsRightAssociative() bool {
	return op >= BinOpAssign || op == BinOpPow
}

type opTableEntry struct {
	Text      string
	Level     L
	IsKeyword bool
}

func prefixOp(text string) opTableEntry {
	return opTableEntry{Text: text, Level: LPrefix}
}

func binaryOp(text string, level L) opTableEntry {
	return opTableEntry{Text: text, Level: level}
}

func keywordOp(text string, level L) opTableEntry {
	return opTableEntry{Text: text, Level: level, IsKeyword: true}
}

func assignOp(text string) opTableEntry {
	return opTableEntry{Text: text, Level: LAssign}
}

var OpTable = [...]opTableEntry{
	UnOpPos:     prefixOp("+"),
	UnOpNeg:     prefixOp("-"),
	UnOpCpl:     prefixOp("~"),
	UnOpNot:     prefixOp("!"),
	UnOpVoid:    keywordOp("void", LPrefix),
	UnOpTypeof:  keywordOp("typeof", LPrefix),
	UnOpDelete:  keywordOp("delete", LPrefix),
	UnOpPreDec:  prefixOp("--"),
	UnOpPreInc:  prefixOp("++"),
	UnOpPostDec: {Text: "--", Level: LPostfix},
	UnOpPostInc: {Text: "++", Level: LPostfix},

	BinOpAdd:               binaryOp("+", LAdd),
	BinOpSub:               binaryOp("-", LAdd),
	BinOpMul:               binaryOp("*", LMultiply),
	BinOpDiv:               binaryOp("/", LMultiply),
	BinOpRem:               binaryOp("%", LMultiply),
	BinOpPow:               binaryOp("**", LExponentiation),
	BinOpLt:                binaryOp("<", LCompare),
	BinOpLe:                binaryOp("<=", LCompare),
	BinOpGt:                binaryOp(">", LCompare),
	BinOpGe:                binaryOp(">=", LCompare),
	BinOpIn:                keywordOp("in", LCompare),
	BinOpInstanceof:        keywordOp("instanceof", LCompare),
	BinOpShl:               binaryOp("<<", LShift),
	BinOpShr:               binaryOp(">>", LShift),
	BinOpUShr:              binaryOp(">>>", LShift),
	BinOpLooseEq:           binaryOp("==", LEquals),
	BinOpLooseNe:           binaryOp("!=", LEquals),
	BinOpStrictEq:          binaryOp("===", LEquals),
	BinOpStrictNe:          binaryOp("!==", LEquals),
	BinOpNullishCoalescing: binaryOp("??", LNullishCoalescing),
	BinOpLogicalOr:         binaryOp("||", LLogicalOr),
	BinOpLogicalAnd:        binaryOp("&&", LLogicalAnd),
	BinOpBitwiseOr:         binaryOp("|", LBitwiseOr),
	BinOpBitwiseAnd:        binaryOp("&", LBitwiseAnd),
	BinOpBitwiseXor:        binaryOp("^", LBitwiseXor),
	BinOpComma:             binaryOp(",", LComma),

	BinOpAssign:                  assignOp("="),
	BinOpAddAssign:               assignOp("+="),
	BinOpSubAssign:               assignOp("-="),
	BinOpMulAssign:               assignOp("*="),
	BinOpDivAssign:               assignOp("/="),
	BinOpRemAssign:               assignOp("%="),
	BinOpPowAssign:               assignOp("**="),
	BinOpShlAssign:               assignOp("<<="),
	BinOpShrAssign:               assignOp(">>="),
	BinOpUShrAssign:              assignOp(">>>="),
	BinOpBitwiseOrAssign:         assignOp("|="),
	BinOpBitwiseAndAssign:        assignOp("&="),
	BinOpBitwiseXorAssign:        assignOp("^="),
	BinOpNullishCoalescingAssign: assignOp("??="),
	BinOpLogicalOrAssign:         assignOp("||="),
	BinOpLogicalAndAssign:        assignOp("&&="),
}
