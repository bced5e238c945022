package js_lexer

type T uint

// If you add a new token, remember to add it to "tokenToString" too
const (
	TEndOfFile T = iota
	TSyntaxError

	// "#!/usr/bin/env node"
	THashbang

	// Literals
	TNoSubstitutionTemplateLiteral // Contents are in lexer.RawTemplateContents()
	TNumericLiteral                // Contents are in lexer.Number (float64)
	TStringLiteral                 // Contents are in lexer.StringLiteral (string)
	TBigIntegerLiteral             // Contents are in lexer.Identifier (string)
	TRegExp                        // Contents are in lexer.Raw()

	// Pseudo-literals
	TTemplateHead
	TTemplateMiddle
	TTemplateTail

	// Punctuation
	TAmpersand
	TAmpersandAmpersand
	TAsterisk
	TAsteriskAsterisk
	TAt
	TBar
	TBarBar
	TCaret
	TCloseBrace
	TCloseBracket
	TCloseParen
	TColon
	TComma
	TDot
	TDotDotDot
	TEqualsEquals
	TEqualsEqualsEquals
	TEqualsGreaterThan
	TExclamation
	TExclamationEquals
	TExclamationEqualsEquals
	TGreaterThan
	TGreaterThanEquals
	TGreaterThanGreaterThan
	TGreaterThanGreaterThanGreaterThan
	TLessThan
	TLessThanEquals
	TLessThanLessThan
	TMinus
	TMinusMinus
	TOpenBrace
	TOpenBracket
	TOpenParen
	TPercent
	TPlus
	TPlusPlus
	TQuestion
	TQuestionDot
	TQuestionQuestion
	TSemicolon
	TSlash
	TTilde

	// Assignments
	TAmpersandAmpersandEquals
	TAmpersandEquals
	TAsteriskAsteriskEquals
	TAsteriskEquals
	TBarBarEquals
	TBarEquals
	TCaretEquals
	TEquals
	TGreaterThanGreaterThanEquals
	TGreaterThanGreaterThanGreaterThanEquals
	TLessThanLessThanEquals
	TMinusEquals
	TPercentEquals
	TPlusEquals
	TQuestionQuestionEquals
	TSlashEquals

	// Class-private fields and methods
	TPrivateIdentifier

	// Identifiers
	TIdentifier // Contents are in lexer.Identifier (string)

	// Reserved words
	TBreak
	TCase
	TCatch
	TClass
	TConst
	TContinue
	TDebugger
	TDefault
	TDelete
	TDo
	TElse
	TEnum
	TExport
	TExtends
	TFalse
	TFinally
	TFor
	TFunction
	TIf
	TImport
	TIn
	TInstanceof
	TNew
	TNull
	TReturn
	TSuper
	TSwitch
	TThis
	TThrow
	TTrue
	TTry
	TTypeof
	TVar
	TVoid
	TWhile
	TWith
)

var Keywords = map[string]T{
	"break":      TBreak,
	"case":       TCase,
	"catch":      TCatch,
	"class":      TClass,
	"const":      TConst,
	"continue":   TContinue,
	"debugger":   TDebugger,
	"default":    TDefault,
	"delete":     TDelete,
	"do":         TDo,
	"else":       TElse,
	"enum":       TEnum,
	"export":     TExport,
	"extends":    TExtends,
	"false":      TFalse,
	"finally":    TFinally,
	"for":        TFor,
	"function":   TFunction,
	"if":         TIf,
	"import":     TImport,
	"in":         TIn,
	"instanceof": TInstanceof,
	"new":        TNew,
	"null":       TNull,
	"return":     TReturn,
	"super":      TSuper,
	"switch":     TSwitch,
	"this":       TThis,
	"throw":      TThrow,
	"true":       TTrue,
	"try":        TTry,
	"typeof":     TTypeof,
	"var":        TVar,
	"void":       TVoid,
	"while":      TWhile,
	"with":       TWith,
}

// These can't be used as binding names in strict mode code, which includes
// all class bodies and all ES modules
var StrictModeReservedWords = map[string]bool{
	"implements": true,
	"interface":  true,
	"let":        true,
	"package":    true,
	"private":    true,
	"protected":  true,
	"public":     true,
	"static":     true,
	"yield":      true,
	"await":      true,
}

// Sorted so that longer punctuators come before their prefixes
var punctuators = []struct {
	text  string
	token T
}{
	{">>>=", TGreaterThanGreaterThanGreaterThanEquals},
	{"...", TDotDotDot},
	{"===", TEqualsEqualsEquals},
	{"!==", TExclamationEqualsEquals},
	{"**=", TAsteriskAsteriskEquals},
	{"<<=", TLessThanLessThanEquals},
	{">>=", TGreaterThanGreaterThanEquals},
	{">>>", TGreaterThanGreaterThanGreaterThan},
	{"&&=", TAmpersandAmpersandEquals},
	{"||=", TBarBarEquals},
	{"??=", TQuestionQuestionEquals},
	{"&&", TAmpersandAmpersand},
	{"||", TBarBar},
	{"??", TQuestionQuestion},
	{"?.", TQuestionDot},
	{"**", TAsteriskAsterisk},
	{"==", TEqualsEquals},
	{"!=", TExclamationEquals},
	{"=>", TEqualsGreaterThan},
	{"<=", TLessThanEquals},
	{">=", TGreaterThanEquals},
	{"<<", TLessThanLessThan},
	{">>", TGreaterThanGreaterThan},
	{"++", TPlusPlus},
	{"--", TMinusMinus},
	{"+=", TPlusEquals},
	{"-=", TMinusEquals},
	{"*=", TAsteriskEquals},
	{"/=", TSlashEquals},
	{"%=", TPercentEquals},
	{"&=", TAmpersandEquals},
	{"|=", TBarEquals},
	{"^=", TCaretEquals},
	{"&", TAmpersand},
	{"*", TAsterisk},
	{"@", TAt},
	{"|", TBar},
	{"^", TCaret},
	{"}", TCloseBrace},
	{"]", TCloseBracket},
	{")", TCloseParen},
	{":", TColon},
	{",", TComma},
	{".", TDot},
	{"!", TExclamation},
	{">", TGreaterThan},
	{"<", TLessThan},
	{"-", TMinus},
	{"{", TOpenBrace},
	{"[", TOpenBracket},
	{"(", TOpenParen},
	{"%", TPercent},
	{"+", TPlus},
	{"?", TQuestion},
	{";", TSemicolon},
	{"/", TSlash},
	{"~", TTilde},
	{"=", TEquals},
}

var tokenToString = map[T]string{
	TEndOfFile:   "end of file",
	TSyntaxError: "syntax error",
	THashbang:    "hashbang comment",

	// Literals
	TNoSubstitutionTemplateLiteral: "template literal",
	TNumericLiteral:                "number",
	TStringLiteral:                 "string",
	TBigIntegerLiteral:             "bigint",
	TRegExp:                        "regular expression",

	// Pseudo-literals
	TTemplateHead:   "template literal",
	TTemplateMiddle: "template literal",
	TTemplateTail:   "template literal",

	// Identifiers
	TPrivateIdentifier: "private identifier",
	TIdentifier:        "identifier",
}

func init() {
	for _, p := range punctuators {
		tokenToString[p.token] = "\"" + p.text + "\""
	}
	for text, token := range Keywords {
		tokenToString[token] = "\"" + text + "\""
	}
}
