package js_lexer

// The lexer is driven by the parser one token at a time. Some tokens depend
// on what the parser expects next: a "/" may start a regular expression and a
// "}" may continue a template literal. The parser asks for those explicitly
// with ScanRegExp and RescanCloseBraceAsTemplateToken.
//
// Strings are decoded into UTF-8. Lone surrogates in string escapes can't be
// represented in UTF-8 and are decoded as U+FFFD.

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/classhook/classhook/internal/js_ast"
	"github.com/classhook/classhook/internal/logger"
)

type Lexer struct {
	log              logger.Log
	source           logger.Source
	current          int
	start            int
	end              int
	codePoint        rune
	Token            T
	HasNewlineBefore bool
	StringLiteral    string
	Identifier       string
	Number           float64

	rescanCloseBraceAsTemplateToken bool

	// The log is disabled during speculative scans that may backtrack
	IsLogDisabled bool
}

type LexerPanic struct{}

func NewLexer(log logger.Log, source logger.Source) Lexer {
	lexer := Lexer{
		log:    log,
		source: source,
	}
	lexer.step()
	lexer.Next()
	return lexer
}

func (lexer *Lexer) Loc() logger.Loc {
	return logger.Loc{Start: int32(lexer.start)}
}

func (lexer *Lexer) Range() logger.Range {
	return logger.Range{Loc: logger.Loc{Start: int32(lexer.start)}, Len: int32(lexer.end - lexer.start)}
}

func (lexer *Lexer) Raw() string {
	return lexer.source.Contents[lexer.start:lexer.end]
}

func (lexer *Lexer) RawTemplateContents() string {
	var text string
	switch lexer.Token {
	case TNoSubstitutionTemplateLiteral, TTemplateTail:
		// "`x`" or "}x`"
		text = lexer.source.Contents[lexer.start+1 : lexer.end-1]

	case TTemplateHead, TTemplateMiddle:
		// "`x${" or "}x${"
		text = lexer.source.Contents[lexer.start+1 : lexer.end-2]
	}

	// Carriage returns are normalized to line feeds in template literals
	if strings.IndexByte(text, '\r') != -1 {
		text = strings.ReplaceAll(text, "\r\n", "\n")
		text = strings.ReplaceAll(text, "\r", "\n")
	}
	return text
}

func (lexer *Lexer) IsIdentifierOrKeyword() bool {
	return lexer.Token >= TIdentifier
}

func (lexer *Lexer) IsContextualKeyword(text string) bool {
	return lexer.Token == TIdentifier && lexer.Raw() == text
}

func (lexer *Lexer) ExpectContextualKeyword(text string) {
	if !lexer.IsContextualKeyword(text) {
		lexer.ExpectedString(fmt.Sprintf("%q", text))
	}
	lexer.Next()
}

func (lexer *Lexer) SyntaxError() {
	loc := logger.Loc{Start: int32(lexer.end)}
	message := "Unexpected end of file"
	if lexer.end < len(lexer.source.Contents) {
		c, _ := utf8.DecodeRuneInString(lexer.source.Contents[lexer.end:])
		if c < 0x20 {
			message = fmt.Sprintf("Syntax error \"\\x%02X\"", c)
		} else if c >= 0x80 {
			message = fmt.Sprintf("Syntax error \"\\u{%x}\"", c)
		} else if c != '"' {
			message = fmt.Sprintf("Syntax error \"%c\"", c)
		} else {
			message = "Syntax error '\"'"
		}
	}
	lexer.addError(loc, message)
	panic(LexerPanic{})
}

func (lexer *Lexer) ExpectedString(text string) {
	found := fmt.Sprintf("%q", lexer.Raw())
	if lexer.start == len(lexer.source.Contents) {
		found = "end of file"
	}
	lexer.addRangeError(lexer.Range(), fmt.Sprintf("Expected %s but found %s", text, found))
	panic(LexerPanic{})
}

func (lexer *Lexer) Expected(token T) {
	if text, ok := tokenToString[token]; ok {
		lexer.ExpectedString(text)
	} else {
		lexer.Unexpected()
	}
}

func (lexer *Lexer) Unexpected() {
	found := fmt.Sprintf("%q", lexer.Raw())
	if lexer.start == len(lexer.source.Contents) {
		found = "end of file"
	}
	lexer.addRangeError(lexer.Range(), fmt.Sprintf("Unexpected %s", found))
	panic(LexerPanic{})
}

func (lexer *Lexer) Expect(token T) {
	if lexer.Token != token {
		lexer.Expected(token)
	}
	lexer.Next()
}

func (lexer *Lexer) ExpectOrInsertSemicolon() {
	if lexer.Token == TSemicolon || (!lexer.HasNewlineBefore &&
		lexer.Token != TCloseBrace && lexer.Token != TEndOfFile) {
		lexer.Expect(TSemicolon)
	}
}

// See the "White Space Code Points" table in the ECMAScript standard
func IsWhitespace(codePoint rune) bool {
	switch codePoint {
	case
		'\u0009', // character tabulation
		'\u000B', // line tabulation
		'\u000C', // form feed
		'\u0020', // space
		'\u00A0', // no-break space

		// Unicode "Space_Separator" code points
		'\u1680', // ogham space mark
		'\u2000', // en quad
		'\u2001', // em quad
		'\u2002', // en space
		'\u2003', // em space
		'\u2004', // three-per-em space
		'\u2005', // four-per-em space
		'\u2006', // six-per-em space
		'\u2007', // figure space
		'\u2008', // punctuation space
		'\u2009', // thin space
		'\u200A', // hair space
		'\u202F', // narrow no-break space
		'\u205F', // medium mathematical space
		'\u3000', // ideographic space

		'\uFEFF': // zero width non-breaking space
		return true

	default:
		return false
	}
}

func isNewline(codePoint rune) bool {
	return codePoint == '\r' || codePoint == '\n' || codePoint == '\u2028' || codePoint == '\u2029'
}

func (lexer *Lexer) Next() {
	lexer.HasNewlineBefore = lexer.end == 0

	for {
		lexer.start = lexer.end
		lexer.Token = 0

		switch {
		case lexer.codePoint == -1: // This indicates the end of the file
			lexer.Token = TEndOfFile

		case lexer.codePoint == '#':
			if lexer.start == 0 && strings.HasPrefix(lexer.source.Contents, "#!") {
				// "#!/usr/bin/env node"
				lexer.Token = THashbang
				for lexer.codePoint != -1 && !isNewline(lexer.codePoint) {
					lexer.step()
				}
				lexer.Identifier = lexer.Raw()
			} else {
				// "#foo"
				lexer.step()
				if !js_ast.IsIdentifierStart(lexer.codePoint) {
					lexer.SyntaxError()
				}
				lexer.step()
				for js_ast.IsIdentifierContinue(lexer.codePoint) {
					lexer.step()
				}
				lexer.Identifier = lexer.Raw()
				lexer.Token = TPrivateIdentifier
			}

		case isNewline(lexer.codePoint):
			lexer.step()
			lexer.HasNewlineBefore = true
			continue

		case IsWhitespace(lexer.codePoint):
			lexer.step()
			continue

		case lexer.codePoint == '/':
			// "/" or "/=" or a comment. Regular expressions are scanned on request.
			switch lexer.peek() {
			case '/':
				for lexer.codePoint != -1 && !isNewline(lexer.codePoint) {
					lexer.step()
				}
				continue

			case '*':
				lexer.scanMultiLineComment()
				continue
			}
			lexer.scanPunctuator()

		case lexer.codePoint == '.' && isDigit(lexer.peek()):
			lexer.parseNumericLiteral()

		case lexer.codePoint == '?' && lexer.peek() == '.' && isDigit(lexer.peekAt(1)):
			// Lookahead to disambiguate "a?.1:b" from optional chaining
			lexer.step()
			lexer.Token = TQuestion

		case lexer.codePoint == '`' || (lexer.codePoint == '}' && lexer.rescanCloseBraceAsTemplateToken):
			lexer.scanTemplate()

		case lexer.codePoint == '\'' || lexer.codePoint == '"':
			lexer.scanString()

		case isDigit(lexer.codePoint):
			lexer.parseNumericLiteral()

		case lexer.codePoint == '\\' || js_ast.IsIdentifierStart(lexer.codePoint):
			lexer.scanIdentifier()

		case lexer.codePoint < 0x80:
			lexer.scanPunctuator()

		default:
			lexer.SyntaxError()
		}

		return
	}
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func (lexer *Lexer) peek() rune {
	return lexer.peekAt(0)
}

// Returns the code point "n" code points after the next one
func (lexer *Lexer) peekAt(n int) rune {
	text := lexer.source.Contents[lexer.current:]
	for {
		c, width := utf8.DecodeRuneInString(text)
		if width == 0 {
			return -1
		}
		if n == 0 {
			return c
		}
		text = text[width:]
		n--
	}
}

func (lexer *Lexer) scanPunctuator() {
	rest := lexer.source.Contents[lexer.end:]
	for _, p := range punctuators {
		if strings.HasPrefix(rest, p.text) {
			for i := 0; i < len(p.text); i++ {
				lexer.step()
			}
			lexer.Token = p.token
			return
		}
	}
	lexer.SyntaxError()
}

func (lexer *Lexer) scanMultiLineComment() {
	startRange := lexer.Range()
	lexer.step()
	lexer.step()
	for {
		switch lexer.codePoint {
		case '*':
			lexer.step()
			if lexer.codePoint == '/' {
				lexer.step()
				return
			}

		case '\r', '\n', '\u2028', '\u2029':
			lexer.step()
			lexer.HasNewlineBefore = true

		case -1:
			lexer.start = lexer.end
			lexer.addRangeError(logger.Range{Loc: startRange.Loc, Len: 2}, "Expected \"*/\" to terminate multi-line comment")
			panic(LexerPanic{})

		default:
			lexer.step()
		}
	}
}

func (lexer *Lexer) scanIdentifier() {
	hasEscape := false
	for lexer.codePoint == '\\' || js_ast.IsIdentifierContinue(lexer.codePoint) {
		if lexer.codePoint == '\\' {
			hasEscape = true
			lexer.step()
			if lexer.codePoint != 'u' {
				lexer.SyntaxError()
			}
			lexer.step()
			lexer.scanUnicodeEscapeTail()
			continue
		}
		lexer.step()
	}

	lexer.Identifier = lexer.Raw()
	if hasEscape {
		lexer.Identifier = lexer.decodeEscapeSequences(lexer.start, lexer.Identifier)
		if !js_ast.IsIdentifier(lexer.Identifier) {
			lexer.addRangeError(lexer.Range(), fmt.Sprintf("Invalid identifier: %q", lexer.Identifier))
			panic(LexerPanic{})
		}
		lexer.Token = TIdentifier
		return
	}

	if keyword, ok := Keywords[lexer.Identifier]; ok {
		lexer.Token = keyword
	} else {
		lexer.Token = TIdentifier
	}
}

// Steps over "XXXX" or "{X...}" after "\u"
func (lexer *Lexer) scanUnicodeEscapeTail() {
	if lexer.codePoint == '{' {
		lexer.step()
		for lexer.codePoint != '}' {
			if !isHexDigit(lexer.codePoint) {
				lexer.SyntaxError()
			}
			lexer.step()
		}
		lexer.step()
		return
	}
	for i := 0; i < 4; i++ {
		if !isHexDigit(lexer.codePoint) {
			lexer.SyntaxError()
		}
		lexer.step()
	}
}

func isHexDigit(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func (lexer *Lexer) scanString() {
	quote := lexer.codePoint
	needsDecode := false
	lexer.step()

	for lexer.codePoint != quote {
		switch lexer.codePoint {
		case '\\':
			needsDecode = true
			lexer.step()

			// Skip over the escaped character, including a "\r\n" line continuation
			if lexer.codePoint == '\r' && lexer.peek() == '\n' {
				lexer.step()
			}
			if lexer.codePoint == -1 {
				lexer.addRangeError(lexer.Range(), "Unterminated string literal")
				panic(LexerPanic{})
			}

		case -1, '\r', '\n':
			lexer.addRangeError(lexer.Range(), "Unterminated string literal")
			panic(LexerPanic{})
		}
		lexer.step()
	}
	lexer.step()

	text := lexer.source.Contents[lexer.start+1 : lexer.end-1]
	if needsDecode {
		text = lexer.decodeEscapeSequences(lexer.start+1, text)
	}
	lexer.StringLiteral = text
	lexer.Token = TStringLiteral
}

func (lexer *Lexer) scanTemplate() {
	// Either "`" or "}" when rescanning the continuation of a template
	isHead := lexer.codePoint == '`'
	lexer.step()

	for {
		switch lexer.codePoint {
		case '\\':
			lexer.step()
			if lexer.codePoint == -1 {
				lexer.addRangeError(lexer.Range(), "Unterminated template literal")
				panic(LexerPanic{})
			}

		case '`':
			lexer.step()
			if isHead {
				lexer.Token = TNoSubstitutionTemplateLiteral
			} else {
				lexer.Token = TTemplateTail
			}
			return

		case '$':
			if lexer.peek() == '{' {
				lexer.step()
				lexer.step()
				if isHead {
					lexer.Token = TTemplateHead
				} else {
					lexer.Token = TTemplateMiddle
				}
				return
			}

		case -1:
			lexer.addRangeError(lexer.Range(), "Unterminated template literal")
			panic(LexerPanic{})
		}
		lexer.step()
	}
}

func (lexer *Lexer) RescanCloseBraceAsTemplateToken() {
	if lexer.Token != TCloseBrace {
		lexer.Expected(TCloseBrace)
	}

	// Rewind to the "}" and scan the template continuation from there
	lexer.rescanCloseBraceAsTemplateToken = true
	lexer.current = lexer.start
	lexer.step()
	lexer.Next()
	lexer.rescanCloseBraceAsTemplateToken = false
}

func (lexer *Lexer) parseNumericLiteral() {
	contents := lexer.source.Contents

	// "0x", "0o", and "0b" prefixes
	if lexer.codePoint == '0' {
		base := 0
		switch lexer.peek() {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			lexer.step()
			lexer.step()
			digitsStart := lexer.end
			for isHexDigit(lexer.codePoint) || lexer.codePoint == '_' {
				lexer.step()
			}
			digits := strings.ReplaceAll(contents[digitsStart:lexer.end], "_", "")
			lexer.finishNumber(digits, base, true)
			return
		}

		// Legacy octal literals such as "017"
		if isDigit(lexer.peek()) {
			lexer.step()
			digitsStart := lexer.end
			isOctal := true
			for isDigit(lexer.codePoint) {
				if lexer.codePoint >= '8' {
					isOctal = false
				}
				lexer.step()
			}
			if isOctal {
				lexer.finishNumber(contents[digitsStart:lexer.end], 8, false)
				return
			}
			lexer.finishNumber(contents[lexer.start:lexer.end], 10, false)
			return
		}
	}

	// Decimal literals with an optional fraction and exponent
	isInteger := true
	for isDigit(lexer.codePoint) || lexer.codePoint == '_' {
		lexer.step()
	}
	if lexer.codePoint == '.' {
		isInteger = false
		lexer.step()
		for isDigit(lexer.codePoint) || lexer.codePoint == '_' {
			lexer.step()
		}
	}
	if lexer.codePoint == 'e' || lexer.codePoint == 'E' {
		isInteger = false
		lexer.step()
		if lexer.codePoint == '+' || lexer.codePoint == '-' {
			lexer.step()
		}
		if !isDigit(lexer.codePoint) {
			lexer.SyntaxError()
		}
		for isDigit(lexer.codePoint) || lexer.codePoint == '_' {
			lexer.step()
		}
	}

	text := strings.ReplaceAll(contents[lexer.start:lexer.end], "_", "")
	if isInteger && lexer.codePoint == 'n' {
		lexer.step()
		lexer.Identifier = text
		lexer.Token = TBigIntegerLiteral
		lexer.checkNumberEnd()
		return
	}

	value, err := strconv.ParseFloat(text, 64)
	if err != nil && !strings.Contains(err.Error(), "value out of range") {
		lexer.addRangeError(lexer.Range(), fmt.Sprintf("Invalid number %q", text))
		panic(LexerPanic{})
	}
	lexer.Number = value
	lexer.Token = TNumericLiteral
	lexer.checkNumberEnd()
}

func (lexer *Lexer) finishNumber(digits string, base int, allowBigInt bool) {
	if digits == "" {
		lexer.SyntaxError()
	}

	// A "n" suffix makes this a BigInt literal that keeps its original text
	if allowBigInt && lexer.codePoint == 'n' {
		lexer.Identifier = lexer.Raw()
		lexer.step()
		lexer.Token = TBigIntegerLiteral
		lexer.checkNumberEnd()
		return
	}

	value := 0.0
	for _, c := range digits {
		var digit int
		switch {
		case c >= '0' && c <= '9':
			digit = int(c - '0')
		case c >= 'a' && c <= 'f':
			digit = int(c-'a') + 10
		case c >= 'A' && c <= 'F':
			digit = int(c-'A') + 10
		}
		if digit >= base {
			lexer.addRangeError(lexer.Range(), fmt.Sprintf("Invalid number %q", lexer.Raw()))
			panic(LexerPanic{})
		}
		value = value*float64(base) + float64(digit)
	}
	lexer.Number = value
	lexer.Token = TNumericLiteral
	lexer.checkNumberEnd()
}

// Identifiers can't directly follow a number
func (lexer *Lexer) checkNumberEnd() {
	if lexer.codePoint == '\\' || js_ast.IsIdentifierStart(lexer.codePoint) {
		lexer.SyntaxError()
	}
}

func (lexer *Lexer) ScanRegExp() {
	validateAndStep := func() {
		if lexer.codePoint == '\\' {
			lexer.step()
		}

		switch lexer.codePoint {
		case '\r', '\n', '\u2028', '\u2029', -1:
			// Newlines aren't allowed in regular expressions
			lexer.addRangeError(lexer.Range(), "Unterminated regular expression")
			panic(LexerPanic{})

		default:
			lexer.step()
		}
	}

	// Rewind to just after the "/" in case the lexer saw "/="
	lexer.current = lexer.start + 1
	lexer.step()

	for {
		switch lexer.codePoint {
		case '/':
			lexer.step()
			for js_ast.IsIdentifierContinue(lexer.codePoint) {
				switch lexer.codePoint {
				case 'd', 'g', 'i', 'm', 's', 'u', 'v', 'y':
					lexer.step()

				default:
					lexer.SyntaxError()
				}
			}
			lexer.Token = TRegExp
			return

		case '[':
			lexer.step()
			for lexer.codePoint != ']' {
				validateAndStep()
			}
			lexer.step()

		default:
			validateAndStep()
		}
	}
}

func (lexer *Lexer) decodeEscapeSequences(start int, text string) string {
	sb := strings.Builder{}
	i := 0

	for i < len(text) {
		c, width := utf8.DecodeRuneInString(text[i:])
		i += width

		// "\r\n" and "\r" in string literals are not allowed unescaped, so any
		// that reach here are line continuations handled below
		if c != '\\' {
			sb.WriteRune(c)
			continue
		}

		c, width = utf8.DecodeRuneInString(text[i:])
		i += width

		switch c {
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'v':
			sb.WriteByte('\v')

		case '0', '1', '2', '3', '4', '5', '6', '7':
			// Legacy octal escapes such as "\0" and "\101"
			value := int(c - '0')
			for n := 1; n < 3 && i < len(text) && text[i] >= '0' && text[i] <= '7'; n++ {
				next := value*8 + int(text[i]-'0')
				if next > 0xFF {
					break
				}
				value = next
				i++
			}
			sb.WriteRune(rune(value))

		case 'x':
			if i+2 > len(text) || !isHexDigit(rune(text[i])) || !isHexDigit(rune(text[i+1])) {
				lexer.addRangeError(logger.Range{Loc: logger.Loc{Start: int32(start + i - 2)}, Len: 2}, "Syntax error \"x\"")
				panic(LexerPanic{})
			}
			value, _ := strconv.ParseUint(text[i:i+2], 16, 8)
			sb.WriteRune(rune(value))
			i += 2

		case 'u':
			value, next := lexer.decodeUnicodeEscape(start, text, i)
			i = next

			// Combine "\uD83D\uDE00" into a single code point
			if value >= 0xD800 && value <= 0xDBFF && strings.HasPrefix(text[i:], "\\u") {
				if low, afterLow := lexer.decodeUnicodeEscape(start, text, i+2); low >= 0xDC00 && low <= 0xDFFF {
					value = (value-0xD800)<<10 + (low - 0xDC00) + 0x10000
					i = afterLow
				}
			}
			if value >= 0xD800 && value <= 0xDFFF {
				value = utf8.RuneError
			}
			sb.WriteRune(value)

		case '\r':
			// Line continuation
			if i < len(text) && text[i] == '\n' {
				i++
			}

		case '\n', '\u2028', '\u2029':
			// Line continuation

		default:
			sb.WriteRune(c)
		}
	}

	return sb.String()
}

// Decodes "XXXX" or "{X...}" starting at "i", which is just after "\u"
func (lexer *Lexer) decodeUnicodeEscape(start int, text string, i int) (rune, int) {
	var digits string
	if i < len(text) && text[i] == '{' {
		end := strings.IndexByte(text[i:], '}')
		if end == -1 {
			lexer.addRangeError(logger.Range{Loc: logger.Loc{Start: int32(start + i)}, Len: 1}, "Unterminated unicode escape sequence")
			panic(LexerPanic{})
		}
		digits = text[i+1 : i+end]
		i += end + 1
	} else {
		if i+4 > len(text) {
			lexer.addRangeError(logger.Range{Loc: logger.Loc{Start: int32(start + i)}}, "Invalid unicode escape sequence")
			panic(LexerPanic{})
		}
		digits = text[i : i+4]
		i += 4
	}

	value, err := strconv.ParseUint(digits, 16, 32)
	if err != nil || value > utf8.MaxRune {
		lexer.addRangeError(logger.Range{Loc: logger.Loc{Start: int32(start + i - len(digits))}, Len: int32(len(digits))},
			"Invalid unicode escape sequence")
		panic(LexerPanic{})
	}
	return rune(value), i
}

func (lexer *Lexer) step() {
	codePoint, width := utf8.DecodeRuneInString(lexer.source.Contents[lexer.current:])

	// Use -1 to indicate the end of the file
	if width == 0 {
		codePoint = -1
	}

	lexer.codePoint = codePoint
	lexer.end = lexer.current
	lexer.current += width
}

func (lexer *Lexer) addError(loc logger.Loc, text string) {
	if !lexer.IsLogDisabled {
		lexer.log.AddError(&lexer.source, loc, text)
	}
}

func (lexer *Lexer) addRangeError(r logger.Range, text string) {
	if !lexer.IsLogDisabled {
		lexer.log.AddRangeError(&lexer.source, r, text)
	}
}
