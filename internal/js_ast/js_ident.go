package js_ast

import (
	"unicode"
)

var idStartTables = []*unicode.RangeTable{unicode.L, unicode.Nl, unicode.Other_ID_Start}

var idContinueTables = append(idStartTables[:len(idStartTables):len(idStartTables)],
	unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc, unicode.Other_ID_Continue)

func isASCIILetter(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// Reports whether "text" can be written as a bare identifier. Reserved words
// count as identifiers here.
func IsIdentifier(text string) bool {
	for i, c := range text {
		if i == 0 && !IsIdentifierStart(c) || i != 0 && !IsIdentifierContinue(c) {
			return false
		}
	}
	return text != ""
}

func IsIdentifierStart(c rune) bool {
	if c < 0x80 {
		return isASCIILetter(c) || c == '_' || c == '$'
	}
	return unicode.In(c, idStartTables...)
}

func IsIdentifierContinue(c rune) bool {
	if c < 0x80 {
		return isASCIILetter(c) || (c >= '0' && c <= '9') || c == '_' || c == '$'
	}

	// ZWNJ and ZWJ
	if c == 0x200C || c == 0x200D {
		return true
	}
	return unicode.In(c, idContinueTables...)
}
