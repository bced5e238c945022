package helpers

import "unicode/utf8"

const hexChars = "0123456789ABCDEF"
const firstASCII = 0x20
const lastASCII = 0x7E
const firstHighSurrogate = 0xD800
const firstLowSurrogate = 0xDC00
const lastLowSurrogate = 0xDFFF

func canPrintWithoutEscape(c rune, quoteChar byte, asciiOnly bool) bool {
	if c <= lastASCII {
		return c >= firstASCII && c != '\\' && c != rune(quoteChar)
	}
	return !asciiOnly && c != '\uFEFF' && c != '\u2028' && c != '\u2029' &&
		(c < firstHighSurrogate || c > lastLowSurrogate)
}

// Picks the quote character that needs the fewest escapes, preferring double
// quotes on a tie.
func BestQuoteCharForString(text string) byte {
	doubles := 0
	singles := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '"':
			doubles++
		case '\'':
			singles++
		}
	}
	if doubles > singles {
		return '\''
	}
	return '"'
}

func QuoteForJS(text string, asciiOnly bool) []byte {
	return QuoteWithChar(text, BestQuoteCharForString(text), asciiOnly)
}

func QuoteWithChar(text string, quoteChar byte, asciiOnly bool) []byte {
	bytes := make([]byte, 0, len(text)+2)
	bytes = append(bytes, quoteChar)
	i := 0
	n := len(text)

	for i < n {
		c, width := utf8.DecodeRuneInString(text[i:])

		// Fast path: a run of characters that don't need escaping
		if canPrintWithoutEscape(c, quoteChar, asciiOnly) {
			start := i
			i += width
			for i < n {
				c, width = utf8.DecodeRuneInString(text[i:])
				if !canPrintWithoutEscape(c, quoteChar, asciiOnly) {
					break
				}
				i += width
			}
			bytes = append(bytes, text[start:i]...)
			continue
		}

		i += width
		switch c {
		case '\b':
			bytes = append(bytes, "\\b"...)
		case '\f':
			bytes = append(bytes, "\\f"...)
		case '\n':
			bytes = append(bytes, "\\n"...)
		case '\r':
			bytes = append(bytes, "\\r"...)
		case '\t':
			bytes = append(bytes, "\\t"...)
		case '\v':
			bytes = append(bytes, "\\v"...)
		case '\\':
			bytes = append(bytes, "\\\\"...)
		case rune(quoteChar):
			bytes = append(bytes, '\\', quoteChar)
		default:
			if c <= 0xFFFF {
				bytes = append(
					bytes,
					'\\', 'u', hexChars[c>>12], hexChars[(c>>8)&15], hexChars[(c>>4)&15], hexChars[c&15],
				)
			} else {
				c -= 0x10000
				hi := firstHighSurrogate + ((c >> 10) & 0x3FF)
				lo := firstLowSurrogate + (c & 0x3FF)
				bytes = append(
					bytes,
					'\\', 'u', hexChars[hi>>12], hexChars[(hi>>8)&15], hexChars[(hi>>4)&15], hexChars[hi&15],
					'\\', 'u', hexChars[lo>>12], hexChars[(lo>>8)&15], hexChars[(lo>>4)&15], hexChars[lo&15],
				)
			}
		}
	}

	return append(bytes, quoteChar)
}
