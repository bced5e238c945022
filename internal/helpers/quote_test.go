package helpers

import "testing"

func expectQuoted(t *testing.T, text string, asciiOnly bool, expected string) {
	t.Helper()
	if observed := string(QuoteForJS(text, asciiOnly)); observed != expected {
		t.Fatalf("QuoteForJS(%q) = %s, expected %s", text, observed, expected)
	}
}

func TestQuoteForJS(t *testing.T) {
	expectQuoted(t, "Foo", false, `"Foo"`)
	expectQuoted(t, `say "hi"`, false, `'say "hi"'`)
	expectQuoted(t, `it's`, false, `"it's"`)
	expectQuoted(t, "a\nb\tc\\", false, `"a\nb\tc\\"`)
	expectQuoted(t, "\x00", false, `"\u0000"`)
	expectQuoted(t, "\u00E9", false, "\"\u00E9\"")
	expectQuoted(t, "\u00E9", true, `"\u00E9"`)
	expectQuoted(t, "\U0001F600", true, `"\uD83D\uDE00"`)
	expectQuoted(t, "\u2028", false, `"\u2028"`)
}
