package logger_test

import (
	"strings"
	"testing"

	"github.com/classhook/classhook/internal/logger"
	"github.com/classhook/classhook/internal/test"
)

func TestMsgStringWithSource(t *testing.T) {
	source := test.SourceForTest("let a = 1;\nclass Foo extends {}\n")
	msg := logger.Msg{
		Kind:     logger.Error,
		Text:     "Unexpected \"{\"",
		Location: logger.LocationOrNil(&source, logger.Range{Loc: logger.Loc{Start: 29}, Len: 1}),
	}
	text := msg.String(logger.OutputOptions{IncludeSource: true}, logger.TerminalInfo{})
	test.AssertEqualWithDiff(t, text, "<stdin>:2:18: error: Unexpected \"{\"\nclass Foo extends {}\n                  ^\n")
}

func TestMsgStringWithoutSource(t *testing.T) {
	source := test.SourceForTest("class Foo extends Bar {}")
	msg := logger.Msg{
		Kind:     logger.Warning,
		Text:     "Something odd",
		Location: logger.LocationOrNil(&source, logger.Range{Loc: logger.Loc{Start: 6}, Len: 3}),
	}
	test.AssertEqualWithDiff(t, msg.String(logger.OutputOptions{}, logger.TerminalInfo{}), "<stdin>: warning: Something odd\n")

	msg.Location = nil
	test.AssertEqualWithDiff(t, msg.String(logger.OutputOptions{}, logger.TerminalInfo{}), "warning: Something odd\n")
}

func TestMsgStringMarkerRange(t *testing.T) {
	source := test.SourceForTest("\tclass Foo extends Bar {}")
	msg := logger.Msg{
		Kind:     logger.Error,
		Text:     "Bad",
		Location: logger.LocationOrNil(&source, logger.Range{Loc: logger.Loc{Start: 7}, Len: 3}),
	}
	text := msg.String(logger.OutputOptions{IncludeSource: true}, logger.TerminalInfo{})
	test.AssertEqualWithDiff(t, text, "<stdin>:1:7: error: Bad\n  class Foo extends Bar {}\n        ~~~\n")
}

func TestDeferLogSortsMessages(t *testing.T) {
	source := test.SourceForTest("a\nb\n")
	log := logger.NewDeferLog()
	log.AddError(&source, logger.Loc{Start: 2}, "second")
	log.AddInfo("summary")
	log.AddError(&source, logger.Loc{Start: 0}, "first")

	test.AssertEqual(t, log.HasErrors(), true)
	msgs := log.Done()
	test.AssertEqual(t, len(msgs), 3)
	test.AssertEqual(t, msgs[0].Text, "summary")
	test.AssertEqual(t, msgs[1].Text, "first")
	test.AssertEqual(t, msgs[2].Text, "second")
}

func TestDeferLogWithoutErrors(t *testing.T) {
	log := logger.NewDeferLog()
	log.AddDebug(nil, logger.Loc{}, "noise")
	test.AssertEqual(t, log.HasErrors(), false)
	test.AssertEqual(t, len(log.Done()), 1)
}

func TestOutputOptionsForArgs(t *testing.T) {
	options := logger.OutputOptionsForArgs([]string{"--color=false", "--log-level=debug", "x.js"})
	test.AssertEqual(t, options.Color, logger.ColorNever)
	test.AssertEqual(t, options.LogLevel, logger.LevelDebug)
	test.AssertEqual(t, options.IncludeSource, true)
}

func TestMsgStringLineSeparators(t *testing.T) {
	source := test.SourceForTest("a\u2028b c")
	msg := logger.Msg{
		Kind:     logger.Error,
		Text:     "X",
		Location: logger.LocationOrNil(&source, logger.Range{Loc: logger.Loc{Start: 6}}),
	}
	text := msg.String(logger.OutputOptions{IncludeSource: true}, logger.TerminalInfo{})
	test.AssertEqualWithDiff(t, text, "<stdin>:2:2: error: X\nb c\n  ^\n")
}

func TestMsgStringLongLine(t *testing.T) {
	source := test.SourceForTest(strings.Repeat("x", 100))
	msg := logger.Msg{
		Kind:     logger.Error,
		Text:     "X",
		Location: logger.LocationOrNil(&source, logger.Range{Loc: logger.Loc{Start: 50}, Len: 1}),
	}
	text := msg.String(logger.OutputOptions{IncludeSource: true}, logger.TerminalInfo{})
	expected := "<stdin>:1:50: error: X\n..." + strings.Repeat("x", 74) + "...\n" + strings.Repeat(" ", 40) + "^\n"
	test.AssertEqualWithDiff(t, text, expected)
}
