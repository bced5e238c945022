package logger

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

type Colors struct {
	Reset string
	Bold  string
	Dim   string

	Red     string
	Green   string
	Blue    string
	Magenta string
}

var TerminalColors = Colors{
	Reset: "\033[0m",
	Bold:  "\033[1m",
	Dim:   "\033[37m",

	Red:     "\033[31m",
	Green:   "\033[32m",
	Blue:    "\033[34m",
	Magenta: "\033[35m",
}

func (kind MsgKind) color() string {
	switch kind {
	case Warning:
		return TerminalColors.Magenta
	case Info:
		return TerminalColors.Green
	case Debug:
		return TerminalColors.Blue
	}
	return TerminalColors.Red
}

// Renders a message as one of:
//
//	kind: text
//	file: kind: text
//	file:line:column: kind: text
//	<the line of source>
//	<a marker under the range>
func (msg Msg) String(options OutputOptions, terminalInfo TerminalInfo) string {
	colors := Colors{}
	kindColor := ""
	if terminalInfo.UseColorEscapes {
		colors = TerminalColors
		kindColor = msg.Kind.color()
	}

	sb := strings.Builder{}
	sb.WriteString(colors.Bold)

	loc := msg.Location
	switch {
	case loc == nil:
	case !options.IncludeSource:
		sb.WriteString(loc.File + ": ")
	default:
		fmt.Fprintf(&sb, "%s:%d:%d: ", loc.File, loc.Line, loc.Column)
	}

	fmt.Fprintf(&sb, "%s%s: %s%s%s\n", kindColor, msg.Kind.String(), colors.Reset+colors.Bold, msg.Text, colors.Reset)

	if loc != nil && options.IncludeSource {
		s := markSource(*loc, terminalInfo.Width)
		sb.WriteString(s.line[:s.markerStart])
		sb.WriteString(colors.Green + s.line[s.markerStart:s.markerEnd] + colors.Reset)
		sb.WriteString(s.line[s.markerEnd:] + "\n")
		sb.WriteString(colors.Green + strings.Repeat(" ", s.markerStart) + s.marker() + colors.Reset + "\n")
	}

	return sb.String()
}

func LocationOrNil(source *Source, r Range) *MsgLocation {
	if source == nil {
		return nil
	}
	line, column, lineStart, lineEnd := lineAndColumn(source.Contents, int(r.Loc.Start))
	return &MsgLocation{
		File:     source.PrettyPath,
		Line:     line + 1,
		Column:   column,
		Length:   int(r.Len),
		LineText: source.Contents[lineStart:lineEnd],
	}
}

// Returns the 0-based line and column of "offset" along with the bounds of
// the line containing it. JavaScript also ends lines at U+2028 and U+2029.
func lineAndColumn(contents string, offset int) (line int, column int, lineStart int, lineEnd int) {
	if offset > len(contents) {
		offset = len(contents)
	}

	var prev rune
	for i, c := range contents[:offset] {
		switch c {
		case '\n':
			lineStart = i + 1
			if prev != '\r' {
				line++
			}
		case '\r':
			lineStart = i + 1
			line++
		case '\u2028', '\u2029':
			lineStart = i + utf8.RuneLen(c)
			line++
		}
		prev = c
	}

	lineEnd = len(contents)
	if i := strings.IndexAny(contents[offset:], "\r\n\u2028\u2029"); i != -1 {
		lineEnd = offset + i
	}

	column = offset - lineStart
	return
}

// A line of source with the part covered by a message marked
type markedSource struct {
	line        string
	markerStart int
	markerEnd   int
}

func (s markedSource) marker() string {
	if n := s.markerEnd - s.markerStart; n > 1 {
		return strings.Repeat("~", n)
	}
	return "^"
}

const spacesPerTab = 2

func markSource(loc MsgLocation, width int) markedSource {
	text := loc.LineText
	column := clamp(loc.Column, 0, len(text))
	length := clamp(loc.Length, 0, len(text)-column)

	line := expandTabs(text)
	start := len(expandTabs(text[:column]))
	end := start
	if length > 0 {
		end = len(expandTabs(text[:column+length]))
	}
	start = clamp(start, 0, len(line))
	end = clamp(end, start, len(line))

	if width < 1 {
		width = 80
	}
	if column == len(text) {
		// A marker past the end of the line needs a column of its own
		width--
	}
	if len(line) <= width {
		return markedSource{line: line, markerStart: start, markerEnd: end}
	}
	return truncateAround(line, start, end, width)
}

// Cuts a long line down to "width" columns, keeping the marked range in view
// and replacing the cut ends with "..."
func truncateAround(line string, start int, end int, width int) markedSource {
	sliceStart := (start + end - width) / 2
	if sliceStart > start-width/5 {
		sliceStart = start - width/5
	}
	sliceStart = clamp(sliceStart, 0, len(line)-width)
	sliceEnd := sliceStart + width

	s := markedSource{
		line:        line[sliceStart:sliceEnd],
		markerStart: start - sliceStart,
		markerEnd:   end - sliceStart,
	}
	if s.markerStart < 0 {
		s.markerStart = 0
	}
	if s.markerEnd > len(s.line) {
		s.markerEnd = len(s.line)
	}

	if len(s.line) > 3 && sliceStart > 0 {
		s.line = "..." + s.line[3:]
		if s.markerStart < 3 {
			s.markerStart = 3
		}
	}
	if len(s.line) > 3 && sliceEnd < len(line) {
		s.line = s.line[:len(s.line)-3] + "..."
		s.markerEnd = clamp(s.markerEnd, s.markerStart, len(s.line)-3)
	}
	if s.markerEnd < s.markerStart {
		s.markerEnd = s.markerStart
	}
	return s
}

func clamp(value int, lo int, hi int) int {
	if value > hi {
		value = hi
	}
	if value < lo {
		value = lo
	}
	return value
}

func expandTabs(text string) string {
	if !strings.ContainsRune(text, '\t') {
		return text
	}
	sb := strings.Builder{}
	column := 0
	for _, c := range text {
		if c != '\t' {
			sb.WriteRune(c)
			column++
			continue
		}
		for n := spacesPerTab - column%spacesPerTab; n > 0; n-- {
			sb.WriteByte(' ')
			column++
		}
	}
	return sb.String()
}
