package logger

// Messages are collected by a Log. The stderr log prints each message as it
// arrives in a compiler-style format with the offending line underneath,
// while the deferred log only collects them for the caller to inspect.

import (
	"fmt"
	"os"
	"sort"
	"sync"
)

type Log struct {
	AddMsg    func(Msg)
	HasErrors func() bool
	Done      func() []Msg
}

type LogLevel int8

const (
	LevelNone LogLevel = iota
	LevelDebug
	LevelInfo
	LevelWarning
	LevelError
	LevelSilent
)

// Kinds are ordered by severity so that errors sort first
type MsgKind uint8

const (
	Error MsgKind = iota
	Warning
	Info
	Debug
)

var kindNames = [...]string{
	Error:   "error",
	Warning: "warning",
	Info:    "info",
	Debug:   "debug",
}

// The least verbose level at which each kind is still printed
var kindLevels = [...]LogLevel{
	Error:   LevelError,
	Warning: LevelWarning,
	Info:    LevelInfo,
	Debug:   LevelDebug,
}

func (kind MsgKind) String() string {
	if int(kind) >= len(kindNames) {
		panic("Internal error")
	}
	return kindNames[kind]
}

type Msg struct {
	Kind     MsgKind
	Text     string
	Location *MsgLocation
}

type MsgLocation struct {
	File     string
	Line     int // 1-based
	Column   int // 0-based, in bytes
	Length   int // in bytes
	LineText string
}

// A byte offset into a source file
type Loc struct {
	Start int32
}

type Range struct {
	Loc Loc
	Len int32
}

type Source struct {
	// The name shown in messages, such as "<stdin>" or a relative path
	PrettyPath string
	Contents   string
}

type TerminalInfo struct {
	IsTTY           bool
	UseColorEscapes bool
	Width           int
}

type StderrColor uint8

const (
	ColorIfTerminal StderrColor = iota
	ColorNever
	ColorAlways
)

type OutputOptions struct {
	IncludeSource bool
	ErrorLimit    int
	Color         StderrColor
	LogLevel      LogLevel
}

// Messages without a location come first, then messages are ordered by
// position and finally by kind and text
func msgLess(a Msg, b Msg) bool {
	la, lb := a.Location, b.Location
	if (la == nil) != (lb == nil) {
		return la == nil
	}
	if la != nil {
		switch {
		case la.File != lb.File:
			return la.File < lb.File
		case la.Line != lb.Line:
			return la.Line < lb.Line
		case la.Column != lb.Column:
			return la.Column < lb.Column
		case la.Length != lb.Length:
			return la.Length < lb.Length
		}
	}
	if a.Kind != b.Kind {
		return a.Kind < b.Kind
	}
	return a.Text < b.Text
}

func sortMsgs(msgs []Msg) []Msg {
	sort.SliceStable(msgs, func(i int, j int) bool { return msgLess(msgs[i], msgs[j]) })
	return msgs
}

func plural(noun string, count int) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, noun)
	}
	return fmt.Sprintf("%d %ss", count, noun)
}

func summary(errors int, warnings int) string {
	switch {
	case errors == 0:
		return plural("warning", warnings)
	case warnings == 0:
		return plural("error", errors)
	}
	return plural("warning", warnings) + " and " + plural("error", errors)
}

func hasNoColorEnvironmentVariable() bool {
	// https://no-color.org/
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

func NewStderrLog(options OutputOptions) Log {
	var mutex sync.Mutex
	var msgs []Msg
	terminalInfo := GetTerminalInfo(os.Stderr)
	errors := 0
	warnings := 0
	errorLimitWasHit := false

	switch options.Color {
	case ColorNever:
		terminalInfo.UseColorEscapes = false
	case ColorAlways:
		terminalInfo.UseColorEscapes = SupportsColorEscapes
	}

	write := func(text string) {
		os.Stderr.WriteString(text)
	}

	return Log{
		AddMsg: func(msg Msg) {
			mutex.Lock()
			defer mutex.Unlock()
			msgs = append(msgs, msg)

			// Nothing more is printed once the error limit has been reached
			if errorLimitWasHit {
				return
			}

			switch msg.Kind {
			case Error:
				errors++
			case Warning:
				warnings++
			}
			if options.LogLevel <= kindLevels[msg.Kind] {
				write(msg.String(options, terminalInfo))
			}

			if options.ErrorLimit != 0 && errors >= options.ErrorLimit {
				errorLimitWasHit = true
				if options.LogLevel <= LevelError {
					write(summary(errors, warnings) + " reached (disable error limit with --error-limit=0)\n")
				}
			}
		},
		HasErrors: func() bool {
			mutex.Lock()
			defer mutex.Unlock()
			return errors > 0
		},
		Done: func() []Msg {
			mutex.Lock()
			defer mutex.Unlock()
			if !errorLimitWasHit && options.LogLevel <= LevelInfo && (warnings != 0 || errors != 0) {
				write(summary(errors, warnings) + "\n")
			}
			return sortMsgs(msgs)
		},
	}
}

// Collects messages without printing them
func NewDeferLog() Log {
	var mutex sync.Mutex
	var msgs []Msg
	hasErrors := false

	return Log{
		AddMsg: func(msg Msg) {
			mutex.Lock()
			defer mutex.Unlock()
			if msg.Kind == Error {
				hasErrors = true
			}
			msgs = append(msgs, msg)
		},
		HasErrors: func() bool {
			mutex.Lock()
			defer mutex.Unlock()
			return hasErrors
		},
		Done: func() []Msg {
			mutex.Lock()
			defer mutex.Unlock()
			return sortMsgs(msgs)
		},
	}
}

// Reads the color and log level flags directly so that errors found before
// the real argument parser runs are still printed the way the user asked
func OutputOptionsForArgs(osArgs []string) OutputOptions {
	options := OutputOptions{IncludeSource: true, LogLevel: LevelInfo}
	levels := map[string]LogLevel{
		"debug":   LevelDebug,
		"info":    LevelInfo,
		"warning": LevelWarning,
		"error":   LevelError,
		"silent":  LevelSilent,
	}

	for _, arg := range osArgs {
		switch arg {
		case "--color=false":
			options.Color = ColorNever
		case "--color=true":
			options.Color = ColorAlways
		default:
			const prefix = "--log-level="
			if len(arg) > len(prefix) && arg[:len(prefix)] == prefix {
				if level, ok := levels[arg[len(prefix):]]; ok {
					options.LogLevel = level
				}
			}
		}
	}

	return options
}

func PrintErrorToStderr(osArgs []string, text string) {
	log := NewStderrLog(OutputOptionsForArgs(osArgs))
	log.AddMsg(Msg{Kind: Error, Text: text})
	log.Done()
}

func (log Log) AddError(source *Source, loc Loc, text string) {
	log.AddRangeError(source, Range{Loc: loc}, text)
}

func (log Log) AddRangeError(source *Source, r Range, text string) {
	log.AddMsg(Msg{Kind: Error, Text: text, Location: LocationOrNil(source, r)})
}

func (log Log) AddInfo(text string) {
	log.AddMsg(Msg{Kind: Info, Text: text})
}

func (log Log) AddDebug(source *Source, loc Loc, text string) {
	log.AddMsg(Msg{Kind: Debug, Text: text, Location: LocationOrNil(source, Range{Loc: loc})})
}
