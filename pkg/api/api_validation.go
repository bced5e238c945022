package api

import (
	"fmt"

	"github.com/classhook/classhook/internal/config"
	"github.com/classhook/classhook/internal/js_ast"
	"github.com/classhook/classhook/internal/js_lexer"
	"github.com/classhook/classhook/internal/logger"
)

func validateColor(value StderrColor) logger.StderrColor {
	switch value {
	case ColorIfTerminal:
		return logger.ColorIfTerminal
	case ColorNever:
		return logger.ColorNever
	case ColorAlways:
		return logger.ColorAlways
	default:
		panic("Invalid color")
	}
}

func validateLogLevel(value LogLevel) logger.LogLevel {
	switch value {
	case LogLevelSilent:
		return logger.LevelSilent
	case LogLevelDebug:
		return logger.LevelDebug
	case LogLevelInfo:
		return logger.LevelInfo
	case LogLevelWarning:
		return logger.LevelWarning
	case LogLevelError:
		return logger.LevelError
	default:
		panic("Invalid log level")
	}
}

// The helper is declared with "var" at the top level, so its name must be
// usable as a variable name in strict mode code
func validateHelperName(log logger.Log, name string) string {
	if name == "" {
		return config.DefaultHelperName
	}
	if !js_ast.IsIdentifier(name) || isKeyword(name) || js_lexer.StrictModeReservedWords[name] {
		log.AddError(nil, logger.Loc{}, fmt.Sprintf("Invalid helper name: %q", name))
		return ""
	}
	return name
}

func isKeyword(name string) bool {
	_, ok := js_lexer.Keywords[name]
	return ok
}
