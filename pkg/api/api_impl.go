package api

import (
	"sync"

	"github.com/classhook/classhook/internal/classhook"
	"github.com/classhook/classhook/internal/config"
	"github.com/classhook/classhook/internal/js_parser"
	"github.com/classhook/classhook/internal/js_printer"
	"github.com/classhook/classhook/internal/logger"
	"github.com/classhook/classhook/internal/renamer"
)

func newLog(options TransformOptions) logger.Log {
	if options.LogLevel == LogLevelSilent {
		return logger.NewDeferLog()
	}
	return logger.NewStderrLog(logger.OutputOptions{
		IncludeSource: true,
		ErrorLimit:    options.ErrorLimit,
		Color:         validateColor(options.Color),
		LogLevel:      validateLogLevel(options.LogLevel),
	})
}

func transformImpl(input string, options TransformOptions) TransformResult {
	log := newLog(options)

	// Convert and validate the options
	transformOptions := config.Options{
		HelperName:       validateHelperName(log, options.HelperName),
		ASCIIOnly:        options.ASCIIOnly,
		MinifyWhitespace: options.MinifyWhitespace,
	}

	// Stop now if there were errors
	if log.HasErrors() {
		msgs := log.Done()
		return TransformResult{
			Errors:   messagesOfKind(logger.Error, msgs),
			Warnings: messagesOfKind(logger.Warning, msgs),
		}
	}

	prettyPath := options.Sourcefile
	if prettyPath == "" {
		prettyPath = "<stdin>"
	}
	source := logger.Source{PrettyPath: prettyPath, Contents: input}

	js, ok := transformSource(log, source, transformOptions)
	msgs := log.Done()
	result := TransformResult{
		Errors:   messagesOfKind(logger.Error, msgs),
		Warnings: messagesOfKind(logger.Warning, msgs),
	}
	if ok && len(result.Errors) == 0 {
		result.JS = js
	}
	return result
}

// Nothing is printed if the file couldn't be parsed or if any class couldn't
// be transformed
func transformSource(log logger.Log, source logger.Source, options config.Options) ([]byte, bool) {
	tree, ok := js_parser.Parse(log, source)
	if !ok {
		return nil, false
	}

	if !classhook.Transform(log, source, &tree, options) {
		return nil, false
	}

	r := renamer.NewNoOpRenamer(tree.Symbols)
	result := js_printer.Print(tree, r, js_printer.Options{
		MinifyWhitespace: options.MinifyWhitespace,
		ASCIIOnly:        options.ASCIIOnly,
	})
	return result.JS, true
}

func transformFilesImpl(files []File, options TransformOptions) []TransformResult {
	results := make([]TransformResult, len(files))
	waitGroup := sync.WaitGroup{}

	// Files share nothing, so they can all be transformed at once
	for i, file := range files {
		waitGroup.Add(1)
		go func(i int, file File) {
			fileOptions := options
			fileOptions.Sourcefile = file.Path
			results[i] = transformImpl(file.Contents, fileOptions)
			waitGroup.Done()
		}(i, file)
	}

	waitGroup.Wait()
	return results
}

func messagesOfKind(kind logger.MsgKind, msgs []logger.Msg) []Message {
	var filtered []Message
	for _, msg := range msgs {
		if msg.Kind == kind {
			var location *Location
			if loc := msg.Location; loc != nil {
				location = &Location{
					File:     loc.File,
					Line:     loc.Line,
					Column:   loc.Column,
					Length:   loc.Length,
					LineText: loc.LineText,
				}
			}
			filtered = append(filtered, Message{
				Text:     msg.Text,
				Location: location,
			})
		}
	}
	return filtered
}
