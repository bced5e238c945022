// This API exposes the class hook transform as a library. Every class in the
// input that has a superclass is rewritten so that the superclass gets a
// chance to observe or replace the new subclass by defining a static
// "extended" method:
//
//	class Model {
//	  static extended(child) {
//	    registry.push(child)
//	  }
//	}
//
// # Transform API
//
// This function transforms a single JavaScript file. Any errors are returned
// in the result instead of being printed unless "LogLevel" is set.
//
// Example usage:
//
//	package main
//
//	import (
//	    "fmt"
//	    "io/ioutil"
//
//	    "github.com/classhook/classhook/pkg/api"
//	)
//
//	func main() {
//	    js, err := ioutil.ReadFile("models.js")
//	    if err != nil {
//	        panic(err)
//	    }
//
//	    result := api.Transform(string(js), api.TransformOptions{
//	        Sourcefile: "models.js",
//	    })
//
//	    fmt.Printf("%d errors and %d warnings\n",
//	        len(result.Errors), len(result.Warnings))
//
//	    fmt.Printf("%s", result.JS)
//	}
package api

type Location struct {
	File     string
	Line     int // 1-based
	Column   int // 0-based, in bytes
	Length   int // in bytes
	LineText string
}

type Message struct {
	Text     string
	Location *Location
}

type StderrColor uint8

const (
	ColorIfTerminal StderrColor = iota
	ColorNever
	ColorAlways
)

type LogLevel uint8

const (
	LogLevelSilent LogLevel = iota
	LogLevelDebug
	LogLevelInfo
	LogLevelWarning
	LogLevelError
)

////////////////////////////////////////////////////////////////////////////////
// Transform API

type TransformOptions struct {
	Color      StderrColor
	ErrorLimit int
	LogLevel   LogLevel

	// The name of the shared helper function that is inserted at the top of
	// the file. This defaults to "__extendedHook". A file that already
	// declares a top-level symbol with this name is assumed to provide the
	// helper itself.
	HelperName string

	ASCIIOnly        bool
	MinifyWhitespace bool

	Sourcefile string
}

type TransformResult struct {
	Errors   []Message
	Warnings []Message

	JS []byte
}

func Transform(input string, options TransformOptions) TransformResult {
	return transformImpl(input, options)
}

type File struct {
	Path     string
	Contents string
}

// Transforms each file independently and in parallel. Each file gets its own
// helper. The results are in the same order as the files. "Sourcefile" in the
// options is replaced by the path of each file.
func TransformFiles(files []File, options TransformOptions) []TransformResult {
	return transformFilesImpl(files, options)
}
