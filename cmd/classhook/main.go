package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/classhook/classhook/internal/logger"
	"github.com/classhook/classhook/pkg/cli"
)

const classhookVersion = "0.1.0"

var helpText = func(colors logger.Colors) string {
	return `
` + colors.Bold + `Usage:` + colors.Reset + `
  classhook [options] [input files]

` + colors.Bold + `Options:` + colors.Reset + `
  --outfile=...         The output file (for one input file)
  --outdir=...          The output directory (for multiple input files)
  --helper-name=...     The name of the inserted helper (default
                        "__extendedHook")
  --minify-whitespace   Remove whitespace
  --ascii-only          Escape all non-ASCII characters in the output
  --color=...           Force use of color terminal escapes (true | false)

` + colors.Bold + `Advanced options:` + colors.Reset + `
  --version                 Print the current version (` + classhookVersion + `) and exit
  --sourcefile=...          Set the file name used in messages (for stdin)
  --error-limit=...         Maximum error count or 0 to disable (default 10)
  --log-level=...           Disable logging (debug | info | warning | error | silent)
  --cpuprofile=...          Write a CPU profile to this file
  --trace=...               Write a Go execution trace to this file

` + colors.Bold + `Examples:` + colors.Reset + `
  ` + colors.Dim + `# Rewrite every subclass in models.js` + colors.Reset + `
  classhook models.js --outfile=out.js

  ` + colors.Dim + `# Rewrite several files into one directory` + colors.Reset + `
  classhook src/a.js src/b.js --outdir=dist

  ` + colors.Dim + `# Provide input via stdin, get output via stdout` + colors.Reset + `
  classhook < input.js > output.js

`
}

func printHelp(osArgs []string) {
	colors := logger.Colors{}
	if logger.GetTerminalInfo(os.Stdout).UseColorEscapes && logger.OutputOptionsForArgs(osArgs).Color != logger.ColorNever {
		colors = logger.TerminalColors
	}
	fmt.Fprint(os.Stdout, helpText(colors))
}

func main() {
	osArgs := os.Args[1:]
	traceFile := ""
	cpuprofileFile := ""

	// Do an initial scan over the argument list
	argsEnd := 0
	for _, arg := range osArgs {
		switch {
		// Show help if a common help flag is provided
		case arg == "-h", arg == "-help", arg == "--help", arg == "/?":
			printHelp(os.Args)
			os.Exit(0)

		// Special-case the version flag here
		case arg == "--version":
			fmt.Printf("%s\n", classhookVersion)
			os.Exit(0)

		case strings.HasPrefix(arg, "--trace="):
			traceFile = arg[len("--trace="):]

		case strings.HasPrefix(arg, "--cpuprofile="):
			cpuprofileFile = arg[len("--cpuprofile="):]

		default:
			// Strip any arguments that were handled above
			osArgs[argsEnd] = arg
			argsEnd++
		}
	}
	osArgs = osArgs[:argsEnd]

	// Print help text when there are no arguments
	if len(osArgs) == 0 && logger.GetTerminalInfo(os.Stdin).IsTTY {
		printHelp(osArgs)
		os.Exit(0)
	}

	// Capture the defer statements below so they run before exiting
	exitCode := 1
	func() {
		// To view a CPU trace, use "go tool trace [file]"
		if traceFile != "" {
			if done := createTraceFile(osArgs, traceFile); done == nil {
				return
			} else {
				defer done()
			}
		}

		if cpuprofileFile != "" {
			if done := createCpuprofileFile(osArgs, cpuprofileFile); done == nil {
				return
			} else {
				defer done()
			}
		}

		exitCode = cli.Run(osArgs)
	}()

	os.Exit(exitCode)
}
