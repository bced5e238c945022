package cli

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/classhook/classhook/pkg/api"
)

type runOptions struct {
	transform api.TransformOptions

	// Reading from stdin if this is empty
	inputFiles []string

	outfile string
	outdir  string
}

func ParseTransformOptions(osArgs []string) (options api.TransformOptions, err error) {
	var runOpts runOptions
	err = parseOptionsImpl(osArgs, &runOpts)
	options = runOpts.transform
	return
}

func parseOptionsImpl(osArgs []string, runOpts *runOptions) error {
	transformOpts := &runOpts.transform

	for _, arg := range osArgs {
		switch {
		case arg == "--minify-whitespace":
			transformOpts.MinifyWhitespace = true

		case arg == "--ascii-only":
			transformOpts.ASCIIOnly = true

		case strings.HasPrefix(arg, "--helper-name="):
			transformOpts.HelperName = arg[len("--helper-name="):]

		case strings.HasPrefix(arg, "--sourcefile="):
			transformOpts.Sourcefile = arg[len("--sourcefile="):]

		case strings.HasPrefix(arg, "--outfile="):
			runOpts.outfile = arg[len("--outfile="):]

		case strings.HasPrefix(arg, "--outdir="):
			runOpts.outdir = arg[len("--outdir="):]

		case strings.HasPrefix(arg, "--error-limit="):
			value := arg[len("--error-limit="):]
			limit, err := strconv.Atoi(value)
			if err != nil || limit < 0 {
				return fmt.Errorf("Invalid error limit: %q", value)
			}
			transformOpts.ErrorLimit = limit

		case strings.HasPrefix(arg, "--color="):
			value := arg[len("--color="):]
			switch value {
			case "false":
				transformOpts.Color = api.ColorNever
			case "true":
				transformOpts.Color = api.ColorAlways
			default:
				return fmt.Errorf("Invalid color: %q (valid: false, true)", value)
			}

		case strings.HasPrefix(arg, "--log-level="):
			value := arg[len("--log-level="):]
			switch value {
			case "debug":
				transformOpts.LogLevel = api.LogLevelDebug
			case "info":
				transformOpts.LogLevel = api.LogLevelInfo
			case "warning":
				transformOpts.LogLevel = api.LogLevelWarning
			case "error":
				transformOpts.LogLevel = api.LogLevelError
			case "silent":
				transformOpts.LogLevel = api.LogLevelSilent
			default:
				return fmt.Errorf("Invalid log level: %q (valid: debug, info, warning, error, silent)", value)
			}

		case !strings.HasPrefix(arg, "-"):
			runOpts.inputFiles = append(runOpts.inputFiles, arg)

		default:
			return fmt.Errorf("Invalid flag: %q", arg)
		}
	}

	return nil
}

// Checks the combinations of flags that the flags themselves can't check
func validateRunOptions(runOpts *runOptions) error {
	if runOpts.outfile != "" && runOpts.outdir != "" {
		return fmt.Errorf("Cannot use both \"outfile\" and \"outdir\"")
	}

	switch len(runOpts.inputFiles) {
	case 0:
		if runOpts.outdir != "" {
			return fmt.Errorf("Cannot use \"outdir\" when reading from stdin")
		}

	case 1:
		if runOpts.transform.Sourcefile != "" {
			return fmt.Errorf("Cannot use \"sourcefile\" with an input file")
		}

	default:
		if runOpts.outdir == "" {
			return fmt.Errorf("Must use \"outdir\" when there are multiple input files")
		}
		if runOpts.transform.Sourcefile != "" {
			return fmt.Errorf("Cannot use \"sourcefile\" with an input file")
		}

		// Each input file is written to its own name in the output directory
		seen := make(map[string]string, len(runOpts.inputFiles))
		for _, path := range runOpts.inputFiles {
			outPath := outputPathInDir(runOpts.outdir, path)
			if other, ok := seen[outPath]; ok {
				return fmt.Errorf("Both %q and %q would be written to %q", other, path, outPath)
			}
			seen[outPath] = path
		}
	}

	return nil
}

func outputPathInDir(outdir string, inputPath string) string {
	return filepath.Join(outdir, filepath.Base(inputPath))
}
