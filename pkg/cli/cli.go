package cli

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/classhook/classhook/internal/logger"
	"github.com/classhook/classhook/pkg/api"
)

// Returns the exit code. Input comes from the files named in the arguments
// or from stdin if there are none. Output goes to "--outfile", "--outdir",
// or stdout.
func Run(osArgs []string) int {
	return runImpl(osArgs, os.Stdin, os.Stdout)
}

func runImpl(osArgs []string, stdin io.Reader, stdout io.Writer) int {
	runOpts, err := parseOptionsForRun(osArgs)
	if err != nil {
		logger.PrintErrorToStderr(osArgs, err.Error())
		return 1
	}

	// Read the input from stdin
	if len(runOpts.inputFiles) == 0 {
		bytes, err := ioutil.ReadAll(stdin)
		if err != nil {
			logger.PrintErrorToStderr(osArgs, fmt.Sprintf(
				"Could not read from stdin: %s", err.Error()))
			return 1
		}

		// Run the transform and stop if there were errors
		result := api.Transform(string(bytes), runOpts.transform)
		if len(result.Errors) > 0 {
			return 1
		}

		return writeOutput(osArgs, stdout, runOpts.outfile, result.JS)
	}

	// Read all input files up front so nothing is written if one is missing
	files := make([]api.File, 0, len(runOpts.inputFiles))
	for _, path := range runOpts.inputFiles {
		bytes, err := ioutil.ReadFile(path)
		if err != nil {
			logger.PrintErrorToStderr(osArgs, fmt.Sprintf(
				"Could not read from file %q: %s", path, err.Error()))
			return 1
		}
		files = append(files, api.File{Path: path, Contents: string(bytes)})
	}

	results := api.TransformFiles(files, runOpts.transform)
	for _, result := range results {
		if len(result.Errors) > 0 {
			return 1
		}
	}

	if runOpts.outdir == "" {
		return writeOutput(osArgs, stdout, runOpts.outfile, results[0].JS)
	}

	exitCode := 0
	for i, result := range results {
		outPath := outputPathInDir(runOpts.outdir, files[i].Path)
		if code := writeOutput(osArgs, stdout, outPath, result.JS); code != 0 {
			exitCode = code
		}
	}
	return exitCode
}

// An empty path means stdout
func writeOutput(osArgs []string, stdout io.Writer, path string, contents []byte) int {
	if path == "" {
		if _, err := stdout.Write(contents); err != nil {
			logger.PrintErrorToStderr(osArgs, fmt.Sprintf(
				"Failed to write to stdout: %s", err.Error()))
			return 1
		}
		return 0
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		logger.PrintErrorToStderr(osArgs, fmt.Sprintf(
			"Failed to create output directory: %s", err.Error()))
		return 1
	}
	if err := ioutil.WriteFile(path, contents, 0644); err != nil {
		logger.PrintErrorToStderr(osArgs, fmt.Sprintf(
			"Failed to write to output file: %s", err.Error()))
		return 1
	}
	return 0
}

func parseOptionsForRun(osArgs []string) (runOptions, error) {
	runOpts := runOptions{}

	// Apply defaults appropriate for the CLI
	runOpts.transform.ErrorLimit = 10
	runOpts.transform.LogLevel = api.LogLevelInfo

	if err := parseOptionsImpl(osArgs, &runOpts); err != nil {
		return runOptions{}, err
	}
	if err := validateRunOptions(&runOpts); err != nil {
		return runOptions{}, err
	}
	return runOpts, nil
}
