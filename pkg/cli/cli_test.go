package cli

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/classhook/classhook/internal/test"
	"github.com/classhook/classhook/pkg/api"
)

func TestParseTransformOptions(t *testing.T) {
	options, err := ParseTransformOptions([]string{
		"--helper-name=hook",
		"--sourcefile=input.js",
		"--minify-whitespace",
		"--ascii-only",
		"--error-limit=5",
		"--color=false",
		"--log-level=warning",
	})
	if err != nil {
		t.Fatal(err)
	}
	test.AssertEqual(t, options, api.TransformOptions{
		HelperName:       "hook",
		Sourcefile:       "input.js",
		MinifyWhitespace: true,
		ASCIIOnly:        true,
		ErrorLimit:       5,
		Color:            api.ColorNever,
		LogLevel:         api.LogLevelWarning,
	})
}

func TestParseErrors(t *testing.T) {
	expectError := func(args []string, expected string) {
		t.Helper()
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			t.Helper()
			_, err := parseOptionsForRun(args)
			if err == nil {
				t.Fatal("Expected an error")
			}
			test.AssertEqual(t, err.Error(), expected)
		})
	}

	expectError([]string{"--bundle"}, "Invalid flag: \"--bundle\"")
	expectError([]string{"--color=maybe"}, "Invalid color: \"maybe\" (valid: false, true)")
	expectError([]string{"--log-level=loud"}, "Invalid log level: \"loud\" (valid: debug, info, warning, error, silent)")
	expectError([]string{"--error-limit=-1"}, "Invalid error limit: \"-1\"")
	expectError([]string{"--error-limit=x"}, "Invalid error limit: \"x\"")
	expectError([]string{"a.js", "b.js"}, "Must use \"outdir\" when there are multiple input files")
	expectError([]string{"a.js", "--outfile=x.js", "--outdir=out"}, "Cannot use both \"outfile\" and \"outdir\"")
	expectError([]string{"--outdir=out"}, "Cannot use \"outdir\" when reading from stdin")
	expectError([]string{"a.js", "--sourcefile=b.js"}, "Cannot use \"sourcefile\" with an input file")
	expectError([]string{"a/x.js", "b/x.js", "--outdir=out"}, "Both \"a/x.js\" and \"b/x.js\" would be written to \"out/x.js\"")
	expectError([]string{"a.js", "a.js", "--outdir=out"}, "Both \"a.js\" and \"a.js\" would be written to \"out/a.js\"")
}

func TestRunStdin(t *testing.T) {
	stdout := bytes.Buffer{}
	stdin := strings.NewReader("class Foo extends Bar {}")
	code := runImpl([]string{"--log-level=silent", "--helper-name=h", "--minify-whitespace"}, stdin, &stdout)
	test.AssertEqual(t, code, 0)

	js := stdout.String()
	if !strings.HasPrefix(js, "var h=function(") || !strings.HasSuffix(js, `return h(_Foo,Bar,"Foo")})();`) {
		t.Fatalf("Unexpected output:\n%s", js)
	}
}

func TestRunStdinError(t *testing.T) {
	stdout := bytes.Buffer{}
	code := runImpl([]string{"--log-level=silent"}, strings.NewReader("class {"), &stdout)
	test.AssertEqual(t, code, 1)
	test.AssertEqual(t, stdout.Len(), 0)
}

func TestRunFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.js")
	b := filepath.Join(dir, "b.js")
	if err := ioutil.WriteFile(a, []byte("class A extends Base {}"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := ioutil.WriteFile(b, []byte("class B {}"), 0644); err != nil {
		t.Fatal(err)
	}

	outdir := filepath.Join(dir, "out")
	stdout := bytes.Buffer{}
	code := runImpl([]string{"--log-level=silent", a, b, "--outdir=" + outdir}, strings.NewReader(""), &stdout)
	test.AssertEqual(t, code, 0)
	test.AssertEqual(t, stdout.Len(), 0)

	outA, err := ioutil.ReadFile(filepath.Join(outdir, "a.js"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(outA), "return __extendedHook(_A, Base, \"A\");") {
		t.Fatalf("Unexpected output:\n%s", outA)
	}

	outB, err := ioutil.ReadFile(filepath.Join(outdir, "b.js"))
	if err != nil {
		t.Fatal(err)
	}
	test.AssertEqualWithDiff(t, string(outB), "class B {\n}\n")

	// A single file goes to stdout unless there's an output file
	stdout.Reset()
	code = runImpl([]string{"--log-level=silent", b}, strings.NewReader(""), &stdout)
	test.AssertEqual(t, code, 0)
	test.AssertEqualWithDiff(t, stdout.String(), "class B {\n}\n")

	outfile := filepath.Join(dir, "nested", "b.out.js")
	code = runImpl([]string{"--log-level=silent", b, "--outfile=" + outfile}, strings.NewReader(""), &stdout)
	test.AssertEqual(t, code, 0)
	outfileContents, err := ioutil.ReadFile(outfile)
	if err != nil {
		t.Fatal(err)
	}
	test.AssertEqualWithDiff(t, string(outfileContents), "class B {\n}\n")
}

func TestRunMissingFile(t *testing.T) {
	dir := t.TempDir()
	stdout := bytes.Buffer{}
	code := runImpl([]string{"--log-level=silent", filepath.Join(dir, "missing.js")}, strings.NewReader(""), &stdout)
	test.AssertEqual(t, code, 1)
}
