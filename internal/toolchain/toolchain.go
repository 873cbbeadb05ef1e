// Package toolchain probes the host C++ compiler and validates the
// language standard the package requires.
package toolchain

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/davidace/h5pack/recipe"
)

// Toolchain describes the detected host compiler.
type Toolchain struct {
	Compiler string // resolved compiler command
	Standard int    // highest C++ standard the compiler accepts
}

// runner executes the compiler and returns its stdout.
type runner func(ctx context.Context, name string, args ...string) (string, error)

// Detector probes C++ compilers.
type Detector struct {
	compiler string
	run      runner
}

// Option configures a Detector.
type Option func(*Detector)

// WithCompiler sets a fixed compiler command instead of auto-detection.
func WithCompiler(path string) Option {
	return func(d *Detector) { d.compiler = path }
}

// withRunner overrides command execution, for tests.
func withRunner(r runner) Option {
	return func(d *Detector) { d.run = r }
}

// New creates a Detector. Without options the compiler is taken from
// $CXX, falling back to the first of c++, g++, clang++ found on PATH.
func New(opts ...Option) *Detector {
	d := &Detector{run: runCompiler}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// candidate standards in descending order, with the __cplusplus value
// each one reports.
var standards = []struct {
	flag  string
	std   int
	macro int64
}{
	{"c++23", 23, 202302},
	{"c++20", 20, 202002},
	{"c++17", 17, 201703},
	{"c++14", 14, 201402},
	{"c++11", 11, 201103},
}

// Detect resolves the compiler and probes the highest standard it
// accepts by preprocessing an empty unit under each -std flag.
func (d *Detector) Detect(ctx context.Context) (Toolchain, error) {
	compiler := d.compiler
	if compiler == "" {
		var err error
		compiler, err = resolveCompiler()
		if err != nil {
			return Toolchain{}, err
		}
	}
	for _, cand := range standards {
		out, err := d.run(ctx, compiler, "-std="+cand.flag, "-x", "c++", "-E", "-dM", "-")
		if err != nil {
			continue
		}
		if macro, ok := cplusplusMacro(out); ok && macro >= cand.macro {
			return Toolchain{Compiler: compiler, Standard: cand.std}, nil
		}
	}
	return Toolchain{Compiler: compiler}, fmt.Errorf("failed to detect C++ standard of %s", compiler)
}

// CheckMin validates that tc meets the minimum C++ standard.
func CheckMin(tc Toolchain, min int) error {
	if tc.Standard >= min {
		return nil
	}
	return &recipe.ToolchainError{Compiler: tc.Compiler, Detected: tc.Standard, Minimum: min}
}

func resolveCompiler() (string, error) {
	if cxx := os.Getenv("CXX"); cxx != "" {
		return cxx, nil
	}
	for _, name := range []string{"c++", "g++", "clang++"} {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no C++ compiler found, set CXX or install one of c++, g++, clang++")
}

// cplusplusMacro extracts the __cplusplus value from preprocessor output.
// The macro prints as e.g. "#define __cplusplus 201703L".
func cplusplusMacro(out string) (int64, bool) {
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) != 3 || fields[0] != "#define" || fields[1] != "__cplusplus" {
			continue
		}
		value := strings.TrimSuffix(fields[2], "L")
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

func runCompiler(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader("")
	out, err := cmd.Output()
	return string(out), err
}
