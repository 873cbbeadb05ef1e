package recipe

import "fmt"

// The four failure classes of a packaging run. Each one is fatal to the
// current invocation and propagates verbatim to the caller.

// ToolchainError reports that the host toolchain does not meet the
// package's minimum language-standard requirement.
type ToolchainError struct {
	Compiler string
	Detected int // C++ standard the toolchain provides, 0 if unknown
	Minimum  int
}

func (e *ToolchainError) Error() string {
	if e.Detected == 0 {
		return fmt.Sprintf("toolchain %s: could not detect a C++%d capable standard", e.Compiler, e.Minimum)
	}
	return fmt.Sprintf("toolchain %s provides C++%d, need at least C++%d", e.Compiler, e.Detected, e.Minimum)
}

// BuildError reports that the external build driver failed during
// configure or compile.
type BuildError struct {
	Step string // "configure" or "build"
	Err  error
}

func (e *BuildError) Error() string { return fmt.Sprintf("build step %s failed: %v", e.Step, e.Err) }
func (e *BuildError) Unwrap() error { return e.Err }

// TestFailure reports that the test suite reported failures.
type TestFailure struct {
	Err error
}

func (e *TestFailure) Error() string { return fmt.Sprintf("test suite failed: %v", e.Err) }
func (e *TestFailure) Unwrap() error { return e.Err }

// InstallError reports that installing artifacts into the package
// staging area failed.
type InstallError struct {
	Err error
}

func (e *InstallError) Error() string { return fmt.Sprintf("install failed: %v", e.Err) }
func (e *InstallError) Unwrap() error { return e.Err }
