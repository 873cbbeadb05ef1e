// Package recipe defines the package descriptor consumed by the h5pack
// build orchestrator: static metadata, pinned dependencies, user-tunable
// options and the configuration forwarded to the build driver.
package recipe

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/davidace/h5pack/pkgs/buildsys"
)

// Dependency pins a required library at an exact version.
type Dependency struct {
	Name    string
	Version string
}

// ParseDependency parses a "name/version" reference.
// The version must be an exact pin; ranges are resolved by the external
// package manager, never here.
func ParseDependency(ref string) (Dependency, error) {
	name, version, ok := strings.Cut(ref, "/")
	if !ok || name == "" || version == "" {
		return Dependency{}, fmt.Errorf("invalid dependency reference %q, expected name/version", ref)
	}
	if strings.ContainsAny(version, "*^~<>=[] ") {
		return Dependency{}, fmt.Errorf("dependency %s: version %q is not an exact pin", name, version)
	}
	if !semver.IsValid("v" + version) {
		return Dependency{}, fmt.Errorf("dependency %s: invalid version %q", name, version)
	}
	return Dependency{Name: name, Version: version}, nil
}

func (d Dependency) String() string { return d.Name + "/" + d.Version }

// SCM describes the source-control origin of the packaged sources.
// URL and Revision hold "auto" until detected from the local checkout.
type SCM struct {
	Type     string
	URL      string
	Revision string
}

// Auto is the placeholder for scm fields resolved from the working copy.
const Auto = "auto"

// Recipe is the package descriptor: declarative metadata plus the
// pinned dependency list. It carries no execution logic.
type Recipe struct {
	Name        string
	Version     string
	Description string
	Homepage    string
	URL         string
	License     string
	Author      string
	Topics      []string
	Requires    []Dependency
	SCM         SCM
}

// Ref returns the "name/version" reference of the package itself.
func (r *Recipe) Ref() string { return r.Name + "/" + r.Version }

// Default returns the built-in descriptor for the h5pp library.
func Default() Recipe {
	return Recipe{
		Name:        "h5pp",
		Version:     "1.8.1",
		Description: "A C++17 wrapper for HDF5 with focus on simplicity",
		Homepage:    "https://github.com/DavidAce/h5pp",
		URL:         "https://github.com/DavidAce/h5pp",
		License:     "MIT",
		Author:      "DavidAce <aceituno@kth.se>",
		Topics:      []string{"hdf5", "binary", "storage"},
		Requires: []Dependency{
			{Name: "eigen", Version: "3.3.7"},
			{Name: "spdlog", Version: "1.7.0"},
			{Name: "hdf5", Version: "1.12.0"},
		},
		SCM: SCM{Type: "git", URL: Auto, Revision: Auto},
	}
}

// MinCppStd is the minimum C++ language standard the package requires.
const MinCppStd = 17

// Options are the user-tunable switches of a build invocation.
type Options struct {
	Tests    bool
	Examples bool
	Verbose  bool
}

// DefaultOptions returns the option defaults: tests on, everything else off.
func DefaultOptions() Options {
	return Options{Tests: true}
}

// DownloadMethod identifies how dependencies were obtained. There is no
// fallback acquisition path: the external package manager is the only source.
const DownloadMethod = "conan"

// BuildConfig is the resolved option set for a single build invocation.
// It is constructed once from Options and read-only afterwards.
type BuildConfig struct {
	tests    bool
	examples bool
	verbose  bool
}

// NewBuildConfig freezes the given options into a build configuration.
func NewBuildConfig(o Options) BuildConfig {
	return BuildConfig{tests: o.Tests, examples: o.Examples, verbose: o.Verbose}
}

// Tests reports whether the test suite is built and executed.
func (c BuildConfig) Tests() bool { return c.tests }

// Examples reports whether example programs are built.
func (c BuildConfig) Examples() bool { return c.examples }

// Verbose reports whether the underlying build prints diagnostic info.
func (c BuildConfig) Verbose() bool { return c.verbose }

// Apply forwards the configuration to the build driver as cache defines,
// one per option plus the constant download method tag.
func (c BuildConfig) Apply(bs buildsys.BuildSystem) {
	bs.DefineBool("H5PP_ENABLE_TESTS", c.tests)
	bs.DefineBool("H5PP_BUILD_EXAMPLES", c.examples)
	bs.DefineBool("H5PP_PRINT_INFO", c.verbose)
	bs.Define("H5PP_DOWNLOAD_METHOD", DownloadMethod)
}
