package internal

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/davidace/h5pack/internal/env"
	"github.com/davidace/h5pack/internal/pkgid"
	"github.com/davidace/h5pack/pkgs/buildsys/cmake"
	"github.com/davidace/h5pack/recipe"
)

// loadRecipe returns the recipe and options for sourceDir, layering the
// manifest over the built-in h5pp defaults. With no explicit manifest
// path, a missing h5pack.yaml simply selects the defaults.
func loadRecipe(sourceDir, manifestPath string) (recipe.Recipe, recipe.Options, error) {
	path := manifestPath
	if path == "" {
		path = filepath.Join(sourceDir, recipe.DefaultManifest)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return recipe.Default(), recipe.DefaultOptions(), nil
		}
	}
	return recipe.Load(path)
}

// overrideOptions applies option flags the user explicitly set on top of
// the manifest values. Flags keep manifest defaults otherwise.
func overrideOptions(cmd *cobra.Command, o recipe.Options, tests, examples, verbose bool) recipe.Options {
	if cmd.Flags().Changed("tests") {
		o.Tests = tests
	}
	if cmd.Flags().Changed("examples") {
		o.Examples = examples
	}
	if cmd.Flags().Changed("verbose") {
		o.Verbose = verbose
	}
	return o
}

// newDriver wires a CMake driver over the workspace layout for rec.
// Build and staging directories are keyed by the package identity.
func newDriver(rec recipe.Recipe, layout *env.Layout, sourceDir string, verbose bool) (*cmake.CMake, error) {
	abs, err := filepath.Abs(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve source dir: %w", err)
	}
	id := pkgid.Compute(rec, pkgid.Settings{})
	c := cmake.New(abs,
		layout.BuildDir(rec.Name, rec.Version, id),
		layout.PackageDir(rec.Name, rec.Version, id))
	if !verbose {
		c.SetOutput(io.Discard, io.Discard)
	}
	return c, nil
}
