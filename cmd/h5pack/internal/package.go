package internal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/davidace/h5pack/internal/build"
	"github.com/davidace/h5pack/internal/deps"
	"github.com/davidace/h5pack/internal/env"
)

var (
	packageRecipe    string
	packageSource    string
	packageWorkspace string
	packageVerbose   bool
)

var packageCmd = &cobra.Command{
	Use:   "package",
	Short: "Install the built artifacts into the package staging area",
	Long:  `Package runs the CMake install step of a previous build, copying artifacts into the workspace staging directory.`,
	RunE:  runPackage,
}

func init() {
	packageCmd.Flags().StringVarP(&packageRecipe, "recipe", "r", "", "Recipe manifest path (default <source>/h5pack.yaml)")
	packageCmd.Flags().StringVarP(&packageSource, "source", "s", ".", "Source directory")
	packageCmd.Flags().StringVarP(&packageWorkspace, "workspace", "w", "", "Workspace root (default user cache)")
	packageCmd.Flags().BoolVarP(&packageVerbose, "verbose", "v", false, "Enable verbose install output")
	rootCmd.AddCommand(packageCmd)
}

func runPackage(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	rec, opts, err := loadRecipe(packageSource, packageRecipe)
	if err != nil {
		return err
	}
	if packageVerbose {
		opts.Verbose = true
	}

	layout, err := env.NewLayout(packageWorkspace)
	if err != nil {
		return fmt.Errorf("failed to resolve workspace: %w", err)
	}

	driver, err := newDriver(rec, layout, packageSource, opts.Verbose)
	if err != nil {
		return err
	}

	builder, err := build.NewBuilder(build.Options{
		Recipe:   rec,
		Opts:     opts,
		BuildSys: driver,
		Deps:     deps.NewCache(layout),
	})
	if err != nil {
		return err
	}

	if err := builder.Package(ctx); err != nil {
		return err
	}

	fmt.Printf("packaged %s into %s\n", rec.Ref(), driver.OutputDir())
	return nil
}
