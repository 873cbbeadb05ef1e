package internal

import (
	"fmt"

	"github.com/qiniu/x/log"
	"github.com/spf13/cobra"

	"github.com/davidace/h5pack/internal/build"
	"github.com/davidace/h5pack/internal/deps"
	"github.com/davidace/h5pack/internal/env"
)

var (
	buildRecipe    string
	buildSource    string
	buildWorkspace string
	buildGenerator string
	buildType      string
	buildToolchain string
	buildTests     bool
	buildExamples  bool
	buildVerbose   bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Configure and build the package",
	Long: `Build validates the host toolchain, forwards the recipe options to
CMake, compiles the package and, unless disabled, runs its test suite.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildRecipe, "recipe", "r", "", "Recipe manifest path (default <source>/h5pack.yaml)")
	buildCmd.Flags().StringVarP(&buildSource, "source", "s", ".", "Source directory")
	buildCmd.Flags().StringVarP(&buildWorkspace, "workspace", "w", "", "Workspace root (default user cache)")
	buildCmd.Flags().StringVarP(&buildGenerator, "generator", "G", "", "CMake generator")
	buildCmd.Flags().StringVar(&buildType, "build-type", "Release", "CMAKE_BUILD_TYPE")
	buildCmd.Flags().StringVar(&buildToolchain, "toolchain", "", "CMake toolchain file")
	buildCmd.Flags().BoolVar(&buildTests, "tests", true, "Build and run the test suite")
	buildCmd.Flags().BoolVar(&buildExamples, "examples", false, "Build example programs")
	buildCmd.Flags().BoolVarP(&buildVerbose, "verbose", "v", false, "Enable verbose build output")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	rec, opts, err := loadRecipe(buildSource, buildRecipe)
	if err != nil {
		return err
	}
	opts = overrideOptions(cmd, opts, buildTests, buildExamples, buildVerbose)
	if opts.Verbose {
		log.SetOutputLevel(log.Ldebug)
	}

	layout, err := env.NewLayout(buildWorkspace)
	if err != nil {
		return fmt.Errorf("failed to resolve workspace: %w", err)
	}

	driver, err := newDriver(rec, layout, buildSource, opts.Verbose)
	if err != nil {
		return err
	}
	if buildGenerator != "" {
		driver.Generator(buildGenerator)
	}
	if buildType != "" {
		driver.BuildType(buildType)
	}
	if buildToolchain != "" {
		driver.Toolchain(buildToolchain)
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

	if err := builder.Configure(ctx); err != nil {
		return err
	}
	if err := builder.Build(ctx); err != nil {
		return err
	}

	fmt.Printf("built %s (id %s)\n", rec.Ref(), builder.ID())
	return nil
}
