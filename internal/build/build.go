// Package build orchestrates the packaging lifecycle of a recipe:
// configure, build, optional test run, then install into the staging
// area. Each step delegates to the external build driver; failures map
// onto the recipe error taxonomy and are never retried here.
package build

import (
	"context"
	"fmt"

	"github.com/qiniu/x/log"

	"github.com/davidace/h5pack/internal/deps"
	"github.com/davidace/h5pack/internal/pkgid"
	"github.com/davidace/h5pack/internal/toolchain"
	"github.com/davidace/h5pack/pkgs/buildsys"
	"github.com/davidace/h5pack/recipe"
)

// Detector validates the host toolchain.
type Detector interface {
	Detect(ctx context.Context) (toolchain.Toolchain, error)
}

// Options configure a Builder.
type Options struct {
	Recipe   recipe.Recipe
	Opts     recipe.Options
	BuildSys buildsys.BuildSystem
	Deps     *deps.Cache
	Detector Detector
}

// Builder runs the packaging lifecycle for one recipe. The option set is
// frozen at construction and never changes for the lifetime of a build
// invocation.
type Builder struct {
	rec    recipe.Recipe
	config recipe.BuildConfig
	bs     buildsys.BuildSystem
	cache  *deps.Cache
	det    Detector
}

// NewBuilder creates a Builder from the given options.
func NewBuilder(opts Options) (*Builder, error) {
	if opts.BuildSys == nil {
		return nil, fmt.Errorf("build: no build system")
	}
	if opts.Deps == nil {
		return nil, fmt.Errorf("build: no dependency cache")
	}
	if opts.Detector == nil {
		opts.Detector = toolchain.New()
	}
	return &Builder{
		rec:    opts.Recipe,
		config: recipe.NewBuildConfig(opts.Opts),
		bs:     opts.BuildSys,
		cache:  opts.Deps,
		det:    opts.Detector,
	}, nil
}

// Configure validates that the host toolchain meets the recipe's minimum
// C++ standard. It has no side effects beyond validation.
func (b *Builder) Configure(ctx context.Context) error {
	tc, err := b.det.Detect(ctx)
	if err != nil {
		return &recipe.ToolchainError{Compiler: tc.Compiler, Minimum: recipe.MinCppStd}
	}
	if err := toolchain.CheckMin(tc, recipe.MinCppStd); err != nil {
		return err
	}
	log.Debugf("toolchain %s provides C++%d", tc.Compiler, tc.Standard)
	return nil
}

// Build resolves the pinned dependencies, forwards the frozen option set
// to the build driver, then runs its configure and build steps. If the
// tests option is on, the driver's test step runs as well.
func (b *Builder) Build(ctx context.Context) error {
	resolved, err := b.cache.Resolve(b.rec.Requires)
	if err != nil {
		return &recipe.BuildError{Step: "configure", Err: err}
	}
	for _, dep := range resolved {
		log.Debugf("using %s from %s", dep.Dep, dep.Root)
		b.bs.Use(dep.Root)
	}

	b.config.Apply(b.bs)

	log.Infof("configuring %s", b.rec.Ref())
	if err := b.bs.Configure(ctx); err != nil {
		return &recipe.BuildError{Step: "configure", Err: err}
	}
	log.Infof("building %s", b.rec.Ref())
	if err := b.bs.Build(ctx); err != nil {
		return &recipe.BuildError{Step: "build", Err: err}
	}
	if b.config.Tests() {
		log.Infof("testing %s", b.rec.Ref())
		if err := b.bs.Test(ctx); err != nil {
			return &recipe.TestFailure{Err: err}
		}
	}
	return nil
}

// Package installs the build artifacts into the package staging area.
func (b *Builder) Package(ctx context.Context) error {
	log.Infof("packaging %s into %s", b.rec.Ref(), b.bs.OutputDir())
	if err := b.bs.Install(ctx); err != nil {
		return &recipe.InstallError{Err: err}
	}
	return nil
}

// ID returns the binary identity of the package. h5pp is header-only, so
// the identity is the same whatever the host settings are.
func (b *Builder) ID() string {
	return pkgid.Compute(b.rec, pkgid.Settings{})
}
