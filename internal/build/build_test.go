package build

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidace/h5pack/internal/deps"
	"github.com/davidace/h5pack/internal/env"
	"github.com/davidace/h5pack/internal/toolchain"
	"github.com/davidace/h5pack/recipe"
)

// fakeDriver records lifecycle calls and fails on demand.
type fakeDriver struct {
	calls       []string
	used        []string
	boolDefines map[string]bool
	strDefines  map[string]string

	failConfigure bool
	failBuild     bool
	failTest      bool
	failInstall   bool
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		boolDefines: make(map[string]bool),
		strDefines:  make(map[string]string),
	}
}

func (f *fakeDriver) Use(root string)                   { f.used = append(f.used, root) }
func (f *fakeDriver) Source(dir string)                 {}
func (f *fakeDriver) InstallDir(dir string)             {}
func (f *fakeDriver) Define(key, value string)          { f.strDefines[key] = value }
func (f *fakeDriver) DefineBool(key string, value bool) { f.boolDefines[key] = value }
func (f *fakeDriver) Env(key, val string)               {}

func (f *fakeDriver) OutputDir() string { return "staging" }

func (f *fakeDriver) Configure(ctx context.Context, args ...string) error {
	f.calls = append(f.calls, "configure")
	if f.failConfigure {
		return errors.New("exit status 1")
	}
	return nil
}

func (f *fakeDriver) Build(ctx context.Context, args ...string) error {
	f.calls = append(f.calls, "build")
	if f.failBuild {
		return errors.New("exit status 2")
	}
	return nil
}

func (f *fakeDriver) Test(ctx context.Context, args ...string) error {
	f.calls = append(f.calls, "test")
	if f.failTest {
		return errors.New("tests failed")
	}
	return nil
}

func (f *fakeDriver) Install(ctx context.Context, args ...string) error {
	f.calls = append(f.calls, "install")
	if f.failInstall {
		return errors.New("copy failed")
	}
	return nil
}

// fakeDetector reports a fixed toolchain.
type fakeDetector struct {
	tc  toolchain.Toolchain
	err error
}

func (f *fakeDetector) Detect(ctx context.Context) (toolchain.Toolchain, error) {
	return f.tc, f.err
}

func testBuilder(t *testing.T, driver *fakeDriver, opts recipe.Options, std int) *Builder {
	t.Helper()
	layout, err := env.NewLayout(t.TempDir())
	require.NoError(t, err)

	rec := recipe.Default()
	for _, dep := range rec.Requires {
		require.NoError(t, os.MkdirAll(layout.DepDir(dep.Name, dep.Version), 0o755))
	}

	b, err := NewBuilder(Options{
		Recipe:   rec,
		Opts:     opts,
		BuildSys: driver,
		Deps:     deps.NewCache(layout),
		Detector: &fakeDetector{tc: toolchain.Toolchain{Compiler: "g++", Standard: std}},
	})
	require.NoError(t, err)
	return b
}

func TestLifecycleDefaults(t *testing.T) {
	ctx := context.Background()
	driver := newFakeDriver()
	b := testBuilder(t, driver, recipe.DefaultOptions(), 17)

	require.NoError(t, b.Configure(ctx))
	assert.Empty(t, driver.calls, "configure must only validate")

	require.NoError(t, b.Build(ctx))
	require.NoError(t, b.Package(ctx))

	assert.Equal(t, []string{"configure", "build", "test", "install"}, driver.calls)

	assert.Equal(t, map[string]bool{
		"H5PP_ENABLE_TESTS":   true,
		"H5PP_BUILD_EXAMPLES": false,
		"H5PP_PRINT_INFO":     false,
	}, driver.boolDefines)
	assert.Equal(t, "conan", driver.strDefines["H5PP_DOWNLOAD_METHOD"])

	require.Len(t, driver.used, 3)
	for i, dep := range recipe.Default().Requires {
		assert.Contains(t, driver.used[i], dep.Version, "forwarded root must carry the exact pin")
	}
}

func TestConfigureToolchainTooOld(t *testing.T) {
	driver := newFakeDriver()
	b := testBuilder(t, driver, recipe.DefaultOptions(), 14)

	err := b.Configure(context.Background())
	require.Error(t, err)
	var tcErr *recipe.ToolchainError
	require.True(t, errors.As(err, &tcErr))
	assert.Equal(t, 14, tcErr.Detected)
	assert.Equal(t, 17, tcErr.Minimum)
	assert.Empty(t, driver.calls)
}

func TestConfigureDetectFailure(t *testing.T) {
	driver := newFakeDriver()
	b := testBuilder(t, driver, recipe.DefaultOptions(), 17)
	b.det = &fakeDetector{err: errors.New("no compiler")}

	err := b.Configure(context.Background())
	var tcErr *recipe.ToolchainError
	require.True(t, errors.As(err, &tcErr))
}

func TestNoTestsSkipsTestStep(t *testing.T) {
	driver := newFakeDriver()
	driver.failTest = true // would fail if ever reached
	b := testBuilder(t, driver, recipe.Options{Tests: false}, 17)

	require.NoError(t, b.Build(context.Background()))
	assert.Equal(t, []string{"configure", "build"}, driver.calls)
}

func TestTestFailureStopsBeforePackage(t *testing.T) {
	ctx := context.Background()
	driver := newFakeDriver()
	driver.failTest = true
	b := testBuilder(t, driver, recipe.DefaultOptions(), 17)

	err := b.Build(ctx)
	require.Error(t, err)
	var testErr *recipe.TestFailure
	require.True(t, errors.As(err, &testErr))

	// The orchestrated run stops on failure; install is never reached.
	assert.NotContains(t, driver.calls, "install")
}

func TestBuildErrorSteps(t *testing.T) {
	ctx := context.Background()

	driver := newFakeDriver()
	driver.failConfigure = true
	b := testBuilder(t, driver, recipe.DefaultOptions(), 17)
	var buildErr *recipe.BuildError
	require.True(t, errors.As(b.Build(ctx), &buildErr))
	assert.Equal(t, "configure", buildErr.Step)

	driver = newFakeDriver()
	driver.failBuild = true
	b = testBuilder(t, driver, recipe.DefaultOptions(), 17)
	require.True(t, errors.As(b.Build(ctx), &buildErr))
	assert.Equal(t, "build", buildErr.Step)
	assert.NotContains(t, driver.calls, "test")
}

func TestInstallError(t *testing.T) {
	driver := newFakeDriver()
	driver.failInstall = true
	b := testBuilder(t, driver, recipe.DefaultOptions(), 17)

	err := b.Package(context.Background())
	var instErr *recipe.InstallError
	require.True(t, errors.As(err, &instErr))
}

func TestMissingDependencyFailsBeforeDriver(t *testing.T) {
	layout, err := env.NewLayout(t.TempDir()) // no deps installed
	require.NoError(t, err)
	driver := newFakeDriver()

	b, err := NewBuilder(Options{
		Recipe:   recipe.Default(),
		Opts:     recipe.DefaultOptions(),
		BuildSys: driver,
		Deps:     deps.NewCache(layout),
		Detector: &fakeDetector{tc: toolchain.Toolchain{Standard: 17}},
	})
	require.NoError(t, err)

	buildErr := b.Build(context.Background())
	require.Error(t, buildErr)
	assert.True(t, errors.Is(buildErr, deps.ErrNotInstalled))
	assert.Empty(t, driver.calls, "no driver step may run without dependencies")
}

func TestIDStable(t *testing.T) {
	a := testBuilder(t, newFakeDriver(), recipe.DefaultOptions(), 17)
	b := testBuilder(t, newFakeDriver(), recipe.Options{Tests: false, Verbose: true}, 20)
	assert.Equal(t, a.ID(), b.ID(), "header-only identity must not depend on options or toolchain")
}

func TestNewBuilderValidation(t *testing.T) {
	_, err := NewBuilder(Options{})
	assert.Error(t, err)
}
