package buildsys

import "context"

// BuildSystem captures shared capabilities of build helpers (CMake, Autotools, etc).
// It keeps the common lifecycle and dependency/env setup; implementations add their own extras.
type BuildSystem interface {
	// Use injects a dependency installed at root into the build environment.
	Use(root string)

	// Basic paths.
	Source(dir string)
	InstallDir(dir string)

	// Cache definitions forwarded to the underlying tool.
	Define(key, value string)
	DefineBool(key string, value bool)

	// Environment helper.
	Env(key, val string)

	// Lifecycle.
	Configure(ctx context.Context, args ...string) error
	Build(ctx context.Context, args ...string) error
	Test(ctx context.Context, args ...string) error
	Install(ctx context.Context, args ...string) error

	// Where artifacts land.
	OutputDir() string
}
