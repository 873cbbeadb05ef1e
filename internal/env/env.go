// Package env defines the on-disk workspace layout of h5pack.
package env

import (
	"os"
	"path/filepath"
)

// WorkDir returns the default workspace root, <UserCacheDir>/.h5pack.
func WorkDir() (string, error) {
	userCacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(userCacheDir, ".h5pack"), nil
}

// Layout resolves the directories of one workspace.
type Layout struct {
	root string
}

// NewLayout creates a Layout rooted at root. An empty root selects the
// default workspace.
func NewLayout(root string) (*Layout, error) {
	if root == "" {
		var err error
		root, err = WorkDir()
		if err != nil {
			return nil, err
		}
	}
	return &Layout{root: root}, nil
}

// Root returns the workspace root directory.
func (l *Layout) Root() string { return l.root }

// BuildDir returns the build directory for a package build, keyed by the
// package reference and its identity.
func (l *Layout) BuildDir(name, version, id string) string {
	return filepath.Join(l.root, "build", name, version, id)
}

// PackageDir returns the install staging directory for a package build.
func (l *Layout) PackageDir(name, version, id string) string {
	return filepath.Join(l.root, "package", name, version, id)
}

// DepDir returns where the external package manager places a pinned
// dependency. The directory existing is the only acquisition contract.
func (l *Layout) DepDir(name, version string) string {
	return filepath.Join(l.root, "deps", name, version)
}
