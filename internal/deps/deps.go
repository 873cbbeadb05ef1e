// Package deps resolves pinned dependencies against the workspace cache.
//
// Acquisition is owned entirely by the external package manager; this
// layer only checks that each exact pin is present and hands its install
// root to the build driver. A missing pin is a hard failure, there is no
// fallback download path.
package deps

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/mod/semver"

	"github.com/davidace/h5pack/internal/env"
	"github.com/davidace/h5pack/recipe"
)

var (
	// ErrNotInstalled reports a pinned dependency absent from the cache.
	ErrNotInstalled = errors.New("dependency not installed")

	// ErrUnpinned reports a dependency whose version is not an exact pin.
	ErrUnpinned = errors.New("dependency version is not an exact pin")
)

// Resolved is a pinned dependency together with its install root.
type Resolved struct {
	Dep  recipe.Dependency
	Root string
}

// Cache looks up dependency install roots in a workspace.
type Cache struct {
	layout *env.Layout
}

// NewCache creates a Cache over the given workspace layout.
func NewCache(layout *env.Layout) *Cache {
	return &Cache{layout: layout}
}

// Resolve maps every pinned dependency to its install root, preserving
// declaration order. The roots carry the exact pinned version in their
// path, so whatever is forwarded to the build driver cannot silently
// drift from the declaration.
func (c *Cache) Resolve(requires []recipe.Dependency) ([]Resolved, error) {
	seen := make(map[string]string, len(requires))
	resolved := make([]Resolved, 0, len(requires))
	for _, dep := range requires {
		if !semver.IsValid("v" + dep.Version) {
			return nil, fmt.Errorf("%w: %s", ErrUnpinned, dep)
		}
		if prev, ok := seen[dep.Name]; ok {
			return nil, fmt.Errorf("dependency %s declared twice (%s and %s)", dep.Name, prev, dep.Version)
		}
		seen[dep.Name] = dep.Version

		root := c.layout.DepDir(dep.Name, dep.Version)
		info, err := os.Stat(root)
		if err != nil || !info.IsDir() {
			return nil, fmt.Errorf("%w: %s, expected at %s", ErrNotInstalled, dep, root)
		}
		resolved = append(resolved, Resolved{Dep: dep, Root: root})
	}
	return resolved, nil
}
