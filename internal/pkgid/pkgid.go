// Package pkgid computes the binary identity of a package build.
//
// h5pp is header-only, so its identity folds in only the recipe itself:
// name, version and the pinned dependency set. Compiler, architecture,
// platform and build type are deliberately ignored, which lets a single
// package artifact serve every consumer configuration.
package pkgid

import (
	"fmt"
	"io"
	"runtime"
	"sort"

	"github.com/cespare/xxhash/v2"

	"github.com/davidace/h5pack/recipe"
)

// Settings describe the consumer configuration a compiled package would
// normally be specialized for.
type Settings struct {
	OS        string
	Arch      string
	Compiler  string
	BuildType string
}

// Host returns the settings of the current host with the given compiler
// and build type.
func Host(compiler, buildType string) Settings {
	return Settings{
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		Compiler:  compiler,
		BuildType: buildType,
	}
}

// Compute returns the package identity for a recipe under the given
// settings. The settings argument is accepted for interface symmetry but
// never hashed: header-only classification.
func Compute(r recipe.Recipe, _ Settings) string {
	h := xxhash.New()
	writeField(h, r.Name)
	writeField(h, r.Version)

	refs := make([]string, 0, len(r.Requires))
	for _, dep := range r.Requires {
		refs = append(refs, dep.String())
	}
	sort.Strings(refs)
	for _, ref := range refs {
		writeField(h, ref)
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

func writeField(w io.Writer, s string) {
	io.WriteString(w, s)
	w.Write([]byte{0})
}
