// Package vcs resolves the source-control origin of a local checkout, so
// recipes declaring "auto" scm fields can be filled in at export time.
package vcs

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/davidace/h5pack/recipe"
)

// Git queries a local git checkout.
type Git struct {
	git    string
	output func(ctx context.Context, dir string, args ...string) (string, error)
}

// GitOption configures Git.
type GitOption func(*Git)

// WithGitPath sets a custom git executable path.
func WithGitPath(path string) GitOption {
	return func(g *Git) {
		g.git = path
	}
}

// NewGit creates a new git query helper.
func NewGit(opts ...GitOption) *Git {
	g := &Git{git: "git"}
	for _, opt := range opts {
		opt(g)
	}
	g.output = g.runOutput
	return g
}

// Origin returns the URL of the "origin" remote of the checkout at dir.
func (g *Git) Origin(ctx context.Context, dir string) (string, error) {
	out, err := g.output(ctx, dir, "config", "--get", "remote.origin.url")
	if err != nil {
		return "", fmt.Errorf("get origin url: %w", err)
	}
	url := strings.TrimSpace(out)
	if url == "" {
		return "", fmt.Errorf("no origin remote in %s", dir)
	}
	return url, nil
}

// Revision returns the commit hash the checkout at dir is at.
func (g *Git) Revision(ctx context.Context, dir string) (string, error) {
	out, err := g.output(ctx, dir, "rev-parse", "HEAD")
	if err != nil {
		return "", fmt.Errorf("get revision: %w", err)
	}
	rev := strings.TrimSpace(out)
	if rev == "" {
		return "", fmt.Errorf("no revision in %s", dir)
	}
	return rev, nil
}

// Detect fills the "auto" fields of an scm declaration from the checkout
// at dir. Fields carrying concrete values are left untouched.
func (g *Git) Detect(ctx context.Context, dir string, scm recipe.SCM) (recipe.SCM, error) {
	if scm.Type == "" {
		scm.Type = "git"
	}
	if scm.URL == recipe.Auto {
		url, err := g.Origin(ctx, dir)
		if err != nil {
			return scm, err
		}
		scm.URL = url
	}
	if scm.Revision == recipe.Auto {
		rev, err := g.Revision(ctx, dir)
		if err != nil {
			return scm, err
		}
		scm.Revision = rev
	}
	return scm, nil
}

func (g *Git) runOutput(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, g.git, args...)
	if dir != "" {
		cmd.Dir = dir
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}
