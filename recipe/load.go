package recipe

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultManifest is the recipe manifest looked up next to the sources.
const DefaultManifest = "h5pack.yaml"

// manifest is the on-disk YAML form of a recipe. Every field is optional;
// missing fields keep the built-in h5pp defaults.
type manifest struct {
	Name        string       `yaml:"name"`
	Version     string       `yaml:"version"`
	Description string       `yaml:"description"`
	Homepage    string       `yaml:"homepage"`
	URL         string       `yaml:"url"`
	License     string       `yaml:"license"`
	Author      string       `yaml:"author"`
	Topics      []string     `yaml:"topics"`
	Requires    []string     `yaml:"requires"`
	Options     *optionsDocs `yaml:"options"`
}

type optionsDocs struct {
	Tests    *bool `yaml:"tests"`
	Examples *bool `yaml:"examples"`
	Verbose  *bool `yaml:"verbose"`
}

// Load reads a recipe manifest and layers it over the built-in defaults.
// It returns the merged recipe and options.
func Load(path string) (Recipe, Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Recipe{}, Options{}, fmt.Errorf("failed to read recipe: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (Recipe, Options, error) {
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Recipe{}, Options{}, fmt.Errorf("failed to parse recipe: %w", err)
	}

	r := Default()
	if m.Name != "" {
		r.Name = m.Name
	}
	if m.Version != "" {
		r.Version = m.Version
	}
	if m.Description != "" {
		r.Description = m.Description
	}
	if m.Homepage != "" {
		r.Homepage = m.Homepage
	}
	if m.URL != "" {
		r.URL = m.URL
	}
	if m.License != "" {
		r.License = m.License
	}
	if m.Author != "" {
		r.Author = m.Author
	}
	if len(m.Topics) > 0 {
		r.Topics = m.Topics
	}
	if m.Requires != nil {
		deps := make([]Dependency, 0, len(m.Requires))
		for _, ref := range m.Requires {
			d, err := ParseDependency(ref)
			if err != nil {
				return Recipe{}, Options{}, err
			}
			deps = append(deps, d)
		}
		r.Requires = deps
	}

	o := DefaultOptions()
	if m.Options != nil {
		if m.Options.Tests != nil {
			o.Tests = *m.Options.Tests
		}
		if m.Options.Examples != nil {
			o.Examples = *m.Options.Examples
		}
		if m.Options.Verbose != nil {
			o.Verbose = *m.Options.Verbose
		}
	}
	return r, o, nil
}
