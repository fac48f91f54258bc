package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"
	toml "github.com/pelletier/go-toml/v2"
)

// FileName is the project descriptor expected in every cloned repository.
const FileName = "pyproject.toml"

// ErrNoManifest is returned when a repository has no project descriptor.
// Callers treat this as fatal: without it the repository's dependencies are
// unknowable.
var ErrNoManifest = errors.New("no pyproject.toml found")

// Dependencies holds one repository's parsed dependency declarations.
type Dependencies struct {
	Required []Requirement            // sorted by raw package name
	Optional map[string][]Requirement // extra group name -> requirements
}

// pyproject mirrors the subset of pyproject.toml this tool reads. Dependency
// groups (PEP 735) may hold non-string items such as include-group tables,
// so they decode loosely.
type pyproject struct {
	Project struct {
		Dependencies         []string            `toml:"dependencies"`
		OptionalDependencies map[string][]string `toml:"optional-dependencies"`
	} `toml:"project"`
	DependencyGroups map[string][]any `toml:"dependency-groups"`
}

// Read parses the project descriptor in dir. Spec strings that fail to parse
// are dropped; a missing descriptor wraps ErrNoManifest.
func Read(dir string) (*Dependencies, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, ErrNoManifest)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var doc pyproject
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	deps := &Dependencies{Optional: make(map[string][]Requirement)}

	deps.Required = parseSpecs(path, doc.Project.Dependencies)
	sort.SliceStable(deps.Required, func(i, j int) bool {
		return deps.Required[i].Name < deps.Required[j].Name
	})

	// An extra declared in both optional-dependencies and dependency-groups
	// has its requirement lists concatenated.
	for group, specs := range doc.Project.OptionalDependencies {
		deps.Optional[group] = append(deps.Optional[group], parseSpecs(path, specs)...)
	}
	for group, items := range doc.DependencyGroups {
		var specs []string
		for _, item := range items {
			if s, ok := item.(string); ok {
				specs = append(specs, s)
			}
		}
		deps.Optional[group] = append(deps.Optional[group], parseSpecs(path, specs)...)
	}

	return deps, nil
}

// parseSpecs parses each spec string, dropping entries the grammar rejects.
func parseSpecs(path string, specs []string) []Requirement {
	reqs := make([]Requirement, 0, len(specs))
	for _, spec := range specs {
		r, err := Parse(spec)
		if err != nil {
			log.Debug("dropping unparseable requirement", "manifest", path, "spec", spec)
			continue
		}
		reqs = append(reqs, r)
	}
	return reqs
}
