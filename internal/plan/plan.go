// Package plan turns the manifests of the cloned repositories into a
// two-phase install plan: external requirements batched by package, then the
// repositories themselves in registry order.
package plan

import "github.com/chime-experiment/mkchimeenv/internal/manifest"

// RepoDeps pairs a repository with its parsed manifest.
type RepoDeps struct {
	Repo string
	Deps manifest.Dependencies
}

// Input collects everything aggregation needs. Installed holds the exact
// requirement strings already present in the environment, as reported by pip.
type Input struct {
	Repos        []RepoDeps
	Installed    map[string]bool
	ManualExtras []string
}

// Group is one external package's requirement set, installed together so pip
// resolves the combined constraints.
type Group struct {
	Name         string
	Requirements []string
}

// Plan is the ordered result of aggregation. Groups covers the external
// dependencies; InternalOrder lists the repositories for the editable phase,
// preserving registry order.
type Plan struct {
	Groups        []Group
	InternalOrder []string
}

// Summary reports how the requirement set was whittled down, one count per
// aggregation step.
type Summary struct {
	Total                   int
	AfterSelfExclusion      int
	AfterInstalledExclusion int
	AfterManualExtras       int
	Unique                  int
}
