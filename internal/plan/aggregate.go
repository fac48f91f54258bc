package plan

import (
	"sort"

	"github.com/charmbracelet/log"

	"github.com/chime-experiment/mkchimeenv/internal/manifest"
)

type extraKey struct {
	repo  string
	extra string
}

// Aggregate unions the required dependencies of every repository, activates
// optional-dependency groups that other repositories request via extras,
// drops the managed packages themselves and anything already installed, then
// appends the manual extras and groups what remains by canonical name.
func Aggregate(in Input) (*Plan, Summary) {
	byName := make(map[string]manifest.Dependencies, len(in.Repos))
	managed := make(map[string]bool, len(in.Repos))
	for _, rd := range in.Repos {
		canon := manifest.CanonicalName(rd.Repo)
		byName[canon] = rd.Deps
		managed[canon] = true
	}

	var queue []manifest.Requirement
	for _, rd := range in.Repos {
		queue = append(queue, rd.Deps.Required...)
	}

	// Requirements naming a managed package with extras pull that package's
	// optional groups into the union. Activated groups may request further
	// extras, so this runs as a worklist; the guard keeps each (repository,
	// extra) pair from being expanded twice.
	var union []manifest.Requirement
	activated := make(map[extraKey]bool)
	for len(queue) > 0 {
		req := queue[0]
		queue = queue[1:]
		union = append(union, req)

		canon := manifest.CanonicalName(req.Name)
		if !managed[canon] || len(req.Extras) == 0 {
			continue
		}
		for _, extra := range req.Extras {
			key := extraKey{canon, manifest.CanonicalName(extra)}
			if activated[key] {
				continue
			}
			activated[key] = true
			queue = append(queue, optionalGroup(byName[canon], extra)...)
		}
	}

	summary := Summary{Total: len(union)}

	reqs := make([]manifest.Requirement, 0, len(union))
	for _, req := range union {
		if managed[manifest.CanonicalName(req.Name)] {
			continue
		}
		reqs = append(reqs, req)
	}
	summary.AfterSelfExclusion = len(reqs)

	kept := reqs[:0]
	for _, req := range reqs {
		if in.Installed[req.String()] {
			continue
		}
		kept = append(kept, req)
	}
	reqs = kept
	summary.AfterInstalledExclusion = len(reqs)

	for _, name := range in.ManualExtras {
		req, err := manifest.Parse(name)
		if err != nil {
			log.Debug("dropping unparseable extra package", "spec", name)
			continue
		}
		reqs = append(reqs, req)
	}
	summary.AfterManualExtras = len(reqs)

	// Stable sort keeps insertion order for identical names, so grouping
	// below is deterministic.
	sort.SliceStable(reqs, func(i, j int) bool { return reqs[i].Name < reqs[j].Name })

	plan := &Plan{InternalOrder: make([]string, len(in.Repos))}
	for i, rd := range in.Repos {
		plan.InternalOrder[i] = rd.Repo
	}

	index := make(map[string]int)
	seen := make(map[string]bool)
	for _, req := range reqs {
		rendered := req.String()
		if seen[rendered] {
			continue
		}
		seen[rendered] = true
		summary.Unique++

		canon := manifest.CanonicalName(req.Name)
		gi, ok := index[canon]
		if !ok {
			gi = len(plan.Groups)
			index[canon] = gi
			plan.Groups = append(plan.Groups, Group{Name: canon})
		}
		plan.Groups[gi].Requirements = append(plan.Groups[gi].Requirements, rendered)
	}

	return plan, summary
}

// optionalGroup looks up an optional-dependency group, tolerating the usual
// spelling variants in group names.
func optionalGroup(deps manifest.Dependencies, extra string) []manifest.Requirement {
	if reqs, ok := deps.Optional[extra]; ok {
		return reqs
	}
	want := manifest.CanonicalName(extra)
	for name, reqs := range deps.Optional {
		if manifest.CanonicalName(name) == want {
			return reqs
		}
	}
	return nil
}
