// Package install drives the two-phase installation: external requirement
// groups first, so pip resolves each package's combined constraints in one
// call, then the cloned repositories themselves in editable mode.
package install

import (
	"context"
	"fmt"

	"github.com/chime-experiment/mkchimeenv/internal/plan"
	"github.com/chime-experiment/mkchimeenv/internal/ui"
)

// Environment is the subset of the virtual environment the installer needs.
type Environment interface {
	InstallRequirements(ctx context.Context, reqs []string, extraArgs ...string) error
	InstallEditable(ctx context.Context, path string, extraArgs ...string) error
	Run(ctx context.Context, args ...string) error
}

// Options select pip behavior for the editable phase and whether to
// pre-fetch astronomy data afterwards.
type Options struct {
	Fast     bool
	Compat   bool
	Download bool
}

// groupArgs builds the pip flags for the batched phase. fast skips build
// isolation there too.
func groupArgs(opts Options) []string {
	if opts.Fast {
		return []string{"--no-build-isolation"}
	}
	return nil
}

// editableArgs builds the pip flags for the editable phase. Dependencies are
// already satisfied by the first phase, so editable installs never resolve
// their own.
func editableArgs(opts Options) []string {
	args := []string{"--no-deps"}
	if opts.Fast {
		args = append(args, "--no-build-isolation")
	}
	if opts.Compat {
		args = append(args, "--config-settings", "editable_mode=compat")
	}
	return args
}

// Run installs the plan into the environment. paths maps repository names to
// their local checkouts. The first pip failure aborts the run; only the data
// download afterwards is allowed to fail.
func Run(ctx context.Context, p *plan.Plan, env Environment, paths map[string]string, opts Options) error {
	ui.Rule("Installing remaining dependencies")
	batchArgs := groupArgs(opts)
	for i, group := range p.Groups {
		if err := env.InstallRequirements(ctx, group.Requirements, batchArgs...); err != nil {
			return fmt.Errorf("installing %s: %w", group.Name, err)
		}
		ui.Successf("%s %s", ui.Label(i+1, len(p.Groups)), group.Name)
	}

	ui.Rule("Installing CHIME packages")
	extraArgs := editableArgs(opts)
	for i, name := range p.InternalOrder {
		path, ok := paths[name]
		if !ok {
			return fmt.Errorf("no checkout recorded for %s", name)
		}
		if err := env.InstallEditable(ctx, path, extraArgs...); err != nil {
			return fmt.Errorf("installing %s: %w", name, err)
		}
		ui.Successf("%s %s", ui.Label(i+1, len(p.InternalOrder)), name)
	}

	if opts.Download {
		ui.Rule("Downloading skyfield ephemeris data")
		DownloadSkyfield(ctx, env)
	}
	return nil
}

// skyfieldProbe makes caput fetch its timescale and ephemeris files.
const skyfieldProbe = "from caput.time import skyfield_wrapper as s; s.timescale; s.ephemeris"

// DownloadSkyfield pre-fetches the astronomy data caput needs at runtime.
// The environment works without it, so failure only warns.
func DownloadSkyfield(ctx context.Context, env Environment) {
	if err := env.Run(ctx, "-c", skyfieldProbe); err != nil {
		ui.Warnf("Failed to download skyfield data. Error: %v", err)
	}
}
