package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/chime-experiment/mkchimeenv/internal/clone"
	"github.com/chime-experiment/mkchimeenv/internal/config"
	"github.com/chime-experiment/mkchimeenv/internal/install"
	"github.com/chime-experiment/mkchimeenv/internal/manifest"
	"github.com/chime-experiment/mkchimeenv/internal/plan"
	"github.com/chime-experiment/mkchimeenv/internal/registry"
	"github.com/chime-experiment/mkchimeenv/internal/ui"
	"github.com/chime-experiment/mkchimeenv/internal/venv"
)

var (
	createPrompt     string
	createPython     string
	createRegistries string
	createJobs       int
)

func init() {
	f := createCmd.Flags()
	f.StringVar(&createPrompt, "prompt", "venv", "Prompt prefix shown while the environment is active")
	f.Bool("fast", false, "Install CHIME packages without build isolation")
	f.Bool("slow", false, "Install CHIME packages with full build isolation")
	f.Bool("compat", false, "Install CHIME packages in setuptools compat mode")
	f.Bool("no-compat", false, "Install CHIME packages in standard editable mode")
	f.Bool("download", false, "Download skyfield ephemeris data after installing")
	f.Bool("no-download", false, "Skip the skyfield ephemeris download")
	f.Bool("ignore-system-packages", false, "Create the environment without access to system site packages")
	f.Bool("use-system-packages", false, "Give the environment access to system site packages")
	f.Bool("chime-member", false, "Clone over SSH and include the private repositories")
	f.Bool("non-chime-member", false, "Clone anonymously over HTTPS, public repositories only")
	f.IntVar(&createJobs, "jobs", 0, "Number of repositories to clone in parallel")
	f.StringVar(&createPython, "python", "", "Python interpreter used to create the environment")
	f.StringVar(&createRegistries, "registries", "", "YAML file replacing the built-in repository registry")
	rootCmd.AddCommand(createCmd)
}

var createCmd = &cobra.Command{
	Use:   "create [path]",
	Short: "Create a CHIME pipeline environment",
	Long: `Create a virtual environment at the given path (default "."), clone the
CHIME pipeline repositories into its code/ directory, and install them in
editable mode together with their merged third-party dependencies.

  mkchimeenv create ~/chime
  mkchimeenv create --non-chime-member --fast ~/chime`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCreate,
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	path := "."
	if len(args) > 0 {
		path = args[0]
	}

	fast := resolvePair(cmd, "fast", "slow", false)
	compat := resolvePair(cmd, "compat", "no-compat", false)
	download := resolvePair(cmd, "download", "no-download", true)
	ignoreSystem := resolvePair(cmd, "ignore-system-packages", "use-system-packages", false)

	memberDefault := true
	if config.IsSet(config.KeyMember) {
		memberDefault = config.GetBool(config.KeyMember)
	}
	member := resolvePair(cmd, "chime-member", "non-chime-member", memberDefault)

	jobs := createJobs
	if jobs <= 0 {
		jobs = config.GetInt(config.KeyJobs)
	}
	if jobs <= 0 {
		jobs = clone.DefaultJobs
	}

	python := createPython
	if python == "" {
		python = config.Get(config.KeyPython)
	}
	if python == "" {
		python = venv.DefaultPython
	}

	override := createRegistries
	if override == "" {
		override = config.Get(config.KeyRegistries)
	}

	prompt := createPrompt
	if !cmd.Flags().Changed("prompt") {
		if v := config.Get(config.KeyPrompt); v != "" {
			prompt = v
		}
	}

	repos, err := registry.Select(member, override)
	if err != nil {
		return err
	}

	ui.Rule("Creating virtualenvironment")
	root, err := ensureRoot(path)
	if err != nil {
		return err
	}

	env := venv.New(filepath.Join(root, "venv"))
	env.Python = python
	if env.Exists() {
		ui.Warnf("Virtual environment already exists at %s. Using it anyway.", env.Dir)
	} else if err := env.Create(ctx, venv.CreateOptions{
		SystemSitePackages: !ignoreSystem,
		Prompt:             prompt,
	}); err != nil {
		return err
	}

	ui.Detailf("Upgrading pip")
	if err := env.UpgradePip(ctx); err != nil {
		return err
	}

	ui.Rule("Cloning CHIME repositories")
	display := ui.NewDisplay(os.Stdout)
	display.Start()
	coordinator := clone.New(display)
	coordinator.Jobs = jobs
	checkouts, err := coordinator.CloneAll(ctx, repos, filepath.Join(root, "code"))
	display.Stop()
	if err != nil {
		return err
	}

	ui.Rule("Analyzing dependencies...")
	extras := registry.ManualExtras()
	extras = append(extras, config.GetStringSlice(config.KeyExtras)...)
	input := plan.Input{ManualExtras: extras}
	paths := make(map[string]string, len(checkouts))
	for _, co := range checkouts {
		deps, err := manifest.Read(co.Path)
		if err != nil {
			return err
		}
		input.Repos = append(input.Repos, plan.RepoDeps{Repo: co.Repo.Name, Deps: *deps})
		paths[co.Repo.Name] = co.Path
	}
	input.Installed, err = env.Installed(ctx)
	if err != nil {
		return err
	}

	installPlan, summary := plan.Aggregate(input)
	ui.Detailf("%d total dependencies.", summary.Total)
	ui.Detailf("%d after removing CHIME pipeline packages.", summary.AfterSelfExclusion)
	ui.Detailf("%d after removing already installed packages.", summary.AfterInstalledExclusion)
	ui.Detailf("%d after adding manual extras.", summary.AfterManualExtras)
	ui.Detailf("%d after removing dupes.", summary.Unique)

	return install.Run(ctx, installPlan, env, paths, install.Options{
		Fast:     fast,
		Compat:   compat,
		Download: download,
	})
}

// ensureRoot resolves the target directory, creating it when missing. A path
// that exists but is not a directory is fatal.
func ensureRoot(path string) (string, error) {
	info, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		ui.Infof("Specified path=%s does not exist. Creating...", path)
		if err := os.MkdirAll(path, 0o755); err != nil {
			return "", fmt.Errorf("creating %s: %w", path, err)
		}
	case err != nil:
		return "", err
	case !info.IsDir():
		return "", fmt.Errorf("specified path=%s exists, but is not a directory", path)
	}
	return path, nil
}
