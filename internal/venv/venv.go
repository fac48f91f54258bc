// Package venv wraps a Python virtual environment: creation, pip upgrades,
// and package installs all run through the environment's own interpreter.
package venv

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// DefaultPython is the interpreter used to create environments unless
// configured otherwise.
const DefaultPython = "python3"

// Env is a virtual environment rooted at Dir. Python is the interpreter that
// creates the environment; everything afterwards runs the environment's own
// interpreter.
type Env struct {
	Dir    string
	Python string
}

func New(dir string) *Env {
	return &Env{Dir: dir, Python: DefaultPython}
}

// CreateOptions control environment creation.
type CreateOptions struct {
	SystemSitePackages bool
	Prompt             string
}

// Exists reports whether the environment directory is already present.
func (e *Env) Exists() bool {
	info, err := os.Stat(e.Dir)
	return err == nil && info.IsDir()
}

// Create builds the environment with the venv module.
func (e *Env) Create(ctx context.Context, opts CreateOptions) error {
	cmd := exec.CommandContext(ctx, e.Python, createArgs(e.Dir, opts)...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("creating virtual environment: %w\n%s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

func createArgs(dir string, opts CreateOptions) []string {
	args := []string{"-m", "venv"}
	if opts.SystemSitePackages {
		args = append(args, "--system-site-packages")
	}
	if opts.Prompt != "" {
		args = append(args, "--prompt", opts.Prompt)
	}
	return append(args, dir)
}

func (e *Env) binDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(e.Dir, "Scripts")
	}
	return filepath.Join(e.Dir, "bin")
}

// PythonPath returns the environment's interpreter.
func (e *Env) PythonPath() string {
	return filepath.Join(e.binDir(), "python")
}

// Run executes the environment's interpreter with the given arguments.
func (e *Env) Run(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, e.PythonPath(), args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("running python %s: %w\n%s", strings.Join(args, " "), err, strings.TrimSpace(string(output)))
	}
	return nil
}

// Pip runs a pip subcommand inside the environment.
func (e *Env) Pip(ctx context.Context, args ...string) error {
	return e.Run(ctx, append([]string{"-m", "pip"}, args...)...)
}

// UpgradePip brings the environment's pip up to date.
func (e *Env) UpgradePip(ctx context.Context) error {
	return e.Pip(ctx, "install", "--upgrade", "pip")
}

// Installed lists what pip freeze reports, keyed by the part of each line
// before the version pin. Lines without a pin are kept whole.
func (e *Env) Installed(ctx context.Context) (map[string]bool, error) {
	cmd := exec.CommandContext(ctx, e.PythonPath(), "-m", "pip", "freeze")
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("listing installed packages: %w", err)
	}
	return parseFreeze(output), nil
}

func parseFreeze(output []byte) map[string]bool {
	installed := make(map[string]bool)
	for _, line := range strings.Split(string(output), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		name, _, _ := strings.Cut(line, "==")
		installed[name] = true
	}
	return installed
}

// InstallRequirements installs the given requirement strings in a single pip
// invocation, via a temporary requirements file so pip resolves the combined
// constraints together.
func (e *Env) InstallRequirements(ctx context.Context, reqs []string, extraArgs ...string) error {
	if len(reqs) == 0 {
		return nil
	}

	f, err := os.CreateTemp("", "requirements-*.txt")
	if err != nil {
		return fmt.Errorf("writing requirements file: %w", err)
	}
	defer os.Remove(f.Name())
	for _, req := range reqs {
		if _, err := fmt.Fprintln(f, req); err != nil {
			f.Close()
			return fmt.Errorf("writing requirements file: %w", err)
		}
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing requirements file: %w", err)
	}

	args := append([]string{"install"}, extraArgs...)
	args = append(args, "-r", f.Name())
	return e.Pip(ctx, args...)
}

// InstallEditable installs a local checkout in editable mode.
func (e *Env) InstallEditable(ctx context.Context, path string, extraArgs ...string) error {
	args := append([]string{"install"}, extraArgs...)
	args = append(args, "-e", path)
	return e.Pip(ctx, args...)
}
