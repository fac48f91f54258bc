package cli

import (
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"

	"github.com/chime-experiment/mkchimeenv/internal/config"
	"github.com/chime-experiment/mkchimeenv/internal/registry"
	"github.com/chime-experiment/mkchimeenv/internal/venv"
)

// Minimum tool versions create relies on: git for --progress stderr output
// in its current shape, Python for the manifest features of the pipeline
// packages.
const (
	minGitVersion    = "2.20.0"
	minPythonVersion = "3.9.0"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the tools create needs are available",
	Long:  `Run diagnostic checks on the local toolchain and configuration.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		python := config.Get(config.KeyPython)
		if python == "" {
			python = venv.DefaultPython
		}

		fmt.Println("Toolchain check:")
		ok := checkTool("git", minGitVersion)
		ok = checkTool(python, minPythonVersion) && ok
		ok = checkVenvModule(python) && ok
		checkSSH()

		fmt.Println("Configuration check:")
		ok = checkRegistryOverride() && ok

		if !ok {
			return fmt.Errorf("environment is not ready; fix the failed checks above")
		}
		return nil
	},
}

// checkTool verifies that the binary exists and meets the minimum version.
// An unparseable version string warns instead of failing.
func checkTool(name, minimum string) bool {
	path, err := exec.LookPath(name)
	if err != nil {
		fmt.Printf("  [MISS] %s not found\n", name)
		return false
	}

	output, err := exec.Command(name, "--version").CombinedOutput()
	if err != nil {
		fmt.Printf("  [FAIL] %s --version: %v\n", name, err)
		return false
	}

	version := extractVersion(string(output))
	if version == "" {
		fmt.Printf("  [WARN] %s found at %s, version unrecognized: %q\n", name, path, strings.TrimSpace(string(output)))
		return true
	}
	older, err := versionBelow(version, minimum)
	if err != nil {
		fmt.Printf("  [WARN] %s version %s did not parse: %v\n", name, version, err)
		return true
	}
	if older {
		fmt.Printf("  [FAIL] %s %s is older than the required %s\n", name, version, minimum)
		return false
	}

	fmt.Printf("  [ OK ] %s %s found at %s\n", name, version, path)
	return true
}

func checkVenvModule(python string) bool {
	if err := exec.Command(python, "-m", "venv", "-h").Run(); err != nil {
		fmt.Printf("  [FAIL] %s -m venv is not available: %v\n", python, err)
		return false
	}
	fmt.Printf("  [ OK ] %s -m venv is available\n", python)
	return true
}

func checkSSH() {
	path, err := exec.LookPath("ssh")
	if err != nil {
		fmt.Println("  [WARN] ssh not found; member clones over SSH will fail")
		return
	}
	fmt.Printf("  [ OK ] ssh found at %s\n", path)
}

func checkRegistryOverride() bool {
	path := config.Get(config.KeyRegistries)
	if path == "" {
		fmt.Println("  [ OK ] using the built-in repository registry")
		return true
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("  [FAIL] registry override %s: %v\n", path, err)
		return false
	}
	result, err := registry.Validate(data)
	if err != nil {
		fmt.Printf("  [FAIL] registry override %s: %v\n", path, err)
		return false
	}
	if !result.Valid {
		fmt.Printf("  [FAIL] registry override %s has %d validation issue(s):\n", path, len(result.Issues))
		for _, issue := range result.Issues {
			if issue.Path != "" {
				fmt.Printf("    - %s: %s\n", issue.Path, issue.Message)
			} else {
				fmt.Printf("    - %s\n", issue.Message)
			}
		}
		return false
	}

	fmt.Printf("  [ OK ] registry override %s is valid\n", path)
	return true
}

var versionRE = regexp.MustCompile(`\d+(\.\d+)+`)

// extractVersion pulls the first dotted version number out of a tool's
// --version output.
func extractVersion(output string) string {
	return versionRE.FindString(output)
}

// versionBelow reports whether version is older than minimum.
func versionBelow(version, minimum string) (bool, error) {
	v, err := parseSemver(version)
	if err != nil {
		return false, err
	}
	floor, err := parseSemver(minimum)
	if err != nil {
		return false, err
	}
	return v.LessThan(floor), nil
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(version, "v")
	return semver.NewVersion(version)
}
