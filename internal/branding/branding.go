// Package branding provides compile-time identity values for the CLI.
//
// Deployments edit branding.yaml in this package before building; Go's
// //go:embed bakes it into the binary.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName      string `yaml:"cli_name"`
	DisplayName  string `yaml:"display_name"`
	Description  string `yaml:"description"`
	HomeDir      string `yaml:"home_dir"`
	EnvPrefix    string `yaml:"env_prefix"`
	GoModule     string `yaml:"go_module"`
	GitSSHBase   string `yaml:"git_ssh_base"`
	GitHTTPSBase string `yaml:"git_https_base"`
}

func load() {
	once.Do(func() {
		// Set hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:      "mkchimeenv",
			DisplayName:  "mkchimeenv",
			Description:  "Install and manage CHIME pipeline environments",
			HomeDir:      ".chimeenv",
			EnvPrefix:    "CHIMEENV",
			GoModule:     "github.com/chime-experiment/mkchimeenv",
			GitSSHBase:   "ssh://git@github.com",
			GitHTTPSBase: "https://github.com",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "mkchimeenv").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".chimeenv").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "CHIMEENV").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GoModule returns the Go module path. Not consumed at runtime.
func GoModule() string { load(); return defaults.GoModule }

// GitSSHBase returns the base URL for ssh clones of registry repositories.
func GitSSHBase() string { load(); return defaults.GitSSHBase }

// GitHTTPSBase returns the base URL for anonymous https clones.
func GitHTTPSBase() string { load(); return defaults.GitHTTPSBase }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("HOME") → "CHIMEENV_HOME".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
