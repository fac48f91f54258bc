package registry

import (
	_ "embed"
	"sync"

	"go.yaml.in/yaml/v3"

	"github.com/chime-experiment/mkchimeenv/internal/branding"
)

//go:embed registries.yaml
var rawRegistries []byte

var (
	once     sync.Once
	builtins registryData
)

// entry is one repository record as stored in registry YAML. Either a git
// host path (repo) or a full clone URL must be set; url wins when both are.
type entry struct {
	Name string `yaml:"name"`
	Repo string `yaml:"repo"`
	URL  string `yaml:"url"`
	Ref  string `yaml:"ref"`
}

type registryData struct {
	Public        []entry  `yaml:"public"`
	Private       []entry  `yaml:"private"`
	ExtraPackages []string `yaml:"extra_packages"`
}

func load() {
	once.Do(func() {
		_ = yaml.Unmarshal(rawRegistries, &builtins)
	})
}

// repository resolves an entry to a Repository, deriving the clone URL from
// the git host bases when no explicit URL is given.
func (e entry) repository(ssh bool) Repository {
	url := e.URL
	if url == "" {
		if ssh {
			url = branding.GitSSHBase() + "/" + e.Repo
		} else {
			url = branding.GitHTTPSBase() + "/" + e.Repo + ".git"
		}
	}
	return Repository{Name: e.Name, URL: url, Ref: e.Ref}
}

func resolve(entries []entry, ssh bool) []Repository {
	repos := make([]Repository, 0, len(entries))
	for _, e := range entries {
		repos = append(repos, e.repository(ssh))
	}
	return repos
}

// Public returns the built-in public repositories in registry order, with
// clone URLs for ssh or anonymous https transport.
func Public(ssh bool) []Repository {
	load()
	return resolve(builtins.Public, ssh)
}

// Private returns the built-in private repositories. Private repositories
// always clone over ssh.
func Private() []Repository {
	load()
	return resolve(builtins.Private, true)
}

// ForMember returns the effective repository list for the caller's access
// level: members get the public set over ssh plus the private set, everyone
// else gets the public set over https only.
func ForMember(member bool) []Repository {
	if member {
		return append(Public(true), Private()...)
	}
	return Public(false)
}

// ManualExtras returns the package specs that are appended to every install
// plan because the manifest scan cannot discover them.
func ManualExtras() []string {
	load()
	extras := make([]string, len(builtins.ExtraPackages))
	copy(extras, builtins.ExtraPackages)
	return extras
}

// Select resolves the repository list for a run. An override file, when
// given, replaces the built-in public registry; the private registry and
// member gating are unaffected.
func Select(member bool, overridePath string) ([]Repository, error) {
	if overridePath == "" {
		return ForMember(member), nil
	}
	public, err := LoadOverride(overridePath, member)
	if err != nil {
		return nil, err
	}
	if member {
		return append(public, Private()...), nil
	}
	return public, nil
}
