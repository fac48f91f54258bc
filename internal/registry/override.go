package registry

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// LoadOverride reads a registry override file, validates it against the
// embedded schema, and resolves its entries as the public repository list.
// ssh selects the transport used to derive clone URLs for entries that give
// a host path instead of a full URL.
func LoadOverride(path string, ssh bool) ([]Repository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading registry override: %w", err)
	}

	result, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("validating registry override %s: %w", path, err)
	}
	if !result.Valid {
		return nil, fmt.Errorf("registry override %s is invalid:%s", path, describe(result.Issues))
	}

	var parsed registryData
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parsing registry override %s: %w", path, err)
	}

	return resolve(parsed.Public, ssh), nil
}
