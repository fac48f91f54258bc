// Package manifest reads per-repository project descriptors (pyproject.toml)
// into required and optional dependency lists. Dependency-spec strings are
// parsed with a permissive PEP 508 subset grammar; entries that fail to parse
// are dropped rather than failing the read, since manifest dialects vary.
package manifest
