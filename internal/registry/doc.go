// Package registry defines the repositories this tool manages: the built-in
// public and private registries in install order, clone URL derivation for
// member (ssh) and anonymous (https) access, and operator override files
// validated against an embedded JSON Schema.
package registry
