// Package cli wires the cobra command tree: create, update, doctor, version,
// and config. Commands stay thin; the real work lives in the registry, clone,
// plan, venv, and install packages.
package cli
