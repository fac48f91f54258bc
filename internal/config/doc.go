// Package config manages user-level settings stored at ~/.chimeenv/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// the Python interpreter used to create environments or a registry override
// file applied to every run.
package config
