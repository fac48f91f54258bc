// Package clone retrieves the registered repositories with git and reports
// transfer progress on a two-level display: one overall meter per repository
// that ticks as each named transfer stage completes, plus a lazily created
// sub-meter per stage. Progress is decoded from git's stderr stream into
// operation signals carrying a stage bit and an optional end bit.
package clone
