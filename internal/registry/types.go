package registry

// Repository identifies one managed repository: its package name, the URL it
// clones from, and an optional ref to check out. Identity is the name.
// Instances are constructed when a registry loads and read-only afterwards.
type Repository struct {
	Name string
	URL  string
	Ref  string
}
