package build

import "github.com/peamaeq/makepad/id"

type Option func(*config)

type config struct {
	names   *id.Registry
	file    id.FileID
	fileSet bool
	name    string
	crate   string
}

func newConfig(opts []Option) *config {
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithRegistry interns names in r instead of a fresh registry. Patches
// always use the registry of the patched document when it has one.
func WithRegistry(r *id.Registry) Option {
	return func(c *config) { c.names = r }
}

// WithFile sets the file id recorded in spans and on loaded documents.
func WithFile(f id.FileID) Option {
	return func(c *config) {
		c.file = f
		c.fileSet = true
	}
}

// WithName names the source in diagnostics.
func WithName(name string) Option {
	return func(c *config) { c.name = name }
}

// WithCrate sets the crate that a leading crate segment in use paths
// refers to.
func WithCrate(name string) Option {
	return func(c *config) { c.crate = name }
}
