package fortuna

import (
	"github.com/safing/portcrypt/registry"
)

// Name is the registry name of the Fortuna PRNG.
const Name = "fortuna"

// Descriptor describes Fortuna generators for the PRNG registry.
type Descriptor struct {
	Config Config
}

var _ registry.PRNG = Descriptor{}

// Name returns the registry name.
func (d Descriptor) Name() string {
	return Name
}

// ExportSize returns the size of an exported seed.
func (d Descriptor) ExportSize() int {
	return ExportSize
}

// Start returns a started generator.
func (d Descriptor) Start() (registry.Generator, error) {
	f, err := New(d.Config)
	if err != nil {
		return nil, err
	}
	if err := f.Start(); err != nil {
		return nil, err
	}
	return f, nil
}

// Test runs the self test with the configured algorithms.
func (d Descriptor) Test() error {
	f, err := New(d.Config)
	if err != nil {
		return err
	}
	return f.Test()
}

// Register registers a Fortuna descriptor with the given config.
func Register(reg *registry.Registry, cfg Config) (int, error) {
	return reg.PRNGs.Register(Descriptor{Config: cfg})
}
