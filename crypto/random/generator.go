package random

import (
	"fmt"
	"sync"

	"github.com/seehuhn/fortuna"

	"github.com/safing/portcrypt/registry"
)

// GeneratorName is the registry name of the seehuhn Fortuna generator.
const GeneratorName = "fortuna-generator"

const (
	generatorKeySize   = 32
	generatorBlockSize = 16
	maxRequestSize     = 1 << 16
)

// Generator describes the Fortuna generator of github.com/seehuhn/fortuna.
// It has no entropy pools: every AddEntropy call reseeds directly.
type Generator struct {
	// Cipher names the registered block cipher. Defaults to "aes".
	Cipher string
	// Registry defaults to registry.Default.
	Registry *registry.Registry
}

var _ registry.PRNG = Generator{}

// Name returns the registry name.
func (Generator) Name() string { return GeneratorName }

// ExportSize returns the size of an export.
func (Generator) ExportSize() int { return generatorKeySize }

func (d Generator) newCipher() (registry.Cipher, error) {
	name := d.Cipher
	if name == "" {
		name = "aes"
	}
	reg := d.Registry
	if reg == nil {
		reg = registry.Default
	}

	c, err := reg.Cipher(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnsuitable, name, err)
	}
	if c.BlockSize() != generatorBlockSize {
		return nil, fmt.Errorf("%w: %s has a %d byte block", ErrUnsuitable, name, c.BlockSize())
	}
	if size, err := c.KeySize(generatorKeySize); err != nil || size != generatorKeySize {
		return nil, fmt.Errorf("%w: %s does not support %d byte keys", ErrUnsuitable, name, generatorKeySize)
	}
	return c, nil
}

// Start returns an unseeded generator.
func (d Generator) Start() (registry.Generator, error) {
	c, err := d.newCipher()
	if err != nil {
		return nil, err
	}
	return &seededGenerator{
		cipher: c,
		gen:    fortuna.NewGenerator(c.New),
	}, nil
}

// Test runs the self test of the cipher and exercises a generator.
func (d Generator) Test() error {
	c, err := d.newCipher()
	if err != nil {
		return err
	}
	if err := c.Test(); err != nil {
		return err
	}
	return testGenerator(d)
}

type seededGenerator struct {
	cipher registry.Cipher

	lock   sync.Mutex
	gen    *fortuna.Generator
	seeded bool
	ready  bool
	done   bool
}

func (g *seededGenerator) AddEntropy(data []byte) error {
	g.lock.Lock()
	defer g.lock.Unlock()

	if g.done {
		return ErrTerminated
	}
	g.gen.Reseed(data)
	g.seeded = true
	return nil
}

func (g *seededGenerator) Ready() error {
	g.lock.Lock()
	defer g.lock.Unlock()

	switch {
	case g.done:
		return ErrTerminated
	case !g.seeded:
		return ErrNotSeeded
	}
	g.ready = true
	return nil
}

func (g *seededGenerator) Read(p []byte) int {
	g.lock.Lock()
	defer g.lock.Unlock()

	if !g.ready || g.done {
		return 0
	}
	// the generator limits the size of a single request
	for out := p; len(out) > 0; {
		n := copy(out, g.gen.PseudoRandomData(uint(min(len(out), maxRequestSize))))
		out = out[n:]
	}
	return len(p)
}

func (g *seededGenerator) Done() error {
	g.lock.Lock()
	defer g.lock.Unlock()

	if g.done {
		return ErrTerminated
	}
	g.done = true
	g.ready = false
	g.gen = nil
	return nil
}

func (g *seededGenerator) Export() ([]byte, error) {
	g.lock.Lock()
	defer g.lock.Unlock()

	if !g.ready || g.done {
		return nil, ErrNotSeeded
	}
	return g.gen.PseudoRandomData(generatorKeySize), nil
}

func (g *seededGenerator) Import(data []byte) error {
	if len(data) < generatorKeySize {
		return ErrSeedTooShort
	}

	g.lock.Lock()
	defer g.lock.Unlock()

	g.gen = fortuna.NewGenerator(g.cipher.New)
	g.gen.Reseed(data)
	g.seeded = true
	g.ready = false
	g.done = false
	return nil
}
