package random

import (
	"crypto/rand"
	"sync"

	"github.com/safing/portcrypt/registry"
)

// SystemName is the registry name of the system RNG.
const SystemName = "sprng"

const systemExportSize = 32

// System describes the operating system RNG. It cannot be fed, entropy is
// accepted and discarded.
type System struct{}

var _ registry.PRNG = System{}

// Name returns the registry name.
func (System) Name() string { return SystemName }

// ExportSize returns the size of an export.
func (System) ExportSize() int { return systemExportSize }

// Start returns a generator reading from the operating system.
func (System) Start() (registry.Generator, error) {
	return &systemGenerator{}, nil
}

// Test checks that the operating system delivers random data.
func (s System) Test() error {
	return testGenerator(s)
}

type systemGenerator struct {
	lock sync.Mutex
	done bool
}

func (g *systemGenerator) terminated() bool {
	g.lock.Lock()
	defer g.lock.Unlock()

	return g.done
}

func (g *systemGenerator) AddEntropy(data []byte) error {
	if g.terminated() {
		return ErrTerminated
	}
	return nil
}

func (g *systemGenerator) Ready() error {
	if g.terminated() {
		return ErrTerminated
	}
	return nil
}

func (g *systemGenerator) Read(p []byte) int {
	if g.terminated() {
		return 0
	}
	n, err := rand.Read(p)
	if err != nil {
		return 0
	}
	return n
}

func (g *systemGenerator) Done() error {
	g.lock.Lock()
	defer g.lock.Unlock()

	if g.done {
		return ErrTerminated
	}
	g.done = true
	return nil
}

func (g *systemGenerator) Export() ([]byte, error) {
	out := make([]byte, systemExportSize)
	if g.Read(out) != len(out) {
		return nil, ErrReadFailed
	}
	return out, nil
}

func (g *systemGenerator) Import(data []byte) error {
	if len(data) < systemExportSize {
		return ErrSeedTooShort
	}
	g.lock.Lock()
	defer g.lock.Unlock()

	g.done = false
	return nil
}
