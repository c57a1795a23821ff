package fortuna

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/safing/portcrypt/crypto/ciphers"
	"github.com/safing/portcrypt/crypto/hash"
	"github.com/safing/portcrypt/registry"
)

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()

	reg := registry.New()
	require.NoError(t, hash.RegisterAll(reg))
	require.NoError(t, ciphers.RegisterAll(reg))
	return reg
}

// newStarted returns a started generator with every pool holding one event.
func newStarted(t *testing.T, cfg Config) *Fortuna {
	t.Helper()

	if cfg.Registry == nil {
		cfg.Registry = testRegistry(t)
	}
	f, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, f.Start())
	fillPools(t, f, 0x42)
	return f
}

func newReady(t *testing.T, cfg Config) *Fortuna {
	t.Helper()

	f := newStarted(t, cfg)
	require.NoError(t, f.Ready())
	return f
}

func fillPools(t *testing.T, f *Fortuna, fill byte) {
	t.Helper()

	for i := 0; i < f.Pools(); i++ {
		require.NoError(t, f.AddRandomEvent(1, i, bytes.Repeat([]byte{fill, byte(i)}, 8)))
	}
}

func read(t *testing.T, f *Fortuna, n int) []byte {
	t.Helper()

	buf := make([]byte, n)
	require.Equal(t, n, f.Read(buf))
	return buf
}

type fakeClock struct {
	lock sync.Mutex
	now  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{
		now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (c *fakeClock) Now() time.Time {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.now = c.now.Add(d)
}
