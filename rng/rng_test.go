package rng

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safing/portcrypt/config"
	"github.com/safing/portcrypt/fortuna"
	"github.com/safing/portcrypt/registry"
)

func TestMain(m *testing.M) {
	err := prep()
	if err != nil {
		panic(err)
	}

	err = start()
	if err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

func TestRNG(t *testing.T) { //nolint:paralleltest // Uses the global rng.
	b := make([]byte, 32)
	_, err := Read(b)
	if err != nil {
		t.Errorf("Read failed: %s", err)
	}
	if bytes.Equal(b, make([]byte, 32)) {
		t.Error("Read returned zeros")
	}
	_, err = Reader.Read(b)
	if err != nil {
		t.Errorf("Read failed: %s", err)
	}

	b1, err := Bytes(32)
	if err != nil {
		t.Errorf("Bytes failed: %s", err)
	}
	b2, err := Bytes(32)
	if err != nil {
		t.Errorf("Bytes failed: %s", err)
	}
	if bytes.Equal(b1, b2) {
		t.Error("consecutive reads returned the same data")
	}

	for i := 0; i < 100; i++ {
		n, err := Number(9)
		if err != nil {
			t.Fatalf("Number failed: %s", err)
		}
		if n > 9 {
			t.Fatalf("Number out of range: %d", n)
		}
	}

	err = AddEntropy([]byte("external entropy"))
	if err != nil {
		t.Errorf("AddEntropy failed: %s", err)
	}
}

func TestForcedReseed(t *testing.T) { //nolint:paralleltest // Uses the global rng.
	rngLock.Lock()
	rngBytesRead = reseedAfterBytes() + 1
	rngLock.Unlock()

	before := forcedReseeds.Get()
	b := make([]byte, 16)
	_, err := Read(b)
	require.NoError(t, err)

	rngLock.Lock()
	defer rngLock.Unlock()
	assert.Equal(t, int64(len(b)), rngBytesRead, "byte counter must restart after the reseed")
	assert.Equal(t, before+1, forcedReseeds.Get())
}

func TestFeeder(t *testing.T) { //nolint:paralleltest // Uses the global rng.
	f := NewFeeder(SourceExternal)

	// go through all functions
	f.NeedsEntropy()
	f.SupplyEntropy([]byte{0}, 0)
	f.SupplyEntropyAsInt(0, 0)
	f.SupplyEntropyIfNeeded([]byte{0}, 0)
	f.SupplyEntropyAsIntIfNeeded(0, 0)

	// fill entropy
	f.SupplyEntropyAsInt(0, 65535)

	// check blocking calls
	waitC := make(chan struct{})
	go func() {
		f.SupplyEntropy([]byte{0}, 0)
		close(waitC)
	}()
	select {
	case <-waitC:
		t.Error("call does not block!")
	case <-time.After(10 * time.Millisecond):
	}

	// check non-blocking calls
	waitC2 := make(chan struct{})
	go func() {
		f.SupplyEntropyIfNeeded([]byte{0}, 0)
		close(waitC2)
	}()
	select {
	case <-waitC2:
	case <-time.After(10 * time.Millisecond):
		t.Error("call blocks!")
	}

}

func TestSeedFile(t *testing.T) { //nolint:paralleltest // Uses the global config.
	path := filepath.Join(t.TempDir(), "seed", "rng.seed")
	require.NoError(t, config.SetConfigOption("random/seed_file", path))
	defer func() {
		_ = config.SetConfigOption("random/seed_file", nil)
	}()

	require.NoError(t, saveSeedFile())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, data, fortuna.ExportSize)

	// a second generator can be seeded from the file
	f, err := fortuna.New(activeConfig)
	require.NoError(t, err)
	require.NoError(t, f.Start())
	require.NoError(t, seed(f))
	assert.True(t, f.IsReady())
	out := make([]byte, 64)
	assert.Equal(t, len(out), f.Read(out))
	require.NoError(t, f.Done())

	// broken seed files are ignored
	require.NoError(t, os.WriteFile(path, []byte("short"), 0o0600))
	f, err = fortuna.New(activeConfig)
	require.NoError(t, err)
	require.NoError(t, f.Start())
	assert.ErrorIs(t, loadSeedFile(f), fortuna.ErrSeedTooShort)
	require.NoError(t, seed(f))
	assert.True(t, f.IsReady())
	require.NoError(t, f.Done())
}

func TestConfigOptions(t *testing.T) { //nolint:paralleltest // Uses the global config.
	defer func() {
		_ = config.SetConfigOption("random/rng_cipher", nil)
		_ = config.SetConfigOption("random/rng_hash", nil)
		_ = config.SetConfigOption("random/rate_limit", nil)
	}()

	cfg, err := fortunaConfig()
	require.NoError(t, err)
	assert.Equal(t, "aes", cfg.Cipher)
	assert.Equal(t, "SHA2-256", cfg.Hash)
	assert.Equal(t, 32, cfg.Pools)
	assert.Equal(t, fortuna.RateLimitCounter, cfg.RateLimit)

	for _, c := range []string{"serpent", "twofish"} {
		require.NoError(t, config.SetConfigOption("random/rng_cipher", c))
		require.NoError(t, config.SetConfigOption("random/rng_hash", "Blake2b-256"))
		require.NoError(t, config.SetConfigOption("random/rate_limit", "timed"))

		cfg, err := fortunaConfig()
		require.NoError(t, err)
		assert.Equal(t, c, cfg.Cipher)
		assert.Equal(t, fortuna.RateLimitTimed, cfg.RateLimit)

		f, err := fortuna.New(cfg)
		require.NoError(t, err, c)
		require.NoError(t, f.Test(), c)
	}

	assert.Error(t, config.SetConfigOption("random/rng_cipher", "blowfish"), "64 bit block ciphers are not offered")
	assert.Error(t, config.SetConfigOption("random/pools", 3))
	assert.Error(t, config.SetConfigOption("random/pools", 33))
}

func TestRegisterAlgorithms(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	require.NoError(t, RegisterAlgorithms(reg))
	ciphers, hashes, prngs := reg.Ciphers.Len(), reg.Hashes.Len(), reg.PRNGs.Len()

	// registering again does not consume slots
	require.NoError(t, RegisterAlgorithms(reg))
	assert.Equal(t, ciphers, reg.Ciphers.Len())
	assert.Equal(t, hashes, reg.Hashes.Len())
	assert.Equal(t, prngs, reg.PRNGs.Len())

	for _, name := range []string{"sprng", "fortuna-generator", fortuna.Name} {
		d, err := reg.PRNG(name)
		require.NoError(t, err, name)
		assert.NoError(t, d.Test(), name)
	}
}

func TestMetrics(t *testing.T) { //nolint:paralleltest // Uses the global rng.
	_, err := Bytes(64)
	require.NoError(t, err)

	var buf bytes.Buffer
	WriteMetrics(&buf, false)
	assert.Contains(t, buf.String(), "portcrypt_rng_read_bytes_total")
	assert.Contains(t, buf.String(), `portcrypt_rng_entropy_bytes_total{source="os"}`)
	assert.Contains(t, buf.String(), "portcrypt_rng_reseeds")
}

func TestHostSample(t *testing.T) {
	t.Parallel()

	assert.GreaterOrEqual(t, len(hostSample()), 8)
}
