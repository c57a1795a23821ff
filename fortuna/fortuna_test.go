package fortuna

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safing/portcrypt/registry"
)

func TestNew(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t)

	f, err := New(Config{Registry: reg})
	require.NoError(t, err)
	assert.Equal(t, DefaultPools, f.Pools())
	assert.Equal(t, "SHA2-256", f.hash.Name())
	assert.Equal(t, "aes", f.cipher.Name())

	_, err = New(Config{Registry: reg, Hash: "SHA3-256", Cipher: "serpent", Pools: MinPools})
	assert.NoError(t, err)
	_, err = New(Config{Registry: reg, Hash: "Blake2s-256", Cipher: "twofish", Pools: MaxPools})
	assert.NoError(t, err)

	_, err = New(Config{Registry: reg, Hash: "SHA2-512"})
	assert.ErrorIs(t, err, ErrUnsuitableHash)
	_, err = New(Config{Registry: reg, Hash: "SHA2-1024"})
	assert.ErrorIs(t, err, ErrUnsuitableHash)
	assert.ErrorIs(t, err, registry.ErrNotFound)

	_, err = New(Config{Registry: reg, Cipher: "blowfish"})
	assert.ErrorIs(t, err, ErrUnsuitableCipher)
	_, err = New(Config{Registry: reg, Cipher: "rc6"})
	assert.ErrorIs(t, err, ErrUnsuitableCipher)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	for _, pools := range []int{-1, 1, MinPools - 1, MaxPools + 1} {
		_, err = New(Config{Registry: reg, Pools: pools})
		assert.ErrorIs(t, err, ErrInvalidConfig, "%d pools", pools)
	}
	_, err = New(Config{Registry: reg, RateLimit: RateLimit(7)})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestUnreadyRead(t *testing.T) {
	t.Parallel()

	f, err := New(Config{Registry: testRegistry(t)})
	require.NoError(t, err)

	buf := make([]byte, 32)
	assert.Equal(t, 0, f.Read(buf), "not started")

	require.NoError(t, f.Start())
	fillPools(t, f, 1)
	assert.Equal(t, 0, f.Read(buf), "started, but not ready")
	assert.Equal(t, make([]byte, 32), buf, "buffer must not be touched")
	assert.False(t, f.IsReady())

	require.NoError(t, f.Ready())
	assert.True(t, f.IsReady())
	assert.Equal(t, 32, f.Read(buf))
}

func TestReadyRequiresStart(t *testing.T) {
	t.Parallel()

	f, err := New(Config{Registry: testRegistry(t)})
	require.NoError(t, err)
	assert.ErrorIs(t, f.Ready(), ErrNotStarted)
}

func TestReadSizes(t *testing.T) {
	t.Parallel()

	f := newReady(t, Config{})
	for _, size := range []int{0, 1, 15, 16, 17, 31, 32, 1000} {
		buf := make([]byte, size)
		assert.Equal(t, size, f.Read(buf), "read %d bytes", size)
		if size >= 16 {
			assert.NotEqual(t, make([]byte, size), buf, "read %d bytes", size)
		}
	}
}

func TestReadIsDeterministic(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t)
	a := newReady(t, Config{Registry: reg})
	b := newReady(t, Config{Registry: reg})

	assert.Equal(t, read(t, a, 100), read(t, b, 100), "equal input must produce equal output")

	// Splitting a read changes the output, as the key is replaced after
	// every read.
	whole := read(t, a, 32)
	first := read(t, b, 16)
	second := read(t, b, 16)
	assert.Equal(t, whole[:16], first)
	assert.NotEqual(t, whole[16:], second)
}

func TestKeyReplacedOnRead(t *testing.T) {
	t.Parallel()

	f := newReady(t, Config{})
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		before := f.key
		out := read(t, f, 16)
		assert.NotEqual(t, before, f.key, "key must change on every read")
		assert.False(t, seen[string(out)], "repeated output block")
		seen[string(out)] = true
	}

	// A read of zero bytes still replaces the key.
	before := f.key
	assert.Equal(t, 0, f.Read(nil))
	assert.NotEqual(t, before, f.key)
}

func TestCounter(t *testing.T) {
	t.Parallel()

	f := &Fortuna{}
	f.incrementCounter()
	assert.Equal(t, byte(1), f.counter[0])

	for i := range f.counter[:4] {
		f.counter[i] = 0xFF
	}
	f.incrementCounter()
	assert.Equal(t, [BlockSize]byte{0, 0, 0, 0, 1}, f.counter, "carry must propagate little endian")

	for i := range f.counter {
		f.counter[i] = 0xFF
	}
	f.incrementCounter()
	assert.Equal(t, [BlockSize]byte{}, f.counter, "counter wraps")
}

func TestAddEvents(t *testing.T) {
	t.Parallel()

	f, err := New(Config{Registry: testRegistry(t), Pools: 8})
	require.NoError(t, err)

	assert.ErrorIs(t, f.AddEntropy([]byte{1}), ErrNotStarted)
	assert.ErrorIs(t, f.AddRandomEvent(0, 0, []byte{1}), ErrNotStarted)

	require.NoError(t, f.Start())

	for _, pool := range []int{-1, 8, 100} {
		err := f.AddRandomEvent(0, pool, []byte{1})
		assert.ErrorIs(t, err, ErrInvalidPool)
		assert.ErrorIs(t, err, registry.ErrInvalidArgument)
	}
	assert.ErrorIs(t, f.AddRandomEvent(0, 0, nil), ErrEmptyEvent)
	assert.ErrorIs(t, f.AddEntropy(nil), ErrEmptyEvent)

	// events are truncated
	require.NoError(t, f.AddRandomEvent(3, 0, make([]byte, 100)))
	assert.Equal(t, MaxEventSize, f.pool0Len)
	require.NoError(t, f.AddRandomEvent(3, 1, make([]byte, 100)))
	assert.Equal(t, MaxEventSize, f.pool0Len, "only pool 0 counts")

	// AddEntropy walks the pools round robin
	assert.Equal(t, 0, f.poolIdx)
	for i := 1; i <= 9; i++ {
		require.NoError(t, f.AddEntropy([]byte{byte(i)}))
		assert.Equal(t, i%8, f.poolIdx)
	}
	assert.Equal(t, MaxEventSize+2, f.pool0Len, "two of the entropy calls hit pool 0")
}

func TestEventFraming(t *testing.T) {
	t.Parallel()

	// The source and length are part of the pool input.
	reg := testRegistry(t)
	a := newStarted(t, Config{Registry: reg})
	b := newStarted(t, Config{Registry: reg})
	c := newStarted(t, Config{Registry: reg})

	require.NoError(t, a.AddRandomEvent(1, 0, []byte("abcd")))
	require.NoError(t, b.AddRandomEvent(2, 0, []byte("abcd")))
	require.NoError(t, c.AddRandomEvent(1, 0, []byte("ab")))
	require.NoError(t, c.AddRandomEvent(1, 0, []byte("cd")))

	for _, f := range []*Fortuna{a, b, c} {
		require.NoError(t, f.Ready())
	}
	outA, outB, outC := read(t, a, 32), read(t, b, 32), read(t, c, 32)
	assert.NotEqual(t, outA, outB)
	assert.NotEqual(t, outA, outC)
}

func TestDone(t *testing.T) {
	t.Parallel()

	f, err := New(Config{Registry: testRegistry(t)})
	require.NoError(t, err)
	assert.ErrorIs(t, f.Done(), ErrNotStarted)

	require.NoError(t, f.Start())
	fillPools(t, f, 7)
	require.NoError(t, f.Ready())
	read(t, f, 32)

	require.NoError(t, f.Done())
	assert.False(t, f.IsReady())
	assert.Equal(t, [KeySize]byte{}, f.key, "key must be wiped")
	assert.Equal(t, 0, f.Read(make([]byte, 16)))
	assert.ErrorIs(t, f.AddEntropy([]byte{1}), ErrNotStarted)
	assert.ErrorIs(t, f.Ready(), ErrNotStarted)

	err = f.Done()
	assert.ErrorIs(t, err, ErrFinalized, "second Done must fail")

	// a terminated generator can be started again
	require.NoError(t, f.Start())
	fillPools(t, f, 7)
	require.NoError(t, f.Ready())
	read(t, f, 32)
	require.NoError(t, f.Done())
}

func TestSelfTest(t *testing.T) {
	t.Parallel()

	for _, cfg := range []Config{
		{},
		{Hash: "SHA3-256", Cipher: "serpent", Pools: MinPools},
		{Hash: "Blake2b-256", Cipher: "twofish", RateLimit: RateLimitTimed},
	} {
		cfg.Registry = testRegistry(t)
		f, err := New(cfg)
		require.NoError(t, err)
		assert.NoError(t, f.Test(), "%s/%s", cfg.Hash, cfg.Cipher)
		assert.False(t, f.IsReady(), "self test must not touch the tested generator")
	}
}

func TestTimedReadyAfterDelay(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	f := newStarted(t, Config{RateLimit: RateLimitTimed, Clock: clock})

	// Ready always reseeds, even twice within one quantum.
	require.NoError(t, f.Ready())
	require.NoError(t, f.Ready())
	assert.Equal(t, uint64(2), f.ReseedCount())

	clock.Advance(time.Hour)
	require.NoError(t, f.Ready())
	assert.Equal(t, uint64(3), f.ReseedCount())
	read(t, f, 64)
}
