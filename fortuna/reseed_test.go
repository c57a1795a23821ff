package fortuna

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetPools returns the pools that hold no input.
func resetPools(f *Fortuna) []int {
	empty := f.hash.New().Sum(nil)

	var reset []int
	for i, p := range f.pools {
		if string(p.state.Sum(nil)) == string(empty) {
			reset = append(reset, i)
		}
	}
	return reset
}

func TestReseedPoolSchedule(t *testing.T) {
	t.Parallel()

	f := newStarted(t, Config{})

	expected := map[uint64][]int{
		1:  {0},
		2:  {0, 1},
		3:  {0},
		4:  {0, 1, 2},
		5:  {0},
		6:  {0, 1},
		8:  {0, 1, 2, 3},
		12: {0, 1, 2},
		16: {0, 1, 2, 3, 4},
		32: {0, 1, 2, 3, 4, 5},
	}
	for r := uint64(1); r <= 32; r++ {
		fillPools(t, f, byte(r))
		require.NoError(t, f.Ready())
		require.Equal(t, r, f.ReseedCount())

		if pools, ok := expected[r]; ok {
			assert.Equal(t, pools, resetPools(f), "reseed #%d", r)
		}
	}
}

func TestFirstReseedUsesPoolZeroOnly(t *testing.T) {
	t.Parallel()

	// the schedule counts the reseed being performed, so reseed #1 has bit 0
	// set and stops after pool 0
	f := newStarted(t, Config{Pools: 8})
	fillPools(t, f, 1)
	require.NoError(t, f.Ready())
	assert.Equal(t, uint64(1), f.ReseedCount())
	assert.Equal(t, []int{0}, resetPools(f))
}

func TestReseedMixesOldKey(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t)
	a := newReady(t, Config{Registry: reg})
	b := newReady(t, Config{Registry: reg})
	read(t, a, 16)

	// Same pool content, different key history.
	fillPools(t, a, 9)
	fillPools(t, b, 9)
	require.NoError(t, a.Ready())
	require.NoError(t, b.Ready())
	assert.NotEqual(t, read(t, a, 32), read(t, b, 32))
}

func TestPool0ThresholdReseed(t *testing.T) {
	t.Parallel()

	f := newReady(t, Config{ReseedEvery: 1})
	require.Equal(t, uint64(1), f.ReseedCount())

	require.NoError(t, f.AddRandomEvent(0, 0, make([]byte, 32)))
	require.NoError(t, f.AddRandomEvent(0, 0, make([]byte, 31)))
	read(t, f, 16)
	assert.Equal(t, uint64(1), f.ReseedCount(), "63 bytes in pool 0 must not trigger a reseed")

	require.NoError(t, f.AddRandomEvent(0, 0, []byte{1}))
	read(t, f, 16)
	assert.Equal(t, uint64(2), f.ReseedCount(), "64 bytes in pool 0 must trigger a reseed")
	assert.Zero(t, f.pool0Len)

	// events on other pools do not count
	for i := 0; i < 10; i++ {
		require.NoError(t, f.AddRandomEvent(0, 1, make([]byte, 32)))
	}
	read(t, f, 16)
	assert.Equal(t, uint64(2), f.ReseedCount())
}

func TestCounterRateLimit(t *testing.T) {
	t.Parallel()

	f := newReady(t, Config{})
	require.Equal(t, uint64(1), f.ReseedCount())

	require.NoError(t, f.AddRandomEvent(0, 0, make([]byte, 32)))
	require.NoError(t, f.AddRandomEvent(0, 0, make([]byte, 32)))
	for i := 1; i < DefaultReseedEvery; i++ {
		read(t, f, 16)
		assert.Equal(t, uint64(1), f.ReseedCount(), "attempt %d must be skipped", i)
	}
	read(t, f, 16)
	assert.Equal(t, uint64(2), f.ReseedCount(), "attempt %d must reseed", DefaultReseedEvery)
}

func TestTimedRateLimit(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	f := newReady(t, Config{RateLimit: RateLimitTimed, Clock: clock, ReseedQuantum: time.Second})
	require.Equal(t, uint64(1), f.ReseedCount())

	require.NoError(t, f.AddRandomEvent(0, 0, make([]byte, 32)))
	require.NoError(t, f.AddRandomEvent(0, 0, make([]byte, 32)))

	// same quantum as the last reseed
	clock.Advance(500 * time.Millisecond)
	read(t, f, 16)
	read(t, f, 16)
	assert.Equal(t, uint64(1), f.ReseedCount())

	clock.Advance(time.Second)
	read(t, f, 16)
	assert.Equal(t, uint64(2), f.ReseedCount())
}
