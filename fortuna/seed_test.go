package fortuna

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safing/portcrypt/registry"
)

func TestExport(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t)

	f, err := New(Config{Registry: reg})
	require.NoError(t, err)
	_, err = f.Export()
	assert.ErrorIs(t, err, ErrNotStarted)

	f = newReady(t, Config{Registry: reg})

	_, err = f.ExportTo(make([]byte, ExportSize-1))
	assert.ErrorIs(t, err, ErrBufferTooSmall)

	buf := make([]byte, ExportSize+8)
	n, err := f.ExportTo(buf)
	require.NoError(t, err)
	assert.Equal(t, ExportSize, n)
	assert.Equal(t, make([]byte, 8), buf[ExportSize:], "must not write past the seed")

	assert.NotEqual(t, buf[:ExportSize], f.key[:], "exported key must not stay in use")

	seed, err := f.Export()
	require.NoError(t, err)
	assert.Len(t, seed, ExportSize)
	assert.NotEqual(t, buf[:ExportSize], seed)
}

func TestImportMixes(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t)
	source := newReady(t, Config{Registry: reg})
	seed, err := source.Export()
	require.NoError(t, err)

	imported, err := New(Config{Registry: reg})
	require.NoError(t, err)
	require.NoError(t, imported.Import(seed))
	assert.NotEqual(t, seed, imported.key[:], "import must not set the key to the seed")
	assert.False(t, imported.IsReady(), "Ready must be called after import")
	assert.Zero(t, imported.ReseedCount())
	fillPools(t, imported, 0x42)
	require.NoError(t, imported.Ready())

	fresh := newReady(t, Config{Registry: reg})
	assert.NotEqual(t, read(t, fresh, 64), read(t, imported, 64), "import must change the output")

	// importing is deterministic
	again, err := New(Config{Registry: reg})
	require.NoError(t, err)
	require.NoError(t, again.Import(seed))
	fillPools(t, again, 0x42)
	require.NoError(t, again.Ready())
	reference, err := New(Config{Registry: reg})
	require.NoError(t, err)
	require.NoError(t, reference.Import(seed))
	fillPools(t, reference, 0x42)
	require.NoError(t, reference.Ready())
	assert.Equal(t, read(t, reference, 64), read(t, again, 64))
}

func TestImportRestarts(t *testing.T) {
	t.Parallel()

	f := newReady(t, Config{})
	read(t, f, 16)

	require.NoError(t, f.Import(make([]byte, ExportSize)))
	assert.False(t, f.IsReady())
	assert.Zero(t, f.ReseedCount())
	assert.Equal(t, 0, f.Read(make([]byte, 16)))
}

func TestImportTooShort(t *testing.T) {
	t.Parallel()

	f := newReady(t, Config{})
	err := f.Import(make([]byte, ExportSize-1))
	assert.ErrorIs(t, err, ErrSeedTooShort)
	assert.ErrorIs(t, err, registry.ErrInvalidArgument)
	assert.True(t, f.IsReady(), "failed import must not restart")
}

func TestUpdateSeed(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t)
	a := newReady(t, Config{Registry: reg})
	b := newReady(t, Config{Registry: reg})

	require.NoError(t, a.UpdateSeed([]byte("additional seed")))
	assert.True(t, a.IsReady(), "update seed keeps the generator running")
	assert.Equal(t, uint64(1), a.ReseedCount())
	assert.NotEqual(t, read(t, a, 32), read(t, b, 32))

	stopped, err := New(Config{Registry: reg})
	require.NoError(t, err)
	assert.ErrorIs(t, stopped.UpdateSeed([]byte("x")), ErrNotStarted)
}
