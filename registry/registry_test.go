package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()

	r := New()
	for _, c := range []testCipher{
		{name: "blowfish", id: 1, blockSize: 8, maxKey: 56},
		{name: "aes", id: 6, blockSize: 16, maxKey: 32},
		{name: "twofish", id: 7, blockSize: 16, maxKey: 32},
	} {
		_, err := r.Ciphers.Register(c)
		require.NoError(t, err)
	}
	for _, h := range []*testHash{
		{name: "sha512", id: 5, size: 64, oid: []uint64{2, 16, 840, 1, 101, 3, 4, 2, 3}},
		{name: "sha256", id: 0, size: 32, oid: []uint64{2, 16, 840, 1, 101, 3, 4, 2, 1}},
		{name: "sha384", id: 4, size: 48, oid: []uint64{2, 16, 840, 1, 101, 3, 4, 2, 2}},
		{name: "sha1", id: 2, size: 20},
	} {
		_, err := r.Hashes.Register(h)
		require.NoError(t, err)
	}
	return r
}

func TestFindCipherAny(t *testing.T) {
	t.Parallel()

	r := testRegistry(t)

	idx, err := r.FindCipherAny("twofish", 8, 8)
	require.NoError(t, err)
	assert.Equal(t, 2, idx, "name takes precedence")

	idx, err = r.FindCipherAny("rc6", 16, 32)
	require.NoError(t, err)
	assert.Equal(t, 1, idx, "first cipher with matching block and key size")

	idx, err = r.FindCipherAny("", 8, 40)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	_, err = r.FindCipherAny("", 16, 64)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindCipherID(t *testing.T) {
	t.Parallel()

	r := testRegistry(t)

	idx, err := r.FindCipherID(6)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	_, err = r.FindCipherID(99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindHash(t *testing.T) {
	t.Parallel()

	r := testRegistry(t)

	idx, err := r.FindHashAny("sha1", 64)
	require.NoError(t, err)
	assert.Equal(t, 3, idx, "name takes precedence")

	idx, err = r.FindHashAny("md5", 40)
	require.NoError(t, err)
	assert.Equal(t, 2, idx, "smallest digest of at least 40 bytes is sha384")

	idx, err = r.FindHashAny("", 20)
	require.NoError(t, err)
	assert.Equal(t, 3, idx)

	_, err = r.FindHashAny("", 65)
	assert.ErrorIs(t, err, ErrNotFound)

	idx, err = r.FindHashID(0)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	idx, err = r.FindHashOID([]uint64{2, 16, 840, 1, 101, 3, 4, 2, 2})
	require.NoError(t, err)
	assert.Equal(t, 2, idx)

	_, err = r.FindHashOID([]uint64{1, 2, 3})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = r.FindHashOID(nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestRegistryLookups(t *testing.T) {
	t.Parallel()

	r := testRegistry(t)

	c, err := r.Cipher("aes")
	require.NoError(t, err)
	assert.Equal(t, 16, c.BlockSize())

	h, err := r.Hash("sha256")
	require.NoError(t, err)
	assert.Equal(t, 32, h.Size())

	_, err = r.PRNG("fortuna")
	assert.ErrorIs(t, err, ErrNotFound)

	r.Reset()
	assert.Equal(t, 0, r.Ciphers.Len())
	assert.Equal(t, 0, r.Hashes.Len())
	assert.Equal(t, 0, r.PRNGs.Len())
}
