package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sub", "data")
	require.NoError(t, WriteFileAtomic(path, []byte("first"), 0o0600, 0o0700))
	require.NoError(t, WriteFileAtomic(path, []byte("second"), 0o0600, 0o0700))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	// a file in place of the parent directory
	assert.Error(t, WriteFileAtomic(filepath.Join(path, "data"), []byte("x"), 0o0600, 0o0700))
}
