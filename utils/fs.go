package utils

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// WriteFileAtomic writes data to path with the given permissions. Missing
// parent directories are created with dirPerm, existing ones are left as they
// are. Readers either see the old or the new content.
func WriteFileAtomic(path string, data []byte, perm, dirPerm fs.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("could not create dir %s: %w", dir, err)
	}
	return renameio.WriteFile(path, data, perm)
}
