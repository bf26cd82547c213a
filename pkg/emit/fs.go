package emit

import (
	"io"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// PendingFile is a temporary file that replaces its destination only when
// CloseAtomicallyReplace succeeds. Cleanup is a no-op after that.
type PendingFile interface {
	io.Writer
	CloseAtomicallyReplace() error
	Cleanup() error
}

// FileSystem abstracts file system operations for testability.
type FileSystem interface {
	Pending(path string, perm os.FileMode) (PendingFile, error)
	MkdirAll(path string, perm os.FileMode) error
}

// LocalFS implements FileSystem with renameio pending files on the local disk.
type LocalFS struct{}

// Pending stages path in a temporary file next to it, so the final rename
// never crosses a file system boundary.
func (LocalFS) Pending(path string, perm os.FileMode) (PendingFile, error) {
	f, err := renameio.NewPendingFile(path,
		renameio.WithTempDir(filepath.Dir(path)),
		renameio.WithStaticPermissions(perm),
	)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (LocalFS) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Default is the default local file system.
var Default FileSystem = LocalFS{}
