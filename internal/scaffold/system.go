package scaffold

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tessellate-ai/boardstrap/internal/fsutil"
)

// RealSystem implements System against the OS filesystem.
type RealSystem struct{}

// ReadFile reads the named file and returns its contents.
func (RealSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// MkdirAll creates a directory along with any necessary parents.
func (RealSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// WriteFileAtomic writes data via a temp file and rename.
func (RealSystem) WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	return fsutil.WriteFileAtomic(filename, data, perm)
}

// Chown changes the owner of the named file.
func (RealSystem) Chown(name string, uid int, gid int) error {
	return os.Chown(name, uid, gid)
}

// WalkDir walks the file tree rooted at root.
func (RealSystem) WalkDir(root string, fn fs.WalkDirFunc) error {
	return filepath.WalkDir(root, fn)
}
