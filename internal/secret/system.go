package secret

import (
	"os"

	"github.com/tessellate-ai/boardstrap/internal/fsutil"
)

// RealSystem implements System against the OS filesystem.
type RealSystem struct{}

// ReadFile reads the named file and returns its contents.
func (RealSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// WriteFileAtomic writes data via a temp file and rename.
func (RealSystem) WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	return fsutil.WriteFileAtomic(filename, data, perm)
}

// AppendFile appends data to the named file, creating it when absent.
func (RealSystem) AppendFile(filename string, data []byte, perm os.FileMode) error {
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, perm)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Chown changes the owner of the named file.
func (RealSystem) Chown(name string, uid int, gid int) error {
	return os.Chown(name, uid, gid)
}
