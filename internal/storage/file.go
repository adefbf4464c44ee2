package storage

import (
	"errors"
	"io/fs"
	"os"

	"github.com/alnah/go-mdlayout/internal/fileutil"
)

// File stores the record as a single file, replaced atomically on write.
type File struct {
	path string
}

// NewFile returns a file backend at path. The file is created on first write.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the backing file path.
func (f *File) Path() string { return f.path }

func (f *File) Read() ([]byte, error) {
	data, err := os.ReadFile(f.path) // #nosec G304 -- configured storage path
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return data, err
}

func (f *File) Write(data []byte) error {
	return fileutil.WriteFileAtomic(f.path, data, 0o600)
}

// Close is a no-op.
func (f *File) Close() error { return nil }

var _ Backend = (*File)(nil)
