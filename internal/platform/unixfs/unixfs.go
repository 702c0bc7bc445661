// Package unixfs provides the os-backed implementation of the collector's
// file-system capability.
package unixfs

import (
	"io"
	"os"
)

// FS implements collector.FileSystem on the real file system.
type FS struct{}

func New() FS {
	return FS{}
}

func (FS) CreateDir(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (FS) FileExists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func (FS) Remove(path string) error {
	return os.Remove(path)
}

// OpenAppend opens path for append-only writes, creating it if absent. Writes
// through the returned handle are unbuffered, so every line reaches the OS as
// soon as it is written.
func (FS) OpenAppend(path string) (io.WriteCloser, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}
