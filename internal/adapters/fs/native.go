package fs

import (
	iofs "io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/pnp/internal/core/ports"
)

var _ ports.FileSystem = (*NativeFS)(nil)

// NativeFS is the bottom layer of the overlay stack. It talks to the host filesystem and
// returns its errors unmodified.
type NativeFS struct{}

// NewNativeFS creates a new NativeFS.
func NewNativeFS() *NativeFS {
	return &NativeFS{}
}

// Open opens the named file for reading.
func (n *NativeFS) Open(name string) (iofs.File, error) {
	return os.Open(name) //nolint:gosec // Path is controlled by caller
}

// ReadFile reads the whole named file.
func (n *NativeFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name) //nolint:gosec // Path is controlled by caller
}

// Stat returns the file info of the named file.
func (n *NativeFS) Stat(name string) (iofs.FileInfo, error) {
	return os.Stat(name)
}

// ReadDir lists the named directory.
func (n *NativeFS) ReadDir(name string) ([]iofs.DirEntry, error) {
	return os.ReadDir(name)
}

// Realpath resolves symlinks in name.
func (n *NativeFS) Realpath(name string) (string, error) {
	return filepath.EvalSymlinks(name)
}

// WriteFile writes data to the named file.
func (n *NativeFS) WriteFile(name string, data []byte, perm iofs.FileMode) error {
	return os.WriteFile(name, data, perm)
}

// MkdirAll creates a directory and its parents.
func (n *NativeFS) MkdirAll(name string, perm iofs.FileMode) error {
	return os.MkdirAll(name, perm)
}

// ReadOnly always reports false; permission errors surface from the host.
func (n *NativeFS) ReadOnly(string) bool {
	return false
}
