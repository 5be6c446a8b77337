package fs

import (
	iofs "io/fs"
	"sync/atomic"

	"go.trai.ch/pnp/internal/core/ports"
)

var _ ports.FileSystem = (*DynamicFS)(nil)

// DynamicFS forwards every call to a target that can be swapped atomically.
// The engine reads through it so that setup can redirect it to the patched host filesystem.
type DynamicFS struct {
	target atomic.Pointer[fsBox]
}

type fsBox struct {
	fs ports.FileSystem
}

// NewDynamicFS creates a DynamicFS pointing at target.
func NewDynamicFS(target ports.FileSystem) *DynamicFS {
	d := &DynamicFS{}
	d.target.Store(&fsBox{fs: target})
	return d
}

// Target returns the current target.
func (d *DynamicFS) Target() ports.FileSystem {
	return d.target.Load().fs
}

// Swap installs target and returns the previous one.
func (d *DynamicFS) Swap(target ports.FileSystem) ports.FileSystem {
	return d.target.Swap(&fsBox{fs: target}).fs
}

// Open opens the named file.
func (d *DynamicFS) Open(name string) (iofs.File, error) { return d.Target().Open(name) }

// ReadFile reads the named file.
func (d *DynamicFS) ReadFile(name string) ([]byte, error) { return d.Target().ReadFile(name) }

// Stat returns the file info of the named file.
func (d *DynamicFS) Stat(name string) (iofs.FileInfo, error) { return d.Target().Stat(name) }

// ReadDir lists the named directory.
func (d *DynamicFS) ReadDir(name string) ([]iofs.DirEntry, error) { return d.Target().ReadDir(name) }

// Realpath returns the canonical path of name.
func (d *DynamicFS) Realpath(name string) (string, error) { return d.Target().Realpath(name) }

// WriteFile writes data to the named file.
func (d *DynamicFS) WriteFile(name string, data []byte, perm iofs.FileMode) error {
	return d.Target().WriteFile(name, data, perm)
}

// MkdirAll creates a directory and its parents.
func (d *DynamicFS) MkdirAll(name string, perm iofs.FileMode) error {
	return d.Target().MkdirAll(name, perm)
}

// ReadOnly reports whether name is read-only on the current target.
func (d *DynamicFS) ReadOnly(name string) bool { return d.Target().ReadOnly(name) }
