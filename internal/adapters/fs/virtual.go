package fs

import (
	iofs "io/fs"

	"go.trai.ch/pnp/internal/core/ports"
	"go.trai.ch/pnp/internal/engine/virtual"
)

var _ ports.FileSystem = (*VirtualFS)(nil)

// VirtualFS maps virtual package paths to their physical location before delegating.
type VirtualFS struct {
	base ports.FileSystem
}

// NewVirtualFS creates a VirtualFS on top of base.
func NewVirtualFS(base ports.FileSystem) *VirtualFS {
	return &VirtualFS{base: base}
}

// Open opens the named file.
func (v *VirtualFS) Open(name string) (iofs.File, error) {
	return v.base.Open(virtual.Resolve(name))
}

// ReadFile reads the named file.
func (v *VirtualFS) ReadFile(name string) ([]byte, error) {
	return v.base.ReadFile(virtual.Resolve(name))
}

// Stat returns the file info of the named file.
func (v *VirtualFS) Stat(name string) (iofs.FileInfo, error) {
	return v.base.Stat(virtual.Resolve(name))
}

// ReadDir lists the named directory.
func (v *VirtualFS) ReadDir(name string) ([]iofs.DirEntry, error) {
	return v.base.ReadDir(virtual.Resolve(name))
}

// Realpath canonicalizes the physical location of name and keeps its virtual identity,
// so two views of one package stay distinct after normalization.
func (v *VirtualFS) Realpath(name string) (string, error) {
	m, ok := virtual.Parse(name)
	if !ok {
		return v.base.Realpath(name)
	}
	if !m.HasSubpath {
		return name, nil
	}

	resolved, err := v.base.Realpath(virtual.Resolve(name))
	if err != nil {
		return "", err
	}
	return virtual.MakePath(m.Folder, m.Hash, resolved), nil
}

// WriteFile writes data to the named file.
func (v *VirtualFS) WriteFile(name string, data []byte, perm iofs.FileMode) error {
	return v.base.WriteFile(virtual.Resolve(name), data, perm)
}

// MkdirAll creates a directory and its parents.
func (v *VirtualFS) MkdirAll(name string, perm iofs.FileMode) error {
	return v.base.MkdirAll(virtual.Resolve(name), perm)
}

// ReadOnly reports whether the physical location of name is read-only.
func (v *VirtualFS) ReadOnly(name string) bool {
	return v.base.ReadOnly(virtual.Resolve(name))
}
