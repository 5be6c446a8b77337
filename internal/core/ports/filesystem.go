// Package ports defines the core interfaces for the application.
package ports

import (
	"io/fs"
)

// FileSystem is the capability surface shared by every overlay layer.
//
// Callers cannot tell a virtual, archived or native file apart except through ReadOnly.
//
//go:generate go run go.uber.org/mock/mockgen -source=filesystem.go -destination=mocks/mock_filesystem.go -package=mocks
type FileSystem interface {
	// Open opens the named file for reading.
	Open(name string) (fs.File, error)
	// ReadFile reads the whole named file.
	ReadFile(name string) ([]byte, error)
	// Stat returns the file info of the named file, following symlinks.
	Stat(name string) (fs.FileInfo, error)
	// ReadDir lists the named directory sorted by file name.
	ReadDir(name string) ([]fs.DirEntry, error)
	// Realpath returns the canonical path of name.
	Realpath(name string) (string, error)
	// WriteFile writes data to the named file.
	WriteFile(name string, data []byte, perm fs.FileMode) error
	// MkdirAll creates a directory and its parents.
	MkdirAll(name string, perm fs.FileMode) error
	// ReadOnly reports whether name is served from read-only storage.
	ReadOnly(name string) bool
}
