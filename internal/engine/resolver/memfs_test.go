package resolver_test

import (
	iofs "io/fs"
	"path"
	"strings"
	"syscall"
	"testing/fstest"

	"go.trai.ch/pnp/internal/core/ports"
)

var _ ports.FileSystem = memFS{}

// memFS serves absolute slash paths from an fstest.MapFS.
type memFS struct {
	files fstest.MapFS
}

func newMemFS(files map[string]string) memFS {
	m := fstest.MapFS{}
	for name, content := range files {
		m[strings.TrimPrefix(name, "/")] = &fstest.MapFile{Data: []byte(content)}
	}
	return memFS{files: m}
}

func (m memFS) key(name string) string {
	cleaned := strings.TrimPrefix(path.Clean(name), "/")
	if cleaned == "" {
		return "."
	}
	return cleaned
}

func (m memFS) Open(name string) (iofs.File, error)          { return m.files.Open(m.key(name)) }
func (m memFS) ReadFile(name string) ([]byte, error)         { return m.files.ReadFile(m.key(name)) }
func (m memFS) Stat(name string) (iofs.FileInfo, error)      { return m.files.Stat(m.key(name)) }
func (m memFS) ReadDir(name string) ([]iofs.DirEntry, error) { return m.files.ReadDir(m.key(name)) }

func (m memFS) Realpath(name string) (string, error) {
	if _, err := m.Stat(name); err != nil {
		return "", err
	}
	return path.Clean(name), nil
}

func (m memFS) WriteFile(name string, _ []byte, _ iofs.FileMode) error {
	return &iofs.PathError{Op: "open", Path: name, Err: syscall.EROFS}
}

func (m memFS) MkdirAll(name string, _ iofs.FileMode) error {
	return &iofs.PathError{Op: "mkdir", Path: name, Err: syscall.EROFS}
}

func (m memFS) ReadOnly(string) bool { return true }
