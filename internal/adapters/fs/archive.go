package fs

import (
	"errors"
	iofs "io/fs"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"go.trai.ch/pnp/internal/core/ports"
)

var _ ports.FileSystem = (*ArchiveFS)(nil)

// ArchiveFS mounts zip archives found on the base layer as read-only directories.
// Any path segment ending in ".zip" that is a regular file on the base layer is an archive;
// everything below it is served from the archive contents.
type ArchiveFS struct {
	base ports.FileSystem
	pool *Pool

	// archives caches whether a ".zip" prefix is a regular file on the base layer.
	archives sync.Map
}

// NewArchiveFS creates an ArchiveFS on top of base.
func NewArchiveFS(base ports.FileSystem, pool *Pool) *ArchiveFS {
	return &ArchiveFS{base: base, pool: pool}
}

// split returns the archive holding name and the slash separated path inside it.
// ok is false when name is not inside an archive.
func (a *ArchiveFS) split(name string) (archive, inner string, ok bool) {
	clean := filepath.ToSlash(filepath.Clean(name))
	segs := strings.Split(clean, "/")

	for i, seg := range segs {
		if !strings.HasSuffix(seg, ".zip") {
			continue
		}
		prefix := strings.Join(segs[:i+1], "/")
		if prefix == "" {
			continue
		}
		if !a.isArchive(prefix) {
			continue
		}
		inner = strings.Join(segs[i+1:], "/")
		if inner == "" {
			inner = "."
		}
		return filepath.FromSlash(prefix), inner, true
	}
	return "", "", false
}

func (a *ArchiveFS) isArchive(prefix string) bool {
	if v, ok := a.archives.Load(prefix); ok {
		b, _ := v.(bool)
		return b
	}
	info, err := a.base.Stat(filepath.FromSlash(prefix))
	isFile := err == nil && info.Mode().IsRegular()
	if err == nil || errors.Is(err, iofs.ErrNotExist) {
		a.archives.Store(prefix, isFile)
	}
	return isFile
}

// withArchive runs fn against the archive holding name.
func (a *ArchiveFS) withArchive(archive string, fn func(Archive) error) error {
	h, err := a.pool.Acquire(archive)
	if err != nil {
		return err
	}
	defer h.Release()
	return fn(h.Archive())
}

// Open opens the named file. Files inside archives keep their archive open until closed.
func (a *ArchiveFS) Open(name string) (iofs.File, error) {
	archive, inner, ok := a.split(name)
	if !ok {
		return a.base.Open(name)
	}

	h, err := a.pool.Acquire(archive)
	if err != nil {
		return nil, err
	}
	f, err := h.Archive().Open(inner)
	if err != nil {
		h.Release()
		return nil, relocate(err, "open", name)
	}
	return &archiveFile{File: f, handle: h}, nil
}

// ReadFile reads the named file.
func (a *ArchiveFS) ReadFile(name string) ([]byte, error) {
	archive, inner, ok := a.split(name)
	if !ok {
		return a.base.ReadFile(name)
	}

	var data []byte
	err := a.withArchive(archive, func(z Archive) error {
		var readErr error
		data, readErr = iofs.ReadFile(z, inner)
		return readErr
	})
	if err != nil {
		return nil, relocate(err, "open", name)
	}
	return data, nil
}

// Stat returns the file info of the named file. An archive itself stats as a directory.
func (a *ArchiveFS) Stat(name string) (iofs.FileInfo, error) {
	archive, inner, ok := a.split(name)
	if !ok {
		return a.base.Stat(name)
	}

	var info iofs.FileInfo
	err := a.withArchive(archive, func(z Archive) error {
		var statErr error
		info, statErr = iofs.Stat(z, inner)
		return statErr
	})
	if err != nil {
		return nil, relocate(err, "stat", name)
	}
	return info, nil
}

// ReadDir lists the named directory.
func (a *ArchiveFS) ReadDir(name string) ([]iofs.DirEntry, error) {
	archive, inner, ok := a.split(name)
	if !ok {
		return a.base.ReadDir(name)
	}

	var entries []iofs.DirEntry
	err := a.withArchive(archive, func(z Archive) error {
		var readErr error
		entries, readErr = iofs.ReadDir(z, inner)
		return readErr
	})
	if err != nil {
		return nil, relocate(err, "readdir", name)
	}
	return entries, nil
}

// Realpath resolves the archive location on the base layer and keeps the inner path.
func (a *ArchiveFS) Realpath(name string) (string, error) {
	archive, inner, ok := a.split(name)
	if !ok {
		return a.base.Realpath(name)
	}

	if _, err := a.Stat(name); err != nil {
		return "", err
	}
	resolved, err := a.base.Realpath(archive)
	if err != nil {
		return "", err
	}
	if inner == "." {
		return resolved, nil
	}
	return filepath.Join(resolved, filepath.FromSlash(inner)), nil
}

// WriteFile fails with EROFS inside archives.
func (a *ArchiveFS) WriteFile(name string, data []byte, perm iofs.FileMode) error {
	if _, _, ok := a.split(name); ok {
		return &iofs.PathError{Op: "write", Path: name, Err: syscall.EROFS}
	}
	return a.base.WriteFile(name, data, perm)
}

// MkdirAll fails with EROFS inside archives.
func (a *ArchiveFS) MkdirAll(name string, perm iofs.FileMode) error {
	if _, _, ok := a.split(name); ok {
		return &iofs.PathError{Op: "mkdir", Path: name, Err: syscall.EROFS}
	}
	return a.base.MkdirAll(name, perm)
}

// ReadOnly reports true for archive contents.
func (a *ArchiveFS) ReadOnly(name string) bool {
	if _, _, ok := a.split(name); ok {
		return true
	}
	return a.base.ReadOnly(name)
}

// relocate reports archive errors against the overlay path instead of the inner path.
func relocate(err error, op, name string) error {
	if pathErr, ok := err.(*iofs.PathError); ok { //nolint:errorlint // Only errors raised by the archive itself are relocated
		return &iofs.PathError{Op: op, Path: name, Err: pathErr.Err}
	}
	return err
}

// archiveFile releases its archive on Close.
type archiveFile struct {
	iofs.File
	handle *Handle
	once   sync.Once
}

func (f *archiveFile) Close() error {
	err := f.File.Close()
	f.once.Do(f.handle.Release)
	return err
}
