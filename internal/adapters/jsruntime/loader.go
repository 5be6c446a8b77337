// Package jsruntime hosts CommonJS modules with goja.
//
// The host loader owns the replaceable module primitives. Until an engine is applied it resolves
// requests the way Node does: builtins first, then relative and absolute paths, then node_modules
// folders walked upward from the issuer.
package jsruntime

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	pnpfs "go.trai.ch/pnp/internal/adapters/fs"
	"go.trai.ch/pnp/internal/core/domain"
	"go.trai.ch/pnp/internal/core/ports"
	"go.trai.ch/zerr"
)

// NativeOwner tags the primitives a loader starts with.
const NativeOwner = "native"

var nativeExtensions = []string{".js", ".json", ".node"}

var _ ports.ModuleLoader = (*Loader)(nil)

// Loader is a module loader whose primitives are swapped atomically.
type Loader struct {
	primitives atomic.Pointer[ports.LoaderPrimitives]
}

// NewLoader creates a loader resolving natively over fsys.
func NewLoader(fsys ports.FileSystem) *Loader {
	l := &Loader{}
	l.primitives.Store(&ports.LoaderPrimitives{
		Resolve: NativeResolver(fsys),
		FS:      fsys,
		Owner:   NativeOwner,
	})
	return l
}

var defaultLoader = sync.OnceValue(func() *Loader {
	return NewLoader(pnpfs.NewNativeFS())
})

// DefaultLoader returns the process module loader.
func DefaultLoader() *Loader {
	return defaultLoader()
}

// Primitives returns the installed primitives.
func (l *Loader) Primitives() *ports.LoaderPrimitives {
	return l.primitives.Load()
}

// CompareAndSwap installs next if old is still installed.
func (l *Loader) CompareAndSwap(old, next *ports.LoaderPrimitives) bool {
	return l.primitives.CompareAndSwap(old, next)
}

// NativeResolver resolves requests the way Node does without any package table.
func NativeResolver(fsys ports.FileSystem) ports.ResolveFunc {
	return func(request, issuer string) (ports.ModuleRef, error) {
		if domain.IsBuiltin(request) {
			return ports.ModuleRef{Path: domain.BuiltinName(request), Builtin: true}, nil
		}

		dir := filepath.Dir(issuer)
		if strings.HasSuffix(issuer, "/") {
			dir = filepath.Clean(issuer)
		}

		if filepath.IsAbs(request) || request == "." || request == ".." ||
			strings.HasPrefix(request, "./") || strings.HasPrefix(request, "../") {
			target := request
			if !filepath.IsAbs(target) {
				target = filepath.Join(dir, request)
			}
			if found, ok := probe(fsys, filepath.Clean(target)); ok {
				return ports.ModuleRef{Path: found}, nil
			}
			return ports.ModuleRef{}, notFound(request, issuer)
		}

		for current := dir; ; current = filepath.Dir(current) {
			if filepath.Base(current) != "node_modules" {
				if found, ok := probe(fsys, filepath.Join(current, "node_modules", request)); ok {
					return ports.ModuleRef{Path: found}, nil
				}
			}
			if parent := filepath.Dir(current); parent == current {
				break
			}
		}
		return ports.ModuleRef{}, notFound(request, issuer)
	}
}

func probe(fsys ports.FileSystem, path string) (string, bool) {
	info, err := fsys.Stat(path)
	if err == nil && !info.IsDir() {
		return path, true
	}
	isDir := err == nil

	if isDir {
		if main := manifestMain(fsys, path); main != "" {
			if next := filepath.Join(path, main); next != path {
				if found, ok := probe(fsys, next); ok {
					return found, true
				}
			}
		}
	}

	for _, ext := range nativeExtensions {
		if isFile(fsys, path+ext) {
			return path + ext, true
		}
	}

	if isDir {
		for _, ext := range nativeExtensions {
			candidate := filepath.Join(path, "index"+ext)
			if isFile(fsys, candidate) {
				return candidate, true
			}
		}
	}
	return "", false
}

func isFile(fsys ports.FileSystem, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && !info.IsDir()
}

func manifestMain(fsys ports.FileSystem, dir string) string {
	data, err := fsys.ReadFile(filepath.Join(dir, "package.json"))
	if err != nil {
		return ""
	}
	var manifest struct {
		Main string `json:"main"`
	}
	if json.Unmarshal(data, &manifest) != nil {
		return ""
	}
	return manifest.Main
}

func notFound(request, issuer string) error {
	err := zerr.With(zerr.Wrap(domain.ErrModuleNotFound, "native resolution failed"), "request", request)
	return zerr.With(err, "issuer", issuer)
}
