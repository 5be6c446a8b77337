package domain

import (
	"path/filepath"
	"regexp"
	"strings"

	"go.trai.ch/zerr"
)

// ArchiveBackend selects the zip implementation used by the archive layer.
type ArchiveBackend string

const (
	// ArchiveBackendCompress reads archives with github.com/klauspost/compress/zip.
	ArchiveBackendCompress ArchiveBackend = "compress"
	// ArchiveBackendStd reads archives with archive/zip.
	ArchiveBackendStd ArchiveBackend = "std"
)

// ParseArchiveBackend validates a backend selector. The empty string selects the default backend.
func ParseArchiveBackend(s string) (ArchiveBackend, error) {
	switch ArchiveBackend(s) {
	case "":
		return ArchiveBackendCompress, nil
	case ArchiveBackendCompress, ArchiveBackendStd:
		return ArchiveBackend(s), nil
	default:
		return "", zerr.With(zerr.Wrap(ErrUnknownArchiveBackend, "invalid configuration"), "backend", s)
	}
}

// RuntimeState is the immutable resolution snapshot consumed by the engine.
// Nothing mutates it once NewRuntimeState has returned.
type RuntimeState struct {
	// ID identifies the snapshot content. Two engines built from the same artifact share it.
	ID string

	// StatePath is the artifact the state was loaded from; the engine serves it for self-references.
	StatePath string

	// BasePath is the absolute directory package locations are relative to.
	BasePath string

	Registry            PackageRegistry
	DependencyTreeRoots []Locator
	FallbackPool        []Locator
	EnableFallback      bool
	IgnorePattern       *regexp.Regexp
	ArchiveBackend      ArchiveBackend

	fallbackExclusions map[Locator]struct{}
	locations          map[string]Locator
}

// StateSpec carries the hydrated pieces a RuntimeState is assembled from.
type StateSpec struct {
	ID                  string
	StatePath           string
	BasePath            string
	Registry            PackageRegistry
	DependencyTreeRoots []Locator
	FallbackPool        []Locator
	FallbackExclusions  []Locator
	EnableFallback      bool
	IgnorePattern       *regexp.Regexp
	ArchiveBackend      ArchiveBackend
}

// NewRuntimeState validates the hydrated pieces and builds the location index.
// Every locator they reference must be a registry key.
func NewRuntimeState(spec StateSpec) (*RuntimeState, error) {
	s := &RuntimeState{
		ID:                  spec.ID,
		StatePath:           spec.StatePath,
		BasePath:            filepath.Clean(spec.BasePath),
		Registry:            spec.Registry,
		DependencyTreeRoots: spec.DependencyTreeRoots,
		FallbackPool:        spec.FallbackPool,
		EnableFallback:      spec.EnableFallback,
		IgnorePattern:       spec.IgnorePattern,
		ArchiveBackend:      spec.ArchiveBackend,
		fallbackExclusions:  make(map[Locator]struct{}, len(spec.FallbackExclusions)),
		locations:           make(map[string]Locator),
	}
	if s.ArchiveBackend == "" {
		s.ArchiveBackend = ArchiveBackendCompress
	}
	if s.Registry == nil {
		s.Registry = make(PackageRegistry)
	}

	for _, l := range spec.FallbackExclusions {
		s.fallbackExclusions[l] = struct{}{}
	}

	if err := s.validate(); err != nil {
		return nil, err
	}

	for _, l := range s.Registry.Locators() {
		info, _ := s.Registry.Get(l)
		if info.DiscardFromLookup {
			continue
		}
		s.locations[WithTrailingSlash(info.PackageLocation)] = l
	}

	return s, nil
}

func (s *RuntimeState) validate() error {
	check := func(l Locator, context string) error {
		if !s.Registry.Has(l) {
			return zerr.With(zerr.With(zerr.Wrap(ErrDanglingLocator, "invalid runtime state"), "locator", l.String()), "referenced_by", context)
		}
		return nil
	}

	for _, l := range s.Registry.Locators() {
		info, _ := s.Registry.Get(l)
		if !info.LinkType.Valid() {
			return zerr.With(zerr.With(zerr.Wrap(ErrInvalidLinkType, "invalid runtime state"), "locator", l.String()), "link_type", string(info.LinkType))
		}
		for _, name := range info.DependencyNames() {
			dep := info.Dependencies[name]
			if dep.Missing {
				continue
			}
			if err := check(dep.Locator, l.String()); err != nil {
				return err
			}
		}
	}
	for _, l := range s.DependencyTreeRoots {
		if err := check(l, "dependencyTreeRoots"); err != nil {
			return err
		}
	}
	for _, l := range s.FallbackPool {
		if err := check(l, "fallbackPool"); err != nil {
			return err
		}
	}
	return nil
}

// FindLocator returns the locator owning p using a longest-prefix match over package locations.
// It also returns the matched package location.
func (s *RuntimeState) FindLocator(p string) (Locator, string, bool) {
	dir := filepath.Clean(p)
	for {
		key := WithTrailingSlash(dir)
		if l, ok := s.locations[key]; ok {
			return l, key, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return Locator{}, "", false
		}
		dir = parent
	}
}

// IsFallbackExcluded reports whether the issuer may never use the fallback pool.
func (s *RuntimeState) IsFallbackExcluded(l Locator) bool {
	_, ok := s.fallbackExclusions[l]
	return ok
}

// FallbackExclusions returns the excluded locators.
func (s *RuntimeState) FallbackExclusions() []Locator {
	out := make([]Locator, 0, len(s.fallbackExclusions))
	for l := range s.fallbackExclusions {
		out = append(out, l)
	}
	return out
}

// FindFallback returns the first fallback pool entry with the given package name.
func (s *RuntimeState) FindFallback(name string) (Locator, bool) {
	for _, l := range s.FallbackPool {
		if l.Name.String() == name {
			return l, true
		}
	}
	return Locator{}, false
}

// IsIgnored reports whether p matches the ignore pattern. The pattern applies to paths relative to BasePath.
func (s *RuntimeState) IsIgnored(p string) bool {
	if s.IgnorePattern == nil {
		return false
	}
	rel, err := filepath.Rel(s.BasePath, p)
	if err != nil || strings.HasPrefix(rel, "..") {
		return false
	}
	return s.IgnorePattern.MatchString(filepath.ToSlash(rel))
}

// Rebase returns a copy of the state whose package locations are moved from BasePath to basePath.
// The copy gets its own identifier so instances bound to it are told apart.
func (s *RuntimeState) Rebase(basePath, id string) (*RuntimeState, error) {
	basePath = filepath.Clean(basePath)
	registry := make(PackageRegistry, len(s.Registry))
	for _, l := range s.Registry.Locators() {
		info, _ := s.Registry.Get(l)
		moved := *info
		rel, err := filepath.Rel(s.BasePath, info.PackageLocation)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to rebase package location"), "locator", l.String())
		}
		moved.PackageLocation = WithTrailingSlash(filepath.Join(basePath, rel))
		registry.Put(l, &moved)
	}

	return NewRuntimeState(StateSpec{
		ID:                  id,
		StatePath:           s.StatePath,
		BasePath:            basePath,
		Registry:            registry,
		DependencyTreeRoots: s.DependencyTreeRoots,
		FallbackPool:        s.FallbackPool,
		FallbackExclusions:  s.FallbackExclusions(),
		EnableFallback:      s.EnableFallback,
		IgnorePattern:       s.IgnorePattern,
		ArchiveBackend:      s.ArchiveBackend,
	})
}

// WithTrailingSlash returns p terminated by exactly one path separator.
func WithTrailingSlash(p string) string {
	if strings.HasSuffix(p, string(filepath.Separator)) {
		return p
	}
	return p + string(filepath.Separator)
}
