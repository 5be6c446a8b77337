// Package state loads and hydrates the runtime state artifact.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	iofs "io/fs"
	"path/filepath"
	"regexp"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/pnp/internal/core/domain"
	"go.trai.ch/pnp/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.StateLoader = (*Loader)(nil)

// Loader implements ports.StateLoader on top of a filesystem.
type Loader struct {
	fs ports.FileSystem
}

// NewLoader creates a new Loader reading through fsys.
func NewLoader(fsys ports.FileSystem) *Loader {
	return &Loader{fs: fsys}
}

// Discover walks up from cwd and returns the first runtime state artifact found.
func (l *Loader) Discover(cwd string) (string, error) {
	dir := filepath.Clean(cwd)
	for {
		candidate := filepath.Join(dir, domain.DefaultStateFile)
		if info, err := l.fs.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", zerr.With(zerr.Wrap(domain.ErrStateNotFound, "no runtime state above working directory"), "cwd", cwd)
		}
		dir = parent
	}
}

// Load reads the artifact at path and hydrates it.
func (l *Loader) Load(path string) (*domain.RuntimeState, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStateReadFailed.Error()), "path", path)
	}

	data, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, zerr.With(zerr.Wrap(domain.ErrStateNotFound, "runtime state does not exist"), "path", path)
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStateReadFailed.Error()), "path", path)
	}

	return Hydrate(data, path)
}

// Hydrate decodes an artifact read from statePath into a RuntimeState.
// Relative base paths are taken from the artifact's directory; package locations are relative to the base path.
func Hydrate(data []byte, statePath string) (*domain.RuntimeState, error) {
	var raw Artifact
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStateParseFailed.Error()), "path", statePath)
	}

	basePath := raw.BasePath
	if basePath == "" {
		basePath = "."
	}
	if !filepath.IsAbs(basePath) {
		basePath = filepath.Join(filepath.Dir(statePath), filepath.FromSlash(basePath))
	}
	basePath = filepath.Clean(basePath)

	backend, err := domain.ParseArchiveBackend(raw.ArchiveBackend)
	if err != nil {
		return nil, zerr.With(err, "path", statePath)
	}

	var ignore *regexp.Regexp
	if raw.IgnorePattern != nil && *raw.IgnorePattern != "" {
		ignore, err = regexp.Compile(*raw.IgnorePattern)
		if err != nil {
			err = zerr.With(zerr.Wrap(err, domain.ErrInvalidIgnorePattern.Error()), "pattern", *raw.IgnorePattern)
			return nil, zerr.With(err, "path", statePath)
		}
	}

	registry, err := hydrateRegistry(raw.PackageRegistry, basePath)
	if err != nil {
		return nil, zerr.With(err, "path", statePath)
	}

	var exclusions []domain.Locator
	for _, entry := range raw.FallbackExclusionList {
		for _, ref := range entry.References {
			exclusions = append(exclusions, domain.NewLocator(entry.Name, ref))
		}
	}

	s, err := domain.NewRuntimeState(domain.StateSpec{
		ID:                  stateID(data, basePath),
		StatePath:           statePath,
		BasePath:            basePath,
		Registry:            registry,
		DependencyTreeRoots: locators(raw.DependencyTreeRoots),
		FallbackPool:        locators(raw.FallbackPool),
		FallbackExclusions:  exclusions,
		EnableFallback:      raw.EnableFallback,
		IgnorePattern:       ignore,
		ArchiveBackend:      backend,
	})
	if err != nil {
		return nil, zerr.With(err, "path", statePath)
	}
	return s, nil
}

func hydrateRegistry(entries []PackageEntry, basePath string) (domain.PackageRegistry, error) {
	registry := make(domain.PackageRegistry, len(entries))

	for _, entry := range entries {
		locator := domain.NewLocator(deref(entry.Name), deref(entry.Reference))
		if registry.Has(locator) {
			return nil, zerr.With(zerr.Wrap(domain.ErrDuplicateLocator, "invalid runtime state"), "locator", locator.String())
		}

		location := filepath.Join(basePath, filepath.FromSlash(entry.PackageLocation))
		if filepath.IsAbs(entry.PackageLocation) {
			location = filepath.Clean(entry.PackageLocation)
		}

		info := &domain.PackageInformation{
			PackageLocation:   domain.WithTrailingSlash(location),
			Dependencies:      make(map[string]domain.Dependency, len(entry.Dependencies)),
			PeerNames:         entry.Peers,
			LinkType:          domain.LinkType(entry.LinkType),
			Main:              entry.Main,
			DiscardFromLookup: entry.DiscardFromLookup,
		}
		for _, dep := range entry.Dependencies {
			if dep.Reference == nil {
				info.Dependencies[dep.Name] = domain.Dependency{Missing: true, Optional: dep.Optional}
				continue
			}
			target := dep.Package
			if target == "" {
				target = dep.Name
			}
			info.Dependencies[dep.Name] = domain.Dependency{
				Locator:  domain.NewLocator(target, *dep.Reference),
				Optional: dep.Optional,
			}
		}

		registry.Put(locator, info)
	}

	return registry, nil
}

func locators(entries []LocatorEntry) []domain.Locator {
	out := make([]domain.Locator, 0, len(entries))
	for _, e := range entries {
		out = append(out, domain.NewLocator(deref(e.Name), deref(e.Reference)))
	}
	return out
}

// stateID identifies a snapshot by its content and where it is mounted.
func stateID(data []byte, basePath string) string {
	d := xxhash.New()
	_, _ = d.Write(data)
	_, _ = d.Write([]byte{0})
	_, _ = d.WriteString(basePath)
	return fmt.Sprintf("%016x", d.Sum64())
}
