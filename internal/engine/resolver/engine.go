// Package resolver implements the Plug'n'Play resolution engine.
//
// An Engine is bound to one runtime state snapshot and one filesystem. It maps
// (request, issuer) pairs to file paths using the package registry of the snapshot.
// Engines hold no per-call state, so resolutions may nest and run concurrently.
package resolver

import (
	"path/filepath"
	"slices"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"go.trai.ch/pnp/internal/core/domain"
	"go.trai.ch/pnp/internal/core/ports"
)

var _ ports.EngineInstance = (*Engine)(nil)

// Engine is a resolution engine bound to a runtime state and a filesystem.
type Engine struct {
	id         string
	state      *domain.RuntimeState
	fs         ports.FileSystem
	logger     ports.Logger
	observer   ports.EngineObserver
	extensions []string

	// fallbackWarned records the (issuer, name) pairs already reported as fallback hits.
	fallbackWarned sync.Map
}

// Params carries the collaborators of an Engine.
type Params struct {
	State  *domain.RuntimeState
	FS     ports.FileSystem
	Logger ports.Logger

	// Observer is notified about construction and resolutions. Optional.
	Observer ports.EngineObserver

	// Extensions are probed when ResolveOptions does not name any. Defaults to domain.DefaultExtensions.
	Extensions []string
}

// New creates an Engine and reports it to the observer.
func New(p Params) *Engine {
	extensions := p.Extensions
	if len(extensions) == 0 {
		extensions = domain.DefaultExtensions
	}

	e := &Engine{
		id:         uuid.NewString(),
		state:      p.State,
		fs:         p.FS,
		logger:     p.Logger,
		observer:   p.Observer,
		extensions: slices.Clone(extensions),
	}
	if e.observer != nil {
		e.observer.OnEngineCreated(e)
	}
	return e
}

// MakeOptions overrides the binding of an alternate instance.
type MakeOptions struct {
	// BasePath moves every package location of the snapshot to a new base.
	BasePath string
	// FS replaces the filesystem the instance reads through.
	FS ports.FileSystem
}

// Make builds an alternate instance sharing this engine's snapshot, logger and observer.
func (e *Engine) Make(opts MakeOptions) (*Engine, error) {
	state := e.state
	if opts.BasePath != "" && filepath.Clean(opts.BasePath) != state.BasePath {
		basePath := filepath.Clean(opts.BasePath)
		id := strconv.FormatUint(xxhash.Sum64String(state.ID+"\x00"+basePath), 16)

		var err error
		state, err = state.Rebase(basePath, id)
		if err != nil {
			return nil, err
		}
	}

	fsys := opts.FS
	if fsys == nil {
		fsys = e.fs
	}

	return New(Params{
		State:      state,
		FS:         fsys,
		Logger:     e.logger,
		Observer:   e.observer,
		Extensions: e.extensions,
	}), nil
}

// ID is unique per constructed engine.
func (e *Engine) ID() string {
	return e.id
}

// StateID identifies the snapshot the engine is bound to.
func (e *Engine) StateID() string {
	return e.state.ID
}

// BasePath is the base directory of the bound snapshot.
func (e *Engine) BasePath() string {
	return e.state.BasePath
}

// BackingPath is the artifact the engine was loaded from. Requests for "pnpapi" resolve to it.
func (e *Engine) BackingPath() string {
	return e.state.StatePath
}

// State returns the bound snapshot.
func (e *Engine) State() *domain.RuntimeState {
	return e.state
}

// FS returns the filesystem the engine reads through.
func (e *Engine) FS() ports.FileSystem {
	return e.fs
}

// GetPackageInformation returns the registry entry of the locator.
func (e *Engine) GetPackageInformation(l domain.Locator) (*domain.PackageInformation, bool) {
	return e.state.Registry.Get(l)
}

// GetLocator builds a locator. It does not check the registry.
func (e *Engine) GetLocator(name, reference string) domain.Locator {
	return domain.NewLocator(name, reference)
}

// GetDependencyTreeRoots returns the project and workspace locators.
func (e *Engine) GetDependencyTreeRoots() []domain.Locator {
	return slices.Clone(e.state.DependencyTreeRoots)
}

// FindPackageLocator returns the locator owning path.
func (e *Engine) FindPackageLocator(path string) (domain.Locator, bool) {
	l, _, ok := e.state.FindLocator(e.absolute(path))
	return l, ok
}

// OwnerLocation returns the package location owning path.
func (e *Engine) OwnerLocation(path string) (string, bool) {
	_, location, ok := e.state.FindLocator(e.absolute(path))
	return location, ok
}

func (e *Engine) absolute(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(e.state.BasePath, p)
}
