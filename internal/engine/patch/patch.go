// Package patch splices a resolution engine into the host module loader.
package patch

import (
	"go.trai.ch/pnp/internal/core/ports"
	"go.trai.ch/pnp/internal/engine/resolver"
)

// OwnerPrefix marks primitives installed by an engine.
const OwnerPrefix = "pnp:"

// Engine is the part of a resolution engine the wrapped primitives call into.
type Engine interface {
	ID() string
	BackingPath() string
	ResolveRequest(request, issuer string, opts resolver.ResolveOptions) (string, bool, error)
}

// Owner returns the owner tag of primitives installed for e.
func Owner(e Engine) string {
	return OwnerPrefix + e.ID()
}

// Applier installs engine-backed primitives into a module loader.
type Applier struct {
	// Options are passed to every resolution made on behalf of the host.
	Options resolver.ResolveOptions
}

// NewApplier creates an Applier resolving with the host defaults.
func NewApplier() *Applier {
	return &Applier{Options: resolver.DefaultResolveOptions()}
}

// Apply wraps the loader's original primitives around e and installs fsys as the loader filesystem.
// Applying the same engine again is a no-op; applying another engine replaces the wrapper, never stacks it.
// It reports whether the loader changed.
func (a *Applier) Apply(loader ports.ModuleLoader, e Engine, fsys ports.FileSystem) bool {
	owner := Owner(e)
	for {
		current := loader.Primitives()
		if current.Owner == owner {
			return false
		}

		original := originalOf(current)
		next := &ports.LoaderPrimitives{
			Resolve:  a.wrap(original.Resolve, e),
			FS:       fsys,
			Owner:    owner,
			Original: original,
		}
		if loader.CompareAndSwap(current, next) {
			return true
		}
	}
}

// Original returns the primitives the loader had before any engine was applied.
func (a *Applier) Original(loader ports.ModuleLoader) *ports.LoaderPrimitives {
	return originalOf(loader.Primitives())
}

func (a *Applier) wrap(original ports.ResolveFunc, e Engine) ports.ResolveFunc {
	opts := a.Options
	return func(request, issuer string) (ports.ModuleRef, error) {
		// Modules evaluated from the backing file resolve natively, so the engine never resolves itself.
		if issuer == e.BackingPath() {
			return original(request, issuer)
		}

		resolved, ok, err := e.ResolveRequest(request, issuer, opts)
		if err != nil {
			return ports.ModuleRef{}, err
		}
		if !ok {
			return original(request, issuer)
		}
		return ports.ModuleRef{Path: resolved}, nil
	}
}

func originalOf(p *ports.LoaderPrimitives) *ports.LoaderPrimitives {
	if p.Original != nil {
		return p.Original
	}
	return p
}
