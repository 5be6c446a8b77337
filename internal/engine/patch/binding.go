package patch

import (
	"io"
	"sync/atomic"

	pnpfs "go.trai.ch/pnp/internal/adapters/fs" //nolint:depguard // Setup rebuilds the overlay on the host filesystem
	"go.trai.ch/pnp/internal/core/ports"
	"go.trai.ch/pnp/internal/engine/manager"
	"go.trai.ch/pnp/internal/engine/resolver"
)

// Binding is what setup installed into the host process.
type Binding struct {
	Engine  *resolver.Engine
	Manager *manager.Manager
	Loader  ports.ModuleLoader

	// FS is the indirection the engine reads through. Setup points it at the overlay rebuilt on top of
	// the host loader's own filesystem.
	FS *pnpfs.DynamicFS

	// MaxOpenArchives bounds the archive pool of the rebuilt overlay.
	MaxOpenArchives int
}

// current is process-wide because the host module loader it describes is a process singleton.
// Reset exists for test isolation.
var current atomic.Pointer[Binding]

// Current returns the installed binding, or nil before setup.
func Current() *Binding {
	return current.Load()
}

// Bind records b as the installed binding and returns the previous one.
func Bind(b *Binding) *Binding {
	return current.Swap(b)
}

// Reset forgets the installed binding.
func Reset() {
	current.Store(nil)
}

// Setup patches the host loader with the binding's engine, points the engine filesystem at the overlay
// built over the loader's original filesystem, and records the binding. Calling it twice is a no-op.
func Setup(b *Binding) error {
	applier := NewApplier()
	if b.Loader.Primitives().Owner == Owner(b.Engine) {
		Bind(b)
		return nil
	}

	stack, err := pnpfs.NewStack(pnpfs.StackOptions{
		Base:            applier.Original(b.Loader).FS,
		Backend:         b.Engine.State().ArchiveBackend,
		MaxOpenArchives: b.MaxOpenArchives,
	})
	if err != nil {
		return err
	}

	applier.Apply(b.Loader, b.Engine, b.FS)

	if prev := b.FS.Swap(stack); prev != nil {
		if c, ok := prev.(io.Closer); ok {
			_ = c.Close()
		}
	}

	Bind(b)
	return nil
}
