package jsruntime

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pnp/internal/core/ports"
)

// NodeID is the unique identifier for the host module loader Graft node.
const NodeID graft.ID = "adapter.jsruntime"

func init() {
	graft.Register(graft.Node[ports.ModuleLoader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ModuleLoader, error) {
			return DefaultLoader(), nil
		},
	})
}
