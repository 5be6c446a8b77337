package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pnp/internal/core/ports"
)

// NodeID is the unique identifier for the host filesystem Graft node.
const NodeID graft.ID = "adapter.fs.native"

func init() {
	graft.Register(graft.Node[ports.FileSystem]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.FileSystem, error) {
			return NewNativeFS(), nil
		},
	})
}
