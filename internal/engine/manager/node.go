package manager

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pnp/internal/adapters/logger" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/pnp/internal/core/ports"
)

// NodeID is the unique identifier for the instance manager Graft node.
const NodeID graft.ID = "engine.manager"

func init() {
	graft.Register(graft.Node[*Manager]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (*Manager, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(log), nil
		},
	})
}
