package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pnp/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/pnp/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/pnp/internal/adapters/jsruntime" //nolint:depguard // Wired in app layer
	"go.trai.ch/pnp/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/pnp/internal/adapters/state"     //nolint:depguard // Wired in app layer
	"go.trai.ch/pnp/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/pnp/internal/core/ports"
	"go.trai.ch/pnp/internal/engine/manager"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			state.NodeID,
			jsruntime.NodeID,
			fs.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
			manager.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewComponents(app, log), nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	configLoader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	stateLoader, err := graft.Dep[ports.StateLoader](ctx)
	if err != nil {
		return nil, err
	}

	moduleLoader, err := graft.Dep[ports.ModuleLoader](ctx)
	if err != nil {
		return nil, err
	}

	fsys, err := graft.Dep[ports.FileSystem](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	mgr, err := graft.Dep[*manager.Manager](ctx)
	if err != nil {
		return nil, err
	}

	return New(configLoader, stateLoader, moduleLoader, fsys, log, tracer, mgr), nil
}
