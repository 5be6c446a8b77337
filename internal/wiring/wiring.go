// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/pnp/internal/adapters/config"
	_ "go.trai.ch/pnp/internal/adapters/fs"
	_ "go.trai.ch/pnp/internal/adapters/jsruntime"
	_ "go.trai.ch/pnp/internal/adapters/logger"
	_ "go.trai.ch/pnp/internal/adapters/state"
	_ "go.trai.ch/pnp/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/pnp/internal/app"
	_ "go.trai.ch/pnp/internal/engine/manager"
)
