// Package manager tracks the resolution engines living in the process.
package manager

import (
	"fmt"
	"sync"

	"go.trai.ch/pnp/internal/core/ports"
)

var _ ports.EngineObserver = (*Manager)(nil)

// Manager keeps every engine constructed in the process and reports resolutions performed by one engine
// for an issuer owned by another snapshot. Reports never change a resolution.
type Manager struct {
	logger ports.Logger

	mu        sync.RWMutex
	instances []ports.EngineInstance

	// reported holds the (resolving state, owning state) pairs already logged.
	reported sync.Map
}

// New creates an empty Manager.
func New(logger ports.Logger) *Manager {
	return &Manager{logger: logger}
}

// OnEngineCreated registers the new engine.
func (m *Manager) OnEngineCreated(e ports.EngineInstance) {
	m.Register(e)
}

// OnResolve checks that issuer belongs to the snapshot of the resolving engine.
func (m *Manager) OnResolve(e ports.EngineInstance, issuer string) {
	if issuer == "" {
		return
	}

	owner, ok := m.findOwner(issuer, e)
	if !ok || owner.StateID() == e.StateID() {
		return
	}

	key := e.StateID() + "\x00" + owner.StateID()
	if _, seen := m.reported.LoadOrStore(key, struct{}{}); seen {
		return
	}
	m.logger.Warn(fmt.Sprintf(
		"%s is owned by the runtime state at %s but was resolved by the runtime state at %s",
		issuer, owner.BasePath(), e.BasePath(),
	))
}

// Register adds e to the tracked instances. Registering twice is a no-op.
func (m *Manager) Register(e ports.EngineInstance) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, known := range m.instances {
		if known.ID() == e.ID() {
			return
		}
	}
	m.instances = append(m.instances, e)
}

// Unregister stops tracking e.
func (m *Manager) Unregister(e ports.EngineInstance) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, known := range m.instances {
		if known.ID() == e.ID() {
			m.instances = append(m.instances[:i], m.instances[i+1:]...)
			return
		}
	}
}

// Instances returns the tracked engines in registration order.
func (m *Manager) Instances() []ports.EngineInstance {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]ports.EngineInstance, len(m.instances))
	copy(out, m.instances)
	return out
}

// FindInstance returns the engine whose snapshot owns path with the most specific package location.
// Ties go to the engine registered first.
func (m *Manager) FindInstance(path string) (ports.EngineInstance, bool) {
	return m.findOwner(path, nil)
}

// findOwner is FindInstance with ties going to prefer when it is among the candidates.
func (m *Manager) findOwner(path string, prefer ports.EngineInstance) (ports.EngineInstance, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var (
		best     ports.EngineInstance
		bestSize = -1
	)
	for _, e := range m.instances {
		location, ok := e.OwnerLocation(path)
		if !ok {
			continue
		}
		switch {
		case len(location) > bestSize:
		case len(location) == bestSize && prefer != nil && e.ID() == prefer.ID():
		default:
			continue
		}
		best, bestSize = e, len(location)
	}
	return best, best != nil
}
