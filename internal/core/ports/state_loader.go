package ports

import "go.trai.ch/pnp/internal/core/domain"

// StateLoader loads the serialized runtime state artifact.
//
//go:generate go run go.uber.org/mock/mockgen -source=state_loader.go -destination=mocks/mock_state_loader.go -package=mocks
type StateLoader interface {
	// Load reads and hydrates the artifact at path.
	Load(path string) (*domain.RuntimeState, error)

	// Discover walks up from cwd and returns the first artifact path found.
	Discover(cwd string) (string, error)
}
