package ports

import "go.trai.ch/pnp/internal/core/domain"

// ConfigLoader defines the interface for loading the resolver configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration at path, or discovers it from cwd when path is empty.
	// A missing configuration yields the defaults.
	Load(cwd, path string) (*domain.Config, error)
}
