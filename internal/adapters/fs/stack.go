package fs

import (
	"go.trai.ch/pnp/internal/core/domain"
	"go.trai.ch/pnp/internal/core/ports"
)

// StackOptions configures the overlay stack.
type StackOptions struct {
	// Base is the bottom layer. Defaults to the host filesystem.
	Base ports.FileSystem

	// Backend selects the zip implementation.
	Backend domain.ArchiveBackend

	// MaxOpenArchives bounds the archive pool.
	MaxOpenArchives int
}

// Stack is the composed overlay: virtual paths, then archives, then the base layer.
type Stack struct {
	*VirtualFS

	Archives *ArchiveFS
	Pool     *Pool
}

// NewStack composes the overlay layers.
func NewStack(opts StackOptions) (*Stack, error) {
	open, err := OpenerFor(opts.Backend)
	if err != nil {
		return nil, err
	}

	base := opts.Base
	if base == nil {
		base = NewNativeFS()
	}

	pool := NewPool(opts.MaxOpenArchives, open)
	archives := NewArchiveFS(base, pool)

	return &Stack{
		VirtualFS: NewVirtualFS(archives),
		Archives:  archives,
		Pool:      pool,
	}, nil
}

// Close releases the pooled archives.
func (s *Stack) Close() error {
	return s.Pool.Close()
}
