package fs

import (
	stdzip "archive/zip"
	"io"
	iofs "io/fs"

	"github.com/klauspost/compress/zip"
	"go.trai.ch/pnp/internal/core/domain"
)

// Archive is an opened zip file.
type Archive interface {
	iofs.FS
	io.Closer
}

// Opener opens the archive stored at path.
type Opener func(path string) (Archive, error)

// OpenerFor returns the opener implementing the given backend.
func OpenerFor(backend domain.ArchiveBackend) (Opener, error) {
	backend, err := domain.ParseArchiveBackend(string(backend))
	if err != nil {
		return nil, err
	}

	if backend == domain.ArchiveBackendStd {
		return func(path string) (Archive, error) {
			r, err := stdzip.OpenReader(path)
			if err != nil {
				return nil, err
			}
			return r, nil
		}, nil
	}
	return func(path string) (Archive, error) {
		r, err := zip.OpenReader(path)
		if err != nil {
			return nil, err
		}
		return r, nil
	}, nil
}
