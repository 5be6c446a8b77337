package fs

import (
	"container/list"
	"sync"

	"go.trai.ch/pnp/internal/core/domain"
	"go.trai.ch/zerr"
)

// Pool keeps at most a fixed number of archives open.
//
// Least recently used archives are closed first, skipping those with outstanding reads.
// When every pooled archive is busy, the requested archive is opened as a transient handle
// that is closed as soon as its last reader releases it.
type Pool struct {
	mu      sync.Mutex
	max     int
	open    Opener
	entries map[string]*list.Element
	lru     *list.List
	closed  bool

	// opening holds the archives being opened outside the lock. reserved counts the pool slots they hold.
	opening  map[string]*opening
	reserved int
}

// opening is an archive open in progress. err is set before done is closed.
type opening struct {
	done chan struct{}
	err  error
}

// Handle is a reference counted archive owned by a Pool.
type Handle struct {
	pool      *Pool
	path      string
	archive   Archive
	refs      int
	transient bool
}

// NewPool creates a pool bounded to maxOpen archives.
func NewPool(maxOpen int, open Opener) *Pool {
	if maxOpen <= 0 {
		maxOpen = domain.DefaultMaxOpenArchives
	}
	return &Pool{
		max:     maxOpen,
		open:    open,
		entries: make(map[string]*list.Element),
		lru:     list.New(),
		opening: make(map[string]*opening),
	}
}

// Acquire returns the archive stored at path, opening it if needed.
// Archives are opened without holding the pool lock; concurrent callers for the same path wait for one open.
// Every successful Acquire must be paired with a Release.
func (p *Pool) Acquire(path string) (*Handle, error) {
	p.mu.Lock()
	for {
		if el, ok := p.entries[path]; ok {
			h, _ := el.Value.(*Handle)
			h.refs++
			p.lru.MoveToFront(el)
			p.mu.Unlock()
			return h, nil
		}

		pending, ok := p.opening[path]
		if !ok {
			break
		}
		p.mu.Unlock()
		<-pending.done
		if pending.err != nil {
			return nil, pending.err
		}
		p.mu.Lock()
	}

	transient := p.closed
	if !transient && p.lru.Len()+p.reserved >= p.max {
		transient = !p.evictLocked()
	}
	if !transient {
		p.reserved++
	}
	pending := &opening{done: make(chan struct{})}
	p.opening[path] = pending
	p.mu.Unlock()

	archive, err := p.open(path)

	p.mu.Lock()
	defer p.mu.Unlock()
	defer close(pending.done)

	delete(p.opening, path)
	if !transient {
		p.reserved--
	}
	if err != nil {
		pending.err = zerr.With(zerr.Wrap(err, domain.ErrArchiveOpenFailed.Error()), "archive", path)
		return nil, pending.err
	}

	h := &Handle{pool: p, path: path, archive: archive, refs: 1, transient: transient || p.closed}
	if !h.transient {
		p.entries[path] = p.lru.PushFront(h)
	}
	return h, nil
}

// evictLocked closes the least recently used idle archive.
func (p *Pool) evictLocked() bool {
	for el := p.lru.Back(); el != nil; el = el.Prev() {
		h, _ := el.Value.(*Handle)
		if h.refs > 0 {
			continue
		}
		p.lru.Remove(el)
		delete(p.entries, h.path)
		_ = h.archive.Close()
		return true
	}
	return false
}

// Len returns the number of pooled archives, transient handles excluded.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lru.Len()
}

// Close closes every idle archive. Busy archives are closed on their last release.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	for el := p.lru.Front(); el != nil; {
		next := el.Next()
		h, _ := el.Value.(*Handle)
		if h.refs == 0 {
			p.lru.Remove(el)
			delete(p.entries, h.path)
			_ = h.archive.Close()
		} else {
			h.transient = true
		}
		el = next
	}
	return nil
}

// Archive returns the opened archive.
func (h *Handle) Archive() Archive {
	return h.archive
}

// Release drops one reference.
func (h *Handle) Release() {
	p := h.pool
	p.mu.Lock()
	defer p.mu.Unlock()

	h.refs--
	if h.refs > 0 || !h.transient {
		return
	}
	if el, ok := p.entries[h.path]; ok && el.Value == h {
		p.lru.Remove(el)
		delete(p.entries, h.path)
	}
	_ = h.archive.Close()
}
