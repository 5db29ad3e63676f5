// Package dedupe suppresses duplicate pitch rows in the fetch path.
//
// The Statcast export is fetched in day-span pages; boundary days can
// appear in two adjacent pages, so the same pitch row may arrive twice.
// Rows carry no synthetic id, but (game, at-bat, pitch number) is unique
// within the provider's data and serves as the identity key.
package dedupe

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/okian/mound/internal/domain/model"
)

// Deduper records seen pitch keys so each pitch is processed at most once.
type Deduper interface {
	// SeenAndRecord atomically checks whether key was seen and records it
	// if not. Returns true if key was already seen.
	SeenAndRecord(ctx context.Context, key model.PitchKey) bool

	Size() int64
}

// inMemoryDeduper implements Deduper with a map plus FIFO eviction ring.
// Bounded mode (maxSize > 0) evicts the oldest keys; unbounded mode
// (maxSize <= 0) keeps everything for the lifetime of the deduper.
type inMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[model.PitchKey]struct{}
	ring    []model.PitchKey // insertion order, bounded mode only
	next    int              // ring slot to overwrite on eviction
	maxSize int
	size    atomic.Int64
}

// NewInMemoryDeduper creates a new in-memory deduper with configuration options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{
		maxSize: 200_000, // roughly a month of pitches
	}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[model.PitchKey]struct{})
	if d.maxSize > 0 {
		d.ring = make([]model.PitchKey, 0, d.maxSize)
	}
	return d
}

// SeenAndRecord atomically checks whether key was seen and records it if not.
func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, key model.PitchKey) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.seen[key]; exists {
		return true
	}

	if d.maxSize > 0 {
		if len(d.ring) < d.maxSize {
			d.ring = append(d.ring, key)
		} else {
			// Ring is full: evict the oldest key and reuse its slot.
			delete(d.seen, d.ring[d.next])
			d.size.Add(-1)
			d.ring[d.next] = key
			d.next = (d.next + 1) % d.maxSize
		}
	}
	d.seen[key] = struct{}{}
	d.size.Add(1)
	return false
}

// Size returns the current number of recorded keys.
func (d *inMemoryDeduper) Size() int64 {
	return d.size.Load()
}
