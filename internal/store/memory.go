// internal/store/memory.go
//
// In-memory registry of live game controllers, one per player.
// Controllers own goroutines (the siren loop) and subscriber channels, so the
// store is also responsible for closing them when they leave the map.
//
// Characteristics:
//   - Keyed by player ID (the subject of the player cookie).
//   - Concurrency-safe via RWMutex; touch times are updated on every Get.
//   - EvictIdle closes and drops controllers nobody has touched for a while.
//   - State is lost when the process restarts; only the mute flag is durable.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/mysterynumber/internal/play"
)

// ErrNotFound is returned by Get and Delete for unknown players.
var ErrNotFound = errors.New("not found")

// ErrClosed is returned once the store has been closed.
var ErrClosed = errors.New("store closed")

// Store defines the registry interface for live controllers.
type Store interface {
	// Get returns the controller for playerID and marks it as used.
	Get(ctx context.Context, playerID string) (*play.Controller, error)

	// GetOrCreate returns the existing controller or registers one built by create.
	GetOrCreate(ctx context.Context, playerID string, create func() (*play.Controller, error)) (*play.Controller, error)

	// Delete closes and removes the controller for playerID.
	Delete(ctx context.Context, playerID string) error

	// EvictIdle closes every controller unused for longer than ttl and
	// reports how many were removed.
	EvictIdle(ctx context.Context, ttl time.Duration) int

	// Len reports the number of live controllers.
	Len() int

	// Close closes every controller; later calls fail with ErrClosed.
	Close() error
}

type entry struct {
	ctrl    *play.Controller
	touched time.Time
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu      sync.RWMutex
	entries map[string]*entry // keyed by player ID
	closed  bool
	now     func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{entries: make(map[string]*entry), now: time.Now}
}

func (m *memory) Get(ctx context.Context, playerID string) (*play.Controller, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrClosed
	}
	e, ok := m.entries[playerID]
	if !ok {
		return nil, ErrNotFound
	}
	e.touched = m.now()
	return e.ctrl, nil
}

func (m *memory) GetOrCreate(ctx context.Context, playerID string, create func() (*play.Controller, error)) (*play.Controller, error) {
	if c, err := m.Get(ctx, playerID); !errors.Is(err, ErrNotFound) {
		return c, err
	}

	c, err := create()
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		_ = c.Close()
		return nil, ErrClosed
	}
	// another request may have won the race while create ran
	if e, ok := m.entries[playerID]; ok {
		e.touched = m.now()
		m.mu.Unlock()
		_ = c.Close()
		return e.ctrl, nil
	}
	m.entries[playerID] = &entry{ctrl: c, touched: m.now()}
	m.mu.Unlock()
	return c, nil
}

func (m *memory) Delete(ctx context.Context, playerID string) error {
	m.mu.Lock()
	e, ok := m.entries[playerID]
	delete(m.entries, playerID)
	m.mu.Unlock()

	if !ok {
		return ErrNotFound
	}
	return e.ctrl.Close()
}

func (m *memory) EvictIdle(ctx context.Context, ttl time.Duration) int {
	cutoff := m.now().Add(-ttl)

	m.mu.Lock()
	var stale []*play.Controller
	for id, e := range m.entries {
		if e.touched.Before(cutoff) {
			stale = append(stale, e.ctrl)
			delete(m.entries, id)
		}
	}
	m.mu.Unlock()

	for _, c := range stale {
		_ = c.Close()
	}
	return len(stale)
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func (m *memory) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	m.closed = true
	entries := m.entries
	m.entries = make(map[string]*entry)
	m.mu.Unlock()

	var errs []error
	for _, e := range entries {
		if err := e.ctrl.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
