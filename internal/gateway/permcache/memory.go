package permcache

import (
	"context"
	"slices"
	"sync"
	"time"
)

type memoryItem struct {
	entry     Entry
	expiresAt time.Time
}

// Memory is a process local Cache. Expired items are dropped on read and
// swept every so often on write.
type Memory struct {
	mu     sync.Mutex
	items  map[string]memoryItem
	closed bool
	writes int

	now func() time.Time
}

var _ Cache = (*Memory)(nil)

const sweepEvery = 256

// NewMemory returns an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{
		items: make(map[string]memoryItem),
		now:   time.Now,
	}
}

func (m *Memory) Get(_ context.Context, key string) (*Entry, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, false, ErrClosed
	}

	item, ok := m.items[key]
	if !ok {
		return nil, false, nil
	}
	if !m.now().Before(item.expiresAt) {
		delete(m.items, key)
		return nil, false, nil
	}

	out := cloneEntry(item.entry)
	return &out, true, nil
}

func (m *Memory) Set(_ context.Context, key string, entry *Entry, ttl time.Duration) error {
	if ttl <= 0 || entry == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	now := m.now()
	m.items[key] = memoryItem{entry: cloneEntry(*entry), expiresAt: now.Add(ttl)}

	m.writes++
	if m.writes%sweepEvery == 0 {
		for k, item := range m.items {
			if !now.Before(item.expiresAt) {
				delete(m.items, k)
			}
		}
	}
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.items, key)
	return nil
}

func (m *Memory) Ping(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	return nil
}

func (m *Memory) Name() string { return "memory" }

// Len returns the number of stored items, expired ones included.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.items = nil
	return nil
}

func cloneEntry(e Entry) Entry {
	return Entry{
		Permisos:    slices.Clone(e.Permisos),
		Roles:       slices.Clone(e.Roles),
		AccesoTotal: e.AccesoTotal,
	}
}
