// README: In-memory ride store for tests and single-node development.
package ride

import (
	"context"
	"sort"
	"sync"

	"carpool/internal/types"
)

type MemoryStore struct {
	mu     sync.RWMutex
	offers map[types.ID]*Offer
	seq    int
	order  map[types.ID]int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		offers: make(map[types.ID]*Offer),
		order:  make(map[types.ID]int),
	}
}

func (m *MemoryStore) Create(_ context.Context, o *Offer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *o
	m.offers[o.ID] = &cp
	m.order[o.ID] = m.seq
	m.seq++
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id types.ID) (*Offer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.offers[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *MemoryStore) List(ctx context.Context) ([]Offer, error) {
	return m.list(func(*Offer) bool { return true }), nil
}

func (m *MemoryStore) ListByDriverPhone(_ context.Context, phone string) ([]Offer, error) {
	return m.list(func(o *Offer) bool { return o.DriverPhone == phone }), nil
}

func (m *MemoryStore) ListExcludingPhone(_ context.Context, phone string) ([]Offer, error) {
	return m.list(func(o *Offer) bool { return o.DriverPhone != phone }), nil
}

func (m *MemoryStore) Delete(_ context.Context, id types.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.offers[id]; !ok {
		return ErrNotFound
	}
	delete(m.offers, id)
	delete(m.order, id)
	return nil
}

func (m *MemoryStore) DecrementCapacity(_ context.Context, id types.ID, seats int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.offers[id]
	if !ok {
		return false, ErrNotFound
	}
	if o.Vehicle.Capacity < seats {
		return false, nil
	}
	o.Vehicle.Capacity -= seats
	return true, nil
}

func (m *MemoryStore) list(keep func(*Offer) bool) []Offer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Offer, 0, len(m.offers))
	for _, o := range m.offers {
		if keep(o) {
			out = append(out, *o)
		}
	}
	// insertion order, to keep listings deterministic
	sort.Slice(out, func(i, j int) bool { return m.order[out[i].ID] < m.order[out[j].ID] })
	return out
}
