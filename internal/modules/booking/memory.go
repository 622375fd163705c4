// README: In-memory booking store for tests and single-node development.
package booking

import (
	"context"
	"errors"
	"sort"
	"sync"

	"carpool/internal/modules/ride"
	"carpool/internal/types"
)

// MemoryStore keeps bookings in a map and delegates capacity mutation
// to the ride store. The single mutex makes ApplyAccept a serialized
// critical section, which is what the capacity invariant needs.
type MemoryStore struct {
	mu       sync.Mutex
	bookings map[types.ID]*Booking
	rides    ride.Store
	seq      int
	order    map[types.ID]int
}

func NewMemoryStore(rides ride.Store) *MemoryStore {
	return &MemoryStore{
		bookings: make(map[types.ID]*Booking),
		rides:    rides,
		order:    make(map[types.ID]int),
	}
}

func (m *MemoryStore) Create(_ context.Context, b *Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *b
	m.bookings[b.ID] = &cp
	m.order[b.ID] = m.seq
	m.seq++
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id types.ID) (*Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *MemoryStore) UpdateStatus(_ context.Context, id types.ID, from, to Status) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok || b.Status != from {
		return false, nil
	}
	b.Status = to
	return true, nil
}

func (m *MemoryStore) ApplyAccept(ctx context.Context, id types.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.bookings[id]
	if !ok {
		return ErrNotFound
	}
	if b.Status != StatusPending {
		return ErrInvalidTransition
	}
	if b.RideOfferID == nil {
		return ErrNotFound
	}

	decremented, err := m.rides.DecrementCapacity(ctx, *b.RideOfferID, b.NumPassengers)
	if errors.Is(err, ride.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if !decremented {
		return ErrCapacityExceeded
	}

	b.Status = StatusAccepted
	return nil
}

func (m *MemoryStore) ListByRiderPhone(_ context.Context, phone string) ([]Booking, error) {
	return m.list(func(b *Booking) bool { return b.RiderPhone == phone }), nil
}

func (m *MemoryStore) ListForRides(_ context.Context, rideIDs []types.ID, statuses []Status) ([]Booking, error) {
	ids := make(map[types.ID]bool, len(rideIDs))
	for _, id := range rideIDs {
		ids[id] = true
	}
	states := make(map[Status]bool, len(statuses))
	for _, st := range statuses {
		states[st] = true
	}
	return m.list(func(b *Booking) bool {
		return b.RideOfferID != nil && ids[*b.RideOfferID] && states[b.Status]
	}), nil
}

func (m *MemoryStore) list(keep func(*Booking) bool) []Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Booking, 0, len(m.bookings))
	for _, b := range m.bookings {
		if keep(b) {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return m.order[out[i].ID] < m.order[out[j].ID] })
	return out
}
