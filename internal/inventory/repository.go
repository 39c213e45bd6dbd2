package inventory

import (
	"context"
	"sync"
)

// Repository stores seat inventories per (flight, cabin). Lookups return
// (nil, nil) when no record exists. Save is expected to detect conflicting
// concurrent writes (compare-and-swap on the stored row) in real deployments.
type Repository interface {
	FindByFlightAndCabin(ctx context.Context, flightID string, cabin CabinClass) (*SeatInventory, error)
	FindByFlight(ctx context.Context, flightID string) ([]*SeatInventory, error)
	Save(ctx context.Context, inv *SeatInventory) error
}

type inventoryKey struct {
	flightID string
	cabin    CabinClass
}

type memoryRepository struct {
	mu          sync.RWMutex
	inventories map[inventoryKey]*SeatInventory
}

func NewMemoryRepository() Repository {
	return &memoryRepository{inventories: make(map[inventoryKey]*SeatInventory)}
}

func (r *memoryRepository) FindByFlightAndCabin(ctx context.Context, flightID string, cabin CabinClass) (*SeatInventory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	inv, ok := r.inventories[inventoryKey{flightID: flightID, cabin: cabin}]
	if !ok {
		return nil, nil
	}
	copied := *inv
	return &copied, nil
}

func (r *memoryRepository) FindByFlight(ctx context.Context, flightID string) ([]*SeatInventory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var found []*SeatInventory
	for key, inv := range r.inventories {
		if key.flightID == flightID {
			copied := *inv
			found = append(found, &copied)
		}
	}
	return found, nil
}

func (r *memoryRepository) Save(ctx context.Context, inv *SeatInventory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *inv
	r.inventories[inventoryKey{flightID: inv.FlightID, cabin: inv.CabinClass}] = &copied
	return nil
}
