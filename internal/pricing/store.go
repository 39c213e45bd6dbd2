package pricing

import (
	"context"
	"sync"

	"github.com/dadopl/poc-flight-search/internal/inventory"
)

// FareStore resolves fare schedules per (flight, cabin). Returns (nil, nil)
// when no schedule exists for the pair.
type FareStore interface {
	FindByFlightAndCabin(ctx context.Context, flightID string, cabin inventory.CabinClass) (*FareSchedule, error)
	Save(ctx context.Context, fare *FareSchedule) error
}

type fareKey struct {
	flightID string
	cabin    inventory.CabinClass
}

type memoryFareStore struct {
	mu    sync.RWMutex
	fares map[fareKey]*FareSchedule
}

func NewMemoryFareStore() FareStore {
	return &memoryFareStore{fares: make(map[fareKey]*FareSchedule)}
}

func (s *memoryFareStore) FindByFlightAndCabin(ctx context.Context, flightID string, cabin inventory.CabinClass) (*FareSchedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fare, ok := s.fares[fareKey{flightID: flightID, cabin: cabin}]
	if !ok {
		return nil, nil
	}
	copied := *fare
	return &copied, nil
}

func (s *memoryFareStore) Save(ctx context.Context, fare *FareSchedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *fare
	s.fares[fareKey{flightID: fare.FlightID, cabin: fare.CabinClass}] = &copied
	return nil
}
