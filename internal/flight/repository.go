package flight

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Repository stores flights. FindByID returns (nil, nil) when absent.
type Repository interface {
	FindByID(ctx context.Context, id string) (*Flight, error)
	// FindByRoute lists flights between two airports departing inside
	// [from, to], ordered by departure time.
	FindByRoute(ctx context.Context, departureAirportID, arrivalAirportID string, from, to time.Time) ([]*Flight, error)
	// CountDeparturesFrom counts flights leaving an airport on the calendar
	// day containing date.
	CountDeparturesFrom(ctx context.Context, departureAirportID string, date time.Time) (int, error)
	Save(ctx context.Context, f *Flight) error
}

type memoryRepository struct {
	mu      sync.RWMutex
	flights map[string]*Flight
}

func NewMemoryRepository() Repository {
	return &memoryRepository{flights: make(map[string]*Flight)}
}

func (r *memoryRepository) FindByID(ctx context.Context, id string) (*Flight, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.flights[id]
	if !ok {
		return nil, nil
	}
	copied := *f
	return &copied, nil
}

func (r *memoryRepository) FindByRoute(ctx context.Context, departureAirportID, arrivalAirportID string, from, to time.Time) ([]*Flight, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*Flight
	for _, f := range r.flights {
		if f.DepartureAirportID != departureAirportID || f.ArrivalAirportID != arrivalAirportID {
			continue
		}
		if f.DepartureTime.Before(from) || f.DepartureTime.After(to) {
			continue
		}
		copied := *f
		matched = append(matched, &copied)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].DepartureTime.Before(matched[j].DepartureTime)
	})
	return matched, nil
}

func (r *memoryRepository) CountDeparturesFrom(ctx context.Context, departureAirportID string, date time.Time) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	count := 0
	for _, f := range r.flights {
		if f.DepartureAirportID != departureAirportID {
			continue
		}
		if f.DepartureTime.Before(dayStart) || !f.DepartureTime.Before(dayEnd) {
			continue
		}
		count++
	}
	return count, nil
}

func (r *memoryRepository) Save(ctx context.Context, f *Flight) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *f
	r.flights[f.ID] = &copied
	return nil
}
