package airport

import (
	"context"
	"sort"
	"sync"
)

// Repository stores airports. Find methods return (nil, nil) when the
// airport does not exist.
type Repository interface {
	FindByID(ctx context.Context, id string) (*Airport, error)
	FindByCode(ctx context.Context, iataCode string) (*Airport, error)
	ListActive(ctx context.Context) ([]*Airport, error)
	Save(ctx context.Context, a *Airport) error
}

type memoryRepository struct {
	mu       sync.RWMutex
	airports map[string]*Airport // keyed by IATA code
}

func NewMemoryRepository() Repository {
	return &memoryRepository{airports: make(map[string]*Airport)}
}

func (r *memoryRepository) FindByID(ctx context.Context, id string) (*Airport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.airports {
		if a.ID == id {
			copied := *a
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memoryRepository) FindByCode(ctx context.Context, iataCode string) (*Airport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.airports[iataCode]
	if !ok {
		return nil, nil
	}
	copied := *a
	return &copied, nil
}

func (r *memoryRepository) ListActive(ctx context.Context) ([]*Airport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	active := make([]*Airport, 0, len(r.airports))
	for _, a := range r.airports {
		if a.Active {
			copied := *a
			active = append(active, &copied)
		}
	}
	sort.Slice(active, func(i, j int) bool {
		return active[i].IATACode < active[j].IATACode
	})
	return active, nil
}

func (r *memoryRepository) Save(ctx context.Context, a *Airport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *a
	r.airports[a.IATACode] = &copied
	return nil
}
