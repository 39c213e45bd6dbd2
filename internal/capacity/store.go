package capacity

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type memoryLimitStore struct {
	mu     sync.RWMutex
	limits map[string]int
}

func NewMemoryLimitStore() *memoryLimitStore {
	return &memoryLimitStore{limits: make(map[string]int)}
}

func (s *memoryLimitStore) SetLimit(iataCode string, limit int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limits[iataCode] = limit
}

func (s *memoryLimitStore) FindLimit(ctx context.Context, iataCode string) (*int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	limit, ok := s.limits[iataCode]
	if !ok {
		return nil, nil
	}
	return &limit, nil
}

type postgresLimitStore struct {
	pool *pgxpool.Pool
}

func NewPostgresLimitStore(pool *pgxpool.Pool) LimitStore {
	return &postgresLimitStore{pool: pool}
}

func (s *postgresLimitStore) FindLimit(ctx context.Context, iataCode string) (*int, error) {
	var limit int
	err := s.pool.QueryRow(ctx, `
		SELECT daily_limit FROM airport_daily_flight_limits WHERE iata_code = $1
	`, iataCode).Scan(&limit)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query daily flight limit: %w", err)
	}
	return &limit, nil
}
