package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dadopl/poc-flight-search/pkg/cache"
)

// ResultsCache stores whole result sets keyed by session id. A read after
// TTL expiry is a miss, not an error.
type ResultsCache interface {
	Store(ctx context.Context, sessionID string, items []ResultItem) error
	Get(ctx context.Context, sessionID string) ([]ResultItem, bool, error)
}

type cachedResults struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewResultsCache wraps a cache.Cache with JSON encoding and a fixed TTL.
func NewResultsCache(c cache.Cache, ttl time.Duration) ResultsCache {
	return &cachedResults{cache: c, ttl: ttl}
}

func resultsKey(sessionID string) string {
	return "search:results:" + sessionID
}

func (r *cachedResults) Store(ctx context.Context, sessionID string, items []ResultItem) error {
	if items == nil {
		items = []ResultItem{}
	}
	encoded, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	return r.cache.Set(ctx, resultsKey(sessionID), string(encoded), r.ttl)
}

func (r *cachedResults) Get(ctx context.Context, sessionID string) ([]ResultItem, bool, error) {
	encoded, err := r.cache.Get(ctx, resultsKey(sessionID))
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var items []ResultItem
	if err := json.Unmarshal([]byte(encoded), &items); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached results: %w", err)
	}
	return items, true, nil
}
