package repository

//go:generate mockgen -source=cache_repository.go -destination=mocks/mock_cache_repository.go -package=mocks CacheRepository

import (
	"context"
	"time"
)

// CacheRepository stores serialized quotes. A miss and a backend failure are
// both reported as not found by Get; callers treat the cache as optional.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}
