package cache

import (
	"context"
	"errors"

	"github.com/mroshb/filmorate/internal/models"
)

var (
	ErrCacheMiss = errors.New("cache miss")
	// ErrStaleGeneration is returned by Set when an invalidation happened
	// after the caller read its generation.
	ErrStaleGeneration = errors.New("cache generation changed")
)

// PopularCache stores ranked film lists keyed by the requested count.
//
// Callers read Generation before loading a ranking from the store and pass it
// to Set, so a list computed before an invalidation is never stored.
type PopularCache interface {
	// Get returns ErrCacheMiss when nothing is stored for count.
	Get(ctx context.Context, count int) ([]models.Film, error)
	Generation(ctx context.Context) (int64, error)
	Set(ctx context.Context, generation int64, count int, films []models.Film) error
	// Invalidate drops every stored list and advances the generation.
	Invalidate(ctx context.Context) error
	Close() error
}

// NopCache is used when no cache backend is configured.
type NopCache struct{}

func (NopCache) Get(ctx context.Context, count int) ([]models.Film, error) {
	return nil, ErrCacheMiss
}

func (NopCache) Generation(ctx context.Context) (int64, error) { return 0, nil }

func (NopCache) Set(ctx context.Context, generation int64, count int, films []models.Film) error {
	return nil
}

func (NopCache) Invalidate(ctx context.Context) error { return nil }

func (NopCache) Close() error { return nil }

var _ PopularCache = NopCache{}
