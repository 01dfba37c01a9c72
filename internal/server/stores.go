package server

import (
	"fmt"

	"github.com/mroshb/filmorate/internal/cache"
	"github.com/mroshb/filmorate/internal/config"
	"github.com/mroshb/filmorate/internal/database"
	"github.com/mroshb/filmorate/internal/repositories"
	"github.com/mroshb/filmorate/pkg/logger"
)

// Stores bundles the repositories of one storage backend.
type Stores struct {
	Users   repositories.UserRepository
	Films   repositories.FilmRepository
	Catalog repositories.CatalogRepository

	close func() error
}

func (s *Stores) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// OpenStores builds the repositories for cfg.StorageDriver. Relational stores
// are migrated and seeded with the default catalog.
func OpenStores(cfg *config.Config) (*Stores, error) {
	if cfg.StorageDriver == config.StorageMemory {
		catalog := repositories.NewDefaultCatalogRepository()
		logger.Info("Using in-memory storage")
		return &Stores{
			Users:   repositories.NewMemoryUserRepository(),
			Films:   repositories.NewMemoryFilmRepository(catalog),
			Catalog: catalog,
		}, nil
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		database.Close(db)
		return nil, err
	}
	if err := database.SeedCatalog(db); err != nil {
		database.Close(db)
		return nil, fmt.Errorf("failed to seed catalog: %w", err)
	}

	return &Stores{
		Users:   repositories.NewGormUserRepository(db),
		Films:   repositories.NewGormFilmRepository(db),
		Catalog: repositories.NewGormCatalogRepository(db),
		close:   func() error { return database.Close(db) },
	}, nil
}

// OpenPopularCache connects to redis when configured. A failed connection is
// logged and the service runs uncached.
func OpenPopularCache(cfg *config.Config) cache.PopularCache {
	if cfg.RedisAddr == "" {
		return cache.NopCache{}
	}

	c, err := cache.NewRedisPopularCache(cache.RedisOptions{
		Address:  cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		TTL:      cfg.GetPopularCacheTTL(),
	}, "filmorate")
	if err != nil {
		logger.Warn("Redis unavailable, popular films cache disabled", "addr", cfg.RedisAddr, "error", err)
		return cache.NopCache{}
	}

	logger.Info("Redis connected", "addr", cfg.RedisAddr)
	return c
}
