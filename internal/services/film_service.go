package services

import (
	"context"
	stderrors "errors"

	"github.com/mroshb/filmorate/internal/cache"
	"github.com/mroshb/filmorate/internal/models"
	"github.com/mroshb/filmorate/internal/repositories"
	"github.com/mroshb/filmorate/internal/validation"
	"github.com/mroshb/filmorate/pkg/errors"
	"github.com/mroshb/filmorate/pkg/logger"
)

// DefaultPopularCount is used when the caller does not ask for a size.
const DefaultPopularCount = 10

type FilmService struct {
	films        repositories.FilmRepository
	users        repositories.UserRepository
	catalog      repositories.CatalogRepository
	cache        cache.PopularCache
	defaultCount int
}

func NewFilmService(
	films repositories.FilmRepository,
	users repositories.UserRepository,
	catalog repositories.CatalogRepository,
	popular cache.PopularCache,
	defaultCount int,
) *FilmService {
	if popular == nil {
		popular = cache.NopCache{}
	}
	if defaultCount <= 0 {
		defaultCount = DefaultPopularCount
	}
	return &FilmService{
		films:        films,
		users:        users,
		catalog:      catalog,
		cache:        popular,
		defaultCount: defaultCount,
	}
}

// DefaultCount is the ranking size used when none is requested.
func (s *FilmService) DefaultCount() int {
	return s.defaultCount
}

func (s *FilmService) Create(ctx context.Context, film *models.Film) (*models.Film, error) {
	if err := s.validate(ctx, film); err != nil {
		return nil, err
	}
	if err := s.films.Create(ctx, film); err != nil {
		return nil, err
	}
	invalidatePopular(ctx, s.cache)

	logger.Info("Film created", "film_id", film.ID, "name", film.Name)
	return film, nil
}

func (s *FilmService) Update(ctx context.Context, film *models.Film) (*models.Film, error) {
	if film.ID == 0 {
		return nil, errors.Validation("film id is required")
	}
	if err := s.validate(ctx, film); err != nil {
		return nil, err
	}
	if err := s.films.Update(ctx, film); err != nil {
		return nil, err
	}
	invalidatePopular(ctx, s.cache)

	logger.Info("Film updated", "film_id", film.ID)
	return film, nil
}

func (s *FilmService) Get(ctx context.Context, id uint) (*models.Film, error) {
	return s.films.Get(ctx, id)
}

func (s *FilmService) GetAll(ctx context.Context) ([]models.Film, error) {
	return s.films.GetAll(ctx)
}

func (s *FilmService) Delete(ctx context.Context, id uint) error {
	if err := s.films.Delete(ctx, id); err != nil {
		return err
	}
	invalidatePopular(ctx, s.cache)

	logger.Info("Film deleted", "film_id", id)
	return nil
}

func (s *FilmService) AddLike(ctx context.Context, filmID, userID uint) error {
	if err := s.requireFilmAndUser(ctx, filmID, userID); err != nil {
		return err
	}
	if err := s.films.AddLike(ctx, filmID, userID); err != nil {
		return err
	}
	invalidatePopular(ctx, s.cache)

	logger.Info("Like added", "film_id", filmID, "user_id", userID)
	return nil
}

func (s *FilmService) RemoveLike(ctx context.Context, filmID, userID uint) error {
	if err := s.requireFilmAndUser(ctx, filmID, userID); err != nil {
		return err
	}
	if err := s.films.RemoveLike(ctx, filmID, userID); err != nil {
		return err
	}
	invalidatePopular(ctx, s.cache)

	logger.Info("Like removed", "film_id", filmID, "user_id", userID)
	return nil
}

func (s *FilmService) CountLikes(ctx context.Context, filmID uint) (int64, error) {
	if err := s.requireFilm(ctx, filmID); err != nil {
		return 0, err
	}
	return s.films.CountLikes(ctx, filmID)
}

// GetMostPopular returns up to count films ranked by likes, serving from the
// cache when it holds the same ranking.
func (s *FilmService) GetMostPopular(ctx context.Context, count int) ([]models.Film, error) {
	if count <= 0 {
		return nil, errors.InvalidArgument("count must be positive")
	}

	cached, err := s.cache.Get(ctx, count)
	if err == nil {
		logger.Debug("Popular films served from cache", "count", count)
		return cached, nil
	}
	if !stderrors.Is(err, cache.ErrCacheMiss) {
		logger.Warn("Failed to read popular films cache", "count", count, "error", err)
	}

	generation, genErr := s.cache.Generation(ctx)
	if genErr != nil {
		logger.Warn("Failed to read popular films cache generation", "error", genErr)
	}

	films, err := s.films.GetMostPopular(ctx, count)
	if err != nil {
		return nil, err
	}
	if genErr == nil {
		s.storePopular(ctx, generation, count, films)
	}

	logger.Debug("Popular films ranked", "count", count, "returned", len(films))
	return films, nil
}

func (s *FilmService) storePopular(ctx context.Context, generation int64, count int, films []models.Film) {
	err := s.cache.Set(ctx, generation, count, films)
	switch {
	case err == nil:
	case stderrors.Is(err, cache.ErrStaleGeneration):
		logger.Debug("Popular films changed while ranking, not cached", "count", count)
	default:
		logger.Warn("Failed to store popular films cache", "count", count, "error", err)
	}
}

// validate checks the film fields, then its catalog references.
func (s *FilmService) validate(ctx context.Context, film *models.Film) error {
	if err := validation.Film(film); err != nil {
		return err
	}

	if id := film.RatingID(); id != nil {
		ok, err := s.catalog.MpaExists(ctx, *id)
		if err != nil {
			return err
		}
		if !ok {
			return errors.Validation("unknown mpa rating id")
		}
	}

	ok, err := s.catalog.GenresExist(ctx, film.GenreIDs())
	if err != nil {
		return err
	}
	if !ok {
		return errors.Validation("unknown genre id")
	}
	return nil
}

func (s *FilmService) requireFilm(ctx context.Context, id uint) error {
	ok, err := s.films.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return errors.NotFound(errors.EntityFilm, id)
	}
	return nil
}

func (s *FilmService) requireFilmAndUser(ctx context.Context, filmID, userID uint) error {
	if err := s.requireFilm(ctx, filmID); err != nil {
		return err
	}
	return requireUsers(ctx, s.users, userID)
}
