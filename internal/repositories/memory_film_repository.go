package repositories

import (
	"context"
	"sync"

	"github.com/mroshb/filmorate/internal/models"
	"github.com/mroshb/filmorate/pkg/errors"
)

// MemoryFilmRepository keeps films and likes in process memory. Stored films
// hold only catalog ids; names are filled in from the catalog on every read.
type MemoryFilmRepository struct {
	mu      sync.RWMutex
	catalog *MemoryCatalogRepository
	nextID  uint
	films   map[uint]models.Film
	likes   map[uint]map[uint]struct{} // film id -> user ids
}

func NewMemoryFilmRepository(catalog *MemoryCatalogRepository) *MemoryFilmRepository {
	return &MemoryFilmRepository{
		catalog: catalog,
		films:   make(map[uint]models.Film),
		likes:   make(map[uint]map[uint]struct{}),
	}
}

func (r *MemoryFilmRepository) Create(ctx context.Context, film *models.Film) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	film.ID = r.nextID
	r.films[film.ID] = normalizeFilm(film)
	*film = r.view(r.films[film.ID])
	return nil
}

func (r *MemoryFilmRepository) Get(ctx context.Context, id uint) (*models.Film, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.films[id]
	if !ok {
		return nil, errors.NotFound(errors.EntityFilm, id)
	}
	film := r.view(stored)
	return &film, nil
}

func (r *MemoryFilmRepository) GetAll(ctx context.Context) ([]models.Film, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]uint, 0, len(r.films))
	for id := range r.films {
		ids = append(ids, id)
	}
	sortIDs(ids)

	films := make([]models.Film, 0, len(ids))
	for _, id := range ids {
		films = append(films, r.view(r.films[id]))
	}
	return films, nil
}

func (r *MemoryFilmRepository) Update(ctx context.Context, film *models.Film) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.films[film.ID]; !ok {
		return errors.NotFound(errors.EntityFilm, film.ID)
	}
	r.films[film.ID] = normalizeFilm(film)
	*film = r.view(r.films[film.ID])
	return nil
}

func (r *MemoryFilmRepository) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.films[id]; !ok {
		return errors.NotFound(errors.EntityFilm, id)
	}
	delete(r.films, id)
	delete(r.likes, id)
	return nil
}

func (r *MemoryFilmRepository) Exists(ctx context.Context, id uint) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.films[id]
	return ok, nil
}

func (r *MemoryFilmRepository) AddLike(ctx context.Context, filmID, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.films[filmID]; !ok {
		return errors.NotFound(errors.EntityFilm, filmID)
	}
	users, ok := r.likes[filmID]
	if !ok {
		users = make(map[uint]struct{})
		r.likes[filmID] = users
	}
	users[userID] = struct{}{}
	return nil
}

func (r *MemoryFilmRepository) RemoveLike(ctx context.Context, filmID, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if users, ok := r.likes[filmID]; ok {
		delete(users, userID)
		if len(users) == 0 {
			delete(r.likes, filmID)
		}
	}
	return nil
}

func (r *MemoryFilmRepository) RemoveUserLikes(ctx context.Context, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for filmID, users := range r.likes {
		delete(users, userID)
		if len(users) == 0 {
			delete(r.likes, filmID)
		}
	}
	return nil
}

func (r *MemoryFilmRepository) CountLikes(ctx context.Context, filmID uint) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.likes[filmID])), nil
}

func (r *MemoryFilmRepository) GetMostPopular(ctx context.Context, count int) ([]models.Film, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ranks := make([]likeRank, 0, len(r.films))
	for id := range r.films {
		ranks = append(ranks, likeRank{filmID: id, likes: int64(len(r.likes[id]))})
	}

	ranks = rankByLikes(ranks, count)
	films := make([]models.Film, 0, len(ranks))
	for _, rank := range ranks {
		films = append(films, r.view(r.films[rank.filmID]))
	}
	return films, nil
}

// view returns a resolved copy that shares no slices with the stored record.
func (r *MemoryFilmRepository) view(stored models.Film) models.Film {
	film := stored
	film.Genres = append([]models.Genre(nil), stored.Genres...)
	if stored.MpaID != nil {
		id := *stored.MpaID
		film.MpaID = &id
	}
	if r.catalog != nil {
		r.catalog.resolve(&film)
	}
	return film
}

// normalizeFilm reduces catalog references to ids.
func normalizeFilm(film *models.Film) models.Film {
	stored := *film
	stored.MpaID = film.RatingID()
	stored.Mpa = nil

	ids := film.GenreIDs()
	stored.Genres = make([]models.Genre, len(ids))
	for i, id := range ids {
		stored.Genres[i] = models.Genre{ID: id}
	}
	return stored
}

// Ensure interface is satisfied at compile time.
var _ FilmRepository = (*MemoryFilmRepository)(nil)
