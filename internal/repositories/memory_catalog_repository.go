package repositories

import (
	"context"

	"github.com/mroshb/filmorate/internal/models"
	"github.com/mroshb/filmorate/pkg/errors"
)

// MemoryCatalogRepository serves a fixed catalog. It is never written after
// construction, so it needs no locking.
type MemoryCatalogRepository struct {
	genres    []models.Genre
	genreByID map[uint]models.Genre
	mpa       []models.Mpa
	mpaByID   map[uint]models.Mpa
}

// NewMemoryCatalogRepository builds a catalog from the given entries, which
// must already be ordered by id.
func NewMemoryCatalogRepository(genres []models.Genre, mpa []models.Mpa) *MemoryCatalogRepository {
	r := &MemoryCatalogRepository{
		genres:    append([]models.Genre(nil), genres...),
		genreByID: make(map[uint]models.Genre, len(genres)),
		mpa:       append([]models.Mpa(nil), mpa...),
		mpaByID:   make(map[uint]models.Mpa, len(mpa)),
	}
	for _, g := range genres {
		r.genreByID[g.ID] = g
	}
	for _, m := range mpa {
		r.mpaByID[m.ID] = m
	}
	return r
}

// NewDefaultCatalogRepository serves the standard seeded catalog.
func NewDefaultCatalogRepository() *MemoryCatalogRepository {
	return NewMemoryCatalogRepository(models.DefaultGenres, models.DefaultMpaRatings)
}

func (r *MemoryCatalogRepository) GetAllGenres(ctx context.Context) ([]models.Genre, error) {
	return append([]models.Genre(nil), r.genres...), nil
}

func (r *MemoryCatalogRepository) GetGenre(ctx context.Context, id uint) (*models.Genre, error) {
	g, ok := r.genreByID[id]
	if !ok {
		return nil, errors.NotFound(errors.EntityGenre, id)
	}
	return &g, nil
}

func (r *MemoryCatalogRepository) GenresExist(ctx context.Context, ids []uint) (bool, error) {
	for _, id := range ids {
		if _, ok := r.genreByID[id]; !ok {
			return false, nil
		}
	}
	return true, nil
}

func (r *MemoryCatalogRepository) GetAllMpa(ctx context.Context) ([]models.Mpa, error) {
	return append([]models.Mpa(nil), r.mpa...), nil
}

func (r *MemoryCatalogRepository) GetMpa(ctx context.Context, id uint) (*models.Mpa, error) {
	m, ok := r.mpaByID[id]
	if !ok {
		return nil, errors.NotFound(errors.EntityMpa, id)
	}
	return &m, nil
}

func (r *MemoryCatalogRepository) MpaExists(ctx context.Context, id uint) (bool, error) {
	_, ok := r.mpaByID[id]
	return ok, nil
}

// resolve fills names into the film's rating and genres. Unknown ids are kept
// as bare references.
func (r *MemoryCatalogRepository) resolve(film *models.Film) {
	if film.MpaID != nil {
		m, ok := r.mpaByID[*film.MpaID]
		if !ok {
			m = models.Mpa{ID: *film.MpaID}
		}
		film.Mpa = &m
	}

	genres := make([]models.Genre, 0, len(film.Genres))
	for _, g := range film.Genres {
		if known, ok := r.genreByID[g.ID]; ok {
			g = known
		}
		genres = append(genres, g)
	}
	film.Genres = genres
}

// Ensure interface is satisfied at compile time.
var _ CatalogRepository = (*MemoryCatalogRepository)(nil)
