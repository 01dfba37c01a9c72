package repositories

import (
	"context"

	"github.com/mroshb/filmorate/internal/models"
	"github.com/mroshb/filmorate/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var filmColumns = []string{"name", "description", "release_date", "duration", "mpa_id"}

// popularQuery ranks every film, including those nobody liked yet.
const popularQuery = `
SELECT films.id AS film_id, COUNT(film_likes.user_id) AS likes_count
FROM films
LEFT JOIN film_likes ON film_likes.film_id = films.id
GROUP BY films.id
ORDER BY likes_count DESC, films.id ASC
LIMIT ?`

type popularRow struct {
	FilmID     uint
	LikesCount int64
}

type filmGenreRow struct {
	FilmID uint
	ID     uint
	Name   string
}

type GormFilmRepository struct {
	db *gorm.DB
}

func NewGormFilmRepository(db *gorm.DB) *GormFilmRepository {
	return &GormFilmRepository{db: db}
}

// Create inserts the film row and its genre links in one transaction.
func (r *GormFilmRepository) Create(ctx context.Context, film *models.Film) error {
	stored := normalizeFilm(film)
	stored.ID = 0

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&stored).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create film")
		}
		return replaceGenres(tx, stored.ID, stored.GenreIDs())
	})
	if err != nil {
		return err
	}
	return r.reload(ctx, stored.ID, film)
}

func (r *GormFilmRepository) Get(ctx context.Context, id uint) (*models.Film, error) {
	db := r.db.WithContext(ctx)

	var film models.Film
	result := db.First(&film, id)
	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.NotFound(errors.EntityFilm, id)
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get film")
	}

	films := []models.Film{film}
	if err := loadRelations(db, films); err != nil {
		return nil, err
	}
	return &films[0], nil
}

func (r *GormFilmRepository) GetAll(ctx context.Context) ([]models.Film, error) {
	db := r.db.WithContext(ctx)

	films := make([]models.Film, 0)
	if err := db.Order("id").Find(&films).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list films")
	}
	if err := loadRelations(db, films); err != nil {
		return nil, err
	}
	return films, nil
}

// Update rewrites the film row and replaces its genre links.
func (r *GormFilmRepository) Update(ctx context.Context, film *models.Film) error {
	stored := normalizeFilm(film)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&stored).Select(filmColumns).Updates(&stored)
		if result.Error != nil {
			return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to update film")
		}
		if result.RowsAffected == 0 {
			return errors.NotFound(errors.EntityFilm, stored.ID)
		}
		return replaceGenres(tx, stored.ID, stored.GenreIDs())
	})
	if err != nil {
		return err
	}
	return r.reload(ctx, stored.ID, film)
}

func (r *GormFilmRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("film_id = ?", id).Delete(&models.FilmLike{}).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to remove film likes")
		}
		if err := tx.Where("film_id = ?", id).Delete(&models.FilmGenre{}).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to remove film genres")
		}

		result := tx.Delete(&models.Film{}, id)
		if result.Error != nil {
			return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to delete film")
		}
		if result.RowsAffected == 0 {
			return errors.NotFound(errors.EntityFilm, id)
		}
		return nil
	})
}

func (r *GormFilmRepository) Exists(ctx context.Context, id uint) (bool, error) {
	return filmExists(r.db.WithContext(ctx), id)
}

// AddLike records the like once; repeating it is a no-op.
func (r *GormFilmRepository) AddLike(ctx context.Context, filmID, userID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := filmExists(tx, filmID)
		if err != nil {
			return err
		}
		if !exists {
			return errors.NotFound(errors.EntityFilm, filmID)
		}

		like := models.FilmLike{FilmID: filmID, UserID: userID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to add like")
		}
		return nil
	})
}

func (r *GormFilmRepository) RemoveLike(ctx context.Context, filmID, userID uint) error {
	err := r.db.WithContext(ctx).
		Where("film_id = ? AND user_id = ?", filmID, userID).
		Delete(&models.FilmLike{}).Error
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to remove like")
	}
	return nil
}

func (r *GormFilmRepository) RemoveUserLikes(ctx context.Context, userID uint) error {
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.FilmLike{}).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to remove user likes")
	}
	return nil
}

func (r *GormFilmRepository) CountLikes(ctx context.Context, filmID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.FilmLike{}).Where("film_id = ?", filmID).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeInternalError, "failed to count likes")
	}
	return count, nil
}

func (r *GormFilmRepository) GetMostPopular(ctx context.Context, count int) ([]models.Film, error) {
	db := r.db.WithContext(ctx)

	var rows []popularRow
	if err := db.Raw(popularQuery, count).Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to rank films")
	}
	if len(rows) == 0 {
		return []models.Film{}, nil
	}

	ids := make([]uint, len(rows))
	for i, row := range rows {
		ids[i] = row.FilmID
	}

	var found []models.Film
	if err := db.Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to load films")
	}
	if err := loadRelations(db, found); err != nil {
		return nil, err
	}

	byID := make(map[uint]models.Film, len(found))
	for _, film := range found {
		byID[film.ID] = film
	}
	films := make([]models.Film, 0, len(ids))
	for _, id := range ids {
		if film, ok := byID[id]; ok {
			films = append(films, film)
		}
	}
	return films, nil
}

func (r *GormFilmRepository) reload(ctx context.Context, id uint, film *models.Film) error {
	fresh, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	*film = *fresh
	return nil
}

func filmExists(db *gorm.DB, id uint) (bool, error) {
	var count int64
	if err := db.Model(&models.Film{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, errors.Wrap(err, errors.ErrCodeInternalError, "failed to check film")
	}
	return count > 0, nil
}

func replaceGenres(tx *gorm.DB, filmID uint, genreIDs []uint) error {
	if err := tx.Where("film_id = ?", filmID).Delete(&models.FilmGenre{}).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to clear film genres")
	}
	if len(genreIDs) == 0 {
		return nil
	}

	links := make([]models.FilmGenre, len(genreIDs))
	for i, id := range genreIDs {
		links[i] = models.FilmGenre{FilmID: filmID, GenreID: id, Position: i}
	}
	if err := tx.Create(&links).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to link film genres")
	}
	return nil
}

// loadRelations fills the MPA rating and ordered genres of every film in place.
func loadRelations(db *gorm.DB, films []models.Film) error {
	if len(films) == 0 {
		return nil
	}

	filmIDs := make([]uint, 0, len(films))
	mpaIDs := make([]uint, 0, len(films))
	for _, film := range films {
		filmIDs = append(filmIDs, film.ID)
		if film.MpaID != nil {
			mpaIDs = append(mpaIDs, *film.MpaID)
		}
	}

	ratings := make(map[uint]models.Mpa)
	if len(mpaIDs) > 0 {
		var found []models.Mpa
		if err := db.Where("id IN ?", uniqueIDs(mpaIDs)).Find(&found).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to load mpa ratings")
		}
		for _, m := range found {
			ratings[m.ID] = m
		}
	}

	var rows []filmGenreRow
	err := db.Table("film_genres").
		Select("film_genres.film_id, genres.id, genres.name").
		Joins("JOIN genres ON genres.id = film_genres.genre_id").
		Where("film_genres.film_id IN ?", filmIDs).
		Order("film_genres.film_id, film_genres.position").
		Scan(&rows).Error
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to load film genres")
	}

	genres := make(map[uint][]models.Genre, len(films))
	for _, row := range rows {
		genres[row.FilmID] = append(genres[row.FilmID], models.Genre{ID: row.ID, Name: row.Name})
	}

	for i := range films {
		film := &films[i]
		film.Genres = append(make([]models.Genre, 0, len(genres[film.ID])), genres[film.ID]...)
		if film.MpaID != nil {
			m, ok := ratings[*film.MpaID]
			if !ok {
				m = models.Mpa{ID: *film.MpaID}
			}
			film.Mpa = &m
		}
	}
	return nil
}

// Ensure interface is satisfied at compile time.
var _ FilmRepository = (*GormFilmRepository)(nil)
