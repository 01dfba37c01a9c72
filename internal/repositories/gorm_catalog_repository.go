package repositories

import (
	"context"

	"github.com/mroshb/filmorate/internal/models"
	"github.com/mroshb/filmorate/pkg/errors"
	"gorm.io/gorm"
)

type GormCatalogRepository struct {
	db *gorm.DB
}

func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

func (r *GormCatalogRepository) GetAllGenres(ctx context.Context) ([]models.Genre, error) {
	genres := make([]models.Genre, 0)
	if err := r.db.WithContext(ctx).Order("id").Find(&genres).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list genres")
	}
	return genres, nil
}

func (r *GormCatalogRepository) GetGenre(ctx context.Context, id uint) (*models.Genre, error) {
	var genre models.Genre
	result := r.db.WithContext(ctx).First(&genre, id)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.NotFound(errors.EntityGenre, id)
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get genre")
	}
	return &genre, nil
}

func (r *GormCatalogRepository) GenresExist(ctx context.Context, ids []uint) (bool, error) {
	unique := uniqueIDs(ids)
	if len(unique) == 0 {
		return true, nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Genre{}).Where("id IN ?", unique).Count(&count).Error; err != nil {
		return false, errors.Wrap(err, errors.ErrCodeInternalError, "failed to check genres")
	}
	return count == int64(len(unique)), nil
}

func (r *GormCatalogRepository) GetAllMpa(ctx context.Context) ([]models.Mpa, error) {
	ratings := make([]models.Mpa, 0)
	if err := r.db.WithContext(ctx).Order("id").Find(&ratings).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list mpa ratings")
	}
	return ratings, nil
}

func (r *GormCatalogRepository) GetMpa(ctx context.Context, id uint) (*models.Mpa, error) {
	var rating models.Mpa
	result := r.db.WithContext(ctx).First(&rating, id)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.NotFound(errors.EntityMpa, id)
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get mpa rating")
	}
	return &rating, nil
}

func (r *GormCatalogRepository) MpaExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Mpa{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, errors.Wrap(err, errors.ErrCodeInternalError, "failed to check mpa rating")
	}
	return count > 0, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Ensure interface is satisfied at compile time.
var _ CatalogRepository = (*GormCatalogRepository)(nil)
