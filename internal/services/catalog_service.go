package services

import (
	"context"

	"github.com/mroshb/filmorate/internal/models"
	"github.com/mroshb/filmorate/internal/repositories"
)

type CatalogService struct {
	repo repositories.CatalogRepository
}

func NewCatalogService(repo repositories.CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) GetAllGenres(ctx context.Context) ([]models.Genre, error) {
	return s.repo.GetAllGenres(ctx)
}

func (s *CatalogService) GetGenre(ctx context.Context, id uint) (*models.Genre, error) {
	return s.repo.GetGenre(ctx, id)
}

func (s *CatalogService) GetAllMpa(ctx context.Context) ([]models.Mpa, error) {
	return s.repo.GetAllMpa(ctx)
}

func (s *CatalogService) GetMpa(ctx context.Context, id uint) (*models.Mpa, error) {
	return s.repo.GetMpa(ctx, id)
}
