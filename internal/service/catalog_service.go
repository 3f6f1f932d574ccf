package service

import (
	"context"

	"school-store/internal/models"
	"school-store/internal/repository"

	"github.com/google/uuid"
)

type catalogService struct {
	repo *repository.Repository
}

func NewCatalogService(repo *repository.Repository) CatalogService {
	return &catalogService{repo: repo}
}

func (s *catalogService) ListActive(ctx context.Context) ([]models.Product, error) {
	active := true
	return s.repo.Products.List(ctx, repository.ProductListFilter{OnlyActive: &active})
}

func (s *catalogService) ListAll(ctx context.Context) ([]models.Product, error) {
	return s.repo.Products.List(ctx, repository.ProductListFilter{})
}

func (s *catalogService) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	p, err := s.repo.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *catalogService) Create(ctx context.Context, in CreateProductInput) (*models.Product, error) {
	if in.PriceCents < 0 {
		return nil, ErrInvalidPrice
	}
	p := &models.Product{
		Name:        in.Name,
		Description: in.Description,
		PriceCents:  in.PriceCents,
		ImageURL:    in.ImageURL,
		IsActive:    true,
	}
	if err := s.repo.Products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update перезаписывает изменяемые поля. Отсутствующий id — молчаливый no-op,
// чтобы админские формы оставались идемпотентными по устаревшим ссылкам.
func (s *catalogService) Update(ctx context.Context, id uuid.UUID, in UpdateProductInput) error {
	if in.PriceCents < 0 {
		return ErrInvalidPrice
	}
	return s.repo.Products.UpdateFields(ctx, id, map[string]any{
		"name":        in.Name,
		"description": in.Description,
		"price_cents": in.PriceCents,
		"image_url":   in.ImageURL,
	})
}

func (s *catalogService) ToggleActive(ctx context.Context, id uuid.UUID) error {
	// RowsAffected == 0 (нет товара) — тоже no-op
	_, err := s.repo.Products.ToggleActive(ctx, id)
	return err
}
