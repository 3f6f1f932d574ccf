package service

import (
	"context"

	"school-store/internal/cart"
	"school-store/internal/repository"

	"github.com/google/uuid"
)

type cartService struct {
	repo *repository.Repository
}

func NewCartService(repo *repository.Repository) CartService {
	return &cartService{repo: repo}
}

// AddToCart добавляет активный товар в корзину со снапшотом каталожной цены.
// Неактивный или отсутствующий товар — ErrProductNotFound, корзина не меняется.
func (s *cartService) AddToCart(ctx context.Context, c *cart.Cart, productID uuid.UUID) (int, error) {
	p, err := s.repo.Products.GetActiveByID(ctx, productID)
	if err != nil {
		return 0, err
	}
	if p == nil {
		return 0, ErrProductNotFound
	}
	return c.Add(p.ID, p.Name, p.PriceCents, p.ImageURL), nil
}

func (s *cartService) SetQuantity(c *cart.Cart, productID uuid.UUID, qty int) {
	c.SetQuantity(productID, qty)
}

func (s *cartService) Clear(c *cart.Cart) {
	c.Clear()
}
