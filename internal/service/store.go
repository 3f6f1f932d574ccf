package service

import (
	"context"

	"school-store/internal/cart"
	"school-store/internal/models"

	"github.com/google/uuid"
)

type CreateProductInput struct {
	Name        string
	Description string
	PriceCents  int64
	ImageURL    string
}

type UpdateProductInput struct {
	Name        string
	Description string
	PriceCents  int64
	ImageURL    string
}

type CheckoutInput struct {
	CustomerName  string
	CustomerPhone string
	CustomerClass string
	PaymentMethod string
}

type DashboardCounts struct {
	Products     int64
	Orders       int64
	UnpaidOrders int64
}

type CatalogService interface {
	ListActive(ctx context.Context) ([]models.Product, error)
	ListAll(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Create(ctx context.Context, in CreateProductInput) (*models.Product, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateProductInput) error
	ToggleActive(ctx context.Context, id uuid.UUID) error
}

type CartService interface {
	AddToCart(ctx context.Context, c *cart.Cart, productID uuid.UUID) (int, error)
	SetQuantity(c *cart.Cart, productID uuid.UUID, qty int)
	Clear(c *cart.Cart)
}

type OrderService interface {
	PlaceOrder(ctx context.Context, c *cart.Cart, in CheckoutInput) (*models.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, int64, error)
	TogglePaid(ctx context.Context, id uuid.UUID) (*models.Order, error)
	MarkCancelled(ctx context.Context, id uuid.UUID) (*models.Order, error)
	Counts(ctx context.Context) (DashboardCounts, error)
}
