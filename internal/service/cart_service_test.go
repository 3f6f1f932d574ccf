package service_test

import (
	"context"
	"errors"
	"testing"

	"school-store/internal/cart"
	"school-store/internal/models"
	"school-store/internal/service"

	"github.com/google/uuid"
)

func TestAddToCart_ActiveProductSnapshot(t *testing.T) {
	pid := uuid.New()
	products := &MockProductRepo{
		GetActiveByIDFunc: func(ctx context.Context, id uuid.UUID) (*models.Product, error) {
			if id != pid {
				return nil, nil
			}
			return &models.Product{ID: pid, Name: "Hoodie", PriceCents: 1800, ImageURL: "/img/hoodie.png", IsActive: true}, nil
		},
	}
	svc := service.NewCartService(newTestRepository(products, &MockOrderRepo{}))

	var c cart.Cart
	count, err := svc.AddToCart(context.Background(), &c, pid)
	if err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected count 1, got %d", count)
	}

	count, err = svc.AddToCart(context.Background(), &c, pid)
	if err != nil {
		t.Fatalf("AddToCart repeat: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected count 2, got %d", count)
	}

	if len(c.Lines) != 1 {
		t.Fatalf("expected single line, got %d", len(c.Lines))
	}
	l := c.Lines[0]
	if l.Name != "Hoodie" || l.UnitPriceCents != 1800 || l.ImageURL != "/img/hoodie.png" {
		t.Fatalf("snapshot mismatch: %+v", l)
	}
}

func TestAddToCart_InactiveOrMissingProduct(t *testing.T) {
	pid := uuid.New()
	products := &MockProductRepo{
		// GetActiveByID неактивные и отсутствующие товары не различает
		GetActiveByIDFunc: func(ctx context.Context, id uuid.UUID) (*models.Product, error) {
			return nil, nil
		},
	}
	svc := service.NewCartService(newTestRepository(products, &MockOrderRepo{}))

	var c cart.Cart
	c.Add(pid, "Old line", 999, "")

	_, err := svc.AddToCart(context.Background(), &c, uuid.New())
	if !errors.Is(err, service.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}

	// Существующая позиция не тронута
	if len(c.Lines) != 1 || c.Lines[0].Quantity != 1 || c.Lines[0].UnitPriceCents != 999 {
		t.Fatalf("existing cart line affected: %+v", c.Lines)
	}
}

func TestAddToCart_DeactivatedAfterAdd(t *testing.T) {
	pid := uuid.New()
	active := true
	products := &MockProductRepo{
		GetActiveByIDFunc: func(ctx context.Context, id uuid.UUID) (*models.Product, error) {
			if !active {
				return nil, nil
			}
			return &models.Product{ID: pid, Name: "Bottle", PriceCents: 999, IsActive: true}, nil
		},
	}
	svc := service.NewCartService(newTestRepository(products, &MockOrderRepo{}))

	var c cart.Cart
	if _, err := svc.AddToCart(context.Background(), &c, pid); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if _, err := svc.AddToCart(context.Background(), &c, pid); err != nil {
		t.Fatalf("second add: %v", err)
	}
	if c.TotalCents() != 1998 {
		t.Fatalf("expected total 1998, got %d", c.TotalCents())
	}

	// Товар сняли с витрины: add отказывает, корзина живёт на снапшоте
	active = false
	if _, err := svc.AddToCart(context.Background(), &c, pid); !errors.Is(err, service.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound after deactivation, got %v", err)
	}
	if c.Lines[0].Quantity != 2 || c.TotalCents() != 1998 {
		t.Fatalf("cart changed after rejected add: %+v", c.Lines)
	}
}
