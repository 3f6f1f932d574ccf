package service

import (
	"context"
	"strings"
	"time"

	"school-store/internal/cart"
	"school-store/internal/models"
	"school-store/internal/repository"

	"github.com/google/uuid"
)

type orderService struct {
	repo *repository.Repository
	now  func() time.Time
}

func NewOrderService(repo *repository.Repository) OrderService {
	return &orderService{
		repo: repo,
		now:  time.Now,
	}
}

func validateCheckout(in CheckoutInput) (models.PaymentMethod, error) {
	if strings.TrimSpace(in.CustomerName) == "" ||
		strings.TrimSpace(in.CustomerPhone) == "" ||
		strings.TrimSpace(in.CustomerClass) == "" {
		return "", ErrInvalidCustomerInfo
	}
	switch models.PaymentMethod(in.PaymentMethod) {
	case models.PaymentMethodCash:
		return models.PaymentMethodCash, nil
	case models.PaymentMethodCard:
		return models.PaymentMethodCard, nil
	default:
		return "", ErrInvalidCustomerInfo
	}
}

// PlaceOrder атомарно создаёт заказ и его позиции из снапшотов корзины.
// Корзина очищается только после успешного коммита.
func (s *orderService) PlaceOrder(ctx context.Context, c *cart.Cart, in CheckoutInput) (*models.Order, error) {
	if c == nil || c.IsEmpty() {
		return nil, ErrCartEmpty
	}

	method, err := validateCheckout(in)
	if err != nil {
		return nil, err
	}

	now := s.now()

	itemsDB := make([]models.OrderItem, 0, len(c.Lines))
	for _, l := range c.Lines {
		pid := l.ProductID
		itemsDB = append(itemsDB, models.OrderItem{
			ProductID:      &pid,
			Name:           l.Name,
			UnitPriceCents: l.UnitPriceCents,
			Quantity:       int32(l.Quantity),
			SubtotalCents:  l.UnitPriceCents * int64(l.Quantity),
			ImageURL:       l.ImageURL,
			CreatedAt:      now,
		})
	}

	order := &models.Order{
		CustomerName:  strings.TrimSpace(in.CustomerName),
		CustomerPhone: strings.TrimSpace(in.CustomerPhone),
		CustomerClass: strings.TrimSpace(in.CustomerClass),
		PaymentMethod: method,
		Status:        models.OrderStatusUnpaid,
		TotalCents:    c.TotalCents(),
		CreatedAt:     now,
	}

	err = s.repo.Orders.WithTx(ctx, func(or repository.OrderRepo, ir repository.OrderItemRepo) error {
		if err := or.Create(ctx, order); err != nil {
			return err
		}

		for i := range itemsDB {
			itemsDB[i].OrderID = order.ID
		}

		return ir.BulkCreate(ctx, itemsDB)
	})
	if err != nil {
		return nil, err
	}

	order.Items = itemsDB
	c.Clear()

	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	ord, err := s.repo.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}
	return ord, nil
}

func (s *orderService) ListOrders(ctx context.Context) ([]models.Order, int64, error) {
	ordersPtr, total, err := s.repo.Orders.List(ctx, repository.OrderListFilter{Limit: 100})
	if err != nil {
		return nil, 0, err
	}

	orders := make([]models.Order, len(ordersPtr))
	for i, o := range ordersPtr {
		orders[i] = *o
	}
	return orders, total, nil
}

// TogglePaid переключает unpaid<->paid. Отменённый заказ терминален —
// переключение отклоняется.
func (s *orderService) TogglePaid(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	ord, err := s.repo.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}
	if ord.Status == models.OrderStatusCancelled {
		return nil, ErrOrderCancelled
	}

	next := models.OrderStatusPaid
	if ord.Status == models.OrderStatusPaid {
		next = models.OrderStatusUnpaid
	}

	if err := s.repo.Orders.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}
	return s.repo.Orders.GetByID(ctx, id)
}

func (s *orderService) MarkCancelled(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	ord, err := s.repo.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}

	if err := s.repo.Orders.UpdateStatus(ctx, id, models.OrderStatusCancelled); err != nil {
		return nil, err
	}
	return s.repo.Orders.GetByID(ctx, id)
}

func (s *orderService) Counts(ctx context.Context) (DashboardCounts, error) {
	products, err := s.repo.Products.Count(ctx)
	if err != nil {
		return DashboardCounts{}, err
	}
	orders, err := s.repo.Orders.Count(ctx)
	if err != nil {
		return DashboardCounts{}, err
	}
	unpaid, err := s.repo.Orders.CountByStatus(ctx, models.OrderStatusUnpaid)
	if err != nil {
		return DashboardCounts{}, err
	}
	return DashboardCounts{Products: products, Orders: orders, UnpaidOrders: unpaid}, nil
}
