package service_test

import (
	"context"

	"school-store/internal/models"
	"school-store/internal/repository"

	"github.com/google/uuid"
)

// Моки для всех зависимостей сервисов

// MockProductRepo
type MockProductRepo struct {
	CreateFunc        func(ctx context.Context, p *models.Product) error
	UpdateFieldsFunc  func(ctx context.Context, id uuid.UUID, fields map[string]any) error
	GetByIDFunc       func(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetActiveByIDFunc func(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListFunc          func(ctx context.Context, f repository.ProductListFilter) ([]models.Product, error)
	ToggleActiveFunc  func(ctx context.Context, id uuid.UUID) (bool, error)
	CountFunc         func(ctx context.Context) (int64, error)
}

func (m *MockProductRepo) Create(ctx context.Context, p *models.Product) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	return nil
}

func (m *MockProductRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if m.UpdateFieldsFunc != nil {
		return m.UpdateFieldsFunc(ctx, id, fields)
	}
	return nil
}

func (m *MockProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockProductRepo) GetActiveByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if m.GetActiveByIDFunc != nil {
		return m.GetActiveByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockProductRepo) List(ctx context.Context, f repository.ProductListFilter) ([]models.Product, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, f)
	}
	return nil, nil
}

func (m *MockProductRepo) ToggleActive(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.ToggleActiveFunc != nil {
		return m.ToggleActiveFunc(ctx, id)
	}
	return false, nil
}

func (m *MockProductRepo) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

// MockOrderRepo
type MockOrderRepo struct {
	CreateFunc        func(ctx context.Context, o *models.Order) error
	GetByIDFunc       func(ctx context.Context, id uuid.UUID) (*models.Order, error)
	UpdateStatusFunc  func(ctx context.Context, id uuid.UUID, status models.OrderStatus) error
	ListFunc          func(ctx context.Context, f repository.OrderListFilter) ([]*models.Order, int64, error)
	CountFunc         func(ctx context.Context) (int64, error)
	CountByStatusFunc func(ctx context.Context, status models.OrderStatus) (int64, error)

	Items *MockOrderItemRepo
}

func (m *MockOrderRepo) Create(ctx context.Context, o *models.Order) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, o)
	}
	o.ID = uuid.New()
	return nil
}

func (m *MockOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *MockOrderRepo) List(ctx context.Context, f repository.OrderListFilter) ([]*models.Order, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, f)
	}
	return nil, 0, nil
}

func (m *MockOrderRepo) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

func (m *MockOrderRepo) CountByStatus(ctx context.Context, status models.OrderStatus) (int64, error) {
	if m.CountByStatusFunc != nil {
		return m.CountByStatusFunc(ctx, status)
	}
	return 0, nil
}

func (m *MockOrderRepo) WithTx(ctx context.Context, fn func(txOrders repository.OrderRepo, txItems repository.OrderItemRepo) error) error {
	items := m.Items
	if items == nil {
		items = &MockOrderItemRepo{}
	}
	return fn(m, items)
}

// MockOrderItemRepo
type MockOrderItemRepo struct {
	BulkCreateFunc   func(ctx context.Context, items []models.OrderItem) error
	GetByOrderIDFunc func(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error)
	SumByOrderFunc   func(ctx context.Context, orderID uuid.UUID) (int64, error)
}

func (m *MockOrderItemRepo) BulkCreate(ctx context.Context, items []models.OrderItem) error {
	if m.BulkCreateFunc != nil {
		return m.BulkCreateFunc(ctx, items)
	}
	return nil
}

func (m *MockOrderItemRepo) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error) {
	if m.GetByOrderIDFunc != nil {
		return m.GetByOrderIDFunc(ctx, orderID)
	}
	return nil, nil
}

func (m *MockOrderItemRepo) SumByOrder(ctx context.Context, orderID uuid.UUID) (int64, error) {
	if m.SumByOrderFunc != nil {
		return m.SumByOrderFunc(ctx, orderID)
	}
	return 0, nil
}

func newTestRepository(products *MockProductRepo, orders *MockOrderRepo) *repository.Repository {
	items := orders.Items
	if items == nil {
		items = &MockOrderItemRepo{}
		orders.Items = items
	}
	return &repository.Repository{
		Products:   products,
		Orders:     orders,
		OrderItems: items,
	}
}
