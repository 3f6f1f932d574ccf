package models

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusUnpaid    OrderStatus = "unpaid"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodCard PaymentMethod = "card"
)

type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string    `gorm:"type:text;not null"`
	Description string    `gorm:"type:text"`
	PriceCents  int64     `gorm:"not null;default:0"`
	ImageURL    string    `gorm:"type:text"`
	IsActive    bool      `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"not null;default:now();index"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (Product) TableName() string { return "products" }

type Order struct {
	ID            uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerName  string        `gorm:"type:text;not null"`
	CustomerPhone string        `gorm:"type:text;not null"`
	CustomerClass string        `gorm:"type:text;not null"`
	PaymentMethod PaymentMethod `gorm:"type:text;not null"`
	Status        OrderStatus   `gorm:"type:text;not null;default:'unpaid';index"`
	TotalCents    int64         `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"not null;default:now();index"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"` // каскад на позиции
}

func (Order) TableName() string { return "orders" }

type OrderItem struct {
	ID      uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID uuid.UUID `gorm:"type:uuid;not null;index"`
	// Слабая ссылка: товар может быть удалён, позиция заказа должна пережить его
	ProductID      *uuid.UUID `gorm:"type:uuid;index"`
	Name           string     `gorm:"type:text;not null"`
	UnitPriceCents int64      `gorm:"not null"`
	Quantity       int32      `gorm:"type:int;not null"`
	SubtotalCents  int64      `gorm:"not null"`
	ImageURL       string     `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
}

func (OrderItem) TableName() string { return "order_items" }
