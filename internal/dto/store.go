package dto

import (
	"school-store/internal/cart"
	"school-store/internal/models"
	"school-store/internal/money"
)

// Запросы принимают и form, и JSON — витрина шлёт fetch с JSON,
// обычные формы постят urlencoded.

type CartAddRequest struct {
	ID string `form:"id" json:"id" binding:"required"`
}

type CartUpdateRequest struct {
	ID  string `form:"id" json:"id" binding:"required"`
	Qty string `form:"qty" json:"qty"`
}

type CheckoutRequest struct {
	CustomerName  string `form:"customer_name" json:"customer_name"`
	CustomerPhone string `form:"customer_phone" json:"customer_phone"`
	CustomerClass string `form:"customer_class" json:"customer_class"`
	PaymentMethod string `form:"payment_method" json:"payment_method"`
}

type AdminLoginRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

type ProductForm struct {
	Name        string `form:"name" json:"name" binding:"required"`
	Description string `form:"description" json:"description"`
	Price       string `form:"price" json:"price" binding:"required"`
	ImageURL    string `form:"image_url" json:"image_url"`
}

type CartAddResponse struct {
	OK    bool `json:"ok"`
	Count int  `json:"count,omitempty"`
}

type ProductResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	ImageURL    string `json:"image_url"`
	IsActive    bool   `json:"is_active"`
}

func ToProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Price:       money.FormatCents(p.PriceCents),
		ImageURL:    p.ImageURL,
		IsActive:    p.IsActive,
	}
}

func ToProductResponses(list []models.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, ToProductResponse(p))
	}
	return out
}

type CartLineResponse struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	ImageURL  string `json:"image_url"`
	Quantity  int    `json:"quantity"`
}

type CartResponse struct {
	Lines []CartLineResponse `json:"lines"`
	Total string             `json:"total"`
	Count int                `json:"count"`
}

func ToCartResponse(c *cart.Cart) CartResponse {
	lines := make([]CartLineResponse, 0, len(c.Lines))
	for _, l := range c.Lines {
		lines = append(lines, CartLineResponse{
			ProductID: l.ProductID.String(),
			Name:      l.Name,
			UnitPrice: money.FormatCents(l.UnitPriceCents),
			ImageURL:  l.ImageURL,
			Quantity:  l.Quantity,
		})
	}
	return CartResponse{
		Lines: lines,
		Total: money.FormatCents(c.TotalCents()),
		Count: c.Count(),
	}
}

type OrderItemResponse struct {
	ProductID string `json:"product_id,omitempty"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Quantity  int32  `json:"quantity"`
	Subtotal  string `json:"subtotal"`
}

type OrderResponse struct {
	ID            string              `json:"id"`
	CustomerName  string              `json:"customer_name"`
	CustomerPhone string              `json:"customer_phone"`
	CustomerClass string              `json:"customer_class"`
	PaymentMethod string              `json:"payment_method"`
	Status        string              `json:"status"`
	Total         string              `json:"total"`
	CreatedAt     string              `json:"created_at"`
	Items         []OrderItemResponse `json:"items,omitempty"`
}

func ToOrderResponse(o *models.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		resp := OrderItemResponse{
			Name:      it.Name,
			UnitPrice: money.FormatCents(it.UnitPriceCents),
			Quantity:  it.Quantity,
			Subtotal:  money.FormatCents(it.SubtotalCents),
		}
		if it.ProductID != nil {
			resp.ProductID = it.ProductID.String()
		}
		items = append(items, resp)
	}
	return OrderResponse{
		ID:            o.ID.String(),
		CustomerName:  o.CustomerName,
		CustomerPhone: o.CustomerPhone,
		CustomerClass: o.CustomerClass,
		PaymentMethod: string(o.PaymentMethod),
		Status:        string(o.Status),
		Total:         money.FormatCents(o.TotalCents),
		CreatedAt:     o.CreatedAt.Format("2006-01-02 15:04:05"),
		Items:         items,
	}
}

type DashboardResponse struct {
	ProductCount int64 `json:"product_count"`
	OrderCount   int64 `json:"order_count"`
	UnpaidCount  int64 `json:"unpaid_count"`
}
