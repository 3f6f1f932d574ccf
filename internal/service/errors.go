package service

import "errors"

var (
	ErrProductNotFound     = errors.New("product not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrCartEmpty           = errors.New("cart is empty")
	ErrInvalidCustomerInfo = errors.New("customer info incomplete or invalid")
	ErrInvalidPrice        = errors.New("price must be a non-negative amount")
	ErrOrderCancelled      = errors.New("order is cancelled")
)
