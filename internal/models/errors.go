package models

import "errors"

// Business-rule errors. Handlers map these to distinct HTTP statuses with
// errors.Is instead of matching on message strings.
var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidQuantity   = errors.New("quantity must be greater than zero")
	ErrProductNotFound   = errors.New("product not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrCartNotFound      = errors.New("cart not found")
	ErrCartItemNotFound  = errors.New("cart item not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrRoleNotFound      = errors.New("role not found")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrForbidden         = errors.New("forbidden")
	ErrDuplicate         = errors.New("already exists")
)
