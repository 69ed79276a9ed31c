package models

import "gorm.io/gorm"

// Cart is a user's staging area of intended purchases. One cart per user;
// checkout clears its items but never deletes the cart row itself.
type Cart struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID     string `json:"user_id" gorm:"uniqueIndex;type:varchar(36)"`
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// CartItem is one product+quantity line within a cart.
type CartItem struct {
	ID        string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CartID    string `json:"cart_id" gorm:"index;type:varchar(36)"`
	ProductID string `json:"product_id" gorm:"index;type:varchar(36)" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
	gorm.Model
}

// CartViewItem is a cart line priced at read time.
type CartViewItem struct {
	ID       string  `json:"id"`
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

// CartView is the priced snapshot of a cart returned to clients and fed
// into checkout. Subtotals use the live product price at read time.
type CartView struct {
	UserID string         `json:"user_id"`
	Items  []CartViewItem `json:"items"`
	Total  float64        `json:"total"`
}
