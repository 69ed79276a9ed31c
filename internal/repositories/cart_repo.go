package repositories

import "pasar/internal/models"

// CartRepository defines the interface for cart data access. Carts are
// created lazily; ClearItems empties a cart without deleting it.
type CartRepository interface {
	GetByUserID(userID string) (*models.Cart, error)
	Create(cart *models.Cart) error

	GetItems(cartID string) ([]models.CartItem, error)
	GetItem(itemID string) (*models.CartItem, error)
	FindItem(cartID, productID string) (*models.CartItem, error)
	CreateItem(item *models.CartItem) error
	UpdateItem(item *models.CartItem) error
	DeleteItem(itemID string) error
	ClearItems(cartID string) error
}
