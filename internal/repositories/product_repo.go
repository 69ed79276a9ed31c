package repositories

import (
	"pasar/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll(filter models.ProductFilter) ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error

	// AdjustStock atomically changes a product's stock by quantity in the
	// given direction and returns the post-adjustment snapshot. A
	// decrement that exceeds current stock fails with
	// models.ErrInsufficientStock and leaves the row untouched.
	AdjustStock(id string, quantity int, direction models.StockDirection) (*models.Product, error)
}
