package repositories

import (
	"pasar/internal/models"
)

// OrderRepository defines the interface for order data access. The header
// and its line items are persisted in separate steps: Create first to
// obtain the order ID, CreateItems for the bulk insert, UpdateTotal to
// back-fill the computed sum.
type OrderRepository interface {
	Create(order *models.Order) error
	CreateItems(items []models.OrderItem) error
	UpdateTotal(id string, total float64) error

	GetByID(id string) (*models.Order, error)
	GetItems(orderID string) ([]models.OrderItem, error)
	GetByCustomer(customerID string) ([]models.Order, error)
	GetAll() ([]models.Order, error)
	UpdateStatus(id string, status string) error
}
