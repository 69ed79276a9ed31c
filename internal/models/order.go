package models

import "gorm.io/gorm"

// Order statuses. Status transitions happen only via explicit
// administrative update.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

var validStatuses = map[string]bool{
	StatusPending:    true,
	StatusProcessing: true,
	StatusShipped:    true,
	StatusDelivered:  true,
	StatusCancelled:  true,
}

// IsValidStatus reports whether s is one of the five recognized order
// statuses.
func IsValidStatus(s string) bool {
	return validStatuses[s]
}

// Order is a durable record of a completed checkout. CustomerName, Phone
// and Address are a shipping snapshot, independent of the live user
// profile. Total is computed server-side, never client-supplied.
type Order struct {
	ID           string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CustomerID   string  `json:"customer_id" gorm:"index;type:varchar(36)"`
	CustomerName string  `json:"customer_name" gorm:"type:varchar(200)"`
	Phone        string  `json:"phone" gorm:"type:varchar(30)"`
	Address      string  `json:"address"`
	Total        float64 `json:"total"`
	Status       string  `json:"status" gorm:"type:varchar(20);default:pending"`
	gorm.Model           // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt

	// Items live in their own table and are attached by the query layer;
	// checkout persists the header and the items in separate steps.
	Items []OrderItem `json:"items" gorm:"-"`
}

// OrderItem is one line of an order. Subtotal is an immutable snapshot of
// quantity times the unit price at reservation time; later price changes
// must not affect it.
type OrderItem struct {
	ID        string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID   string  `json:"order_id" gorm:"index;type:varchar(36)"`
	ProductID string  `json:"product_id" gorm:"index;type:varchar(36)"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
	gorm.Model
}

// ShippingDetails carries the free-text shipping fields of a checkout
// request.
type ShippingDetails struct {
	CustomerName string `json:"customer_name" validate:"required,min=1,max=200"`
	Phone        string `json:"phone" validate:"required,min=3,max=30"`
	Address      string `json:"address" validate:"required,min=1"`
}
