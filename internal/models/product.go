package models

import "gorm.io/gorm"

// Product represents an item for sale. Available is derived from Stock at
// write time; Stock never goes negative.
type Product struct {
	ID          string   `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	OwnerID     string   `json:"owner_id" gorm:"index;type:varchar(36)" validate:"required"`
	CategoryID  string   `json:"category_id" gorm:"index;type:varchar(36)" validate:"required"`
	Name        string   `json:"name" validate:"required,min=3,max=100"`
	Description string   `json:"description" validate:"omitempty,max=500"`
	Price       float64  `json:"price" validate:"gte=0"`
	Stock       int      `json:"stock" validate:"gte=0"`
	Available   bool     `json:"available"`
	Images      []string `json:"images" gorm:"serializer:json"`
	gorm.Model           // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// Category groups products.
type Category struct {
	ID          string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string `json:"name" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"required,max=500"`
	gorm.Model
}

// StockDirection selects the sign of a stock adjustment.
type StockDirection string

const (
	StockIncrement StockDirection = "increment"
	StockDecrement StockDirection = "decrement"
)

// ProductFilter narrows product listings.
type ProductFilter struct {
	CategoryID string
	MinPrice   *float64
	MaxPrice   *float64
	Available  *bool
	Search     string
}
