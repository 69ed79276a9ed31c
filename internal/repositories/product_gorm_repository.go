package repositories

import (
	"errors"
	"fmt"
	"pasar/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves products matching the filter, newest first.
func (r *GORMProductRepository) GetAll(filter models.ProductFilter) ([]models.Product, error) {
	query := r.db.Model(&models.Product{})

	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.Available != nil {
		query = query.Where("available = ?", *filter.Available)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", like, like)
	}

	var products []models.Product
	if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product with ID %s: %w", id, models.ErrProductNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	product.Available = product.Stock > 0
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update updates an existing product in the database.
func (r *GORMProductRepository) Update(product *models.Product) error {
	product.Available = product.Stock > 0
	res := r.db.Save(product) // Save will update all fields, including zero values
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// GORM's Save doesn't return ErrRecordNotFound if no rows were
		// affected for an update, so we check RowsAffected.
		return fmt.Errorf("product with ID %s: %w", product.ID, models.ErrProductNotFound)
	}
	return nil
}

// Delete deletes a product by its ID from the database.
func (r *GORMProductRepository) Delete(id string) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %s: %w", id, models.ErrProductNotFound)
	}
	return nil
}

// AdjustStock applies a conditional stock change as a single UPDATE so the
// insufficiency check and the write cannot race with a concurrent
// checkout. Availability is re-derived in the same statement.
func (r *GORMProductRepository) AdjustStock(id string, quantity int, direction models.StockDirection) (*models.Product, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("adjust stock for product %s: %w", id, models.ErrInvalidQuantity)
	}

	var res *gorm.DB
	switch direction {
	case models.StockDecrement:
		res = r.db.Model(&models.Product{}).
			Where("id = ? AND stock >= ?", id, quantity).
			Updates(map[string]interface{}{
				"stock":     gorm.Expr("stock - ?", quantity),
				"available": gorm.Expr("stock - ? > 0", quantity),
			})
	case models.StockIncrement:
		res = r.db.Model(&models.Product{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"stock":     gorm.Expr("stock + ?", quantity),
				"available": gorm.Expr("stock + ? > 0", quantity),
			})
	default:
		return nil, fmt.Errorf("unknown stock direction: %s", direction)
	}

	if res.Error != nil {
		return nil, fmt.Errorf("failed to adjust stock for product %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		// Either the product is missing or the guard rejected the
		// decrement. Probe to tell the two apart.
		var exists int64
		if err := r.db.Model(&models.Product{}).Where("id = ?", id).Count(&exists).Error; err != nil {
			return nil, fmt.Errorf("failed to probe product %s: %w", id, err)
		}
		if exists == 0 {
			return nil, fmt.Errorf("product with ID %s: %w", id, models.ErrProductNotFound)
		}
		return nil, fmt.Errorf("product with ID %s: %w", id, models.ErrInsufficientStock)
	}

	return r.GetByID(id)
}
