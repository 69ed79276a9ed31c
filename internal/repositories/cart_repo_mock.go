package repositories

import (
	"fmt"
	"sort"
	"sync"

	"pasar/internal/models"

	"github.com/google/uuid"
)

// MockCartRepository is an in-memory implementation of CartRepository.
type MockCartRepository struct {
	carts map[string]models.Cart     // keyed by cart ID
	items map[string]models.CartItem // keyed by item ID
	mu    sync.RWMutex
}

// NewMockCartRepository creates a new instance of MockCartRepository.
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{
		carts: make(map[string]models.Cart),
		items: make(map[string]models.CartItem),
	}
}

// GetByUserID returns the cart owned by the given user.
func (r *MockCartRepository) GetByUserID(userID string) (*models.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, cart := range r.carts {
		if cart.UserID == userID {
			c := cart
			return &c, nil
		}
	}
	return nil, fmt.Errorf("cart for user %s: %w", userID, models.ErrCartNotFound)
}

// Create adds a new cart.
func (r *MockCartRepository) Create(cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cart.ID == "" {
		cart.ID = uuid.New().String()
	}
	r.carts[cart.ID] = *cart
	return nil
}

// GetItems returns all line items of a cart in insertion order.
func (r *MockCartRepository) GetItems(cartID string) ([]models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var items []models.CartItem
	for _, item := range r.items {
		if item.CartID == cartID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

// GetItem returns a line item by its ID.
func (r *MockCartRepository) GetItem(itemID string) (*models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[itemID]
	if !ok {
		return nil, fmt.Errorf("cart item with ID %s: %w", itemID, models.ErrCartItemNotFound)
	}
	return &item, nil
}

// FindItem returns the line for a product within a cart, if present.
func (r *MockCartRepository) FindItem(cartID, productID string) (*models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.CartID == cartID && item.ProductID == productID {
			i := item
			return &i, nil
		}
	}
	return nil, fmt.Errorf("product %s in cart %s: %w", productID, cartID, models.ErrCartItemNotFound)
}

// CreateItem adds a new line item.
func (r *MockCartRepository) CreateItem(item *models.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	r.items[item.ID] = *item
	return nil
}

// UpdateItem modifies an existing line item.
func (r *MockCartRepository) UpdateItem(item *models.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		return fmt.Errorf("cart item with ID %s: %w", item.ID, models.ErrCartItemNotFound)
	}
	r.items[item.ID] = *item
	return nil
}

// DeleteItem removes a line item by its ID.
func (r *MockCartRepository) DeleteItem(itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[itemID]; !ok {
		return fmt.Errorf("cart item with ID %s: %w", itemID, models.ErrCartItemNotFound)
	}
	delete(r.items, itemID)
	return nil
}

// ClearItems removes every line item of a cart, keeping the cart itself.
func (r *MockCartRepository) ClearItems(cartID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, item := range r.items {
		if item.CartID == cartID {
			delete(r.items, id)
		}
	}
	return nil
}
