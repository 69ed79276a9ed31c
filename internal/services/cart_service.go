package services

import (
	"errors"
	"fmt"

	"pasar/internal/models"
	"pasar/internal/repositories"
)

// CartService handles business logic for shopping carts.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// GetCart returns the priced snapshot of a user's cart. A user without a
// cart gets an empty one created on the spot, so this read has a side
// effect on first access. Subtotals use the live product price.
func (s *CartService) GetCart(userID string) (*models.CartView, error) {
	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		if !errors.Is(err, models.ErrCartNotFound) {
			return nil, err
		}
		cart = &models.Cart{UserID: userID}
		if err := s.cartRepo.Create(cart); err != nil {
			return nil, err
		}
		return &models.CartView{UserID: userID, Items: []models.CartViewItem{}}, nil
	}

	items, err := s.cartRepo.GetItems(cart.ID)
	if err != nil {
		return nil, err
	}

	view := &models.CartView{UserID: userID, Items: make([]models.CartViewItem, 0, len(items))}
	for _, item := range items {
		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		subtotal := product.Price * float64(item.Quantity)
		view.Total += subtotal
		view.Items = append(view.Items, models.CartViewItem{
			ID:       item.ID,
			Product:  *product,
			Quantity: item.Quantity,
			Subtotal: subtotal,
		})
	}
	return view, nil
}

// AddToCart puts a product into the user's cart, merging quantities when
// the product is already present.
func (s *CartService) AddToCart(userID, productID string, quantity int) (*models.CartView, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("add to cart: %w", models.ErrInvalidQuantity)
	}

	// The product must exist before it can be staged.
	if _, err := s.productRepo.GetByID(productID); err != nil {
		return nil, err
	}

	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		if !errors.Is(err, models.ErrCartNotFound) {
			return nil, err
		}
		cart = &models.Cart{UserID: userID}
		if err := s.cartRepo.Create(cart); err != nil {
			return nil, err
		}
	}

	existing, err := s.cartRepo.FindItem(cart.ID, productID)
	switch {
	case err == nil:
		existing.Quantity += quantity
		if err := s.cartRepo.UpdateItem(existing); err != nil {
			return nil, err
		}
	case errors.Is(err, models.ErrCartItemNotFound):
		newItem := &models.CartItem{
			CartID:    cart.ID,
			ProductID: productID,
			Quantity:  quantity,
		}
		if err := s.cartRepo.CreateItem(newItem); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return s.GetCart(userID)
}

// UpdateCartItem sets the quantity of one of the user's cart lines.
func (s *CartService) UpdateCartItem(userID, itemID string, quantity int) (*models.CartView, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("update cart item: %w", models.ErrInvalidQuantity)
	}

	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	item, err := s.cartRepo.GetItem(itemID)
	if err != nil {
		return nil, err
	}
	if item.CartID != cart.ID {
		return nil, fmt.Errorf("cart item with ID %s: %w", itemID, models.ErrCartItemNotFound)
	}

	item.Quantity = quantity
	if err := s.cartRepo.UpdateItem(item); err != nil {
		return nil, err
	}
	return s.GetCart(userID)
}

// RemoveFromCart deletes one of the user's cart lines.
func (s *CartService) RemoveFromCart(userID, itemID string) (*models.CartView, error) {
	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	item, err := s.cartRepo.GetItem(itemID)
	if err != nil {
		return nil, err
	}
	if item.CartID != cart.ID {
		return nil, fmt.Errorf("cart item with ID %s: %w", itemID, models.ErrCartItemNotFound)
	}

	if err := s.cartRepo.DeleteItem(itemID); err != nil {
		return nil, err
	}
	return s.GetCart(userID)
}

// ClearCart removes every line from the user's cart. A user without a
// cart is already clear.
func (s *CartService) ClearCart(userID string) error {
	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, models.ErrCartNotFound) {
			return nil
		}
		return err
	}
	return s.cartRepo.ClearItems(cart.ID)
}
