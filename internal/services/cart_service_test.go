package services_test

import (
	"testing"

	"pasar/internal/models"
	"pasar/internal/repositories"
	"pasar/internal/services"

	"github.com/stretchr/testify/assert"
)

func newCartService() (*services.CartService, *repositories.MockCartRepository, *repositories.MockProductRepository) {
	carts := repositories.NewMockCartRepository()
	products := repositories.NewMockProductRepository()
	return services.NewCartService(carts, products), carts, products
}

func TestCartService_GetCart_LazyCreate(t *testing.T) {
	service, carts, _ := newCartService()

	view, err := service.GetCart("user-1")
	assert.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Zero(t, view.Total)

	// The read created a cart row.
	cart, err := carts.GetByUserID("user-1")
	assert.NoError(t, err)
	assert.Equal(t, "user-1", cart.UserID)
}

func TestCartService_AddToCart_MergesQuantity(t *testing.T) {
	service, _, products := newCartService()
	assert.NoError(t, products.Create(&models.Product{ID: "p1", Name: "Mechanical Keyboard", Price: 75.00, Stock: 25}))

	view, err := service.AddToCart("user-1", "p1", 2)
	assert.NoError(t, err)
	assert.Len(t, view.Items, 1)
	assert.Equal(t, 2, view.Items[0].Quantity)

	// Adding the same product again merges into one line.
	view, err = service.AddToCart("user-1", "p1", 3)
	assert.NoError(t, err)
	assert.Len(t, view.Items, 1)
	assert.Equal(t, 5, view.Items[0].Quantity)
	assert.InDelta(t, 375.00, view.Total, 1e-9)
}

func TestCartService_AddToCart_UnknownProduct(t *testing.T) {
	service, _, _ := newCartService()

	view, err := service.AddToCart("user-1", "ghost", 1)
	assert.Nil(t, view)
	assert.ErrorIs(t, err, models.ErrProductNotFound)
}

func TestCartService_AddToCart_InvalidQuantity(t *testing.T) {
	service, _, _ := newCartService()

	view, err := service.AddToCart("user-1", "p1", 0)
	assert.Nil(t, view)
	assert.ErrorIs(t, err, models.ErrInvalidQuantity)
}

func TestCartService_UpdateCartItem(t *testing.T) {
	service, _, products := newCartService()
	assert.NoError(t, products.Create(&models.Product{ID: "p1", Name: "Wireless Mouse", Price: 25.00, Stock: 50}))

	view, err := service.AddToCart("user-1", "p1", 1)
	assert.NoError(t, err)
	itemID := view.Items[0].ID

	view, err = service.UpdateCartItem("user-1", itemID, 4)
	assert.NoError(t, err)
	assert.Equal(t, 4, view.Items[0].Quantity)
	assert.InDelta(t, 100.00, view.Total, 1e-9)

	// Another user cannot touch the line.
	_, err = service.GetCart("user-2")
	assert.NoError(t, err)
	_, err = service.UpdateCartItem("user-2", itemID, 1)
	assert.ErrorIs(t, err, models.ErrCartItemNotFound)
}

func TestCartService_RemoveAndClear(t *testing.T) {
	service, carts, products := newCartService()
	assert.NoError(t, products.Create(&models.Product{ID: "p1", Name: "Webcam", Price: 40.00, Stock: 10}))
	assert.NoError(t, products.Create(&models.Product{ID: "p2", Name: "Tripod", Price: 15.00, Stock: 10}))

	_, err := service.AddToCart("user-1", "p1", 1)
	assert.NoError(t, err)
	view, err := service.AddToCart("user-1", "p2", 1)
	assert.NoError(t, err)
	assert.Len(t, view.Items, 2)

	view, err = service.RemoveFromCart("user-1", view.Items[0].ID)
	assert.NoError(t, err)
	assert.Len(t, view.Items, 1)

	assert.NoError(t, service.ClearCart("user-1"))
	view, err = service.GetCart("user-1")
	assert.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Zero(t, view.Total)

	// The cart row itself survives a clear.
	cart, err := carts.GetByUserID("user-1")
	assert.NoError(t, err)
	assert.NotEmpty(t, cart.ID)

	// Clearing a user without a cart is a no-op.
	assert.NoError(t, service.ClearCart("user-without-cart"))
}
