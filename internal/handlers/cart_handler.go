package handlers

import (
	"log"

	"pasar/internal/middleware"
	"pasar/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the authenticated user's cart.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/items", h.HandleAddToCart)
	cartRoutes.Put("/items/:id", h.HandleUpdateItem)
	cartRoutes.Delete("/items/:id", h.HandleRemoveItem)
	cartRoutes.Delete("/", h.HandleClearCart)
}

// HandleGetCart returns the user's priced cart view, creating an empty
// cart on first access.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	view, err := h.service.GetCart(middleware.UserID(c))
	if err != nil {
		log.Printf("Error getting cart: %v", err)
		return failWith(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    view,
	})
}

// AddToCartRequest represents the request body for adding a product.
type AddToCartRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
}

// HandleAddToCart adds a product to the cart, merging quantities for an
// existing line.
func (h *CartHandler) HandleAddToCart(c *fiber.Ctx) error {
	var req AddToCartRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add-to-cart request body: %v", err)
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.validate.Struct(req); err != nil {
		return failValidation(c, err)
	}

	view, err := h.service.AddToCart(middleware.UserID(c), req.ProductID, req.Quantity)
	if err != nil {
		log.Printf("Error adding to cart: %v", err)
		return failWith(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Item added to cart successfully",
		"data":    view,
	})
}

// UpdateCartItemRequest represents the request body for a quantity change.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,gte=1"`
}

// HandleUpdateItem changes the quantity of one cart line.
func (h *CartHandler) HandleUpdateItem(c *fiber.Ctx) error {
	var req UpdateCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update-cart-item request body: %v", err)
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.validate.Struct(req); err != nil {
		return failValidation(c, err)
	}

	view, err := h.service.UpdateCartItem(middleware.UserID(c), c.Params("id"), req.Quantity)
	if err != nil {
		log.Printf("Error updating cart item: %v", err)
		return failWith(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Cart item updated successfully",
		"data":    view,
	})
}

// HandleRemoveItem deletes one cart line.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	view, err := h.service.RemoveFromCart(middleware.UserID(c), c.Params("id"))
	if err != nil {
		log.Printf("Error removing cart item: %v", err)
		return failWith(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Item removed from cart",
		"data":    view,
	})
}

// HandleClearCart removes every line from the user's cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	if err := h.service.ClearCart(middleware.UserID(c)); err != nil {
		log.Printf("Error clearing cart: %v", err)
		return failWith(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Cart cleared successfully",
	})
}
