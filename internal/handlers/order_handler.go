package handlers

import (
	"errors"
	"log"

	"pasar/internal/middleware"
	"pasar/internal/models"
	"pasar/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for checkout and orders.
type OrderHandler struct {
	checkout *services.CheckoutService
	orders   *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(checkout *services.CheckoutService, orders *services.OrderService) *OrderHandler {
	return &OrderHandler{
		checkout: checkout,
		orders:   orders,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the order routes with the Fiber app. The
// listing and status routes are layered behind the admin/seller guard by
// the caller.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Post("/checkout", h.HandleCheckout)
	orderRoutes.Get("/my", h.HandleGetMyOrders)

	// /:id must be registered before the staff group: its guard is a
	// prefix-wide middleware, and per-order reads are authorized per
	// requester inside the service, not by role. Registered after /my so
	// the param route does not shadow it.
	orderRoutes.Get("/:id", h.HandleGetOrderByID)

	staff := orderRoutes.Group("", middleware.RoleRequired(models.RoleAdmin, models.RoleSeller))
	staff.Get("/", h.HandleGetAllOrders)
	staff.Patch("/:id/status", h.HandleUpdateOrderStatus)
}

// HandleCheckout converts the authenticated user's cart into an order.
func (h *OrderHandler) HandleCheckout(c *fiber.Ctx) error {
	var shipping models.ShippingDetails
	if err := c.BodyParser(&shipping); err != nil {
		log.Printf("Error parsing checkout request body: %v", err)
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.validate.Struct(shipping); err != nil {
		return failValidation(c, err)
	}

	customerID := middleware.UserID(c)
	order, err := h.checkout.Checkout(customerID, shipping)
	if err != nil {
		log.Printf("Checkout failed for user %s: %v", customerID, err)
		// A cart line referencing a vanished product is a conflict with
		// the current catalog, not a routing miss.
		if errors.Is(err, models.ErrProductNotFound) {
			return fail(c, fiber.StatusConflict, err.Error())
		}
		return failWith(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Order placed successfully from cart",
		"data":    order,
	})
}

// HandleGetMyOrders retrieves the authenticated user's orders.
func (h *OrderHandler) HandleGetMyOrders(c *fiber.Ctx) error {
	orders, err := h.orders.GetUserOrders(middleware.UserID(c))
	if err != nil {
		log.Printf("Error getting user orders: %v", err)
		return failWith(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    orders,
	})
}

// HandleGetAllOrders retrieves all orders. Admin/seller only.
func (h *OrderHandler) HandleGetAllOrders(c *fiber.Ctx) error {
	orders, err := h.orders.GetAllOrders()
	if err != nil {
		log.Printf("Error getting all orders: %v", err)
		return failWith(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    orders,
	})
}

// HandleGetOrderByID retrieves a single order with its items. Customers
// may only read their own orders.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	orderID := c.Params("id")
	order, err := h.orders.GetOrderByID(orderID, middleware.UserID(c), middleware.Roles(c))
	if err != nil {
		log.Printf("Error getting order by ID %s: %v", orderID, err)
		return failWith(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    order,
	})
}

// UpdateStatusRequest represents the request body for a status change.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// HandleUpdateOrderStatus updates the status of an existing order.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	orderID := c.Params("id")
	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing request body for status update: %v", err)
		return fail(c, fiber.StatusBadRequest, "Invalid request body for status update")
	}

	if err := h.validate.Struct(req); err != nil {
		return failValidation(c, err)
	}

	if err := h.orders.UpdateOrderStatus(orderID, req.Status); err != nil {
		log.Printf("Error updating order status for order %s: %v", orderID, err)
		return failWith(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Order status updated successfully",
	})
}
