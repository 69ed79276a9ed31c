package handlers

import (
	"log"
	"strconv"

	"pasar/internal/middleware"
	"pasar/internal/models"
	"pasar/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes with the Fiber app. Writes
// are restricted to admins and sellers.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)

	staff := productRoutes.Group("", middleware.RoleRequired(models.RoleAdmin, models.RoleSeller))
	staff.Post("/", h.HandleCreateProduct)
	staff.Put("/:id", h.HandleUpdateProduct)
	staff.Delete("/:id", h.HandleDeleteProduct)
	staff.Patch("/:id/stock", h.HandleAdjustStock)
}

// HandleGetProducts lists products, filtered by query parameters:
// category, min_price, max_price, available, search.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	var filter models.ProductFilter
	filter.CategoryID = c.Query("category")
	filter.Search = c.Query("search")

	if v := c.Query("min_price"); v != "" {
		min, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "min_price must be a number")
		}
		filter.MinPrice = &min
	}
	if v := c.Query("max_price"); v != "" {
		max, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "max_price must be a number")
		}
		filter.MaxPrice = &max
	}
	if v := c.Query("available"); v != "" {
		available := v == "true"
		filter.Available = &available
	}

	products, err := h.service.GetAllProducts(filter)
	if err != nil {
		log.Printf("Error getting products: %v", err)
		return failWith(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    products,
	})
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	productID := c.Params("id")
	product, err := h.service.GetProductByID(productID)
	if err != nil {
		log.Printf("Error getting product by ID %s: %v", productID, err)
		return failWith(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    product,
	})
}

// ProductRequest represents the request body for creating or updating a
// product.
type ProductRequest struct {
	CategoryID  string   `json:"category_id" validate:"required"`
	Name        string   `json:"name" validate:"required,min=3,max=100"`
	Description string   `json:"description" validate:"omitempty,max=500"`
	Price       float64  `json:"price" validate:"gte=0"`
	Stock       int      `json:"stock" validate:"gte=0"`
	Images      []string `json:"images"`
}

// HandleCreateProduct creates a new product owned by the requester.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create-product request body: %v", err)
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.validate.Struct(req); err != nil {
		return failValidation(c, err)
	}

	product := models.Product{
		OwnerID:     middleware.UserID(c),
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Images:      req.Images,
	}
	if err := h.service.CreateProduct(&product); err != nil {
		log.Printf("Error creating product: %v", err)
		return failWith(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Product created successfully",
		"data":    product,
	})
}

// HandleUpdateProduct updates an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	existing, err := h.service.GetProductByID(productID)
	if err != nil {
		return failWith(c, err)
	}

	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update-product request body: %v", err)
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.validate.Struct(req); err != nil {
		return failValidation(c, err)
	}

	existing.CategoryID = req.CategoryID
	existing.Name = req.Name
	existing.Description = req.Description
	existing.Price = req.Price
	existing.Stock = req.Stock
	existing.Images = req.Images

	if err := h.service.UpdateProduct(existing); err != nil {
		log.Printf("Error updating product %s: %v", productID, err)
		return failWith(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product updated successfully",
		"data":    existing,
	})
}

// HandleDeleteProduct deletes a product by its ID.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	if err := h.service.DeleteProduct(productID); err != nil {
		log.Printf("Error deleting product %s: %v", productID, err)
		return failWith(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product deleted successfully",
	})
}

// AdjustStockRequest represents the request body for a stock adjustment.
type AdjustStockRequest struct {
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	Direction string `json:"direction" validate:"required,oneof=increment decrement"`
}

// HandleAdjustStock applies the atomic stock primitive for restocks and
// manual corrections.
func (h *ProductHandler) HandleAdjustStock(c *fiber.Ctx) error {
	productID := c.Params("id")
	var req AdjustStockRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing adjust-stock request body: %v", err)
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.validate.Struct(req); err != nil {
		return failValidation(c, err)
	}

	product, err := h.service.AdjustStock(productID, req.Quantity, models.StockDirection(req.Direction))
	if err != nil {
		log.Printf("Error adjusting stock for product %s: %v", productID, err)
		return failWith(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Stock adjusted successfully",
		"data":    product,
	})
}
