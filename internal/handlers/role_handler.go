package handlers

import (
	"log"

	"pasar/internal/middleware"
	"pasar/internal/models"
	"pasar/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// RoleHandler handles administrative HTTP requests for roles and role
// assignments.
type RoleHandler struct {
	service  *services.RoleService
	validate *validator.Validate
}

// NewRoleHandler creates a new RoleHandler.
func NewRoleHandler(service *services.RoleService) *RoleHandler {
	return &RoleHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the role routes, all admin only.
func (h *RoleHandler) RegisterRoutes(router fiber.Router) {
	roleRoutes := router.Group("/roles", middleware.RoleRequired(models.RoleAdmin))
	roleRoutes.Get("/", h.HandleGetRoles)
	roleRoutes.Get("/:id", h.HandleGetRoleByID)
	roleRoutes.Post("/", h.HandleCreateRole)
	roleRoutes.Put("/:id", h.HandleUpdateRole)
	roleRoutes.Delete("/:id", h.HandleDeleteRole)

	assignRoutes := router.Group("/user-roles", middleware.RoleRequired(models.RoleAdmin))
	assignRoutes.Post("/", h.HandleAssignRole)
	assignRoutes.Delete("/", h.HandleRemoveRole)
}

// HandleGetRoles lists all roles.
func (h *RoleHandler) HandleGetRoles(c *fiber.Ctx) error {
	roles, err := h.service.GetAllRoles()
	if err != nil {
		log.Printf("Error getting roles: %v", err)
		return failWith(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    roles,
	})
}

// HandleGetRoleByID retrieves a single role by its ID.
func (h *RoleHandler) HandleGetRoleByID(c *fiber.Ctx) error {
	roleID := c.Params("id")
	role, err := h.service.GetRoleByID(roleID)
	if err != nil {
		log.Printf("Error getting role by ID %s: %v", roleID, err)
		return failWith(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    role,
	})
}

// RoleRequest represents the request body for creating or updating a role.
type RoleRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=50"`
	Description string `json:"description" validate:"omitempty,max=255"`
}

// HandleCreateRole creates a new role.
func (h *RoleHandler) HandleCreateRole(c *fiber.Ctx) error {
	var req RoleRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create-role request body: %v", err)
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.validate.Struct(req); err != nil {
		return failValidation(c, err)
	}

	role := models.Role{Name: req.Name, Description: req.Description}
	if err := h.service.CreateRole(&role); err != nil {
		log.Printf("Error creating role: %v", err)
		return failWith(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Role created successfully",
		"data":    role,
	})
}

// HandleUpdateRole updates an existing role.
func (h *RoleHandler) HandleUpdateRole(c *fiber.Ctx) error {
	roleID := c.Params("id")
	existing, err := h.service.GetRoleByID(roleID)
	if err != nil {
		return failWith(c, err)
	}

	var req RoleRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update-role request body: %v", err)
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.validate.Struct(req); err != nil {
		return failValidation(c, err)
	}

	existing.Name = req.Name
	existing.Description = req.Description
	if err := h.service.UpdateRole(existing); err != nil {
		log.Printf("Error updating role %s: %v", roleID, err)
		return failWith(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Role updated successfully",
		"data":    existing,
	})
}

// HandleDeleteRole deletes a role and its assignments.
func (h *RoleHandler) HandleDeleteRole(c *fiber.Ctx) error {
	roleID := c.Params("id")
	if err := h.service.DeleteRole(roleID); err != nil {
		log.Printf("Error deleting role %s: %v", roleID, err)
		return failWith(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Role deleted successfully",
	})
}

// AssignRoleRequest represents the request body for role assignment and
// removal.
type AssignRoleRequest struct {
	UserID string `json:"user_id" validate:"required"`
	RoleID string `json:"role_id" validate:"required"`
}

// HandleAssignRole gives a role to a user.
func (h *RoleHandler) HandleAssignRole(c *fiber.Ctx) error {
	var req AssignRoleRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing assign-role request body: %v", err)
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.validate.Struct(req); err != nil {
		return failValidation(c, err)
	}

	assignment, err := h.service.AssignRole(req.UserID, req.RoleID, middleware.UserID(c))
	if err != nil {
		log.Printf("Error assigning role %s to user %s: %v", req.RoleID, req.UserID, err)
		return failWith(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Role assigned to user successfully",
		"data":    assignment,
	})
}

// HandleRemoveRole takes a role away from a user.
func (h *RoleHandler) HandleRemoveRole(c *fiber.Ctx) error {
	var req AssignRoleRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing remove-role request body: %v", err)
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.validate.Struct(req); err != nil {
		return failValidation(c, err)
	}

	if err := h.service.RemoveRole(req.UserID, req.RoleID); err != nil {
		log.Printf("Error removing role %s from user %s: %v", req.RoleID, req.UserID, err)
		return failWith(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Role removed from user successfully",
	})
}
