package repositories

import "pasar/internal/models"

// RoleRepository defines the interface for role data access, including
// role-to-user assignments.
type RoleRepository interface {
	Create(role *models.Role) error
	GetAll() ([]models.Role, error)
	GetByID(id string) (*models.Role, error)
	GetByName(name string) (*models.Role, error)
	Update(role *models.Role) error
	Delete(id string) error

	Assign(assignment *models.UserRole) error
	Unassign(userID, roleID string) error
	GetAssignment(userID, roleID string) (*models.UserRole, error)
	GetUserRoles(userID string) ([]models.Role, error)
}
