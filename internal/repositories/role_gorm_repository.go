package repositories

import (
	"errors"
	"fmt"
	"pasar/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMRoleRepository is a GORM implementation of RoleRepository.
type GORMRoleRepository struct {
	db *gorm.DB
}

// NewGORMRoleRepository creates a new instance of GORMRoleRepository.
func NewGORMRoleRepository(db *gorm.DB) *GORMRoleRepository {
	return &GORMRoleRepository{
		db: db,
	}
}

// Create creates a new role.
func (r *GORMRoleRepository) Create(role *models.Role) error {
	if role.ID == "" {
		role.ID = uuid.New().String()
	}
	if err := r.db.Create(role).Error; err != nil {
		return fmt.Errorf("failed to create role: %w", err)
	}
	return nil
}

// GetAll retrieves all roles, newest first.
func (r *GORMRoleRepository) GetAll() ([]models.Role, error) {
	var roles []models.Role
	if err := r.db.Order("created_at DESC").Find(&roles).Error; err != nil {
		return nil, fmt.Errorf("failed to get roles: %w", err)
	}
	return roles, nil
}

// GetByID retrieves a role by its ID.
func (r *GORMRoleRepository) GetByID(id string) (*models.Role, error) {
	var role models.Role
	if err := r.db.First(&role, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("role with ID %s: %w", id, models.ErrRoleNotFound)
		}
		return nil, fmt.Errorf("failed to get role by ID %s: %w", id, err)
	}
	return &role, nil
}

// GetByName retrieves a role by its unique name.
func (r *GORMRoleRepository) GetByName(name string) (*models.Role, error) {
	var role models.Role
	if err := r.db.First(&role, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("role %s: %w", name, models.ErrRoleNotFound)
		}
		return nil, fmt.Errorf("failed to get role %s: %w", name, err)
	}
	return &role, nil
}

// Update saves an existing role.
func (r *GORMRoleRepository) Update(role *models.Role) error {
	res := r.db.Save(role)
	if res.Error != nil {
		return fmt.Errorf("failed to update role: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("role with ID %s: %w", role.ID, models.ErrRoleNotFound)
	}
	return nil
}

// Delete deletes a role and its assignments.
func (r *GORMRoleRepository) Delete(id string) error {
	res := r.db.Delete(&models.Role{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete role: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("role with ID %s: %w", id, models.ErrRoleNotFound)
	}
	if err := r.db.Delete(&models.UserRole{}, "role_id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete assignments for role %s: %w", id, err)
	}
	return nil
}

// Assign records a role assignment for a user.
func (r *GORMRoleRepository) Assign(assignment *models.UserRole) error {
	if assignment.ID == "" {
		assignment.ID = uuid.New().String()
	}
	if err := r.db.Create(assignment).Error; err != nil {
		return fmt.Errorf("failed to assign role: %w", err)
	}
	return nil
}

// Unassign removes a role assignment from a user.
func (r *GORMRoleRepository) Unassign(userID, roleID string) error {
	res := r.db.Delete(&models.UserRole{}, "user_id = ? AND role_id = ?", userID, roleID)
	if res.Error != nil {
		return fmt.Errorf("failed to unassign role: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("assignment of role %s to user %s: %w", roleID, userID, models.ErrRoleNotFound)
	}
	return nil
}

// GetAssignment retrieves an existing user-role assignment.
func (r *GORMRoleRepository) GetAssignment(userID, roleID string) (*models.UserRole, error) {
	var assignment models.UserRole
	if err := r.db.First(&assignment, "user_id = ? AND role_id = ?", userID, roleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("assignment of role %s to user %s: %w", roleID, userID, models.ErrRoleNotFound)
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	return &assignment, nil
}

// GetUserRoles retrieves all roles held by a user.
func (r *GORMRoleRepository) GetUserRoles(userID string) ([]models.Role, error) {
	var roles []models.Role
	err := r.db.
		Joins("JOIN user_roles ON user_roles.role_id = roles.id AND user_roles.deleted_at IS NULL").
		Where("user_roles.user_id = ?", userID).
		Find(&roles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get roles for user %s: %w", userID, err)
	}
	return roles, nil
}
