package services

import (
	"errors"
	"fmt"

	"pasar/internal/models"
	"pasar/internal/repositories"
)

// RoleService handles role CRUD and role-to-user assignments.
type RoleService struct {
	roleRepo repositories.RoleRepository
	userRepo repositories.UserRepository
}

// NewRoleService creates a new RoleService.
func NewRoleService(roleRepo repositories.RoleRepository, userRepo repositories.UserRepository) *RoleService {
	return &RoleService{
		roleRepo: roleRepo,
		userRepo: userRepo,
	}
}

// CreateRole creates a role with a unique name.
func (s *RoleService) CreateRole(role *models.Role) error {
	if existing, err := s.roleRepo.GetByName(role.Name); err == nil && existing != nil {
		return fmt.Errorf("role with name '%s': %w", role.Name, models.ErrDuplicate)
	}
	return s.roleRepo.Create(role)
}

// GetAllRoles retrieves all roles.
func (s *RoleService) GetAllRoles() ([]models.Role, error) {
	return s.roleRepo.GetAll()
}

// GetRoleByID retrieves a single role by its ID.
func (s *RoleService) GetRoleByID(id string) (*models.Role, error) {
	return s.roleRepo.GetByID(id)
}

// UpdateRole updates an existing role, keeping names unique.
func (s *RoleService) UpdateRole(role *models.Role) error {
	if existing, err := s.roleRepo.GetByName(role.Name); err == nil && existing != nil && existing.ID != role.ID {
		return fmt.Errorf("role with name '%s': %w", role.Name, models.ErrDuplicate)
	}
	return s.roleRepo.Update(role)
}

// DeleteRole deletes a role and its assignments.
func (s *RoleService) DeleteRole(id string) error {
	return s.roleRepo.Delete(id)
}

// AssignRole gives a role to a user. Both must exist and the assignment
// must not already be present.
func (s *RoleService) AssignRole(userID, roleID, assignedBy string) (*models.UserRole, error) {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		return nil, err
	}
	if _, err := s.roleRepo.GetByID(roleID); err != nil {
		return nil, err
	}

	if existing, err := s.roleRepo.GetAssignment(userID, roleID); err == nil && existing != nil {
		return nil, fmt.Errorf("role already assigned to this user: %w", models.ErrDuplicate)
	} else if err != nil && !errors.Is(err, models.ErrRoleNotFound) {
		return nil, err
	}

	assignment := &models.UserRole{
		UserID:     userID,
		RoleID:     roleID,
		AssignedBy: assignedBy,
	}
	if err := s.roleRepo.Assign(assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

// RemoveRole takes a role away from a user.
func (s *RoleService) RemoveRole(userID, roleID string) error {
	return s.roleRepo.Unassign(userID, roleID)
}
