package services

import (
	"pasar/internal/models"
	"pasar/internal/repositories"
)

// UserService handles administrative user management.
type UserService struct {
	userRepo repositories.UserRepository
	roleRepo repositories.RoleRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository, roleRepo repositories.RoleRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		roleRepo: roleRepo,
	}
}

// UserWithRoles is a user together with the roles they hold.
type UserWithRoles struct {
	models.User
	Roles []models.Role `json:"roles"`
}

// GetAllUsers retrieves a page of users with their roles attached. The
// second return value is the total match count before paging.
func (s *UserService) GetAllUsers(page, limit int, search string) ([]UserWithRoles, int64, error) {
	users, total, err := s.userRepo.GetAll(page, limit, search)
	if err != nil {
		return nil, 0, err
	}

	result := make([]UserWithRoles, 0, len(users))
	for _, user := range users {
		roles, err := s.roleRepo.GetUserRoles(user.ID)
		if err != nil {
			return nil, 0, err
		}
		user.Password = ""
		result = append(result, UserWithRoles{User: user, Roles: roles})
	}
	return result, total, nil
}

// GetUserByID retrieves a single user with their roles.
func (s *UserService) GetUserByID(id string) (*UserWithRoles, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	roles, err := s.roleRepo.GetUserRoles(user.ID)
	if err != nil {
		return nil, err
	}
	user.Password = ""
	return &UserWithRoles{User: *user, Roles: roles}, nil
}

// UpdateUser updates a user's profile fields. The password is managed by
// AuthService and left untouched here.
func (s *UserService) UpdateUser(user *models.User) error {
	existing, err := s.userRepo.GetByID(user.ID)
	if err != nil {
		return err
	}
	user.Password = existing.Password
	return s.userRepo.Update(user)
}

// DeleteUser deletes a user by their ID.
func (s *UserService) DeleteUser(id string) error {
	return s.userRepo.Delete(id)
}
