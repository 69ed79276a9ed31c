package repositories

import "pasar/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	GetAll(page, limit int, search string) ([]models.User, int64, error)
	Update(user *models.User) error
	Delete(id string) error
}
