package models

import "gorm.io/gorm"

// User represents a registered user of the marketplace.
type User struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	FirstName  string `json:"first_name" gorm:"type:varchar(100)" validate:"required,min=1,max=100"`
	LastName   string `json:"last_name" gorm:"type:varchar(100)" validate:"required,min=1,max=100"`
	Email      string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Phone      string `json:"phone" gorm:"type:varchar(30)" validate:"omitempty,max=30"`
	Age        int    `json:"age" validate:"omitempty,gte=0,lte=150"`
	Password   string `gorm:"type:varchar(255)" validate:"required,min=6"` // No json tag for security
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// Role is a named permission group (admin, seller, customer).
type Role struct {
	ID          string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string `json:"name" gorm:"uniqueIndex;type:varchar(50)" validate:"required,min=2,max=50"`
	Description string `json:"description" validate:"omitempty,max=255"`
	gorm.Model
}

// UserRole assigns a Role to a User. A user may hold several roles.
type UserRole struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID     string `json:"user_id" gorm:"index;type:varchar(36)"`
	RoleID     string `json:"role_id" gorm:"index;type:varchar(36)"`
	AssignedBy string `json:"assigned_by,omitempty" gorm:"type:varchar(36)"`
	gorm.Model
}

// Seeded role names.
const (
	RoleAdmin    = "admin"
	RoleSeller   = "seller"
	RoleCustomer = "customer"
)

// HasPrivilegedRole reports whether any of the given role names grants
// access to other users' orders.
func HasPrivilegedRole(roles []string) bool {
	for _, r := range roles {
		if r == RoleAdmin || r == RoleSeller {
			return true
		}
	}
	return false
}
