package entity

import "time"

const (
	RoleAdmin = "ADMIN"
	RoleStaff = "STAFF"
)

type User struct {
	ID       string `gorm:"primaryKey;size:36" json:"id"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Name     string `json:"name"`
	Password string `json:"-"`
	Role     string `gorm:"not null;default:STAFF" json:"role"`

	// nil only for platform-level admins not tied to one restaurant
	RestaurantID *string `gorm:"index;size:36" json:"restaurantId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsAdmin reports whether the user bypasses restaurant scoping.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
