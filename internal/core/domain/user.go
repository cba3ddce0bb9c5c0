package domain

import "time"

// Role is the sole privilege signal carried by a user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the assignable roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User models a registered account.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserStats counts what a user has published.
type UserStats struct {
	Videos   int64 `json:"videos"`
	Comments int64 `json:"comments"`
}

// UserProfile is the public view of a user.
type UserProfile struct {
	*User
	Stats UserStats `json:"stats"`
}

// UserUpdate is a partial update: a nil field is left untouched.
type UserUpdate struct {
	Username *string
	Email    *string
}

// Empty reports whether the update carries no field at all.
func (u UserUpdate) Empty() bool {
	return u.Username == nil && u.Email == nil
}
