package domain

import "time"

// Role labels what a directory user is allowed to do. The service does not
// enforce permissions itself; roles are carried for the UI.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleTechnician Role = "technician"
	RoleUser       Role = "user"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTechnician, RoleUser:
		return true
	}
	return false
}

// UserProfile extends a platform user with a role. At most one per user.
type UserProfile struct {
	UserID    int64
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}
