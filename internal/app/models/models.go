package models

// RoleType defines the user role type
type RoleType string

const (
	RoleAdmin   RoleType = "ADMIN"
	RoleMentor  RoleType = "MENTOR"
	RoleStudent RoleType = "STUDENT"
)

// Valid reports whether r is one of the known roles
func (r RoleType) Valid() bool {
	switch r {
	case RoleAdmin, RoleMentor, RoleStudent:
		return true
	}
	return false
}
