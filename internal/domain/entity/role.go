package entity

// Role represents the type of role an account can have in the system.
type Role string

const (
	RoleGuest   Role = "guest"
	RoleStudent Role = "student"
	RoleTutor   Role = "tutor"
	RoleAdmin   Role = "admin"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleGuest, RoleStudent, RoleTutor, RoleAdmin:
		return true
	default:
		return false
	}
}

// RoleOrDefault returns r when valid and RoleGuest otherwise.
func RoleOrDefault(r Role) Role {
	if r.IsValid() {
		return r
	}

	return RoleGuest
}
