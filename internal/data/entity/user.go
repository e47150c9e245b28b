package entity

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleVendor   UserRole = "vendor"
	RoleAdmin    UserRole = "admin"
)

// SignupRole maps a self-submitted role onto the signup allow-list.
// Anything other than vendor, including admin, becomes customer.
func SignupRole(requested string) UserRole {
	if UserRole(requested) == RoleVendor {
		return RoleVendor
	}
	return RoleCustomer
}

// ApprovedByDefault reports whether a new account of this role starts approved.
func (r UserRole) ApprovedByDefault() bool {
	return r != RoleVendor
}

func (r UserRole) Valid() bool {
	switch r {
	case RoleCustomer, RoleVendor, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	Base
	Name         string   `db:"name"`
	Email        string   `db:"email"`
	PasswordHash string   `db:"password"`
	Role         UserRole `db:"role"`
	IsVerified   bool     `db:"is_verified"`
	IsApproved   bool     `db:"is_approved"`
	IsAdmin      bool     `db:"is_admin"`
}

// IsAdministrator honours the legacy isAdmin flag alongside the role.
func (u *User) IsAdministrator() bool {
	return u.Role == RoleAdmin || u.IsAdmin
}
