package request

// UpdateUserRequest only carries the fields a user may edit on their own
// profile. role, isAdmin, isApproved, email and password are dropped on decode.
type UpdateUserRequest struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
}

// ApproveVendorRequest keeps isApproved untyped so a non-boolean value can be
// reported instead of failing the decode.
type ApproveVendorRequest struct {
	IsApproved any `json:"isApproved"`
}
