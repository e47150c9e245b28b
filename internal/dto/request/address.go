package request

type CreateAddressRequest struct {
	Type        string `json:"type" validate:"required,max=50"`
	Street      string `json:"street" validate:"required,max=200"`
	City        string `json:"city" validate:"required,max=100"`
	State       string `json:"state" validate:"required,max=100"`
	PostalCode  string `json:"postalCode" validate:"required,max=20"`
	Country     string `json:"country" validate:"required,max=100"`
	PhoneNumber string `json:"phoneNumber" validate:"required,min=7,max=30"`
}

type UpdateAddressRequest struct {
	Type        *string `json:"type,omitempty" validate:"omitempty,min=1,max=50"`
	Street      *string `json:"street,omitempty" validate:"omitempty,min=1,max=200"`
	City        *string `json:"city,omitempty" validate:"omitempty,min=1,max=100"`
	State       *string `json:"state,omitempty" validate:"omitempty,min=1,max=100"`
	PostalCode  *string `json:"postalCode,omitempty" validate:"omitempty,min=1,max=20"`
	Country     *string `json:"country,omitempty" validate:"omitempty,min=1,max=100"`
	PhoneNumber *string `json:"phoneNumber,omitempty" validate:"omitempty,min=7,max=30"`
}
