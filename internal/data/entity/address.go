package entity

import (
	"github.com/google/uuid"
)

// AddressDetails is the postal part of an address. Orders keep a copy so
// later edits to the saved address do not rewrite past orders.
type AddressDetails struct {
	Type        string `db:"type" json:"type"` // Home, Office...
	Street      string `db:"street" json:"street"`
	City        string `db:"city" json:"city"`
	State       string `db:"state" json:"state"`
	PostalCode  string `db:"postal_code" json:"postalCode"`
	Country     string `db:"country" json:"country"`
	PhoneNumber string `db:"phone_number" json:"phoneNumber"`
}

type Address struct {
	Base
	UserID uuid.UUID `db:"user_id"`
	AddressDetails
}
