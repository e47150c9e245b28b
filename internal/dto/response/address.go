package response

import (
	"time"

	"ecommerce-rbac/internal/data/entity"
)

type AddressResponse struct {
	ID   string `json:"_id"`
	User string `json:"user"`
	entity.AddressDetails
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func AddressToResponse(address *entity.Address) AddressResponse {
	return AddressResponse{
		ID:             address.ID.String(),
		User:           address.UserID.String(),
		AddressDetails: address.AddressDetails,
		CreatedAt:      address.CreatedAt,
		UpdatedAt:      address.UpdatedAt,
	}
}

func AddressesToResponse(addresses []*entity.Address) []AddressResponse {
	out := make([]AddressResponse, 0, len(addresses))
	for _, address := range addresses {
		out = append(out, AddressToResponse(address))
	}
	return out
}
