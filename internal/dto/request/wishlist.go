package request

type AddToWishlistRequest struct {
	ProductID string  `json:"productId" validate:"required,uuid"`
	Note      *string `json:"note,omitempty" validate:"omitempty,max=500"`
}

// UpdateWishlistItemRequest replaces the note; a missing note clears it.
type UpdateWishlistItemRequest struct {
	Note *string `json:"note" validate:"omitempty,max=500"`
}
