package request

type CreateOrderRequest struct {
	AddressID   string `json:"addressId" validate:"required,uuid"`
	PaymentMode string `json:"paymentMode" validate:"required,oneof=COD UPI CARD"`
}

// Status is checked against the order statuses by the service; one of them
// contains spaces.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
