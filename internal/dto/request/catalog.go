package request

type CreateCatalogItemRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}
