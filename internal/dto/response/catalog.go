package response

import "ecommerce-rbac/internal/data/entity"

type CatalogItemResponse struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// label and value let the client feed the list straight into its filter
// checkboxes: label is the name, value the id.
func CatalogItemsToResponse(items []*entity.CatalogItem) []CatalogItemResponse {
	out := make([]CatalogItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, CatalogItemToResponse(item))
	}
	return out
}

func CatalogItemToResponse(item *entity.CatalogItem) CatalogItemResponse {
	return CatalogItemResponse{
		ID:    item.ID.String(),
		Name:  item.Name,
		Label: item.Name,
		Value: item.ID.String(),
	}
}
