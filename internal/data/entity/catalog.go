package entity

// CatalogItem is a named catalog facet. Brands and categories both use it.
type CatalogItem struct {
	BaseSimple
	Name string `db:"name"`
}
