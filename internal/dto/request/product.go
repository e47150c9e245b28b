package request

type CreateProductRequest struct {
	Title              string   `json:"title" validate:"required,max=200"`
	Description        string   `json:"description" validate:"required"`
	Price              *float64 `json:"price" validate:"required,gte=0"`
	DiscountPercentage float64  `json:"discountPercentage" validate:"gte=0,lte=100"`
	Category           string   `json:"category" validate:"required,uuid"`
	Brand              string   `json:"brand" validate:"required,uuid"`
	StockQuantity      *int     `json:"stockQuantity" validate:"required,gte=0"`
	Thumbnail          string   `json:"thumbnail" validate:"required"`
	Images             []string `json:"images" validate:"omitempty,dive,required"`
}

// UpdateProductRequest has no vendor or isDeleted field, those cannot be
// changed through an update.
type UpdateProductRequest struct {
	Title              *string   `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description        *string   `json:"description,omitempty" validate:"omitempty,min=1"`
	Price              *float64  `json:"price,omitempty" validate:"omitempty,gte=0"`
	DiscountPercentage *float64  `json:"discountPercentage,omitempty" validate:"omitempty,gte=0,lte=100"`
	Category           *string   `json:"category,omitempty" validate:"omitempty,uuid"`
	Brand              *string   `json:"brand,omitempty" validate:"omitempty,uuid"`
	StockQuantity      *int      `json:"stockQuantity,omitempty" validate:"omitempty,gte=0"`
	Thumbnail          *string   `json:"thumbnail,omitempty" validate:"omitempty,min=1"`
	Images             *[]string `json:"images,omitempty" validate:"omitempty,dive,required"`
}

// ProductListQuery is built from the query string of GET /products.
type ProductListQuery struct {
	Brands     []string
	Categories []string
	Vendor     string
	User       bool
	MyProducts bool
	Sort       string
	Order      string
	Page       int
	Limit      int
}
