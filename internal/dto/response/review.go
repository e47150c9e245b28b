package response

import (
	"time"

	"ecommerce-rbac/internal/data/entity"
)

type ReviewResponse struct {
	ID        string    `json:"_id"`
	User      string    `json:"user"`
	UserName  string    `json:"userName,omitempty"`
	Product   string    `json:"product"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ReviewStats struct {
	AverageRating float64 `json:"averageRating"`
	ReviewCount   int64   `json:"reviewCount"`
}

type ProductReviewsResponse struct {
	*PaginatedResponse[ReviewResponse]
	Stats ReviewStats `json:"stats"`
}

func ReviewToResponse(review *entity.Review, userName string) ReviewResponse {
	return ReviewResponse{
		ID:        review.ID.String(),
		User:      review.UserID.String(),
		UserName:  userName,
		Product:   review.ProductID.String(),
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
		UpdatedAt: review.UpdatedAt,
	}
}
