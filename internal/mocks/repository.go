package mocks

import (
	"ecommerce-rbac/internal/data/repository"
)

// Stores bundles one in-memory store per repository so tests can seed and
// inspect state behind a *repository.Repository.
type Stores struct {
	User       *UserStore
	OTP        *OTPStore
	ResetToken *ResetTokenStore
	Product    *ProductStore
	Brand      *CatalogStore
	Category   *CatalogStore
	Review     *ReviewStore
	Cart       *CartStore
	Wishlist   *WishlistStore
	Address    *AddressStore
	Order      *OrderStore
}

func NewStores() *Stores {
	return &Stores{
		User:       NewUserStore(),
		OTP:        NewOTPStore(),
		ResetToken: NewResetTokenStore(),
		Product:    NewProductStore(),
		Brand:      NewCatalogStore(),
		Category:   NewCatalogStore(),
		Review:     NewReviewStore(),
		Cart:       NewCartStore(),
		Wishlist:   NewWishlistStore(),
		Address:    NewAddressStore(),
		Order:      NewOrderStore(),
	}
}

func (s *Stores) Repository() *repository.Repository {
	return &repository.Repository{
		User:       s.User,
		OTP:        s.OTP,
		ResetToken: s.ResetToken,
		Product:    s.Product,
		Brand:      s.Brand,
		Category:   s.Category,
		Review:     s.Review,
		Cart:       s.Cart,
		Wishlist:   s.Wishlist,
		Address:    s.Address,
		Order:      s.Order,
	}
}
