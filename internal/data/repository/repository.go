package repository

import (
	"context"
	"errors"

	"ecommerce-rbac/pkg/database"

	"github.com/jackc/pgx/v5/pgconn"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ErrDuplicateKey is returned when a unique constraint (email, brand name,
// one review or cart line per product) rejects a write.
var ErrDuplicateKey = errors.New("duplicate key")

type Repository struct {
	User       UserRepository
	OTP        OTPRepository
	ResetToken ResetTokenRepository
	Product    ProductRepository
	Brand      CatalogRepository
	Category   CatalogRepository
	Review     ReviewRepository
	Cart       CartRepository
	Wishlist   WishlistRepository
	Address    AddressRepository
	Order      OrderRepository
}

// NewRepository builds the Postgres-backed repositories.
func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:       NewUserRepository(db, log),
		OTP:        NewOTPRepository(db, log),
		ResetToken: NewResetTokenRepository(db, log),
		Product:    NewProductRepository(db, log),
		Brand:      NewCatalogRepository(db, "brands", log),
		Category:   NewCatalogRepository(db, "categories", log),
		Review:     NewReviewRepository(db, log),
		Cart:       NewCartRepository(db, log),
		Wishlist:   NewWishlistRepository(db, log),
		Address:    NewAddressRepository(db, log),
		Order:      NewOrderRepository(db, log),
	}
}

// NewMongoRepository builds the MongoDB-backed repositories and makes sure
// the unique indexes exist.
func NewMongoRepository(ctx context.Context, db *mongo.Database, log *zap.Logger) (*Repository, error) {
	if err := database.EnsureMongoIndexes(ctx, db); err != nil {
		return nil, err
	}

	return &Repository{
		User:       NewMongoUserRepository(db, log),
		OTP:        NewMongoOTPRepository(db, log),
		ResetToken: NewMongoResetTokenRepository(db, log),
		Product:    NewMongoProductRepository(db, log),
		Brand:      NewMongoCatalogRepository(db, "brands", log),
		Category:   NewMongoCatalogRepository(db, "categories", log),
		Review:     NewMongoReviewRepository(db, log),
		Cart:       NewMongoCartRepository(db, log),
		Wishlist:   NewMongoWishlistRepository(db, log),
		Address:    NewMongoAddressRepository(db, log),
		Order:      NewMongoOrderRepository(db, log),
	}, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return mongo.IsDuplicateKeyError(err)
}
