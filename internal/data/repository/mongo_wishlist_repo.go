package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ecommerce-rbac/internal/data/entity"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type wishlistDocument struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"userId"`
	ProductID string    `bson:"productId"`
	Note      *string   `bson:"note,omitempty"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func (d wishlistDocument) toEntity() (*entity.WishlistItem, error) {
	ids, err := parseRefs("wishlist item", d.ID, d.UserID, d.ProductID)
	if err != nil {
		return nil, err
	}
	return &entity.WishlistItem{
		Base:      entity.Base{ID: ids[0], CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt},
		UserID:    ids[1],
		ProductID: ids[2],
		Note:      d.Note,
	}, nil
}

type mongoWishlistRepository struct {
	coll *mongo.Collection
	log  *zap.Logger
}

func NewMongoWishlistRepository(db *mongo.Database, log *zap.Logger) WishlistRepository {
	return &mongoWishlistRepository{
		coll: db.Collection("wishlists"),
		log:  log.With(zap.String("repository", "wishlist")),
	}
}

func (r *mongoWishlistRepository) Create(ctx context.Context, item *entity.WishlistItem) error {
	doc := wishlistDocument{
		ID:        item.ID.String(),
		UserID:    item.UserID.String(),
		ProductID: item.ProductID.String(),
		Note:      item.Note,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
	_, err := r.coll.InsertOne(ctx, doc)
	if isUniqueViolation(err) {
		return ErrDuplicateKey
	}
	if err != nil {
		r.log.Error("Failed to create wishlist item",
			zap.Error(err),
			zap.String("user_id", doc.UserID),
			zap.String("product_id", doc.ProductID),
		)
		return fmt.Errorf("create wishlist item for user %s: %w", doc.UserID, err)
	}
	return nil
}

func (r *mongoWishlistRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.WishlistItem, error) {
	var doc wishlistDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find wishlist item", zap.Error(err), zap.String("wishlist_item_id", id.String()))
		return nil, fmt.Errorf("find wishlist item %s: %w", id.String(), err)
	}
	return doc.toEntity()
}

func (r *mongoWishlistRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.WishlistItem, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cur, err := r.coll.Find(ctx, bson.M{"userId": userID.String()}, opts)
	if err != nil {
		r.log.Error("Failed to find wishlist items", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("find wishlist items of user %s: %w", userID.String(), err)
	}
	return decodeAll(ctx, cur, wishlistDocument.toEntity)
}

func (r *mongoWishlistRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"userId": userID.String()})
	if err != nil {
		r.log.Error("Failed to count wishlist items", zap.Error(err), zap.String("user_id", userID.String()))
		return 0, fmt.Errorf("count wishlist items of user %s: %w", userID.String(), err)
	}
	return count, nil
}

func (r *mongoWishlistRepository) UpdateNote(ctx context.Context, id uuid.UUID, note *string, updatedAt time.Time) error {
	update := bson.M{"$set": bson.M{"note": note, "updatedAt": updatedAt}}
	result, err := r.coll.UpdateByID(ctx, id.String(), update)
	if err != nil {
		r.log.Error("Failed to update wishlist item", zap.Error(err), zap.String("wishlist_item_id", id.String()))
		return fmt.Errorf("update wishlist item %s: %w", id.String(), err)
	}
	if result.MatchedCount == 0 {
		return ErrWishlistItemNotFound
	}
	return nil
}

func (r *mongoWishlistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		r.log.Error("Failed to delete wishlist item", zap.Error(err), zap.String("wishlist_item_id", id.String()))
		return fmt.Errorf("delete wishlist item %s: %w", id.String(), err)
	}
	if result.DeletedCount == 0 {
		return ErrWishlistItemNotFound
	}
	return nil
}
