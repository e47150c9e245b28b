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

type reviewDocument struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"userId"`
	ProductID string    `bson:"productId"`
	Rating    int       `bson:"rating"`
	Comment   *string   `bson:"comment,omitempty"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func (d reviewDocument) toEntity() (*entity.Review, error) {
	ids := make([]uuid.UUID, 3)
	for i, raw := range []string{d.ID, d.UserID, d.ProductID} {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("parse review reference %q: %w", raw, err)
		}
		ids[i] = id
	}
	return &entity.Review{
		Base:      entity.Base{ID: ids[0], CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt},
		UserID:    ids[1],
		ProductID: ids[2],
		Rating:    d.Rating,
		Comment:   d.Comment,
	}, nil
}

type mongoReviewRepository struct {
	coll *mongo.Collection
	log  *zap.Logger
}

func NewMongoReviewRepository(db *mongo.Database, log *zap.Logger) ReviewRepository {
	return &mongoReviewRepository{
		coll: db.Collection("reviews"),
		log:  log.With(zap.String("repository", "review")),
	}
}

func (r *mongoReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	doc := reviewDocument{
		ID:        review.ID.String(),
		UserID:    review.UserID.String(),
		ProductID: review.ProductID.String(),
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
		UpdatedAt: review.UpdatedAt,
	}
	_, err := r.coll.InsertOne(ctx, doc)
	if isUniqueViolation(err) {
		return ErrDuplicateKey
	}
	if err != nil {
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("user_id", doc.UserID),
			zap.String("product_id", doc.ProductID),
		)
		return fmt.Errorf("create review for product %s by user %s: %w", doc.ProductID, doc.UserID, err)
	}
	return nil
}

func (r *mongoReviewRepository) findOne(ctx context.Context, filter bson.M) (*entity.Review, error) {
	var doc reviewDocument
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review", zap.Error(err), zap.Any("filter", filter))
		return nil, fmt.Errorf("find review: %w", err)
	}
	return doc.toEntity()
}

func (r *mongoReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	return r.findOne(ctx, bson.M{"_id": id.String()})
}

func (r *mongoReviewRepository) FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*entity.Review, error) {
	return r.findOne(ctx, bson.M{"userId": userID.String(), "productId": productID.String()})
}

func (r *mongoReviewRepository) FindByProductID(ctx context.Context, productID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cur, err := r.coll.Find(ctx, bson.M{"productId": productID.String()}, opts)
	if err != nil {
		r.log.Error("Failed to find reviews by product ID",
			zap.Error(err),
			zap.String("product_id", productID.String()),
		)
		return nil, fmt.Errorf("find reviews by product ID %s: %w", productID.String(), err)
	}
	defer cur.Close(ctx)

	var reviews []*entity.Review
	for cur.Next(ctx) {
		var doc reviewDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode review: %w", err)
		}
		review, err := doc.toEntity()
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	if err := cur.Err(); err != nil {
		r.log.Error("Cursor iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate reviews cursor: %w", err)
	}

	return reviews, nil
}

func (r *mongoReviewRepository) CountByProductID(ctx context.Context, productID uuid.UUID) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"productId": productID.String()})
	if err != nil {
		r.log.Error("Failed to count reviews",
			zap.Error(err),
			zap.String("product_id", productID.String()),
		)
		return 0, fmt.Errorf("count reviews for product %s: %w", productID.String(), err)
	}
	return count, nil
}

func (r *mongoReviewRepository) Update(ctx context.Context, review *entity.Review) error {
	update := bson.M{"$set": bson.M{
		"rating":    review.Rating,
		"comment":   review.Comment,
		"updatedAt": review.UpdatedAt,
	}}
	result, err := r.coll.UpdateByID(ctx, review.ID.String(), update)
	if err != nil {
		r.log.Error("Failed to update review",
			zap.Error(err),
			zap.String("review_id", review.ID.String()),
		)
		return fmt.Errorf("update review %s: %w", review.ID.String(), err)
	}
	if result.MatchedCount == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (r *mongoReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		r.log.Error("Failed to delete review",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return fmt.Errorf("delete review %s: %w", id.String(), err)
	}
	if result.DeletedCount == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (r *mongoReviewRepository) GetProductReviewStats(ctx context.Context, productID uuid.UUID) (float64, int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"productId": productID.String()}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"avg":   bson.M{"$avg": "$rating"},
			"count": bson.M{"$sum": 1},
		}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		r.log.Error("Failed to get product review stats",
			zap.Error(err),
			zap.String("product_id", productID.String()),
		)
		return 0, 0, fmt.Errorf("get review stats for product %s: %w", productID.String(), err)
	}
	defer cur.Close(ctx)

	var stats struct {
		Avg   float64 `bson:"avg"`
		Count int64   `bson:"count"`
	}
	if cur.Next(ctx) {
		if err := cur.Decode(&stats); err != nil {
			return 0, 0, fmt.Errorf("decode review stats: %w", err)
		}
	}
	return stats.Avg, stats.Count, cur.Err()
}
