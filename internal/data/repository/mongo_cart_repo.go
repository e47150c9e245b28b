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

// parseRefs parses the string ids a document stores, in order.
func parseRefs(kind string, raw ...string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, len(raw))
	for i, value := range raw {
		id, err := uuid.Parse(value)
		if err != nil {
			return nil, fmt.Errorf("parse %s reference %q: %w", kind, value, err)
		}
		ids[i] = id
	}
	return ids, nil
}

// decodeAll drains the cursor, converting each document with toEntity.
func decodeAll[D any, E any](ctx context.Context, cur *mongo.Cursor, toEntity func(D) (E, error)) ([]E, error) {
	defer cur.Close(ctx)

	var out []E
	for cur.Next(ctx) {
		var doc D
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode document: %w", err)
		}
		item, err := toEntity(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate cursor: %w", err)
	}
	return out, nil
}

type cartDocument struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"userId"`
	ProductID string    `bson:"productId"`
	Quantity  int       `bson:"quantity"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func (d cartDocument) toEntity() (*entity.CartItem, error) {
	ids, err := parseRefs("cart item", d.ID, d.UserID, d.ProductID)
	if err != nil {
		return nil, err
	}
	return &entity.CartItem{
		Base:      entity.Base{ID: ids[0], CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt},
		UserID:    ids[1],
		ProductID: ids[2],
		Quantity:  d.Quantity,
	}, nil
}

type mongoCartRepository struct {
	coll *mongo.Collection
	log  *zap.Logger
}

func NewMongoCartRepository(db *mongo.Database, log *zap.Logger) CartRepository {
	return &mongoCartRepository{
		coll: db.Collection("carts"),
		log:  log.With(zap.String("repository", "cart")),
	}
}

func (r *mongoCartRepository) Create(ctx context.Context, item *entity.CartItem) error {
	doc := cartDocument{
		ID:        item.ID.String(),
		UserID:    item.UserID.String(),
		ProductID: item.ProductID.String(),
		Quantity:  item.Quantity,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
	_, err := r.coll.InsertOne(ctx, doc)
	if isUniqueViolation(err) {
		return ErrDuplicateKey
	}
	if err != nil {
		r.log.Error("Failed to create cart item",
			zap.Error(err),
			zap.String("user_id", doc.UserID),
			zap.String("product_id", doc.ProductID),
		)
		return fmt.Errorf("create cart item for user %s: %w", doc.UserID, err)
	}
	return nil
}

func (r *mongoCartRepository) findOne(ctx context.Context, filter bson.M) (*entity.CartItem, error) {
	var doc cartDocument
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find cart item", zap.Error(err), zap.Any("filter", filter))
		return nil, fmt.Errorf("find cart item: %w", err)
	}
	return doc.toEntity()
}

func (r *mongoCartRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.CartItem, error) {
	return r.findOne(ctx, bson.M{"_id": id.String()})
}

func (r *mongoCartRepository) FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*entity.CartItem, error) {
	return r.findOne(ctx, bson.M{"userId": userID.String(), "productId": productID.String()})
}

func (r *mongoCartRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.CartItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cur, err := r.coll.Find(ctx, bson.M{"userId": userID.String()}, opts)
	if err != nil {
		r.log.Error("Failed to find cart items", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("find cart items of user %s: %w", userID.String(), err)
	}
	return decodeAll(ctx, cur, cartDocument.toEntity)
}

func (r *mongoCartRepository) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int, updatedAt time.Time) error {
	update := bson.M{"$set": bson.M{"quantity": quantity, "updatedAt": updatedAt}}
	result, err := r.coll.UpdateByID(ctx, id.String(), update)
	if err != nil {
		r.log.Error("Failed to update cart item", zap.Error(err), zap.String("cart_item_id", id.String()))
		return fmt.Errorf("update cart item %s: %w", id.String(), err)
	}
	if result.MatchedCount == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (r *mongoCartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		r.log.Error("Failed to delete cart item", zap.Error(err), zap.String("cart_item_id", id.String()))
		return fmt.Errorf("delete cart item %s: %w", id.String(), err)
	}
	if result.DeletedCount == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (r *mongoCartRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	result, err := r.coll.DeleteMany(ctx, bson.M{"userId": userID.String()})
	if err != nil {
		r.log.Error("Failed to clear cart", zap.Error(err), zap.String("user_id", userID.String()))
		return 0, fmt.Errorf("clear cart of user %s: %w", userID.String(), err)
	}
	return result.DeletedCount, nil
}
