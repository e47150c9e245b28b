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

type orderItemDocument struct {
	ProductID string  `bson:"productId"`
	Title     string  `bson:"title"`
	Thumbnail string  `bson:"thumbnail"`
	Price     float64 `bson:"price"`
	Quantity  int     `bson:"quantity"`
}

type orderDocument struct {
	ID          string                 `bson:"_id"`
	UserID      string                 `bson:"userId"`
	Items       []orderItemDocument    `bson:"items"`
	Address     addressDetailsDocument `bson:"address"`
	Status      string                 `bson:"status"`
	PaymentMode string                 `bson:"paymentMode"`
	Total       float64                `bson:"total"`
	CreatedAt   time.Time              `bson:"createdAt"`
	UpdatedAt   time.Time              `bson:"updatedAt"`
}

func newOrderDocument(order *entity.Order) orderDocument {
	items := make([]orderItemDocument, len(order.Items))
	for i, item := range order.Items {
		items[i] = orderItemDocument{
			ProductID: item.ProductID.String(),
			Title:     item.Title,
			Thumbnail: item.Thumbnail,
			Price:     item.Price,
			Quantity:  item.Quantity,
		}
	}
	return orderDocument{
		ID:          order.ID.String(),
		UserID:      order.UserID.String(),
		Items:       items,
		Address:     newAddressDetailsDocument(order.Address),
		Status:      string(order.Status),
		PaymentMode: string(order.PaymentMode),
		Total:       order.Total,
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
}

func (d orderDocument) toEntity() (*entity.Order, error) {
	ids, err := parseRefs("order", d.ID, d.UserID)
	if err != nil {
		return nil, err
	}

	items := make([]entity.OrderItem, len(d.Items))
	for i, item := range d.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("parse order item product %q: %w", item.ProductID, err)
		}
		items[i] = entity.OrderItem{
			ProductID: productID,
			Title:     item.Title,
			Thumbnail: item.Thumbnail,
			Price:     item.Price,
			Quantity:  item.Quantity,
		}
	}

	return &entity.Order{
		Base:        entity.Base{ID: ids[0], CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt},
		UserID:      ids[1],
		Items:       items,
		Address:     d.Address.toEntity(),
		Status:      entity.OrderStatus(d.Status),
		PaymentMode: entity.PaymentMode(d.PaymentMode),
		Total:       d.Total,
	}, nil
}

type mongoOrderRepository struct {
	coll *mongo.Collection
	log  *zap.Logger
}

func NewMongoOrderRepository(db *mongo.Database, log *zap.Logger) OrderRepository {
	return &mongoOrderRepository{
		coll: db.Collection("orders"),
		log:  log.With(zap.String("repository", "order")),
	}
}

func (r *mongoOrderRepository) Create(ctx context.Context, order *entity.Order) error {
	doc := newOrderDocument(order)
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		r.log.Error("Failed to create order", zap.Error(err), zap.String("user_id", doc.UserID))
		return fmt.Errorf("create order for user %s: %w", doc.UserID, err)
	}
	return nil
}

func (r *mongoOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var doc orderDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find order", zap.Error(err), zap.String("order_id", id.String()))
		return nil, fmt.Errorf("find order %s: %w", id.String(), err)
	}
	return doc.toEntity()
}

func (r *mongoOrderRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.find(ctx, bson.M{"userId": userID.String()}, opts)
}

func (r *mongoOrderRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Order, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))
	return r.find(ctx, bson.M{}, opts)
}

func (r *mongoOrderRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*entity.Order, error) {
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		r.log.Error("Failed to list orders", zap.Error(err), zap.Any("filter", filter))
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return decodeAll(ctx, cur, orderDocument.toEntity)
}

func (r *mongoOrderRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		r.log.Error("Failed to count orders", zap.Error(err))
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return count, nil
}

func (r *mongoOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.OrderStatus, updatedAt time.Time) (bool, error) {
	filter := bson.M{"_id": id.String(), "status": string(from)}
	update := bson.M{"$set": bson.M{"status": string(to), "updatedAt": updatedAt}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		r.log.Error("Failed to update order status",
			zap.Error(err),
			zap.String("order_id", id.String()),
			zap.String("from", string(from)),
			zap.String("to", string(to)),
		)
		return false, fmt.Errorf("update order %s status: %w", id.String(), err)
	}
	return result.MatchedCount == 1, nil
}
