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

type catalogDocument struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	CreatedAt time.Time `bson:"createdAt"`
}

func (d catalogDocument) toEntity() (*entity.CatalogItem, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("parse catalog id %q: %w", d.ID, err)
	}
	return &entity.CatalogItem{
		BaseSimple: entity.BaseSimple{ID: id, CreatedAt: d.CreatedAt},
		Name:       d.Name,
	}, nil
}

type mongoCatalogRepository struct {
	coll *mongo.Collection
	log  *zap.Logger
}

func NewMongoCatalogRepository(db *mongo.Database, collection string, log *zap.Logger) CatalogRepository {
	return &mongoCatalogRepository{
		coll: db.Collection(collection),
		log:  log.With(zap.String("repository", collection)),
	}
}

func (r *mongoCatalogRepository) Create(ctx context.Context, item *entity.CatalogItem) error {
	doc := catalogDocument{ID: item.ID.String(), Name: item.Name, CreatedAt: item.CreatedAt}
	_, err := r.coll.InsertOne(ctx, doc)
	if isUniqueViolation(err) {
		return ErrDuplicateKey
	}
	if err != nil {
		r.log.Error("Failed to create catalog item",
			zap.Error(err),
			zap.String("name", item.Name),
		)
		return fmt.Errorf("create %s %s: %w", r.coll.Name(), item.Name, err)
	}
	return nil
}

func (r *mongoCatalogRepository) FindAll(ctx context.Context) ([]*entity.CatalogItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		r.log.Error("Failed to find catalog items", zap.Error(err))
		return nil, fmt.Errorf("find all %s: %w", r.coll.Name(), err)
	}
	defer cur.Close(ctx)

	var items []*entity.CatalogItem
	for cur.Next(ctx) {
		var doc catalogDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode %s: %w", r.coll.Name(), err)
		}
		item, err := doc.toEntity()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := cur.Err(); err != nil {
		r.log.Error("Cursor iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate %s cursor: %w", r.coll.Name(), err)
	}

	return items, nil
}

func (r *mongoCatalogRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.CatalogItem, error) {
	var doc catalogDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find catalog item by ID",
			zap.Error(err),
			zap.String("id", id.String()),
		)
		return nil, fmt.Errorf("find %s by ID %s: %w", r.coll.Name(), id.String(), err)
	}
	return doc.toEntity()
}
