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

type productDocument struct {
	ID                 string    `bson:"_id"`
	Title              string    `bson:"title"`
	Description        string    `bson:"description"`
	Price              float64   `bson:"price"`
	DiscountPercentage float64   `bson:"discountPercentage"`
	Category           string    `bson:"category"`
	Brand              string    `bson:"brand"`
	StockQuantity      int       `bson:"stockQuantity"`
	Thumbnail          string    `bson:"thumbnail"`
	Images             []string  `bson:"images"`
	VendorID           string    `bson:"vendorId"`
	IsDeleted          bool      `bson:"isDeleted"`
	CreatedAt          time.Time `bson:"createdAt"`
	UpdatedAt          time.Time `bson:"updatedAt"`
}

func toProductDocument(p *entity.Product) productDocument {
	return productDocument{
		ID:                 p.ID.String(),
		Title:              p.Title,
		Description:        p.Description,
		Price:              p.Price,
		DiscountPercentage: p.DiscountPercentage,
		Category:           p.CategoryID.String(),
		Brand:              p.BrandID.String(),
		StockQuantity:      p.StockQuantity,
		Thumbnail:          p.Thumbnail,
		Images:             p.Images,
		VendorID:           p.VendorID.String(),
		IsDeleted:          p.IsDeleted,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

func (d productDocument) toEntity() (*entity.Product, error) {
	ids := make([]uuid.UUID, 4)
	for i, raw := range []string{d.ID, d.Category, d.Brand, d.VendorID} {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("parse product reference %q: %w", raw, err)
		}
		ids[i] = id
	}
	return &entity.Product{
		Base:               entity.Base{ID: ids[0], CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt},
		Title:              d.Title,
		Description:        d.Description,
		Price:              d.Price,
		DiscountPercentage: d.DiscountPercentage,
		CategoryID:         ids[1],
		BrandID:            ids[2],
		StockQuantity:      d.StockQuantity,
		Thumbnail:          d.Thumbnail,
		Images:             d.Images,
		VendorID:           ids[3],
		IsDeleted:          d.IsDeleted,
	}, nil
}

var productSortFields = map[string]string{
	entity.SortByPrice:              "price",
	entity.SortByTitle:              "title",
	entity.SortByDiscountPercentage: "discountPercentage",
	entity.SortByStockQuantity:      "stockQuantity",
	entity.SortByCreatedAt:          "createdAt",
}

type mongoProductRepository struct {
	coll *mongo.Collection
	log  *zap.Logger
}

func NewMongoProductRepository(db *mongo.Database, log *zap.Logger) ProductRepository {
	return &mongoProductRepository{
		coll: db.Collection("products"),
		log:  log.With(zap.String("repository", "product")),
	}
}

func (r *mongoProductRepository) Create(ctx context.Context, product *entity.Product) error {
	if _, err := r.coll.InsertOne(ctx, toProductDocument(product)); err != nil {
		r.log.Error("Failed to create product",
			zap.Error(err),
			zap.String("title", product.Title),
			zap.String("vendor_id", product.VendorID.String()),
		)
		return fmt.Errorf("create product %s: %w", product.Title, err)
	}
	return nil
}

func (r *mongoProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var doc productDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find product by ID",
			zap.Error(err),
			zap.String("product_id", id.String()),
		)
		return nil, fmt.Errorf("find product by ID %s: %w", id.String(), err)
	}
	return doc.toEntity()
}

func (r *mongoProductRepository) Find(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, error) {
	opts := options.Find()
	if field, ok := productSortFields[filter.SortField]; ok {
		opts.SetSort(bson.D{{Key: field, Value: int(filter.SortOrder)}, {Key: "_id", Value: 1}})
	} else {
		opts.SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	}
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}
	if filter.Offset > 0 {
		opts.SetSkip(int64(filter.Offset))
	}

	cur, err := r.coll.Find(ctx, productQuery(filter), opts)
	if err != nil {
		r.log.Error("Failed to find products",
			zap.Error(err),
			zap.Int("limit", filter.Limit),
			zap.Int("offset", filter.Offset),
		)
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer cur.Close(ctx)

	var products []*entity.Product
	for cur.Next(ctx) {
		var doc productDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode product: %w", err)
		}
		product, err := doc.toEntity()
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	if err := cur.Err(); err != nil {
		r.log.Error("Cursor iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate products cursor: %w", err)
	}

	return products, nil
}

func (r *mongoProductRepository) Count(ctx context.Context, filter entity.ProductFilter) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, productQuery(filter))
	if err != nil {
		r.log.Error("Failed to count products", zap.Error(err))
		return 0, fmt.Errorf("count products: %w", err)
	}
	return count, nil
}

func (r *mongoProductRepository) Update(ctx context.Context, product *entity.Product) error {
	doc := toProductDocument(product)
	update := bson.M{"$set": bson.M{
		"title":              doc.Title,
		"description":        doc.Description,
		"price":              doc.Price,
		"discountPercentage": doc.DiscountPercentage,
		"category":           doc.Category,
		"brand":              doc.Brand,
		"stockQuantity":      doc.StockQuantity,
		"thumbnail":          doc.Thumbnail,
		"images":             doc.Images,
		"updatedAt":          doc.UpdatedAt,
	}}

	result, err := r.coll.UpdateByID(ctx, doc.ID, update)
	if err != nil {
		r.log.Error("Failed to update product",
			zap.Error(err),
			zap.String("product_id", doc.ID),
		)
		return fmt.Errorf("update product %s: %w", doc.ID, err)
	}
	if result.MatchedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *mongoProductRepository) SetDeleted(ctx context.Context, id uuid.UUID, deleted bool) error {
	update := bson.M{"$set": bson.M{"isDeleted": deleted, "updatedAt": time.Now()}}
	result, err := r.coll.UpdateByID(ctx, id.String(), update)
	if err != nil {
		r.log.Error("Failed to set product deleted flag",
			zap.Error(err),
			zap.String("product_id", id.String()),
			zap.Bool("deleted", deleted),
		)
		return fmt.Errorf("set product %s deleted=%t: %w", id.String(), deleted, err)
	}
	if result.MatchedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *mongoProductRepository) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (bool, error) {
	filter := bson.M{"_id": id.String(), "stockQuantity": bson.M{"$gte": -delta}}
	update := bson.M{
		"$inc": bson.M{"stockQuantity": delta},
		"$set": bson.M{"updatedAt": time.Now()},
	}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		r.log.Error("Failed to adjust product stock",
			zap.Error(err),
			zap.String("product_id", id.String()),
			zap.Int("delta", delta),
		)
		return false, fmt.Errorf("adjust stock of product %s by %d: %w", id.String(), delta, err)
	}
	return result.ModifiedCount == 1, nil
}

func productQuery(filter entity.ProductFilter) bson.M {
	query := bson.M{}
	if len(filter.BrandIDs) > 0 {
		query["brand"] = bson.M{"$in": uuidStrings(filter.BrandIDs)}
	}
	if len(filter.CategoryIDs) > 0 {
		query["category"] = bson.M{"$in": uuidStrings(filter.CategoryIDs)}
	}
	if filter.VendorID != nil {
		query["vendorId"] = filter.VendorID.String()
	}
	if filter.OnlyActive {
		query["isDeleted"] = false
	}
	return query
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
