package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ecommerce-rbac/internal/data/entity"
	"ecommerce-rbac/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ErrProductNotFound is returned by updates that matched no row.
var ErrProductNotFound = errors.New("product not found")

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	Find(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, error)
	Count(ctx context.Context, filter entity.ProductFilter) (int64, error)
	Update(ctx context.Context, product *entity.Product) error

	// SetDeleted flips the soft-delete flag only. Products are never removed.
	SetDeleted(ctx context.Context, id uuid.UUID, deleted bool) error

	// AdjustStock adds delta to the stock in one conditional write. It
	// reports false, changing nothing, when the product is missing or the
	// stock would drop below zero.
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) (bool, error)
}

type productRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewProductRepository(db database.PgxIface, log *zap.Logger) ProductRepository {
	return &productRepository{
		db:  db,
		log: log.With(zap.String("repository", "product")),
	}
}

const productColumns = `id, title, description, price, discount_percentage, category_id, brand_id,
	stock_quantity, thumbnail, images, vendor_id, is_deleted, created_at, updated_at`

var productSortColumns = map[string]string{
	entity.SortByPrice:              "price",
	entity.SortByTitle:              "title",
	entity.SortByDiscountPercentage: "discount_percentage",
	entity.SortByStockQuantity:      "stock_quantity",
	entity.SortByCreatedAt:          "created_at",
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var product entity.Product
	err := row.Scan(
		&product.ID,
		&product.Title,
		&product.Description,
		&product.Price,
		&product.DiscountPercentage,
		&product.CategoryID,
		&product.BrandID,
		&product.StockQuantity,
		&product.Thumbnail,
		&product.Images,
		&product.VendorID,
		&product.IsDeleted,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.Exec(ctx, query,
		product.ID,
		product.Title,
		product.Description,
		product.Price,
		product.DiscountPercentage,
		product.CategoryID,
		product.BrandID,
		product.StockQuantity,
		product.Thumbnail,
		product.Images,
		product.VendorID,
		product.IsDeleted,
		product.CreatedAt,
		product.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create product",
			zap.Error(err),
			zap.String("title", product.Title),
			zap.String("vendor_id", product.VendorID.String()),
		)
		return fmt.Errorf("create product %s: %w", product.Title, err)
	}

	return nil
}

func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	product, err := scanProduct(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find product by ID",
			zap.Error(err),
			zap.String("product_id", id.String()),
		)
		return nil, fmt.Errorf("find product by ID %s: %w", id.String(), err)
	}

	return product, nil
}

func (r *productRepository) Find(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, error) {
	where, args := buildProductWhere(filter)

	query := `SELECT ` + productColumns + ` FROM products` + where

	if column, ok := productSortColumns[filter.SortField]; ok {
		direction := "ASC"
		if filter.SortOrder == entity.SortDesc {
			direction = "DESC"
		}
		query += fmt.Sprintf(" ORDER BY %s %s, id", column, direction)
	} else {
		query += " ORDER BY created_at, id"
	}

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find products",
			zap.Error(err),
			zap.Int("limit", filter.Limit),
			zap.Int("offset", filter.Offset),
		)
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			r.log.Error("Failed to scan product row", zap.Error(err))
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	return products, nil
}

func (r *productRepository) Count(ctx context.Context, filter entity.ProductFilter) (int64, error) {
	where, args := buildProductWhere(filter)

	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products`+where, args...).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count products", zap.Error(err))
		return 0, fmt.Errorf("count products: %w", err)
	}

	return count, nil
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products
		SET title = $2, description = $3, price = $4, discount_percentage = $5,
		    category_id = $6, brand_id = $7, stock_quantity = $8,
		    thumbnail = $9, images = $10, updated_at = $11
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		product.ID,
		product.Title,
		product.Description,
		product.Price,
		product.DiscountPercentage,
		product.CategoryID,
		product.BrandID,
		product.StockQuantity,
		product.Thumbnail,
		product.Images,
		product.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update product",
			zap.Error(err),
			zap.String("product_id", product.ID.String()),
		)
		return fmt.Errorf("update product %s: %w", product.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}

func (r *productRepository) SetDeleted(ctx context.Context, id uuid.UUID, deleted bool) error {
	query := `UPDATE products SET is_deleted = $2, updated_at = $3 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, deleted, time.Now())
	if err != nil {
		r.log.Error("Failed to set product deleted flag",
			zap.Error(err),
			zap.String("product_id", id.String()),
			zap.Bool("deleted", deleted),
		)
		return fmt.Errorf("set product %s deleted=%t: %w", id.String(), deleted, err)
	}

	if result.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}

func (r *productRepository) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (bool, error) {
	query := `
		UPDATE products
		SET stock_quantity = stock_quantity + $2, updated_at = $3
		WHERE id = $1 AND stock_quantity + $2 >= 0
	`

	result, err := r.db.Exec(ctx, query, id, delta, time.Now())
	if err != nil {
		r.log.Error("Failed to adjust product stock",
			zap.Error(err),
			zap.String("product_id", id.String()),
			zap.Int("delta", delta),
		)
		return false, fmt.Errorf("adjust stock of product %s by %d: %w", id.String(), delta, err)
	}

	return result.RowsAffected() == 1, nil
}

func buildProductWhere(filter entity.ProductFilter) (string, []any) {
	var (
		clauses []string
		args    []any
	)

	if len(filter.BrandIDs) > 0 {
		args = append(args, filter.BrandIDs)
		clauses = append(clauses, fmt.Sprintf("brand_id = ANY($%d)", len(args)))
	}
	if len(filter.CategoryIDs) > 0 {
		args = append(args, filter.CategoryIDs)
		clauses = append(clauses, fmt.Sprintf("category_id = ANY($%d)", len(args)))
	}
	if filter.VendorID != nil {
		args = append(args, *filter.VendorID)
		clauses = append(clauses, fmt.Sprintf("vendor_id = $%d", len(args)))
	}
	if filter.OnlyActive {
		clauses = append(clauses, "is_deleted = false")
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}
