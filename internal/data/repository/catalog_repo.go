package repository

import (
	"context"
	"errors"
	"fmt"

	"ecommerce-rbac/internal/data/entity"
	"ecommerce-rbac/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// CatalogRepository stores a flat list of named items (brands, categories).
type CatalogRepository interface {
	Create(ctx context.Context, item *entity.CatalogItem) error
	FindAll(ctx context.Context) ([]*entity.CatalogItem, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.CatalogItem, error)
}

type catalogRepository struct {
	db    database.PgxIface
	table string
	log   *zap.Logger
}

// NewCatalogRepository binds the repository to one table. table must be a
// constant, it is concatenated into the SQL.
func NewCatalogRepository(db database.PgxIface, table string, log *zap.Logger) CatalogRepository {
	return &catalogRepository{
		db:    db,
		table: table,
		log:   log.With(zap.String("repository", table)),
	}
}

func (r *catalogRepository) Create(ctx context.Context, item *entity.CatalogItem) error {
	query := `INSERT INTO ` + r.table + ` (id, name, created_at) VALUES ($1, $2, $3)`

	_, err := r.db.Exec(ctx, query, item.ID, item.Name, item.CreatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicateKey
	}
	if err != nil {
		r.log.Error("Failed to create catalog item",
			zap.Error(err),
			zap.String("name", item.Name),
		)
		return fmt.Errorf("create %s %s: %w", r.table, item.Name, err)
	}

	return nil
}

func (r *catalogRepository) FindAll(ctx context.Context) ([]*entity.CatalogItem, error) {
	query := `SELECT id, name, created_at FROM ` + r.table + ` ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find catalog items", zap.Error(err))
		return nil, fmt.Errorf("find all %s: %w", r.table, err)
	}
	defer rows.Close()

	var items []*entity.CatalogItem
	for rows.Next() {
		var item entity.CatalogItem
		if err := rows.Scan(&item.ID, &item.Name, &item.CreatedAt); err != nil {
			r.log.Error("Failed to scan catalog row", zap.Error(err))
			return nil, fmt.Errorf("scan %s row: %w", r.table, err)
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate %s rows: %w", r.table, err)
	}

	return items, nil
}

func (r *catalogRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.CatalogItem, error) {
	query := `SELECT id, name, created_at FROM ` + r.table + ` WHERE id = $1`

	var item entity.CatalogItem
	err := r.db.QueryRow(ctx, query, id).Scan(&item.ID, &item.Name, &item.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find catalog item by ID",
			zap.Error(err),
			zap.String("id", id.String()),
		)
		return nil, fmt.Errorf("find %s by ID %s: %w", r.table, id.String(), err)
	}

	return &item, nil
}
