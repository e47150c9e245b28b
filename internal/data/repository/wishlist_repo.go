package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ecommerce-rbac/internal/data/entity"
	"ecommerce-rbac/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var ErrWishlistItemNotFound = errors.New("wishlist item not found")

type WishlistRepository interface {
	Create(ctx context.Context, item *entity.WishlistItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.WishlistItem, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.WishlistItem, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	UpdateNote(ctx context.Context, id uuid.UUID, note *string, updatedAt time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type wishlistRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewWishlistRepository(db database.PgxIface, log *zap.Logger) WishlistRepository {
	return &wishlistRepository{
		db:  db,
		log: log.With(zap.String("repository", "wishlist")),
	}
}

const wishlistColumns = `id, user_id, product_id, note, created_at, updated_at`

func scanWishlistItem(row pgx.Row) (*entity.WishlistItem, error) {
	var item entity.WishlistItem
	err := row.Scan(
		&item.ID,
		&item.UserID,
		&item.ProductID,
		&item.Note,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *wishlistRepository) Create(ctx context.Context, item *entity.WishlistItem) error {
	query := `
		INSERT INTO wishlist_items (` + wishlistColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		item.ID,
		item.UserID,
		item.ProductID,
		item.Note,
		item.CreatedAt,
		item.UpdatedAt,
	)

	if isUniqueViolation(err) {
		return ErrDuplicateKey
	}
	if err != nil {
		r.log.Error("Failed to create wishlist item",
			zap.Error(err),
			zap.String("user_id", item.UserID.String()),
			zap.String("product_id", item.ProductID.String()),
		)
		return fmt.Errorf("create wishlist item for user %s: %w", item.UserID.String(), err)
	}

	return nil
}

func (r *wishlistRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.WishlistItem, error) {
	query := `SELECT ` + wishlistColumns + ` FROM wishlist_items WHERE id = $1`

	item, err := scanWishlistItem(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find wishlist item", zap.Error(err), zap.String("wishlist_item_id", id.String()))
		return nil, fmt.Errorf("find wishlist item %s: %w", id.String(), err)
	}

	return item, nil
}

func (r *wishlistRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.WishlistItem, error) {
	query := `
		SELECT ` + wishlistColumns + `
		FROM wishlist_items
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find wishlist items", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("find wishlist items of user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var items []*entity.WishlistItem
	for rows.Next() {
		item, err := scanWishlistItem(rows)
		if err != nil {
			r.log.Error("Failed to scan wishlist row", zap.Error(err))
			return nil, fmt.Errorf("scan wishlist row: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate wishlist rows: %w", err)
	}

	return items, nil
}

func (r *wishlistRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM wishlist_items WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count wishlist items", zap.Error(err), zap.String("user_id", userID.String()))
		return 0, fmt.Errorf("count wishlist items of user %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *wishlistRepository) UpdateNote(ctx context.Context, id uuid.UUID, note *string, updatedAt time.Time) error {
	query := `UPDATE wishlist_items SET note = $2, updated_at = $3 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, note, updatedAt)
	if err != nil {
		r.log.Error("Failed to update wishlist item", zap.Error(err), zap.String("wishlist_item_id", id.String()))
		return fmt.Errorf("update wishlist item %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrWishlistItemNotFound
	}

	return nil
}

func (r *wishlistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM wishlist_items WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete wishlist item", zap.Error(err), zap.String("wishlist_item_id", id.String()))
		return fmt.Errorf("delete wishlist item %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrWishlistItemNotFound
	}

	return nil
}
