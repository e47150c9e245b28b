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

var ErrCartItemNotFound = errors.New("cart item not found")

type CartRepository interface {
	Create(ctx context.Context, item *entity.CartItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.CartItem, error)
	FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*entity.CartItem, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.CartItem, error)
	UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int, updatedAt time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByUserID empties the cart and returns how many lines it removed.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
}

type cartRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCartRepository(db database.PgxIface, log *zap.Logger) CartRepository {
	return &cartRepository{
		db:  db,
		log: log.With(zap.String("repository", "cart")),
	}
}

const cartColumns = `id, user_id, product_id, quantity, created_at, updated_at`

func scanCartItem(row pgx.Row) (*entity.CartItem, error) {
	var item entity.CartItem
	err := row.Scan(
		&item.ID,
		&item.UserID,
		&item.ProductID,
		&item.Quantity,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) Create(ctx context.Context, item *entity.CartItem) error {
	query := `
		INSERT INTO cart_items (` + cartColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		item.ID,
		item.UserID,
		item.ProductID,
		item.Quantity,
		item.CreatedAt,
		item.UpdatedAt,
	)

	if isUniqueViolation(err) {
		return ErrDuplicateKey
	}
	if err != nil {
		r.log.Error("Failed to create cart item",
			zap.Error(err),
			zap.String("user_id", item.UserID.String()),
			zap.String("product_id", item.ProductID.String()),
		)
		return fmt.Errorf("create cart item for user %s: %w", item.UserID.String(), err)
	}

	return nil
}

func (r *cartRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.CartItem, error) {
	query := `SELECT ` + cartColumns + ` FROM cart_items WHERE id = $1`

	item, err := scanCartItem(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find cart item", zap.Error(err), zap.String("cart_item_id", id.String()))
		return nil, fmt.Errorf("find cart item %s: %w", id.String(), err)
	}

	return item, nil
}

func (r *cartRepository) FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*entity.CartItem, error) {
	query := `SELECT ` + cartColumns + ` FROM cart_items WHERE user_id = $1 AND product_id = $2`

	item, err := scanCartItem(r.db.QueryRow(ctx, query, userID, productID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find cart item by product",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("product_id", productID.String()),
		)
		return nil, fmt.Errorf("find cart item of user %s for product %s: %w", userID.String(), productID.String(), err)
	}

	return item, nil
}

func (r *cartRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.CartItem, error) {
	query := `
		SELECT ` + cartColumns + `
		FROM cart_items
		WHERE user_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find cart items", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("find cart items of user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var items []*entity.CartItem
	for rows.Next() {
		item, err := scanCartItem(rows)
		if err != nil {
			r.log.Error("Failed to scan cart item row", zap.Error(err))
			return nil, fmt.Errorf("scan cart item row: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate cart item rows: %w", err)
	}

	return items, nil
}

func (r *cartRepository) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int, updatedAt time.Time) error {
	query := `UPDATE cart_items SET quantity = $2, updated_at = $3 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, quantity, updatedAt)
	if err != nil {
		r.log.Error("Failed to update cart item", zap.Error(err), zap.String("cart_item_id", id.String()))
		return fmt.Errorf("update cart item %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrCartItemNotFound
	}

	return nil
}

func (r *cartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM cart_items WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete cart item", zap.Error(err), zap.String("cart_item_id", id.String()))
		return fmt.Errorf("delete cart item %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrCartItemNotFound
	}

	return nil
}

func (r *cartRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	if err != nil {
		r.log.Error("Failed to clear cart", zap.Error(err), zap.String("user_id", userID.String()))
		return 0, fmt.Errorf("clear cart of user %s: %w", userID.String(), err)
	}

	return result.RowsAffected(), nil
}
