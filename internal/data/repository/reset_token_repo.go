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

type ResetTokenRepository interface {
	Create(ctx context.Context, token *entity.PasswordResetToken) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.PasswordResetToken, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
}

type resetTokenRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewResetTokenRepository(db database.PgxIface, log *zap.Logger) ResetTokenRepository {
	return &resetTokenRepository{
		db:  db,
		log: log.With(zap.String("repository", "reset_token")),
	}
}

func (r *resetTokenRepository) Create(ctx context.Context, token *entity.PasswordResetToken) error {
	query := `
		INSERT INTO password_reset_tokens (id, user_id, token, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		token.ID,
		token.UserID,
		token.TokenHash,
		token.ExpiresAt,
		token.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create reset token",
			zap.Error(err),
			zap.String("user_id", token.UserID.String()),
		)
		return fmt.Errorf("create reset token for user %s: %w", token.UserID.String(), err)
	}

	return nil
}

// FindByUserID returns the newest token for the user, expired or not.
func (r *resetTokenRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.PasswordResetToken, error) {
	query := `
		SELECT id, user_id, token, expires_at, created_at
		FROM password_reset_tokens
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	var token entity.PasswordResetToken
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&token.ID,
		&token.UserID,
		&token.TokenHash,
		&token.ExpiresAt,
		&token.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reset token",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find reset token for user %s: %w", userID.String(), err)
	}

	return &token, nil
}

func (r *resetTokenRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM password_reset_tokens WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id); err != nil {
		r.log.Error("Failed to delete reset token",
			zap.Error(err),
			zap.String("token_id", id.String()),
		)
		return fmt.Errorf("delete reset token %s: %w", id.String(), err)
	}

	return nil
}

func (r *resetTokenRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `DELETE FROM password_reset_tokens WHERE user_id = $1`

	result, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to purge reset tokens",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("delete reset tokens for user %s: %w", userID.String(), err)
	}

	return result.RowsAffected(), nil
}
