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

type OTPRepository interface {
	Create(ctx context.Context, otp *entity.OTP) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.OTP, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
}

type otpRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOTPRepository(db database.PgxIface, log *zap.Logger) OTPRepository {
	return &otpRepository{
		db:  db,
		log: log.With(zap.String("repository", "otp")),
	}
}

func (r *otpRepository) Create(ctx context.Context, otp *entity.OTP) error {
	query := `
		INSERT INTO otps (id, user_id, otp, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		otp.ID,
		otp.UserID,
		otp.CodeHash,
		otp.ExpiresAt,
		otp.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create OTP",
			zap.Error(err),
			zap.String("user_id", otp.UserID.String()),
		)
		return fmt.Errorf("create OTP for user %s: %w", otp.UserID.String(), err)
	}

	return nil
}

// FindByUserID returns the newest code for the user, expired or not.
func (r *otpRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.OTP, error) {
	query := `
		SELECT id, user_id, otp, expires_at, created_at
		FROM otps
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	var otp entity.OTP
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&otp.ID,
		&otp.UserID,
		&otp.CodeHash,
		&otp.ExpiresAt,
		&otp.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find OTP",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find OTP for user %s: %w", userID.String(), err)
	}

	return &otp, nil
}

func (r *otpRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM otps WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id); err != nil {
		r.log.Error("Failed to delete OTP",
			zap.Error(err),
			zap.String("otp_id", id.String()),
		)
		return fmt.Errorf("delete OTP %s: %w", id.String(), err)
	}

	return nil
}

func (r *otpRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `DELETE FROM otps WHERE user_id = $1`

	result, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to purge OTPs",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("delete OTPs for user %s: %w", userID.String(), err)
	}

	return result.RowsAffected(), nil
}
