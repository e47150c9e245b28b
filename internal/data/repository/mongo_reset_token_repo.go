package repository

import (
	"context"

	"ecommerce-rbac/internal/data/entity"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type mongoResetTokenRepository struct {
	store *expiringCodeStore
}

func NewMongoResetTokenRepository(db *mongo.Database, log *zap.Logger) ResetTokenRepository {
	return &mongoResetTokenRepository{
		store: &expiringCodeStore{
			coll: db.Collection("passwordresettokens"),
			log:  log.With(zap.String("repository", "reset_token")),
		},
	}
}

func (r *mongoResetTokenRepository) Create(ctx context.Context, token *entity.PasswordResetToken) error {
	return r.store.insert(ctx, expiringCodeDocument{
		ID:        token.ID.String(),
		UserID:    token.UserID.String(),
		Hash:      token.TokenHash,
		ExpiresAt: token.ExpiresAt,
		CreatedAt: token.CreatedAt,
	})
}

func (r *mongoResetTokenRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.PasswordResetToken, error) {
	doc, err := r.store.newest(ctx, userID)
	if err != nil || doc == nil {
		return nil, err
	}
	id, uid, err := doc.ids()
	if err != nil {
		return nil, err
	}
	return &entity.PasswordResetToken{
		BaseSimple: entity.BaseSimple{ID: id, CreatedAt: doc.CreatedAt},
		UserID:     uid,
		TokenHash:  doc.Hash,
		ExpiresAt:  doc.ExpiresAt,
	}, nil
}

func (r *mongoResetTokenRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.store.delete(ctx, id)
}

func (r *mongoResetTokenRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	return r.store.deleteByUser(ctx, userID)
}
