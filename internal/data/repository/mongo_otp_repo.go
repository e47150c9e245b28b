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

// expiringCodeDocument backs both the otps and passwordresettokens collections.
type expiringCodeDocument struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"userId"`
	Hash      string    `bson:"hash"`
	ExpiresAt time.Time `bson:"expiresAt"`
	CreatedAt time.Time `bson:"createdAt"`
}

func (d expiringCodeDocument) ids() (uuid.UUID, uuid.UUID, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("parse id %q: %w", d.ID, err)
	}
	userID, err := uuid.Parse(d.UserID)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("parse user id %q: %w", d.UserID, err)
	}
	return id, userID, nil
}

// expiringCodeStore holds the collection logic shared by OTPs and reset tokens.
type expiringCodeStore struct {
	coll *mongo.Collection
	log  *zap.Logger
}

func (s *expiringCodeStore) insert(ctx context.Context, doc expiringCodeDocument) error {
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		s.log.Error("Failed to insert code",
			zap.Error(err),
			zap.String("user_id", doc.UserID),
		)
		return fmt.Errorf("insert %s for user %s: %w", s.coll.Name(), doc.UserID, err)
	}
	return nil
}

func (s *expiringCodeStore) newest(ctx context.Context, userID uuid.UUID) (*expiringCodeDocument, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	var doc expiringCodeDocument
	err := s.coll.FindOne(ctx, bson.M{"userId": userID.String()}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		s.log.Error("Failed to find code by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find %s by user ID %s: %w", s.coll.Name(), userID.String(), err)
	}
	return &doc, nil
}

func (s *expiringCodeStore) delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": id.String()}); err != nil {
		s.log.Error("Failed to delete code",
			zap.Error(err),
			zap.String("id", id.String()),
		)
		return fmt.Errorf("delete %s %s: %w", s.coll.Name(), id.String(), err)
	}
	return nil
}

func (s *expiringCodeStore) deleteByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	result, err := s.coll.DeleteMany(ctx, bson.M{"userId": userID.String()})
	if err != nil {
		s.log.Error("Failed to delete codes by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("delete %s by user ID %s: %w", s.coll.Name(), userID.String(), err)
	}
	return result.DeletedCount, nil
}

type mongoOTPRepository struct {
	store *expiringCodeStore
}

func NewMongoOTPRepository(db *mongo.Database, log *zap.Logger) OTPRepository {
	return &mongoOTPRepository{
		store: &expiringCodeStore{
			coll: db.Collection("otps"),
			log:  log.With(zap.String("repository", "otp")),
		},
	}
}

func (r *mongoOTPRepository) Create(ctx context.Context, otp *entity.OTP) error {
	return r.store.insert(ctx, expiringCodeDocument{
		ID:        otp.ID.String(),
		UserID:    otp.UserID.String(),
		Hash:      otp.CodeHash,
		ExpiresAt: otp.ExpiresAt,
		CreatedAt: otp.CreatedAt,
	})
}

func (r *mongoOTPRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.OTP, error) {
	doc, err := r.store.newest(ctx, userID)
	if err != nil || doc == nil {
		return nil, err
	}
	id, uid, err := doc.ids()
	if err != nil {
		return nil, err
	}
	return &entity.OTP{
		BaseSimple: entity.BaseSimple{ID: id, CreatedAt: doc.CreatedAt},
		UserID:     uid,
		CodeHash:   doc.Hash,
		ExpiresAt:  doc.ExpiresAt,
	}, nil
}

func (r *mongoOTPRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.store.delete(ctx, id)
}

func (r *mongoOTPRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	return r.store.deleteByUser(ctx, userID)
}
