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

// userDocument is the users collection layout. Ids are stored as uuid strings.
type userDocument struct {
	ID         string    `bson:"_id"`
	Name       string    `bson:"name"`
	Email      string    `bson:"email"`
	Password   string    `bson:"password"`
	Role       string    `bson:"role"`
	IsVerified bool      `bson:"isVerified"`
	IsApproved bool      `bson:"isApproved"`
	IsAdmin    bool      `bson:"isAdmin"`
	CreatedAt  time.Time `bson:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt"`
}

func toUserDocument(u *entity.User) userDocument {
	return userDocument{
		ID:         u.ID.String(),
		Name:       u.Name,
		Email:      u.Email,
		Password:   u.PasswordHash,
		Role:       string(u.Role),
		IsVerified: u.IsVerified,
		IsApproved: u.IsApproved,
		IsAdmin:    u.IsAdmin,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func (d userDocument) toEntity() (*entity.User, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("parse user id %q: %w", d.ID, err)
	}
	return &entity.User{
		Base:         entity.Base{ID: id, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt},
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.Password,
		Role:         entity.UserRole(d.Role),
		IsVerified:   d.IsVerified,
		IsApproved:   d.IsApproved,
		IsAdmin:      d.IsAdmin,
	}, nil
}

type mongoUserRepository struct {
	coll *mongo.Collection
	log  *zap.Logger
}

func NewMongoUserRepository(db *mongo.Database, log *zap.Logger) UserRepository {
	return &mongoUserRepository{
		coll: db.Collection("users"),
		log:  log.With(zap.String("repository", "user")),
	}
}

func (r *mongoUserRepository) Create(ctx context.Context, user *entity.User) error {
	_, err := r.coll.InsertOne(ctx, toUserDocument(user))
	if isUniqueViolation(err) {
		return ErrDuplicateKey
	}
	if err != nil {
		r.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("email", user.Email),
		)
		return fmt.Errorf("create user %s: %w", user.Email, err)
	}
	return nil
}

func (r *mongoUserRepository) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	var doc userDocument
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.toEntity()
}

func (r *mongoUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := r.findOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		r.log.Error("Failed to find user by ID",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return nil, fmt.Errorf("find user by ID %s: %w", id.String(), err)
	}
	return user, nil
}

func (r *mongoUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	user, err := r.findOne(ctx, bson.M{"email": email})
	if err != nil {
		r.log.Error("Failed to find user by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find user by email %s: %w", email, err)
	}
	return user, nil
}

func (r *mongoUserRepository) FindByRole(ctx context.Context, role entity.UserRole) ([]*entity.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"role": string(role)}, opts)
	if err != nil {
		r.log.Error("Failed to find users by role",
			zap.Error(err),
			zap.String("role", string(role)),
		)
		return nil, fmt.Errorf("find users by role %s: %w", role, err)
	}
	defer cur.Close(ctx)

	var users []*entity.User
	for cur.Next(ctx) {
		var doc userDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		user, err := doc.toEntity()
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := cur.Err(); err != nil {
		r.log.Error("Cursor iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate users cursor: %w", err)
	}

	return users, nil
}

func (r *mongoUserRepository) MarkVerified(ctx context.Context, id uuid.UUID) error {
	return r.setField(ctx, id, "isVerified", true)
}

func (r *mongoUserRepository) SetApproval(ctx context.Context, id uuid.UUID, approved bool) error {
	return r.setField(ctx, id, "isApproved", approved)
}

func (r *mongoUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return r.setField(ctx, id, "password", passwordHash)
}

func (r *mongoUserRepository) UpdateName(ctx context.Context, id uuid.UUID, name string) error {
	return r.setField(ctx, id, "name", name)
}

func (r *mongoUserRepository) setField(ctx context.Context, id uuid.UUID, field string, value any) error {
	update := bson.M{"$set": bson.M{field: value, "updatedAt": time.Now()}}
	result, err := r.coll.UpdateByID(ctx, id.String(), update)
	if err != nil {
		r.log.Error("Failed to update user",
			zap.Error(err),
			zap.String("user_id", id.String()),
			zap.String("field", field),
		)
		return fmt.Errorf("update user %s %s: %w", id.String(), field, err)
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}
