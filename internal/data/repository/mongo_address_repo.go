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

// addressDetailsDocument is shared by saved addresses and the order snapshot.
type addressDetailsDocument struct {
	Type        string `bson:"type"`
	Street      string `bson:"street"`
	City        string `bson:"city"`
	State       string `bson:"state"`
	PostalCode  string `bson:"postalCode"`
	Country     string `bson:"country"`
	PhoneNumber string `bson:"phoneNumber"`
}

func newAddressDetailsDocument(d entity.AddressDetails) addressDetailsDocument {
	return addressDetailsDocument{
		Type:        d.Type,
		Street:      d.Street,
		City:        d.City,
		State:       d.State,
		PostalCode:  d.PostalCode,
		Country:     d.Country,
		PhoneNumber: d.PhoneNumber,
	}
}

func (d addressDetailsDocument) toEntity() entity.AddressDetails {
	return entity.AddressDetails{
		Type:        d.Type,
		Street:      d.Street,
		City:        d.City,
		State:       d.State,
		PostalCode:  d.PostalCode,
		Country:     d.Country,
		PhoneNumber: d.PhoneNumber,
	}
}

type addressDocument struct {
	ID        string                 `bson:"_id"`
	UserID    string                 `bson:"userId"`
	Details   addressDetailsDocument `bson:",inline"`
	CreatedAt time.Time              `bson:"createdAt"`
	UpdatedAt time.Time              `bson:"updatedAt"`
}

func (d addressDocument) toEntity() (*entity.Address, error) {
	ids, err := parseRefs("address", d.ID, d.UserID)
	if err != nil {
		return nil, err
	}
	return &entity.Address{
		Base:           entity.Base{ID: ids[0], CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt},
		UserID:         ids[1],
		AddressDetails: d.Details.toEntity(),
	}, nil
}

type mongoAddressRepository struct {
	coll *mongo.Collection
	log  *zap.Logger
}

func NewMongoAddressRepository(db *mongo.Database, log *zap.Logger) AddressRepository {
	return &mongoAddressRepository{
		coll: db.Collection("addresses"),
		log:  log.With(zap.String("repository", "address")),
	}
}

func (r *mongoAddressRepository) Create(ctx context.Context, address *entity.Address) error {
	doc := addressDocument{
		ID:        address.ID.String(),
		UserID:    address.UserID.String(),
		Details:   newAddressDetailsDocument(address.AddressDetails),
		CreatedAt: address.CreatedAt,
		UpdatedAt: address.UpdatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		r.log.Error("Failed to create address", zap.Error(err), zap.String("user_id", doc.UserID))
		return fmt.Errorf("create address for user %s: %w", doc.UserID, err)
	}
	return nil
}

func (r *mongoAddressRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Address, error) {
	var doc addressDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find address", zap.Error(err), zap.String("address_id", id.String()))
		return nil, fmt.Errorf("find address %s: %w", id.String(), err)
	}
	return doc.toEntity()
}

func (r *mongoAddressRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Address, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cur, err := r.coll.Find(ctx, bson.M{"userId": userID.String()}, opts)
	if err != nil {
		r.log.Error("Failed to find addresses", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("find addresses of user %s: %w", userID.String(), err)
	}
	return decodeAll(ctx, cur, addressDocument.toEntity)
}

func (r *mongoAddressRepository) Update(ctx context.Context, address *entity.Address) error {
	details := newAddressDetailsDocument(address.AddressDetails)
	update := bson.M{"$set": bson.M{
		"type":        details.Type,
		"street":      details.Street,
		"city":        details.City,
		"state":       details.State,
		"postalCode":  details.PostalCode,
		"country":     details.Country,
		"phoneNumber": details.PhoneNumber,
		"updatedAt":   address.UpdatedAt,
	}}

	result, err := r.coll.UpdateByID(ctx, address.ID.String(), update)
	if err != nil {
		r.log.Error("Failed to update address", zap.Error(err), zap.String("address_id", address.ID.String()))
		return fmt.Errorf("update address %s: %w", address.ID.String(), err)
	}
	if result.MatchedCount == 0 {
		return ErrAddressNotFound
	}
	return nil
}

func (r *mongoAddressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		r.log.Error("Failed to delete address", zap.Error(err), zap.String("address_id", id.String()))
		return fmt.Errorf("delete address %s: %w", id.String(), err)
	}
	if result.DeletedCount == 0 {
		return ErrAddressNotFound
	}
	return nil
}
