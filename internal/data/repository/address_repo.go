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

var ErrAddressNotFound = errors.New("address not found")

type AddressRepository interface {
	Create(ctx context.Context, address *entity.Address) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Address, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Address, error)
	Update(ctx context.Context, address *entity.Address) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type addressRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAddressRepository(db database.PgxIface, log *zap.Logger) AddressRepository {
	return &addressRepository{
		db:  db,
		log: log.With(zap.String("repository", "address")),
	}
}

const addressColumns = `id, user_id, type, street, city, state, postal_code, country, phone_number, created_at, updated_at`

func scanAddress(row pgx.Row) (*entity.Address, error) {
	var address entity.Address
	err := row.Scan(
		&address.ID,
		&address.UserID,
		&address.Type,
		&address.Street,
		&address.City,
		&address.State,
		&address.PostalCode,
		&address.Country,
		&address.PhoneNumber,
		&address.CreatedAt,
		&address.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &address, nil
}

func (r *addressRepository) Create(ctx context.Context, address *entity.Address) error {
	query := `
		INSERT INTO addresses (` + addressColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		address.ID,
		address.UserID,
		address.Type,
		address.Street,
		address.City,
		address.State,
		address.PostalCode,
		address.Country,
		address.PhoneNumber,
		address.CreatedAt,
		address.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create address", zap.Error(err), zap.String("user_id", address.UserID.String()))
		return fmt.Errorf("create address for user %s: %w", address.UserID.String(), err)
	}

	return nil
}

func (r *addressRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE id = $1`

	address, err := scanAddress(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find address", zap.Error(err), zap.String("address_id", id.String()))
		return nil, fmt.Errorf("find address %s: %w", id.String(), err)
	}

	return address, nil
}

func (r *addressRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE user_id = $1 ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find addresses", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("find addresses of user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var addresses []*entity.Address
	for rows.Next() {
		address, err := scanAddress(rows)
		if err != nil {
			r.log.Error("Failed to scan address row", zap.Error(err))
			return nil, fmt.Errorf("scan address row: %w", err)
		}
		addresses = append(addresses, address)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate address rows: %w", err)
	}

	return addresses, nil
}

func (r *addressRepository) Update(ctx context.Context, address *entity.Address) error {
	query := `
		UPDATE addresses
		SET type = $2, street = $3, city = $4, state = $5, postal_code = $6,
		    country = $7, phone_number = $8, updated_at = $9
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		address.ID,
		address.Type,
		address.Street,
		address.City,
		address.State,
		address.PostalCode,
		address.Country,
		address.PhoneNumber,
		address.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update address", zap.Error(err), zap.String("address_id", address.ID.String()))
		return fmt.Errorf("update address %s: %w", address.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrAddressNotFound
	}

	return nil
}

func (r *addressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM addresses WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete address", zap.Error(err), zap.String("address_id", id.String()))
		return fmt.Errorf("delete address %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrAddressNotFound
	}

	return nil
}
