package usecase

import (
	"context"
	"errors"
	"time"

	"ecommerce-rbac/internal/data/entity"
	"ecommerce-rbac/internal/data/repository"
	"ecommerce-rbac/internal/dto/request"
	"ecommerce-rbac/internal/dto/response"
	"ecommerce-rbac/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AddressService interface {
	CreateAddress(ctx context.Context, caller *utils.Identity, req *request.CreateAddressRequest) (*response.AddressResponse, error)
	GetUserAddresses(ctx context.Context, userID uuid.UUID) ([]response.AddressResponse, error)
	UpdateAddress(ctx context.Context, addressID uuid.UUID, req *request.UpdateAddressRequest) (*response.AddressResponse, error)
	DeleteAddress(ctx context.Context, addressID uuid.UUID) error

	AddressOwner(ctx context.Context, id uuid.UUID) (uuid.UUID, bool, error)
}

type addressService struct {
	repo repository.AddressRepository
	log  *zap.Logger
}

func NewAddressService(repo repository.AddressRepository, log *zap.Logger) AddressService {
	return &addressService{
		repo: repo,
		log:  log.With(zap.String("service", "address")),
	}
}

func (s *addressService) CreateAddress(ctx context.Context, caller *utils.Identity, req *request.CreateAddressRequest) (*response.AddressResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create address validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	now := time.Now()
	address := &entity.Address{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID: caller.UserID,
		AddressDetails: entity.AddressDetails{
			Type:        req.Type,
			Street:      req.Street,
			City:        req.City,
			State:       req.State,
			PostalCode:  req.PostalCode,
			Country:     req.Country,
			PhoneNumber: req.PhoneNumber,
		},
	}

	if err := s.repo.Create(ctx, address); err != nil {
		s.log.Error("Failed to create address", zap.Error(err), zap.String("user_id", caller.UserID.String()))
		return nil, internalError("Error adding address, please try again later")
	}

	resp := response.AddressToResponse(address)
	return &resp, nil
}

func (s *addressService) GetUserAddresses(ctx context.Context, userID uuid.UUID) ([]response.AddressResponse, error) {
	addresses, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to get addresses", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, internalError("Error fetching addresses, please try again later")
	}
	return response.AddressesToResponse(addresses), nil
}

func (s *addressService) UpdateAddress(ctx context.Context, addressID uuid.UUID, req *request.UpdateAddressRequest) (*response.AddressResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	address, err := s.repo.FindByID(ctx, addressID)
	if err != nil {
		s.log.Error("Failed to find address", zap.Error(err), zap.String("address_id", addressID.String()))
		return nil, internalError("Error updating address, please try again later")
	}
	if address == nil {
		return nil, newError(ErrNotFound, "Address not found")
	}

	for field, value := range map[*string]*string{
		&address.Type:        req.Type,
		&address.Street:      req.Street,
		&address.City:        req.City,
		&address.State:       req.State,
		&address.PostalCode:  req.PostalCode,
		&address.Country:     req.Country,
		&address.PhoneNumber: req.PhoneNumber,
	} {
		if value != nil {
			*field = *value
		}
	}
	address.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, address); err != nil {
		if errors.Is(err, repository.ErrAddressNotFound) {
			return nil, newError(ErrNotFound, "Address not found")
		}
		s.log.Error("Failed to update address", zap.Error(err), zap.String("address_id", addressID.String()))
		return nil, internalError("Error updating address, please try again later")
	}

	resp := response.AddressToResponse(address)
	return &resp, nil
}

func (s *addressService) DeleteAddress(ctx context.Context, addressID uuid.UUID) error {
	if err := s.repo.Delete(ctx, addressID); err != nil {
		if errors.Is(err, repository.ErrAddressNotFound) {
			return newError(ErrNotFound, "Address not found")
		}
		s.log.Error("Failed to delete address", zap.Error(err), zap.String("address_id", addressID.String()))
		return internalError("Error deleting address, please try again later")
	}
	return nil
}

func (s *addressService) AddressOwner(ctx context.Context, id uuid.UUID) (uuid.UUID, bool, error) {
	address, err := s.repo.FindByID(ctx, id)
	if err != nil || address == nil {
		return uuid.Nil, false, err
	}
	return address.UserID, true, nil
}
