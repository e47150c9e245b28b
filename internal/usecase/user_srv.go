package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"ecommerce-rbac/internal/data/entity"
	"ecommerce-rbac/internal/data/repository"
	"ecommerce-rbac/internal/dto/request"
	"ecommerce-rbac/internal/dto/response"
	"ecommerce-rbac/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	GetUser(ctx context.Context, id uuid.UUID) (*response.SanitizedUser, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req *request.UpdateUserRequest) (*response.SanitizedUser, error)
	ListVendors(ctx context.Context) ([]response.SanitizedUser, error)
	ApproveVendor(ctx context.Context, vendorID string, req *request.ApproveVendorRequest) (*response.SanitizedUser, error)

	// SeedAdmin creates the bootstrap administrator when it does not exist yet.
	SeedAdmin(ctx context.Context, seed utils.SeedConfig) (bool, error)

	// UserOwner backs the profile ownership guard: a user owns their own record.
	UserOwner(ctx context.Context, id uuid.UUID) (uuid.UUID, bool, error)
}

type userService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		log:      log.With(zap.String("service", "user")),
	}
}

func (us *userService) GetUser(ctx context.Context, id uuid.UUID) (*response.SanitizedUser, error) {
	user, err := us.userRepo.FindByID(ctx, id)
	if err != nil {
		us.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", id.String()))
		return nil, internalError("Error getting your details, please try again later")
	}
	if user == nil {
		return nil, newError(ErrNotFound, "User not found")
	}

	sanitized := response.NewSanitizedUser(user)
	return &sanitized, nil
}

func (us *userService) UpdateUser(ctx context.Context, id uuid.UUID, req *request.UpdateUserRequest) (*response.SanitizedUser, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, validationError(map[string]string{"name": "This field is required"})
		}
		if err := us.userRepo.UpdateName(ctx, id, name); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return nil, newError(ErrNotFound, "User not found")
			}
			us.log.Error("Failed to update user", zap.Error(err), zap.String("user_id", id.String()))
			return nil, internalError("Error updating your details, please try again later")
		}
	}

	return us.GetUser(ctx, id)
}

func (us *userService) ListVendors(ctx context.Context) ([]response.SanitizedUser, error) {
	vendors, err := us.userRepo.FindByRole(ctx, entity.RoleVendor)
	if err != nil {
		us.log.Error("Failed to list vendors", zap.Error(err))
		return nil, internalError("Error fetching vendors")
	}
	return response.NewSanitizedUsers(vendors), nil
}

func (us *userService) ApproveVendor(ctx context.Context, rawID string, req *request.ApproveVendorRequest) (*response.SanitizedUser, error) {
	approved, ok := req.IsApproved.(bool)
	if !ok {
		return nil, newError(ErrBadRequest, "isApproved must be a boolean value")
	}

	vendorID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, newError(ErrNotFound, "Vendor not found")
	}

	vendor, err := us.userRepo.FindByID(ctx, vendorID)
	if err != nil {
		us.log.Error("Failed to find vendor", zap.Error(err), zap.String("vendor_id", rawID))
		return nil, internalError("Error updating vendor status")
	}
	if vendor == nil {
		return nil, newError(ErrNotFound, "Vendor not found")
	}
	if vendor.Role != entity.RoleVendor {
		return nil, newError(ErrBadRequest, "User is not a vendor")
	}

	// single-field write, concurrent approve/revoke is last-write-wins
	if err := us.userRepo.SetApproval(ctx, vendorID, approved); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, newError(ErrNotFound, "Vendor not found")
		}
		us.log.Error("Failed to set vendor approval", zap.Error(err), zap.String("vendor_id", vendorID.String()))
		return nil, internalError("Error updating vendor status")
	}
	vendor.IsApproved = approved

	us.log.Info("Vendor approval changed",
		zap.String("vendor_id", vendorID.String()),
		zap.Bool("approved", approved),
	)

	sanitized := response.NewSanitizedUser(vendor)
	return &sanitized, nil
}

func (us *userService) SeedAdmin(ctx context.Context, seed utils.SeedConfig) (bool, error) {
	if seed.AdminEmail == "" || seed.AdminPassword == "" {
		return false, nil
	}
	email := normalizeEmail(seed.AdminEmail)

	existing, err := us.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	hashed, err := utils.HashPassword(seed.AdminPassword)
	if err != nil {
		return false, err
	}

	now := time.Now()
	admin := &entity.User{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:         seed.AdminName,
		Email:        email,
		PasswordHash: hashed,
		Role:         entity.RoleAdmin,
		IsVerified:   true,
		IsApproved:   true,
		IsAdmin:      true,
	}
	if err := us.userRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return false, nil
		}
		return false, err
	}

	us.log.Info("Admin account seeded", zap.String("user_id", admin.ID.String()))
	return true, nil
}

func (us *userService) UserOwner(ctx context.Context, id uuid.UUID) (uuid.UUID, bool, error) {
	user, err := us.userRepo.FindByID(ctx, id)
	if err != nil || user == nil {
		return uuid.Nil, false, err
	}
	return user.ID, true, nil
}
