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

// CatalogService manages one flat list of named items. Brands and categories
// each get their own instance.
type CatalogService interface {
	List(ctx context.Context) ([]response.CatalogItemResponse, error)
	Create(ctx context.Context, req *request.CreateCatalogItemRequest) (*response.CatalogItemResponse, error)
}

type catalogService struct {
	repo  repository.CatalogRepository
	label string
	log   *zap.Logger
}

func NewCatalogService(repo repository.CatalogRepository, label string, log *zap.Logger) CatalogService {
	return &catalogService{
		repo:  repo,
		label: label,
		log:   log.With(zap.String("service", strings.ToLower(label))),
	}
}

func (s *catalogService) List(ctx context.Context) ([]response.CatalogItemResponse, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list catalog items", zap.Error(err))
		return nil, internalError("Error fetching " + strings.ToLower(s.label) + "s")
	}
	return response.CatalogItemsToResponse(items), nil
}

func (s *catalogService) Create(ctx context.Context, req *request.CreateCatalogItemRequest) (*response.CatalogItemResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	item := &entity.CatalogItem{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		Name:       strings.TrimSpace(req.Name),
	}

	if err := s.repo.Create(ctx, item); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, newError(ErrConflict, s.label+" already exists")
		}
		s.log.Error("Failed to create catalog item", zap.Error(err), zap.String("name", item.Name))
		return nil, internalError("Error adding " + strings.ToLower(s.label))
	}

	resp := response.CatalogItemToResponse(item)
	return &resp, nil
}
