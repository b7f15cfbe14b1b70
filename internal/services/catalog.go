package services

import (
	"context"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"aircon-admin/internal/dto"
	"aircon-admin/internal/entities"
	"aircon-admin/internal/repositories"
	apperrors "aircon-admin/pkg/errors"
	"aircon-admin/pkg/types"
)

type CatalogServiceInterface interface {
	GetCategories(ctx context.Context, filter types.Filter) ([]dto.CategoryDTO, uint64, error)
	FindCategory(ctx context.Context, id uint64) (*dto.CategoryDTO, error)
	CreateCategory(ctx context.Context, payload dto.CreateCategoryDTO) (*dto.CategoryDTO, error)
	UpdateCategory(ctx context.Context, id uint64, payload dto.UpdateCategoryDTO) (*dto.CategoryDTO, error)
	DeleteCategory(ctx context.Context, id uint64) error

	GetServices(ctx context.Context, filter types.Filter) ([]dto.ServiceDTO, uint64, error)
	FindService(ctx context.Context, id uint64) (*dto.ServiceDTO, error)
	CreateService(ctx context.Context, payload dto.CreateServiceDTO) (*dto.ServiceDTO, error)
	UpdateService(ctx context.Context, id uint64, payload dto.UpdateServiceDTO) (*dto.ServiceDTO, error)
	DeleteService(ctx context.Context, id uint64) error
}

type CatalogService struct {
	txManager    repositories.TxManagerInterface
	categoryRepo repositories.CategoryRepositoryInterface
	serviceRepo  repositories.ServiceRepositoryInterface
	orderRepo    repositories.OrderRepositoryInterface
	logger       *zap.Logger
}

func NewCatalogService(
	txManager repositories.TxManagerInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	serviceRepo repositories.ServiceRepositoryInterface,
	orderRepo repositories.OrderRepositoryInterface,
	logger *zap.Logger,
) CatalogServiceInterface {
	return &CatalogService{
		txManager:    txManager,
		categoryRepo: categoryRepo,
		serviceRepo:  serviceRepo,
		orderRepo:    orderRepo,
		logger:       logger,
	}
}

func (s *CatalogService) GetCategories(ctx context.Context, filter types.Filter) ([]dto.CategoryDTO, uint64, error) {
	categories, total, err := s.categoryRepo.GetCategories(ctx, filter)
	if err != nil {
		return nil, 0, s.failure("list categories", err)
	}
	out := make([]dto.CategoryDTO, len(categories))
	for i, c := range categories {
		out[i] = dto.NewCategoryDTO(c)
	}
	return out, total, nil
}

func (s *CatalogService) FindCategory(ctx context.Context, id uint64) (*dto.CategoryDTO, error) {
	category, err := s.categoryRepo.FindCategory(ctx, id)
	if err != nil {
		return nil, s.failure("find category", err)
	}
	out := dto.NewCategoryDTO(*category)
	return &out, nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, payload dto.CreateCategoryDTO) (*dto.CategoryDTO, error) {
	category, err := s.categoryRepo.CreateCategory(ctx, entities.Category{Name: strings.TrimSpace(payload.Name)})
	if err != nil {
		return nil, s.failure("create category", err)
	}
	s.logger.Info("category created", zap.Uint64("categoryID", category.ID))
	out := dto.NewCategoryDTO(*category)
	return &out, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id uint64, payload dto.UpdateCategoryDTO) (*dto.CategoryDTO, error) {
	category, err := s.categoryRepo.UpdateCategory(ctx, entities.Category{ID: id, Name: strings.TrimSpace(payload.Name)})
	if err != nil {
		return nil, s.failure("update category", err)
	}
	out := dto.NewCategoryDTO(*category)
	return &out, nil
}

// DeleteCategory refuses while live services still belong to the category.
func (s *CatalogService) DeleteCategory(ctx context.Context, id uint64) error {
	if _, err := s.categoryRepo.FindCategory(ctx, id); err != nil {
		return s.failure("delete category", err)
	}
	inUse, err := s.categoryRepo.CountLiveServices(ctx, id)
	if err != nil {
		return s.failure("delete category", err)
	}
	if inUse > 0 {
		return apperrors.NewHttpError(http.StatusConflict, "Category still has services", apperrors.ErrConflict, map[string]interface{}{"services": inUse})
	}
	if err := s.categoryRepo.DeleteCategory(ctx, id); err != nil {
		return s.failure("delete category", err)
	}
	s.logger.Info("category deleted", zap.Uint64("categoryID", id))
	return nil
}

func (s *CatalogService) GetServices(ctx context.Context, filter types.Filter) ([]dto.ServiceDTO, uint64, error) {
	services, total, err := s.serviceRepo.GetServices(ctx, filter)
	if err != nil {
		return nil, 0, s.failure("list services", err)
	}
	out := make([]dto.ServiceDTO, len(services))
	for i, svc := range services {
		out[i] = dto.NewServiceDTO(svc)
	}
	return out, total, nil
}

func (s *CatalogService) FindService(ctx context.Context, id uint64) (*dto.ServiceDTO, error) {
	svc, err := s.serviceRepo.FindService(ctx, id)
	if err != nil {
		return nil, s.failure("find service", err)
	}
	out := dto.NewServiceDTO(*svc)
	return &out, nil
}

func (s *CatalogService) CreateService(ctx context.Context, payload dto.CreateServiceDTO) (*dto.ServiceDTO, error) {
	created, err := s.serviceRepo.CreateService(ctx, entities.Service{
		Title:      strings.TrimSpace(payload.Title),
		CategoryID: payload.CategoryID,
		Price:      payload.Price,
	})
	if err != nil {
		return nil, s.failure("create service", err)
	}
	s.logger.Info("service created", zap.Uint64("serviceID", created.ID), zap.String("price", created.Price.String()))
	return s.FindService(ctx, created.ID)
}

// UpdateService changes the catalog entry. Items already on orders keep their price.
func (s *CatalogService) UpdateService(ctx context.Context, id uint64, payload dto.UpdateServiceDTO) (*dto.ServiceDTO, error) {
	updated, err := s.serviceRepo.UpdateService(ctx, entities.Service{
		ID:         id,
		Title:      strings.TrimSpace(payload.Title),
		CategoryID: payload.CategoryID,
		Price:      payload.Price,
	})
	if err != nil {
		return nil, s.failure("update service", err)
	}
	s.logger.Info("service updated", zap.Uint64("serviceID", id), zap.String("price", updated.Price.String()))
	return s.FindService(ctx, id)
}

// DeleteService refuses while live orders still have the service on an item.
// The count and the delete run under a row lock on the service.
func (s *CatalogService) DeleteService(ctx context.Context, id uint64) error {
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.serviceRepo.LockService(ctx, tx, id); err != nil {
			return err
		}
		inUse, err := s.orderRepo.CountLiveByService(ctx, tx, id)
		if err != nil {
			return err
		}
		if inUse > 0 {
			return apperrors.NewHttpError(http.StatusConflict, "Service is used by existing orders", apperrors.ErrConflict, map[string]interface{}{"orders": inUse})
		}
		return s.serviceRepo.DeleteService(ctx, tx, id)
	})
	if err != nil {
		return s.failure("delete service", err)
	}
	s.logger.Info("service deleted", zap.Uint64("serviceID", id))
	return nil
}

func (s *CatalogService) failure(action string, err error) error {
	if isClientError(err) {
		return err
	}
	s.logger.Error("catalog operation failed", zap.String("action", action), zap.Error(err))
	return apperrors.ErrOperationFailed
}
