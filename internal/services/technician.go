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
	"aircon-admin/pkg/utils"
)

type TechnicianServiceInterface interface {
	GetTechnicians(ctx context.Context, filter types.Filter) ([]dto.TechnicianDTO, uint64, error)
	FindTechnician(ctx context.Context, id uint64) (*dto.TechnicianDTO, error)
	CreateTechnician(ctx context.Context, payload dto.CreateTechnicianDTO) (*dto.TechnicianDTO, error)
	UpdateTechnician(ctx context.Context, id uint64, payload dto.UpdateTechnicianDTO) (*dto.TechnicianDTO, error)
	DeleteTechnician(ctx context.Context, id uint64) error
}

type TechnicianService struct {
	txManager      repositories.TxManagerInterface
	technicianRepo repositories.TechnicianRepositoryInterface
	orderRepo      repositories.OrderRepositoryInterface
	logger         *zap.Logger
}

func NewTechnicianService(
	txManager repositories.TxManagerInterface,
	technicianRepo repositories.TechnicianRepositoryInterface,
	orderRepo repositories.OrderRepositoryInterface,
	logger *zap.Logger,
) TechnicianServiceInterface {
	return &TechnicianService{
		txManager:      txManager,
		technicianRepo: technicianRepo,
		orderRepo:      orderRepo,
		logger:         logger,
	}
}

func (s *TechnicianService) GetTechnicians(ctx context.Context, filter types.Filter) ([]dto.TechnicianDTO, uint64, error) {
	technicians, total, err := s.technicianRepo.GetTechnicians(ctx, filter)
	if err != nil {
		return nil, 0, s.failure("list technicians", err)
	}
	out := make([]dto.TechnicianDTO, len(technicians))
	for i, t := range technicians {
		out[i] = dto.NewTechnicianDTO(t)
	}
	return out, total, nil
}

func (s *TechnicianService) FindTechnician(ctx context.Context, id uint64) (*dto.TechnicianDTO, error) {
	technician, err := s.technicianRepo.FindTechnician(ctx, id)
	if err != nil {
		return nil, s.failure("find technician", err)
	}
	out := dto.NewTechnicianDTO(*technician)
	return &out, nil
}

func (s *TechnicianService) CreateTechnician(ctx context.Context, payload dto.CreateTechnicianDTO) (*dto.TechnicianDTO, error) {
	created, err := s.technicianRepo.CreateTechnician(ctx, nil, entities.Technician{
		Name:  strings.TrimSpace(payload.Name),
		Phone: utils.NormalizePhoneNumber(payload.Phone),
	})
	if err != nil {
		return nil, s.failure("create technician", err)
	}
	s.logger.Info("technician created", zap.Uint64("technicianID", created.ID))
	out := dto.NewTechnicianDTO(*created)
	return &out, nil
}

func (s *TechnicianService) UpdateTechnician(ctx context.Context, id uint64, payload dto.UpdateTechnicianDTO) (*dto.TechnicianDTO, error) {
	updated, err := s.technicianRepo.UpdateTechnician(ctx, entities.Technician{
		ID:    id,
		Name:  strings.TrimSpace(payload.Name),
		Phone: utils.NormalizePhoneNumber(payload.Phone),
	})
	if err != nil {
		return nil, s.failure("update technician", err)
	}
	out := dto.NewTechnicianDTO(*updated)
	return &out, nil
}

// DeleteTechnician refuses while live orders are still assigned to the technician.
// The count and the delete run under a row lock on the technician.
func (s *TechnicianService) DeleteTechnician(ctx context.Context, id uint64) error {
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.technicianRepo.LockTechnician(ctx, tx, id); err != nil {
			return err
		}
		assigned, err := s.orderRepo.CountLiveByTechnician(ctx, tx, id)
		if err != nil {
			return err
		}
		if assigned > 0 {
			return apperrors.NewHttpError(http.StatusConflict, "Technician still has assigned orders", apperrors.ErrConflict, map[string]interface{}{"orders": assigned})
		}
		return s.technicianRepo.DeleteTechnician(ctx, tx, id)
	})
	if err != nil {
		return s.failure("delete technician", err)
	}
	s.logger.Info("technician deleted", zap.Uint64("technicianID", id))
	return nil
}

func (s *TechnicianService) failure(action string, err error) error {
	if isClientError(err) {
		return err
	}
	s.logger.Error("technician operation failed", zap.String("action", action), zap.Error(err))
	return apperrors.ErrOperationFailed
}
