package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"aircon-admin/internal/authz"
	"aircon-admin/internal/dto"
	"aircon-admin/internal/entities"
	"aircon-admin/internal/pricing"
	"aircon-admin/internal/repositories"
	"aircon-admin/pkg/constants"
	apperrors "aircon-admin/pkg/errors"
	"aircon-admin/pkg/metrics"
	"aircon-admin/pkg/types"
	"aircon-admin/pkg/utils"
)

const (
	msgNotEditable     = "is not editable"
	msgDerivedTotal    = "is calculated from the items and cannot be set"
	msgInvalidDate     = "must be a date in YYYY-MM-DD format"
	msgUnknownItemLine = "refers to a line that is not part of this order"
	msgRetiredService  = "refers to a service that is no longer offered"
	msgRetiredTech     = "refers to a technician that is no longer available"
)

type OrderServiceInterface interface {
	GetOrders(ctx context.Context, actor authz.Actor, filter types.Filter) ([]dto.OrderDTO, uint64, error)
	FindOrder(ctx context.Context, actor authz.Actor, id uint64) (*dto.OrderDTO, error)
	CreateOrder(ctx context.Context, actor authz.Actor, payload dto.CreateOrderDTO) (*dto.OrderDTO, error)
	UpdateOrder(ctx context.Context, actor authz.Actor, id uint64, payload dto.UpdateOrderDTO) (*dto.OrderDTO, error)
	AddItem(ctx context.Context, actor authz.Actor, orderID uint64, payload dto.AddOrderItemDTO) (*dto.OrderDTO, error)
	UpdateItem(ctx context.Context, actor authz.Actor, orderID, itemID uint64, payload dto.UpdateOrderItemDTO) (*dto.OrderDTO, error)
	RemoveItem(ctx context.Context, actor authz.Actor, orderID, itemID uint64) (*dto.OrderDTO, error)
	QuoteOrder(ctx context.Context, actor authz.Actor, payload dto.QuoteOrderDTO) (*dto.QuoteDTO, error)
	DeleteOrder(ctx context.Context, actor authz.Actor, id uint64) error
	DeleteOrders(ctx context.Context, actor authz.Actor, ids []uint64) (int64, error)
	ExportOrders(ctx context.Context, actor authz.Actor, filter types.Filter) ([]entities.Order, error)
}

type OrderService struct {
	txManager repositories.TxManagerInterface
	orderRepo repositories.OrderRepositoryInterface
	prices    pricing.PriceLookup
	logger    *zap.Logger
}

func NewOrderService(
	txManager repositories.TxManagerInterface,
	orderRepo repositories.OrderRepositoryInterface,
	prices pricing.PriceLookup,
	logger *zap.Logger,
) OrderServiceInterface {
	return &OrderService{
		txManager: txManager,
		orderRepo: orderRepo,
		prices:    prices,
		logger:    logger,
	}
}

func (s *OrderService) GetOrders(ctx context.Context, actor authz.Actor, filter types.Filter) ([]dto.OrderDTO, uint64, error) {
	orders, total, err := s.orderRepo.GetOrders(ctx, filter, authz.ScopeVisibleOrders(actor))
	if err != nil {
		s.logger.Error("failed to list orders", zap.Uint64("actorID", actor.ID), zap.Error(err))
		return nil, 0, apperrors.ErrOperationFailed
	}
	return dto.NewOrderDTOs(orders, actor.Role), total, nil
}

func (s *OrderService) FindOrder(ctx context.Context, actor authz.Actor, id uint64) (*dto.OrderDTO, error) {
	order, err := s.loadOrder(ctx, nil, actor, id)
	if err != nil {
		return nil, s.readFailure(err, id)
	}
	out := dto.NewOrderDTO(*order, actor.Role)
	return &out, nil
}

func (s *OrderService) CreateOrder(ctx context.Context, actor authz.Actor, payload dto.CreateOrderDTO) (*dto.OrderDTO, error) {
	vErr := &apperrors.ValidationError{}

	name := actor.Name
	if payload.Name != nil {
		if authz.FieldEditable(actor.Role, authz.FieldName) {
			name = strings.TrimSpace(*payload.Name)
		} else if strings.TrimSpace(*payload.Name) != actor.Name {
			vErr.Add(string(authz.FieldName), msgNotEditable)
		}
	}

	requireEditable(actor.Role, vErr,
		authz.FieldAddress, authz.FieldPhone, authz.FieldBrandAC,
		authz.FieldTechnicianID, authz.FieldVisitDate,
	)
	if payload.Note.Valid {
		requireEditable(actor.Role, vErr, authz.FieldNote)
	}
	if len(payload.Items) > 0 {
		requireEditable(actor.Role, vErr, authz.FieldItems)
	}
	if payload.TotalPrice != nil {
		vErr.Add(string(authz.FieldTotalPrice), msgDerivedTotal)
	}

	status := constants.OrderStatusOrdering
	if payload.Status != nil {
		if authz.FieldEditable(actor.Role, authz.FieldStatus) {
			status = constants.OrderStatus(*payload.Status)
		} else {
			vErr.Add(string(authz.FieldStatus), msgNotEditable)
		}
	}

	visitDate, err := time.Parse(utils.DateLayout, payload.VisitDate)
	if err != nil {
		vErr.Add(string(authz.FieldVisitDate), msgInvalidDate)
	}
	if vErr.HasErrors() {
		return nil, vErr
	}

	serviceIDs := make([]uint64, len(payload.Items))
	for i, item := range payload.Items {
		serviceIDs[i] = item.ServiceID
	}

	var created *entities.Order
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.requireLiveReferences(ctx, tx, string(authz.FieldItems), serviceIDs, payload.TechnicianID); err != nil {
			return err
		}

		draft := pricing.NewDraft(s.prices)
		for _, item := range payload.Items {
			if _, err := draft.Add(ctx, item.ServiceID, item.Quantity); err != nil {
				return draftError(string(authz.FieldItems), err)
			}
		}

		order := entities.Order{
			Name:         name,
			Address:      strings.TrimSpace(payload.Address),
			Phone:        utils.NormalizePhoneNumber(payload.Phone),
			Note:         blankToNull(payload.Note),
			BrandAC:      strings.TrimSpace(payload.BrandAC),
			TechnicianID: payload.TechnicianID,
			VisitDate:    visitDate,
			TotalPrice:   draft.Total(),
			Status:       status,
		}
		id, err := s.orderRepo.CreateOrder(ctx, tx, order)
		if err != nil {
			return err
		}
		if _, err := s.orderRepo.SyncItems(ctx, tx, id, linesToItems(draft.Lines())); err != nil {
			return err
		}
		created, err = s.loadOrder(ctx, tx, actor, id)
		return err
	})
	if err != nil {
		return nil, s.writeFailure(constants.OperationOrderCreate, err, zap.Uint64("actorID", actor.ID))
	}

	metrics.RecordOrderOperation(constants.OperationOrderCreate, true)
	s.logger.Info("order created",
		zap.Uint64("orderID", created.ID),
		zap.Uint64("actorID", actor.ID),
		zap.String("total", created.TotalPrice.String()),
	)
	out := dto.NewOrderDTO(*created, actor.Role)
	return &out, nil
}

// UpdateOrder applies a partial update. Fields the role may not edit are accepted only
// when they repeat the stored value. The total is recomputed from the stored items.
func (s *OrderService) UpdateOrder(ctx context.Context, actor authz.Actor, id uint64, payload dto.UpdateOrderDTO) (*dto.OrderDTO, error) {
	scope := authz.ScopeVisibleOrders(actor)

	var updated *entities.Order
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		order, err := s.orderRepo.LockOrder(ctx, tx, id, scope)
		if err != nil {
			return err
		}

		vErr := &apperrors.ValidationError{}
		applyString(actor.Role, vErr, authz.FieldName, payload.Name, &order.Name)
		applyString(actor.Role, vErr, authz.FieldAddress, payload.Address, &order.Address)
		applyString(actor.Role, vErr, authz.FieldBrandAC, payload.BrandAC, &order.BrandAC)
		if payload.Phone != nil {
			normalized := utils.NormalizePhoneNumber(*payload.Phone)
			applyString(actor.Role, vErr, authz.FieldPhone, &normalized, &order.Phone)
		}
		if payload.Note != nil {
			note := blankToNull(null.StringFrom(*payload.Note))
			if note != order.Note && !authz.FieldEditable(actor.Role, authz.FieldNote) {
				vErr.Add(string(authz.FieldNote), msgNotEditable)
			}
			order.Note = note
		}
		var newTechnician uint64
		if payload.TechnicianID != nil && *payload.TechnicianID != order.TechnicianID {
			if authz.FieldEditable(actor.Role, authz.FieldTechnicianID) {
				order.TechnicianID = *payload.TechnicianID
				newTechnician = order.TechnicianID
			} else {
				vErr.Add(string(authz.FieldTechnicianID), msgNotEditable)
			}
		}
		if payload.VisitDate != nil {
			visitDate, err := time.Parse(utils.DateLayout, *payload.VisitDate)
			switch {
			case err != nil:
				vErr.Add(string(authz.FieldVisitDate), msgInvalidDate)
			case !visitDate.Equal(order.VisitDate) && !authz.FieldEditable(actor.Role, authz.FieldVisitDate):
				vErr.Add(string(authz.FieldVisitDate), msgNotEditable)
			default:
				order.VisitDate = visitDate
			}
		}
		if payload.Status != nil && constants.OrderStatus(*payload.Status) != order.Status {
			if authz.FieldEditable(actor.Role, authz.FieldStatus) {
				order.Status = constants.OrderStatus(*payload.Status)
			} else {
				vErr.Add(string(authz.FieldStatus), msgNotEditable)
			}
		}
		if payload.TotalPrice != nil {
			total, err := decimal.NewFromString(*payload.TotalPrice)
			if err != nil || !total.Equal(order.TotalPrice) {
				vErr.Add(string(authz.FieldTotalPrice), msgDerivedTotal)
			}
		}
		if payload.Items != nil && !authz.FieldEditable(actor.Role, authz.FieldItems) {
			vErr.Add(string(authz.FieldItems), msgNotEditable)
		}
		if vErr.HasErrors() {
			return vErr
		}

		current, err := s.orderRepo.GetItems(ctx, tx, id)
		if err != nil {
			return err
		}
		var added []uint64
		if payload.Items != nil {
			added = addedServices(current, payload.Items)
		}
		if err := s.requireLiveReferences(ctx, tx, string(authz.FieldItems), added, newTechnician); err != nil {
			return err
		}

		if err := s.orderRepo.UpdateOrder(ctx, tx, *order); err != nil {
			return err
		}

		draft := pricing.LoadDraft(s.prices, itemsToLines(current))
		if payload.Items != nil {
			draft, err = s.replaceLines(ctx, current, payload.Items)
			if err != nil {
				return err
			}
			if _, err := s.orderRepo.SyncItems(ctx, tx, id, linesToItems(draft.Lines())); err != nil {
				return err
			}
		}
		if err := s.orderRepo.UpdateTotal(ctx, tx, id, draft.Total()); err != nil {
			return err
		}

		updated, err = s.loadOrder(ctx, tx, actor, id)
		return err
	})
	if err != nil {
		return nil, s.writeFailure(constants.OperationOrderUpdate, err, zap.Uint64("orderID", id))
	}

	metrics.RecordOrderOperation(constants.OperationOrderUpdate, true)
	s.logger.Info("order updated", zap.Uint64("orderID", id), zap.Uint64("actorID", actor.ID))
	out := dto.NewOrderDTO(*updated, actor.Role)
	return &out, nil
}

func (s *OrderService) AddItem(ctx context.Context, actor authz.Actor, orderID uint64, payload dto.AddOrderItemDTO) (*dto.OrderDTO, error) {
	return s.mutateItems(ctx, actor, orderID, constants.OperationOrderItemAdd, []uint64{payload.ServiceID}, func(draft *pricing.Draft) error {
		if _, err := draft.Add(ctx, payload.ServiceID, payload.Quantity); err != nil {
			return draftError("service_id", err)
		}
		return nil
	})
}

func (s *OrderService) UpdateItem(ctx context.Context, actor authz.Actor, orderID, itemID uint64, payload dto.UpdateOrderItemDTO) (*dto.OrderDTO, error) {
	var serviceIDs []uint64
	if payload.ServiceID != nil {
		serviceIDs = []uint64{*payload.ServiceID}
	}
	return s.mutateItems(ctx, actor, orderID, constants.OperationOrderItemUpdate, serviceIDs, func(draft *pricing.Draft) error {
		idx := draft.IndexOfItem(itemID)
		if idx < 0 {
			return apperrors.ErrNotFound
		}
		if payload.ServiceID != nil {
			if err := draft.SetService(ctx, idx, *payload.ServiceID); err != nil {
				return draftError("service_id", err)
			}
		}
		if payload.Quantity != nil {
			if err := draft.SetQuantity(idx, *payload.Quantity); err != nil {
				return draftError("quantity", err)
			}
		}
		return nil
	})
}

func (s *OrderService) RemoveItem(ctx context.Context, actor authz.Actor, orderID, itemID uint64) (*dto.OrderDTO, error) {
	return s.mutateItems(ctx, actor, orderID, constants.OperationOrderItemRemove, nil, func(draft *pricing.Draft) error {
		idx := draft.IndexOfItem(itemID)
		if idx < 0 {
			return apperrors.ErrNotFound
		}
		return draft.Remove(idx)
	})
}

// QuoteOrder prices a draft the way CreateOrder would, without saving anything.
func (s *OrderService) QuoteOrder(ctx context.Context, actor authz.Actor, payload dto.QuoteOrderDTO) (*dto.QuoteDTO, error) {
	if len(payload.Items) > 0 && !authz.FieldEditable(actor.Role, authz.FieldItems) {
		return nil, apperrors.NewValidationError(string(authz.FieldItems), msgNotEditable)
	}

	serviceIDs := make([]uint64, len(payload.Items))
	for i, item := range payload.Items {
		serviceIDs[i] = item.ServiceID
	}
	if err := s.requireLiveReferences(ctx, nil, string(authz.FieldItems), serviceIDs, 0); err != nil {
		if isClientError(err) {
			return nil, err
		}
		s.logger.Error("failed to quote order", zap.Uint64("actorID", actor.ID), zap.Error(err))
		return nil, apperrors.ErrOperationFailed
	}

	draft := pricing.NewDraft(s.prices)
	for _, item := range payload.Items {
		if _, err := draft.Add(ctx, item.ServiceID, item.Quantity); err != nil {
			return nil, draftError(string(authz.FieldItems), err)
		}
	}

	lines := draft.Lines()
	out := &dto.QuoteDTO{
		Items:      make([]dto.QuoteLineDTO, len(lines)),
		Total:      draft.Total(),
		TotalLabel: utils.FormatRupiah(draft.Total()),
	}
	for i, l := range lines {
		out.Items[i] = dto.QuoteLineDTO{
			ServiceID: l.ServiceID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Subtotal:  l.Subtotal(),
		}
	}
	return out, nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, actor authz.Actor, id uint64) error {
	deleted, err := s.orderRepo.DeleteOrders(ctx, nil, []uint64{id}, authz.ScopeVisibleOrders(actor))
	if err != nil {
		return s.writeFailure(constants.OperationOrderDelete, err, zap.Uint64("orderID", id))
	}
	if deleted == 0 {
		return apperrors.ErrNotFound
	}

	metrics.RecordOrderOperation(constants.OperationOrderDelete, true)
	s.logger.Info("order deleted", zap.Uint64("orderID", id), zap.Uint64("actorID", actor.ID))
	return nil
}

// DeleteOrders soft deletes the listed orders that the actor can see. Others are skipped.
func (s *OrderService) DeleteOrders(ctx context.Context, actor authz.Actor, ids []uint64) (int64, error) {
	deleted, err := s.orderRepo.DeleteOrders(ctx, nil, ids, authz.ScopeVisibleOrders(actor))
	if err != nil {
		return 0, s.writeFailure(constants.OperationOrderBulkDelete, err, zap.Int("requested", len(ids)))
	}

	metrics.RecordOrderOperation(constants.OperationOrderBulkDelete, true)
	s.logger.Info("orders deleted",
		zap.Int("requested", len(ids)),
		zap.Int64("deleted", deleted),
		zap.Uint64("actorID", actor.ID),
	)
	return deleted, nil
}

func (s *OrderService) ExportOrders(ctx context.Context, actor authz.Actor, filter types.Filter) ([]entities.Order, error) {
	filter.WithPagination = false
	orders, _, err := s.orderRepo.GetOrders(ctx, filter, authz.ScopeVisibleOrders(actor))
	if err != nil {
		return nil, s.writeFailure(constants.OperationOrderExport, err, zap.Uint64("actorID", actor.ID))
	}
	metrics.RecordOrderOperation(constants.OperationOrderExport, true)
	return orders, nil
}

// mutateItems runs one item edit: lock the order, load its lines into a draft, apply fn,
// then write the lines and the recomputed total in the same transaction. Services the
// edit brings onto the order must still be in the catalog.
func (s *OrderService) mutateItems(ctx context.Context, actor authz.Actor, orderID uint64, operation string, serviceIDs []uint64, fn func(draft *pricing.Draft) error) (*dto.OrderDTO, error) {
	if !authz.FieldEditable(actor.Role, authz.FieldItems) {
		metrics.RecordOrderOperation(operation, false)
		return nil, apperrors.NewValidationError(string(authz.FieldItems), msgNotEditable)
	}
	scope := authz.ScopeVisibleOrders(actor)

	var updated *entities.Order
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := s.orderRepo.LockOrder(ctx, tx, orderID, scope); err != nil {
			return err
		}
		current, err := s.orderRepo.GetItems(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if err := s.requireLiveReferences(ctx, tx, "service_id", newServices(current, serviceIDs), 0); err != nil {
			return err
		}

		draft := pricing.LoadDraft(s.prices, itemsToLines(current))
		if err := fn(draft); err != nil {
			return err
		}

		if _, err := s.orderRepo.SyncItems(ctx, tx, orderID, linesToItems(draft.Lines())); err != nil {
			return err
		}
		if err := s.orderRepo.UpdateTotal(ctx, tx, orderID, draft.Total()); err != nil {
			return err
		}

		updated, err = s.loadOrder(ctx, tx, actor, orderID)
		return err
	})
	if err != nil {
		return nil, s.writeFailure(operation, err, zap.Uint64("orderID", orderID))
	}

	metrics.RecordOrderOperation(operation, true)
	s.logger.Info("order items changed",
		zap.String("operation", operation),
		zap.Uint64("orderID", orderID),
		zap.String("total", updated.TotalPrice.String()),
	)
	out := dto.NewOrderDTO(*updated, actor.Role)
	return &out, nil
}

// replaceLines builds the draft for a full item replacement. Lines that reference an
// existing item keep its captured price unless their service changes.
func (s *OrderService) replaceLines(ctx context.Context, current []entities.OrderItem, inputs []dto.OrderItemInputDTO) (*pricing.Draft, error) {
	byID := make(map[uint64]pricing.DraftLine, len(current))
	for _, l := range itemsToLines(current) {
		byID[l.ItemID] = l
	}

	kept := make([]pricing.DraftLine, 0, len(inputs))
	seen := make(map[uint64]bool, len(inputs))
	for _, in := range inputs {
		if in.ID == 0 {
			continue
		}
		line, ok := byID[in.ID]
		if !ok || seen[in.ID] {
			return nil, apperrors.NewValidationError(string(authz.FieldItems), msgUnknownItemLine)
		}
		seen[in.ID] = true
		kept = append(kept, line)
	}
	draft := pricing.LoadDraft(s.prices, kept)

	// Release services that move between kept lines before assigning them again.
	for _, in := range inputs {
		if in.ID == 0 {
			continue
		}
		idx := draft.IndexOfItem(in.ID)
		if draft.Lines()[idx].ServiceID != in.ServiceID {
			if err := draft.SetService(ctx, idx, 0); err != nil {
				return nil, draftError(string(authz.FieldItems), err)
			}
		}
	}

	for _, in := range inputs {
		quantity := in.Quantity
		if quantity == 0 {
			quantity = pricing.DefaultQuantity
		}
		if in.ID == 0 {
			if _, err := draft.Add(ctx, in.ServiceID, quantity); err != nil {
				return nil, draftError(string(authz.FieldItems), err)
			}
			continue
		}
		idx := draft.IndexOfItem(in.ID)
		if err := draft.SetService(ctx, idx, in.ServiceID); err != nil {
			return nil, draftError(string(authz.FieldItems), err)
		}
		if err := draft.SetQuantity(idx, quantity); err != nil {
			return nil, draftError(string(authz.FieldItems), err)
		}
	}
	return draft, nil
}

// requireLiveReferences rejects services or a technician that were deleted from the catalog.
// Inside tx the rows stay share-locked until commit. Zero ids are skipped.
func (s *OrderService) requireLiveReferences(ctx context.Context, tx pgx.Tx, itemsField string, serviceIDs []uint64, technicianID uint64) error {
	vErr := &apperrors.ValidationError{}

	wanted := make([]uint64, 0, len(serviceIDs))
	for _, id := range serviceIDs {
		if id != 0 {
			wanted = append(wanted, id)
		}
	}
	if len(wanted) > 0 {
		live, err := s.orderRepo.LiveServiceIDs(ctx, tx, wanted)
		if err != nil {
			return err
		}
		liveSet := make(map[uint64]bool, len(live))
		for _, id := range live {
			liveSet[id] = true
		}
		for _, id := range wanted {
			if !liveSet[id] {
				vErr.Add(itemsField, msgRetiredService)
				break
			}
		}
	}

	if technicianID != 0 {
		live, err := s.orderRepo.TechnicianLive(ctx, tx, technicianID)
		if err != nil {
			return err
		}
		if !live {
			vErr.Add(string(authz.FieldTechnicianID), msgRetiredTech)
		}
	}

	if vErr.HasErrors() {
		return vErr
	}
	return nil
}

// newServices keeps the requested services that no current line already holds.
func newServices(current []entities.OrderItem, requested []uint64) []uint64 {
	held := make(map[uint64]bool, len(current))
	for _, item := range current {
		held[item.ServiceID] = true
	}
	var out []uint64
	for _, id := range requested {
		if !held[id] {
			out = append(out, id)
		}
	}
	return out
}

// addedServices lists the services an item replacement brings in: every new line and
// every kept line whose service changes.
func addedServices(current []entities.OrderItem, inputs []dto.OrderItemInputDTO) []uint64 {
	serviceOf := make(map[uint64]uint64, len(current))
	for _, item := range current {
		serviceOf[item.ID] = item.ServiceID
	}
	var out []uint64
	for _, in := range inputs {
		if in.ID != 0 && serviceOf[in.ID] == in.ServiceID {
			continue
		}
		out = append(out, in.ServiceID)
	}
	return out
}

func (s *OrderService) loadOrder(ctx context.Context, tx pgx.Tx, actor authz.Actor, id uint64) (*entities.Order, error) {
	order, err := s.orderRepo.FindOrder(ctx, tx, id, authz.ScopeVisibleOrders(actor))
	if err != nil {
		return nil, err
	}
	order.Items, err = s.orderRepo.GetItems(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) readFailure(err error, id uint64) error {
	if isClientError(err) {
		return err
	}
	s.logger.Error("failed to read order", zap.Uint64("orderID", id), zap.Error(err))
	return apperrors.ErrOperationFailed
}

// writeFailure passes client errors through and hides everything else behind ErrOperationFailed.
func (s *OrderService) writeFailure(operation string, err error, fields ...zap.Field) error {
	metrics.RecordOrderOperation(operation, false)
	if isClientError(err) {
		return err
	}
	s.logger.Error("order operation failed", append(fields, zap.String("operation", operation), zap.Error(err))...)
	return fmt.Errorf("%s: %w", operation, apperrors.ErrOperationFailed)
}

func isClientError(err error) bool {
	var vErr *apperrors.ValidationError
	var httpErr *apperrors.HttpError
	switch {
	case errors.As(err, &vErr), errors.As(err, &httpErr):
		return true
	case errors.Is(err, apperrors.ErrNotFound),
		errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrForbidden),
		errors.Is(err, apperrors.ErrBadRequest):
		return true
	}
	return false
}

// draftError turns a pricing.Draft rejection into a response error on field.
func draftError(field string, err error) error {
	switch {
	case errors.Is(err, pricing.ErrDuplicateService), errors.Is(err, pricing.ErrInvalidQuantity):
		return apperrors.NewValidationError(field, err.Error())
	case errors.Is(err, pricing.ErrLineNotFound):
		return apperrors.ErrNotFound
	}
	return err
}

func requireEditable(role authz.Role, vErr *apperrors.ValidationError, fields ...authz.OrderField) {
	for _, f := range fields {
		if !authz.FieldEditable(role, f) {
			vErr.Add(string(f), msgNotEditable)
		}
	}
}

func applyString(role authz.Role, vErr *apperrors.ValidationError, field authz.OrderField, value *string, target *string) {
	if value == nil {
		return
	}
	v := strings.TrimSpace(*value)
	if v == *target {
		return
	}
	if !authz.FieldEditable(role, field) {
		vErr.Add(string(field), msgNotEditable)
		return
	}
	*target = v
}

func blankToNull(s null.String) null.String {
	if !s.Valid || strings.TrimSpace(s.String) == "" {
		return null.String{}
	}
	return null.StringFrom(strings.TrimSpace(s.String))
}

func itemsToLines(items []entities.OrderItem) []pricing.DraftLine {
	lines := make([]pricing.DraftLine, len(items))
	for i, item := range items {
		lines[i] = pricing.DraftLine{
			ItemID: item.ID,
			Line: pricing.Line{
				ServiceID: item.ServiceID,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
			},
		}
	}
	return lines
}

func linesToItems(lines []pricing.DraftLine) []entities.OrderItem {
	items := make([]entities.OrderItem, len(lines))
	for i, l := range lines {
		items[i] = entities.OrderItem{
			ID:        l.ItemID,
			ServiceID: l.ServiceID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		}
	}
	return items
}
