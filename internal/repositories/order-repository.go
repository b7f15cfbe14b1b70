package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"aircon-admin/internal/authz"
	"aircon-admin/internal/entities"
	db "aircon-admin/internal/infrastructure/bd"
	apperrors "aircon-admin/pkg/errors"
	"aircon-admin/pkg/types"
)

const (
	orderTable        = "orders"
	orderItemTable    = "order_items"
	orderSelectFields = "o.id, o.name, o.address, o.phone, o.note, o.brand_ac, o.technician_id, o.visit_date, " +
		"o.total_price, o.status, o.created_at, o.updated_at, t.name, t.phone"
	orderJoin = "technicians t ON t.id = o.technician_id"

	orderItemSelectFields = "i.id, i.order_id, i.service_id, i.quantity, i.unit_price, i.created_at, i.updated_at, s.title"
	orderItemJoin         = "services s ON s.id = i.service_id"
)

// Filter, sort and search whitelist for the orders list: JSON name -> column.
var orderAllowedFields = map[string]string{
	"id":            "o.id",
	"name":          "o.name",
	"status":        "o.status",
	"technician_id": "o.technician_id",
	"visit_date":    "o.visit_date",
	"total_price":   "o.total_price",
	"created_at":    "o.created_at",
	"updated_at":    "o.updated_at",
}

type OrderRepositoryInterface interface {
	GetOrders(ctx context.Context, filter types.Filter, scope authz.OrderScope) ([]entities.Order, uint64, error)
	FindOrder(ctx context.Context, tx pgx.Tx, id uint64, scope authz.OrderScope) (*entities.Order, error)
	LockOrder(ctx context.Context, tx pgx.Tx, id uint64, scope authz.OrderScope) (*entities.Order, error)
	GetItems(ctx context.Context, tx pgx.Tx, orderID uint64) ([]entities.OrderItem, error)
	CreateOrder(ctx context.Context, tx pgx.Tx, order entities.Order) (uint64, error)
	UpdateOrder(ctx context.Context, tx pgx.Tx, order entities.Order) error
	UpdateTotal(ctx context.Context, tx pgx.Tx, orderID uint64, total decimal.Decimal) error
	SyncItems(ctx context.Context, tx pgx.Tx, orderID uint64, items []entities.OrderItem) ([]entities.OrderItem, error)
	DeleteOrders(ctx context.Context, tx pgx.Tx, ids []uint64, scope authz.OrderScope) (int64, error)
	CountLiveByService(ctx context.Context, tx pgx.Tx, serviceID uint64) (uint64, error)
	CountLiveByTechnician(ctx context.Context, tx pgx.Tx, technicianID uint64) (uint64, error)
	LiveServiceIDs(ctx context.Context, tx pgx.Tx, ids []uint64) ([]uint64, error)
	TechnicianLive(ctx context.Context, tx pgx.Tx, technicianID uint64) (bool, error)
}

type OrderRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewOrderRepository(storage *pgxpool.Pool, logger *zap.Logger) OrderRepositoryInterface {
	return &OrderRepository{storage: storage, logger: logger}
}

func scanOrder(row pgx.Row) (*entities.Order, error) {
	var o entities.Order
	err := row.Scan(
		&o.ID, &o.Name, &o.Address, &o.Phone, &o.Note, &o.BrandAC, &o.TechnicianID, &o.VisitDate,
		&o.TotalPrice, &o.Status, &o.CreatedAt, &o.UpdatedAt, &o.TechnicianName, &o.TechnicianPhone,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}
	return &o, nil
}

func scanOrderItem(row pgx.Row) (*entities.OrderItem, error) {
	var i entities.OrderItem
	err := row.Scan(&i.ID, &i.OrderID, &i.ServiceID, &i.Quantity, &i.UnitPrice, &i.CreatedAt, &i.UpdatedAt, &i.ServiceTitle)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan order item: %w", err)
	}
	return &i, nil
}

func (r *OrderRepository) scopedOrders(scope authz.OrderScope) sq.SelectBuilder {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select().
		From(orderTable + " o").
		Join(orderJoin).
		Where(sq.Eq{"o.deleted_at": nil}).
		Where(scope.Where("o"))
}

// GetOrders lists orders inside scope. Rows outside it are never read.
func (r *OrderRepository) GetOrders(ctx context.Context, filter types.Filter, scope authz.OrderScope) ([]entities.Order, uint64, error) {
	base := db.ApplySearch(r.scopedOrders(scope), filter.Search, "o.name", "o.phone")

	countQuery, countArgs, err := db.ApplyFilters(base.Columns("COUNT(*)"), filter, orderAllowedFields).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build orders count query: %w", err)
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}
	if total == 0 {
		return []entities.Order{}, 0, nil
	}

	builder := db.ApplyListParams(base.Columns(orderSelectFields), filter, orderAllowedFields)
	if len(filter.Sort) == 0 {
		builder = builder.OrderBy("o.created_at DESC", "o.id DESC")
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build orders query: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	orders := make([]entities.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// FindOrder reports ErrNotFound both for missing orders and for orders outside scope.
func (r *OrderRepository) FindOrder(ctx context.Context, tx pgx.Tx, id uint64, scope authz.OrderScope) (*entities.Order, error) {
	return r.findOrder(ctx, tx, id, scope, "")
}

// LockOrder is FindOrder with a row lock on the order, held until tx ends.
func (r *OrderRepository) LockOrder(ctx context.Context, tx pgx.Tx, id uint64, scope authz.OrderScope) (*entities.Order, error) {
	return r.findOrder(ctx, tx, id, scope, "FOR UPDATE OF o")
}

func (r *OrderRepository) findOrder(ctx context.Context, tx pgx.Tx, id uint64, scope authz.OrderScope, suffix string) (*entities.Order, error) {
	builder := r.scopedOrders(scope).Columns(orderSelectFields).Where(sq.Eq{"o.id": id})
	if suffix != "" {
		builder = builder.Suffix(suffix)
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build order query: %w", err)
	}
	return scanOrder(getQuerier(r.storage, tx).QueryRow(ctx, query, args...))
}

func (r *OrderRepository) GetItems(ctx context.Context, tx pgx.Tx, orderID uint64) ([]entities.OrderItem, error) {
	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select(orderItemSelectFields).
		From(orderItemTable + " i").
		Join(orderItemJoin).
		Where(sq.Eq{"i.order_id": orderID}).
		OrderBy("i.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build order items query: %w", err)
	}

	rows, err := getQuerier(r.storage, tx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	items := make([]entities.OrderItem, 0)
	for rows.Next() {
		item, err := scanOrderItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (r *OrderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order entities.Order) (uint64, error) {
	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Insert(orderTable).
		Columns("name", "address", "phone", "note", "brand_ac", "technician_id", "visit_date", "total_price", "status").
		Values(order.Name, order.Address, order.Phone, order.Note, order.BrandAC, order.TechnicianID,
			order.VisitDate, order.TotalPrice, order.Status.String()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build order insert: %w", err)
	}

	var id uint64
	if err := getQuerier(r.storage, tx).QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, translatePgError(err)
	}
	return id, nil
}

// UpdateOrder writes the order header. total_price is written only by UpdateTotal.
func (r *OrderRepository) UpdateOrder(ctx context.Context, tx pgx.Tx, order entities.Order) error {
	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Update(orderTable).
		Set("name", order.Name).
		Set("address", order.Address).
		Set("phone", order.Phone).
		Set("note", order.Note).
		Set("brand_ac", order.BrandAC).
		Set("technician_id", order.TechnicianID).
		Set("visit_date", order.VisitDate).
		Set("status", order.Status.String()).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": order.ID, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build order update: %w", err)
	}

	result, err := getQuerier(r.storage, tx).Exec(ctx, query, args...)
	if err != nil {
		return translatePgError(err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *OrderRepository) UpdateTotal(ctx context.Context, tx pgx.Tx, orderID uint64, total decimal.Decimal) error {
	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Update(orderTable).
		Set("total_price", total).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": orderID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build order total update: %w", err)
	}

	result, err := getQuerier(r.storage, tx).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update order total: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SyncItems makes the stored items of an order equal to items: rows missing from items
// are deleted, items with an ID are updated and items without one are inserted.
// The returned slice carries the ids of inserted rows.
func (r *OrderRepository) SyncItems(ctx context.Context, tx pgx.Tx, orderID uint64, items []entities.OrderItem) ([]entities.OrderItem, error) {
	querier := getQuerier(r.storage, tx)
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	keep := make([]uint64, 0, len(items))
	for _, item := range items {
		if item.ID != 0 {
			keep = append(keep, item.ID)
		}
	}

	deleteQuery, deleteArgs, err := psql.Delete(orderItemTable).
		Where(sq.Eq{"order_id": orderID}).
		Where(sq.NotEq{"id": keep}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build order items delete: %w", err)
	}
	if _, err := querier.Exec(ctx, deleteQuery, deleteArgs...); err != nil {
		return nil, fmt.Errorf("delete order items: %w", err)
	}

	synced := make([]entities.OrderItem, len(items))
	for idx, item := range items {
		item.OrderID = orderID

		if item.ID != 0 {
			query, args, err := psql.Update(orderItemTable).
				Set("service_id", item.ServiceID).
				Set("quantity", item.Quantity).
				Set("unit_price", item.UnitPrice).
				Set("updated_at", sq.Expr("NOW()")).
				Where(sq.Eq{"id": item.ID, "order_id": orderID}).
				ToSql()
			if err != nil {
				return nil, fmt.Errorf("build order item update: %w", err)
			}
			result, err := querier.Exec(ctx, query, args...)
			if err != nil {
				return nil, translatePgError(err)
			}
			if result.RowsAffected() == 0 {
				return nil, apperrors.ErrNotFound
			}
			synced[idx] = item
			continue
		}

		query, args, err := psql.Insert(orderItemTable).
			Columns("order_id", "service_id", "quantity", "unit_price").
			Values(orderID, item.ServiceID, item.Quantity, item.UnitPrice).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("build order item insert: %w", err)
		}
		if err := querier.QueryRow(ctx, query, args...).Scan(&item.ID); err != nil {
			return nil, translatePgError(err)
		}
		synced[idx] = item
	}

	r.logger.Debug("order items synced", zap.Uint64("orderID", orderID), zap.Int("count", len(synced)))
	return synced, nil
}

// DeleteOrders soft deletes the orders in ids that are inside scope and returns how many were deleted.
func (r *OrderRepository) DeleteOrders(ctx context.Context, tx pgx.Tx, ids []uint64, scope authz.OrderScope) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Update(orderTable + " o").
		Set("deleted_at", sq.Expr("NOW()")).
		Where(sq.Eq{"o.id": ids, "o.deleted_at": nil}).
		Where(scope.Where("o")).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build orders delete: %w", err)
	}

	result, err := getQuerier(r.storage, tx).Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete orders: %w", err)
	}
	return result.RowsAffected(), nil
}

func (r *OrderRepository) CountLiveByService(ctx context.Context, tx pgx.Tx, serviceID uint64) (uint64, error) {
	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select("COUNT(DISTINCT o.id)").
		From(orderItemTable + " i").
		Join(orderTable + " o ON o.id = i.order_id").
		Where(sq.Eq{"i.service_id": serviceID, "o.deleted_at": nil}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build orders by service count: %w", err)
	}
	var count uint64
	if err := getQuerier(r.storage, tx).QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count orders by service: %w", err)
	}
	return count, nil
}

func (r *OrderRepository) CountLiveByTechnician(ctx context.Context, tx pgx.Tx, technicianID uint64) (uint64, error) {
	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select("COUNT(*)").
		From(orderTable).
		Where(sq.Eq{"technician_id": technicianID, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build orders by technician count: %w", err)
	}
	var count uint64
	if err := getQuerier(r.storage, tx).QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count orders by technician: %w", err)
	}
	return count, nil
}

// LiveServiceIDs returns the ids among ids whose service is not deleted. Inside a
// transaction the rows stay share-locked, so a concurrent delete waits for the commit.
func (r *OrderRepository) LiveServiceIDs(ctx context.Context, tx pgx.Tx, ids []uint64) ([]uint64, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select("id").
		From(serviceTable).
		Where(sq.Eq{"id": ids, "deleted_at": nil}).
		Suffix("FOR SHARE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build live services query: %w", err)
	}

	rows, err := getQuerier(r.storage, tx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query live services: %w", err)
	}
	defer rows.Close()

	live := make([]uint64, 0, len(ids))
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan live service: %w", err)
		}
		live = append(live, id)
	}
	return live, rows.Err()
}

// TechnicianLive reports whether the technician exists and is not deleted, share-locking the row.
func (r *OrderRepository) TechnicianLive(ctx context.Context, tx pgx.Tx, technicianID uint64) (bool, error) {
	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select("id").
		From(technicianTable).
		Where(sq.Eq{"id": technicianID, "deleted_at": nil}).
		Suffix("FOR SHARE").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build live technician query: %w", err)
	}

	var id uint64
	if err := getQuerier(r.storage, tx).QueryRow(ctx, query, args...).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("query live technician: %w", err)
	}
	return true, nil
}
