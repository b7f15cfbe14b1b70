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

	"aircon-admin/internal/entities"
	db "aircon-admin/internal/infrastructure/bd"
	apperrors "aircon-admin/pkg/errors"
	"aircon-admin/pkg/types"
)

const (
	serviceTable        = "services"
	serviceReturnFields = "id, title, category_id, price, created_at, updated_at"
	serviceSelectFields = "s.id, s.title, s.category_id, s.price, s.created_at, s.updated_at, c.name"
	serviceJoin         = "categories c ON c.id = s.category_id"
)

var serviceAllowedFields = map[string]string{
	"id":          "s.id",
	"title":       "s.title",
	"category_id": "s.category_id",
	"price":       "s.price",
	"created_at":  "s.created_at",
}

type ServiceRepositoryInterface interface {
	GetServices(ctx context.Context, filter types.Filter) ([]entities.Service, uint64, error)
	FindService(ctx context.Context, id uint64) (*entities.Service, error)
	CreateService(ctx context.Context, service entities.Service) (*entities.Service, error)
	UpdateService(ctx context.Context, service entities.Service) (*entities.Service, error)
	LockService(ctx context.Context, tx pgx.Tx, id uint64) error
	DeleteService(ctx context.Context, tx pgx.Tx, id uint64) error
	ServicePrice(ctx context.Context, id uint64) (decimal.Decimal, error)
}

type ServiceRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewServiceRepository(storage *pgxpool.Pool, logger *zap.Logger) ServiceRepositoryInterface {
	return &ServiceRepository{storage: storage, logger: logger}
}

func scanService(row pgx.Row, withCategory bool) (*entities.Service, error) {
	var s entities.Service
	dest := []interface{}{&s.ID, &s.Title, &s.CategoryID, &s.Price, &s.CreatedAt, &s.UpdatedAt}
	if withCategory {
		dest = append(dest, &s.CategoryName)
	}
	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan service: %w", err)
	}
	return &s, nil
}

func (r *ServiceRepository) GetServices(ctx context.Context, filter types.Filter) ([]entities.Service, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	base := psql.Select().
		From(serviceTable + " s").
		Join(serviceJoin).
		Where(sq.Eq{"s.deleted_at": nil})
	base = db.ApplySearch(base, filter.Search, "s.title")

	countQuery, countArgs, err := db.ApplyFilters(base.Columns("COUNT(*)"), filter, serviceAllowedFields).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build services count query: %w", err)
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count services: %w", err)
	}
	if total == 0 {
		return []entities.Service{}, 0, nil
	}

	builder := db.ApplyListParams(base.Columns(serviceSelectFields), filter, serviceAllowedFields)
	if len(filter.Sort) == 0 {
		builder = builder.OrderBy("c.name ASC", "s.title ASC")
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build services query: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query services: %w", err)
	}
	defer rows.Close()

	services := make([]entities.Service, 0)
	for rows.Next() {
		s, err := scanService(rows, true)
		if err != nil {
			return nil, 0, err
		}
		services = append(services, *s)
	}
	return services, total, rows.Err()
}

func (r *ServiceRepository) FindService(ctx context.Context, id uint64) (*entities.Service, error) {
	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select(serviceSelectFields).
		From(serviceTable + " s").
		Join(serviceJoin).
		Where(sq.Eq{"s.id": id, "s.deleted_at": nil}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build service query: %w", err)
	}
	return scanService(r.storage.QueryRow(ctx, query, args...), true)
}

func (r *ServiceRepository) CreateService(ctx context.Context, service entities.Service) (*entities.Service, error) {
	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Insert(serviceTable).
		Columns("title", "category_id", "price").
		Values(service.Title, service.CategoryID, service.Price).
		Suffix("RETURNING " + serviceReturnFields).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build service insert: %w", err)
	}

	created, err := scanService(r.storage.QueryRow(ctx, query, args...), false)
	if err != nil {
		return nil, translatePgError(err)
	}
	return created, nil
}

// UpdateService changes the catalog price only; order items keep the price they captured.
func (r *ServiceRepository) UpdateService(ctx context.Context, service entities.Service) (*entities.Service, error) {
	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Update(serviceTable).
		Set("title", service.Title).
		Set("category_id", service.CategoryID).
		Set("price", service.Price).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": service.ID, "deleted_at": nil}).
		Suffix("RETURNING " + serviceReturnFields).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build service update: %w", err)
	}

	updated, err := scanService(r.storage.QueryRow(ctx, query, args...), false)
	if err != nil {
		return nil, translatePgError(err)
	}
	return updated, nil
}

// LockService takes a row lock on a live service for the rest of tx. Deleted or missing rows report ErrNotFound.
func (r *ServiceRepository) LockService(ctx context.Context, tx pgx.Tx, id uint64) error {
	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select("id").From(serviceTable).
		Where(sq.Eq{"id": id, "deleted_at": nil}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return fmt.Errorf("build service lock: %w", err)
	}

	var locked uint64
	if err := getQuerier(r.storage, tx).QueryRow(ctx, query, args...).Scan(&locked); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("lock service: %w", err)
	}
	return nil
}

func (r *ServiceRepository) DeleteService(ctx context.Context, tx pgx.Tx, id uint64) error {
	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Update(serviceTable).
		Set("deleted_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build service delete: %w", err)
	}

	result, err := getQuerier(r.storage, tx).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ServicePrice is the current catalog price. Deleted services report ErrNotFound.
func (r *ServiceRepository) ServicePrice(ctx context.Context, id uint64) (decimal.Decimal, error) {
	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select("price").From(serviceTable).
		Where(sq.Eq{"id": id, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return decimal.Zero, fmt.Errorf("build service price query: %w", err)
	}

	var price decimal.Decimal
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&price); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, apperrors.ErrNotFound
		}
		return decimal.Zero, fmt.Errorf("query service price: %w", err)
	}
	return price, nil
}
