package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"aircon-admin/internal/entities"
	db "aircon-admin/internal/infrastructure/bd"
	apperrors "aircon-admin/pkg/errors"
	"aircon-admin/pkg/types"
)

const (
	technicianTable  = "technicians"
	technicianFields = "id, name, phone, created_at, updated_at"
)

var technicianAllowedFields = map[string]string{
	"id":         "id",
	"name":       "name",
	"phone":      "phone",
	"created_at": "created_at",
}

type TechnicianRepositoryInterface interface {
	GetTechnicians(ctx context.Context, filter types.Filter) ([]entities.Technician, uint64, error)
	FindTechnician(ctx context.Context, id uint64) (*entities.Technician, error)
	CreateTechnician(ctx context.Context, tx pgx.Tx, technician entities.Technician) (*entities.Technician, error)
	UpdateTechnician(ctx context.Context, technician entities.Technician) (*entities.Technician, error)
	LockTechnician(ctx context.Context, tx pgx.Tx, id uint64) error
	DeleteTechnician(ctx context.Context, tx pgx.Tx, id uint64) error
}

type TechnicianRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewTechnicianRepository(storage *pgxpool.Pool, logger *zap.Logger) TechnicianRepositoryInterface {
	return &TechnicianRepository{storage: storage, logger: logger}
}

func scanTechnician(row pgx.Row) (*entities.Technician, error) {
	var t entities.Technician
	if err := row.Scan(&t.ID, &t.Name, &t.Phone, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan technician: %w", err)
	}
	return &t, nil
}

func (r *TechnicianRepository) GetTechnicians(ctx context.Context, filter types.Filter) ([]entities.Technician, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	base := psql.Select().From(technicianTable).Where(sq.Eq{"deleted_at": nil})
	base = db.ApplySearch(base, filter.Search, "name", "phone")

	countQuery, countArgs, err := db.ApplyFilters(base.Columns("COUNT(*)"), filter, technicianAllowedFields).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build technicians count query: %w", err)
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count technicians: %w", err)
	}
	if total == 0 {
		return []entities.Technician{}, 0, nil
	}

	builder := db.ApplyListParams(base.Columns(technicianFields), filter, technicianAllowedFields)
	if len(filter.Sort) == 0 {
		builder = builder.OrderBy("name ASC")
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build technicians query: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query technicians: %w", err)
	}
	defer rows.Close()

	technicians := make([]entities.Technician, 0)
	for rows.Next() {
		t, err := scanTechnician(rows)
		if err != nil {
			return nil, 0, err
		}
		technicians = append(technicians, *t)
	}
	return technicians, total, rows.Err()
}

func (r *TechnicianRepository) FindTechnician(ctx context.Context, id uint64) (*entities.Technician, error) {
	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select(technicianFields).From(technicianTable).
		Where(sq.Eq{"id": id, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build technician query: %w", err)
	}
	return scanTechnician(r.storage.QueryRow(ctx, query, args...))
}

// CreateTechnician keeps an explicit ID, used when a technician account is provisioned
// with the id of its users row.
func (r *TechnicianRepository) CreateTechnician(ctx context.Context, tx pgx.Tx, technician entities.Technician) (*entities.Technician, error) {
	insert := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).Insert(technicianTable)
	if technician.ID != 0 {
		insert = insert.Columns("id", "name", "phone").Values(technician.ID, technician.Name, technician.Phone)
	} else {
		insert = insert.Columns("name", "phone").Values(technician.Name, technician.Phone)
	}
	query, args, err := insert.Suffix("RETURNING " + technicianFields).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build technician insert: %w", err)
	}

	querier := getQuerier(r.storage, tx)
	created, err := scanTechnician(querier.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, translatePgError(err)
	}

	if technician.ID != 0 {
		// explicit ids bypass the sequence
		syncSeq := `SELECT setval(pg_get_serial_sequence('technicians', 'id'), GREATEST((SELECT MAX(id) FROM technicians), 1))`
		if _, err := querier.Exec(ctx, syncSeq); err != nil {
			return nil, fmt.Errorf("sync technicians sequence: %w", err)
		}
	}
	return created, nil
}

func (r *TechnicianRepository) UpdateTechnician(ctx context.Context, technician entities.Technician) (*entities.Technician, error) {
	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Update(technicianTable).
		Set("name", technician.Name).
		Set("phone", technician.Phone).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": technician.ID, "deleted_at": nil}).
		Suffix("RETURNING " + technicianFields).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build technician update: %w", err)
	}
	return scanTechnician(r.storage.QueryRow(ctx, query, args...))
}

// LockTechnician takes a row lock on a live technician for the rest of tx. Deleted or missing rows report ErrNotFound.
func (r *TechnicianRepository) LockTechnician(ctx context.Context, tx pgx.Tx, id uint64) error {
	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select("id").From(technicianTable).
		Where(sq.Eq{"id": id, "deleted_at": nil}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return fmt.Errorf("build technician lock: %w", err)
	}

	var locked uint64
	if err := getQuerier(r.storage, tx).QueryRow(ctx, query, args...).Scan(&locked); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("lock technician: %w", err)
	}
	return nil
}

func (r *TechnicianRepository) DeleteTechnician(ctx context.Context, tx pgx.Tx, id uint64) error {
	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Update(technicianTable).
		Set("deleted_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build technician delete: %w", err)
	}

	result, err := getQuerier(r.storage, tx).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete technician: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
