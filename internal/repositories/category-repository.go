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
	categoryTable  = "categories"
	categoryFields = "id, name, created_at, updated_at"
)

var categoryAllowedFields = map[string]string{
	"id":         "id",
	"name":       "name",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

type CategoryRepositoryInterface interface {
	GetCategories(ctx context.Context, filter types.Filter) ([]entities.Category, uint64, error)
	FindCategory(ctx context.Context, id uint64) (*entities.Category, error)
	CreateCategory(ctx context.Context, category entities.Category) (*entities.Category, error)
	UpdateCategory(ctx context.Context, category entities.Category) (*entities.Category, error)
	DeleteCategory(ctx context.Context, id uint64) error
	CountLiveServices(ctx context.Context, categoryID uint64) (uint64, error)
}

type CategoryRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewCategoryRepository(storage *pgxpool.Pool, logger *zap.Logger) CategoryRepositoryInterface {
	return &CategoryRepository{storage: storage, logger: logger}
}

func scanCategory(row pgx.Row) (*entities.Category, error) {
	var c entities.Category
	if err := row.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan category: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepository) GetCategories(ctx context.Context, filter types.Filter) ([]entities.Category, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	base := psql.Select().From(categoryTable).Where(sq.Eq{"deleted_at": nil})
	base = db.ApplySearch(base, filter.Search, "name")

	countQuery, countArgs, err := db.ApplyFilters(base.Columns("COUNT(*)"), filter, categoryAllowedFields).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build categories count query: %w", err)
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count categories: %w", err)
	}
	if total == 0 {
		return []entities.Category{}, 0, nil
	}

	builder := db.ApplyListParams(base.Columns(categoryFields), filter, categoryAllowedFields)
	if len(filter.Sort) == 0 {
		builder = builder.OrderBy("name ASC")
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build categories query: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	categories := make([]entities.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, 0, err
		}
		categories = append(categories, *c)
	}
	return categories, total, rows.Err()
}

func (r *CategoryRepository) FindCategory(ctx context.Context, id uint64) (*entities.Category, error) {
	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select(categoryFields).From(categoryTable).
		Where(sq.Eq{"id": id, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build category query: %w", err)
	}
	return scanCategory(r.storage.QueryRow(ctx, query, args...))
}

func (r *CategoryRepository) CreateCategory(ctx context.Context, category entities.Category) (*entities.Category, error) {
	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Insert(categoryTable).
		Columns("name").
		Values(category.Name).
		Suffix("RETURNING " + categoryFields).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build category insert: %w", err)
	}

	created, err := scanCategory(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, translatePgError(err)
	}
	return created, nil
}

func (r *CategoryRepository) UpdateCategory(ctx context.Context, category entities.Category) (*entities.Category, error) {
	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Update(categoryTable).
		Set("name", category.Name).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": category.ID, "deleted_at": nil}).
		Suffix("RETURNING " + categoryFields).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build category update: %w", err)
	}

	updated, err := scanCategory(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, translatePgError(err)
	}
	return updated, nil
}

func (r *CategoryRepository) DeleteCategory(ctx context.Context, id uint64) error {
	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Update(categoryTable).
		Set("deleted_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build category delete: %w", err)
	}

	result, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *CategoryRepository) CountLiveServices(ctx context.Context, categoryID uint64) (uint64, error) {
	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select("COUNT(*)").From(serviceTable).
		Where(sq.Eq{"category_id": categoryID, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build services count query: %w", err)
	}
	var count uint64
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count services of category: %w", err)
	}
	return count, nil
}
