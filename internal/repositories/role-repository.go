package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"aircon-admin/internal/entities"
	apperrors "aircon-admin/pkg/errors"
)

type RoleRepositoryInterface interface {
	FindRoleByName(ctx context.Context, tx pgx.Tx, name string) (*entities.Role, error)
	UpsertRole(ctx context.Context, tx pgx.Tx, role entities.Role) (uint64, error)
}

type RoleRepository struct {
	storage *pgxpool.Pool
}

func NewRoleRepository(storage *pgxpool.Pool) RoleRepositoryInterface {
	return &RoleRepository{storage: storage}
}

func (r *RoleRepository) FindRoleByName(ctx context.Context, tx pgx.Tx, name string) (*entities.Role, error) {
	query := `SELECT id, name, description, created_at, updated_at FROM roles WHERE name = $1`
	var role entities.Role
	err := getQuerier(r.storage, tx).QueryRow(ctx, query, name).
		Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find role %s: %w", name, err)
	}
	return &role, nil
}

func (r *RoleRepository) UpsertRole(ctx context.Context, tx pgx.Tx, role entities.Role) (uint64, error) {
	query := `
		INSERT INTO roles (name, description) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description, updated_at = NOW()
		RETURNING id`

	var id uint64
	if err := getQuerier(r.storage, tx).QueryRow(ctx, query, role.Name, role.Description).Scan(&id); err != nil {
		return 0, fmt.Errorf("upsert role %s: %w", role.Name, err)
	}
	return id, nil
}
