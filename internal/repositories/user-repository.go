package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"aircon-admin/internal/entities"
	apperrors "aircon-admin/pkg/errors"
)

const userSelectFields = "u.id, u.name, u.email, u.password, u.role_id, r.name, u.created_at, u.updated_at"
const userJoinClause = "users u JOIN roles r ON u.role_id = r.id"

type UserRepositoryInterface interface {
	FindUserByEmail(ctx context.Context, email string) (*entities.User, error)
	FindUserByID(ctx context.Context, id uint64) (*entities.User, error)
	CreateUser(ctx context.Context, tx pgx.Tx, user entities.User) (uint64, error)
}

type UserRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &UserRepository{storage: storage, logger: logger}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var user entities.User
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.Password,
		&user.RoleID, &user.RoleName, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) FindUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE LOWER(u.email) = $1 AND u.deleted_at IS NULL", userSelectFields, userJoinClause)
	return scanUser(r.storage.QueryRow(ctx, query, strings.ToLower(strings.TrimSpace(email))))
}

func (r *UserRepository) FindUserByID(ctx context.Context, id uint64) (*entities.User, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE u.id = $1 AND u.deleted_at IS NULL", userSelectFields, userJoinClause)
	return scanUser(r.storage.QueryRow(ctx, query, id))
}

// CreateUser inserts a user, or refreshes name, password and role of the live user with the same email.
func (r *UserRepository) CreateUser(ctx context.Context, tx pgx.Tx, user entities.User) (uint64, error) {
	query := `
		INSERT INTO users (name, email, password, role_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) WHERE deleted_at IS NULL
		DO UPDATE SET name = EXCLUDED.name, password = EXCLUDED.password, role_id = EXCLUDED.role_id, updated_at = NOW()
		RETURNING id`

	var id uint64
	err := getQuerier(r.storage, tx).QueryRow(ctx, query, user.Name, strings.ToLower(user.Email), user.Password, user.RoleID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create user %s: %w", user.Email, err)
	}
	return id, nil
}
