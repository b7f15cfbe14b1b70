package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"aircon-admin/internal/entities"
)

type PermissionRepositoryInterface interface {
	GetPermissionsNamesByRoleName(ctx context.Context, roleName string) ([]string, error)
	UpsertPermission(ctx context.Context, tx pgx.Tx, permission entities.Permission) (uint64, error)
	ReplaceRolePermissions(ctx context.Context, tx pgx.Tx, roleID uint64, permissionIDs []uint64) error
}

type PermissionRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewPermissionRepository(storage *pgxpool.Pool, logger *zap.Logger) PermissionRepositoryInterface {
	return &PermissionRepository{
		storage: storage,
		logger:  logger,
	}
}

// GetPermissionsNamesByRoleName is the lookup behind every authorization check; results are cached by the caller.
func (r *PermissionRepository) GetPermissionsNamesByRoleName(ctx context.Context, roleName string) ([]string, error) {
	query := `
		SELECT p.name
		FROM permissions p
		JOIN role_permissions rp ON rp.permission_id = p.id
		JOIN roles r ON r.id = rp.role_id
		WHERE r.name = $1
		ORDER BY p.name`

	rows, err := r.storage.Query(ctx, query, roleName)
	if err != nil {
		return nil, fmt.Errorf("query permissions of role %s: %w", roleName, err)
	}
	defer rows.Close()

	permissions, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("collect permissions of role %s: %w", roleName, err)
	}

	r.logger.Debug("role permissions loaded", zap.String("role", roleName), zap.Int("count", len(permissions)))
	return permissions, nil
}

func (r *PermissionRepository) UpsertPermission(ctx context.Context, tx pgx.Tx, permission entities.Permission) (uint64, error) {
	query := `
		INSERT INTO permissions (name, description) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description, updated_at = NOW()
		RETURNING id`

	var id uint64
	if err := getQuerier(r.storage, tx).QueryRow(ctx, query, permission.Name, permission.Description).Scan(&id); err != nil {
		return 0, fmt.Errorf("upsert permission %s: %w", permission.Name, err)
	}
	return id, nil
}

// ReplaceRolePermissions makes permissionIDs the complete grant set of the role. It must run inside tx.
func (r *PermissionRepository) ReplaceRolePermissions(ctx context.Context, tx pgx.Tx, roleID uint64, permissionIDs []uint64) error {
	if tx == nil {
		return fmt.Errorf("replace permissions of role %d: transaction required", roleID)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM role_permissions WHERE role_id = $1`, roleID); err != nil {
		return fmt.Errorf("unlink permissions of role %d: %w", roleID, err)
	}
	if len(permissionIDs) == 0 {
		return nil
	}

	rows := make([][]interface{}, len(permissionIDs))
	for i, pid := range permissionIDs {
		rows[i] = []interface{}{roleID, pid}
	}
	_, err := tx.CopyFrom(ctx, pgx.Identifier{"role_permissions"}, []string{"role_id", "permission_id"}, pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("link permissions to role %d: %w", roleID, err)
	}
	return nil
}
