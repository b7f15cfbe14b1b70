package seeders

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"aircon-admin/internal/authz"
	"aircon-admin/internal/entities"
	"aircon-admin/internal/repositories"
	"aircon-admin/internal/services"
	apperrors "aircon-admin/pkg/errors"
	"aircon-admin/pkg/utils"
)

// Seeder fills a fresh database with roles, grants, demo accounts and a demo catalog.
// Every step can be re-run.
type Seeder struct {
	pool           *pgxpool.Pool
	txManager      repositories.TxManagerInterface
	roleRepo       repositories.RoleRepositoryInterface
	permissionRepo repositories.PermissionRepositoryInterface
	userRepo       repositories.UserRepositoryInterface
	technicianRepo repositories.TechnicianRepositoryInterface
	permissions    services.AuthPermissionServiceInterface
	logger         *zap.Logger
}

func NewSeeder(
	pool *pgxpool.Pool,
	permissions services.AuthPermissionServiceInterface,
	logger *zap.Logger,
) *Seeder {
	return &Seeder{
		pool:           pool,
		txManager:      repositories.NewTxManager(pool),
		roleRepo:       repositories.NewRoleRepository(pool),
		permissionRepo: repositories.NewPermissionRepository(pool, logger),
		userRepo:       repositories.NewUserRepository(pool, logger),
		technicianRepo: repositories.NewTechnicianRepository(pool, logger),
		permissions:    permissions,
		logger:         logger,
	}
}

// SeedAccessControl upserts the roles and every permission key, then resets each role to its default grants.
func (s *Seeder) SeedAccessControl(ctx context.Context) error {
	s.logger.Info("seeding roles and permissions")

	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		permissionIDs := make(map[string]uint64)
		for _, key := range authz.AllPermissionKeys() {
			id, err := s.permissionRepo.UpsertPermission(ctx, tx, entities.Permission{Name: key})
			if err != nil {
				return fmt.Errorf("permission %s: %w", key, err)
			}
			permissionIDs[key] = id
		}

		for _, role := range authz.Roles {
			roleID, err := s.roleRepo.UpsertRole(ctx, tx, entities.Role{
				Name:        role.String(),
				Description: roleDescriptions[role],
			})
			if err != nil {
				return fmt.Errorf("role %s: %w", role, err)
			}

			grants := authz.DefaultGrants(role)
			ids := make([]uint64, 0, len(grants))
			for _, key := range grants {
				ids = append(ids, permissionIDs[key])
			}
			if err := s.permissionRepo.ReplaceRolePermissions(ctx, tx, roleID, ids); err != nil {
				return fmt.Errorf("grants for %s: %w", role, err)
			}
			s.logger.Debug("role seeded", zap.String("role", role.String()), zap.Int("grants", len(ids)))
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, role := range authz.Roles {
		if err := s.permissions.InvalidateRolePermissionsCache(ctx, role); err != nil {
			s.logger.Warn("permission cache not invalidated", zap.String("role", role.String()), zap.Error(err))
		}
	}
	return nil
}

// SeedUsers creates the demo accounts with one shared password.
// Technician accounts also get a technicians row with the same id.
func (s *Seeder) SeedUsers(ctx context.Context, password string) error {
	s.logger.Info("seeding demo users")

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		createdTechnician := false
		for _, u := range usersData {
			role, err := s.roleRepo.FindRoleByName(ctx, tx, u.Role.String())
			if err != nil {
				return fmt.Errorf("role %s must be seeded first: %w", u.Role, err)
			}

			userID, err := s.userRepo.CreateUser(ctx, tx, entities.User{
				Name:     u.Name,
				Email:    u.Email,
				Password: hashed,
				RoleID:   role.ID,
			})
			if err != nil {
				return fmt.Errorf("user %s: %w", u.Email, err)
			}

			if u.Role != authz.RoleTechnician {
				continue
			}
			created, err := s.ensureTechnician(ctx, tx, entities.Technician{
				ID:    userID,
				Name:  u.Name,
				Phone: utils.NormalizePhoneNumber(u.Phone),
			})
			if err != nil {
				return err
			}
			createdTechnician = createdTechnician || created
		}

		if createdTechnician {
			// explicit ids leave the serial behind
			_, err := tx.Exec(ctx, `SELECT setval(pg_get_serial_sequence('technicians', 'id'), (SELECT MAX(id) FROM technicians))`)
			if err != nil {
				return fmt.Errorf("advance technicians sequence: %w", err)
			}
		}
		return nil
	})
}

func (s *Seeder) ensureTechnician(ctx context.Context, tx pgx.Tx, technician entities.Technician) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM technicians WHERE id = $1)`, technician.ID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("look up technician %d: %w", technician.ID, err)
	}
	if exists {
		return false, nil
	}
	if _, err := s.technicianRepo.CreateTechnician(ctx, tx, technician); err != nil {
		var validationErr *apperrors.ValidationError
		if errors.As(err, &validationErr) {
			return false, fmt.Errorf("technician %s: %v", technician.Name, validationErr.Fields)
		}
		return false, fmt.Errorf("technician %s: %w", technician.Name, err)
	}
	return true, nil
}

// SeedCatalog upserts the demo categories and services. Existing prices are overwritten.
func (s *Seeder) SeedCatalog(ctx context.Context) error {
	s.logger.Info("seeding demo catalog")

	return s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		for _, c := range catalogData {
			var categoryID uint64
			err := tx.QueryRow(ctx, `SELECT id FROM categories WHERE name = $1 AND deleted_at IS NULL`, c.Name).Scan(&categoryID)
			if errors.Is(err, pgx.ErrNoRows) {
				err = tx.QueryRow(ctx, `INSERT INTO categories (name) VALUES ($1) RETURNING id`, c.Name).Scan(&categoryID)
			}
			if err != nil {
				return fmt.Errorf("category %s: %w", c.Name, err)
			}

			for _, svc := range c.Services {
				_, err := tx.Exec(ctx, `
					INSERT INTO services (title, category_id, price)
					VALUES ($1, $2, $3)
					ON CONFLICT (title) WHERE deleted_at IS NULL
					DO UPDATE SET category_id = EXCLUDED.category_id, price = EXCLUDED.price, updated_at = NOW()`,
					svc.Title, categoryID, svc.Price)
				if err != nil {
					return fmt.Errorf("service %s: %w", svc.Title, err)
				}
			}
			s.logger.Debug("category seeded", zap.String("category", c.Name), zap.Int("services", len(c.Services)))
		}
		return nil
	})
}
