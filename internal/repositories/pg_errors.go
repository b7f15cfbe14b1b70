package repositories

import (
	"errors"

	apperrors "aircon-admin/pkg/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

// Constraint names come from migrations/; each maps to the request field it guards.
var constraintFields = map[string]string{
	"orders_technician_id_fkey":     "technician_id",
	"order_items_service_id_fkey":   "items",
	"order_items_order_service_key": "items",
	"services_category_id_fkey":     "category_id",
	"categories_name_key":           "name",
	"services_title_key":            "title",
}

var constraintMessages = map[string]string{
	"orders_technician_id_fkey":     "technician does not exist",
	"order_items_service_id_fkey":   "service does not exist",
	"order_items_order_service_key": "service is already on another line of this order",
	"services_category_id_fkey":     "category does not exist",
	"categories_name_key":           "has already been taken",
	"services_title_key":            "has already been taken",
}

// translatePgError turns known constraint violations into field errors. Anything else is returned unchanged.
func translatePgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgForeignKeyViolation, pgUniqueViolation:
		if field, ok := constraintFields[pgErr.ConstraintName]; ok {
			return apperrors.NewValidationError(field, constraintMessages[pgErr.ConstraintName])
		}
		return apperrors.ErrConflict
	}
	return err
}
