package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos SQLSTATE usados por los repositorios.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// isUniqueViolation verifica si un error es una violación de constraint único.
func isUniqueViolation(err error) bool {
	return hasCode(err, codeUniqueViolation)
}

// isForeignKeyViolation verifica si un error es una violación de clave foránea.
func isForeignKeyViolation(err error) bool {
	return hasCode(err, codeForeignKeyViolation)
}

// Nombres de las FKs de census_line_items (convención <tabla>_<columna>_fkey de PostgreSQL).
const (
	fkLineItemCensus     = "census_line_items_census_id_fkey"
	fkLineItemMasterItem = "census_line_items_master_item_id_fkey"
)

// violatedConstraint devuelve el constraint que disparó el error, o "" si no es un PgError.
func violatedConstraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}

// nullable convierte "" en NULL para columnas de referencia opcional.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// deref convierte NULL en "".
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
