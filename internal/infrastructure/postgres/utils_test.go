package postgres

import (
	"fmt"
	"io/fs"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekspresi/itm-sub002/internal/domain"
	"github.com/ekspresi/itm-sub002/internal/domain/entity"
)

// ─── Traducción de errores de PostgreSQL ───

func TestLineItemReferenceError_DistingueLaFK(t *testing.T) {
	it := &entity.CensusLineItem{CensusID: "c1", MasterItemID: "m404"}
	fk := func(constraint string) error {
		return fmt.Errorf("exec: %w", &pgconn.PgError{Code: codeForeignKeyViolation, ConstraintName: constraint})
	}

	err := lineItemReferenceError(fk(fkLineItemMasterItem), it)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "ítem de catálogo m404")

	err = lineItemReferenceError(fk(fkLineItemCensus), it)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "censo c1")
}

func TestCodigosSQLState(t *testing.T) {
	unique := &pgconn.PgError{Code: codeUniqueViolation}
	assert.True(t, isUniqueViolation(fmt.Errorf("wrap: %w", unique)))
	assert.False(t, isForeignKeyViolation(unique))
	assert.False(t, isUniqueViolation(fmt.Errorf("otro error")))
	assert.Equal(t, "", violatedConstraint(fmt.Errorf("otro error")))
}

// ─── Esquema ───

// Los montos se guardan con la precisión completa que recibe el dominio:
// un NUMERIC(p,s) redondearía precios y desbordaría totales grandes.
func TestMigrations_MontosSinPrecisionFija(t *testing.T) {
	bounded := regexp.MustCompile(`(?i)\b(NUMERIC|DECIMAL)\s*\(`)
	files, err := fs.Glob(migrationsFS, "migrations/*.up.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)
	for _, name := range files {
		body, err := migrationsFS.ReadFile(name)
		require.NoError(t, err)
		assert.False(t, bounded.Match(body), "%s declara un NUMERIC con precisión fija", name)
	}
}
