package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/ekspresi/itm-sub002/internal/domain"
	"github.com/ekspresi/itm-sub002/internal/domain/entity"
	"github.com/ekspresi/itm-sub002/internal/domain/repository"
)

var _ repository.CensusRepository = (*CensusRepo)(nil)

// CensusRepo implementación de CensusRepository sobre PostgreSQL (usable con pool o tx).
// La unicidad (year, location_id) la garantiza el índice censuses_year_location_key.
type CensusRepo struct {
	q Querier
}

// NewCensusRepository construye el adaptador de censos. Pasar pool o tx (Querier).
func NewCensusRepository(q Querier) *CensusRepo {
	return &CensusRepo{q: q}
}

const censusColumns = `id, year, location_id, committee, start_date, end_date, status,
	total_value, total_stale, created_at, updated_at`

func scanCensus(row pgx.Row) (*entity.Census, error) {
	var c entity.Census
	err := row.Scan(
		&c.ID, &c.Year, &c.LocationID, &c.Committee, &c.StartDate, &c.EndDate, &c.Status,
		&c.TotalValue, &c.TotalStale, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CensusRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Census, error) {
	c, err := scanCensus(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get census: %w", err)
	}
	return c, nil
}

func (r *CensusRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Census, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list censuses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Census
	for rows.Next() {
		c, err := scanCensus(rows)
		if err != nil {
			return nil, fmt.Errorf("scan census: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Create persiste un censo nuevo.
func (r *CensusRepo) Create(ctx context.Context, c *entity.Census) error {
	committee := c.Committee
	if committee == nil {
		committee = []string{}
	}
	query := `
		INSERT INTO censuses (id, year, location_id, committee, start_date, end_date, status,
			total_value, total_stale, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Year, c.LocationID, committee, c.StartDate, c.EndDate, c.Status,
		c.TotalValue, c.TotalStale, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrLocationAlreadyCensused
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: ubicación %s", domain.ErrNotFound, c.LocationID)
		}
		return fmt.Errorf("insert census: %w", err)
	}
	return nil
}

// GetByID obtiene un censo por ID.
func (r *CensusRepo) GetByID(ctx context.Context, id string) (*entity.Census, error) {
	return r.getOne(ctx, `SELECT `+censusColumns+` FROM censuses WHERE id = $1`, id)
}

// GetForUpdate obtiene el censo y bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
func (r *CensusRepo) GetForUpdate(ctx context.Context, id string) (*entity.Census, error) {
	return r.getOne(ctx, `SELECT `+censusColumns+` FROM censuses WHERE id = $1 FOR UPDATE`, id)
}

// GetByYearAndLocation obtiene el censo de una ubicación en un año.
func (r *CensusRepo) GetByYearAndLocation(ctx context.Context, year int, locationID string) (*entity.Census, error) {
	return r.getOne(ctx, `SELECT `+censusColumns+` FROM censuses WHERE year = $1 AND location_id = $2`, year, locationID)
}

// Update actualiza los campos editables; total_value y total_stale solo los toca UpdateTotal/MarkTotalStale.
func (r *CensusRepo) Update(ctx context.Context, c *entity.Census) error {
	committee := c.Committee
	if committee == nil {
		committee = []string{}
	}
	query := `
		UPDATE censuses SET year = $2, location_id = $3, committee = $4, start_date = $5,
			end_date = $6, status = $7, updated_at = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		c.ID, c.Year, c.LocationID, committee, c.StartDate, c.EndDate, c.Status, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrLocationAlreadyCensused
		}
		return fmt.Errorf("update census: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateTotal escribe el total cacheado y limpia la marca de desactualizado.
func (r *CensusRepo) UpdateTotal(ctx context.Context, id string, total decimal.Decimal, at time.Time) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE censuses SET total_value = $2, total_stale = FALSE, updated_at = $3 WHERE id = $1`,
		id, total, at,
	)
	if err != nil {
		return fmt.Errorf("update census total: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkTotalStale marca el total como no confirmado.
func (r *CensusRepo) MarkTotalStale(ctx context.Context, id string, at time.Time) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE censuses SET total_stale = TRUE, updated_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("mark census total stale: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByYear lista los censos del año en orden de creación.
func (r *CensusRepo) ListByYear(ctx context.Context, year int) ([]*entity.Census, error) {
	return r.list(ctx, `SELECT `+censusColumns+` FROM censuses WHERE year = $1 ORDER BY created_at, id`, year)
}

// Years devuelve los años con censos, del más reciente al más antiguo.
func (r *CensusRepo) Years(ctx context.Context) ([]int, error) {
	rows, err := r.q.Query(ctx, `SELECT DISTINCT year FROM censuses ORDER BY year DESC`)
	if err != nil {
		return nil, fmt.Errorf("list census years: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[int])
}

// CountByLocation cuenta los censos que referencian la ubicación.
func (r *CensusRepo) CountByLocation(ctx context.Context, locationID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM censuses WHERE location_id = $1`, locationID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count censuses: %w", err)
	}
	return n, nil
}

// Delete elimina un censo por ID (las líneas caen por ON DELETE CASCADE si quedara alguna).
func (r *CensusRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM censuses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete census: %w", err)
	}
	return nil
}
