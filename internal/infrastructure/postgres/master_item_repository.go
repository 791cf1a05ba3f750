package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ekspresi/itm-sub002/internal/domain"
	"github.com/ekspresi/itm-sub002/internal/domain/entity"
	"github.com/ekspresi/itm-sub002/internal/domain/repository"
)

var _ repository.MasterItemRepository = (*MasterItemRepo)(nil)

// MasterItemRepo implementación del catálogo de inventario sobre PostgreSQL.
type MasterItemRepo struct {
	q Querier
}

// NewMasterItemRepository construye el adaptador del catálogo.
func NewMasterItemRepository(q Querier) *MasterItemRepo {
	return &MasterItemRepo{q: q}
}

const masterItemColumns = `id, name, unit, current_location_id, purchase_value, created_at, updated_at`

func scanMasterItem(row pgx.Row) (*entity.MasterItem, error) {
	var (
		m     entity.MasterItem
		locID *string
	)
	if err := row.Scan(&m.ID, &m.Name, &m.Unit, &locID, &m.PurchaseValue, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	m.CurrentLocationID = deref(locID)
	return &m, nil
}

// Create persiste un ítem nuevo.
func (r *MasterItemRepo) Create(ctx context.Context, m *entity.MasterItem) error {
	query := `
		INSERT INTO master_items (id, name, unit, current_location_id, purchase_value, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Name, m.Unit, nullable(m.CurrentLocationID), m.PurchaseValue, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert master item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por ID.
func (r *MasterItemRepo) GetByID(ctx context.Context, id string) (*entity.MasterItem, error) {
	m, err := scanMasterItem(r.q.QueryRow(ctx, `SELECT `+masterItemColumns+` FROM master_items WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get master item: %w", err)
	}
	return m, nil
}

// Update actualiza un ítem existente.
func (r *MasterItemRepo) Update(ctx context.Context, m *entity.MasterItem) error {
	query := `
		UPDATE master_items SET name = $2, unit = $3, current_location_id = $4, purchase_value = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		m.ID, m.Name, m.Unit, nullable(m.CurrentLocationID), m.PurchaseValue, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update master item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista el catálogo completo ordenado por nombre.
func (r *MasterItemRepo) List(ctx context.Context) ([]*entity.MasterItem, error) {
	return r.list(ctx, `SELECT `+masterItemColumns+` FROM master_items ORDER BY lower(name), id`)
}

// ListByLocation lista los ítems asignados a la ubicación.
func (r *MasterItemRepo) ListByLocation(ctx context.Context, locationID string) ([]*entity.MasterItem, error) {
	return r.list(ctx,
		`SELECT `+masterItemColumns+` FROM master_items WHERE current_location_id = $1 ORDER BY lower(name), id`,
		locationID)
}

func (r *MasterItemRepo) list(ctx context.Context, query string, args ...any) ([]*entity.MasterItem, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list master items: %w", err)
	}
	defer rows.Close()
	var list []*entity.MasterItem
	for rows.Next() {
		m, err := scanMasterItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan master item: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// Delete elimina un ítem del catálogo (las líneas que lo referencian quedan con master_item_id NULL).
func (r *MasterItemRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM master_items WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete master item: %w", err)
	}
	return nil
}
