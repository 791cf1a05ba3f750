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

var _ repository.LineItemRepository = (*LineItemRepo)(nil)

// LineItemRepo implementación de LineItemRepository sobre PostgreSQL (usable con pool o tx).
type LineItemRepo struct {
	q Querier
}

// NewLineItemRepository construye el adaptador de líneas de censo. Pasar pool o tx (Querier).
func NewLineItemRepository(q Querier) *LineItemRepo {
	return &LineItemRepo{q: q}
}

const lineItemColumns = `id, census_id, master_item_id, name, unit, quantity_found, price_per_unit,
	notes, created_at, updated_at`

func scanLineItem(row pgx.Row) (*entity.CensusLineItem, error) {
	var (
		it       entity.CensusLineItem
		masterID *string
	)
	err := row.Scan(
		&it.ID, &it.CensusID, &masterID, &it.Name, &it.Unit, &it.QuantityFound, &it.PricePerUnit,
		&it.Notes, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	it.MasterItemID = deref(masterID)
	return &it, nil
}

// Create persiste una línea nueva.
func (r *LineItemRepo) Create(ctx context.Context, it *entity.CensusLineItem) error {
	query := `
		INSERT INTO census_line_items (id, census_id, master_item_id, name, unit, quantity_found,
			price_per_unit, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.CensusID, nullable(it.MasterItemID), it.Name, it.Unit, it.QuantityFound,
		it.PricePerUnit, it.Notes, it.CreatedAt, it.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return lineItemReferenceError(err, it)
		}
		return fmt.Errorf("insert census line item: %w", err)
	}
	return nil
}

// lineItemReferenceError traduce una violación de FK al recurso referenciado que falta.
func lineItemReferenceError(err error, it *entity.CensusLineItem) error {
	switch violatedConstraint(err) {
	case fkLineItemMasterItem:
		return fmt.Errorf("%w: ítem de catálogo %s", domain.ErrNotFound, it.MasterItemID)
	case fkLineItemCensus:
		return fmt.Errorf("%w: censo %s", domain.ErrNotFound, it.CensusID)
	default:
		return fmt.Errorf("%w: referencia inválida en la línea: %v", domain.ErrNotFound, err)
	}
}

// GetByID obtiene una línea de un censo.
func (r *LineItemRepo) GetByID(ctx context.Context, censusID, id string) (*entity.CensusLineItem, error) {
	query := `SELECT ` + lineItemColumns + ` FROM census_line_items WHERE census_id = $1 AND id = $2`
	it, err := scanLineItem(r.q.QueryRow(ctx, query, censusID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get census line item: %w", err)
	}
	return it, nil
}

// Update reemplaza una línea existente del censo.
func (r *LineItemRepo) Update(ctx context.Context, it *entity.CensusLineItem) error {
	query := `
		UPDATE census_line_items SET master_item_id = $3, name = $4, unit = $5, quantity_found = $6,
			price_per_unit = $7, notes = $8, updated_at = $9
		WHERE census_id = $1 AND id = $2`
	cmd, err := r.q.Exec(ctx, query,
		it.CensusID, it.ID, nullable(it.MasterItemID), it.Name, it.Unit, it.QuantityFound,
		it.PricePerUnit, it.Notes, it.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return lineItemReferenceError(err, it)
		}
		return fmt.Errorf("update census line item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCensus lista las líneas del censo en orden de creación.
func (r *LineItemRepo) ListByCensus(ctx context.Context, censusID string) ([]*entity.CensusLineItem, error) {
	query := `SELECT ` + lineItemColumns + ` FROM census_line_items WHERE census_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, censusID)
	if err != nil {
		return nil, fmt.Errorf("list census line items: %w", err)
	}
	defer rows.Close()
	var list []*entity.CensusLineItem
	for rows.Next() {
		it, err := scanLineItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan census line item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// Delete elimina una línea del censo.
func (r *LineItemRepo) Delete(ctx context.Context, censusID, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM census_line_items WHERE census_id = $1 AND id = $2`, censusID, id)
	if err != nil {
		return fmt.Errorf("delete census line item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteByCensus elimina todas las líneas del censo.
func (r *LineItemRepo) DeleteByCensus(ctx context.Context, censusID string) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM census_line_items WHERE census_id = $1`, censusID)
	if err != nil {
		return 0, fmt.Errorf("delete census line items: %w", err)
	}
	return cmd.RowsAffected(), nil
}
