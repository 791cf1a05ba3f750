package census

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ekspresi/itm-sub002/internal/domain"
	"github.com/ekspresi/itm-sub002/internal/domain/census"
	"github.com/ekspresi/itm-sub002/internal/domain/repository"
)

// Aggregator mantiene el total cacheado de cada censo igual a Σ cantidad × precio de sus líneas.
type Aggregator struct {
	txRunner   TxRunner
	censusRepo repository.CensusRepository
	log        zerolog.Logger
	now        func() time.Time
}

// NewAggregator construye el agregador. censusRepo se usa fuera de la transacción
// para marcar el total como desactualizado cuando el recálculo falla.
func NewAggregator(txRunner TxRunner, censusRepo repository.CensusRepository, log zerolog.Logger) *Aggregator {
	return &Aggregator{txRunner: txRunner, censusRepo: censusRepo, log: log, now: time.Now}
}

// Recompute lee todas las líneas del censo, calcula el total y lo escribe.
// Es idempotente. Si falla, marca el censo como desactualizado (best effort),
// registra el error y lo devuelve; no reintenta.
func (a *Aggregator) Recompute(ctx context.Context, censusID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := a.txRunner.Run(ctx, func(censusRepo repository.CensusRepository, itemRepo repository.LineItemRepository) error {
		c, err := censusRepo.GetForUpdate(ctx, censusID)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNotFound
		}
		total, err = recomputeIn(ctx, censusRepo, itemRepo, censusID, a.now())
		return err
	})
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			a.markStale(ctx, censusID, err)
		}
		return decimal.Zero, err
	}
	return total, nil
}

func (a *Aggregator) markStale(ctx context.Context, censusID string, cause error) {
	a.log.Error().Err(cause).Str("census_id", censusID).Msg("recálculo del total fallido")
	if err := a.censusRepo.MarkTotalStale(ctx, censusID, a.now()); err != nil {
		a.log.Error().Err(err).Str("census_id", censusID).Msg("no se pudo marcar el total como desactualizado")
	}
}

// recomputeIn recalcula y escribe el total usando los repositorios de la transacción en curso.
// El llamador debe tener el censo bloqueado.
func recomputeIn(
	ctx context.Context,
	censusRepo repository.CensusRepository,
	itemRepo repository.LineItemRepository,
	censusID string,
	at time.Time,
) (decimal.Decimal, error) {
	items, err := itemRepo.ListByCensus(ctx, censusID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("listar líneas: %w", err)
	}
	total := census.Total(items)
	if err := censusRepo.UpdateTotal(ctx, censusID, total, at); err != nil {
		return decimal.Zero, fmt.Errorf("escribir total: %w", err)
	}
	return total, nil
}
