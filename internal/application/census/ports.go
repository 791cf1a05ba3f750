// Package census contiene los casos de uso del flujo de censos: registro de censos,
// líneas contadas, recálculo del total cacheado y sugerencias desde el catálogo.
package census

import (
	"context"

	"github.com/ekspresi/itm-sub002/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error no se persiste nada de lo hecho dentro.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		censusRepo repository.CensusRepository,
		itemRepo repository.LineItemRepository,
	) error) error
}
