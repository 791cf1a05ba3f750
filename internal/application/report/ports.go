// Package report orquesta la composición e impresión de los reportes de censo.
package report

import (
	"context"

	"github.com/ekspresi/itm-sub002/internal/domain/report"
)

// Renderer convierte un reporte ya compuesto en un documento imprimible (PDF).
type Renderer interface {
	RenderCensusReport(r *report.CensusReport) ([]byte, error)
	RenderYearlySummary(s *report.YearlySummary) ([]byte, error)
}

// Archive guarda una copia de cada documento impreso.
type Archive interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
}
