package report

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ekspresi/itm-sub002/internal/application/dto"
	"github.com/ekspresi/itm-sub002/internal/domain"
	"github.com/ekspresi/itm-sub002/internal/domain/entity"
	"github.com/ekspresi/itm-sub002/internal/domain/report"
	"github.com/ekspresi/itm-sub002/internal/domain/repository"
)

const pdfContentType = "application/pdf"

// Printout documento impreso listo para descargar.
type Printout struct {
	Filename string
	Body     []byte
}

// UseCase compone reportes (JSON) y los imprime (PDF) pasando por el ciclo
// Idle -> Preparing -> Ready -> Idle: el renderizador solo recibe documentos completos.
type UseCase struct {
	censusRepo   repository.CensusRepository
	itemRepo     repository.LineItemRepository
	locationRepo repository.LocationRepository
	renderer     Renderer
	archive      Archive // opcional
	log          zerolog.Logger
	now          func() time.Time
}

// NewUseCase construye el caso de uso. archive puede ser nil.
func NewUseCase(
	censusRepo repository.CensusRepository,
	itemRepo repository.LineItemRepository,
	locationRepo repository.LocationRepository,
	renderer Renderer,
	archive Archive,
	log zerolog.Logger,
) *UseCase {
	return &UseCase{
		censusRepo:   censusRepo,
		itemRepo:     itemRepo,
		locationRepo: locationRepo,
		renderer:     renderer,
		archive:      archive,
		log:          log,
		now:          time.Now,
	}
}

// CensusReport compone el reporte de un censo.
func (uc *UseCase) CensusReport(ctx context.Context, censusID string) (*dto.CensusReportResponse, error) {
	r, err := uc.composeCensus(ctx, censusID)
	if err != nil {
		return nil, err
	}
	out := dto.ToCensusReportResponse(r)
	return &out, nil
}

// YearlySummary compone el resumen anual. Devuelve domain.ErrNoCensusesForYear si el año no tiene censos.
func (uc *UseCase) YearlySummary(ctx context.Context, year int) (*dto.YearlySummaryResponse, error) {
	s, err := uc.composeYearly(ctx, year)
	if err != nil {
		return nil, err
	}
	out := dto.ToYearlySummaryResponse(s)
	return &out, nil
}

// PrintCensusReport compone e imprime el reporte de un censo.
func (uc *UseCase) PrintCensusReport(ctx context.Context, censusID string) (*Printout, error) {
	job := report.NewJob[*report.CensusReport]()
	if err := job.Begin(); err != nil {
		return nil, err
	}
	r, err := uc.composeCensus(ctx, censusID)
	if err != nil {
		job.Reset()
		return nil, err
	}
	if err := job.Complete(r); err != nil {
		job.Reset()
		return nil, err
	}
	body, err := job.Handoff(uc.renderer.RenderCensusReport)
	if err != nil {
		return nil, fmt.Errorf("render reporte de censo: %w", err)
	}
	p := &Printout{
		Filename: fmt.Sprintf("censo-%d-%s.pdf", r.Meta.Year, censusID),
		Body:     body,
	}
	uc.store(ctx, p)
	return p, nil
}

// PrintYearlySummary compone e imprime el resumen anual. Con un año vacío
// falla antes de llegar al renderizador.
func (uc *UseCase) PrintYearlySummary(ctx context.Context, year int) (*Printout, error) {
	job := report.NewJob[*report.YearlySummary]()
	if err := job.Begin(); err != nil {
		return nil, err
	}
	s, err := uc.composeYearly(ctx, year)
	if err != nil {
		job.Reset()
		return nil, err
	}
	if err := job.Complete(s); err != nil {
		job.Reset()
		return nil, err
	}
	body, err := job.Handoff(uc.renderer.RenderYearlySummary)
	if err != nil {
		return nil, fmt.Errorf("render resumen anual: %w", err)
	}
	p := &Printout{
		Filename: fmt.Sprintf("resumen-censos-%d.pdf", year),
		Body:     body,
	}
	uc.store(ctx, p)
	return p, nil
}

func (uc *UseCase) composeCensus(ctx context.Context, censusID string) (*report.CensusReport, error) {
	c, err := uc.censusRepo.GetByID(ctx, censusID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: censo %s", domain.ErrNotFound, censusID)
	}
	location, err := uc.locationRepo.GetByID(ctx, c.LocationID)
	if err != nil {
		return nil, err
	}
	items, err := uc.itemRepo.ListByCensus(ctx, censusID)
	if err != nil {
		return nil, err
	}
	r, err := report.ComposeCensusReport(c, location, items, uc.now())
	if err != nil {
		return nil, err
	}
	if !r.Consistent {
		uc.log.Warn().
			Str("census_id", censusID).
			Str("grand_total", r.GrandTotal.String()).
			Str("cached_total", r.CachedTotal.String()).
			Bool("stale", c.TotalStale).
			Msg("total cacheado no coincide con las líneas")
	}
	return r, nil
}

func (uc *UseCase) composeYearly(ctx context.Context, year int) (*report.YearlySummary, error) {
	if year <= 0 {
		return nil, fmt.Errorf("%w: año %d", domain.ErrInvalidInput, year)
	}
	censuses, err := uc.censusRepo.ListByYear(ctx, year)
	if err != nil {
		return nil, err
	}
	locations, err := uc.locationRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	idx := make(map[string]*entity.Location, len(locations))
	for _, l := range locations {
		idx[l.ID] = l
	}
	return report.ComposeYearlySummary(year, censuses, idx, uc.now())
}

// store sube el PDF al archivo si está configurado. Un fallo solo se registra.
func (uc *UseCase) store(ctx context.Context, p *Printout) {
	if uc.archive == nil {
		return
	}
	key := uc.now().Format("2006/01/02/150405-") + p.Filename
	if err := uc.archive.Put(ctx, key, p.Body, pdfContentType); err != nil {
		uc.log.Error().Err(err).Str("key", key).Msg("no se pudo archivar el reporte")
		return
	}
	uc.log.Info().Str("key", key).Int("bytes", len(p.Body)).Msg("reporte archivado")
}
