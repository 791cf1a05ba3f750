package report_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekspresi/itm-sub002/internal/domain"
	"github.com/ekspresi/itm-sub002/internal/domain/census"
	"github.com/ekspresi/itm-sub002/internal/domain/entity"
	"github.com/ekspresi/itm-sub002/internal/domain/report"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestComposeCensusReport_FilasNumeradasYTotal(t *testing.T) {
	loc := &entity.Location{ID: "hall", Name: "Main Hall", ResponsiblePerson: "Ana Nowak"}
	items := []*entity.CensusLineItem{
		{Name: "Chair", Unit: "pcs", QuantityFound: 10, PricePerUnit: dec("25.00")},
		{Name: "Table", Unit: "pcs", QuantityFound: 2, PricePerUnit: dec("99.99"), Notes: "scratched"},
	}
	c := &entity.Census{ID: "c1", Year: 2025, LocationID: "hall", Committee: []string{"Ana", "Jan"},
		Status: entity.CensusStatusInProgress, TotalValue: census.Total(items)}

	r, err := report.ComposeCensusReport(c, loc, items, now)
	require.NoError(t, err)

	require.Len(t, r.Rows, 2)
	assert.Equal(t, 1, r.Rows[0].Index)
	assert.Equal(t, 2, r.Rows[1].Index)
	assert.True(t, dec("250").Equal(r.Rows[0].RowTotal))
	assert.True(t, dec("199.98").Equal(r.Rows[1].RowTotal))
	assert.Equal(t, "scratched", r.Rows[1].Notes)
	assert.Equal(t, int64(12), r.TotalQty)

	assert.Equal(t, "Main Hall", r.Meta.LocationName)
	assert.Equal(t, "Ana Nowak", r.Meta.ResponsiblePerson)
	assert.Equal(t, []string{"Ana", "Jan"}, r.Meta.Committee)
}

// El pie del reporte y el total del agregador deben coincidir.
func TestComposeCensusReport_PieIgualAlTotalAgregado(t *testing.T) {
	items := []*entity.CensusLineItem{
		{Name: "A", QuantityFound: 3, PricePerUnit: dec("0.333")},
		{Name: "B", QuantityFound: 17, PricePerUnit: dec("12.05")},
		{Name: "C", QuantityFound: 0, PricePerUnit: dec("1000")},
	}
	aggregated := census.Total(items)
	c := &entity.Census{ID: "c1", Year: 2025, TotalValue: aggregated}

	r, err := report.ComposeCensusReport(c, nil, items, now)
	require.NoError(t, err)

	assert.True(t, aggregated.Equal(r.GrandTotal), "pie %s, agregador %s", r.GrandTotal, aggregated)
	assert.True(t, r.Consistent)
}

func TestComposeCensusReport_DetectaTotalDesactualizado(t *testing.T) {
	items := []*entity.CensusLineItem{{Name: "A", QuantityFound: 1, PricePerUnit: dec("10")}}

	r, err := report.ComposeCensusReport(&entity.Census{ID: "c1", TotalValue: dec("5")}, nil, items, now)
	require.NoError(t, err)
	assert.False(t, r.Consistent)
	assert.True(t, dec("10").Equal(r.GrandTotal))
	assert.True(t, dec("5").Equal(r.CachedTotal))

	r, err = report.ComposeCensusReport(&entity.Census{ID: "c1", TotalValue: dec("10"), TotalStale: true}, nil, items, now)
	require.NoError(t, err)
	assert.False(t, r.Consistent, "un total marcado como desactualizado nunca es consistente")
}

func TestComposeCensusReport_CensoNil(t *testing.T) {
	_, err := report.ComposeCensusReport(nil, nil, nil, now)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Escenario D: dos censos de 2024 con 100.00 y 250.50 suman 350.50.
func TestComposeYearlySummary_TotalGeneral(t *testing.T) {
	locs := map[string]*entity.Location{
		"hall":  {ID: "hall", Name: "Main Hall"},
		"store": {ID: "store", Name: "Basement Storage"},
	}
	cs := []*entity.Census{
		{ID: "a", Year: 2024, LocationID: "hall", TotalValue: dec("100.00")},
		{ID: "b", Year: 2024, LocationID: "store", TotalValue: dec("250.50")},
		{ID: "c", Year: 2025, LocationID: "hall", TotalValue: dec("999.99")},
	}

	s, err := report.ComposeYearlySummary(2024, cs, locs, now)
	require.NoError(t, err)

	assert.True(t, dec("350.50").Equal(s.GrandTotal), "got %s", s.GrandTotal)
	require.Len(t, s.Rows, 2)
	assert.Equal(t, "Basement Storage", s.Rows[0].LocationName)
	assert.Equal(t, 1, s.Rows[0].Index)
	assert.Equal(t, "Main Hall", s.Rows[1].LocationName)
}

// El total general incluye exactamente los censos del año pedido.
func TestComposeYearlySummary_SoloCensosDelAnio(t *testing.T) {
	cs := []*entity.Census{
		{ID: "a", Year: 2023, TotalValue: dec("1")},
		{ID: "b", Year: 2024, TotalValue: dec("2")},
		{ID: "c", Year: 2024, TotalValue: dec("4")},
		{ID: "d", Year: 2025, TotalValue: dec("8")},
	}

	s, err := report.ComposeYearlySummary(2024, cs, nil, now)
	require.NoError(t, err)

	sum := decimal.Zero
	for _, r := range s.Rows {
		sum = sum.Add(r.TotalValue)
	}
	assert.True(t, dec("6").Equal(s.GrandTotal))
	assert.True(t, sum.Equal(s.GrandTotal))
	assert.Len(t, s.Rows, 2)
}

func TestComposeYearlySummary_AnioSinCensos(t *testing.T) {
	cs := []*entity.Census{{ID: "a", Year: 2023}}

	s, err := report.ComposeYearlySummary(2030, cs, nil, now)

	assert.Nil(t, s)
	assert.ErrorIs(t, err, domain.ErrNoCensusesForYear)
}
